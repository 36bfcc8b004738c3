package label

import (
	"context"

	"github.com/rushteam/recdata/core"
	"github.com/rushteam/recdata/pipeline"
)

// Node 是标注 Node：读取 Dataset.Train，写入 Dataset.Labeled。
// Dataset.Train 为空（切分阶段被省略）时退回到 Dataset.Transactions。
type Node struct {
	// Seed 随机种子；0 表示不固定种子（每次运行结果不同）
	Seed int64
}

func (n *Node) Name() string {
	return "label.balanced"
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindLabel
}

func (n *Node) Process(_ context.Context, ds *core.Dataset) (*core.Dataset, error) {
	train := ds.Train
	if len(train) == 0 {
		train = ds.Transactions
	}

	var opts []Option
	if n.Seed != 0 {
		opts = append(opts, WithSeed(n.Seed))
	}

	ds.Labeled = Balanced(train, opts...)
	ds.PutMeta("label.rows", len(ds.Labeled))
	return ds, nil
}

var _ pipeline.Node = (*Node)(nil)
