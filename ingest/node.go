package ingest

import (
	"context"

	"github.com/rushteam/recdata/core"
	"github.com/rushteam/recdata/pipeline"
)

// Node 是读取 Node：从交易日志文件装载 Dataset.Transactions。
// 放在链路最前面时，Run 的初始 Dataset 可以是 core.NewDataset(nil)。
type Node struct {
	// Path 交易日志 CSV 的路径
	Path string
}

func (n *Node) Name() string {
	return "ingest.transactions"
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindIngest
}

func (n *Node) Process(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	txns, err := ReadTransactions(ctx, n.Path)
	if err != nil {
		return nil, err
	}

	if ds == nil {
		ds = core.NewDataset(txns)
	} else {
		ds.Transactions = txns
	}
	ds.PutMeta("ingest.path", n.Path)
	ds.PutMeta("ingest.rows", len(txns))
	return ds, nil
}

var _ pipeline.Node = (*Node)(nil)
