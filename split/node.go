package split

import (
	"context"

	"github.com/rushteam/recdata/core"
	"github.com/rushteam/recdata/pipeline"
)

// 切分策略名称。
const (
	StrategySimple      = "simple"       // 末尾连续切分
	StrategyNoColdStart = "no_coldstart" // 无冷启动污染切分（默认）
)

// Node 是切分 Node：读取 Dataset.Transactions，写入 Dataset.Train/Test。
//
// 使用示例：
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &split.Node{Factor: 250000},
//	        &label.Node{Seed: 42},
//	    },
//	}
type Node struct {
	// Factor 测试集行数；<= 0 时使用 DefaultFactor
	Factor int

	// Strategy 切分策略：simple / no_coldstart；为空使用 no_coldstart
	Strategy string
}

func (n *Node) Name() string {
	return "split." + n.strategy()
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindSplit
}

func (n *Node) strategy() string {
	if n.Strategy == "" {
		return StrategyNoColdStart
	}
	return n.Strategy
}

func (n *Node) Process(_ context.Context, ds *core.Dataset) (*core.Dataset, error) {
	factor := n.Factor
	if factor <= 0 {
		factor = DefaultFactor
	}

	switch n.strategy() {
	case StrategySimple:
		ds.Train, ds.Test = Simple(ds.Transactions, factor)
	default:
		train, test, err := NoColdStart(ds.Transactions, factor)
		if err != nil {
			return nil, err
		}
		ds.Train, ds.Test = train, test
	}

	ds.PutMeta("split.strategy", n.strategy())
	ds.PutMeta("split.factor", factor)
	ds.PutMeta("split.train_rows", len(ds.Train))
	ds.PutMeta("split.test_rows", len(ds.Test))
	return ds, nil
}

var _ pipeline.Node = (*Node)(nil)
