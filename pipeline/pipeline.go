package pipeline

import (
	"context"

	"github.com/rushteam/recdata/core"
)

// Pipeline 是 Recdata 的核心抽象：把数据准备逻辑拆成可组合的 Node 链
// （Filter → Split → Label → Enrich → Export）。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	cur := ds
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
