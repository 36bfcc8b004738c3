// Package filter 提供交易日志的清洗 Node：在切分/标注之前剔除不符合
// 约束的行（空标识、测试账号、指定物品等）。
package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/recdata/core"
	"github.com/rushteam/recdata/pipeline"
	"github.com/rushteam/recdata/pkg/dsl"
)

// ExprNode 是基于 CEL 表达式的清洗 Node：表达式命中的行被剔除。
// 行的先后顺序保持不变（时间顺序是切分阶段的输入契约）。
//
// 使用示例：
//
//	node, _ := filter.NewExprNode(`row.customer_id.startsWith("test_")`)
type ExprNode struct {
	prg *dsl.Program
}

// NewExprNode 编译表达式并构建清洗 Node。
// 空表达式是配置错误（什么都不过滤的 Node 不应该出现在链路里）。
func NewExprNode(expr string) (*ExprNode, error) {
	if expr == "" {
		return nil, core.NewDomainError(
			core.ModulePipeline,
			core.ErrorCodeInvalidInput,
			"filter: expr is required",
		)
	}
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return &ExprNode{prg: prg}, nil
}

func (n *ExprNode) Name() string {
	return "filter.expr"
}

func (n *ExprNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *ExprNode) Process(_ context.Context, ds *core.Dataset) (*core.Dataset, error) {
	if len(ds.Transactions) == 0 {
		return ds, nil
	}

	out := make([]core.Transaction, 0, len(ds.Transactions))
	dropped := 0

	for i, t := range ds.Transactions {
		hit, err := n.prg.Match(t, i)
		if err != nil {
			return nil, fmt.Errorf("filter %q row %d: %w", n.prg.Expr(), i, err)
		}
		if hit {
			dropped++
			continue
		}
		out = append(out, t)
	}

	ds.Transactions = out
	ds.PutMeta("filter.expr", n.prg.Expr())
	ds.PutMeta("filter.dropped", dropped)
	return ds, nil
}

var _ pipeline.Node = (*ExprNode)(nil)
