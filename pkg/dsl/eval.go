// Package dsl 提供基于 CEL (Common Expression Language) 的行级表达式求值，
// 用于交易日志清洗规则的配置化表达。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/recdata/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("row", cel.DynType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Program 是编译后的行级布尔表达式。清洗大表时按行求值，表达式只编译
// 一次，Program 可并发使用。
//
// 表达式语法（CEL 标准语法），通过 row 访问当前行：
//   - row.customer_id == "" / row.article_id != ""
//   - row.position < 1000000
//   - row.customer_id.startsWith("test_")
//   - row.article_id in ["0001", "0002"]
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式。空表达式返回 nil Program（调用方视为恒 false）。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return nil, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}

	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本（用于日志/观测）。
func (p *Program) Expr() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// Match 对单行交易求值，返回布尔结果。
// position 是该行在原表中的位置（0 起），表达式里通过 row.position 访问。
func (p *Program) Match(t core.Transaction, position int) (bool, error) {
	if p == nil {
		return false, nil
	}

	out, _, err := p.prg.Eval(map[string]interface{}{
		"row": map[string]interface{}{
			"customer_id": t.CustomerID,
			"article_id":  t.ArticleID,
			"position":    position,
		},
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}
