// Package split 把按时间升序排列的交易表切分为训练/测试窗口。
//
// 两种切分方式：
//   - Simple：末尾连续切片，训练取倒数第 5*factor 到倒数第 factor 行，
//     测试取最后 factor 行。实现简单，但测试集可能包含训练集从未出现过
//     的用户/物品（冷启动污染），离线评估分数会虚高。
//   - NoColdStart：向前扩张的候选窗口，保证测试集中每一行的用户和物品
//     都在训练窗口中出现过，同时尽量保留最新的测试样本。
package split

import (
	"fmt"

	"github.com/rushteam/recdata/core"
)

// DefaultFactor 是测试集行数的默认值（对应训练集 5*DefaultFactor 行）。
const DefaultFactor = 250000

// ErrInsufficientData 表示向前扩张搜索穷尽整张表后，仍凑不够 factor 条
// 合法测试样本。调用方拿不到部分结果：要么成功，要么此错误。
var ErrInsufficientData = core.NewDomainError(
	core.ModuleSplit,
	core.ErrorCodeInsufficientData,
	"split: not enough valid test samples available in the data",
)

// Simple 按位置做末尾连续切分：train = txns[n-5f:n-f]，test = txns[n-f:]。
// 表不足 6*factor 行时窗口被钳制到表头，不报错（与上游日志截断行为对齐）。
// 返回的是原表的子切片，调用方不应修改。
func Simple(txns []core.Transaction, factor int) (train, test []core.Transaction) {
	if factor <= 0 {
		return nil, nil
	}
	n := len(txns)

	trainStart := n - 5*factor
	if trainStart < 0 {
		trainStart = 0
	}
	testStart := n - factor
	if testStart < 0 {
		testStart = 0
	}
	if trainStart > testStart {
		trainStart = testStart
	}

	return txns[trainStart:testStart], txns[testStart:]
}

// NoColdStart 产出无冷启动污染的 (train, test) 切分：
//   - train 是恰好 5*factor 行的连续块
//   - test 是恰好 factor 行，取候选池中"用户和物品都在 train 中出现过"
//     的行里最靠近表尾（最新）的 factor 行
//
// 算法：候选池从最后 factor 行开始；若池中合法行不足 factor，把候选池
// 起点向前移动 factor 行（训练块随之整体前移）重试。窗口每次前移都在用
// 时效性换取合法性：返回的始终是满足无冷启动约束的前提下最新的切分。
//
// 候选池起点退到 5*factor 之前仍不满足时返回 ErrInsufficientData。
// 注意循环条件是 candidateStart >= 5*factor：最后一次尝试的训练块正好
// 从位置 0 开始，这个边界是有意保留的。
//
// 输入必须已按时间升序排列（调用方契约，这里不做校验）。
// 返回的 train 是原表的子切片；test 是过滤产生的新切片，保持原表顺序。
func NoColdStart(txns []core.Transaction, factor int) (train, test []core.Transaction, err error) {
	if factor <= 0 {
		return nil, nil, core.NewDomainError(
			core.ModuleSplit,
			core.ErrorCodeInvalidInput,
			fmt.Sprintf("split: factor must be positive, got %d", factor),
		)
	}

	n := len(txns)
	candidateEnd := n // 候选池终点固定在表尾
	candidateStart := n - factor

	for candidateStart >= 5*factor {
		train := txns[candidateStart-5*factor : candidateStart]
		candidate := txns[candidateStart:candidateEnd]

		customers := core.CustomerSet(train)
		articles := core.ArticleSet(train)

		// 只保留用户和物品都在训练窗口出现过的候选行，顺序不变。
		valid := make([]core.Transaction, 0, len(candidate))
		for _, t := range candidate {
			if _, ok := customers[t.CustomerID]; !ok {
				continue
			}
			if _, ok := articles[t.ArticleID]; !ok {
				continue
			}
			valid = append(valid, t)
		}

		if len(valid) >= factor {
			// 取合法行中最新（位置最靠后）的 factor 行。
			return train, valid[len(valid)-factor:], nil
		}

		candidateStart -= factor
	}

	return nil, nil, ErrInsufficientData
}
