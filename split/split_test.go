package split

import (
	"fmt"
	"testing"

	"github.com/rushteam/recdata/core"
)

// warmTxns 生成 n 行交易，用户/物品在小范围内循环出现，保证任何位置的
// 窗口都能覆盖全部标识（没有冷启动行）。
func warmTxns(n int) []core.Transaction {
	txns := make([]core.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txns = append(txns, core.Transaction{
			CustomerID: fmt.Sprintf("c%d", i%7),
			ArticleID:  fmt.Sprintf("a%d", i%11),
		})
	}
	return txns
}

func TestNoColdStart_Sizes(t *testing.T) {
	factor := 10
	txns := warmTxns(100)

	train, test, err := NoColdStart(txns, factor)
	if err != nil {
		t.Fatalf("NoColdStart: %v", err)
	}
	if len(train) != 5*factor {
		t.Errorf("len(train) = %d, want %d", len(train), 5*factor)
	}
	if len(test) != factor {
		t.Errorf("len(test) = %d, want %d", len(test), factor)
	}
}

func TestNoColdStart_TestRowsAreValid(t *testing.T) {
	factor := 10
	txns := warmTxns(100)

	train, test, err := NoColdStart(txns, factor)
	if err != nil {
		t.Fatalf("NoColdStart: %v", err)
	}

	customers := core.CustomerSet(train)
	articles := core.ArticleSet(train)
	for i, row := range test {
		if _, ok := customers[row.CustomerID]; !ok {
			t.Errorf("test[%d]: customer %s not in train", i, row.CustomerID)
		}
		if _, ok := articles[row.ArticleID]; !ok {
			t.Errorf("test[%d]: article %s not in train", i, row.ArticleID)
		}
	}
}

func TestNoColdStart_TestIsMostRecent(t *testing.T) {
	// 全部行合法时，test 必须正好是表尾的 factor 行。
	factor := 10
	txns := warmTxns(100)

	_, test, err := NoColdStart(txns, factor)
	if err != nil {
		t.Fatalf("NoColdStart: %v", err)
	}

	want := txns[len(txns)-factor:]
	for i := range want {
		if test[i] != want[i] {
			t.Fatalf("test[%d] = %+v, want %+v（必须取最新的合法行）", i, test[i], want[i])
		}
	}
}

func TestNoColdStart_BoundaryWindowAtZero(t *testing.T) {
	// n = 6*factor：唯一的候选窗口就是 train=[0,5f) + pool=[5f,6f)。
	factor := 5
	txns := warmTxns(6 * factor)

	train, test, err := NoColdStart(txns, factor)
	if err != nil {
		t.Fatalf("NoColdStart: %v", err)
	}
	for i := range train {
		if train[i] != txns[i] {
			t.Fatalf("train[%d] 不是表头开始的连续块", i)
		}
	}
	if len(test) != factor {
		t.Fatalf("len(test) = %d, want %d", len(test), factor)
	}
}

func TestNoColdStart_ExpandsOnce(t *testing.T) {
	// n = 7*factor，最后 factor 行全是冷启动用户：
	// 第一次尝试（pool=[6f,7f)）找不到合法行，窗口前移一次后
	// pool=[5f,7f)，其中 [5f,6f) 的 factor 行合法，恰好凑够。
	factor := 5
	n := 7 * factor
	txns := warmTxns(n)
	for i := 6 * factor; i < n; i++ {
		txns[i] = core.Transaction{
			CustomerID: fmt.Sprintf("cold%d", i),
			ArticleID:  fmt.Sprintf("a%d", i%11),
		}
	}

	train, test, err := NoColdStart(txns, factor)
	if err != nil {
		t.Fatalf("NoColdStart: %v", err)
	}

	// 窗口前移一次后训练块是 [0, 5f)。
	for i := range train {
		if train[i] != txns[i] {
			t.Fatalf("train[%d] = %+v, want %+v（窗口应该恰好前移一次）", i, train[i], txns[i])
		}
	}
	// 合法行正好是 [5f, 6f)。
	for i := range test {
		if test[i] != txns[5*factor+i] {
			t.Fatalf("test[%d] = %+v, want %+v", i, test[i], txns[5*factor+i])
		}
	}
}

func TestNoColdStart_InsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		txns   []core.Transaction
		factor int
	}{
		{
			name:   "表太短",
			txns:   warmTxns(10),
			factor: 10,
		},
		{
			name: "每行物品唯一，任何窗口都凑不够合法行",
			txns: func() []core.Transaction {
				txns := make([]core.Transaction, 0, 120)
				for i := 0; i < 120; i++ {
					txns = append(txns, core.Transaction{
						CustomerID: fmt.Sprintf("c%d", i%3),
						ArticleID:  fmt.Sprintf("unique%d", i),
					})
				}
				return txns
			}(),
			factor: 10,
		},
		{
			name: "6*factor 且末尾全冷启动：前移一次后窗口越界",
			txns: func() []core.Transaction {
				factor := 5
				txns := warmTxns(6 * factor)
				for i := 5 * factor; i < 6*factor; i++ {
					txns[i] = core.Transaction{
						CustomerID: fmt.Sprintf("cold%d", i),
						ArticleID:  "a0",
					}
				}
				return txns
			}(),
			factor: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			train, test, err := NoColdStart(tt.txns, tt.factor)
			if err == nil {
				t.Fatalf("期望 insufficient data 错误，得到 train=%d test=%d", len(train), len(test))
			}
			if !core.IsInsufficientData(err) {
				t.Errorf("错误代码不是 INSUFFICIENT_DATA: %v", err)
			}
			if train != nil || test != nil {
				t.Errorf("失败时不应返回部分结果")
			}
		})
	}
}

func TestNoColdStart_InvalidFactor(t *testing.T) {
	_, _, err := NoColdStart(warmTxns(100), 0)
	if !core.IsInvalidInput(err) {
		t.Fatalf("factor=0 应返回 INVALID_INPUT，得到 %v", err)
	}
}

func TestNoColdStart_PrefersRecentValidRows(t *testing.T) {
	// 候选池里合法行多于 factor 时，取位置最靠后的。
	// 构造：n=70, factor=10，候选池 [60,70) 有 3 行冷启动，7+3 不够？
	// 不——冷启动只让合法行变少。这里让池内合法行 >= factor：
	// n=80, factor=10, pool=[70,80) 全合法，但我们检验过滤版本：
	// 把池内第 0、2 行设为冷启动，池不够 10 行合法 → 前移一次，
	// pool=[60,80)，合法 18 行，test 必须是其中最靠后的 10 行。
	factor := 10
	n := 8 * factor
	txns := warmTxns(n)
	cold := []int{7*factor + 0, 7*factor + 2}
	for _, i := range cold {
		txns[i] = core.Transaction{CustomerID: fmt.Sprintf("cold%d", i), ArticleID: "a0"}
	}

	train, test, err := NoColdStart(txns, factor)
	if err != nil {
		t.Fatalf("NoColdStart: %v", err)
	}

	// 前移一次：train=[f,6f)，pool=[6f,8f)，合法行 = pool 去掉两行冷启动。
	for i := range train {
		if train[i] != txns[factor+i] {
			t.Fatalf("train 起点错误")
		}
	}
	valid := make([]core.Transaction, 0)
	customers := core.CustomerSet(train)
	for i := 6 * factor; i < n; i++ {
		if _, ok := customers[txns[i].CustomerID]; ok {
			valid = append(valid, txns[i])
		}
	}
	want := valid[len(valid)-factor:]
	for i := range want {
		if test[i] != want[i] {
			t.Fatalf("test[%d] = %+v, want %+v（不是最靠后的合法行）", i, test[i], want[i])
		}
	}
}

func TestSimple(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		factor    int
		wantTrain int
		wantTest  int
	}{
		{name: "常规", n: 100, factor: 10, wantTrain: 50, wantTest: 10},
		{name: "表不足 6*factor 时钳制", n: 40, factor: 10, wantTrain: 30, wantTest: 10},
		{name: "表不足 factor 时训练为空", n: 5, factor: 10, wantTrain: 0, wantTest: 5},
		{name: "factor 非法", n: 10, factor: 0, wantTrain: 0, wantTest: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns := warmTxns(tt.n)
			train, test := Simple(txns, tt.factor)
			if len(train) != tt.wantTrain {
				t.Errorf("len(train) = %d, want %d", len(train), tt.wantTrain)
			}
			if len(test) != tt.wantTest {
				t.Errorf("len(test) = %d, want %d", len(test), tt.wantTest)
			}
			// train 紧邻 test，test 到表尾。
			if len(train) > 0 && len(test) > 0 {
				if train[len(train)-1] != txns[tt.n-tt.factor-1] {
					t.Errorf("train 末行不紧邻 test")
				}
				if test[len(test)-1] != txns[tt.n-1] {
					t.Errorf("test 末行不是表尾")
				}
			}
		})
	}
}
