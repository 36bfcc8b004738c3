package core

// Transaction 是交易日志中的一行交互记录。
// CustomerID 与 ArticleID 是不透明的业务标识（不要求是数字）。
// 行在表中的位置即时间顺序：表由调用方按时间升序给出，位置越靠后越新。
type Transaction struct {
	CustomerID string
	ArticleID  string
}

// LabeledRow 是带标签的交互样本，用于训练二分类交互模型。
//   - Label=1：训练集中真实发生的交互（正样本）
//   - Label=0：负采样合成的交互（负样本）
//
// Features 由特征注入阶段（feature.EnrichNode）填充，可为 nil。
type LabeledRow struct {
	CustomerID string
	ArticleID  string
	Label      int
	Features   map[string]float64
}

// Dataset 是数据准备链路中流转的统一承载结构。
// 各个 Node 读取自己需要的字段、写入自己产出的字段：
//
//	ingest  → Transactions
//	filter  → Transactions（过滤后）
//	split   → Train / Test
//	label   → Labeled
//	enrich  → Labeled（补充 Features）
//	export  → 外部存储
//
// Meta 用于透传各阶段的统计与说明（行数、过滤数、窗口位置等），
// 方便 explain / 观测，语义由各 Node 自定义。
type Dataset struct {
	Transactions []Transaction
	Train        []Transaction
	Test         []Transaction
	Labeled      []LabeledRow
	Meta         map[string]any
}

// NewDataset 从一张按时间升序排列的交易表构建 Dataset。
func NewDataset(txns []Transaction) *Dataset {
	return &Dataset{
		Transactions: txns,
		Meta:         make(map[string]any),
	}
}

// PutMeta 写入一条阶段元信息；Meta 为 nil 时自动初始化。
func (d *Dataset) PutMeta(key string, value any) {
	if d.Meta == nil {
		d.Meta = make(map[string]any)
	}
	d.Meta[key] = value
}

// CustomerSet 返回表中出现过的全部 CustomerID 集合。
func CustomerSet(txns []Transaction) map[string]struct{} {
	set := make(map[string]struct{}, len(txns))
	for _, t := range txns {
		set[t.CustomerID] = struct{}{}
	}
	return set
}

// ArticleSet 返回表中出现过的全部 ArticleID 集合。
func ArticleSet(txns []Transaction) map[string]struct{} {
	set := make(map[string]struct{}, len(txns))
	for _, t := range txns {
		set[t.ArticleID] = struct{}{}
	}
	return set
}
