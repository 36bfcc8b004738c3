package pipeline

import (
	"context"

	"github.com/rushteam/recdata/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindIngest Kind = "ingest" // 读取阶段：把原始交易日志装载进 Dataset
	KindFilter Kind = "filter" // 清洗阶段：剔除不符合约束的交易行
	KindSplit  Kind = "split"  // 切分阶段：产出 train/test 窗口
	KindLabel  Kind = "label"  // 标注阶段：产出正负均衡的样本表
	KindEnrich Kind = "enrich" // 特征阶段：为样本补充模型特征
	KindExport Kind = "export" // 导出阶段：把产出写入外部存储
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 Dataset -> 输出 Dataset"的形态，每个阶段读取自己关心的
// 字段、写入自己的产出，方便 Filter 清洗、Split 切分、Label 标注等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(ctx context.Context, ds *core.Dataset) (*core.Dataset, error)
}
