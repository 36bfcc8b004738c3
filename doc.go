// Package recdata 是一个推荐模型训练数据准备工具包（Recommendation Data Kit）。
//
// 设计要点：
// - Pipeline-first: 数据准备逻辑通过 Node 串联（Filter → Split → Label → Enrich → Export）
// - 无冷启动污染: 切分保证测试集的用户和物品都在训练集中出现过
// - 可复现: 标注阶段的所有随机行为走同一个可注入种子的随机源
// - Node 可扩展: 自定义 Node 即可插拔扩展（本地或外部存储均可）
package recdata

import "github.com/rushteam/recdata/pipeline"

// 轻量 facade：便于用户直接 import "recdata" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindIngest = pipeline.KindIngest
	KindFilter = pipeline.KindFilter
	KindSplit  = pipeline.KindSplit
	KindLabel  = pipeline.KindLabel
	KindEnrich = pipeline.KindEnrich
	KindExport = pipeline.KindExport
)
