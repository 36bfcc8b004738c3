// Package feature 给标注样本补充模型特征。
package feature

import (
	"context"
	"fmt"

	"github.com/rushteam/recdata/core"
	"github.com/rushteam/recdata/feast"
	"github.com/rushteam/recdata/pipeline"
	"github.com/rushteam/recdata/pkg/conv"
)

// DefaultBatchSize 是单次特征请求的实体行数上限。
const DefaultBatchSize = 100

// EnrichNode 是特征注入节点：从 Feast 在线存储按实体批量拉取用户/物品
// 特征，写入 Dataset.Labeled 各行的 Features。
//
// 样本表里同一个用户/物品会出现多次，拉取按去重后的实体进行，再回填到
// 每一行；数值特征才会进入 Features（字符串等非数值特征被跳过）。
//
// Client 为 nil 或两类特征都未配置时，节点是 no-op（链路可以带着它跑
// 在没有 Feast 的环境里）。
type EnrichNode struct {
	// Client Feast 客户端
	Client feast.Client

	// Project Feast 项目名称
	Project string

	// CustomerFeatures 用户侧特征引用，例如 "customer_stats:age_bucket"
	CustomerFeatures []string

	// ArticleFeatures 物品侧特征引用，例如 "article_stats:ctr"
	ArticleFeatures []string

	// CustomerEntityKey 用户实体 key；为空使用 "customer_id"
	CustomerEntityKey string

	// ArticleEntityKey 物品实体 key；为空使用 "article_id"
	ArticleEntityKey string

	// BatchSize 单次请求的实体行数；<= 0 使用 DefaultBatchSize
	BatchSize int
}

func (n *EnrichNode) Name() string {
	return "feature.enrich"
}

func (n *EnrichNode) Kind() pipeline.Kind {
	return pipeline.KindEnrich
}

func (n *EnrichNode) Process(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	if n.Client == nil || len(ds.Labeled) == 0 {
		return ds, nil
	}
	if len(n.CustomerFeatures) == 0 && len(n.ArticleFeatures) == 0 {
		return ds, nil
	}

	var customerFeatures, articleFeatures map[string]map[string]float64
	var err error

	if len(n.CustomerFeatures) > 0 {
		key := n.CustomerEntityKey
		if key == "" {
			key = "customer_id"
		}
		ids := distinctCustomers(ds.Labeled)
		customerFeatures, err = n.fetch(ctx, n.CustomerFeatures, key, ids)
		if err != nil {
			return nil, fmt.Errorf("enrich customers: %w", err)
		}
	}
	if len(n.ArticleFeatures) > 0 {
		key := n.ArticleEntityKey
		if key == "" {
			key = "article_id"
		}
		ids := distinctArticles(ds.Labeled)
		articleFeatures, err = n.fetch(ctx, n.ArticleFeatures, key, ids)
		if err != nil {
			return nil, fmt.Errorf("enrich articles: %w", err)
		}
	}

	for i := range ds.Labeled {
		row := &ds.Labeled[i]
		merge(row, customerFeatures[row.CustomerID])
		merge(row, articleFeatures[row.ArticleID])
	}

	ds.PutMeta("enrich.customer_features", len(n.CustomerFeatures))
	ds.PutMeta("enrich.article_features", len(n.ArticleFeatures))
	return ds, nil
}

// fetch 按实体 ID 去重批量拉取特征，返回 id → 特征名 → 数值。
func (n *EnrichNode) fetch(ctx context.Context, features []string, entityKey string, ids []string) (map[string]map[string]float64, error) {
	batch := n.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	out := make(map[string]map[string]float64, len(ids))
	for lo := 0; lo < len(ids); lo += batch {
		hi := lo + batch
		if hi > len(ids) {
			hi = len(ids)
		}

		entityRows := make([]map[string]interface{}, 0, hi-lo)
		for _, id := range ids[lo:hi] {
			entityRows = append(entityRows, map[string]interface{}{entityKey: id})
		}

		resp, err := n.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
			Features:   features,
			EntityRows: entityRows,
			Project:    n.Project,
		})
		if err != nil {
			return nil, err
		}

		for i, fv := range resp.FeatureVectors {
			id := ids[lo+i]
			values := make(map[string]float64, len(fv.Values))
			for name, v := range fv.Values {
				if f, ok := conv.ToFloat64(v); ok {
					values[name] = f
				}
			}
			out[id] = values
		}
	}
	return out, nil
}

func merge(row *core.LabeledRow, values map[string]float64) {
	if len(values) == 0 {
		return
	}
	if row.Features == nil {
		row.Features = make(map[string]float64, len(values))
	}
	for k, v := range values {
		row.Features[k] = v
	}
}

func distinctCustomers(rows []core.LabeledRow) []string {
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0)
	for _, r := range rows {
		if _, ok := seen[r.CustomerID]; ok {
			continue
		}
		seen[r.CustomerID] = struct{}{}
		out = append(out, r.CustomerID)
	}
	return out
}

func distinctArticles(rows []core.LabeledRow) []string {
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0)
	for _, r := range rows {
		if _, ok := seen[r.ArticleID]; ok {
			continue
		}
		seen[r.ArticleID] = struct{}{}
		out = append(out, r.ArticleID)
	}
	return out
}

var _ pipeline.Node = (*EnrichNode)(nil)
