// Package builders 注册内置 Node 的配置构建器。
// 入口处 import _ "github.com/rushteam/recdata/config/builders" 即可启用。
package builders

import (
	"fmt"

	"github.com/rushteam/recdata/config"
	"github.com/rushteam/recdata/export"
	"github.com/rushteam/recdata/filter"
	"github.com/rushteam/recdata/ingest"
	"github.com/rushteam/recdata/label"
	"github.com/rushteam/recdata/pipeline"
	"github.com/rushteam/recdata/pkg/conv"
	"github.com/rushteam/recdata/split"
	"github.com/rushteam/recdata/store"
)

func init() {
	config.Register("ingest.transactions", BuildIngestNode)
	config.Register("filter.expr", BuildFilterNode)
	config.Register("split.simple", BuildSimpleSplitNode)
	config.Register("split.no_coldstart", BuildNoColdStartSplitNode)
	config.Register("label.balanced", BuildLabelNode)
	config.Register("export.store", BuildExportNode)
}

func BuildIngestNode(cfg map[string]interface{}) (pipeline.Node, error) {
	path := conv.ConfigGet(cfg, "path", "")
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return &ingest.Node{Path: path}, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	return filter.NewExprNode(expr)
}

func BuildSimpleSplitNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &split.Node{
		Factor:   int(conv.ConfigGetInt64(cfg, "factor", 0)),
		Strategy: split.StrategySimple,
	}, nil
}

func BuildNoColdStartSplitNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &split.Node{
		Factor:   int(conv.ConfigGetInt64(cfg, "factor", 0)),
		Strategy: split.StrategyNoColdStart,
	}, nil
}

func BuildLabelNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &label.Node{
		Seed: conv.ConfigGetInt64(cfg, "seed", 0),
	}, nil
}

func BuildExportNode(cfg map[string]interface{}) (pipeline.Node, error) {
	node := &export.Node{
		DatasetName: conv.ConfigGet(cfg, "dataset", ""),
		Prefix:      conv.ConfigGet(cfg, "prefix", ""),
		ChunkSize:   int(conv.ConfigGetInt64(cfg, "chunk_size", 0)),
		TTL:         int(conv.ConfigGetInt64(cfg, "ttl", 0)),
	}

	switch backend := conv.ConfigGet(cfg, "store", "memory"); backend {
	case "memory":
		node.Store = store.NewMemoryStore()
	case "redis":
		addr := conv.ConfigGet(cfg, "addr", "")
		if addr == "" {
			return nil, fmt.Errorf("addr is required for redis store")
		}
		s, err := store.NewRedisStore(addr, int(conv.ConfigGetInt64(cfg, "db", 0)))
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		node.Store = s
	default:
		return nil, fmt.Errorf("unknown store backend: %s", backend)
	}

	return node, nil
}
