package builders

import (
	"context"
	"fmt"
	"testing"

	"github.com/rushteam/recdata/config"
	"github.com/rushteam/recdata/core"
	"github.com/rushteam/recdata/pipeline"
)

func TestDefaultFactory_BuildsConfiguredPipeline(t *testing.T) {
	var cfg pipeline.Config
	cfg.Pipeline.Name = "test"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "filter.expr", Config: map[string]interface{}{"expr": `row.customer_id == "drop_me"`}},
		{Type: "split.no_coldstart", Config: map[string]interface{}{"factor": 5}},
		{Type: "label.balanced", Config: map[string]interface{}{"seed": 42}},
		{Type: "export.store", Config: map[string]interface{}{"store": "memory", "dataset": "test"}},
	}

	if err := config.ValidatePipelineConfig(&cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig: %v", err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}

	txns := make([]core.Transaction, 0, 40)
	for i := 0; i < 40; i++ {
		txns = append(txns, core.Transaction{
			CustomerID: fmt.Sprintf("c%d", i%4),
			ArticleID:  fmt.Sprintf("a%d", i%6),
		})
	}
	out, err := p.Run(context.Background(), core.NewDataset(txns))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Train) != 25 || len(out.Test) != 5 {
		t.Errorf("train=%d test=%d, want 25/5", len(out.Train), len(out.Test))
	}
	if len(out.Labeled) == 0 {
		t.Error("标注表为空")
	}
}

func TestValidatePipelineConfig_UnknownType(t *testing.T) {
	var cfg pipeline.Config
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "rank.lr"}}

	if err := config.ValidatePipelineConfig(&cfg); err == nil {
		t.Fatal("未注册类型应校验失败")
	}
}

func TestBuildFilterNode_RequiresExpr(t *testing.T) {
	if _, err := BuildFilterNode(map[string]interface{}{}); err == nil {
		t.Fatal("缺少 expr 应报错")
	}
}

func TestBuildIngestNode_RequiresPath(t *testing.T) {
	if _, err := BuildIngestNode(map[string]interface{}{}); err == nil {
		t.Fatal("缺少 path 应报错")
	}
}

func TestBuildExportNode_UnknownBackend(t *testing.T) {
	if _, err := BuildExportNode(map[string]interface{}{"store": "mysql"}); err == nil {
		t.Fatal("未知存储后端应报错")
	}
}
