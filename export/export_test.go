package export

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rushteam/recdata/core"
	"github.com/rushteam/recdata/store"
)

func testDataset() *core.Dataset {
	ds := core.NewDataset(nil)
	for i := 0; i < 5; i++ {
		ds.Train = append(ds.Train, core.Transaction{CustomerID: "c1", ArticleID: "a1"})
	}
	ds.Test = []core.Transaction{{CustomerID: "c1", ArticleID: "a2"}}
	ds.Labeled = []core.LabeledRow{
		{CustomerID: "c1", ArticleID: "a1", Label: 1},
		{CustomerID: "c1", ArticleID: "a3", Label: 0},
	}
	return ds
}

func TestNode_ExportsTables(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	node := &Node{Store: s, DatasetName: "hm", ChunkSize: 2}
	if _, err := node.Process(ctx, testDataset()); err != nil {
		t.Fatalf("Process: %v", err)
	}

	// train 5 行、chunk 2 行 → 3 个分块。
	meta, err := s.HGetAll(ctx, "recdata:hm:train:meta")
	if err != nil {
		t.Fatalf("HGetAll: %v", err)
	}
	if string(meta["rows"]) != "5" {
		t.Errorf("train rows = %s, want 5", meta["rows"])
	}
	if string(meta["chunks"]) != "3" {
		t.Errorf("train chunks = %s, want 3", meta["chunks"])
	}
	if len(meta["exported_at"]) == 0 {
		t.Error("exported_at 缺失")
	}

	// 分块内容可以解回交易行。
	data, err := s.Get(ctx, "recdata:hm:train:chunk:0")
	if err != nil {
		t.Fatalf("Get chunk: %v", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("chunk 不是合法 JSON: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("chunk 行数 = %d, want 2", len(rows))
	}
	if rows[0]["customer_id"] != "c1" {
		t.Errorf("customer_id = %v", rows[0]["customer_id"])
	}

	// labeled 表带 label 字段。
	data, err = s.Get(ctx, "recdata:hm:labeled:chunk:0")
	if err != nil {
		t.Fatalf("Get labeled chunk: %v", err)
	}
	var labeled []map[string]any
	if err := json.Unmarshal(data, &labeled); err != nil {
		t.Fatal(err)
	}
	if labeled[0]["label"] != float64(1) {
		t.Errorf("label = %v, want 1", labeled[0]["label"])
	}
}

func TestNode_SkipsEmptyTables(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	ds := core.NewDataset(nil)
	ds.Labeled = []core.LabeledRow{{CustomerID: "c1", ArticleID: "a1", Label: 1}}

	node := &Node{Store: s}
	if _, err := node.Process(ctx, ds); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if _, err := s.Get(ctx, "recdata:default:train:chunk:0"); !core.IsStoreNotFound(err) {
		t.Error("空 train 表不应写入任何分块")
	}
	if _, err := s.Get(ctx, "recdata:default:labeled:chunk:0"); err != nil {
		t.Errorf("labeled 分块缺失: %v", err)
	}
}

func TestNode_RequiresStore(t *testing.T) {
	node := &Node{}
	if _, err := node.Process(context.Background(), testDataset()); !core.IsInvalidInput(err) {
		t.Fatalf("缺少 Store 应返回 INVALID_INPUT，得到 %v", err)
	}
}
