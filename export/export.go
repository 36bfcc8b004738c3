// Package export 把数据准备链路的产出（train/test/labeled 表）写入
// core.KeyValueStore，供下游训练任务读取。
//
// key 约定（prefix 默认 "recdata"）：
//
//	{prefix}:{名称}:{表}:chunk:{i}  — 第 i 个分块，值为 JSON 数组
//	{prefix}:{名称}:{表}:meta       — Hash：rows / chunks / exported_at
//
// 表名為 train / test / labeled。大表按 ChunkSize 行分块写入，
// 避免单个 value 过大。
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/recdata/core"
	"github.com/rushteam/recdata/pipeline"
)

// 表名常量。
const (
	TableTrain   = "train"
	TableTest    = "test"
	TableLabeled = "labeled"
)

// DefaultChunkSize 是每个分块的默认行数。
const DefaultChunkSize = 10000

// txnRow / labeledRow 是落盘时的 JSON 形态（领域类型不带 tag，
// 序列化契约收在 export 内）。
type txnRow struct {
	CustomerID string `json:"customer_id"`
	ArticleID  string `json:"article_id"`
}

type labeledRow struct {
	CustomerID string             `json:"customer_id"`
	ArticleID  string             `json:"article_id"`
	Label      int                `json:"label"`
	Features   map[string]float64 `json:"features,omitempty"`
}

// Node 是导出 Node：把 Dataset 中非空的 Train/Test/Labeled 表写入存储。
// 三张表并发导出；任何一张失败整个导出失败（可能留下部分写入，
// 重跑同名导出会覆盖）。
type Node struct {
	// Store 目标存储（必填）
	Store core.KeyValueStore

	// Name 数据集名称，进入 key；为空使用 "default"
	DatasetName string

	// Prefix key 前缀；为空使用 "recdata"
	Prefix string

	// ChunkSize 每个分块的行数；<= 0 使用 DefaultChunkSize
	ChunkSize int

	// TTL 写入的过期时间（秒）；0 表示不过期
	TTL int
}

func (n *Node) Name() string {
	return "export.store"
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindExport
}

func (n *Node) Process(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	if n.Store == nil {
		return nil, core.NewDomainError(
			core.ModuleStore,
			core.ErrorCodeInvalidInput,
			"export: store is required",
		)
	}

	eg, ctx := errgroup.WithContext(ctx)
	if len(ds.Train) > 0 {
		eg.Go(func() error { return n.exportTxns(ctx, TableTrain, ds.Train) })
	}
	if len(ds.Test) > 0 {
		eg.Go(func() error { return n.exportTxns(ctx, TableTest, ds.Test) })
	}
	if len(ds.Labeled) > 0 {
		eg.Go(func() error { return n.exportLabeled(ctx, ds.Labeled) })
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	ds.PutMeta("export.store", n.Store.Name())
	ds.PutMeta("export.prefix", n.keyPrefix())
	return ds, nil
}

func (n *Node) keyPrefix() string {
	prefix := n.Prefix
	if prefix == "" {
		prefix = "recdata"
	}
	name := n.DatasetName
	if name == "" {
		name = "default"
	}
	return prefix + ":" + name
}

func (n *Node) chunkSize() int {
	if n.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return n.ChunkSize
}

func (n *Node) exportTxns(ctx context.Context, table string, txns []core.Transaction) error {
	rows := make([]txnRow, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, txnRow{CustomerID: t.CustomerID, ArticleID: t.ArticleID})
	}
	return exportChunks(ctx, n, table, len(rows), func(lo, hi int) ([]byte, error) {
		return json.Marshal(rows[lo:hi])
	})
}

func (n *Node) exportLabeled(ctx context.Context, labeled []core.LabeledRow) error {
	rows := make([]labeledRow, 0, len(labeled))
	for _, l := range labeled {
		rows = append(rows, labeledRow{
			CustomerID: l.CustomerID,
			ArticleID:  l.ArticleID,
			Label:      l.Label,
			Features:   l.Features,
		})
	}
	return exportChunks(ctx, n, TableLabeled, len(rows), func(lo, hi int) ([]byte, error) {
		return json.Marshal(rows[lo:hi])
	})
}

// exportChunks 分块编码并批量写入，最后写入 meta Hash。
func exportChunks(ctx context.Context, n *Node, table string, total int, marshal func(lo, hi int) ([]byte, error)) error {
	base := n.keyPrefix() + ":" + table
	size := n.chunkSize()

	chunks := 0
	kvs := make(map[string][]byte)
	for lo := 0; lo < total; lo += size {
		hi := lo + size
		if hi > total {
			hi = total
		}
		data, err := marshal(lo, hi)
		if err != nil {
			return fmt.Errorf("export %s chunk %d: %w", table, chunks, err)
		}
		kvs[fmt.Sprintf("%s:chunk:%d", base, chunks)] = data
		chunks++
	}

	if err := n.Store.BatchSet(ctx, kvs, n.TTL); err != nil {
		return fmt.Errorf("export %s: %w", table, err)
	}

	meta := base + ":meta"
	if err := n.Store.HSet(ctx, meta, "rows", []byte(strconv.Itoa(total))); err != nil {
		return fmt.Errorf("export %s meta: %w", table, err)
	}
	if err := n.Store.HSet(ctx, meta, "chunks", []byte(strconv.Itoa(chunks))); err != nil {
		return fmt.Errorf("export %s meta: %w", table, err)
	}
	if err := n.Store.HSet(ctx, meta, "exported_at", []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
		return fmt.Errorf("export %s meta: %w", table, err)
	}
	return nil
}

var _ pipeline.Node = (*Node)(nil)
