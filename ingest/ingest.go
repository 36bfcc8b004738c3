// Package ingest 把磁盘上的原始 CSV 数据装载进内存：
// 用户表（customers.csv）、物品表（articles.csv）和按时间升序排列的
// 交易日志（transactions_train.csv）。
//
// 交易日志只抽取 customer_id / article_id 两列，行的文件顺序被原样
// 保留——它就是后续切分阶段依赖的时间顺序。
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/recdata/core"
)

// 数据目录下的默认文件名（与 H&M 交易数据集的布局一致）。
const (
	CustomersFile    = "customers.csv"
	ArticlesFile     = "articles.csv"
	TransactionsFile = "transactions_train.csv"
)

// 交易日志必须包含的列。
const (
	ColumnCustomerID = "customer_id"
	ColumnArticleID  = "article_id"
)

// Frame 是一张轻量的列名 + 行的表，承载用户/物品等只透传不解析的数据。
type Frame struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex 返回列名对应的下标，不存在时返回 -1。
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Data 是一次 ReadData 的产出。
type Data struct {
	Customers    *Frame
	Articles     *Frame
	Transactions []core.Transaction
}

// ReadData 从数据目录并发装载三张表。任何一张表装载失败都会使整个
// 调用失败（errgroup 会取消其余装载）。
func ReadData(ctx context.Context, dir string) (*Data, error) {
	var data Data

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		frame, err := ReadFrame(ctx, filepath.Join(dir, CustomersFile))
		if err != nil {
			return err
		}
		data.Customers = frame
		return nil
	})
	eg.Go(func() error {
		frame, err := ReadFrame(ctx, filepath.Join(dir, ArticlesFile))
		if err != nil {
			return err
		}
		data.Articles = frame
		return nil
	})
	eg.Go(func() error {
		txns, err := ReadTransactions(ctx, filepath.Join(dir, TransactionsFile))
		if err != nil {
			return err
		}
		data.Transactions = txns
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// ReadFrame 装载一个带表头的 CSV 文件。
func ReadFrame(ctx context.Context, path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = false

	header, err := r.Read()
	if err != nil {
		return nil, emptyOrBroken(path, err)
	}

	frame := &Frame{Columns: header}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read %s: %w", path, err)
		}
		frame.Rows = append(frame.Rows, record)
	}
	return frame, nil
}

// ReadTransactions 装载交易日志，抽取 customer_id / article_id 两列，
// 保留文件行顺序。缺列视为输入无效。
func ReadTransactions(ctx context.Context, path string) ([]core.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, emptyOrBroken(path, err)
	}

	customerIdx, articleIdx := -1, -1
	for i, c := range header {
		switch c {
		case ColumnCustomerID:
			customerIdx = i
		case ColumnArticleID:
			articleIdx = i
		}
	}
	if customerIdx < 0 || articleIdx < 0 {
		return nil, core.NewDomainError(
			core.ModuleIngest,
			core.ErrorCodeInvalidInput,
			fmt.Sprintf("ingest: %s must have %s and %s columns", path, ColumnCustomerID, ColumnArticleID),
		)
	}

	var txns []core.Transaction
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read %s: %w", path, err)
		}
		txns = append(txns, core.Transaction{
			CustomerID: record[customerIdx],
			ArticleID:  record[articleIdx],
		})
	}
	return txns, nil
}

func emptyOrBroken(path string, err error) error {
	if err == io.EOF {
		return core.NewDomainError(
			core.ModuleIngest,
			core.ErrorCodeInvalidInput,
			fmt.Sprintf("ingest: %s is empty", path),
		)
	}
	return fmt.Errorf("ingest: read header of %s: %w", path, err)
}
