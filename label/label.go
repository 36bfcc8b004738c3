// Package label 从训练交易表生成正负均衡的标注样本表。
//
// 训练二分类交互模型需要成对的正负样本：正样本是真实发生的交互，
// 负样本从"训练集中出现过、但该用户没有交互过"的物品里采样合成。
// 逐正样本采一个负样本（而不是全局采样）把负样本生成成本控制在
// O(正样本数)，同时让类别均衡保持在局部。
package label

import (
	"math/rand"
	"time"

	"github.com/rushteam/recdata/core"
)

// Option 配置一次标注调用。
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithSeed 注入随机种子。相同种子 + 相同输入时，负采样、降采样与最终
// 洗牌的结果完全一致（包括行顺序），用于实验复现与测试。
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand 注入自定义随机源。与 WithSeed 同时使用时后者生效。
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// Balanced 生成 50/50 正负均衡的标注表：
//
//  1. 正样本 = 输入的每一行，Label=1（不去重，交易重复即样本重复）
//  2. 对每个正样本 (u, a)：候选负样本 = 训练集物品全集减去 u 交互过的
//     物品集合；非空则均匀采一个，产出 (u, 候选, Label=0)；为空则跳过
//     （该用户交互过全部物品），此阶段不补偿、不报错
//  3. 若正负数量不等，对较多的一侧均匀无放回降采样至较少一侧的数量
//  4. 拼接后整体均匀洗牌
//
// 对非空输入永不失败；极端情况（没有任何负样本）会把正样本也降采样到
// 零，产出空表而非错误。输入为空时返回空表。
//
// 所有随机行为走同一个随机源（见 WithSeed/WithRand），未注入时用
// 当前时间做种子。
func Balanced(train []core.Transaction, opts ...Option) []core.LabeledRow {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	rng := o.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// 正样本：输入的逐行拷贝。
	pos := make([]core.LabeledRow, 0, len(train))
	for _, t := range train {
		pos = append(pos, core.LabeledRow{
			CustomerID: t.CustomerID,
			ArticleID:  t.ArticleID,
			Label:      1,
		})
	}

	// 用户 → 交互物品集合。
	userArticles := make(map[string]map[string]struct{})
	// 物品全集，按首次出现顺序保存成切片，保证采样顺序与随机源无关的
	// 部分是确定的（map 遍历顺序不进入采样路径）。
	universe := make([]string, 0)
	seenArticle := make(map[string]struct{})

	for _, t := range train {
		set, ok := userArticles[t.CustomerID]
		if !ok {
			set = make(map[string]struct{})
			userArticles[t.CustomerID] = set
		}
		set[t.ArticleID] = struct{}{}

		if _, ok := seenArticle[t.ArticleID]; !ok {
			seenArticle[t.ArticleID] = struct{}{}
			universe = append(universe, t.ArticleID)
		}
	}

	// 逐正样本采一个负样本。
	neg := make([]core.LabeledRow, 0, len(pos))
	candidates := make([]string, 0, len(universe))
	for _, p := range pos {
		interacted := userArticles[p.CustomerID]

		candidates = candidates[:0]
		for _, a := range universe {
			if _, ok := interacted[a]; ok {
				continue
			}
			candidates = append(candidates, a)
		}
		if len(candidates) == 0 {
			// 该用户交互过训练集里的全部物品，放弃这条正样本的负采样。
			continue
		}

		neg = append(neg, core.LabeledRow{
			CustomerID: p.CustomerID,
			ArticleID:  candidates[rng.Intn(len(candidates))],
			Label:      0,
		})
	}

	// 降采样较多的一侧，恢复均衡。
	if len(neg) < len(pos) {
		pos = sample(pos, len(neg), rng)
	} else if len(pos) < len(neg) {
		neg = sample(neg, len(pos), rng)
	}

	out := make([]core.LabeledRow, 0, len(pos)+len(neg))
	out = append(out, pos...)
	out = append(out, neg...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// sample 均匀无放回抽取 n 行。
func sample(rows []core.LabeledRow, n int, rng *rand.Rand) []core.LabeledRow {
	if n >= len(rows) {
		return rows
	}
	perm := rng.Perm(len(rows))
	out := make([]core.LabeledRow, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, rows[idx])
	}
	return out
}
