package scout

import (
	"go-convo-scout/internal/listing"
	"go-convo-scout/internal/model"
)

// Outcome 为一次 (subreddit, sort) 请求的结果：成功带条目，失败带原因。
type Outcome struct {
	Subreddit string
	Sort      string
	Items     []listing.Item
	Err       error
}

func (o Outcome) OK() bool { return o.Err == nil }

// Accumulator 为单个 subreddit 的折叠状态，按值传递，每次 Absorb 返回新值。
type Accumulator struct {
	Posts []model.PostRecord
	Cap   int
}

func NewAccumulator(limit int) Accumulator {
	return Accumulator{Cap: limit}
}

// Full 为提前结束条件：已收集到 Cap 条。
func (a Accumulator) Full() bool {
	return a.Cap > 0 && len(a.Posts) >= a.Cap
}

// Absorb 依列表顺序吸收命中的条目，满额即停；同一 permalink 只收一次。失败的结果不改变状态。
func (a Accumulator) Absorb(o Outcome, m Matcher, shape func(listing.Item) model.PostRecord) Accumulator {
	if !o.OK() {
		return a
	}
	posts := append([]model.PostRecord(nil), a.Posts...)
	next := Accumulator{Posts: posts, Cap: a.Cap}
	for _, it := range o.Items {
		if next.Full() {
			break
		}
		if !m.Match(it.Title, it.Body) {
			continue
		}
		rec := shape(it)
		// 无 permalink 的条目无法判重，一律保留
		if it.Permalink != "" && next.has(rec.URL) {
			continue
		}
		next.Posts = append(next.Posts, rec)
	}
	return next
}

func (a Accumulator) has(url string) bool {
	for _, p := range a.Posts {
		if p.URL == url {
			return true
		}
	}
	return false
}

// CapTotal 全局上限：保留合并列表的前 n 条（n ≤ 0 表示不限制）。
func CapTotal(posts []model.PostRecord, n int) []model.PostRecord {
	if n > 0 && len(posts) > n {
		return posts[:n]
	}
	return posts
}
