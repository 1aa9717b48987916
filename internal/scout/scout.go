// 包 scout 负责抓取主流程：
// - 逐个 subreddit、逐个排序请求列表端点（串行）
// - 关键词匹配并折叠进 Accumulator，满额提前结束
// - 合并后按全局上限截断
package scout

import (
	"context"
	"fmt"

	"go-convo-scout/internal/config"
	"go-convo-scout/internal/listing"
	"go-convo-scout/internal/logx"
	"go-convo-scout/internal/model"
	"go-convo-scout/internal/rules"
)

// Fetcher 为列表请求所需的最小能力，由 *fetch.Client 实现。
type Fetcher interface {
	GetBody(ctx context.Context, rawURL string) ([]byte, error)
}

// Target 为一个抓取目标及其生效的关键词与正文选择器。
type Target struct {
	Name         string
	Keywords     []string
	BodySelector string
}

// Options 为抓取参数。
type Options struct {
	Targets         []Target
	Sorts           []string
	Limit           int
	Window          string
	Format          listing.Format
	APIOrigin       string
	SiteOrigin      string
	MaxPerSubreddit int
	MaxTotal        int
	BodyMaxChars    int
}

// OptionsFromConfig 由配置与规则生成 Options；subreddit 的 preset 决定关键词与选择器。
func OptionsFromConfig(cfg *config.Config, rl *rules.Rules) Options {
	targets := make([]Target, 0, len(cfg.Subreddits))
	for _, s := range cfg.Subreddits {
		preset, _ := rl.GetPreset(s.Preset)
		targets = append(targets, Target{
			Name:         s.Name,
			Keywords:     preset.KeywordsOr(cfg.Keywords),
			BodySelector: preset.Selector(),
		})
	}
	return Options{
		Targets:         targets,
		Sorts:           cfg.Sorts,
		Limit:           cfg.ListingLimit,
		Window:          cfg.TimeWindow,
		Format:          listing.Format(cfg.ListingFormat),
		APIOrigin:       cfg.APIOrigin,
		SiteOrigin:      cfg.SiteOrigin,
		MaxPerSubreddit: cfg.MaxPerSubreddit,
		MaxTotal:        cfg.MaxTotal,
		BodyMaxChars:    cfg.BodyMaxChars,
	}
}

// Result 为一轮抓取的结果。Failures 记录所有失败的请求。
type Result struct {
	Posts    []model.PostRecord
	Failures []Outcome
}

// Scout 串行执行抓取；不持有跨次运行的状态。
type Scout struct {
	fetch Fetcher
	opts  Options
}

func New(f Fetcher, opts Options) *Scout {
	if opts.Format == "" {
		opts.Format = listing.FormatJSON
	}
	return &Scout{fetch: f, opts: opts}
}

// Gather 依次抓取全部目标，合并后按 MaxTotal 截断。
func (s *Scout) Gather(ctx context.Context) Result {
	var res Result
	for _, t := range s.opts.Targets {
		posts, failed := s.FetchSubreddit(ctx, t)
		res.Posts = append(res.Posts, posts...)
		res.Failures = append(res.Failures, failed...)
	}
	res.Posts = CapTotal(res.Posts, s.opts.MaxTotal)
	return res
}

// FetchSubreddit 按排序顺序请求单个 subreddit，收满 MaxPerSubreddit 条即停止后续请求。
// 单个请求失败只记录并跳过，不影响其余排序。
func (s *Scout) FetchSubreddit(ctx context.Context, t Target) ([]model.PostRecord, []Outcome) {
	m := NewMatcher(t.Keywords)
	shape := func(it listing.Item) model.PostRecord {
		return Shape(t.Name, it, s.opts.SiteOrigin, s.opts.BodyMaxChars)
	}
	acc := NewAccumulator(s.opts.MaxPerSubreddit)
	var failed []Outcome
	for _, sort := range s.opts.Sorts {
		if acc.Full() {
			break
		}
		o := s.request(ctx, t, sort)
		if !o.OK() {
			logx.Warnf("请求失败：r/%s/%s 错误=%v", t.Name, sort, o.Err)
			failed = append(failed, o)
			continue
		}
		logx.Debugf("r/%s/%s 返回 %d 条", t.Name, sort, len(o.Items))
		acc = acc.Absorb(o, m, shape)
	}
	logx.Infof("r/%s 匹配到 %d 条帖子", t.Name, len(acc.Posts))
	return acc.Posts, failed
}

// request 发起单次列表请求并解码，任何错误都转为失败结果。
func (s *Scout) request(ctx context.Context, t Target, sort string) Outcome {
	o := Outcome{Subreddit: t.Name, Sort: sort}
	req := listing.Request{
		Origin:    s.opts.APIOrigin,
		Subreddit: t.Name,
		Sort:      sort,
		Limit:     s.opts.Limit,
		Window:    s.opts.Window,
		Format:    s.opts.Format,
	}
	u := req.URL()
	logx.Debugf("请求列表：%s", u)
	body, err := s.fetch.GetBody(ctx, u)
	if err != nil {
		o.Err = fmt.Errorf("GET %s: %w", u, err)
		return o
	}
	if s.opts.Format == listing.FormatRSS {
		o.Items, o.Err = listing.DecodeRSS(body, t.BodySelector)
	} else {
		o.Items, o.Err = listing.DecodeJSON(body)
	}
	return o
}
