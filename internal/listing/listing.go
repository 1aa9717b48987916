// 包 listing 负责 Reddit 列表端点：
// - URL：构造 /r/<sub>/<sort>.json 或 /r/<sub>/<sort>/.rss 请求地址
// - DecodeJSON：解析 JSON 列表，字段缺失时取零值
// - DecodeRSS：使用 gofeed 解析 Atom/RSS，正文由 goquery 从条目 HTML 中提取
package listing

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"
)

// Format 为列表响应格式。
type Format string

const (
	FormatJSON Format = "json"
	FormatRSS  Format = "rss"
)

// Item 为解析后的列表条目（供上层转换为 model.PostRecord）。
// Permalink 可能是站内路径（JSON）或绝对地址（RSS）。
type Item struct {
	Title     string
	Body      string
	Permalink string
	Created   time.Time
}

// Request 描述一次列表请求。
type Request struct {
	Origin    string // 如 https://www.reddit.com
	Subreddit string
	Sort      string
	Limit     int
	Window    string // t 参数，如 week
	Format    Format
}

// URL 构造请求地址。
func (r Request) URL() string {
	path := fmt.Sprintf("%s/r/%s/%s.json", r.Origin, url.PathEscape(r.Subreddit), url.PathEscape(r.Sort))
	if r.Format == FormatRSS {
		path = fmt.Sprintf("%s/r/%s/%s/.rss", r.Origin, url.PathEscape(r.Subreddit), url.PathEscape(r.Sort))
	}
	q := url.Values{}
	if r.Limit > 0 {
		q.Set("limit", strconv.Itoa(r.Limit))
	}
	if r.Window != "" {
		q.Set("t", r.Window)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// response 对应 {data:{children:[{data:{...}}]}}。
type response struct {
	Data struct {
		Children []struct {
			Data struct {
				Title      string  `json:"title"`
				Selftext   string  `json:"selftext"`
				Permalink  string  `json:"permalink"`
				CreatedUTC float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// DecodeJSON 解析 JSON 列表。body 不是合法 JSON 时返回错误；结构缺失的部分视为空。
func DecodeJSON(body []byte) ([]Item, error) {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode listing json: %w", err)
	}
	items := make([]Item, 0, len(resp.Data.Children))
	for _, c := range resp.Data.Children {
		d := c.Data
		items = append(items, Item{
			Title:     d.Title,
			Body:      d.Selftext,
			Permalink: d.Permalink,
			Created:   fromEpoch(d.CreatedUTC),
		})
	}
	return items, nil
}

// fromEpoch 将 Unix 秒（可带小数）转为 UTC 时间，秒以下向下取整；缺失（0/NaN/Inf）取纪元时间。
func fromEpoch(sec float64) time.Time {
	if sec == 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return time.Unix(0, 0).UTC()
	}
	return time.Unix(int64(math.Floor(sec)), 0).UTC()
}
