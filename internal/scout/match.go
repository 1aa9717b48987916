package scout

import (
	"strings"
	"unicode/utf8"

	"go-convo-scout/internal/listing"
	"go-convo-scout/internal/model"
)

// NoBodySentinel 替代链接帖的空正文。
const NoBodySentinel = "[No text content - likely a link post]"

// Matcher 对 "标题 + 空格 + 正文" 做不区分大小写的子串匹配。
type Matcher struct {
	keywords []string
}

func NewMatcher(keywords []string) Matcher {
	m := Matcher{keywords: make([]string, 0, len(keywords))}
	for _, k := range keywords {
		if k = strings.ToLower(k); k != "" {
			m.keywords = append(m.keywords, k)
		}
	}
	return m
}

// Match 任一关键词出现即命中；没有关键词时不命中。
func (m Matcher) Match(title, body string) bool {
	text := strings.ToLower(title + " " + body)
	for _, k := range m.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Shape 将列表条目转为输出记录：正文截断到 maxChars 个字符，空正文替换为占位文本，
// 站内路径拼接 siteOrigin 成绝对地址。
func Shape(subreddit string, it listing.Item, siteOrigin string, maxChars int) model.PostRecord {
	body := it.Body
	if body == "" {
		body = NoBodySentinel
	} else {
		body = truncate(body, maxChars)
	}
	link := it.Permalink
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		link = siteOrigin + link
	}
	return model.PostRecord{
		Subreddit: subreddit,
		Title:     it.Title,
		Body:      body,
		URL:       link,
		PostedAt:  it.Created,
	}
}

func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
