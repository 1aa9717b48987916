package listing

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// DecodeRSS 解析 Reddit 的 Atom/RSS 列表；bodySelector 为正文选择器表达式。
// 链接帖的条目 HTML 中没有正文容器，Body 为空。
func DecodeRSS(body []byte, bodySelector string) ([]Item, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing feed: %w", err)
	}
	items := make([]Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		html := it.Content
		if html == "" {
			html = it.Description
		}
		text, err := extractBody(html, bodySelector)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", it.Title, err)
		}
		items = append(items, Item{
			Title:     strings.TrimSpace(it.Title),
			Body:      text,
			Permalink: strings.TrimSpace(it.Link),
			Created:   pickTime(it.PublishedParsed, it.UpdatedParsed),
		})
	}
	return items, nil
}

func extractBody(html, expr string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse entry html: %w", err)
	}
	return getVal(doc.Selection, expr), nil
}

// getVal 解析表达式并支持使用 "||" 作为回退分隔，例如："div.md||.usertext-body||."。
func getVal(scope *goquery.Selection, expr string) string {
	for _, p := range strings.Split(expr, "||") {
		if v := getValSingle(scope, strings.TrimSpace(p)); v != "" {
			return v
		}
	}
	return ""
}

// getValSingle 解析单个表达式：
// - "." 取当前节点文本
// - "sel@attr" / "@attr" 取属性
// - 其他按选择器取首个匹配的文本
func getValSingle(scope *goquery.Selection, expr string) string {
	switch {
	case expr == "":
		return ""
	case expr == ".":
		return strings.TrimSpace(scope.Text())
	}
	if at := strings.Index(expr, "@"); at != -1 {
		sel := strings.TrimSpace(expr[:at])
		attr := strings.TrimSpace(expr[at+1:])
		node := scope
		if sel != "" {
			node = scope.Find(sel).First()
		}
		val, _ := node.Attr(attr)
		return strings.TrimSpace(val)
	}
	node := scope.Find(expr).First()
	if node.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(node.Text())
}

func pickTime(a, b *time.Time) time.Time {
	if a != nil {
		return a.UTC()
	}
	if b != nil {
		return b.UTC()
	}
	return time.Unix(0, 0).UTC()
}
