// 包 analyzer 对一组对话消息做纯计算：消息数、词数、平均长度与高频关键词。
// 所有方法无副作用，可重复调用。
package analyzer

import (
	"sort"
	"strings"
	"unicode"

	"go-convo-scout/internal/model"
)

// RoleCounts 为按角色统计的整数值。
type RoleCounts struct {
	User      int `json:"user"`
	Assistant int `json:"assistant"`
}

// Total 返回两个角色之和。
func (c RoleCounts) Total() int { return c.User + c.Assistant }

// RoleAverages 为按角色的平均每条消息词数。
type RoleAverages struct {
	User      float64 `json:"user"`
	Assistant float64 `json:"assistant"`
}

// Analyzer 持有按角色拆分后的消息文本。
type Analyzer struct {
	user      []string
	assistant []string
}

// New 以注入的消息列表构造分析器。
func New(messages []model.Message) *Analyzer {
	a := &Analyzer{}
	for _, m := range messages {
		if m.Role == model.RoleUser {
			a.user = append(a.user, m.Text)
		} else {
			a.assistant = append(a.assistant, m.Text)
		}
	}
	return a
}

// MessageCount 返回各角色消息条数。
func (a *Analyzer) MessageCount() RoleCounts {
	return RoleCounts{User: len(a.user), Assistant: len(a.assistant)}
}

// WordCount 返回各角色按空白切分的词数之和。
func (a *Analyzer) WordCount() RoleCounts {
	return RoleCounts{User: countWords(a.user), Assistant: countWords(a.assistant)}
}

// AverageWords 返回各角色平均每条消息词数；某角色无消息时记为 0。
func (a *Analyzer) AverageWords() RoleAverages {
	wc, mc := a.WordCount(), a.MessageCount()
	return RoleAverages{User: ratio(wc.User, mc.User), Assistant: ratio(wc.Assistant, mc.Assistant)}
}

// TopKeywords 返回出现次数最多的前 k 个关键词：
// 全部文本转小写后只取纯 a-z 单词，丢弃长度 ≤ 2 与停用词；
// 次数降序，次数相同按首次出现先后。stop 为 nil 时使用 DefaultStopWords。
func (a *Analyzer) TopKeywords(k int, stop StopWords) []model.KeywordCount {
	if k <= 0 {
		return []model.KeywordCount{}
	}
	if stop == nil {
		stop = DefaultStopWords()
	}
	counts := map[string]int{}
	var order []string
	for _, text := range a.texts() {
		for _, w := range tokens(strings.ToLower(text)) {
			if len(w) <= 2 || stop.Has(w) {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}
	out := make([]model.KeywordCount, 0, len(order))
	for _, w := range order {
		out = append(out, model.KeywordCount{Word: w, Count: counts[w]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// texts 先用户后助手，保持加载顺序。
func (a *Analyzer) texts() []string {
	all := make([]string, 0, len(a.user)+len(a.assistant))
	all = append(all, a.user...)
	return append(all, a.assistant...)
}

// tokens 按"单词字符"（字母/各类数字字符/下划线）切出最长连续片段，只保留完全由 a-z 组成的片段。
// "i7"、"sql3"、"edge_case" 这类片段整体丢弃。
func tokens(s string) []string {
	var out []string
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		if w := s[start:end]; isLowerASCII(w) {
			out = append(out, w)
		}
		start = -1
	}
	for i, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(s))
	return out
}

func isLowerASCII(w string) bool {
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return w != ""
}

func countWords(texts []string) int {
	n := 0
	for _, t := range texts {
		n += len(strings.Fields(t))
	}
	return n
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
