package analyzer

import "strings"

// StopWords 为停用词集合。nil 表示"使用默认集合"，空集合表示不过滤。
type StopWords map[string]struct{}

var defaultStopWords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "is", "are", "was", "were", "be", "been", "being", "have", "has",
	"had", "do", "does", "did", "will", "would", "could", "should", "may",
	"might", "can", "i", "you", "he", "she", "it", "we", "they", "what",
	"which", "who", "when", "where", "why", "how", "all", "each", "every",
}

// NewStopWords 以给定词构造集合（统一转小写）。
func NewStopWords(words ...string) StopWords {
	s := make(StopWords, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			s[w] = struct{}{}
		}
	}
	return s
}

// DefaultStopWords 返回内置常用英文虚词集合的新副本。
func DefaultStopWords() StopWords { return NewStopWords(defaultStopWords...) }

func (s StopWords) Has(w string) bool {
	_, ok := s[w]
	return ok
}
