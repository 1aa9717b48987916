// 包 model 定义两条流水线共用的数据模型（消息/关键词/帖子/统计）。
package model

import (
	"fmt"
	"strings"
	"time"
)

// Role 为消息发送方。
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole 解析角色，"ai" 视为 assistant 的别名。
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "assistant", "ai":
		return RoleAssistant, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Message 为一条对话消息，加载后不再修改。
type Message struct {
	Role Role   `json:"role" yaml:"role"`
	Text string `json:"text" yaml:"text"`
}

// KeywordCount 为关键词及其出现次数（Count ≥ 1）。
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// PostRecord 为匹配到的帖子，创建后不再修改。
type PostRecord struct {
	Subreddit string    `json:"subreddit"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	URL       string    `json:"url"`
	PostedAt  time.Time `json:"posted_at"`
}

// Run 为一次抓取运行的记录。
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Posts     int       `json:"posts"`
	Failures  int       `json:"failures"`
}

// Stats 为历史库统计信息。
type Stats struct {
	RunsTotal  int       `json:"runs_total"`
	PostsTotal int       `json:"posts_total"`
	LastRunAt  time.Time `json:"last_run_at"`
}
