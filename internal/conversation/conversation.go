// 包 conversation 提供对话消息的数据来源：文件（JSON/YAML）或内置示例。
package conversation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"go-convo-scout/internal/model"
)

//go:embed sample.json
var sampleJSON []byte

// entry 兼容两种字段命名：role/text 与 type/message（早期导出格式）。
type entry struct {
	Role    string `json:"role" yaml:"role"`
	Type    string `json:"type" yaml:"type"`
	Text    string `json:"text" yaml:"text"`
	Message string `json:"message" yaml:"message"`
}

// Load 按扩展名解析 .json / .yaml / .yml 文件。
func Load(path string) ([]model.Message, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read messages %s: %w", path, err)
	}
	var entries []entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &entries)
	case ".json":
		err = json.Unmarshal(b, &entries)
	default:
		return nil, fmt.Errorf("unsupported messages file %s (want .json/.yaml)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("decode messages %s: %w", path, err)
	}
	return toMessages(entries)
}

// Sample 返回内置示例对话（7 轮问答）。
func Sample() []model.Message {
	var entries []entry
	if err := json.Unmarshal(sampleJSON, &entries); err != nil {
		panic(fmt.Sprintf("embedded sample: %v", err))
	}
	msgs, err := toMessages(entries)
	if err != nil {
		panic(fmt.Sprintf("embedded sample: %v", err))
	}
	return msgs
}

func toMessages(entries []entry) ([]model.Message, error) {
	out := make([]model.Message, 0, len(entries))
	for i, e := range entries {
		raw := e.Role
		if raw == "" {
			raw = e.Type
		}
		role, err := model.ParseRole(raw)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		text := e.Text
		if text == "" {
			text = e.Message
		}
		out = append(out, model.Message{Role: role, Text: text})
	}
	return out, nil
}
