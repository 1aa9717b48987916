// 包 rules 负责加载并提供抓取规则（rules.yaml），
// 以预设名（如 default/pricing）组织关键词列表与 RSS 正文选择器。
package rules

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBodySelector 为 RSS 条目 HTML 中自述正文所在的容器。
const DefaultBodySelector = "div.md"

// Rules 表示全部规则集合：键为预设名，值为具体规则。
type Rules struct {
	Presets map[string]Preset `yaml:",inline"`
}

// Preset 为单个预设：
// - keywords：覆盖 settings.yaml 的 KEYWORDS
// - body_selector：RSS 条目正文的选择器表达式（支持 "sel@attr" 与 "a||b" 回退）
type Preset struct {
	Keywords     []string `yaml:"keywords"`
	BodySelector string   `yaml:"body_selector"`
}

func Load(path string) (*Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules %s: %w", path, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	var r Rules
	if err := yaml.Unmarshal(b, &r.Presets); err != nil {
		return nil, fmt.Errorf("unmarshal rules %s: %w", path, err)
	}
	return &r, nil
}

// GetPreset 按名称获取预设（不区分大小写），若为空或不存在则回退到 "default"。
func (r *Rules) GetPreset(name string) (Preset, bool) {
	if r == nil || len(r.Presets) == 0 {
		return Preset{}, false
	}
	if name == "" {
		name = "default"
	}
	if p, ok := r.Presets[name]; ok {
		return p, true
	}
	lower := strings.ToLower(name)
	for k, v := range r.Presets {
		if strings.ToLower(k) == lower {
			return v, true
		}
	}
	if p, ok := r.Presets["default"]; ok {
		return p, true
	}
	return Preset{}, false
}

// KeywordsOr 返回预设关键词，预设未配置时回退到 fallback。
func (p Preset) KeywordsOr(fallback []string) []string {
	if len(p.Keywords) > 0 {
		return p.Keywords
	}
	return fallback
}

// Selector 返回正文选择器，未配置时为 DefaultBodySelector。
func (p Preset) Selector() string {
	if s := strings.TrimSpace(p.BodySelector); s != "" {
		return s
	}
	return DefaultBodySelector
}
