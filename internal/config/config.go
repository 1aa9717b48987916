// 包 config 负责加载与校验应用配置（settings.yaml），
// 对外提供结构体 Config 及默认值/合法性校验。
// 配置文件不存在时直接使用默认值，保证开箱即用。
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// 抓取相关默认值。
const (
	DefaultMaxPerSubreddit = 3
	DefaultMaxTotal        = 3
	DefaultBodyMaxChars    = 1000
	DefaultListingLimit    = 100
	DefaultTimeWindow      = "week"
	DefaultSiteOrigin      = "https://reddit.com"
	DefaultAPIOrigin       = "https://www.reddit.com"
	DefaultOutputPath      = "reddit_posts.json"
	DefaultRequestTimeout  = 10
)

// DefaultSorts 为默认的列表排序顺序（先热门，再最新，再一周内最高分）。
var DefaultSorts = []string{"hot", "new", "top"}

// DefaultKeywords 为默认匹配关键词。
var DefaultKeywords = []string{"limit", "pricing", "error", "complaint", "bug", "rate limit", "pay", "cost"}

type Config struct {
	Subreddits      []Subreddit `yaml:"SUBREDDITS"`
	Keywords        []string    `yaml:"KEYWORDS"`
	Sorts           []string    `yaml:"SORTS"`
	TimeWindow      string      `yaml:"TIME_WINDOW"`
	ListingLimit    int         `yaml:"LISTING_LIMIT"`
	ListingFormat   string      `yaml:"LISTING_FORMAT"` // json|rss
	SiteOrigin      string      `yaml:"SITE_ORIGIN"`
	APIOrigin       string      `yaml:"API_ORIGIN"`
	MaxPerSubreddit int         `yaml:"MAX_PER_SUBREDDIT"`
	MaxTotal        int         `yaml:"MAX_TOTAL"`
	BodyMaxChars    int         `yaml:"BODY_MAX_CHARS"`
	OutputPath      string      `yaml:"OUTPUT_PATH"`
	RequestTimeout  int         `yaml:"REQUEST_TIMEOUT"` // 秒
	Retry           int         `yaml:"RETRY"`
	Proxy           Proxy       `yaml:"PROXY"`
	SimpleMode      bool        `yaml:"SIMPLE_MODE"`
	ResetOnStart    bool        `yaml:"RESET_ON_START"`
	OutdateClean    int         `yaml:"OUTDATE_CLEAN"`
	Database        Database    `yaml:"DATABASE"`
	Analyzer        Analyzer    `yaml:"ANALYZER"`
	LogLevel        string      `yaml:"LOG_LEVEL"`
	LogFormat       string      `yaml:"LOG_FORMAT"` // text|json|pretty
	LogLocale       string      `yaml:"LOG_LOCALE"` // zh-CN|en
	LogColor        string      `yaml:"LOG_COLOR"`  // auto|always|never
}

// Subreddit 为一个抓取目标；Preset 指向 rules.yaml 中的关键词预设（可选）。
type Subreddit struct {
	Name   string `yaml:"name"`
	Preset string `yaml:"preset"`
}

// UnmarshalYAML 同时支持 "- ClaudeAI" 与 "- {name: ClaudeAI, preset: pricing}" 两种写法。
func (s *Subreddit) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		s.Name = n.Value
		return nil
	}
	type plain Subreddit
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*s = Subreddit(p)
	return nil
}

type Database struct {
	Type string `yaml:"type"` // sqlite (default)
	DSN  string `yaml:"dsn"`  // ./data.db
}

type Proxy struct {
	HTTP  string `yaml:"http"`
	HTTPS string `yaml:"https"`
}

// Analyzer 为对话分析工具的配置。
type Analyzer struct {
	MessagesPath string   `yaml:"messages_path"` // 为空时使用内置示例对话
	TopKeywords  int      `yaml:"top_keywords"`
	StopWords    []string `yaml:"stop_words"` // 为空时使用内置停用词
	ChartsDir    string   `yaml:"charts_dir"`
}

// Default 返回全部字段取默认值的配置；无配置文件时走极简模式，只写 JSON 输出。
func Default() *Config {
	c := &Config{SimpleMode: true}
	_ = c.Validate()
	return c
}

// Load 从文件读取 YAML 并反序列化为 Config，同时进行基础校验与默认值填充。
// 文件不存在时返回默认配置，found=false。
func Load(path string) (cfg *Config, found bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), false, nil
		}
		return nil, false, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, false, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, false, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, false, fmt.Errorf("validate config: %w", err)
	}
	return &c, true, nil
}

// Validate 负责合法性检查与默认值设置，避免在业务层分散判空逻辑。
func (c *Config) Validate() error {
	if c.MaxPerSubreddit < 0 {
		return errors.New("MAX_PER_SUBREDDIT must be >= 0")
	}
	if c.MaxTotal < 0 {
		return errors.New("MAX_TOTAL must be >= 0")
	}
	if c.OutdateClean < 0 {
		return errors.New("OUTDATE_CLEAN must be >= 0")
	}
	if c.ListingLimit < 0 {
		return errors.New("LISTING_LIMIT must be >= 0")
	}
	if len(c.Subreddits) == 0 {
		c.Subreddits = []Subreddit{{Name: "ClaudeAI"}, {Name: "claudeCode"}}
	}
	for i, s := range c.Subreddits {
		name := strings.TrimPrefix(strings.TrimSpace(s.Name), "r/")
		if name == "" {
			return fmt.Errorf("SUBREDDITS[%d]: name required", i)
		}
		c.Subreddits[i].Name = name
	}
	if len(c.Keywords) == 0 {
		c.Keywords = append([]string(nil), DefaultKeywords...)
	}
	if len(c.Sorts) == 0 {
		c.Sorts = append([]string(nil), DefaultSorts...)
	}
	for _, s := range c.Sorts {
		switch s {
		case "hot", "new", "top", "rising", "controversial":
		default:
			return fmt.Errorf("unsupported sort: %s", s)
		}
	}
	if c.TimeWindow == "" {
		c.TimeWindow = DefaultTimeWindow
	}
	if c.ListingLimit == 0 {
		c.ListingLimit = DefaultListingLimit
	}
	c.ListingFormat = strings.ToLower(strings.TrimSpace(c.ListingFormat))
	if c.ListingFormat == "" {
		c.ListingFormat = "json"
	}
	if c.ListingFormat != "json" && c.ListingFormat != "rss" {
		return fmt.Errorf("unsupported listing format: %s", c.ListingFormat)
	}
	if c.SiteOrigin == "" {
		c.SiteOrigin = DefaultSiteOrigin
	}
	if c.APIOrigin == "" {
		c.APIOrigin = DefaultAPIOrigin
	}
	c.SiteOrigin = strings.TrimRight(c.SiteOrigin, "/")
	c.APIOrigin = strings.TrimRight(c.APIOrigin, "/")
	if c.MaxPerSubreddit == 0 {
		c.MaxPerSubreddit = DefaultMaxPerSubreddit
	}
	if c.MaxTotal == 0 {
		c.MaxTotal = DefaultMaxTotal
	}
	if c.BodyMaxChars <= 0 {
		c.BodyMaxChars = DefaultBodyMaxChars
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.Retry < 0 {
		c.Retry = 0
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}
	if c.Database.Type != "sqlite" {
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "./data.db"
	}
	if c.Analyzer.TopKeywords <= 0 {
		c.Analyzer.TopKeywords = 10
	}
	if c.Analyzer.ChartsDir == "" {
		c.Analyzer.ChartsDir = "charts"
	}
	if c.LogFormat == "" {
		c.LogFormat = "pretty"
	}
	if c.LogLocale == "" {
		c.LogLocale = "zh-CN"
	}
	if c.LogColor == "" {
		c.LogColor = "auto"
	}
	return nil
}

// Timeout 返回单次请求超时。
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
