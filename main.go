// 命令行入口：
// - analyze：对话统计（消息数/词数/关键词）并渲染图表
// - scrape：按关键词抓取 Reddit 帖子并导出 JSON（非极简模式同时写入历史库）
// - history：查看历史库统计与已保存帖子
// 两个工具相互独立，共用 settings.yaml / rules.yaml 与日志初始化。
package main

import (
	"os"

	"github.com/spf13/cobra"

	"go-convo-scout/internal/config"
	"go-convo-scout/internal/logx"
	"go-convo-scout/internal/rules"
)

// app 为各子命令共享的运行时依赖，由 PersistentPreRunE 填充。
type app struct {
	configPath string
	rulesPath  string

	cfg   *config.Config
	rules *rules.Rules
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "convo-scout",
		Short:         "对话分析与 Reddit 关键词帖子抓取",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "settings.yaml", "path to settings.yaml")
	root.PersistentFlags().StringVar(&a.rulesPath, "rules", "rules.yaml", "path to rules.yaml (optional)")
	root.AddCommand(newAnalyzeCmd(a), newScrapeCmd(a), newHistoryCmd(a))
	return root
}

// load 加载配置与规则并初始化日志。
func (a *app) load() error {
	cfg, found, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	logx.Init(logx.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Locale: cfg.LogLocale,
		Color:  cfg.LogColor,
	})
	if !found {
		logx.Infof("未找到配置文件 %s，使用默认配置", a.configPath)
	}
	if a.rulesPath != "" {
		if r, err := rules.Load(a.rulesPath); err == nil {
			a.rules = r
		} else if _, statErr := os.Stat(a.rulesPath); statErr == nil {
			return err
		} else {
			logx.Debugf("未加载规则文件：%v", err)
		}
	}
	return nil
}
