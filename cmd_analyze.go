package main

import (
	"github.com/spf13/cobra"

	"go-convo-scout/internal/analyzer"
	"go-convo-scout/internal/charts"
	"go-convo-scout/internal/conversation"
	"go-convo-scout/internal/logx"
	"go-convo-scout/internal/model"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		messagesPath string
		topN         int
		chartsDir    string
		noCharts     bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "统计对话消息并渲染图表",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ac := a.cfg.Analyzer
			if messagesPath == "" {
				messagesPath = ac.MessagesPath
			}
			if topN <= 0 {
				topN = ac.TopKeywords
			}
			if chartsDir == "" {
				chartsDir = ac.ChartsDir
			}

			var msgs []model.Message
			if messagesPath == "" {
				msgs = conversation.Sample()
				logx.Infof("使用内置示例对话：%d 条消息", len(msgs))
			} else {
				var err error
				if msgs, err = conversation.Load(messagesPath); err != nil {
					return err
				}
				logx.Infof("已加载 %s：%d 条消息", messagesPath, len(msgs))
			}

			var stop analyzer.StopWords
			if len(ac.StopWords) > 0 {
				stop = analyzer.NewStopWords(ac.StopWords...)
			}
			an := analyzer.New(msgs)
			if err := an.Report(cmd.OutOrStdout(), topN, stop); err != nil {
				return err
			}
			if noCharts {
				return nil
			}
			paths, err := charts.Render(chartsDir, charts.Input{
				Messages: an.MessageCount(),
				Words:    an.WordCount(),
				Averages: an.AverageWords(),
				Keywords: an.TopKeywords(topN, stop),
			})
			if err != nil {
				return err
			}
			for _, p := range paths {
				logx.Infof("已生成图表：%s", p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&messagesPath, "messages", "", "messages file (.json/.yaml); built-in sample when empty")
	cmd.Flags().IntVar(&topN, "top", 0, "number of keywords to report")
	cmd.Flags().StringVar(&chartsDir, "charts-dir", "", "directory for chart html files")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "print the report only")
	return cmd
}
