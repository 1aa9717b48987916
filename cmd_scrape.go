package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"go-convo-scout/internal/export"
	"go-convo-scout/internal/fetch"
	"go-convo-scout/internal/logx"
	"go-convo-scout/internal/scout"
	"go-convo-scout/internal/store"
)

func newScrapeCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "抓取匹配关键词的 Reddit 帖子并导出 JSON",
		Long:  "抓取匹配关键词的 Reddit 帖子并导出 JSON。\n" +
			"未找到 settings.yaml 时默认 SIMPLE_MODE=true，只写输出文件；" +
			"配置文件中 SIMPLE_MODE 为 false 时同时写入 SQLite 历史库（DATABASE.DSN）。",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if output == "" {
				output = cfg.OutputPath
			}
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cl, err := fetch.New(fetch.Options{
				ProxyHTTP:  cfg.Proxy.HTTP,
				ProxyHTTPS: cfg.Proxy.HTTPS,
				Timeout:    cfg.Timeout(),
				Retry:      cfg.Retry,
			})
			if err != nil {
				return fmt.Errorf("http client: %w", err)
			}

			// 极简模式不打开数据库；正常模式打开并按需重置
			var st *store.SQLite
			if !cfg.SimpleMode {
				if st, err = store.OpenSQLite(cfg.Database.DSN); err != nil {
					return fmt.Errorf("open db: %w", err)
				}
				defer st.Close()
				if cfg.ResetOnStart {
					if err := st.Reset(ctx); err != nil {
						logx.Warnf("启动清理数据库失败：%v", err)
					} else {
						logx.Infof("已清理数据库表（runs/posts）")
					}
				}
			}
			if cfg.ResetOnStart {
				if err := os.Remove(output); err == nil {
					logx.Infof("已删除导出文件：%s", output)
				}
			}

			run := store.NewRun()
			logx.Infof("开始抓取：subreddit=%d 排序=%v 格式=%s", len(cfg.Subreddits), cfg.Sorts, cfg.ListingFormat)
			res := scout.New(cl, scout.OptionsFromConfig(cfg, a.rules)).Gather(ctx)
			run.Failures = len(res.Failures)
			if run.Failures > 0 {
				logx.Warnf("共有 %d 个请求失败", run.Failures)
			}

			if _, err := export.Write(cmd.OutOrStdout(), res.Posts, output); err != nil {
				return err
			}

			if st != nil {
				if err := st.SaveRun(ctx, run, res.Posts); err != nil {
					logx.Warnf("写入历史失败：%v", err)
				}
				if err := st.CleanOldPosts(ctx, cfg.OutdateClean); err != nil {
					logx.Warnf("清理过期帖子失败：%v", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output json path (overrides OUTPUT_PATH)")
	return cmd
}
