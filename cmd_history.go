package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-convo-scout/internal/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "查看历史库中的运行统计与帖子",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := store.OpenSQLite(a.cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer st.Close()
			ctx := cmd.Context()
			stats, err := st.Stats(ctx)
			if err != nil {
				return err
			}
			posts, err := st.ListPosts(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "运行次数：%d  帖子总数：%d", stats.RunsTotal, stats.PostsTotal)
			if !stats.LastRunAt.IsZero() {
				fmt.Fprintf(w, "  最近运行：%s", stats.LastRunAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintln(w)
			if limit > 0 && len(posts) > limit {
				posts = posts[:limit]
			}
			for i, p := range posts {
				fmt.Fprintf(w, "%d. [%s] r/%s %s\n   %s\n", i+1, p.PostedAt.Format("2006-01-02"), p.Subreddit, p.Title, p.URL)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "max posts to print (0 = all)")
	return cmd
}
