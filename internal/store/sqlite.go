// 包 store 提供抓取历史的存储实现（SQLite），包含表迁移/写入/查询/清理等操作。
// 仅在非极简模式下使用；极简模式只输出 JSON 文件。
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"go-convo-scout/internal/model"
)

// SQLite 封装 *sql.DB，基于 modernc.org/sqlite（纯 Go 实现）。
type SQLite struct {
	db *sql.DB
}

// OpenSQLite 打开 SQLite 数据库并执行自动迁移。
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// Reset 清空业务数据表（不删除数据库文件）。
func (s *SQLite) Reset(ctx context.Context) error {
	for _, table := range []string{"posts", "runs"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}

// migrate 执行建表语句，保持幂等。
func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
            id TEXT PRIMARY KEY,
            started_at TIMESTAMP,
            posts INTEGER,
            failures INTEGER
        );`,
		`CREATE TABLE IF NOT EXISTS posts (
            subreddit TEXT,
            title TEXT,
            body TEXT,
            url TEXT UNIQUE,
            posted_at TIMESTAMP,
            run_id TEXT,
            seen_at TIMESTAMP
        );`,
		`CREATE INDEX IF NOT EXISTS idx_posts_posted_at ON posts(posted_at);`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("exec migrate: %w", err)
		}
	}
	return nil
}

// NewRun 生成一条新的运行记录（UUID + 当前时间）。
func NewRun() model.Run {
	return model.Run{ID: uuid.NewString(), StartedAt: time.Now().UTC()}
}

// SaveRun 在一个事务中写入运行记录与其输出的帖子。
func (s *SQLite) SaveRun(ctx context.Context, run model.Run, posts []model.PostRecord) error {
	if run.ID == "" {
		return errors.New("run.id required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()
	run.Posts = len(posts)
	if _, err := tx.ExecContext(ctx, `INSERT INTO runs(id, started_at, posts, failures) VALUES(?,?,?,?)`,
		run.ID, run.StartedAt.UTC(), run.Posts, run.Failures); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	for _, p := range posts {
		if err := upsertPost(ctx, tx, run.ID, p); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// upsertPost 插入或更新帖子（url 唯一约束）。
func upsertPost(ctx context.Context, ex execer, runID string, p model.PostRecord) error {
	if p.URL == "" {
		return errors.New("post.url required")
	}
	_, err := ex.ExecContext(ctx, `INSERT INTO posts(subreddit, title, body, url, posted_at, run_id, seen_at)
        VALUES(?,?,?,?,?,?,?)
        ON CONFLICT(url) DO UPDATE SET subreddit=excluded.subreddit, title=excluded.title, body=excluded.body, posted_at=excluded.posted_at, run_id=excluded.run_id, seen_at=excluded.seen_at`,
		p.Subreddit, p.Title, p.Body, p.URL, p.PostedAt.UTC(), runID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert post %s: %w", p.URL, err)
	}
	return nil
}

// ListPosts 返回全部帖子，按发帖时间倒序。
func (s *SQLite) ListPosts(ctx context.Context) ([]model.PostRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT subreddit, title, body, url, posted_at FROM posts ORDER BY posted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()
	var out []model.PostRecord
	for rows.Next() {
		var p model.PostRecord
		var postedAt sql.NullTime
		if err := rows.Scan(&p.Subreddit, &p.Title, &p.Body, &p.URL, &postedAt); err != nil {
			return nil, fmt.Errorf("scan posts: %w", err)
		}
		if postedAt.Valid {
			p.PostedAt = postedAt.Time.UTC()
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return out, nil
}

// Stats 统计汇总：运行次数、帖子总数、最近一次运行时间。
func (s *SQLite) Stats(ctx context.Context) (model.Stats, error) {
	var st model.Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM runs`).Scan(&st.RunsTotal); err != nil {
		return st, fmt.Errorf("count runs: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM posts`).Scan(&st.PostsTotal); err != nil {
		return st, fmt.Errorf("count posts: %w", err)
	}
	var last sql.NullTime
	err := s.db.QueryRowContext(ctx, `SELECT started_at FROM runs ORDER BY started_at DESC LIMIT 1`).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return st, fmt.Errorf("last run: %w", err)
	case last.Valid:
		st.LastRunAt = last.Time.UTC()
	}
	return st, nil
}

// CleanOldPosts 删除发帖时间早于 days 天前的帖子。
func (s *SQLite) CleanOldPosts(ctx context.Context, days int) error {
	if days <= 0 {
		return nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE posted_at < ?`, cutoff); err != nil {
		return fmt.Errorf("clean old posts: %w", err)
	}
	return nil
}
