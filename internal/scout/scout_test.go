package scout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-convo-scout/internal/fetch"
	"go-convo-scout/internal/listing"
	"go-convo-scout/internal/model"
)

type post struct {
	Title string
	Body  string
	ID    string
}

// reddit 模拟列表端点：路径 /r/<sub>/<sort>.json；未注册的路径返回空列表。
type reddit struct {
	mu       sync.Mutex
	feeds    map[string][]post
	handlers map[string]http.HandlerFunc
	hits     []string
}

func newReddit() *reddit {
	return &reddit{feeds: map[string][]post{}, handlers: map[string]http.HandlerFunc{}}
}

func (rd *reddit) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rd.mu.Lock()
	rd.hits = append(rd.hits, r.URL.Path)
	h := rd.handlers[r.URL.Path]
	posts := rd.feeds[r.URL.Path]
	rd.mu.Unlock()
	if h != nil {
		h(w, r)
		return
	}
	children := make([]map[string]any, 0, len(posts))
	for _, p := range posts {
		children = append(children, map[string]any{"data": map[string]any{
			"title":       p.Title,
			"selftext":    p.Body,
			"permalink":   "/r/x/comments/" + p.ID + "/",
			"created_utc": 1700000000,
		}})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"children": children}})
}

func (rd *reddit) requested() []string {
	rd.mu.Lock()
	defer rd.mu.Unlock()
	return append([]string(nil), rd.hits...)
}

func newScout(t *testing.T, srv *httptest.Server, timeout time.Duration, subs ...string) *Scout {
	t.Helper()
	cl, err := fetch.New(fetch.Options{Timeout: timeout})
	require.NoError(t, err)
	targets := make([]Target, 0, len(subs))
	for _, s := range subs {
		targets = append(targets, Target{Name: s, Keywords: []string{"bug", "rate limit"}})
	}
	return New(cl, Options{
		Targets:         targets,
		Sorts:           []string{"hot", "new", "top"},
		Limit:           100,
		Window:          "week",
		APIOrigin:       srv.URL,
		SiteOrigin:      "https://reddit.com",
		MaxPerSubreddit: 3,
		MaxTotal:        3,
		BodyMaxChars:    1000,
	})
}

func titles(posts []model.PostRecord) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestGather_NoMatches(t *testing.T) {
	rd := newReddit()
	rd.feeds["/r/a/hot.json"] = []post{{Title: "hello", ID: "1"}, {Title: "world", Body: "nothing here", ID: "2"}}
	srv := httptest.NewServer(rd)
	defer srv.Close()

	res := newScout(t, srv, 2*time.Second, "a").Gather(context.Background())
	assert.Empty(t, res.Posts)
	assert.Empty(t, res.Failures)
	assert.Equal(t, []string{"/r/a/hot.json", "/r/a/new.json", "/r/a/top.json"}, rd.requested())
}

func TestFetchSubreddit_CapsAtThreeInSortOrder(t *testing.T) {
	rd := newReddit()
	rd.feeds["/r/a/hot.json"] = []post{{Title: "hot bug 1", ID: "h1"}, {Title: "unrelated", ID: "h0"}, {Title: "hot 2", Body: "a BUG", ID: "h2"}}
	rd.feeds["/r/a/new.json"] = []post{{Title: "new bug 1", ID: "n1"}, {Title: "new bug 2", ID: "n2"}}
	rd.feeds["/r/a/top.json"] = []post{{Title: "top bug", ID: "t1"}}
	srv := httptest.NewServer(rd)
	defer srv.Close()

	sc := newScout(t, srv, 2*time.Second, "a")
	posts, failed := sc.FetchSubreddit(context.Background(), sc.opts.Targets[0])
	assert.Empty(t, failed)
	assert.Equal(t, []string{"hot bug 1", "hot 2", "new bug 1"}, titles(posts))
	assert.NotContains(t, rd.requested(), "/r/a/top.json", "top is not requested once the cap is reached")
}

func TestGather_GlobalCapKeepsFirstSubreddit(t *testing.T) {
	rd := newReddit()
	rd.feeds["/r/a/hot.json"] = []post{{Title: "a1 bug", ID: "a1"}, {Title: "a2 bug", ID: "a2"}, {Title: "a3 bug", ID: "a3"}}
	rd.feeds["/r/b/hot.json"] = []post{{Title: "b1 bug", ID: "b1"}, {Title: "b2 bug", ID: "b2"}, {Title: "b3 bug", ID: "b3"}}
	srv := httptest.NewServer(rd)
	defer srv.Close()

	res := newScout(t, srv, 2*time.Second, "a", "b").Gather(context.Background())
	assert.Equal(t, []string{"a1 bug", "a2 bug", "a3 bug"}, titles(res.Posts))
	for _, p := range res.Posts {
		assert.Equal(t, "a", p.Subreddit)
	}
	assert.Contains(t, rd.requested(), "/r/b/hot.json", "the second subreddit is still fetched")
}

func TestGather_FailuresDoNotStopLaterRequests(t *testing.T) {
	rd := newReddit()
	rd.handlers["/r/a/hot.json"] = func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}
	rd.handlers["/r/a/new.json"] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}
	rd.handlers["/r/b/hot.json"] = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}
	rd.feeds["/r/a/top.json"] = []post{{Title: "rate LIMIT hit", ID: "t1"}}
	rd.feeds["/r/b/new.json"] = []post{{Title: "bug in b", ID: "b1"}}
	srv := httptest.NewServer(rd)
	defer srv.Close()

	res := newScout(t, srv, 100*time.Millisecond, "a", "b").Gather(context.Background())
	assert.Equal(t, []string{"rate LIMIT hit", "bug in b"}, titles(res.Posts))
	require.Len(t, res.Failures, 3)
	got := make([]string, 0, 3)
	for _, f := range res.Failures {
		assert.False(t, f.OK())
		got = append(got, f.Subreddit+"/"+f.Sort)
	}
	assert.Equal(t, []string{"a/hot", "a/new", "b/hot"}, got)
}

func TestGather_RSSFormat(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/r/a/hot/.rss", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "week", r.URL.Query().Get("t"))
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = fmt.Fprint(w, `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom">
<entry><title>Found a bug</title><link href="https://www.reddit.com/r/a/comments/1/bug/"/><updated>2024-01-02T03:04:05+00:00</updated>
<content type="html">&lt;div class="md"&gt;&lt;p&gt;details&lt;/p&gt;&lt;/div&gt;</content></entry>
</feed>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sc := newScout(t, srv, 2*time.Second, "a")
	sc.opts.Format = listing.FormatRSS
	sc.opts.Sorts = []string{"hot"}
	sc.opts.Targets[0].BodySelector = "div.md"
	res := sc.Gather(context.Background())
	require.Len(t, res.Posts, 1)
	assert.Equal(t, model.PostRecord{
		Subreddit: "a",
		Title:     "Found a bug",
		Body:      "details",
		URL:       "https://www.reddit.com/r/a/comments/1/bug/",
		PostedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}, res.Posts[0])
}

func TestGather_ShapesRecords(t *testing.T) {
	rd := newReddit()
	rd.feeds["/r/a/hot.json"] = []post{
		{Title: "long bug", Body: strings.Repeat("é", 1500), ID: "1"},
		{Title: "link bug", ID: "2"},
	}
	srv := httptest.NewServer(rd)
	defer srv.Close()

	res := newScout(t, srv, 2*time.Second, "a").Gather(context.Background())
	require.Len(t, res.Posts, 2)
	assert.Equal(t, strings.Repeat("é", 1000), res.Posts[0].Body)
	assert.Equal(t, NoBodySentinel, res.Posts[1].Body)
	assert.Equal(t, "https://reddit.com/r/x/comments/1/", res.Posts[0].URL)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), res.Posts[0].PostedAt)
}
