// Package pipeline drives the two generation runs: the daily entry and the
// social post draft. One invocation is one run; there is no long-running
// process.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/wuterminal/wuterm/internal/collect"
	"github.com/wuterminal/wuterm/internal/compose"
	"github.com/wuterminal/wuterm/internal/config"
	"github.com/wuterminal/wuterm/internal/llm"
	"github.com/wuterminal/wuterm/internal/store"
)

// Snapshot caps: how much of each source list is persisted on the record.
const (
	keepWeibo  = 5
	keepNews   = 3
	keepTrends = 5
)

type hotSearcher interface {
	HotSearch() []string
}

type trendsFetcher interface {
	Trends() []string
	TrendsForPost() []string
}

type tweetSearcher interface {
	Search() []collect.Tweet
}

type topicFetcher interface {
	Topics() []string
}

// Pipeline wires the feed adapters, the generation client, and the stores.
type Pipeline struct {
	cfg      *config.Config
	provider llm.Provider
	weibo    hotSearcher
	trends   trendsFetcher
	tweets   tweetSearcher
	news     topicFetcher
	entries  *store.EntryStore
	posts    *store.PostStore
}

// New creates a pipeline with the real adapters and stores.
func New(cfg *config.Config) *Pipeline {
	feeds := make([]collect.FeedConfig, len(cfg.Sources.Feeds))
	for i, f := range cfg.Sources.Feeds {
		feeds[i] = collect.FeedConfig{URL: f.URL, Name: f.Name}
	}

	return &Pipeline{
		cfg:      cfg,
		provider: llm.NewAnthropicProvider(cfg.Generation.Model, cfg.Generation.MaxTokens, cfg.APIKeys.AnthropicEnv),
		weibo:    collect.NewWeiboClient(),
		trends:   collect.NewTrendsClient(cfg.APIKeys.TwitterEnv),
		tweets:   collect.NewTweetsClient(cfg.APIKeys.TwitterEnv),
		news:     collect.NewNewsClient(feeds),
		entries:  store.NewEntryStore(cfg.EntryFile()),
		posts:    store.NewPostStore(cfg.PostFile()),
	}
}

// RunDaily fetches all sources, generates the daily entry, and upserts it
// into the entry store. Adapter failures degrade; generation and persistence
// failures abort the run with no partial record.
func (p *Pipeline) RunDaily(ctx context.Context, now time.Time) (*store.Entry, error) {
	if !p.provider.IsConfigured() {
		return nil, fmt.Errorf("generation key missing: set %s", p.cfg.APIKeys.AnthropicEnv)
	}

	log.Println("[1/5] 收集微博热搜...")
	weibo := p.weibo.HotSearch()
	log.Printf("  获取 %d 条", len(weibo))

	log.Println("[2/5] 收集新闻...")
	news := p.news.Topics()
	log.Printf("  获取 %d 条", len(news))

	log.Println("[3/5] 收集 Twitter 趋势...")
	trends := p.trends.Trends()
	log.Printf("  获取 %d 个趋势", len(trends))

	log.Println("[4/5] 收集 Twitter 内容...")
	tweets := p.tweets.Search()
	log.Printf("  获取 %d 条推文", len(tweets))

	userContext := compose.BuildDailyContext(compose.Sources{
		Weibo:  weibo,
		News:   news,
		Trends: trends,
		Tweets: tweets,
	})

	log.Println("[5/5] 生成悟...")
	content, err := p.provider.Generate(ctx, compose.DailySystemPrompt, compose.DailyUserPrompt(userContext))
	if err != nil {
		return nil, fmt.Errorf("generating entry: %w", err)
	}

	date := now.UTC().Format("2006-01-02")
	entry := store.Entry{
		ID:      store.EntryID(date),
		Date:    date,
		Content: content,
		Sources: store.EntrySources{
			Weibo:   head(weibo, keepWeibo),
			News:    head(news, keepNews),
			Twitter: head(trends, keepTrends),
		},
		Timestamp: now.UnixMilli(),
	}

	if err := p.entries.Upsert(entry); err != nil {
		return nil, fmt.Errorf("persisting entry: %w", err)
	}
	log.Printf("已保存到 %s", p.entries.Path())

	writeRunOutput("wu_content", content)
	return &entry, nil
}

// RunPost drafts a social post from the latest entry and the current hot
// lists, and appends it to the capped pending store.
func (p *Pipeline) RunPost(ctx context.Context, now time.Time) (*store.PendingPost, error) {
	if !p.provider.IsConfigured() {
		return nil, fmt.Errorf("generation key missing: set %s", p.cfg.APIKeys.AnthropicEnv)
	}

	log.Println("[1/4] 获取最新的「悟」...")
	latest := store.Latest(p.entries.Load())
	if latest != nil {
		log.Printf("  找到 %s 的悟", latest.Date)
	} else {
		log.Println("  未找到悟记录，将只使用热点生成")
	}

	log.Println("[2/4] 获取 Twitter 趋势...")
	trends := p.trends.TrendsForPost()
	log.Printf("  获取 %d 个趋势", len(trends))

	log.Println("[3/4] 获取微博热搜...")
	weibo := p.weibo.HotSearch()
	log.Printf("  获取 %d 条热搜", len(weibo))

	userContext := compose.BuildPostContext(latest, trends, weibo)

	log.Println("[4/4] 生成推文...")
	content, err := p.provider.Generate(ctx, compose.PostSystemPrompt, compose.PostUserPrompt(userContext))
	if err != nil {
		return nil, fmt.Errorf("generating post: %w", err)
	}

	var latestID string
	if latest != nil {
		latestID = latest.ID
	}

	post := store.PendingPost{
		ID:        store.PostID(now),
		Content:   content,
		CharCount: utf8.RuneCountInString(content),
		Sources: store.PostSources{
			LatestWu: latestID,
			Trends:   head(trends, keepTrends),
			WeiboHot: head(weibo, keepWeibo),
		},
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Posted:      false,
	}

	if err := p.posts.Append(post); err != nil {
		return nil, fmt.Errorf("persisting post: %w", err)
	}
	log.Printf("已保存到 %s", p.posts.Path())

	return &post, nil
}

// writeRunOutput appends a key=value line to the CI output channel when one
// is provided, so downstream automation can read the fresh content without
// re-parsing the store. Failures are logged, not fatal: the record is
// already persisted.
func writeRunOutput(key, value string) {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("Opening run output: %v", err)
		return
	}
	defer f.Close()

	escaped := strings.ReplaceAll(value, "\n", "\\n")
	if _, err := fmt.Fprintf(f, "%s=%s\n", key, escaped); err != nil {
		log.Printf("Writing run output: %v", err)
	}
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
