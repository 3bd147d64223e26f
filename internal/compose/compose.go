// Package compose assembles adapter output into generation-ready prompts.
// Building is pure: identical inputs produce byte-identical output.
package compose

import (
	"fmt"
	"strings"

	"github.com/wuterminal/wuterm/internal/collect"
	"github.com/wuterminal/wuterm/internal/store"
)

const maxExcerptRunes = 100

// Sources holds the adapter outputs for one daily run.
type Sources struct {
	Weibo  []string
	News   []string
	Trends []string
	Tweets []collect.Tweet
}

// BuildDailyContext concatenates labeled sections in a fixed order, omitting
// any section whose source list is empty.
func BuildDailyContext(src Sources) string {
	var b strings.Builder
	b.WriteString("=== 今日观察 ===\n")

	if len(src.Weibo) > 0 {
		b.WriteString("\n【微博热搜】\n")
		writeNumbered(&b, src.Weibo)
	}

	if len(src.News) > 0 {
		b.WriteString("\n【新闻动态】\n")
		writeNumbered(&b, src.News)
	}

	if len(src.Trends) > 0 {
		b.WriteString("\n【Twitter 趋势】\n")
		writeNumbered(&b, src.Trends)
	}

	if len(src.Tweets) > 0 {
		b.WriteString("\n【Twitter 热门讨论】\n")
		for i, t := range src.Tweets {
			fmt.Fprintf(&b, "%d. @%s: %s...\n", i+1, t.Author, cutRunes(t.Text, maxExcerptRunes))
		}
	}

	return b.String()
}

// DailyUserPrompt wraps the daily context into the user message.
func DailyUserPrompt(context string) string {
	return fmt.Sprintf(`以下是你今日观察到的世界：

%s

请根据以上内容，产生今日的「悟」。可以针对某个话题，也可以综合评论。
记住：控制在 280 字以内，直接输出「悟」本身，不要解释。`, context)
}

// BuildPostContext assembles the post-drafting context from the latest entry
// and the hot lists. Empty sections are omitted; lists are cut to 5 items.
func BuildPostContext(latest *store.Entry, trends, weibo []string) string {
	var b strings.Builder

	if latest != nil {
		fmt.Fprintf(&b, "【今日的悟】\n%s\n\n", latest.Content)
	}

	if len(trends) > 0 {
		fmt.Fprintf(&b, "【Twitter 趋势】\n%s\n\n", strings.Join(head(trends, 5), ", "))
	}

	if len(weibo) > 0 {
		fmt.Fprintf(&b, "【微博热搜】\n%s\n\n", strings.Join(head(weibo, 5), ", "))
	}

	return b.String()
}

// PostUserPrompt wraps the post context into the user message.
func PostUserPrompt(context string) string {
	return fmt.Sprintf(`请根据以下信息生成一条推文：

%s

直接输出推文内容：`, context)
}

func writeNumbered(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func cutRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
