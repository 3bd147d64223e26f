package compose

import (
	"strings"
	"testing"

	"github.com/wuterminal/wuterm/internal/collect"
	"github.com/wuterminal/wuterm/internal/store"
)

func TestBuildDailyContextDeterministic(t *testing.T) {
	src := Sources{
		Weibo:  []string{"热搜一", "热搜二"},
		News:   []string{"新闻一"},
		Trends: []string{"#AI"},
		Tweets: []collect.Tweet{{Text: "gm", Author: "zen", Likes: 3}},
	}

	first := BuildDailyContext(src)
	second := BuildDailyContext(src)
	if first != second {
		t.Error("identical inputs must produce byte-identical output")
	}
}

func TestBuildDailyContextSections(t *testing.T) {
	src := Sources{
		Weibo: []string{"热搜一", "热搜二"},
		News:  []string{"新闻一"},
	}

	out := BuildDailyContext(src)

	if !strings.HasPrefix(out, "=== 今日观察 ===") {
		t.Error("expected observation header first")
	}
	if !strings.Contains(out, "【微博热搜】\n1. 热搜一\n2. 热搜二") {
		t.Errorf("expected numbered weibo section, got:\n%s", out)
	}
	if !strings.Contains(out, "【新闻动态】\n1. 新闻一") {
		t.Errorf("expected numbered news section, got:\n%s", out)
	}
	if strings.Contains(out, "Twitter 趋势") {
		t.Error("empty trends section must be omitted")
	}
	if strings.Contains(out, "热门讨论") {
		t.Error("empty tweets section must be omitted")
	}

	// Fixed section order.
	if strings.Index(out, "微博热搜") > strings.Index(out, "新闻动态") {
		t.Error("weibo section must come before news")
	}
}

func TestBuildDailyContextTweetExcerpts(t *testing.T) {
	long := strings.Repeat("长", 150)
	src := Sources{
		Tweets: []collect.Tweet{{Text: long, Author: "seer", Likes: 10}},
	}

	out := BuildDailyContext(src)
	if !strings.Contains(out, "1. @seer: "+strings.Repeat("长", 100)+"...") {
		t.Errorf("expected excerpt cut to 100 runes, got:\n%s", out)
	}
}

func TestBuildPostContext(t *testing.T) {
	latest := &store.Entry{ID: "wu-2026-08-29-001", Content: "观水悟道。"}
	trends := []string{"#AI", "#Tech", "#Crypto", "#Web3", "#BTC", "#ETH"}
	weibo := []string{"一", "二"}

	out := BuildPostContext(latest, trends, weibo)

	if !strings.Contains(out, "【今日的悟】\n观水悟道。") {
		t.Errorf("expected latest entry block, got:\n%s", out)
	}
	if !strings.Contains(out, "【Twitter 趋势】\n#AI, #Tech, #Crypto, #Web3, #BTC\n") {
		t.Errorf("expected trends cut to 5 and comma-joined, got:\n%s", out)
	}
	if !strings.Contains(out, "【微博热搜】\n一, 二") {
		t.Errorf("expected weibo section, got:\n%s", out)
	}
}

func TestBuildPostContextWithoutLatest(t *testing.T) {
	out := BuildPostContext(nil, []string{"#AI"}, nil)

	if strings.Contains(out, "今日的悟") {
		t.Error("missing latest entry must omit its section")
	}
	if strings.Contains(out, "微博热搜") {
		t.Error("empty weibo list must omit its section")
	}
	if !strings.Contains(out, "【Twitter 趋势】\n#AI") {
		t.Errorf("expected trends section, got:\n%s", out)
	}
}

func TestUserPromptsWrapContext(t *testing.T) {
	daily := DailyUserPrompt("CTX")
	if !strings.Contains(daily, "CTX") || !strings.Contains(daily, "280 字以内") {
		t.Error("daily user prompt must embed context and the length bound")
	}

	post := PostUserPrompt("CTX")
	if !strings.Contains(post, "CTX") || !strings.Contains(post, "直接输出推文内容") {
		t.Error("post user prompt must embed context and output instruction")
	}
}
