package collect

import (
	"log"
	"strings"

	"github.com/mmcdole/gofeed"
)

const maxNewsTopics = 10

// fallbackTopics is the placeholder news list used when no feeds are
// configured or none yield items.
var fallbackTopics = []string{
	"科技股市场动态",
	"AI 发展趋势",
	"经济形势分析",
	"新能源产业",
	"数字经济政策",
}

// FeedConfig is a single RSS/Atom news source.
type FeedConfig struct {
	URL  string
	Name string
}

// NewsClient produces news topics, from configured RSS feeds when available
// and from a static placeholder list otherwise.
type NewsClient struct {
	feeds  []FeedConfig
	parser *gofeed.Parser
}

// NewNewsClient creates a news client over the given feeds (may be empty).
func NewNewsClient(feeds []FeedConfig) *NewsClient {
	return &NewsClient{feeds: feeds, parser: gofeed.NewParser()}
}

// Topics returns up to 10 news topic strings. Feed failures degrade to the
// static list; this adapter never fails.
func (n *NewsClient) Topics() []string {
	var topics []string
	for _, fc := range n.feeds {
		if len(topics) >= maxNewsTopics {
			break
		}

		feed, err := n.parser.ParseURL(fc.URL)
		if err != nil {
			log.Printf("Failed to parse feed %s: %v", fc.URL, err)
			continue
		}

		count := 0
		for _, item := range feed.Items {
			if len(topics) >= maxNewsTopics {
				break
			}
			title := strings.TrimSpace(item.Title)
			if title == "" {
				continue
			}
			topics = append(topics, title)
			count++
		}
		log.Printf("Parsed %d topics from %s", count, feedName(fc))
	}

	if len(topics) == 0 {
		return fallbackTopics
	}
	return topics
}

func feedName(fc FeedConfig) string {
	if fc.Name != "" {
		return fc.Name
	}
	return fc.URL
}
