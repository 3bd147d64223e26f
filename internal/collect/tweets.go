package collect

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

// searchQuery filters for the themes the persona watches.
const searchQuery = "(AI OR artificial intelligence OR crypto OR bitcoin OR web3) lang:en -is:retweet"

const (
	maxTweets    = 10
	maxTweetText = 200
)

// Tweet is a search result reduced to what the context builder needs.
type Tweet struct {
	Text   string
	Author string
	Likes  int
}

// TweetsClient searches recent tweets via twitterapi.io.
type TweetsClient struct {
	BaseURL string
	apiKey  string
	client  *http.Client
}

// NewTweetsClient creates a tweet-search client reading its key from the
// named environment variable.
func NewTweetsClient(apiKeyEnv string) *TweetsClient {
	return &TweetsClient{
		BaseURL: twitterBaseURL,
		apiKey:  os.Getenv(apiKeyEnv),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// IsConfigured returns whether the API key is available.
func (t *TweetsClient) IsConfigured() bool {
	return t.apiKey != ""
}

// Search returns up to 10 top tweets matching the fixed AI/crypto query.
// Without a key, and on any failure, it returns an empty slice.
func (t *TweetsClient) Search() []Tweet {
	if t.apiKey == "" {
		log.Println("Twitter API key not configured, skipping tweet search")
		return nil
	}

	params := url.Values{
		"query":     {searchQuery},
		"queryType": {"Top"},
	}

	req, err := http.NewRequest("GET", t.BaseURL+"/twitter/tweet/advanced_search?"+params.Encode(), nil)
	if err != nil {
		log.Printf("Twitter search request error: %v", err)
		return nil
	}
	req.Header.Set("X-API-Key", t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		log.Printf("Twitter search failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Twitter search HTTP error: %d", resp.StatusCode)
		return nil
	}

	var result struct {
		Tweets []struct {
			Text   string `json:"text"`
			Author struct {
				UserName string `json:"userName"`
			} `json:"author"`
			LikeCount int `json:"likeCount"`
		} `json:"tweets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Twitter search decode error: %v", err)
		return nil
	}

	var tweets []Tweet
	for _, tw := range result.Tweets {
		if len(tweets) >= maxTweets {
			break
		}
		if tw.Text == "" {
			continue
		}
		author := tw.Author.UserName
		if author == "" {
			author = "unknown"
		}
		tweets = append(tweets, Tweet{
			Text:   truncateRunes(tw.Text, maxTweetText),
			Author: author,
			Likes:  tw.LikeCount,
		})
	}
	log.Printf("Fetched %d tweets", len(tweets))
	return tweets
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
