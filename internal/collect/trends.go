package collect

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"
)

const twitterBaseURL = "https://api.twitterapi.io"

const (
	maxTrends     = 15
	maxPostTrends = 10
)

// defaultTrends stands in when the trends API is unavailable, so the daily
// run can proceed without a Twitter key.
var defaultTrends = []string{"#AI", "#Bitcoin", "#Tech", "#Crypto", "AGI"}

// TrendsClient fetches worldwide Twitter trends from twitterapi.io.
type TrendsClient struct {
	BaseURL string
	apiKey  string
	client  *http.Client
}

// NewTrendsClient creates a trends client reading its key from the named
// environment variable.
func NewTrendsClient(apiKeyEnv string) *TrendsClient {
	return &TrendsClient{
		BaseURL: twitterBaseURL,
		apiKey:  os.Getenv(apiKeyEnv),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// IsConfigured returns whether the API key is available.
func (t *TrendsClient) IsConfigured() bool {
	return t.apiKey != ""
}

// Trends returns up to 15 worldwide trend names for the daily run. Without a
// key, and on any failure, it falls back to a small static list.
func (t *TrendsClient) Trends() []string {
	if t.apiKey == "" {
		log.Println("Twitter API key not configured, using default trends")
		return defaultTrends
	}

	trends := t.fetch(maxTrends)
	if trends == nil {
		return defaultTrends
	}
	return trends
}

// TrendsForPost returns up to 10 trend names for the post-drafting run.
// Without a key, and on any failure, it returns an empty slice.
func (t *TrendsClient) TrendsForPost() []string {
	if t.apiKey == "" {
		log.Println("Twitter API key not configured, skipping trends")
		return nil
	}
	return t.fetch(maxPostTrends)
}

func (t *TrendsClient) fetch(limit int) []string {
	req, err := http.NewRequest("GET", t.BaseURL+"/twitter/trends?woeid=1&count=30", nil)
	if err != nil {
		log.Printf("Twitter trends request error: %v", err)
		return nil
	}
	req.Header.Set("X-API-Key", t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		log.Printf("Twitter trends fetch failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Twitter trends HTTP error: %d", resp.StatusCode)
		return nil
	}

	var result struct {
		Status string `json:"status"`
		Trends []struct {
			Name string `json:"name"`
		} `json:"trends"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Twitter trends decode error: %v", err)
		return nil
	}

	if result.Status != "success" {
		log.Printf("Twitter trends status: %s", result.Status)
		return nil
	}

	var names []string
	for _, tr := range result.Trends {
		if len(names) >= limit {
			break
		}
		if tr.Name != "" {
			names = append(names, tr.Name)
		}
	}
	log.Printf("Fetched %d Twitter trends", len(names))
	return names
}
