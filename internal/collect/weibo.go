// Package collect holds the best-effort feed adapters. Every adapter makes a
// single attempt per run; any network, status, or parse failure is logged and
// reported to the caller as an empty slice, never as an error.
package collect

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const weiboBaseURL = "https://weibo.com"

// The hot-search endpoint rejects non-browser clients.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const maxWeiboTopics = 10

// WeiboClient fetches the Weibo hot-search board.
type WeiboClient struct {
	BaseURL string
	client  *http.Client
}

// NewWeiboClient creates a Weibo hot-search client.
func NewWeiboClient() *WeiboClient {
	return &WeiboClient{
		BaseURL: weiboBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// HotSearch returns the current hot-search topics, most prominent first,
// capped at 10. Any failure yields an empty slice.
func (w *WeiboClient) HotSearch() []string {
	req, err := http.NewRequest("GET", w.BaseURL+"/ajax/side/hotSearch", nil)
	if err != nil {
		log.Printf("Weibo request error: %v", err)
		return nil
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := w.client.Do(req)
	if err != nil {
		log.Printf("Weibo fetch failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Weibo HTTP error: %d", resp.StatusCode)
		return nil
	}

	var result struct {
		Data struct {
			Realtime []struct {
				Word string `json:"word"`
			} `json:"realtime"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Weibo decode error: %v", err)
		return nil
	}

	var topics []string
	for _, t := range result.Data.Realtime {
		if len(topics) >= maxWeiboTopics {
			break
		}
		if t.Word != "" {
			topics = append(topics, t.Word)
		}
	}
	return topics
}
