// Package store persists the generated records as human-readable JSON array
// files, rewritten in full on every mutation. The archive site reads these
// files directly, so their shape is a contract.
//
// The store assumes a single writer per run; two concurrent runs racing on
// the same file are last-write-wins on the whole collection.
package store

import (
	"fmt"
	"time"
)

// Entry is the daily generated aphorism record. At most one Entry exists per
// calendar date; a re-run on the same date replaces it in place.
type Entry struct {
	ID        string       `json:"id"`
	Date      string       `json:"date"` // YYYY-MM-DD, the business key
	Content   string       `json:"content"`
	Sources   EntrySources `json:"sources"`
	Timestamp int64        `json:"timestamp"` // epoch milliseconds, the sort key
}

// EntrySources snapshots the inputs used to produce the content, each list
// independently optional and most-relevant-first.
type EntrySources struct {
	Weibo   []string `json:"weibo,omitempty"`
	News    []string `json:"news,omitempty"`
	Twitter []string `json:"twitter,omitempty"`
}

// PendingPost is an unpublished social-media draft awaiting manual posting.
type PendingPost struct {
	ID          string      `json:"id"`
	Content     string      `json:"content"`
	CharCount   int         `json:"charCount"`
	Sources     PostSources `json:"sources"`
	GeneratedAt string      `json:"generatedAt"`
	Posted      bool        `json:"posted"` // flipped manually, never by a run
}

// PostSources snapshots the inputs of a drafted post.
type PostSources struct {
	LatestWu string   `json:"latestWu,omitempty"`
	Trends   []string `json:"twitterTrends,omitempty"`
	WeiboHot []string `json:"weiboHot,omitempty"`
}

// EntryID derives the entry id from its date. Uniqueness of the id follows
// from uniqueness of the date.
func EntryID(date string) string {
	return fmt.Sprintf("wu-%s-001", date)
}

// PostID derives a pending post id from its generation instant.
func PostID(t time.Time) string {
	return fmt.Sprintf("post-%d", t.UnixMilli())
}
