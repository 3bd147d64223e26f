package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

const maxPending = 50

// EntryStore persists the daily entry collection as a JSON array file.
type EntryStore struct {
	path string
}

// NewEntryStore creates an entry store backed by the given file.
func NewEntryStore(path string) *EntryStore {
	return &EntryStore{path: path}
}

// Path returns the backing file path.
func (s *EntryStore) Path() string {
	return s.path
}

// Load reads the persisted collection. A missing or unparsable file yields
// an empty collection, not an error, so the first-ever run works.
func (s *EntryStore) Load() []Entry {
	var entries []Entry
	loadJSON(s.path, &entries)
	return entries
}

// Upsert replaces the stored entry with the same date in place, or inserts
// the new entry at the front, then rewrites the whole file.
func (s *EntryStore) Upsert(e Entry) error {
	entries := s.Load()

	replaced := false
	for i := range entries {
		if entries[i].Date == e.Date {
			entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append([]Entry{e}, entries...)
	}

	return writeJSON(s.path, entries)
}

// PostStore persists the pending post collection as a JSON array file,
// capped to the most recent 50 drafts.
type PostStore struct {
	path string
}

// NewPostStore creates a pending post store backed by the given file.
func NewPostStore(path string) *PostStore {
	return &PostStore{path: path}
}

// Path returns the backing file path.
func (s *PostStore) Path() string {
	return s.path
}

// Load reads the persisted drafts, newest first. Missing or unparsable
// files yield an empty collection.
func (s *PostStore) Load() []PendingPost {
	var posts []PendingPost
	loadJSON(s.path, &posts)
	return posts
}

// Append inserts the draft at the front, truncates to the most recent 50,
// then rewrites the whole file.
func (s *PostStore) Append(p PendingPost) error {
	posts := append([]PendingPost{p}, s.Load()...)
	if len(posts) > maxPending {
		posts = posts[:maxPending]
	}
	return writeJSON(s.path, posts)
}

func loadJSON(path string, v any) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Reading %s: %v", path, err)
		}
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Corrupt collection %s, starting empty: %v", path, err)
	}
}

// writeJSON rewrites the collection in full. Write failures propagate: a
// generation whose result cannot be persisted must not look like a success.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
