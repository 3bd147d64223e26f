package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempEntryStore(t *testing.T) *EntryStore {
	t.Helper()
	return NewEntryStore(filepath.Join(t.TempDir(), "wu.json"))
}

func makeEntry(date, content string, ts int64) Entry {
	return Entry{
		ID:        EntryID(date),
		Date:      date,
		Content:   content,
		Timestamp: ts,
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := tempEntryStore(t)
	if got := s.Load(); len(got) != 0 {
		t.Errorf("expected empty collection, got %d entries", len(got))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wu.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	s := NewEntryStore(path)
	if got := s.Load(); len(got) != 0 {
		t.Errorf("expected empty collection from corrupt file, got %d", len(got))
	}
}

func TestUpsertInsertsAtFront(t *testing.T) {
	s := tempEntryStore(t)
	if err := s.Upsert(makeEntry("2026-08-28", "一", 1)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.Upsert(makeEntry("2026-08-29", "二", 2)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	entries := s.Load()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Date != "2026-08-29" {
		t.Errorf("expected newest entry first, got %s", entries[0].Date)
	}
}

func TestUpsertReplacesSameDate(t *testing.T) {
	s := tempEntryStore(t)
	s.Upsert(makeEntry("2026-08-27", "旧", 1))
	s.Upsert(makeEntry("2026-08-28", "悟一", 2))

	if err := s.Upsert(makeEntry("2026-08-28", "悟二", 3)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	entries := s.Load()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after replace, got %d", len(entries))
	}

	var matches int
	for _, e := range entries {
		if e.Date == "2026-08-28" {
			matches++
			if e.Content != "悟二" {
				t.Errorf("expected replaced content 悟二, got %q", e.Content)
			}
		}
	}
	if matches != 1 {
		t.Errorf("expected exactly one entry for the date, got %d", matches)
	}
	// Replacement happens at the stored position.
	if entries[0].Date != "2026-08-28" {
		t.Errorf("expected replaced entry to keep its position, got %s first", entries[0].Date)
	}
}

func TestUpsertIdempotent(t *testing.T) {
	s := tempEntryStore(t)
	e := makeEntry("2026-08-28", "同", 5)

	s.Upsert(e)
	s.Upsert(e)

	entries := s.Load()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Content != "同" {
		t.Errorf("expected content unchanged, got %q", entries[0].Content)
	}
}

func TestEntryJSONShape(t *testing.T) {
	s := tempEntryStore(t)
	e := makeEntry("2026-08-28", "悟", 1756339200000)
	e.Sources = EntrySources{Weibo: []string{"热搜"}}
	s.Upsert(e)

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("reading store file: %v", err)
	}

	// The file is a plain JSON array consumed by the archive site.
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("store file is not a JSON array: %v", err)
	}
	if raw[0]["id"] != "wu-2026-08-28-001" {
		t.Errorf("unexpected id: %v", raw[0]["id"])
	}
	sources, ok := raw[0]["sources"].(map[string]any)
	if !ok {
		t.Fatal("expected sources object")
	}
	if _, ok := sources["twitter"]; ok {
		t.Error("empty twitter list should be omitted")
	}
}

func TestAppendCap(t *testing.T) {
	s := NewPostStore(filepath.Join(t.TempDir(), "pending-posts.json"))

	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		p := PendingPost{
			ID:      PostID(base.Add(time.Duration(i) * time.Second)),
			Content: fmt.Sprintf("draft %d", i),
		}
		if err := s.Append(p); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	posts := s.Load()
	if len(posts) != 50 {
		t.Fatalf("expected 50 posts after cap, got %d", len(posts))
	}
	if posts[0].Content != "draft 59" {
		t.Errorf("expected newest draft first, got %q", posts[0].Content)
	}
	if posts[49].Content != "draft 10" {
		t.Errorf("expected oldest surviving draft to be 10, got %q", posts[49].Content)
	}
}

func TestPostDefaults(t *testing.T) {
	s := NewPostStore(filepath.Join(t.TempDir(), "pending-posts.json"))
	s.Append(PendingPost{ID: "post-1", Content: "悟", CharCount: 1})

	posts := s.Load()
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].Posted {
		t.Error("posted flag should default to false")
	}
}
