package store

import "sort"

// AllSortedDescending returns the entries sorted by timestamp descending.
// The sort is stable, so input order is preserved for equal timestamps.
func AllSortedDescending(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	return sorted
}

// Latest returns the newest entry, or nil if the collection is empty.
func Latest(entries []Entry) *Entry {
	sorted := AllSortedDescending(entries)
	if len(sorted) == 0 {
		return nil
	}
	return &sorted[0]
}

// ByID returns the entry with the exact id, or nil.
func ByID(entries []Entry, id string) *Entry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

// ByDate returns the entry with the exact date, or nil.
func ByDate(entries []Entry, date string) *Entry {
	for i := range entries {
		if entries[i].Date == date {
			return &entries[i]
		}
	}
	return nil
}

// Recent returns the first n entries of the descending order, with n clamped
// to the collection size.
func Recent(entries []Entry, n int) []Entry {
	sorted := AllSortedDescending(entries)
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
