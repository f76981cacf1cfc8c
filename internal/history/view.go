package history

import (
	"fmt"
)

// node links visited entries; pushing onto the head while walking newest to
// oldest leaves the oldest entry at the head.
type node struct {
	entry string
	next  *node
}

// Snapshot returns every entry of store, most recent first. The store is
// walked exactly once; the result does not track later changes to the store.
func Snapshot(store Store) ([]string, error) {
	var (
		head  *node
		total int
	)

	entry, ok, err := store.Newest()
	for ; ok && err == nil; entry, ok, err = store.Older() {
		head = &node{entry: entry, next: head}
		total++
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	result := make([]string, total)
	i := total
	for n := head; n != nil; n = n.next {
		i--
		result[i] = n.entry
	}

	return result, nil
}

// Current returns the most recently entered line. ok is false when the store
// is empty.
func Current(store Store) (string, bool, error) {
	entry, ok, err := store.Newest()
	if err != nil {
		return "", false, fmt.Errorf("reading history: %w", err)
	}
	return entry, ok, nil
}
