package history

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// Search ranks entries (most recent first, as returned by Snapshot) against
// query. Exact substring matches come first in recency order, followed by
// the remaining fuzzy matches ordered by score. Duplicate lines are reported
// once. An empty query returns the de-duplicated entries.
func Search(entries []string, query string) []string {
	if query == "" {
		return lo.Uniq(entries)
	}

	matches := make([]string, 0)
	for _, entry := range entries {
		if strings.Contains(entry, query) {
			matches = append(matches, entry)
		}
	}

	for _, match := range fuzzy.Find(query, entries) {
		matches = append(matches, match.Str)
	}

	return lo.Uniq(matches)
}
