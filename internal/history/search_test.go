package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	entries := []string{"git status", "go test ./...", "git stash", "ls -la", "git status"}

	t.Run("empty query returns unique entries", func(t *testing.T) {
		assert.Equal(t, []string{"git status", "go test ./...", "git stash", "ls -la"}, Search(entries, ""))
	})

	t.Run("substring matches keep recency order", func(t *testing.T) {
		result := Search(entries, "git st")
		assert.Equal(t, []string{"git status", "git stash"}, result)
	})

	t.Run("fuzzy matches follow substring matches", func(t *testing.T) {
		result := Search(entries, "gtst")
		assert.NotEmpty(t, result)
		assert.Contains(t, result, "go test ./...")
		assert.NotContains(t, result, "ls -la")
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Search(entries, "zzz"))
	})
}
