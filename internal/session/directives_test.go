package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atinylittleshell/editline/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("history", func(t *testing.T) {
		s, _ := newTestSession(t, Options{})

		require.NoError(t, s.Parse([]string{"history", "size", "10"}))
		assert.Equal(t, 10, s.HistorySize())

		require.NoError(t, s.Parse([]string{"history", "unique", "1"}))
		assert.True(t, s.HistoryUnique())
		require.NoError(t, s.Parse([]string{"history", "unique", "0"}))
		assert.False(t, s.HistoryUnique())

		require.NoError(t, s.HistoryEnter("ls"))
		require.NoError(t, s.Parse([]string{"history", "clear"}))
		entries, err := s.History()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("invalid history directives", func(t *testing.T) {
		s, _ := newTestSession(t, Options{})

		for _, args := range [][]string{
			{"history"},
			{"history", "size", "lots"},
			{"history", "size", "-1"},
			{"history", "unique", "maybe"},
			{"history", "clear", "now"},
			{"history", "rewind"},
		} {
			assert.Error(t, s.Parse(args), strings.Join(args, " "))
		}
	})

	t.Run("prompt", func(t *testing.T) {
		s, _ := newTestSession(t, Options{})
		require.NoError(t, s.Parse([]string{"prompt", "git", "> "}))
		assert.Equal(t, "git > ", s.Prompt())
	})

	t.Run("bind is forwarded", func(t *testing.T) {
		s, eng := newTestSession(t, Options{})
		require.NoError(t, s.Parse([]string{"bind", "^T", "ed-complete"}))
		assert.Equal(t, [][]string{{"^T", "ed-complete"}}, eng.bindings)

		eng.bindErr = errors.New("bad key")
		assert.ErrorContains(t, s.Parse([]string{"bind", "^A", "ed-complete"}), "bad key")
	})

	t.Run("program prefix", func(t *testing.T) {
		s, _ := newTestSession(t, Options{})

		require.NoError(t, s.Parse([]string{"git:prompt", "mine"}))
		assert.Equal(t, "mine", s.Prompt())

		require.NoError(t, s.Parse([]string{"hg:prompt", "theirs"}))
		assert.Equal(t, "mine", s.Prompt())

		assert.Error(t, s.Parse([]string{"git:"}))
	})

	t.Run("registered directives", func(t *testing.T) {
		s, _ := newTestSession(t, Options{})

		var got []string
		require.NoError(t, s.RegisterDirective("complete", func(args []string) error {
			got = args
			return nil
		}))
		require.NoError(t, s.Parse([]string{"complete", "-W", "a b", "cmd"}))
		assert.Equal(t, []string{"-W", "a b", "cmd"}, got)

		assert.Error(t, s.RegisterDirective("prompt", func([]string) error { return nil }))
		assert.Error(t, s.RegisterDirective("", func([]string) error { return nil }))
	})

	t.Run("unknown and empty", func(t *testing.T) {
		s, _ := newTestSession(t, Options{})
		assert.ErrorIs(t, s.Parse([]string{"frobnicate"}), ErrUnknownDirective)
		assert.Error(t, s.Parse(nil))
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestSource(t *testing.T) {
	t.Run("applies every directive", func(t *testing.T) {
		s, eng := newTestSession(t, Options{})
		path := filepath.Join(t.TempDir(), "editrc")
		writeFile(t, path, `# editline settings
history size 25
history unique 1

prompt "git> "
git:bind ^T ed-complete
hg:bind ^T ed-search-prev-history
`)

		require.NoError(t, s.Source(path))
		assert.Equal(t, 25, s.HistorySize())
		assert.True(t, s.HistoryUnique())
		assert.Equal(t, "git> ", s.Prompt())
		assert.Equal(t, [][]string{{"^T", "ed-complete"}}, eng.bindings)
	})

	t.Run("reports every bad line and applies the rest", func(t *testing.T) {
		s, _ := newTestSession(t, Options{})
		path := filepath.Join(t.TempDir(), "editrc")
		writeFile(t, path, `history size many
prompt "ok> "
frobnicate
prompt "unterminated
history size 5
`)

		err := s.Source(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path+":1:")
		assert.Contains(t, err.Error(), path+":3:")
		assert.Contains(t, err.Error(), path+":4:")
		assert.True(t, errors.Is(err, ErrUnknownDirective))

		assert.Equal(t, "ok> ", s.Prompt())
		assert.Equal(t, 5, s.HistorySize())
	})

	t.Run("expands environment variables", func(t *testing.T) {
		t.Setenv("EDITLINE_TEST_PROMPT", "env> ")
		s, _ := newTestSession(t, Options{})
		path := filepath.Join(t.TempDir(), "editrc")
		writeFile(t, path, `prompt "$EDITLINE_TEST_PROMPT"`+"\n")

		require.NoError(t, s.Source(path))
		assert.Equal(t, "env> ", s.Prompt())
	})

	t.Run("missing explicit file", func(t *testing.T) {
		s, _ := newTestSession(t, Options{})
		assert.Error(t, s.Source(filepath.Join(t.TempDir(), "nope")))
	})

	t.Run("default location", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		core.ResetPaths()
		t.Cleanup(core.ResetPaths)

		s, _ := newTestSession(t, Options{})

		// Missing default file is fine.
		require.NoError(t, s.Source(""))

		writeFile(t, filepath.Join(home, ".editrc"), "prompt home\n")
		require.NoError(t, s.Source(""))
		assert.Equal(t, "home", s.Prompt())
	})
}

func TestSourcePromptEndingInRedirect(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	path := filepath.Join(t.TempDir(), "editrc")
	writeFile(t, path, "prompt 'editline> '\nprompt unquoted>\n")

	err := s.Source(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path+":2:")
	assert.Equal(t, "editline> ", s.Prompt())
}
