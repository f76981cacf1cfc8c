package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderGets(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(strings.NewReader("first\r\nsecond\nlast"), &out)
	r.SetPromptProvider(func() string { return "> " })

	for _, want := range []string{"first", "second", "last"} {
		line, ok, err := r.Gets()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, line)
	}

	_, ok, err := r.Gets()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "> > > > ", out.String())
}

func TestReaderHasNoLine(t *testing.T) {
	r := NewReader(strings.NewReader(""), nil)

	_, ok := r.Line()
	assert.False(t, ok)

	// No-ops without a line.
	r.DeleteBeforeCursor(3)
	r.InsertAtCursor("x")

	assert.NoError(t, r.Bind([]string{"^I", ActionComplete}))
	assert.Error(t, r.Bind([]string{"^A", ActionComplete}))
	assert.NoError(t, r.Close())
}
