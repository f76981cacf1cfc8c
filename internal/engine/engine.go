// Package engine adapts concrete line-editing front ends to the interface the
// completion and history core expects. The Terminal engine drives an
// interactive terminal through golang.org/x/term; the Reader engine serves
// non-interactive input.
package engine

import (
	"github.com/atinylittleshell/editline/internal/completion"
	"github.com/atinylittleshell/editline/internal/history"
)

// CompletionHandler is invoked by an engine when a key bound to completion
// is pressed. The returned directive tells the engine how to redraw.
type CompletionHandler func(key rune) completion.Directive

// Engine is a line editor. While a CompletionHandler runs, the embedded
// LineEditor methods operate on the line being edited; outside of a handler
// Line reports that no line is available.
type Engine interface {
	completion.LineEditor

	// RegisterCompletionHandler installs the handler for completion keys.
	RegisterCompletionHandler(handler CompletionHandler)
	// SetPromptProvider installs the function queried for the prompt before
	// each line is read.
	SetPromptProvider(provider func() string)
	// BindHistory gives the engine read access to the history store.
	BindHistory(store history.Store)

	// Gets reads one line. ok is false at end of input.
	Gets() (line string, ok bool, err error)
	// Bind applies a key binding directive, e.g. ["^I", "ed-complete"].
	Bind(args []string) error
	// Close releases the engine.
	Close() error
}
