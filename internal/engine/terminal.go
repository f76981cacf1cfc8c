package engine

import (
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"github.com/atinylittleshell/editline/internal/completion"
	"github.com/atinylittleshell/editline/internal/history"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const defaultWidth = 80

// Terminal is an Engine backed by golang.org/x/term. Bound keys are
// intercepted through the terminal's auto-complete callback; everything else
// (cursor movement, its own recall ring, redraw) is left to x/term.
type Terminal struct {
	term *term.Terminal
	// fd is the file descriptor switched to raw mode while reading; -1 when
	// the terminal is driven through a plain io.ReadWriter.
	fd     int
	logger *zap.Logger

	bindings map[rune]string
	handler  CompletionHandler
	prompt   func() string
	store    history.Store

	// active is the line being edited while a bound key is handled.
	active *Buffer
	search searchState
}

// searchState remembers an in-progress history search so repeated presses
// step to older matches.
type searchState struct {
	matches []string
	index   int
	// last is the line the previous step produced.
	last string
}

// Ensure Terminal implements Engine.
var _ Engine = (*Terminal)(nil)

// NewTerminal creates an engine reading from in, which must be a terminal,
// and writing to out.
func NewTerminal(in *os.File, out io.Writer, logger *zap.Logger) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("input is not a terminal")
	}

	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	return newTerminal(rw, fd, logger), nil
}

func newTerminal(rw io.ReadWriter, fd int, logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Terminal{
		term:     term.NewTerminal(rw, ""),
		fd:       fd,
		logger:   logger,
		bindings: defaultBindings(),
	}
	t.term.AutoCompleteCallback = t.handleKey
	return t
}

// Output returns a writer that prints above the line being edited and then
// redraws the prompt.
func (t *Terminal) Output() io.Writer {
	return t.term
}

// Width returns the terminal width in columns.
func (t *Terminal) Width() int {
	if t.fd >= 0 {
		if w, _, err := term.GetSize(t.fd); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

func (t *Terminal) RegisterCompletionHandler(handler CompletionHandler) {
	t.handler = handler
}

func (t *Terminal) SetPromptProvider(provider func() string) {
	t.prompt = provider
}

func (t *Terminal) BindHistory(store history.Store) {
	t.store = store
}

func (t *Terminal) Bind(args []string) error {
	return applyBind(t.bindings, args)
}

func (t *Terminal) Line() (completion.LineSnapshot, bool) {
	if t.active == nil {
		return completion.LineSnapshot{}, false
	}
	return t.active.Line()
}

func (t *Terminal) DeleteBeforeCursor(n int) {
	if t.active != nil {
		t.active.DeleteBeforeCursor(n)
	}
}

func (t *Terminal) InsertAtCursor(text string) {
	if t.active != nil {
		t.active.InsertAtCursor(text)
	}
}

func (t *Terminal) Gets() (string, bool, error) {
	if t.prompt != nil {
		t.term.SetPrompt(t.prompt())
	}

	if t.fd >= 0 {
		state, err := term.MakeRaw(t.fd)
		if err != nil {
			return "", false, err
		}
		defer term.Restore(t.fd, state)

		if w, h, err := term.GetSize(t.fd); err == nil {
			t.term.SetSize(w, h)
		}
	}

	line, err := t.term.ReadLine()
	t.search = searchState{}
	if errors.Is(err, io.EOF) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return line, true, nil
}

func (t *Terminal) Close() error {
	t.active = nil
	t.store = nil
	return nil
}

// handleKey is the x/term auto-complete callback. pos and the returned
// position are byte offsets into line.
func (t *Terminal) handleKey(line string, pos int, key rune) (string, int, bool) {
	action, ok := t.bindings[key]
	if !ok {
		return "", 0, false
	}

	buf := NewBufferWithText(line)
	buf.SetPos(utf8.RuneCountInString(line[:pos]))
	t.active = buf
	defer func() { t.active = nil }()

	var directive completion.Directive
	switch action {
	case ActionComplete:
		if t.handler == nil {
			return "", 0, false
		}
		directive = t.handler(key)
	case ActionSearchHistory:
		directive = t.searchHistory(buf)
	}

	t.logger.Debug("key handled",
		zap.String("action", action),
		zap.Stringer("directive", directive),
	)

	switch directive {
	case completion.Refresh, completion.Redisplay:
		return buf.Text(), len(buf.TextBeforeCursor()), true
	default:
		return "", 0, false
	}
}

// searchHistory replaces the line with the next older history entry matching
// what was typed when the search started.
func (t *Terminal) searchHistory(buf *Buffer) completion.Directive {
	if t.store == nil {
		return completion.Error
	}

	if t.search.matches == nil || buf.Text() != t.search.last {
		entries, err := history.Snapshot(t.store)
		if err != nil {
			t.logger.Warn("history search failed", zap.Error(err))
			return completion.Error
		}
		t.search = searchState{
			matches: history.Search(entries, buf.Text()),
			index:   -1,
		}
	}

	if len(t.search.matches) == 0 {
		return completion.Error
	}

	t.search.index = (t.search.index + 1) % len(t.search.matches)
	t.search.last = t.search.matches[t.search.index]
	buf.SetText(t.search.last)
	return completion.Refresh
}
