package engine

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/atinylittleshell/editline/internal/completion"
	"github.com/atinylittleshell/editline/internal/history"
)

// Reader is an Engine for non-interactive input such as a pipe or a file.
// It never edits lines, so completion handlers are never invoked and Line
// always reports that no line is available.
type Reader struct {
	in      *bufio.Reader
	out     io.Writer
	prompt  func() string
	handler CompletionHandler
	store   history.Store
}

var _ Engine = (*Reader)(nil)

// NewReader creates an engine reading lines from in. When out is non-nil the
// prompt is written to it before each line.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (r *Reader) RegisterCompletionHandler(handler CompletionHandler) {
	r.handler = handler
}

func (r *Reader) SetPromptProvider(provider func() string) {
	r.prompt = provider
}

func (r *Reader) BindHistory(store history.Store) {
	r.store = store
}

// Bind validates the directive but has no effect on a reader.
func (r *Reader) Bind(args []string) error {
	return applyBind(defaultBindings(), args)
}

func (r *Reader) Line() (completion.LineSnapshot, bool) {
	return completion.LineSnapshot{}, false
}

func (r *Reader) DeleteBeforeCursor(int) {}

func (r *Reader) InsertAtCursor(string) {}

func (r *Reader) Gets() (string, bool, error) {
	if r.out != nil && r.prompt != nil {
		if _, err := io.WriteString(r.out, r.prompt()); err != nil {
			return "", false, err
		}
	}

	line, err := r.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	if line == "" && err != nil {
		return "", false, nil
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true, nil
}

func (r *Reader) Close() error {
	r.store = nil
	return nil
}
