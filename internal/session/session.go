// Package session ties an editing engine, a history store and the completion
// coordinator together into one editing context.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/atinylittleshell/editline/internal/completion"
	"github.com/atinylittleshell/editline/internal/engine"
	"github.com/atinylittleshell/editline/internal/history"
	"github.com/atinylittleshell/editline/internal/styles"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// PromptMax is the prompt capacity in bytes, including a terminator; prompts
// hold at most PromptMax-1 bytes of text.
const PromptMax = 128

// Options configures a Session.
type Options struct {
	// Engine is the line editor. Required.
	Engine engine.Engine
	// Store is the history store the Session takes ownership of. A memory
	// store is created when nil.
	Store history.Store
	// Producer supplies completion candidates. Required.
	Producer completion.Producer
	// Displayer shows candidate lists. Required.
	Displayer completion.Displayer
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// ErrOut receives user-facing completion errors. Defaults to os.Stderr.
	ErrOut io.Writer
}

// Session is one editing context. It owns its history store and is not safe
// for concurrent use.
type Session struct {
	program string
	prompt  string

	store  history.Store
	size   int
	unique bool

	engine      engine.Engine
	coordinator *completion.Coordinator
	directives  map[string]DirectiveFunc

	logger *zap.Logger
	errOut io.Writer
}

// Init creates a Session for program and wires it into opts.Engine. No
// Session is returned when a collaborator is missing.
func Init(program string, opts Options) (*Session, error) {
	if opts.Engine == nil {
		return nil, errors.New("session: engine is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	coordinator, err := completion.NewCoordinator(opts.Producer, opts.Displayer, logger)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	store := opts.Store
	if store == nil {
		store = history.NewMemoryStore()
	}

	errOut := opts.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	s := &Session{
		program:     program,
		store:       store,
		engine:      opts.Engine,
		coordinator: coordinator,
		directives:  make(map[string]DirectiveFunc),
		logger:      logger.With(zap.String("program", program)),
		errOut:      errOut,
	}

	s.engine.RegisterCompletionHandler(s.complete)
	s.engine.SetPromptProvider(s.Prompt)
	s.engine.BindHistory(s.store)

	s.logger.Debug("session started")
	return s, nil
}

// End closes the engine and the history store. A Session must not be used
// after End.
func (s *Session) End() error {
	s.logger.Debug("session ended")
	var result *multierror.Error
	result = multierror.Append(result, s.engine.Close(), s.store.Close())
	return result.ErrorOrNil()
}

// complete is the handler the engine calls on a completion key.
func (s *Session) complete(key rune) completion.Directive {
	directive, err := s.coordinator.Complete(s.engine)
	if err != nil {
		s.logger.Error("completion failed", zap.Error(err), zap.Int32("key", key))
		fmt.Fprintln(s.errOut, styles.ERROR("completion failed: "+err.Error()))
	}
	return directive
}

// Program returns the program name the Session was created for.
func (s *Session) Program() string {
	return s.program
}

func (s *Session) Prompt() string {
	return s.prompt
}

// SetPrompt sets the prompt, silently truncating it to PromptMax-1 bytes
// without splitting a character.
func (s *Session) SetPrompt(prompt string) {
	s.prompt = truncatePrompt(prompt)
}

func truncatePrompt(prompt string) string {
	limit := PromptMax - 1
	if len(prompt) <= limit {
		return prompt
	}
	for limit > 0 && !utf8.RuneStart(prompt[limit]) {
		limit--
	}
	return prompt[:limit]
}

// HistorySize returns the history size limit; 0 means unlimited.
func (s *Session) HistorySize() int {
	return s.size
}

func (s *Session) SetHistorySize(size int) error {
	if err := s.store.SetSize(size); err != nil {
		return fmt.Errorf("setting history size: %w", err)
	}
	s.size = size
	return nil
}

// HistoryUnique reports whether unique mode is on.
func (s *Session) HistoryUnique() bool {
	return s.unique
}

func (s *Session) SetHistoryUnique(on bool) error {
	if err := s.store.SetUnique(on); err != nil {
		return fmt.Errorf("setting history unique mode: %w", err)
	}
	s.unique = on
	return nil
}

// HistoryEnter appends line to the history.
func (s *Session) HistoryEnter(line string) error {
	if err := s.store.Enter(line); err != nil {
		s.logger.Warn("failed to record history", zap.Error(err))
		return fmt.Errorf("recording history: %w", err)
	}
	return nil
}

func (s *Session) HistoryClear() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// HistoryCurrent returns the most recently entered line; ok is false when
// the history is empty.
func (s *Session) HistoryCurrent() (string, bool, error) {
	return history.Current(s.store)
}

// History returns every recorded line, most recent first.
func (s *Session) History() ([]string, error) {
	return history.Snapshot(s.store)
}

// Gets reads one line from the engine. ok is false at end of input.
func (s *Session) Gets() (string, bool, error) {
	return s.engine.Gets()
}
