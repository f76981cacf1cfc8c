package completion

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Directive tells the line editor how to redraw after a completion request.
type Directive int

const (
	// NoAction leaves the display as it is.
	NoAction Directive = iota
	// Refresh redraws the edited line.
	Refresh
	// Redisplay redraws the prompt and line after other output was written.
	Redisplay
	// Error signals that nothing was completed.
	Error
)

func (d Directive) String() string {
	switch d {
	case NoAction:
		return "NoAction"
	case Refresh:
		return "Refresh"
	case Redisplay:
		return "Redisplay"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Directive(%d)", int(d))
	}
}

// LineSnapshot is a copy of the edit buffer taken for one request.
type LineSnapshot struct {
	Text string
	// Cursor is a rune offset into Text.
	Cursor int
}

// LineEditor is the part of the line editing engine a completion request may
// touch: it can read the line and replace text immediately before the cursor.
type LineEditor interface {
	// Line returns the current buffer. ok is false when no line is being edited.
	Line() (snapshot LineSnapshot, ok bool)
	// DeleteBeforeCursor removes n runes ending at the cursor.
	DeleteBeforeCursor(n int)
	// InsertAtCursor inserts text at the cursor and moves the cursor past it.
	InsertAtCursor(text string)
}

// Coordinator applies the completion policy: a single candidate replaces the
// token, several candidates are displayed and their common prefix replaces
// the token, and no candidates leave the line untouched.
type Coordinator struct {
	producer  Producer
	displayer Displayer
	logger    *zap.Logger
}

// NewCoordinator creates a Coordinator. A nil logger disables logging.
func NewCoordinator(producer Producer, displayer Displayer, logger *zap.Logger) (*Coordinator, error) {
	if producer == nil {
		return nil, errors.New("completion producer is required")
	}
	if displayer == nil {
		return nil, errors.New("completion displayer is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Coordinator{
		producer:  producer,
		displayer: displayer,
		logger:    logger,
	}, nil
}

// Complete runs one completion request against editor. The returned error is
// non-nil only when a candidate could not be read; the directive is Error in
// that case and the line has not been modified.
func (c *Coordinator) Complete(editor LineEditor) (Directive, error) {
	var (
		token  Token
		line   string
		cursor int
	)
	if snapshot, ok := editor.Line(); ok {
		line = snapshot.Text
		cursor = snapshot.Cursor
		token = ExtractToken(line, cursor)
	}

	candidates := c.producer.Produce(token.Text, line, cursor)
	if candidates == nil || candidates.Len() == 0 {
		c.logger.Debug("no completion candidates", zap.String("token", token.Text))
		return Error, nil
	}

	if candidates.Len() == 1 {
		candidate, err := candidates.At(0)
		if err != nil {
			return Error, fmt.Errorf("completing %q: %w", token.Text, err)
		}
		replaceToken(editor, token, candidate)
		return Refresh, nil
	}

	all, err := materialize(candidates)
	if err != nil {
		return Error, fmt.Errorf("completing %q: %w", token.Text, err)
	}

	c.displayer.Display(all)

	if prefix := CommonPrefix(all); prefix != "" {
		replaceToken(editor, token, prefix)
	}

	c.logger.Debug("displayed completion candidates",
		zap.String("token", token.Text),
		zap.Int("count", len(all)),
	)
	return Redisplay, nil
}

func replaceToken(editor LineEditor, token Token, text string) {
	editor.DeleteBeforeCursor(token.Length)
	editor.InsertAtCursor(text)
}
