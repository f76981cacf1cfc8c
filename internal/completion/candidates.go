package completion

import (
	"errors"
	"fmt"
)

// ErrCandidateUnavailable is returned when the text of a candidate cannot be
// materialised by the producer that supplied it.
var ErrCandidateUnavailable = errors.New("completion candidate unavailable")

// Candidates is the ordered result of one completion request. Reading an
// entry may fail, in which case the request is abandoned.
type Candidates interface {
	Len() int
	At(i int) (string, error)
}

// Strings is a Candidates backed by a plain slice.
type Strings []string

// Ensure Strings implements Candidates.
var _ Candidates = Strings(nil)

func (s Strings) Len() int {
	return len(s)
}

func (s Strings) At(i int) (string, error) {
	if i < 0 || i >= len(s) {
		return "", fmt.Errorf("%w: index %d out of range [0,%d)", ErrCandidateUnavailable, i, len(s))
	}
	return s[i], nil
}

// Producer returns the candidates for a token. token is the text immediately
// before the cursor, line is the whole buffer and cursor is the rune offset of
// the cursor in line. A nil result means no candidates.
type Producer interface {
	Produce(token, line string, cursor int) Candidates
}

// ProducerFunc adapts an ordinary function to the Producer interface.
type ProducerFunc func(token, line string, cursor int) Candidates

func (f ProducerFunc) Produce(token, line string, cursor int) Candidates {
	return f(token, line, cursor)
}

// Displayer shows a list of candidates to the user.
type Displayer interface {
	Display(candidates []string)
}

// DisplayerFunc adapts an ordinary function to the Displayer interface.
type DisplayerFunc func(candidates []string)

func (f DisplayerFunc) Display(candidates []string) {
	f(candidates)
}

// materialize reads every candidate into a slice. Nothing is returned if any
// entry fails.
func materialize(candidates Candidates) ([]string, error) {
	result := make([]string, candidates.Len())
	for i := range result {
		s, err := candidates.At(i)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		result[i] = s
	}
	return result, nil
}
