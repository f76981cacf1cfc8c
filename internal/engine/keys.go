package engine

import (
	"fmt"
	"unicode/utf8"
)

// Actions a key can be bound to.
const (
	ActionComplete      = "ed-complete"
	ActionSearchHistory = "ed-search-prev-history"
)

var knownActions = map[string]bool{
	ActionComplete:      true,
	ActionSearchHistory: true,
}

// reservedKeys are handled by the terminal itself and never reach a binding.
var reservedKeys = map[rune]bool{
	1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 8: true,
	11: true, 12: true, 13: true, 14: true, 16: true, 21: true, 23: true,
	127: true,
}

func defaultBindings() map[rune]string {
	return map[rune]string{
		'\t': ActionComplete,
		18:   ActionSearchHistory, // ^R
	}
}

// parseKey understands caret notation ("^I", "^?"), the escapes "\t" and
// "\e", and single characters.
func parseKey(spec string) (rune, error) {
	switch {
	case len(spec) == 2 && spec[0] == '^':
		c := spec[1]
		if c == '?' {
			return 127, nil
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < '@' || c > '_' {
			return 0, fmt.Errorf("invalid control key %q", spec)
		}
		return rune(c & 0x1f), nil
	case spec == `\t`:
		return '\t', nil
	case spec == `\e`:
		return 27, nil
	case utf8.RuneCountInString(spec) == 1:
		r, _ := utf8.DecodeRuneInString(spec)
		return r, nil
	default:
		return 0, fmt.Errorf("invalid key %q", spec)
	}
}

// formatKey renders r the way parseKey accepts it.
func formatKey(r rune) string {
	switch {
	case r == 127:
		return "^?"
	case r < 32:
		return "^" + string(rune(r+'@'))
	default:
		return string(r)
	}
}

// applyBind updates bindings according to a bind directive:
//
//	bind KEY ACTION   bind KEY to ACTION
//	bind -r KEY       remove the binding for KEY
func applyBind(bindings map[rune]string, args []string) error {
	switch {
	case len(args) == 2 && args[0] == "-r":
		key, err := parseKey(args[1])
		if err != nil {
			return err
		}
		delete(bindings, key)
		return nil
	case len(args) == 2:
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		if reservedKeys[key] {
			return fmt.Errorf("key %s is handled by the terminal and cannot be bound", formatKey(key))
		}
		if !knownActions[args[1]] {
			return fmt.Errorf("unknown editor action %q", args[1])
		}
		bindings[key] = args[1]
		return nil
	default:
		return fmt.Errorf("usage: bind KEY ACTION | bind -r KEY")
	}
}
