// Package completion decides what the user is completing and how the edit
// buffer changes as a result. It holds the token and common-prefix
// algorithms, the Coordinator that applies the completion policy, and a
// Provider that produces candidates from word lists, PATH and the filesystem.
package completion

import (
	"os"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// Provider produces completion candidates for a shell-like command line.
// It routes each request to the appropriate source: registered word lists
// for a command's arguments, command names for the first word, and file
// paths otherwise.
type Provider struct {
	specRegistry     *SpecRegistry
	commandCompleter *CommandCompleter
	pwdGetter        func() string
}

// Ensure Provider implements Producer.
var _ Producer = (*Provider)(nil)

// NewProvider creates a new Provider. A nil pwdGetter resolves relative paths
// against the process working directory.
func NewProvider(registry *SpecRegistry, pwdGetter func() string) *Provider {
	if registry == nil {
		registry = NewSpecRegistry()
	}
	if pwdGetter == nil {
		pwdGetter = func() string {
			pwd, err := os.Getwd()
			if err != nil {
				return "."
			}
			return pwd
		}
	}

	return &Provider{
		specRegistry:     registry,
		commandCompleter: NewCommandCompleter(pwdGetter),
		pwdGetter:        pwdGetter,
	}
}

// Registry returns the word-list registry consulted by the provider.
func (p *Provider) Registry() *SpecRegistry {
	return p.specRegistry
}

// Produce implements Producer.
func (p *Provider) Produce(token, line string, cursor int) Candidates {
	runes := []rune(line)
	if cursor < 0 || cursor > len(runes) {
		return nil
	}
	before := string(runes[:cursor])

	words := strings.Fields(before)
	newWord := len(before) > 0 && unicode.IsSpace(runes[cursor-1])
	if newWord {
		words = append(words, "")
	}
	if len(words) == 0 {
		return nil
	}

	command := words[0]

	if len(words) > 1 {
		if spec, ok := p.specRegistry.GetSpec(command); ok {
			return Strings(p.specRegistry.Complete(spec, token))
		}
	}

	if len(words) == 1 {
		if p.commandCompleter.IsPathBasedCommand(command) {
			return Strings(p.commandCompleter.GetExecutableCompletions(command))
		}
		return Strings(p.commandCompleter.GetAvailableCommands(command))
	}

	return p.fileCandidates(token, before)
}

// fileCandidates completes the path being typed at the end of before. Spaces
// in file names are written as "\ ". Since the token ends at the last space,
// each candidate is returned as the text that replaces the token: the part of
// the escaped path after what was typed before the token.
func (p *Provider) fileCandidates(token, before string) Candidates {
	raw, path := lastShellWord(before)
	typed := strings.TrimSuffix(raw, token)

	completions := GetFileCompletions(path, p.pwdGetter())
	return Strings(lo.FilterMap(completions, func(completion string, _ int) (string, bool) {
		escaped := escapeSpaces(completion)
		if !strings.HasPrefix(escaped, typed) {
			return "", false
		}
		return escaped[len(typed):], true
	}))
}

// lastShellWord returns the word at the end of text, where a backslash
// escapes the following character. raw is the word as typed and literal has
// the escapes removed.
func lastShellWord(text string) (raw string, literal string) {
	var (
		rawWord     []rune
		literalWord []rune
		escaped     bool
	)
	for _, r := range text {
		switch {
		case escaped:
			rawWord = append(rawWord, r)
			literalWord = append(literalWord, r)
			escaped = false
		case r == '\\':
			rawWord = append(rawWord, r)
			escaped = true
		case unicode.IsSpace(r):
			rawWord = rawWord[:0]
			literalWord = literalWord[:0]
		default:
			rawWord = append(rawWord, r)
			literalWord = append(literalWord, r)
		}
	}
	return string(rawWord), string(literalWord)
}

func escapeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "\\ ")
}
