package session

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atinylittleshell/editline/internal/bash"
	"github.com/atinylittleshell/editline/internal/core"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// DirectiveFunc handles a directive registered with RegisterDirective. args
// holds the directive's arguments without its name.
type DirectiveFunc func(args []string) error

// ErrUnknownDirective is returned by Parse for a directive no handler knows.
var ErrUnknownDirective = errors.New("unknown directive")

// RegisterDirective makes name available to Parse and Source. Built-in
// directives cannot be replaced.
func (s *Session) RegisterDirective(name string, fn DirectiveFunc) error {
	switch name {
	case "history", "prompt", "bind":
		return fmt.Errorf("directive %q is built in", name)
	case "":
		return errors.New("directive name is required")
	}
	s.directives[name] = fn
	return nil
}

// Parse applies one directive. The first argument may be prefixed with
// "program:", in which case the directive is ignored unless program matches
// the Session's program name.
//
//	history size N      limit the history to N entries (0 = unlimited)
//	history unique 0|1  drop lines equal to the most recent entry
//	history clear       remove all entries
//	prompt TEXT...      set the prompt
//	bind ...            forwarded to the engine
func (s *Session) Parse(args []string) error {
	if len(args) == 0 {
		return errors.New("empty directive")
	}

	name := args[0]
	if program, rest, found := strings.Cut(name, ":"); found {
		if program != s.program {
			s.logger.Debug("skipping directive for another program", zap.String("directive", name))
			return nil
		}
		if rest == "" {
			return fmt.Errorf("missing directive after %q", name)
		}
		name = rest
	}
	args = args[1:]

	switch name {
	case "history":
		return s.parseHistory(args)
	case "prompt":
		s.SetPrompt(strings.Join(args, " "))
		return nil
	case "bind":
		return s.engine.Bind(args)
	}

	if fn, ok := s.directives[name]; ok {
		return fn(args)
	}
	return fmt.Errorf("%w: %s", ErrUnknownDirective, name)
}

func (s *Session) parseHistory(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: history size N | history unique 0|1 | history clear")
	}

	switch {
	case args[0] == "clear" && len(args) == 1:
		return s.HistoryClear()
	case args[0] == "size" && len(args) == 2:
		size, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid history size %q", args[1])
		}
		return s.SetHistorySize(size)
	case args[0] == "unique" && len(args) == 2:
		on, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid history unique value %q", args[1])
		}
		return s.SetHistoryUnique(on)
	default:
		return fmt.Errorf("invalid history directive: %s", strings.Join(args, " "))
	}
}

// Source applies every directive in the file at path. An empty path means
// the default editrc; a missing default file is not an error. Every failing
// line is reported in the returned error as path:line, and the remaining
// lines are still applied. Lines use shell quoting, so a prompt ending in
// '>' must be quoted: prompt 'editline> '.
func (s *Session) Source(path string) error {
	explicit := path != ""
	if !explicit {
		path = core.EditRCFile()
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open directive file: %w", err)
	}
	defer f.Close()

	env := bash.Environ()

	var result *multierror.Error
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		commands, err := bash.SplitCommands(line, env)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s:%d: %w", path, lineNo, err))
			continue
		}
		for _, args := range commands {
			if err := s.Parse(args); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s:%d: %w", path, lineNo, err))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
	}

	if err := result.ErrorOrNil(); err != nil {
		s.logger.Warn("errors in directive file", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
