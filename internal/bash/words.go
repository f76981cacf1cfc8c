// Package bash splits directive lines into words using shell quoting rules.
package bash

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// ErrUnsupported is returned for shell constructs other than simple commands.
var ErrUnsupported = errors.New("unsupported shell construct")

// Environ returns the process environment for parameter expansion.
func Environ() expand.Environ {
	return expand.ListEnviron(os.Environ()...)
}

// SplitCommands parses source as shell syntax and returns the words of each
// simple command in order, with quotes removed and parameters expanded from
// env. A nil env expands every parameter to the empty string.
// Comments and empty lines produce no command. Shell operators keep their
// meaning, so a word containing '>', '|', '&' or ';' must be quoted.
func SplitCommands(source string, env expand.Environ) ([][]string, error) {
	cfg := &expand.Config{Env: env}

	var (
		commands [][]string
		stmtErr  error
	)
	err := syntax.NewParser().Stmts(strings.NewReader(source), func(stmt *syntax.Stmt) bool {
		call, ok := stmt.Cmd.(*syntax.CallExpr)
		if !ok || len(call.Assigns) > 0 || len(stmt.Redirs) > 0 || stmt.Background || stmt.Negated {
			stmtErr = ErrUnsupported
			return false
		}

		words := make([]string, 0, len(call.Args))
		for _, word := range call.Args {
			s, err := expand.Literal(cfg, word)
			if err != nil {
				stmtErr = fmt.Errorf("failed to expand %q: %w", source, err)
				return false
			}
			words = append(words, s)
		}
		commands = append(commands, words)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse directive: %w", err)
	}
	if stmtErr != nil {
		return nil, stmtErr
	}

	return commands, nil
}
