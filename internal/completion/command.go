package completion

import (
	"fmt"
	"io"
	"strings"
)

// NewCompleteDirective returns a directive handler implementing
//
//	complete -W "word1 word2" command   register a word list
//	complete -r command                 remove the word list
//	complete [-p] [command]             print registered word lists
//
// Printed specs are written to out in a form that can be sourced again.
func NewCompleteDirective(registry *SpecRegistry, out io.Writer) func(args []string) error {
	return func(args []string) error {
		return handleCompleteCommand(registry, out, args)
	}
}

func handleCompleteCommand(registry *SpecRegistry, out io.Writer, args []string) error {
	if len(args) == 0 {
		return printCompletionSpecs(registry, out, "")
	}

	var (
		printMode  bool
		removeMode bool
		wordList   string
		command    string
	)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-p":
			printMode = true
		case "-r":
			removeMode = true
		case "-W":
			if i+1 >= len(args) {
				return fmt.Errorf("option -W requires a word list")
			}
			i++
			wordList = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("unknown option: %s", arg)
			}
			command = arg
		}
	}

	if printMode {
		return printCompletionSpecs(registry, out, command)
	}

	if command == "" {
		return fmt.Errorf("no command specified")
	}

	if removeMode {
		registry.RemoveSpec(command)
		return nil
	}

	if wordList != "" {
		registry.AddSpec(CompletionSpec{
			Command: command,
			Words:   strings.Fields(wordList),
		})
		return nil
	}

	return fmt.Errorf("invalid complete command usage")
}

func printCompletionSpecs(registry *SpecRegistry, out io.Writer, command string) error {
	if command != "" {
		if spec, ok := registry.GetSpec(command); ok {
			return printCompletionSpec(out, spec)
		}
		return nil
	}

	for _, spec := range registry.ListSpecs() {
		if err := printCompletionSpec(out, spec); err != nil {
			return err
		}
	}
	return nil
}

func printCompletionSpec(out io.Writer, spec CompletionSpec) error {
	_, err := fmt.Fprintf(out, "complete -W %q %s\n", strings.Join(spec.Words, " "), spec.Command)
	return err
}
