package completion

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// osReadDir is a variable that can be overridden for testing.
var osReadDir = os.ReadDir

// CommandCompleter provides completions for command names found on PATH and
// for executables addressed by path.
type CommandCompleter struct {
	pwdGetter func() string
}

// NewCommandCompleter creates a new CommandCompleter.
func NewCommandCompleter(pwdGetter func() string) *CommandCompleter {
	return &CommandCompleter{
		pwdGetter: pwdGetter,
	}
}

// IsPathBasedCommand determines if a command looks like a path rather than a simple command name.
func (c *CommandCompleter) IsPathBasedCommand(command string) bool {
	return strings.HasPrefix(command, "/") ||
		strings.HasPrefix(command, "./") ||
		strings.HasPrefix(command, "../") ||
		strings.HasPrefix(command, "~/") ||
		strings.Contains(command, "/")
}

// GetExecutableCompletions returns executable files that match the given path prefix.
func (c *CommandCompleter) GetExecutableCompletions(pathPrefix string) []string {
	var searchDir, filePrefix string
	if strings.HasSuffix(pathPrefix, "/") {
		searchDir = pathPrefix
	} else {
		searchDir = filepath.Dir(pathPrefix)
		filePrefix = filepath.Base(pathPrefix)
		if searchDir == "." && !strings.Contains(pathPrefix, "/") {
			return []string{}
		}
	}

	entries, err := osReadDir(resolveDir(searchDir, c.pwdGetter()))
	if err != nil {
		return []string{}
	}

	completions := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), filePrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.Mode()&0111 == 0 {
			continue
		}

		if strings.HasSuffix(pathPrefix, "/") {
			completions = append(completions, pathPrefix+entry.Name())
		} else {
			completions = append(completions, strings.TrimSuffix(searchDir, "/")+"/"+entry.Name())
		}
	}

	sort.Strings(completions)
	return completions
}

// GetAvailableCommands returns the names of files on PATH that start with prefix.
func (c *CommandCompleter) GetAvailableCommands(prefix string) []string {
	commands := make(map[string]bool)

	pathEnv := os.Getenv("PATH")
	if pathEnv != "" {
		for _, dir := range filepath.SplitList(pathEnv) {
			entries, err := osReadDir(dir)
			if err != nil {
				continue
			}

			for _, entry := range entries {
				if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
					commands[entry.Name()] = true
				}
			}
		}
	}

	completions := make([]string, 0, len(commands))
	for cmd := range commands {
		completions = append(completions, cmd)
	}

	sort.Strings(completions)
	return completions
}
