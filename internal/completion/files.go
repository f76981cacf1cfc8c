package completion

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// GetFileCompletions returns the paths that complete prefix, resolved against
// pwd when prefix is relative. The directory part of prefix is kept verbatim
// in every result and directories carry a trailing slash.
func GetFileCompletions(prefix string, pwd string) []string {
	dir, base := "", prefix
	if i := strings.LastIndex(prefix, "/"); i >= 0 {
		dir, base = prefix[:i+1], prefix[i+1:]
	}

	searchDir := resolveDir(dir, pwd)
	entries, err := osReadDir(searchDir)
	if err != nil {
		return []string{}
	}

	completions := []string{}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), base) {
			continue
		}

		name := dir + entry.Name()
		if isDirEntry(searchDir, entry) {
			name += "/"
		}
		completions = append(completions, name)
	}

	sort.Strings(completions)
	return completions
}

// resolveDir maps the directory part of a typed path onto the filesystem.
func resolveDir(dir string, pwd string) string {
	switch {
	case dir == "":
		return pwd
	case strings.HasPrefix(dir, "~/"):
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return dir
		}
		return filepath.Join(homeDir, dir[2:])
	case filepath.IsAbs(dir):
		return dir
	default:
		return filepath.Join(pwd, dir)
	}
}

func isDirEntry(dir string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}
