package completion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDirectory creates a test directory structure for completion tests.
// Structure:
//
//	tmpDir/
//	  file1.txt
//	  file2.txt
//	  .hidden
//	  folder1/
//	    inside.txt
//	    deep/
//	      nested.txt
//	  folder2/
//	    other.txt
func setupTestDirectory(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	structure := []string{
		"file1.txt",
		"file2.txt",
		".hidden",
		"folder1/inside.txt",
		"folder1/deep/nested.txt",
		"folder2/other.txt",
	}

	for _, f := range structure {
		path := filepath.Join(tmpDir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("test"), 0644))
	}

	return tmpDir
}

func TestFileCompletions(t *testing.T) {
	tmpDir := setupTestDirectory(t)

	tests := []struct {
		name     string
		prefix   string
		expected []string
	}{
		{"empty prefix lists root contents", "", []string{".hidden", "file1.txt", "file2.txt", "folder1/", "folder2/"}},
		{"partial file name", "file", []string{"file1.txt", "file2.txt"}},
		{"partial directory name", "folder", []string{"folder1/", "folder2/"}},
		{"exact file name", "file1.txt", []string{"file1.txt"}},
		{"1-level deep with trailing slash", "folder1/", []string{"folder1/deep/", "folder1/inside.txt"}},
		{"1-level deep with partial name", "folder1/i", []string{"folder1/inside.txt"}},
		{"2-level deep with partial name", "folder1/deep/n", []string{"folder1/deep/nested.txt"}},
		{"no match", "nonexistent", []string{}},
		{"dot-slash root listing", "./", []string{"./.hidden", "./file1.txt", "./file2.txt", "./folder1/", "./folder2/"}},
		{"dot-slash partial directory", "./folder1/d", []string{"./folder1/deep/"}},
		{"dot-slash hidden file", "./.h", []string{"./.hidden"}},
		{"nonexistent directory", "nonexistent/path/", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := GetFileCompletions(tt.prefix, tmpDir)
			assert.Equal(t, tt.expected, results)

			if strings.HasPrefix(tt.prefix, "./") {
				for _, r := range results {
					assert.True(t, strings.HasPrefix(r, "./"),
						"Result %q should preserve './' prefix for input %q", r, tt.prefix)
				}
			}
		})
	}
}

func TestFileCompletionsAbsolutePath(t *testing.T) {
	tmpDir := setupTestDirectory(t)

	results := GetFileCompletions(filepath.Join(tmpDir, "folder2")+"/", "/")
	assert.Equal(t, []string{filepath.Join(tmpDir, "folder2", "other.txt")}, results)
}

func TestFileCompletionsHomePath(t *testing.T) {
	home := setupTestDirectory(t)
	t.Setenv("HOME", home)

	results := GetFileCompletions("~/folder1/", "/")
	assert.Equal(t, []string{"~/folder1/deep/", "~/folder1/inside.txt"}, results)
}

func TestFileCompletionsParentPath(t *testing.T) {
	tmpDir := setupTestDirectory(t)

	results := GetFileCompletions("../file", filepath.Join(tmpDir, "folder2"))
	assert.Equal(t, []string{"../file1.txt", "../file2.txt"}, results)
}

func TestFileCompletionsSymlinkedDirectory(t *testing.T) {
	tmpDir := setupTestDirectory(t)
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "folder2"), filepath.Join(tmpDir, "link")))

	results := GetFileCompletions("li", tmpDir)
	assert.Equal(t, []string{"link/"}, results)
}
