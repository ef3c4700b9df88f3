package fs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"exifsort/internal/sorter"
)

// TreeWalker enumerates regular files under a root using an explicit
// stack, so arbitrarily deep trees never grow the goroutine stack.
type TreeWalker struct {
	fs       afero.Fs
	patterns []string
	logger   sorter.Logger
}

// NewTreeWalker creates a TreeWalker. ignorePatterns are combined with the
// built-in defaults and with the patterns in the root's ignore file.
func NewTreeWalker(fsys afero.Fs, ignorePatterns []string, logger sorter.Logger) *TreeWalker {
	if logger == nil {
		logger = sorter.NewNopLogger()
	}
	return &TreeWalker{fs: fsys, patterns: ignorePatterns, logger: logger}
}

// Walk returns every regular file under root. Directories that cannot be
// listed are logged and skipped. Symlinks, devices and other non-regular
// entries are not returned. Any directory in exclude, and everything below
// it, is skipped. Exclude entries that are not strictly below root are
// ignored, so an input that sits inside (or equals) the output is still
// walked in full.
//
// Root must exist and be a directory; otherwise the error wraps
// sorter.ErrInvalidInput and nothing is walked.
func (w *TreeWalker) Walk(root string, exclude ...string) ([]sorter.FileHandle, error) {
	info, err := w.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", sorter.ErrInvalidInput, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", sorter.ErrInvalidInput, root)
	}

	fromFile, err := ParseIgnoreFile(w.fs, filepath.Join(root, IgnoreFileName))
	if err != nil {
		w.logger.Warn("ignore file unreadable", "path", filepath.Join(root, IgnoreFileName), "error", err)
	}
	exclude = nestedIn(root, exclude)
	patterns := append(append(append([]string{}, defaultIgnorePatterns...), w.patterns...), fromFile...)
	matcher := NewIgnoreMatcher(patterns)

	var files []sorter.FileHandle
	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := afero.ReadDir(w.fs, dir)
		if err != nil {
			w.logger.Warn("directory unreadable", "dir", dir, "error", err)
			continue
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = entry.Name()
			}
			if matcher.Match(rel) {
				continue
			}

			switch {
			case entry.IsDir():
				if isExcluded(path, exclude) {
					w.logger.Debug("excluded directory", "dir", path)
					continue
				}
				stack = append(stack, path)
			case entry.Mode().IsRegular():
				files = append(files, sorter.NewFileHandle(path, entry.Size()))
			}
		}
	}

	return files, nil
}

// nestedIn keeps the entries of exclude that lie strictly below root.
func nestedIn(root string, exclude []string) []string {
	var kept []string
	for _, ex := range exclude {
		if ex == "" || filepath.Clean(ex) == filepath.Clean(root) || !isUnder(ex, root) {
			continue
		}
		kept = append(kept, ex)
	}
	return kept
}

func isExcluded(path string, exclude []string) bool {
	for _, ex := range exclude {
		if ex != "" && isUnder(path, ex) {
			return true
		}
	}
	return false
}

// isUnder reports whether path equals dir or lies below it.
func isUnder(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

var _ sorter.Walker = (*TreeWalker)(nil)
