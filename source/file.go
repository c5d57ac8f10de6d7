package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

// ErrPathIsDirectory is returned when the path provided to NewFile points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// StdinName is the input name that stands for standard input.
const StdinName = "-"

// Fetcher returns raw configuration data together with the name it was read
// from. The name drives extension-based codec lookup.
type Fetcher interface {
	Name() string
	Fetch() ([]byte, error)
}

// File implements Fetcher for file-based configuration.
type File struct {
	filepath string
	data     []byte
}

// NewFile reads the file at fpath and caches its contents. It returns an
// error if the file cannot be read or if the path points to a directory.
func NewFile(fpath string) (*File, error) {
	cleanPath := filepath.Clean(fpath)

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return &File{
		filepath: cleanPath,
		data:     data,
	}, nil
}

// Name returns the cleaned file path.
func (f *File) Name() string {
	return f.filepath
}

// Fetch returns a copy of the cached configuration data that was read at construction time.
// A copy is returned to prevent callers from mutating the cached data.
func (f *File) Fetch() ([]byte, error) {
	return slices.Clone(f.data), nil
}

// Reader implements Fetcher over an io.Reader. The reader is drained on the
// first Fetch and the data cached for later calls.
type Reader struct {
	name   string
	reader io.Reader
	data   []byte
	read   bool
}

// NewReader wraps r under name.
func NewReader(name string, r io.Reader) *Reader {
	return &Reader{name: name, reader: r}
}

// Name returns the name given to NewReader.
func (r *Reader) Name() string {
	return r.name
}

// Fetch returns the reader's contents.
func (r *Reader) Fetch() ([]byte, error) {
	if !r.read {
		data, err := io.ReadAll(r.reader)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", r.name, err)
		}

		r.data = data
		r.read = true
	}

	return slices.Clone(r.data), nil
}

// Expand resolves glob patterns into paths. Each pattern's matches are sorted
// and patterns keep their order; a path listed twice is kept once. Patterns
// without glob meta characters pass through even if the file does not exist,
// so that the caller decides how to treat missing files.
func Expand(patterns ...string) ([]string, error) {
	var paths []string

	seen := make(map[string]bool)

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		if !IsGlob(pattern) {
			add(pattern)

			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}

		slices.Sort(matches)

		for _, match := range matches {
			add(match)
		}
	}

	return paths, nil
}

// IsGlob reports whether pattern contains glob meta characters.
func IsGlob(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[':
			return true
		}
	}

	return false
}
