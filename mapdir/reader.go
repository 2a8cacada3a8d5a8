// Package mapdir lists map item files in a world's data directory.
package mapdir

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"
)

// DefaultPattern matches map item file names such as "map_12.dat".
var DefaultPattern = regexp.MustCompile(`(?i)^map`)

// File is one candidate map item file.
type File struct {
	Name    string
	Data    []byte
	ModTime time.Time
}

// Reader visits the map item files of a single directory. Subdirectories and
// hidden files are not visited.
type Reader struct {
	dir     string
	pattern *regexp.Regexp
}

type ReaderOption func(*Reader)

// WithPattern sets the regular expression file names must match.
func WithPattern(pattern *regexp.Regexp) ReaderOption {
	return func(r *Reader) { r.pattern = pattern }
}

// NewReader creates a new Reader for the given directory.
func NewReader(dir string, opts ...ReaderOption) (*Reader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mapcombine: %s is not a directory", dir)
	}

	r := &Reader{dir: dir, pattern: DefaultPattern}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Names returns the names of matching files in lexical order.
func (r *Reader) Names() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.Type().IsRegular() {
			continue
		}
		if !r.pattern.MatchString(name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// ReadFile reads one file returned by Names.
func (r *Reader) ReadFile(name string) (File, error) {
	filePath := filepath.Join(r.dir, name)

	info, err := os.Stat(filePath)
	if err != nil {
		return File{}, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return File{}, err
	}

	return File{Name: name, Data: data, ModTime: info.ModTime()}, nil
}

// VisitFiles reads every matching file and calls visitor for it. Read errors
// are passed to visitor with an empty File so one unreadable file does not
// stop the scan; visitor returning an error stops it.
func (r *Reader) VisitFiles(visitor func(name string, file File, err error) error) error {
	names, err := r.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		file, err := r.ReadFile(name)
		if err := visitor(name, file, err); err != nil {
			return err
		}
	}
	return nil
}
