package invoice

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrDirectoryNotFound is returned when the invoice directory is missing or is not a directory
var ErrDirectoryNotFound = errors.New("invoice directory not found")

// LocalSource lists invoice images in a local directory. It never writes.
type LocalSource struct {
	basePath   string
	extensions []string
}

// NewLocalSource checks that basePath is a directory and returns a source for it
func NewLocalSource(basePath string, extensions []string) (*LocalSource, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, basePath)
		}
		return nil, fmt.Errorf("checking invoice directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, basePath)
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	return &LocalSource{
		basePath:   basePath,
		extensions: extensions,
	}, nil
}

// List returns the names of regular entries with a whitelisted extension, in directory order
func (l *LocalSource) List() ([]string, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !l.isImage(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Path returns the full path of a listed file
func (l *LocalSource) Path(name string) string {
	return filepath.Join(l.basePath, name)
}

func (l *LocalSource) isImage(name string) bool {
	for _, ext := range l.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
