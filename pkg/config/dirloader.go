package config

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every XML and YAML file below a directory.
const DefaultPattern = "**/*.{xml,yaml,yml}"

// DirectoryLoader loads and merges configuration files from a directory.
type DirectoryLoader struct {
	// Path is the directory to load from.
	Path string

	// Pattern is a doublestar pattern relative to Path. Defaults to
	// DefaultPattern.
	Pattern string

	// FS overrides the filesystem rooted at Path. Tests use it.
	FS fs.FS
}

// LoadResult contains the result of loading a directory.
type LoadResult struct {
	// Root holds the configs of every file that parsed, in file order.
	Root *Root

	// Files lists the matched files relative to the directory.
	Files []string

	// Errors are per-file failures. A failing file does not stop the load.
	Errors []LoadError
}

// LoadError represents an error loading a specific file.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NewDirectoryLoader creates a loader for path using DefaultPattern.
func NewDirectoryLoader(path string) *DirectoryLoader {
	return &DirectoryLoader{Path: path, Pattern: DefaultPattern}
}

// Discover returns the files matching the pattern, sorted.
func (d *DirectoryLoader) Discover() ([]string, error) {
	fsys, err := d.fs()
	if err != nil {
		return nil, err
	}

	pattern := d.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %q", pattern)
	}

	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Load parses every discovered file and merges the results.
func (d *DirectoryLoader) Load() (*LoadResult, error) {
	files, err := d.Discover()
	if err != nil {
		return nil, err
	}
	fsys, err := d.fs()
	if err != nil {
		return nil, err
	}

	result := &LoadResult{Root: &Root{}, Files: files}
	for _, name := range files {
		root, err := parseFS(fsys, name)
		if err != nil {
			result.Errors = append(result.Errors, LoadError{
				Path:    path.Join(d.Path, name),
				Message: "failed to load",
				Err:     err,
			})
			continue
		}
		result.Root.Merge(root)
	}
	return result, nil
}

func (d *DirectoryLoader) fs() (fs.FS, error) {
	if d.FS != nil {
		return d.FS, nil
	}
	info, err := os.Stat(d.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory not found: %s", d.Path)
		}
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", d.Path)
	}
	return os.DirFS(d.Path), nil
}

func parseFS(fsys fs.FS, name string) (*Root, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}
