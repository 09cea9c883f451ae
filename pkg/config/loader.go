package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidXML       = errors.New("invalid XML configuration")
	ErrInvalidYAML      = errors.New("invalid YAML configuration")
	ErrEmptyFile        = errors.New("configuration file is empty")
	ErrSchema           = errors.New("configuration does not match schema")
)

// utf8BOM is skipped when sniffing the format.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads a whole configuration document from r. Documents whose first
// non-blank byte is '<' are parsed as XML, everything else as YAML.
func Parse(r io.Reader) (*Root, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes is Parse for an in-memory document.
func ParseBytes(data []byte) (*Root, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyFile
	}
	if trimmed[0] == '<' {
		return ParseXML(data)
	}
	return ParseYAML(data)
}

// LoadFile reads and parses a configuration file from disk.
func LoadFile(path string) (*Root, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	root, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
