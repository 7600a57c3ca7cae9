package admins

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the admin-data.json document: {"Admins": {<uid>: <record>}}
type File struct {
	Admins Set `json:"Admins" yaml:"Admins"`
}

// ParseError reports a data file that was read but could not be decoded.
type ParseError struct {
	Path   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadFile loads and parses an admin data file (supports .json, .yaml and .yml)
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read admin data: %w", err)
	}

	var f File
	if err := decode(path, data, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// SaveFile writes an admin data file (format determined by file extension)
func SaveFile(f *File, path string) error {
	data, err := encode(path, f)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write admin data: %w", err)
	}

	return nil
}

func decode(path string, data []byte, v interface{}) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return &ParseError{Path: path, Format: "YAML", Err: err}
		}
	default:
		// JSON is what the database export and the admin app use
		if err := json.Unmarshal(data, v); err != nil {
			return &ParseError{Path: path, Format: "JSON", Err: err}
		}
	}
	return nil
}

func encode(path string, v interface{}) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	}
}
