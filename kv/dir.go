package kv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Dir stores every key in its own file, <key>.json, in a folder.
//
// JSON values are indented so the files can be read, diffed and versioned
// like any other text file.
type Dir struct {
	path string
}

// NewDir returns a store in the folder path, creating it if needed.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create store folder: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the file name of key.
func (d *Dir) Path(key string) string {
	return filepath.Join(d.path, key+".json")
}

// Get returns the content of the file of key.
func (d *Dir) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	return os.ReadFile(d.Path(key))
}

// Set replaces the file of key. The file is written next to its destination
// then renamed, so a reader never sees a partial value.
func (d *Dir) Set(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, value, "", "  "); err != nil {
		// not JSON, stored as is.
		buf.Reset()
		buf.Write(value)
	} else {
		buf.WriteByte('\n')
	}

	f, err := os.CreateTemp(d.path, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if err := os.Rename(f.Name(), d.Path(key)); err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	return nil
}
