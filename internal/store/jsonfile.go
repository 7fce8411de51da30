package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONFile is a mutex-guarded whole-file JSON document. Every mutation is a
// read-modify-write with an atomic replace (temp file + rename), so
// concurrent writers serialize on the lock and a crash can never leave a
// half-written file behind.
type JSONFile struct {
	mu   sync.Mutex
	path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (f *JSONFile) Path() string {
	return f.path
}

// Load reads the file into v. Returns false when the file does not exist yet.
func (f *JSONFile) Load(v interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadLocked(v)
}

func (f *JSONFile) loadLocked(v interface{}) (bool, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	return true, nil
}

// Save atomically replaces the file contents with v.
func (f *JSONFile) Save(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saveLocked(v)
}

func (f *JSONFile) saveLocked(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", f.path, err)
	}

	dir := filepath.Dir(f.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, f.path)
}

// Update runs fn inside the lock between a load and a save, making the whole
// read-modify-write one atomic step with respect to other callers.
func (f *JSONFile) Update(loadInto interface{}, fn func(found bool) (interface{}, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	found, err := f.loadLocked(loadInto)
	if err != nil {
		return err
	}

	out, err := fn(found)
	if err != nil {
		return err
	}

	return f.saveLocked(out)
}
