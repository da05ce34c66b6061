package memory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// loadMemory reads the backing file into a Memory. A missing file is the
// first-run case and yields a fresh empty Memory, not an error. A file that
// exists but cannot be parsed yields CorruptStoreError — the caller decides
// whether to abort or discard.
func loadMemory(path string) (Memory, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return emptyMemory(), nil
	}
	if err != nil {
		return Memory{}, &PersistenceError{Op: "read", Path: path, Err: err}
	}

	var m Memory
	if err := json.Unmarshal(data, &m); err != nil {
		return Memory{}, &CorruptStoreError{Path: path, Err: err}
	}
	return m, nil
}

// saveMemory writes the full Memory to the backing file atomically: marshal,
// write to a temp file in the same directory, fsync, rename into place. A
// crash mid-save leaves either the old file or the new one, never a mix.
func saveMemory(path string, m Memory) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "marshal", Path: path, Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return &PersistenceError{Op: "create dir", Path: dir, Err: err}
	}

	// Temp file must live on the same filesystem as the destination for the
	// rename to be atomic.
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &PersistenceError{Op: "create temp", Path: dir, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistenceError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistenceError{Op: "sync", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Op: "close", Path: tmpName, Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// emptyMemory returns a freshly initialized Memory with empty collections.
func emptyMemory() Memory {
	return Memory{
		Decisions:    []Decision{},
		Conventions:  []Convention{},
		Notes:        []Note{},
		Context:      []ContextEntry{},
		Items:        []Item{},
		LastModified: time.Now().UTC(),
	}
}
