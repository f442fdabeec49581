package scoreboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// FileStore keeps the scoreboard as a JSON array on disk, loaded in full when opened.
type FileStore struct {
	path    string
	entries []Entry
	mu      sync.RWMutex
}

func OpenFile(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scoreboard directory: %w", err)
	}

	f := &FileStore{path: path, entries: []Entry{}}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := f.write(f.entries); err != nil {
			return nil, err
		}
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read scoreboard %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &f.entries); err != nil {
		return nil, fmt.Errorf("failed to parse scoreboard %s: %w", path, err)
	}
	if f.entries == nil {
		f.entries = []Entry{}
	}
	return f, nil
}

func (f *FileStore) Append(_ context.Context, entry Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := append(slices.Clip(f.entries), entry)
	if err := f.write(next); err != nil {
		return err
	}
	f.entries = next
	return nil
}

func (f *FileStore) List(_ context.Context) ([]Entry, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.entries), nil
}

func (f *FileStore) Recent(_ context.Context, n int) ([]Entry, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return newest(f.entries, n), nil
}

func (f *FileStore) Ping(_ context.Context) error {
	_, err := os.Stat(f.path)
	return err
}

func (f *FileStore) Close() error {
	return nil
}

// write replaces the file through a temp file and rename so readers never see a partial array.
func (f *FileStore) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize scoreboard: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".scoreboard-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp scoreboard: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write scoreboard: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write scoreboard: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace scoreboard %s: %w", f.path, err)
	}
	return nil
}
