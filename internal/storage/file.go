package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File keeps the document as a single JSON object on disk. Writes go to a
// temporary file that is renamed over the original, so readers never see a
// partial document.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a backend stored at path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the document location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(ctx context.Context, defaults Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.read()
	if err != nil {
		return nil, err
	}
	return pick(all, defaults), nil
}

func (f *File) Set(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.read()
	if err != nil {
		return err
	}
	for k, v := range doc {
		all[k] = cloneRaw(v)
	}
	return f.write(all)
}

func (f *File) Remove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.read()
	if err != nil {
		return err
	}
	changed := false
	for _, k := range keys {
		if _, ok := all[k]; ok {
			delete(all, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return f.write(all)
}

func (f *File) read() (Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return Document{}, nil
	}

	doc := Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	return doc, nil
}

func (f *File) write(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}
