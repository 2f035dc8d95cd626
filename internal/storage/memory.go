package storage

import (
	"context"
	"sync"
)

// Memory is an in-process backend. It is used by tests and by the
// "memory" storage setting.
type Memory struct {
	mu   sync.Mutex
	data Document
}

// NewMemory returns a backend seeded with a copy of initial.
func NewMemory(initial Document) *Memory {
	data := initial.Clone()
	if data == nil {
		data = Document{}
	}
	return &Memory{data: data}
}

func (m *Memory) Get(ctx context.Context, defaults Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return pick(m.data, defaults), nil
}

func (m *Memory) Set(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range doc {
		m.data[k] = cloneRaw(v)
	}
	return nil
}

func (m *Memory) Remove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}
