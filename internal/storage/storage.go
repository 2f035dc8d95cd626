// Package storage holds the document backends the profile store persists to.
// A backend keeps one JSON object whose top-level keys are read, replaced and
// removed individually, like the browser's local storage area.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Document maps top-level keys to their JSON encoded values.
type Document map[string]json.RawMessage

// Backend is a durable key/value document store.
//
// Get returns the values stored under the keys of defaults, falling back to
// the default value for keys that are absent; a nil defaults returns every
// key. Set replaces the given top-level keys and leaves others alone. Remove
// deletes keys. Returned documents never share memory with the backend.
type Backend interface {
	Get(ctx context.Context, defaults Document) (Document, error)
	Set(ctx context.Context, doc Document) error
	Remove(ctx context.Context, keys ...string) error
}

// Clone deep-copies a document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneRaw(v)
	}
	return out
}

// Has reports whether key is present.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Decode unmarshals the value under key into v. Missing keys leave v as is.
func (d Document) Decode(key string, v any) error {
	raw, ok := d[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding %q: %w", key, err)
	}
	return nil
}

// Encode marshals v and stores it under key.
func (d Document) Encode(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	d[key] = data
	return nil
}

// Defaults builds a Get argument from keys and default values.
func Defaults(kv map[string]any) (Document, error) {
	doc := make(Document, len(kv))
	for k, v := range kv {
		if err := doc.Encode(k, v); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func cloneRaw(v json.RawMessage) json.RawMessage {
	if v == nil {
		return nil
	}
	out := make(json.RawMessage, len(v))
	copy(out, v)
	return out
}

// pick applies Get semantics to a full snapshot.
func pick(all, defaults Document) Document {
	if defaults == nil {
		return all.Clone()
	}
	out := make(Document, len(defaults))
	for k, def := range defaults {
		if v, ok := all[k]; ok {
			out[k] = cloneRaw(v)
		} else {
			out[k] = cloneRaw(def)
		}
	}
	return out
}
