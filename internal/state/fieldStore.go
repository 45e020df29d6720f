package state

import (
	"sort"
	"sync"

	"SignaturePad/internal/logger"
)

// Sink receives encoded images. Publish creates the field on first write.
type Sink interface {
	Publish(field, value string)
}

// FieldStore is an in-memory set of named form fields. It is the default
// Sink and is safe for concurrent use.
type FieldStore struct {
	fields   map[string]string
	mu       sync.RWMutex
	OnChange func(field, value string)
}

// NewFieldStore creates an empty store.
func NewFieldStore() *FieldStore {
	return &FieldStore{
		fields: make(map[string]string),
	}
}

// Publish sets the value of field, creating it if needed.
func (fs *FieldStore) Publish(field, value string) {
	fs.mu.Lock()
	_, existed := fs.fields[field]
	fs.fields[field] = value
	onChange := fs.OnChange
	fs.mu.Unlock()

	if !existed {
		logger.L().Debug("output field created", "field", field)
	}
	if onChange != nil {
		onChange(field, value)
	}
}

// Value returns the current value of field and whether the field exists.
func (fs *FieldStore) Value(field string) (string, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	v, ok := fs.fields[field]
	return v, ok
}

// Fields returns the names of all fields in sorted order.
func (fs *FieldStore) Fields() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	names := make([]string, 0, len(fs.fields))
	for name := range fs.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Remove deletes field, reporting whether it existed.
func (fs *FieldStore) Remove(field string) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.fields[field]; ok {
		delete(fs.fields, field)
		return true
	}
	return false
}
