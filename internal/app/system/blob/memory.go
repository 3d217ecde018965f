package blob

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store for tests. It tracks which keys exist and
// which were deleted so tests can assert on the attachment lifecycle.
type Memory struct {
	mu      sync.Mutex
	objects map[string]bool
	deleted []string

	// FailDelete, when set, makes Delete return an error without removing
	// anything. Used to exercise the abort-on-blob-failure paths.
	FailDelete bool
}

// NewMemory returns an empty in-memory blob store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]bool)}
}

// Put seeds an object, standing in for a client-side presigned upload.
func (m *Memory) Put(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = true
}

// Exists reports whether key currently holds an object.
func (m *Memory) Exists(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[key]
}

// Deleted returns the keys deleted so far, in deletion order.
func (m *Memory) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.deleted))
	copy(out, m.deleted)
	return out
}

func (m *Memory) PresignedUpload(ctx context.Context) (Upload, error) {
	key := uuid.NewString()
	m.mu.Lock()
	m.objects[key] = true
	m.mu.Unlock()
	return Upload{Key: key, URL: "memory://upload/" + key}, nil
}

func (m *Memory) PresignedGet(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.objects[key] {
		return "", fmt.Errorf("blob store: no object %q", key)
	}
	return "memory://get/" + key, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDelete {
		return fmt.Errorf("blob store: delete %q: induced failure", key)
	}
	if !m.objects[key] {
		return fmt.Errorf("blob store: no object %q", key)
	}
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

var _ Store = (*Memory)(nil)
