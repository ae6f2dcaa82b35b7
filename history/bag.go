// Package history keeps navigation path of the reading session and persists
// it into history state bag so it survives reloads.
package history

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	json "github.com/goccy/go-json"
)

// Well known history state keys.
const (
	NavigationPathKey = "storyNavigationPath"
	AttachmentPageKey = "storyAttachmentPageId"
)

// ErrClosed is returned by bag operations after Close.
var ErrClosed = errors.New("history bag is closed")

// Bag is per session history state storage. Values are opaque to the bag.
type Bag interface {
	Load(key string) ([]byte, bool, error)
	Store(key string, data []byte) error
	Close() error
}

// Get decodes value stored under key, false is returned when nothing was
// stored yet.
func Get[T any](bag Bag, key string) (T, bool, error) {
	var v T
	data, ok, err := bag.Load(key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("unable to decode history state %q: %w", key, err)
	}
	return v, true, nil
}

// Put encodes value and stores it under key.
func Put[T any](bag Bag, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("unable to encode history state %q: %w", key, err)
	}
	return bag.Store(key, data)
}

// MemoryBag keeps history state for the lifetime of the process.
type MemoryBag struct {
	mu     sync.Mutex
	values map[string][]byte
	closed bool
}

func NewMemoryBag() *MemoryBag {
	return &MemoryBag{values: make(map[string][]byte)}
}

func (b *MemoryBag) Load(key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, false, ErrClosed
	}
	data, ok := b.values[key]
	return slices.Clone(data), ok, nil
}

func (b *MemoryBag) Store(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	b.values[key] = slices.Clone(data)
	return nil
}

// Keys returns stored keys in sorted order.
func (b *MemoryBag) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Sorted(maps.Keys(b.values))
}

func (b *MemoryBag) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
