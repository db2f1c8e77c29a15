// Package history keeps the most recent translations, newest first, and
// persists the whole list as one blob after every change.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/valpere/verbico/internal"
	"github.com/valpere/verbico/internal/logger"
)

const (
	// Capacity is the maximum number of records kept.
	Capacity = 10
	// StorageKey is the fixed key the blob is stored under.
	StorageKey = "translationHistory"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("translation not found in history")

// Storage is the on-device key/value store the blob lives in.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
}

type blob struct {
	Translations []internal.Translation `json:"translations"`
}

// History is safe for concurrent use; all access is serialised.
type History struct {
	mu      sync.Mutex
	storage Storage
	items   []internal.Translation
}

// Open loads the persisted list once. A blob that cannot be decoded is
// discarded with a warning and history starts empty.
func Open(ctx context.Context, storage Storage) (*History, error) {
	h := &History{storage: storage}

	data, ok, err := storage.Load(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if !ok || len(data) == 0 {
		return h, nil
	}

	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		logger.Warn("discarding unreadable history", "module", "history", "error", err)
		return h, nil
	}

	items := b.Translations
	if len(items) > Capacity {
		items = items[:Capacity]
	}
	h.items = items
	return h, nil
}

// Add prepends t, drops whatever falls beyond Capacity and persists.
func (h *History) Add(ctx context.Context, t internal.Translation) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	keep := h.items
	if len(keep) > Capacity-1 {
		keep = keep[:Capacity-1]
	}
	next := make([]internal.Translation, 0, len(keep)+1)
	next = append(next, t)
	next = append(next, keep...)

	if err := h.persist(ctx, next); err != nil {
		return err
	}
	h.items = next
	return nil
}

// List returns a copy, newest first.
func (h *History) List() []internal.Translation {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]internal.Translation, len(h.items))
	copy(out, h.items)
	return out
}

func (h *History) Get(id string) (internal.Translation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, t := range h.items {
		if t.ID == id {
			return t, nil
		}
	}
	return internal.Translation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Clear empties the list and persists the empty state.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.persist(ctx, nil); err != nil {
		return err
	}
	h.items = nil
	return nil
}

func (h *History) persist(ctx context.Context, items []internal.Translation) error {
	if items == nil {
		items = []internal.Translation{}
	}
	data, err := json.Marshal(blob{Translations: items})
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := h.storage.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// MemoryStorage is an in-process Storage.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}
