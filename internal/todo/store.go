// Package todo owns the in-memory todo list and keeps it persisted.
//
// The list is read once by Load. Every later mutation updates memory first
// and then hands a full snapshot to a single writer goroutine, which writes
// snapshots in mutation order. A failed write is logged and the in-memory
// list stays authoritative.
package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

var (
	ErrPersistenceRead  = errors.New("persistence read failed")
	ErrPersistenceWrite = errors.New("persistence write failed")
	ErrAlreadyLoaded    = errors.New("todo list already loaded")
	ErrClosed           = errors.New("todo store closed")
)

type state int

const (
	stateIdle state = iota
	stateLoading
	stateLoaded
)

// write is one queued unit for the writer: a snapshot to persist, or a
// flush barrier when items is nil and done is set.
type write struct {
	items []model.Item
	done  chan struct{}
}

type Store struct {
	adapter     store.Adapter
	logger      *log.Logger
	defaults    func() []model.Item
	onSaveError func(error)

	mu     sync.Mutex
	items  []model.Item
	state  state
	closed bool

	queue   chan write
	stopped chan struct{}
}

// New returns a Store backed by adapter and starts its writer.
func New(adapter store.Adapter, opts ...Option) *Store {
	cfg := storeConfig{
		queueSize: 64,
		defaults:  model.Defaults,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.Discard()
	}

	s := &Store{
		adapter:     adapter,
		logger:      cfg.logger,
		defaults:    cfg.defaults,
		onSaveError: cfg.onSaveError,
		items:       []model.Item{},
		queue:       make(chan write, cfg.queueSize),
		stopped:     make(chan struct{}),
	}
	go s.run()
	return s
}

// Load installs the persisted list, or the default dataset when nothing
// usable is stored, sorted by id descending, and then persists it.
// A read or decode failure is logged and returned, but the defaults are
// installed regardless so the store is always usable afterwards.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state != stateIdle {
		s.mu.Unlock()
		return ErrAlreadyLoaded
	}
	s.state = stateLoading
	s.mu.Unlock()

	items, err := s.read(ctx)
	if err != nil {
		s.logger.Error("persistence read failed; using default list", "key", store.Key, "err", err)
		items = nil
	}
	source := "storage"
	if len(items) == 0 {
		items = s.defaults()
		source = "defaults"
	}
	model.SortByIDDesc(items)

	s.mu.Lock()
	s.items = items
	s.state = stateLoaded
	s.enqueueLocked()
	s.mu.Unlock()

	s.logger.Debug("todo list loaded", "source", source, "items", len(items))
	return err
}

func (s *Store) read(ctx context.Context) ([]model.Item, error) {
	blob, ok, err := s.adapter.Get(ctx, store.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceRead, err)
	}
	if !ok {
		return nil, nil
	}
	items, err := model.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceRead, err)
	}
	return items, nil
}

// Add prepends a new pending item. Titles that are blank after trimming are
// ignored and Add reports false.
func (s *Store) Add(title string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	it := model.Item{ID: model.NextID(s.items), Title: title}
	s.items = append([]model.Item{it}, s.items...)
	s.enqueueLocked()
	return true
}

// Toggle flips the completed flag of the item with the given id.
// It reports whether such an item exists. The list is persisted either way.
func (s *Store) Toggle(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.enqueueLocked()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Completed = !s.items[i].Completed
			return true
		}
	}
	return false
}

// Delete removes the item with the given id and reports whether it existed.
// The list is persisted either way.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.enqueueLocked()

	for i := range s.items {
		if s.items[i].ID == id {
			next := make([]model.Item, 0, len(s.items)-1)
			next = append(next, s.items[:i]...)
			next = append(next, s.items[i+1:]...)
			s.items = next
			return true
		}
	}
	return false
}

// Items returns a copy of the current list in display order.
func (s *Store) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with the given id.
func (s *Store) Get(id int) (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateLoaded
}

// enqueueLocked hands the writer a snapshot of the current list. Holding mu
// while sending keeps queue order equal to mutation order.
func (s *Store) enqueueLocked() {
	if s.closed {
		s.logger.Warn("todo store closed; change not persisted", "items", len(s.items))
		return
	}
	snap := make([]model.Item, len(s.items))
	copy(snap, s.items)
	s.queue <- write{items: snap}
}

// Flush blocks until every write queued before the call has been attempted.
func (s *Store) Flush(ctx context.Context) error {
	done := make(chan struct{})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.queue <- write{done: done}
	s.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains pending writes and stops the writer. Later mutations still
// change memory but are no longer persisted.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()

	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) run() {
	defer close(s.stopped)
	for w := range s.queue {
		if w.done != nil {
			close(w.done)
			continue
		}
		s.save(w.items)
	}
}

// save writes one full snapshot. There is no retry.
func (s *Store) save(items []model.Item) {
	blob, err := model.Encode(items)
	if err == nil {
		err = s.adapter.Set(context.Background(), store.Key, blob)
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
		s.logger.Error("persistence write failed", "key", store.Key, "items", len(items), "err", err)
		if s.onSaveError != nil {
			s.onSaveError(err)
		}
	}
}
