// Package store holds the authoritative in-memory copy of all entity
// collections and keeps it synchronized with the persistence gateway.
//
// Every mutation follows the same commit-after-confirm discipline: the
// gateway call happens first, and the in-memory state only changes when the
// gateway reports success. Observers are notified synchronously, exactly
// once, after each successful mutation.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"rentledger/internal/gateway"
	"rentledger/internal/models"
)

var ErrNotInitialized = errors.New("store not initialized")

type Store struct {
	gw     gateway.Gateway
	logger zerolog.Logger

	mu          sync.RWMutex
	data        *models.Collections
	initialized bool

	// The recurrence sweep is a no-op while the current month key matches.
	lastSweepMonth string

	lmu          sync.Mutex
	listeners    map[int]func()
	nextListener int
}

func New(gw gateway.Gateway, logger zerolog.Logger) *Store {
	return &Store{
		gw:        gw,
		logger:    logger.With().Str("component", "store").Logger(),
		data:      models.NewCollections(),
		listeners: make(map[int]func()),
	}
}

// Init loads the full collection set from the gateway. An unreachable
// gateway is fatal here; the caller may retry the whole initialization.
// Calling Init on an already-initialized store is a no-op.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}

	loaded, err := s.gw.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load collections: %w", err)
	}
	if loaded == nil {
		loaded = models.NewCollections()
	}
	if dropped := loaded.Sanitize(); dropped > 0 {
		s.logger.Warn().Int("dropped", dropped).Msg("dropped malformed records during load")
	}
	s.data = loaded
	s.initialized = true
	s.logger.Info().
		Int("properties", len(loaded.Properties)).
		Int("units", len(loaded.Units)).
		Int("tenants", len(loaded.Tenants)).
		Msg("store initialized")
	return nil
}

func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Subscribe registers a callback invoked after every successful mutation.
// The returned function unregisters it; calling it more than once is fine.
func (s *Store) Subscribe(fn func()) func() {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()
		delete(s.listeners, id)
	}
}

// notify runs outside the state lock so callbacks may read the store.
func (s *Store) notify() {
	s.lmu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// errNoop marks a mutation that changed nothing; withWrite swallows it and
// skips the observer notification.
var errNoop = errors.New("no-op mutation")

// withWrite serializes a mutation and notifies observers when it succeeds.
func (s *Store) withWrite(fn func() error) error {
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	err := fn()
	s.mu.Unlock()
	if err == nil {
		s.notify()
	} else if errors.Is(err, errNoop) {
		return nil
	}
	return err
}

// State returns a deep copy of the whole collection set.
func (s *Store) State() *models.Collections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Snapshot returns a deep, independent copy suitable for later restoration.
func (s *Store) Snapshot() *models.Collections {
	return s.State()
}

// RestoreSnapshot replaces the entire in-memory state with the snapshot and
// persists it as a full replace, then notifies observers once.
func (s *Store) RestoreSnapshot(ctx context.Context, snap *models.Collections) error {
	if snap == nil {
		snap = models.NewCollections()
	}
	return s.withWrite(func() error {
		replacement := snap.Clone()
		if err := s.gw.SaveAll(ctx, replacement); err != nil {
			return fmt.Errorf("persist snapshot: %w", err)
		}
		s.data = replacement
		return nil
	})
}

// ImportState replaces every collection from an external payload (backup
// restore, "delete all data"). Records without a valid id are dropped
// rather than failing the whole import.
func (s *Store) ImportState(ctx context.Context, payload *models.Collections) error {
	if payload == nil {
		payload = models.NewCollections()
	}
	return s.withWrite(func() error {
		replacement := payload.Clone()
		if dropped := replacement.Sanitize(); dropped > 0 {
			s.logger.Warn().Int("dropped", dropped).Msg("dropped malformed records during import")
		}
		if err := s.gw.SaveAll(ctx, replacement); err != nil {
			return fmt.Errorf("persist import: %w", err)
		}
		s.data = replacement
		return nil
	})
}

// Typed read views. Slices are copied; records are value types, so callers
// can hold them without racing the store.

func (s *Store) Properties() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Property(nil), s.data.Properties...)
}

func (s *Store) Units() []models.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Unit(nil), s.data.Units...)
}

func (s *Store) Tenants() []models.Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Tenant(nil), s.data.Tenants...)
}

func (s *Store) Expenses() []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Expense(nil), s.data.Expenses...)
}

func (s *Store) Payments() []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Payment(nil), s.data.Payments...)
}

func (s *Store) MaintenanceRequests() []models.MaintenanceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MaintenanceRequest(nil), s.data.Maintenance...)
}

func (s *Store) ActivityLogs() []models.ActivityLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ActivityLog(nil), s.data.ActivityLogs...)
}

func (s *Store) CommunicationLogs() []models.CommunicationLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CommunicationLog(nil), s.data.CommunicationLogs...)
}

func (s *Store) Vendors() []models.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Vendor(nil), s.data.Vendors...)
}

func (s *Store) Documents() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Document(nil), s.data.Documents...)
}
