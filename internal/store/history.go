package store

import (
	"context"
	"sync"

	"rentledger/internal/models"
)

// History is a bounded stack of full-state snapshots used for undo. Callers
// take a checkpoint right before a destructive action; Undo restores the most
// recent one through the store's normal replace path.
type History struct {
	store *Store

	mu    sync.Mutex
	stack []*models.Collections
	limit int
}

// NewHistory caps the stack at limit snapshots; the oldest is dropped when a
// checkpoint would exceed it. A limit of zero or less means 20.
func NewHistory(store *Store, limit int) *History {
	if limit <= 0 {
		limit = 20
	}
	return &History{store: store, limit: limit}
}

// Checkpoint records the current state as the next undo target.
func (h *History) Checkpoint() {
	snap := h.store.Snapshot()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = append(h.stack, snap)
	if len(h.stack) > h.limit {
		h.stack = h.stack[len(h.stack)-h.limit:]
	}
}

// Undo restores the most recent checkpoint. It reports false when the stack
// is empty. A restore failure leaves the checkpoint on the stack so the undo
// can be retried.
func (h *History) Undo(ctx context.Context) (bool, error) {
	h.mu.Lock()
	if len(h.stack) == 0 {
		h.mu.Unlock()
		return false, nil
	}
	snap := h.stack[len(h.stack)-1]
	h.mu.Unlock()

	if err := h.store.RestoreSnapshot(ctx, snap); err != nil {
		return false, err
	}

	h.mu.Lock()
	if n := len(h.stack); n > 0 && h.stack[n-1] == snap {
		h.stack = h.stack[:n-1]
	}
	h.mu.Unlock()
	return true, nil
}

// Depth returns how many undo steps are available.
func (h *History) Depth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}

// Clear drops every checkpoint, e.g. after a full import.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = nil
}
