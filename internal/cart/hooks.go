package cart

import (
	"context"
	"sync"
	"time"

	pkgerrors "github.com/dcastellanos/mobilecart/pkg/errors"
)

// DefaultAddedCooldown is how long the add confirmation state stays on
// before auto-resetting.
const DefaultAddedCooldown = 2 * time.Second

// Callbacks are optional per-outcome notifications. Each is invoked at
// most once per operation: OnSuccess exactly once per successful call,
// OnError exactly once per failed call.
type Callbacks struct {
	OnSuccess func()
	OnError   func(error)
}

// AddToCart wraps the store's add mutation with transient UI-facing
// state: idle -> adding -> added -> (auto) idle after a cooldown. It
// holds no durable state of its own.
type AddToCart struct {
	store    *Store
	cooldown time.Duration
	cb       Callbacks

	mu     sync.Mutex
	adding bool
	added  bool
	timer  *time.Timer
	gen    uint64
	closed bool
}

// NewAddToCart builds the wrapper. A non-positive cooldown falls back
// to DefaultAddedCooldown.
func NewAddToCart(store *Store, cooldown time.Duration, cb Callbacks) *AddToCart {
	if cooldown <= 0 {
		cooldown = DefaultAddedCooldown
	}
	return &AddToCart{store: store, cooldown: cooldown, cb: cb}
}

// Add performs the mutation synchronously. On success the added flag
// turns on and a cooldown reset is armed, replacing any outstanding
// one (cancel-and-restart, not queuing). On failure the added flag is
// left off and OnError fires.
func (h *AddToCart) Add(ctx context.Context, input NewItemInput) (string, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return "", errWrapperClosed()
	}
	h.stopTimerLocked()
	h.gen++
	gen := h.gen
	h.adding = true
	h.mu.Unlock()

	id, err := h.store.AddItem(ctx, input)

	h.mu.Lock()
	h.adding = false
	if err != nil {
		h.added = false
		h.mu.Unlock()
		if h.cb.OnError != nil {
			h.cb.OnError(err)
		}
		return "", err
	}
	h.added = true
	h.timer = time.AfterFunc(h.cooldown, func() {
		h.mu.Lock()
		// a newer add or reset owns the state now
		if h.gen == gen && !h.closed {
			h.added = false
			h.timer = nil
		}
		h.mu.Unlock()
	})
	h.mu.Unlock()

	if h.cb.OnSuccess != nil {
		h.cb.OnSuccess()
	}
	return id, nil
}

// IsAdding reports whether the synchronous mutation is in flight.
func (h *AddToCart) IsAdding() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.adding
}

// IsAdded reports whether the confirmation window is open.
func (h *AddToCart) IsAdded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.added
}

// Reset returns the wrapper to idle early, cancelling any pending
// cooldown.
func (h *AddToCart) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopTimerLocked()
	h.gen++
	h.adding = false
	h.added = false
}

// Close tears the wrapper down, cancelling any pending cooldown so no
// state mutates after teardown. Further calls to Add fail.
func (h *AddToCart) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopTimerLocked()
	h.closed = true
	h.adding = false
	h.added = false
}

func errWrapperClosed() error {
	return pkgerrors.New(pkgerrors.CodeConflict, "add-to-cart wrapper already closed")
}

func (h *AddToCart) stopTimerLocked() {
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

// RemoveFromCart wraps the store's remove mutation: idle -> removing ->
// idle, fully synchronous.
type RemoveFromCart struct {
	store *Store
	cb    Callbacks

	mu       sync.Mutex
	removing bool
}

// NewRemoveFromCart builds the wrapper.
func NewRemoveFromCart(store *Store, cb Callbacks) *RemoveFromCart {
	return &RemoveFromCart{store: store, cb: cb}
}

// Remove performs the mutation synchronously; unknown ids are still a
// success (the store treats them as a no-op).
func (h *RemoveFromCart) Remove(ctx context.Context, id string) {
	h.mu.Lock()
	h.removing = true
	h.mu.Unlock()

	h.store.RemoveItem(ctx, id)

	h.mu.Lock()
	h.removing = false
	h.mu.Unlock()

	if h.cb.OnSuccess != nil {
		h.cb.OnSuccess()
	}
}

// IsRemoving reports whether the synchronous mutation is in flight.
func (h *RemoveFromCart) IsRemoving() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.removing
}
