package cart

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/dcastellanos/mobilecart/pkg/errors"
	"github.com/dcastellanos/mobilecart/pkg/kv"
	"github.com/dcastellanos/mobilecart/pkg/logger"
	"github.com/dcastellanos/mobilecart/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store owns the canonical cart value. Every mutation computes the next
// cart and persists it as one document before returning, so there is no
// partially applied state to roll back. Persistence faults never
// surface to callers; the in-memory value stays authoritative for the
// session.
type Store struct {
	storage kv.Store
	key     string
	logg    *logger.Logger
	metrics *metrics.CartMetrics

	mu   sync.RWMutex
	cart Cart
}

// StoreParams collects the store's dependencies. Logger and Metrics are
// optional.
type StoreParams struct {
	Storage kv.Store
	Key     string
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
}

// NewStore loads the persisted cart (or starts empty) and returns the
// single process-wide store.
func NewStore(ctx context.Context, params StoreParams) (*Store, error) {
	if params.Storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if params.Key == "" {
		return nil, fmt.Errorf("cart storage key required")
	}

	loaded := kv.Read(ctx, params.Storage, params.Key, emptyCart())
	if loaded.SchemaVersion > SchemaVersion {
		if params.Logger != nil {
			lctx := params.Logger.WithCartKey(ctx, params.Key)
			params.Logger.Warn(lctx, "persisted cart schema is newer than supported, starting empty")
		}
		loaded = emptyCart()
	}
	loaded.SchemaVersion = SchemaVersion
	if loaded.Items == nil {
		loaded.Items = []Item{}
	}

	s := &Store{
		storage: params.Storage,
		key:     params.Key,
		logg:    params.Logger,
		metrics: params.Metrics,
		cart:    loaded,
	}
	s.metrics.SetTotalItems(loaded.TotalItems())
	return s, nil
}

// AddItem merges the candidate into the cart. A candidate matching an
// existing item's identity triple bumps that item's quantity; anything
// else is appended with quantity 1 and a fresh id. Returns the id of
// the affected line item.
func (s *Store) AddItem(ctx context.Context, input NewItemInput) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	if idx := s.findLocked(input.ProductID, input.Color.Name, input.Storage.Capacity); idx >= 0 {
		s.cart.Items[idx].Quantity++
		id = s.cart.Items[idx].ID
	} else {
		item := Item{
			ID:        uuid.NewString(),
			ProductID: input.ProductID,
			Name:      input.Name,
			Brand:     input.Brand,
			ImageURL:  input.ImageURL,
			Color:     input.Color,
			Storage:   input.Storage,
			Quantity:  1,
		}
		s.cart.Items = append(s.cart.Items, item)
		id = item.ID
	}

	s.persistLocked(ctx, "add")
	s.metrics.IncMutation("add")
	s.metrics.SetTotalItems(s.cart.TotalItems())
	return id, nil
}

// RemoveItem deletes the line item with the given id. Unknown ids are
// a no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.cart.Items[:0]
	removed := false
	for _, item := range s.cart.Items {
		if item.ID == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return
	}
	s.cart.Items = kept

	s.persistLocked(ctx, "remove")
	s.metrics.IncMutation("remove")
	s.metrics.SetTotalItems(s.cart.TotalItems())
}

// Clear resets the cart to empty and deletes the persisted entry
// entirely, leaving storage as if the cart had never been used.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = emptyCart()

	if err := s.storage.Delete(ctx, s.key); err != nil {
		s.metrics.IncPersistFailure("clear")
		if s.logg != nil {
			lctx := s.logg.WithCartKey(ctx, s.key)
			s.logg.Error(lctx, "cart.clear_persist_failed", err)
		}
	}
	s.metrics.IncMutation("clear")
	s.metrics.SetTotalItems(0)
}

// IsInCart reports whether an item with the exact identity triple
// exists. Pure in-memory query, no persistence access.
func (s *Store) IsInCart(productID, colorName, capacity string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(productID, colorName, capacity) >= 0
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.cart.Items))
	copy(out, s.cart.Items)
	return out
}

// TotalItems returns the summed quantity across line items.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalItems()
}

// TotalPrice returns the summed price across line items.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalPrice()
}

func (s *Store) findLocked(productID, colorName, capacity string) int {
	for i, item := range s.cart.Items {
		if item.matches(productID, colorName, capacity) {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context, op string) {
	if err := kv.Write(ctx, s.storage, s.key, s.cart); err != nil {
		s.metrics.IncPersistFailure(op)
		if s.logg != nil {
			lctx := s.logg.WithCartKey(ctx, s.key)
			s.logg.Error(lctx, "cart.persist_failed", err)
		}
	}
}

func validateInput(input NewItemInput) error {
	missing := map[string]string{}
	if input.ProductID == "" {
		missing["productId"] = "is required"
	}
	if input.Color.Name == "" {
		missing["color.name"] = "is required"
	}
	if input.Storage.Capacity == "" {
		missing["storage.capacity"] = "is required"
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item identity is incomplete").WithDetails(missing)
	}
	if input.Storage.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "storage price cannot be negative")
	}
	return nil
}
