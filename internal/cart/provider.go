package cart

import (
	"context"

	pkgerrors "github.com/dcastellanos/mobilecart/pkg/errors"
)

type ctxKey struct{}

// NewContext provisions the single shared cart store. It is established
// once near the application root; every consumer reaches the cart
// through the returned context.
func NewContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, store)
}

// FromContext returns the provisioned cart store. Calling it outside a
// provisioned scope is a wiring bug and fails immediately with a
// configuration error rather than silently returning defaults.
func FromContext(ctx context.Context) (*Store, error) {
	store, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfig,
			"cart store not provisioned; wrap the handler tree with the cart context middleware")
	}
	return store, nil
}
