package middleware

import (
	"net/http"

	"github.com/dcastellanos/mobilecart/internal/cart"
)

// CartContext provisions the single shared cart store for every request
// underneath it. This is the provisioning boundary: handlers reach the
// cart through cart.FromContext, which fails loudly when a route is
// mounted outside this middleware.
func CartContext(store *cart.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := cart.NewContext(r.Context(), store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
