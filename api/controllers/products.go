package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dcastellanos/mobilecart/api/responses"
	productsvc "github.com/dcastellanos/mobilecart/internal/products"
	pkgerrors "github.com/dcastellanos/mobilecart/pkg/errors"
	"github.com/dcastellanos/mobilecart/pkg/logger"
)

// CatalogService is the slice of the products client the controllers use.
type CatalogService interface {
	List(ctx context.Context) ([]productsvc.ProductListItem, error)
	Search(ctx context.Context, query string) ([]productsvc.ProductListItem, error)
	GetByID(ctx context.Context, id string) (*productsvc.Product, error)
}

// ProductList proxies the upstream catalog. An optional search query
// narrows the listing.
func ProductList(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConfig, "product catalog not configured"))
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get("search"))

		var (
			items []productsvc.ProductListItem
			err   error
		)
		if query != "" {
			items, err = svc.Search(r.Context(), query)
		} else {
			items, err = svc.List(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// ProductDetail proxies a single catalog product by id.
func ProductDetail(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConfig, "product catalog not configured"))
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		product, err := svc.GetByID(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
