package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dcastellanos/mobilecart/api/responses"
	"github.com/dcastellanos/mobilecart/api/validators"
	cartsvc "github.com/dcastellanos/mobilecart/internal/cart"
	"github.com/dcastellanos/mobilecart/internal/products"
	pkgerrors "github.com/dcastellanos/mobilecart/pkg/errors"
	"github.com/dcastellanos/mobilecart/pkg/logger"
)

// CartFetch returns the full cart with derived aggregates.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartsvc.FromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(store))
	}
}

// CartAddItem adds a product selection to the cart, merging with an
// existing line item when the identity triple matches. When a hook is
// provided the mutation goes through it, opening the confirmation
// window surfaced by CartStatus.
func CartAddItem(hook *cartsvc.AddToCart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartsvc.FromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var id string
		if hook != nil {
			id, err = hook.Add(r.Context(), payload.toInput())
		} else {
			id, err = store.AddItem(r.Context(), payload.toInput())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, addItemResponse{
			ItemID: id,
			Cart:   newCartResponse(store),
		})
	}
}

// CartRemoveItem removes the line item with the given id. Unknown ids
// still return the current cart.
func CartRemoveItem(hook *cartsvc.RemoveFromCart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartsvc.FromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemId")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		if hook != nil {
			hook.Remove(r.Context(), itemID)
		} else {
			store.RemoveItem(r.Context(), itemID)
		}
		responses.WriteSuccess(w, newCartResponse(store))
	}
}

// CartStatus reports the transient mutation state: whether an add or
// remove is in flight and whether the add confirmation window is open.
func CartStatus(addHook *cartsvc.AddToCart, removeHook *cartsvc.RemoveFromCart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := cartsvc.FromContext(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status statusResponse
		if addHook != nil {
			status.IsAdding = addHook.IsAdding()
			status.IsAdded = addHook.IsAdded()
		}
		if removeHook != nil {
			status.IsRemoving = removeHook.IsRemoving()
		}
		responses.WriteSuccess(w, status)
	}
}

// CartClear empties the cart and deletes the persisted entry.
func CartClear(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartsvc.FromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Clear(r.Context())
		responses.WriteSuccess(w, newCartResponse(store))
	}
}

// CartContains reports whether an exact product+color+capacity
// selection is already in the cart.
func CartContains(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartsvc.FromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.RequireQuery(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		colorName, err := validators.RequireQuery(r, "color")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		capacity, err := validators.RequireQuery(r, "capacity")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, containsResponse{
			InCart: store.IsInCart(productID, colorName, capacity),
		})
	}
}

type addItemRequest struct {
	ProductID string                 `json:"productId" validate:"required"`
	Name      string                 `json:"name" validate:"required"`
	Brand     string                 `json:"brand"`
	ImageURL  string                 `json:"imageUrl"`
	Color     colorPayload           `json:"color" validate:"required"`
	Storage   storagePayloadRequired `json:"storage" validate:"required"`
}

type colorPayload struct {
	Name     string `json:"name" validate:"required"`
	HexCode  string `json:"hexCode"`
	ImageURL string `json:"imageUrl"`
}

type storagePayloadRequired struct {
	Capacity string  `json:"capacity" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
}

func (r addItemRequest) toInput() cartsvc.NewItemInput {
	return cartsvc.NewItemInput{
		ProductID: r.ProductID,
		Name:      r.Name,
		Brand:     r.Brand,
		ImageURL:  r.ImageURL,
		Color: products.ColorOption{
			Name:     r.Color.Name,
			HexCode:  r.Color.HexCode,
			ImageURL: r.Color.ImageURL,
		},
		Storage: products.StorageOption{
			Capacity: r.Storage.Capacity,
			Price:    r.Storage.Price,
		},
	}
}

type cartResponse struct {
	Items               []cartsvc.Item `json:"items"`
	TotalItems          int            `json:"totalItems"`
	TotalPrice          float64        `json:"totalPrice"`
	TotalPriceFormatted string         `json:"totalPriceFormatted"`
}

type addItemResponse struct {
	ItemID string       `json:"itemId"`
	Cart   cartResponse `json:"cart"`
}

type containsResponse struct {
	InCart bool `json:"inCart"`
}

type statusResponse struct {
	IsAdding   bool `json:"isAdding"`
	IsAdded    bool `json:"isAdded"`
	IsRemoving bool `json:"isRemoving"`
}

func newCartResponse(store *cartsvc.Store) cartResponse {
	total := store.TotalPrice()
	return cartResponse{
		Items:               store.Items(),
		TotalItems:          store.TotalItems(),
		TotalPrice:          total.InexactFloat64(),
		TotalPriceFormatted: products.FormatPrice(total),
	}
}
