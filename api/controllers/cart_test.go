package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	cartsvc "github.com/dcastellanos/mobilecart/internal/cart"
	"github.com/dcastellanos/mobilecart/pkg/kv"
)

func newTestStore(t *testing.T) *cartsvc.Store {
	t.Helper()
	store, err := cartsvc.NewStore(context.Background(), cartsvc.StoreParams{
		Storage: kv.NewMemory(),
		Key:     "mobilecart:cart",
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func provisioned(r *http.Request, store *cartsvc.Store) *http.Request {
	return r.WithContext(cartsvc.NewContext(r.Context(), store))
}

const addItemBody = `{
	"productId": "SMG950F",
	"name": "Galaxy S24",
	"brand": "Samsung",
	"imageUrl": "https://cdn.example.com/s24.webp",
	"color": {"name": "Black", "hexCode": "#000000", "imageUrl": "https://cdn.example.com/s24-black.webp"},
	"storage": {"capacity": "128 GB", "price": 999}
}`

func TestCartAddItemCreatesLineItem(t *testing.T) {
	store := newTestStore(t)
	handler := CartAddItem(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(addItemBody))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, provisioned(req, store))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data addItemResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemID == "" {
		t.Fatal("expected a generated item id")
	}
	if envelope.Data.Cart.TotalItems != 1 {
		t.Fatalf("expected totalItems 1 got %d", envelope.Data.Cart.TotalItems)
	}
	if envelope.Data.Cart.TotalPriceFormatted != "999 EUR" {
		t.Fatalf("unexpected formatted total: %s", envelope.Data.Cart.TotalPriceFormatted)
	}
}

func TestCartAddItemMergesDuplicateSelection(t *testing.T) {
	store := newTestStore(t)
	handler := CartAddItem(nil, nil)

	var firstID string
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(addItemBody))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, provisioned(req, store))
		if resp.Code != http.StatusCreated {
			t.Fatalf("expected 201 got %d", resp.Code)
		}
		var envelope struct {
			Data addItemResponse `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if i == 0 {
			firstID = envelope.Data.ItemID
		} else if envelope.Data.ItemID != firstID {
			t.Fatalf("expected merge onto %s got %s", firstID, envelope.Data.ItemID)
		}
	}

	items := store.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected one line item with quantity 2, got %+v", items)
	}
}

func TestCartAddItemRejectsInvalidBody(t *testing.T) {
	store := newTestStore(t)
	handler := CartAddItem(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"name":"Galaxy S24"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, provisioned(req, store))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if store.TotalItems() != 0 {
		t.Fatalf("cart should be untouched, got %d items", store.TotalItems())
	}
}

func TestCartFetchReturnsAggregates(t *testing.T) {
	store := newTestStore(t)
	seedItem(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	CartFetch(nil).ServeHTTP(resp, provisioned(req, store))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalItems != 1 {
		t.Fatalf("expected totalItems 1 got %d", envelope.Data.TotalItems)
	}
	if envelope.Data.TotalPrice != 999 {
		t.Fatalf("expected totalPrice 999 got %v", envelope.Data.TotalPrice)
	}
}

func TestCartFetchWithoutProvisionedStore(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	CartFetch(nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != "CONFIGURATION_ERROR" {
		t.Fatalf("unexpected error code: %s", envelope.Error.Code)
	}
}

func TestCartRemoveItemByID(t *testing.T) {
	store := newTestStore(t)
	id := seedItem(t, store)

	router := chi.NewRouter()
	router.Delete("/api/v1/cart/items/{itemId}", CartRemoveItem(nil, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/"+id, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, provisioned(req, store))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if store.TotalItems() != 0 {
		t.Fatalf("expected empty cart got %d items", store.TotalItems())
	}
}

func TestCartRemoveItemUnknownIDIsNoOp(t *testing.T) {
	store := newTestStore(t)
	seedItem(t, store)

	router := chi.NewRouter()
	router.Delete("/api/v1/cart/items/{itemId}", CartRemoveItem(nil, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/no-such-id", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, provisioned(req, store))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if store.TotalItems() != 1 {
		t.Fatalf("expected cart unchanged, got %d items", store.TotalItems())
	}
}

func TestCartClearEmptiesCart(t *testing.T) {
	store := newTestStore(t)
	seedItem(t, store)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	CartClear(nil).ServeHTTP(resp, provisioned(req, store))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if store.TotalItems() != 0 {
		t.Fatalf("expected empty cart got %d items", store.TotalItems())
	}
}

func TestCartContains(t *testing.T) {
	store := newTestStore(t)
	seedItem(t, store)

	cases := []struct {
		name   string
		query  string
		status int
		inCart bool
	}{
		{"present", "productId=SMG950F&color=Black&capacity=128+GB", http.StatusOK, true},
		{"different color", "productId=SMG950F&color=White&capacity=128+GB", http.StatusOK, false},
		{"missing params", "productId=SMG950F", http.StatusBadRequest, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/contains?"+tc.query, nil)
			resp := httptest.NewRecorder()
			CartContains(nil).ServeHTTP(resp, provisioned(req, store))

			if resp.Code != tc.status {
				t.Fatalf("expected %d got %d", tc.status, resp.Code)
			}
			if tc.status != http.StatusOK {
				return
			}

			var envelope struct {
				Data containsResponse `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if envelope.Data.InCart != tc.inCart {
				t.Fatalf("expected inCart=%v got %v", tc.inCart, envelope.Data.InCart)
			}
		})
	}
}

func TestCartAddItemThroughHookOpensConfirmation(t *testing.T) {
	store := newTestStore(t)
	hook := cartsvc.NewAddToCart(store, time.Hour, cartsvc.Callbacks{})
	defer hook.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(addItemBody))
	resp := httptest.NewRecorder()
	CartAddItem(hook, nil).ServeHTTP(resp, provisioned(req, store))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if !hook.IsAdded() {
		t.Fatal("expected the confirmation window to open")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart/status", nil)
	resp = httptest.NewRecorder()
	CartStatus(hook, nil, nil).ServeHTTP(resp, provisioned(req, store))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data statusResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.IsAdded || envelope.Data.IsAdding {
		t.Fatalf("unexpected status: %+v", envelope.Data)
	}
}

func seedItem(t *testing.T, store *cartsvc.Store) string {
	t.Helper()
	var payload addItemRequest
	if err := json.Unmarshal([]byte(addItemBody), &payload); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	id, err := store.AddItem(context.Background(), payload.toInput())
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return id
}
