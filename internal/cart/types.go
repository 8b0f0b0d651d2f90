package cart

import (
	"github.com/dcastellanos/mobilecart/internal/products"
	"github.com/shopspring/decimal"
)

// SchemaVersion tags the persisted cart document. A document with a
// newer version than we understand is treated as absent rather than
// half-read.
const SchemaVersion = 1

// Item is one line item: a distinct product+color+storage selection and
// its accumulated quantity. ID is generated at creation, never reused,
// and stable for the life of the item.
type Item struct {
	ID        string                 `json:"id"`
	ProductID string                 `json:"productId"`
	Name      string                 `json:"name"`
	Brand     string                 `json:"brand"`
	ImageURL  string                 `json:"imageUrl"`
	Color     products.ColorOption   `json:"color"`
	Storage   products.StorageOption `json:"storage"`
	Quantity  int                    `json:"quantity"`
}

// matches reports whether the item occupies the identity slot
// (productId, color.name, storage.capacity). Exact string equality,
// no normalization.
func (i Item) matches(productID, colorName, capacity string) bool {
	return i.ProductID == productID &&
		i.Color.Name == colorName &&
		i.Storage.Capacity == capacity
}

// Cart is the persisted document: an insertion-ordered list of items.
// Aggregates are always derived from Items, never stored.
type Cart struct {
	SchemaVersion int    `json:"schemaVersion"`
	Items         []Item `json:"items"`
}

func emptyCart() Cart {
	return Cart{SchemaVersion: SchemaVersion, Items: []Item{}}
}

// TotalItems sums quantities across all line items.
func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums storage price times quantity across all line items.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		line := decimal.NewFromFloat(item.Storage.Price).
			Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}

// NewItemInput is the candidate payload for AddItem: an Item without
// the generated id and quantity.
type NewItemInput struct {
	ProductID string                 `json:"productId"`
	Name      string                 `json:"name"`
	Brand     string                 `json:"brand"`
	ImageURL  string                 `json:"imageUrl"`
	Color     products.ColorOption   `json:"color"`
	Storage   products.StorageOption `json:"storage"`
}
