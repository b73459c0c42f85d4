// internal/domain/cart/entity.go
package cart

import "time"

// Item is one (product, quantity) pair in a visitor's cart. Product fields
// are copied in at add time so the cart renders without extra lookups.
type Item struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Cart holds the visitor's in-progress selection. Invariant: at most one
// Item per ProductID.
type Cart struct {
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Totals represents derived cart totals, recomputed on every read
type Totals struct {
	ItemCount int   `json:"item_count"` // Sum of quantities
	Subtotal  int64 `json:"subtotal"`   // Sum of price * quantity
}

// Totals derives the current totals from the cart items
func (c *Cart) Totals() Totals {
	var t Totals
	for _, item := range c.Items {
		t.ItemCount += item.Quantity
		t.Subtotal += item.Price * int64(item.Quantity)
	}
	return t
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// find returns the index of the item for the given product, or -1
func (c *Cart) find(productID uint) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
