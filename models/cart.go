package models

import "time"

// CartItem is one product variant selected for purchase. A cart never holds
// two lines with the same (product, color, size) tuple: adding an existing
// tuple increments the quantity of the existing line instead.
type CartItem struct {
	ID            int       `json:"id"`
	CartID        int       `json:"-"`
	ProductID     int       `json:"product_id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	Image         string    `json:"image,omitempty"`
	Color         string    `json:"color"`
	Size          string    `json:"size"`
	Quantity      int       `json:"quantity"`
	Category      string    `json:"category,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Cart struct {
	ID        int        `json:"-"`
	UserID    *int       `json:"-"`
	Token     string     `json:"-"`
	Version   int64      `json:"version"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartTotals are derived on every read, never stored.
type CartTotals struct {
	Subtotal         float64 `json:"subtotal"`
	OriginalSubtotal float64 `json:"original_subtotal"`
	Savings          float64 `json:"savings"`
	ItemCount        int     `json:"item_count"`
}

type CartItemRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartSyncRequest is the replace-all payload the storefront sends after every
// local mutation. Sequence increases monotonically per cart; a sync whose
// sequence is at or below the last applied one is rejected as stale.
type CartSyncRequest struct {
	Items    []CartItem `json:"items"`
	Sequence int64      `json:"sequence"`
}
