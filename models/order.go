package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusReturned  OrderStatus = "returned"
)

// allowedTransitions is the explicit status graph. Terminal statuses
// (cancelled, returned) have no outgoing edges.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusReturned},
	OrderStatusDelivered: {OrderStatusReturned},
	OrderStatusCancelled: {},
	OrderStatusReturned:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status graph allows moving from s to
// next. A no-op transition (same status) is never allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID             int         `json:"id"`
	OrderNumber    string      `json:"order_number"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Phone          string      `json:"phone"`
	Address        string      `json:"address"`
	City           string      `json:"city"`
	Wilaya         string      `json:"wilaya"`
	ShippingMethod string      `json:"shipping_method"`
	GiftWrap       bool        `json:"gift_wrap"`
	Status         OrderStatus `json:"status"`
	Subtotal       float64     `json:"subtotal"`
	ShippingFee    float64     `json:"shipping_fee"`
	Total          float64     `json:"total"`
	TrackingNumber string      `json:"tracking_number,omitempty"`
	BordereauURL   string      `json:"bordereau_url,omitempty"`
	Items          []OrderItem `json:"items,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Image     string  `json:"image,omitempty"`
}

type ChangeStatusRequest struct {
	Orders []string `json:"orders" binding:"required,min=1"`
	Status string   `json:"status" binding:"required"`
}

type BordereauRequest struct {
	Orders []string `json:"orders" binding:"required,min=1"`
}

// StatusChangeResult reports one order's outcome within a bulk status change.
type StatusChangeResult struct {
	OrderNumber    string `json:"order_number"`
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	Error          string `json:"error,omitempty"`
}
