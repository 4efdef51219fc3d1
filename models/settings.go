package models

import "time"

// Settings is the single-row site configuration edited from the back-office.
// Fees are in dinars; FreeShippingFrom at 0 disables free shipping.
type Settings struct {
	ID               int       `json:"-"`
	StoreName        string    `json:"store_name"`
	ContactEmail     string    `json:"contact_email"`
	ContactPhone     string    `json:"contact_phone"`
	FacebookURL      string    `json:"facebook_url,omitempty"`
	InstagramURL     string    `json:"instagram_url,omitempty"`
	Announcement     string    `json:"announcement,omitempty"`
	HomeDeliveryFee  float64   `json:"home_delivery_fee"`
	StopdeskFee      float64   `json:"stopdesk_fee"`
	FreeShippingFrom float64   `json:"free_shipping_from"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UpdateSettingsRequest struct {
	StoreName        string   `json:"store_name"`
	ContactEmail     string   `json:"contact_email" binding:"omitempty,email"`
	ContactPhone     string   `json:"contact_phone"`
	FacebookURL      string   `json:"facebook_url"`
	InstagramURL     string   `json:"instagram_url"`
	Announcement     string   `json:"announcement"`
	HomeDeliveryFee  *float64 `json:"home_delivery_fee"`
	StopdeskFee      *float64 `json:"stopdesk_fee"`
	FreeShippingFrom *float64 `json:"free_shipping_from"`
}
