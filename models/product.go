package models

import "time"

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Product struct {
	ID            int       `json:"id"`
	CategoryID    int       `json:"category_id"`
	CategoryName  string    `json:"category_name,omitempty"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	Stock         int       `json:"stock"`
	Images        []string  `json:"images"`
	Colors        []string  `json:"colors"`
	Sizes         []string  `json:"sizes"`
	IsNew         bool      `json:"is_new"`
	IsOnSale      bool      `json:"is_on_sale"`
	IsHero        bool      `json:"is_hero"`
	IsActive      bool      `json:"is_active"`
	CloudinaryID  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
