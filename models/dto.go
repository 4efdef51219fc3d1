package models

// ShippingInfo is the address and contact capture for delivery (checkout
// step 1). All fields are required; the phone must be an Algerian mobile
// number.
type ShippingInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Wilaya    string `json:"wilaya"`
}

// CheckoutForm aggregates the whole wizard. No payment fields exist: orders
// are cash on delivery.
type CheckoutForm struct {
	Shipping       ShippingInfo `json:"shipping"`
	ShippingMethod string       `json:"shipping_method"`
	GiftWrap       bool         `json:"gift_wrap"`
	AcceptTerms    bool         `json:"accept_terms"`
}

type ValidateStepRequest struct {
	Step int          `json:"step" binding:"required,min=1,max=3"`
	Form CheckoutForm `json:"form"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
}

type CategoryRequest struct {
	Name        string `json:"name" form:"name" binding:"required,min=3"`
	Description string `json:"description" form:"description"`
	IsActive    *bool  `json:"is_active" form:"is_active"`
}

type CreateProductRequest struct {
	Name          string   `json:"name" form:"name" binding:"required"`
	Description   string   `json:"description" form:"description"`
	CategoryID    int      `json:"category_id" form:"category_id" binding:"required"`
	Price         float64  `json:"price" form:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"original_price" form:"original_price"`
	Stock         int      `json:"stock" form:"stock"`
	Colors        []string `json:"colors" form:"colors"`
	Sizes         []string `json:"sizes" form:"sizes"`
	IsNew         bool     `json:"is_new" form:"is_new"`
	IsOnSale      bool     `json:"is_on_sale" form:"is_on_sale"`
	IsHero        bool     `json:"is_hero" form:"is_hero"`
}

type UpdateProductRequest struct {
	Name          string   `json:"name" form:"name"`
	Description   string   `json:"description" form:"description"`
	CategoryID    int      `json:"category_id" form:"category_id"`
	Price         float64  `json:"price" form:"price"`
	OriginalPrice *float64 `json:"original_price" form:"original_price"`
	Stock         *int     `json:"stock" form:"stock"`
	Colors        []string `json:"colors" form:"colors"`
	Sizes         []string `json:"sizes" form:"sizes"`
	IsNew         *bool    `json:"is_new" form:"is_new"`
	IsOnSale      *bool    `json:"is_on_sale" form:"is_on_sale"`
	IsHero        *bool    `json:"is_hero" form:"is_hero"`
	IsActive      *bool    `json:"is_active" form:"is_active"`
}
