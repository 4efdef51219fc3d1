package services

import (
	"context"
	"errors"

	"boutique-shop/models"
)

var (
	ErrStaleSync          = errors.New("stale cart sync")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrProductUnavailable = errors.New("product unavailable")
)

type CartRepository interface {
	GetByToken(ctx context.Context, token string) (*models.Cart, error)
	Create(ctx context.Context, token string, userID *int) (*models.Cart, error)
	InsertItem(ctx context.Context, cartID int, item *models.CartItem) error
	SetItemQuantity(ctx context.Context, cartID, itemID, quantity int) error
	DeleteItem(ctx context.Context, cartID, itemID int) error
	Clear(ctx context.Context, cartID int) error
	ReplaceItems(ctx context.Context, cartID int, items []models.CartItem, sequence int64) (bool, error)
}

type CartProductReader interface {
	GetByID(ctx context.Context, id int) (*models.Product, error)
}

type CartService struct {
	repo     CartRepository
	products CartProductReader
}

func NewCartService(repo CartRepository, products CartProductReader) *CartService {
	return &CartService{repo: repo, products: products}
}

// GetOrCreate fetches the cart for a session token, creating an empty one on
// first contact.
func (s *CartService) GetOrCreate(ctx context.Context, token string, userID *int) (*models.Cart, error) {
	cart, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	return s.repo.Create(ctx, token, userID)
}

// AddItem adds a product variant to the cart. A line already holding the same
// (product, color, size) tuple gets its quantity incremented instead of a
// duplicate line appearing.
func (s *CartService) AddItem(ctx context.Context, cart *models.Cart, req models.CartItemRequest) (*models.CartItem, error) {
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductUnavailable
	}

	for i := range cart.Items {
		existing := &cart.Items[i]
		if existing.ProductID == req.ProductID && existing.Color == req.Color && existing.Size == req.Size {
			newQuantity := existing.Quantity + quantity
			if err := s.repo.SetItemQuantity(ctx, cart.ID, existing.ID, newQuantity); err != nil {
				return nil, err
			}
			existing.Quantity = newQuantity
			return existing, nil
		}
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	item := &models.CartItem{
		CartID:        cart.ID,
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Image:         image,
		Color:         req.Color,
		Size:          req.Size,
		Quantity:      quantity,
		Category:      product.CategoryName,
	}
	if err := s.repo.InsertItem(ctx, cart.ID, item); err != nil {
		return nil, err
	}
	cart.Items = append(cart.Items, *item)
	return item, nil
}

// UpdateQuantity sets a line's quantity. Zero or below removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, cart *models.Cart, itemID, quantity int) error {
	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCartItemNotFound
	}

	if quantity <= 0 {
		if err := s.repo.DeleteItem(ctx, cart.ID, itemID); err != nil {
			return err
		}
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		return nil
	}

	if err := s.repo.SetItemQuantity(ctx, cart.ID, itemID, quantity); err != nil {
		return err
	}
	cart.Items[idx].Quantity = quantity
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, cart *models.Cart, itemID int) error {
	return s.UpdateQuantity(ctx, cart, itemID, 0)
}

func (s *CartService) Clear(ctx context.Context, cart *models.Cart) error {
	if err := s.repo.Clear(ctx, cart.ID); err != nil {
		return err
	}
	cart.Items = []models.CartItem{}
	return nil
}

// Sync applies a replace-all payload from the storefront. The payload is
// normalized first so the merge invariant holds even if the client sent
// duplicate (product, color, size) lines. A sequence number at or below the
// last applied one means a newer sync already landed: ErrStaleSync.
func (s *CartService) Sync(ctx context.Context, cart *models.Cart, req models.CartSyncRequest) error {
	items := NormalizeItems(req.Items)

	applied, err := s.repo.ReplaceItems(ctx, cart.ID, items, req.Sequence)
	if err != nil {
		return err
	}
	if !applied {
		return ErrStaleSync
	}

	cart.Items = items
	cart.Version = req.Sequence
	return nil
}

// NormalizeItems merges duplicate (product, color, size) lines, sums their
// quantities, and drops lines with a non-positive quantity.
func NormalizeItems(items []models.CartItem) []models.CartItem {
	type key struct {
		productID   int
		color, size string
	}

	merged := []models.CartItem{}
	index := map[key]int{}
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		k := key{it.ProductID, it.Color, it.Size}
		if pos, ok := index[k]; ok {
			merged[pos].Quantity += it.Quantity
			continue
		}
		index[k] = len(merged)
		merged = append(merged, it)
	}
	return merged
}

// Totals recomputes the derived amounts on every call; nothing is cached.
func (s *CartService) Totals(items []models.CartItem) models.CartTotals {
	var totals models.CartTotals
	for _, it := range items {
		totals.Subtotal += it.Price * float64(it.Quantity)
		original := it.Price
		if it.OriginalPrice != nil {
			original = *it.OriginalPrice
		}
		totals.OriginalSubtotal += original * float64(it.Quantity)
		totals.ItemCount += it.Quantity
	}
	totals.Savings = totals.OriginalSubtotal - totals.Subtotal
	return totals
}
