package repositories

import (
	"context"
	"errors"
	"time"

	"boutique-shop/config"
	"boutique-shop/models"

	"github.com/jackc/pgx/v5"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

func (r *CartRepository) GetByToken(ctx context.Context, token string) (*models.Cart, error) {
	var cart models.Cart
	err := config.DB.QueryRow(ctx,
		`SELECT id, user_id, token, version, updated_at FROM carts WHERE token = $1`,
		token).Scan(&cart.ID, &cart.UserID, &cart.Token, &cart.Version, &cart.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return &cart, nil
}

func (r *CartRepository) Create(ctx context.Context, token string, userID *int) (*models.Cart, error) {
	cart := &models.Cart{Token: token, UserID: userID, Items: []models.CartItem{}}
	err := config.DB.QueryRow(ctx,
		`INSERT INTO carts (token, user_id, version, created_at, updated_at)
		 VALUES ($1, $2, 0, NOW(), NOW())
		 RETURNING id, updated_at`,
		token, userID).Scan(&cart.ID, &cart.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *CartRepository) loadItems(ctx context.Context, cartID int) ([]models.CartItem, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT id, cart_id, product_id, name, price, original_price, image, color, size, quantity, category, created_at, updated_at
		 FROM cart_items WHERE cart_id = $1 ORDER BY id`,
		cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var it models.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Name, &it.Price, &it.OriginalPrice,
			&it.Image, &it.Color, &it.Size, &it.Quantity, &it.Category, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *CartRepository) InsertItem(ctx context.Context, cartID int, item *models.CartItem) error {
	now := time.Now()
	return config.DB.QueryRow(ctx,
		`INSERT INTO cart_items (cart_id, product_id, name, price, original_price, image, color, size, quantity, category, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		 RETURNING id`,
		cartID, item.ProductID, item.Name, item.Price, item.OriginalPrice, item.Image,
		item.Color, item.Size, item.Quantity, item.Category, now, now).Scan(&item.ID)
}

func (r *CartRepository) SetItemQuantity(ctx context.Context, cartID, itemID, quantity int) error {
	tag, err := config.DB.Exec(ctx,
		`UPDATE cart_items SET quantity=$1, updated_at=NOW() WHERE id=$2 AND cart_id=$3`,
		quantity, itemID, cartID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, cartID, itemID int) error {
	tag, err := config.DB.Exec(ctx,
		`DELETE FROM cart_items WHERE id=$1 AND cart_id=$2`, itemID, cartID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, cartID int) error {
	_, err := config.DB.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID)
	return err
}

// ReplaceItems applies a replace-all sync. The version guard runs inside the
// transaction: a sequence at or below the cart's current version means a
// newer sync already landed, and the payload is dropped. Returns false in
// that case.
func (r *CartRepository) ReplaceItems(ctx context.Context, cartID int, items []models.CartItem, sequence int64) (bool, error) {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE carts SET version=$1, updated_at=NOW() WHERE id=$2 AND version < $1`,
		sequence, cartID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
		return false, err
	}

	now := time.Now()
	for _, it := range items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO cart_items (cart_id, product_id, name, price, original_price, image, color, size, quantity, category, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			cartID, it.ProductID, it.Name, it.Price, it.OriginalPrice, it.Image,
			it.Color, it.Size, it.Quantity, it.Category, now, now); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
