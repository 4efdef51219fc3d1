package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"boutique-shop/config"
	"boutique-shop/models"

	"github.com/jackc/pgx/v5"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// PlaceOrder persists an order built from a cart in one transaction: stock is
// checked and decremented line by line under row locks, then the cart is
// emptied. A line exceeding available stock aborts the whole order.
func (r *OrderRepository) PlaceOrder(ctx context.Context, cartID int, order *models.Order) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (order_number, first_name, last_name, phone, address, city, wilaya,
		 shipping_method, gift_wrap, status, subtotal, shipping_fee, total, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		 RETURNING id, created_at`,
		order.OrderNumber, order.FirstName, order.LastName, order.Phone, order.Address,
		order.City, order.Wilaya, order.ShippingMethod, order.GiftWrap, order.Status,
		order.Subtotal, order.ShippingFee, order.Total, now, now).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]

		var name string
		var stock int
		err = tx.QueryRow(ctx,
			`SELECT name, stock FROM products WHERE id=$1 FOR UPDATE`, item.ProductID).Scan(&name, &stock)
		if err != nil {
			return fmt.Errorf("failed to lock product %d: %w", item.ProductID, err)
		}
		if stock < item.Quantity {
			return &models.InsufficientStockError{ProductName: name, Available: stock}
		}

		if _, err = tx.Exec(ctx,
			`UPDATE products SET stock = stock - $1, updated_at = $2 WHERE id = $3`,
			item.Quantity, now, item.ProductID); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}

		if err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, name, quantity, unit_price, color, size, image)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
			order.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice,
			item.Color, item.Size, item.Image).Scan(&item.ID); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		item.OrderID = order.ID
	}

	if _, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return tx.Commit(ctx)
}

const orderColumns = `id, order_number, first_name, last_name, phone, address, city, wilaya,
	shipping_method, gift_wrap, status, subtotal, shipping_fee, total,
	COALESCE(tracking_number, ''), COALESCE(bordereau_url, ''), created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.FirstName, &o.LastName, &o.Phone, &o.Address,
		&o.City, &o.Wilaya, &o.ShippingMethod, &o.GiftWrap, &o.Status, &o.Subtotal,
		&o.ShippingFee, &o.Total, &o.TrackingNumber, &o.BordereauURL, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetAll(ctx context.Context, page, limit int, status, search string) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if status != "" && status != "All" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, status)
		argIndex++
	}
	if search != "" {
		conditions = append(conditions,
			fmt.Sprintf("(order_number ILIKE $%d OR phone ILIKE $%d OR last_name ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+search+"%")
		argIndex++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + orderColumns + " FROM orders" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepository) GetByID(ctx context.Context, id int) (*models.Order, error) {
	row := config.DB.QueryRow(ctx, "SELECT "+orderColumns+" FROM orders WHERE id=$1", id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepository) GetByNumbers(ctx context.Context, numbers []string) ([]models.Order, error) {
	rows, err := config.DB.Query(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE order_number = ANY($1) ORDER BY created_at", numbers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT id, order_id, product_id, name, quantity, unit_price, color, size, COALESCE(image, '')
		 FROM order_items WHERE order_id=$1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Quantity,
			&it.UnitPrice, &it.Color, &it.Size, &it.Image); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus persists one order's transition. Restock runs in the same
// transaction when the order leaves the active flow (cancelled or returned).
func (r *OrderRepository) UpdateStatus(ctx context.Context, order *models.Order, restock bool) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE orders SET status=$1, tracking_number=NULLIF($2, ''), bordereau_url=NULLIF($3, ''), updated_at=NOW()
		 WHERE id=$4`,
		order.Status, order.TrackingNumber, order.BordereauURL, order.ID)
	if err != nil {
		return err
	}

	if restock {
		if _, err = tx.Exec(ctx,
			`UPDATE products p SET stock = p.stock + oi.quantity, updated_at = NOW()
			 FROM order_items oi WHERE oi.order_id = $1 AND oi.product_id = p.id`,
			order.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// CountByStatus feeds the back-office dashboard.
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := config.DB.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// Revenue sums delivered orders only: cash on delivery means money exists
// once the parcel is handed over.
func (r *OrderRepository) Revenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := config.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = 'delivered'`).Scan(&revenue)
	return revenue, err
}
