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

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// ProductFilter narrows the public listing. Zero values mean "no filter".
type ProductFilter struct {
	CategorySlug string
	OnlyNew      bool
	OnlyOnSale   bool
	OnlyHero     bool
	Search       string
}

const productColumns = `p.id, p.category_id, c.name, p.name, p.slug, p.description, p.price, p.original_price,
	p.stock, p.images, p.colors, p.sizes, p.is_new, p.is_on_sale, p.is_hero, p.is_active,
	COALESCE(p.cloudinary_id, ''), p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.CategoryName, &p.Name, &p.Slug, &p.Description,
		&p.Price, &p.OriginalPrice, &p.Stock, &p.Images, &p.Colors, &p.Sizes,
		&p.IsNew, &p.IsOnSale, &p.IsHero, &p.IsActive, &p.CloudinaryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetAll(ctx context.Context, page, limit int, filter ProductFilter) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	conditions := []string{"p.is_active = true"}
	args := []interface{}{}
	argIndex := 1

	if filter.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", argIndex))
		args = append(args, filter.CategorySlug)
		argIndex++
	}
	if filter.OnlyNew {
		conditions = append(conditions, "p.is_new = true")
	}
	if filter.OnlyOnSale {
		conditions = append(conditions, "p.is_on_sale = true")
	}
	if filter.OnlyHero {
		conditions = append(conditions, "p.is_hero = true")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("p.name ILIKE $%d", argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	where := " WHERE " + strings.Join(conditions, " AND ")
	from := " FROM products p JOIN categories c ON p.category_id = c.id"

	var total int
	if err := config.DB.QueryRow(ctx, "SELECT COUNT(*)"+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + productColumns + from + where +
		fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	row := config.DB.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products p JOIN categories c ON p.category_id = c.id WHERE p.id = $1", id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	row := config.DB.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products p JOIN categories c ON p.category_id = c.id WHERE p.slug = $1 AND p.is_active = true", slug)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now()
	return config.DB.QueryRow(ctx,
		`INSERT INTO products (category_id, name, slug, description, price, original_price, stock,
		 images, colors, sizes, is_new, is_on_sale, is_hero, is_active, cloudinary_id, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,true,$14,$15,$16)
		 RETURNING id, created_at, updated_at`,
		product.CategoryID, product.Name, product.Slug, product.Description, product.Price,
		product.OriginalPrice, product.Stock, product.Images, product.Colors, product.Sizes,
		product.IsNew, product.IsOnSale, product.IsHero, product.CloudinaryID, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE products SET category_id=$1, name=$2, slug=$3, description=$4, price=$5,
		 original_price=$6, stock=$7, images=$8, colors=$9, sizes=$10, is_new=$11,
		 is_on_sale=$12, is_hero=$13, is_active=$14, cloudinary_id=$15, updated_at=$16
		 WHERE id=$17`,
		product.CategoryID, product.Name, product.Slug, product.Description, product.Price,
		product.OriginalPrice, product.Stock, product.Images, product.Colors, product.Sizes,
		product.IsNew, product.IsOnSale, product.IsHero, product.IsActive, product.CloudinaryID,
		time.Now(), product.ID)
	return err
}

// Delete deactivates the product so past orders keep a valid reference.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE products SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	return err
}
