package repositories

import (
	"context"
	"errors"
	"time"

	"boutique-shop/config"
	"boutique-shop/models"

	"github.com/jackc/pgx/v5"
)

type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT id, name, slug, COALESCE(description, ''), is_active, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	var cat models.Category
	err := config.DB.QueryRow(ctx,
		`SELECT id, name, slug, COALESCE(description, ''), is_active, created_at FROM categories WHERE id=$1`,
		id).Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.IsActive, &cat.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) NameExists(ctx context.Context, name string, excludeID int) (bool, error) {
	var count int
	err := config.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM categories WHERE name=$1 AND id!=$2`, name, excludeID).Scan(&count)
	return count > 0, err
}

func (r *CategoryRepository) Create(ctx context.Context, cat *models.Category) error {
	return config.DB.QueryRow(ctx,
		`INSERT INTO categories (name, slug, description, is_active, created_at)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at`,
		cat.Name, cat.Slug, cat.Description, cat.IsActive, time.Now()).Scan(&cat.ID, &cat.CreatedAt)
}

func (r *CategoryRepository) Update(ctx context.Context, cat *models.Category) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE categories SET name=$1, slug=$2, description=$3, is_active=$4 WHERE id=$5`,
		cat.Name, cat.Slug, cat.Description, cat.IsActive, cat.ID)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	return err
}

func (r *CategoryRepository) HasProducts(ctx context.Context, id int) (bool, error) {
	var count int
	err := config.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id=$1`, id).Scan(&count)
	return count > 0, err
}
