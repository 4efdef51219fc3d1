package services

import (
	"context"
	"errors"

	"boutique-shop/models"
	"boutique-shop/utils"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryNameUsed = errors.New("category name already exists")
	ErrCategoryInUse    = errors.New("category still has products")
)

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int) (*models.Category, error)
	NameExists(ctx context.Context, name string, excludeID int) (bool, error)
	Create(ctx context.Context, cat *models.Category) error
	Update(ctx context.Context, cat *models.Category) error
	Delete(ctx context.Context, id int) error
	HasProducts(ctx context.Context, id int) (bool, error)
}

type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	taken, err := s.repo.NameExists(ctx, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategoryNameUsed
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	cat := &models.Category{
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
		IsActive:    active,
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) Update(ctx context.Context, id int, req models.CategoryRequest) (*models.Category, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	taken, err := s.repo.NameExists(ctx, req.Name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategoryNameUsed
	}

	cat.Name = req.Name
	cat.Slug = utils.Slugify(req.Name)
	cat.Description = req.Description
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// Delete refuses to remove a category that still holds products; the
// back-office must reassign them first.
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrCategoryNotFound
	}

	inUse, err := s.repo.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCategoryInUse
	}

	return s.repo.Delete(ctx, id)
}
