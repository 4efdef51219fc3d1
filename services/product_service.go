package services

import (
	"context"
	"errors"
	"math"

	"boutique-shop/models"
	"boutique-shop/repositories"
	"boutique-shop/utils"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	GetAll(ctx context.Context, page, limit int, filter repositories.ProductFilter) ([]models.Product, int, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int) error
}

type ProductService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

func (s *ProductService) GetAll(ctx context.Context, page, limit int, filter repositories.ProductFilter) (*models.PaginationResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	if limit > 100 {
		limit = 100
	}

	products, total, err := s.productRepo.GetAll(ctx, page, limit, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &models.PaginationResponse{
		Success: true,
		Message: "Products retrieved successfully",
		Data:    products,
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest, images []string, cloudinaryID string) (*models.Product, error) {
	product := &models.Product{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Slug:          utils.Slugify(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Stock:         req.Stock,
		Images:        images,
		Colors:        req.Colors,
		Sizes:         req.Sizes,
		IsNew:         req.IsNew,
		IsOnSale:      req.IsOnSale,
		IsHero:        req.IsHero,
		IsActive:      true,
		CloudinaryID:  cloudinaryID,
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Colors == nil {
		product.Colors = []string{}
	}
	if product.Sizes == nil {
		product.Sizes = []string{}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id int, req models.UpdateProductRequest, images []string, cloudinaryID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Name != "" {
		product.Name = req.Name
		product.Slug = utils.Slugify(req.Name)
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.CategoryID > 0 {
		product.CategoryID = req.CategoryID
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = req.OriginalPrice
	}
	if req.Stock != nil && *req.Stock >= 0 {
		product.Stock = *req.Stock
	}
	if req.Colors != nil {
		product.Colors = req.Colors
	}
	if req.Sizes != nil {
		product.Sizes = req.Sizes
	}
	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}
	if req.IsOnSale != nil {
		product.IsOnSale = *req.IsOnSale
	}
	if req.IsHero != nil {
		product.IsHero = *req.IsHero
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if len(images) > 0 {
		product.Images = images
	}
	if cloudinaryID != "" {
		product.CloudinaryID = cloudinaryID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(ctx, id)
}
