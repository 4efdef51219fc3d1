package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"boutique-shop/config"
	"boutique-shop/libs"
	"boutique-shop/models"
	"boutique-shop/repositories"
	"boutique-shop/services"
	"boutique-shop/utils"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

func getProductCacheKey(c *gin.Context) string {
	return "products_list_" + c.Request.URL.RawQuery
}

func invalidateProductCache() {
	if models.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := models.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		models.RedisClient.Del(ctx, iter.Val())
	}
}

// @Summary Get products
// @Description Get paginated products, optionally filtered by category, flags or search
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Param category query string false "Category slug"
// @Param new query bool false "Only new arrivals"
// @Param on_sale query bool false "Only sale items"
// @Param hero query bool false "Only hero products"
// @Param search query string false "Search by name"
// @Success 200 {object} models.PaginationResponse
// @Router /api/products [get]
func (ctrl *ProductController) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	cacheKey := getProductCacheKey(c)
	ctx := c.Request.Context()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	filter := repositories.ProductFilter{
		CategorySlug: c.Query("category"),
		OnlyNew:      c.Query("new") == "true",
		OnlyOnSale:   c.Query("on_sale") == "true",
		OnlyHero:     c.Query("hero") == "true",
		Search:       c.Query("search"),
	}

	response, err := ctrl.products.GetAll(ctx, page, limit, filter)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de récupérer les produits"})
		return
	}

	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// @Summary Get product by slug
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{slug} [get]
func (ctrl *ProductController) GetBySlug(c *gin.Context) {
	product, err := ctrl.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Produit introuvable"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Impossible de récupérer le produit"})
		return
	}

	c.JSON(200, gin.H{"success": true, "data": product})
}

// uploadImages stores the request's image files locally and mirrors them to
// Cloudinary when configured. Falls back to the local URL when Cloudinary
// is unavailable.
func (ctrl *ProductController) uploadImages(c *gin.Context) ([]string, string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, "", nil
	}

	urls := []string{}
	cloudinaryID := ""
	for _, fileHeader := range form.File["images"] {
		relPath, err := utils.UploadFile(c, fileHeader, "products")
		if err != nil {
			return nil, "", err
		}

		localPath := filepath.Join(config.AppConfig.UploadDir, relPath)
		secureURL, publicID, err := libs.UploadToCloudinary(localPath)
		if err != nil {
			fmt.Println("Cloudinary upload failed:", err)
			urls = append(urls, "/uploads/"+filepath.ToSlash(relPath))
			continue
		}

		urls = append(urls, secureURL)
		if cloudinaryID == "" {
			cloudinaryID = publicID
		}
	}

	return urls, cloudinaryID, nil
}

// @Summary Create product
// @Description Create a product with optional images (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Product name"
// @Param description formData string false "Description"
// @Param category_id formData int true "Category ID"
// @Param price formData number true "Price in DA"
// @Param original_price formData number false "Original price before discount"
// @Param stock formData int false "Stock"
// @Param colors formData []string false "Available colors"
// @Param sizes formData []string false "Available sizes"
// @Param is_new formData bool false "New arrival"
// @Param is_on_sale formData bool false "On sale"
// @Param is_hero formData bool false "Hero product"
// @Param images formData file false "Product images"
// @Success 201 {object} models.Response
// @Router /admin/products [post]
func (ctrl *ProductController) Create(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Requête invalide : " + err.Error()})
		return
	}

	images, cloudinaryID, err := ctrl.uploadImages(c)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	product, err := ctrl.products.Create(c.Request.Context(), req, images, cloudinaryID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de créer le produit"})
		return
	}

	invalidateProductCache()

	c.JSON(201, gin.H{
		"success": true,
		"message": "Produit créé",
		"data":    product,
	})
}

// @Summary Update product
// @Description Partially update a product, optionally replacing its images (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [put]
func (ctrl *ProductController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Produit invalide"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Requête invalide : " + err.Error()})
		return
	}

	images, cloudinaryID, err := ctrl.uploadImages(c)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	product, err := ctrl.products.Update(c.Request.Context(), id, req, images, cloudinaryID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Produit introuvable"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Impossible de modifier le produit"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{
		"success": true,
		"message": "Produit mis à jour",
		"data":    product,
	})
}

// @Summary Delete product
// @Description Deactivate a product so it no longer appears on the storefront (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Produit invalide"})
		return
	}

	if err := ctrl.products.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Produit introuvable"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Impossible de supprimer le produit"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Produit supprimé"})
}
