package controllers

import (
	"errors"
	"strconv"

	"boutique-shop/models"
	"boutique-shop/services"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

// @Summary Get all categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/categories [get]
func (ctrl *CategoryController) GetAll(c *gin.Context) {
	categories, err := ctrl.categories.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de récupérer les catégories"})
		return
	}

	c.JSON(200, gin.H{"success": true, "data": categories})
}

// @Summary Create category
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CategoryRequest true "Category"
// @Success 201 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/categories [post]
func (ctrl *CategoryController) Create(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Le nom doit contenir au moins 3 caractères"})
		return
	}

	category, err := ctrl.categories.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNameUsed) {
			c.JSON(409, gin.H{"success": false, "message": "Ce nom de catégorie existe déjà"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Impossible de créer la catégorie"})
		return
	}

	invalidateProductCache()

	c.JSON(201, gin.H{
		"success": true,
		"message": "Catégorie créée",
		"data":    category,
	})
}

// @Summary Update category
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body models.CategoryRequest true "Category"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/categories/{id} [put]
func (ctrl *CategoryController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Catégorie invalide"})
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Le nom doit contenir au moins 3 caractères"})
		return
	}

	category, err := ctrl.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			c.JSON(404, gin.H{"success": false, "message": "Catégorie introuvable"})
		case errors.Is(err, services.ErrCategoryNameUsed):
			c.JSON(409, gin.H{"success": false, "message": "Ce nom de catégorie existe déjà"})
		default:
			c.JSON(500, gin.H{"success": false, "message": "Impossible de modifier la catégorie"})
		}
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{
		"success": true,
		"message": "Catégorie mise à jour",
		"data":    category,
	})
}

// @Summary Delete category
// @Description Delete a category; refused while products still reference it (Admin)
// @Tags Admin - Categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/categories/{id} [delete]
func (ctrl *CategoryController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Catégorie invalide"})
		return
	}

	if err := ctrl.categories.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			c.JSON(404, gin.H{"success": false, "message": "Catégorie introuvable"})
		case errors.Is(err, services.ErrCategoryInUse):
			c.JSON(409, gin.H{"success": false, "message": "Des produits utilisent encore cette catégorie"})
		default:
			c.JSON(500, gin.H{"success": false, "message": "Impossible de supprimer la catégorie"})
		}
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Catégorie supprimée"})
}
