package controllers

import (
	"errors"
	"fmt"

	"boutique-shop/models"
	"boutique-shop/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkout *services.CheckoutService
	carts    *services.CartService
}

func NewCheckoutController(checkout *services.CheckoutService, carts *services.CartService) *CheckoutController {
	return &CheckoutController{checkout: checkout, carts: carts}
}

// @Summary Validate checkout step
// @Description Validate the given step's fields so the storefront can gate navigation
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.ValidateStepRequest true "Step and form"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/checkout/validate [post]
func (ctrl *CheckoutController) ValidateStep(c *gin.Context) {
	var req models.ValidateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	if req.Step < services.StepShipping || req.Step > services.StepFinalize {
		c.JSON(400, gin.H{"success": false, "message": "Étape inconnue"})
		return
	}

	if fields := ctrl.checkout.ValidateStep(req.Step, req.Form); len(fields) > 0 {
		c.JSON(400, gin.H{
			"success": false,
			"message": "Validation échouée",
			"errors":  fields,
		})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Étape valide"})
}

// @Summary Place order
// @Description Validate the whole checkout form and place a cash-on-delivery order
// @Tags Checkout
// @Accept json
// @Produce json
// @Param X-Cart-Token header string false "Cart session token"
// @Param request body models.CheckoutForm true "Checkout form"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/checkout [post]
func (ctrl *CheckoutController) PlaceOrder(c *gin.Context) {
	var form models.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	token := c.GetHeader("X-Cart-Token")
	if token == "" {
		c.JSON(400, gin.H{"success": false, "message": "Votre panier est vide"})
		return
	}
	c.Header("X-Cart-Token", token)

	cart, err := ctrl.carts.GetOrCreate(c.Request.Context(), token, nil)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de charger le panier"})
		return
	}

	order, err := ctrl.checkout.PlaceOrder(c.Request.Context(), cart, form)
	if err != nil {
		var validation *services.ValidationError
		if errors.As(err, &validation) {
			c.JSON(400, gin.H{
				"success": false,
				"message": "Validation échouée",
				"errors":  validation.Fields,
			})
			return
		}

		var stock *models.InsufficientStockError
		if errors.As(err, &stock) {
			c.JSON(400, gin.H{
				"success": false,
				"message": fmt.Sprintf("Stock insuffisant pour %s (disponible : %d)", stock.ProductName, stock.Available),
			})
			return
		}

		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(400, gin.H{"success": false, "message": "Votre panier est vide"})
			return
		}

		c.JSON(500, gin.H{"success": false, "message": "Impossible de passer la commande"})
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Commande enregistrée",
		"data":    order,
	})
}
