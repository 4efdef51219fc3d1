package controllers

import (
	"errors"
	"strconv"

	"boutique-shop/models"
	"boutique-shop/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// cartToken resolves the session's cart token, minting one on first contact.
// The token is always echoed back so the storefront can persist it.
func (ctrl *CartController) cartToken(c *gin.Context) string {
	token := c.GetHeader("X-Cart-Token")
	if token == "" {
		token = uuid.NewString()
	}
	c.Header("X-Cart-Token", token)
	return token
}

func (ctrl *CartController) loadCart(c *gin.Context) *models.Cart {
	token := ctrl.cartToken(c)

	cart, err := ctrl.carts.GetOrCreate(c.Request.Context(), token, nil)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de charger le panier"})
		return nil
	}
	return cart
}

func (ctrl *CartController) cartPayload(cart *models.Cart) gin.H {
	totals := ctrl.carts.Totals(cart.Items)
	return gin.H{
		"items":             cart.Items,
		"version":           cart.Version,
		"subtotal":          totals.Subtotal,
		"original_subtotal": totals.OriginalSubtotal,
		"savings":           totals.Savings,
		"item_count":        totals.ItemCount,
	}
}

// @Summary Get cart
// @Description Get the session cart with derived totals
// @Tags Cart
// @Produce json
// @Param X-Cart-Token header string false "Cart session token"
// @Success 200 {object} models.Response
// @Router /api/cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart := ctrl.loadCart(c)
	if cart == nil {
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"data":    ctrl.cartPayload(cart),
	})
}

// @Summary Sync cart
// @Description Replace the whole cart with the storefront's current state
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-Token header string false "Cart session token"
// @Param request body models.CartSyncRequest true "Cart state"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /api/cart [put]
func (ctrl *CartController) SyncCart(c *gin.Context) {
	var req models.CartSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	cart := ctrl.loadCart(c)
	if cart == nil {
		return
	}

	if err := ctrl.carts.Sync(c.Request.Context(), cart, req); err != nil {
		if errors.Is(err, services.ErrStaleSync) {
			c.JSON(409, gin.H{"success": false, "message": "Synchronisation obsolète ignorée"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Échec de la synchronisation du panier"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Panier synchronisé",
		"data":    ctrl.cartPayload(cart),
	})
}

// @Summary Add item to cart
// @Description Add a product variant; an existing (product, color, size) line is incremented
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-Token header string false "Cart session token"
// @Param request body models.CartItemRequest true "Item"
// @Success 200 {object} models.Response
// @Router /api/cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	cart := ctrl.loadCart(c)
	if cart == nil {
		return
	}

	if _, err := ctrl.carts.AddItem(c.Request.Context(), cart, req); err != nil {
		if errors.Is(err, services.ErrProductUnavailable) {
			c.JSON(404, gin.H{"success": false, "message": "Produit indisponible"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Impossible d'ajouter l'article"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Article ajouté au panier",
		"data":    ctrl.cartPayload(cart),
	})
}

// @Summary Update item quantity
// @Description Set a line's quantity; zero or below removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-Token header string false "Cart session token"
// @Param id path int true "Cart item ID"
// @Param request body models.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} models.Response
// @Router /api/cart/items/{id} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	itemID, _ := strconv.Atoi(c.Param("id"))
	if itemID <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Article invalide"})
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	cart := ctrl.loadCart(c)
	if cart == nil {
		return
	}

	if err := ctrl.carts.UpdateQuantity(c.Request.Context(), cart, itemID, req.Quantity); err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Article introuvable"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Impossible de modifier l'article"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Panier mis à jour",
		"data":    ctrl.cartPayload(cart),
	})
}

// @Summary Remove item
// @Tags Cart
// @Produce json
// @Param X-Cart-Token header string false "Cart session token"
// @Param id path int true "Cart item ID"
// @Success 200 {object} models.Response
// @Router /api/cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	itemID, _ := strconv.Atoi(c.Param("id"))
	if itemID <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Article invalide"})
		return
	}

	cart := ctrl.loadCart(c)
	if cart == nil {
		return
	}

	if err := ctrl.carts.RemoveItem(c.Request.Context(), cart, itemID); err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Article introuvable"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Impossible de supprimer l'article"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Article supprimé",
		"data":    ctrl.cartPayload(cart),
	})
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Param X-Cart-Token header string false "Cart session token"
// @Success 200 {object} models.Response
// @Router /api/cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	cart := ctrl.loadCart(c)
	if cart == nil {
		return
	}

	if err := ctrl.carts.Clear(c.Request.Context(), cart); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de vider le panier"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Panier vidé",
		"data":    ctrl.cartPayload(cart),
	})
}
