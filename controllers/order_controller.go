package controllers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"boutique-shop/models"
	"boutique-shop/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (ctrl *OrderController) getPaginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}

func (ctrl *OrderController) generateLinks(c *gin.Context, page, limit, totalPages int) models.PaginationLinks {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}

	host := c.Request.Host
	path := c.Request.URL.Path
	queryParams := c.Request.URL.Query()

	makeURL := func(pageNum int) string {
		newParams := url.Values{}
		for key, values := range queryParams {
			if key != "page" {
				for _, value := range values {
					newParams.Add(key, value)
				}
			}
		}
		newParams.Set("page", strconv.Itoa(pageNum))
		newParams.Set("limit", strconv.Itoa(limit))
		return fmt.Sprintf("%s://%s%s?%s", scheme, host, path, newParams.Encode())
	}

	links := models.PaginationLinks{
		Self: makeURL(page),
	}

	if page > 1 {
		links.Prev = makeURL(page - 1)
	}

	if page < totalPages {
		links.Next = makeURL(page + 1)
	}

	return links
}

func (ctrl *OrderController) buildResponse(c *gin.Context, message string, data interface{}, page, limit, totalItems int) models.HATEOASResponse {
	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}

	if page > totalPages && totalPages > 0 {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	meta := models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}

	return models.HATEOASResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
		Links:   ctrl.generateLinks(c, page, limit, totalPages),
	}
}

// @Summary Get all orders
// @Description Get all orders with pagination (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Param search query string false "Search by order number, name or phone"
// @Success 200 {object} models.HATEOASResponse
// @Router /api/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, limit := ctrl.getPaginationParams(c, 10)
	status := c.Query("status")
	search := c.Query("search")

	orders, total, err := ctrl.orders.GetAll(c.Request.Context(), page, limit, status, search)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de récupérer les commandes"})
		return
	}

	c.JSON(200, ctrl.buildResponse(c, "Commandes récupérées", orders, page, limit, total))
}

// @Summary Get order by ID
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Commande invalide"})
		return
	}

	order, err := ctrl.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Commande introuvable"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Impossible de récupérer la commande"})
		return
	}

	c.JSON(200, gin.H{"success": true, "data": order})
}

// @Summary Change order status
// @Description Apply a status to a batch of orders; confirming also generates a bordereau
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangeStatusRequest true "Order numbers and target status"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/orders/change-status [post]
func (ctrl *OrderController) ChangeStatus(c *gin.Context) {
	var req models.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Orders) == 0 {
		c.JSON(400, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	results, documentURL, err := ctrl.orders.ChangeStatus(c.Request.Context(), req.Orders, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrUnknownStatus) {
			c.JSON(400, gin.H{"success": false, "message": "Statut inconnu"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Échec du changement de statut"})
		return
	}

	data := gin.H{"results": results}
	if documentURL != "" {
		data["document_url"] = documentURL
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Statuts traités",
		"data":    data,
	})
}

// @Summary Export bordereaus
// @Description Build an xlsx delivery manifest for the given orders
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body models.BordereauRequest true "Order numbers"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Router /api/orders/Bordereaus [post]
func (ctrl *OrderController) ExportBordereaus(c *gin.Context) {
	var req models.BordereauRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Orders) == 0 {
		c.JSON(400, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	content, err := ctrl.orders.ExportBordereaus(c.Request.Context(), req.Orders)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de générer les bordereaux"})
		return
	}

	filename := fmt.Sprintf("bordereaux_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

// @Summary Dashboard stats
// @Description Order counts by status and delivered revenue (Admin)
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/dashboard [get]
func (ctrl *OrderController) Dashboard(c *gin.Context) {
	stats, err := ctrl.orders.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de charger le tableau de bord"})
		return
	}

	c.JSON(200, gin.H{"success": true, "data": stats})
}
