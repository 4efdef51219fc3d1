package controllers

import (
	"boutique-shop/models"
	"boutique-shop/services"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settings *services.SettingsService
}

func NewSettingsController(settings *services.SettingsService) *SettingsController {
	return &SettingsController{settings: settings}
}

// @Summary Get store settings
// @Description Public store settings: contact info, announcement and shipping fees
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/settings [get]
func (ctrl *SettingsController) Get(c *gin.Context) {
	settings, err := ctrl.settings.Get(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de récupérer les paramètres"})
		return
	}

	c.JSON(200, gin.H{"success": true, "data": settings})
}

// @Summary Update store settings
// @Tags Admin - Settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} models.Response
// @Router /admin/settings [put]
func (ctrl *SettingsController) Update(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	settings, err := ctrl.settings.Update(c.Request.Context(), req)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de modifier les paramètres"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Paramètres enregistrés",
		"data":    settings,
	})
}

// @Summary List wilayas
// @Description The 58 Algerian wilayas accepted at checkout
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/wilayas [get]
func (ctrl *SettingsController) GetWilayas(c *gin.Context) {
	c.JSON(200, gin.H{"success": true, "data": models.Wilayas})
}
