package controllers

import (
	"errors"
	"fmt"
	"path/filepath"

	"boutique-shop/config"
	"boutique-shop/libs"
	"boutique-shop/models"
	"boutique-shop/services"
	"boutique-shop/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// @Summary Login
// @Description Authenticate a back-office user and issue a JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Email et mot de passe requis"})
		return
	}

	result, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(401, gin.H{"success": false, "message": "Email ou mot de passe incorrect"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Échec de la connexion"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Connexion réussie",
		"data":    result,
	})
}

// @Summary Get profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/auth/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	profile, err := ctrl.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Utilisateur introuvable"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Impossible de récupérer le profil"})
		return
	}

	c.JSON(200, gin.H{"success": true, "data": profile})
}

// @Summary Update profile
// @Description Update profile fields and optionally replace the profile photo
// @Tags Auth
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param full_name formData string false "Full name"
// @Param phone formData string false "Phone"
// @Param photo formData file false "Profile photo"
// @Success 200 {object} models.Response
// @Router /api/auth/profile [put]
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Requête invalide"})
		return
	}

	if err := ctrl.auth.UpdateProfile(c.Request.Context(), userID, req); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de modifier le profil"})
		return
	}

	if file, err := c.FormFile("photo"); err == nil {
		relPath, err := utils.UploadFile(c, file, "profiles")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		photoURL := "/uploads/" + filepath.ToSlash(relPath)
		localPath := filepath.Join(config.AppConfig.UploadDir, relPath)
		if secureURL, _, err := libs.UploadToCloudinary(localPath); err == nil {
			photoURL = secureURL
		} else {
			fmt.Println("Cloudinary upload failed:", err)
		}

		if err := ctrl.auth.UpdateProfilePhoto(c.Request.Context(), userID, photoURL); err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Impossible d'enregistrer la photo"})
			return
		}
	}

	profile, err := ctrl.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Impossible de récupérer le profil"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Profil mis à jour",
		"data":    profile,
	})
}

// @Summary Change password
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Old and new passwords"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/change-password [post]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Le nouveau mot de passe doit contenir au moins 6 caractères"})
		return
	}

	if err := ctrl.auth.ChangePassword(c.Request.Context(), userID, req); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(401, gin.H{"success": false, "message": "Ancien mot de passe incorrect"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Impossible de changer le mot de passe"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Mot de passe modifié"})
}
