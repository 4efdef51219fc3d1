package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boutique-shop/models"
	"boutique-shop/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderRepo struct{}

func (stubOrderRepo) PlaceOrder(_ context.Context, cartID int, order *models.Order) error {
	order.ID = 1
	return nil
}

type stubSettingsReader struct{}

func (stubSettingsReader) Get(_ context.Context) (*models.Settings, error) {
	return &models.Settings{HomeDeliveryFee: 600, StopdeskFee: 400}, nil
}

func validateRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	checkoutSvc := services.NewCheckoutService(stubOrderRepo{}, stubSettingsReader{}, nil)
	ctrl := NewCheckoutController(checkoutSvc, nil)

	router := gin.New()
	router.POST("/api/checkout/validate", ctrl.ValidateStep)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestValidateStepEndpointRejectsBadPhone(t *testing.T) {
	router := validateRouter()

	recorder := postJSON(router, "/api/checkout/validate", `{
		"step": 1,
		"form": {"shipping": {
			"first_name": "Amina", "last_name": "Benali",
			"phone": "0123456789",
			"address": "Cité 20 Août", "city": "Bab Ezzouar", "wilaya": "Alger"
		}}
	}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body struct {
		Success bool              `json:"success"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Numéro de téléphone algérien invalide", body.Errors["phone"])
}

func TestValidateStepEndpointAcceptsValidStep(t *testing.T) {
	router := validateRouter()

	recorder := postJSON(router, "/api/checkout/validate", `{
		"step": 1,
		"form": {"shipping": {
			"first_name": "Amina", "last_name": "Benali",
			"phone": "0551234567",
			"address": "Cité 20 Août", "city": "Bab Ezzouar", "wilaya": "Alger"
		}}
	}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestValidateStepEndpointRejectsUnknownStep(t *testing.T) {
	router := validateRouter()

	recorder := postJSON(router, "/api/checkout/validate", `{"step": 7, "form": {}}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
