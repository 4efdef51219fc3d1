package services

import (
	"context"
	"strings"
	"testing"

	"boutique-shop/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCheckoutOrderRepo struct {
	placed *models.Order
	err    error
}

func (r *fakeCheckoutOrderRepo) PlaceOrder(_ context.Context, cartID int, order *models.Order) error {
	if r.err != nil {
		return r.err
	}
	order.ID = 1
	r.placed = order
	return nil
}

type fakeSettingsReader struct {
	settings models.Settings
}

func (r *fakeSettingsReader) Get(_ context.Context) (*models.Settings, error) {
	s := r.settings
	return &s, nil
}

func validForm() models.CheckoutForm {
	return models.CheckoutForm{
		Shipping: models.ShippingInfo{
			FirstName: "Amina",
			LastName:  "Benali",
			Phone:     "0551234567",
			Address:   "Cité 20 Août, Bt 5",
			City:      "Bab Ezzouar",
			Wilaya:    "Alger",
		},
		ShippingMethod: ShippingMethodHome,
		AcceptTerms:    true,
	}
}

func testCheckoutService(repo *fakeCheckoutOrderRepo, settings models.Settings) *CheckoutService {
	return NewCheckoutService(repo, &fakeSettingsReader{settings: settings}, nil)
}

func TestValidateStepShipping(t *testing.T) {
	svc := testCheckoutService(&fakeCheckoutOrderRepo{}, models.Settings{})

	tests := []struct {
		name    string
		mutate  func(*models.CheckoutForm)
		field   string
		message string
	}{
		{"missing first name", func(f *models.CheckoutForm) { f.Shipping.FirstName = "" }, "first_name", "Le prénom est requis"},
		{"short first name", func(f *models.CheckoutForm) { f.Shipping.FirstName = "A" }, "first_name", "Le prénom doit contenir au moins 2 caractères"},
		{"digits in last name", func(f *models.CheckoutForm) { f.Shipping.LastName = "Ben4li" }, "last_name", "Le nom contient des caractères invalides"},
		{"missing phone", func(f *models.CheckoutForm) { f.Shipping.Phone = "" }, "phone", "Le numéro de téléphone est requis"},
		{"landline prefix", func(f *models.CheckoutForm) { f.Shipping.Phone = "0211234567" }, "phone", "Numéro de téléphone algérien invalide"},
		{"phone too short", func(f *models.CheckoutForm) { f.Shipping.Phone = "055123456" }, "phone", "Numéro de téléphone algérien invalide"},
		{"missing address", func(f *models.CheckoutForm) { f.Shipping.Address = "" }, "address", "L'adresse est requise"},
		{"missing city", func(f *models.CheckoutForm) { f.Shipping.City = "" }, "city", "La commune est requise"},
		{"missing wilaya", func(f *models.CheckoutForm) { f.Shipping.Wilaya = "" }, "wilaya", "La wilaya est requise"},
		{"unknown wilaya", func(f *models.CheckoutForm) { f.Shipping.Wilaya = "Atlantide" }, "wilaya", "Wilaya invalide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			fields := svc.ValidateStep(StepShipping, form)
			assert.Equal(t, tt.message, fields[tt.field])
		})
	}
}

func TestValidateStepShippingAcceptsValidForm(t *testing.T) {
	svc := testCheckoutService(&fakeCheckoutOrderRepo{}, models.Settings{})

	assert.Empty(t, svc.ValidateStep(StepShipping, validForm()))
}

func TestValidateStepAcceptsAccentedNames(t *testing.T) {
	svc := testCheckoutService(&fakeCheckoutOrderRepo{}, models.Settings{})

	form := validForm()
	form.Shipping.FirstName = "Aïcha"
	form.Shipping.LastName = "N'Ait-Ahmed"

	assert.Empty(t, svc.ValidateStep(StepShipping, form))
}

func TestValidateStepMethod(t *testing.T) {
	svc := testCheckoutService(&fakeCheckoutOrderRepo{}, models.Settings{})

	form := validForm()
	form.ShippingMethod = "pigeon"
	fields := svc.ValidateStep(StepMethod, form)
	assert.Equal(t, "Veuillez choisir un mode de livraison", fields["shipping_method"])

	form.ShippingMethod = ShippingMethodStopdesk
	assert.Empty(t, svc.ValidateStep(StepMethod, form))
}

func TestValidateStepFinalize(t *testing.T) {
	svc := testCheckoutService(&fakeCheckoutOrderRepo{}, models.Settings{})

	form := validForm()
	form.AcceptTerms = false
	fields := svc.ValidateStep(StepFinalize, form)
	assert.Equal(t, "Vous devez accepter les conditions générales de vente", fields["accept_terms"])
}

func cartWith(items ...models.CartItem) *models.Cart {
	return &models.Cart{ID: 1, Token: "tok", Items: items}
}

func TestPlaceOrderRejectsInvalidForm(t *testing.T) {
	svc := testCheckoutService(&fakeCheckoutOrderRepo{}, models.Settings{})

	form := validForm()
	form.Shipping.Phone = "12345"
	form.AcceptTerms = false

	_, err := svc.PlaceOrder(context.Background(), cartWith(models.CartItem{Price: 1000, Quantity: 1}), form)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Numéro de téléphone algérien invalide", validation.Fields["phone"])
	assert.Contains(t, validation.Fields, "accept_terms")
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	svc := testCheckoutService(&fakeCheckoutOrderRepo{}, models.Settings{})

	_, err := svc.PlaceOrder(context.Background(), cartWith(), validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderComputesTotalsAndClearsCart(t *testing.T) {
	repo := &fakeCheckoutOrderRepo{}
	svc := testCheckoutService(repo, models.Settings{HomeDeliveryFee: 600, StopdeskFee: 400})

	cart := cartWith(
		models.CartItem{ProductID: 1, Name: "Robe d'été", Price: 2500, Quantity: 2, Color: "rouge", Size: "M"},
		models.CartItem{ProductID: 2, Name: "Foulard", Price: 800, Quantity: 1},
	)

	order, err := svc.PlaceOrder(context.Background(), cart, validForm())
	require.NoError(t, err)

	assert.Equal(t, 5800.0, order.Subtotal)
	assert.Equal(t, 600.0, order.ShippingFee)
	assert.Equal(t, 6400.0, order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	require.Len(t, order.Items, 2)
	assert.Equal(t, "rouge", order.Items[0].Color)

	assert.Empty(t, cart.Items)
	assert.Same(t, order, repo.placed)
}

func TestPlaceOrderStopdeskFee(t *testing.T) {
	svc := testCheckoutService(&fakeCheckoutOrderRepo{}, models.Settings{HomeDeliveryFee: 600, StopdeskFee: 400})

	form := validForm()
	form.ShippingMethod = ShippingMethodStopdesk

	order, err := svc.PlaceOrder(context.Background(), cartWith(models.CartItem{Price: 1000, Quantity: 1}), form)
	require.NoError(t, err)
	assert.Equal(t, 400.0, order.ShippingFee)
}

func TestPlaceOrderFreeShippingThreshold(t *testing.T) {
	svc := testCheckoutService(&fakeCheckoutOrderRepo{},
		models.Settings{HomeDeliveryFee: 600, StopdeskFee: 400, FreeShippingFrom: 5000})

	order, err := svc.PlaceOrder(context.Background(), cartWith(models.CartItem{Price: 2500, Quantity: 2}), validForm())
	require.NoError(t, err)
	assert.Zero(t, order.ShippingFee)
	assert.Equal(t, 5000.0, order.Total)
}

func TestPlaceOrderKeepsCartOnStockFailure(t *testing.T) {
	repo := &fakeCheckoutOrderRepo{err: &models.InsufficientStockError{ProductName: "Robe d'été", Available: 1}}
	svc := testCheckoutService(repo, models.Settings{HomeDeliveryFee: 600})

	cart := cartWith(models.CartItem{ProductID: 1, Name: "Robe d'été", Price: 2500, Quantity: 3})

	_, err := svc.PlaceOrder(context.Background(), cart, validForm())

	var stock *models.InsufficientStockError
	require.ErrorAs(t, err, &stock)
	assert.Equal(t, 1, stock.Available)
	assert.Len(t, cart.Items, 1)
}
