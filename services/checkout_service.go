package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"boutique-shop/models"

	"github.com/shopspring/decimal"
)

const (
	ShippingMethodHome     = "domicile"
	ShippingMethodStopdesk = "stopdesk"
)

const (
	StepShipping = 1
	StepMethod   = 2
	StepFinalize = 3
)

var (
	ErrEmptyCart = errors.New("cart is empty")

	// Algerian mobile numbers: 05/06/07 followed by eight digits.
	phonePattern = regexp.MustCompile(`^0[5-7][0-9]{8}$`)
	namePattern  = regexp.MustCompile(`^[\p{Latin}' -]+$`)
)

// ValidationError carries per-field French messages back to the storefront.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

type CheckoutOrderRepository interface {
	PlaceOrder(ctx context.Context, cartID int, order *models.Order) error
}

type SettingsReader interface {
	Get(ctx context.Context) (*models.Settings, error)
}

type OrderNotifier interface {
	SendOrderNotificationEmail(toEmail, customerName, orderNumber string, total float64) error
}

type CheckoutService struct {
	orders   CheckoutOrderRepository
	settings SettingsReader
	notifier OrderNotifier
}

// NewCheckoutService wires the checkout pipeline. notifier may be nil when
// SMTP is not configured.
func NewCheckoutService(orders CheckoutOrderRepository, settings SettingsReader, notifier OrderNotifier) *CheckoutService {
	return &CheckoutService{orders: orders, settings: settings, notifier: notifier}
}

// ValidateStep checks the fields owned by one wizard step. An empty map means
// the step may advance.
func (s *CheckoutService) ValidateStep(step int, form models.CheckoutForm) map[string]string {
	fields := map[string]string{}

	switch step {
	case StepShipping:
		validateName(fields, "first_name", form.Shipping.FirstName, "Le prénom")
		validateName(fields, "last_name", form.Shipping.LastName, "Le nom")

		phone := strings.TrimSpace(form.Shipping.Phone)
		if phone == "" {
			fields["phone"] = "Le numéro de téléphone est requis"
		} else if !phonePattern.MatchString(phone) {
			fields["phone"] = "Numéro de téléphone algérien invalide"
		}

		if strings.TrimSpace(form.Shipping.Address) == "" {
			fields["address"] = "L'adresse est requise"
		}
		if strings.TrimSpace(form.Shipping.City) == "" {
			fields["city"] = "La commune est requise"
		}

		wilaya := strings.TrimSpace(form.Shipping.Wilaya)
		if wilaya == "" {
			fields["wilaya"] = "La wilaya est requise"
		} else if !models.IsValidWilaya(wilaya) {
			fields["wilaya"] = "Wilaya invalide"
		}

	case StepMethod:
		if form.ShippingMethod != ShippingMethodHome && form.ShippingMethod != ShippingMethodStopdesk {
			fields["shipping_method"] = "Veuillez choisir un mode de livraison"
		}

	case StepFinalize:
		if !form.AcceptTerms {
			fields["accept_terms"] = "Vous devez accepter les conditions générales de vente"
		}
	}

	return fields
}

func validateName(fields map[string]string, field, value, label string) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		fields[field] = label + " est requis"
	case len([]rune(value)) < 2:
		fields[field] = label + " doit contenir au moins 2 caractères"
	case !namePattern.MatchString(value):
		fields[field] = label + " contient des caractères invalides"
	}
}

// validateAll runs every step's gate; final submission must pass them all.
func (s *CheckoutService) validateAll(form models.CheckoutForm) map[string]string {
	fields := map[string]string{}
	for step := StepShipping; step <= StepFinalize; step++ {
		for k, v := range s.ValidateStep(step, form) {
			fields[k] = v
		}
	}
	return fields
}

// PlaceOrder turns the cart into a cash-on-delivery order: full-form
// validation, totals, shipping fee from settings, transactional persistence
// (which clears the cart), then a best-effort notification to the boutique.
func (s *CheckoutService) PlaceOrder(ctx context.Context, cart *models.Cart, form models.CheckoutForm) (*models.Order, error) {
	if fields := s.validateAll(form); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		price := decimal.NewFromFloat(it.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Color:     it.Color,
			Size:      it.Size,
			Image:     it.Image,
		})
	}

	fee := decimal.NewFromFloat(settings.HomeDeliveryFee)
	if form.ShippingMethod == ShippingMethodStopdesk {
		fee = decimal.NewFromFloat(settings.StopdeskFee)
	}
	if settings.FreeShippingFrom > 0 && subtotal.GreaterThanOrEqual(decimal.NewFromFloat(settings.FreeShippingFrom)) {
		fee = decimal.Zero
	}

	subtotalF, _ := subtotal.Float64()
	feeF, _ := fee.Float64()
	totalF, _ := subtotal.Add(fee).Float64()

	order := &models.Order{
		OrderNumber:    fmt.Sprintf("ORD-%d", time.Now().Unix()),
		FirstName:      strings.TrimSpace(form.Shipping.FirstName),
		LastName:       strings.TrimSpace(form.Shipping.LastName),
		Phone:          strings.TrimSpace(form.Shipping.Phone),
		Address:        strings.TrimSpace(form.Shipping.Address),
		City:           strings.TrimSpace(form.Shipping.City),
		Wilaya:         strings.TrimSpace(form.Shipping.Wilaya),
		ShippingMethod: form.ShippingMethod,
		GiftWrap:       form.GiftWrap,
		Status:         models.OrderStatusPending,
		Subtotal:       subtotalF,
		ShippingFee:    feeF,
		Total:          totalF,
		Items:          items,
	}

	if err := s.orders.PlaceOrder(ctx, cart.ID, order); err != nil {
		return nil, err
	}
	cart.Items = []models.CartItem{}

	if s.notifier != nil && settings.ContactEmail != "" {
		customer := order.FirstName + " " + order.LastName
		go func() {
			if err := s.notifier.SendOrderNotificationEmail(settings.ContactEmail, customer, order.OrderNumber, order.Total); err != nil {
				log.Println("Failed to send order notification:", err)
			}
		}()
	}

	return order, nil
}
