package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"boutique-shop/models"

	"github.com/google/uuid"
)

var (
	ErrUnknownStatus = errors.New("unknown order status")
	ErrOrderNotFound = errors.New("order not found")
)

type AdminOrderRepository interface {
	GetAll(ctx context.Context, page, limit int, status, search string) ([]models.Order, int, error)
	GetByID(ctx context.Context, id int) (*models.Order, error)
	GetByNumbers(ctx context.Context, numbers []string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, order *models.Order, restock bool) error
	CountByStatus(ctx context.Context) (map[string]int, error)
	Revenue(ctx context.Context) (float64, error)
}

// BordereauGenerator produces the shipping paperwork: Generate writes a label
// sheet for a confirmed batch and returns its public URL, Export builds the
// bulk spreadsheet streamed back to the browser.
type BordereauGenerator interface {
	Generate(orders []models.Order) (string, error)
	Export(orders []models.Order) ([]byte, error)
}

type OrderService struct {
	repo       AdminOrderRepository
	bordereaus BordereauGenerator
}

func NewOrderService(repo AdminOrderRepository, bordereaus BordereauGenerator) *OrderService {
	return &OrderService{repo: repo, bordereaus: bordereaus}
}

func (s *OrderService) GetAll(ctx context.Context, page, limit int, status, search string) ([]models.Order, int, error) {
	return s.repo.GetAll(ctx, page, limit, status, search)
}

func (s *OrderService) GetByID(ctx context.Context, id int) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// NewTrackingNumber synthesizes a carrier-style reference for a shipped order.
func NewTrackingNumber() string {
	return "TRK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// ChangeStatus transitions a batch of orders to a target status. Each order
// is handled independently against the allowed-transition table: an order
// whose current status does not permit the move is reported in its result and
// the rest of the batch proceeds. Moving to shipped synthesizes a tracking
// number; cancelled and returned restock their items; confirmed generates a
// bordereau document whose URL is returned alongside the per-order results.
func (s *OrderService) ChangeStatus(ctx context.Context, numbers []string, status string) ([]models.StatusChangeResult, string, error) {
	target := models.OrderStatus(status)
	if !target.Valid() {
		return nil, "", ErrUnknownStatus
	}

	orders, err := s.repo.GetByNumbers(ctx, numbers)
	if err != nil {
		return nil, "", err
	}

	byNumber := map[string]*models.Order{}
	for i := range orders {
		byNumber[orders[i].OrderNumber] = &orders[i]
	}

	results := make([]models.StatusChangeResult, 0, len(numbers))
	transitioned := []*models.Order{}
	for _, number := range numbers {
		order, ok := byNumber[number]
		if !ok {
			results = append(results, models.StatusChangeResult{
				OrderNumber: number,
				Error:       "Commande introuvable",
			})
			continue
		}
		if !order.Status.CanTransitionTo(target) {
			results = append(results, models.StatusChangeResult{
				OrderNumber: number,
				Status:      string(order.Status),
				Error:       fmt.Sprintf("Transition de \"%s\" vers \"%s\" non autorisée", order.Status, target),
			})
			continue
		}
		transitioned = append(transitioned, order)
	}

	documentURL := ""
	if target == models.OrderStatusConfirmed && len(transitioned) > 0 && s.bordereaus != nil {
		confirmed := make([]models.Order, len(transitioned))
		for i, o := range transitioned {
			confirmed[i] = *o
		}
		documentURL, err = s.bordereaus.Generate(confirmed)
		if err != nil {
			log.Println("Failed to generate bordereau:", err)
			documentURL = ""
		}
	}

	for _, order := range transitioned {
		previous := order.Status
		order.Status = target
		if target == models.OrderStatusShipped && order.TrackingNumber == "" {
			order.TrackingNumber = NewTrackingNumber()
		}
		if documentURL != "" {
			order.BordereauURL = documentURL
		}

		restock := target == models.OrderStatusCancelled || target == models.OrderStatusReturned
		if err := s.repo.UpdateStatus(ctx, order, restock); err != nil {
			order.Status = previous
			results = append(results, models.StatusChangeResult{
				OrderNumber: order.OrderNumber,
				Status:      string(previous),
				Error:       "Échec de la mise à jour du statut",
			})
			continue
		}

		results = append(results, models.StatusChangeResult{
			OrderNumber:    order.OrderNumber,
			Status:         string(order.Status),
			TrackingNumber: order.TrackingNumber,
		})
	}

	return results, documentURL, nil
}

// ExportBordereaus builds the bulk shipping-slip spreadsheet for a set of
// orders.
func (s *OrderService) ExportBordereaus(ctx context.Context, numbers []string) ([]byte, error) {
	orders, err := s.repo.GetByNumbers(ctx, numbers)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errors.New("no matching orders")
	}
	return s.bordereaus.Export(orders)
}

type DashboardStats struct {
	OrdersByStatus map[string]int `json:"orders_by_status"`
	TotalOrders    int            `json:"total_orders"`
	Revenue        float64        `json:"revenue"`
}

func (s *OrderService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.Revenue(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	return &DashboardStats{
		OrdersByStatus: counts,
		TotalOrders:    total,
		Revenue:        revenue,
	}, nil
}
