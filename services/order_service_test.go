package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"boutique-shop/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminOrderRepo struct {
	orders    map[string]*models.Order
	restocked []string
	updateErr error
}

func newFakeAdminOrderRepo(orders ...*models.Order) *fakeAdminOrderRepo {
	r := &fakeAdminOrderRepo{orders: map[string]*models.Order{}}
	for _, o := range orders {
		r.orders[o.OrderNumber] = o
	}
	return r
}

func (r *fakeAdminOrderRepo) GetAll(_ context.Context, page, limit int, status, search string) ([]models.Order, int, error) {
	out := []models.Order{}
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (r *fakeAdminOrderRepo) GetByID(_ context.Context, id int) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminOrderRepo) GetByNumbers(_ context.Context, numbers []string) ([]models.Order, error) {
	out := []models.Order{}
	for _, n := range numbers {
		if o, ok := r.orders[n]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeAdminOrderRepo) UpdateStatus(_ context.Context, order *models.Order, restock bool) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if restock {
		r.restocked = append(r.restocked, order.OrderNumber)
	}
	stored := *order
	r.orders[order.OrderNumber] = &stored
	return nil
}

func (r *fakeAdminOrderRepo) CountByStatus(_ context.Context) (map[string]int, error) {
	counts := map[string]int{}
	for _, o := range r.orders {
		counts[string(o.Status)]++
	}
	return counts, nil
}

func (r *fakeAdminOrderRepo) Revenue(_ context.Context) (float64, error) {
	revenue := 0.0
	for _, o := range r.orders {
		if o.Status == models.OrderStatusDelivered {
			revenue += o.Total
		}
	}
	return revenue, nil
}

type fakeBordereauGenerator struct {
	generated [][]models.Order
	url       string
	err       error
}

func (g *fakeBordereauGenerator) Generate(orders []models.Order) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.generated = append(g.generated, orders)
	return g.url, nil
}

func (g *fakeBordereauGenerator) Export(orders []models.Order) ([]byte, error) {
	return []byte("xlsx"), nil
}

func pendingOrder(number string) *models.Order {
	return &models.Order{OrderNumber: number, Status: models.OrderStatusPending, Total: 6400}
}

func TestChangeStatusUnknownStatus(t *testing.T) {
	svc := NewOrderService(newFakeAdminOrderRepo(), &fakeBordereauGenerator{})

	_, _, err := svc.ChangeStatus(context.Background(), []string{"ORD-1"}, "archived")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestChangeStatusConfirmGeneratesBordereau(t *testing.T) {
	repo := newFakeAdminOrderRepo(pendingOrder("ORD-1"), pendingOrder("ORD-2"))
	gen := &fakeBordereauGenerator{url: "http://localhost:8080/uploads/bordereaus/bordereau_1.xlsx"}
	svc := NewOrderService(repo, gen)

	results, documentURL, err := svc.ChangeStatus(context.Background(), []string{"ORD-1", "ORD-2"}, "confirmed")
	require.NoError(t, err)

	assert.Equal(t, gen.url, documentURL)
	require.Len(t, gen.generated, 1)
	assert.Len(t, gen.generated[0], 2)

	require.Len(t, results, 2)
	for _, res := range results {
		assert.Empty(t, res.Error)
		assert.Equal(t, "confirmed", res.Status)
	}
	assert.Equal(t, gen.url, repo.orders["ORD-1"].BordereauURL)
}

func TestChangeStatusShipSynthesizesTracking(t *testing.T) {
	order := pendingOrder("ORD-1")
	order.Status = models.OrderStatusConfirmed
	repo := newFakeAdminOrderRepo(order)
	svc := NewOrderService(repo, &fakeBordereauGenerator{})

	results, _, err := svc.ChangeStatus(context.Background(), []string{"ORD-1"}, "shipped")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Regexp(t, regexp.MustCompile(`^TRK-[0-9A-F]{10}$`), results[0].TrackingNumber)
	assert.Equal(t, results[0].TrackingNumber, repo.orders["ORD-1"].TrackingNumber)
}

func TestChangeStatusDisallowedTransition(t *testing.T) {
	repo := newFakeAdminOrderRepo(pendingOrder("ORD-1"))
	svc := NewOrderService(repo, &fakeBordereauGenerator{})

	results, _, err := svc.ChangeStatus(context.Background(), []string{"ORD-1"}, "delivered")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, `Transition de "pending" vers "delivered" non autorisée`, results[0].Error)
	assert.Equal(t, models.OrderStatusPending, repo.orders["ORD-1"].Status)
}

func TestChangeStatusMissingOrder(t *testing.T) {
	repo := newFakeAdminOrderRepo(pendingOrder("ORD-1"))
	svc := NewOrderService(repo, &fakeBordereauGenerator{})

	results, _, err := svc.ChangeStatus(context.Background(), []string{"ORD-1", "ORD-404"}, "confirmed")
	require.NoError(t, err)

	require.Len(t, results, 2)
	byNumber := map[string]models.StatusChangeResult{}
	for _, res := range results {
		byNumber[res.OrderNumber] = res
	}
	assert.Empty(t, byNumber["ORD-1"].Error)
	assert.Equal(t, "Commande introuvable", byNumber["ORD-404"].Error)
}

func TestChangeStatusCancelRestocks(t *testing.T) {
	repo := newFakeAdminOrderRepo(pendingOrder("ORD-1"))
	svc := NewOrderService(repo, &fakeBordereauGenerator{})

	_, _, err := svc.ChangeStatus(context.Background(), []string{"ORD-1"}, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD-1"}, repo.restocked)
}

func TestChangeStatusReturnRestocks(t *testing.T) {
	order := pendingOrder("ORD-1")
	order.Status = models.OrderStatusDelivered
	repo := newFakeAdminOrderRepo(order)
	svc := NewOrderService(repo, &fakeBordereauGenerator{})

	_, _, err := svc.ChangeStatus(context.Background(), []string{"ORD-1"}, "returned")
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD-1"}, repo.restocked)
}

func TestChangeStatusBordereauFailureDoesNotBlockBatch(t *testing.T) {
	repo := newFakeAdminOrderRepo(pendingOrder("ORD-1"))
	svc := NewOrderService(repo, &fakeBordereauGenerator{err: errors.New("disk full")})

	results, documentURL, err := svc.ChangeStatus(context.Background(), []string{"ORD-1"}, "confirmed")
	require.NoError(t, err)

	assert.Empty(t, documentURL)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Error)
	assert.Equal(t, models.OrderStatusConfirmed, repo.orders["ORD-1"].Status)
}

func TestChangeStatusPersistFailureReported(t *testing.T) {
	repo := newFakeAdminOrderRepo(pendingOrder("ORD-1"))
	repo.updateErr = errors.New("connection reset")
	svc := NewOrderService(repo, &fakeBordereauGenerator{})

	results, _, err := svc.ChangeStatus(context.Background(), []string{"ORD-1"}, "cancelled")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Échec de la mise à jour du statut", results[0].Error)
	assert.Equal(t, "pending", results[0].Status)
}

func TestChangeStatusFullLifecycle(t *testing.T) {
	repo := newFakeAdminOrderRepo(pendingOrder("ORD-1"))
	svc := NewOrderService(repo, &fakeBordereauGenerator{url: "http://x/b.xlsx"})

	for _, status := range []string{"confirmed", "shipped", "delivered", "returned"} {
		results, _, err := svc.ChangeStatus(context.Background(), []string{"ORD-1"}, status)
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Empty(t, results[0].Error, "transition to %s", status)
		assert.Equal(t, status, results[0].Status)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewOrderService(newFakeAdminOrderRepo(), &fakeBordereauGenerator{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestExportBordereausNoMatches(t *testing.T) {
	svc := NewOrderService(newFakeAdminOrderRepo(), &fakeBordereauGenerator{})

	_, err := svc.ExportBordereaus(context.Background(), []string{"ORD-404"})
	assert.Error(t, err)
}

func TestDashboard(t *testing.T) {
	delivered := pendingOrder("ORD-2")
	delivered.Status = models.OrderStatusDelivered
	delivered.Total = 9000
	repo := newFakeAdminOrderRepo(pendingOrder("ORD-1"), delivered)
	svc := NewOrderService(repo, &fakeBordereauGenerator{})

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.OrdersByStatus["pending"])
	assert.Equal(t, 9000.0, stats.Revenue)
}
