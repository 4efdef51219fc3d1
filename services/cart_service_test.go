package services

import (
	"context"
	"testing"

	"boutique-shop/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartRepo struct {
	carts   map[string]*models.Cart
	nextID  int
	version int64
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*models.Cart{}, nextID: 1}
}

func (r *fakeCartRepo) GetByToken(_ context.Context, token string) (*models.Cart, error) {
	return r.carts[token], nil
}

func (r *fakeCartRepo) Create(_ context.Context, token string, userID *int) (*models.Cart, error) {
	cart := &models.Cart{ID: len(r.carts) + 1, Token: token, UserID: userID, Items: []models.CartItem{}}
	r.carts[token] = cart
	return cart, nil
}

func (r *fakeCartRepo) InsertItem(_ context.Context, cartID int, item *models.CartItem) error {
	item.ID = r.nextID
	r.nextID++
	return nil
}

func (r *fakeCartRepo) SetItemQuantity(_ context.Context, cartID, itemID, quantity int) error {
	return nil
}

func (r *fakeCartRepo) DeleteItem(_ context.Context, cartID, itemID int) error { return nil }
func (r *fakeCartRepo) Clear(_ context.Context, cartID int) error              { return nil }

func (r *fakeCartRepo) ReplaceItems(_ context.Context, cartID int, items []models.CartItem, sequence int64) (bool, error) {
	if sequence <= r.version {
		return false, nil
	}
	r.version = sequence
	return true, nil
}

type fakeProductReader struct {
	products map[int]*models.Product
}

func (r *fakeProductReader) GetByID(_ context.Context, id int) (*models.Product, error) {
	return r.products[id], nil
}

func ptrFloat(v float64) *float64 { return &v }

func testCartService(products ...*models.Product) (*CartService, *fakeCartRepo) {
	repo := newFakeCartRepo()
	reader := &fakeProductReader{products: map[int]*models.Product{}}
	for _, p := range products {
		reader.products[p.ID] = p
	}
	return NewCartService(repo, reader), repo
}

func testProduct() *models.Product {
	return &models.Product{
		ID:           1,
		Name:         "Robe d'été",
		Price:        2500,
		CategoryName: "Robes",
		Images:       []string{"/uploads/products/robe.jpg"},
		IsActive:     true,
	}
}

func TestAddItemMergesSameVariant(t *testing.T) {
	svc, _ := testCartService(testProduct())
	cart, err := svc.GetOrCreate(context.Background(), "tok", nil)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), cart, models.CartItemRequest{ProductID: 1, Color: "rouge", Size: "M", Quantity: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), cart, models.CartItemRequest{ProductID: 1, Color: "rouge", Size: "M", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItemDifferentVariantsStaySeparate(t *testing.T) {
	svc, _ := testCartService(testProduct())
	cart, _ := svc.GetOrCreate(context.Background(), "tok", nil)

	_, err := svc.AddItem(context.Background(), cart, models.CartItemRequest{ProductID: 1, Color: "rouge", Size: "M", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), cart, models.CartItemRequest{ProductID: 1, Color: "rouge", Size: "L", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), cart, models.CartItemRequest{ProductID: 1, Color: "noir", Size: "M", Quantity: 1})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 3)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	svc, _ := testCartService(testProduct())
	cart, _ := svc.GetOrCreate(context.Background(), "tok", nil)

	item, err := svc.AddItem(context.Background(), cart, models.CartItemRequest{ProductID: 1, Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestAddItemUnknownOrInactiveProduct(t *testing.T) {
	inactive := testProduct()
	inactive.ID = 2
	inactive.IsActive = false

	svc, _ := testCartService(testProduct(), inactive)
	cart, _ := svc.GetOrCreate(context.Background(), "tok", nil)

	_, err := svc.AddItem(context.Background(), cart, models.CartItemRequest{ProductID: 99})
	assert.ErrorIs(t, err, ErrProductUnavailable)

	_, err = svc.AddItem(context.Background(), cart, models.CartItemRequest{ProductID: 2})
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, _ := testCartService(testProduct())
	cart, _ := svc.GetOrCreate(context.Background(), "tok", nil)

	item, err := svc.AddItem(context.Background(), cart, models.CartItemRequest{ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(context.Background(), cart, item.ID, 0))
	assert.Empty(t, cart.Items)

	// negative quantities behave like zero
	item, _ = svc.AddItem(context.Background(), cart, models.CartItemRequest{ProductID: 1, Quantity: 2})
	require.NoError(t, svc.UpdateQuantity(context.Background(), cart, item.ID, -3))
	assert.Empty(t, cart.Items)
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	svc, _ := testCartService(testProduct())
	cart, _ := svc.GetOrCreate(context.Background(), "tok", nil)

	err := svc.UpdateQuantity(context.Background(), cart, 42, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestSyncRejectsStaleSequence(t *testing.T) {
	svc, _ := testCartService(testProduct())
	cart, _ := svc.GetOrCreate(context.Background(), "tok", nil)

	err := svc.Sync(context.Background(), cart, models.CartSyncRequest{
		Items:    []models.CartItem{{ProductID: 1, Name: "Robe d'été", Price: 2500, Quantity: 1}},
		Sequence: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), cart.Version)

	err = svc.Sync(context.Background(), cart, models.CartSyncRequest{
		Items:    []models.CartItem{},
		Sequence: 3,
	})
	assert.ErrorIs(t, err, ErrStaleSync)
	// the rejected payload must not clobber the applied state
	assert.Equal(t, int64(5), cart.Version)
	assert.Len(t, cart.Items, 1)
}

func TestNormalizeItems(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, Color: "rouge", Size: "M", Quantity: 2},
		{ProductID: 1, Color: "rouge", Size: "M", Quantity: 3},
		{ProductID: 1, Color: "noir", Size: "M", Quantity: 1},
		{ProductID: 2, Quantity: 0},
		{ProductID: 3, Quantity: -1},
	}

	merged := NormalizeItems(items)

	require.Len(t, merged, 2)
	assert.Equal(t, 5, merged[0].Quantity)
	assert.Equal(t, "noir", merged[1].Color)
}

func TestTotals(t *testing.T) {
	svc, _ := testCartService()

	totals := svc.Totals([]models.CartItem{
		{Price: 2000, OriginalPrice: ptrFloat(2500), Quantity: 2},
		{Price: 1500, Quantity: 1},
	})

	assert.Equal(t, 5500.0, totals.Subtotal)
	assert.Equal(t, 6500.0, totals.OriginalSubtotal)
	assert.Equal(t, 1000.0, totals.Savings)
	assert.Equal(t, 3, totals.ItemCount)
}

func TestTotalsEmptyCart(t *testing.T) {
	svc, _ := testCartService()

	totals := svc.Totals(nil)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Savings)
	assert.Zero(t, totals.ItemCount)
}
