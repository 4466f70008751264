package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/flowershop-backend/internal/domain/catalog"
	"github.com/your-org/flowershop-backend/internal/domain/identity"
)

type memSessionStore struct {
	carts map[string]*SessionCart
	saves int
}

var _ SessionStore = (*memSessionStore)(nil)

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{carts: make(map[string]*SessionCart)}
}

func (m *memSessionStore) Get(_ context.Context, sessionID string) (*SessionCart, error) {
	if c, ok := m.carts[sessionID]; ok {
		cp := *c
		cp.Items = append([]SessionLine(nil), c.Items...)
		return &cp, nil
	}
	now := time.Now().UTC()
	return &SessionCart{SessionID: sessionID, Items: []SessionLine{}, CreatedAt: now, UpdatedAt: now}, nil
}

func (m *memSessionStore) Save(_ context.Context, sessionID string, cart *SessionCart) error {
	m.carts[sessionID] = cart
	m.saves++
	return nil
}

func (m *memSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

type fakeCatalog struct {
	flowers map[uint]catalog.Flower
}

var _ Catalog = (*fakeCatalog)(nil)

func (f *fakeCatalog) Get(_ context.Context, id uint) (*catalog.Flower, error) {
	if fl, ok := f.flowers[id]; ok {
		return &fl, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalog) GetMany(_ context.Context, ids []uint) (map[uint]catalog.Flower, error) {
	result := make(map[uint]catalog.Flower)
	for _, id := range ids {
		if fl, ok := f.flowers[id]; ok {
			result[id] = fl
		}
	}
	return result, nil
}

type memCart struct {
	lines []Line
}

var _ Cart = (*memCart)(nil)

func (m *memCart) Lines(_ context.Context) ([]Line, error) {
	return append([]Line(nil), m.lines...), nil
}

func (m *memCart) Add(_ context.Context, flowerID uint, quantity int) error {
	for i := range m.lines {
		if m.lines[i].FlowerID == flowerID {
			m.lines[i].Quantity += quantity
			return nil
		}
	}
	m.lines = append(m.lines, Line{FlowerID: flowerID, Quantity: quantity})
	return nil
}

func (m *memCart) Remove(_ context.Context, flowerID uint) error {
	for i := range m.lines {
		if m.lines[i].FlowerID == flowerID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memCart) Clear(_ context.Context) error {
	m.lines = nil
	return nil
}

func testService(flowers ...catalog.Flower) (*Service, *memSessionStore) {
	cat := &fakeCatalog{flowers: make(map[uint]catalog.Flower)}
	for _, f := range flowers {
		cat.flowers[f.ID] = f
	}
	store := newMemSessionStore()
	return NewService(nil, store, cat), store
}

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	svc, _ := testService(catalog.Flower{ID: 1, Name: "Rose Bouquet", Price: 1000})
	guest := identity.Guest("sess-1")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 1})
		require.NoError(t, err)
	}

	view, err := svc.GetCart(ctx, guest)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, int64(3000), view.Totals.Subtotal)
}

func TestAddToCartUnknownFlower(t *testing.T) {
	svc, store := testService()
	guest := identity.Guest("sess-1")

	_, err := svc.AddToCart(context.Background(), guest, &AddToCartRequest{FlowerID: 99})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Zero(t, store.saves, "failed add must not touch the session store")
}

func TestRemoveFromCart(t *testing.T) {
	svc, _ := testService(
		catalog.Flower{ID: 1, Name: "Rose Bouquet", Price: 1000},
		catalog.Flower{ID: 2, Name: "Tulip Bundle", Price: 750},
	)
	guest := identity.Guest("sess-1")
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 1, Quantity: 5})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 2})
	require.NoError(t, err)

	// Removal is all-or-nothing regardless of prior quantity.
	view, err := svc.RemoveFromCart(ctx, guest, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, uint(2), view.Items[0].Flower.ID)
}

func TestRemoveAbsentLineIsNoop(t *testing.T) {
	svc, store := testService(catalog.Flower{ID: 1, Name: "Rose Bouquet", Price: 1000})
	guest := identity.Guest("sess-1")
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 1})
	require.NoError(t, err)
	savesBefore := store.saves

	view, err := svc.RemoveFromCart(ctx, guest, 42)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, savesBefore, store.saves, "no-op removal must not rewrite the session")
}

func TestGetCartDropsMissingFlowers(t *testing.T) {
	svc, store := testService(catalog.Flower{ID: 1, Name: "Rose Bouquet", Price: 1000})
	guest := identity.Guest("sess-1")
	ctx := context.Background()

	// A line referencing a flower that has since left the catalog.
	now := time.Now().UTC()
	store.carts["sess-1"] = &SessionCart{
		SessionID: "sess-1",
		Items: []SessionLine{
			{FlowerID: 1, Quantity: 2},
			{FlowerID: 7, Quantity: 1},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	view, err := svc.GetCart(ctx, guest)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, uint(1), view.Items[0].Flower.ID)
	assert.Equal(t, 2, view.Totals.TotalQuantity)
}

func TestGetCartPreservesInsertionOrder(t *testing.T) {
	svc, _ := testService(
		catalog.Flower{ID: 1, Name: "Rose Bouquet", Price: 1000},
		catalog.Flower{ID: 2, Name: "Tulip Bundle", Price: 750},
	)
	guest := identity.Guest("sess-1")
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 2})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 1})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 2})
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, guest)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, uint(2), view.Items[0].Flower.ID)
	assert.Equal(t, uint(1), view.Items[1].Flower.ID)
	assert.Equal(t, 2, view.Items[0].Quantity)
}

func TestExampleScenarioTotals(t *testing.T) {
	// Item A at 10.00, item B at 7.50; A twice, B once => 27.50.
	svc, _ := testService(
		catalog.Flower{ID: 1, Name: "A", Price: 1000},
		catalog.Flower{ID: 2, Name: "B", Price: 750},
	)
	guest := identity.Guest("sess-1")
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 1})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 1})
	require.NoError(t, err)
	view, err := svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(2750), view.Totals.Subtotal)
	assert.Equal(t, 3, view.Totals.TotalQuantity)
	assert.Equal(t, 2, view.Totals.ItemCount)
}

func TestMergeSessionCartAddsQuantities(t *testing.T) {
	svc, store := testService(
		catalog.Flower{ID: 1, Name: "Rose Bouquet", Price: 1000},
		catalog.Flower{ID: 3, Name: "Peony Arrangement", Price: 2450},
	)

	// Account cart already holds two roses from a previous visit.
	account := &memCart{lines: []Line{{FlowerID: 1, Quantity: 2}}}
	svc.persisted = func(userID uint) Cart {
		require.Equal(t, uint(7), userID)
		return account
	}

	guest := identity.Guest("sess-1")
	ctx := context.Background()
	_, err := svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 1})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 3, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, svc.MergeSessionCart(ctx, 7, "sess-1"))

	require.Len(t, account.lines, 2)
	assert.Equal(t, Line{FlowerID: 1, Quantity: 3}, account.lines[0], "overlapping line quantities add")
	assert.Equal(t, Line{FlowerID: 3, Quantity: 2}, account.lines[1])

	_, ok := store.carts["sess-1"]
	assert.False(t, ok, "session cart must be dropped after the merge")
}

func TestMergeSessionCartEmptySessionIsNoop(t *testing.T) {
	svc, _ := testService()
	svc.persisted = func(uint) Cart {
		t.Fatal("empty session must not touch the account cart")
		return nil
	}

	require.NoError(t, svc.MergeSessionCart(context.Background(), 7, "sess-1"))
	require.NoError(t, svc.MergeSessionCart(context.Background(), 7, ""))
}

func TestClearDropsSessionKey(t *testing.T) {
	svc, store := testService(catalog.Flower{ID: 1, Name: "Rose Bouquet", Price: 1000})
	guest := identity.Guest("sess-1")
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, guest, &AddToCartRequest{FlowerID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, guest))
	_, ok := store.carts["sess-1"]
	assert.False(t, ok)

	view, err := svc.GetCart(ctx, guest)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}
