package order

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/flowershop-backend/internal/domain/cart"
	"github.com/your-org/flowershop-backend/internal/domain/catalog"
	"github.com/your-org/flowershop-backend/internal/domain/identity"
)

type fakeStore struct {
	orders     map[uint]*Order
	nextID     uint
	failCreate bool
}

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{orders: make(map[uint]*Order), nextID: 1}
}

func (f *fakeStore) Create(_ context.Context, o *Order) error {
	if f.failCreate {
		return errors.New("store unavailable")
	}
	o.ID = f.nextID
	f.nextID++
	cp := *o
	cp.Items = append([]OrderItem(nil), o.Items...)
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint) (*Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	cp.Items = append([]OrderItem(nil), o.Items...)
	return &cp, nil
}

func (f *fakeStore) List(_ context.Context) ([]Order, error) {
	var out []Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID uint) ([]Order, error) {
	var out []Order
	for _, o := range f.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id uint, status OrderStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	return nil
}

type fakeCarts struct {
	view      *cart.CartView
	cleared   bool
	failClear bool
}

var _ CartAccess = (*fakeCarts)(nil)

func (f *fakeCarts) GetCart(_ context.Context, _ identity.Identity) (*cart.CartView, error) {
	return f.view, nil
}

func (f *fakeCarts) Clear(_ context.Context, _ identity.Identity) error {
	if f.failClear {
		return errors.New("session store unavailable")
	}
	f.view = &cart.CartView{Items: []cart.ResolvedLine{}}
	f.cleared = true
	return nil
}

func cartWith(lines ...cart.ResolvedLine) *fakeCarts {
	return &fakeCarts{view: &cart.CartView{Items: lines}}
}

func line(id uint, name string, price int64, qty int) cart.ResolvedLine {
	return cart.ResolvedLine{
		Flower:   catalog.Flower{ID: id, Name: name, Price: price},
		Quantity: qty,
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestCheckoutValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     CheckoutRequest
		missing []string
	}{
		{"all empty", CheckoutRequest{}, []string{"name", "phone", "address"}},
		{"no phone", CheckoutRequest{Name: "Jane", Address: "1 Elm St"}, []string{"phone"}},
		{"whitespace only", CheckoutRequest{Name: "  ", Phone: "555-0100", Address: "1 Elm St"}, []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := NewService(store, cartWith(line(1, "A", 1000, 1)), quietLogger())

			_, err := svc.Checkout(context.Background(), identity.Guest("sess-1"), &tt.req)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.missing, vErr.Missing)
			assert.Empty(t, store.orders, "validation failure must not create an order")
		})
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, cartWith(), quietLogger())

	_, err := svc.Checkout(context.Background(), identity.Guest("sess-1"),
		&CheckoutRequest{Name: "Jane", Phone: "555-0100", Address: "1 Elm St"})

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, store.orders)
}

func TestCheckoutGuestScenario(t *testing.T) {
	// Item A at 10.00 twice, item B at 7.50 once => total 27.50.
	store := newFakeStore()
	carts := cartWith(line(1, "A", 1000, 2), line(2, "B", 750, 1))
	svc := NewService(store, carts, quietLogger())

	o, err := svc.Checkout(context.Background(), identity.Guest("sess-1"),
		&CheckoutRequest{Name: "Jane", Phone: "555-0100", Address: "1 Elm St"})
	require.NoError(t, err)

	assert.Nil(t, o.UserID, "guest checkout has no owning account")
	assert.Equal(t, int64(2750), o.TotalPrice)
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, "Jane", o.CustomerName)
	require.Len(t, o.Items, 2)
	assert.Equal(t, OrderItem{FlowerID: 1, Name: "A", Quantity: 2, Price: 1000}, o.Items[0])
	assert.True(t, carts.cleared, "cart must be cleared after successful checkout")

	view, err := carts.GetCart(context.Background(), identity.Guest("sess-1"))
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCheckoutAuthenticatedDefaultsFromProfile(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, cartWith(line(1, "A", 1000, 1)), quietLogger())

	acct := identity.Account(7, "Jane Doe", "555-0100")
	o, err := svc.Checkout(context.Background(), acct, &CheckoutRequest{Address: "1 Elm St"})
	require.NoError(t, err)

	require.NotNil(t, o.UserID)
	assert.Equal(t, uint(7), *o.UserID)
	assert.Equal(t, "Jane Doe", o.CustomerName)
	assert.Equal(t, "555-0100", o.CustomerPhone)
}

func TestCheckoutStoreFailureLeavesCartUntouched(t *testing.T) {
	store := newFakeStore()
	store.failCreate = true
	carts := cartWith(line(1, "A", 1000, 1))
	svc := NewService(store, carts, quietLogger())

	_, err := svc.Checkout(context.Background(), identity.Guest("sess-1"),
		&CheckoutRequest{Name: "Jane", Phone: "555-0100", Address: "1 Elm St"})

	require.Error(t, err)
	assert.False(t, carts.cleared, "failed persistence must not clear the cart")
	assert.Len(t, carts.view.Items, 1)
}

func TestCheckoutClearFailureStillReturnsOrder(t *testing.T) {
	store := newFakeStore()
	carts := cartWith(line(1, "A", 1000, 1))
	carts.failClear = true
	svc := NewService(store, carts, quietLogger())

	o, err := svc.Checkout(context.Background(), identity.Guest("sess-1"),
		&CheckoutRequest{Name: "Jane", Phone: "555-0100", Address: "1 Elm St"})

	require.NoError(t, err, "order durability outranks cart cleanup")
	assert.NotZero(t, o.ID)
	assert.Len(t, store.orders, 1)
}

func TestSnapshotSurvivesCatalogPriceChange(t *testing.T) {
	store := newFakeStore()
	carts := cartWith(line(1, "A", 1000, 1))
	svc := NewService(store, carts, quietLogger())

	o, err := svc.Checkout(context.Background(), identity.Guest("sess-1"),
		&CheckoutRequest{Name: "Jane", Phone: "555-0100", Address: "1 Elm St"})
	require.NoError(t, err)

	// Catalog price moves after the order was placed.
	carts.view = &cart.CartView{Items: []cart.ResolvedLine{line(1, "A", 9999, 1)}}

	reread, err := svc.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), reread.Items[0].Price)
	assert.Equal(t, int64(1000), reread.TotalPrice)
}

func TestDoubleSubmissionProducesTwoOrders(t *testing.T) {
	store := newFakeStore()
	carts := cartWith(line(1, "A", 1000, 1))
	carts.failClear = true // cart stays populated, like a racing double click
	svc := NewService(store, carts, quietLogger())

	req := &CheckoutRequest{Name: "Jane", Phone: "555-0100", Address: "1 Elm St"}
	_, err := svc.Checkout(context.Background(), identity.Guest("sess-1"), req)
	require.NoError(t, err)
	_, err = svc.Checkout(context.Background(), identity.Guest("sess-1"), req)
	require.NoError(t, err)

	assert.Len(t, store.orders, 2, "checkout is deliberately not idempotent")
}

func TestUpdateStatusTransitions(t *testing.T) {
	store := newFakeStore()
	carts := cartWith(line(1, "A", 1000, 1))
	svc := NewService(store, carts, quietLogger())

	o, err := svc.Checkout(context.Background(), identity.Guest("sess-1"),
		&CheckoutRequest{Name: "Jane", Phone: "555-0100", Address: "1 Elm St"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), o.ID, OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusProcessing, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), o.ID, OrderStatusPending)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	updated, err = svc.UpdateStatus(context.Background(), o.ID, OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCompleted, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), o.ID, OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := NewService(newFakeStore(), cartWith(), quietLogger())

	_, err := svc.UpdateStatus(context.Background(), 99, OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrNotFound)
}
