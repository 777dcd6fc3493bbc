package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cashwave/internal/cart"
	"github.com/example/cashwave/internal/models"
)

type orderFixture struct {
	orders    *mockOrderRepo
	users     *mockUserRepo
	carts     *mockCartStore
	purchases *mockPurchaseRepo
	service   *OrderService

	buyer Principal
	admin Principal
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	orders := newMockOrderRepo()
	users := newMockUserRepo()
	carts := newMockCartStore()
	purchases := newMockPurchaseRepo()

	buyer := &models.User{
		Email:     "buyer@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		WhatsApp:  "8801700000000",
		Role:      models.RoleCustomer,
	}
	users.put(buyer)

	admin := &models.User{
		Email:     "ops@example.com",
		FirstName: "Ops",
		Role:      models.RoleCustomer,
	}
	users.put(admin)

	authz := NewAuthorizer(users, []string{admin.ID.String()}, "admin@cashwave.com", false)
	whatsapp := NewWhatsAppService("CashWave", "", []string{"Bkash: 01700000000"})
	entitlements := NewEntitlementService(purchases, "https://storage.cashwave.com/products")
	service := NewOrderService(orders, users, carts, entitlements, authz, whatsapp, nil)

	return &orderFixture{
		orders:    orders,
		users:     users,
		carts:     carts,
		purchases: purchases,
		service:   service,
		buyer:     Principal{UID: buyer.ID, Email: buyer.Email},
		admin:     Principal{UID: admin.ID, Email: admin.Email},
	}
}

func (f *orderFixture) seedCart(lines ...cart.Line) {
	f.carts.carts[f.buyer.UID] = &cart.Cart{Lines: lines}
}

func twoLineCart() []cart.Line {
	return []cart.Line{
		{ProductID: uuid.New(), Title: "Premium Ebook", Icon: "fas fa-book", UnitPrice: 10, Quantity: 2},
		{ProductID: uuid.New(), Title: "Design Template", Icon: "fas fa-palette", UnitPrice: 5, Quantity: 1},
	}
}

func TestCreate_EmptyCartRejected(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.Create(context.Background(), f.buyer)

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreate_MissingWhatsAppRejected(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(twoLineCart()...)

	user, err := f.users.GetByID(context.Background(), f.buyer.UID)
	require.NoError(t, err)
	user.WhatsApp = ""
	f.users.put(user)

	_, err = f.service.Create(context.Background(), f.buyer)

	assert.ErrorIs(t, err, ErrMissingContactChannel)
	assert.True(t, f.carts.has(f.buyer.UID), "cart must survive a rejected checkout")
}

func TestCreate_SnapshotsCartAndClears(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(twoLineCart()...)

	result, err := f.service.Create(context.Background(), f.buyer)
	require.NoError(t, err)

	order := result.Order
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 25.00, order.Total)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "Jane Doe", order.UserName)
	assert.Equal(t, "8801700000000", order.UserWhatsApp)
	assert.Equal(t, 20.00, order.Items[0].LineTotal)

	assert.Contains(t, result.WhatsAppLink, "https://wa.me/8801700000000?text=")

	assert.False(t, f.carts.has(f.buyer.UID), "cart must be cleared after successful persistence")
}

func TestCreate_PersistFailureKeepsCart(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(twoLineCart()...)
	f.orders.createErr = errors.New("write timeout")

	_, err := f.service.Create(context.Background(), f.buyer)

	require.Error(t, err)
	assert.True(t, f.carts.has(f.buyer.UID), "cart must be unchanged when the order write fails")
}

func TestConfirm_RequiresAdmin(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(twoLineCart()...)

	result, err := f.service.Create(context.Background(), f.buyer)
	require.NoError(t, err)

	_, err = f.service.Confirm(context.Background(), result.Order.ID, f.buyer)

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Zero(t, f.purchases.count())
}

func TestConfirm_UnknownOrder(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.Confirm(context.Background(), uuid.New(), f.admin)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestConfirm_GrantsEntitlements(t *testing.T) {
	f := newOrderFixture(t)
	lines := twoLineCart()
	f.seedCart(lines...)

	created, err := f.service.Create(context.Background(), f.buyer)
	require.NoError(t, err)

	owned, err := f.service.entitlements.HasPurchased(context.Background(), f.buyer.UID, lines[0].ProductID)
	require.NoError(t, err)
	assert.False(t, owned, "nothing is owned before confirmation")

	result, err := f.service.Confirm(context.Background(), created.Order.ID, f.admin)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusConfirmed, result.Order.Status)
	require.NotNil(t, result.Order.ConfirmedBy)
	assert.Equal(t, f.admin.UID, *result.Order.ConfirmedBy)
	assert.NotNil(t, result.Order.ConfirmedAt)

	assert.Equal(t, 2, f.purchases.count())
	for _, line := range lines {
		owned, err := f.service.entitlements.HasPurchased(context.Background(), f.buyer.UID, line.ProductID)
		require.NoError(t, err)
		assert.True(t, owned)
	}
}

func TestConfirm_SecondCallRejected(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(twoLineCart()...)

	created, err := f.service.Create(context.Background(), f.buyer)
	require.NoError(t, err)

	_, err = f.service.Confirm(context.Background(), created.Order.ID, f.admin)
	require.NoError(t, err)

	_, err = f.service.Confirm(context.Background(), created.Order.ID, f.admin)

	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	assert.Equal(t, 2, f.purchases.count(), "entitlements must not be granted twice")
}

func TestConfirm_ConcurrentAdminsOneWinner(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(twoLineCart()...)

	created, err := f.service.Create(context.Background(), f.buyer)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.service.Confirm(context.Background(), created.Order.ID, f.admin)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyConfirmed):
			conflicts++
		default:
			t.Fatalf("unexpected confirm error: %v", err)
		}
	}

	assert.Equal(t, 1, wins, "exactly one confirm must win")
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, 2, f.purchases.count(), "one purchase record per item, not two")
}

func TestConfirm_PartialGrantReported(t *testing.T) {
	f := newOrderFixture(t)
	lines := twoLineCart()
	f.seedCart(lines...)

	created, err := f.service.Create(context.Background(), f.buyer)
	require.NoError(t, err)

	f.purchases.failFor[lines[1].ProductID] = errors.New("append failed")

	result, err := f.service.Confirm(context.Background(), created.Order.ID, f.admin)

	var partial *PartialEntitlementError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []uuid.UUID{lines[1].ProductID}, partial.FailedProducts)

	require.NotNil(t, result)
	assert.Equal(t, models.OrderStatusConfirmed, result.Order.Status, "order stays confirmed despite the partial failure")
	assert.Equal(t, 1, f.purchases.count())
}

func TestRegrant_FillsOnlyMissingGrants(t *testing.T) {
	f := newOrderFixture(t)
	lines := twoLineCart()
	f.seedCart(lines...)

	created, err := f.service.Create(context.Background(), f.buyer)
	require.NoError(t, err)

	f.purchases.failFor[lines[1].ProductID] = errors.New("append failed")
	_, err = f.service.Confirm(context.Background(), created.Order.ID, f.admin)
	require.Error(t, err)

	delete(f.purchases.failFor, lines[1].ProductID)

	granted, err := f.service.Regrant(context.Background(), created.Order.ID, f.admin)
	require.NoError(t, err)
	assert.Equal(t, 1, granted)
	assert.Equal(t, 2, f.purchases.count())

	granted, err = f.service.Regrant(context.Background(), created.Order.ID, f.admin)
	require.NoError(t, err)
	assert.Zero(t, granted, "reissuing reconciliation must be a no-op")
	assert.Equal(t, 2, f.purchases.count())
}

func TestRegrant_PendingOrderRejected(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(twoLineCart()...)

	created, err := f.service.Create(context.Background(), f.buyer)
	require.NoError(t, err)

	_, err = f.service.Regrant(context.Background(), created.Order.ID, f.admin)

	assert.ErrorIs(t, err, ErrOrderNotConfirmed)
}
