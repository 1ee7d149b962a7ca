package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-bot/internal/app/apptest"
	"restaurant-bot/internal/app/cart"
	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

var (
	testActor  = interfaces.Actor{UserID: 100}
	adminActor = interfaces.Actor{UserID: 1, IsAdmin: true}
)

type fixture struct {
	svc       *Service
	cart      *cart.Service
	menu      *apptest.MenuRepo
	orders    *apptest.OrderRepo
	carts     *apptest.CartRepo
	users     *apptest.UserRepo
	publisher *apptest.Publisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	menu := apptest.NewMenuRepo(
		domain.MenuItem{ID: 1, Category: "pizza", Name: "Margherita", Price: 12.00, Available: true},
		domain.MenuItem{ID: 2, Category: "pizza", Name: "Pepperoni", Price: 14.00, Available: true},
	)
	carts := apptest.NewCartRepo()
	users := apptest.NewUserRepo()
	orders := apptest.NewOrderRepo()
	orders.Users = users
	orders.Carts = carts
	promos := apptest.NewPromoRepo()
	publisher := &apptest.Publisher{}

	_, err := users.GetOrCreate(context.Background(), testActor.UserID, "tester", "Test")
	require.NoError(t, err)

	cartService := cart.NewService(carts, menu, promos, apptest.NopLogger{})
	svc := NewService(orders, carts, menu, promos, cartService, publisher, apptest.NopLogger{},
		2.50, 5*time.Minute)

	return &fixture{svc: svc, cart: cartService, menu: menu, orders: orders,
		carts: carts, users: users, publisher: publisher}
}

func (f *fixture) fillCart(t *testing.T, itemID, quantity int) {
	t.Helper()
	_, err := f.cart.AddItem(context.Background(), testActor, itemID, quantity)
	require.NoError(t, err)
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 1, 2)

	address := "5 Main St"
	order, err := f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{
		DeliveryAddress: &address,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), order.ID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, 24.00, order.Subtotal)
	assert.Equal(t, 2.50, order.DeliveryFee)
	assert.InDelta(t, 26.50, order.Total(), 1e-9)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Margherita", order.Items[0].Name)
	assert.Equal(t, 12.00, order.Items[0].UnitPrice)

	// Loyalty points are one per whole currency unit of the subtotal.
	profile := f.users.Profiles[testActor.UserID]
	assert.Equal(t, 24, profile.LoyaltyPoints)
	assert.Equal(t, 1, profile.TotalOrders)

	// The cart is gone and the event went out.
	saved, err := f.carts.Get(context.Background(), testActor.UserID)
	require.NoError(t, err)
	assert.True(t, saved.IsEmpty())
	require.Len(t, f.publisher.OrderCreated, 1)
	assert.Equal(t, order.ID, f.publisher.OrderCreated[0].OrderID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{})
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
}

func TestCheckoutIDsAreMonotonic(t *testing.T) {
	f := newFixture(t)

	for want := int64(1); want <= 3; want++ {
		f.fillCart(t, 1, 1)
		order, err := f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{})
		require.NoError(t, err)
		assert.Equal(t, want, order.ID)
	}
}

func TestCheckoutSnapshotSurvivesPriceChange(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 1, 1)

	order, err := f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{})
	require.NoError(t, err)

	require.NoError(t, f.menu.SetPrice(context.Background(), 1, 99.00))

	got, err := f.svc.Get(context.Background(), testActor, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.00, got.Items[0].UnitPrice)
	assert.Equal(t, 12.00, got.Subtotal)
}

func TestCheckoutSucceedsWhenPublishFails(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 1, 1)
	f.publisher.Err = errors.New("broker down")

	order, err := f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), order.ID)
}

func TestGetDeniedForOtherUser(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 1, 1)

	order, err := f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{})
	require.NoError(t, err)

	stranger := interfaces.Actor{UserID: 200}
	_, err = f.svc.Get(context.Background(), stranger, order.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	// Admins can read any order.
	_, err = f.svc.Get(context.Background(), adminActor, order.ID)
	assert.NoError(t, err)
}

func TestCancelInsideWindow(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 1, 1)

	order, err := f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(context.Background(), testActor, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.Len(t, f.publisher.StatusUpdates, 1)
	assert.Equal(t, domain.StatusPending, f.publisher.StatusUpdates[0].OldStatus)
}

func TestCancelWindowExpired(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 1, 1)

	order, err := f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return order.CreatedAt.Add(6 * time.Minute) }

	_, err = f.svc.Cancel(context.Background(), testActor, order.ID)
	assert.ErrorIs(t, err, domain.ErrCancellationWindowExpired)
}

func TestCancelNonPending(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 1, 1)

	order, err := f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{})
	require.NoError(t, err)
	_, err = f.svc.SetStatus(context.Background(), adminActor, order.ID, domain.StatusPreparing)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), testActor, order.ID)
	assert.ErrorIs(t, err, domain.ErrCancellationWindowExpired)
}

func TestSetStatusAdminOnly(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 1, 1)

	order, err := f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{})
	require.NoError(t, err)

	_, err = f.svc.SetStatus(context.Background(), testActor, order.ID, domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = f.svc.SetStatus(context.Background(), adminActor, order.ID, domain.Status("shipped"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	updated, err := f.svc.SetStatus(context.Background(), adminActor, order.ID, domain.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)
}

func TestListActiveAdminOnly(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 1, 1)

	order, err := f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{})
	require.NoError(t, err)
	_, err = f.svc.SetStatus(context.Background(), adminActor, order.ID, domain.StatusDelivered)
	require.NoError(t, err)

	f.fillCart(t, 2, 1)
	_, err = f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{})
	require.NoError(t, err)

	_, err = f.svc.ListActive(context.Background(), testActor)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	active, err := f.svc.ListActive(context.Background(), adminActor)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(2), active[0].ID)
}

func TestReorderSkipsUnavailable(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 1, 2)
	f.fillCart(t, 2, 1)

	order, err := f.svc.Checkout(context.Background(), testActor, interfaces.CheckoutCommand{})
	require.NoError(t, err)

	require.NoError(t, f.menu.SetAvailability(context.Background(), 2, false))

	result, err := f.svc.Reorder(context.Background(), testActor, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 2, result.Cart.Cart.Items[1])
}
