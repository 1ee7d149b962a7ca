package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-bot/internal/app/apptest"
	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

var testActor = interfaces.Actor{UserID: 100}

type fixture struct {
	svc    *Service
	orders *apptest.OrderRepo
}

func newFixture() *fixture {
	menu := apptest.NewMenuRepo(
		domain.MenuItem{ID: 1, Category: "pizza", Name: "Margherita", Price: 12.00, Available: true},
	)
	orders := apptest.NewOrderRepo()
	svc := NewService(apptest.NewReviewRepo(), orders, menu, apptest.NopLogger{})
	return &fixture{svc: svc, orders: orders}
}

func TestCreateItemReview(t *testing.T) {
	f := newFixture()
	itemID := 1
	comment := "Great crust"

	review, err := f.svc.Create(context.Background(), testActor, interfaces.ReviewCommand{
		Rating: 5, Comment: &comment, ItemID: &itemID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), review.ID)
	assert.Equal(t, testActor.UserID, review.UserID)
}

func TestCreateRejectsBadRating(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), testActor, interfaces.ReviewCommand{Rating: 0})
	assert.Error(t, err)
	_, err = f.svc.Create(context.Background(), testActor, interfaces.ReviewCommand{Rating: 6})
	assert.Error(t, err)
}

func TestCreateRejectsUnknownItem(t *testing.T) {
	f := newFixture()
	itemID := 99

	_, err := f.svc.Create(context.Background(), testActor, interfaces.ReviewCommand{
		Rating: 4, ItemID: &itemID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrderReviewRequiresOwnership(t *testing.T) {
	f := newFixture()
	f.orders.Orders[1] = &domain.Order{ID: 1, UserID: 200}
	orderID := int64(1)

	_, err := f.svc.Create(context.Background(), testActor, interfaces.ReviewCommand{
		Rating: 4, OrderID: &orderID,
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	owner := interfaces.Actor{UserID: 200}
	_, err = f.svc.Create(context.Background(), owner, interfaces.ReviewCommand{
		Rating: 4, OrderID: &orderID,
	})
	assert.NoError(t, err)
}

func TestForItemAggregates(t *testing.T) {
	f := newFixture()
	itemID := 1

	for _, rating := range []int{5, 4, 3} {
		_, err := f.svc.Create(context.Background(), testActor, interfaces.ReviewCommand{
			Rating: rating, ItemID: &itemID,
		})
		require.NoError(t, err)
	}

	result, err := f.svc.ForItem(context.Background(), testActor, itemID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	assert.InDelta(t, 4.0, result.Average, 1e-9)
	assert.Len(t, result.Reviews, 3)
}

func TestForItemUnknown(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ForItem(context.Background(), testActor, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecent(t *testing.T) {
	f := newFixture()
	itemID := 1

	for rating := 1; rating <= 5; rating++ {
		_, err := f.svc.Create(context.Background(), testActor, interfaces.ReviewCommand{
			Rating: rating, ItemID: &itemID,
		})
		require.NoError(t, err)
	}

	recent, err := f.svc.Recent(context.Background(), testActor, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	// Newest first.
	assert.Equal(t, int64(5), recent[0].ID)
}
