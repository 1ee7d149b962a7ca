package profile

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

func newTestService() (*Service, *apptest.UserRepo) {
	menu := apptest.NewMenuRepo(
		domain.MenuItem{ID: 1, Category: "pizza", Name: "Margherita", Price: 12.00, Available: true},
		domain.MenuItem{ID: 2, Category: "pizza", Name: "Pepperoni", Price: 14.00, Available: true},
	)
	users := apptest.NewUserRepo()
	return NewService(users, menu, apptest.NopLogger{}), users
}

func TestRegisterCreatesProfile(t *testing.T) {
	svc, _ := newTestService()

	profile, err := svc.Register(context.Background(), testActor, "tester", "Test")
	require.NoError(t, err)
	assert.Equal(t, testActor.UserID, profile.UserID)
	assert.Equal(t, "tester", profile.Username)

	// Registering again is idempotent.
	again, err := svc.Register(context.Background(), testActor, "tester", "Test")
	require.NoError(t, err)
	assert.Equal(t, profile.UserID, again.UserID)
}

func TestUpdateContactNormalizes(t *testing.T) {
	svc, users := newTestService()
	_, err := svc.Register(context.Background(), testActor, "tester", "Test")
	require.NoError(t, err)

	phone := "+7 (707) 123-45-67"
	email := "Tester@Example.COM"
	require.NoError(t, svc.UpdateContact(context.Background(), testActor, &phone, &email))

	profile := users.Profiles[testActor.UserID]
	assert.Equal(t, "77071234567", *profile.Phone)
	assert.Equal(t, "tester@example.com", *profile.Email)
}

func TestUpdateContactRejectsBadPhone(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), testActor, "tester", "Test")
	require.NoError(t, err)

	phone := "123"
	assert.Error(t, svc.UpdateContact(context.Background(), testActor, &phone, nil))
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), testActor, "tester", "Test")
	require.NoError(t, err)

	_, err = svc.AddAddress(context.Background(), testActor, interfaces.AddressCommand{
		Street: "5 Main St", City: "Almaty",
	})
	require.NoError(t, err)

	profile, err := svc.Get(context.Background(), testActor)
	require.NoError(t, err)
	require.NotNil(t, profile.DefaultAddress())
	assert.Equal(t, "Home", profile.DefaultAddress().Label)
}

func TestSingleDefaultAddress(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), testActor, "tester", "Test")
	require.NoError(t, err)

	first, err := svc.AddAddress(context.Background(), testActor, interfaces.AddressCommand{
		Street: "5 Main St", City: "Almaty",
	})
	require.NoError(t, err)
	second, err := svc.AddAddress(context.Background(), testActor, interfaces.AddressCommand{
		Label: "Work", Street: "10 Office Rd", City: "Almaty", IsDefault: true,
	})
	require.NoError(t, err)

	profile, err := svc.Get(context.Background(), testActor)
	require.NoError(t, err)

	defaults := 0
	for _, addr := range profile.Addresses {
		if addr.IsDefault {
			defaults++
			assert.Equal(t, second, addr.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	// Switching back also leaves exactly one default.
	require.NoError(t, svc.SetDefaultAddress(context.Background(), testActor, first))
	profile, err = svc.Get(context.Background(), testActor)
	require.NoError(t, err)
	require.NotNil(t, profile.DefaultAddress())
	assert.Equal(t, first, profile.DefaultAddress().ID)
}

func TestAddAddressValidation(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), testActor, "tester", "Test")
	require.NoError(t, err)

	_, err = svc.AddAddress(context.Background(), testActor, interfaces.AddressCommand{City: "Almaty"})
	assert.Error(t, err)
	_, err = svc.AddAddress(context.Background(), testActor, interfaces.AddressCommand{Street: "5 Main St"})
	assert.Error(t, err)
}

func TestFavorites(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), testActor, "tester", "Test")
	require.NoError(t, err)

	require.NoError(t, svc.AddFavorite(context.Background(), testActor, 2))
	require.NoError(t, svc.AddFavorite(context.Background(), testActor, 1))

	items, err := svc.Favorites(context.Background(), testActor)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Insertion order is preserved.
	assert.Equal(t, 2, items[0].ID)
	assert.Equal(t, 1, items[1].ID)

	require.NoError(t, svc.RemoveFavorite(context.Background(), testActor, 2))
	items, err = svc.Favorites(context.Background(), testActor)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestAddFavoriteUnknownItem(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), testActor, "tester", "Test")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AddFavorite(context.Background(), testActor, 99), domain.ErrNotFound)
}

func TestSetPreference(t *testing.T) {
	svc, users := newTestService()
	_, err := svc.Register(context.Background(), testActor, "tester", "Test")
	require.NoError(t, err)

	require.NoError(t, svc.SetPreference(context.Background(), testActor, "language", "en"))
	assert.Equal(t, "en", users.Profiles[testActor.UserID].Preferences["language"])

	assert.Error(t, svc.SetPreference(context.Background(), testActor, "  ", "x"))
}
