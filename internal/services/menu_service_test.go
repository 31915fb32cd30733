package services_test

import (
	"context"
	"testing"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"
	"littlelemon/internal/services"
	"littlelemon/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuService_CreateMenuItemPriceRange(t *testing.T) {
	ctx := context.Background()
	db := testkit.OpenDB(t)
	service := services.NewMenuService(repositories.NewGORMMenuItemRepository(db), repositories.NewGORMRoleDirectory(db))
	manager := testkit.CreateUser(t, db, "mario", models.RoleManager)
	customer := testkit.CreateUser(t, db, "adrian")

	for _, price := range []string{"0", "-1.00", "0.004", "10000.00", "123456789.99"} {
		item := &models.MenuItem{Title: "Caviar", Price: models.MustMoney(price)}
		err := service.CreateMenuItem(ctx, manager.ID, item, "")
		assert.True(t, apperr.Is(err, apperr.KindValidation), "price %s", price)
	}

	// Authorization comes first.
	err := service.CreateMenuItem(ctx, customer.ID, &models.MenuItem{Title: "Caviar", Price: models.MustMoney("10000.00")}, "")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	item := &models.MenuItem{Title: "Caviar", Price: models.MaxMenuPrice}
	require.NoError(t, service.CreateMenuItem(ctx, manager.ID, item, ""))
	stored, err := service.GetMenuItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "9999.99", stored.Price.String())
}
