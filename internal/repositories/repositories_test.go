package repositories_test

import (
	"context"
	"testing"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"
	"littlelemon/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleDirectory_AssignIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testkit.OpenDB(t)
	roles := repositories.NewGORMRoleDirectory(db)
	bob := testkit.CreateUser(t, db, "bob")
	testkit.CreateUser(t, db, "alice", models.RoleDeliveryCrew)

	require.NoError(t, roles.Assign(ctx, bob.ID, models.RoleDeliveryCrew))
	require.NoError(t, roles.Assign(ctx, bob.ID, models.RoleDeliveryCrew))

	held, err := roles.RolesOf(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleDeliveryCrew}, held)

	members, err := roles.Members(ctx, models.RoleDeliveryCrew)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "alice", members[0].Username)
	assert.Equal(t, "bob", members[1].Username)

	require.NoError(t, roles.Revoke(ctx, bob.ID, models.RoleDeliveryCrew))
	require.NoError(t, roles.Revoke(ctx, bob.ID, models.RoleDeliveryCrew))
	ok, err := roles.HasRole(ctx, bob.ID, models.RoleDeliveryCrew)
	require.NoError(t, err)
	assert.False(t, ok)

	err = roles.Assign(ctx, "ghost", models.RoleManager)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestMenuRepository_FilterByCategory(t *testing.T) {
	ctx := context.Background()
	db := testkit.OpenDB(t)
	menu := repositories.NewGORMMenuItemRepository(db)

	desserts := &models.Category{Slug: "desserts", Title: "Desserts"}
	require.NoError(t, menu.CreateCategory(ctx, desserts))
	err := menu.CreateCategory(ctx, &models.Category{Slug: "desserts", Title: "Sweets"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	require.NoError(t, menu.Create(ctx, &models.MenuItem{Title: "Lemon Dessert", Price: models.MustMoney("5.00"), CategoryID: &desserts.ID}))
	require.NoError(t, menu.Create(ctx, &models.MenuItem{Title: "Greek Salad", Price: models.MustMoney("12.50")}))

	all, err := menu.GetAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	sweet, err := menu.GetAll(ctx, "desserts")
	require.NoError(t, err)
	require.Len(t, sweet, 1)
	assert.Equal(t, "Lemon Dessert", sweet[0].Title)
	require.NotNil(t, sweet[0].Category)
	assert.Equal(t, "desserts", sweet[0].Category.Slug)

	none, err := menu.GetAll(ctx, "soups")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCartRepository_DuplicateLine(t *testing.T) {
	ctx := context.Background()
	db := testkit.OpenDB(t)
	carts := repositories.NewGORMStore(db).Carts()
	user := testkit.CreateUser(t, db, "adrian")
	item := testkit.CreateMenuItem(t, db, "Bruschetta", "5.00")

	line := models.CartLine{UserID: user.ID, MenuItemID: item.ID, Quantity: 1, UnitPrice: item.Price, Price: item.Price}
	require.NoError(t, carts.Create(ctx, &line))

	again := models.CartLine{UserID: user.ID, MenuItemID: item.ID, Quantity: 2, UnitPrice: item.Price, Price: item.Price.Times(2)}
	err := carts.Create(ctx, &again)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	deleted, err := carts.DeleteLines(ctx, user.ID, []string{line.ID, "not-a-line"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
}

func TestOrderRepository_UpdateGuardsColumns(t *testing.T) {
	ctx := context.Background()
	db := testkit.OpenDB(t)
	store := repositories.NewGORMStore(db)
	user := testkit.CreateUser(t, db, "adrian")
	item := testkit.CreateMenuItem(t, db, "Bruschetta", "5.00")

	order := &models.Order{
		UserID: user.ID,
		Status: models.StatusPlaced,
		Total:  models.MustMoney("10.00"),
		Lines: []models.OrderLine{
			{MenuItemID: item.ID, Quantity: 2, UnitPrice: item.Price, Price: item.Price.Times(2)},
		},
	}
	require.NoError(t, store.Transaction(ctx, func(tx repositories.Store) error {
		return tx.Orders().Create(ctx, order)
	}))

	err := store.Orders().Update(ctx, order, map[string]interface{}{"total": "1.00"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	missing := &models.Order{ID: "missing", Status: models.StatusPlaced}
	err = store.Orders().Update(ctx, missing, map[string]interface{}{"status": models.StatusDelivered})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	require.NoError(t, store.Orders().Update(ctx, order, map[string]interface{}{"status": models.StatusDelivered}))
	stored, err := store.Orders().GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, stored.Status)
	assert.True(t, stored.Total.EqualTo(models.MustMoney("10")))
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, "Bruschetta", stored.Lines[0].MenuItem.Title)
}

func TestOrderRepository_UpdateRefusesStaleOrder(t *testing.T) {
	ctx := context.Background()
	db := testkit.OpenDB(t)
	store := repositories.NewGORMStore(db)
	user := testkit.CreateUser(t, db, "adrian")
	crew := testkit.CreateUser(t, db, "dana", models.RoleDeliveryCrew)
	item := testkit.CreateMenuItem(t, db, "Bruschetta", "5.00")

	order := &models.Order{
		UserID:         user.ID,
		DeliveryCrewID: &crew.ID,
		Status:         models.StatusPlaced,
		Total:          item.Price,
		Lines: []models.OrderLine{
			{MenuItemID: item.ID, Quantity: 1, UnitPrice: item.Price, Price: item.Price},
		},
	}
	require.NoError(t, store.Transaction(ctx, func(tx repositories.Store) error {
		return tx.Orders().Create(ctx, order)
	}))

	var stale *models.Order
	require.NoError(t, store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		stale, err = tx.Orders().GetByIDForUpdate(ctx, order.ID)
		return err
	}))
	assert.Empty(t, stale.Lines)
	require.NoError(t, store.Orders().Update(ctx, stale, map[string]interface{}{"status": models.StatusDelivered}))

	// stale still says placed
	err := store.Orders().Update(ctx, stale, map[string]interface{}{"status": models.StatusOutForDelivery})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	current, err := store.Orders().GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, current.Status)

	require.NoError(t, store.Orders().Update(ctx, current, map[string]interface{}{"delivery_crew_id": nil}))
	err = store.Orders().Update(ctx, current, map[string]interface{}{"status": models.StatusPlaced})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	_, err = store.Orders().GetByIDForUpdate(ctx, "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
