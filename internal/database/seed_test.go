package database_test

import (
	"io"
	"log"
	"os"
	"testing"

	"littlelemon/internal/database"
	"littlelemon/internal/models"
	"littlelemon/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestSeedManager(t *testing.T) {
	db := testkit.OpenDB(t)

	require.NoError(t, database.SeedManager(db, "", "", ""))
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)

	// Running twice keeps one user with one manager membership.
	require.NoError(t, database.SeedManager(db, "mario", "", "lemonade123"))
	require.NoError(t, database.SeedManager(db, "mario", "", "lemonade123"))

	var user models.User
	require.NoError(t, db.First(&user, "username = ?", "mario").Error)
	assert.Equal(t, "mario@littlelemon.local", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("lemonade123")))

	var memberships []models.UserRole
	require.NoError(t, db.Find(&memberships, "user_id = ?", user.ID).Error)
	require.Len(t, memberships, 1)
	assert.Equal(t, models.RoleManager, memberships[0].Role)
}

func TestSeedMenu(t *testing.T) {
	db := testkit.OpenDB(t)

	require.NoError(t, database.SeedMenu(db))
	require.NoError(t, database.SeedMenu(db))

	var items []models.MenuItem
	require.NoError(t, db.Preload("Category").Order("title").Find(&items).Error)
	require.Len(t, items, 5)
	assert.Equal(t, "Bruschetta", items[0].Title)
	require.NotNil(t, items[0].Category)
	assert.Equal(t, "appetizers", items[0].Category.Slug)

	var categories int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	assert.EqualValues(t, 3, categories)
}
