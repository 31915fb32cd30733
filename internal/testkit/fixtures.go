package testkit

import (
	"testing"

	"littlelemon/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUser inserts a user holding the given roles. The password column is left empty.
func CreateUser(t testing.TB, db *gorm.DB, username string, roles ...models.Role) *models.User {
	t.Helper()

	user := &models.User{ID: uuid.New().String(), Username: username, Email: username + "@example.com"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	for _, role := range roles {
		if err := db.Create(&models.UserRole{UserID: user.ID, Role: role}).Error; err != nil {
			t.Fatalf("failed to grant %s to %s: %v", role, username, err)
		}
	}
	return user
}

// CreateMenuItem inserts a menu item priced at price, e.g. "12.50".
func CreateMenuItem(t testing.TB, db *gorm.DB, title, price string) *models.MenuItem {
	t.Helper()

	item := &models.MenuItem{ID: uuid.New().String(), Title: title, Price: models.MustMoney(price)}
	if err := db.Omit("Category").Create(item).Error; err != nil {
		t.Fatalf("failed to create menu item %s: %v", title, err)
	}
	return item
}
