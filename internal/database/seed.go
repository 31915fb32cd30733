package database

import (
	"errors"
	"fmt"
	"log"

	"littlelemon/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedManager creates the first manager account so role assignment can be bootstrapped.
// It is a no-op when username or password is empty or the user already exists.
func SeedManager(db *gorm.DB, username, email, password string) error {
	if username == "" || password == "" {
		log.Println("Skipping manager seed: ADMIN_USERNAME/ADMIN_PASSWORD not set")
		return nil
	}

	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	switch {
	case err == nil:
		log.Printf("Manager %s already exists", username)
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash manager password: %w", err)
		}
		if email == "" {
			email = username + "@littlelemon.local"
		}
		user = models.User{ID: uuid.New().String(), Username: username, Email: email, Password: string(hash)}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create manager %s: %w", username, err)
		}
		log.Printf("Seeded manager: %s (ID: %s)", username, user.ID)
	default:
		return fmt.Errorf("failed to look up manager %s: %w", username, err)
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserRole{UserID: user.ID, Role: models.RoleManager}).Error
}

type seedItem struct {
	title    string
	price    string
	category string
	featured bool
}

var demoCategories = []models.Category{
	{Slug: "appetizers", Title: "Appetizers"},
	{Slug: "mains", Title: "Main Courses"},
	{Slug: "desserts", Title: "Desserts"},
}

var demoMenu = []seedItem{
	{title: "Greek Salad", price: "12.50", category: "appetizers", featured: true},
	{title: "Bruschetta", price: "5.00", category: "appetizers"},
	{title: "Grilled Fish", price: "20.00", category: "mains", featured: true},
	{title: "Lemon Chicken", price: "16.75", category: "mains"},
	{title: "Lemon Dessert", price: "5.00", category: "desserts", featured: true},
}

// SeedMenu populates the demo menu. Existing categories and titles are left untouched.
func SeedMenu(db *gorm.DB) error {
	categoryIDs := make(map[string]string, len(demoCategories))
	for _, c := range demoCategories {
		category := c
		if err := db.Where(models.Category{Slug: c.Slug}).
			Attrs(models.Category{ID: uuid.New().String(), Title: c.Title}).
			FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Slug, err)
		}
		categoryIDs[c.Slug] = category.ID
	}

	for _, s := range demoMenu {
		categoryID := categoryIDs[s.category]
		item := models.MenuItem{
			ID:         uuid.New().String(),
			Title:      s.title,
			Price:      models.MustMoney(s.price),
			Featured:   s.featured,
			CategoryID: &categoryID,
		}
		var existing int64
		if err := db.Model(&models.MenuItem{}).Where("title = ?", s.title).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check menu item %s: %w", s.title, err)
		}
		if existing > 0 {
			continue
		}
		if err := db.Omit(clause.Associations).Create(&item).Error; err != nil {
			log.Printf("Error seeding menu item %s: %v", s.title, err)
			continue
		}
		log.Printf("Seeded menu item: %s (ID: %s)", item.Title, item.ID)
	}
	return nil
}
