// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/flowershop-backend/internal/domain/cart"
	"github.com/your-org/flowershop-backend/internal/domain/catalog"
	"github.com/your-org/flowershop-backend/internal/domain/order"
	"github.com/your-org/flowershop-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	models := []interface{}{
		&user.User{},
		&user.AdminUser{},
		&catalog.Flower{},
		&cart.CartItem{},
		&order.Order{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_flowers_name ON flowers(name)",
		"CREATE INDEX IF NOT EXISTS idx_flowers_price ON flowers(price)",

		"CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_created_at ON cart_items(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedFlowers(); err != nil {
		return fmt.Errorf("failed to seed flowers: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedAdminUser creates the default back-office account
func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.AdminUser
	result := m.db.Where("username = ?", "admin").First(&existing)
	if result.Error == nil {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("secret"), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := user.AdminUser{
		Username: "admin",
		Password: string(hashedPassword),
	}

	if err := m.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("✅ Created admin user: admin (password: secret)")
	return nil
}

// seedFlowers creates a starter catalog for development
func (m *Migration) seedFlowers() error {
	log.Println("💐 Seeding flowers...")

	var count int64
	if err := m.db.Model(&catalog.Flower{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("⏭️ Catalog already has %d flowers", count)
		return nil
	}

	flowers := []catalog.Flower{
		{
			Name:        "Rose Bouquet",
			Description: "A dozen fresh red roses wrapped in kraft paper.",
			Price:       1000,
			ImageURL:    "/images/catalog/rose-bouquet.jpg",
		},
		{
			Name:        "Tulip Bundle",
			Description: "Ten mixed tulips, bright and seasonal.",
			Price:       750,
			ImageURL:    "/images/catalog/tulip-bundle.jpg",
		},
		{
			Name:        "Peony Arrangement",
			Description: "Lush peonies with eucalyptus in a glass vase.",
			Price:       2450,
			ImageURL:    "/images/catalog/peony-arrangement.jpg",
		},
		{
			Name:        "Sunflower Bunch",
			Description: "Five tall sunflowers, cheerful and sturdy.",
			Price:       850,
			ImageURL:    "/images/catalog/sunflower-bunch.jpg",
		},
	}

	if err := m.db.Create(&flowers).Error; err != nil {
		return fmt.Errorf("failed to create flowers: %w", err)
	}

	log.Printf("✅ Seeded %d flowers", len(flowers))
	return nil
}

// GetTableInfo logs row counts for the main tables, development helper
func (m *Migration) GetTableInfo() error {
	tables := []string{"users", "admin_users", "flowers", "cart_items", "orders"}

	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("⚠️ Failed to count %s: %v", table, err)
			continue
		}
		log.Printf("📊 Table %s: %d rows", table, count)
	}

	return nil
}
