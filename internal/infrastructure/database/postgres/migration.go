// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
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

	// Define all models that need migration in dependency order
	models := []interface{}{
		// Catalog domain - Base tables
		&catalog.Category{},
		&catalog.Product{},

		// Order domain - Dependent tables
		&order.Order{},
		&order.OrderItem{},
		&order.OrderStatusHistory{},
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
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_popularity ON products(popularity DESC)",

		// Category indexes
		"CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug)",
		"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",

		// Order indexes
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_stripe_session ON orders(stripe_session_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_email ON orders(customer_email)",
		"CREATE INDEX IF NOT EXISTS idx_orders_checkout_ref ON orders(checkout_ref)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Order items indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		// Order status history indexes
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_status ON order_status_history(status)",
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

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedCategories creates the toy categories
func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	categories := []catalog.Category{
		{Name: "Dancing Dolls", Slug: "dancing-dolls", Icon: "💃", SortOrder: 1},
		{Name: "Animals & Birds", Slug: "animals-birds", Icon: "🐘", SortOrder: 2},
		{Name: "Mythological", Slug: "mythological", Icon: "🛕", SortOrder: 3},
		{Name: "Vehicles", Slug: "vehicles", Icon: "🛺", SortOrder: 4},
		{Name: "Home Decor", Slug: "home-decor", Icon: "🏺", SortOrder: 5},
	}

	for _, category := range categories {
		var existing catalog.Category
		result := m.db.Where("slug = ?", category.Slug).First(&existing)
		if result.Error != nil {
			// Category doesn't exist, create it
			if err := m.db.Create(&category).Error; err != nil {
				return err
			}
			log.Printf("✅ Created category: %s", category.Name)
		} else {
			log.Printf("⏭️ Category already exists: %s", category.Name)
		}
	}

	return nil
}

// seedProducts creates the handcrafted toy catalog
func (m *Migration) seedProducts() error {
	log.Println("🛍️ Seeding products...")

	var productCount int64
	m.db.Model(&catalog.Product{}).Count(&productCount)
	if productCount > 0 {
		log.Println("⏭️ Products already exist")
		return nil
	}

	// Category ids follow seed order above
	products := []catalog.Product{
		{
			Name:          "Classic Dancing Doll",
			Description:   "Traditional hand-painted dancing doll with a gently swaying head, carved from softwood and finished with natural dyes.",
			Price:         2499,
			OriginalPrice: 2999,
			CategoryID:    1,
			Artisan:       "Ramesh Varma",
			Rating:        4.8,
			Reviews:       124,
			Popularity:    95,
			InStock:       true,
			Image:         "/images/products/dancing-doll-classic.jpg",
		},
		{
			Name:          "Bride & Groom Doll Pair",
			Description:   "A festive pair of wedding dolls in traditional attire, a favorite housewarming gift.",
			Price:         4299,
			OriginalPrice: 4999,
			CategoryID:    1,
			Artisan:       "Lakshmi Devi",
			Rating:        4.9,
			Reviews:       86,
			Popularity:    88,
			InStock:       true,
			Image:         "/images/products/bride-groom-pair.jpg",
		},
		{
			Name:          "Royal Elephant",
			Description:   "Majestic caparisoned elephant with hand-painted howdah, a signature piece of the craft.",
			Price:         3499,
			OriginalPrice: 3999,
			CategoryID:    2,
			Artisan:       "Ramesh Varma",
			Rating:        4.7,
			Reviews:       203,
			Popularity:    92,
			InStock:       true,
			Image:         "/images/products/royal-elephant.jpg",
		},
		{
			Name:          "Peacock Pair",
			Description:   "Brilliantly colored peacock pair with fanned tails, painted feather by feather.",
			Price:         2899,
			OriginalPrice: 3499,
			CategoryID:    2,
			Artisan:       "Suresh Naidu",
			Rating:        4.6,
			Reviews:       157,
			Popularity:    78,
			InStock:       true,
			Image:         "/images/products/peacock-pair.jpg",
		},
		{
			Name:          "Gentle Cow & Calf",
			Description:   "A tender cow and calf set, carved in the round and finished in earthy tones.",
			Price:         1999,
			OriginalPrice: 2499,
			CategoryID:    2,
			Artisan:       "Lakshmi Devi",
			Rating:        4.5,
			Reviews:       94,
			Popularity:    64,
			InStock:       false,
			Image:         "/images/products/cow-calf.jpg",
		},
		{
			Name:          "Dashavatara Set",
			Description:   "Complete ten-avatar set, each figure individually carved and painted, presented in a cloth-lined box.",
			Price:         8999,
			OriginalPrice: 10999,
			CategoryID:    3,
			Artisan:       "Venkata Rao",
			Rating:        5.0,
			Reviews:       41,
			Popularity:    85,
			InStock:       true,
			Image:         "/images/products/dashavatara-set.jpg",
		},
		{
			Name:          "Little Krishna with Butter Pot",
			Description:   "Playful baby Krishna with his butter pot, a nursery classic.",
			Price:         1799,
			OriginalPrice: 1999,
			CategoryID:    3,
			Artisan:       "Venkata Rao",
			Rating:        4.8,
			Reviews:       178,
			Popularity:    90,
			InStock:       true,
			Image:         "/images/products/little-krishna.jpg",
		},
		{
			Name:          "Village Bullock Cart",
			Description:   "Working bullock cart with rolling wheels and detachable yoke, built to be played with.",
			Price:         3299,
			OriginalPrice: 3799,
			CategoryID:    4,
			Artisan:       "Suresh Naidu",
			Rating:        4.4,
			Reviews:       68,
			Popularity:    55,
			InStock:       true,
			Image:         "/images/products/bullock-cart.jpg",
		},
		{
			Name:          "Hand-Painted Auto Rickshaw",
			Description:   "Cheerful three-wheeler in bright enamel colors, wheels that really spin.",
			Price:         2299,
			OriginalPrice: 2699,
			CategoryID:    4,
			Artisan:       "Ramesh Varma",
			Rating:        4.3,
			Reviews:       52,
			Popularity:    48,
			InStock:       true,
			Image:         "/images/products/auto-rickshaw.jpg",
		},
		{
			Name:          "Festive Wall Hanging",
			Description:   "Circular wall hanging of miniature dolls and parrots, strung on hand-twisted cotton cord.",
			Price:         1599,
			OriginalPrice: 1899,
			CategoryID:    5,
			Artisan:       "Lakshmi Devi",
			Rating:        4.2,
			Reviews:       37,
			Popularity:    42,
			InStock:       true,
			Image:         "/images/products/wall-hanging.jpg",
		},
		{
			Name:          "Miniature Temple Set",
			Description:   "Carved temple facade with tiny deities, gopuram and all, for the home shrine or shelf.",
			Price:         5499,
			OriginalPrice: 6499,
			CategoryID:    5,
			Artisan:       "Venkata Rao",
			Rating:        4.9,
			Reviews:       29,
			Popularity:    70,
			InStock:       true,
			Image:         "/images/products/temple-set.jpg",
		},
		{
			Name:          "Tabletop Dancing Doll Mini",
			Description:   "Pocket-sized dancing doll for desks and shelves, same nodding charm in miniature.",
			Price:         999,
			OriginalPrice: 1299,
			CategoryID:    1,
			Artisan:       "Suresh Naidu",
			Rating:        4.1,
			Reviews:       211,
			Popularity:    82,
			InStock:       true,
			Image:         "/images/products/dancing-doll-mini.jpg",
		},
	}

	for _, prod := range products {
		if err := m.db.Create(&prod).Error; err != nil {
			log.Printf("⚠️ Failed to create product %s: %v", prod.Name, err)
		} else {
			log.Printf("✅ Created product: %s", prod.Name)
		}
	}

	return nil
}

// GetTableInfo returns information about database tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}

		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", len(tables))

	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"order_status_history",
		"order_items",
		"orders",
		"products",
		"categories",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}
