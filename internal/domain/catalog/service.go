// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/debounce"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// Service serves catalog reads from an in-memory snapshot. The catalog
// is loaded once at startup and only replaced wholesale, so browse
// requests never touch the database.
type Service struct {
	db     *gorm.DB
	config *config.Config
	logger *logrus.Logger

	mu         sync.RWMutex
	products   []Product
	categories []Category

	refresher *debounce.Debouncer
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *Service {
	s := &Service{
		db:     db,
		config: cfg,
		logger: logger,
	}
	s.refresher = debounce.New(cfg.Store.CatalogRefreshDebounce, func() {
		if err := s.Load(); err != nil {
			s.logger.WithError(err).Error("Catalog snapshot refresh failed")
		}
	})
	return s
}

// Load replaces the snapshot with the current database contents
func (s *Service) Load() error {
	var products []Product
	if err := s.db.Preload("Category").Order("id ASC").Find(&products).Error; err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	var categories []Category
	if err := s.db.Order("sort_order ASC, id ASC").Find(&categories).Error; err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	s.mu.Lock()
	s.products = products
	s.categories = categories
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"products":   len(products),
		"categories": len(categories),
	}).Info("Catalog snapshot loaded")
	return nil
}

// InvalidateSoon schedules a debounced snapshot reload. Bursts of
// invalidations collapse into a single reload after the quiet period.
func (s *Service) InvalidateSoon() {
	s.refresher.Trigger()
}

// Close cancels any pending refresh
func (s *Service) Close() {
	s.refresher.Stop()
}

// Browse returns one page of the catalog for the given filter state
func (s *Service) Browse(state FilterState) BrowseResult {
	s.mu.RLock()
	snapshot := s.products
	s.mu.RUnlock()

	return Browse(snapshot, state, s.config.Store.PageSize)
}

// GetProduct returns a single product by id
func (s *Service) GetProduct(id uint) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// GetCategories returns all categories in display order
func (s *Service) GetCategories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Category(nil), s.categories...)
}
