// internal/interfaces/http/handlers/catalog_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCatalogTestRig(t *testing.T) (*gin.Engine, *catalog.Service, *gorm.DB, uint) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Category{}, &catalog.Product{}))

	category := catalog.Category{Name: "Vehicles", Slug: "vehicles", SortOrder: 1}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&catalog.Product{
		Name:       "Bullock Cart",
		Price:      3299,
		CategoryID: category.ID,
		InStock:    true,
	}).Error)

	cfg := &config.Config{}
	cfg.Store.PageSize = 8
	cfg.Store.CatalogRefreshDebounce = 10 * time.Millisecond

	svc := catalog.NewService(db, cfg, newQuietLogger())
	require.NoError(t, svc.Load())
	t.Cleanup(svc.Close)

	handler := NewCatalogHandler(svc, cfg)
	router := gin.New()
	router.GET("/products", handler.BrowseProducts)
	router.POST("/admin/catalog/refresh", handler.RefreshCatalog)

	return router, svc, db, category.ID
}

func TestBrowseProductsReturnsPage(t *testing.T) {
	router, _, _, _ := newCatalogTestRig(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?category=vehicles", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bullock Cart")
}

func TestRefreshCatalogPicksUpDatabaseChanges(t *testing.T) {
	router, svc, db, categoryID := newCatalogTestRig(t)

	added := catalog.Product{
		Name:       "Auto Rickshaw",
		Price:      2299,
		CategoryID: categoryID,
		InStock:    true,
	}
	require.NoError(t, db.Create(&added).Error)

	_, err := svc.GetProduct(added.ID)
	require.ErrorIs(t, err, catalog.ErrProductNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/catalog/refresh", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Eventually(t, func() bool {
		_, err := svc.GetProduct(added.ID)
		return err == nil
	}, time.Second, 10*time.Millisecond)
}
