package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/app/repositories"
	"github.com/casatartufo/tartufo/pkg/apperr"
	"github.com/casatartufo/tartufo/pkg/cache"
)

const (
	productCacheKey = "tartufo:catalog:products"
	productCacheTTL = 5 * time.Minute
)

// CatalogService serves the read-only product and delivery-slot listings.
type CatalogService struct {
	products *repositories.ProductRepository
	slots    *repositories.DeliverySlotRepository
}

func NewCatalogService(products *repositories.ProductRepository, slots *repositories.DeliverySlotRepository) *CatalogService {
	return &CatalogService{products: products, slots: slots}
}

// ListProducts returns the catalog, cached in Redis when available.
// The catalog is immutable in scope, so a short TTL is plenty.
func (s *CatalogService) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if cache.Get(productCacheKey, &products) {
		return products, nil
	}

	products, err := s.products.All()
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}

	_ = cache.Set(productCacheKey, products, productCacheTTL)
	return products, nil
}

// WarmCache refreshes the product cache entry unconditionally. Run on a
// schedule so the first request after expiry never pays the DB round trip.
func (s *CatalogService) WarmCache() error {
	products, err := s.products.All()
	if err != nil {
		return fmt.Errorf("catalog: warm cache: %w", err)
	}
	return cache.Set(productCacheKey, products, productCacheTTL)
}

// GetProduct returns one product or a not-found error.
func (s *CatalogService) GetProduct(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.NotFound("Product not found")
		}
		return models.Product{}, fmt.Errorf("catalog: get product: %w", err)
	}
	return product, nil
}

// ListDeliverySlots returns all seeded delivery slots.
func (s *CatalogService) ListDeliverySlots() ([]models.DeliverySlot, error) {
	slots, err := s.slots.All()
	if err != nil {
		return nil, fmt.Errorf("catalog: list slots: %w", err)
	}
	return slots, nil
}
