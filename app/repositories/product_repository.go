package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/pkg/metrics"
)

// ProductRepository handles read access to the catalog.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// All returns the full catalog.
func (r *ProductRepository) All() ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var products []models.Product
	err := r.db.Order("id").Find(&products).Error
	return products, err
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var product models.Product
	err := r.db.First(&product, id).Error
	return product, err
}
