package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/pkg/metrics"
)

// OrderRepository handles database operations for Order and its items.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order and all its items as a single transaction.
// A half-written order (header without lines, or lines without a header)
// is never observable.
func (r *OrderRepository) Create(order *models.Order) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// ListByUser returns the user's orders, newest first, with items and their
// products preloaded so views can resolve product names.
func (r *OrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var orders []models.Order
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}
