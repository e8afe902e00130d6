package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/pkg/metrics"
)

// DeliverySlotRepository handles read access to the seeded slot matrix.
type DeliverySlotRepository struct {
	db *gorm.DB
}

func NewDeliverySlotRepository(db *gorm.DB) *DeliverySlotRepository {
	return &DeliverySlotRepository{db: db}
}

// All returns every delivery slot.
func (r *DeliverySlotRepository) All() ([]models.DeliverySlot, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var slots []models.DeliverySlot
	err := r.db.Order("id").Find(&slots).Error
	return slots, err
}

// FindByID looks up a slot by primary key.
func (r *DeliverySlotRepository) FindByID(id uint) (models.DeliverySlot, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var slot models.DeliverySlot
	err := r.db.First(&slot, id).Error
	return slot, err
}
