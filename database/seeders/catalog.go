package seeders

import (
	"gorm.io/gorm"

	"github.com/casatartufo/tartufo/app/models"
)

func init() {
	Register("products", SeedProducts)
	Register("delivery_slots", SeedDeliverySlots)
}

// SeedProducts inserts the fixed truffle catalog when the table is empty.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Salsa al Tartufo Nero", Description: "Sapore ricco e terroso", Price: 15.99, ImageURL: "/images/salsa-tartufo-nero.jpg"},
		{Name: "Olio al Tartufo Bianco", Description: "Aroma delicato", Price: 12.50, ImageURL: "/images/olio-tartufo-bianco.jpg"},
		{Name: "Sale al Tartufo", Description: "Migliora qualsiasi piatto", Price: 8.75, ImageURL: "/images/sale-tartufo.jpg"},
		{Name: "Miele al Tartufo", Description: "Dolce e salato", Price: 10.20, ImageURL: "/images/miele-tartufo.jpg"},
	}

	return db.Create(&products).Error
}

// SeedDeliverySlots inserts the fixed 2-day x 3-window weekend matrix when
// the table is empty.
func SeedDeliverySlots(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.DeliverySlot{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	windows := []string{"10:00-14:00", "14:00-18:00", "18:00-21:00"}

	var slots []models.DeliverySlot
	for _, day := range []string{"Saturday", "Sunday"} {
		for _, window := range windows {
			slots = append(slots, models.DeliverySlot{DayOfWeek: day, TimeSlot: window})
		}
	}

	return db.Create(&slots).Error
}
