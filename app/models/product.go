package models

import "gorm.io/gorm"

// Product is a catalog entry. The catalog is immutable in this service:
// rows are seeded at startup and there are no edit endpoints.
type Product struct {
	gorm.Model
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:200"          json:"description"`
	Price       float64 `gorm:"not null"          json:"price"`
	ImageURL    string  `gorm:"size:200"          json:"image_url"`
}
