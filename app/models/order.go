package models

import "gorm.io/gorm"

// OrderStatusPending is the only status this service ever assigns.
// Status is an open enumeration: downstream systems may move orders to
// other states, but no transition logic lives here.
const OrderStatusPending = "Pending"

// Order is a placed purchase. TotalAmount and every item price are computed
// server-side at placement time; none of them track later catalog changes.
type Order struct {
	gorm.Model
	UserID                  uint        `gorm:"not null;index" json:"user_id"`
	User                    User        `json:"-"`
	DeliveryDate            string      `gorm:"size:20;not null" json:"delivery_date"` // "YYYY-MM-DD"
	DeliverySlotDescription string      `gorm:"size:50;not null" json:"delivery_slot_description"`
	TotalAmount             float64     `gorm:"not null" json:"total_amount"`
	Status                  string      `gorm:"size:50;default:Pending" json:"status"`
	DeliveryNotes           string      `gorm:"size:300" json:"delivery_notes"`
	Items                   []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
}

// OrderItem is one cart line frozen into an order. Price is the unit price
// snapshotted when the order was placed, not a live product reference.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Product   Product `json:"-"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}
