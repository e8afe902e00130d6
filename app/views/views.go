// Package views holds the hand-written response shapes of the API. Each view
// is an explicit struct so the serialised form is a compile-time guarantee —
// in particular, no view carries the password credential.
package views

import (
	"time"

	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/pkg/collection"
)

// UserView is the public subset of a User record.
type UserView struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func NewUserView(u models.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Address: u.Address}
}

// ProductView mirrors the full product record; products hold nothing secret.
type ProductView struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

func NewProductView(p models.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
}

func NewProductViews(products []models.Product) []ProductView {
	return collection.Map(products, NewProductView)
}

// DeliverySlotView includes the derived display label.
type DeliverySlotView struct {
	ID          uint   `json:"id"`
	DayOfWeek   string `json:"day_of_week"`
	TimeSlot    string `json:"time_slot"`
	Description string `json:"description"`
}

func NewDeliverySlotView(s models.DeliverySlot) DeliverySlotView {
	return DeliverySlotView{
		ID:          s.ID,
		DayOfWeek:   s.DayOfWeek,
		TimeSlot:    s.TimeSlot,
		Description: s.Description(),
	}
}

func NewDeliverySlotViews(slots []models.DeliverySlot) []DeliverySlotView {
	return collection.Map(slots, NewDeliverySlotView)
}

// OrderItemView resolves the product name from the preloaded association;
// "Unknown Product" when the product row is gone.
type OrderItemView struct {
	ID          uint    `json:"id"`
	OrderID     uint    `json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func NewOrderItemView(it models.OrderItem) OrderItemView {
	name := "Unknown Product"
	if it.Product.ID != 0 {
		name = it.Product.Name
	}
	return OrderItemView{
		ID:          it.ID,
		OrderID:     it.OrderID,
		ProductID:   it.ProductID,
		ProductName: name,
		Quantity:    it.Quantity,
		Price:       it.Price,
	}
}

// OrderView is the full order shape returned on placement and in history.
type OrderView struct {
	ID                      uint            `json:"id"`
	UserID                  uint            `json:"user_id"`
	CustomerName            string          `json:"customer_name"`
	CreatedAt               string          `json:"created_at"` // ISO-8601
	DeliveryDate            string          `json:"delivery_date"`
	DeliverySlotDescription string          `json:"delivery_slot_description"`
	TotalAmount             float64         `json:"total_amount"`
	Status                  string          `json:"status"`
	DeliveryNotes           string          `json:"delivery_notes"`
	Items                   []OrderItemView `json:"items"`
}

// NewOrderView expects o.User and o.Items[i].Product to be preloaded.
// A missing owner renders as "N/A" rather than failing the whole view.
func NewOrderView(o models.Order) OrderView {
	customer := "N/A"
	if o.User.ID != 0 {
		customer = o.User.Name
	}

	return OrderView{
		ID:                      o.ID,
		UserID:                  o.UserID,
		CustomerName:            customer,
		CreatedAt:               o.CreatedAt.Format(time.RFC3339),
		DeliveryDate:            o.DeliveryDate,
		DeliverySlotDescription: o.DeliverySlotDescription,
		TotalAmount:             o.TotalAmount,
		Status:                  o.Status,
		DeliveryNotes:           o.DeliveryNotes,
		Items:                   collection.Map(o.Items, NewOrderItemView),
	}
}

func NewOrderViews(orders []models.Order) []OrderView {
	return collection.Map(orders, NewOrderView)
}
