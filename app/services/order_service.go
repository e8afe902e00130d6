package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/app/repositories"
	"github.com/casatartufo/tartufo/pkg/apperr"
	"github.com/casatartufo/tartufo/pkg/event"
	"github.com/casatartufo/tartufo/pkg/metrics"
)

// OrderPlaced is fired with a *models.Order (associations attached) after an
// order has been committed.
const OrderPlaced = "order.placed"

// deliveryDateLayout is the only accepted delivery date format.
const deliveryDateLayout = "2006-01-02"

// CartLine is one (product, quantity) pair submitted by the caller.
// Prices are never accepted from the client.
type CartLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// PlaceOrderInput is the payload for placing an order.
type PlaceOrderInput struct {
	CartItems      []CartLine `json:"cart_items"`
	DeliveryDate   string     `json:"delivery_date"`
	DeliverySlotID uint       `json:"delivery_slot_id"`
	DeliveryNotes  string     `json:"delivery_notes"`
}

// OrderService validates carts against the delivery rules, computes the
// authoritative total and persists orders atomically.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	slots    *repositories.DeliverySlotRepository
	users    *repositories.UserRepository

	// now is the clock used for the past-date rule; injectable for tests.
	now func() time.Time
}

func NewOrderService(
	orders *repositories.OrderRepository,
	products *repositories.ProductRepository,
	slots *repositories.DeliverySlotRepository,
	users *repositories.UserRepository,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		slots:    slots,
		users:    users,
		now:      time.Now,
	}
}

// WithClock replaces the service clock. Test hook.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

func rejected(reason, format string, args ...interface{}) error {
	metrics.OrdersRejected.WithLabelValues(reason).Inc()
	return apperr.InvalidInput(format, args...)
}

// PlaceOrder runs the order placement workflow for an authenticated user.
//
// Validation is fail-fast and ordered; the first violated rule determines the
// user-facing message. No database write happens until every rule has passed,
// and the order plus its items are committed in one transaction.
func (s *OrderService) PlaceOrder(userID uint, in PlaceOrderInput) (models.Order, error) {
	// 1. Required fields. A nil cart means the field was absent; an empty
	// one means the caller sent an empty cart.
	if in.CartItems == nil || in.DeliveryDate == "" || in.DeliverySlotID == 0 {
		return models.Order{}, rejected("missing_fields",
			"Missing required fields (cart_items, delivery_date, delivery_slot_id)")
	}
	if len(in.CartItems) == 0 {
		return models.Order{}, rejected("empty_cart", "Cart cannot be empty")
	}

	// 2. Date format.
	deliveryDate, err := time.Parse(deliveryDateLayout, in.DeliveryDate)
	if err != nil {
		return models.Order{}, rejected("bad_date_format",
			"Invalid delivery date format. Use YYYY-MM-DD.")
	}

	// 3. Weekend only.
	weekday := deliveryDate.Weekday()
	if weekday != time.Saturday && weekday != time.Sunday {
		return models.Order{}, rejected("weekday_delivery",
			"Delivery is only available on Saturdays and Sundays.")
	}

	// 4. Not in the past, at date granularity.
	if deliveryDate.Before(s.today()) {
		return models.Order{}, rejected("past_date", "Delivery date cannot be in the past.")
	}

	// 5. Slot exists.
	slot, err := s.slots.FindByID(in.DeliverySlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, rejected("unknown_slot", "Invalid delivery slot ID.")
		}
		return models.Order{}, fmt.Errorf("order: lookup slot: %w", err)
	}

	// 6. Slot day matches the date's weekday.
	if slot.DayOfWeek != weekday.String() {
		return models.Order{}, rejected("slot_mismatch",
			"Selected slot is for %s, but date is a %s.", slot.DayOfWeek, weekday.String())
	}

	// 7. Cart lines: every product must exist with a positive quantity.
	// Prices are snapshotted from the catalog here, never from the request.
	var total float64
	items := make([]models.OrderItem, 0, len(in.CartItems))
	productsByID := make(map[uint]models.Product, len(in.CartItems))
	for _, line := range in.CartItems {
		product, err := s.products.FindByID(line.ProductID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, fmt.Errorf("order: lookup product: %w", err)
		}
		if err != nil || line.Quantity <= 0 {
			return models.Order{}, rejected("bad_cart_line",
				"Invalid product or quantity for product ID %d", line.ProductID)
		}

		total += product.Price * float64(line.Quantity)
		productsByID[product.ID] = product
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	order := models.Order{
		UserID:                  userID,
		DeliveryDate:            in.DeliveryDate,
		DeliverySlotDescription: slot.Description(),
		TotalAmount:             round2(total),
		Status:                  models.OrderStatusPending,
		DeliveryNotes:           in.DeliveryNotes,
		Items:                   items,
	}

	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, fmt.Errorf("order: persist: %w", err)
	}
	metrics.OrdersPlaced.Inc()

	// Attach associations for the response view only; they were not part of
	// the insert. A missing owner is not fatal.
	for i := range order.Items {
		order.Items[i].Product = productsByID[order.Items[i].ProductID]
	}
	if user, err := s.users.FindByID(userID); err == nil {
		order.User = user
	}

	// Listeners take over side effects like the confirmation email.
	event.Fire(OrderPlaced, &order)

	return order, nil
}

// ListOrders returns the user's order history, newest first.
func (s *OrderService) ListOrders(userID uint) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("order: list history: %w", err)
	}
	return orders, nil
}

// today is the server-local calendar date, normalised for comparison with
// parsed delivery dates (both at UTC midnight).
func (s *OrderService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// round2 rounds half away from zero to 2 decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
