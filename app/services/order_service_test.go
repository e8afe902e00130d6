package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/app/services"
	"github.com/casatartufo/tartufo/pkg/apperr"
)

// fixedClock pins "now" to Wednesday 2026-08-26; the following Saturday and
// Sunday are 2026-08-29 and 2026-08-30.
func fixedClock() time.Time {
	return time.Date(2026, 8, 26, 15, 4, 5, 0, time.Local)
}

func placeOrderInput() services.PlaceOrderInput {
	return services.PlaceOrderInput{
		CartItems: []services.CartLine{
			{ProductID: 1, Quantity: 2}, // Salsa al Tartufo Nero, 15.99
			{ProductID: 2, Quantity: 1}, // Olio al Tartufo Bianco, 12.50
		},
		DeliveryDate:   "2026-08-29",
		DeliverySlotID: 1, // Saturday 10:00-14:00
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	svc := newOrderService(db).WithClock(fixedClock)

	order, err := svc.PlaceOrder(user.ID, placeOrderInput())
	require.NoError(t, err)

	assert.InDelta(t, 44.48, order.TotalAmount, 1e-9)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Saturday 10:00-14:00", order.DeliverySlotDescription)
	assert.Equal(t, "2026-08-29", order.DeliveryDate)
	assert.Equal(t, "alice@example.com", order.User.Email)

	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 15.99, order.Items[0].Price, 1e-9)
	assert.Equal(t, "Salsa al Tartufo Nero", order.Items[0].Product.Name)
	assert.InDelta(t, 12.50, order.Items[1].Price, 1e-9)

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.EqualValues(t, 1, orders)
	assert.EqualValues(t, 2, items)
}

func TestPlaceOrder_TodayIsNotPast(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	svc := newOrderService(db).WithClock(func() time.Time {
		return time.Date(2026, 8, 29, 9, 0, 0, 0, time.Local) // Saturday morning
	})

	in := placeOrderInput()
	in.DeliveryDate = "2026-08-29"

	_, err := svc.PlaceOrder(user.ID, in)
	assert.NoError(t, err)
}

func TestPlaceOrder_MissingFields(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	svc := newOrderService(db).WithClock(fixedClock)

	cases := map[string]services.PlaceOrderInput{
		"absent cart": {DeliveryDate: "2026-08-29", DeliverySlotID: 1},
		"absent date": {CartItems: []services.CartLine{{ProductID: 1, Quantity: 1}}, DeliverySlotID: 1},
		"absent slot": {CartItems: []services.CartLine{{ProductID: 1, Quantity: 1}}, DeliveryDate: "2026-08-29"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.PlaceOrder(user.ID, in)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
			assert.EqualError(t, err,
				"Missing required fields (cart_items, delivery_date, delivery_slot_id)")
		})
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	svc := newOrderService(db).WithClock(fixedClock)

	in := placeOrderInput()
	in.CartItems = []services.CartLine{}

	_, err := svc.PlaceOrder(user.ID, in)
	assert.EqualError(t, err, "Cart cannot be empty")
}

func TestPlaceOrder_BadDateFormat(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	svc := newOrderService(db).WithClock(fixedClock)

	in := placeOrderInput()
	in.DeliveryDate = "29-08-2026"

	_, err := svc.PlaceOrder(user.ID, in)
	assert.EqualError(t, err, "Invalid delivery date format. Use YYYY-MM-DD.")
}

func TestPlaceOrder_WeekdayRejected(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	svc := newOrderService(db).WithClock(fixedClock)

	in := placeOrderInput()
	in.DeliveryDate = "2026-08-31" // Monday

	_, err := svc.PlaceOrder(user.ID, in)
	assert.EqualError(t, err, "Delivery is only available on Saturdays and Sundays.")

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.EqualValues(t, 0, orders)
}

func TestPlaceOrder_PastDate(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	svc := newOrderService(db).WithClock(fixedClock)

	in := placeOrderInput()
	in.DeliveryDate = "2026-08-22" // the Saturday before "now"

	_, err := svc.PlaceOrder(user.ID, in)
	assert.EqualError(t, err, "Delivery date cannot be in the past.")
}

func TestPlaceOrder_UnknownSlot(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	svc := newOrderService(db).WithClock(fixedClock)

	in := placeOrderInput()
	in.DeliverySlotID = 99

	_, err := svc.PlaceOrder(user.ID, in)
	assert.EqualError(t, err, "Invalid delivery slot ID.")
}

func TestPlaceOrder_SlotDayMismatch(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	svc := newOrderService(db).WithClock(fixedClock)

	in := placeOrderInput()
	in.DeliverySlotID = 4 // Sunday 10:00-14:00, but the date is a Saturday

	_, err := svc.PlaceOrder(user.ID, in)
	assert.EqualError(t, err, "Selected slot is for Sunday, but date is a Saturday.")
}

func TestPlaceOrder_BadCartLine(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	svc := newOrderService(db).WithClock(fixedClock)

	t.Run("unknown product", func(t *testing.T) {
		in := placeOrderInput()
		in.CartItems = []services.CartLine{{ProductID: 99, Quantity: 1}}

		_, err := svc.PlaceOrder(user.ID, in)
		assert.EqualError(t, err, "Invalid product or quantity for product ID 99")
	})

	t.Run("zero quantity", func(t *testing.T) {
		in := placeOrderInput()
		in.CartItems = []services.CartLine{{ProductID: 1, Quantity: 0}}

		_, err := svc.PlaceOrder(user.ID, in)
		assert.EqualError(t, err, "Invalid product or quantity for product ID 1")
	})

	t.Run("negative quantity", func(t *testing.T) {
		in := placeOrderInput()
		in.CartItems = []services.CartLine{{ProductID: 1, Quantity: -2}}

		_, err := svc.PlaceOrder(user.ID, in)
		assert.EqualError(t, err, "Invalid product or quantity for product ID 1")
	})
}

func TestPlaceOrder_NothingPersistedOnRejection(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	svc := newOrderService(db).WithClock(fixedClock)

	in := placeOrderInput()
	in.CartItems = []services.CartLine{
		{ProductID: 1, Quantity: 1}, // valid line first
		{ProductID: 99, Quantity: 1},
	}

	_, err := svc.PlaceOrder(user.ID, in)
	require.Error(t, err)

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.EqualValues(t, 0, orders)
	assert.EqualValues(t, 0, items)
}

func TestListOrders_NewestFirstAndScopedToUser(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice@example.com")
	bob := newTestUser(t, db, "bob@example.com")
	svc := newOrderService(db).WithClock(fixedClock)

	first, err := svc.PlaceOrder(alice.ID, placeOrderInput())
	require.NoError(t, err)

	second := placeOrderInput()
	second.DeliveryDate = "2026-08-30"
	second.DeliverySlotID = 4
	latest, err := svc.PlaceOrder(alice.ID, second)
	require.NoError(t, err)

	_, err = svc.PlaceOrder(bob.ID, placeOrderInput())
	require.NoError(t, err)

	orders, err := svc.ListOrders(alice.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, latest.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	// Associations are preloaded for the history view.
	require.Len(t, orders[0].Items, 2)
	assert.Equal(t, "Salsa al Tartufo Nero", orders[0].Items[0].Product.Name)
	assert.Equal(t, "alice@example.com", orders[0].User.Email)
}
