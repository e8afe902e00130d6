package jobs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casatartufo/tartufo/app/jobs"
	"github.com/casatartufo/tartufo/app/models"
)

func placedOrder() *models.Order {
	return &models.Order{
		UserID:                  1,
		DeliveryDate:            "2026-08-29",
		DeliverySlotDescription: "Saturday 10:00-14:00",
		TotalAmount:             44.48,
		Status:                  models.OrderStatusPending,
		User:                    models.User{Name: "Alice", Email: "alice@example.com"},
		Items: []models.OrderItem{
			{Quantity: 2, Price: 15.99, Product: models.Product{Name: "Salsa al Tartufo Nero"}},
			{Quantity: 1, Price: 12.50, Product: models.Product{Name: "Olio al Tartufo Bianco"}},
		},
	}
}

func TestNewOrderConfirmationJob_SnapshotsOrder(t *testing.T) {
	job := jobs.NewOrderConfirmationJob(placedOrder())

	assert.Equal(t, "alice@example.com", job.Email)
	assert.Equal(t, "Alice", job.CustomerName)
	assert.Equal(t, "2026-08-29", job.DeliveryDate)
	assert.Equal(t, "Saturday 10:00-14:00", job.DeliverySlot)
	assert.InDelta(t, 44.48, job.TotalAmount, 1e-9)

	require.Len(t, job.Lines, 2)
	assert.Equal(t, "Salsa al Tartufo Nero", job.Lines[0].ProductName)
	assert.Equal(t, 2, job.Lines[0].Quantity)
}

func TestHandle_SkipsWhenMailUnconfigured(t *testing.T) {
	// MAIL_USERNAME is unset in the test environment, so Handle must
	// succeed without attempting an SMTP connection.
	job := jobs.NewOrderConfirmationJob(placedOrder())
	assert.NoError(t, job.Handle())
}

func TestHandle_NoRecipientIsANoOp(t *testing.T) {
	order := placedOrder()
	order.User.Email = ""
	job := jobs.NewOrderConfirmationJob(order)
	assert.NoError(t, job.Handle())
}
