// Package jobs holds the background jobs dispatched through pkg/queue and the
// event listeners that enqueue them.
package jobs

import (
	"fmt"
	"strings"

	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/app/services"
	"github.com/casatartufo/tartufo/config"
	"github.com/casatartufo/tartufo/pkg/event"
	"github.com/casatartufo/tartufo/pkg/logger"
	"github.com/casatartufo/tartufo/pkg/mail"
	"github.com/casatartufo/tartufo/pkg/queue"
)

func init() {
	queue.Register("*jobs.OrderConfirmationJob", func() queue.Job {
		return &OrderConfirmationJob{}
	})
}

// RegisterListeners wires domain events to their background jobs.
// Call once at boot, after the queue driver is configured.
func RegisterListeners() {
	event.Listen(services.OrderPlaced, func(payload interface{}) {
		order, ok := payload.(*models.Order)
		if !ok {
			return
		}
		job := NewOrderConfirmationJob(order)
		if err := queue.Dispatch(job); err != nil {
			logger.Error("jobs: dispatch order confirmation", "order_id", order.ID, "error", err)
		}
	})
}

// OrderConfirmationJob emails the customer a summary of a placed order.
// The payload carries everything the email needs so the worker never has to
// reload the order.
type OrderConfirmationJob struct {
	OrderID      uint    `json:"order_id"`
	Email        string  `json:"email"`
	CustomerName string  `json:"customer_name"`
	DeliveryDate string  `json:"delivery_date"`
	DeliverySlot string  `json:"delivery_slot"`
	TotalAmount  float64 `json:"total_amount"`
	Lines        []Line  `json:"lines"`
}

// Line is one ordered product in the confirmation email.
type Line struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// NewOrderConfirmationJob snapshots the fields needed for the email.
// The order's Items and User associations must be attached.
func NewOrderConfirmationJob(order *models.Order) *OrderConfirmationJob {
	lines := make([]Line, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, Line{
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return &OrderConfirmationJob{
		OrderID:      order.ID,
		Email:        order.User.Email,
		CustomerName: order.User.Name,
		DeliveryDate: order.DeliveryDate,
		DeliverySlot: order.DeliverySlotDescription,
		TotalAmount:  order.TotalAmount,
		Lines:        lines,
	}
}

// Handle sends the confirmation email. When SMTP is not configured the job
// logs and succeeds, so local development never fills the failed-jobs table.
func (j *OrderConfirmationJob) Handle() error {
	if j.Email == "" {
		return nil
	}
	if config.Get("MAIL_USERNAME", "") == "" {
		logger.Info("jobs: mail not configured, skipping order confirmation",
			"order_id", j.OrderID, "to", j.Email)
		return nil
	}

	return mail.To(j.Email).
		Subject(fmt.Sprintf("Order #%d confirmed", j.OrderID)).
		Body(j.html()).
		Send()
}

func (j *OrderConfirmationJob) html() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Grazie, %s!</h1>", j.CustomerName)
	fmt.Fprintf(&b, "<p>Your order #%d is confirmed for delivery on %s (%s).</p>",
		j.OrderID, j.DeliveryDate, j.DeliverySlot)
	b.WriteString("<ul>")
	for _, line := range j.Lines {
		fmt.Fprintf(&b, "<li>%d × %s — €%.2f</li>", line.Quantity, line.ProductName, line.Price)
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p><strong>Total: €%.2f</strong></p>", j.TotalAmount)
	return b.String()
}
