package jobs

import (
	"fmt"
	"strings"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/pkg/database"
	"github.com/pawmart/pawmart/pkg/logger"
	"github.com/pawmart/pawmart/pkg/mail"
)

// OrderConfirmationJob emails the customer after a successful checkout.
type OrderConfirmationJob struct {
	OrderID uint `json:"order_id"`
}

func (j *OrderConfirmationJob) Handle() error {
	var order models.Order
	if err := database.DB.Preload("Items").First(&order, j.OrderID).Error; err != nil {
		return fmt.Errorf("order confirmation: load order %d: %w", j.OrderID, err)
	}

	var user models.User
	if err := database.DB.First(&user, order.UserID).Error; err != nil {
		return fmt.Errorf("order confirmation: load user %d: %w", order.UserID, err)
	}

	var lines strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&lines, "<li>%d x %s: %s</li>", item.Quantity, item.Name, item.Subtotal.StringFixed(2))
	}

	body := fmt.Sprintf(
		"<h1>Thanks for your order, %s!</h1>"+
			"<p>Order <strong>%s</strong> is being processed.</p>"+
			"<ul>%s</ul><p>Total: %s</p>",
		user.Name, order.Number, lines.String(), order.Total.StringFixed(2),
	)

	if err := mail.To(user.Email).
		Subject(fmt.Sprintf("Order %s confirmed", order.Number)).
		Body(body).
		Send(); err != nil {
		return fmt.Errorf("order confirmation: send: %w", err)
	}

	logger.Info("order confirmation sent", "order_id", order.ID, "email", user.Email)
	return nil
}
