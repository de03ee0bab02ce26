package resources

import (
	"time"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/pkg/collection"
)

// OrderResource is the public shape of an order.
type OrderResource struct {
	ID           uint                `json:"id"`
	Number       string              `json:"number"`
	Status       models.OrderStatus  `json:"status"`
	Total        string              `json:"total"`
	PaymentLast4 string              `json:"payment_last4"`
	ShipName     string              `json:"ship_name"`
	ShipAddress  string              `json:"ship_address"`
	ShipCity     string              `json:"ship_city"`
	ShipZip      string              `json:"ship_zip"`
	ShipCountry  string              `json:"ship_country"`
	Items        []OrderItemResource `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
}

// OrderItemResource is one frozen line of an order.
type OrderItemResource struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

// NewOrder maps an order model to its resource.
func NewOrder(o models.Order) OrderResource {
	items := collection.Map(o.Items, func(i models.OrderItem) OrderItemResource {
		return OrderItemResource{
			ProductID: i.ProductID,
			Name:      i.Name,
			UnitPrice: i.UnitPrice.StringFixed(2),
			Quantity:  i.Quantity,
			Subtotal:  i.Subtotal.StringFixed(2),
		}
	})
	if items == nil {
		items = []OrderItemResource{}
	}

	return OrderResource{
		ID:           o.ID,
		Number:       o.Number,
		Status:       o.Status,
		Total:        o.Total.StringFixed(2),
		PaymentLast4: o.PaymentLast4,
		ShipName:     o.ShipName,
		ShipAddress:  o.ShipAddress,
		ShipCity:     o.ShipCity,
		ShipZip:      o.ShipZip,
		ShipCountry:  o.ShipCountry,
		Items:        items,
		CreatedAt:    o.CreatedAt,
	}
}

// NewOrderList maps a slice of orders.
func NewOrderList(orders []models.Order) []OrderResource {
	return collection.Map(orders, NewOrder)
}
