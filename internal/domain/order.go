package domain

import (
	"github.com/google/uuid"

	"djstore/internal/store"
)

type OrderStatus = store.TrimmedString

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
)

// Order is cancellable, so it is soft-deletable: a cancelled order stays in
// the store but disappears from every default query.
type Order struct {
	store.Deletable
	CustomerName  store.TrimmedString `db:"customer_name"`
	CustomerEmail store.TrimmedString `db:"customer_email"`
	Status        OrderStatus         `db:"status"`
	TotalPrice    int64               `db:"total_price"`
}

// OrderItem rows are plain audited entities: removing one from an order
// deletes it physically.
type OrderItem struct {
	store.Base
	OrderID   uuid.UUID `db:"order_id"`
	RecordID  uuid.UUID `db:"record_id"`
	Quantity  int       `db:"quantity"`
	UnitPrice int64     `db:"unit_price"`
}

func init() {
	store.Register[Order](store.Binding{
		Table:   "orders",
		Columns: []string{"customer_name", "customer_email", "status", "total_price"},
	})
	store.Register[OrderItem](store.Binding{
		Table:   "order_items",
		Columns: []string{"order_id", "record_id", "quantity", "unit_price"},
	})
}
