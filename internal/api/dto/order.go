package dto

import (
	"time"

	"djstore/internal/domain"
)

type OrderItem struct {
	ID        string `json:"id"`
	RecordID  string `json:"recordId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type Order struct {
	ID            string       `json:"id"`
	CustomerName  string       `json:"customerName"`
	CustomerEmail string       `json:"customerEmail"`
	Status        string       `json:"status"`
	TotalPrice    int64        `json:"totalPrice"`
	Items         []*OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     *time.Time   `json:"updatedAt,omitempty"`
}

type OrderLineRequest struct {
	RecordID string `json:"recordId" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customerName" validate:"required,max=150"`
	CustomerEmail string             `json:"customerEmail" validate:"required,email"`
	Lines         []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func OrderItemFromDomain(item *domain.OrderItem) *OrderItem {
	if item == nil {
		return nil
	}
	return &OrderItem{
		ID:        item.ID.String(),
		RecordID:  item.RecordID.String(),
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}
}

func OrderFromDomain(o *domain.Order, items []*domain.OrderItem) *Order {
	if o == nil {
		return nil
	}
	order := &Order{
		ID:            o.ID.String(),
		CustomerName:  o.CustomerName.String(),
		CustomerEmail: o.CustomerEmail.String(),
		Status:        o.Status.String(),
		TotalPrice:    o.TotalPrice,
		CreatedAt:     o.CreationDate,
		UpdatedAt:     timePtr(o.UpdatedDate),
	}
	for _, item := range items {
		order.Items = append(order.Items, OrderItemFromDomain(item))
	}
	return order
}
