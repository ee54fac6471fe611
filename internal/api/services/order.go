package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"djstore/internal/domain"
	"djstore/internal/store"
)

type OrderService struct {
	dc *store.DataContext
}

func NewOrderService(dc *store.DataContext) *OrderService {
	return &OrderService{dc: dc}
}

type OrderLine struct {
	RecordID uuid.UUID
	Quantity int
}

// Checkout places an order: it verifies and decrements stock and writes the
// order with its items in one transaction. The whole body runs under the
// retry strategy, so it is written to be restartable.
func (s *OrderService) Checkout(ctx context.Context, name, email string, lines []OrderLine) (*domain.Order, []*domain.OrderItem, error) {
	var order *domain.Order
	var items []*domain.OrderItem

	err := s.dc.ExecuteTransaction(ctx, func(ctx context.Context) error {
		order = &domain.Order{
			CustomerName:  store.TrimmedString(name),
			CustomerEmail: store.TrimmedString(email),
			Status:        domain.OrderStatusPending,
		}
		items = items[:0]

		var total int64
		prices := make(map[uuid.UUID]int64, len(lines))
		for _, line := range lines {
			record, err := store.Data[domain.Record](s.dc, store.TrackChanges()).
				Where("id = ?", line.RecordID).
				First(ctx)
			if err != nil {
				return err
			}
			if record == nil {
				return ErrNotFound
			}
			if record.Stock < line.Quantity {
				return ErrOutOfStock
			}
			record.Stock -= line.Quantity
			prices[line.RecordID] = record.Price
			total += record.Price * int64(line.Quantity)
		}

		order.TotalPrice = total
		if err := s.dc.Create(order); err != nil {
			return err
		}
		// First flush assigns the order id the items reference.
		if err := s.dc.Save(ctx); err != nil {
			return err
		}

		for _, line := range lines {
			item := &domain.OrderItem{
				OrderID:   order.ID,
				RecordID:  line.RecordID,
				Quantity:  line.Quantity,
				UnitPrice: prices[line.RecordID],
			}
			if err := s.dc.Create(item); err != nil {
				return err
			}
			items = append(items, item)
		}
		return s.dc.Save(ctx)
	})
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*domain.Order, []*domain.OrderItem, error) {
	order, err := store.Get[domain.Order](ctx, s.dc, id)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, ErrNotFound
	}
	items, err := s.items(ctx, order.ID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

// Cancel soft-deletes the order. The row stays behind for bookkeeping but no
// default query sees it again.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) error {
	order, err := store.Get[domain.Order](ctx, s.dc, id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}
	if err := s.dc.Delete(order); err != nil {
		return err
	}
	return s.dc.Save(ctx)
}

// RemoveItem physically deletes an order item and adjusts the order total.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) error {
	order, err := store.Data[domain.Order](s.dc, store.TrackChanges()).
		Where("id = ?", orderID).
		First(ctx)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}

	item, err := store.Data[domain.OrderItem](s.dc).
		Where("id = ? AND order_id = ?", itemID, orderID).
		First(ctx)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}

	order.TotalPrice -= item.UnitPrice * int64(item.Quantity)
	if err := s.dc.Delete(item); err != nil {
		return err
	}
	return s.dc.Save(ctx)
}

// Invoice rendering is exposed by the API but not backed yet.
func (s *OrderService) Invoice(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return nil, store.ErrNotImplemented
}

// ExpireStale soft-deletes pending orders older than ttl and reports how
// many were flagged.
func (s *OrderService) ExpireStale(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-ttl)
	stale, err := store.Data[domain.Order](s.dc).
		Where("status = ? AND creation_date < ?", domain.OrderStatusPending, cutoff).
		All(ctx)
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	for _, order := range stale {
		if err := s.dc.Delete(order); err != nil {
			return 0, err
		}
	}
	if err := s.dc.Save(ctx); err != nil {
		return 0, err
	}
	return len(stale), nil
}

func (s *OrderService) items(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	return store.Data[domain.OrderItem](s.dc).
		Where("order_id = ?", orderID).
		OrderBy("creation_date").
		All(ctx)
}
