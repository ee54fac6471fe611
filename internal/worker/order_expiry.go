package worker

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"djstore/internal/api/services"
	"djstore/internal/store"
)

// OrderExpiryWorker periodically cancels pending orders nobody confirmed
// within the TTL. Cancelled rows stay in the store; they just drop out of
// every default query.
type OrderExpiryWorker struct {
	db       *sqlx.DB
	ttl      time.Duration
	interval time.Duration
}

func NewOrderExpiryWorker(db *sqlx.DB, ttl, interval time.Duration) *OrderExpiryWorker {
	return &OrderExpiryWorker{db: db, ttl: ttl, interval: interval}
}

func (w *OrderExpiryWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := w.expire(ctx)
			if err != nil {
				log.Printf("order expiry: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("order expiry: cancelled %d stale orders", n)
			}
		}
	}
}

func (w *OrderExpiryWorker) expire(ctx context.Context) (int, error) {
	svc := services.NewOrderService(store.NewDataContext(w.db))
	return svc.ExpireStale(ctx, w.ttl)
}
