package services_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"djstore/internal/api/services"
	"djstore/internal/domain"
	"djstore/internal/store"
	"djstore/internal/testutil"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	db, err := testutil.SetupTestDB("../../../.env.test", "../../../migrations")
	if err != nil {
		log.Printf("Skipping service integration tests: %v", err)
	} else {
		testDB = db
		defer testDB.Close()
	}
	os.Exit(m.Run())
}

func freshContext(t *testing.T) *store.DataContext {
	t.Helper()
	testutil.RequireDB(t, testDB)
	testutil.Truncate(testDB, "order_items", "orders", "records", "artists", "genres")
	return store.NewDataContext(testDB)
}

func seedRecord(t *testing.T, dc *store.DataContext, title string, price int64, stock int) *domain.Record {
	t.Helper()
	ctx := context.Background()

	genre := &domain.Genre{Name: "Techno"}
	artist := &domain.Artist{Name: "Jeff Mills"}
	require.NoError(t, dc.Create(genre))
	require.NoError(t, dc.Create(artist))
	require.NoError(t, dc.Save(ctx))

	record := &domain.Record{
		Title:    store.TrimmedString(title),
		Year:     1997,
		Price:    price,
		Stock:    stock,
		GenreID:  genre.ID,
		ArtistID: artist.ID,
	}
	require.NoError(t, dc.Create(record))
	require.NoError(t, dc.Save(ctx))
	return record
}

func TestGenreServiceCRUD(t *testing.T) {
	dc := freshContext(t)
	ctx := context.Background()
	svc := services.NewGenreService(dc)

	desc := "four to the floor"
	created, err := svc.Create(ctx, "  House ", &desc)
	require.NoError(t, err)
	assert.Equal(t, "House", created.Name.String())

	_, err = svc.Create(ctx, "House", nil)
	assert.ErrorIs(t, err, services.ErrAlreadyExists)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	updated, err := svc.Update(ctx, created.ID, "Deep House", nil)
	require.NoError(t, err)
	assert.Equal(t, store.TrimmedString("Deep House"), updated.Name)
	assert.False(t, updated.Description.Valid)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), services.ErrNotFound)
}

func TestGenreServiceList(t *testing.T) {
	dc := freshContext(t)
	ctx := context.Background()
	svc := services.NewGenreService(dc)

	for _, name := range []string{"Ambient", "Breaks", "Chicago"} {
		_, err := svc.Create(ctx, name, nil)
		require.NoError(t, err)
	}

	result, err := svc.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.TotalCount)
	assert.Equal(t, int32(2), result.TotalPages)
	assert.True(t, result.HasNextPage)
	require.Len(t, result.Content, 2)
	assert.Equal(t, store.TrimmedString("Ambient"), result.Content[0].Name)
}

func TestCheckoutDecrementsStock(t *testing.T) {
	dc := freshContext(t)
	ctx := context.Background()
	record := seedRecord(t, dc, "The Bells", 1200, 5)

	svc := services.NewOrderService(store.NewDataContext(testDB))
	order, items, err := svc.Checkout(ctx, "Ada", "ada@example.com", []services.OrderLine{
		{RecordID: record.ID, Quantity: 2},
	})
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2400), order.TotalPrice)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, order.ID, items[0].OrderID)
	assert.Equal(t, int64(1200), items[0].UnitPrice)

	var stock int
	require.NoError(t, testDB.Get(&stock, "SELECT stock FROM records WHERE id = $1", record.ID))
	assert.Equal(t, 3, stock)
}

func TestCheckoutOutOfStockLeavesNothingBehind(t *testing.T) {
	dc := freshContext(t)
	ctx := context.Background()
	record := seedRecord(t, dc, "Rare Pressing", 9900, 1)

	svc := services.NewOrderService(store.NewDataContext(testDB))
	_, _, err := svc.Checkout(ctx, "Bob", "bob@example.com", []services.OrderLine{
		{RecordID: record.ID, Quantity: 3},
	})
	assert.ErrorIs(t, err, services.ErrOutOfStock)

	var orders int
	require.NoError(t, testDB.Get(&orders, "SELECT COUNT(*) FROM orders"))
	assert.Zero(t, orders)

	var stock int
	require.NoError(t, testDB.Get(&stock, "SELECT stock FROM records WHERE id = $1", record.ID))
	assert.Equal(t, 1, stock, "failed checkout must not touch stock")
}

func TestCheckoutUnknownRecord(t *testing.T) {
	freshContext(t)
	ctx := context.Background()

	svc := services.NewOrderService(store.NewDataContext(testDB))
	_, _, err := svc.Checkout(ctx, "Eve", "eve@example.com", []services.OrderLine{
		{RecordID: uuid.New(), Quantity: 1},
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCancelHidesOrder(t *testing.T) {
	dc := freshContext(t)
	ctx := context.Background()
	record := seedRecord(t, dc, "Strings of Life", 1500, 10)

	svc := services.NewOrderService(store.NewDataContext(testDB))
	order, _, err := svc.Checkout(ctx, "Ada", "ada@example.com", []services.OrderLine{
		{RecordID: record.ID, Quantity: 1},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, order.ID))

	_, _, err = services.NewOrderService(store.NewDataContext(testDB)).Get(ctx, order.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// The row itself survives the cancellation.
	var count int
	require.NoError(t, testDB.Get(&count, "SELECT COUNT(*) FROM orders WHERE id = $1", order.ID))
	assert.Equal(t, 1, count)
}

func TestRemoveItemAdjustsTotal(t *testing.T) {
	dc := freshContext(t)
	ctx := context.Background()
	record := seedRecord(t, dc, "Windowlicker", 1800, 10)

	svc := services.NewOrderService(store.NewDataContext(testDB))
	order, items, err := svc.Checkout(ctx, "Ada", "ada@example.com", []services.OrderLine{
		{RecordID: record.ID, Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, svc.RemoveItem(ctx, order.ID, items[0].ID))

	got, gotItems, err := services.NewOrderService(store.NewDataContext(testDB)).Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalPrice)
	assert.Empty(t, gotItems)
}

func TestInvoiceNotBackedYet(t *testing.T) {
	freshContext(t)
	svc := services.NewOrderService(store.NewDataContext(testDB))
	_, err := svc.Invoice(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotImplemented)
}

func TestExpireStale(t *testing.T) {
	dc := freshContext(t)
	ctx := context.Background()
	record := seedRecord(t, dc, "Xtal", 1400, 10)

	svc := services.NewOrderService(store.NewDataContext(testDB))
	stale, _, err := svc.Checkout(ctx, "Old", "old@example.com", []services.OrderLine{
		{RecordID: record.ID, Quantity: 1},
	})
	require.NoError(t, err)
	fresh, _, err := svc.Checkout(ctx, "New", "new@example.com", []services.OrderLine{
		{RecordID: record.ID, Quantity: 1},
	})
	require.NoError(t, err)

	// Backdate one order past the cutoff.
	_, err = testDB.Exec(
		"UPDATE orders SET creation_date = creation_date - INTERVAL '2 hours' WHERE id = $1",
		stale.ID,
	)
	require.NoError(t, err)

	expired, err := services.NewOrderService(store.NewDataContext(testDB)).ExpireStale(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	reader := services.NewOrderService(store.NewDataContext(testDB))
	_, _, err = reader.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, _, err = reader.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}
