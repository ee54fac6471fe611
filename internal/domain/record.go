package domain

import (
	"github.com/google/uuid"

	"djstore/internal/store"
)

// Record is a catalog item. Price is in cents.
type Record struct {
	store.Deletable
	Title    store.TrimmedString `db:"title"`
	Label    store.NullString    `db:"label"`
	Year     int                 `db:"year"`
	Price    int64               `db:"price"`
	Stock    int                 `db:"stock"`
	GenreID  uuid.UUID           `db:"genre_id"`
	ArtistID uuid.UUID           `db:"artist_id"`
}

func init() {
	store.Register[Record](store.Binding{
		Table:   "records",
		Columns: []string{"title", "label", "year", "price", "stock", "genre_id", "artist_id"},
	})
}
