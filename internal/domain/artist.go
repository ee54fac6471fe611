package domain

import "djstore/internal/store"

type Artist struct {
	store.Deletable
	Name    store.TrimmedString `db:"name"`
	Country store.NullString    `db:"country"`
}

func init() {
	store.Register[Artist](store.Binding{
		Table:   "artists",
		Columns: []string{"name", "country"},
	})
}
