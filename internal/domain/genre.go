package domain

import "djstore/internal/store"

type Genre struct {
	store.Deletable
	Name        store.TrimmedString `db:"name"`
	Description store.NullString    `db:"description"`
}

func init() {
	store.Register[Genre](store.Binding{
		Table:   "genres",
		Columns: []string{"name", "description"},
	})
}
