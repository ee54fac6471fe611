package dto

import (
	"database/sql"
	"time"

	"djstore/internal/store"
)

type PageQuery struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

func (p *PageQuery) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 || p.Size > 100 {
		p.Size = 20
	}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func stringPtr(s store.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// remap carries the pagination envelope over to a mapped content slice.
func remap[D, S any](result store.ListResult[S], content []D) store.ListResult[D] {
	return store.ListResult[D]{
		Content:     content,
		TotalCount:  result.TotalCount,
		TotalPages:  result.TotalPages,
		HasNextPage: result.HasNextPage,
	}
}
