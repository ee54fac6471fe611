package dto

import (
	"time"

	"djstore/internal/domain"
	"djstore/internal/store"
)

type Record struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Label     *string    `json:"label,omitempty"`
	Year      int        `json:"year"`
	Price     int64      `json:"price"`
	Stock     int        `json:"stock"`
	GenreID   string     `json:"genreId"`
	ArtistID  string     `json:"artistId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type SaveRecordRequest struct {
	Title    string  `json:"title" validate:"required,max=200"`
	Label    *string `json:"label,omitempty" validate:"omitempty,max=150"`
	Year     int     `json:"year" validate:"required,gte=1900,lte=2100"`
	Price    int64   `json:"price" validate:"required,gt=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	GenreID  string  `json:"genreId" validate:"required,uuid4"`
	ArtistID string  `json:"artistId" validate:"required,uuid4"`
}

type RecordQuery struct {
	PageQuery
	GenreID string `query:"genre_id"`
	Search  string `query:"search"`
}

func RecordFromDomain(r *domain.Record) *Record {
	if r == nil {
		return nil
	}
	return &Record{
		ID:        r.ID.String(),
		Title:     r.Title.String(),
		Label:     stringPtr(r.Label),
		Year:      r.Year,
		Price:     r.Price,
		Stock:     r.Stock,
		GenreID:   r.GenreID.String(),
		ArtistID:  r.ArtistID.String(),
		CreatedAt: r.CreationDate,
		UpdatedAt: timePtr(r.UpdatedDate),
	}
}

func RecordsFromDomain(records []*domain.Record) []*Record {
	result := make([]*Record, 0, len(records))
	for _, r := range records {
		result = append(result, RecordFromDomain(r))
	}
	return result
}

func RecordListFromDomain(list store.ListResult[*domain.Record]) store.ListResult[*Record] {
	return remap(list, RecordsFromDomain(list.Content))
}
