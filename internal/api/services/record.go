package services

import (
	"context"

	"github.com/google/uuid"

	"djstore/internal/domain"
	"djstore/internal/store"
)

type RecordService struct {
	dc *store.DataContext
}

func NewRecordService(dc *store.DataContext) *RecordService {
	return &RecordService{dc: dc}
}

type RecordFilter struct {
	GenreID uuid.UUID
	Search  string
}

func (s *RecordService) List(ctx context.Context, filter RecordFilter, page, size int) (store.ListResult[*domain.Record], error) {
	q := store.Data[domain.Record](s.dc).OrderBy("title")
	if filter.GenreID != uuid.Nil {
		q = q.Where("genre_id = ?", filter.GenreID)
	}
	if filter.Search != "" {
		q = q.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	return store.Paginate(ctx, q, page, size)
}

func (s *RecordService) Get(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	record, err := store.Get[domain.Record](ctx, s.dc, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

type SaveRecord struct {
	Title    string
	Label    *string
	Year     int
	Price    int64
	Stock    int
	GenreID  uuid.UUID
	ArtistID uuid.UUID
}

func (s *RecordService) Create(ctx context.Context, in SaveRecord) (*domain.Record, error) {
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, err
	}

	record := &domain.Record{
		Title:    store.TrimmedString(in.Title),
		Year:     in.Year,
		Price:    in.Price,
		Stock:    in.Stock,
		GenreID:  in.GenreID,
		ArtistID: in.ArtistID,
	}
	if in.Label != nil {
		record.Label = store.NewNullString(*in.Label)
	}

	if err := s.dc.Create(record); err != nil {
		return nil, err
	}
	if err := s.dc.Save(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RecordService) Update(ctx context.Context, id uuid.UUID, in SaveRecord) (*domain.Record, error) {
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, err
	}

	record, err := store.Data[domain.Record](s.dc, store.TrackChanges()).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}

	record.Title = store.TrimmedString(in.Title)
	record.Label = store.NullString{}
	if in.Label != nil {
		record.Label = store.NewNullString(*in.Label)
	}
	record.Year = in.Year
	record.Price = in.Price
	record.Stock = in.Stock
	record.GenreID = in.GenreID
	record.ArtistID = in.ArtistID

	if err := s.dc.Save(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RecordService) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := store.Get[domain.Record](ctx, s.dc, id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNotFound
	}
	if err := s.dc.Delete(record); err != nil {
		return err
	}
	return s.dc.Save(ctx)
}

func (s *RecordService) checkReferences(ctx context.Context, in SaveRecord) error {
	genreExists, err := store.Exists[domain.Genre](ctx, s.dc, in.GenreID)
	if err != nil {
		return err
	}
	artistExists, err := store.Exists[domain.Artist](ctx, s.dc, in.ArtistID)
	if err != nil {
		return err
	}
	if !genreExists || !artistExists {
		return ErrNotFound
	}
	return nil
}
