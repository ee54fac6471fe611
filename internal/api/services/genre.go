package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"djstore/internal/domain"
	"djstore/internal/store"
)

type GenreService struct {
	dc *store.DataContext
}

func NewGenreService(dc *store.DataContext) *GenreService {
	return &GenreService{dc: dc}
}

func (s *GenreService) List(ctx context.Context, page, size int) (store.ListResult[*domain.Genre], error) {
	q := store.Data[domain.Genre](s.dc).OrderBy("name")
	return store.Paginate(ctx, q, page, size)
}

func (s *GenreService) Get(ctx context.Context, id uuid.UUID) (*domain.Genre, error) {
	genre, err := store.Get[domain.Genre](ctx, s.dc, id)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, ErrNotFound
	}
	return genre, nil
}

func (s *GenreService) Create(ctx context.Context, name string, description *string) (*domain.Genre, error) {
	exists, err := store.ExistsWhere[domain.Genre](ctx, s.dc, "name = ?", strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	genre := &domain.Genre{Name: store.TrimmedString(name)}
	if description != nil {
		genre.Description = store.NewNullString(*description)
	}

	if err := s.dc.Create(genre); err != nil {
		return nil, err
	}
	if err := s.dc.Save(ctx); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) Update(ctx context.Context, id uuid.UUID, name string, description *string) (*domain.Genre, error) {
	genre, err := store.Data[domain.Genre](s.dc, store.TrackChanges()).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, ErrNotFound
	}

	genre.Name = store.TrimmedString(name)
	genre.Description = store.NullString{}
	if description != nil {
		genre.Description = store.NewNullString(*description)
	}

	if err := s.dc.Save(ctx); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) Delete(ctx context.Context, id uuid.UUID) error {
	genre, err := store.Get[domain.Genre](ctx, s.dc, id)
	if err != nil {
		return err
	}
	if genre == nil {
		return ErrNotFound
	}
	if err := s.dc.Delete(genre); err != nil {
		return err
	}
	return s.dc.Save(ctx)
}
