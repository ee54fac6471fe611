package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"djstore/internal/domain"
	"djstore/internal/store"
)

type ArtistService struct {
	dc *store.DataContext
}

func NewArtistService(dc *store.DataContext) *ArtistService {
	return &ArtistService{dc: dc}
}

func (s *ArtistService) List(ctx context.Context, page, size int) (store.ListResult[*domain.Artist], error) {
	q := store.Data[domain.Artist](s.dc).OrderBy("name")
	return store.Paginate(ctx, q, page, size)
}

func (s *ArtistService) Get(ctx context.Context, id uuid.UUID) (*domain.Artist, error) {
	artist, err := store.Get[domain.Artist](ctx, s.dc, id)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, ErrNotFound
	}
	return artist, nil
}

func (s *ArtistService) Create(ctx context.Context, name string, country *string) (*domain.Artist, error) {
	exists, err := store.ExistsWhere[domain.Artist](ctx, s.dc, "name = ?", strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	artist := &domain.Artist{Name: store.TrimmedString(name)}
	if country != nil {
		artist.Country = store.NewNullString(*country)
	}

	if err := s.dc.Create(artist); err != nil {
		return nil, err
	}
	if err := s.dc.Save(ctx); err != nil {
		return nil, err
	}
	return artist, nil
}

func (s *ArtistService) Update(ctx context.Context, id uuid.UUID, name string, country *string) (*domain.Artist, error) {
	artist, err := store.Data[domain.Artist](s.dc, store.TrackChanges()).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, ErrNotFound
	}

	artist.Name = store.TrimmedString(name)
	artist.Country = store.NullString{}
	if country != nil {
		artist.Country = store.NewNullString(*country)
	}

	if err := s.dc.Save(ctx); err != nil {
		return nil, err
	}
	return artist, nil
}

func (s *ArtistService) Delete(ctx context.Context, id uuid.UUID) error {
	artist, err := store.Get[domain.Artist](ctx, s.dc, id)
	if err != nil {
		return err
	}
	if artist == nil {
		return ErrNotFound
	}
	if err := s.dc.Delete(artist); err != nil {
		return err
	}
	return s.dc.Save(ctx)
}
