package dto

import (
	"time"

	"djstore/internal/domain"
	"djstore/internal/store"
)

type Genre struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type SaveGenreRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

func GenreFromDomain(g *domain.Genre) *Genre {
	if g == nil {
		return nil
	}
	return &Genre{
		ID:          g.ID.String(),
		Name:        g.Name.String(),
		Description: stringPtr(g.Description),
		CreatedAt:   g.CreationDate,
		UpdatedAt:   timePtr(g.UpdatedDate),
	}
}

func GenresFromDomain(genres []*domain.Genre) []*Genre {
	result := make([]*Genre, 0, len(genres))
	for _, g := range genres {
		result = append(result, GenreFromDomain(g))
	}
	return result
}

func GenreListFromDomain(list store.ListResult[*domain.Genre]) store.ListResult[*Genre] {
	return remap(list, GenresFromDomain(list.Content))
}
