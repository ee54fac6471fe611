package dto

import (
	"time"

	"djstore/internal/domain"
	"djstore/internal/store"
)

type Artist struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Country   *string    `json:"country,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type SaveArtistRequest struct {
	Name    string  `json:"name" validate:"required,max=150"`
	Country *string `json:"country,omitempty" validate:"omitempty,max=100"`
}

func ArtistFromDomain(a *domain.Artist) *Artist {
	if a == nil {
		return nil
	}
	return &Artist{
		ID:        a.ID.String(),
		Name:      a.Name.String(),
		Country:   stringPtr(a.Country),
		CreatedAt: a.CreationDate,
		UpdatedAt: timePtr(a.UpdatedDate),
	}
}

func ArtistsFromDomain(artists []*domain.Artist) []*Artist {
	result := make([]*Artist, 0, len(artists))
	for _, a := range artists {
		result = append(result, ArtistFromDomain(a))
	}
	return result
}

func ArtistListFromDomain(list store.ListResult[*domain.Artist]) store.ListResult[*Artist] {
	return remap(list, ArtistsFromDomain(list.Content))
}
