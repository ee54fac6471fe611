package dto

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"djstore/internal/domain"
	"djstore/internal/store"
)

func TestPageQueryNormalize(t *testing.T) {
	cases := []struct {
		in   PageQuery
		want PageQuery
	}{
		{PageQuery{}, PageQuery{Page: 1, Size: 20}},
		{PageQuery{Page: -3, Size: 0}, PageQuery{Page: 1, Size: 20}},
		{PageQuery{Page: 2, Size: 50}, PageQuery{Page: 2, Size: 50}},
		{PageQuery{Page: 1, Size: 500}, PageQuery{Page: 1, Size: 20}},
	}
	for _, tc := range cases {
		tc.in.Normalize()
		assert.Equal(t, tc.want, tc.in)
	}
}

func TestGenreFromDomain(t *testing.T) {
	updated := time.Now().UTC()
	g := &domain.Genre{
		Name:        "Techno",
		Description: store.NewNullString("machine funk"),
	}
	g.ID = uuid.New()
	g.CreationDate = updated.Add(-time.Hour)
	g.UpdatedDate = sql.NullTime{Time: updated, Valid: true}

	out := GenreFromDomain(g)
	require.NotNil(t, out)
	assert.Equal(t, g.ID.String(), out.ID)
	assert.Equal(t, "Techno", out.Name)
	require.NotNil(t, out.Description)
	assert.Equal(t, "machine funk", *out.Description)
	require.NotNil(t, out.UpdatedAt)
	assert.Equal(t, updated, *out.UpdatedAt)

	assert.Nil(t, GenreFromDomain(nil))

	plain := &domain.Genre{Name: "Dub"}
	out = GenreFromDomain(plain)
	assert.Nil(t, out.Description)
	assert.Nil(t, out.UpdatedAt)
}

func TestOrderFromDomain(t *testing.T) {
	o := &domain.Order{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Status:        domain.OrderStatusPending,
		TotalPrice:    2400,
	}
	o.ID = uuid.New()

	item := &domain.OrderItem{
		RecordID:  uuid.New(),
		Quantity:  2,
		UnitPrice: 1200,
	}
	item.ID = uuid.New()

	out := OrderFromDomain(o, []*domain.OrderItem{item})
	require.NotNil(t, out)
	assert.Equal(t, "PENDING", out.Status)
	assert.Equal(t, int64(2400), out.TotalPrice)
	require.Len(t, out.Items, 1)
	assert.Equal(t, item.RecordID.String(), out.Items[0].RecordID)

	assert.Nil(t, OrderFromDomain(nil, nil))
}

func TestRemapKeepsEnvelope(t *testing.T) {
	src := store.ListResult[int]{
		Content:     []int{1, 2},
		TotalCount:  7,
		TotalPages:  4,
		HasNextPage: true,
	}
	out := remap(src, []string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, out.Content)
	assert.Equal(t, int64(7), out.TotalCount)
	assert.Equal(t, int32(4), out.TotalPages)
	assert.True(t, out.HasNextPage)
}
