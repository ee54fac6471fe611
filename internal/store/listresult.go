package store

import "context"

// ListResult is the envelope every paginated list endpoint returns. Field
// names serialize verbatim.
type ListResult[T any] struct {
	Content     []T   `json:"Content,omitempty"`
	TotalCount  int64 `json:"TotalCount"`
	TotalPages  int32 `json:"TotalPages"`
	HasNextPage bool  `json:"HasNextPage"`
}

// NewListResult builds the envelope for a page descriptor. page is 1-based.
func NewListResult[T any](content []T, totalCount int64, page, size int) ListResult[T] {
	totalPages := int32(0)
	if size > 0 {
		totalPages = int32((totalCount + int64(size) - 1) / int64(size))
	}
	return ListResult[T]{
		Content:     content,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasNextPage: int32(page) < totalPages,
	}
}

// Paginate materializes one page of a query: total count before pagination,
// then the page itself.
func Paginate[E any, PE interface {
	Entity
	*E
}](ctx context.Context, q *Query[E, PE], page, size int) (ListResult[PE], error) {
	if page < 1 {
		page = 1
	}

	total, err := q.Count(ctx)
	if err != nil {
		return ListResult[PE]{}, err
	}

	items, err := q.Limit(size).Offset((page - 1) * size).All(ctx)
	if err != nil {
		return ListResult[PE]{}, err
	}

	return NewListResult(items, total, page, size), nil
}
