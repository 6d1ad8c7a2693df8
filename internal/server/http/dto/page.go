package dto

import "github.com/polkiloo/campusfood/internal/domain/model"

// PageResponse wraps a listing window.
type PageResponse[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// NewPageResponse maps a paginated listing with convert.
func NewPageResponse[S, T any](p model.Paginated[S], convert func(S) T) PageResponse[T] {
	items := make([]T, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, convert(item))
	}
	return PageResponse[T]{Items: items, CurrentPage: p.Page, TotalPages: p.TotalPages, Total: p.Total}
}
