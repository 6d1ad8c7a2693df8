package model

import "math"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page selects a window of a listing. Numbers start at 1.
type Page struct {
	Number int
	Limit  int
}

// NewPage normalizes user supplied paging values.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Number: number, Limit: limit}
}

// Offset returns the number of rows to skip.
// It saturates at math.MaxInt so huge page numbers yield an empty window.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}

// Paginated is a listing window with totals.
type Paginated[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	Total      int
}

// NewPaginated computes page totals for a listing window.
func NewPaginated[T any](items []T, page Page, total int) Paginated[T] {
	pages := 0
	if page.Limit > 0 {
		pages = (total + page.Limit - 1) / page.Limit
	}
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{Items: items, Page: page.Number, TotalPages: pages, Total: total}
}
