package domain

// Pagination bounds the per-page size accepted from callers.
type Pagination struct {
	DefaultPerPage int
	MinPerPage     int
	MaxPerPage     int
}

// DefaultPagination mirrors the limits used by the HR web client.
func DefaultPagination() Pagination {
	return Pagination{DefaultPerPage: 15, MinPerPage: 3, MaxPerPage: 100}
}

// PerPage returns the default for a non-positive request, otherwise the
// request clamped into [MinPerPage, MaxPerPage].
func (p Pagination) PerPage(requested int) int {
	if requested <= 0 {
		return p.DefaultPerPage
	}
	if requested < p.MinPerPage {
		return p.MinPerPage
	}
	if requested > p.MaxPerPage {
		return p.MaxPerPage
	}
	return requested
}

// PageNumber normalizes a 1-based page index.
func PageNumber(requested int) int {
	if requested < 1 {
		return 1
	}
	return requested
}

// Offset is the row offset for a 1-based page.
func Offset(page, perPage int) int {
	return (PageNumber(page) - 1) * perPage
}

// Page is one slice of a paginated result.
type Page[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPage computes page metadata for total rows.
func NewPage[T any](items []T, page, perPage, total int) Page[T] {
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       PageNumber(page),
		PerPage:    perPage,
		Total:      total,
		TotalPages: pages,
	}
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}
