package shared

import "context"

// Filter represents query filter options shared by all list operations.
// Search is an advisory case-insensitive substring match over a fixed set of
// fields chosen by each repository; Filters are exact-match column filters.
type Filter struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]any
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:    1,
		Limit:   10,
		Filters: make(map[string]any),
	}
}

// Normalize clamps page and limit to sane values
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// WithFilter adds an exact-match column filter
func (f Filter) WithFilter(column string, value any) Filter {
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	f.Filters[column] = value
	return f
}

// Paginated represents one page of a list result together with the total count
type Paginated[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// Pages returns the total number of pages
func (p Paginated[T]) Pages() int {
	if p.Limit <= 0 {
		return 0
	}
	pages := int(p.Total) / p.Limit
	if int(p.Total)%p.Limit > 0 {
		pages++
	}
	return pages
}

// UnitOfWork runs a function inside a single storage transaction. Repository
// calls made with the context passed to fn join that transaction.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
