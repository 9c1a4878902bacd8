// Package pagination slices ordered listings into fixed-size pages.
//
// Out-of-range page numbers are clamped: anything below 1 yields the first
// page, anything past the end yields the last page. Absent or non-numeric
// page numbers yield the first page. An empty listing has one empty page.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 10

// Page is one page of an ordered listing.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	TotalPages  int  `json:"total_pages"`
	Total       int  `json:"total"`
	PageSize    int  `json:"page_size"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Window describes which slice of a listing a page covers.
type Window struct {
	Number     int
	TotalPages int
	Offset     int
	Limit      int
}

// ParseNumber reads a requested page number; absent or malformed input is page 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// NewWindow computes the clamped page window for total items.
func NewWindow(total, pageSize, requested int) Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	pages := (total + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}
	n := requested
	if n < 1 {
		n = 1
	}
	if n > pages {
		n = pages
	}
	offset := (n - 1) * pageSize
	limit := pageSize
	if rest := total - offset; rest < limit {
		limit = max(rest, 0)
	}
	return Window{Number: n, TotalPages: pages, Offset: offset, Limit: limit}
}

// Build wraps the items of an already-windowed page.
func Build[T any](items []T, w Window, total, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Number:      w.Number,
		TotalPages:  w.TotalPages,
		Total:       total,
		PageSize:    pageSize,
		HasNext:     w.Number < w.TotalPages,
		HasPrevious: w.Number > 1,
	}
}

// Paginate returns the requested page of items.
func Paginate[T any](items []T, pageSize int, requested string) Page[T] {
	return PaginateNumber(items, pageSize, ParseNumber(requested))
}

// PaginateNumber is Paginate with an already parsed page number.
func PaginateNumber[T any](items []T, pageSize, requested int) Page[T] {
	w := NewWindow(len(items), pageSize, requested)
	out := make([]T, w.Limit)
	copy(out, items[w.Offset:w.Offset+w.Limit])
	return Build(out, w, len(items), pageSize)
}

// Map converts the items of a page, keeping its position.
func Map[T, U any](p Page[T], f func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, it := range p.Items {
		items[i] = f(it)
	}
	return Page[U]{
		Items:       items,
		Number:      p.Number,
		TotalPages:  p.TotalPages,
		Total:       p.Total,
		PageSize:    p.PageSize,
		HasNext:     p.HasNext,
		HasPrevious: p.HasPrevious,
	}
}
