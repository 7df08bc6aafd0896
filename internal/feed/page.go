package feed

import (
	"strconv"
	"strings"
)

// Page is a 1-based page number paired with the resource's fixed size.
type Page struct {
	Number int
	Limit  int
}

// ParsePage never fails: anything that is not a positive integer becomes page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// NewPage clamps number to at least 1.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = 1
	}
	if limit < 1 {
		limit = 1
	}
	return Page{Number: number, Limit: limit}
}

// Offset is (page-1)*limit.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// Envelope is the uniform paginated response shape.
type Envelope[T any] struct {
	Items  []T  `json:"items"`
	Limit  int  `json:"limit"`
	Offset int  `json:"offset"`
	Last   bool `json:"last"`
}

// Paginate wraps a fetched slice. A short page, and an empty one, is last.
func Paginate[T any](page Page, items []T) Envelope[T] {
	if items == nil {
		items = []T{}
	}
	if len(items) > page.Limit {
		items = items[:page.Limit]
	}
	return Envelope[T]{
		Items:  items,
		Limit:  page.Limit,
		Offset: page.Offset(),
		Last:   len(items) == 0 || len(items) < page.Limit,
	}
}

// Empty is the terminal envelope for a page that cannot have results.
func Empty[T any](page Page) Envelope[T] {
	return Paginate[T](page, nil)
}
