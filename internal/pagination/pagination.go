// Package pagination provides the Page and Pageable value objects shared
// by every paged store operation.
package pagination

import "github.com/puscasale/MAP-SocialNetwork/internal/apperror"

// Pageable identifies one page of a result set. Page numbers start at 0.
type Pageable struct {
	Size   int `json:"size"`
	Number int `json:"number"`
}

// NewPageable builds a Pageable, enforcing size >= 1 and number >= 0.
func NewPageable(size, number int) (Pageable, error) {
	if size < 1 {
		return Pageable{}, apperror.ValidationFailed("size", "page size must be at least 1")
	}
	if number < 0 {
		return Pageable{}, apperror.ValidationFailed("number", "page number must not be negative")
	}
	return Pageable{Size: size, Number: number}, nil
}

// Offset returns the index of the first element on the page.
func (p Pageable) Offset() int {
	return p.Size * p.Number
}

// LastPageIndex returns the highest valid page number for total elements,
// ceil(total/size)-1. It returns 0 for an empty set, so there is always a
// fetchable (possibly empty) first page. Consumers asking for a page past
// the end are expected to clamp to this index and re-fetch; the stores
// never clamp on their behalf.
func (p Pageable) LastPageIndex(total int) int {
	if total <= p.Size {
		return 0
	}
	return (total+p.Size-1)/p.Size - 1
}

// Page carries the elements of one page together with the total element
// count of the whole filtered set, so consumers can compute page counts.
type Page[E any] struct {
	Items []E `json:"items"`
	Total int `json:"total"`
}

// Paginate slices items according to p. Out-of-range pages yield an empty
// page that still reports the full total.
func Paginate[E any](items []E, p Pageable) Page[E] {
	total := len(items)
	start := p.Offset()
	if start >= total {
		return Page[E]{Items: []E{}, Total: total}
	}
	end := start + p.Size
	if end > total {
		end = total
	}
	out := make([]E, end-start)
	copy(out, items[start:end])
	return Page[E]{Items: out, Total: total}
}
