package domain

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is the pagination of a trade listing. Numbers start from 1.
type Page struct {
	Number int
	Size   int
}

// NewPage returns a page falling back to the first one of default size, and
// caps the size to MaxPageSize.
func NewPage(pageNumber, pageSize int) Page {
	pNumber := 1
	if pageNumber > 0 {
		pNumber = pageNumber
	}

	pSize := DefaultPageSize
	if pageSize > 0 {
		pSize = pageSize
	}
	if pSize > MaxPageSize {
		pSize = MaxPageSize
	}

	return Page{
		Number: pNumber,
		Size:   pSize,
	}
}

// Offset returns the number of items to skip, saturating at math.MaxInt
// for page numbers too large to be reached.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// Slice returns the window of [0, total) covered by the page.
func (p Page) Slice(total int) (start, end int) {
	start = p.Offset()
	if start > total {
		start = total
	}
	end = start + p.Size
	if end > total {
		end = total
	}
	return
}
