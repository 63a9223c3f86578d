package models

// PageSlice is the half-open index range [From, To) of one page.
type PageSlice struct {
	From       int
	To         int
	TotalPages int
}

// Len is the number of items on the page.
func (p PageSlice) Len() int {
	return p.To - p.From
}

// ResolvePage maps a zero-based page of the given size onto total items.
//
// An empty collection has exactly one (empty) page, so page 0 is valid when
// total is 0. Any other page must satisfy 0 <= page < TotalPages.
func ResolvePage(page, size, total int) (PageSlice, error) {
	if size <= 0 {
		return PageSlice{}, ErrInvalidPageSize
	}
	if total <= 0 {
		if page != 0 {
			return PageSlice{}, ErrOutOfRangePage
		}
		return PageSlice{TotalPages: 1}, nil
	}

	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}
	if page < 0 || page >= totalPages {
		return PageSlice{}, ErrOutOfRangePage
	}

	from := page * size
	to := from + min(size, total-from)
	return PageSlice{From: from, To: to, TotalPages: totalPages}, nil
}
