package pagination

import "strconv"

// PageSize is the number of rows shown per page in the admin listings.
const PageSize = 6

// Page describes one page of a listing.
type Page struct {
	Current    int
	TotalPages int
	// Pages lists every page number, 1..TotalPages.
	Pages []int
	Start int
	End   int
}

// Paginate computes the page requested by raw (a query parameter) over total items. An
// unparsable request selects the first page; out of range requests are clamped.
func Paginate(total, pageSize int, raw string) Page {
	if pageSize < 1 {
		pageSize = PageSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	current, err := strconv.Atoi(raw)
	if err != nil || current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	pages := make([]int, totalPages)
	for i := range pages {
		pages[i] = i + 1
	}

	start := (current - 1) * pageSize
	end := min(start+pageSize, total)

	return Page{
		Current:    current,
		TotalPages: totalPages,
		Pages:      pages,
		Start:      start,
		End:        end,
	}
}

// Slice returns the items that fall on page p.
func Slice[T any](items []T, p Page) []T {
	if p.Start >= len(items) {
		return []T{}
	}
	return items[p.Start:min(p.End, len(items))]
}
