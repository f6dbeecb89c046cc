package services

import "handyhub/backend/models"

// Page is one slice of a filtered collection plus the navigation metadata
// the list screens render.
type Page struct {
	Records   []models.Record `json:"records"`
	PageCount int             `json:"pageCount"`
	Number    int             `json:"page"`
	Total     int             `json:"total"`
}

// Paginate slices records into the requested page. Out-of-range page numbers
// are clamped, never rejected; an empty collection yields PageCount 0 so
// callers suppress pagination controls instead of rendering one empty page.
func Paginate(records []models.Record, pageSize, pageNumber int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	total := len(records)
	pageCount := (total + pageSize - 1) / pageSize

	number := pageNumber
	if number < 1 {
		number = 1
	}
	if pageCount >= 1 && number > pageCount {
		number = pageCount
	}

	start := (number - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page{
		Records:   records[start:end],
		PageCount: pageCount,
		Number:    number,
		Total:     total,
	}
}

// Ellipsis marks a gap in a page-number window.
const Ellipsis = -1

// PageWindow returns the page numbers a pager should render: always the
// first and last page, the current page with two neighbors on each side, and
// Ellipsis for any gap between runs.
func PageWindow(pageCount, current int) []int {
	if pageCount <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > pageCount {
		current = pageCount
	}

	show := func(p int) bool {
		return p == 1 || p == pageCount || (p >= current-2 && p <= current+2)
	}

	var window []int
	prev := 0
	for p := 1; p <= pageCount; p++ {
		if !show(p) {
			continue
		}
		if prev != 0 && p-prev > 1 {
			window = append(window, Ellipsis)
		}
		window = append(window, p)
		prev = p
	}
	return window
}
