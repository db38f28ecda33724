package backend

import (
	"net/http"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// page is the wire shape of one page of a listing.
type page[T any] struct {
	Content       []T  `json:"content"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Last          bool `json:"last"`
}

// parsePage reads "page" and "size" query parameters. Missing or invalid
// values fall back to defaults (page=0, size=defaultPageSize); size is
// capped at maxPageSize.
func parsePage(r *http.Request) (pageNum, size int) {
	q := r.URL.Query()

	size = defaultPageSize
	if v := q.Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	pageNum = 0
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageNum = n
		}
	}
	return pageNum, size
}

// paginate slices items into the requested page. A page beyond the end
// is empty, not an error.
func paginate[T any](items []T, pageNum, size int) page[T] {
	total := len(items)
	start := pageNum * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	totalPages := (total + size - 1) / size
	return page[T]{
		Content:       items[start:end],
		Number:        pageNum,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          end >= total,
	}
}
