// file: internal/response/pagination.go
package response

import (
	"net/http"
	"strconv"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// ParsePagination reads the page and limit query parameters with defaults
// and caps. Malformed or out-of-range values fall back to the defaults.
func ParsePagination(r *http.Request) (page, pageSize int) {
	page = defaultPage
	pageSize = defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			pageSize = v
			if pageSize > maxPageSize {
				pageSize = maxPageSize
			}
		}
	}
	return page, pageSize
}
