package helpers

import (
	"net/http"
	"strconv"

	"eventbooking/internal/domain"
)

// ParsePagination reads page and limit from the request query string. Missing or
// invalid values fall back to page 1 and defaultLimit; limit is capped at
// domain.MaxListLimit.
func ParsePagination(r *http.Request, defaultLimit int) domain.PaginationParams {
	q := r.URL.Query()
	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v >= 1 {
		page = v
	}
	limit := defaultLimit
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v >= 1 {
		limit = min(v, domain.MaxListLimit)
	}
	return domain.PaginationParams{Page: page, PageSize: limit}
}

// ParseListQuery reads status, search and pagination for the admin list views.
func ParseListQuery(r *http.Request, defaultLimit int) domain.ListQuery {
	q := r.URL.Query()
	return domain.ListQuery{
		Status:     q.Get("status"),
		Search:     q.Get("search"),
		Pagination: ParsePagination(r, defaultLimit),
	}
}

// ParseID reads a positive integer path value.
func ParseID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
