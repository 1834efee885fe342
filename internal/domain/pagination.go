package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns ceiling(total / PageSize), or 0 when PageSize is not positive.
func (p PaginationParams) TotalPages(total int) int {
	if p.PageSize <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// ListQuery is the filter and pagination input shared by the admin list views.
// An empty Status means no status filter.
type ListQuery struct {
	Status     string
	Search     string
	Pagination PaginationParams
}

// PageInfo is the pagination metadata returned with every list.
// swagger:model PageInfo
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageInfo builds PageInfo from the pagination params and the total row count.
func NewPageInfo(p PaginationParams, total int) PageInfo {
	return PageInfo{
		Page:       p.Page,
		Limit:      p.PageSize,
		Total:      total,
		TotalPages: p.TotalPages(total),
	}
}

// Page is one page of records plus its pagination metadata.
type Page[T any] struct {
	Items      []T      `json:"items"`
	Pagination PageInfo `json:"pagination"`
}
