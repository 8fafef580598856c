package usecase

import "net/http"

const maxLimit = 100

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

func newPagination(page, limit int, total int64) Pagination {
	pages := totalPages(total, limit)
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    page < pages,
		HasPrev:    page > 1,
	}
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func validatePage(page, limit int) error {
	if page < 1 {
		return NewHTTPError(http.StatusBadRequest, "Page must be greater than 0")
	}
	if limit < 1 || limit > maxLimit {
		return NewHTTPError(http.StatusBadRequest, "Limit must be between 1 and 100")
	}
	return nil
}
