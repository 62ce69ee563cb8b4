package dto

// Paginated is the list envelope returned by every paginated read.
type Paginated[T any] struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	Items      []T `json:"items"`
}

func NewPaginated[T any](items []T, total int, params QueryParams) Paginated[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 1
	if total > 0 && params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	return Paginated[T]{
		Total:      total,
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalPages: totalPages,
		Items:      items,
	}
}
