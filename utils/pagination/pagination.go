package pagination

import (
	"fmt"
	"math"

	"github.com/gofiber/fiber/v2"
)

type PaginationParams struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Filters  map[string]string `json:"filters"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"pagina"`
	PageSize    int   `json:"por_pagina"`
	TotalPages  int   `json:"total_paginas"`
	TotalItems  int64 `json:"total"`
}

type PaginatedResponse struct {
	Items      interface{}    `json:"propostas"`
	Pagination PaginationMeta `json:"paginacao"`
}

// ParsePaginationParams reads page/page_size from the query string. The
// legacy portal frontend sends "pagina"/"por_pagina", so both spellings are
// accepted; remaining query parameters become filters.
func ParsePaginationParams(c *fiber.Ctx) PaginationParams {
	page := c.QueryInt("page", 0)
	if page == 0 {
		page = c.QueryInt("pagina", 1)
	}
	pageSize := c.QueryInt("page_size", 0)
	if pageSize == 0 {
		pageSize = c.QueryInt("por_pagina", 10)
	}

	reserved := map[string]bool{
		"page": true, "pagina": true,
		"page_size": true, "por_pagina": true,
	}

	filters := make(map[string]string)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if !reserved[k] {
			filters[k] = string(value)
		}
	})

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Filters:  filters,
	}
}

func ValidatePaginationParams(params PaginationParams) error {
	if params.Page < 1 {
		return fmt.Errorf("page must be greater than 0")
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		return fmt.Errorf("page size must be between 1 and 100")
	}
	return nil
}

// Offset converts 1-based page numbers into a slice offset.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// NewPaginatedResponse assembles the page envelope; total pages is computed
// by ceiling division.
func NewPaginatedResponse(items interface{}, totalItems int64, params PaginationParams) PaginatedResponse {
	totalPages := int(math.Ceil(float64(totalItems) / float64(params.PageSize)))

	return PaginatedResponse{
		Items: items,
		Pagination: PaginationMeta{
			CurrentPage: params.Page,
			PageSize:    params.PageSize,
			TotalPages:  totalPages,
			TotalItems:  totalItems,
		},
	}
}
