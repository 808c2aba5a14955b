package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginatedResponseCeilingDivision(t *testing.T) {
	params := PaginationParams{Page: 2, PageSize: 10}
	resp := NewPaginatedResponse([]string{"a"}, 25, params)

	assert.Equal(t, 2, resp.Pagination.CurrentPage)
	assert.Equal(t, 10, resp.Pagination.PageSize)
	assert.Equal(t, int64(25), resp.Pagination.TotalItems)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestNewPaginatedResponseExactDivision(t *testing.T) {
	resp := NewPaginatedResponse(nil, 30, PaginationParams{Page: 1, PageSize: 10})
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestNewPaginatedResponseUnevenDivision(t *testing.T) {
	resp := NewPaginatedResponse(nil, 7, PaginationParams{Page: 1, PageSize: 3})
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestNewPaginatedResponseEmpty(t *testing.T) {
	resp := NewPaginatedResponse(nil, 0, PaginationParams{Page: 1, PageSize: 10})
	assert.Equal(t, 0, resp.Pagination.TotalPages)
	assert.Equal(t, int64(0), resp.Pagination.TotalItems)
}

func TestValidatePaginationParams(t *testing.T) {
	require.NoError(t, ValidatePaginationParams(PaginationParams{Page: 1, PageSize: 1}))
	require.NoError(t, ValidatePaginationParams(PaginationParams{Page: 3, PageSize: 100}))

	assert.Error(t, ValidatePaginationParams(PaginationParams{Page: 0, PageSize: 10}))
	assert.Error(t, ValidatePaginationParams(PaginationParams{Page: 1, PageSize: 0}))
	assert.Error(t, ValidatePaginationParams(PaginationParams{Page: 1, PageSize: 101}))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 10, PaginationParams{Page: 2, PageSize: 10}.Offset())
	assert.Equal(t, 6, PaginationParams{Page: 3, PageSize: 3}.Offset())
}
