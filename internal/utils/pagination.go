package utils

import (
	"strconv"

	"github.com/AranyaAryaman/noJIRA/internal/constants"
	"github.com/gin-gonic/gin"
)

// PaginationParams holds parsed paging query parameters.
type PaginationParams struct {
	Page     int
	PageSize int
}

// PaginationResponse is the paging envelope included in list responses.
type PaginationResponse struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// GetPaginationParams reads page/page_size from the query string,
// clamping to sane bounds. When neither parameter is present the zero
// value is returned and the listing is unpaginated.
func GetPaginationParams(c *gin.Context) PaginationParams {
	pageQuery := c.Query("page")
	sizeQuery := c.Query("page_size")
	if pageQuery == "" && sizeQuery == "" {
		return PaginationParams{}
	}

	page, err := strconv.Atoi(pageQuery)
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(sizeQuery)
	if err != nil || pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	return PaginationParams{Page: page, PageSize: pageSize}
}

// Enabled reports whether paging was requested.
func (p PaginationParams) Enabled() bool {
	return p.PageSize > 0
}

// Offset returns the row offset for the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
