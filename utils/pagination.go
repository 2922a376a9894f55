package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultPageSize is used when the client sends no limit
	DefaultPageSize = 10
	// MaxPageSize caps the limit a client can request
	MaxPageSize = 100
)

// Pagination holds the parsed page/limit query parameters
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads ?page= and ?limit= from the request, falling back to
// sane defaults and clamping out-of-range values instead of erroring.
func ParsePagination(c *gin.Context) Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if err != nil || limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	return Pagination{Page: page, Limit: limit}
}

// Offset returns the row offset for the current page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta builds the pagination block returned alongside list responses
func (p Pagination) Meta(total int64) gin.H {
	totalPages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		totalPages++
	}

	return gin.H{
		"page":       p.Page,
		"limit":      p.Limit,
		"total":      total,
		"totalPages": totalPages,
	}
}
