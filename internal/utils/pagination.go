package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-report-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse is the pagination metadata handed to list screens.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// HasPrev reports whether a previous page exists.
func (p PaginationResponse) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p PaginationResponse) HasNext() bool { return p.Page < p.TotalPages }

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	offset := (page - 1) * limit

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}

// NewPaginationResponse builds the metadata for a page of a result set.
func NewPaginationResponse(params PaginationParams, total int64) PaginationResponse {
	resp := PaginationResponse{
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
	}
	if params.Limit > 0 {
		resp.TotalPages = int((total + int64(params.Limit) - 1) / int64(params.Limit))
	}
	return resp
}
