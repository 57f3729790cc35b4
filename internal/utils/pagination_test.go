package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/manage_tasks/?"+query, nil)
	return c
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"page=3&limit=10", PaginationParams{Page: 3, Limit: 10, Offset: 20}},
		{"page=-1&limit=1000", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"page=abc", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPaginationParams(paginationContext(tt.query)))
		})
	}
}

func TestNewPaginationResponse(t *testing.T) {
	resp := NewPaginationResponse(PaginationParams{Page: 2, Limit: 10, Offset: 10}, 25)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasPrev())
	assert.True(t, resp.HasNext())

	resp = NewPaginationResponse(PaginationParams{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, resp.TotalPages)
	assert.False(t, resp.HasPrev())
	assert.False(t, resp.HasNext())
}
