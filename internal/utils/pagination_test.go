package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	p := ParsePaginationParams(ctxWithQuery("page=3&limit=25"), 20, 100)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset())
}

func TestParsePaginationParams_Defaults(t *testing.T) {
	p := ParsePaginationParams(ctxWithQuery(""), 20, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestParsePaginationParams_Caps(t *testing.T) {
	p := ParsePaginationParams(ctxWithQuery("page=0&limit=9999"), 20, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)
}

func TestParseSlugList(t *testing.T) {
	slugs := ParseSlugList(ctxWithQuery("tags=Bio,+Machine-Learning+,,ai"), "tags")
	assert.Equal(t, []string{"bio", "machine-learning", "ai"}, slugs)
}

func TestParseSlugList_Empty(t *testing.T) {
	assert.Nil(t, ParseSlugList(ctxWithQuery(""), "tags"))
}

func TestNewPaginationMetadata(t *testing.T) {
	meta := NewPaginationMetadata(45, 2, 20)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 45, meta.TotalItems)

	empty := NewPaginationMetadata(0, 1, 20)
	assert.Equal(t, 1, empty.TotalPages)
}
