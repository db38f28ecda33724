package backend

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"defaults", "", 0, defaultPageSize},
		{"custom size", "size=50", 0, 50},
		{"custom page", "page=3", 3, defaultPageSize},
		{"both", "page=2&size=10", 2, 10},
		{"size exceeds max", "size=500", 0, maxPageSize},
		{"negative page uses zero", "page=-1", 0, defaultPageSize},
		{"zero size uses default", "size=0", 0, defaultPageSize},
		{"non-numeric", "page=abc&size=xyz", 0, defaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := "/test"
			if tt.query != "" {
				url += "?" + tt.query
			}
			r := httptest.NewRequest("GET", url, nil)
			pageNum, size := parsePage(r)
			assert.Equal(t, tt.wantPage, pageNum, "page")
			assert.Equal(t, tt.wantSize, size, "size")
		})
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	first := paginate(items, 0, 10)
	assert.Len(t, first.Content, 10)
	assert.Equal(t, 25, first.TotalElements)
	assert.Equal(t, 3, first.TotalPages)
	assert.False(t, first.Last)

	last := paginate(items, 2, 10)
	assert.Len(t, last.Content, 5)
	assert.True(t, last.Last)

	beyond := paginate(items, 9, 10)
	assert.Empty(t, beyond.Content)
	assert.True(t, beyond.Last)

	empty := paginate([]int{}, 0, 10)
	assert.Empty(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
	assert.True(t, empty.Last)
}
