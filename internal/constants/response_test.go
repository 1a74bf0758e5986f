package constants

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func listContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/users"+query, nil)
	return c
}

func TestParseListParams_Defaults(t *testing.T) {
	params := ParseListParams(listContext(t, ""))

	if params.Page != 1 || params.Limit != 20 {
		t.Errorf("defaults = page %d limit %d, want 1/20", params.Page, params.Limit)
	}
	if params.Offset != 0 {
		t.Errorf("offset = %d, want 0", params.Offset)
	}
	if params.SortBy != "createdAt" || params.SortOrder != "desc" {
		t.Errorf("sort = %s %s", params.SortBy, params.SortOrder)
	}
}

func TestParseListParams_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"negative page", "?page=-1", 1, 20},
		{"zero limit", "?limit=0", 1, 1},
		{"oversized limit", "?limit=5000", 1, 100},
		{"garbage values", "?page=abc&limit=xyz", 1, 1},
		{"normal", "?page=3&limit=10", 3, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := ParseListParams(listContext(t, tt.query))
			if params.Page != tt.wantPage || params.Limit != tt.wantLimit {
				t.Errorf("page/limit = %d/%d, want %d/%d",
					params.Page, params.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestParseListParams_Offset(t *testing.T) {
	params := ParseListParams(listContext(t, "?page=3&limit=10"))
	if params.Offset != 20 {
		t.Errorf("offset = %d, want 20", params.Offset)
	}
}

func TestParseListParams_SortOrderWhitelist(t *testing.T) {
	params := ParseListParams(listContext(t, "?sortOrder=asc"))
	if params.SortOrder != OrderAsc {
		t.Errorf("sortOrder = %s, want asc", params.SortOrder)
	}

	params = ParseListParams(listContext(t, "?sortOrder=DROP%20TABLE"))
	if params.SortOrder != OrderDesc {
		t.Errorf("unknown order should fall back to desc, got %s", params.SortOrder)
	}
}

func TestParseListParams_Filters(t *testing.T) {
	params := ParseListParams(listContext(t, "?search=alex&status=online&sortBy=username"))
	if params.Search != "alex" || params.Status != "online" || params.SortBy != "username" {
		t.Errorf("parsed = %+v", params)
	}
}
