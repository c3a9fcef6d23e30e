package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestPaginationParams(t *testing.T) {
	tests := []struct {
		query      string
		wantPage   int
		wantPer    int
		wantOffset int
	}{
		{"", 1, 20, 0},
		{"page=3&per_page=10", 3, 10, 20},
		{"page=0&per_page=-5", 1, 20, 0},
		{"per_page=500", 1, 100, 0},
		{"page=abc", 1, 20, 0},
	}

	for _, tt := range tests {
		c := queryContext(t, tt.query)
		page, perPage, limit, offset := paginationParams(c)
		if page != tt.wantPage || perPage != tt.wantPer || limit != tt.wantPer || offset != tt.wantOffset {
			t.Errorf("paginationParams(%q) = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
				tt.query, page, perPage, limit, offset, tt.wantPage, tt.wantPer, tt.wantPer, tt.wantOffset)
		}
	}
}

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		total     int
		perPage   int
		wantPages int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 25, 4},
	}

	for _, tt := range tests {
		p := buildPagination(1, tt.perPage, tt.total)
		if p.TotalPages != tt.wantPages {
			t.Errorf("buildPagination(total=%d, perPage=%d).TotalPages = %d, want %d",
				tt.total, tt.perPage, p.TotalPages, tt.wantPages)
		}
		if p.TotalItems != tt.total {
			t.Errorf("TotalItems = %d, want %d", p.TotalItems, tt.total)
		}
	}
}

func TestOptionalUUIDQuery(t *testing.T) {
	c := queryContext(t, "")
	id, ok := optionalUUIDQuery(c, "class_id")
	if !ok || id != nil {
		t.Errorf("missing param: got (%v, %v), want (nil, true)", id, ok)
	}

	c = queryContext(t, "class_id=6f1c0e9a-9f0a-4f7e-8b59-2a9f51f1f001")
	id, ok = optionalUUIDQuery(c, "class_id")
	if !ok || id == nil {
		t.Fatalf("valid param: got (%v, %v), want parsed id", id, ok)
	}

	c = queryContext(t, "class_id=not-a-uuid")
	if _, ok = optionalUUIDQuery(c, "class_id"); ok {
		t.Error("malformed param: want ok=false")
	}
}

func TestOptionalDateQuery(t *testing.T) {
	c := queryContext(t, "from=2026-02-01")
	d, ok := optionalDateQuery(c, "from")
	if !ok || d == nil || d.Year() != 2026 || int(d.Month()) != 2 {
		t.Errorf("got (%v, %v), want Feb 2026", d, ok)
	}

	c = queryContext(t, "from=01/02/2026")
	if _, ok = optionalDateQuery(c, "from"); ok {
		t.Error("malformed date: want ok=false")
	}
}
