package handler

import (
	"context"
	"errors"
	"math"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/internal/repository"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{25, 10, 3},
		{26, 5, 6},
		{5, 0, 0},
		{5, math.MaxInt, 1},
		{math.MaxInt64, math.MaxInt, 1},
		{math.MaxInt64, 2, math.MaxInt64/2 + 1},
	}

	for _, tt := range tests {
		if got := totalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestParsePageQuery(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantPage   int
		wantOffset int
	}{
		{"", 10, 1, 0},
		{"limit=10&page=2", 10, 2, 10},
		{"limit=0&page=0", 10, 1, 0},
		{"limit=-5&page=x", 10, 1, 0},
		{"limit=500&page=3", 500, 3, 1000},
		{"limit=" + strconv.Itoa(math.MaxInt), math.MaxInt, 1, 0},
		{"limit=" + strconv.Itoa(math.MaxInt/2+1) + "&page=3", math.MaxInt/2 + 1, 3, math.MaxInt},
		{"limit=2&page=" + strconv.Itoa(math.MaxInt), 2, math.MaxInt, math.MaxInt},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/authors?"+tt.query, nil)

		q := parsePageQuery(c)
		if q.Limit != tt.wantLimit || q.Page != tt.wantPage || q.Offset() != tt.wantOffset {
			t.Errorf("query %q: got limit=%d page=%d offset=%d", tt.query, q.Limit, q.Page, q.Offset())
		}
	}
}

func TestFetchPage_PassesParamsAndFailsOnEither(t *testing.T) {
	q := pageQuery{Limit: 5, Page: 3, Search: "x"}

	list := func(ctx context.Context, p repository.ListParams) ([]int, error) {
		if p.Limit != 5 || p.Offset != 10 || p.Search != "x" {
			t.Errorf("unexpected params %+v", p)
		}
		return []int{1, 2}, nil
	}
	count := func(ctx context.Context, search string) (int64, error) {
		return 12, nil
	}

	items, total, err := fetchPage(context.Background(), q, list, count)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || total != 12 {
		t.Errorf("got %v, %d", items, total)
	}

	failing := func(ctx context.Context, search string) (int64, error) {
		return 0, errors.New("count failed")
	}
	if _, _, err := fetchPage(context.Background(), q, list, failing); err == nil {
		t.Fatalf("expected the count failure to fail the fetch")
	}
}
