package handler

import (
	"context"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLimit = 10
	defaultPage  = 1
)

type pageQuery struct {
	Limit  int
	Page   int
	Search string
}

// parsePageQuery reads limit, page and search. Missing, malformed or
// non-positive numbers fall back to the defaults; limit has no upper bound.
func parsePageQuery(c *gin.Context) pageQuery {
	return pageQuery{
		Limit:  parsePositiveIntQuery(c, "limit", defaultLimit),
		Page:   parsePositiveIntQuery(c, "page", defaultPage),
		Search: c.Query("search"),
	}
}

// Offset is (page-1)*limit, saturating at math.MaxInt so huge pages stay
// past the end instead of wrapping around.
func (q pageQuery) Offset() int {
	skipped := q.Page - 1
	if q.Limit > 0 && skipped > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return skipped * q.Limit
}

func (q pageQuery) listParams() repository.ListParams {
	return repository.ListParams{
		Limit:  q.Limit,
		Offset: q.Offset(),
		Search: q.Search,
	}
}

func (q pageQuery) pagination(total int64) Pagination {
	return Pagination{
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages(total, q.Limit),
	}
}

// totalPages is ceil(total/limit).
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}

func parsePositiveIntQuery(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// parseIDParam parses a path parameter as an integer id.
func parseIDParam(c *gin.Context, key string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(key), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// fetchPage loads one page and the matching total concurrently. Either
// failure fails the whole fetch.
func fetchPage[T any](
	ctx context.Context,
	q pageQuery,
	list func(context.Context, repository.ListParams) ([]T, error),
	count func(context.Context, string) (int64, error),
) ([]T, int64, error) {
	var (
		items []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = list(gctx, q.listParams())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = count(gctx, q.Search)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
