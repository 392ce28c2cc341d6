// Package pagination implements page-number pagination with a per-request
// page size override.
package pagination

import (
	"errors"
	"math"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/api"
	platformhttp "foodgram_backend/internal/platform/http"
)

const (
	// DefaultPageSize applies when no valid limit is given.
	DefaultPageSize = 10
	// MaxPageSize caps the limit query parameter.
	MaxPageSize = 100
	// maxPage keeps Offset from overflowing at any allowed limit.
	maxPage = math.MaxInt / MaxPageSize
)

// ErrInvalidPage is returned for a non-numeric page or one past the last page.
var ErrInvalidPage = errors.New("invalid page")

// Params is the requested window.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// FromRequest reads page and limit. An invalid limit falls back to the default.
func FromRequest(c *gin.Context) (Params, error) {
	p := Params{Page: 1, Limit: DefaultPageSize}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 || page > maxPage {
			return p, ErrInvalidPage
		}
		p.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			p.Limit = min(limit, MaxPageSize)
		}
	}
	return p, nil
}

// Check rejects pages past the end. The first page is always valid.
func (p Params) Check(total int64) error {
	if p.Page > 1 && int64(p.Offset()) >= total {
		return ErrInvalidPage
	}
	return nil
}

// Build wraps results with count and absolute links to neighbouring pages.
func Build[T any](c *gin.Context, p Params, total int64, results []T) api.Page[T] {
	if results == nil {
		results = []T{}
	}
	page := api.Page[T]{Count: total, Results: results}
	if int64(p.Page*p.Limit) < total {
		next := pageURL(c, p.Page+1)
		page.Next = &next
	}
	if p.Page > 1 {
		prev := pageURL(c, p.Page-1)
		page.Previous = &prev
	}
	return page
}

func pageURL(c *gin.Context, page int) string {
	q := c.Request.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u := url.URL{Path: c.Request.URL.Path, RawQuery: q.Encode()}
	return platformhttp.AbsoluteURL(c, u.RequestURI())
}
