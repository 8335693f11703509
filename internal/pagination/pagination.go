// Package pagination implements page number pagination that does not count
// the rows of the paginated query.
//
// Clients that need the real total opt in per request with show_count=true
// and pay for the count query.
package pagination

import (
	"strconv"
	"strings"

	"github.com/Ubiwhere/fast-pagination/internal/config"
	"github.com/Ubiwhere/fast-pagination/internal/httputil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// PageQueryParam is the query parameter selecting the page to return.
	PageQueryParam = "page"

	// ShowCountQueryParam opts a request into an exact, expensive count.
	ShowCountQueryParam = "show_count"
)

// ShowCount reports whether the request opted into an exact count. Only the
// literal value "true" enables it, in any casing.
func ShowCount(c *gin.Context) bool {
	return strings.ToLower(c.Query(ShowCountQueryParam)) == "true"
}

// Options is the pagination configuration. It is derived from the loaded
// settings once at startup and does not change between requests.
type Options struct {
	PageSize           int
	PageSizeQueryParam string
	MaxPageSize        int
	ExampleURL         string
}

func OptionsFromSettings(settings config.Settings) Options {
	return Options{
		PageSize:           settings.PageSize,
		PageSizeQueryParam: settings.PageSizeQueryParam,
		MaxPageSize:        settings.MaxPageSize,
		ExampleURL:         settings.ExampleURL,
	}
}

// EffectivePageSize returns the page size for a request, honoring the page
// size query parameter up to MaxPageSize. A size of 0 disables pagination.
func (o Options) EffectivePageSize(c *gin.Context) int {
	size := o.PageSize

	if o.PageSizeQueryParam != "" {
		if raw := c.Query(o.PageSizeQueryParam); raw != "" {
			requested, err := strconv.Atoi(raw)
			// Unparseable and non-positive values fall back to the default
			if err == nil && requested > 0 {
				size = requested
			}
		}
	}

	if o.MaxPageSize > 0 && size > o.MaxPageSize {
		size = o.MaxPageSize
	}

	return size
}

// Paginate resolves the page a request asks for.
//
// It returns a nil page when pagination is disabled, the caller then serves
// the results unpaginated.
func Paginate[T any](c *gin.Context, opts Options, query *gorm.DB) (*Page[T], error) {
	size := opts.EffectivePageSize(c)
	if size == 0 {
		return nil, nil
	}

	paginator := NewPaginator[T](query, size, ShowCount(c))

	raw := c.DefaultQuery(PageQueryParam, "1")
	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &InvalidPageError{Page: raw, Err: errPageNotAnInteger}
	}

	return paginator.Page(number)
}

// Paginated is the envelope around a page of results.
type Paginated[T any] struct {
	Count       *int64  `json:"count,omitempty" example:"827"`                                 // Total number of matching rows, only present with show_count=true
	CurrentPage int64   `json:"current_page" example:"2"`                                      // Number of this page
	Next        *string `json:"next" example:"https://example.com/api/v1/readings?page=3"`     // URL of the next page, null on the last page
	Previous    *string `json:"previous" example:"https://example.com/api/v1/readings?page=1"` // URL of the previous page, null on the first page
	Results     []T     `json:"results"`                                                       // The items of this page
}

// Envelope wraps the serialized results of a page into the response
// envelope.
func Envelope[T, R any](c *gin.Context, page *Page[T], results []R) (Paginated[R], error) {
	if results == nil {
		results = make([]R, 0)
	}

	envelope := Paginated[R]{
		CurrentPage: page.Number,
		Results:     results,
	}

	if ShowCount(c) {
		count, err := page.paginator.Count()
		if err != nil {
			return Paginated[R]{}, err
		}
		envelope.Count = &count
	}

	if page.HasNext() {
		next := pageLink(c, page.Number+1)
		envelope.Next = &next
	}

	if page.HasPrevious() {
		previous := pageLink(c, page.Number-1)
		envelope.Previous = &previous
	}

	return envelope, nil
}

// pageLink builds the link to another page by replacing the page parameter
// of the current request.
func pageLink(c *gin.Context, number int64) string {
	query := c.Request.URL.Query()
	query.Set(PageQueryParam, strconv.FormatInt(number, 10))

	return httputil.RequestURL(c) + "?" + query.Encode()
}
