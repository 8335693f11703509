package pagination

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gorm.io/gorm"
)

// CountUnknown is the sentinel returned instead of the real number of rows
// when the client did not ask for an exact count. It only has to satisfy
// "is there more data" math, so the maximum representable integer works.
const CountUnknown int64 = math.MaxInt64

// Causes for an InvalidPageError.
var (
	errPageNotAnInteger = errors.New("that page number is not an integer")
	errPageLessThanOne  = errors.New("that page number is less than 1")
	errPageEmpty        = errors.New("that page contains no results")
)

// InvalidPageError is returned when a page cannot be served. It carries the
// page value the client requested so that error responses can name it.
type InvalidPageError struct {
	Page string
	Err  error
}

func (e *InvalidPageError) Error() string {
	return fmt.Sprintf("invalid page (%s): %s", e.Page, e.Err)
}

func (e *InvalidPageError) Unwrap() error {
	return e.Err
}

// Paginator slices a gorm query into pages without counting its rows.
//
// A total row count is needed to decide whether a next page exists, and on
// large tables the SELECT COUNT for it is by far the most expensive part of
// a list request. The paginator therefore substitutes CountUnknown unless
// the client asked for an exact count, and only then delegates to the
// database.
type Paginator[T any] struct {
	query     *gorm.DB
	pageSize  int
	showCount bool

	count   int64
	counted bool
}

func NewPaginator[T any](query *gorm.DB, pageSize int, showCount bool) *Paginator[T] {
	return &Paginator[T]{
		query:     query,
		pageSize:  pageSize,
		showCount: showCount,
	}
}

// Count returns the total number of rows matching the query.
//
// Without an exact count requested, this is CountUnknown and the database is
// not touched. With one, the count query runs at most once and later calls
// are served from the first result.
func (p *Paginator[T]) Count() (int64, error) {
	if !p.showCount {
		return CountUnknown, nil
	}

	if p.counted {
		return p.count, nil
	}

	var count int64
	err := p.query.Session(&gorm.Session{}).Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		return 0, err
	}

	p.count = count
	p.counted = true

	return count, nil
}

// NumPages returns the total number of pages.
func (p *Paginator[T]) NumPages() (int64, error) {
	count, err := p.Count()
	if err != nil {
		return 0, err
	}

	// Not the usual ceiling division: adding pageSize-1 to the sentinel
	// count would overflow. Rounding down is harmless there, the result
	// stays astronomically large.
	pages := count / int64(p.pageSize)
	if count != CountUnknown && count%int64(p.pageSize) != 0 {
		pages++
	}

	if pages == 0 {
		pages = 1
	}

	return pages, nil
}

// Page resolves a single page.
//
// A request for a page past the end of the data cannot be rejected up front
// when the count is faked, so it is detected after the slice: a page without
// any rows is only valid as page 1.
func (p *Paginator[T]) Page(number int64) (*Page[T], error) {
	if number < 1 {
		return nil, &InvalidPageError{Page: strconv.FormatInt(number, 10), Err: errPageLessThanOne}
	}

	numPages, err := p.NumPages()
	if err != nil {
		return nil, err
	}

	if number > numPages {
		return nil, &InvalidPageError{Page: strconv.FormatInt(number, 10), Err: errPageEmpty}
	}

	offset := (number - 1) * int64(p.pageSize)

	var items []T
	err = p.query.Session(&gorm.Session{}).Offset(int(offset)).Limit(p.pageSize).Find(&items).Error
	if err != nil {
		return nil, err
	}

	if len(items) == 0 && number > 1 {
		return nil, &InvalidPageError{Page: strconv.FormatInt(number, 10), Err: errPageEmpty}
	}

	return &Page[T]{
		Number:    number,
		Items:     items,
		paginator: p,
		// A short page is the end of the real data, no matter what the
		// sentinel count suggests.
		last: len(items) < p.pageSize,
	}, nil
}

// Page is a single resolved page.
type Page[T any] struct {
	Number int64
	Items  []T

	paginator *Paginator[T]
	last      bool
}

// HasNext reports whether a page after this one exists. With a sentinel
// count this is an upper bound that the last flag corrects.
func (pg *Page[T]) HasNext() bool {
	if pg.last {
		return false
	}

	numPages, err := pg.paginator.NumPages()
	if err != nil {
		return false
	}

	return pg.Number < numPages
}

func (pg *Page[T]) HasPrevious() bool {
	return pg.Number > 1
}
