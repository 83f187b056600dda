// Package listing composes pagination, sorting, and filtering state for the
// marketplace list queries. An Inquiry is immutable: every With* call returns
// a copy, so a page of UI (or any other holder) can keep the previous value
// while a request for the next one is in flight.
package listing

import (
	"encoding/json"
	"net/url"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
)

// Direction orders list results.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// DefaultLimit is used when a caller does not specify a page size.
const DefaultLimit = 10

// ErrBadQueryString is returned when URL values cannot be parsed back into an
// Inquiry.
var ErrBadQueryString = goerrors.New("listing query string is not parseable", goerrors.CategoryBadInput).
	WithTextCode("BAD_QUERY_STRING").
	WithCode(goerrors.CodeBadRequest)

// Inquiry is the full input of a paginated list query. S is the per-domain
// search criteria struct (see the market package).
type Inquiry[S any] struct {
	Page      int       `json:"page"`
	Limit     int       `json:"limit"`
	Sort      string    `json:"sort,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	Search    S         `json:"search"`
}

// New returns an Inquiry positioned on the first page.
func New[S any](limit int, sort string) Inquiry[S] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Inquiry[S]{
		Page:      1,
		Limit:     limit,
		Sort:      sort,
		Direction: Descending,
	}
}

// WithPage returns a copy on the requested page. Pages below 1 snap to 1.
func (q Inquiry[S]) WithPage(page int) Inquiry[S] {
	if page < 1 {
		page = 1
	}
	q.Page = page
	return q
}

// WithLimit returns a copy with a new page size, resetting to the first page
// since item offsets no longer line up.
func (q Inquiry[S]) WithLimit(limit int) Inquiry[S] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q.Limit = limit
	q.Page = 1
	return q
}

// WithSort returns a copy sorted by the given field, back on the first page.
func (q Inquiry[S]) WithSort(sort string, direction Direction) Inquiry[S] {
	q.Sort = sort
	q.Direction = direction
	q.Page = 1
	return q
}

// WithSearch returns a copy with replaced search criteria, back on the first
// page.
func (q Inquiry[S]) WithSearch(search S) Inquiry[S] {
	q.Search = search
	q.Page = 1
	return q
}

// TotalPages returns the number of pages a result set of total items spans.
// A total of zero still counts as a single (empty) page.
func (q Inquiry[S]) TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// ClampPage returns a copy whose page is inside [1, TotalPages(total)].
// Out-of-range requests are not an error: the pagination control simply lands
// on the nearest valid page.
func (q Inquiry[S]) ClampPage(total int) Inquiry[S] {
	last := q.TotalPages(total)
	if q.Page > last {
		q.Page = last
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// Variables renders the inquiry as GraphQL operation variables, nested under
// the conventional "input" key.
func (q Inquiry[S]) Variables() map[string]any {
	return map[string]any{"input": q}
}

// Values serializes the inquiry into URL query values so listing state
// survives navigation and refresh. Search criteria travel as one JSON blob
// under "search".
func (q Inquiry[S]) Values() (url.Values, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Direction != "" {
		v.Set("direction", string(q.Direction))
	}

	search, err := json.Marshal(q.Search)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to serialize search criteria")
	}
	if string(search) != "{}" && string(search) != "null" {
		v.Set("search", string(search))
	}

	return v, nil
}

// Parse rebuilds an Inquiry from URL query values produced by Values. Missing
// fields fall back to first-page defaults; a page below 1 snaps to 1.
func Parse[S any](v url.Values) (Inquiry[S], error) {
	q := New[S](DefaultLimit, "")

	if raw := v.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return q, ErrBadQueryString.WithMetadata(map[string]any{"page": raw})
		}
		q = q.WithPage(page)
	}

	if raw := v.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return q, ErrBadQueryString.WithMetadata(map[string]any{"limit": raw})
		}
		page := q.Page
		q = q.WithLimit(limit)
		q.Page = page
	}

	if raw := v.Get("sort"); raw != "" {
		q.Sort = raw
	}

	if raw := v.Get("direction"); raw != "" {
		switch Direction(raw) {
		case Ascending, Descending:
			q.Direction = Direction(raw)
		default:
			return q, ErrBadQueryString.WithMetadata(map[string]any{"direction": raw})
		}
	}

	if raw := v.Get("search"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.Search); err != nil {
			return q, ErrBadQueryString.WithMetadata(map[string]any{"search": raw})
		}
	}

	return q, nil
}
