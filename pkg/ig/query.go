package ig

import (
	"net/url"
	"strings"
)

// QueryParams accumulates the query items a Build stage percent-encodes
// onto a request URL. Fields are ordinary Go values rather than
// pre-encoded strings; ToValues performs the encoding-relevant
// transformations (CSV joins for multi-value fields) in one place.
//
// Grounded on the teacher's capi.QueryParams builder: WithCSVFilter sets
// a key's single joined value (last write wins), WithFilter accumulates
// values under a key.
type QueryParams struct {
	Filters map[string][]string
}

// NewQueryParams returns a QueryParams with initialized (non-nil) maps,
// so callers can always range over Filters without a nil check.
func NewQueryParams() *QueryParams {
	return &QueryParams{Filters: make(map[string][]string)}
}

// WithFilter appends value to key's filter list and returns q for
// chaining.
func (q *QueryParams) WithFilter(key, value string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[key] = append(q.Filters[key], value)

	return q
}

// WithCSVFilter sets key's value to the comma-joined values, replacing
// any previous value for key. Used for epics=csv and marketIds=csv.
func (q *QueryParams) WithCSVFilter(key string, values []string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[key] = []string{strings.Join(values, ",")}

	return q
}

// ToValues renders q into url.Values; url.Values.Encode() performs the
// percent-encoding of each value per URL component rules.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	for key, list := range q.Filters {
		for _, v := range list {
			values.Add(key, v)
		}
	}

	return values
}
