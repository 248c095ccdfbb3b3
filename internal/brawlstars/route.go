package brawlstars

import (
	"net/url"
	"strings"
)

// Route is an immutable request target: base URL, path and query.
type Route struct {
	base  string
	path  string
	query url.Values
}

// NewRoute builds a route. An empty base falls back to DefaultBaseURL and a
// path without a leading slash gets one.
func NewRoute(base, path string, query url.Values) Route {
	if base == "" {
		base = DefaultBaseURL
	}
	return Route{
		base:  strings.TrimSuffix(base, "/"),
		path:  cleanPath(path),
		query: copyValues(query),
	}
}

// Base returns the base URL.
func (r Route) Base() string { return r.base }

// Path returns the endpoint path.
func (r Route) Path() string { return r.path }

// WithPath returns a copy of r pointing at another path on the same base.
func (r Route) WithPath(path string) Route {
	return Route{base: r.base, path: cleanPath(path), query: copyValues(r.query)}
}

// WithQuery returns a copy of r with key=value added to the query.
func (r Route) WithQuery(key, value string) Route {
	q := copyValues(r.query)
	if q == nil {
		q = url.Values{}
	}
	q.Add(key, value)
	return Route{base: r.base, path: r.path, query: q}
}

// URL returns the absolute request URL. Query keys are emitted in sorted
// order so equivalent routes always produce the same string.
func (r Route) URL() string {
	u := r.base + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	return u
}

func (r Route) String() string { return r.URL() }

func cleanPath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

func copyValues(v url.Values) url.Values {
	if len(v) == 0 {
		return nil
	}
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
