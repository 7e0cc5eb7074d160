package service

import (
	"net/url"
	"strings"

	"booker-api/core/constants"
)

type NavigateOptions struct {
	Scroll bool
}

// Navigator receives replace-style navigations.
type Navigator interface {
	Replace(url string, opts NavigateOptions)
}

// QueryState reads and rewrites the overlay flag of a booker URL (path, query and optional fragment).
// Query pairs other than the flag keep their raw text and position.
type QueryState struct {
	path     string
	pairs    []string
	fragment string
	nav      Navigator
}

func NewQueryState(rawURL string, nav Navigator) *QueryState {
	qs := &QueryState{nav: nav}

	rest := rawURL
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		qs.fragment = rest[i:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		if query := rest[i+1:]; query != "" {
			qs.pairs = strings.Split(query, "&")
		}
		rest = rest[:i]
	}
	qs.path = rest
	return qs
}

// Enabled is true only when the first flag parameter is exactly "true".
func (q *QueryState) Enabled() bool {
	for _, pair := range q.pairs {
		key, value := splitPair(pair)
		if key == constants.OverlayQueryParam {
			return value == constants.OverlayQueryValue
		}
	}
	return false
}

// SetEnabled rewrites the flag and replaces the current URL without scrolling.
// true sets the first occurrence in place (or appends it); false removes every occurrence.
func (q *QueryState) SetEnabled(state bool) string {
	flag := constants.OverlayQueryParam + "=" + constants.OverlayQueryValue

	next := make([]string, 0, len(q.pairs)+1)
	set := false
	for _, pair := range q.pairs {
		key, _ := splitPair(pair)
		if key != constants.OverlayQueryParam {
			next = append(next, pair)
			continue
		}
		if state && !set {
			next = append(next, flag)
			set = true
		}
	}
	if state && !set {
		next = append(next, flag)
	}
	q.pairs = next

	u := q.URL()
	if q.nav != nil {
		q.nav.Replace(u, NavigateOptions{Scroll: false})
	}
	return u
}

func (q *QueryState) URL() string {
	var b strings.Builder
	b.WriteString(q.path)
	if len(q.pairs) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(q.pairs, "&"))
	}
	b.WriteString(q.fragment)
	return b.String()
}

// WithEnabled returns the URL as it would be after SetEnabled(state), leaving q untouched.
func (q *QueryState) WithEnabled(state bool) string {
	clone := &QueryState{path: q.path, pairs: append([]string(nil), q.pairs...), fragment: q.fragment}
	return clone.SetEnabled(state)
}

func splitPair(pair string) (key, value string) {
	key, value, _ = strings.Cut(pair, "=")
	if k, err := url.QueryUnescape(key); err == nil {
		key = k
	}
	if v, err := url.QueryUnescape(value); err == nil {
		value = v
	}
	return key, value
}
