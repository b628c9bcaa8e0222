package repo

import "github.com/matzehuels/licensefetch/pkg/urlpath"

// Set is a set of URLs keyed by their string form. Iteration follows
// insertion order. Use [NewSet]; a nil *Set reads as empty.
type Set struct {
	index map[string]struct{}
	urls  []urlpath.URL
}

// NewSet returns a set holding urls.
func NewSet(urls ...urlpath.URL) *Set {
	s := &Set{index: make(map[string]struct{})}
	for _, u := range urls {
		s.Add(u)
	}
	return s
}

// Add inserts u and reports whether it was new.
func (s *Set) Add(u urlpath.URL) bool {
	k := u.Key()
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = struct{}{}
	s.urls = append(s.urls, u)
	return true
}

// Contains reports whether a URL with the same string form is present.
func (s *Set) Contains(u urlpath.URL) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[u.Key()]
	return ok
}

// Len returns the number of URLs.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.urls)
}

// URLs returns the members in insertion order. The slice is a copy.
func (s *Set) URLs() []urlpath.URL {
	if s == nil {
		return nil
	}
	out := make([]urlpath.URL, len(s.urls))
	copy(out, s.urls)
	return out
}
