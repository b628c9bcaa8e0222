// Package urlpath provides an immutable URL value with indexable path
// segments.
//
// A [URL] is compared by its canonical string form, so it can be used as a
// set key through [URL.Key]. Path access is segment based: the path is
// cleaned, then split on "/", and a leading empty segment marks an absolute
// path.
//
//	u := urlpath.MustParse("https://github.com/psf/requests/tree/main")
//	u.Segments()           // ["", "psf", "requests", "tree", "main"]
//	u.SliceSegments(0, 3)  // https://github.com/psf/requests
//	u.SegmentAt(-1)        // "main", true
package urlpath

import (
	"net/url"
	"path"
	"strings"

	"github.com/matzehuels/licensefetch/pkg/errors"
)

// URL wraps a parsed URL. The zero value is not usable; construct values with
// [Parse] or [MustParse]. Methods never mutate the receiver.
type URL struct {
	u *url.URL
}

// Normalize prefixes raw with "http://" when it carries no "//" separator.
// Protocol-relative input ("//host/path") gets "http:" only.
func Normalize(raw string) string {
	if strings.HasPrefix(raw, "//") {
		return "http:" + raw
	}
	if !strings.Contains(raw, "//") {
		return "http://" + raw
	}
	return raw
}

// Parse normalizes raw and parses it. It returns an
// [errors.ErrCodeMalformedURL] error when the result is not URL-shaped.
func Parse(raw string) (URL, error) {
	s := Normalize(strings.TrimSpace(raw))
	u, err := url.Parse(s)
	if err != nil {
		return URL{}, errors.Wrap(errors.ErrCodeMalformedURL, err, "parse %q", raw)
	}
	if u.Host == "" {
		return URL{}, errors.New(errors.ErrCodeMalformedURL, "parse %q: missing host", raw)
	}
	return URL{u: u}, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(raw string) URL {
	u, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// String reassembles the URL.
func (u URL) String() string {
	if u.u == nil {
		return ""
	}
	return u.u.String()
}

// Key returns the identity used for equality and set membership.
func (u URL) Key() string { return u.String() }

// Equal reports whether both URLs have the same canonical string.
func (u URL) Equal(other URL) bool { return u.String() == other.String() }

// IsZero reports whether u was never parsed.
func (u URL) IsZero() bool { return u.u == nil }

// Host returns the host, including any port.
func (u URL) Host() string {
	if u.u == nil {
		return ""
	}
	return u.u.Host
}

// Scheme returns the lower-cased scheme.
func (u URL) Scheme() string {
	if u.u == nil {
		return ""
	}
	return u.u.Scheme
}

// Segments returns the cleaned path split on "/".
func (u URL) Segments() []string {
	if u.u == nil {
		return nil
	}
	return strings.Split(path.Clean(u.u.Path), "/")
}

// WithPath returns a copy of u whose path is rebuilt from segments.
// A non-empty first segment gets an empty one prepended so the path stays
// absolute.
func (u URL) WithPath(segments []string) URL {
	if len(segments) == 0 || segments[0] != "" {
		segments = append([]string{""}, segments...)
	}
	c := u.clone()
	c.Path = strings.Join(segments, "/")
	c.RawPath = ""
	return URL{u: c}
}

// SegmentAt returns the i-th path segment. Negative indices count from the
// end, -1 being the last segment.
func (u URL) SegmentAt(i int) (string, bool) {
	segs := u.Segments()
	if i < 0 {
		i += len(segs)
	}
	if i < 0 || i >= len(segs) {
		return "", false
	}
	return segs[i], true
}

// SliceSegments is WithPath(Segments()[lo:hi]) with lo and hi clamped to
// the segment count.
func (u URL) SliceSegments(lo, hi int) URL {
	segs := u.Segments()
	n := len(segs)
	lo = min(max(lo, 0), n)
	hi = min(max(hi, lo), n)
	return u.WithPath(segs[lo:hi])
}

// WithHost returns a copy of u with host replaced.
func (u URL) WithHost(host string) URL {
	c := u.clone()
	c.Host = host
	return URL{u: c}
}

// WithScheme returns a copy of u with scheme replaced.
func (u URL) WithScheme(scheme string) URL {
	c := u.clone()
	c.Scheme = scheme
	return URL{u: c}
}

// WithoutQuery returns a copy of u with query and fragment removed.
func (u URL) WithoutQuery() URL {
	c := u.clone()
	c.RawQuery = ""
	c.ForceQuery = false
	c.Fragment = ""
	c.RawFragment = ""
	return URL{u: c}
}

// ResolveReference resolves ref against u following RFC 3986: an absolute
// ref replaces u entirely, a relative one is merged with u's path.
func (u URL) ResolveReference(ref string) (URL, error) {
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return URL{}, errors.Wrap(errors.ErrCodeMalformedURL, err, "parse reference %q", ref)
	}
	return URL{u: u.clone().ResolveReference(r)}, nil
}

func (u URL) clone() *url.URL {
	if u.u == nil {
		return &url.URL{}
	}
	c := *u.u
	return &c
}
