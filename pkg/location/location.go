// Package location supplies the current route path to the header.
//
// The header only ever reads the location; it compares it with menu hrefs by
// exact string equality. This package therefore never normalizes a path
// (no trailing slash removal, no segment cleaning). It only rejects inputs
// that are not same-site paths at all.
package location

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// Source is a read-only view of the current route path.
type Source interface {
	Path() string
}

// Static is a fixed location.
type Static string

// Path returns the location as a path.
func (s Static) Path() string { return string(s) }

// None is the empty location. No menu href can equal it, so nothing is active.
const None = Static("")

// Path validation errors.
var (
	ErrNotRelative          = errors.New("location must be a site-relative path")
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
)

// Parse validates raw as a site-relative path and returns it as a Static
// location. Any query string or fragment is dropped; the path itself is
// returned byte for byte.
func Parse(raw string) (Static, error) {
	path := raw
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return None, ErrNotRelative
	}
	if strings.Contains(path, "\\") {
		return None, ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return None, ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return None, err
		}
	}
	return Static(path), nil
}

// FromRequest resolves the location a header fragment is rendered for.
//
// The explicit ?path= query parameter wins and must be valid. Otherwise the
// path of the Referer header is used when it points at the same host, and
// "/" when there is nothing better.
func FromRequest(r *http.Request) (Static, error) {
	if raw, ok := r.URL.Query()["path"]; ok && len(raw) > 0 {
		return Parse(raw[0])
	}

	if ref := r.Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil && (u.Host == "" || u.Host == r.Host) {
			if loc, err := Parse(u.EscapedPath()); err == nil {
				return loc, nil
			}
		}
	}
	return Static("/"), nil
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying src.
func NewContext(ctx context.Context, src Source) context.Context {
	return context.WithValue(ctx, contextKey{}, src)
}

// FromContext returns the Source stored by NewContext.
func FromContext(ctx context.Context) (Source, bool) {
	if ctx == nil {
		return nil, false
	}
	src, ok := ctx.Value(contextKey{}).(Source)
	return src, ok && src != nil
}

// validatePercentEscapes checks that every '%' starts a %XX hex escape.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
