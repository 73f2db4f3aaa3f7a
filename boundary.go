package formdata

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// maxBoundaryLength is the RFC 2046 §5.1.1 limit.
const maxBoundaryLength = 70

// NewBoundary returns a fresh random boundary.
func NewBoundary() string {
	return uuid.NewString()
}

// ValidateBoundary checks b against the RFC 2046 bchars grammar.
func ValidateBoundary(b string) error {
	if len(b) < 1 || len(b) > maxBoundaryLength {
		return fmt.Errorf("%w: length %d not in 1..%d", ErrInvalidBoundary, len(b), maxBoundaryLength)
	}
	if strings.HasSuffix(b, " ") {
		return fmt.Errorf("%w: trailing space", ErrInvalidBoundary)
	}
	for _, c := range b {
		if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' {
			continue
		}
		switch c {
		case '\'', '(', ')', '+', '_', ',', '-', '.', '/', ':', '=', '?', ' ':
			continue
		}
		return fmt.Errorf("%w: character %q", ErrInvalidBoundary, c)
	}
	return nil
}

// contentType renders the multipart/form-data header value, quoting the
// boundary when it contains tspecials.
func contentType(boundary string) string {
	if strings.ContainsAny(boundary, `()<>@,;:\"/[]?= `) {
		boundary = `"` + boundary + `"`
	}
	return "multipart/form-data; boundary=" + boundary
}

func resolveBoundary(opts *Options) (string, error) {
	b := opts.Boundary
	if b == "" {
		gen := opts.BoundaryFunc
		if gen == nil {
			gen = NewBoundary
		}
		b = gen()
	}
	if err := ValidateBoundary(b); err != nil {
		return "", err
	}
	return b, nil
}

// checkCollision fails when a part body contains the boundary delimiter,
// which would end the part early for any reader.
func checkCollision(parts []*Part, boundary string) error {
	delim := []byte("--" + boundary)
	for _, p := range parts {
		if bytes.Contains(p.Body, delim) {
			return fmt.Errorf("%w: delimiter occurs in part %q", ErrInvalidBoundary, p.Name)
		}
	}
	return nil
}
