// Package pathutil parses and normalizes request paths.
package pathutil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive int64 identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ExtractID strips prefix from path and parses the remainder with ParseID.
//
//	id, err := ExtractID("/todos/123", "/todos/") // 123, nil
func ExtractID(path, prefix string) (int64, error) {
	return ParseID(strings.TrimPrefix(path, prefix))
}

// IDFromRequest returns the {id} wildcard matched by the mux, falling back to
// the last path segment when the route was registered without a wildcard.
func IDFromRequest(r *http.Request) (int64, error) {
	if raw := r.PathValue("id"); raw != "" {
		return ParseID(raw)
	}
	i := strings.LastIndexByte(r.URL.Path, '/')
	return ExtractID(r.URL.Path, r.URL.Path[:i+1])
}
