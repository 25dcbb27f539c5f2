package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to its label template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns are checked in order. Any single segment under /todos counts
// as an id so malformed ids cannot inflate label cardinality either.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/todos/[^/]+$`), Template: "/todos/:id"},
	{Pattern: regexp.MustCompile(`^/swagger/.+$`), Template: "/swagger/*"},
}

// NormalizePath rewrites dynamic paths to their route template for use as a
// metrics label or span name. Query strings and trailing slashes are dropped;
// unknown paths are returned unchanged.
//
//	NormalizePath("/todos/42")    // "/todos/:id"
//	NormalizePath("/todos/")      // "/todos"
//	NormalizePath("/health?x=1")  // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
