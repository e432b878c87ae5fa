package golang

import (
	"go/token"
	"strings"
	"unicode"
)

// lowerFirst lowers the leading capital run of an exported name so it can
// serve as a field: Integer -> integer, ID -> id, URLPath -> urlPath.
func lowerFirst(s string) string {
	r := []rune(s)
	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n > 1 && n < len(r):
		n--
	}
	for i := range n {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

// names hands out identifiers that do not collide with reserved ones.
// Colliding names get underscores appended.
type names struct {
	taken map[string]bool
}

func newNames(reserved ...string) *names {
	n := &names{taken: make(map[string]bool, len(reserved))}
	for _, r := range reserved {
		n.taken[r] = true
	}
	return n
}

// claim returns a free identifier based on want and marks it taken.
func (n *names) claim(want string) string {
	name := want
	for token.IsKeyword(name) || n.taken[name] {
		name += "_"
	}
	n.taken[name] = true
	return name
}

// isStd reports whether path looks like a standard library import path.
func isStd(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
