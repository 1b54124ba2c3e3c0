package edge

import (
	"fmt"
	"strings"
)

// Matcher classifies request paths against a static list of patterns.
// Patterns match by prefix on whole segments and support path parameters:
// "/employer/jobs/{id}" matches "/employer/jobs/42" and anything below it.
type Matcher struct {
	patterns [][]string
}

// NewMatcher compiles the given patterns. Empty or non-rooted patterns are
// rejected so misconfigured route sets fail at startup, not per request.
func NewMatcher(patterns ...string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		if p == "" || !strings.HasPrefix(p, "/") {
			return nil, fmt.Errorf("path pattern must start with '/': %q", p)
		}
		m.patterns = append(m.patterns, splitSegments(p))
	}
	return m, nil
}

// MustMatcher is NewMatcher for static, known-good pattern lists.
func MustMatcher(patterns ...string) *Matcher {
	m, err := NewMatcher(patterns...)
	if err != nil {
		panic(err)
	}
	return m
}

// Matches reports whether the path falls under any configured pattern.
func (m *Matcher) Matches(path string) bool {
	segs := splitSegments(path)
	for _, pattern := range m.patterns {
		if matchPrefix(pattern, segs) {
			return true
		}
	}
	return false
}

func matchPrefix(pattern, segs []string) bool {
	if len(segs) < len(pattern) {
		return false
	}
	for i, p := range pattern {
		if isParam(p) {
			continue
		}
		if p != segs[i] {
			return false
		}
	}
	return true
}

func isParam(seg string) bool {
	return strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")
}

func splitSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
