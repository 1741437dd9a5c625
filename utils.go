package relprune

import (
	"strings"
)

// toTok normalizes a free-form string into a lowercased token.
func toTok(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// tagSet is an insertion-ordered set of tags.
type tagSet struct {
	seen map[string]struct{}
	list []string
}

func newTagSet() *tagSet {
	return &tagSet{seen: make(map[string]struct{})}
}

// add inserts tag and reports whether it was new.
func (s *tagSet) add(tag string) bool {
	if _, ok := s.seen[tag]; ok {
		return false
	}

	s.seen[tag] = struct{}{}
	s.list = append(s.list, tag)

	return true
}

func (s *tagSet) has(tag string) bool {
	_, ok := s.seen[tag]
	return ok
}
