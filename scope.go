package relprune

import (
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
)

// acceptTag applies the cheap raw-string gates before parsing.
func acceptTag(tag string, p Policy) bool {
	if p.Include != nil && !p.Include.MatchString(tag) {
		return false
	}

	if p.Exclude != nil && p.Exclude.MatchString(tag) {
		return false
	}

	return true
}

// splitScope separates managed entries from those the policy leaves alone
// (regex gates and range clipping). Unmanaged tags are never kept or deleted.
func splitScope(entries []Entry, p Policy) (managed []Entry, unmanaged []string) {
	var b bounds
	if p.Range.Enabled() {
		b = compileRange(p.Range, p.IncludePrerelease)
	}

	managed = make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !acceptTag(e.Release.Tag, p) || !b.contains(e.Version) {
			unmanaged = append(unmanaged, e.Release.Tag)
			continue
		}

		managed = append(managed, e)
	}

	return managed, unmanaged
}

// compileProtect parses the protect constraint; an empty string yields nil.
func compileProtect(s string, includePre bool) (*mmsemver.Constraints, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	c, err := mmsemver.NewConstraint(s)
	if err != nil {
		return nil, err
	}
	c.IncludePrerelease = includePre

	return c, nil
}

// matchProtect returns the tags of entries satisfying c, in fetch order.
func matchProtect(entries []Entry, c *mmsemver.Constraints) []string {
	if c == nil {
		return nil
	}

	var out []string
	for _, e := range entries {
		v, err := mmsemver.NewVersion(e.Version.String())
		if err != nil {
			continue
		}

		if c.Check(v) {
			out = append(out, e.Release.Tag)
		}
	}

	return out
}
