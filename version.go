package relprune

import (
	"strconv"

	"github.com/woozymasta/semver"
)

// Version is a normalized, comparable release version together with the
// tag it was derived from.
type Version struct {
	// Tag is the raw input tag.
	Tag string

	sv semver.Semver
}

// Major returns the major component.
func (v Version) Major() int { return v.sv.Major }

// Minor returns the minor component.
func (v Version) Minor() int { return v.sv.Minor }

// Patch returns the patch component.
func (v Version) Patch() int { return v.sv.Patch }

// Prerelease returns the prerelease identifiers without the leading '-'.
func (v Version) Prerelease() string { return v.sv.Prerelease }

// IsPrerelease reports whether the version carries a prerelease part.
func (v Version) IsPrerelease() bool { return v.sv.HasPre() }

// String returns MAJOR.MINOR.PATCH[-PRERELEASE] without a "v" and without build metadata.
func (v Version) String() string {
	s := strconv.Itoa(v.sv.Major) + "." + strconv.Itoa(v.sv.Minor) + "." + strconv.Itoa(v.sv.Patch)
	if v.sv.Prerelease != "" {
		s += "-" + v.sv.Prerelease
	}

	return s
}

// key returns the bucket keys of v down to granularity g.
func (v Version) key(g Granularity) []int {
	switch g {
	case GranularityMajor:
		return []int{v.sv.Major}
	case GranularityPatch:
		return []int{v.sv.Major, v.sv.Minor, v.sv.Patch}
	default:
		return []int{v.sv.Major, v.sv.Minor}
	}
}

// Compare orders a and b by SemVer precedence: -1, 0 or +1.
// The raw spelling ("v1.2" vs "1.2.0") never breaks a tie.
func Compare(a, b Version) int {
	x, y := a.sv, b.sv
	x.Original, y.Original = "", ""

	return x.Compare(y)
}

// parseFull parses s as a complete X.Y.Z[-pre][+build] version.
// Shorthand forms are rejected so they go through padding instead.
func parseFull(s string) (semver.Semver, bool) {
	v, ok := semver.Parse(s)
	if !ok || !v.IsValid() || !v.HasMinor() || !v.HasPatch() {
		return semver.Semver{}, false
	}

	return v, true
}
