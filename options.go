package relprune

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPolicy returns the retention rules used when nothing is configured:
//
//   - KeepCount:    3      // newest releases kept in the latest bucket
//   - KeepOld:      false  // older buckets are pruned completely
//   - KeepOldBy:    minor  // buckets are (major, minor)
//   - KeepOldCount: 1      // survivors per older bucket when KeepOld is set
func DefaultPolicy() Policy {
	return Policy{
		KeepCount:    3,
		KeepOldBy:    GranularityMinor,
		KeepOldCount: 1,
	}
}

// Policy configures retention. The zero value is not usable directly;
// start from DefaultPolicy.
type Policy struct {
	// Include positive regex applied to the raw tag; non-matching tags are unmanaged.
	Include *regexp.Regexp

	// Exclude negative regex applied to the raw tag; matching tags are unmanaged.
	Exclude *regexp.Regexp

	// Protect is a semver constraint (e.g. "~1.2 || >=3"). Managed versions
	// matching it are always kept.
	Protect string

	// Range clips managed versions to [Min, Max].
	Range Range

	// KeepCount is the number of newest releases kept in the latest bucket.
	KeepCount int

	// KeepOldCount is the number of releases kept in every other bucket
	// when KeepOld is enabled.
	KeepOldCount int

	// KeepOldBy is the bucket granularity and therefore the tree depth.
	KeepOldBy Granularity

	// KeepOld keeps KeepOldCount releases in every bucket besides the latest one.
	KeepOld bool

	// RemoveTags deletes the git tag together with its release.
	RemoveTags bool

	// DryRun computes and reports the plan without deleting anything.
	DryRun bool

	// SemverLoose repairs sloppy tags ("=v1.2.3", "01.2.3", "1.2.3beta").
	SemverLoose bool

	// IncludePrerelease lets prereleases satisfy Protect and floors a
	// shorthand Range.Min at X.Y.0-0.
	IncludePrerelease bool
}

// normalized returns a copy with implicit defaults applied.
func (p Policy) normalized() Policy {
	out := p

	// zero granularity falls back to minor, like an unknown input does
	if out.KeepOldBy == 0 {
		out.KeepOldBy = GranularityMinor
	}

	return out
}

// Validate reports configuration errors wrapped in ErrInvalidPolicy.
func (p Policy) Validate() error {
	if p.KeepCount < 1 {
		return fmt.Errorf("%w: keep count must be >= 1, got %d", ErrInvalidPolicy, p.KeepCount)
	}

	if p.KeepOld && p.KeepOldCount < 1 {
		return fmt.Errorf("%w: keep old count must be >= 1, got %d", ErrInvalidPolicy, p.KeepOldCount)
	}

	switch p.KeepOldBy {
	case 0, GranularityMajor, GranularityMinor, GranularityPatch:
	default:
		return fmt.Errorf("%w: unknown granularity %d", ErrInvalidPolicy, p.KeepOldBy)
	}

	if err := p.Range.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	if _, err := compileProtect(p.Protect, p.IncludePrerelease); err != nil {
		return fmt.Errorf("%w: protect %q: %v", ErrInvalidPolicy, p.Protect, err)
	}

	return nil
}

// Granularity selects how deep releases are bucketed: per major, per
// (major, minor) or per (major, minor, patch).
type Granularity uint8

const (
	// GranularityMajor buckets releases by major version.
	GranularityMajor Granularity = iota + 1
	// GranularityMinor buckets releases by (major, minor).
	GranularityMinor
	// GranularityPatch buckets releases by (major, minor, patch).
	GranularityPatch
)

// String returns a stable textual representation for Granularity.
func (g Granularity) String() string {
	switch g {
	case GranularityMajor:
		return "major"
	case GranularityPatch:
		return "patch"
	default:
		return "minor"
	}
}

// ParseGranularity maps free-form tokens to Granularity.
// Supported aliases (case-insensitive):
//
//	major:  "major","maj","x","1"
//	minor:  "minor","min","xy","2"
//	patch:  "patch","pth","xyz","3"
//
// Anything else falls back to minor.
func ParseGranularity(s string) Granularity {
	switch toTok(s) {
	case "major", "maj", "x", "1":
		return GranularityMajor

	case "patch", "pth", "xyz", "3":
		return GranularityPatch

	default:
		return GranularityMinor
	}
}

// MarshalText implements encoding.TextMarshaler.
func (g Granularity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Granularity) UnmarshalText(b []byte) error {
	*g = ParseGranularity(string(b))
	return nil
}

// Range clips versions to [Min, Max] with optional exclusive ends.
// Min/Max accept X, X.Y, X.Y.Z (with optional 'v') or full SemVer (may include -prerelease).
type Range struct {
	Min string // empty => no lower bound
	Max string // empty => no upper bound

	// When true => exclusive bound. Default false => inclusive.
	MinExclusive bool
	MaxExclusive bool
}

// Enabled reports whether any bound is set.
func (r Range) Enabled() bool {
	return r.Min != "" || r.Max != ""
}

func (r Range) validate() error {
	for _, b := range []string{r.Min, r.Max} {
		if b == "" {
			continue
		}

		if _, ok := parseBound(strings.TrimSpace(b)); !ok {
			return fmt.Errorf("bad range bound %q", b)
		}
	}

	return nil
}
