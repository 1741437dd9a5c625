package relprune

import (
	"strings"

	"github.com/woozymasta/semver"
)

// bounds is a Range compiled once into comparable floor/ceiling versions.
type bounds struct {
	minFloor     semver.Semver
	maxCeil      semver.Semver // strict exclusive ceiling
	haveMin      bool
	haveMax      bool
	minExclusive bool
}

func compileRange(r Range, includePre bool) bounds {
	var b bounds

	if s := strings.TrimSpace(r.Min); s != "" {
		b.minFloor, b.haveMin = compileMin(s, includePre)
		b.minExclusive = r.MinExclusive
	}

	if s := strings.TrimSpace(r.Max); s != "" {
		b.maxCeil, b.haveMax = compileMaxExclusive(s, r.MaxExclusive)
	}

	return b
}

// contains reports whether v lies inside the compiled range.
func (b bounds) contains(v Version) bool {
	x := v.sv
	x.Original = ""

	if b.haveMin {
		cmp := x.Compare(b.minFloor)
		if b.minExclusive {
			if cmp <= 0 {
				return false
			}
		} else if cmp < 0 {
			return false
		}
	}

	if b.haveMax && x.Compare(b.maxCeil) >= 0 {
		return false
	}

	return true
}

// parseBound parses a range bound: X, X.Y, X.Y.Z or a full SemVer.
func parseBound(raw string) (semver.Semver, bool) {
	v, ok := semver.Parse(raw)
	if !ok || !v.IsValid() {
		return semver.Semver{}, false
	}

	v.Original = ""

	return v, true
}

// compileMin parses the lower bound once. Shorthands become X.0.0 / X.Y.0;
// with includePreAtFloor the floor drops to the "-0" prerelease
// (>= X.Y.0-0) so prereleases of the floor version are inside.
func compileMin(raw string, includePreAtFloor bool) (semver.Semver, bool) {
	v, ok := parseBound(raw)
	if !ok {
		return semver.Semver{}, false
	}

	// shorthand X / X.Y
	if !v.HasPatch() {
		maj, min := v.Major, 0
		if v.HasMinor() {
			min = v.Minor
		}

		if includePreAtFloor {
			return makeSemver(maj, min, 0, "0"), true
		}

		return makeSemver(maj, min, 0, ""), true
	}

	// full bound is used as is
	return v, true
}

// compileMaxExclusive turns the upper bound into a strictly exclusive ceiling.
//
//	shorthand X:    excl -> < X.0.0-0;  incl -> < (X+1).0.0-0
//	shorthand X.Y:  excl -> < X.Y.0-0;  incl -> < X.(Y+1).0-0
//	full:           excl -> < v
//	                incl -> < v.pre.0 for a prerelease, else < X.Y.(Z+1)-0
func compileMaxExclusive(raw string, maxExclusive bool) (semver.Semver, bool) {
	v, ok := parseBound(raw)
	if !ok {
		return semver.Semver{}, false
	}

	// shorthand X / X.Y
	if !v.HasPatch() {
		maj, min := v.Major, 0
		if v.HasMinor() {
			min = v.Minor
		}
		if maxExclusive {
			return makeSemver(maj, min, 0, "0"), true
		}
		// inclusive: move to the next bucket and "-0"
		if !v.HasMinor() {
			return makeSemver(maj+1, 0, 0, "0"), true
		}
		return makeSemver(maj, min+1, 0, "0"), true
	}

	if maxExclusive {
		return v, true
	}

	if v.HasPre() {
		// <= 1.2.3-alpha -> < 1.2.3-alpha.0
		return makeSemver(v.Major, v.Minor, v.Patch, v.Prerelease+".0"), true
	}

	// <= 1.2.3 -> < 1.2.4-0
	return makeSemver(v.Major, v.Minor, v.Patch+1, "0"), true
}

// makeSemver builds a Semver without parsing.
// prerelease comes without the leading '-' (e.g. "0" or "alpha.0").
func makeSemver(maj, min, pat int, prerelease string) semver.Semver {
	flags := semver.FlagHasMajor | semver.FlagHasMinor | semver.FlagHasPatch
	if prerelease != "" {
		flags |= semver.FlagHasPre
	}

	return semver.Semver{
		Major:      maj,
		Minor:      min,
		Patch:      pat,
		Prerelease: prerelease,
		Flags:      flags,
		Valid:      true,
	}
}
