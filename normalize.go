package relprune

import (
	"fmt"
	"strings"
)

// Normalize converts a raw tag into a comparable Version.
//
// A tag that already is a full SemVer (optional leading "v") is used as-is.
// Otherwise the leading "v?X[.Y[.Z]]" core is padded with ".0" up to X.Y.Z,
// the remaining suffix is kept, and the result is parsed again:
//
//	"2"          -> 2.0.0
//	"v1.4"       -> 1.4.0
//	"1.5-beta"   -> 1.5.0-beta
//	"release-1"  -> ErrUnparseable (no leading digits)
//
// In loose mode the tag is cleaned first: surrounding spaces, a leading
// "=" and "v" are dropped, leading zeros in the core are removed and a
// prerelease glued to the core gets its '-' ("1.2.3beta" -> "1.2.3-beta").
func Normalize(tag string, loose bool) (Version, error) {
	s := tag
	if loose {
		s = cleanLoose(s)
	}

	if v, ok := parseFull(s); ok {
		return Version{Tag: tag, sv: v}, nil
	}

	padded, ok := padShorthand(s)
	if !ok {
		return Version{}, fmt.Errorf("%w: %q", ErrUnparseable, tag)
	}

	v, ok := parseFull(padded)
	if !ok {
		return Version{}, fmt.Errorf("%w: %q", ErrUnparseable, tag)
	}

	return Version{Tag: tag, sv: v}, nil
}

// padShorthand expands the leading X / X.Y core to X.Y.Z and keeps the rest.
// It reports false when the tag has no leading numeric group at all.
func padShorthand(tag string) (string, bool) {
	m := coreRe.FindStringSubmatch(tag)
	if m == nil {
		return "", false
	}

	minor, patch := m[3], m[4]
	if minor == "" {
		minor = "0"
	}
	if patch == "" {
		patch = "0"
	}

	return m[1] + m[2] + "." + minor + "." + patch + tag[len(m[0]):], true
}

// cleanLoose repairs the sloppy forms accepted in loose mode.
func cleanLoose(tag string) string {
	s := strings.TrimSpace(tag)
	s = strings.TrimSpace(strings.TrimLeft(s, "="))
	if len(s) > 0 && (s[0] == 'v' || s[0] == 'V') {
		s = strings.TrimSpace(s[1:])
	}

	m := looseRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	var b strings.Builder
	b.WriteString(trimZeros(m[1]))
	for _, g := range m[2:4] {
		if g == "" {
			break
		}
		b.WriteByte('.')
		b.WriteString(trimZeros(g))
	}

	// "1.2.3beta" -> "1.2.3-beta"
	rest := m[4]
	if rest != "" && isAlpha(rest[0]) {
		b.WriteByte('-')
	}
	b.WriteString(rest)

	return b.String()
}

func trimZeros(s string) string {
	if t := strings.TrimLeft(s, "0"); t != "" {
		return t
	}

	return "0"
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
