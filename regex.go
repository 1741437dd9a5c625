package relprune

import "regexp"

var (
	// Leading numeric core: optional "v", then up to three dot-separated groups.
	coreRe = regexp.MustCompile(`^([vV]?)(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

	// Loose mode: numeric core followed by an optional suffix.
	looseRe = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(?:\.(\d+))?(.*)$`)
)
