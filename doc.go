/*
Package relprune decides which version-tagged releases of a repository to
keep and which to delete.

The package is network-agnostic: it operates purely on a slice of Release
values (tag + platform id). Typical flow:

 1. Fetch all releases elsewhere (see internal/github).
 2. Call Evaluate with the desired Policy.
 3. Delete Plan.Delete (unless DryRun), see internal/prune.

Releases are bucketed by major, (major, minor) or (major, minor, patch)
depending on Policy.KeepOldBy. The newest Policy.KeepCount releases of the
highest bucket are kept; with Policy.KeepOld every other bucket keeps its
newest Policy.KeepOldCount releases as well.

SemVer notes:
  - A leading "v" is accepted on input.
  - Shorthand tags X and X.Y are normalized to X.0.0 and X.Y.0, keeping any
    prerelease/build suffix ("v1.5-rc.1" -> 1.5.0-rc.1).
  - Tags without leading digits ("release-1.0") are skipped and never deleted.

Additional filters:
  - Include / Exclude: regex gates on raw tag strings (before parsing).
  - Range: clip by lower/upper bounds (X / X.Y / X.Y.Z or full SemVer).
  - Protect: a semver constraint whose matches are always kept.

Usage example:

	releases := []relprune.Release{
		{Tag: "v1.0.0", ID: 1}, {Tag: "v1.1.0", ID: 2},
		{Tag: "v2.0.0", ID: 3}, {Tag: "v2.5.0", ID: 4},
		{Tag: "nightly", ID: 5},
	}

	plan, _ := relprune.Evaluate(releases, relprune.Policy{
		KeepCount:    1,
		KeepOld:      true,
		KeepOldBy:    relprune.GranularityMinor,
		KeepOldCount: 1,
	})

	fmt.Println(plan.Keep)    // [v2.5.0 v2.0.0 v1.1.0 v1.0.0]
	fmt.Println(plan.Skipped) // [nightly]
*/
package relprune
