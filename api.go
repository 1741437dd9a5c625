package relprune

// Evaluate runs the whole retention pipeline over releases in one call:
//
//  1. normalize every tag (unparseable -> Plan.Skipped)
//  2. apply include/exclude/range scope (outside -> Plan.Unmanaged)
//  3. build the version tree at Policy.KeepOldBy granularity
//  4. select the retention set (latest bucket, then old buckets)
//  5. add protected versions
//  6. everything else managed goes to Plan.Delete
//
// Evaluate never touches the network; DryRun is honored by the executor.
func Evaluate(releases []Release, p Policy) (Plan, error) {
	p = p.normalized()
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}

	protect, err := compileProtect(p.Protect, p.IncludePrerelease)
	if err != nil {
		return Plan{}, err
	}

	entries, skipped := parseReleases(releases, p.SemverLoose)
	managed, unmanaged := splitScope(entries, p)

	tree := buildTree(managed, p.KeepOldBy)

	keep := newTagSet()
	for _, t := range Retain(tree, p) {
		keep.add(t)
	}

	var protected []string
	for _, t := range matchProtect(managed, protect) {
		if keep.add(t) {
			protected = append(protected, t)
		}
	}

	inScope := make([]Release, len(managed))
	for i, e := range managed {
		inScope[i] = e.Release
	}

	return Plan{
		Keep:      keep.list,
		Delete:    PlanDeletions(inScope, keep.list),
		Protected: protected,
		Skipped:   skipped,
		Unmanaged: unmanaged,
	}, nil
}

// Prune is Evaluate with DefaultPolicy.
func Prune(releases []Release) (Plan, error) {
	return Evaluate(releases, DefaultPolicy())
}
