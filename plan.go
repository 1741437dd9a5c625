package relprune

// Plan is the outcome of one policy evaluation.
type Plan struct {
	// Keep is the retention set in selection order: latest bucket first,
	// then older buckets, then protected tags.
	Keep []string `json:"keep"`

	// Delete is the deletion set in fetch order.
	Delete []Release `json:"delete"`

	// Protected lists tags kept only because they matched Policy.Protect.
	Protected []string `json:"protected,omitempty"`

	// Skipped lists tags that could not be normalized. They are left alone.
	Skipped []string `json:"skipped,omitempty"`

	// Unmanaged lists parseable tags outside the include/exclude/range scope.
	Unmanaged []string `json:"unmanaged,omitempty"`
}

// Empty reports whether there is nothing to delete.
func (p Plan) Empty() bool {
	return len(p.Delete) == 0
}

// DeleteSet returns the deletion set as tag -> release id.
func (p Plan) DeleteSet() map[string]int64 {
	out := make(map[string]int64, len(p.Delete))
	for _, r := range p.Delete {
		out[r.Tag] = r.ID
	}

	return out
}

// DeleteTags returns the tags of the deletion set, once each, in fetch order.
func (p Plan) DeleteTags() []string {
	s := newTagSet()
	for _, r := range p.Delete {
		s.add(r.Tag)
	}

	return s.list
}

// PlanDeletions returns every release whose tag is not in keep, preserving order.
func PlanDeletions(releases []Release, keep []string) []Release {
	kept := newTagSet()
	for _, t := range keep {
		kept.add(t)
	}

	var out []Release
	for _, r := range releases {
		if kept.has(r.Tag) {
			continue
		}
		out = append(out, r)
	}

	return out
}
