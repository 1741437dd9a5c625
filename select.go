package relprune

// SelectLatest descends into the numerically largest bucket at every level
// until it reaches a leaf and returns its newest keepCount entries together
// with the key path of that leaf.
func SelectLatest(t Branch, keepCount int) ([]Entry, []int) {
	var (
		node Tree = t
		path []int
	)

	for {
		switch n := node.(type) {
		case Branch:
			if len(n) == 0 {
				return nil, nil
			}

			k := n.Keys()[0]
			path = append(path, k)
			node = n[k]

		case *Leaf:
			return head(sortedDesc(n.Entries), keepCount), path

		default:
			return nil, nil
		}
	}
}

// SelectOld visits every leaf except the one at skip and returns the newest
// keepOldCount entries of each. Buckets are visited in descending key order.
func SelectOld(t Branch, skip []int, keepOldCount int) []Entry {
	var out []Entry
	collectOld(t, nil, skip, keepOldCount, &out)

	return out
}

func collectOld(b Branch, prefix, skip []int, n int, out *[]Entry) {
	for _, k := range b.Keys() {
		path := append(prefix[:len(prefix):len(prefix)], k)

		switch t := b[k].(type) {
		case *Leaf:
			if samePath(path, skip) {
				continue
			}
			*out = append(*out, head(sortedDesc(t.Entries), n)...)

		case Branch:
			collectOld(t, path, skip, n, out)
		}
	}
}

// Retain computes the retention set: the latest selection, then, when
// KeepOld is set, the old selection over every other bucket. Tags are
// returned once each in selection order. The tree is not modified.
func Retain(t Branch, p Policy) []string {
	p = p.normalized()

	latest, path := SelectLatest(t, p.KeepCount)

	kept := newTagSet()
	for _, e := range latest {
		kept.add(e.Release.Tag)
	}

	if p.KeepOld && len(path) > 0 {
		for _, e := range SelectOld(t, path, p.KeepOldCount) {
			kept.add(e.Release.Tag)
		}
	}

	return kept.list
}

func samePath(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
