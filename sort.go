package relprune

import "sort"

// sortedDesc returns a copy of entries ordered by descending version.
// Equal versions keep fetch order.
func sortedDesc(entries []Entry) []Entry {
	out := append([]Entry(nil), entries...)
	if len(out) < 2 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if c := Compare(a.Version, b.Version); c != 0 {
			return c > 0
		}

		return a.Index < b.Index
	})

	return out
}

// SortTags orders tags by descending version. Unparseable tags go last in
// their original order.
func SortTags(tags []string, loose bool) []string {
	rs := make([]Release, len(tags))
	for i, t := range tags {
		rs[i] = Release{Tag: t}
	}

	entries, skipped := parseReleases(rs, loose)

	out := make([]string, 0, len(tags))
	for _, e := range sortedDesc(entries) {
		out = append(out, e.Release.Tag)
	}

	return append(out, skipped...)
}

// head returns at most n leading entries.
func head(entries []Entry, n int) []Entry {
	if n >= 0 && n < len(entries) {
		return entries[:n]
	}

	return entries
}
