package relprune

import "sort"

// Release is a release fetched from the hosting platform.
type Release struct {
	Tag string `json:"tag"`
	ID  int64  `json:"id"`
}

// Entry is a parsed release placed in the tree.
type Entry struct {
	Release Release
	Version Version
	Index   int // fetch order, used as the stable tie-breaker
}

// Tree is a bucket of the version tree: either a *Leaf holding releases or
// a Branch of deeper buckets. The depth is fixed by the granularity the tree
// was built with, so a Branch at the last level only ever holds leaves.
type Tree interface {
	isTree()
}

// Leaf holds the releases sharing a bucket prefix, in fetch order.
type Leaf struct {
	Entries []Entry
}

// Branch maps a version component (major, minor or patch) to a deeper bucket.
type Branch map[int]Tree

func (*Leaf) isTree()  {}
func (Branch) isTree() {}

// BuildTree normalizes releases and groups them by major, then minor
// (g >= minor), then patch (g == patch). Tags that cannot be normalized are
// returned in skipped and take no further part in retention.
func BuildTree(releases []Release, g Granularity, loose bool) (Branch, []string) {
	entries, skipped := parseReleases(releases, loose)
	return buildTree(entries, g), skipped
}

// parseReleases normalizes every release once.
func parseReleases(releases []Release, loose bool) ([]Entry, []string) {
	entries := make([]Entry, 0, len(releases))
	var skipped []string

	for idx, r := range releases {
		v, err := Normalize(r.Tag, loose)
		if err != nil {
			skipped = append(skipped, r.Tag)
			continue
		}

		entries = append(entries, Entry{Release: r, Version: v, Index: idx})
	}

	return entries, skipped
}

func buildTree(entries []Entry, g Granularity) Branch {
	root := Branch{}
	for _, e := range entries {
		root.insert(e.Version.key(g), e)
	}

	return root
}

// insert appends e to the leaf addressed by keys, creating buckets on the way.
func (b Branch) insert(keys []int, e Entry) {
	k := keys[0]

	if len(keys) == 1 {
		leaf, _ := b[k].(*Leaf)
		if leaf == nil {
			leaf = &Leaf{}
			b[k] = leaf
		}
		leaf.Entries = append(leaf.Entries, e)

		return
	}

	next, _ := b[k].(Branch)
	if next == nil {
		next = Branch{}
		b[k] = next
	}
	next.insert(keys[1:], e)
}

// Keys returns the bucket keys in descending numeric order.
func (b Branch) Keys() []int {
	keys := make([]int, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	return keys
}

// Len returns the number of releases stored under b.
func (b Branch) Len() int {
	n := 0
	for _, t := range b {
		switch t := t.(type) {
		case *Leaf:
			n += len(t.Entries)
		case Branch:
			n += t.Len()
		}
	}

	return n
}
