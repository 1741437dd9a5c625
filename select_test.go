package relprune

import (
	"reflect"
	"testing"
)

func retain(t *testing.T, p Policy, tags ...string) []string {
	t.Helper()

	tree, skipped := BuildTree(releases(tags...), p.KeepOldBy, p.SemverLoose)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped tags: %v", skipped)
	}

	return Retain(tree, p)
}

func TestRetain_MajorLatestOnly(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	p.KeepOldBy = GranularityMajor
	p.KeepCount = 1

	got := retain(t, p, "1.0.0", "1.2.0", "2.0.0", "2.1.0")
	if !reflect.DeepEqual(got, []string{"2.1.0"}) {
		t.Fatalf("Retain = %v; want [2.1.0]", got)
	}
}

func TestRetain_MinorKeepOld(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	p.KeepOld = true
	p.KeepCount = 1
	p.KeepOldCount = 1

	got := retain(t, p, "1.0.0", "1.1.0", "2.0.0", "2.5.0")

	// latest leaf 2.5 first, then every other leaf in descending key order
	want := []string{"2.5.0", "2.0.0", "1.1.0", "1.0.0"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Retain = %v; want %v", got, want)
	}
}

func TestRetain_KeepCountWithinLeaf(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	p.KeepCount = 2

	got := retain(t, p, "1.4.1", "1.4.3", "1.3.9", "1.4.2", "1.4.0-rc1")
	want := []string{"1.4.3", "1.4.2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Retain = %v; want %v", got, want)
	}
}

func TestRetain_KeepCountLargerThanLeaf(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	p.KeepCount = 10

	got := retain(t, p, "1.0.0", "2.0.1", "2.0.0")
	want := []string{"2.0.1", "2.0.0"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Retain = %v; want %v", got, want)
	}
}

func TestRetain_PrereleaseOrdering(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	p.KeepCount = 1

	got := retain(t, p, "2.0.0-rc.2", "2.0.0", "2.0.0-rc.10")
	if !reflect.DeepEqual(got, []string{"2.0.0"}) {
		t.Fatalf("Retain = %v; a release outranks its prereleases", got)
	}
}

func TestRetain_KeepOldCountPerLeaf(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	p.KeepOld = true
	p.KeepOldBy = GranularityMajor
	p.KeepCount = 1
	p.KeepOldCount = 2

	got := retain(t, p, "1.0.0", "1.1.0", "1.2.0", "2.0.0", "2.1.0", "3.0.0")
	want := []string{"3.0.0", "2.1.0", "2.0.0", "1.2.0", "1.1.0"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Retain = %v; want %v", got, want)
	}
}

func TestRetain_TieKeepsFetchOrder(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	p.KeepCount = 1

	// "v1.2" and "1.2.0" normalize to the same version
	got := retain(t, p, "v1.2", "1.2.0")
	if !reflect.DeepEqual(got, []string{"v1.2"}) {
		t.Fatalf("Retain = %v; want the first fetched tag", got)
	}
}

func TestRetain_Idempotent(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	p.KeepOld = true
	p.KeepOldBy = GranularityPatch

	tree, _ := BuildTree(releases("1.0.0", "1.0.1", "1.1.0", "2.0.0", "2.0.0-rc1"), p.KeepOldBy, false)

	first := Retain(tree, p)
	second := Retain(tree, p)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Retain not idempotent: %v vs %v", first, second)
	}
	if tree.Len() != 5 {
		t.Fatalf("Retain must not modify the tree, Len() = %d", tree.Len())
	}
}

func TestRetain_EmptyTree(t *testing.T) {
	t.Parallel()

	if got := Retain(Branch{}, DefaultPolicy()); len(got) != 0 {
		t.Fatalf("Retain(empty) = %v", got)
	}
}

func TestSelectLatest_Path(t *testing.T) {
	t.Parallel()

	tree, _ := BuildTree(releases("1.9.0", "1.10.0", "0.20.0"), GranularityMinor, false)

	entries, path := SelectLatest(tree, 1)
	if !reflect.DeepEqual(path, []int{1, 10}) {
		t.Fatalf("path = %v; want [1 10]", path)
	}
	if len(entries) != 1 || entries[0].Release.Tag != "1.10.0" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestSelectOld_SkipsLeafOnly(t *testing.T) {
	t.Parallel()

	tree, _ := BuildTree(releases("1.0.0", "1.1.0", "1.1.1"), GranularityMinor, false)

	got := SelectOld(tree, []int{1, 1}, 5)
	if len(got) != 1 || got[0].Release.Tag != "1.0.0" {
		t.Fatalf("SelectOld = %+v; want only the 1.0 leaf", got)
	}
}
