package relprune

import (
	"reflect"
	"testing"
)

func releases(tags ...string) []Release {
	out := make([]Release, len(tags))
	for i, t := range tags {
		out[i] = Release{Tag: t, ID: int64(100 + i)}
	}

	return out
}

func leafTags(t Tree) []string {
	l, ok := t.(*Leaf)
	if !ok {
		return nil
	}

	out := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		out[i] = e.Release.Tag
	}

	return out
}

func TestBuildTree_Major(t *testing.T) {
	t.Parallel()

	tree, skipped := BuildTree(releases("1.0.0", "2.0.0", "1.2.0", "2.1.0"), GranularityMajor, false)
	if len(skipped) != 0 {
		t.Fatalf("skipped = %v", skipped)
	}

	if got := tree.Keys(); !reflect.DeepEqual(got, []int{2, 1}) {
		t.Fatalf("Keys() = %v", got)
	}

	if got := leafTags(tree[1]); !reflect.DeepEqual(got, []string{"1.0.0", "1.2.0"}) {
		t.Fatalf("leaf 1 = %v; fetch order must be kept", got)
	}
	if got := leafTags(tree[2]); !reflect.DeepEqual(got, []string{"2.0.0", "2.1.0"}) {
		t.Fatalf("leaf 2 = %v", got)
	}
}

func TestBuildTree_Minor(t *testing.T) {
	t.Parallel()

	tree, _ := BuildTree(releases("1.0.0", "1.1.0", "2.0.0", "2.5.0", "1.1.3"), GranularityMinor, false)

	one, ok := tree[1].(Branch)
	if !ok {
		t.Fatalf("tree[1] is %T; want Branch", tree[1])
	}

	if got := one.Keys(); !reflect.DeepEqual(got, []int{1, 0}) {
		t.Fatalf("major 1 keys = %v", got)
	}

	if got := leafTags(one[1]); !reflect.DeepEqual(got, []string{"1.1.0", "1.1.3"}) {
		t.Fatalf("leaf 1.1 = %v", got)
	}

	if tree.Len() != 5 {
		t.Fatalf("Len() = %d; want 5", tree.Len())
	}
}

func TestBuildTree_Patch(t *testing.T) {
	t.Parallel()

	tree, _ := BuildTree(releases("1.2.3", "1.2.3-rc1", "1.2.4"), GranularityPatch, false)

	minor, ok := tree[1].(Branch)[2].(Branch)
	if !ok {
		t.Fatal("expected three levels")
	}

	if got := leafTags(minor[3]); !reflect.DeepEqual(got, []string{"1.2.3", "1.2.3-rc1"}) {
		t.Fatalf("leaf 1.2.3 = %v", got)
	}
	if got := leafTags(minor[4]); !reflect.DeepEqual(got, []string{"1.2.4"}) {
		t.Fatalf("leaf 1.2.4 = %v", got)
	}
}

func TestBuildTree_NumericKeys(t *testing.T) {
	t.Parallel()

	tree, _ := BuildTree(releases("9.0.0", "10.0.0", "2.0.0"), GranularityMajor, false)

	// 10 > 9 > 2, never "9" > "2" > "10"
	if got := tree.Keys(); !reflect.DeepEqual(got, []int{10, 9, 2}) {
		t.Fatalf("Keys() = %v", got)
	}
}

func TestBuildTree_Skipped(t *testing.T) {
	t.Parallel()

	tree, skipped := BuildTree(releases("nightly", "v1", "release-1.0", "1.5"), GranularityMinor, false)

	if !reflect.DeepEqual(skipped, []string{"nightly", "release-1.0"}) {
		t.Fatalf("skipped = %v", skipped)
	}
	if tree.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", tree.Len())
	}
}

func TestBuildTree_Empty(t *testing.T) {
	t.Parallel()

	tree, skipped := BuildTree(nil, GranularityMinor, false)
	if len(tree) != 0 || len(skipped) != 0 {
		t.Fatalf("got %v / %v; want empty", tree, skipped)
	}
}
