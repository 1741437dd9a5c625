package relprune

import (
	"reflect"
	"testing"
)

func TestSortTags_Desc(t *testing.T) {
	t.Parallel()

	in := []string{"1.2.3", "1.10.0", "1.2.10", "1.2.3-alpha"}

	got := SortTags(in, false)
	want := []string{"1.10.0", "1.2.10", "1.2.3", "1.2.3-alpha"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortTags got %v; want %v", got, want)
	}
}

func TestSortTags_UnparseableLast(t *testing.T) {
	t.Parallel()

	in := []string{"z", "1.0.0", "a", "2.0.0"}

	got := SortTags(in, false)
	want := []string{"2.0.0", "1.0.0", "z", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortTags got %v; want %v", got, want)
	}
}

func TestSortTags_NormalizeShorthand(t *testing.T) {
	t.Parallel()

	// mixed forms compare as X.0.0 / X.Y.0
	in := []string{"1", "1.2", "1.2.3"}

	got := SortTags(in, false)
	want := []string{"1.2.3", "1.2", "1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortTags got %v; want %v", got, want)
	}
}

func TestSortedDesc_StableOnTies(t *testing.T) {
	t.Parallel()

	// "v1.0" and "1.0.0" are the same version: fetch order decides
	entries, _ := parseReleases([]Release{
		{Tag: "v1.0", ID: 1},
		{Tag: "0.9.0", ID: 2},
		{Tag: "1.0.0", ID: 3},
	}, false)

	got := sortedDesc(entries)
	var tags []string
	for _, e := range got {
		tags = append(tags, e.Release.Tag)
	}

	want := []string{"v1.0", "1.0.0", "0.9.0"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("sortedDesc got %v; want %v", tags, want)
	}

	// input is left untouched
	if entries[0].Release.Tag != "v1.0" || entries[1].Release.Tag != "0.9.0" {
		t.Fatalf("sortedDesc mutated its input: %v", entries)
	}
}

func TestHead(t *testing.T) {
	t.Parallel()

	entries := make([]Entry, 5)
	if got := len(head(entries, 3)); got != 3 {
		t.Fatalf("head(5, 3) len = %d", got)
	}
	if got := len(head(entries, 10)); got != 5 {
		t.Fatalf("head(5, 10) len = %d", got)
	}
	if got := len(head(entries, 0)); got != 0 {
		t.Fatalf("head(5, 0) len = %d", got)
	}
}
