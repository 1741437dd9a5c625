package relprune

import (
	"reflect"
	"testing"
)

func TestToTok(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":         "",
		"  MiNoR ": "minor",
		"Patch":    "patch",
	}

	for in, want := range cases {
		if got := toTok(in); got != want {
			t.Fatalf("toTok(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestTagSet(t *testing.T) {
	t.Parallel()

	s := newTagSet()
	for _, tag := range []string{"v2", "v1", "v2", "v3", "v1"} {
		s.add(tag)
	}

	want := []string{"v2", "v1", "v3"}
	if !reflect.DeepEqual(s.list, want) {
		t.Fatalf("tagSet order = %v; want %v", s.list, want)
	}

	if !s.has("v3") || s.has("v4") {
		t.Fatalf("tagSet membership broken: %v", s.list)
	}
}
