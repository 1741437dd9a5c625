package relprune

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		loose bool
		want  string
	}{
		{"2", false, "2.0.0"},
		{"v2", false, "2.0.0"},
		{"1.5", false, "1.5.0"},
		{"v1.4", false, "1.4.0"},
		{"1.2.3", false, "1.2.3"},
		{"v1.2.3", false, "1.2.3"},
		{"v1.5-rc.1", false, "1.5.0-rc.1"},
		{"1.2.3-alpha+build.5", false, "1.2.3-alpha"},
		{"2.0.0+build.1", false, "2.0.0"},

		// loose repairs
		{" =v1.2.3 ", true, "1.2.3"},
		{"01.02.03", true, "1.2.3"},
		{"1.2.3beta", true, "1.2.3-beta"},
		{"1.2beta", true, "1.2.0-beta"},
		{"V2", true, "2.0.0"},
		{"v1.4", true, "1.4.0"},
	}

	for _, tc := range cases {
		v, err := Normalize(tc.in, tc.loose)
		if err != nil {
			t.Fatalf("Normalize(%q, %v) error: %v", tc.in, tc.loose, err)
		}
		if got := v.String(); got != tc.want {
			t.Fatalf("Normalize(%q, %v) = %q; want %q", tc.in, tc.loose, got, tc.want)
		}
		if v.Tag != tc.in {
			t.Fatalf("Normalize(%q) kept tag %q", tc.in, v.Tag)
		}
	}
}

func TestNormalize_Unparseable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		loose bool
	}{
		{"release", false},
		{"release-1.0", false},
		{"", false},
		{"vX", false},
		{"latest", true},
		{"release-1.0", true},
	}

	for _, tc := range cases {
		_, err := Normalize(tc.in, tc.loose)
		if !errors.Is(err, ErrUnparseable) {
			t.Fatalf("Normalize(%q, %v) err = %v; want ErrUnparseable", tc.in, tc.loose, err)
		}
	}
}

func TestNormalize_ShorthandEquivalence(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"2", "2.0.0"},
		{"v1.4", "1.4.0"},
		{"1.5", "v1.5.0"},
	}

	for _, p := range pairs {
		a, err := Normalize(p[0], false)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Normalize(p[1], false)
		if err != nil {
			t.Fatal(err)
		}
		if c := Compare(a, b); c != 0 {
			t.Fatalf("Compare(%q, %q) = %d; want 0", p[0], p[1], c)
		}
	}
}

func TestPadShorthand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1", "1.0.0", true},
		{"v1", "v1.0.0", true},
		{"1.2", "1.2.0", true},
		{"v1.2-rc", "v1.2.0-rc", true},
		{"1.2.3", "1.2.3", true},
		{"abc", "", false},
		{"-1", "", false},
	}

	for _, tc := range cases {
		got, ok := padShorthand(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("padShorthand(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCleanLoose(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"=1.2.3":      "1.2.3",
		"  v1.2.3  ":  "1.2.3",
		"v 1.2.3":     "1.2.3",
		"001.010.000": "1.10.0",
		"1.2.3rc1":    "1.2.3-rc1",
		"1.2.3-rc1":   "1.2.3-rc1",
		"release":     "release",
	}

	for in, want := range cases {
		if got := cleanLoose(in); got != want {
			t.Fatalf("cleanLoose(%q) = %q; want %q", in, got, want)
		}
	}
}
