// Package report renders a run result for people and for workflow steps.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/woozymasta/relprune/internal/prune"
)

// Supported report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders res to w in format ("text" or "json").
func Write(w io.Writer, res prune.Result, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return writeText(w, res)
	case FormatJSON:
		return writeJSON(w, res)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeText(w io.Writer, res prune.Result) error {
	var b strings.Builder

	section := func(title string, tags []string) {
		if len(tags) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s (%d):\n", title, len(tags))
		for _, t := range tags {
			b.WriteString("  ")
			b.WriteString(t)
			b.WriteByte('\n')
		}
	}

	section("keep", res.Plan.Keep)
	section("protected", res.Plan.Protected)
	if res.DryRun {
		section("delete (dry run)", res.Plan.DeleteTags())
	} else {
		section("delete", res.Plan.DeleteTags())
	}
	section("skipped", res.Plan.Skipped)
	section("unmanaged", res.Plan.Unmanaged)

	if !res.DryRun {
		fmt.Fprintf(&b, "deleted releases: %d, deleted tags: %d\n", len(res.DeletedReleases), len(res.DeletedTags))
	}

	for _, f := range res.Failed {
		fmt.Fprintf(&b, "failed %s %s: %s\n", f.Kind, f.Tag, f.Reason())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

type jsonFailure struct {
	Kind   prune.Kind `json:"kind"`
	Tag    string     `json:"tag"`
	Reason string     `json:"reason"`
}

type jsonReport struct {
	Keep            []string      `json:"keep"`
	Delete          []string      `json:"delete"`
	Protected       []string      `json:"protected"`
	Skipped         []string      `json:"skipped"`
	Unmanaged       []string      `json:"unmanaged"`
	DeletedReleases []string      `json:"deleted_releases"`
	DeletedTags     []string      `json:"deleted_tags"`
	Failed          []jsonFailure `json:"failed"`
	DryRun          bool          `json:"dry_run"`
}

func writeJSON(w io.Writer, res prune.Result) error {
	out := jsonReport{
		Keep:            orEmpty(res.Plan.Keep),
		Delete:          orEmpty(res.Plan.DeleteTags()),
		Protected:       orEmpty(res.Plan.Protected),
		Skipped:         orEmpty(res.Plan.Skipped),
		Unmanaged:       orEmpty(res.Plan.Unmanaged),
		DeletedReleases: orEmpty(res.DeletedReleases),
		DeletedTags:     orEmpty(res.DeletedTags),
		Failed:          []jsonFailure{},
		DryRun:          res.DryRun,
	}
	for _, f := range res.Failed {
		out.Failed = append(out.Failed, jsonFailure{Kind: f.Kind, Tag: f.Tag, Reason: f.Reason()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteGitHubOutput appends step outputs to the $GITHUB_OUTPUT file at path:
// kept-tags, deleted-tags and skipped-tags as JSON arrays, deleted-count as
// a number. An empty path is a no-op.
func WriteGitHubOutput(path string, res prune.Result) error {
	if path == "" {
		return nil
	}

	deleted := res.DeletedReleases
	if res.DryRun {
		deleted = res.Plan.DeleteTags()
	}

	var b strings.Builder
	for _, kv := range []struct {
		key  string
		tags []string
	}{
		{"kept-tags", res.Plan.Keep},
		{"deleted-tags", deleted},
		{"skipped-tags", res.Plan.Skipped},
	} {
		raw, err := json.Marshal(orEmpty(kv.tags))
		if err != nil {
			return err
		}
		b.WriteString(kv.key + "=" + string(raw) + "\n")
	}
	b.WriteString("deleted-count=" + strconv.Itoa(len(deleted)) + "\n")

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open github output: %w", err)
	}

	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("write github output: %w", err)
	}

	return f.Close()
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
