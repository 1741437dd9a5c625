package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the long option names. Unset keys leave the option alone.
type fileConfig struct {
	Repository *string `yaml:"repository"`
	APIURL     *string `yaml:"api-url"`

	KeepCount    *int    `yaml:"keep-count"`
	KeepOld      *bool   `yaml:"keep-old-minor-releases"`
	KeepOldBy    *string `yaml:"keep-old-minor-releases-by"`
	KeepOldCount *int    `yaml:"keep-old-minor-releases-count"`
	Protect      *string `yaml:"protect"`

	Include           *string `yaml:"include"`
	Exclude           *string `yaml:"exclude"`
	SemverLoose       *bool   `yaml:"semver-loose"`
	IncludePrerelease *bool   `yaml:"include-prerelease"`

	Min          *string `yaml:"min"`
	Max          *string `yaml:"max"`
	MinExclusive *bool   `yaml:"min-exclusive"`
	MaxExclusive *bool   `yaml:"max-exclusive"`

	RemoveTags  *bool   `yaml:"remove-tags"`
	DryRun      *bool   `yaml:"dry-run"`
	Concurrency *int    `yaml:"concurrency"`
	Output      *string `yaml:"output"`
	MetricsFile *string `yaml:"metrics-file"`
}

// loadFile reads a YAML config file. Unknown keys are an error.
func loadFile(path string) (fileConfig, error) {
	var fc fileConfig

	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.KeepOldBy != nil {
		switch *fc.KeepOldBy {
		case "major", "minor", "patch":
		default:
			return fc, fmt.Errorf("config %s: keep-old-minor-releases-by must be major, minor or patch, got %q", path, *fc.KeepOldBy)
		}
	}
	if fc.Output != nil && *fc.Output != "text" && *fc.Output != "json" {
		return fc, fmt.Errorf("config %s: output must be text or json, got %q", path, *fc.Output)
	}

	return fc, nil
}

// apply copies every key present in the file into opt unless the option was
// given explicitly on the command line or in the environment.
func (fc fileConfig) apply(opt *Options, explicit func(long string) bool) {
	set(explicit, "repository", &opt.OptionsRepo.Repository, fc.Repository)
	set(explicit, "api-url", &opt.OptionsRepo.APIURL, fc.APIURL)

	set(explicit, "keep-count", &opt.OptionsRetention.KeepCount, fc.KeepCount)
	set(explicit, "keep-old-minor-releases", &opt.OptionsRetention.KeepOld, fc.KeepOld)
	set(explicit, "keep-old-minor-releases-by", &opt.OptionsRetention.KeepOldBy, fc.KeepOldBy)
	set(explicit, "keep-old-minor-releases-count", &opt.OptionsRetention.KeepOldCount, fc.KeepOldCount)
	set(explicit, "protect", &opt.OptionsRetention.Protect, fc.Protect)

	set(explicit, "include", &opt.OptionsFilter.Include, fc.Include)
	set(explicit, "exclude", &opt.OptionsFilter.Exclude, fc.Exclude)
	set(explicit, "semver-loose", &opt.OptionsFilter.SemverLoose, fc.SemverLoose)
	set(explicit, "include-prerelease", &opt.OptionsFilter.IncludePrerelease, fc.IncludePrerelease)

	set(explicit, "min", &opt.OptionsRange.Min, fc.Min)
	set(explicit, "max", &opt.OptionsRange.Max, fc.Max)
	set(explicit, "min-exclusive", &opt.OptionsRange.MinExclusive, fc.MinExclusive)
	set(explicit, "max-exclusive", &opt.OptionsRange.MaxExclusive, fc.MaxExclusive)

	set(explicit, "remove-tags", &opt.OptionsRun.RemoveTags, fc.RemoveTags)
	set(explicit, "dry-run", &opt.OptionsRun.DryRun, fc.DryRun)
	set(explicit, "concurrency", &opt.OptionsRun.Concurrency, fc.Concurrency)
	set(explicit, "output", &opt.OptionsRun.Output, fc.Output)
	set(explicit, "metrics-file", &opt.OptionsRun.MetricsFile, fc.MetricsFile)
}

func set[T any](explicit func(string) bool, long string, dst *T, v *T) {
	if v == nil || explicit(long) {
		return
	}
	*dst = *v
}
