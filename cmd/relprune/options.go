package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/relprune"
	"github.com/woozymasta/relprune/internal/github"
	"github.com/woozymasta/relprune/internal/prune"
)

// Environment names follow the GitHub Actions input convention (INPUT_<NAME>),
// so the binary reads action inputs without a wrapper script.
type Options struct {
	// betteralign:ignore

	// Repository and credentials
	OptionsRepo OptionsRepo `group:"Repository"`
	// Retention rules
	OptionsRetention OptionsRetention `group:"Retention"`
	// Input filters
	OptionsFilter OptionsFilter `group:"Input filters"`
	// Range clipping
	OptionsRange OptionsRange `group:"Range"`
	// Execution and output
	OptionsRun OptionsRun `group:"Run"`
}

type OptionsRepo struct {
	Repository string `short:"r" long:"repository" env:"GITHUB_REPOSITORY" description:"Repository as owner/name"`
	Token      string `short:"t" long:"token"      env:"INPUT_TOKEN"       description:"GitHub token (falls back to $GITHUB_TOKEN)"`
	APIURL     string `long:"api-url"              env:"GITHUB_API_URL"    description:"GitHub REST API endpoint" default:"https://api.github.com"`
}

type OptionsRetention struct {
	KeepCount    int    `short:"k" long:"keep-count"                    env:"INPUT_KEEP-COUNT"                    description:"Releases kept in the latest bucket" default:"3"`
	KeepOld      bool   `short:"o" long:"keep-old-minor-releases"       env:"INPUT_KEEP-OLD-MINOR-RELEASES"       description:"Also keep releases in every older bucket"`
	KeepOldBy    string `short:"b" long:"keep-old-minor-releases-by"    env:"INPUT_KEEP-OLD-MINOR-RELEASES-BY"    description:"Bucket granularity" choice:"major" choice:"minor" choice:"patch" default:"minor"`
	KeepOldCount int    `short:"c" long:"keep-old-minor-releases-count" env:"INPUT_KEEP-OLD-MINOR-RELEASES-COUNT" description:"Releases kept per older bucket" default:"1"`
	Protect      string `short:"P" long:"protect"                       env:"INPUT_PROTECT"                       description:"Semver constraint of versions never deleted (e.g. \"~1.2 || >=3\")"`
}

type OptionsFilter struct {
	Include           string `short:"i" long:"include"            env:"INPUT_INCLUDE"            description:"Regexp of managed tags (applied before parsing)"`
	Exclude           string `short:"e" long:"exclude"            env:"INPUT_EXCLUDE"            description:"Regexp of tags left alone (applied before parsing)"`
	SemverLoose       bool   `short:"l" long:"semver-loose"       env:"INPUT_SEMVER-LOOSE"       description:"Repair sloppy tags (=v1.2.3, 01.2.3, 1.2.3beta)"`
	IncludePrerelease bool   `short:"p" long:"include-prerelease" env:"INPUT_INCLUDE-PRERELEASE" description:"Let prereleases match --protect and a shorthand --min floor"`
}

type OptionsRange struct {
	Min          string `short:"m" long:"min"           description:"Lower bound of managed versions (X / X.Y / X.Y.Z or full SemVer)"`
	Max          string `short:"x" long:"max"           description:"Upper bound of managed versions (X / X.Y / X.Y.Z or full SemVer)"`
	MinExclusive bool   `short:"M" long:"min-exclusive" description:"Exclude lower bound itself"`
	MaxExclusive bool   `short:"X" long:"max-exclusive" description:"Exclude upper bound itself"`
}

type OptionsRun struct {
	RemoveTags  bool   `short:"T" long:"remove-tags"  env:"INPUT_REMOVE-TAGS"  description:"Delete the git tags of deleted releases too"`
	DryRun      bool   `short:"n" long:"dry-run"      env:"INPUT_DRY-RUN"      description:"Report the plan without deleting anything"`
	Concurrency int    `short:"j" long:"concurrency"  env:"INPUT_CONCURRENCY"  description:"Deletion calls in flight per category" default:"3"`
	Output      string `short:"O" long:"output"       description:"Report format" choice:"text" choice:"json" default:"text"`
	MetricsFile string `long:"metrics-file"           env:"INPUT_METRICS-FILE" description:"Write Prometheus metrics to this textfile collector file"`
	Config      string `long:"config"                 env:"RELPRUNE_CONFIG"    description:"YAML file with defaults for any option above"`
	Verbose     bool   `short:"v" long:"verbose"      description:"Debug logging"`
}

// parseOptions parses args and the environment, then fills options left
// unset from the YAML file named by --config. It returns a nil error and
// help=true when usage was requested.
func parseOptions(args []string) (opt Options, help bool, err error) {
	parser := flags.NewParser(&opt, flags.Default|flags.AllowBoolValues)
	parser.LongDescription = `relprune prunes GitHub releases by semantic version.
It keeps the newest releases of the latest version bucket, optionally a few
releases of every older bucket, and deletes the rest.`

	if _, err := parser.ParseArgs(args); err != nil {
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			return opt, true, nil
		}
		return opt, false, err
	}

	if path := strings.TrimSpace(opt.OptionsRun.Config); path != "" {
		fc, err := loadFile(path)
		if err != nil {
			return opt, false, err
		}
		fc.apply(&opt, explicitFunc(parser))
	}

	if opt.OptionsRepo.Token == "" {
		opt.OptionsRepo.Token = os.Getenv("GITHUB_TOKEN")
	}

	return opt, false, nil
}

// explicitFunc reports whether an option got its value from the command line
// or from its environment variable rather than from its default.
func explicitFunc(parser *flags.Parser) func(long string) bool {
	return func(long string) bool {
		o := parser.FindOptionByLongName(long)
		if o == nil {
			return false
		}
		if o.IsSet() && !o.IsSetDefault() {
			return true
		}
		if key := o.EnvKeyWithNamespace(); key != "" {
			if _, ok := os.LookupEnv(key); ok {
				return true
			}
		}
		return false
	}
}

// policy converts the options into a retention policy.
func (o Options) policy() (relprune.Policy, error) {
	p := relprune.DefaultPolicy()

	p.KeepCount = o.OptionsRetention.KeepCount
	p.KeepOld = o.OptionsRetention.KeepOld
	p.KeepOldBy = relprune.ParseGranularity(o.OptionsRetention.KeepOldBy)
	p.KeepOldCount = o.OptionsRetention.KeepOldCount
	p.Protect = strings.TrimSpace(o.OptionsRetention.Protect)

	p.RemoveTags = o.OptionsRun.RemoveTags
	p.DryRun = o.OptionsRun.DryRun
	p.SemverLoose = o.OptionsFilter.SemverLoose
	p.IncludePrerelease = o.OptionsFilter.IncludePrerelease

	var err error
	if p.Include, err = compileRe("include", o.OptionsFilter.Include); err != nil {
		return p, err
	}
	if p.Exclude, err = compileRe("exclude", o.OptionsFilter.Exclude); err != nil {
		return p, err
	}

	p.Range = relprune.Range{
		Min:          strings.TrimSpace(o.OptionsRange.Min),
		Max:          strings.TrimSpace(o.OptionsRange.Max),
		MinExclusive: o.OptionsRange.MinExclusive,
		MaxExclusive: o.OptionsRange.MaxExclusive,
	}

	return p, p.Validate()
}

// remote builds the GitHub collaborator for the configured repository.
func (o Options) remote() (*github.Repository, error) {
	owner, name, err := github.ParseRepository(o.OptionsRepo.Repository)
	if err != nil {
		return nil, err
	}

	c := github.NewClient(o.OptionsRepo.Token, github.WithBaseURL(o.OptionsRepo.APIURL))
	return c.Repository(owner, name), nil
}

func (o Options) concurrency() int {
	if o.OptionsRun.Concurrency <= 0 {
		return prune.DefaultConcurrency
	}
	return o.OptionsRun.Concurrency
}

func compileRe(name, s string) (*regexp.Regexp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	re, err := regexp.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("%s regexp: %w", name, err)
	}
	return re, nil
}
