package prune

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/woozymasta/relprune"
	"github.com/woozymasta/relprune/internal/metrics"
)

// DefaultConcurrency caps in-flight deletion calls per category.
const DefaultConcurrency = 3

// ErrFetch marks a failure to retrieve the release collection.
var ErrFetch = errors.New("fetching releases")

// Remote is the release host the runner works against.
type Remote interface {
	// FetchAllReleases returns the complete release collection in fetch
	// order, or an error if any page could not be retrieved.
	FetchAllReleases(ctx context.Context) ([]relprune.Release, error)

	// DeleteRelease deletes one release by its platform id.
	DeleteRelease(ctx context.Context, id int64) error

	// DeleteTag deletes one git tag.
	DeleteTag(ctx context.Context, tag string) error
}

// Kind tells which deletion call failed.
type Kind string

const (
	KindRelease Kind = metrics.KindRelease
	KindTag     Kind = metrics.KindTag
)

// Failure is a single deletion call that did not succeed.
type Failure struct {
	Kind Kind   `json:"kind"`
	Tag  string `json:"tag"`
	Err  error  `json:"-"`
}

// Reason returns the error text, or an empty string.
func (f Failure) Reason() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// Result is the outcome of one run.
type Result struct {
	Plan            relprune.Plan `json:"plan"`
	DeletedReleases []string      `json:"deleted_releases"`
	DeletedTags     []string      `json:"deleted_tags"`
	Failed          []Failure     `json:"failed,omitempty"`
	DryRun          bool          `json:"dry_run"`
}

// Runner wires a Remote to the retention core.
type Runner struct {
	Remote  Remote
	Logger  *log.Logger
	Metrics *metrics.RunMetrics

	// Concurrency caps in-flight calls per category; <= 0 means DefaultConcurrency.
	Concurrency int
}

// Run fetches, plans and deletes. Only a fetch failure, an invalid policy
// or a cancelled context make it return an error.
func (r *Runner) Run(ctx context.Context, p relprune.Policy) (Result, error) {
	logger := r.logger()
	start := time.Now()
	defer func() { r.Metrics.ObserveRun(start, time.Now()) }()

	res := Result{DryRun: p.DryRun}

	logger.Info("getting releases")
	releases, err := r.Remote.FetchAllReleases(ctx)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	logger.Debug("releases fetched", "count", len(releases))

	if len(releases) == 0 {
		logger.Info("repository has no releases")
		return res, nil
	}

	plan, err := relprune.Evaluate(releases, p)
	if err != nil {
		return res, err
	}
	res.Plan = plan

	r.logPlan(logger, plan)
	r.recordPlan(plan)

	if plan.Empty() {
		logger.Info("no releases to delete")
		return res, nil
	}

	if p.DryRun {
		for _, rel := range plan.Delete {
			logger.Info("dry run, would delete release", "tag", rel.Tag, "id", rel.ID)
			r.Metrics.RecordDeletion(metrics.KindRelease, metrics.ResultDryRun)
		}
		if p.RemoveTags {
			for _, tag := range plan.DeleteTags() {
				logger.Info("dry run, would delete tag", "tag", tag)
				r.Metrics.RecordDeletion(metrics.KindTag, metrics.ResultDryRun)
			}
		}
		return res, nil
	}

	res.DeletedReleases, res.Failed = r.each(ctx, logger, KindRelease, plan.Delete, func(ctx context.Context, rel relprune.Release) error {
		return r.Remote.DeleteRelease(ctx, rel.ID)
	})

	if p.RemoveTags {
		tags := make([]relprune.Release, 0, len(plan.Delete))
		for _, tag := range plan.DeleteTags() {
			tags = append(tags, relprune.Release{Tag: tag})
		}

		var failed []Failure
		res.DeletedTags, failed = r.each(ctx, logger, KindTag, tags, func(ctx context.Context, rel relprune.Release) error {
			return r.Remote.DeleteTag(ctx, rel.Tag)
		})
		res.Failed = append(res.Failed, failed...)
	}

	logger.Info("done",
		"deleted_releases", len(res.DeletedReleases),
		"deleted_tags", len(res.DeletedTags),
		"failed", len(res.Failed),
	)

	return res, ctx.Err()
}

// each runs del for every item with at most Concurrency calls in flight.
// A failing call is logged and collected; it never cancels its siblings.
// Successful tags are returned in input order.
func (r *Runner) each(
	ctx context.Context,
	logger *log.Logger,
	kind Kind,
	items []relprune.Release,
	del func(context.Context, relprune.Release) error,
) ([]string, []Failure) {
	var (
		mu     sync.Mutex
		ok     = make([]bool, len(items))
		failed []Failure
	)

	// plain Group: a failure must not cancel siblings
	var g errgroup.Group
	g.SetLimit(r.concurrency())

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if ctx.Err() != nil {
				mu.Lock()
				failed = append(failed, Failure{Kind: kind, Tag: item.Tag, Err: ctx.Err()})
				mu.Unlock()
				return nil
			}

			if err := del(ctx, item); err != nil {
				logger.Error("failed to delete "+string(kind), "tag", item.Tag, "err", err)
				r.Metrics.RecordDeletion(string(kind), metrics.ResultFailed)

				mu.Lock()
				failed = append(failed, Failure{Kind: kind, Tag: item.Tag, Err: err})
				mu.Unlock()
				return nil
			}

			logger.Info("deleted "+string(kind), "tag", item.Tag)
			r.Metrics.RecordDeletion(string(kind), metrics.ResultSuccess)
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	var done []string
	for i, item := range items {
		if ok[i] {
			done = append(done, item.Tag)
		}
	}

	return done, failed
}

func (r *Runner) logPlan(logger *log.Logger, plan relprune.Plan) {
	for _, tag := range plan.Skipped {
		logger.Warn("skipped unparseable version", "tag", tag)
	}
	for _, tag := range plan.Unmanaged {
		logger.Debug("out of scope, left alone", "tag", tag)
	}
	for _, tag := range plan.Protected {
		logger.Debug("protected", "tag", tag)
	}

	logger.Info("tags to keep", "count", len(plan.Keep), "tags", plan.Keep)
	logger.Info("tags to delete", "count", len(plan.Delete), "tags", plan.DeleteTags())
}

func (r *Runner) recordPlan(plan relprune.Plan) {
	r.Metrics.SetReleases(metrics.StateKept, len(plan.Keep))
	r.Metrics.SetReleases(metrics.StateDeleted, len(plan.Delete))
	r.Metrics.SetReleases(metrics.StateSkipped, len(plan.Skipped))
	r.Metrics.SetReleases(metrics.StateUnmanaged, len(plan.Unmanaged))
	r.Metrics.SetReleases(metrics.StateProtected, len(plan.Protected))
}

func (r *Runner) concurrency() int {
	if r.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return r.Concurrency
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
