// Package prune executes a retention plan against a release host.
//
// A Runner fetches every release through a Remote, evaluates the policy with
// relprune.Evaluate, logs the plan and then deletes releases (and optionally
// their tags) with a bounded number of calls in flight. Deletion failures are
// logged and recorded, never fatal; a fetch failure aborts the run before
// anything is planned.
package prune
