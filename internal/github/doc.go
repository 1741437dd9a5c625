// Package github implements the release collaborator on top of the GitHub
// REST API: paginated release listing, release deletion and tag deletion.
//
//	c := github.NewClient(token)
//	repo := c.Repository("octo", "app")
//	releases, err := repo.FetchAllReleases(ctx)
package github
