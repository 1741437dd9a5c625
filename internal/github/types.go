package github

import "github.com/woozymasta/relprune"

// releaseResponse is the subset of the release object the pruner reads.
type releaseResponse struct {
	ID         int64  `json:"id"`
	TagName    string `json:"tag_name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

func (r releaseResponse) release() relprune.Release {
	return relprune.Release{Tag: r.TagName, ID: r.ID}
}
