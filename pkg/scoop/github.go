package scoop

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// release is one entry of the GitHub releases-list response. The API returns
// the list newest-first.
type release struct {
	TagName    string `json:"tag_name"`
	Prerelease bool   `json:"prerelease"`
}

var githubHomepageRe = regexp.MustCompile(`^https?://(?:www\.)?github\.com/`)

// githubRepoFromHomepage strips the github.com prefix from a homepage URL,
// leaving "owner/repo". Empty when the homepage is not a GitHub URL.
func githubRepoFromHomepage(homepage string) string {
	if !githubHomepageRe.MatchString(homepage) {
		return ""
	}
	repo := githubHomepageRe.ReplaceAllString(homepage, "")
	repo = strings.TrimSuffix(strings.TrimSpace(repo), "/")
	parts := strings.Split(repo, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return parts[0] + "/" + parts[1]
}

// latestRelease fetches the releases list for owner/repo and returns the
// first non-prerelease entry together with its raw JSON.
func (c *Checker) latestRelease(ctx context.Context, repo, userAgent string) (release, []byte, error) {
	url := fmt.Sprintf("%s/repos/%s/releases", c.githubAPI, repo)
	body, err := c.fetch(ctx, url, userAgent)
	if err != nil {
		return release{}, nil, err
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		return release{}, nil, fmt.Errorf("failed to parse releases: %w", err)
	}

	for _, raw := range entries {
		var rel release
		if err := json.Unmarshal(raw, &rel); err != nil {
			continue
		}
		if !rel.Prerelease {
			return rel, raw, nil
		}
	}
	return release{}, nil, fmt.Errorf("no stable release for %s", repo)
}
