package scoop

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Latest resolves the newest upstream version for app and normalizes it.
// The empty string means undeterminable: an unsupported strategy, a failed
// fetch, or no pattern match. No error ever reaches the caller; callers
// distinguish "update available" (result differs from the installed
// version), "no update" (result equals it) and "check failed" ("").
func (c *Checker) Latest(ctx context.Context, app App) string {
	return NormalizeVersion(c.resolve(ctx, app))
}

// strategy attempts one check source. ok is false when the strategy does
// not apply to this config; an applicable strategy that fails resolves to
// an empty result instead.
type strategy func(ctx context.Context, app App) (result string, ok bool)

// resolve walks the ordered strategy list; the first applicable one wins,
// with "" as the terminal fallback.
func (c *Checker) resolve(ctx context.Context, app App) string {
	strategies := []strategy{
		c.scriptDeclared,
		c.githubFromHomepage,
		c.patternAgainstHomepage,
		c.githubRepo,
		c.sourceforge,
		c.urlPattern,
	}
	for _, s := range strategies {
		if result, ok := s(ctx, app); ok {
			return result
		}
	}
	return ""
}

// scriptDeclared makes checks carrying a script directive a declared no-op.
// Executing arbitrary manifest scripts is out of scope.
func (c *Checker) scriptDeclared(_ context.Context, app App) (string, bool) {
	if app.Check.HasScript {
		return "", true
	}
	return "", false
}

// githubFromHomepage handles the bare "github" string form: the repo is
// derived from the app's homepage.
func (c *Checker) githubFromHomepage(ctx context.Context, app App) (string, bool) {
	if !app.Check.IsString || app.Check.Pattern != "github" {
		return "", false
	}
	repo := githubRepoFromHomepage(app.Homepage)
	if repo == "" {
		return "", true
	}
	rel, _, err := c.latestRelease(ctx, repo, "")
	if err != nil {
		return "", true
	}
	return rel.TagName, true
}

// patternAgainstHomepage handles the remaining string form: the value is a
// regular expression run against the fetched homepage body.
func (c *Checker) patternAgainstHomepage(ctx context.Context, app App) (string, bool) {
	if !app.Check.IsString {
		return "", false
	}
	if app.Homepage == "" {
		return "", true
	}
	body, err := c.fetch(ctx, app.Homepage, "")
	if err != nil {
		return "", true
	}
	return extractVersion(string(body), app.Check.Pattern, "", false), true
}

// githubRepo handles the structured github selector. When a regex is also
// declared it runs against the raw JSON of the selected release entry
// rather than the tag name.
func (c *Checker) githubRepo(ctx context.Context, app App) (string, bool) {
	if app.Check.GitHub == "" {
		return "", false
	}
	repo := app.Check.GitHub
	if derived := githubRepoFromHomepage(repo); derived != "" {
		repo = derived
	}

	rel, raw, err := c.latestRelease(ctx, repo, app.Check.UserAgent)
	if err != nil {
		return "", true
	}
	if app.Check.Regex != "" {
		return extractVersion(string(raw), app.Check.Regex, app.Check.Replace, app.Check.Reverse), true
	}
	return rel.TagName, true
}

// sourceforge handles the structured sourceforge selector against the
// project's RSS feed.
func (c *Checker) sourceforge(ctx context.Context, app App) (string, bool) {
	sf := app.Check.SourceForge
	if sf.Project == "" {
		return "", false
	}

	feed := fmt.Sprintf("%s/projects/%s/rss", c.sourceforgeBase, sf.Project)
	if sf.Path != "" {
		feed += "?path=" + url.QueryEscape(sf.Path)
	}

	body, err := c.fetch(ctx, feed, app.Check.UserAgent)
	if err != nil {
		return "", true
	}

	link := firstFeedLink(string(body))
	if link == "" {
		return "", true
	}
	if app.Check.Regex == "" {
		return link, true
	}

	re, err := regexp.Compile(app.Check.Regex)
	if err != nil {
		return "", true
	}
	m := re.FindStringSubmatch(link)
	if len(m) < 2 {
		return "", true
	}
	return strings.TrimPrefix(m[1], "v"), true
}

// urlPattern handles the generic url selector. Without a regex directive
// this variant yields no determinate result; jsonpath and xpath are
// accepted but unsupported.
func (c *Checker) urlPattern(ctx context.Context, app App) (string, bool) {
	if app.Check.URL == "" {
		return "", false
	}
	if app.Check.Regex == "" {
		return "", true
	}
	body, err := c.fetch(ctx, app.Check.URL, app.Check.UserAgent)
	if err != nil {
		return "", true
	}
	return extractVersion(string(body), app.Check.Regex, app.Check.Replace, app.Check.Reverse), true
}

var feedLinkRe = regexp.MustCompile(`<link>(.*?)</link>`)

// firstFeedLink pulls the inner text of the first <link> element of an RSS
// body.
func firstFeedLink(body string) string {
	m := feedLinkRe.FindStringSubmatch(body)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// extractVersion runs pattern over content and picks the candidate match:
// the last one when reverse is set, the first otherwise. With a replace
// template each ${group} placeholder is substituted with the named capture's
// text; without one, the first capture group wins when the pattern declares
// groups, else the whole match. Bad patterns and no-match both yield "".
func extractVersion(content, pattern, replace string, reverse bool) string {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return ""
	}

	matches := re.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return ""
	}

	match := matches[0]
	if reverse {
		match = matches[len(matches)-1]
	}

	if replace != "" {
		return applyReplace(re, match, replace)
	}
	if re.NumSubexp() > 0 && len(match) > 1 {
		return match[1]
	}
	return match[0]
}

// applyReplace substitutes every ${name} occurrence in the template with
// the corresponding named capture group's text.
func applyReplace(re *regexp.Regexp, match []string, template string) string {
	result := template
	for i, name := range re.SubexpNames() {
		if name == "" || i >= len(match) {
			continue
		}
		result = strings.ReplaceAll(result, "${"+name+"}", match[i])
	}
	return result
}
