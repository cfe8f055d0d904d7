package scoop

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

func newTestChecker(t *testing.T, handler http.Handler) (*Checker, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	checker := NewChecker(
		WithHTTPClient(srv.Client()),
		WithGitHubAPI(srv.URL),
		WithSourceForgeBase(srv.URL),
	)
	return checker, srv
}

func TestLatestGitHubStringVariant(t *testing.T) {
	checker, srv := newTestChecker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo/releases" {
			http.NotFound(w, r)
			return
		}
		// Newest-first, with a prerelease on top.
		fmt.Fprint(w, `[
			{"tag_name": "v2.1.0-rc1", "prerelease": true},
			{"tag_name": "v2.0.0", "prerelease": false}
		]`)
	}))

	app := App{
		Homepage: "https://github.com/owner/repo",
		Check:    CheckConfig{IsString: true, Pattern: "github"},
	}
	if got := checker.Latest(context.Background(), app); got != "2.0.0" {
		t.Errorf("Latest() = %q, want %q", got, "2.0.0")
	}
	_ = srv
}

func TestLatestGitHubStructuredWithRegex(t *testing.T) {
	checker, _ := newTestChecker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"tag_name": "app-3.4", "prerelease": false}]`)
	}))

	app := App{
		Check: CheckConfig{
			GitHub:  "owner/repo",
			Regex:   `app-(?P<major>\d+)\.(?P<minor>\d+)`,
			Replace: "${major}.${minor}.0",
		},
	}
	if got := checker.Latest(context.Background(), app); got != "3.4.0" {
		t.Errorf("Latest() = %q, want %q", got, "3.4.0")
	}
}

func TestLatestGitHubRepoFromFullURL(t *testing.T) {
	var requested string
	checker, _ := newTestChecker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		fmt.Fprint(w, `[{"tag_name": "1.0.0", "prerelease": false}]`)
	}))

	app := App{Check: CheckConfig{GitHub: "https://github.com/owner/repo"}}
	checker.Latest(context.Background(), app)
	if requested != "/repos/owner/repo/releases" {
		t.Errorf("requested path %q", requested)
	}
}

func TestLatestSourceForge(t *testing.T) {
	checker, _ := newTestChecker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<rss><channel>
			<link>https://sourceforge.net/projects/tool/files/tool-v5.6.7.zip/download</link>
		</channel></rss>`)
	}))

	app := App{
		Check: CheckConfig{
			SourceForge: SourceForgeCheck{Project: "tool"},
			Regex:       `tool-(v[\d.]+)\.zip`,
		},
	}
	// Regex capture has its leading "v" stripped before normalization.
	if got := checker.Latest(context.Background(), app); got != "5.6.7" {
		t.Errorf("Latest() = %q, want %q", got, "5.6.7")
	}
}

func TestLatestURLVariant(t *testing.T) {
	checker, srv := newTestChecker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "download 1.0 then 2.0 then 3.0")
	}))

	app := App{
		Check: CheckConfig{
			URL:     srv.URL + "/downloads",
			Regex:   `(\d+\.\d+)`,
			Reverse: true,
		},
	}
	if got := checker.Latest(context.Background(), app); got != "3.0.0" {
		t.Errorf("Latest() = %q, want %q", got, "3.0.0")
	}
}

func TestLatestURLWithoutRegex(t *testing.T) {
	checker := NewChecker()
	app := App{Check: CheckConfig{URL: "https://example.invalid/page"}}
	// No extraction directive means no determinate result; no fetch happens.
	if got := checker.Latest(context.Background(), app); got != "" {
		t.Errorf("Latest() = %q, want empty", got)
	}
}

func TestLatestScriptIsNoOp(t *testing.T) {
	checker := NewChecker()
	app := App{Check: CheckConfig{HasScript: true, URL: "https://example.invalid"}}
	if got := checker.Latest(context.Background(), app); got != "" {
		t.Errorf("Latest() = %q, want empty", got)
	}
}

func TestLatestNetworkFailureCollapsesToEmpty(t *testing.T) {
	checker, srv := newTestChecker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	app := App{
		Homepage: "https://github.com/owner/repo",
		Check:    CheckConfig{IsString: true, Pattern: "github"},
	}
	if got := checker.Latest(context.Background(), app); got != "" {
		t.Errorf("Latest() = %q, want empty", got)
	}
	_ = srv
}

func TestLatestZeroConfig(t *testing.T) {
	checker := NewChecker()
	if got := checker.Latest(context.Background(), App{}); got != "" {
		t.Errorf("Latest() = %q, want empty", got)
	}
}

func TestGithubRepoFromHomepage(t *testing.T) {
	tests := []struct {
		homepage string
		expected string
	}{
		{"https://github.com/owner/repo", "owner/repo"},
		{"http://github.com/owner/repo", "owner/repo"},
		{"https://www.github.com/owner/repo/", "owner/repo"},
		{"https://github.com/owner/repo/releases", "owner/repo"},
		{"https://example.com/owner/repo", ""},
		{"https://github.com/owner", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.homepage, func(t *testing.T) {
			if got := githubRepoFromHomepage(tt.homepage); got != tt.expected {
				t.Errorf("githubRepoFromHomepage(%q) = %q, want %q", tt.homepage, got, tt.expected)
			}
		})
	}
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		pattern  string
		replace  string
		reverse  bool
		expected string
	}{
		{
			name:     "first match by default",
			content:  "1.0 2.0 3.0",
			pattern:  `(\d+\.\d+)`,
			expected: "1.0",
		},
		{
			name:     "reverse takes last match",
			content:  "1.0 2.0 3.0",
			pattern:  `(\d+\.\d+)`,
			reverse:  true,
			expected: "3.0",
		},
		{
			name:     "whole match without groups",
			content:  "version 4.5.6 here",
			pattern:  `\d+\.\d+\.\d+`,
			expected: "4.5.6",
		},
		{
			name:     "replace template",
			content:  "build 3-4",
			pattern:  `(?P<major>\d+)-(?P<minor>\d+)`,
			replace:  "${major}.${minor}.0",
			expected: "3.4.0",
		},
		{
			name:     "no match",
			content:  "nothing here",
			pattern:  `(\d+\.\d+)`,
			expected: "",
		},
		{
			name:     "malformed pattern",
			content:  "1.0",
			pattern:  `([`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractVersion(tt.content, tt.pattern, tt.replace, tt.reverse)
			if got != tt.expected {
				t.Errorf("extractVersion() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestApplyReplace(t *testing.T) {
	re := regexp.MustCompile(`(?P<major>\d+)\.(?P<minor>\d+)`)
	match := re.FindStringSubmatch("3.4")
	got := applyReplace(re, match, "${major}.${minor}.0")
	if got != "3.4.0" {
		t.Errorf("applyReplace() = %q, want %q", got, "3.4.0")
	}
}

func TestFirstFeedLink(t *testing.T) {
	body := "<rss><link>https://a.example/one</link><link>https://a.example/two</link></rss>"
	if got := firstFeedLink(body); got != "https://a.example/one" {
		t.Errorf("firstFeedLink() = %q", got)
	}
	if got := firstFeedLink("<rss></rss>"); got != "" {
		t.Errorf("firstFeedLink() = %q, want empty", got)
	}
}
