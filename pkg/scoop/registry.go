package scoop

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Runner executes external commands on behalf of the registry. The
// internal/executor package provides the production implementation; tests
// substitute fakes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// Registry is the orchestrator over Scoop's on-disk state and command line.
// It holds no state across calls beyond the read-only root path; every
// operation re-derives its result from disk or network.
type Registry struct {
	root    string
	runner  Runner
	checker *Checker
}

// NewRegistry validates the install root and returns a registry over it.
// The root must exist and contain an apps subdirectory; anything else fails
// fast here rather than surfacing as empty results later.
func NewRegistry(root string, runner Runner, checker *Checker) (*Registry, error) {
	if root == "" {
		return nil, ErrInvalidRoot
	}
	info, err := os.Stat(filepath.Join(root, "apps"))
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, root)
	}
	if checker == nil {
		checker = NewChecker()
	}
	return &Registry{root: root, runner: runner, checker: checker}, nil
}

// Root returns the validated install root.
func (r *Registry) Root() string {
	return r.root
}

// Checker returns the version-check engine bound to this registry.
func (r *Registry) Checker() *Checker {
	return r.checker
}

// Installed enumerates all installed apps, resolving their descriptors
// concurrently. A directory without a valid manifest is excluded, never an
// error. Results are sorted by name.
func (r *Registry) Installed(ctx context.Context) ([]App, error) {
	names, err := r.installedNames()
	if err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		apps []App
	)
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if app := readApp(r.root, name); app != nil {
				mu.Lock()
				apps = append(apps, *app)
				mu.Unlock()
			}
		}(name)
	}
	wg.Wait()

	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })
	return apps, nil
}

// Get resolves a single installed app by name.
func (r *Registry) Get(_ context.Context, name string) (*App, error) {
	app := readApp(r.root, name)
	if app == nil {
		return nil, fmt.Errorf("%w: %s", ErrAppNotFound, name)
	}
	return app, nil
}

// installedNames lists the subdirectories of apps; directory name is the
// app's identity.
func (r *Registry) installedNames() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.root, "apps"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, r.root)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// CheckLatest resolves the latest upstream version for one app. "" means
// the check could not determine one.
func (r *Registry) CheckLatest(ctx context.Context, app App) string {
	return r.checker.Latest(ctx, app)
}

// CheckResult pairs an app with its resolved latest version.
type CheckResult struct {
	App    App
	Latest string // "" when undeterminable
}

// HasUpdate reports whether the check found a version differing from the
// installed one.
func (c CheckResult) HasUpdate() bool {
	return c.Latest != "" && c.Latest != NormalizeVersion(c.App.Version) && c.Latest != c.App.Version
}

// CheckAll runs version checks for all given apps concurrently. Failures
// are per-item: an app whose check fails is reported with an empty Latest,
// never dropped.
func (r *Registry) CheckAll(ctx context.Context, apps []App) []CheckResult {
	results := make([]CheckResult, len(apps))
	var wg sync.WaitGroup
	for i, app := range apps {
		wg.Add(1)
		go func(i int, app App) {
			defer wg.Done()
			results[i] = CheckResult{App: app, Latest: r.checker.Latest(ctx, app)}
		}(i, app)
	}
	wg.Wait()
	return results
}

// Install delegates to scoop install with the bucket-qualified spec.
func (r *Registry) Install(ctx context.Context, spec string) error {
	if err := r.runner.Run(ctx, "scoop", "install", spec); err != nil {
		return &OpError{Op: "install", App: spec, Err: err}
	}
	return nil
}

// Update delegates to scoop update for one app.
func (r *Registry) Update(ctx context.Context, name string) error {
	if err := r.runner.Run(ctx, "scoop", "update", name); err != nil {
		return &OpError{Op: "update", App: name, Err: err}
	}
	return nil
}

// Uninstall delegates to scoop uninstall.
func (r *Registry) Uninstall(ctx context.Context, name string) error {
	if err := r.runner.Run(ctx, "scoop", "uninstall", name); err != nil {
		return &OpError{Op: "uninstall", App: name, Err: err}
	}
	return nil
}

// Reset delegates to scoop reset, repairing shims and shortcuts.
func (r *Registry) Reset(ctx context.Context, name string) error {
	if err := r.runner.Run(ctx, "scoop", "reset", name); err != nil {
		return &OpError{Op: "reset", App: name, Err: err}
	}
	return nil
}

// ScoopVersion reports the installed scoop version, first line only.
func (r *Registry) ScoopVersion(ctx context.Context) (string, error) {
	out, err := r.runner.Output(ctx, "scoop", "--version")
	if err != nil {
		return "", &OpError{Op: "version", App: "scoop", Err: err}
	}
	out = strings.TrimSpace(out)
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		out = strings.TrimSpace(out[:i])
	}
	return out, nil
}

// OpenFolder reveals the app's install directory in the file explorer.
// explorer.exe exits non-zero even on success, so exit status alone is not
// treated as failure here; only a command that could not start surfaces.
func (r *Registry) OpenFolder(ctx context.Context, name string) error {
	app, err := r.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := r.runner.Run(ctx, "explorer", app.InstallDir); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return &OpError{Op: "open", App: name, Err: err}
	}
	return nil
}

// installedSet returns the lower-cased installed-name set used for catalog
// membership tests.
func (r *Registry) installedSet() (map[string]struct{}, error) {
	names, err := r.installedNames()
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return set, nil
}
