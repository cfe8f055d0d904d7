// Package scoop reads Scoop's on-disk state and drives its command line.
package scoop

// App represents an installed Scoop application.
//
// Every field is re-derived from the manifest and install record on each
// enumeration; there is no persistent identity beyond the files under
// {root}/apps/{name}/current.
type App struct {
	Name        string `json:"name"`
	InstallDir  string `json:"install_dir"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Homepage    string `json:"homepage"`
	// Executable is the primary launchable entry relative to InstallDir.
	// Empty is a valid state: libraries and fonts ship no binary.
	Executable string      `json:"executable"`
	Check      CheckConfig `json:"-"`
	// Bucket is the source the app was installed from, "unknown" when the
	// install record does not say.
	Bucket string `json:"bucket"`
}

// CatalogEntry describes an installable app found in a bucket.
//
// Installed is a point-in-time snapshot taken when the catalog was loaded;
// it is never re-validated by this package.
type CatalogEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Homepage    string `json:"homepage"`
	Bucket      string `json:"bucket"`
	Installed   bool   `json:"installed"`
}

// Spec is the bucket-qualified form used when installing from the catalog.
func (e CatalogEntry) Spec() string {
	if e.Bucket == "" {
		return e.Name
	}
	return e.Bucket + "/" + e.Name
}
