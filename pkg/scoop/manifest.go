package scoop

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	manifestFileName = "manifest.json"
	installFileName  = "install.json"

	// UnknownBucket is recorded when the install record does not name one.
	UnknownBucket = "unknown"
)

// manifestFile is the raw on-disk manifest shape. The shortcuts, bin and
// description fields are polymorphic by bucket-author convention, so they
// are decoded loosely and normalized afterwards.
type manifestFile struct {
	Version      string               `json:"version"`
	Description  any                  `json:"description"`
	Homepage     string               `json:"homepage"`
	Checkver     *CheckConfig         `json:"checkver"`
	Shortcuts    any                  `json:"shortcuts"`
	Bin          any                  `json:"bin"`
	Architecture map[string]archBlock `json:"architecture"`
}

type archBlock struct {
	Shortcuts any `json:"shortcuts"`
	Bin       any `json:"bin"`
}

// installFile is the sibling record written by scoop at install time.
type installFile struct {
	Bucket string `json:"bucket"`
}

// readApp loads and normalizes the descriptor pair for one installed app.
// Both files are required: a missing, unreadable or malformed manifest or
// install record yields nil so a single broken app never aborts enumeration
// of the rest. Only an install record whose bucket field is empty falls
// back to UnknownBucket.
func readApp(root, name string) *App {
	dir := filepath.Join(root, "apps", name, "current")

	m, ok := readManifestFile(filepath.Join(dir, manifestFileName))
	if !ok {
		return nil
	}
	inst, ok := readInstallFile(filepath.Join(dir, installFileName))
	if !ok {
		return nil
	}

	app := &App{
		Name:        name,
		InstallDir:  dir,
		Version:     m.Version,
		Description: normalizeDescription(m.Description),
		Homepage:    m.Homepage,
		Executable:  executablePath(m, hostArchKey()),
		Bucket:      inst.Bucket,
	}
	if app.Bucket == "" {
		app.Bucket = UnknownBucket
	}

	if m.Checkver != nil {
		app.Check = *m.Checkver
	}

	return app
}

func readManifestFile(path string) (*manifestFile, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var m manifestFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	return &m, true
}

func readInstallFile(path string) (*installFile, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var inst installFile
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, false
	}
	return &inst, true
}

// normalizeDescription collapses the string-or-list description field to a
// single line: the first element when it is a list, "" when absent or of an
// unexpected shape.
func normalizeDescription(v any) string {
	switch d := v.(type) {
	case string:
		return d
	case []any:
		for _, item := range d {
			if s, ok := item.(string); ok {
				return s
			}
		}
	}
	return ""
}
