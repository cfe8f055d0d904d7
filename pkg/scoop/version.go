package scoop

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// NormalizeVersion is the single funnel every check strategy passes through
// before its result reaches a caller. It parses the raw string as a semantic
// version, dropping decorations such as a leading "v", and returns "" when
// the input is not a semantic version at all.
//
// The cleaning rule is deliberately strict: a lowercase "v" prefix and
// missing minor/patch components are tolerated ("v2.0" -> "2.0.0"), but
// non-standard forms such as "V7.8.1" are rejected. One rule, applied at
// every call site.
func NormalizeVersion(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return ""
	}
	return v.String()
}
