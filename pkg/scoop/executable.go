package scoop

import "runtime"

// hostArchKey maps the running process architecture to the key scoop
// manifests use in their architecture blocks. Anything unrecognized maps to
// "unknown", which matches no block.
func hostArchKey() string {
	switch runtime.GOARCH {
	case "amd64":
		return "64bit"
	case "386":
		return "32bit"
	case "arm64":
		return "arm64"
	default:
		return "unknown"
	}
}

// executablePath resolves the app's primary launchable entry from the
// manifest. Resolution order: top-level shortcuts, top-level bin, then the
// architecture block for archKey (shortcuts before bin). Empty means the app
// declares no launchable binary, which is a valid state, not an error.
func executablePath(m *manifestFile, archKey string) string {
	if s := firstStringLeaf(m.Shortcuts); s != "" {
		return s
	}
	if s := firstStringLeaf(m.Bin); s != "" {
		return s
	}
	if arch, ok := m.Architecture[archKey]; ok {
		if s := firstStringLeaf(arch.Shortcuts); s != "" {
			return s
		}
		if s := firstStringLeaf(arch.Bin); s != "" {
			return s
		}
	}
	return ""
}

// firstStringLeaf finds the first string in an arbitrarily nested list
// structure. Manifests declare shortcuts/bin as a bare string, a list, or
// lists of lists, so the walk uses an explicit work stack rather than
// recursion. A bare string is its own leaf.
func firstStringLeaf(v any) string {
	if v == nil {
		return ""
	}

	stack := []any{v}
	for len(stack) > 0 {
		item := stack[0]
		stack = stack[1:]

		switch t := item.(type) {
		case string:
			return t
		case []any:
			// Prepend to preserve declaration order.
			stack = append(append([]any{}, t...), stack...)
		}
	}
	return ""
}
