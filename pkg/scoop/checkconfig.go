package scoop

import (
	"bytes"
	"encoding/json"
)

// CheckConfig is the declarative "find the latest upstream version"
// configuration from a manifest's checkver field.
//
// Manifest authors write it in one of two shapes, discriminated at parse
// time: a bare string (the literal "github", or a regular expression to run
// against the homepage body) or a structured object selecting one of several
// sources. Both shapes are kept in this one union; IsString tells them apart.
type CheckConfig struct {
	// String form.
	IsString bool
	Pattern  string

	// Structured form. The source selectors are mutually exclusive by
	// convention; dispatch picks the first one that is set.
	GitHub      string
	SourceForge SourceForgeCheck
	URL         string

	// Extraction directives. Only Regex is executed; JSONPath and XPath are
	// accepted so that manifests carrying them still parse, but they never
	// produce a result.
	Regex    string
	JSONPath string
	XPath    string

	// Replace reconstructs the version from named capture groups using
	// ${group} placeholders.
	Replace string
	// Reverse selects the last regex match instead of the first.
	Reverse   bool
	UserAgent string

	// HasScript records that the manifest declared a checkver script.
	// Scripts are never executed; their presence makes the check a declared
	// no-op rather than a silent failure.
	HasScript bool
}

// SourceForgeCheck identifies a SourceForge project RSS feed.
type SourceForgeCheck struct {
	Project string
	Path    string
}

// IsZero reports whether no check source was declared at all.
func (c CheckConfig) IsZero() bool {
	return !c.IsString && !c.HasScript &&
		c.GitHub == "" && c.SourceForge.Project == "" && c.URL == ""
}

// checkConfigJSON mirrors the structured object form, including the short
// aliases bucket authors use in the wild.
type checkConfigJSON struct {
	GitHub      string          `json:"github"`
	SourceForge json.RawMessage `json:"sourceforge"`
	URL         string          `json:"url"`
	Regex       string          `json:"regex"`
	Re          string          `json:"re"`
	JSONPath    string          `json:"jsonpath"`
	JP          string          `json:"jp"`
	XPath       string          `json:"xpath"`
	Replace     string          `json:"replace"`
	Reverse     bool            `json:"reverse"`
	UserAgent   string          `json:"useragent"`
	Script      json.RawMessage `json:"script"`
}

type sourceForgeJSON struct {
	Project string `json:"project"`
	Path    string `json:"path"`
}

// UnmarshalJSON discriminates the two checkver shapes by the leading token.
func (c *CheckConfig) UnmarshalJSON(data []byte) error {
	*c = CheckConfig{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		c.IsString = true
		c.Pattern = s
		return nil
	}

	var raw checkConfigJSON
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	c.GitHub = raw.GitHub
	c.URL = raw.URL
	c.Regex = firstNonEmpty(raw.Regex, raw.Re)
	c.JSONPath = firstNonEmpty(raw.JSONPath, raw.JP)
	c.XPath = raw.XPath
	c.Replace = raw.Replace
	c.Reverse = raw.Reverse
	c.UserAgent = raw.UserAgent
	c.HasScript = len(bytes.TrimSpace(raw.Script)) > 0 &&
		!bytes.Equal(bytes.TrimSpace(raw.Script), []byte("null"))

	if len(raw.SourceForge) > 0 {
		sf := bytes.TrimSpace(raw.SourceForge)
		switch {
		case sf[0] == '"':
			var project string
			if err := json.Unmarshal(sf, &project); err != nil {
				return err
			}
			c.SourceForge.Project = project
		case sf[0] == '{':
			var obj sourceForgeJSON
			if err := json.Unmarshal(sf, &obj); err != nil {
				return err
			}
			c.SourceForge = SourceForgeCheck(obj)
		}
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
