package ui

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"ladle/pkg/scoop"
)

// Confirm prompts the user for yes/no confirmation.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	label := prompt
	if defaultYes {
		label += " [Y/n]"
	} else {
		label += " [y/N]"
	}

	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if defaultYes {
		p.Default = "y"
	}

	result, err := p.Run()
	if err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return defaultYes, nil // Return default on error
	}

	result = strings.ToLower(strings.TrimSpace(result))
	if result == "" {
		return defaultYes, nil
	}

	return result == "y" || result == "yes", nil
}

// SelectEntry prompts the user to select a catalog entry from a list.
func SelectEntry(entries []scoop.CatalogEntry, prompt string) (*scoop.CatalogEntry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no apps to select from")
	}

	if len(entries) == 1 {
		return &entries[0], nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ .Name | cyan }} {{ .Version | green }} [{{ .Bucket | magenta }}]",
		Inactive: "  {{ .Name }} {{ .Version | faint }} [{{ .Bucket | faint }}]",
		Selected: "✓ {{ .Name | cyan }} {{ .Version | green }} [{{ .Bucket | magenta }}]",
		Details: `
----------- App ------------
{{ "Name:" | faint }}	{{ .Name }}
{{ "Version:" | faint }}	{{ .Version }}
{{ "Bucket:" | faint }}	{{ .Bucket }}
{{ "Description:" | faint }}	{{ .Description }}`,
	}

	searcher := func(input string, index int) bool {
		entry := entries[index]
		return strings.Contains(strings.ToLower(entry.Name), strings.ToLower(input))
	}

	p := promptui.Select{
		Label:     prompt,
		Items:     entries,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
	}

	index, _, err := p.Run()
	if err != nil {
		return nil, err
	}

	return &entries[index], nil
}
