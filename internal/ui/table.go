package ui

import (
	"fmt"
	"os"
	"text/tabwriter"

	"ladle/pkg/scoop"
)

// PrintApps prints installed apps in a formatted table.
func PrintApps(apps []scoop.App) {
	if len(apps) == 0 {
		MutedMsg("No apps found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, Bold("NAME")+"\t"+Bold("VERSION")+"\t"+Bold("BUCKET")+"\t"+Bold("DESCRIPTION"))

	for _, app := range apps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			AppName.Sprint(app.Name),
			AppVersion.Sprint(app.Version),
			AppBucket.Sprint(app.Bucket),
			truncate(app.Description, 50))
	}

	w.Flush()
}

// PrintCatalog prints catalog entries in a formatted table.
func PrintCatalog(entries []scoop.CatalogEntry) {
	if len(entries) == 0 {
		MutedMsg("No matching apps")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, Bold("BUCKET")+"\t"+Bold("NAME")+"\t"+Bold("VERSION")+"\t"+Bold("DESCRIPTION"))

	for _, entry := range entries {
		name := AppName.Sprint(entry.Name)
		if entry.Installed {
			name += " " + Installed.Sprint("[installed]")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			AppBucket.Sprint("["+entry.Bucket+"]"),
			name,
			AppVersion.Sprint(entry.Version),
			truncate(entry.Description, 50))
	}

	w.Flush()
}

// PrintCheckResults prints bulk version-check results.
func PrintCheckResults(results []scoop.CheckResult) {
	if len(results) == 0 {
		MutedMsg("Nothing to check")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, Bold("NAME")+"\t"+Bold("INSTALLED")+"\t"+Bold("LATEST")+"\t"+Bold("STATUS"))

	for _, res := range results {
		status := Muted.Sprint("up to date")
		latest := res.Latest
		switch {
		case res.Latest == "":
			status = Muted.Sprint("unknown")
			latest = "-"
		case res.HasUpdate():
			status = Update.Sprint("update available")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			AppName.Sprint(res.App.Name),
			AppVersion.Sprint(res.App.Version),
			latest,
			status)
	}

	w.Flush()
}

// PrintAppInfo prints detailed information for one installed app.
func PrintAppInfo(app *scoop.App) {
	if app == nil {
		ErrorMsg("No app information available")
		return
	}

	HeaderMsg("App Information")

	printField("Name", app.Name)
	printField("Version", app.Version)
	printField("Bucket", app.Bucket)

	if app.Description != "" {
		printField("Description", app.Description)
	}
	if app.Homepage != "" {
		printField("Homepage", app.Homepage)
	}
	if app.Executable != "" {
		printField("Executable", app.Executable)
	}
	printField("Install dir", app.InstallDir)
}

func printField(label, value string) {
	fmt.Printf("  %s %s\n", Muted.Sprintf("%-13s", label+":"), value)
}

// truncate shortens s to max runes. Counting runes rather than bytes keeps
// multi-byte descriptions from being split mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max-3]) + "..."
	}
	return s
}
