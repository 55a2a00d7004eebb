package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the jfold CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// String renders the line printed by `jfold version`: the version with its
// numeric parts colored, then the commit and build date when known.
func String(colored bool) string {
	for _, c := range []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	core, suffix, _ := strings.Cut(Version, "-")
	v := Version
	if parts := strings.SplitN(core, ".", 3); len(parts) == 3 {
		v = versionMajorColor.Sprint(parts[0]) + "." +
			versionMinorColor.Sprint(parts[1]) + "." +
			versionPatchColor.Sprint(parts[2])
		if suffix != "" {
			v += "-" + suffix
		}
	}

	out := "jfold " + v
	if GitCommit != "" {
		out += fmt.Sprintf(" (%s)", GitCommit)
	}
	if BuildDate != "" {
		out += " built " + BuildDate
	}
	return out
}
