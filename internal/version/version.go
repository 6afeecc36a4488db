// Package version records build metadata stamped in at link time.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// Release builds override these, for example:
//
//	go build -ldflags "-X sable/internal/version.Version=0.2.0"
var (
	Version    = "0.1.0-dev"
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = ""
)

var partColors = [...]*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders the major.minor.patch parts of Version in distinct
// colors. A pre-release suffix stays attached to the patch part, and
// short versions color only the parts they have.
func Colored() string {
	parts := strings.SplitN(Version, ".", len(partColors))
	for i, part := range parts {
		parts[i] = partColors[i].Sprint(part)
	}
	return strings.Join(parts, ".")
}
