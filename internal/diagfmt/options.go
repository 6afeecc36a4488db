// Package diagfmt renders analysis results for the CLI: diagnostics as
// annotated source text or JSON, token streams, AST dumps, and the
// program summary.
package diagfmt

import "sable/internal/source"

// PathMode selects how diagnostics name files.
type PathMode uint8

const (
	PathModeAuto     PathMode = iota // as loaded, basename for long absolute paths
	PathModeAbsolute                 // always the full path
	PathModeRelative                 // relative to the file set base
	PathModeBasename                 // file name only
)

// renderPath maps a PathMode onto the file's own formatting modes.
func renderPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	case PathModeAuto:
		return f.FormatPath("auto", "")
	}
	return f.Path
}

// PrettyOpts configures the annotated-source renderer.
type PrettyOpts struct {
	Color     bool
	Context   int8 // surrounding source lines; negative suppresses context
	PathMode  PathMode
	Width     uint8 // max rendered line width, 0 unlimited
	ShowNotes bool
}

// JSONOpts configures the JSON document renderer.
type JSONOpts struct {
	IncludePositions bool // add line/col to locations
	PathMode         PathMode
	Max              int // output truncation, the Bag stays whole
	IncludeNotes     bool
}
