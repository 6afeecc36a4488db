package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sable/internal/version"
)

const versionTagline = "every symbol accounted for"

// versionReport serves both output formats: pretty reads the fields,
// json encodes them. Metadata fields stay empty unless requested.
type versionReport struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sable build fingerprints",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("short", false, "print the bare version string only")
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	show := make(map[string]bool, 5)
	for _, name := range []string{"short", "hash", "message", "date", "full"} {
		v, err := flags.GetBool(name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		show[name] = v
	}

	full := show["full"]
	rep := buildVersionReport(show["hash"] || full, show["message"] || full, show["date"] || full)

	out := cmd.OutOrStdout()
	switch {
	case show["short"]:
		_, err := fmt.Fprintln(out, rep.Version)
		return err
	case format == "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	default:
		renderVersionPretty(out, rep)
		return nil
	}
}

func buildVersionReport(withHash, withMessage, withDate bool) versionReport {
	rep := versionReport{
		Tool:    "sable",
		Version: strings.TrimSpace(version.Version),
		Tagline: versionTagline,
	}
	if rep.Version == "" {
		rep.Version = "dev"
	}
	if withHash {
		rep.GitCommit = valueOrUnknown(strings.TrimSpace(version.GitCommit))
	}
	if withMessage {
		rep.GitMessage = valueOrUnknown(strings.TrimSpace(version.GitMessage))
	}
	if withDate {
		rep.BuildDate = valueOrUnknown(strings.TrimSpace(version.BuildDate))
	}
	return rep
}

func renderVersionPretty(out io.Writer, rep versionReport) {
	fmt.Fprintf(out, "%s %s (%s)\n", rep.Tool, rep.Version, rep.Tagline)

	shown := false
	rows := []struct{ label, value string }{
		{"commit", rep.GitCommit},
		{"message", rep.GitMessage},
		{"built", rep.BuildDate},
	}
	for _, row := range rows {
		if row.value != "" {
			fmt.Fprintf(out, "%s: %s\n", row.label, row.value)
			shown = true
		}
	}
	if !shown {
		fmt.Fprintln(out, "set --hash, --message, --date, or --full for more build trivia")
	}
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
