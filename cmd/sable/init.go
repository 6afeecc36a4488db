package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sable/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new sable project",
	Long: `Initialize a new sable project by creating a project manifest (sable.toml)
and a starter entry point (main.sbl). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target, err := resolveInitTarget(args)
	if err != nil {
		return err
	}

	st, err := os.Stat(target)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	case err != nil:
		return err
	case !st.IsDir():
		return fmt.Errorf("%q is not a directory", target)
	}

	// An existing manifest means the directory already belongs to a
	// project; refuse rather than overwrite.
	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	manifest := buildDefaultManifest(projectName(target))
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// A starter entry point, unless the directory brought its own.
	mainPath := filepath.Join(target, "main"+project.SourceExt)
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(starterProgram), 0o600); err != nil {
			return fmt.Errorf("failed to write main%s: %w", project.SourceExt, err)
		}
		createdMain = true
	}

	fmt.Fprintf(os.Stdout, "Initialized sable project in %s\n", relToCwd(target))
	fmt.Fprintf(os.Stdout, "  - %s\n", project.ManifestName)
	if createdMain {
		fmt.Fprintln(os.Stdout, "  - main.sbl")
	} else {
		fmt.Fprintln(os.Stdout, "  - main.sbl (existing)")
	}
	return nil
}

// resolveInitTarget turns the optional argument into an absolute
// directory path. No argument and "." both mean the working directory.
func resolveInitTarget(args []string) (string, error) {
	if len(args) == 0 || args[0] == "." {
		return os.Getwd()
	}
	if filepath.IsAbs(args[0]) {
		return args[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, args[0]), nil
}

// projectName derives the package name from the directory basename.
func projectName(dir string) string {
	name := strings.TrimSpace(filepath.Base(dir))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "sable-project"
	}
	return name
}

// relToCwd shortens the path for the summary line when possible.
func relToCwd(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}
	return rel
}

// buildDefaultManifest returns a minimal TOML manifest used as the
// project marker.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# Sable project manifest
[package]
name = "%s"

[analyze]
entry = "main"
`, name)
}

// starterProgram is the source written by init. It passes analysis
// cleanly, so a fresh project starts with zero diagnostics.
const starterProgram = `// Sable starter program.

int counter = 0;

int add(int a, int b) {
    int sum = a + b;
    return sum;
}

void main() {
    counter = add(counter, 1);
}
`
