package driver

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"sable/internal/diag"
)

func TestAnalyzeDirResultsStaySorted(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "c.sbl", `int main() { return 0; }
`)
	writeSource(t, dir, "a.sbl", `int main() { return 1; }
`)
	writeSource(t, dir, filepath.Join("lib", "b.sbl"), `int helper() { return 2; }
int main() { return helper(); }
`)

	fs, results, err := AnalyzeDir(context.Background(), dir, AnalyzeOptions{NoCache: true}, 4)
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if fs == nil {
		t.Fatalf("expected a fileset")
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	paths := make([]string, len(results))
	for i, r := range results {
		paths[i] = r.Path
	}
	if !sort.StringsAreSorted(paths) {
		t.Fatalf("results out of order: %v", paths)
	}
	for _, r := range results {
		if r.Program == nil {
			t.Fatalf("expected a program for %s", r.Path)
		}
		if r.Cached != nil {
			t.Fatalf("NoCache run must not serve cache hits")
		}
	}
}

func TestAnalyzeDirEmptyDirectory(t *testing.T) {
	fs, results, err := AnalyzeDir(context.Background(), t.TempDir(), AnalyzeOptions{NoCache: true}, 0)
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if fs == nil || len(results) != 0 {
		t.Fatalf("expected an empty run, got %d results", len(results))
	}
}

func TestAnalyzeDirTurnsLoadFailureIntoDiagnostic(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "good.sbl", `int main() { return 0; }
`)
	if err := os.Symlink(filepath.Join(dir, "void"), filepath.Join(dir, "broken.sbl")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, results, err := AnalyzeDir(context.Background(), dir, AnalyzeOptions{NoCache: true}, 1)
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	var broken *DirResult
	for i := range results {
		if filepath.Base(results[i].Path) == "broken.sbl" {
			broken = &results[i]
		}
	}
	if broken == nil {
		t.Fatalf("missing result slot for the unreadable file")
	}
	if !broken.HasErrors() {
		t.Fatalf("expected an I/O diagnostic for the unreadable file")
	}
	d := broken.Bag.Items()[0]
	if d.Code != diag.IOLoadFileError {
		t.Fatalf("expected [%s], got [%s]", diag.IOLoadFileError.ID(), d.Code.ID())
	}
	if broken.Program != nil {
		t.Fatalf("an unreadable file must not produce a program")
	}
	if broken.LoadErr == nil {
		t.Fatalf("expected the raw load error on the slot")
	}
}

func TestAnalyzeDirServesSecondRunFromCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeSource(t, dir, "main.sbl", `void main() {
	ghost = 1;
}
`)

	_, first, err := AnalyzeDir(context.Background(), dir, AnalyzeOptions{}, 1)
	if err != nil {
		t.Fatalf("first AnalyzeDir: %v", err)
	}
	if len(first) != 1 || first[0].Cached != nil {
		t.Fatalf("first run must analyze fresh")
	}
	if !first[0].HasErrors() {
		t.Fatalf("fixture should report an error")
	}

	_, second, err := AnalyzeDir(context.Background(), dir, AnalyzeOptions{}, 1)
	if err != nil {
		t.Fatalf("second AnalyzeDir: %v", err)
	}
	hit := second[0].Cached
	if hit == nil {
		t.Fatalf("second run should hit the disk cache")
	}
	if !second[0].HasErrors() {
		t.Fatalf("cached slot must preserve the error state")
	}
	if len(hit.Diagnostics) != 1 {
		t.Fatalf("expected 1 cached diagnostic, got %d", len(hit.Diagnostics))
	}
	row := hit.Diagnostics[0]
	if diag.Code(row.Code) != diag.SemaAssignUndeclared || row.Line != 2 {
		t.Fatalf("cached row lost fidelity: code %s line %d",
			diag.Code(row.Code).ID(), row.Line)
	}
	if len(hit.Functions) != 1 || hit.Functions[0].Name != "main" {
		t.Fatalf("cached summary lost the function list: %+v", hit.Functions)
	}
}

func TestAnalyzeDirCacheMissesOnEdit(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	path := writeSource(t, dir, "main.sbl", `int main() { return 0; }
`)

	if _, _, err := AnalyzeDir(context.Background(), dir, AnalyzeOptions{}, 1); err != nil {
		t.Fatalf("first AnalyzeDir: %v", err)
	}
	if err := os.WriteFile(path, []byte("int main() { return 42; }\n"), 0o600); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}

	_, results, err := AnalyzeDir(context.Background(), dir, AnalyzeOptions{}, 1)
	if err != nil {
		t.Fatalf("second AnalyzeDir: %v", err)
	}
	if results[0].Cached != nil {
		t.Fatalf("edited content must miss the cache")
	}
	if results[0].Program == nil {
		t.Fatalf("fresh slot should carry a program")
	}
}

func TestAnalyzeDirFileObserverCoversEveryFile(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.sbl", `int main() { return 0; }
`)
	writeSource(t, dir, "b.sbl", `int main() { return 0; }
`)

	var events []FileEvent
	opts := AnalyzeOptions{
		NoCache: true,
		// jobs=1 keeps the callback single-threaded.
		FileObserver: func(ev FileEvent) { events = append(events, ev) },
	}
	if _, _, err := AnalyzeDir(context.Background(), dir, opts, 1); err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}

	if len(events) != 4 {
		t.Fatalf("expected start+end per file, got %d events", len(events))
	}
	for i, ev := range events {
		if ev.Total != 2 {
			t.Fatalf("event %d: expected total 2, got %d", i, ev.Total)
		}
		wantStatus := PhaseStart
		if i%2 == 1 {
			wantStatus = PhaseEnd
		}
		if ev.Status != wantStatus {
			t.Fatalf("event %d: expected status %v, got %v", i, wantStatus, ev.Status)
		}
	}
	if events[0].Path != events[1].Path || events[2].Path != events[3].Path {
		t.Fatalf("start and end must pair per file: %v", events)
	}
}

func TestAnalyzeDirHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.sbl", `int main() { return 0; }
`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := AnalyzeDir(ctx, dir, AnalyzeOptions{NoCache: true}, 1); err == nil {
		t.Fatalf("expected the canceled context to surface as an error")
	}
}
