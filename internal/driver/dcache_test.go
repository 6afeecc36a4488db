package driver

import (
	"reflect"
	"testing"

	"sable/internal/diag"
)

func openTestCache(t *testing.T) *DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("sable")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	return cache
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t)

	key := [32]byte{1, 2, 3}
	in := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        "proj/main.sbl",
		ContentHash: key,
		Diagnostics: []CachedDiagnostic{
			{Severity: uint8(diag.SevError), Code: uint16(diag.SemaUndeclaredVariable), Line: 3, Col: 5, Message: "use of undeclared variable 'x'"},
		},
		Functions:   []CachedFunction{{Name: "main", Class: 1, Line: 1}},
		GlobalCount: 2,
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatalf("expected a hit")
	}
	if !reflect.DeepEqual(*in, out) {
		t.Fatalf("payload changed across the round trip:\nput %+v\ngot %+v", *in, out)
	}

	var miss DiskPayload
	if hit, err := cache.Get([32]byte{9}, &miss); err != nil || hit {
		t.Fatalf("expected a clean miss, got hit=%v err=%v", hit, err)
	}
}

func TestDiskCacheRejectsForeignSchema(t *testing.T) {
	cache := openTestCache(t)

	key := [32]byte{7}
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1, Path: "x.sbl"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out DiskPayload
	if hit, err := cache.Get(key, &out); err != nil || hit {
		t.Fatalf("a foreign schema must read as a miss, got hit=%v err=%v", hit, err)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache := openTestCache(t)

	key := [32]byte{4}
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion, Path: "x.sbl"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	var out DiskPayload
	if hit, _ := cache.Get(key, &out); hit {
		t.Fatalf("expected the entry to be gone")
	}
	// A second drop sees no directory and stays quiet.
	if err := cache.DropAll(); err != nil {
		t.Fatalf("second DropAll: %v", err)
	}
}

func TestPayloadFromResultSkipsTimings(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.sbl", `int x = 5;
void main() {
	ghost = 1;
}
`)

	res, err := AnalyzeWithOptions(path, AnalyzeOptions{EnableTimings: true})
	if err != nil {
		t.Fatalf("AnalyzeWithOptions: %v", err)
	}
	payload := payloadFromResult(res)
	if payload == nil {
		t.Fatalf("expected a payload")
	}
	if payload.Schema != diskCacheSchemaVersion {
		t.Fatalf("payload schema not stamped")
	}
	if payload.ContentHash != res.File.Hash {
		t.Fatalf("payload must carry the content hash")
	}
	for _, row := range payload.Diagnostics {
		if diag.Code(row.Code) == diag.ObsTimings {
			t.Fatalf("timing diagnostics must not be cached")
		}
	}
	if len(payload.Diagnostics) != 1 {
		t.Fatalf("expected 1 cached diagnostic, got %d", len(payload.Diagnostics))
	}
	if payload.Diagnostics[0].Line != 3 || payload.Diagnostics[0].Col != 2 {
		t.Fatalf("expected the assignment at 3:2, got %d:%d",
			payload.Diagnostics[0].Line, payload.Diagnostics[0].Col)
	}
	if payload.GlobalCount != 1 || len(payload.Functions) != 1 {
		t.Fatalf("summary counts wrong: globals=%d functions=%d",
			payload.GlobalCount, len(payload.Functions))
	}
}

func TestPayloadKeepsProgramLevelLineZero(t *testing.T) {
	path := writeSource(t, t.TempDir(), "noentry.sbl", `int helper() { return 0; }
`)

	res, err := Analyze(path, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	payload := payloadFromResult(res)
	if len(payload.Diagnostics) != 1 {
		t.Fatalf("expected only the missing-entry diagnostic, got %d", len(payload.Diagnostics))
	}
	row := payload.Diagnostics[0]
	if diag.Code(row.Code) != diag.SemaMissingEntry {
		t.Fatalf("expected [%s], got [%s]", diag.SemaMissingEntry.ID(), diag.Code(row.Code).ID())
	}
	if row.Line != 0 || row.Col != 0 {
		t.Fatalf("program-level diagnostics keep line zero, got %d:%d", row.Line, row.Col)
	}
}
