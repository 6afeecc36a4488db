package diag

import "testing"

func TestCodeIDAndKind(t *testing.T) {
	tests := []struct {
		code Code
		id   string
		kind string
	}{
		{LexUnknownChar, "LEX1001", "lexical"},
		{SynExpectSemicolon, "SYN2002", "syntax"},
		{SemaArityMismatch, "SEM3005", "semantic"},
		{IOLoadFileError, "IO4001", "io"},
		{ObsTimings, "OBS6001", "observability"},
		{UnknownCode, "E0000", "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("ID(%d) = %s, want %s", tt.code, got, tt.id)
		}
		if got := tt.code.Kind(); got != tt.kind {
			t.Errorf("Kind(%d) = %s, want %s", tt.code, got, tt.kind)
		}
	}
}

func TestCodeTitleFallsBack(t *testing.T) {
	if got := SemaMissingEntry.Title(); got != "No entry function" {
		t.Errorf("unexpected title %q", got)
	}
	if got := Code(3999).Title(); got != "Unknown error" {
		t.Errorf("expected the fallback title, got %q", got)
	}
	if got := SemaMissingEntry.String(); got != "[SEM3008]: No entry function" {
		t.Errorf("unexpected String %q", got)
	}
}
