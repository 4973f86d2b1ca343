package app

import "testing"

func TestVersion_LdflagsWin(t *testing.T) {
	oldV, oldC := BuildVersion, BuildCommit
	t.Cleanup(func() { BuildVersion, BuildCommit = oldV, oldC })

	BuildVersion, BuildCommit = "v1.2.3", "abc123"
	if v, c := Version(); v != "v1.2.3" || c != "abc123" {
		t.Fatalf("Version() = %q, %q", v, c)
	}

	BuildVersion, BuildCommit = "", ""
	if v, c := Version(); v == "" || c == "" {
		t.Fatalf("Version() should never be empty, got %q, %q", v, c)
	}
}
