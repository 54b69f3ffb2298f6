package version

import (
	"strings"
	"testing"
)

func TestVersionStringNonEmpty(t *testing.T) {
	if s := String(); s == "" {
		t.Fatalf("version string is empty")
	}
}

func TestVersionStringIncludesCommit(t *testing.T) {
	oldC, oldD := Commit, Date
	t.Cleanup(func() { Commit, Date = oldC, oldD })
	Commit = "deadbeef"
	Date = "2025-01-02"
	s := String()
	if !strings.Contains(s, "(deadbeef)") || !strings.HasSuffix(s, "built 2025-01-02") {
		t.Fatalf("unexpected version string: %q", s)
	}
}
