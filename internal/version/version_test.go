package version

import (
	"strings"
	"testing"
)

func TestBuildInfoInitialized(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if BuildTime == "" {
		t.Error("BuildTime should be initialized")
	}
	if GitCommit == "" {
		t.Error("GitCommit should be initialized")
	}
}

func TestString(t *testing.T) {
	s := String()
	if !strings.HasPrefix(s, "essaysite ") {
		t.Errorf("unexpected version line %q", s)
	}
	if !strings.Contains(s, "built "+BuildTime) {
		t.Errorf("version line %q lacks build time", s)
	}
}
