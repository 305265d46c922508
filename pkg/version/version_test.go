package version

import (
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	origVersion, origCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })

	tests := []struct {
		version, commit, want string
	}{
		{"dev", "none", "dev"},
		{"", "none", "dev"},
		{"1.2.0", "abcdef1234567", "1.2.0 (abcdef1)"},
		{"1.2.0", "abc", "1.2.0 (abc)"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Summary(); got != tt.want {
			t.Errorf("Summary() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

func TestInfo(t *testing.T) {
	info := Info()
	for _, part := range []string{"tripplanner version", "commit:", "go:", Platform()} {
		if !strings.Contains(info, part) {
			t.Errorf("Expected Info() to contain %q, got %q", part, info)
		}
	}
}
