package misc

import "testing"

func TestGetAppName(t *testing.T) {
	// running under "go test" binary name ends with .test
	if got := GetAppName(); got != "twigwind" {
		t.Errorf("GetAppName() = %q, want %q", got, "twigwind")
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion() returned empty string")
	}
	if GetGitHash() == "" {
		t.Error("GetGitHash() returned empty string")
	}
}
