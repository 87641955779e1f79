package version

import "testing"

func TestBuildMetadataInitialized(t *testing.T) {
	// All three default to "unknown" until overridden via ldflags.
	for name, value := range map[string]string{
		"Version":   Version,
		"BuildTime": BuildTime,
		"GitCommit": GitCommit,
	} {
		if value == "" {
			t.Errorf("%s should not be empty", name)
		}
	}
}
