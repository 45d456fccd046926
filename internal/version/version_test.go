package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// GitCommit and BuildDate are optional
	_ = GitCommit
	_ = BuildDate
}

func TestPlain(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "  1.2.3 "
	if got := Plain(); got != "1.2.3" {
		t.Errorf("Plain() = %q", got)
	}
	Version = ""
	if got := Plain(); got != "dev" {
		t.Errorf("Plain() = %q, want dev", got)
	}
}

func TestColored(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()

	color.NoColor = true
	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.0.0-beta.1", "nightly"} {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}

	color.NoColor = false
	Version = "1.2.3-rc.1"
	got := Colored()
	if got == Version {
		t.Errorf("Colored() did not add colour: %q", got)
	}
	if len(got) <= len(Version) {
		t.Errorf("Colored() = %q is shorter than the plain version", got)
	}
}

func TestCurrentPrefersLinkerValues(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = " abc123 ", "2026-01-02"
	b := Current()
	if b.Commit != "abc123" || b.Date != "2026-01-02" {
		t.Fatalf("Current() = %+v", b)
	}
	if b.Version != Plain() {
		t.Fatalf("Current().Version = %q, want %q", b.Version, Plain())
	}
}

func BenchmarkColored(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Colored()
	}
}
