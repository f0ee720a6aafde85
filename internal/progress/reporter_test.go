package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter(&bytes.Buffer{}).(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewReporter(&bytes.Buffer{}).(*TerminalReporter); !ok {
		t.Error("expected TerminalReporter outside CI")
	}
}

func TestCIReporterKnownTotal(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{out: &buf}
	r.Start(2)
	r.Update(1, "/intro.md")
	r.Update(2, "/setup.md")
	r.Finish()

	out := buf.String()
	for _, want := range []string{"Starting import of 2 files", "[1/2] /intro.md", "[2/2] /setup.md", "Import complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCIReporterUnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{out: &buf}
	r.Start(Unknown)
	r.Update(3, "/docs/ch3.md")

	out := buf.String()
	if !strings.Contains(out, "[3] /docs/ch3.md") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "/-1") {
		t.Errorf("unknown total leaked into output:\n%s", out)
	}
}

func TestTerminalReporterSpinner(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{out: &buf}
	r.Update(1, "ignored before Start")
	r.Start(Unknown)
	r.Update(1, "/a.md")
	r.Update(2, "/b.md")
	r.Finish()
}
