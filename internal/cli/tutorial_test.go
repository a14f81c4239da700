package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/ddmcalc/internal/tutorial"
)

func TestDisplayTutorialPage(t *testing.T) {
	t.Parallel()
	for step := 1; step <= tutorial.Steps; step++ {
		page := tutorial.PageFor(step)
		var buf bytes.Buffer
		DisplayTutorialPage(&buf, page)
		out := buf.String()

		if !strings.Contains(out, tutorial.Header) {
			t.Errorf("step %d: missing header", step)
		}
		if !strings.Contains(out, page.Heading()+": "+page.Title) {
			t.Errorf("step %d: missing heading %q:\n%s", step, page.Heading(), out)
		}
		if got := strings.Contains(out, "prev"); got != page.HasPrevious() {
			t.Errorf("step %d: prev shown = %v, want %v", step, got, page.HasPrevious())
		}
		if got := strings.Contains(out, "finish]"); got != (step == tutorial.Steps) {
			t.Errorf("step %d: finish shown = %v", step, got)
		}
		for _, c := range page.Callouts {
			if !strings.Contains(out, c.Label) {
				t.Errorf("step %d: missing callout %q", step, c.Label)
			}
		}
	}
}

func TestDisplayTutorialState(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	DisplayTutorialState(&buf, tutorial.New())
	if !strings.Contains(buf.String(), "Step 1/5") {
		t.Errorf("initial state should show step 1:\n%s", buf.String())
	}

	done := tutorial.New().Next().Next().Next().Next().Finish()
	buf.Reset()
	DisplayTutorialState(&buf, done)
	out := buf.String()
	for _, want := range []string{"Tutorial complete.", "Using the DDM App", "Best Practices"} {
		if !strings.Contains(out, want) {
			t.Errorf("completion output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Step ") {
		t.Errorf("completed tutorial should not show a step:\n%s", out)
	}
}
