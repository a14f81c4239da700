package tutorial

import (
	"strings"
	"testing"
)

func TestPageFor(t *testing.T) {
	t.Parallel()
	for step := 1; step <= Steps; step++ {
		p := PageFor(step)
		if p.Step != step {
			t.Errorf("PageFor(%d).Step = %d", step, p.Step)
		}
		if p.Title == "" || p.NextLabel == "" {
			t.Errorf("PageFor(%d) missing title or next label", step)
		}
		if got := p.HasPrevious(); got != (step > 1) {
			t.Errorf("PageFor(%d).HasPrevious() = %v", step, got)
		}
	}
	if PageFor(0).Step != 1 || PageFor(99).Step != Steps {
		t.Error("PageFor should clamp out-of-range steps")
	}
	if got := PageFor(3).Heading(); got != "Step 3/5" {
		t.Errorf("Heading() = %q", got)
	}
}

func TestWorkedExamples(t *testing.T) {
	t.Parallel()
	if w := strings.Join(PageFor(2).Worked, "\n"); !strings.Contains(w, "= 20.00") {
		t.Errorf("zero-growth worked example = %q", w)
	}
	if w := strings.Join(PageFor(3).Worked, "\n"); !strings.Contains(w, "= 42.00") {
		t.Errorf("gordon worked example = %q", w)
	}
}

func TestCompletionNotes(t *testing.T) {
	t.Parallel()
	notes := CompletionNotes()
	if len(notes) != 2 {
		t.Fatalf("CompletionNotes() returned %d callouts", len(notes))
	}
	if notes[0].Label != "Using the DDM App" || !notes[0].Ordered || len(notes[0].Items) != 5 {
		t.Errorf("unexpected first note: %+v", notes[0])
	}
	if notes[1].Kind != KindBestPractice {
		t.Errorf("unexpected second note kind: %q", notes[1].Kind)
	}
	final := PageFor(Steps).Callouts
	if len(final) != 2 || final[0].Label != notes[0].Label {
		t.Error("final page should show the completion notes")
	}
}
