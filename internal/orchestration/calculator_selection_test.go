package orchestration

import (
	"testing"

	"github.com/agbru/ddmcalc/internal/valuation"
)

// TestGetCalculatorsToRun tests the GetCalculatorsToRun function.
func TestGetCalculatorsToRun(t *testing.T) {
	t.Parallel()
	factory := valuation.GlobalFactory()

	t.Run("Single model returns one calculator", func(t *testing.T) {
		t.Parallel()
		calcs := GetCalculatorsToRun("gordon", factory)
		if len(calcs) != 1 {
			t.Fatalf("Expected 1 calculator, got %d", len(calcs))
		}
		if calcs[0].Model() != valuation.GordonModel {
			t.Errorf("Model() = %v", calcs[0].Model())
		}
	})

	t.Run("All returns every model in display order", func(t *testing.T) {
		t.Parallel()
		calcs := GetCalculatorsToRun(AllModels, factory)
		if len(calcs) != len(valuation.Models) {
			t.Fatalf("Expected %d calculators, got %d", len(valuation.Models), len(calcs))
		}
		for i, m := range valuation.Models {
			if calcs[i].Model() != m {
				t.Errorf("calcs[%d] = %v, want %v", i, calcs[i].Model(), m)
			}
		}
	})

	t.Run("Alias resolves", func(t *testing.T) {
		t.Parallel()
		if calcs := GetCalculatorsToRun("multi-stage", factory); len(calcs) != 1 {
			t.Errorf("Expected 1 calculator, got %d", len(calcs))
		}
	})

	t.Run("Unknown model returns nil", func(t *testing.T) {
		t.Parallel()
		if calcs := GetCalculatorsToRun("capm", factory); calcs != nil {
			t.Errorf("Expected nil, got %v", calcs)
		}
	})
}
