package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/ddmcalc/internal/config"
	"github.com/agbru/ddmcalc/internal/orchestration"
	"github.com/agbru/ddmcalc/internal/sensitivity"
	"github.com/agbru/ddmcalc/internal/valuation"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()

	t.Run("without ticker", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionConfig(config.Default(), &buf)
		out := buf.String()
		for _, want := range []string{"Execution Configuration", "$2.00", "10.00%", "30s"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "Dividend history") {
			t.Errorf("no ticker was configured:\n%s", out)
		}
	})

	t.Run("with ticker", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		cfg := config.Default()
		cfg.Ticker = "KO"
		cfg.CacheTTL = 10 * time.Minute
		PrintExecutionConfig(cfg, &buf)
		if !strings.Contains(buf.String(), "Dividend history: KO (cached for 10m0s)") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := valuation.GlobalFactory()

	t.Run("Single model", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode([]valuation.Calculator{factory.MustGet("gordon")}, &buf)
		if !strings.Contains(buf.String(), "Single valuation with the Gordon Growth Model") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("All models", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode(orchestration.GetCalculatorsToRun(orchestration.AllModels, factory), &buf)
		if !strings.Contains(buf.String(), "Comparison of all valuation models") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})
}

func TestDisplaySensitivity(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := sensitivity.GordonSurface(2.00, 0.10, 0.05, sensitivity.DefaultPoints)
	if err := DisplaySensitivity(&buf, s); err != nil {
		t.Fatalf("DisplaySensitivity: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Sensitivity Analysis") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "grid points defined") {
		t.Errorf("missing defined count:\n%s", out)
	}
}
