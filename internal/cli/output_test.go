package cli

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/ddmcalc/internal/errors"
	"github.com/agbru/ddmcalc/internal/orchestration"
	"github.com/agbru/ddmcalc/internal/sensitivity"
	"github.com/agbru/ddmcalc/internal/valuation"
)

var sampleResults = []orchestration.ValuationResult{
	{Name: valuation.ZeroGrowthModel.String(), Model: valuation.ZeroGrowthModel, Value: valuation.Of(20)},
	{Name: valuation.GordonModel.String(), Model: valuation.GordonModel, Value: valuation.Of(42)},
	{Name: valuation.MultiStageModel.String(), Model: valuation.MultiStageModel, Err: apperrors.PreconditionError{GrowthLabel: "Stable growth rate", Growth: 0.12, RequiredReturn: 0.10}},
}

func TestWriteReportToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name       string
		outputFile string
		checkFunc  func(t *testing.T, filePath string)
	}{
		{
			name:       "Write report",
			outputFile: filepath.Join(tmpDir, "report.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("Failed to read output file: %v", err)
				}
				s := string(content)
				for _, want := range []string{
					"# Dividend Discount Model Valuation",
					"[Gordon Growth Model]", "Growth Rate = 5.00%", "Value = $42.00",
					"[Multi-Stage DDM]", "Error = Stable growth rate must be less than required return", "Value = n/a",
				} {
					if !strings.Contains(s, want) {
						t.Errorf("report missing %q:\n%s", want, s)
					}
				}
			},
		},
		{
			name:       "Empty output file (no write)",
			outputFile: "",
		},
		{
			name:       "Create nested directory",
			outputFile: filepath.Join(tmpDir, "nested", "dir", "report.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				if _, err := os.Stat(filePath); err != nil {
					t.Errorf("File should exist in nested directory: %v", err)
				}
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := WriteReportToFile(sampleResults, defaultInput, OutputConfig{OutputFile: tc.outputFile})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tc.checkFunc != nil {
				tc.checkFunc(t, tc.outputFile)
			}
		})
	}
}

func TestWriteSensitivityCSV(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "grid.csv")
	s := sensitivity.GordonSurface(2.00, 0.10, 0.05, 4)
	if err := WriteSensitivityCSV(path, s); err != nil {
		t.Fatalf("WriteSensitivityCSV: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 1+4*4 {
		t.Errorf("got %d records, want %d", len(records), 1+4*4)
	}
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()
	if got := FormatQuietResult(sampleResults[1]); got != "42.00" {
		t.Errorf("FormatQuietResult = %q, want 42.00", got)
	}
	if got := FormatQuietResult(sampleResults[2]); got != "undefined" {
		t.Errorf("FormatQuietResult(failed) = %q, want undefined", got)
	}
}

func TestDisplayQuietResults(t *testing.T) {
	t.Parallel()

	t.Run("single", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		DisplayQuietResults(&buf, sampleResults[1:2])
		if buf.String() != "42.00\n" {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("several", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		DisplayQuietResults(&buf, sampleResults)
		want := "zero 20.00\ngordon 42.00\nmultistage undefined\n"
		if buf.String() != want {
			t.Errorf("got %q, want %q", buf.String(), want)
		}
	})
}

func TestDisplaySaved(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplaySaved(&buf, "Report", "out/report.txt")
	if !strings.Contains(buf.String(), "Report saved to: out/report.txt") {
		t.Errorf("got %q", buf.String())
	}
}
