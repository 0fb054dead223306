package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sln2cmake/sln2cmake-go/internal/models"
)

func TestQuietFormatter(t *testing.T) {
	tests := []struct {
		name     string
		result   *Result
		expected string
	}{
		{
			name:     "clean conversion",
			result:   &Result{Solution: "TestSolution", Targets: 2},
			expected: "TestSolution: 2 targets converted\n",
		},
		{
			name: "with warnings",
			result: &Result{
				Solution: "TestSolution",
				Targets:  2,
				Diagnostics: []models.Diagnostic{
					{Kind: models.DiagPropertyVariance, Project: "App", Property: "include_dirs", Message: "order differs"},
				},
			},
			expected: "TestSolution: 2 targets converted, 1 warnings\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter := &QuietFormatter{}
			err := formatter.Format(tt.result, &buf)

			if err != nil {
				t.Errorf("Format() returned error: %v", err)
			}

			if buf.String() != tt.expected {
				t.Errorf("Format() output mismatch:\nGot:  %q\nWant: %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestStandardFormatter(t *testing.T) {
	result := &Result{
		Solution:  "TestSolution",
		OutputDir: "/tmp/out",
		Targets:   2,
		Skipped:   1,
		Duration:  1500 * time.Millisecond,
		Diagnostics: []models.Diagnostic{
			{Kind: models.DiagUnsupportedProject, Project: "Installer", Message: "project type \"Utility\" cannot be converted; emitted as a skip marker"},
			{Kind: models.DiagPropertyVariance, Project: "App", Property: "include_dirs", Message: "order differs"},
		},
	}

	var buf bytes.Buffer
	if err := (&StandardFormatter{}).Format(result, &buf); err != nil {
		t.Fatalf("Format() returned error: %v", err)
	}

	got := buf.String()
	for _, want := range []string{
		"Converted TestSolution: 2 targets (1 skipped)",
		"output: /tmp/out",
		"warning [unsupported_project] Installer:",
		"warning [property_variance] App (include_dirs): order differs",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\nGot:\n%s", want, got)
		}
	}
}

func TestStandardFormatterDryRun(t *testing.T) {
	result := &Result{Solution: "TestSolution", Targets: 1, DryRun: true}

	var buf bytes.Buffer
	if err := (&StandardFormatter{}).Format(result, &buf); err != nil {
		t.Fatalf("Format() returned error: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "Would convert TestSolution") {
		t.Errorf("dry run must say so, got %q", buf.String())
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(VerbosityQuiet).(*QuietFormatter); !ok {
		t.Error("VerbosityQuiet should produce a QuietFormatter")
	}
	if _, ok := NewFormatter(VerbosityStandard).(*StandardFormatter); !ok {
		t.Error("VerbosityStandard should produce a StandardFormatter")
	}
}
