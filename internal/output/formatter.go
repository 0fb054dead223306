package output

import (
	"io"
	"os"
	"time"

	"github.com/sln2cmake/sln2cmake-go/internal/models"
	"golang.org/x/term"
)

// Result summarizes one solution's conversion for reporting.
type Result struct {
	Solution    string
	OutputDir   string
	Targets     int
	Skipped     int
	Diagnostics []models.Diagnostic
	Duration    time.Duration
	DryRun      bool
}

// Formatter defines output formatting interface
type Formatter interface {
	Format(result *Result, w io.Writer) error
}

// VerbosityLevel determines output detail
type VerbosityLevel int

const (
	VerbosityQuiet    VerbosityLevel = iota // One-line summary
	VerbosityStandard                       // Per-solution summary + diagnostics
)

// NewFormatter creates appropriate formatter based on level
func NewFormatter(level VerbosityLevel) Formatter {
	switch level {
	case VerbosityQuiet:
		return &QuietFormatter{}
	default:
		return &StandardFormatter{}
	}
}

// GetDefaultVerbosity returns appropriate default based on environment
func GetDefaultVerbosity() VerbosityLevel {
	// CI/CD context
	if os.Getenv("CI") == "true" {
		return VerbosityStandard
	}

	// Non-interactive output (piped into another tool)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return VerbosityQuiet
	}

	return VerbosityStandard
}
