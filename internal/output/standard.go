package output

import (
	"fmt"
	"io"
	"time"
)

// StandardFormatter prints the conversion summary plus every diagnostic
// recorded along the way. Conversion is best-effort with human review
// expected, so each judgment call the engine made gets a line here.
type StandardFormatter struct{}

func (f *StandardFormatter) Format(result *Result, w io.Writer) error {
	verb := "Converted"
	if result.DryRun {
		verb = "Would convert"
	}
	fmt.Fprintf(w, "%s %s: %d targets (%d skipped) in %s\n",
		verb, result.Solution, result.Targets, result.Skipped, result.Duration.Round(time.Millisecond))
	if result.OutputDir != "" {
		fmt.Fprintf(w, "  output: %s\n", result.OutputDir)
	}

	for _, d := range result.Diagnostics {
		if d.Property != "" {
			fmt.Fprintf(w, "  warning [%s] %s (%s): %s\n", d.Kind, d.Project, d.Property, d.Message)
		} else {
			fmt.Fprintf(w, "  warning [%s] %s: %s\n", d.Kind, d.Project, d.Message)
		}
	}

	return nil
}
