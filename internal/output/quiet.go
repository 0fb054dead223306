package output

import (
	"fmt"
	"io"
)

// QuietFormatter outputs a one-line summary per solution.
type QuietFormatter struct{}

func (f *QuietFormatter) Format(result *Result, w io.Writer) error {
	if len(result.Diagnostics) == 0 {
		fmt.Fprintf(w, "%s: %d targets converted\n", result.Solution, result.Targets)
		return nil
	}

	fmt.Fprintf(w, "%s: %d targets converted, %d warnings\n",
		result.Solution, result.Targets, len(result.Diagnostics))
	return nil
}
