// Package display formats user-facing warning blocks printed at the end of a
// run.
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "2 samplesheet sample(s) have no usable files",
//	    Label:      "Samples",
//	    Items:      []string{"S7", "S9"},
//	    Suggestion: "Check the file names in the directory",
//	}
//	warning.Display(os.Stderr)
//
// Colors come from fatih/color and are dropped automatically when the output
// is not a terminal or NO_COLOR is set.
package display
