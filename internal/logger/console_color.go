package logger

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harrison/irida-samplelist/internal/models"
)

// colorScheme defines consistent colors for different summary figures.
// Green: renamed files and manifest rows
// Yellow: skipped files and unlisted samples
// Red: samplesheet samples without files
// Cyan: labels
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme for summaries.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric with colorized label and value.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), scheme.value.Sprintf("%v", value))
}

// countMetric colors a count with c when it is non-zero, otherwise plain.
func countMetric(label string, count int, c *color.Color, scheme *colorScheme) string {
	if count == 0 {
		return formatColorizedMetric(label, count, scheme)
	}
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), c.Sprintf("%d", count))
}

// formatColorizedSummary renders a RunSummary with one timestamped line per figure.
func formatColorizedSummary(ts string, summary models.RunSummary, scheme *colorScheme) string {
	title := "=== Run Summary ==="
	if summary.DryRun {
		title = "=== Run Summary (dry run) ==="
	}

	lines := []string{
		color.New(color.Bold).Sprint(title),
		formatColorizedMetric("Directory", summary.Directory, scheme),
		countMetric("Manifest rows", summary.Rows, scheme.success, scheme),
		countMetric("Files renamed", summary.Renamed, scheme.success, scheme),
		countMetric("Files skipped", summary.SkippedFiles, scheme.warn, scheme),
		countMetric("Samples without files", len(summary.Missing), scheme.fail, scheme),
		countMetric("Samples not in samplesheet", len(summary.Unlisted), scheme.warn, scheme),
	}
	if summary.Manifest != "" {
		lines = append(lines, formatColorizedMetric("Manifest", summary.Manifest, scheme))
	}
	lines = append(lines, formatColorizedMetric("Duration", formatDuration(summary.Duration), scheme))

	var output string
	for _, line := range lines {
		output += fmt.Sprintf("[%s] %s\n", ts, line)
	}
	return output
}
