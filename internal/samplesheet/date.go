package samplesheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// FormatDate renders a samplesheet sequencing date for use in filenames. With
// an empty layout the value is kept verbatim; otherwise it is parsed leniently
// and re-rendered with the Go layout.
func FormatDate(value, layout string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("sequencing date is empty")
	}

	if layout == "" {
		if strings.ContainsAny(value, `/\`) {
			return "", fmt.Errorf("sequencing date %q cannot be used in a file name; set a date format to normalize it", value)
		}
		return value, nil
	}

	parsed, err := parseDate(value)
	if err != nil {
		return "", fmt.Errorf("could not parse sequencing date %q: %w", value, err)
	}

	formatted := parsed.Format(layout)
	if strings.ContainsAny(formatted, `/\`) {
		return "", fmt.Errorf("date format %q produces a path separator", layout)
	}
	return formatted, nil
}

func parseDate(value string) (time.Time, error) {
	res, err := dateparse.ParseAny(value)
	if err == nil {
		return res, nil
	}

	// Sequencer run sheets sometimes use day-month-year with a month name,
	// which dateparse does not understand
	for _, layout := range []string{"02-Jan-2006", "02-Jan-06", "2-Jan-2006"} {
		if res, lerr := time.Parse(layout, value); lerr == nil {
			return res, nil
		}
	}

	return time.Time{}, err
}
