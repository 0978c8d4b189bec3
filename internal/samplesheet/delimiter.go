package samplesheet

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// preferredDelimiters breaks ties when more than one character looks like a
// delimiter, e.g. the dashes of ISO dates in every data row
var preferredDelimiters = []rune{',', '\t', ';', '|'}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	found := make(map[rune]bool, len(delimiters))
	for _, delim := range delimiters {
		if len(delim) > 0 {
			found[rune(delim[0])] = true
		}
	}

	for _, delim := range preferredDelimiters {
		if found[delim] {
			return delim
		}
	}

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}
