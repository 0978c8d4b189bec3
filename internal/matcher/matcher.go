// Package matcher recognizes pipeline output files by name and groups them
// per sample.
package matcher

import (
	"fmt"
	"regexp"

	"github.com/harrison/irida-samplelist/internal/models"
)

// Regex group names every pattern is expected to define
const (
	GroupSample = "sample"
	GroupRead   = "read"
)

// Read slots a FASTQ file can fill
const (
	SlotUnknown = iota
	SlotForward
	SlotReverse
)

// Match is the result of matching a single filename
type Match struct {
	Sample string // Sample name captured from the filename
	Read   string // Read tag (e.g. "_R1"), empty for FASTA
	Ext    string // Remainder of the filename after the last captured group
}

// Matcher matches filenames of one file type
type Matcher struct {
	fileType  models.FileType
	re        *regexp.Regexp
	sampleIdx int
	readIdx   int
}

// New compiles pattern for the given file type. FASTQ patterns must define the
// named groups "sample" and "read"; FASTA patterns only need "sample".
func New(fileType models.FileType, pattern string) (*Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid %s pattern: %w", fileType, err)
	}

	m := &Matcher{
		fileType:  fileType,
		re:        re,
		sampleIdx: re.SubexpIndex(GroupSample),
		readIdx:   re.SubexpIndex(GroupRead),
	}

	if m.sampleIdx < 0 {
		return nil, fmt.Errorf("%s pattern %q has no (?P<%s>...) group", fileType, pattern, GroupSample)
	}
	if fileType.Paired() && m.readIdx < 0 {
		return nil, fmt.Errorf("%s pattern %q has no (?P<%s>...) group", fileType, pattern, GroupRead)
	}

	return m, nil
}

// FileType returns the file type this matcher was built for
func (m *Matcher) FileType() models.FileType {
	return m.fileType
}

// Match applies the pattern to a bare filename
func (m *Matcher) Match(filename string) (Match, bool) {
	loc := m.re.FindStringSubmatchIndex(filename)
	if loc == nil {
		return Match{}, false
	}

	start, end := loc[2*m.sampleIdx], loc[2*m.sampleIdx+1]
	if start < 0 || start == end {
		return Match{}, false
	}

	out := Match{Sample: filename[start:end]}
	last := end

	if m.fileType.Paired() {
		rs, re := loc[2*m.readIdx], loc[2*m.readIdx+1]
		if rs < 0 {
			return Match{}, false
		}
		out.Read = filename[rs:re]
		if re > last {
			last = re
		}
	}

	out.Ext = filename[last:]
	return out, true
}

// ReadSlot maps a read tag onto the forward or reverse slot
func ReadSlot(read string) int {
	switch read {
	case "_R1", ".pair1":
		return SlotForward
	case "_R2", ".pair2":
		return SlotReverse
	}
	return SlotUnknown
}
