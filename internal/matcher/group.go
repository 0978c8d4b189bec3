package matcher

import (
	"github.com/harrison/irida-samplelist/internal/fileutil"
	"github.com/harrison/irida-samplelist/internal/logger"
	"github.com/harrison/irida-samplelist/internal/models"
)

// Groups holds the files found per sample, in first-seen order
type Groups struct {
	Files   map[string]*models.SampleFiles
	Order   []string
	Skipped int // Files that were not grouped
}

// Get returns the files for a sample
func (g *Groups) Get(sample string) (*models.SampleFiles, bool) {
	sf, ok := g.Files[sample]
	return sf, ok
}

// grouper accumulates files for a single directory scan
type grouper struct {
	matcher  *Matcher
	minSize  int64
	log      logger.Logger
	groups   *Groups
	tooSmall map[string]bool
}

// Group matches every file against m and collects the accepted ones per
// sample. A file is accepted only when its size is strictly greater than
// minSize.
func Group(files []fileutil.FileEntry, m *Matcher, minSize int64, log logger.Logger) *Groups {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	g := &grouper{
		matcher: m,
		minSize: minSize,
		log:     log,
		groups: &Groups{
			Files: make(map[string]*models.SampleFiles),
			Order: make([]string, 0),
		},
		tooSmall: make(map[string]bool),
	}

	for _, f := range files {
		match, ok := m.Match(f.Name)
		if !ok {
			g.log.Warnf("No matches for file %s", f.Name)
			g.groups.Skipped++
			continue
		}

		if m.FileType().Paired() {
			g.addPaired(f, match)
		} else {
			g.addSingle(f, match)
		}
	}

	// Drop the bookkeeping entries of samples removed along the way
	order := g.groups.Order[:0]
	for _, name := range g.groups.Order {
		if _, ok := g.groups.Files[name]; ok {
			order = append(order, name)
		}
	}
	g.groups.Order = order

	return g.groups
}

func (g *grouper) bigEnough(f fileutil.FileEntry) bool {
	return f.Size > g.minSize
}

func (g *grouper) warnTooSmall(sample string) {
	g.log.Warnf("Sample %s does not meet the minimum file size of %d bytes", sample, g.minSize)
}

// addPaired files a FASTQ read. Once any read of a sample is too small the
// sample is dropped, together with a mate that was already accepted.
func (g *grouper) addPaired(f fileutil.FileEntry, match Match) {
	name := match.Sample

	if g.tooSmall[name] {
		g.log.Debugf("Skipping %s: sample %s already failed the size check", f.Name, name)
		g.groups.Skipped++
		return
	}

	if !g.bigEnough(f) {
		g.tooSmall[name] = true
		g.groups.Skipped++
		if _, exists := g.groups.Files[name]; exists {
			// The accepted mate is discarded as well
			delete(g.groups.Files, name)
			g.groups.Skipped++
		}
		g.warnTooSmall(name)
		return
	}

	slot := ReadSlot(match.Read)
	if slot == SlotUnknown {
		g.log.Warnf("Unrecognized read tag %q in file %s", match.Read, f.Name)
		g.groups.Skipped++
		return
	}

	sf := g.entry(name, match.Ext)

	switch slot {
	case SlotForward:
		if sf.Forward != "" {
			g.duplicate(name, sf.Forward, f.Name)
			return
		}
		sf.Forward = f.Name
	case SlotReverse:
		if sf.Reverse != "" {
			g.duplicate(name, sf.Reverse, f.Name)
			return
		}
		sf.Reverse = f.Name
	}
}

// addSingle files a FASTA consensus file
func (g *grouper) addSingle(f fileutil.FileEntry, match Match) {
	name := match.Sample

	if !g.bigEnough(f) {
		g.warnTooSmall(name)
		g.groups.Skipped++
		return
	}

	if sf, exists := g.groups.Files[name]; exists {
		g.duplicate(name, sf.Forward, f.Name)
		return
	}

	sf := g.entry(name, match.Ext)
	sf.Forward = f.Name
	sf.Reverse = ""
}

// entry returns the SampleFiles for name, creating it on first use
func (g *grouper) entry(name, ext string) *models.SampleFiles {
	sf, exists := g.groups.Files[name]
	if !exists {
		sf = &models.SampleFiles{Name: name, Ext: ext}
		g.groups.Files[name] = sf
		g.groups.Order = append(g.groups.Order, name)
	}
	return sf
}

func (g *grouper) duplicate(sample, kept, dropped string) {
	g.log.Warnf("Sample %s has more than one matching file, keeping %s and ignoring %s", sample, kept, dropped)
	g.groups.Skipped++
}
