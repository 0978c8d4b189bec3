// Package manifest turns a samplesheet and the files grouped from a directory
// into renames and the SampleList.csv consumed by the IRIDA uploader.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/irida-samplelist/internal/logger"
	"github.com/harrison/irida-samplelist/internal/matcher"
	"github.com/harrison/irida-samplelist/internal/models"
)

// Plan is the set of renames and manifest rows for one run
type Plan struct {
	Rows     []models.ManifestRow
	Renames  []models.Rename
	Missing  []string // Samplesheet samples with no usable files
	Unlisted []string // Grouped samples absent from the samplesheet
}

// ForwardName returns the new name of the forward (or only) file
func ForwardName(ft models.FileType, sample, date, ext string) string {
	if ft.Paired() {
		return fmt.Sprintf("%s_%s_R1%s", sample, date, ext)
	}
	return fmt.Sprintf("%s_%s%s", sample, date, ext)
}

// ReverseName returns the new name of the reverse read, empty for FASTA
func ReverseName(ft models.FileType, sample, date, ext string) string {
	if !ft.Paired() {
		return ""
	}
	return fmt.Sprintf("%s_%s_R2%s", sample, date, ext)
}

// BuildPlan walks the samplesheet in order and emits a row for every sample
// with a complete set of files. dir is consulted so that a rename never
// replaces an unrelated file.
func BuildPlan(dir string, samples []models.Sample, groups *matcher.Groups, ft models.FileType, log logger.Logger) *Plan {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	plan := &Plan{
		Rows:     make([]models.ManifestRow, 0, len(samples)),
		Renames:  make([]models.Rename, 0, 2*len(samples)),
		Missing:  make([]string, 0),
		Unlisted: make([]string, 0),
	}

	listed := make(map[string]bool, len(samples))
	claimed := make(map[string]string, 2*len(samples)) // new name -> sample
	for _, s := range samples {
		listed[s.Name] = true

		files, ok := groups.Get(s.Name)
		if !ok {
			log.Debugf("Sample %s has no matching files", s.Name)
			plan.Missing = append(plan.Missing, s.Name)
			continue
		}

		if !files.Complete(ft) {
			log.Warnf("Sample %s is missing a read file (forward: %q, reverse: %q), skipping", s.Name, files.Forward, files.Reverse)
			plan.Missing = append(plan.Missing, s.Name)
			continue
		}

		row := models.ManifestRow{
			SampleName:  s.Name,
			ProjectID:   s.ProjectID,
			FileForward: ForwardName(ft, s.Name, s.SequencingDate, files.Ext),
			FileReverse: ReverseName(ft, s.Name, s.SequencingDate, files.Ext),
		}

		renames := []models.Rename{{Sample: s.Name, OldName: files.Forward, NewName: row.FileForward}}
		if ft.Paired() {
			renames = append(renames, models.Rename{Sample: s.Name, OldName: files.Reverse, NewName: row.FileReverse})
		}

		if name, owner, clash := claimedBy(claimed, renames); clash {
			log.Warnf("Sample %s skipped: file name %s is already used by sample %s", s.Name, name, owner)
			plan.Missing = append(plan.Missing, s.Name)
			continue
		}
		if name, clash := clobbers(dir, renames); clash {
			log.Warnf("Sample %s skipped: renaming would overwrite existing file %s", s.Name, name)
			plan.Missing = append(plan.Missing, s.Name)
			continue
		}

		for _, r := range renames {
			claimed[r.NewName] = s.Name
			if r.OldName != r.NewName {
				plan.Renames = append(plan.Renames, r)
			}
		}
		plan.Rows = append(plan.Rows, row)
	}

	for _, name := range groups.Order {
		if !listed[name] {
			plan.Unlisted = append(plan.Unlisted, name)
		}
	}

	return plan
}

// claimedBy reports the first rename target that an earlier sample of the
// plan already renames a file to
func claimedBy(claimed map[string]string, renames []models.Rename) (name, owner string, clash bool) {
	for _, r := range renames {
		if owner, ok := claimed[r.NewName]; ok {
			return r.NewName, owner, true
		}
	}
	return "", "", false
}

// clobbers reports the first rename target that already exists and is not
// one of the files being renamed
func clobbers(dir string, renames []models.Rename) (string, bool) {
	sources := make(map[string]bool, len(renames))
	for _, r := range renames {
		sources[r.OldName] = true
	}
	for _, r := range renames {
		if sources[r.NewName] {
			continue
		}
		if _, err := os.Lstat(filepath.Join(dir, r.NewName)); err == nil {
			return r.NewName, true
		}
	}
	return "", false
}
