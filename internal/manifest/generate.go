package manifest

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/irida-samplelist/internal/config"
	"github.com/harrison/irida-samplelist/internal/display"
	"github.com/harrison/irida-samplelist/internal/filelock"
	"github.com/harrison/irida-samplelist/internal/fileutil"
	"github.com/harrison/irida-samplelist/internal/journal"
	"github.com/harrison/irida-samplelist/internal/logger"
	"github.com/harrison/irida-samplelist/internal/matcher"
	"github.com/harrison/irida-samplelist/internal/models"
	"github.com/harrison/irida-samplelist/internal/samplesheet"
)

// Options configures a generate run
type Options struct {
	Directory   string
	Samplesheet string
	FileType    models.FileType
	Config      *config.Config
	Logger      logger.Logger

	// Out receives the manifest on dry runs
	Out io.Writer

	// Report receives the end-of-run warning blocks
	Report io.Writer

	// Now is used for journal timestamps; defaults to time.Now
	Now func() time.Time
}

// Generate runs the full pipeline: read the samplesheet, scan the directory,
// group matching files, rename them and write the manifest.
func Generate(ctx context.Context, opts Options) (*models.RunSummary, error) {
	start := time.Now()

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	report := opts.Report
	if report == nil {
		report = io.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	dir, err := samplesheet.ExpandHome(opts.Directory)
	if err != nil {
		return nil, err
	}
	if dir, err = filepath.Abs(dir); err != nil {
		return nil, fmt.Errorf("failed to resolve directory: %w", err)
	}

	pattern := cfg.Patterns.Fastq
	if opts.FileType == models.FileTypeFasta {
		pattern = cfg.Patterns.Fasta
	}
	m, err := matcher.New(opts.FileType, pattern)
	if err != nil {
		return nil, err
	}

	samples, err := samplesheet.Read(ctx, opts.Samplesheet, samplesheet.Options{
		DateFormat: cfg.DateFormat,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Read %d samples from %s", len(samples), opts.Samplesheet)

	if !cfg.DryRun {
		release, err := filelock.LockDir(dir, config.LockName)
		if err != nil {
			return nil, err
		}
		defer func() {
			if rerr := release(); rerr != nil {
				log.Warnf("%v", rerr)
			}
		}()
	}

	scan, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{Ignore: cfg.Ignore})
	if err != nil {
		return nil, err
	}
	for _, serr := range scan.Errors {
		log.Warnf("%v", serr)
	}
	for _, name := range scan.Ignored {
		log.Tracef("Ignoring %s", name)
	}
	log.Infof("Found %d candidate files in %s", len(scan.Files), dir)

	groups := matcher.Group(scan.Files, m, cfg.MinFileSize, log)
	plan := BuildPlan(dir, samples, groups, opts.FileType, log)

	summary := &models.RunSummary{
		Directory:    dir,
		Rows:         len(plan.Rows),
		SkippedFiles: groups.Skipped,
		Unlisted:     plan.Unlisted,
		Missing:      plan.Missing,
		DryRun:       cfg.DryRun,
	}

	if cfg.DryRun {
		for _, r := range plan.Renames {
			log.Infof("Would rename %s -> %s", r.OldName, r.NewName)
		}
		if err := Encode(out, plan.Rows); err != nil {
			return nil, err
		}
	} else {
		applied, rerr := ApplyRenames(dir, plan.Renames, log)
		summary.Renamed = len(applied)

		if cfg.Journal && len(applied) > 0 {
			runID := uuid.NewString()
			if jerr := journal.Append(dir, journal.NewRecords(runID, dir, applied, now())); jerr != nil {
				if rerr != nil {
					return summary, fmt.Errorf("%v; additionally the journal could not be written: %w", rerr, jerr)
				}
				return summary, jerr
			}
			log.Debugf("Journaled %d renames under run %s", len(applied), runID)
		}
		if rerr != nil {
			return summary, rerr
		}

		manifestPath := filepath.Join(dir, cfg.ManifestName)
		if err := Write(manifestPath, plan.Rows); err != nil {
			return summary, err
		}
		summary.Manifest = manifestPath
		log.Infof("Wrote %d rows to %s", len(plan.Rows), manifestPath)
	}

	reportUnmatched(report, plan)

	summary.Duration = time.Since(start)
	return summary, nil
}

// reportUnmatched prints a warning block for samples that were not uploaded
func reportUnmatched(out io.Writer, plan *Plan) {
	if len(plan.Missing) > 0 {
		display.Warning{
			Title:      fmt.Sprintf("%d samplesheet sample(s) have no usable files", len(plan.Missing)),
			Label:      "Samples",
			Items:      plan.Missing,
			Suggestion: "Check the file type (--fastq/--fasta), the minimum file size and the file names in the directory",
		}.Display(out)
	}
	if len(plan.Unlisted) > 0 {
		display.Warning{
			Title:   fmt.Sprintf("%d sample(s) in the directory are not in the samplesheet", len(plan.Unlisted)),
			Message: "Their files were left untouched and are not part of the manifest",
			Label:   "Samples",
			Items:   plan.Unlisted,
		}.Display(out)
	}
}
