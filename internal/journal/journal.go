// Package journal records the renames made in a directory so that the most
// recent run can be undone.
package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/harrison/irida-samplelist/internal/config"
	"github.com/harrison/irida-samplelist/internal/filelock"
	"github.com/harrison/irida-samplelist/internal/logger"
	"github.com/harrison/irida-samplelist/internal/models"
)

// ErrEmpty is returned by Revert when the directory has no journaled renames
var ErrEmpty = errors.New("no journaled renames to revert")

// Path returns the journal location inside dir
func Path(dir string) string {
	return filepath.Join(dir, config.JournalName)
}

// NewRecords converts applied renames into journal rows for one run
func NewRecords(runID, dir string, renames []models.Rename, at time.Time) []models.RenameRecord {
	stamp := at.Format(time.RFC3339)
	records := make([]models.RenameRecord, 0, len(renames))
	for _, r := range renames {
		records = append(records, models.RenameRecord{
			RunID:     runID,
			RenamedAt: stamp,
			Directory: dir,
			OldName:   r.OldName,
			NewName:   r.NewName,
		})
	}
	return records
}

// Load reads every journaled rename in dir. A missing journal yields no records.
func Load(dir string) ([]models.RenameRecord, error) {
	data, err := os.ReadFile(Path(dir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	records := []models.RenameRecord{}
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse journal %s: %w", Path(dir), err)
	}
	return records, nil
}

// Append adds records to the journal in dir
func Append(dir string, records []models.RenameRecord) error {
	if len(records) == 0 {
		return nil
	}

	existing, err := Load(dir)
	if err != nil {
		return err
	}

	return save(dir, append(existing, records...))
}

func save(dir string, records []models.RenameRecord) error {
	if len(records) == 0 {
		if err := os.Remove(Path(dir)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove journal: %w", err)
		}
		return nil
	}

	data, err := gocsv.MarshalBytes(records)
	if err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}
	return filelock.AtomicWrite(Path(dir), data)
}

// RevertResult describes what Revert did
type RevertResult struct {
	RunID    string
	Restored int
	Skipped  int
}

// Revert undoes the renames of the most recent run recorded in dir, newest
// first, and drops that run from the journal. Renames whose new file is gone
// or whose original name is taken again are skipped with a warning; the
// entries of a run are removed even when some of them were skipped.
func Revert(dir string, log logger.Logger) (*RevertResult, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	records, err := Load(dir)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	result := &RevertResult{RunID: records[len(records)-1].RunID}

	keep := make([]models.RenameRecord, 0, len(records))
	var run []models.RenameRecord
	for _, rec := range records {
		if rec.RunID == result.RunID {
			run = append(run, rec)
		} else {
			keep = append(keep, rec)
		}
	}

	for i := len(run) - 1; i >= 0; i-- {
		rec := run[i]
		from := filepath.Join(dir, rec.NewName)
		to := filepath.Join(dir, rec.OldName)

		if _, err := os.Stat(from); err != nil {
			log.Warnf("Cannot restore %s: %s is missing", rec.OldName, rec.NewName)
			result.Skipped++
			continue
		}
		if _, err := os.Stat(to); err == nil {
			log.Warnf("Cannot restore %s: a file with that name already exists", rec.OldName)
			result.Skipped++
			continue
		}

		if err := os.Rename(from, to); err != nil {
			// Leave the journal untouched so the revert can be retried
			return result, fmt.Errorf("failed to restore %s: %w", rec.OldName, err)
		}
		log.Debugf("Restored %s -> %s", rec.NewName, rec.OldName)
		result.Restored++
	}

	if err := save(dir, keep); err != nil {
		return result, err
	}

	return result, nil
}
