package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/irida-samplelist/internal/logger"
	"github.com/harrison/irida-samplelist/internal/models"
)

// ApplyRenames performs the renames inside dir in order. It returns the
// renames that succeeded, also when it stops early on an error, so the caller
// can journal them.
func ApplyRenames(dir string, renames []models.Rename, log logger.Logger) ([]models.Rename, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	applied := make([]models.Rename, 0, len(renames))
	for _, r := range renames {
		from := filepath.Join(dir, r.OldName)
		to := filepath.Join(dir, r.NewName)

		if err := os.Rename(from, to); err != nil {
			return applied, fmt.Errorf("failed to rename %s to %s: %w", r.OldName, r.NewName, err)
		}
		log.Debugf("Renamed %s -> %s", r.OldName, r.NewName)
		applied = append(applied, r)
	}

	return applied, nil
}
