package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/harrison/irida-samplelist/internal/config"
	"github.com/harrison/irida-samplelist/internal/filelock"
	"github.com/harrison/irida-samplelist/internal/journal"
	"github.com/harrison/irida-samplelist/internal/logger"
	"github.com/harrison/irida-samplelist/internal/samplesheet"
	"github.com/spf13/cobra"
)

// NewRevertCommand creates the revert subcommand
func NewRevertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revert",
		Short: "Undo the renames of the most recent run in a directory",
		Long: `Restore the original file names of the most recent run recorded in the
directory's rename journal (` + config.JournalName + `).

Renames are undone newest first. A file is left alone when its original name
has been taken again in the meantime. The manifest is not removed.`,
		Args: cobra.NoArgs,
		RunE: runRevert,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.Flags().StringP("directory", "d", ".", "Directory whose last run should be reverted")
	cmd.Flags().String("log-level", "info", "Log level: trace, debug, info, warn, error")

	return cmd
}

func runRevert(cmd *cobra.Command, args []string) error {
	directory, _ := cmd.Flags().GetString("directory")
	level, _ := cmd.Flags().GetString("log-level")

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), level)

	dir, err := samplesheet.ExpandHome(directory)
	if err != nil {
		return err
	}
	if dir, err = filepath.Abs(dir); err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}

	release, err := filelock.LockDir(dir, config.LockName)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := release(); rerr != nil {
			log.Warnf("%v", rerr)
		}
	}()

	result, err := journal.Revert(dir, log)
	if errors.Is(err, journal.ErrEmpty) {
		log.Infof("Nothing to revert in %s", dir)
		return nil
	}
	if result != nil {
		log.Infof("Run %s: restored %d file(s), skipped %d", result.RunID, result.Restored, result.Skipped)
	}
	return err
}
