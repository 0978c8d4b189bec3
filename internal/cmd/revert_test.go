package cmd

import (
	"path/filepath"
	"testing"

	"github.com/harrison/irida-samplelist/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevertCommand_RestoresLastRun(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, 100, "S1_dehosted_R1.fastq", "S1_dehosted_R2.fastq")
	sheet := writeSamplesheet(t, fastqSheet)

	_, _, err := executeRootCommand(t, "-d", dir, "-s", sheet, "--fastq")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "S1_2024-01-15_R1.fastq"))

	_, stderr, err := executeRootCommand(t, "revert", "-d", dir)
	require.NoError(t, err)

	assert.Contains(t, stderr, "restored 2 file(s), skipped 0")
	assert.FileExists(t, filepath.Join(dir, "S1_dehosted_R1.fastq"))
	assert.FileExists(t, filepath.Join(dir, "S1_dehosted_R2.fastq"))
	assert.NoFileExists(t, filepath.Join(dir, "S1_2024-01-15_R1.fastq"))
	assert.NoFileExists(t, filepath.Join(dir, config.JournalName))
	assert.FileExists(t, filepath.Join(dir, config.LockName))
}

func TestRevertCommand_NothingToRevert(t *testing.T) {
	dir := t.TempDir()

	_, stderr, err := executeRootCommand(t, "revert", "-d", dir)
	require.NoError(t, err)

	assert.Contains(t, stderr, "Nothing to revert")
}

func TestRevertCommand_DoesNotRequireGenerateFlags(t *testing.T) {
	cmd := NewRevertCommand()

	assert.Nil(t, cmd.Flags().Lookup("samplesheet"))
	assert.NotNil(t, cmd.Flags().Lookup("directory"))
}
