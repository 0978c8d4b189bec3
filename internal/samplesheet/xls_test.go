package samplesheet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/irida-samplelist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testdata/samplesheet.xls holds one worksheet:
//
//	row 0: Sample | Project_ID | Sequencing_Date | Notes
//	row 1: S1     | 12 (number) | 2024-01-15     | first run
//	row 2: no records
//	row 3: S2     | 7          | 2024-01-16
//	row 4: row record without cells
//	row 5: a single blank cell
const xlsFixture = "testdata/samplesheet.xls"

func TestIsXLS(t *testing.T) {
	assert.True(t, isXLS("samples.xls"))
	assert.True(t, isXLS("/runs/42/SAMPLES.XLS"))
	assert.True(t, isXLS("gs://bucket/samples.xls"))
	assert.False(t, isXLS("samples.xlsx"))
	assert.False(t, isXLS("samples.csv"))
}

func TestReadXLSRows(t *testing.T) {
	data, err := os.ReadFile(xlsFixture)
	require.NoError(t, err)

	rows, err := readXLSRows(data)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Sample", "Project_ID", "Sequencing_Date", "Notes"},
		{"S1", "12", "2024-01-15", "first run"},
		{"S2", "7", "2024-01-16"},
	}, rows)
}

func TestReadXLS(t *testing.T) {
	log := &recordingLogger{}

	samples, err := Read(context.Background(), xlsFixture, Options{Logger: log})
	require.NoError(t, err)

	assert.Equal(t, []models.Sample{
		{Name: "S1", ProjectID: "12", SequencingDate: "2024-01-15"},
		{Name: "S2", ProjectID: "7", SequencingDate: "2024-01-16"},
	}, samples)
	assert.Empty(t, log.warnings)
}

func TestReadXLSDateFormat(t *testing.T) {
	samples, err := Read(context.Background(), xlsFixture, Options{DateFormat: "20060102"})
	require.NoError(t, err)

	require.Len(t, samples, 2)
	assert.Equal(t, "20240115", samples[0].SequencingDate)
	assert.Equal(t, "20240116", samples[1].SequencingDate)
}

func TestReadXLSNotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.xls")
	require.NoError(t, os.WriteFile(path, []byte("sample,project_id,sequencing_date\n"), 0644))

	_, err := Read(context.Background(), path, Options{})
	assert.Error(t, err)
}
