// Package samplesheet reads the sample metadata table that drives renaming:
// one row per sample with its IRIDA project and sequencing date.
package samplesheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/harrison/irida-samplelist/internal/logger"
	"github.com/harrison/irida-samplelist/internal/models"
)

// Required column names
const (
	ColumnSample         = "sample"
	ColumnProjectID      = "project_id"
	ColumnSequencingDate = "sequencing_date"
)

// RequiredColumns lists the header columns every samplesheet must carry
var RequiredColumns = []string{ColumnSample, ColumnProjectID, ColumnSequencingDate}

// Options controls how samplesheet rows are post-processed
type Options struct {
	// DateFormat re-renders sequencing dates with this Go layout when set
	DateFormat string
	// Logger receives warnings about skipped rows
	Logger logger.Logger
}

// Read opens and decodes the samplesheet at path (local, ~/ or gs://)
func Read(ctx context.Context, path string, opts Options) ([]models.Sample, error) {
	rc, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	var rows [][]string
	if isXLS(path) {
		rows, err = readXLSRows(data)
	} else {
		rows, err = readDelimitedRows(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read samplesheet %s: %w", path, err)
	}

	samples, err := Decode(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid samplesheet %s: %w", path, err)
	}
	return samples, nil
}

// readDelimitedRows parses CSV-like text, detecting the delimiter first
func readDelimitedRows(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, pfx.Err(fmt.Errorf("file is empty"))
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = DetermineDelimiter(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}
	return rows, nil
}

// Decode maps raw rows (header first) onto samples. Column names are matched
// case-insensitively and extra columns are ignored. Unusable rows are skipped
// with a warning; for a repeated sample name the first row wins.
func Decode(rows [][]string, opts Options) ([]models.Sample, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	header := make([]string, len(rows[0]))
	present := make(map[string]bool)
	for i, col := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(col))
		present[header[i]] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}

	// gocsv expects every row to be as wide as the header
	normalized := make([][]string, 0, len(rows))
	normalized = append(normalized, header)
	for _, row := range rows[1:] {
		padded := make([]string, len(header))
		copy(padded, row)
		normalized = append(normalized, padded)
	}

	records := []*models.Sample{}
	if len(normalized) > 1 {
		if err := gocsv.UnmarshalCSV(&rowsReader{rows: normalized}, &records); err != nil {
			return nil, pfx.Err(err)
		}
	}

	samples := make([]models.Sample, 0, len(records))
	seen := make(map[string]bool)
	for i, rec := range records {
		s := models.Sample{
			Name:           strings.TrimSpace(rec.Name),
			ProjectID:      strings.TrimSpace(rec.ProjectID),
			SequencingDate: strings.TrimSpace(rec.SequencingDate),
		}

		if s.Name == "" {
			log.Warnf("Samplesheet row %d has no sample name, skipping", i+2)
			continue
		}
		if seen[s.Name] {
			log.Warnf("Sample %s is listed more than once in the samplesheet, keeping the first row", s.Name)
			continue
		}
		seen[s.Name] = true

		date, err := FormatDate(s.SequencingDate, opts.DateFormat)
		if err != nil {
			log.Warnf("Sample %s skipped: %v", s.Name, err)
			continue
		}
		s.SequencingDate = date

		samples = append(samples, s)
	}

	return samples, nil
}

// rowsReader serves pre-parsed rows through gocsv's CSVReader interface
type rowsReader struct {
	rows [][]string
	pos  int
}

func (r *rowsReader) Read() ([]string, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

func (r *rowsReader) ReadAll() ([][]string, error) {
	rest := r.rows[r.pos:]
	r.pos = len(r.rows)
	return rest, nil
}
