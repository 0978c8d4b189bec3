package manifest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/harrison/irida-samplelist/internal/filelock"
	"github.com/harrison/irida-samplelist/internal/models"
)

// SectionHeader is the first line the IRIDA uploader expects in SampleList.csv
const SectionHeader = "[Data]"

// Encode writes the [Data] line followed by the CSV header and rows
func Encode(w io.Writer, rows []models.ManifestRow) error {
	if _, err := fmt.Fprintln(w, SectionHeader); err != nil {
		return err
	}
	if rows == nil {
		rows = []models.ManifestRow{}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return nil
}

// Write atomically replaces the manifest at path
func Write(path string, rows []models.ManifestRow) error {
	var buf bytes.Buffer
	if err := Encode(&buf, rows); err != nil {
		return err
	}
	if err := filelock.AtomicWrite(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
