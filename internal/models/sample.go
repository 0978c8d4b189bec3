package models

import "time"

// FileType selects which kind of pipeline output is collected
type FileType string

// Supported file types
const (
	FileTypeFastq FileType = "fastq" // Paired, dehosted Illumina reads
	FileTypeFasta FileType = "fasta" // Single consensus sequence per sample
)

// Paired reports whether the file type carries a forward and a reverse file
func (ft FileType) Paired() bool {
	return ft == FileTypeFastq
}

// Sample is one row of the input samplesheet
type Sample struct {
	Name           string `csv:"sample"`
	ProjectID      string `csv:"project_id"`
	SequencingDate string `csv:"sequencing_date"`
}

// SampleFiles holds the files found on disk for a single sample
type SampleFiles struct {
	Name    string // Sample name captured from the filename
	Forward string // Forward read (or the only file for FASTA)
	Reverse string // Reverse read, empty for FASTA
	Ext     string // Extension carried over to the renamed file, e.g. ".fastq"
}

// Complete reports whether every file required by the file type is present
func (sf SampleFiles) Complete(ft FileType) bool {
	if sf.Forward == "" {
		return false
	}
	if ft.Paired() {
		return sf.Reverse != ""
	}
	return true
}

// ManifestRow is one data row of SampleList.csv
type ManifestRow struct {
	SampleName  string `csv:"Sample_Name"`
	ProjectID   string `csv:"Project_ID"`
	FileForward string `csv:"File_Forward"`
	FileReverse string `csv:"File_Reverse"`
}

// RunSummary describes the outcome of a single generate run
type RunSummary struct {
	Directory    string        // Scanned directory
	Manifest     string        // Path of the written manifest, empty on dry runs
	Rows         int           // Manifest rows produced
	Renamed      int           // Files renamed
	SkippedFiles int           // Files skipped for size or name
	Unlisted     []string      // Samples found on disk but absent from the samplesheet
	Missing      []string      // Samplesheet samples without usable files
	DryRun       bool          // No changes were made
	Duration     time.Duration // Wall time of the run
}
