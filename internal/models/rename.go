package models

// RenameRecord is a single journaled rename inside the scanned directory
type RenameRecord struct {
	RunID     string `csv:"run_id"`
	RenamedAt string `csv:"renamed_at"` // RFC3339
	Directory string `csv:"directory"`
	OldName   string `csv:"old_name"`
	NewName   string `csv:"new_name"`
}

// Rename describes a planned move from OldName to NewName within a directory
type Rename struct {
	Sample  string
	OldName string
	NewName string
}
