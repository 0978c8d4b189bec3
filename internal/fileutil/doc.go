// Package fileutil lists the candidate files of a pipeline output directory.
//
// Only regular files directly inside the directory are returned. The manifest
// refers to files by bare name, so subdirectories are never entered.
//
// # Main Components
//
// ScanOptions - Configuration struct for directory scanning:
//   - Ignore: doublestar glob patterns matched against each entry name
//
// ScanResult - Results of a directory scan:
//   - Files: name and size of every accepted file (sorted by name)
//   - Ignored: names dropped by an ignore pattern
//   - Errors: non-fatal errors encountered while inspecting entries
//
// # Usage
//
//	result, err := fileutil.ScanDirectory("/data/run42", fileutil.ScanOptions{
//		Ignore: []string{".*", "SampleList.csv"},
//	})
//	if err != nil {
//		return err
//	}
//	for _, f := range result.Files {
//		fmt.Println(f.Name, f.Size)
//	}
//
// Symbolic links are followed, so a link to a FASTQ file is treated like the
// file itself and reports the target's size.
package fileutil
