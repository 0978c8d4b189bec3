package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, size int) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("A", size)), 0644))
}

func names(files []FileEntry) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func TestScanDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	// tmpDir/
	//   S2_dehosted_R1.fastq
	//   S1_dehosted_R1.fastq
	//   S1.consensus.fa
	//   SampleList.csv
	//   .samplelist-renames.csv
	//   nested/S3_dehosted_R1.fastq
	writeFile(t, tmpDir, "S2_dehosted_R1.fastq", 100)
	writeFile(t, tmpDir, "S1_dehosted_R1.fastq", 60)
	writeFile(t, tmpDir, "S1.consensus.fa", 10)
	writeFile(t, tmpDir, "SampleList.csv", 5)
	writeFile(t, tmpDir, ".samplelist-renames.csv", 5)
	writeFile(t, tmpDir, "nested/S3_dehosted_R1.fastq", 100)

	result, err := ScanDirectory(tmpDir, ScanOptions{Ignore: []string{".*", "SampleList.csv"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"S1.consensus.fa", "S1_dehosted_R1.fastq", "S2_dehosted_R1.fastq"}, names(result.Files))
	assert.ElementsMatch(t, []string{".samplelist-renames.csv", "SampleList.csv"}, result.Ignored)
	assert.Empty(t, result.Errors)

	sizes := map[string]int64{}
	for _, f := range result.Files {
		sizes[f.Name] = f.Size
	}
	assert.Equal(t, int64(10), sizes["S1.consensus.fa"])
	assert.Equal(t, int64(60), sizes["S1_dehosted_R1.fastq"])
}

func TestScanDirectoryNoIgnore(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, ".hidden", 1)
	writeFile(t, tmpDir, "a.txt", 1)

	result, err := ScanDirectory(tmpDir, ScanOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{".hidden", "a.txt"}, names(result.Files))
	assert.Empty(t, result.Ignored)
}

func TestScanDirectoryGlobIgnore(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "S1_dehosted_R1.fastq", 100)
	writeFile(t, tmpDir, "S1_dehosted_R1.fastq.tmp", 100)
	writeFile(t, tmpDir, "notes.md", 100)

	result, err := ScanDirectory(tmpDir, ScanOptions{Ignore: []string{"*.tmp", "*.{md,txt}"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"S1_dehosted_R1.fastq"}, names(result.Files))
	assert.ElementsMatch(t, []string{"S1_dehosted_R1.fastq.tmp", "notes.md"}, result.Ignored)
}

func TestScanDirectoryFollowsSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(t.TempDir(), "real.fastq")
	require.NoError(t, os.WriteFile(target, []byte(strings.Repeat("A", 75)), 0644))
	require.NoError(t, os.Symlink(target, filepath.Join(tmpDir, "S1_dehosted_R1.fastq")))

	// Dangling link is reported but does not abort the scan
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "gone"), filepath.Join(tmpDir, "broken.fastq")))

	result, err := ScanDirectory(tmpDir, ScanOptions{})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "S1_dehosted_R1.fastq", result.Files[0].Name)
	assert.Equal(t, int64(75), result.Files[0].Size)
	assert.Len(t, result.Errors, 1)
}

func TestScanDirectoryErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := ScanDirectory(filepath.Join(t.TempDir(), "missing"), ScanOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to access directory")
	})

	t.Run("path is a file", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "file.txt", 1)

		_, err := ScanDirectory(filepath.Join(tmpDir, "file.txt"), ScanOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path is not a directory")
	})

	t.Run("invalid ignore pattern", func(t *testing.T) {
		_, err := ScanDirectory(t.TempDir(), ScanOptions{Ignore: []string{"[unclosed"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid ignore pattern")
	})
}
