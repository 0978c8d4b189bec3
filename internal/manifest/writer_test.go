package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/irida-samplelist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, []models.ManifestRow{
		{SampleName: "S1", ProjectID: "5", FileForward: "S1_d_R1.fastq", FileReverse: "S1_d_R2.fastq"},
		{SampleName: "S2", ProjectID: "5", FileForward: "S2_d.consensus.fa"},
	})
	require.NoError(t, err)

	want := "[Data]\n" +
		"Sample_Name,Project_ID,File_Forward,File_Reverse\n" +
		"S1,5,S1_d_R1.fastq,S1_d_R2.fastq\n" +
		"S2,5,S2_d.consensus.fa,\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeEmptyKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))

	assert.Equal(t, "[Data]\nSample_Name,Project_ID,File_Forward,File_Reverse\n", buf.String())
}

func TestWriteReplacesExistingManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SampleList.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, Write(path, []models.ManifestRow{{SampleName: "S1", ProjectID: "5", FileForward: "f", FileReverse: "r"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[Data]\nSample_Name,Project_ID,File_Forward,File_Reverse\nS1,5,f,r\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}
