package matcher

import (
	"fmt"
	"strings"
	"testing"

	"github.com/harrison/irida-samplelist/internal/config"
	"github.com/harrison/irida-samplelist/internal/fileutil"
	"github.com/harrison/irida-samplelist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures warnings for assertions
type recordingLogger struct {
	warnings []string
}

func (r *recordingLogger) Tracef(format string, args ...interface{}) {}
func (r *recordingLogger) Debugf(format string, args ...interface{}) {}
func (r *recordingLogger) Infof(format string, args ...interface{})  {}
func (r *recordingLogger) Errorf(format string, args ...interface{}) {}
func (r *recordingLogger) Warnf(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}
func (r *recordingLogger) LogSummary(summary models.RunSummary) {}

func (r *recordingLogger) contains(substr string) bool {
	for _, w := range r.warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func fastqMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := New(models.FileTypeFastq, config.DefaultFastqPattern)
	require.NoError(t, err)
	return m
}

func fastaMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := New(models.FileTypeFasta, config.DefaultFastaPattern)
	require.NoError(t, err)
	return m
}

func TestGroupFastqPairs(t *testing.T) {
	log := &recordingLogger{}
	files := []fileutil.FileEntry{
		{Name: "S1_dehosted_R1.fastq", Size: 100},
		{Name: "S1_dehosted_R2.fastq", Size: 100},
		{Name: "S2_dehosted_R1.fastq", Size: 100},
		{Name: "S2_dehosted_R2.fastq", Size: 100},
		{Name: "notes.txt", Size: 100},
	}

	groups := Group(files, fastqMatcher(t), 50, log)

	assert.Equal(t, []string{"S1", "S2"}, groups.Order)
	s1, ok := groups.Get("S1")
	require.True(t, ok)
	assert.Equal(t, "S1_dehosted_R1.fastq", s1.Forward)
	assert.Equal(t, "S1_dehosted_R2.fastq", s1.Reverse)
	assert.Equal(t, ".fastq", s1.Ext)
	assert.True(t, s1.Complete(models.FileTypeFastq))

	assert.Equal(t, 1, groups.Skipped)
	assert.True(t, log.contains("No matches for file notes.txt"))
}

func TestGroupFastqMinimumSizeIsStrict(t *testing.T) {
	log := &recordingLogger{}
	files := []fileutil.FileEntry{
		{Name: "S1_dehosted_R1.fastq", Size: 50},
		{Name: "S1_dehosted_R2.fastq", Size: 100},
	}

	groups := Group(files, fastqMatcher(t), 50, log)

	_, ok := groups.Get("S1")
	assert.False(t, ok, "a file of exactly the minimum size must be rejected")
	assert.Empty(t, groups.Order)
	assert.Equal(t, 2, groups.Skipped)
	assert.True(t, log.contains("Sample S1 does not meet the minimum file size of 50 bytes"))
}

func TestGroupFastqSmallMateRemovesSample(t *testing.T) {
	log := &recordingLogger{}
	files := []fileutil.FileEntry{
		{Name: "S1_dehosted_R1.fastq", Size: 100},
		{Name: "S1_dehosted_R2.fastq", Size: 10},
		{Name: "S2_dehosted_R1.fastq", Size: 100},
		{Name: "S2_dehosted_R2.fastq", Size: 100},
	}

	groups := Group(files, fastqMatcher(t), 50, log)

	_, ok := groups.Get("S1")
	assert.False(t, ok)
	assert.Equal(t, []string{"S2"}, groups.Order)
	assert.Equal(t, 2, groups.Skipped)
	assert.Len(t, log.warnings, 1)
}

func TestGroupFastqIncompletePairIsKept(t *testing.T) {
	groups := Group([]fileutil.FileEntry{
		{Name: "S1_dehosted_R2.fastq", Size: 100},
	}, fastqMatcher(t), 50, nil)

	s1, ok := groups.Get("S1")
	require.True(t, ok)
	assert.Empty(t, s1.Forward)
	assert.Equal(t, "S1_dehosted_R2.fastq", s1.Reverse)
	assert.False(t, s1.Complete(models.FileTypeFastq))
}

func TestGroupFastqDuplicateRead(t *testing.T) {
	log := &recordingLogger{}
	files := []fileutil.FileEntry{
		{Name: "S1_dehosted_R1.fastq", Size: 100},
		{Name: "S1_dehosted_v2_R1.fastq", Size: 100},
		{Name: "S1_dehosted_R2.fastq", Size: 100},
	}

	groups := Group(files, fastqMatcher(t), 50, log)

	s1, ok := groups.Get("S1")
	require.True(t, ok)
	assert.Equal(t, "S1_dehosted_R1.fastq", s1.Forward)
	assert.Equal(t, 1, groups.Skipped)
	assert.True(t, log.contains("more than one matching file"))
}

func TestGroupFasta(t *testing.T) {
	log := &recordingLogger{}
	files := []fileutil.FileEntry{
		{Name: "S1.consensus.fa", Size: 100},
		{Name: "S2.consensus.fasta", Size: 20},
		{Name: "S3.consensus.fa", Size: 51},
		{Name: "S3.consensus.fasta", Size: 100},
	}

	groups := Group(files, fastaMatcher(t), 50, log)

	assert.Equal(t, []string{"S1", "S3"}, groups.Order)

	s1, _ := groups.Get("S1")
	assert.Equal(t, "S1.consensus.fa", s1.Forward)
	assert.Empty(t, s1.Reverse)
	assert.Equal(t, ".consensus.fa", s1.Ext)
	assert.True(t, s1.Complete(models.FileTypeFasta))

	s3, _ := groups.Get("S3")
	assert.Equal(t, "S3.consensus.fa", s3.Forward)

	assert.Equal(t, 2, groups.Skipped)
	assert.True(t, log.contains("Sample S2 does not meet the minimum file size of 50 bytes"))
}

func TestGroupFastaSmallFileDoesNotBlockSample(t *testing.T) {
	files := []fileutil.FileEntry{
		{Name: "S1.consensus.fa", Size: 10},
		{Name: "S1.consensus.fasta", Size: 100},
	}

	groups := Group(files, fastaMatcher(t), 50, nil)

	s1, ok := groups.Get("S1")
	require.True(t, ok)
	assert.Equal(t, "S1.consensus.fasta", s1.Forward)
	assert.Equal(t, ".consensus.fasta", s1.Ext)
}
