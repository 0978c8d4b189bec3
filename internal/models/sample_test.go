package models

import (
	"testing"
)

func TestFileTypePaired(t *testing.T) {
	if !FileTypeFastq.Paired() {
		t.Error("fastq should be paired")
	}
	if FileTypeFasta.Paired() {
		t.Error("fasta should not be paired")
	}
}

func TestSampleFilesComplete(t *testing.T) {
	tests := []struct {
		name  string
		files SampleFiles
		ft    FileType
		want  bool
	}{
		{"fastq pair", SampleFiles{Forward: "a_R1.fastq", Reverse: "a_R2.fastq"}, FileTypeFastq, true},
		{"fastq forward only", SampleFiles{Forward: "a_R1.fastq"}, FileTypeFastq, false},
		{"fastq reverse only", SampleFiles{Reverse: "a_R2.fastq"}, FileTypeFastq, false},
		{"fasta", SampleFiles{Forward: "a.consensus.fa"}, FileTypeFasta, true},
		{"fasta empty", SampleFiles{}, FileTypeFasta, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.files.Complete(tt.ft); got != tt.want {
				t.Errorf("Complete(%s) = %v, want %v", tt.ft, got, tt.want)
			}
		})
	}
}
