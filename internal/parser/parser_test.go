package parser

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, p *Parser) []string {
	t.Helper()

	var records []string
	for {
		rec, err := p.Next()
		if err == io.EOF {
			return records
		}
		require.NoError(t, err)
		records = append(records, string(rec))
	}
}

func TestParseFASTA(t *testing.T) {
	t.Parallel()

	p, err := New([]byte(">a\nACGT\n>b\nGGCCAA\n"))
	require.NoError(t, err)

	assert.Equal(t, FormatFASTA, p.Format())
	assert.Equal(t, []string{"ACGT", "GGCCAA"}, collect(t, p))
}

func TestParseFASTAMultilineConcatenation(t *testing.T) {
	t.Parallel()

	input := ">chr1\nACGT\nACGT\nTTTT\n>chr2\nGG\nCC\n"
	p, err := New([]byte(input))
	require.NoError(t, err)

	// Wrapped lines join with no separator.
	assert.Equal(t, []string{"ACGTACGTTTTT", "GGCC"}, collect(t, p))
}

func TestParseFASTANoTrailingNewline(t *testing.T) {
	t.Parallel()

	p, err := New([]byte(">a\nACGT"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ACGT"}, collect(t, p))
}

func TestParseFASTASkipsEmptyLines(t *testing.T) {
	t.Parallel()

	p, err := New([]byte(">a\n\nAC\n\nGT\n\n>b\nTT\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ACGT", "TT"}, collect(t, p))
}

func TestParseFASTAHeadersWithoutResidues(t *testing.T) {
	t.Parallel()

	// Back-to-back headers produce no zero-length records.
	p, err := New([]byte(">a\n>b\n>c\nACGT\n>d\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ACGT"}, collect(t, p))
}

func TestParseFASTAHeadersOnly(t *testing.T) {
	t.Parallel()

	p, err := New([]byte(">a\n>b\n"))
	require.NoError(t, err)
	assert.Empty(t, collect(t, p))
}

func TestParseFASTACRLF(t *testing.T) {
	t.Parallel()

	p, err := New([]byte(">a\r\nACGT\r\nGG\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ACGTGG"}, collect(t, p))
}

func TestParseFASTQ(t *testing.T) {
	t.Parallel()

	input := "@r1\nACGT\n+\nIIII\n@r2\nGGCCAA\n+\nIIIIII\n"
	p, err := New([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, FormatFASTQ, p.Format())
	assert.Equal(t, []string{"ACGT", "GGCCAA"}, collect(t, p))
}

func TestParseFASTQRecordCount(t *testing.T) {
	t.Parallel()

	// N non-empty lines, N a multiple of 4: exactly N/4 records.
	var buf bytes.Buffer
	for i := 0; i < 25; i++ {
		buf.WriteString("@r\nACGTACGT\n+\nIIIIIIII\n")
	}
	p, err := New(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, collect(t, p), 25)
}

func TestParseFASTQSkipsEmptyLines(t *testing.T) {
	t.Parallel()

	// Positions count among non-empty lines only.
	input := "@r1\n\nACGT\n+\n\nIIII\n\n@r2\nTT\n+\nII\n"
	p, err := New([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"ACGT", "TT"}, collect(t, p))
}

func TestParseFASTQTruncated(t *testing.T) {
	t.Parallel()

	// Fewer than 2 non-empty lines: no records.
	p, err := New([]byte("@r1\n"))
	require.NoError(t, err)
	assert.Empty(t, collect(t, p))
}

func TestParseFASTQTrailingPartialRecord(t *testing.T) {
	t.Parallel()

	input := "@r1\nACGT\n+\nIIII\n@r2\nGG\n"
	p, err := New([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"ACGT", "GG"}, collect(t, p))
}

func TestFormatDetectionFirstLineOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{"fasta header", ">a\nACGT\n", FormatFASTA},
		{"fastq header", "@r1\nACGT\n+\nIIII\n", FormatFASTQ},
		// The first line decides, even when it is empty: a blank
		// leading line makes the whole input FASTA.
		{"leading blank line", "\n@r1\nACGT\n+\nIIII\n", FormatFASTA},
		// Known limitation: a FASTA file whose first header was
		// corrupted into an '@' line is classified as FASTQ.
		{"corrupted fasta header", "@a\nACGT\n>b\nGGCC\n", FormatFASTQ},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := New([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Format())
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = New([]byte{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseBlankLinesOnlyYieldsNoRecords(t *testing.T) {
	t.Parallel()

	p, err := New([]byte("\n\n\n"))
	require.NoError(t, err)
	assert.Empty(t, collect(t, p))
}

func TestNextAfterEOF(t *testing.T) {
	t.Parallel()

	p, err := New([]byte(">a\nACGT\n"))
	require.NoError(t, err)
	collect(t, p)

	_, err = p.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = p.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func BenchmarkParseFASTQ(b *testing.B) {
	var buf bytes.Buffer
	seq := strings.Repeat("ACGT", 38) // 152 bp
	qual := strings.Repeat("I", 152)
	for i := 0; i < 10000; i++ {
		buf.WriteString("@HWI-ST123:4:1101:14346:1976#0/1\n")
		buf.WriteString(seq + "\n")
		buf.WriteString("+\n")
		buf.WriteString(qual + "\n")
	}
	input := buf.Bytes()

	b.ResetTimer()
	b.SetBytes(int64(len(input)))

	for i := 0; i < b.N; i++ {
		p, err := New(input)
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := p.Next(); err != nil {
				break
			}
		}
	}
}
