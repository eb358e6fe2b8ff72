// Package parser extracts sequence records from FASTA and FASTQ text.
package parser

import (
	"bytes"
	"errors"
	"io"
)

// Format identifies the detected file format.
type Format int

const (
	FormatFASTA Format = iota
	FormatFASTQ
)

func (f Format) String() string {
	if f == FormatFASTQ {
		return "FASTQ"
	}
	return "FASTA"
}

// ErrEmptyInput means the input text contains no lines at all.
var ErrEmptyInput = errors.New("input contains no lines")

// Parser lazily yields sequence records from an in-memory text buffer.
// It is single-pass and non-restartable: once Next returns io.EOF the
// text has been consumed, and re-parsing requires a fresh Parser.
//
// Format detection looks at the first line only: a leading '@' means
// FASTQ, anything else means FASTA. This is a heuristic, not a
// validating parse — a FASTA file whose first line happens to start
// with '@' is misclassified. FASTQ extraction likewise assumes the
// canonical 4-line record layout and does not cross-check the header,
// plus or quality lines.
type Parser struct {
	rest      []byte
	format    Format
	pending   []byte // FASTA: sequence being accumulated
	nonEmpty  int    // FASTQ: non-empty lines seen so far
	exhausted bool
}

// New creates a Parser over text. Returns ErrEmptyInput when text holds
// no lines.
func New(text []byte) (*Parser, error) {
	if len(text) == 0 {
		return nil, ErrEmptyInput
	}

	p := &Parser{rest: text}
	if first := peekLine(text); len(first) > 0 && first[0] == '@' {
		p.format = FormatFASTQ
	}
	return p, nil
}

// Format reports the detected input format.
func (p *Parser) Format() Format {
	return p.format
}

// Next returns the next sequence record, or io.EOF when the input is
// exhausted. Empty records are never returned: blank lines are skipped
// and FASTA headers with no residues between them yield nothing. The
// returned slice may alias the input text and stays valid as long as
// the text does.
func (p *Parser) Next() ([]byte, error) {
	if p.format == FormatFASTQ {
		return p.nextFASTQ()
	}
	return p.nextFASTA()
}

// nextFASTQ emits every line whose 1-based position among non-empty
// lines is congruent to 2 mod 4 (header, sequence, plus, quality).
func (p *Parser) nextFASTQ() ([]byte, error) {
	for {
		line, ok := p.nextLine()
		if !ok {
			return nil, io.EOF
		}
		if len(line) == 0 {
			continue
		}
		p.nonEmpty++
		if p.nonEmpty%4 == 2 {
			return line, nil
		}
	}
}

// nextFASTA concatenates non-header lines until the next '>' header or
// the end of input, dropping empty accumulations.
func (p *Parser) nextFASTA() ([]byte, error) {
	for {
		line, ok := p.nextLine()
		if !ok {
			if len(p.pending) > 0 {
				out := p.pending
				p.pending = nil
				return out, nil
			}
			return nil, io.EOF
		}
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if len(p.pending) > 0 {
				out := p.pending
				p.pending = nil
				return out, nil
			}
			continue
		}
		p.pending = append(p.pending, line...)
	}
}

// nextLine consumes one line from the remaining text, stripping the
// newline and any trailing CR. A trailing newline at the end of input
// does not produce a final empty line.
func (p *Parser) nextLine() ([]byte, bool) {
	if p.exhausted {
		return nil, false
	}

	i := bytes.IndexByte(p.rest, '\n')
	var line []byte
	if i < 0 {
		line = p.rest
		p.rest = nil
		p.exhausted = true
	} else {
		line = p.rest[:i]
		p.rest = p.rest[i+1:]
		if len(p.rest) == 0 {
			p.exhausted = true
		}
	}
	return bytes.TrimSuffix(line, []byte{'\r'}), true
}

func peekLine(text []byte) []byte {
	i := bytes.IndexByte(text, '\n')
	if i < 0 {
		return bytes.TrimSuffix(text, []byte{'\r'})
	}
	return bytes.TrimSuffix(text[:i], []byte{'\r'})
}
