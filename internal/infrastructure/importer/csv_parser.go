package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Parser errors
var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
	ErrMissingHeader   = errors.New("missing header row")
)

// Canonical column names after header normalization
const (
	ColName   = "name"
	ColMobile = "mobile"
	ColEmail  = "email"
	ColCity   = "city"
)

// headerSynonyms maps the header spellings seen in the wild to the
// canonical columns. Spreadsheets exported by different brokers label
// the phone column half a dozen ways.
var headerSynonyms = map[string]string{
	"name":          ColName,
	"client name":   ColName,
	"full name":     ColName,
	"mobile":        ColMobile,
	"mobile number": ColMobile,
	"phone":         ColMobile,
	"phone number":  ColMobile,
	"number":        ColMobile,
	"contact":       ColMobile,
	"email":         ColEmail,
	"email id":      ColEmail,
	"gmail":         ColEmail,
	"mail":          ColEmail,
	"city":          ColCity,
	"location":      ColCity,
}

// Row is one parsed CSV row keyed by canonical column name
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a canonical column
func (r *Row) Get(col string) string {
	return r.Data[col]
}

// IsEmpty reports whether the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// CSVParser reads client CSV files, normalizing headers to the
// canonical columns as it goes.
type CSVParser struct {
	reader  *csv.Reader
	columns []string // canonical name per column index, "" for ignored
	row     int
}

// NewCSVParser creates a parser over the reader, strips a UTF-8 BOM if
// present, and validates the encoding.
func NewCSVParser(r io.Reader) (*CSVParser, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	probe, err := buf.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(probe) == 0 {
		return nil, ErrEmptyFile
	}
	if !utf8.Valid(probe) {
		return nil, ErrInvalidEncoding
	}

	reader := csv.NewReader(buf)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	return &CSVParser{reader: reader}, nil
}

// ParseHeader reads the header row and resolves column synonyms.
// Columns that match no synonym are ignored, not rejected.
func (p *CSVParser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.columns = make([]string, len(record))
	for i, h := range record {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.Trim(key, "\"'")
		p.columns[i] = headerSynonyms[key]
	}
	p.row = 1
	return nil
}

// HasColumn reports whether the header resolved the given canonical column
func (p *CSVParser) HasColumn(col string) bool {
	for _, c := range p.columns {
		if c == col {
			return true
		}
	}
	return false
}

// ReadRow reads the next data row
func (p *CSVParser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	p.row++
	if err != nil {
		return nil, fmt.Errorf("error reading row %d: %w", p.row, err)
	}

	row := &Row{
		LineNumber: p.row,
		Data:       make(map[string]string, 4),
	}
	for i, col := range p.columns {
		if col == "" || i >= len(record) {
			continue
		}
		// Last synonym column wins; duplicate headers are rare enough
		// not to matter.
		row.Data[col] = strings.TrimSpace(record[i])
	}
	return row, nil
}

// ReadAllRows reads every remaining data row, skipping fully empty ones
func (p *CSVParser) ReadAllRows() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := p.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
