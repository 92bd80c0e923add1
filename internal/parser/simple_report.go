package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"plgrader/internal/config"
	"plgrader/internal/domain"
)

// SimpleReportParser reads the comma separated block printed after the sentinel line
type SimpleReportParser struct {
	sentinel string
}

// NewSimpleReportParser creates a parser for the configured sentinel
func NewSimpleReportParser(cfg *config.Config) *SimpleReportParser {
	return &SimpleReportParser{sentinel: cfg.Sentinel}
}

// Extract returns the records after the last sentinel occurrence.
// Tests may print the sentinel themselves, so only the final one marks the block.
func (p *SimpleReportParser) Extract(stdout string) ([]domain.Record, error) {
	start := strings.LastIndex(stdout, p.sentinel)
	if start < 0 {
		return nil, &domain.SentinelNotFoundError{Sentinel: p.sentinel}
	}
	return ParseBlock(stdout[start+len(p.sentinel):])
}

// ParseBlock reads every record of a result block. One unreadable row fails the whole block.
// Quotes inside unquoted fields are kept literally, since failure messages often quote strings.
// A quoted field still open at the end of the block is malformed.
func ParseBlock(block string) ([]domain.Record, error) {
	reader := csv.NewReader(strings.NewReader(block))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []domain.Record
	for {
		offset := reader.InputOffset()
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			malformed := &domain.MalformedRowError{Err: err}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				malformed.Line = parseErr.StartLine
				malformed.Err = parseErr.Err
			}
			return nil, malformed
		}

		line, _ := reader.FieldPos(0)
		if reader.InputOffset() == int64(len(block)) && unterminatedQuote(block[offset:]) {
			return nil, &domain.MalformedRowError{
				Line:   line,
				Row:    domain.RawRow(fields),
				Reason: "quoted field is not terminated",
			}
		}
		records = append(records, domain.Record{Line: line, Fields: domain.RawRow(fields)})
	}
	return records, nil
}

// unterminatedQuote reports whether raw ends inside a quoted field.
// A quote closes a quoted field only before a comma, a line break or the end of input.
func unterminatedQuote(raw string) bool {
	quoted, fieldStart := false, true
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if !quoted {
			if fieldStart && c == '"' {
				quoted = true
				fieldStart = false
				continue
			}
			fieldStart = c == ',' || c == '\n'
			continue
		}
		if c != '"' {
			continue
		}
		if i+1 < len(raw) && raw[i+1] == '"' {
			i++
			continue
		}
		if i+1 == len(raw) || strings.IndexByte(",\r\n", raw[i+1]) >= 0 {
			quoted = false
		}
	}
	return quoted
}
