package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"plgrader/internal/config"
	"plgrader/internal/domain"
)

func TestSimpleReportParser_Extract(t *testing.T) {
	p := NewSimpleReportParser(config.New())

	tests := []struct {
		name     string
		stdout   string
		expected []domain.RawRow
	}{
		{
			name:   "rows after sentinel",
			stdout: "% PL-Unit: lists ..\nSTART_SIMPLE_REPORT\nPassed,g,a,10,0.5\nFailed,g,b,5,0\n",
			expected: []domain.RawRow{
				{"Passed", "g", "a", "10", "0.5"},
				{"Failed", "g", "b", "5", "0"},
			},
		},
		{
			name:     "last sentinel wins",
			stdout:   "START_SIMPLE_REPORT\nPassed,fake,x,99,0\nassertion printed START_SIMPLE_REPORT\nSTART_SIMPLE_REPORT\nSkipped,g,c,5,x\n",
			expected: []domain.RawRow{{"Skipped", "g", "c", "5", "x"}},
		},
		{
			name:     "quoted fields and blank lines",
			stdout:   "START_SIMPLE_REPORT\n\nFailed,description,t1,\"expected [1,2], got []\",3,0.01\n\n",
			expected: []domain.RawRow{{"Failed", "description", "t1", "expected [1,2], got []", "3", "0.01"}},
		},
		{
			name:   "quotes inside unquoted fields",
			stdout: "START_SIMPLE_REPORT\nPassed,g,a,10,0.5\nFailed,description,t1,expected \"abc\" got \"ab\",10,0.01\n",
			expected: []domain.RawRow{
				{"Passed", "g", "a", "10", "0.5"},
				{"Failed", "description", "t1", `expected "abc" got "ab"`, "10", "0.01"},
			},
		},
		{
			name:     "empty block",
			stdout:   "output\nSTART_SIMPLE_REPORT\n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := p.Extract(tt.stdout)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rows := fieldsOf(records); !reflect.DeepEqual(rows, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, rows)
			}
		})
	}
}

func TestSimpleReportParser_ExtractErrors(t *testing.T) {
	p := NewSimpleReportParser(config.New())

	t.Run("sentinel not found", func(t *testing.T) {
		rows, err := p.Extract("Passed,g,a,1,0\nSTART_SIMPLE_REPORT")
		if !errors.Is(err, domain.ErrSentinelNotFound) {
			t.Fatalf("expected ErrSentinelNotFound, got %v", err)
		}
		if rows != nil {
			t.Errorf("expected no rows, got %v", rows)
		}
		if !strings.Contains(err.Error(), `"START_SIMPLE_REPORT\n" was not found`) {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("malformed row fails the block", func(t *testing.T) {
		records, err := p.Extract("START_SIMPLE_REPORT\nPassed,g,a,1,0\nFailed,g,\"b,1,0\n")
		var malformed *domain.MalformedRowError
		if !errors.As(err, &malformed) {
			t.Fatalf("expected MalformedRowError, got %v", err)
		}
		if malformed.Line != 2 {
			t.Errorf("expected line 2, got %d", malformed.Line)
		}
		if records != nil {
			t.Errorf("expected no records, got %v", records)
		}
	})

	t.Run("unterminated quote at the end of the block", func(t *testing.T) {
		_, err := ParseBlock("Passed,g,a,1,0\n\nFailed,g,\"b,1,0")
		var malformed *domain.MalformedRowError
		if !errors.As(err, &malformed) {
			t.Fatalf("expected MalformedRowError, got %v", err)
		}
		if malformed.Line != 3 {
			t.Errorf("expected line 3, got %d", malformed.Line)
		}
	})
}

func TestParseBlock_Lines(t *testing.T) {
	block := "\nPassed,g,a,1,0\nFailed,description,t1,\"multi\nline\",2,0\n\nSkipped,g,c,1,0\n"

	records, err := ParseBlock(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var lines []int
	for _, r := range records {
		lines = append(lines, r.Line)
	}
	if !reflect.DeepEqual(lines, []int{2, 3, 6}) {
		t.Errorf("expected lines [2 3 6], got %v", lines)
	}
	if got := records[1].Fields[3]; got != "multi\nline" {
		t.Errorf("expected the quoted field to span lines, got %q", got)
	}
}

func TestParseBlock_LazyQuotes(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		expected domain.RawRow
	}{
		{name: "bare quote", block: "Failed,g,a\"b,1,0\n", expected: domain.RawRow{"Failed", "g", `a"b`, "1", "0"}},
		{name: "quote inside quoted field", block: "Failed,g,\"say \"hi\" now\",1,0\n", expected: domain.RawRow{"Failed", "g", `say "hi" now`, "1", "0"}},
		{name: "doubled quote", block: "Failed,g,\"a\"\"b\",1,0", expected: domain.RawRow{"Failed", "g", `a"b`, "1", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseBlock(tt.block)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(records) != 1 || !reflect.DeepEqual(records[0].Fields, tt.expected) {
				t.Errorf("expected %q, got %v", tt.expected, records)
			}
		})
	}
}

func TestUnterminatedQuote(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{raw: "Passed,g,a,1,0\n", expected: false},
		{raw: "Failed,g,a\"b,1,0\n", expected: false},
		{raw: "Failed,g,\"x, y\",1,0\n", expected: false},
		{raw: "Failed,g,\"say \"hi\" now\",1,0", expected: false},
		{raw: "Failed,g,\"b,1,0\n", expected: true},
		{raw: "Failed,g,\"ends with \"\"", expected: true},
	}

	for _, tt := range tests {
		if got := unterminatedQuote(tt.raw); got != tt.expected {
			t.Errorf("unterminatedQuote(%q) = %v, want %v", tt.raw, got, tt.expected)
		}
	}
}

func fieldsOf(records []domain.Record) []domain.RawRow {
	var rows []domain.RawRow
	for _, r := range records {
		rows = append(rows, r.Fields)
	}
	return rows
}
