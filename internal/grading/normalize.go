package grading

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"plgrader/internal/domain"
)

// Row layouts after the category token:
//
//	full:    group, name, message, weight, extra..., elapsed
//	compact: group, name, weight, elapsed
const (
	fullLayoutMin   = 5
	compactLayout   = 4
	fixmePassedMark = "passed"
)

// Normalize resolves the row category and maps its fields by layout.
// A Fixme row becomes Passed when its last field is "passed" and Failed otherwise;
// that last field is dropped either way.
func Normalize(raw domain.RawRow) (domain.ResultRow, error) {
	if len(raw) == 0 {
		return domain.ResultRow{}, &domain.MalformedRowError{Reason: "empty row"}
	}

	category := domain.Category(raw[0])
	fields := raw[1:]

	if category == domain.CategoryFixme {
		if len(fields) == 0 {
			return domain.ResultRow{}, &domain.MalformedRowError{Row: raw, Reason: "Fixme row without outcome"}
		}
		if fields[len(fields)-1] == fixmePassedMark {
			category = domain.CategoryPassed
		} else {
			category = domain.CategoryFailed
		}
		fields = fields[:len(fields)-1]
	}

	row := domain.ResultRow{Category: category}
	var weight string
	switch {
	case len(fields) >= fullLayoutMin:
		row.Group = fields[0]
		row.Name = fields[1]
		row.Message = fields[2]
		weight = fields[3]
		row.Extra = fields[4 : len(fields)-1]
		row.Elapsed = fields[len(fields)-1]
	case len(fields) == compactLayout:
		row.Group = fields[0]
		row.Name = fields[1]
		weight = fields[2]
		row.Elapsed = fields[3]
	default:
		return domain.ResultRow{}, &domain.MalformedRowError{
			Row:    raw,
			Reason: fmt.Sprintf("expected at least %d fields after the category, got %d", compactLayout, len(fields)),
		}
	}

	w, err := strconv.Atoi(strings.TrimSpace(weight))
	if err != nil {
		return domain.ResultRow{}, &domain.MalformedRowError{Row: raw, Reason: "invalid weight", Err: err}
	}
	if w < 0 {
		return domain.ResultRow{}, &domain.MalformedRowError{Row: raw, Reason: fmt.Sprintf("negative weight %d", w)}
	}
	row.Weight = w
	return row, nil
}

// NormalizeAll normalizes every record; the first malformed row fails the whole block
func NormalizeAll(records []domain.Record) ([]domain.ResultRow, error) {
	rows := make([]domain.ResultRow, 0, len(records))
	for _, record := range records {
		row, err := Normalize(record.Fields)
		if err != nil {
			var malformed *domain.MalformedRowError
			if errors.As(err, &malformed) && malformed.Line == 0 {
				malformed.Line = record.Line
			}
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// StatusOf maps a resolved category to the reported status. Unknown categories are skipped tests.
func StatusOf(category domain.Category) domain.Status {
	switch category {
	case domain.CategoryPassed:
		return domain.StatusPassed
	case domain.CategoryFailed:
		return domain.StatusFailed
	default:
		return domain.StatusSkipped
	}
}
