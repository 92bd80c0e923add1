package grading

import (
	"math"
	"strconv"
	"strings"

	"plgrader/internal/domain"
)

const descriptionGroup = "description"

// Tally accumulates weights of graded rows
type Tally struct {
	Points  int // Total weight, the grade denominator
	Granted int // Weight of passed rows
	Passed  int
	Tests   int
}

// Add returns the sum of two tallies
func (t Tally) Add(other Tally) Tally {
	return Tally{
		Points:  t.Points + other.Points,
		Granted: t.Granted + other.Granted,
		Passed:  t.Passed + other.Passed,
		Tests:   t.Tests + other.Tests,
	}
}

// Grade returns the granted share of points as a percentage, 0 when nothing was weighted
func (t Tally) Grade() float64 {
	if t.Points == 0 {
		return 0
	}
	return 100.0 * float64(t.Granted) / float64(t.Points)
}

// Aggregate grades normalized rows. Unit tests are grouped by category in first-seen order.
func Aggregate(rows []domain.ResultRow) ([]domain.UnitTestReport, Tally) {
	var order []domain.Category
	byCategory := make(map[domain.Category][]domain.ResultRow)
	for _, row := range rows {
		if _, seen := byCategory[row.Category]; !seen {
			order = append(order, row.Category)
		}
		byCategory[row.Category] = append(byCategory[row.Category], row)
	}

	units := make([]domain.UnitTestReport, 0, len(rows))
	var tally Tally
	for _, category := range order {
		status := StatusOf(category)
		for _, row := range byCategory[category] {
			units = append(units, unitTest(row, status))
			tally.Points += row.Weight
			tally.Tests++
			if status == domain.StatusPassed {
				tally.Granted += row.Weight
				tally.Passed++
			}
		}
	}
	return units, tally
}

func unitTest(row domain.ResultRow, status domain.Status) domain.UnitTestReport {
	unit := domain.UnitTestReport{
		Name:                  row.Group + "-" + row.Name,
		Weight:                row.Weight,
		Status:                status,
		TimeElapsed:           elapsedMillis(row.Elapsed),
		PrintExceptionMessage: "false",
		PrintStackTrace:       "false",
	}
	if status == domain.StatusPassed {
		return unit
	}
	if row.Group == descriptionGroup {
		unit.ExceptionClass = row.Name
		unit.ExceptionMessage = row.Message
	} else {
		unit.ExceptionClass = row.Group
	}
	return unit
}

// elapsedMillis converts runner seconds to milliseconds, -1 when unknown
func elapsedMillis(seconds string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(seconds), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return -1
	}
	return v * 1000
}
