package grading

import (
	"reflect"
	"testing"

	"plgrader/internal/domain"
)

func mustNormalize(t *testing.T, raws ...domain.RawRow) []domain.ResultRow {
	t.Helper()
	rows := make([]domain.ResultRow, 0, len(raws))
	for _, raw := range raws {
		row, err := Normalize(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rows = append(rows, row)
	}
	return rows
}

func TestAggregate(t *testing.T) {
	rows := mustNormalize(t,
		domain.RawRow{"Passed", "g", "a", "10", "0.5"},
		domain.RawRow{"Failed", "g", "b", "5", "0"},
		domain.RawRow{"Skipped", "g", "c", "5", "x"},
	)

	units, tally := Aggregate(rows)

	if tally.Passed != 1 || tally.Points != 20 || tally.Granted != 10 || tally.Tests != 3 {
		t.Errorf("unexpected tally %+v", tally)
	}
	if tally.Grade() != 50.0 {
		t.Errorf("expected grade 50, got %v", tally.Grade())
	}

	expected := []domain.UnitTestReport{
		{Name: "g-a", Weight: 10, Status: domain.StatusPassed, TimeElapsed: 500, PrintExceptionMessage: "false", PrintStackTrace: "false"},
		{Name: "g-b", Weight: 5, Status: domain.StatusFailed, TimeElapsed: 0, ExceptionClass: "g", PrintExceptionMessage: "false", PrintStackTrace: "false"},
		{Name: "g-c", Weight: 5, Status: domain.StatusSkipped, TimeElapsed: -1, ExceptionClass: "g", PrintExceptionMessage: "false", PrintStackTrace: "false"},
	}
	if !reflect.DeepEqual(units, expected) {
		t.Errorf("expected %+v\ngot %+v", expected, units)
	}
}

func TestAggregate_CategoryOrder(t *testing.T) {
	rows := mustNormalize(t,
		domain.RawRow{"Failed", "g", "f1", "1", "0"},
		domain.RawRow{"Passed", "g", "p1", "1", "0"},
		domain.RawRow{"Failed", "g", "f2", "1", "0"},
		domain.RawRow{"Passed", "g", "p2", "1", "0"},
	)

	units, _ := Aggregate(rows)

	var names []string
	for _, u := range units {
		names = append(names, u.Name)
	}
	expected := []string{"g-f1", "g-f2", "g-p1", "g-p2"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("expected %v, got %v", expected, names)
	}
}

func TestAggregate_DescriptionGroup(t *testing.T) {
	rows := mustNormalize(t,
		domain.RawRow{"Failed", "description", "member/2", "should find 3", "2", "0.1"},
	)

	units, _ := Aggregate(rows)

	if units[0].ExceptionClass != "member/2" || units[0].ExceptionMessage != "should find 3" {
		t.Errorf("unexpected exception data %+v", units[0])
	}
	if units[0].Name != "description-member/2" {
		t.Errorf("unexpected name %s", units[0].Name)
	}
}

func TestAggregate_FixmeMatchesNative(t *testing.T) {
	tests := []struct {
		name   string
		fixme  domain.RawRow
		native domain.RawRow
	}{
		{
			name:   "passed",
			fixme:  domain.RawRow{"Fixme", "g", "a", "msg", "7", "0.2", "passed"},
			native: domain.RawRow{"Passed", "g", "a", "msg", "7", "0.2"},
		},
		{
			name:   "failed",
			fixme:  domain.RawRow{"Fixme", "g", "a", "msg", "7", "0.2", "failure"},
			native: domain.RawRow{"Failed", "g", "a", "msg", "7", "0.2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixmeUnits, fixmeTally := Aggregate(mustNormalize(t, tt.fixme))
			nativeUnits, nativeTally := Aggregate(mustNormalize(t, tt.native))
			if fixmeTally != nativeTally {
				t.Errorf("tallies differ: %+v vs %+v", fixmeTally, nativeTally)
			}
			if !reflect.DeepEqual(fixmeUnits, nativeUnits) {
				t.Errorf("unit tests differ: %+v vs %+v", fixmeUnits, nativeUnits)
			}
		})
	}
}

func TestTally_Grade(t *testing.T) {
	tests := []struct {
		name     string
		tally    Tally
		expected float64
	}{
		{name: "no points", tally: Tally{}, expected: 0},
		{name: "all granted", tally: Tally{Points: 9, Granted: 9}, expected: 100},
		{name: "none granted", tally: Tally{Points: 9}, expected: 0},
		{name: "quarter", tally: Tally{Points: 8, Granted: 2}, expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade := tt.tally.Grade()
			if grade != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, grade)
			}
			if grade < 0 || grade > 100 {
				t.Errorf("grade %v out of bounds", grade)
			}
		})
	}

	t.Run("totals are sums of suites", func(t *testing.T) {
		total := Tally{}.Add(Tally{Points: 10, Granted: 10, Passed: 1, Tests: 1}).Add(Tally{Points: 30, Granted: 0, Tests: 2})
		if total.Points != 40 || total.Granted != 10 || total.Grade() != 25 {
			t.Errorf("unexpected total %+v", total)
		}
	})
}

func TestElapsedMillis(t *testing.T) {
	cases := map[string]float64{
		"0.5":  500,
		"2":    2000,
		" 1 ":  1000,
		"x":    -1,
		"":     -1,
		"NaN":  -1,
		"+Inf": -1,
	}
	for in, want := range cases {
		if got := elapsedMillis(in); got != want {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
	}
}
