// Package transcript computes grade points, CGPA and semester groupings
// from registered-course records. It has no side effects.
package transcript

import (
	"fmt"
	"strings"
)

// Grade is a letter grade; Ungraded ("") means the course has no grade yet.
type Grade string

const (
	GradeA   Grade = "A"
	GradeB   Grade = "B"
	GradeC   Grade = "C"
	GradeD   Grade = "D"
	GradeE   Grade = "E"
	GradeF   Grade = "F"
	Ungraded Grade = ""
)

// gradeScale maps letter grades to points per unit.
var gradeScale = map[Grade]int{
	GradeA: 5,
	GradeB: 4,
	GradeC: 3,
	GradeD: 2,
	GradeE: 1,
	GradeF: 0,
}

// InvalidGradeError reports a grade symbol outside the scale.
// It means the upstream data is malformed.
type InvalidGradeError struct {
	Grade  string
	Course string // course code, when known
}

func (err *InvalidGradeError) Error() string {
	if err.Course != "" {
		return fmt.Sprintf("invalid grade %q for course %s", err.Grade, err.Course)
	}
	return fmt.Sprintf("invalid grade %q", err.Grade)
}

// GradePoints returns the points per unit of g.
func GradePoints(g Grade) (int, error) {
	pts, ok := gradeScale[g]
	if !ok {
		return 0, &InvalidGradeError{Grade: string(g)}
	}
	return pts, nil
}

// ParseGrade normalizes s into a Grade. Blank input is Ungraded.
func ParseGrade(s string) (Grade, error) {
	g := Grade(strings.ToUpper(strings.TrimSpace(s)))
	if g == Ungraded {
		return Ungraded, nil
	}
	if _, ok := gradeScale[g]; !ok {
		return Ungraded, &InvalidGradeError{Grade: s}
	}
	return g, nil
}

func (g Grade) IsGraded() bool { return g != Ungraded }

func (g Grade) String() string {
	if g == Ungraded {
		return "No grade yet"
	}
	return string(g)
}
