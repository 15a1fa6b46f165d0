package models

import (
	"errors"
	"fmt"
)

// GradeGroup is the band a grade belongs to. It is derived from
// Profile.Grade on every read and never stored.
type GradeGroup string

const (
	GradePrimary GradeGroup = "PRIMARY" // grades 1-5
	GradeMiddle  GradeGroup = "MIDDLE"  // grades 6-9
	GradeSenior  GradeGroup = "SENIOR"  // grades 10-12
)

const (
	MinGrade = 1
	MaxGrade = 12
)

// ErrGradeUnset is returned when a grade group is requested for a profile
// that has not completed onboarding.
var ErrGradeUnset = errors.New("grade is not selected")

// ValidGrade reports whether g is a selectable grade.
func ValidGrade(g int) bool {
	return g >= MinGrade && g <= MaxGrade
}

// GroupForGrade maps a grade to its group.
func GroupForGrade(g int) (GradeGroup, error) {
	switch {
	case g == 0:
		return "", ErrGradeUnset
	case g < MinGrade || g > MaxGrade:
		return "", fmt.Errorf("grade %d out of range: %w", g, ErrGradeUnset)
	case g <= 5:
		return GradePrimary, nil
	case g <= 9:
		return GradeMiddle, nil
	default:
		return GradeSenior, nil
	}
}
