package model

import "fmt"

// InvariantError is raised (via panic) when engine state breaks a rule that
// valid content can never break. It is never used for gameplay rejections.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "invariant violated: " + e.Msg
}

func invariantf(format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}

// CheckResistance panics if v is outside [-1, 1].
func CheckResistance(t DamageType, v float64) {
	if v < -1 || v > 1 {
		invariantf("resistance %s=%v outside [-1, 1]", t, v)
	}
}

// CheckChance panics if p is outside [0, 1].
func CheckChance(name string, p float64) {
	if p < 0 || p > 1 {
		invariantf("%s=%v outside [0, 1]", name, p)
	}
}
