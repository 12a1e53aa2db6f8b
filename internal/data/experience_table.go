package data

import "math"

// Progression is the experience curve: threshold(level) = round(base * growth^(level-1)).
// Experience is stored per level and resets on each level-up, so a threshold
// is the amount needed to leave a level, not a cumulative total.
type Progression struct {
	Base     float64 `yaml:"base"`
	Growth   float64 `yaml:"growth"`
	MaxLevel int     `yaml:"max_level"`
}

// Threshold returns the experience needed to advance from level to level+1.
// It returns 0 at or above MaxLevel, meaning no further advancement.
func (p Progression) Threshold(level int) int {
	if level < 1 {
		level = 1
	}
	if p.MaxLevel > 0 && level >= p.MaxLevel {
		return 0
	}
	return int(math.Round(p.Base * math.Pow(p.Growth, float64(level-1))))
}
