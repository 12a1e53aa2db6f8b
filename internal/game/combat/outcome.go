package combat

import (
	"fmt"
	"strings"
)

// Outcome describes one resolved action.
type Outcome struct {
	// Dealt is the life removed from the target by the primary hit.
	Dealt int
	Crit  bool
	// Killed is set when the target ended the action defeated.
	Killed bool
	lines  []string
}

// Text returns the composed description, one line per step.
func (o *Outcome) Text() string {
	return strings.Join(o.lines, "\n")
}

// Lines returns the description lines.
func (o *Outcome) Lines() []string {
	return append([]string(nil), o.lines...)
}

// Add appends a line. Empty lines are dropped.
func (o *Outcome) Add(line string) {
	if line != "" {
		o.lines = append(o.lines, line)
	}
}

// Addf appends a formatted line.
func (o *Outcome) Addf(format string, args ...any) {
	o.Add(fmt.Sprintf(format, args...))
}
