// Package command maps text commands to game actions.
//
// The table is built explicitly; Validate checks it for empty or
// conflicting names.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknown is returned for a command that is not in the table.
var ErrUnknown = errors.New("unknown command")

// Handler executes a command. args excludes the command name.
type Handler func(s *Session, args []string) (string, error)

// Command is one entry of the table.
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	Help    string
	Handler Handler
}

// Table dispatches commands by lowercase name or alias.
type Table struct {
	commands []Command
	byName   map[string]*Command
}

// NewTable builds a table from commands.
// Fails on an empty name, a missing handler or a name used twice.
func NewTable(commands []Command) (*Table, error) {
	if err := Validate(commands); err != nil {
		return nil, err
	}
	t := &Table{
		commands: commands,
		byName:   make(map[string]*Command, len(commands)*2),
	}
	for i := range t.commands {
		c := &t.commands[i]
		t.byName[strings.ToLower(c.Name)] = c
		for _, a := range c.Aliases {
			t.byName[strings.ToLower(a)] = c
		}
	}
	return t, nil
}

// Validate checks commands for empty and duplicate names.
func Validate(commands []Command) error {
	var errs []error
	seen := make(map[string]string, len(commands)*2)
	for _, c := range commands {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, errors.New("command with empty name"))
			continue
		}
		if c.Handler == nil {
			errs = append(errs, fmt.Errorf("command %q has no handler", c.Name))
		}
		for _, name := range append([]string{c.Name}, c.Aliases...) {
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" {
				errs = append(errs, fmt.Errorf("command %q has an empty alias", c.Name))
				continue
			}
			if owner, dup := seen[key]; dup {
				errs = append(errs, fmt.Errorf("name %q used by %q and %q", key, owner, c.Name))
				continue
			}
			seen[key] = c.Name
		}
	}
	return errors.Join(errs...)
}

// Lookup finds a command by name or alias.
func (t *Table) Lookup(name string) (*Command, bool) {
	c, ok := t.byName[strings.ToLower(name)]
	return c, ok
}

// Commands returns the table entries sorted by name.
func (t *Table) Commands() []Command {
	out := make([]Command, len(t.commands))
	copy(out, t.commands)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Execute parses line and runs the matching handler.
// A blank line yields an empty reply.
func (t *Table) Execute(s *Session, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	c, ok := t.Lookup(fields[0])
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknown, fields[0])
	}
	return c.Handler(s, fields[1:])
}

// Help renders one line per command.
func (t *Table) Help() string {
	var sb strings.Builder
	for i, c := range t.Commands() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		usage := c.Name
		if c.Usage != "" {
			usage += " " + c.Usage
		}
		fmt.Fprintf(&sb, "%-22s %s", usage, c.Help)
	}
	return sb.String()
}
