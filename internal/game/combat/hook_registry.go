package combat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/random"
)

// Hook runs after a primary hit resolves. Weapon on-hit effects and enemy
// attack overlays share this shape. The returned text is appended to the
// attack description; empty means nothing to report.
type Hook func(src random.Source, attacker, target *model.Entity) string

// HookFactory builds a Hook from content parameters.
type HookFactory func(p data.Params) (Hook, error)

// hookRegistry maps a content key to its factory. Populated by init() in
// each hook file and read-only afterwards.
var hookRegistry = map[string]HookFactory{}

// RegisterHook registers a hook factory by key.
func RegisterHook(key string, f HookFactory) {
	if _, dup := hookRegistry[key]; dup {
		panic("combat: duplicate hook " + key)
	}
	hookRegistry[key] = f
}

// NewHook builds the hook registered under key. An empty key yields a nil
// hook and no error.
func NewHook(key string, p data.Params) (Hook, error) {
	if key == "" {
		return nil, nil
	}
	f, ok := hookRegistry[key]
	if !ok {
		return nil, fmt.Errorf("unknown hook %q", key)
	}
	h, err := f(p)
	if err != nil {
		return nil, fmt.Errorf("hook %s: %w", key, err)
	}
	return h, nil
}

// intParam reads an integer parameter, falling back to def when absent.
func intParam(p data.Params, key string, def int) (int, error) {
	raw, ok := p[key]
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("param %s: %w", key, err)
	}
	return v, nil
}

func boolParam(p data.Params, key string) (bool, error) {
	raw, ok := p[key]
	if !ok || raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("param %s: %w", key, err)
	}
	return v, nil
}

// expand fills {attacker}, {target} and {n} placeholders in a message template.
func expand(tmpl string, attacker, target *model.Entity, n string) string {
	return strings.NewReplacer(
		"{attacker}", attacker.Name(),
		"{target}", target.Name(),
		"{n}", n,
	).Replace(tmpl)
}
