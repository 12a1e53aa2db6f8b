package skill

import (
	"fmt"
	"strconv"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/model"
)

// EffectFactory builds an Effect from skill parameters.
type EffectFactory func(params data.Params) (Effect, error)

// effectRegistry maps effect key → factory function.
// Populated by init() and read-only afterwards.
var effectRegistry = map[string]EffectFactory{}

// RegisterEffect registers an effect factory by key.
func RegisterEffect(key string, factory EffectFactory) {
	if _, dup := effectRegistry[key]; dup {
		panic("skill: duplicate effect " + key)
	}
	effectRegistry[key] = factory
}

// CreateEffect creates an effect by key using the registered factory.
// Returns error if the key is not registered or params are invalid.
func CreateEffect(key string, params data.Params) (Effect, error) {
	factory, ok := effectRegistry[key]
	if !ok {
		return nil, fmt.Errorf("unknown effect type: %s", key)
	}
	e, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("effect %s: %w", key, err)
	}
	return e, nil
}

func init() {
	RegisterEffect("buff_self", NewBuffSelfEffect)
	RegisterEffect("debuff_target", NewDebuffTargetEffect)
	RegisterEffect("heal_self", NewHealEffect)
	RegisterEffect("damage_target", NewDamageEffect)
	RegisterEffect("cleanse_self", NewCleanseEffect)
}

func intParam(params data.Params, key string, def int) (int, error) {
	raw := params[key]
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("param %s: %w", key, err)
	}
	return v, nil
}

// buffParams parses "buff" and "duration". The duration defaults to the
// kind's default duration.
func buffParams(params data.Params) (model.BuffKind, int, error) {
	kind, err := model.ParseBuffKind(params["buff"])
	if err != nil {
		return 0, 0, err
	}
	duration, err := intParam(params, "duration", kind.Def().DefaultDuration)
	if err != nil {
		return 0, 0, err
	}
	if duration < 1 {
		return 0, 0, fmt.Errorf("duration must be at least 1, got %d", duration)
	}
	return kind, duration, nil
}
