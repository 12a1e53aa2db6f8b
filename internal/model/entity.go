package model

import (
	"log/slog"
	"math"
)

// Entity is the stat and state container shared by Player and Enemy.
// It is owned by a single battle and is not safe for concurrent use.
type Entity struct {
	name        string
	life        Pool
	defense     int
	damageType  DamageType
	resistances Resistances
	critChance  float64
	buffs       *BuffSet
}

// EntityStats are the construction parameters of an Entity.
type EntityStats struct {
	Name        string
	MaxLife     int
	Defense     int
	DamageType  DamageType
	Resistances Resistances
	CritChance  float64
}

// NewEntity builds an entity at full life.
// Out-of-range resistances or crit chance are invariant violations.
func NewEntity(st EntityStats) *Entity {
	for t, v := range st.Resistances {
		CheckResistance(t, v)
	}
	CheckChance("crit chance", st.CritChance)
	res := st.Resistances.Clone()
	return &Entity{
		name:        st.Name,
		life:        NewPool(st.MaxLife),
		defense:     st.Defense,
		damageType:  st.DamageType,
		resistances: res,
		critChance:  st.CritChance,
		buffs:       NewBuffSet(),
	}
}

// Name returns the display name.
func (e *Entity) Name() string { return e.name }

func (e *Entity) String() string { return e.name }

// Life returns the life pool.
func (e *Entity) Life() Pool { return e.life }

// SetLife sets current life, clamped.
func (e *Entity) SetLife(v int) { e.life.Set(v) }

// SetMaxLife changes max life, trimming current life if needed.
func (e *Entity) SetMaxLife(v int) { e.life.SetMax(v) }

// IsDefeated reports whether life reached 0.
func (e *Entity) IsDefeated() bool { return e.life.Empty() }

// Defense returns the stored defense, without buff modifiers.
func (e *Entity) Defense() int { return e.defense }

// SetDefense replaces the defense value. Weapon effects use this for
// changes that last until the end of the battle; the value is never persisted.
func (e *Entity) SetDefense(v int) {
	if v < 0 {
		v = 0
	}
	e.defense = v
}

// EffectiveDefense applies active buff modifiers to Defense.
func (e *Entity) EffectiveDefense() float64 {
	return float64(e.defense) * e.buffs.DefenseMul()
}

// DamageType is the type this entity's own attacks deal.
func (e *Entity) DamageType() DamageType { return e.damageType }

// SetDamageType changes the type dealt by this entity's attacks.
func (e *Entity) SetDamageType(t DamageType) { e.damageType = t }

// Resistance returns the multiplier for t, 0 when unset.
func (e *Entity) Resistance(t DamageType) float64 { return e.resistances.Of(t) }

// CritChance returns the base crit chance, without buff modifiers.
func (e *Entity) CritChance() float64 { return e.critChance }

// SetCritChance replaces the base crit chance.
func (e *Entity) SetCritChance(p float64) {
	CheckChance("crit chance", p)
	e.critChance = p
}

// Buffs exposes the buff set.
func (e *Entity) Buffs() *BuffSet { return e.buffs }

// AddBuff applies kind for duration turns using the refresh rule.
func (e *Entity) AddBuff(kind BuffKind, duration int) {
	e.buffs.Add(kind, duration)
	slog.Debug("buff applied", "entity", e.name, "buff", kind, "remaining", e.buffs.Remaining(kind))
}

// HasBuff reports whether kind is active.
func (e *Entity) HasBuff(kind BuffKind) bool { return e.buffs.Has(kind) }

// DamageResult describes one ApplyDamage call.
type DamageResult struct {
	Dealt int
	// Killed is true when this hit took life from above 0 to 0.
	Killed bool
}

// ApplyDamage resolves a hit of raw damage of type t:
// max(0, raw - defense) scaled by (1 - resistance), rounded half up,
// then removed from life (clamped at 0).
func (e *Entity) ApplyDamage(raw int, t DamageType) DamageResult {
	reduced := math.Max(0, float64(raw)-e.EffectiveDefense())
	scaled := reduced * (1 - e.resistances.Of(t))
	return e.loseLife(roundHalfUp(scaled))
}

// LoseLife removes amount directly, bypassing defense and resistance.
func (e *Entity) LoseLife(amount int) DamageResult {
	return e.loseLife(amount)
}

func (e *Entity) loseLife(amount int) DamageResult {
	wasAlive := !e.life.Empty()
	dealt := e.life.Take(amount)
	if e.life.Current() < 0 {
		invariantf("%s life %d below zero", e.name, e.life.Current())
	}
	return DamageResult{Dealt: dealt, Killed: wasAlive && e.life.Empty()}
}

// Heal restores up to amount life and returns how much was restored.
func (e *Entity) Heal(amount int) int {
	return e.life.Give(amount)
}

// TickResult describes one TickBuffs call.
type TickResult struct {
	DotDamage int
	Expired   []BuffKind
	Killed    bool
}

// TickBuffs decrements every active buff by one turn. Damage-over-time kinds
// deal their damage first; kinds reaching 0 are removed in the same call.
func (e *Entity) TickBuffs() TickResult {
	dot, expired := e.buffs.tick()
	res := TickResult{Expired: expired}
	if dot > 0 {
		d := e.loseLife(dot)
		res.DotDamage = d.Dealt
		res.Killed = d.Killed
	}
	for _, k := range expired {
		slog.Debug("buff expired", "entity", e.name, "buff", k)
	}
	return res
}

// roundEpsilon absorbs float error in products such as 5*(1-0.9), which
// evaluates to 0.4999999999999999 rather than 0.5.
const roundEpsilon = 1e-9

func roundHalfUp(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Floor(v + 0.5 + roundEpsilon))
}
