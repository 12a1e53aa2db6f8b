package model

import (
	"fmt"
	"slices"
)

// Player is the user-controlled side of a battle.
type Player struct {
	*Entity

	userID      int64
	mana        Pool
	level       int
	experience  int
	weaponID    string
	baseCrit    float64
	knownSkills map[string]struct{}
}

// PlayerStats are the construction parameters of a Player.
type PlayerStats struct {
	EntityStats
	UserID     int64
	MaxMana    int
	Level      int
	Experience int
}

// NewPlayer creates a player at full life and mana with no weapon equipped.
func NewPlayer(st PlayerStats) (*Player, error) {
	if st.Level < 1 {
		return nil, fmt.Errorf("level must be at least 1, got %d", st.Level)
	}
	if st.Experience < 0 {
		return nil, fmt.Errorf("experience must not be negative, got %d", st.Experience)
	}
	return &Player{
		Entity:      NewEntity(st.EntityStats),
		userID:      st.UserID,
		mana:        NewPool(st.MaxMana),
		level:       st.Level,
		experience:  st.Experience,
		baseCrit:    st.CritChance,
		knownSkills: make(map[string]struct{}),
	}, nil
}

// UserID returns the owning user identifier.
func (p *Player) UserID() int64 { return p.userID }

// Mana returns the mana pool.
func (p *Player) Mana() Pool { return p.mana }

// SetMana sets current mana, clamped.
func (p *Player) SetMana(v int) { p.mana.Set(v) }

// SetMaxMana changes max mana, trimming current mana if needed.
func (p *Player) SetMaxMana(v int) { p.mana.SetMax(v) }

// SpendMana deducts cost if affordable and reports whether it did.
func (p *Player) SpendMana(cost int) bool {
	if cost < 0 || p.mana.Current() < cost {
		return false
	}
	p.mana.Take(cost)
	return true
}

// FillPools restores life and mana to max.
func (p *Player) FillPools() {
	p.life.Fill()
	p.mana.Fill()
}

// Level returns the current level.
func (p *Player) Level() int { return p.level }

// SetLevel sets the level, clamped at 1.
func (p *Player) SetLevel(level int) {
	p.level = max(level, 1)
}

// Experience returns experience accumulated toward the next level.
func (p *Player) Experience() int { return p.experience }

// SetExperience sets experience, clamped at 0.
func (p *Player) SetExperience(exp int) {
	if exp < 0 {
		exp = 0
	}
	p.experience = exp
}

// WeaponID returns the equipped weapon identifier, empty when unarmed.
func (p *Player) WeaponID() string { return p.weaponID }

// Equip references a weapon definition. The player's attacks take the
// weapon's damage type, and its crit chance is added to the player's base.
func (p *Player) Equip(id string, t DamageType, weaponCrit float64) {
	p.weaponID = id
	p.SetDamageType(t)
	p.SetCritChance(min(1, p.baseCrit+weaponCrit))
}

// Learn marks a skill as known.
func (p *Player) Learn(skillID string) {
	p.knownSkills[skillID] = struct{}{}
}

// Knows reports whether skillID is known.
func (p *Player) Knows(skillID string) bool {
	_, ok := p.knownSkills[skillID]
	return ok
}

// KnownSkills returns known skill ids, sorted.
func (p *Player) KnownSkills() []string {
	out := make([]string, 0, len(p.knownSkills))
	for id := range p.knownSkills {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
