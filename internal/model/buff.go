package model

import (
	"fmt"
	"slices"
	"strings"
)

// BuffKind identifies a timed modifier. The set of kinds is closed:
// every kind has an entry in buffTable.
type BuffKind uint8

const (
	BuffBlocking BuffKind = iota
	BuffBlinded
	BuffVulnerable
	BuffImmune
	BuffBurning

	buffKindCount
)

// BuffDef describes what a buff kind does while active.
type BuffDef struct {
	Kind        BuffKind
	Name        string
	Description string
	// DefenseMul scales the holder's defense. 1 means unchanged.
	DefenseMul float64
	// CritMul scales the holder's crit chance when it attacks.
	CritMul float64
	// CritTakenMul scales the chance of the holder being hit critically.
	CritTakenMul float64
	// DamagePerTick is applied to the holder on every tick, before expiry.
	DamagePerTick int
	// Debuff marks kinds that cleansing removes.
	Debuff          bool
	DefaultDuration int
}

var buffTable = [buffKindCount]BuffDef{
	BuffBlocking: {
		Kind: BuffBlocking, Name: "Blocking", Description: "Defense increased by 50%, half as likely to take critical hits.",
		DefenseMul: 1.5, CritMul: 1, CritTakenMul: 0.5, DefaultDuration: 3,
	},
	BuffBlinded: {
		Kind: BuffBlinded, Name: "Blinded", Description: "Critical hit chance halved.",
		DefenseMul: 1, CritMul: 0.5, CritTakenMul: 1, Debuff: true, DefaultDuration: 3,
	},
	BuffVulnerable: {
		Kind: BuffVulnerable, Name: "Vulnerable", Description: "Defense halved.",
		DefenseMul: 0.5, CritMul: 1, CritTakenMul: 1, Debuff: true, DefaultDuration: 3,
	},
	BuffImmune: {
		Kind: BuffImmune, Name: "Immune", Description: "Unaffected by enemy special attacks.",
		DefenseMul: 1, CritMul: 1, CritTakenMul: 1, DefaultDuration: 3,
	},
	BuffBurning: {
		Kind: BuffBurning, Name: "Burning", Description: "Takes 2 damage every turn.",
		DefenseMul: 1, CritMul: 1, CritTakenMul: 1, DamagePerTick: 2, Debuff: true, DefaultDuration: 3,
	},
}

// Def returns the definition of k. Unknown kinds are an invariant violation.
func (k BuffKind) Def() BuffDef {
	if k >= buffKindCount {
		invariantf("unknown buff kind %d", k)
	}
	return buffTable[k]
}

func (k BuffKind) String() string {
	if k >= buffKindCount {
		return fmt.Sprintf("BuffKind(%d)", k)
	}
	return buffTable[k].Name
}

// BuffKinds returns all defined kinds in declaration order.
func BuffKinds() []BuffKind {
	out := make([]BuffKind, 0, buffKindCount)
	for k := BuffKind(0); k < buffKindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseBuffKind resolves a kind by case-insensitive name.
func ParseBuffKind(s string) (BuffKind, error) {
	for k := BuffKind(0); k < buffKindCount; k++ {
		if strings.EqualFold(buffTable[k].Name, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown buff kind %q", s)
}

// BuffSet holds remaining durations per kind.
// A kind is either absent or present with at least one turn remaining.
type BuffSet struct {
	remaining map[BuffKind]int
}

// NewBuffSet returns an empty set.
func NewBuffSet() *BuffSet {
	return &BuffSet{remaining: make(map[BuffKind]int, buffKindCount)}
}

// Add applies kind for duration turns. Re-applying an active kind keeps the
// larger of the current remaining and the new duration; durations never sum.
// Durations below 1 are ignored.
func (s *BuffSet) Add(kind BuffKind, duration int) {
	kind.Def()
	if duration < 1 {
		return
	}
	if cur, ok := s.remaining[kind]; ok && cur >= duration {
		return
	}
	s.remaining[kind] = duration
}

// Has reports whether kind is active.
func (s *BuffSet) Has(kind BuffKind) bool {
	kind.Def()
	_, ok := s.remaining[kind]
	return ok
}

// Remaining returns the turns left for kind, 0 when absent.
func (s *BuffSet) Remaining(kind BuffKind) int {
	return s.remaining[kind]
}

// Remove drops kind if present and reports whether it was active.
func (s *BuffSet) Remove(kind BuffKind) bool {
	kind.Def()
	if _, ok := s.remaining[kind]; !ok {
		return false
	}
	delete(s.remaining, kind)
	return true
}

// Clear removes every buff.
func (s *BuffSet) Clear() {
	clear(s.remaining)
}

// Len returns the number of active kinds.
func (s *BuffSet) Len() int {
	return len(s.remaining)
}

// Kinds returns the active kinds in declaration order.
func (s *BuffSet) Kinds() []BuffKind {
	out := make([]BuffKind, 0, len(s.remaining))
	for k := range s.remaining {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// DefenseMul is the product of DefenseMul over active kinds.
func (s *BuffSet) DefenseMul() float64 {
	mul := 1.0
	for k := range s.remaining {
		mul *= buffTable[k].DefenseMul
	}
	return mul
}

// CritMul is the product of CritMul over active kinds.
func (s *BuffSet) CritMul() float64 {
	mul := 1.0
	for k := range s.remaining {
		mul *= buffTable[k].CritMul
	}
	return mul
}

// CritTakenMul is the product of CritTakenMul over active kinds.
func (s *BuffSet) CritTakenMul() float64 {
	mul := 1.0
	for k := range s.remaining {
		mul *= buffTable[k].CritTakenMul
	}
	return mul
}

// tick decrements every duration by one and removes kinds reaching zero.
// It returns the total per-tick damage of the kinds that were active at the
// start of the tick and the kinds that expired.
func (s *BuffSet) tick() (dot int, expired []BuffKind) {
	for _, k := range s.Kinds() {
		dot += buffTable[k].DamagePerTick
		left := s.remaining[k] - 1
		if left <= 0 {
			delete(s.remaining, k)
			expired = append(expired, k)
			continue
		}
		s.remaining[k] = left
	}
	return dot, expired
}
