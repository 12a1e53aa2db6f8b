package model

import (
	"fmt"
	"strings"
)

// DamageType determines which resistance entry applies to a hit.
type DamageType uint8

const (
	DamageBlunt DamageType = iota
	DamagePierce
	DamageCutting
	DamageMagic
)

// DamageTypes lists every damage type in declaration order.
var DamageTypes = [...]DamageType{DamageBlunt, DamagePierce, DamageCutting, DamageMagic}

var damageTypeNames = [...]string{"blunt", "pierce", "cutting", "magic"}

func (t DamageType) String() string {
	if int(t) < len(damageTypeNames) {
		return damageTypeNames[t]
	}
	return fmt.Sprintf("DamageType(%d)", t)
}

// ParseDamageType resolves a damage type by its lowercase name.
func ParseDamageType(s string) (DamageType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range damageTypeNames {
		if name == s {
			return DamageType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown damage type %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler (used by the yaml content loader).
func (t *DamageType) UnmarshalText(b []byte) error {
	v, err := ParseDamageType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t DamageType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// MagicType is the elemental tag carried by weapons. Informational only.
type MagicType uint8

const (
	MagicNone MagicType = iota
	MagicFire
	MagicWater
	MagicEarth
	MagicAir
)

var magicTypeNames = [...]string{"none", "fire", "water", "earth", "air"}

func (m MagicType) String() string {
	if int(m) < len(magicTypeNames) {
		return magicTypeNames[m]
	}
	return fmt.Sprintf("MagicType(%d)", m)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MagicType) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	if s == "" {
		*m = MagicNone
		return nil
	}
	for i, name := range magicTypeNames {
		if name == s {
			*m = MagicType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown magic type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m MagicType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Resistances maps a damage type to its multiplier in [-1, 1].
// Positive values mitigate, negative values amplify. Missing entries are 0.
type Resistances map[DamageType]float64

// Of returns the multiplier for t, 0 when unset.
func (r Resistances) Of(t DamageType) float64 {
	return r[t]
}

// Clone returns an independent copy.
func (r Resistances) Clone() Resistances {
	out := make(Resistances, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
