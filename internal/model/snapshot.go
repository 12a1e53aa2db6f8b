package model

// BuffView is one active buff in a Snapshot.
type BuffView struct {
	Kind      BuffKind
	Name      string
	Remaining int
}

// Snapshot is a read-only copy of an entity for the presentation layer.
type Snapshot struct {
	Name       string
	Life       int
	MaxLife    int
	Defense    int
	DamageType DamageType
	Buffs      []BuffView

	// Player only.
	Mana       int
	MaxMana    int
	Level      int
	Experience int
	WeaponID   string
}

func snapshotEntity(e *Entity) Snapshot {
	s := Snapshot{
		Name:       e.name,
		Life:       e.life.Current(),
		MaxLife:    e.life.Max(),
		Defense:    e.defense,
		DamageType: e.damageType,
	}
	for _, k := range e.buffs.Kinds() {
		s.Buffs = append(s.Buffs, BuffView{Kind: k, Name: k.String(), Remaining: e.buffs.Remaining(k)})
	}
	return s
}

// Snapshot returns a read-only view of the player.
func (p *Player) Snapshot() Snapshot {
	s := snapshotEntity(p.Entity)
	s.Mana = p.mana.Current()
	s.MaxMana = p.mana.Max()
	s.Level = p.level
	s.Experience = p.experience
	s.WeaponID = p.weaponID
	return s
}

// Snapshot returns a read-only view of the enemy.
func (e *Enemy) Snapshot() Snapshot {
	s := snapshotEntity(e.Entity)
	s.Level = e.level
	return s
}
