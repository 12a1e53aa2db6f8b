package model

// Enemy is a content-defined opponent, created fresh for every battle and
// discarded when the battle ends.
type Enemy struct {
	*Entity

	id          string
	description string
	level       int
	expYield    int
	damage      int
	policy      string
}

// EnemyStats are the construction parameters of an Enemy.
type EnemyStats struct {
	EntityStats
	ID          string
	Description string
	Level       int
	ExpYield    int
	Damage      int
	// Policy is the registry key of the attack overlay, empty for a plain attack.
	Policy string
}

// NewEnemy creates an enemy at full life.
func NewEnemy(st EnemyStats) *Enemy {
	return &Enemy{
		Entity:      NewEntity(st.EntityStats),
		id:          st.ID,
		description: st.Description,
		level:       st.Level,
		expYield:    st.ExpYield,
		damage:      st.Damage,
		policy:      st.Policy,
	}
}

// ID returns the content identifier.
func (e *Enemy) ID() string { return e.id }

// Description returns the flavour text.
func (e *Enemy) Description() string { return e.description }

// Level returns the fixed level.
func (e *Enemy) Level() int { return e.level }

// ExpYield returns the experience granted on defeat.
func (e *Enemy) ExpYield() int { return e.expYield }

// Damage returns the base damage of the enemy's attack.
func (e *Enemy) Damage() int { return e.damage }

// Policy returns the attack overlay key.
func (e *Enemy) Policy() string { return e.policy }
