package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/random"
)

func TestWeaponAttackSlime(t *testing.T) {
	c := data.TestContent()
	hero := newTestPlayer(t, c, "training_sword")
	slime, _ := spawn(t, c, "slime")
	sword := weapon(t, c, "training_sword")
	src := random.Fixed(0.99)

	out, err := WeaponAttack(src, hero, sword, slime)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Dealt)
	assert.False(t, out.Crit)
	assert.False(t, out.Killed)
	assert.Equal(t, 5, slime.Life().Current())
	assert.Equal(t, "Hero hits Green Slime for 5 damage.", out.Text())

	out, err = WeaponAttack(src, hero, sword, slime)
	require.NoError(t, err)
	assert.True(t, out.Killed)
	assert.Equal(t, 0, slime.Life().Current())
	assert.Contains(t, out.Text(), "Green Slime is defeated!")
}

func TestCritDoublesBaseDamage(t *testing.T) {
	c := data.TestContent()
	dagger := weapon(t, c, "lucky_dagger") // 4 pierce, crit 0.2

	tests := []struct {
		name      string
		draw      float64
		blinded   bool
		wantCrit  bool
		wantDealt int
	}{
		{"draw below chance crits", 0.1, false, true, 8},
		{"draw at chance does not crit", 0.2, false, false, 4},
		{"draw above chance", 0.5, false, false, 4},
		{"blinded draw 0.05 crits", 0.05, true, true, 8},
		{"blinded draw 0.15 does not crit", 0.15, true, false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hero := newTestPlayer(t, c, "lucky_dagger")
			if tt.blinded {
				hero.AddBuff(model.BuffBlinded, 3)
			}
			slime, _ := spawn(t, c, "slime")

			out, err := WeaponAttack(random.Fixed(tt.draw), hero, dagger, slime)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCrit, out.Crit)
			assert.Equal(t, tt.wantDealt, out.Dealt)
		})
	}
}

func TestCritChanceModifiers(t *testing.T) {
	attacker := model.NewEntity(model.EntityStats{Name: "a", MaxLife: 10, CritChance: 0.4})
	target := model.NewEntity(model.EntityStats{Name: "b", MaxLife: 10})

	assert.InDelta(t, 0.4, CritChance(attacker, target), 1e-9)

	attacker.AddBuff(model.BuffBlinded, 2)
	assert.InDelta(t, 0.2, CritChance(attacker, target), 1e-9)

	target.AddBuff(model.BuffBlocking, 2)
	assert.InDelta(t, 0.1, CritChance(attacker, target), 1e-9)
}

func TestWeaponAttackRejectsDefeated(t *testing.T) {
	c := data.TestContent()
	sword := weapon(t, c, "training_sword")

	t.Run("target defeated", func(t *testing.T) {
		hero := newTestPlayer(t, c, "training_sword")
		slime, _ := spawn(t, c, "slime")
		slime.SetLife(0)
		src := random.Fixed(0.5)

		_, err := WeaponAttack(src, hero, sword, slime)
		assert.True(t, IsRejected(err, ReasonTargetDefeated))
		assert.Zero(t, src.Draws(), "rejected attack must not draw")
	})

	t.Run("wielder defeated", func(t *testing.T) {
		hero := newTestPlayer(t, c, "training_sword")
		hero.SetLife(0)
		slime, _ := spawn(t, c, "slime")

		_, err := WeaponAttack(random.Fixed(0.5), hero, sword, slime)
		r, ok := AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, ReasonActorDefeated, r.Reason)
		assert.Equal(t, 10, slime.Life().Current())
	})
}

func TestTitanHammerHalvesDefenseAfterHit(t *testing.T) {
	c := data.TestContent()
	hammer := weapon(t, c, "titan_hammer") // 14 blunt
	hero := newTestPlayer(t, c, "titan_hammer")
	mama, _ := spawn(t, c, "mama_oinx") // defense 5, life 69
	src := random.Fixed(0.99)

	out, err := WeaponAttack(src, hero, hammer, mama)
	require.NoError(t, err)
	assert.Equal(t, 9, out.Dealt, "first hit uses full defense")
	assert.Equal(t, 2, mama.Defense())

	out, err = WeaponAttack(src, hero, hammer, mama)
	require.NoError(t, err)
	assert.Equal(t, 12, out.Dealt)
	assert.Equal(t, 1, mama.Defense())
}

func TestForestTranceHealsWielder(t *testing.T) {
	c := data.TestContent()
	trance := weapon(t, c, "forest_trance")
	hero := newTestPlayer(t, c, "forest_trance")
	hero.SetLife(10)
	slime, _ := spawn(t, c, "slime")

	// crit draw, then heal draw: IntN(4) of 0.99 is 3, so 3+3 = 6
	out, err := WeaponAttack(random.Fixed(0.99), hero, trance, slime)
	require.NoError(t, err)
	assert.Equal(t, 16, hero.Life().Current())
	assert.Contains(t, out.Text(), "Hero restores 6 HP!")
}

func TestSwordMcGuffinBlindsOnlyOnce(t *testing.T) {
	c := data.TestContent()
	sword := weapon(t, c, "sword_mcguffin")
	hero := newTestPlayer(t, c, "sword_mcguffin")
	mama, _ := spawn(t, c, "mama_oinx")

	// crit draw 0.9 misses, one-in-3 draw 0.1 hits
	src := random.Fixed(0.9, 0.1)
	_, err := WeaponAttack(src, hero, sword, mama)
	require.NoError(t, err)
	require.True(t, mama.HasBuff(model.BuffBlinded))
	assert.Equal(t, 5, mama.Buffs().Remaining(model.BuffBlinded))
	assert.Equal(t, 2, src.Draws())

	mama.TickBuffs()
	_, err = WeaponAttack(src, hero, sword, mama)
	require.NoError(t, err)
	assert.Equal(t, 4, mama.Buffs().Remaining(model.BuffBlinded), "existing blind is not refreshed")
	assert.Equal(t, 3, src.Draws(), "no roll while already blinded")
}

func TestEnemyAttackOverlays(t *testing.T) {
	c := data.TestContent()

	t.Run("goblin exposes", func(t *testing.T) {
		hero := newTestPlayer(t, c, "training_sword")
		goblin, def := spawn(t, c, "goblin")
		policy, err := NewHook(def.Policy, def.Params)
		require.NoError(t, err)

		out, err := EnemyAttack(random.Fixed(0.9, 0.0), goblin, policy, hero)
		require.NoError(t, err)
		assert.Equal(t, 10, out.Dealt)
		assert.True(t, hero.HasBuff(model.BuffVulnerable))
		assert.Contains(t, out.Text(), "Hero is now vulnerable!")
	})

	t.Run("mama oinx babies", func(t *testing.T) {
		hero := newTestPlayer(t, c, "training_sword")
		hero.SetMaxLife(100)
		hero.SetLife(100)
		mama, def := spawn(t, c, "mama_oinx")
		policy, err := NewHook(def.Policy, def.Params)
		require.NoError(t, err)

		// crit miss, then five hits: IntN(2) of 0.9 is 1, so each hit deals 2
		src := random.Fixed(0.9)
		out, err := EnemyAttack(src, mama, policy, hero)
		require.NoError(t, err)
		assert.Equal(t, 8, out.Dealt)
		assert.Equal(t, 100-8-10, hero.Life().Current())
		assert.Equal(t, 6, src.Draws())
		assert.Contains(t, out.Text(), "2, 2, 2, 2, 2.")
	})

	t.Run("immune skips overlay", func(t *testing.T) {
		hero := newTestPlayer(t, c, "training_sword")
		hero.AddBuff(model.BuffImmune, 2)
		mama, def := spawn(t, c, "mama_oinx")
		policy, err := NewHook(def.Policy, def.Params)
		require.NoError(t, err)

		src := random.Fixed(0.9)
		out, err := EnemyAttack(src, mama, policy, hero)
		require.NoError(t, err)
		assert.Equal(t, 12, hero.Life().Current())
		assert.Equal(t, 1, src.Draws())
		assert.Contains(t, out.Text(), "immune")
	})

	t.Run("killing blow", func(t *testing.T) {
		hero := newTestPlayer(t, c, "training_sword")
		hero.SetLife(1)
		slime, _ := spawn(t, c, "slime")

		out, err := EnemyAttack(random.Fixed(0.9), slime, nil, hero)
		require.NoError(t, err)
		assert.True(t, out.Killed)
		assert.True(t, hero.IsDefeated())
	})
}

func TestValidateContent(t *testing.T) {
	require.NoError(t, ValidateContent(data.TestContent()))

	def, err := data.DefaultContent()
	require.NoError(t, err)
	require.NoError(t, ValidateContent(def))
}

func TestNewHookErrors(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		params data.Params
	}{
		{"unknown key", "teleport", nil},
		{"unknown buff", "inflict", data.Params{"buff": "frozen"}},
		{"bad one_in", "inflict", data.Params{"buff": "blinded", "one_in": "x"}},
		{"inverted heal range", "heal_wielder", data.Params{"min": "6", "max": "3"}},
		{"zero hits", "extra_hits", data.Params{"hits": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHook(tt.key, tt.params)
			assert.Error(t, err)
		})
	}

	h, err := NewHook("", nil)
	assert.NoError(t, err)
	assert.Nil(t, h)
}
