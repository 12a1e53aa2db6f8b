package battle

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/game/combat"
	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/random"
	"github.com/udisondev/rpgbattle/internal/save"
)

func newTestBattle(t *testing.T, c *data.Content, p save.Progress, enemyID string, src random.Source) *Battle {
	t.Helper()
	player, err := NewPlayer(c, 1, "Hero", p)
	require.NoError(t, err)
	def, ok := c.Enemy(enemyID)
	require.True(t, ok, "enemy %s", enemyID)
	b, err := New(c, player, def, src)
	require.NoError(t, err)
	return b
}

func TestSlimeEndToEnd(t *testing.T) {
	c := data.TestContent()
	b := newTestBattle(t, c, Fresh(c), "slime", random.Fixed(0.5))

	assert.Equal(t, StatePlayerTurn, b.State())
	assert.Equal(t, 20, b.Player().Life().Current())
	assert.Equal(t, 5, b.Player().Mana().Current())

	res, err := b.ApplyAction(Attack())
	require.NoError(t, err)
	assert.Equal(t, StatePlayerTurn, res.State)
	assert.Equal(t, 5, b.Enemy().Life().Current())
	require.NotNil(t, res.Enemy, "enemy replies while alive")
	assert.Equal(t, 19, b.Player().Life().Current())

	res, err = b.ApplyAction(Attack())
	require.NoError(t, err)
	assert.True(t, res.Victory())
	assert.Equal(t, 0, b.Enemy().Life().Current())
	assert.Nil(t, res.Enemy, "defeated enemy does not act")
	require.NotNil(t, res.Award)
	assert.Equal(t, 1, res.Award.Exp)
	assert.Equal(t, 1, b.Player().Experience())
	assert.Equal(t, 2, b.Round())
	assert.Contains(t, res.Text(), "You win!")
	assert.True(t, b.IsOver())
}

func TestBlindedCrit(t *testing.T) {
	c := data.TestContent()
	prog := Fresh(c)
	prog.WeaponID = "lucky_dagger" // crit 0.2

	tests := []struct {
		name     string
		draw     float64
		wantLife int
	}{
		{"draw 0.05 crits", 0.05, 10 - 8},
		{"draw 0.15 does not crit", 0.15, 10 - 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBattle(t, c, prog, "slime", random.Fixed(tt.draw))
			b.Player().AddBuff(model.BuffBlinded, 3)

			res, err := b.ApplyAction(Attack())
			require.NoError(t, err)
			assert.Equal(t, tt.wantLife, b.Enemy().Life().Current())
			assert.Equal(t, tt.draw < 0.1, res.Player.Crit)
		})
	}
}

func TestZeroDamageHitsRoundCap(t *testing.T) {
	c := data.TestContent()
	b := newTestBattle(t, c, Fresh(c), "rock", random.New(7))

	_, err := Run(b, AttackOnly, 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRoundCap))
	assert.Equal(t, 50, b.Round())
	assert.Equal(t, StatePlayerTurn, b.State())
	assert.Equal(t, 10, b.Enemy().Life().Current())
	assert.Equal(t, 20, b.Player().Life().Current())
}

func TestRejectedActionChangesNothing(t *testing.T) {
	c := data.TestContent()
	prog := Fresh(c)
	prog.Skills = []string{"fireball"}
	prog.Mana = 3

	tests := []struct {
		name   string
		action Action
		reason combat.Reason
	}{
		{"unknown skill", Cast("meteor"), combat.ReasonUnknownSkill},
		{"insufficient mana", Cast("fire"), combat.ReasonInsufficientMana},
		{"not learned", Cast("mend"), combat.ReasonSkillNotKnown},
		{"unknown action", Action{}, combat.ReasonUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := random.Fixed(0.5)
			b := newTestBattle(t, c, prog, "slime", src)
			before := b.Snapshot()

			_, err := b.ApplyAction(tt.action)
			assert.True(t, combat.IsRejected(err, tt.reason), "got %v", err)
			assert.Equal(t, before, b.Snapshot())
			assert.Zero(t, src.Draws())
		})
	}
}

func TestBattleOverRejects(t *testing.T) {
	c := data.TestContent()
	b := newTestBattle(t, c, Fresh(c), "slime", random.Fixed(0.5))

	_, err := Run(b, AttackOnly, 10)
	require.NoError(t, err)
	require.Equal(t, StateVictory, b.State())

	_, err = b.ApplyAction(Attack())
	assert.True(t, combat.IsRejected(err, combat.ReasonBattleOver))
}

func TestDefeatOnEnemyTurn(t *testing.T) {
	c := data.TestContent()
	prog := Fresh(c)
	prog.Life = 1
	b := newTestBattle(t, c, prog, "slime", random.Fixed(0.5))

	res, err := b.ApplyAction(Attack())
	require.NoError(t, err)
	assert.True(t, res.Defeat())
	assert.Equal(t, 5, b.Enemy().Life().Current())
	assert.Nil(t, res.Award)
	assert.Nil(t, b.Award())
	assert.Contains(t, res.Text(), "You lost!")
}

func TestDamageOverTime(t *testing.T) {
	c := data.TestContent()

	t.Run("burning enemy falls before acting", func(t *testing.T) {
		b := newTestBattle(t, c, Fresh(c), "rock", random.Fixed(0.5))
		b.Enemy().SetLife(2)
		b.Enemy().AddBuff(model.BuffBurning, 3)

		res, err := b.ApplyAction(Attack())
		require.NoError(t, err)
		assert.True(t, res.Victory())
		assert.Nil(t, res.Enemy)
		assert.Contains(t, res.Ticks, "Living Rock takes 2 damage from burning.")
	})

	t.Run("burning player falls before enemy acts", func(t *testing.T) {
		prog := Fresh(c)
		prog.Life = 2
		b := newTestBattle(t, c, prog, "rock", random.Fixed(0.5))
		b.Player().AddBuff(model.BuffBurning, 3)

		res, err := b.ApplyAction(Attack())
		require.NoError(t, err)
		assert.True(t, res.Defeat())
		assert.Nil(t, res.Enemy)
	})

	t.Run("both ticked each side", func(t *testing.T) {
		b := newTestBattle(t, c, Fresh(c), "rock", random.Fixed(0.5))
		b.Player().AddBuff(model.BuffBlocking, 3)
		b.Enemy().AddBuff(model.BuffVulnerable, 3)

		res, err := b.ApplyAction(Attack())
		require.NoError(t, err)
		assert.Equal(t, 1, b.Player().Buffs().Remaining(model.BuffBlocking))
		assert.Equal(t, 1, b.Enemy().Buffs().Remaining(model.BuffVulnerable))

		res, err = b.ApplyAction(Attack())
		require.NoError(t, err)
		assert.False(t, b.Player().HasBuff(model.BuffBlocking))
		assert.Contains(t, res.Ticks, "Hero is no longer Blocking.")
	})
}

func TestVictoryLevelsUp(t *testing.T) {
	c := data.TestContent()
	prog := Fresh(c)
	prog.Experience = 4
	prog.Life = 12
	b := newTestBattle(t, c, prog, "slime", random.Fixed(0.5))

	res, err := Run(b, AttackOnly, 10)
	require.NoError(t, err)
	require.True(t, res.Victory())
	require.NotNil(t, res.Award)

	p := b.Player()
	assert.Equal(t, 2, p.Level())
	assert.Equal(t, 0, p.Experience())
	assert.Equal(t, 25, p.Life().Current(), "level-up refills life")
	assert.Equal(t, 6, p.Mana().Max())
	require.Len(t, res.Award.Skills, 1)
	assert.Equal(t, "expose_weakness", res.Award.Skills[0].ID)
	assert.False(t, p.Knows("expose_weakness"), "unlock is eligibility only")
	assert.Contains(t, res.Text(), "Level up! You are now level 2.")
}

func TestCastInBattle(t *testing.T) {
	c := data.TestContent()
	prog := Fresh(c)
	prog.Skills = []string{"fireball"}
	b := newTestBattle(t, c, prog, "slime", random.Fixed(0.5))

	res, err := b.ApplyAction(Cast("fire"))
	require.NoError(t, err)
	assert.True(t, res.Victory())
	assert.Equal(t, 1, b.Player().Mana().Current())
}

func TestSeededBattlesAreReproducible(t *testing.T) {
	c := data.TestContent()

	play := func() View {
		b := newTestBattle(t, c, Fresh(c), "goblin", random.New(42))
		_, err := Run(b, Tactical, 200)
		require.NoError(t, err)
		return b.Snapshot()
	}

	a, b := play(), play()
	a.ID, b.ID = uuid.Nil, uuid.Nil
	assert.Equal(t, a, b)
}

func TestConcurrentBattlesAreIndependent(t *testing.T) {
	c := data.TestContent()

	var g errgroup.Group
	results := make([]State, 16)
	for i := range results {
		g.Go(func() error {
			player, err := NewPlayer(c, int64(i), "Hero", Fresh(c))
			if err != nil {
				return err
			}
			def, _ := c.Enemy("slime")
			b, err := New(c, player, def, random.New(uint64(i)))
			if err != nil {
				return err
			}
			res, err := Run(b, AttackOnly, 100)
			results[i] = res.State
			return err
		})
	}
	require.NoError(t, g.Wait())
	for _, s := range results {
		assert.Equal(t, StateVictory, s)
	}
}
