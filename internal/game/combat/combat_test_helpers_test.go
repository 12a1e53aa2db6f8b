package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/model"
)

// newTestPlayer creates a level 1 player from the test content base with
// weaponID equipped.
func newTestPlayer(t *testing.T, c *data.Content, weaponID string) *model.Player {
	t.Helper()
	p, err := model.NewPlayer(model.PlayerStats{
		EntityStats: model.EntityStats{
			Name:       "Hero",
			MaxLife:    c.Player.MaxLife(1),
			Defense:    c.Player.Defense,
			CritChance: c.Player.CritChance,
		},
		UserID:  1,
		MaxMana: c.Player.MaxMana(1),
		Level:   1,
	})
	require.NoError(t, err)

	w, ok := c.Weapon(weaponID)
	require.True(t, ok, "weapon %s", weaponID)
	p.Equip(w.ID, w.DamageType, w.CritChance)
	return p
}

func spawn(t *testing.T, c *data.Content, id string) (*model.Enemy, data.EnemyDef) {
	t.Helper()
	def, ok := c.Enemy(id)
	require.True(t, ok, "enemy %s", id)
	return def.Spawn(), def
}

func weapon(t *testing.T, c *data.Content, id string) data.WeaponDef {
	t.Helper()
	w, ok := c.Weapon(id)
	require.True(t, ok, "weapon %s", id)
	return w
}
