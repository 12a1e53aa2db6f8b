package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/save"
)

func TestNewPlayerFromProgress(t *testing.T) {
	c := data.TestContent()

	tests := []struct {
		name       string
		prog       save.Progress
		wantLife   int
		wantMana   int
		wantLevel  int
		wantWeapon string
		wantSkills []string
	}{
		{
			name:       "fresh",
			prog:       Fresh(c),
			wantLife:   20,
			wantMana:   5,
			wantLevel:  1,
			wantWeapon: "training_sword",
			wantSkills: []string{},
		},
		{
			name:       "stored pools clamp to level maxima",
			prog:       save.Progress{Life: 99, Mana: 99, Level: 2, WeaponID: "lucky_dagger", Skills: []string{"expose_weakness"}},
			wantLife:   25,
			wantMana:   6,
			wantLevel:  2,
			wantWeapon: "lucky_dagger",
			wantSkills: []string{"expose_weakness"},
		},
		{
			name:       "defeated player respawns full",
			prog:       save.Progress{Life: 0, Mana: 1, Level: 1, WeaponID: "training_sword"},
			wantLife:   20,
			wantMana:   5,
			wantLevel:  1,
			wantWeapon: "training_sword",
			wantSkills: []string{},
		},
		{
			name:       "locked weapon and skill are dropped",
			prog:       save.Progress{Life: 10, Mana: 2, Level: 1, WeaponID: "titan_hammer", Skills: []string{"ready_block", "mend", "gone"}},
			wantLife:   10,
			wantMana:   2,
			wantLevel:  1,
			wantWeapon: "training_sword",
			wantSkills: []string{"mend"},
		},
		{
			name:       "level above cap",
			prog:       save.Progress{Life: 1, Level: 70, WeaponID: "training_sword"},
			wantLife:   1,
			wantMana:   0,
			wantLevel:  50,
			wantWeapon: "training_sword",
			wantSkills: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlayer(c, 7, "Hero", tt.prog)
			require.NoError(t, err)
			assert.Equal(t, int64(7), p.UserID())
			assert.Equal(t, tt.wantLife, p.Life().Current())
			assert.Equal(t, tt.wantMana, p.Mana().Current())
			assert.Equal(t, tt.wantLevel, p.Level())
			assert.Equal(t, tt.wantWeapon, p.WeaponID())
			assert.Equal(t, tt.wantSkills, p.KnownSkills())
		})
	}
}

func TestNewPlayerEquipsWeaponStats(t *testing.T) {
	c := data.TestContent()
	prog := Fresh(c)
	prog.WeaponID = "lucky_dagger"

	p, err := NewPlayer(c, 1, "Hero", prog)
	require.NoError(t, err)
	assert.Equal(t, model.DamagePierce, p.DamageType())
	assert.InDelta(t, 0.2, p.CritChance(), 1e-9)
}

func TestNewPlayerRejectsInvalid(t *testing.T) {
	_, err := NewPlayer(data.TestContent(), 1, "Hero", save.Progress{Level: 0})
	assert.Error(t, err)
}

func TestLoadPlayer(t *testing.T) {
	c := data.TestContent()

	p, recovered, err := LoadPlayer(c, 1, "Hero", nil)
	require.NoError(t, err)
	assert.False(t, recovered)
	assert.Equal(t, 1, p.Level())

	p.SetLife(11)
	p.Learn("mend")
	blob, err := save.Serialize(p)
	require.NoError(t, err)

	again, recovered, err := LoadPlayer(c, 1, "Hero", blob)
	require.NoError(t, err)
	assert.False(t, recovered)
	assert.Equal(t, 11, again.Life().Current())
	assert.True(t, again.Knows("mend"))

	broken := append([]byte(nil), blob...)
	broken[len(broken)/2] ^= 0xff
	fresh, recovered, err := LoadPlayer(c, 1, "Hero", broken)
	require.NoError(t, err)
	assert.True(t, recovered)
	assert.Equal(t, 20, fresh.Life().Current())
	assert.False(t, fresh.Knows("mend"))
}
