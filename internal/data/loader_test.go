package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalContent = `
player:
  base_life: 10
  base_mana: 2
  starting_weapon: fists
progression:
  base: 3
  growth: 1.5
  max_level: 10
weapons:
  - id: fists
    name: Fists
    damage: 1
    damage_type: blunt
    level: 1
skills:
  - id: shout
    name: Shout
    shortcut: s
    mana_cost: 1
    category: utility
    unlock_level: 1
    effect: buff_self
    params:
      buff: blocking
enemies:
  - id: bat
    name: Bat
    level: 1
    exp_yield: 1
    damage: 1
    max_life: 4
    damage_type: pierce
    resistances:
      magic: -0.5
`

func TestLoadContentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalContent), 0o600))

	c, err := LoadContent(path)
	require.NoError(t, err)

	_, ok := c.Weapon("fists")
	assert.True(t, ok)
	s, ok := c.Skill("s")
	require.True(t, ok)
	assert.Equal(t, "blocking", s.Params["buff"])
	assert.Equal(t, 3, c.Progression.Threshold(1))
}

func TestLoadContentEmbedded(t *testing.T) {
	c, err := LoadContent("")
	require.NoError(t, err)
	assert.NotEmpty(t, c.Skills())
}

func TestLoadContentMissingFile(t *testing.T) {
	_, err := LoadContent(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseContentRejects(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
		wantErr string
	}{
		{"unknown field", [2]string{"damage: 1\n    damage_type", "damage: 1\n    sharpness: 9\n    damage_type"}, "sharpness"},
		{"unknown damage type", [2]string{"damage_type: pierce", "damage_type: sonic"}, "unknown damage type"},
		{"resistance out of range", [2]string{"magic: -0.5", "magic: -1.5"}, "outside [-1, 1]"},
		{"unknown resistance key", [2]string{"magic: -0.5", "acid: 0.1"}, "unknown damage type"},
		{"uppercase id", [2]string{"id: bat", "id: Bat"}, "lowercase"},
		{"missing starting weapon", [2]string{"starting_weapon: fists", "starting_weapon: club"}, "unknown starting_weapon"},
		{"flat curve", [2]string{"growth: 1.5", "growth: 1"}, "does not exceed"},
		{"skill without effect", [2]string{"effect: buff_self", "effect: \"\""}, "missing effect"},
		{"bad category", [2]string{"category: utility", "category: magic"}, "unknown skill category"},
		{"crit above one", [2]string{"damage: 1\n    damage_type: blunt", "damage: 1\n    crit_chance: 1.5\n    damage_type: blunt"}, "crit_chance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := replaceOnce(t, minimalContent, tt.replace[0], tt.replace[1])
			_, err := ParseContent([]byte(raw))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewContentDuplicateShortcut(t *testing.T) {
	_, err := NewContent(
		PlayerBase{BaseLife: 1},
		Progression{Base: 1, Growth: 2, MaxLevel: 3},
		nil,
		[]SkillDef{
			{ID: "a", Shortcut: "x", UnlockLevel: 1, Effect: "buff_self"},
			{ID: "b", Shortcut: "X", UnlockLevel: 1, Effect: "buff_self"},
		},
		nil,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already used")
}

func replaceOnce(t *testing.T, s, old, new string) string {
	t.Helper()
	require.True(t, strings.Contains(s, old), "fixture does not contain %q", old)
	return strings.Replace(s, old, new, 1)
}
