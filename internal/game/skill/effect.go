package skill

import (
	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/random"
)

// Effect is the behavior attached to a skill. Apply runs once per cast,
// after mana has been paid, and returns the text describing what happened.
type Effect interface {
	Name() string
	Apply(ctx *Context) string
}

// Context is what an effect may reach during a cast.
type Context struct {
	Rand   random.Source
	Caster *model.Player
	// Target is the opponent in the current battle.
	Target *model.Enemy
}
