package command

import (
	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/game/battle"
	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/random"
)

// Session is the interactive state of one player.
// Not safe for concurrent use; the host runs one session per user.
type Session struct {
	Content *data.Content
	Player  *model.Player
	Rand    random.Source
	// Battles holds the player's active battle, keyed by user id.
	// Sessions sharing a Manager share the one-battle-per-user limit.
	Battles *battle.Manager
	// OnFinish, when set, is called once for every battle that ends.
	OnFinish func(b *battle.Battle, res battle.Result)
}

// NewSession creates a session for player. A nil battles gets a private manager.
func NewSession(c *data.Content, player *model.Player, src random.Source, battles *battle.Manager) *Session {
	if battles == nil {
		battles = battle.NewManager()
	}
	return &Session{Content: c, Player: player, Rand: src, Battles: battles}
}

// Battle returns the player's current or last battle, nil before the first fight.
func (s *Session) Battle() *battle.Battle {
	b, _ := s.Battles.Get(s.Player.UserID())
	return b
}

// InBattle reports whether a battle is running.
func (s *Session) InBattle() bool {
	b := s.Battle()
	return b != nil && !b.IsOver()
}
