package battle

import (
	"fmt"
	"strings"

	"github.com/udisondev/rpgbattle/internal/game/combat"
)

// ActionKind identifies what the player does on their turn.
type ActionKind uint8

const (
	ActionAttack ActionKind = iota + 1
	ActionCast
)

// Action is a player's move.
type Action struct {
	Kind ActionKind
	// Skill is the skill ID or shortcut for ActionCast.
	Skill string
}

// Attack attacks with the equipped weapon.
func Attack() Action { return Action{Kind: ActionAttack} }

// Cast casts the skill with the given ID or shortcut.
func Cast(skill string) Action { return Action{Kind: ActionCast, Skill: skill} }

func (a Action) String() string {
	switch a.Kind {
	case ActionAttack:
		return "attack"
	case ActionCast:
		return "cast " + a.Skill
	default:
		return fmt.Sprintf("Action(%d)", a.Kind)
	}
}

// Result describes one resolved round.
type Result struct {
	Round  int
	State  State
	Player combat.Outcome
	// Enemy is nil when the fight ended before the enemy could act.
	Enemy *combat.Outcome
	// Ticks holds buff tick messages in the order they happened.
	Ticks []string
	// Award is set on Victory.
	Award *combat.Award
}

// Victory reports whether this round won the battle.
func (r Result) Victory() bool { return r.State == StateVictory }

// Defeat reports whether this round lost the battle.
func (r Result) Defeat() bool { return r.State == StateDefeat }

// Text composes the full round description.
func (r Result) Text() string {
	var sb strings.Builder
	write := func(s string) {
		if s == "" {
			return
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s)
	}

	write(r.Player.Text())
	if r.Enemy != nil {
		write(r.Enemy.Text())
	}
	for _, t := range r.Ticks {
		write(t)
	}

	switch r.State {
	case StateVictory:
		write("You win!")
		if r.Award != nil {
			write(fmt.Sprintf("+%d exp", r.Award.Exp))
			if r.Award.LevelsGained() > 0 {
				write(fmt.Sprintf("Level up! You are now level %d.", r.Award.ToLevel))
			}
			for _, s := range r.Award.Skills {
				write(fmt.Sprintf("New skill available: %s", s.Name))
			}
			for _, w := range r.Award.Weapons {
				write(fmt.Sprintf("New weapon available: %s", w.Name))
			}
		}
	case StateDefeat:
		write("You lost!")
	}
	return sb.String()
}
