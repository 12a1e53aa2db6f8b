// Package battle drives a single player-versus-enemy fight.
// Manages the turn cycle: player action → tick → enemy action → tick,
// until one side is defeated.
package battle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/game/combat"
	"github.com/udisondev/rpgbattle/internal/game/skill"
	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/random"
)

// State is a turn controller state.
type State string

const (
	StatePlayerTurn State = "player_turn"
	StateEnemyTurn  State = "enemy_turn"
	StateVictory    State = "victory"
	StateDefeat     State = "defeat"
)

// IsTerminal reports whether s is Victory or Defeat.
func (s State) IsTerminal() bool {
	return s == StateVictory || s == StateDefeat
}

const (
	eventEndPlayerTurn  = "end_player_turn"
	eventEndEnemyTurn   = "end_enemy_turn"
	eventEnemyDefeated  = "enemy_defeated"
	eventPlayerDefeated = "player_defeated"
)

// Battle is one fight between a player and an enemy.
// It owns its entities and random source; nothing is shared between battles.
// Safe for concurrent use, although callers normally drive it one action at a time.
type Battle struct {
	mu sync.Mutex

	id       uuid.UUID
	content  *data.Content
	rand     random.Source
	player   *model.Player
	enemy    *model.Enemy
	enemyDef data.EnemyDef
	policy   combat.Hook
	machine  *fsm.FSM
	round    int
	award    *combat.Award
}

// New starts a battle against a fresh instance of enemy.
func New(c *data.Content, player *model.Player, enemy data.EnemyDef, src random.Source) (*Battle, error) {
	if player.IsDefeated() {
		return nil, fmt.Errorf("player %s cannot fight with no life", player.Name())
	}
	policy, err := combat.NewHook(enemy.Policy, enemy.Params)
	if err != nil {
		return nil, fmt.Errorf("enemy %s: %w", enemy.ID, err)
	}

	b := &Battle{
		id:       uuid.New(),
		content:  c,
		rand:     src,
		player:   player,
		enemy:    enemy.Spawn(),
		enemyDef: enemy,
		policy:   policy,
	}
	b.machine = newMachine(b.id)

	slog.Debug("battle started",
		"battleID", b.id,
		"player", player.Name(),
		"enemy", enemy.ID)
	return b, nil
}

func newMachine(id uuid.UUID) *fsm.FSM {
	return fsm.NewFSM(
		string(StatePlayerTurn),
		fsm.Events{
			{Name: eventEndPlayerTurn, Src: []string{string(StatePlayerTurn)}, Dst: string(StateEnemyTurn)},
			{Name: eventEndEnemyTurn, Src: []string{string(StateEnemyTurn)}, Dst: string(StatePlayerTurn)},
			{Name: eventEnemyDefeated, Src: []string{string(StatePlayerTurn), string(StateEnemyTurn)}, Dst: string(StateVictory)},
			{Name: eventPlayerDefeated, Src: []string{string(StatePlayerTurn), string(StateEnemyTurn)}, Dst: string(StateDefeat)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				slog.Debug("battle state", "battleID", id, "event", e.Event, "from", e.Src, "to", e.Dst)
			},
		},
	)
}

// ID returns the battle identifier.
func (b *Battle) ID() uuid.UUID { return b.id }

// Player returns the player entity.
func (b *Battle) Player() *model.Player { return b.player }

// Enemy returns the enemy entity.
func (b *Battle) Enemy() *model.Enemy { return b.enemy }

// EnemyDef returns the definition the enemy was spawned from.
func (b *Battle) EnemyDef() data.EnemyDef { return b.enemyDef }

// Content returns the content table the battle resolves against.
func (b *Battle) Content() *data.Content { return b.content }

// State returns the current turn controller state.
func (b *Battle) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State(b.machine.Current())
}

// IsOver returns true once Victory or Defeat is reached.
func (b *Battle) IsOver() bool { return b.State().IsTerminal() }

// Round returns the number of resolved player actions.
func (b *Battle) Round() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.round
}

// Award returns the progression award, nil unless the battle was won.
func (b *Battle) Award() *combat.Award {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.award
}

// View is a read-only picture of a battle for rendering.
type View struct {
	ID     uuid.UUID
	State  State
	Round  int
	Player model.Snapshot
	Enemy  model.Snapshot
}

// Snapshot returns a read-only view of both sides.
func (b *Battle) Snapshot() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return View{
		ID:     b.id,
		State:  State(b.machine.Current()),
		Round:  b.round,
		Player: b.player.Snapshot(),
		Enemy:  b.enemy.Snapshot(),
	}
}

// ApplyAction resolves the player's action and, unless the fight ends
// first, the enemy's reply. A rejected action changes nothing.
func (b *Battle) ApplyAction(a Action) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if State(b.machine.Current()).IsTerminal() {
		return Result{}, combat.Reject(combat.ReasonBattleOver, "battle already ended in %s", b.machine.Current())
	}

	out, err := b.resolvePlayer(a)
	if err != nil {
		return Result{}, err
	}

	b.round++
	res := Result{Round: b.round, Player: out}
	res.Ticks = append(res.Ticks, b.tickBoth()...)

	switch {
	case b.enemy.IsDefeated():
		return b.finish(res, eventEnemyDefeated)
	case b.player.IsDefeated():
		return b.finish(res, eventPlayerDefeated)
	}

	if err := b.fire(eventEndPlayerTurn); err != nil {
		return Result{}, err
	}

	enemyOut, err := combat.EnemyAttack(b.rand, b.enemy, b.policy, b.player)
	if err != nil {
		return Result{}, fmt.Errorf("battle %s: enemy turn: %w", b.id, err)
	}
	res.Enemy = &enemyOut
	res.Ticks = append(res.Ticks, b.tickBoth()...)

	switch {
	case b.player.IsDefeated():
		return b.finish(res, eventPlayerDefeated)
	case b.enemy.IsDefeated():
		return b.finish(res, eventEnemyDefeated)
	}

	if err := b.fire(eventEndEnemyTurn); err != nil {
		return Result{}, err
	}
	res.State = StatePlayerTurn
	return res, nil
}

func (b *Battle) resolvePlayer(a Action) (combat.Outcome, error) {
	switch a.Kind {
	case ActionAttack:
		w, ok := b.content.Weapon(b.player.WeaponID())
		if !ok {
			return combat.Outcome{}, combat.Reject(combat.ReasonUnknownWeapon, "no weapon %q", b.player.WeaponID())
		}
		return combat.WeaponAttack(b.rand, b.player, w, b.enemy)
	case ActionCast:
		def, ok := b.content.Skill(a.Skill)
		if !ok {
			return combat.Outcome{}, combat.Reject(combat.ReasonUnknownSkill, "no skill %q", a.Skill)
		}
		if err := combat.ValidateAttack(b.player.Entity, b.enemy.Entity); err != nil {
			return combat.Outcome{}, err
		}
		return skill.Cast(&skill.Context{Rand: b.rand, Caster: b.player, Target: b.enemy}, def)
	default:
		return combat.Outcome{}, combat.Reject(combat.ReasonUnknownAction, "action %d", a.Kind)
	}
}

// tickBoth ticks the player then the enemy, returning descriptions of
// damage-over-time and expired buffs.
func (b *Battle) tickBoth() []string {
	var lines []string
	for _, e := range []*model.Entity{b.player.Entity, b.enemy.Entity} {
		t := e.TickBuffs()
		if t.DotDamage > 0 {
			lines = append(lines, fmt.Sprintf("%s takes %d damage from burning.", e, t.DotDamage))
		}
		for _, k := range t.Expired {
			lines = append(lines, fmt.Sprintf("%s is no longer %s.", e, k.Def().Name))
		}
	}
	return lines
}

func (b *Battle) finish(res Result, event string) (Result, error) {
	if err := b.fire(event); err != nil {
		return Result{}, err
	}
	res.State = State(b.machine.Current())

	if res.State == StateVictory {
		award := combat.RewardExperience(b.content, b.player, b.enemy.ExpYield())
		b.award = &award
		res.Award = &award
	}

	slog.Info("battle finished",
		"battleID", b.id,
		"player", b.player.Name(),
		"enemy", b.enemyDef.ID,
		"state", res.State,
		"rounds", b.round)
	return res, nil
}

func (b *Battle) fire(event string) error {
	if err := b.machine.Event(context.Background(), event); err != nil {
		return fmt.Errorf("battle %s: %s: %w", b.id, event, err)
	}
	return nil
}
