package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/rpgbattle/internal/config"
	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/db"
	"github.com/udisondev/rpgbattle/internal/game/battle"
	"github.com/udisondev/rpgbattle/internal/random"
	"github.com/udisondev/rpgbattle/internal/save"
)

// outcomeStalled marks a battle abandoned at the round cap.
const outcomeStalled = "stalled"

type tally struct {
	mu        sync.Mutex
	victories int
	defeats   int
	stalled   int
	rounds    int
	exp       int
	byEnemy   map[string]int
}

func (t *tally) add(enemyID, outcome string, rounds, exp int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch outcome {
	case string(battle.StateVictory):
		t.victories++
		t.byEnemy[enemyID]++
	case string(battle.StateDefeat):
		t.defeats++
	default:
		t.stalled++
	}
	t.rounds += rounds
	t.exp += exp
}

// simulate runs independent seeded auto-battles of copies of the same
// player concurrently. Battle i uses seed+i, so runs are reproducible
// regardless of scheduling.
//
// Each running copy holds a lane, numbered from 1 to sim.Concurrency, and
// is registered in battles under the lane as its user id. Reports are
// still filed under sim.PlayerID.
func simulate(ctx context.Context, out io.Writer, c *data.Content, store *db.PersistenceService,
	battles *battle.Manager, sim config.Simulation, name string, base save.Progress) error {
	strategy, err := battle.StrategyByName(sim.Strategy)
	if err != nil {
		return err
	}

	var fixed *data.EnemyDef
	if sim.Enemy != "" {
		def, ok := c.Enemy(sim.Enemy)
		if !ok {
			return fmt.Errorf("unknown enemy %q", sim.Enemy)
		}
		fixed = &def
	}

	res := &tally{byEnemy: make(map[string]int)}
	start := time.Now()

	lanes := make(chan int64, sim.Concurrency)
	for lane := range sim.Concurrency {
		lanes <- int64(lane) + 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sim.Concurrency)
	for i := range sim.Battles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			lane := <-lanes
			defer func() { lanes <- lane }()

			player, err := battle.NewPlayer(c, lane, name, base)
			if err != nil {
				return err
			}
			def := battle.PickEnemy(c, player.Level(), i)
			if fixed != nil {
				def = *fixed
			}
			b, err := battle.New(c, player, def, random.New(sim.Seed+uint64(i)))
			if err != nil {
				return err
			}
			if err := battles.Start(b); err != nil {
				return fmt.Errorf("battle %d: %w", i, err)
			}
			defer battles.End(lane)

			last, err := battle.Run(b, strategy, sim.RoundCap)
			outcome := string(last.State)
			switch {
			case errors.Is(err, battle.ErrRoundCap):
				outcome = outcomeStalled
				slog.Warn("battle stalled", "battleID", b.ID(), "enemy", def.ID, "rounds", b.Round())
			case err != nil:
				return fmt.Errorf("battle %d: %w", i, err)
			}

			rep := newReport(b, last, outcome)
			rep.UserID = sim.PlayerID
			res.add(def.ID, outcome, rep.Rounds, rep.ExpGained)
			if store != nil {
				if err := store.Reports().Insert(gctx, rep); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("simulating battles: %w", err)
	}

	total := res.victories + res.defeats + res.stalled
	slog.Info("simulation finished",
		"battles", total,
		"victories", res.victories,
		"defeats", res.defeats,
		"stalled", res.stalled,
		"duration", time.Since(start))

	fmt.Fprintf(out, "battles %d: %d victories, %d defeats, %d stalled\n", total, res.victories, res.defeats, res.stalled)
	if total > 0 {
		fmt.Fprintf(out, "average rounds %.1f, total exp %d\n", float64(res.rounds)/float64(total), res.exp)
	}
	for _, e := range c.Enemies() {
		if n := res.byEnemy[e.ID]; n > 0 {
			fmt.Fprintf(out, "  %-14s %d wins\n", e.ID, n)
		}
	}
	return ctx.Err()
}
