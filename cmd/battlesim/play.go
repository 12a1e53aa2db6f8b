package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/udisondev/rpgbattle/internal/command"
	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/db"
	"github.com/udisondev/rpgbattle/internal/game/battle"
	"github.com/udisondev/rpgbattle/internal/game/combat"
	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/random"
)

// playLoop reads commands from in until EOF, "quit" or cancellation.
func playLoop(ctx context.Context, in io.Reader, out io.Writer, c *data.Content, store *db.PersistenceService,
	battles *battle.Manager, player *model.Player, seed uint64) error {
	table := command.Default()
	sess := command.NewSession(c, player, random.New(seed), battles)
	defer battles.End(player.UserID())
	sess.OnFinish = func(b *battle.Battle, res battle.Result) {
		if store == nil {
			return
		}
		rec, err := db.NewPlayerRecord(b.Player())
		if err == nil {
			err = store.SaveBattle(ctx, rec, newReport(b, res, string(res.State)))
		}
		if err != nil {
			slog.Error("saving battle", "battleID", b.ID(), "error", err)
		}
	}

	fmt.Fprintf(out, "Welcome, %s. Type help for commands.\n", player.Name())
	scanner := bufio.NewScanner(in)
	for ctx.Err() == nil {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		reply, err := table.Execute(sess, line)
		switch {
		case err == nil:
		case isRejection(err):
			reply = err.Error()
		default:
			reply = "error: " + err.Error()
		}
		if reply != "" {
			fmt.Fprintln(out, reply)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if store != nil {
		rec, err := db.NewPlayerRecord(player)
		if err != nil {
			return err
		}
		if err := store.Players().Save(context.WithoutCancel(ctx), rec); err != nil {
			return fmt.Errorf("saving player: %w", err)
		}
	}
	return nil
}

func isRejection(err error) bool {
	_, ok := combat.AsRejection(err)
	return ok
}
