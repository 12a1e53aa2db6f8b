package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/rpgbattle/internal/config"
	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/db"
	"github.com/udisondev/rpgbattle/internal/game/battle"
	"github.com/udisondev/rpgbattle/internal/game/combat"
	"github.com/udisondev/rpgbattle/internal/game/skill"
	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/save"
)

const DefaultConfigPath = "config/battlesim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("battlesim", flag.ContinueOnError)
	cfgPath := fs.String("config", DefaultConfigPath, "path to config file")
	play := fs.Bool("play", false, "play interactively on stdin")
	name := fs.String("name", "Hero", "player name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadBattleSim(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("battlesim starting", "log_level", cfg.LogLevel, "play", *play)

	content, err := data.LoadContent(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	if err := combat.ValidateContent(content); err != nil {
		return fmt.Errorf("validating combat content: %w", err)
	}
	if err := skill.ValidateContent(content); err != nil {
		return fmt.Errorf("validating skill content: %w", err)
	}
	slog.Info("content loaded",
		"weapons", len(content.Weapons()),
		"skills", len(content.Skills()),
		"enemies", len(content.Enemies()))

	var store *db.PersistenceService
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
		store = database.Persistence()
	}

	userID := cfg.Simulation.PlayerID
	player, err := loadPlayer(ctx, store, content, userID, *name)
	if err != nil {
		return err
	}

	battles := battle.NewManager()
	if *play {
		return playLoop(ctx, os.Stdin, os.Stdout, content, store, battles, player, cfg.Simulation.Seed)
	}
	return simulate(ctx, os.Stdout, content, store, battles, cfg.Simulation, *name, save.FromPlayer(player))
}

// loadPlayer reads the stored player through the save codec. A missing
// player is created and a corrupt save is replaced by a fresh one, so
// battle reports always have an owner row.
func loadPlayer(ctx context.Context, store *db.PersistenceService, c *data.Content, userID int64, name string) (*model.Player, error) {
	if store == nil {
		return battle.NewPlayer(c, userID, name, battle.Fresh(c))
	}
	rec, err := store.Players().Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading player: %w", err)
	}
	var blob []byte
	if rec != nil {
		blob = rec.Blob
	}
	player, recovered, err := battle.LoadPlayer(c, userID, name, blob)
	if err != nil {
		return nil, fmt.Errorf("building player %d: %w", userID, err)
	}

	switch {
	case recovered:
		slog.Warn("player save unreadable, starting fresh", "userID", userID, "storedLevel", rec.Level)
	case rec != nil:
		slog.Info("player loaded", "userID", userID, "level", player.Level())
		return player, nil
	default:
		slog.Info("player created", "userID", userID)
	}

	fresh, err := db.NewPlayerRecord(player)
	if err != nil {
		return nil, err
	}
	if err := store.Players().Save(ctx, fresh); err != nil {
		return nil, fmt.Errorf("storing player %d: %w", userID, err)
	}
	return player, nil
}

// newReport summarises a finished or abandoned battle.
func newReport(b *battle.Battle, res battle.Result, outcome string) db.BattleReport {
	rep := db.BattleReport{
		BattleID:    b.ID(),
		UserID:      b.Player().UserID(),
		EnemyID:     b.EnemyDef().ID,
		Outcome:     outcome,
		Rounds:      b.Round(),
		LevelBefore: b.Player().Level(),
		LevelAfter:  b.Player().Level(),
	}
	if res.Award != nil {
		rep.ExpGained = res.Award.Exp
		rep.LevelBefore = res.Award.FromLevel
	}
	return rep
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
