package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PersistenceService сохраняет итог боя атомарно: прогресс игрока и отчёт.
type PersistenceService struct {
	pool    *pgxpool.Pool
	players *PlayerRepository
	reports *BattleReportRepository
}

// NewPersistenceService создаёт новый сервис.
func NewPersistenceService(pool *pgxpool.Pool) *PersistenceService {
	return &PersistenceService{
		pool:    pool,
		players: NewPlayerRepository(pool),
		reports: NewBattleReportRepository(pool),
	}
}

// Players returns the player repository.
func (s *PersistenceService) Players() *PlayerRepository { return s.players }

// Reports returns the battle report repository.
func (s *PersistenceService) Reports() *BattleReportRepository { return s.reports }

// SaveBattle stores the player's progress and the battle report in a single transaction.
// Either both are saved or none.
func (s *PersistenceService) SaveBattle(ctx context.Context, rec PlayerRecord, rep BattleReport) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for player %d: %w", rec.UserID, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "userID", rec.UserID, "error", err)
		}
	}()

	if err := s.players.SaveTx(ctx, tx, rec); err != nil {
		return err
	}
	if err := s.reports.InsertTx(ctx, tx, rep); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction for player %d: %w", rec.UserID, err)
	}

	slog.Debug("battle saved",
		"userID", rec.UserID,
		"battleID", rep.BattleID,
		"outcome", rep.Outcome)
	return nil
}
