package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BattleReport is the stored summary of one finished battle.
type BattleReport struct {
	BattleID    uuid.UUID
	UserID      int64
	EnemyID     string
	Outcome     string
	Rounds      int
	ExpGained   int
	LevelBefore int
	LevelAfter  int
	CreatedAt   time.Time
}

// BattleStats aggregates the reports of one player.
type BattleStats struct {
	Battles   int
	Victories int
	Defeats   int
	ExpGained int
}

// BattleReportRepository хранит итоги боёв.
type BattleReportRepository struct {
	db *pgxpool.Pool
}

// NewBattleReportRepository создаёт новый BattleReportRepository.
func NewBattleReportRepository(db *pgxpool.Pool) *BattleReportRepository {
	return &BattleReportRepository{db: db}
}

// Insert сохраняет отчёт о бое.
func (r *BattleReportRepository) Insert(ctx context.Context, rep BattleReport) error {
	return insertReport(ctx, r.db, rep)
}

// InsertTx сохраняет отчёт внутри транзакции.
func (r *BattleReportRepository) InsertTx(ctx context.Context, tx pgx.Tx, rep BattleReport) error {
	return insertReport(ctx, tx, rep)
}

func insertReport(ctx context.Context, q execer, rep BattleReport) error {
	_, err := q.Exec(ctx,
		`INSERT INTO battle_reports
		     (battle_id, user_id, enemy_id, outcome, rounds, exp_gained, level_before, level_after)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rep.BattleID, rep.UserID, rep.EnemyID, rep.Outcome,
		rep.Rounds, rep.ExpGained, rep.LevelBefore, rep.LevelAfter,
	)
	if err != nil {
		return fmt.Errorf("inserting battle report %s: %w", rep.BattleID, err)
	}
	return nil
}

// ListByUser возвращает последние отчёты игрока, новые первыми.
func (r *BattleReportRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]BattleReport, error) {
	rows, err := r.db.Query(ctx,
		`SELECT battle_id, user_id, enemy_id, outcome, rounds, exp_gained, level_before, level_after, created_at
		 FROM battle_reports WHERE user_id = $1
		 ORDER BY created_at DESC, battle_id
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying battle reports for %d: %w", userID, err)
	}
	defer rows.Close()

	var reports []BattleReport
	for rows.Next() {
		var rep BattleReport
		if err := rows.Scan(
			&rep.BattleID, &rep.UserID, &rep.EnemyID, &rep.Outcome,
			&rep.Rounds, &rep.ExpGained, &rep.LevelBefore, &rep.LevelAfter, &rep.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning battle report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battle reports: %w", err)
	}
	return reports, nil
}

// Stats считает агрегаты по всем боям игрока.
func (r *BattleReportRepository) Stats(ctx context.Context, userID int64) (BattleStats, error) {
	var s BattleStats
	err := r.db.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE outcome = 'victory'),
		        count(*) FILTER (WHERE outcome = 'defeat'),
		        coalesce(sum(exp_gained), 0)
		 FROM battle_reports WHERE user_id = $1`, userID,
	).Scan(&s.Battles, &s.Victories, &s.Defeats, &s.ExpGained)
	if err != nil {
		return BattleStats{}, fmt.Errorf("querying battle stats for %d: %w", userID, err)
	}
	return s, nil
}
