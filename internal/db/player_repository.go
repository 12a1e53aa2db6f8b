package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/rpgbattle/internal/model"
	"github.com/udisondev/rpgbattle/internal/save"
)

// PlayerRecord is a stored player. Blob is the save codec output and is
// stored opaquely; Level is copied out of it for queries only.
type PlayerRecord struct {
	UserID int64
	Name   string
	Level  int
	Blob   []byte
}

// NewPlayerRecord serializes p for storage.
func NewPlayerRecord(p *model.Player) (PlayerRecord, error) {
	blob, err := save.Serialize(p)
	if err != nil {
		return PlayerRecord{}, fmt.Errorf("serializing player %d: %w", p.UserID(), err)
	}
	return PlayerRecord{UserID: p.UserID(), Name: p.Name(), Level: p.Level(), Blob: blob}, nil
}

// PlayerRepository управляет сохранениями игроков в БД.
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository создаёт новый PlayerRepository.
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Load загружает запись игрока по user ID. Blob не декодируется.
// Возвращает nil если игрок не найден (не ошибка).
func (r *PlayerRepository) Load(ctx context.Context, userID int64) (*PlayerRecord, error) {
	rec := PlayerRecord{UserID: userID}
	err := r.db.QueryRow(ctx,
		`SELECT name, level, progress FROM players WHERE user_id = $1`, userID,
	).Scan(&rec.Name, &rec.Level, &rec.Blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying player %d: %w", userID, err)
	}
	return &rec, nil
}

// Save создаёт или обновляет игрока.
func (r *PlayerRepository) Save(ctx context.Context, rec PlayerRecord) error {
	return savePlayer(ctx, r.db, rec)
}

// SaveTx сохраняет игрока внутри транзакции.
func (r *PlayerRepository) SaveTx(ctx context.Context, tx pgx.Tx, rec PlayerRecord) error {
	return savePlayer(ctx, tx, rec)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func savePlayer(ctx context.Context, q execer, rec PlayerRecord) error {
	if len(rec.Blob) == 0 {
		return fmt.Errorf("saving player %d: empty save blob", rec.UserID)
	}
	level := max(rec.Level, 1)
	_, err := q.Exec(ctx,
		`INSERT INTO players (user_id, name, level, progress)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET
		     name = EXCLUDED.name,
		     level = EXCLUDED.level,
		     progress = EXCLUDED.progress,
		     updated_at = now()`,
		rec.UserID, rec.Name, level, rec.Blob,
	)
	if err != nil {
		return fmt.Errorf("saving player %d: %w", rec.UserID, err)
	}
	return nil
}

// Delete удаляет игрока вместе с его отчётами.
func (r *PlayerRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM players WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("deleting player %d: %w", userID, err)
	}
	return nil
}
