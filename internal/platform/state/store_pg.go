package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists slots in Postgres, one row per slot key. Save is a full
// upsert of the serialized document, keeping the same whole-document write
// discipline as the file backend.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// NewPool opens a pgx connection pool against the given URL and verifies it
// with a ping.
func NewPool(ctx context.Context, databaseURL string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the slot table. Run via "clinic-server migrate up"
// before serving with the postgres driver.
func (p *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS clinic_slots (
			key        text PRIMARY KEY,
			doc        jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create clinic_slots: %w", err)
	}
	return nil
}

// SlotStatus describes one stored slot, for the migrate status command.
type SlotStatus struct {
	Key       string
	Bytes     int
	UpdatedAt time.Time
}

// Status lists the stored slots and when they were last written.
func (p *PGStore) Status(ctx context.Context) ([]SlotStatus, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT key, length(doc::text), updated_at
		FROM clinic_slots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("query slot status: %w", err)
	}
	defer rows.Close()

	var out []SlotStatus
	for rows.Next() {
		var s SlotStatus
		if err := rows.Scan(&s.Key, &s.Bytes, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slot status: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *PGStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM clinic_slots WHERE key = $1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, true, nil
}

func (p *PGStore) Write(ctx context.Context, key string, data []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO clinic_slots (key, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`,
		key, data)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}
