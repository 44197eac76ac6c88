package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the durable cache tier. Each cache family gets its own
// table (api_cache, streaming_cache) with the same three-column layout:
// request_key TEXT PRIMARY KEY, response_data BYTEA, cached_at BIGINT
// (epoch milliseconds).
type PostgresStore struct {
	db     *pgxpool.Pool
	table  string
	logger *slog.Logger
}

func NewPostgresStore(db *pgxpool.Pool, table string, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		table:  table,
		logger: logger,
	}
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool) {
	query := fmt.Sprintf(`SELECT response_data, cached_at FROM %s WHERE request_key = $1`, p.table)

	var (
		payload  []byte
		cachedAt int64
	)

	err := p.db.QueryRow(ctx, query, key).Scan(&payload, &cachedAt)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			p.logger.Error("cache read failed, treating as miss", "table", p.table, "key", key, "error", err)
		}
		return nil, time.Time{}, false
	}

	return payload, time.UnixMilli(cachedAt), true
}

func (p *PostgresStore) Put(ctx context.Context, key string, payload []byte, now time.Time) {
	query := fmt.Sprintf(`INSERT INTO %s (request_key, response_data, cached_at) VALUES ($1, $2, $3)
		ON CONFLICT (request_key) DO UPDATE SET response_data = $2, cached_at = $3`, p.table)

	_, err := p.db.Exec(ctx, query, key, payload, now.UnixMilli())
	if err != nil {
		p.logger.Error("cache write failed", "table", p.table, "key", key, "error", err)
	}
}
