// Package store caches fetched candles in SQLite so repeated renders of the
// same symbol/timeframe don't hit the venue again.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"candlechart/market"
	"candlechart/provider"
)

// Cache wraps a Provider with a SQLite-backed candle store. It satisfies
// provider.Provider itself, so callers swap it in transparently.
type Cache struct {
	db  *sql.DB
	src provider.Provider
	now func() time.Time
}

// NewCache opens (or creates) the cache database at path.
func NewCache(path string, src provider.Provider) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &Cache{db: db, src: src, now: time.Now}, nil
}

// defaultFetchLimit mirrors the venue client's coercion of non-positive
// limits, so the cache asks for the same amount the wrapped provider would.
const defaultFetchLimit = 1000

// Fetch serves from the cache when it holds enough reasonably fresh candles,
// otherwise fetches from the upstream provider and stores the result.
// Freshness means the newest cached candle is younger than one timeframe.
func (c *Cache) Fetch(ctx context.Context, symbol string, tf market.Timeframe, limit int) (market.Series, error) {
	if limit <= 0 {
		limit = defaultFetchLimit
	}

	cached, err := c.load(ctx, symbol, tf, limit)
	if err != nil {
		return nil, err
	}
	if len(cached) >= limit && c.fresh(cached, tf) {
		return cached, nil
	}

	series, err := c.src.Fetch(ctx, symbol, tf, limit)
	if err != nil {
		return nil, err
	}
	if err := c.save(ctx, symbol, tf, series); err != nil {
		return nil, err
	}
	return series, nil
}

func (c *Cache) fresh(s market.Series, tf market.Timeframe) bool {
	if len(s) == 0 {
		return false
	}
	newest := time.Unix(s[len(s)-1].Time, 0)
	return c.now().Sub(newest) < tf.Duration()
}

// load returns the newest `limit` cached candles in chronological order.
func (c *Cache) load(ctx context.Context, symbol string, tf market.Timeframe, limit int) (market.Series, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT time, open, high, low, close, volume
		FROM candles
		WHERE symbol = ? AND timeframe = ?
		ORDER BY time DESC
		LIMIT ?`,
		symbol, string(tf), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query cache: %w", err)
	}
	defer rows.Close()

	var reversed market.Series
	for rows.Next() {
		var cd market.Candle
		if err := rows.Scan(&cd.Time, &cd.Open, &cd.High, &cd.Low, &cd.Close, &cd.Volume); err != nil {
			return nil, fmt.Errorf("scan cached candle: %w", err)
		}
		reversed = append(reversed, cd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make(market.Series, len(reversed))
	for i, cd := range reversed {
		out[len(reversed)-1-i] = cd
	}
	return out, nil
}

func (c *Cache) save(ctx context.Context, symbol string, tf market.Timeframe, s market.Series) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO candles
		(symbol, timeframe, time, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare cache insert: %w", err)
	}
	defer stmt.Close()

	for _, cd := range s {
		if _, err := stmt.Exec(symbol, string(tf), cd.Time, cd.Open, cd.High, cd.Low, cd.Close, cd.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert cached candle: %w", err)
		}
	}

	return tx.Commit()
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
