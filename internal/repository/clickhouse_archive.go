package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"CandleCache/internal/domain/models"
	"CandleCache/internal/domain/repository"
	"CandleCache/pkg/util"
)

// ClickHouseArchive appends every freshly fetched series to a ClickHouse
// table for analytical retention. It is write-only from the service's point
// of view; the request path never depends on it.
type ClickHouseArchive struct {
	db    *sql.DB
	table string
}

// NewClickHouseArchive creates an archive over an existing connection pool.
func NewClickHouseArchive(db *sql.DB, table string) repository.Archive {
	return &ClickHouseArchive{db: db, table: table}
}

// ArchiveSchema returns the idempotent schema statements for the archive.
func ArchiveSchema(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (symbol String, fetched_day Date, bar_day Date, open Float64, high Float64, low Float64, close Float64) ENGINE=ReplacingMergeTree ORDER BY (symbol, fetched_day, bar_day)", table),
	}
}

func (a *ClickHouseArchive) AppendSeries(ctx context.Context, symbol, day string, series []models.Candle) error {
	if len(series) == 0 {
		return nil
	}
	sym := SanitizeSymbol(symbol)

	fetched, ok := util.ParseDay(day)
	if !ok {
		return fmt.Errorf("archive: bad day %q", day)
	}

	// Multi-row VALUES insert to keep round-trips down.
	values := make([]string, 0, len(series))
	args := make([]interface{}, 0, len(series)*7)
	for _, c := range series {
		barDay, ok := util.ParseDay(c.Time)
		if !ok {
			continue
		}
		values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, sym, fetched, barDay, c.Open, c.High, c.Low, c.Close)
	}
	if len(values) == 0 {
		return nil
	}

	q := fmt.Sprintf("INSERT INTO %s (symbol, fetched_day, bar_day, open, high, low, close) VALUES %s",
		a.table, strings.Join(values, ","))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := a.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("archive insert: %w", err)
	}
	return nil
}

func (a *ClickHouseArchive) Close() error {
	return nil // pool is managed by pkg/clickhouse
}
