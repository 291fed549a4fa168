package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/status-im/fiatprices/config"
	"github.com/status-im/fiatprices/interfaces"
)

// PostgresStore implements interfaces.PriceStore on a pgx connection
// pool. One table per market, one column per currency, keyed by day.
// The pool is shared with the API server; every mutation is a single
// insert-if-absent statement, so no transactions are needed.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect creates the connection pool and verifies it with a ping
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(BuildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// TableName returns the per-market table name. Market and currency
// names end up in SQL identifiers and cannot be bound as parameters,
// so they are sanitized first.
func TableName(market string) string {
	return "price_" + sanitizeIdentifier(market)
}

// sanitizeIdentifier maps an external name (market id, currency code)
// to a safe SQL identifier: lowercase, dashes to underscores, anything
// else outside [a-z0-9_] dropped.
func sanitizeIdentifier(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == '-':
			b.WriteRune('_')
		}
	}
	return b.String()
}

func currencyColumns(currencies []string) []string {
	cols := make([]string, 0, len(currencies))
	for _, currency := range currencies {
		cols = append(cols, sanitizeIdentifier(currency))
	}
	return cols
}

// CreateTableIfAbsent ensures the per-market table exists. Idempotent,
// runs on every process start before any backfill begins.
func (s *PostgresStore) CreateTableIfAbsent(ctx context.Context, market string, currencies []string) error {
	cols := currencyColumns(currencies)
	fields := make([]string, 0, len(cols))
	for _, col := range cols {
		fields = append(fields, fmt.Sprintf("%s double precision not null", col))
	}

	sql := fmt.Sprintf(
		"create table if not exists %s (day date not null, %s, primary key (day))",
		TableName(market),
		strings.Join(fields, ", "),
	)

	if _, err := s.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create table for %s: %w", market, err)
	}

	log.Printf("Storage: table %s ready", TableName(market))
	return nil
}

// HasRecord reports whether a record exists for the given day
func (s *PostgresStore) HasRecord(ctx context.Context, market string, day time.Time) (bool, error) {
	sql := fmt.Sprintf("select exists(select 1 from %s where day = $1)", TableName(market))

	var exists bool
	if err := s.pool.QueryRow(ctx, sql, truncateToDay(day)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check record for %s: %w", market, err)
	}
	return exists, nil
}

// InsertIfAbsent stores a record unless the day already has one.
// ON CONFLICT DO NOTHING keeps concurrent engine runs from corrupting
// data; the loser of the race just wasted a fetch.
func (s *PostgresStore) InsertIfAbsent(ctx context.Context, market string, day time.Time, prices interfaces.Prices) error {
	currencies := sortedCurrencies(prices)
	cols := currencyColumns(currencies)

	placeholders := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	placeholders = append(placeholders, "$1")
	args = append(args, truncateToDay(day))
	for i, currency := range currencies {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, prices[currency])
	}

	sql := fmt.Sprintf(
		"insert into %s (day, %s) values (%s) on conflict (day) do nothing",
		TableName(market),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert record for %s: %w", market, err)
	}
	return nil
}

// GetRecord returns the prices stored for the given day. A missing day
// is not an error at the read boundary: callers get an empty map.
func (s *PostgresStore) GetRecord(ctx context.Context, market string, day time.Time, currencies []string) (interfaces.Prices, error) {
	cols := currencyColumns(currencies)
	sql := fmt.Sprintf("select %s from %s where day = $1",
		strings.Join(cols, ", "), TableName(market))

	values := make([]float64, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	err := s.pool.QueryRow(ctx, sql, truncateToDay(day)).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return interfaces.Prices{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record for %s: %w", market, err)
	}

	prices := make(interfaces.Prices, len(currencies))
	for i, currency := range currencies {
		prices[currency] = values[i]
	}
	return prices, nil
}

// GetRange returns all records with day in [from, to], keyed by the
// ISO day string
func (s *PostgresStore) GetRange(ctx context.Context, market string, from, to time.Time, currencies []string) (interfaces.DailyPrices, error) {
	cols := currencyColumns(currencies)
	sql := fmt.Sprintf("select day, %s from %s where day >= $1 and day <= $2 order by day",
		strings.Join(cols, ", "), TableName(market))

	rows, err := s.pool.Query(ctx, sql, truncateToDay(from), truncateToDay(to))
	if err != nil {
		return nil, fmt.Errorf("get range for %s: %w", market, err)
	}
	defer rows.Close()

	result := make(interfaces.DailyPrices)
	for rows.Next() {
		var day time.Time
		values := make([]float64, len(cols))
		dest := make([]any, 0, len(cols)+1)
		dest = append(dest, &day)
		for i := range values {
			dest = append(dest, &values[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan range row for %s: %w", market, err)
		}

		prices := make(interfaces.Prices, len(currencies))
		for i, currency := range currencies {
			prices[currency] = values[i]
		}
		result[day.UTC().Format("2006-01-02")] = prices
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate range for %s: %w", market, err)
	}
	return result, nil
}
