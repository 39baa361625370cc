package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// OrderRepository mirrors the ingestion buffer into Postgres so the
// dataset survives beyond one host's data directory. Replacement keeps the
// buffer's wholesale-swap semantics: a platform's rows are deleted and
// reinserted in one transaction.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Connect builds a pgx pool from the database configuration.
func Connect(ctx context.Context, cfg models.DatabaseConfig) (*pgxpool.Pool, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the order_records table and its indexes when
// missing.
func (r *OrderRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS order_records (
            id BIGSERIAL PRIMARY KEY,
            platform TEXT NOT NULL,
            order_date TIMESTAMPTZ NOT NULL,
            order_id TEXT,
            location TEXT,
            revenue DOUBLE PRECISION NOT NULL,
            orders INTEGER NOT NULL,
            aov DOUBLE PRECISION,
            rating DOUBLE PRECISION,
            raw_data JSONB
        )`)
	if err != nil {
		return fmt.Errorf("failed to create order_records table: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`CREATE INDEX IF NOT EXISTS idx_order_records_platform ON order_records (platform)`)
	if err != nil {
		return fmt.Errorf("failed to create platform index: %w", err)
	}
	return nil
}

// ReplacePlatform swaps the platform's stored rows for the given records.
func (r *OrderRepository) ReplacePlatform(ctx context.Context, platform models.Platform, records []models.OrderRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM order_records WHERE platform = $1`, string(platform)); err != nil {
		return fmt.Errorf("failed to clear %s records: %w", platform, err)
	}

	query := `
        INSERT INTO order_records (
            platform, order_date, order_id, location, revenue, orders, aov, rating, raw_data
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	for _, rec := range records {
		raw, err := json.Marshal(rec.Raw)
		if err != nil {
			return fmt.Errorf("failed to encode raw row: %w", err)
		}
		_, err = tx.Exec(ctx, query,
			string(rec.Platform),
			rec.Date,
			rec.OrderID,
			rec.Location,
			rec.Revenue,
			rec.Orders,
			rec.AOV,
			rec.Rating,
			raw,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s record: %w", platform, err)
		}
	}
	return tx.Commit(ctx)
}

// GetAll loads every stored record grouped by platform, in insertion order.
func (r *OrderRepository) GetAll(ctx context.Context) (map[models.Platform][]models.OrderRecord, error) {
	query := `
        SELECT platform, order_date, order_id, location, revenue, orders, aov, rating, raw_data
        FROM order_records
        ORDER BY id
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make(map[models.Platform][]models.OrderRecord)
	for rows.Next() {
		var rec models.OrderRecord
		var platform string
		var raw []byte
		if err := rows.Scan(
			&platform,
			&rec.Date,
			&rec.OrderID,
			&rec.Location,
			&rec.Revenue,
			&rec.Orders,
			&rec.AOV,
			&rec.Rating,
			&raw,
		); err != nil {
			return nil, err
		}
		parsed, err := models.ParsePlatform(platform)
		if err != nil {
			// Rows written outside this service may carry platforms we do
			// not serve; skip them rather than poison the buckets.
			continue
		}
		rec.Platform = parsed
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &rec.Raw); err != nil {
				return nil, fmt.Errorf("failed to decode raw row: %w", err)
			}
		}
		buckets[rec.Platform] = append(buckets[rec.Platform], rec)
	}
	return buckets, rows.Err()
}

// Count returns the number of stored records across all platforms.
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM order_records`).Scan(&count)
	return count, err
}

// DeleteAll removes every stored record.
func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM order_records`)
	return err
}
