package repository

import (
	"context"
	"fmt"

	"property-price-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the repository interface for PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Ping verifies database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// ComparableSales returns the most recent sales in the given municipality,
// newest first, limited to the comparables window the valuation model uses.
func (r *Repository) ComparableSales(ctx context.Context, prefecture, municipality string) ([]models.SaleRecord, error) {
	sql := `
		SELECT
			id,
			prefecture,
			municipality,
			address_1,
			price,
			area,
			building_year,
			sold_at
		FROM sale_records
		WHERE prefecture = $1 AND municipality = $2 AND area > 0
		ORDER BY sold_at DESC
		LIMIT 50
	`

	rows, err := r.db.Query(ctx, sql, prefecture, municipality)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query comparable sales: %w", err)
	}
	defer rows.Close()

	var sales []models.SaleRecord
	for rows.Next() {
		var s models.SaleRecord
		err := rows.Scan(
			&s.ID,
			&s.Prefecture,
			&s.Municipality,
			&s.Address1,
			&s.Price,
			&s.Area,
			&s.BuildingYear,
			&s.SoldAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan sale record: %w", err)
		}
		sales = append(sales, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return sales, nil
}

// InsertSaleRecords bulk-inserts historical sale records.
func (r *Repository) InsertSaleRecords(ctx context.Context, records []models.SaleRecord) (int64, error) {
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`
			INSERT INTO sale_records (prefecture, municipality, address_1, price, area, building_year, sold_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rec.Prefecture, rec.Municipality, rec.Address1, rec.Price, rec.Area, rec.BuildingYear, rec.SoldAt,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range records {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("repository: failed to insert sale record: %w", err)
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}

// LogPrediction persists a served prediction for later inspection.
func (r *Repository) LogPrediction(ctx context.Context, p models.PredictionLog) error {
	sql := `
		INSERT INTO prediction_logs (id, address, area, building_year, predicted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, sql, p.ID, p.Address, p.Area, p.BuildingYear, p.Predicted, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository: failed to log prediction: %w", err)
	}

	return nil
}

// RecentPredictions returns the most recently served predictions, newest first.
func (r *Repository) RecentPredictions(ctx context.Context, limit int) ([]models.PredictionLog, error) {
	sql := `
		SELECT id, address, area, building_year, predicted, created_at
		FROM prediction_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query prediction logs: %w", err)
	}
	defer rows.Close()

	var logs []models.PredictionLog
	for rows.Next() {
		var p models.PredictionLog
		err := rows.Scan(&p.ID, &p.Address, &p.Area, &p.BuildingYear, &p.Predicted, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan prediction log: %w", err)
		}
		logs = append(logs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return logs, nil
}

// EnsureSchema creates the tables this repository depends on if they are absent.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	sql := `
		CREATE TABLE IF NOT EXISTS sale_records (
			id BIGSERIAL PRIMARY KEY,
			prefecture VARCHAR(255) NOT NULL,
			municipality VARCHAR(255) NOT NULL,
			address_1 VARCHAR(255) NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL,
			area DOUBLE PRECISION NOT NULL,
			building_year INT NOT NULL,
			sold_at TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS sale_records_municipality_idx
			ON sale_records (prefecture, municipality, sold_at DESC);

		CREATE TABLE IF NOT EXISTS prediction_logs (
			id UUID PRIMARY KEY,
			address VARCHAR(512) NOT NULL,
			area DOUBLE PRECISION NOT NULL,
			building_year INT NOT NULL,
			predicted DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS prediction_logs_created_at_idx
			ON prediction_logs (created_at DESC);
	`

	if _, err := r.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("repository: failed to ensure schema: %w", err)
	}

	return nil
}
