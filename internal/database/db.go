package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jgoulah/heatscan/pkg/models"
	_ "modernc.org/sqlite"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analysis_results (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		heat_loss_factor REAL NOT NULL,
		balance_point REAL NOT NULL,
		temp_diff REAL NOT NULL,
		equipment_output REAL NOT NULL,
		heat_loss_total REAL NOT NULL,
		capacity_tons REAL NOT NULL,
		created_at TEXT NOT NULL,
		published INTEGER DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_results_created_at ON analysis_results(created_at);
	CREATE INDEX IF NOT EXISTS idx_results_label ON analysis_results(label);
	CREATE INDEX IF NOT EXISTS idx_results_published ON analysis_results(published);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// InsertResult stores an analysis result
func (db *DB) InsertResult(result *models.AnalysisResult) error {
	query := `
	INSERT INTO analysis_results (id, label, heat_loss_factor, balance_point, temp_diff, equipment_output, heat_loss_total, capacity_tons, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := result.CreatedAt.UTC().Format(time.RFC3339)
	_, err := db.conn.Exec(query, result.ID, result.Label, result.HeatLossFactor, result.BalancePoint,
		result.TempDiff, result.EquipmentOutput, result.HeatLossTotal, result.CapacityTons, createdAt)
	if err != nil {
		return fmt.Errorf("inserting analysis result: %w", err)
	}

	return nil
}

// ListResults retrieves all stored analysis results, newest first
func (db *DB) ListResults() ([]models.AnalysisResult, error) {
	return db.listResults(`
	SELECT id, label, heat_loss_factor, balance_point, temp_diff, equipment_output, heat_loss_total, capacity_tons, created_at
	FROM analysis_results
	ORDER BY created_at DESC
	`)
}

// ListUnpublishedResults retrieves results not yet published, newest first
func (db *DB) ListUnpublishedResults() ([]models.AnalysisResult, error) {
	return db.listResults(`
	SELECT id, label, heat_loss_factor, balance_point, temp_diff, equipment_output, heat_loss_total, capacity_tons, created_at
	FROM analysis_results
	WHERE published = 0
	ORDER BY created_at DESC
	`)
}

func (db *DB) listResults(query string) ([]models.AnalysisResult, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying analysis results: %w", err)
	}
	defer rows.Close()

	var results []models.AnalysisResult
	for rows.Next() {
		var result models.AnalysisResult
		var createdAt string

		if err := rows.Scan(&result.ID, &result.Label, &result.HeatLossFactor, &result.BalancePoint,
			&result.TempDiff, &result.EquipmentOutput, &result.HeatLossTotal, &result.CapacityTons, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		result.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		results = append(results, result)
	}

	return results, rows.Err()
}

// MarkPublished marks an analysis result as published
func (db *DB) MarkPublished(id string) error {
	query := `UPDATE analysis_results SET published = 1 WHERE id = ?`
	_, err := db.conn.Exec(query, id)
	if err != nil {
		return fmt.Errorf("marking result as published: %w", err)
	}
	return nil
}

// Prune deletes all but the most recent keep results
func (db *DB) Prune(keep int) error {
	query := `
	DELETE FROM analysis_results
	WHERE id NOT IN (
		SELECT id FROM analysis_results ORDER BY created_at DESC LIMIT ?
	)
	`
	_, err := db.conn.Exec(query, keep)
	if err != nil {
		return fmt.Errorf("pruning analysis results: %w", err)
	}
	return nil
}
