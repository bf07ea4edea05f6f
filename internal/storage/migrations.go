package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects. Failing to reach it is fatal.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial verification schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS verifications (
					id TEXT PRIMARY KEY,
					document_type TEXT NOT NULL,
					source_path TEXT,
					provider TEXT,
					model TEXT,
					review_status TEXT NOT NULL,
					recommendation TEXT NOT NULL,
					reason TEXT,
					risk_score REAL NOT NULL DEFAULT 0,
					auto_processable INTEGER NOT NULL DEFAULT 0,
					is_valid INTEGER NOT NULL DEFAULT 0,
					document_json TEXT NOT NULL,
					validation_json TEXT NOT NULL,
					created_at DATETIME NOT NULL,
					reviewed_at DATETIME
				)`,
				`CREATE INDEX idx_verifications_created ON verifications(created_at)`,
				`CREATE INDEX idx_verifications_recommendation ON verifications(recommendation)`,
				`CREATE INDEX idx_verifications_status ON verifications(review_status)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add cross-check results for document pairs",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS cross_checks (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					cheque_id TEXT NOT NULL,
					mandate_id TEXT NOT NULL,
					passed INTEGER NOT NULL DEFAULT 0,
					overall_score REAL NOT NULL DEFAULT 0,
					comparison_json TEXT NOT NULL,
					created_at DATETIME NOT NULL,
					FOREIGN KEY (cheque_id) REFERENCES verifications(id),
					FOREIGN KEY (mandate_id) REFERENCES verifications(id)
				)`,
				`CREATE INDEX idx_cross_checks_cheque ON cross_checks(cheque_id)`,
				`CREATE INDEX idx_cross_checks_mandate ON cross_checks(mandate_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		slog.Info("Applying migration",
			"version", migration.Version,
			"description", migration.Description)

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, recErr := tx.Exec(
			`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
			migration.Version, migration.Description,
		); recErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, recErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}
	}

	final, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("schema version %d after migration, expected %d", final, ExpectedSchemaVersion)
	}
	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}
