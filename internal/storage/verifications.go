package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/docsentry/docsentry/internal/common"
	"github.com/docsentry/docsentry/internal/model"
)

// ListFilter narrows a verification listing. Zero values mean no filter;
// Limit zero means a default of 50.
type ListFilter struct {
	Kind           model.DocumentKind
	Recommendation model.Recommendation
	Status         model.ReviewStatus
	Limit          int
}

// SaveVerification persists one verification record.
func (s *SQLiteStorage) SaveVerification(ctx context.Context, record model.VerificationRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(record.ID, "record.ID"); err != nil {
		return err
	}

	docJSON, err := json.Marshal(record.Document)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	validationJSON, err := json.Marshal(record.Validation)
	if err != nil {
		return fmt.Errorf("failed to marshal validation: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO verifications (
			id, document_type, source_path, provider, model,
			review_status, recommendation, reason, risk_score,
			auto_processable, is_valid, document_json, validation_json,
			created_at, reviewed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		string(record.Kind),
		record.SourcePath,
		record.Provider,
		record.ModelName,
		string(record.Status),
		string(record.Decision.Recommendation),
		record.Decision.Reason,
		record.Decision.RiskScore,
		record.Decision.AutoProcessable,
		record.Validation.IsValid,
		string(docJSON),
		string(validationJSON),
		record.CreatedAt,
		record.ReviewedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: verification %s", common.ErrDuplicateEntry, record.ID)
		}
		return fmt.Errorf("failed to save verification: %w", err)
	}
	return nil
}

// GetVerification fetches one record by ID.
func (s *SQLiteStorage) GetVerification(ctx context.Context, id string) (*model.VerificationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, selectColumns+` FROM verifications WHERE id = ?`, id)
	record, err := scanVerification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: verification %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListVerifications returns records newest first, optionally filtered.
func (s *SQLiteStorage) ListVerifications(ctx context.Context, filter ListFilter) ([]model.VerificationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := selectColumns + ` FROM verifications`
	var clauses []string
	var args []any

	if filter.Kind != "" {
		clauses = append(clauses, "document_type = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.Recommendation != "" {
		clauses = append(clauses, "recommendation = ?")
		args = append(args, string(filter.Recommendation))
	}
	if filter.Status != "" {
		clauses = append(clauses, "review_status = ?")
		args = append(args, string(filter.Status))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list verifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.VerificationRecord
	for rows.Next() {
		record, scanErr := scanVerification(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// UpdateReviewStatus marks a record as reviewed by a human.
func (s *SQLiteStorage) UpdateReviewStatus(ctx context.Context, id string, status model.ReviewStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE verifications SET review_status = ?, reviewed_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update review status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: verification %s", common.ErrNotFound, id)
	}
	return nil
}

// SaveCrossCheck persists the comparison of a stored cheque/mandate pair.
func (s *SQLiteStorage) SaveCrossCheck(ctx context.Context, chequeID, mandateID string, cmp model.CrossDocumentComparison) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(chequeID, "chequeID"); err != nil {
		return err
	}
	if err := validateString(mandateID, "mandateID"); err != nil {
		return err
	}

	cmpJSON, err := json.Marshal(cmp)
	if err != nil {
		return fmt.Errorf("failed to marshal comparison: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cross_checks (cheque_id, mandate_id, passed, overall_score, comparison_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		chequeID, mandateID, cmp.Passed, cmp.OverallScore, string(cmpJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save cross-check: %w", err)
	}
	return nil
}

// CountByRecommendation summarizes stored records per recommendation.
func (s *SQLiteStorage) CountByRecommendation(ctx context.Context) (map[model.Recommendation]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT recommendation, COUNT(*) FROM verifications GROUP BY recommendation`)
	if err != nil {
		return nil, fmt.Errorf("failed to count verifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.Recommendation]int)
	for rows.Next() {
		var rec string
		var count int
		if scanErr := rows.Scan(&rec, &count); scanErr != nil {
			return nil, scanErr
		}
		counts[model.Recommendation(rec)] = count
	}
	return counts, rows.Err()
}

const selectColumns = `SELECT id, document_type, source_path, provider, model,
	review_status, recommendation, reason, risk_score, auto_processable,
	document_json, validation_json, created_at, reviewed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVerification(row rowScanner) (*model.VerificationRecord, error) {
	var record model.VerificationRecord
	var kind, status, recommendation string
	var sourcePath, provider, modelName, reason sql.NullString
	var docJSON, validationJSON string
	var reviewedAt sql.NullTime

	err := row.Scan(
		&record.ID, &kind, &sourcePath, &provider, &modelName,
		&status, &recommendation, &reason, &record.Decision.RiskScore,
		&record.Decision.AutoProcessable,
		&docJSON, &validationJSON, &record.CreatedAt, &reviewedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Kind = model.DocumentKind(kind)
	record.Status = model.ReviewStatus(status)
	record.Decision.Recommendation = model.Recommendation(recommendation)
	record.SourcePath = sourcePath.String
	record.Provider = provider.String
	record.ModelName = modelName.String
	record.Decision.Reason = reason.String
	if reviewedAt.Valid {
		t := reviewedAt.Time
		record.ReviewedAt = &t
	}

	if err := json.Unmarshal([]byte(docJSON), &record.Document); err != nil {
		return nil, fmt.Errorf("%w: bad document payload for %s: %v", common.ErrDatabaseCorrupted, record.ID, err)
	}
	if err := json.Unmarshal([]byte(validationJSON), &record.Validation); err != nil {
		return nil, fmt.Errorf("%w: bad validation payload for %s: %v", common.ErrDatabaseCorrupted, record.ID, err)
	}

	return &record, nil
}
