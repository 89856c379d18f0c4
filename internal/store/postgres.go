package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Kinship/internal/scoring"
)

//go:embed schema.sql
var schemaSQL string

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the report table if it does not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const reportColumns = `session_id, source, overall_wellbeing_score, risk_level, severity,
	step_level, answer_count, result, created_at`

func (s *PostgresStore) SaveReport(ctx context.Context, r *Report) error {
	resultJSON, err := json.Marshal(r.Result)
	if err != nil {
		return fmt.Errorf("marshal report %s: %w", r.SessionID, err)
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO assessment_reports (session_id, source, overall_wellbeing_score,
			risk_level, severity, step_level, answer_count, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		r.SessionID, r.Source, r.OverallWellbeingScore,
		string(r.RiskLevel), string(r.Severity), r.StepLevel, r.AnswerCount, resultJSON,
	).Scan(&r.CreatedAt)
}

func (s *PostgresStore) GetReport(ctx context.Context, sessionID uuid.UUID) (*Report, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+reportColumns+`
		FROM assessment_reports WHERE session_id = $1`, sessionID)
	r, err := scanReport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PostgresStore) ListReports(ctx context.Context, filter ReportFilter) ([]*Report, error) {
	query := `SELECT ` + reportColumns + ` FROM assessment_reports WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.RiskLevel != nil {
		n++
		query += fmt.Sprintf(" AND risk_level = $%d", n)
		args = append(args, string(*filter.RiskLevel))
	}
	if filter.MinStep != nil {
		n++
		query += fmt.Sprintf(" AND step_level >= $%d", n)
		args = append(args, *filter.MinStep)
	}
	if filter.Since != nil {
		n++
		query += fmt.Sprintf(" AND created_at >= $%d", n)
		args = append(args, *filter.Since)
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*ReportStats, error) {
	stats := &ReportStats{
		ByRiskLevel: map[string]int{},
		ByStepLevel: map[int]int{},
	}
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(overall_wellbeing_score), 0), MAX(created_at)
		FROM assessment_reports`,
	).Scan(&stats.Total, &stats.AvgWellbeing, &stats.LastSubmittedAt)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `SELECT risk_level, COUNT(*) FROM assessment_reports GROUP BY risk_level`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.ByRiskLevel[level] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx, `SELECT step_level, COUNT(*) FROM assessment_reports GROUP BY step_level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var step, count int
		if err := rows.Scan(&step, &count); err != nil {
			return nil, err
		}
		stats.ByStepLevel[step] = count
	}
	return stats, rows.Err()
}

func scanReport(row pgx.Row) (*Report, error) {
	r := &Report{}
	var risk, severity string
	var resultJSON []byte
	if err := row.Scan(
		&r.SessionID, &r.Source, &r.OverallWellbeingScore, &risk, &severity,
		&r.StepLevel, &r.AnswerCount, &resultJSON, &r.CreatedAt,
	); err != nil {
		return nil, err
	}
	r.RiskLevel = scoring.RiskLevel(risk)
	r.Severity = scoring.Severity(severity)
	if resultJSON != nil {
		if err := json.Unmarshal(resultJSON, &r.Result); err != nil {
			return nil, fmt.Errorf("decode report %s: %w", r.SessionID, err)
		}
	}
	return r, nil
}
