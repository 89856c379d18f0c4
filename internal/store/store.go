package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Kinship/internal/scoring"
)

var ErrNotFound = errors.New("report not found")

// Source values recorded with each report.
const (
	SourceHTTP = "http"
	SourceNATS = "nats"
	SourceCLI  = "cli"
)

// Report is one archived analysis. The headline fields are copied out of
// Result so stats can be computed without decoding the document.
type Report struct {
	SessionID             uuid.UUID               `json:"session_id"`
	Source                string                  `json:"source"`
	OverallWellbeingScore float64                 `json:"overall_wellbeing_score"`
	RiskLevel             scoring.RiskLevel       `json:"risk_level"`
	Severity              scoring.Severity        `json:"severity"`
	StepLevel             int                     `json:"step_level"`
	AnswerCount           int                     `json:"answer_count"`
	Result                *scoring.AnalysisResult `json:"result"`
	CreatedAt             time.Time               `json:"created_at"`
}

// NewReport wraps a result for archiving.
func NewReport(result *scoring.AnalysisResult, source string, answerCount int) (*Report, error) {
	id, err := uuid.Parse(result.SessionID)
	if err != nil {
		return nil, err
	}
	return &Report{
		SessionID:             id,
		Source:                source,
		OverallWellbeingScore: result.OverallWellbeingScore,
		RiskLevel:             result.RAMResult.RiskLevel,
		Severity:              result.PHQADSResult.Severity,
		StepLevel:             result.SteppedCare.StepLevel,
		AnswerCount:           answerCount,
		Result:                result,
	}, nil
}

type ReportFilter struct {
	RiskLevel *scoring.RiskLevel
	MinStep   *int
	Since     *time.Time
	Limit     int
	Offset    int
}

type ReportStats struct {
	Total           int            `json:"total"`
	ByRiskLevel     map[string]int `json:"by_risk_level"`
	ByStepLevel     map[int]int    `json:"by_step_level"`
	AvgWellbeing    float64        `json:"avg_wellbeing_score"`
	LastSubmittedAt *time.Time     `json:"last_submitted_at,omitempty"`
}

type Store interface {
	SaveReport(ctx context.Context, r *Report) error
	GetReport(ctx context.Context, sessionID uuid.UUID) (*Report, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]*Report, error)
	GetStats(ctx context.Context) (*ReportStats, error)
	Close() error
}
