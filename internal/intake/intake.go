// Package intake runs a submission through validation, scoring, archiving and
// event publication. HTTP, the NATS request subject and the CLI all go
// through the same Service.
package intake

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Kinship/internal/catalogue"
	"github.com/MikeSquared-Agency/Kinship/internal/hermes"
	"github.com/MikeSquared-Agency/Kinship/internal/metrics"
	"github.com/MikeSquared-Agency/Kinship/internal/scoring"
	"github.com/MikeSquared-Agency/Kinship/internal/store"
)

type Options struct {
	MinAnswers       int
	StrictValidation bool
}

type Service struct {
	catalogue *catalogue.Catalogue
	analyzer  *scoring.Analyzer
	store     store.Store
	hermes    hermes.Client
	metrics   *metrics.Metrics
	opts      Options
	logger    *slog.Logger
	now       func() time.Time
}

// New wires a Service. The store, event client and metrics are optional and
// may be nil.
func New(cat *catalogue.Catalogue, s store.Store, h hermes.Client, m *metrics.Metrics, opts Options, logger *slog.Logger) *Service {
	return &Service{
		catalogue: cat,
		analyzer:  scoring.NewAnalyzer(cat),
		store:     s,
		hermes:    h,
		metrics:   m,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Catalogue() *catalogue.Catalogue { return s.catalogue }

func (s *Service) MinAnswers() int { return s.opts.MinAnswers }

// Submit validates and scores a submission. Rejections come back as
// scoring.ErrNoAnswers, scoring.ErrInsufficientAnswers or a
// *scoring.ValidationError. Archive and publish failures are logged and do not
// fail the submission.
func (s *Service) Submit(ctx context.Context, answers []scoring.Answer, source string) (*scoring.AnalysisResult, error) {
	start := s.now()

	if err := scoring.CheckCount(answers, s.opts.MinAnswers); err != nil {
		s.reject(err, source, len(answers))
		return nil, err
	}
	if s.opts.StrictValidation {
		if err := scoring.ValidateAnswers(answers, s.catalogue); err != nil {
			s.reject(err, source, len(answers))
			return nil, err
		}
	}

	result := s.analyzer.Analyze(answers)
	s.metrics.ObserveResult(source, result, s.now().Sub(start))

	s.logger.Info("assessment scored",
		"session_id", result.SessionID,
		"source", source,
		"answers", len(answers),
		"overall", result.OverallWellbeingScore,
		"risk_level", result.RAMResult.RiskLevel,
		"step_level", result.SteppedCare.StepLevel,
	)

	archived := s.archive(ctx, result, source, len(answers))
	s.publish(result, source)
	if archived {
		s.publishStats(ctx)
	}
	return result, nil
}

// Report looks up an archived result.
func (s *Service) Report(ctx context.Context, sessionID string) (*store.Report, error) {
	if s.store == nil {
		return nil, store.ErrNotFound
	}
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, store.ErrNotFound
	}
	return s.store.GetReport(ctx, id)
}

// Reports lists archived reports, newest first. Without a store the list is
// empty.
func (s *Service) Reports(ctx context.Context, f store.ReportFilter) ([]*store.Report, error) {
	if s.store == nil {
		return []*store.Report{}, nil
	}
	return s.store.ListReports(ctx, f)
}

// Stats summarises the archive. Without a store every count is zero.
func (s *Service) Stats(ctx context.Context) (*store.ReportStats, error) {
	if s.store == nil {
		return &store.ReportStats{ByRiskLevel: map[string]int{}, ByStepLevel: map[int]int{}}, nil
	}
	return s.store.GetStats(ctx)
}

func (s *Service) archive(ctx context.Context, result *scoring.AnalysisResult, source string, n int) bool {
	if s.store == nil {
		return false
	}
	r, err := store.NewReport(result, source, n)
	if err != nil {
		s.logger.Error("failed to build report", "session_id", result.SessionID, "error", err)
		return false
	}
	if err := s.store.SaveReport(ctx, r); err != nil {
		s.logger.Error("failed to archive report", "session_id", result.SessionID, "error", err)
		return false
	}
	return true
}

// publishStats broadcasts the archive totals after each stored report so
// dashboards need not poll the admin endpoint.
func (s *Service) publishStats(ctx context.Context) {
	if s.hermes == nil {
		return
	}
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		s.logger.Warn("failed to read archive stats", "error", err)
		return
	}
	evt := hermes.StatsEvent{
		Total:       stats.Total,
		ByRiskLevel: stats.ByRiskLevel,
		ByStepLevel: stats.ByStepLevel,
		AvgScore:    stats.AvgWellbeing,
		Timestamp:   s.now().UTC(),
	}
	if err := s.hermes.Publish(hermes.SubjectAssessmentStats, evt); err != nil {
		s.logger.Warn("failed to publish stats", "error", err)
	}
}

func (s *Service) publish(result *scoring.AnalysisResult, source string) {
	if s.hermes == nil {
		return
	}
	now := s.now().UTC()
	completed := hermes.AssessmentCompletedEvent{
		SessionID:             result.SessionID,
		OverallWellbeingScore: result.OverallWellbeingScore,
		AttachmentStyle:       string(result.AttachmentProfile.Style),
		Severity:              string(result.PHQADSResult.Severity),
		AdaptationLevel:       string(result.DASResult.AdaptationLevel),
		RiskLevel:             string(result.RAMResult.RiskLevel),
		StepLevel:             result.SteppedCare.StepLevel,
		Source:                source,
		CompletedAt:           now,
	}
	if err := s.hermes.Publish(hermes.SubjectAssessmentCompleted(result.SessionID), completed); err != nil {
		s.logger.Warn("failed to publish completed event", "session_id", result.SessionID, "error", err)
	}

	if result.RAMResult.RiskLevel != scoring.RiskHigh {
		return
	}
	escalated := hermes.AssessmentEscalatedEvent{
		SessionID:      result.SessionID,
		RiskLevel:      string(result.RAMResult.RiskLevel),
		ColorCode:      result.RAMResult.ColorCode,
		UrgentConcerns: result.RAMResult.UrgentConcerns,
		StepLevel:      result.SteppedCare.StepLevel,
		EscalatedAt:    now,
	}
	if err := s.hermes.Publish(hermes.SubjectAssessmentEscalated(result.SessionID), escalated); err != nil {
		s.logger.Error("failed to publish escalation", "session_id", result.SessionID, "error", err)
	}
}

// RejectMalformed records a submission that never reached Submit because its
// body could not be decoded.
func (s *Service) RejectMalformed(source string, err error) {
	s.metrics.ObserveRejection(metrics.ReasonMalformed)
	s.logger.Warn("malformed submission", "source", source, "error", err)
}

func (s *Service) reject(err error, source string, n int) {
	s.metrics.ObserveRejection(RejectionReason(err))
	s.logger.Warn("submission rejected", "source", source, "answers", n, "error", err)
}

// RejectionReason maps a Submit error onto a metrics label.
func RejectionReason(err error) string {
	var verr *scoring.ValidationError
	switch {
	case errors.Is(err, scoring.ErrNoAnswers):
		return metrics.ReasonNoAnswers
	case errors.Is(err, scoring.ErrInsufficientAnswers):
		return metrics.ReasonInsufficient
	case errors.As(err, &verr):
		return metrics.ReasonInvalid
	default:
		return metrics.ReasonMalformed
	}
}

// SetupSubscriptions scores submissions that arrive on the request subject.
func (s *Service) SetupSubscriptions() error {
	if s.hermes == nil {
		return nil
	}
	return s.hermes.Subscribe(hermes.SubjectAssessmentRequest, func(_ string, data []byte) {
		s.handleRequest(context.Background(), data)
	})
}

func (s *Service) handleRequest(ctx context.Context, data []byte) {
	var req hermes.AssessmentRequestEvent
	if err := json.Unmarshal(data, &req); err != nil {
		s.metrics.ObserveRejection(metrics.ReasonMalformed)
		s.logger.Warn("invalid assessment request event", "error", err)
		return
	}

	answers := make([]scoring.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, scoring.Answer{QuestionID: a.QuestionID, Value: a.Value})
	}

	if _, err := s.Submit(ctx, answers, store.SourceNATS); err != nil && req.RequestID != "" {
		rejected := hermes.AssessmentRejectedEvent{RequestID: req.RequestID, Error: err.Error()}
		if perr := s.hermes.Publish(hermes.SubjectAssessmentRejected(req.RequestID), rejected); perr != nil {
			s.logger.Warn("failed to publish rejection", "request_id", req.RequestID, "error", perr)
		}
	}
}
