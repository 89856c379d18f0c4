// Package metrics exposes Prometheus collectors for assessment traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Kinship/internal/scoring"
)

const namespace = "kinship"

// Rejection reasons.
const (
	ReasonMalformed    = "malformed"
	ReasonNoAnswers    = "no_answers"
	ReasonInsufficient = "insufficient"
	ReasonInvalid      = "invalid"
)

type Metrics struct {
	assessments *prometheus.CounterVec
	riskLevels  *prometheus.CounterVec
	stepLevels  *prometheus.CounterVec
	severities  *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	wellbeing   prometheus.Histogram
	duration    prometheus.Histogram
}

// New registers the collectors with reg. Passing prometheus.DefaultRegisterer
// exposes them on the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Scored assessments by submission source.",
		}, []string{"source"}),
		riskLevels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_level_total",
			Help:      "Safety triage outcomes.",
		}, []string{"risk_level"}),
		stepLevels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stepped_care_total",
			Help:      "Stepped-care tier recommendations.",
		}, []string{"step_level"}),
		severities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phq_ads_severity_total",
			Help:      "PHQ-ADS severity bands.",
		}, []string{"severity"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_submissions_total",
			Help:      "Submissions rejected before scoring.",
		}, []string{"reason"}),
		wellbeing: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overall_wellbeing_score",
			Help:      "Distribution of overall wellbeing scores.",
			Buckets:   prometheus.LinearBuckets(10, 10, 9),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent validating and scoring a submission.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	reg.MustRegister(m.assessments, m.riskLevels, m.stepLevels, m.severities, m.rejections, m.wellbeing, m.duration)
	return m
}

// ObserveResult records one scored report.
func (m *Metrics) ObserveResult(source string, r *scoring.AnalysisResult, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.assessments.WithLabelValues(source).Inc()
	m.riskLevels.WithLabelValues(string(r.RAMResult.RiskLevel)).Inc()
	m.stepLevels.WithLabelValues(strconv.Itoa(r.SteppedCare.StepLevel)).Inc()
	m.severities.WithLabelValues(string(r.PHQADSResult.Severity)).Inc()
	m.wellbeing.Observe(r.OverallWellbeingScore)
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRejection(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}
