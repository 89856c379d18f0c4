package hermes

import "time"

// AssessmentRequestEvent is a submission arriving on SubjectAssessmentRequest.
// RequestID is echoed on the rejected subject when the submission fails
// validation.
type AssessmentRequestEvent struct {
	RequestID string                  `json:"request_id"`
	Source    string                  `json:"source,omitempty"`
	Answers   []AssessmentAnswerEvent `json:"answers"`
}

type AssessmentAnswerEvent struct {
	QuestionID string `json:"question_id"`
	Value      int    `json:"value"`
}

// AssessmentCompletedEvent summarises a scored report. Answer values and
// narrative text stay out of the event.
type AssessmentCompletedEvent struct {
	SessionID             string    `json:"session_id"`
	OverallWellbeingScore float64   `json:"overall_wellbeing_score"`
	AttachmentStyle       string    `json:"attachment_style"`
	Severity              string    `json:"severity"`
	AdaptationLevel       string    `json:"adaptation_level"`
	RiskLevel             string    `json:"risk_level"`
	StepLevel             int       `json:"step_level"`
	Source                string    `json:"source"`
	CompletedAt           time.Time `json:"completed_at"`
}

type AssessmentEscalatedEvent struct {
	SessionID      string    `json:"session_id"`
	RiskLevel      string    `json:"risk_level"`
	ColorCode      string    `json:"color_code"`
	UrgentConcerns []string  `json:"urgent_concerns"`
	StepLevel      int       `json:"step_level"`
	EscalatedAt    time.Time `json:"escalated_at"`
}

type AssessmentRejectedEvent struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

type StatsEvent struct {
	Total       int            `json:"total"`
	ByRiskLevel map[string]int `json:"by_risk_level"`
	ByStepLevel map[int]int    `json:"by_step_level"`
	AvgScore    float64        `json:"avg_wellbeing_score"`
	Timestamp   time.Time      `json:"timestamp"`
}
