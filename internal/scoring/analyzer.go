package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Kinship/internal/catalogue"
)

// AnalysisResult is the full report for one submission.
type AnalysisResult struct {
	SessionID             string            `json:"session_id"`
	OverallWellbeingScore float64           `json:"overall_wellbeing_score"`
	AttachmentProfile     AttachmentProfile `json:"attachment_profile"`
	GottmanAnalysis       GottmanAnalysis   `json:"gottman_analysis"`
	TraumaProfile         TraumaProfile     `json:"trauma_profile"`
	PHQADSResult          PHQADSResult      `json:"phq_ads_result"`
	DASResult             DASResult         `json:"das_result"`
	RAMResult             RAMResult         `json:"ram_result"`
	SteppedCare           SteppedCare       `json:"stepped_care"`
	DailyCheckinPlan      []string          `json:"daily_checkin_plan"`
	Summary               string            `json:"summary"`
	PositiveHighlights    []string          `json:"positive_highlights"`
	PriorityFocusAreas    []string          `json:"priority_focus_areas"`
}

var dailyCheckinPlan = []string{
	"🌅 Morning: Share one thing you're looking forward to today",
	"☀️ Midday: Send a brief appreciation text to your partner",
	"🌙 Evening: 3-minute check-in — One Win, One Challenge, Two Appreciations",
	"🌟 Weekly: Schedule one intentional 'date' activity together",
	"💭 Monthly: Revisit this assessment to track your progress",
}

// Analyzer runs every sub-analysis over a submission. It holds no mutable
// state and is safe for concurrent use.
type Analyzer struct {
	questions []catalogue.Question
	newID     func() string
}

// NewAnalyzer returns an Analyzer scoring against cat.
func NewAnalyzer(cat *catalogue.Catalogue) *Analyzer {
	return &Analyzer{
		questions: cat.Questions(),
		newID:     func() string { return uuid.New().String() },
	}
}

// Analyze scores a submission. It never fails: unanswered items fall back to
// each component's default.
func (a *Analyzer) Analyze(answers []Answer) *AnalysisResult {
	set := NewAnswerSet(answers)

	attachment := AnalyzeAttachment(set, a.questions)
	gottman := AnalyzeGottman(set)
	trauma := AnalyzeTrauma(set)
	phq := AnalyzePHQADS(set)
	das := AnalyzeDAS(set)
	ram := AnalyzeRAM(set)
	care := DetermineSteppedCare(ram, phq, das)

	overall := OverallWellbeing(attachment, gottman, trauma, phq, das)

	return &AnalysisResult{
		SessionID:             a.newID(),
		OverallWellbeingScore: overall,
		AttachmentProfile:     attachment,
		GottmanAnalysis:       gottman,
		TraumaProfile:         trauma,
		PHQADSResult:          phq,
		DASResult:             das,
		RAMResult:             ram,
		SteppedCare:           care,
		DailyCheckinPlan:      append([]string(nil), dailyCheckinPlan...),
		Summary: fmt.Sprintf(
			"Your overall relational wellbeing score is %s/100. This assessment reflects patterns across attachment security, relationship dynamics, emotional health, and trauma history. Every insight here is an invitation, not a verdict.",
			strconv.FormatFloat(overall, 'f', 1, 64)),
		PositiveHighlights: positiveHighlights(attachment, gottman, das),
		PriorityFocusAreas: priorityFocusAreas(attachment, gottman, trauma, das),
	}
}

// OverallWellbeing blends the reported (already rounded) sub-scores into a
// single 0–100 figure.
func OverallWellbeing(att AttachmentProfile, g GottmanAnalysis, t TraumaProfile, phq PHQADSResult, das DASResult) float64 {
	overall := att.SecureScore*0.25 +
		g.OverallHealth*0.30 +
		(100-t.IPTIndicators)*0.10 +
		(100-phq.TotalScore/PHQADSMax*100)*0.20 +
		das.TotalScore*0.15
	return round1(clamp(overall, 0, 100))
}

func positiveHighlights(att AttachmentProfile, g GottmanAnalysis, das DASResult) []string {
	var out []string
	if att.SecureScore > 60 {
		out = append(out, "Strong foundation of secure attachment tendencies")
	}
	if g.PositiveRatio >= 3 {
		out = append(out, fmt.Sprintf("Positive interaction ratio of %s:1 — on track toward Gottman's ideal", formatRatio(g.PositiveRatio)))
	}
	if das.SatisfactionScore > 65 {
		out = append(out, "Above-average relationship satisfaction")
	}
	if das.CohesionScore > 65 {
		out = append(out, "Strong sense of shared activities and cohesion")
	}
	if len(out) == 0 {
		out = append(out,
			"Courage in completing this self-assessment is itself a strength",
			"Awareness of relational patterns opens the door to meaningful change",
		)
	}
	return out
}

func priorityFocusAreas(att AttachmentProfile, g GottmanAnalysis, t TraumaProfile, das DASResult) []string {
	var out []string
	if len(g.HorsemenPresent) > 0 {
		out = append(out, fmt.Sprintf("Address %s patterns in communication", strings.Join(g.HorsemenPresent, ", ")))
	}
	if t.RiskLevel == TraumaElevated || t.RiskLevel == TraumaHigh {
		out = append(out, "Engage with trauma-informed therapeutic support")
	}
	if att.Style == StyleAnxious || att.Style == StyleDisorganized {
		out = append(out, "Build self-soothing and emotional regulation practices")
	}
	if das.TotalScore < 50 {
		out = append(out, "Invest in dyadic cohesion through shared meaningful experiences")
	}
	if len(out) == 0 {
		out = append(out, "Continue maintaining the healthy patterns you've built")
	}
	return out
}
