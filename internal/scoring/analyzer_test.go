package scoring

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Kinship/internal/catalogue"
)

func testAnalyzer() *Analyzer {
	a := NewAnalyzer(catalogue.Default())
	n := 0
	a.newID = func() string {
		n++
		return fmt.Sprintf("session-%d", n)
	}
	return a
}

// midpointAnswers answers every catalogue question at the middle of its scale,
// then applies the overrides.
func midpointAnswers(overrides map[string]int) []Answer {
	var out []Answer
	for _, q := range catalogue.Default().Questions() {
		v := q.Midpoint()
		if o, ok := overrides[q.ID]; ok {
			v = o
		}
		out = append(out, Answer{QuestionID: q.ID, Value: v})
	}
	return out
}

func TestAnalyzeAllMidpoints(t *testing.T) {
	r := testAnalyzer().Analyze(midpointAnswers(nil))

	assert.Equal(t, "session-1", r.SessionID)
	assert.InDelta(t, 50, r.OverallWellbeingScore, 5)
	assert.Equal(t, 53.3, r.OverallWellbeingScore)

	assert.Equal(t, StyleSecure, r.AttachmentProfile.Style)
	assert.Equal(t, 50.0, r.GottmanAnalysis.OverallHealth)
	assert.Equal(t, TraumaElevated, r.TraumaProfile.RiskLevel)
	assert.Equal(t, 16.0, r.PHQADSResult.TotalScore)
	assert.Equal(t, SeverityMild, r.PHQADSResult.Severity)
	assert.Equal(t, AdaptationLow, r.DASResult.AdaptationLevel)

	// Two-week and safety items sit on 0..3 scales, so their midpoint is 1;
	// that is enough to lift the blended safety score into amber.
	assert.Equal(t, RiskMedium, r.RAMResult.RiskLevel)
	assert.Empty(t, r.RAMResult.UrgentConcerns)
	assert.Equal(t, 2, r.SteppedCare.StepLevel)

	assert.Equal(t, []string{
		"Courage in completing this self-assessment is itself a strength",
		"Awareness of relational patterns opens the door to meaningful change",
	}, r.PositiveHighlights)
	assert.Equal(t, []string{"Engage with trauma-informed therapeutic support"}, r.PriorityFocusAreas)
	assert.Len(t, r.DailyCheckinPlan, 5)
	assert.Contains(t, r.Summary, "wellbeing score is 53.3/100")
}

func TestAnalyzeCalmMidpointsIsLowRisk(t *testing.T) {
	r := testAnalyzer().Analyze(midpointAnswers(map[string]int{
		"ram_01": 0, "ram_03": 0, "ram_02": 3,
		"phq_01": 0, "phq_02": 0, "phq_03": 0, "phq_04": 0, "phq_05": 0, "phq_06": 0,
	}))

	assert.Equal(t, RiskLow, r.RAMResult.RiskLevel)
	assert.Equal(t, "green", r.RAMResult.ColorCode)
	assert.Equal(t, SeverityMinimal, r.PHQADSResult.Severity)
	// DAS stays at Low Adaptation, which routes to tele-coaching.
	assert.Equal(t, 2, r.SteppedCare.StepLevel)
}

func TestAnalyzePhysicalSafetyEscalates(t *testing.T) {
	r := testAnalyzer().Analyze(midpointAnswers(map[string]int{"ram_01": 3}))

	assert.Equal(t, RiskHigh, r.RAMResult.RiskLevel)
	assert.Equal(t, "red", r.RAMResult.ColorCode)
	assert.Contains(t, r.RAMResult.UrgentConcerns, ConcernPhysicalSafety)
	assert.Equal(t, 4, r.SteppedCare.StepLevel)
	assert.Equal(t, "Specialist Referral", r.SteppedCare.StepName)
}

func TestAnalyzeMaximalDistressIsSevere(t *testing.T) {
	r := testAnalyzer().Analyze(midpointAnswers(map[string]int{
		"phq_01": 3, "phq_02": 3, "phq_03": 3, "phq_04": 3, "phq_05": 3, "phq_06": 3,
	}))

	assert.Equal(t, SeveritySevere, r.PHQADSResult.Severity)
	assert.Equal(t, 48.0, r.PHQADSResult.TotalScore)
	assert.Equal(t, 4, r.SteppedCare.StepLevel)
	assert.Contains(t, r.RAMResult.UrgentConcerns, ConcernSelfHarm)
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := testAnalyzer()
	answers := midpointAnswers(map[string]int{"att_03": 4, "gott_01": 0, "trauma_02": 3, "das_02": 4})

	first := a.Analyze(answers)
	second := a.Analyze(answers)
	require.NotEqual(t, first.SessionID, second.SessionID)

	second.SessionID = first.SessionID
	assert.Equal(t, first, second)
}

func TestAnalyzeEmptySubmissionUsesDefaults(t *testing.T) {
	r := testAnalyzer().Analyze(nil)

	assert.Equal(t, RiskLow, r.RAMResult.RiskLevel)
	assert.Equal(t, TraumaLow, r.TraumaProfile.RiskLevel)
	assert.Equal(t, SeverityMinimal, r.PHQADSResult.Severity)
	assert.Equal(t, 50.0, r.AttachmentProfile.SecureScore)
	assert.NotEmpty(t, r.PositiveHighlights)
	assert.NotEmpty(t, r.PriorityFocusAreas)
}

func TestAnalyzeRealSessionIDs(t *testing.T) {
	a := NewAnalyzer(catalogue.Default())
	id1 := a.Analyze(nil).SessionID
	id2 := a.Analyze(nil).SessionID
	assert.Len(t, id1, 36)
	assert.NotEqual(t, id1, id2)
}

func TestOverallWellbeingClamped(t *testing.T) {
	a := testAnalyzer()

	high := a.Analyze([]Answer{{QuestionID: "phq_01", Value: -1000}})
	assert.Equal(t, 100.0, high.OverallWellbeingScore)

	low := a.Analyze([]Answer{{QuestionID: "phq_01", Value: 1000}})
	assert.Equal(t, 0.0, low.OverallWellbeingScore)

	for _, v := range []int{-50, -3, 0, 2, 4, 9, 50} {
		var answers []Answer
		for _, q := range catalogue.Default().Questions() {
			answers = append(answers, Answer{QuestionID: q.ID, Value: v})
		}
		s := a.Analyze(answers).OverallWellbeingScore
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 100.0)
	}
}

func TestHighlightsAndPriorities(t *testing.T) {
	r := testAnalyzer().Analyze([]Answer{
		{QuestionID: "gott_05", Value: 4},
		{QuestionID: "das_02", Value: 4},
		{QuestionID: "das_03", Value: 4},
		{QuestionID: "gott_01", Value: 0},
		{QuestionID: "gott_03", Value: 0},
	})

	assert.Contains(t, r.PositiveHighlights, "Positive interaction ratio of 6.0:1 — on track toward Gottman's ideal")
	assert.Contains(t, r.PositiveHighlights, "Above-average relationship satisfaction")
	assert.Contains(t, r.PositiveHighlights, "Strong sense of shared activities and cohesion")
	assert.Contains(t, r.PriorityFocusAreas, "Address Criticism, Contempt patterns in communication")
}

func TestCheckCount(t *testing.T) {
	assert.ErrorIs(t, CheckCount(nil, 10), ErrNoAnswers)

	err := CheckCount(make([]Answer, 3), 10)
	require.ErrorIs(t, err, ErrInsufficientAnswers)
	assert.Contains(t, err.Error(), "received 3, minimum 10 required")

	assert.NoError(t, CheckCount(make([]Answer, 10), 10))
}

func TestValidateAnswers(t *testing.T) {
	cat := catalogue.Default()

	assert.NoError(t, ValidateAnswers(midpointAnswers(nil), cat))

	err := ValidateAnswers([]Answer{
		{QuestionID: "att_01", Value: 2},
		{QuestionID: "att_99", Value: 1},
		{QuestionID: "ram_01", Value: 4},
		{QuestionID: "phq_02", Value: -1},
	}, cat)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Issues, 3)
	assert.Equal(t, "att_99", verr.Issues[0].QuestionID)
	assert.Equal(t, "unknown question", verr.Issues[0].Reason)
	assert.Equal(t, "value 4 outside range 0..3", verr.Issues[1].Reason)
	assert.Equal(t, "phq_02", verr.Issues[2].QuestionID)
}

func TestValidateAnswersRejectsDuplicates(t *testing.T) {
	answers := append(midpointAnswers(nil), Answer{QuestionID: "gott_01", Value: 0})

	var verr *ValidationError
	require.ErrorAs(t, ValidateAnswers(answers, catalogue.Default()), &verr)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "gott_01", verr.Issues[0].QuestionID)
	assert.Equal(t, "duplicate answer", verr.Issues[0].Reason)
}
