package scoring

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityMinimal  Severity = "Minimal"
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

// PHQADSMax is the upper bound of the rescaled combined score.
const PHQADSMax = 48.0

var (
	depressionItems = []string{"phq_01", "phq_02", "phq_03"}
	anxietyItems    = []string{"phq_04", "phq_05", "phq_06"}
)

// phqItemMax is the top of the two-week frequency scale.
const phqItemMax = 3

type PHQADSResult struct {
	TotalScore             float64  `json:"total_score"`
	PHQ9Score              float64  `json:"phq9_score"`
	GAD7Score              float64  `json:"gad7_score"`
	Severity               Severity `json:"severity"`
	ClinicalRecommendation string   `json:"clinical_recommendation"`
	Description            string   `json:"description"`
}

var severityRecommendations = map[Severity]string{
	SeverityMinimal:  "Continue with preventative education and self-care practices.",
	SeverityMild:     "Low-intensity digital interventions and psychoeducation are recommended.",
	SeverityModerate: "Tele-coaching and a clinician check-in are strongly recommended.",
	SeveritySevere:   "Immediate specialist referral is recommended. Please reach out to a mental health professional.",
}

// AnalyzePHQADS sums the depression and anxiety proxies and rescales the
// combined raw total onto 0–48. Unanswered items count as 0.
func AnalyzePHQADS(answers AnswerSet) PHQADSResult {
	var phq9, gad7 int
	for _, id := range depressionItems {
		phq9 += answers.Value(id, 0)
	}
	for _, id := range anxietyItems {
		gad7 += answers.Value(id, 0)
	}

	rawMax := float64(phqItemMax * (len(depressionItems) + len(anxietyItems)))
	total := float64(phq9+gad7) / rawMax * PHQADSMax

	severity := phqSeverity(total)
	return PHQADSResult{
		TotalScore:             round1(total),
		PHQ9Score:              float64(phq9),
		GAD7Score:              float64(gad7),
		Severity:               severity,
		ClinicalRecommendation: severityRecommendations[severity],
		Description: fmt.Sprintf(
			"Your combined anxiety and depression score falls in the %s range. These feelings are real, and there is support available for every level of distress.",
			strings.ToLower(string(severity))),
	}
}

func phqSeverity(total float64) Severity {
	switch {
	case total <= 9:
		return SeverityMinimal
	case total <= 19:
		return SeverityMild
	case total <= 29:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}
