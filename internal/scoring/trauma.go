package scoring

import (
	"fmt"
	"strings"
)

type TraumaRisk string

const (
	TraumaLow      TraumaRisk = "Low"
	TraumaModerate TraumaRisk = "Moderate"
	TraumaElevated TraumaRisk = "Elevated"
	TraumaHigh     TraumaRisk = "High"
)

type TraumaProfile struct {
	RiskLevel                 TraumaRisk `json:"risk_level"`
	ChildhoodTraumaIndicators float64    `json:"childhood_trauma_indicators"`
	IPTIndicators             float64    `json:"ipt_indicators"`
	PTSDIndicators            float64    `json:"ptsd_indicators"`
	Description               string     `json:"description"`
	Recommendations           []string   `json:"recommendations"`
}

var traumaRecommendations = map[TraumaRisk][]string{
	TraumaLow: {
		"Maintain current healthy relationship habits",
		"Continue building emotional safety with your partner",
		"Regular 3-minute daily check-ins to sustain connection",
	},
	TraumaModerate: {
		"Consider journaling your emotional patterns",
		"Begin working with a therapist to explore attachment history",
		"Practice grounding exercises during relational stress",
		"Share your insights from this assessment with a trusted partner or counselor",
	},
	TraumaElevated: {
		"Strongly recommend engaging with a trauma-informed therapist",
		"Explore EMDR or somatic therapies for relational trauma",
		"Create a safety plan with your therapist or counselor",
		"Consider couples therapy to address trauma's impact on the relationship",
	},
	TraumaHigh: {
		"Please reach out to a mental health professional as soon as possible",
		"If you are in immediate danger, contact emergency services or a crisis line",
		"Connect with a trauma specialist — this is a priority",
		"Consider reaching out to the National DV Hotline: 1-800-799-7233",
	},
}

// AnalyzeTrauma scores trauma_01..trauma_05. Unanswered items count as 0
// (no indicator reported).
func AnalyzeTrauma(answers AnswerSet) TraumaProfile {
	childhood := Normalize(float64(answers.Value("trauma_01", 0)), 0, 4)
	ipt := Normalize(float64(answers.Value("trauma_02", 0)), 0, 4)
	hypervigilance := Normalize(float64(answers.Value("trauma_03", 0)), 0, 4)
	numbing := Normalize(float64(answers.Value("trauma_04", 0)), 0, 4)
	patternAwareness := Normalize(float64(answers.Value("trauma_05", 0)), 0, 4)

	ptsd := (hypervigilance + numbing) / 2
	composite := childhood*0.25 + ipt*0.35 + ptsd*0.30 + patternAwareness*0.10

	level := traumaRisk(composite)
	return TraumaProfile{
		RiskLevel:                 level,
		ChildhoodTraumaIndicators: percent(childhood),
		IPTIndicators:             percent(ipt),
		PTSDIndicators:            percent(ptsd),
		Description: fmt.Sprintf(
			"Your trauma profile indicates a %s risk level. Early experiences and interpersonal trauma history both contribute to how we relate to partners. Understanding these patterns is the first step toward healing.",
			strings.ToLower(string(level))),
		Recommendations: append([]string(nil), traumaRecommendations[level]...),
	}
}

func traumaRisk(composite float64) TraumaRisk {
	switch {
	case composite < 0.20:
		return TraumaLow
	case composite < 0.45:
		return TraumaModerate
	case composite < 0.70:
		return TraumaElevated
	default:
		return TraumaHigh
	}
}
