package scoring

import (
	"fmt"
	"strings"
)

type Adaptation string

const (
	AdaptationHigh     Adaptation = "High Adaptation"
	AdaptationModerate Adaptation = "Moderate Adaptation"
	AdaptationLow      Adaptation = "Low Adaptation"
	AdaptationDistress Adaptation = "Significant Dyadic Distress"
)

// DASResult reports the composite and four of the five axes; openness feeds
// the composite only.
type DASResult struct {
	TotalScore        float64    `json:"total_score"`
	ConsensusScore    float64    `json:"consensus_score"`
	SatisfactionScore float64    `json:"satisfaction_score"`
	CohesionScore     float64    `json:"cohesion_score"`
	AffectionScore    float64    `json:"affection_score"`
	AdaptationLevel   Adaptation `json:"adaptation_level"`
	Description       string     `json:"description"`
}

// AnalyzeDAS scores das_01..das_05, defaulting each to the midpoint.
func AnalyzeDAS(answers AnswerSet) DASResult {
	consensus := Normalize(float64(answers.Value("das_01", 2)), 0, 4) * 100
	satisfaction := Normalize(float64(answers.Value("das_02", 2)), 0, 4) * 100
	cohesion := Normalize(float64(answers.Value("das_03", 2)), 0, 4) * 100
	affection := Normalize(float64(answers.Value("das_04", 2)), 0, 4) * 100
	openness := Normalize(float64(answers.Value("das_05", 2)), 0, 4) * 100

	total := consensus*0.25 + satisfaction*0.30 + cohesion*0.20 + affection*0.15 + openness*0.10
	level := dasAdaptation(total)

	return DASResult{
		TotalScore:        round1(total),
		ConsensusScore:    round1(consensus),
		SatisfactionScore: round1(satisfaction),
		CohesionScore:     round1(cohesion),
		AffectionScore:    round1(affection),
		AdaptationLevel:   level,
		Description: fmt.Sprintf(
			"Your Dyadic Adjustment score indicates %s. This reflects areas of both strength and opportunity within your relationship dynamic.",
			strings.ToLower(string(level))),
	}
}

func dasAdaptation(total float64) Adaptation {
	switch {
	case total >= 75:
		return AdaptationHigh
	case total >= 55:
		return AdaptationModerate
	case total >= 35:
		return AdaptationLow
	default:
		return AdaptationDistress
	}
}
