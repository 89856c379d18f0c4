package scoring

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

const (
	ConcernPhysicalSafety = "Physical safety concern identified"
	ConcernCoercion       = "Psychological coercion or control detected"
	ConcernSelfHarm       = "Self-harm ideation present — immediate support recommended"
	ConcernHopelessness   = "Persistent hopelessness — clinical attention needed"
)

// RAMResult is the safety triage outcome.
type RAMResult struct {
	RiskLevel           RiskLevel `json:"risk_level"`
	ColorCode           string    `json:"color_code"`
	TriageCriteria      string    `json:"triage_criteria"`
	ApplicationResponse string    `json:"application_response"`
	UrgentConcerns      []string  `json:"urgent_concerns"`
}

// Signals read by the triage engine. The self-harm signal is the last
// PHQ-ADS item; there is no dedicated safety question for it.
const (
	itemPhysicalSafety      = "ram_01"
	itemPsychologicalSafety = "ram_02"
	itemHopelessness        = "ram_03"
	itemSelfHarm            = "phq_06"
)

// AnalyzeRAM triages immediate risk. Physical safety, hopelessness and self
// harm default to 0; psychological safety defaults to 4, its safest value.
//
// A physical-safety or self-harm answer of 2 or more forces High regardless
// of the blended score, so a single severe signal is never averaged away.
func AnalyzeRAM(answers AnswerSet) RAMResult {
	physical := answers.Value(itemPhysicalSafety, 0)
	psychological := answers.Value(itemPsychologicalSafety, 4)
	hopelessness := answers.Value(itemHopelessness, 0)
	selfHarm := answers.Value(itemSelfHarm, 0)

	concerns := []string{}
	if physical >= 2 {
		concerns = append(concerns, ConcernPhysicalSafety)
	}
	if psychological <= 1 {
		concerns = append(concerns, ConcernCoercion)
	}
	if selfHarm >= 2 {
		concerns = append(concerns, ConcernSelfHarm)
	}
	if hopelessness >= 2 {
		concerns = append(concerns, ConcernHopelessness)
	}

	risk := RAMRiskScore(physical, psychological, hopelessness, selfHarm)

	switch {
	case risk >= 0.5 || physical >= 2 || selfHarm >= 2:
		return RAMResult{
			RiskLevel:           RiskHigh,
			ColorCode:           "red",
			TriageCriteria:      "Immediate risk of self-harm or interpersonal violence",
			ApplicationResponse: "Connecting you to emergency resources and crisis support lines",
			UrgentConcerns:      concerns,
		}
	case risk >= 0.25 || len(concerns) > 0:
		return RAMResult{
			RiskLevel:           RiskMedium,
			ColorCode:           "amber",
			TriageCriteria:      "Significant distress with history of trauma or relational harm",
			ApplicationResponse: "Tele-coaching referral and specialist consultation recommended",
			UrgentConcerns:      concerns,
		}
	default:
		return RAMResult{
			RiskLevel:           RiskLow,
			ColorCode:           "green",
			TriageCriteria:      "Stable emotional state with manageable relational friction",
			ApplicationResponse: "Self-guided modules and regular check-in prompts",
			UrgentConcerns:      []string{},
		}
	}
}

// RAMRiskScore blends the four raw safety signals into [0, 1] for in-range
// input. Raw values are used unclamped.
func RAMRiskScore(physical, psychological, hopelessness, selfHarm int) float64 {
	return float64(physical)/3.0*0.40 +
		(1.0-float64(psychological)/4.0)*0.35 +
		float64(hopelessness)/3.0*0.15 +
		float64(selfHarm)/3.0*0.10
}
