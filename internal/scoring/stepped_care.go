package scoring

// SteppedCare is the recommended intervention intensity, from preventative
// self-help (0) to specialist referral (4).
type SteppedCare struct {
	StepLevel         int      `json:"step_level"`
	StepName          string   `json:"step_name"`
	Description       string   `json:"description"`
	Interventions     []string `json:"interventions"`
	EstimatedDuration string   `json:"estimated_duration"`
}

var careSteps = [...]SteppedCare{
	0: {
		StepLevel:         0,
		StepName:          "Preventative i-CBT",
		Description:       "You are in a good place. Preventative digital tools will help you maintain and grow the wellbeing you have built.",
		Interventions:     []string{"Relationship enrichment modules", "Communication skill-builders", "Monthly self-assessments", "Gratitude and appreciation practices"},
		EstimatedDuration: "Ongoing maintenance",
	},
	1: {
		StepLevel:         1,
		StepName:          "i-CBT with Asynchronous Messaging",
		Description:       "Self-guided internet-based CBT modules enhanced by asynchronous check-in messages from a care provider.",
		Interventions:     []string{"Weekly psychoeducation modules", "Gottman repair exercises", "Daily 3-minute check-ins", "Mindfulness practices"},
		EstimatedDuration: "4–6 weeks",
	},
	2: {
		StepLevel:         2,
		StepName:          "Tele-Coaching with Phone Calls",
		Description:       "Scheduled synchronous calls with a care provider will help you navigate current challenges with personalized guidance.",
		Interventions:     []string{"Bi-weekly coaching calls", "Guided journaling", "Attachment-informed exercises", "Daily check-in modules"},
		EstimatedDuration: "4–8 weeks",
	},
	3: {
		StepLevel:         3,
		StepName:          "Video Therapy Sessions",
		Description:       "High-intensity face-to-face digital sessions with a licensed therapist are recommended to address the current level of distress.",
		Interventions:     []string{"Weekly video therapy", "Couples counseling", "Structured CBT modules", "Relationship skill-building"},
		EstimatedDuration: "8–16 weeks",
	},
	4: {
		StepLevel:         4,
		StepName:          "Specialist Referral",
		Description:       "Your current needs require the support of a qualified mental health specialist. This is a sign of strength, not weakness.",
		Interventions:     []string{"Psychiatric evaluation", "Trauma-informed therapy", "Crisis counseling", "Safety planning"},
		EstimatedDuration: "Ongoing — typically 3–6 months minimum",
	},
}

// DetermineSteppedCare walks the tiers from most to least intensive; the
// first rule that matches wins.
func DetermineSteppedCare(ram RAMResult, phq PHQADSResult, das DASResult) SteppedCare {
	return careStep(stepLevel(ram, phq, das))
}

func stepLevel(ram RAMResult, phq PHQADSResult, das DASResult) int {
	switch {
	case ram.RiskLevel == RiskHigh || phq.Severity == SeveritySevere:
		return 4
	case phq.Severity == SeverityModerate || das.AdaptationLevel == AdaptationDistress:
		return 3
	case phq.Severity == SeverityMild || das.AdaptationLevel == AdaptationLow:
		return 2
	case phq.Severity == SeverityMinimal &&
		(das.AdaptationLevel == AdaptationModerate || das.AdaptationLevel == AdaptationHigh):
		return 1
	default:
		return 0
	}
}

func careStep(level int) SteppedCare {
	s := careSteps[level]
	s.Interventions = append([]string(nil), s.Interventions...)
	return s
}
