package scoring

import "github.com/MikeSquared-Agency/Kinship/internal/catalogue"

type AttachmentStyle string

const (
	StyleSecure       AttachmentStyle = "Secure"
	StyleAnxious      AttachmentStyle = "Anxious"
	StyleAvoidant     AttachmentStyle = "Avoidant"
	StyleDisorganized AttachmentStyle = "Disorganized"
)

// AttachmentProfile scores are on a 0–100 scale.
type AttachmentProfile struct {
	Style             AttachmentStyle `json:"style"`
	SecureScore       float64         `json:"secure_score"`
	AnxiousScore      float64         `json:"anxious_score"`
	AvoidantScore     float64         `json:"avoidant_score"`
	DisorganizedScore float64         `json:"disorganized_score"`
	Description       string          `json:"description"`
	Strengths         []string        `json:"strengths"`
	GrowthAreas       []string        `json:"growth_areas"`
}

type styleNarrative struct {
	description string
	strengths   []string
	growthAreas []string
}

var attachmentNarratives = map[AttachmentStyle]styleNarrative{
	StyleSecure: {
		description: "You demonstrate a secure attachment style, characterized by a healthy balance between intimacy and autonomy. You trust your partner and can both give and receive emotional support with relative ease.",
		strengths:   []string{"Consistent emotional availability", "Comfort with vulnerability", "Healthy conflict resolution", "Stable sense of self in relationships"},
		growthAreas: []string{"Continue deepening emotional intimacy", "Support partners who may be less secure"},
	},
	StyleAnxious: {
		description: "Your attachment pattern shows anxious tendencies, often rooted in a fear of abandonment. You may find yourself needing frequent reassurance and feeling unsettled by perceived distance from your partner.",
		strengths:   []string{"Deep capacity for emotional investment", "Attuned to relationship dynamics", "Strong desire for closeness"},
		growthAreas: []string{"Building self-soothing strategies", "Trusting the relationship without constant reassurance", "Recognizing when space is not rejection"},
	},
	StyleAvoidant: {
		description: "You tend toward an avoidant-dismissive attachment style, where emotional distance feels safer than vulnerability. While you value your independence, intimate moments may trigger discomfort.",
		strengths:   []string{"Strong self-reliance", "Emotional regulation under pressure", "Clarity in personal boundaries"},
		growthAreas: []string{"Practicing emotional disclosure", "Tolerating closeness without withdrawing", "Recognizing your partner's need for connection"},
	},
	StyleDisorganized: {
		description: "Your responses suggest a disorganized attachment pattern, where intimacy can simultaneously feel deeply desired and frightening. This often stems from early experiences where caregivers were both comforting and threatening.",
		strengths:   []string{"Deep empathy from complex experiences", "Awareness of emotional complexity"},
		growthAreas: []string{"Working with a therapist on early relational wounds", "Creating safety rituals in the relationship", "Developing predictable emotional patterns"},
	},
}

// AnalyzeAttachment derives the four attachment axes and the dominant style.
//
// The secure axis is the weighted score over every att_ question. The other
// three come from designated items, each defaulting to the scale midpoint:
//
//	anxious      = (1 - N(att_01+att_04, 0, 8))*0.4 + (1 - N(att_02))*0.6
//	avoidant     = N(att_03) when att_03 is at its maximum, else (1 - N(att_03))*0.3
//	disorganized = 1 - N(att_07)
//
// The avoidant branch jumps from 0 to 1 at the top of the scale; a maximal
// answer is treated as categorically avoidant.
func AnalyzeAttachment(answers AnswerSet, questions []catalogue.Question) AttachmentProfile {
	secure := WeightedCategoryScore(answers, questions, questionIDs(questions, catalogue.CategoryAttachment.Prefix()))

	q01 := answers.Value("att_01", 2)
	q02 := answers.Value("att_02", 2)
	q03 := answers.Value("att_03", 2)
	q04 := answers.Value("att_04", 2)
	q07 := answers.Value("att_07", 2)

	anxious := clamp(1.0-Normalize(float64(q01+q04), 0, 8), 0, 1)*0.4 +
		(1.0-Normalize(float64(q02), 0, 4))*0.6

	var avoidant float64
	if q03 == 4 {
		avoidant = Normalize(float64(q03), 0, 4)
	} else {
		avoidant = (1.0 - Normalize(float64(q03), 0, 4)) * 0.3
	}

	disorganized := 1.0 - Normalize(float64(q07), 0, 4)

	profile := AttachmentProfile{
		SecureScore:       percent(secure),
		AnxiousScore:      percent(anxious),
		AvoidantScore:     percent(avoidant),
		DisorganizedScore: percent(disorganized),
	}
	profile.Style = dominantStyle(profile)

	n := attachmentNarratives[profile.Style]
	profile.Description = n.description
	profile.Strengths = append([]string(nil), n.strengths...)
	profile.GrowthAreas = append([]string(nil), n.growthAreas...)
	return profile
}

// dominantStyle is the argmax over the styles in declaration order; the first
// declared style wins an exact tie.
func dominantStyle(p AttachmentProfile) AttachmentStyle {
	ranked := []struct {
		style AttachmentStyle
		score float64
	}{
		{StyleSecure, p.SecureScore},
		{StyleAnxious, p.AnxiousScore},
		{StyleAvoidant, p.AvoidantScore},
		{StyleDisorganized, p.DisorganizedScore},
	}
	best := ranked[0]
	for _, r := range ranked[1:] {
		if r.score > best.score {
			best = r
		}
	}
	return best.style
}
