package scoring

import (
	"fmt"
	"strconv"
)

// horsemanThreshold is the score above which a Horseman counts as present.
const horsemanThreshold = 0.6

// positiveRatios maps the gott_05 answer (0–4) to an approximate ratio of
// positive to negative interactions.
var positiveRatios = [5]float64{0.5, 1.0, 2.0, 3.5, 6.0}

const (
	TrajectoryThriving     = "Thriving"
	TrajectoryStable       = "Stable with areas of growth"
	TrajectoryAtRisk       = "At risk — intervention recommended"
	TrajectoryHighDistress = "High distress — support needed"
)

// GottmanAnalysis scores are on a 0–100 scale except PositiveRatio, which is
// the ratio itself (e.g. 3.5 for 3.5:1).
type GottmanAnalysis struct {
	OverallHealth          float64  `json:"overall_health"`
	CriticismScore         float64  `json:"criticism_score"`
	DefensivenessScore     float64  `json:"defensiveness_score"`
	ContemptScore          float64  `json:"contempt_score"`
	StonewallingScore      float64  `json:"stonewalling_score"`
	PositiveRatio          float64  `json:"positive_ratio"`
	HorsemenPresent        []string `json:"horsemen_present"`
	RelationshipTrajectory string   `json:"relationship_trajectory"`
	Description            string   `json:"description"`
}

// AnalyzeGottman scores the communication items gott_01..gott_07. Every
// missing item defaults to the scale midpoint (2).
func AnalyzeGottman(answers AnswerSet) GottmanAnalysis {
	criticism := 1.0 - Normalize(float64(answers.Value("gott_01", 2)), 0, 4)
	defensiveness := 1.0 - Normalize(float64(answers.Value("gott_02", 2)), 0, 4)
	contempt := 1.0 - Normalize(float64(answers.Value("gott_03", 2)), 0, 4)
	stonewalling := 1.0 - Normalize(float64(answers.Value("gott_04", 2)), 0, 4)
	ratioRaw := answers.Value("gott_05", 2)
	repair := Normalize(float64(answers.Value("gott_06", 2)), 0, 4)
	sharedMeaning := Normalize(float64(answers.Value("gott_07", 2)), 0, 4)

	horsemen := []string{}
	for _, h := range []struct {
		name  string
		score float64
	}{
		{"Criticism", criticism},
		{"Defensiveness", defensiveness},
		{"Contempt", contempt},
		{"Stonewalling", stonewalling},
	} {
		if h.score > horsemanThreshold {
			horsemen = append(horsemen, h.name)
		}
	}

	ratio := positiveRatio(ratioRaw)
	health := ((1.0-criticism)*0.20 +
		(1.0-defensiveness)*0.15 +
		(1.0-contempt)*0.25 +
		(1.0-stonewalling)*0.15 +
		Normalize(float64(ratioRaw), 0, 4)*0.15 +
		repair*0.05 +
		sharedMeaning*0.05) * 100

	trajectory := gottmanTrajectory(health)

	return GottmanAnalysis{
		OverallHealth:          round1(health),
		CriticismScore:         percent(criticism),
		DefensivenessScore:     percent(defensiveness),
		ContemptScore:          percent(contempt),
		StonewallingScore:      percent(stonewalling),
		PositiveRatio:          ratio,
		HorsemenPresent:        horsemen,
		RelationshipTrajectory: trajectory,
		Description: fmt.Sprintf(
			"Your relationship currently shows %d of the Four Horsemen patterns. The positive interaction ratio is approximately %s:1 (Gottman's ideal is 5:1). Your relationship trajectory is: %s.",
			len(horsemen), formatRatio(ratio), trajectory),
	}
}

// positiveRatio looks the raw answer up directly; values off the 0–4 scale are
// pinned to the nearest end so the lookup cannot fail.
func positiveRatio(raw int) float64 {
	if raw < 0 {
		raw = 0
	}
	if raw >= len(positiveRatios) {
		raw = len(positiveRatios) - 1
	}
	return positiveRatios[raw]
}

func gottmanTrajectory(health float64) string {
	switch {
	case health >= 75:
		return TrajectoryThriving
	case health >= 55:
		return TrajectoryStable
	case health >= 35:
		return TrajectoryAtRisk
	default:
		return TrajectoryHighDistress
	}
}

func formatRatio(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}
