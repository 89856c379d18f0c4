package scoring

import "math"

// Normalize rescales value from [min, max] onto [0, 1], clamping values that
// fall outside the domain. A degenerate domain (min == max) carries no
// information and yields the neutral 0.5.
func Normalize(value, min, max float64) float64 {
	if max == min {
		return 0.5
	}
	return clamp((value-min)/(max-min), 0, 1)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// round1 rounds to one decimal place, the precision every reported score uses.
// Ties go to the even digit: DAS totals move in steps of 1.25, so exact
// halves are common and 6.25 must report as 6.2.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

// percent converts a unit-interval score to a rounded 0–100 score.
func percent(v float64) float64 {
	return round1(v * 100)
}
