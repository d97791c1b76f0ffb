package sentiment

import (
	"fmt"
	"math"
)

const (
	minIntensity   = 0.3
	intensityRange = 0.7
	intensityCap   = 5
)

// LabelFor buckets a score by sign.
func LabelFor(score int) Label {
	switch {
	case score > 0:
		return LabelPositive
	case score < 0:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// Intensity maps |score| (capped at 5) linearly onto [0.3, 1.0].
func Intensity(score int) float64 {
	mag := math.Min(math.Abs(float64(score)), intensityCap)
	return minIntensity + intensityRange*mag/intensityCap
}

// Color renders a score as an rgba colour for charting: green for positive,
// red for negative, translucent gray for neutral.
func Color(score int) string {
	switch LabelFor(score) {
	case LabelPositive:
		return fmt.Sprintf("rgba(0, 128, 0, %s)", alpha(Intensity(score)))
	case LabelNegative:
		return fmt.Sprintf("rgba(255, 0, 0, %s)", alpha(Intensity(score)))
	default:
		return "rgba(128, 128, 128, 0.3)"
	}
}

func alpha(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*100)/100)
}
