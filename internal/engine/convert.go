package engine

import (
	"fmt"

	"github.com/gradefolio/gradefolio-api/internal/models"
)

const (
	// MethodLinear rescales proportionally between scales.
	MethodLinear = "linear"
	// MethodOfficial applies the fixed BIT Mesra conversion table.
	MethodOfficial = "official"
)

// officialBand is one breakpoint of the non-linear 10↔4 conversion table.
type officialBand struct {
	threshold float64
	value     float64
}

var official10To4 = []officialBand{
	{9.5, 4.0},
	{8.5, 3.7},
	{7.5, 3.3},
	{6.5, 3.0},
	{5.5, 2.7},
	{5.0, 2.0},
}

var official4To10 = []officialBand{
	{3.7, 9.0},
	{3.3, 8.0},
	{3.0, 7.0},
	{2.7, 6.0},
	{2.0, 5.5},
}

// Below the lowest official band the conversion degrades to a linear factor.
const (
	officialFloorFactor10To4 = 0.4
	officialFloorFactor4To10 = 2.5
)

// ConvertScale converts a GPA/CGPA value between the 4-point and 10-point
// scales. The official method is a fixed piecewise table defined only for
// 10↔4; same-scale requests pass the value through with an explanatory note.
func ConvertScale(value float64, fromScale, toScale int, method string) models.ConversionResult {
	result := models.ConversionResult{
		OriginalValue: value,
		FromScale:     fromScale,
		ToScale:       toScale,
		Method:        method,
	}

	if fromScale == toScale {
		result.ConvertedValue = value
		result.Formula = "Same scale - no conversion needed"
		return result
	}

	if method == MethodOfficial {
		bands := official10To4
		floor := officialFloorFactor10To4
		if fromScale == 4 {
			bands = official4To10
			floor = officialFloorFactor4To10
		}
		for _, band := range bands {
			if value >= band.threshold {
				result.ConvertedValue = band.value
				result.Formula = fmt.Sprintf("Official mapping: >= %.1f → %.1f", band.threshold, band.value)
				return result
			}
		}
		result.ConvertedValue = value * floor
		result.Formula = fmt.Sprintf("Official mapping: below table → %g × %.1f", value, floor)
		return result
	}

	result.ConvertedValue = value / float64(fromScale) * float64(toScale)
	result.Formula = fmt.Sprintf("Linear: (%g / %d) × %d", value, fromScale, toScale)
	return result
}
