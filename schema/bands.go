package schema

// CurvePoint is one control point of a piecewise-linear scoring curve.
// Points must be sorted by X ascending; Y is the score at that breakpoint.
type CurvePoint struct {
	X float64
	Y float64
}

// Range is an inclusive normal band for a metric. A nil bound means the band
// is open on that side.
type Range struct {
	Low  *float64
	High *float64
}

// Contains reports whether v lies inside the band.
func (r Range) Contains(v float64) bool {
	if r.Low != nil && v < *r.Low {
		return false
	}
	if r.High != nil && v > *r.High {
		return false
	}
	return true
}

// Bounded reports whether the band constrains at least one side.
func (r Range) Bounded() bool {
	return r.Low != nil || r.High != nil
}

func f(v float64) *float64 { return &v }

// NormalRanges holds the clinically normal band per metric, used for
// compliance rates and consecutive-abnormal runs. Bands are tuned for an
// elderly population.
var NormalRanges = map[string]Range{
	MetricSystolic:     {Low: f(90), High: f(139)},
	MetricDiastolic:    {Low: f(60), High: f(89)},
	MetricFastingGluc:  {Low: f(4.4), High: f(6.1)},
	MetricPostprandial: {Low: f(4.4), High: f(7.8)},
	MetricHeartRate:    {Low: f(60), High: f(100)},
	MetricSpO2:         {Low: f(93)},
	MetricTC:           {High: f(5.2)},
	MetricLDL:          {High: f(3.4)},
	MetricHDL:          {Low: f(1.0)},
	MetricTG:           {High: f(1.7)},
	MetricSleepHours:   {Low: f(6), High: f(9.5)},
	MetricSteps:        {Low: f(5000)},
}

// NormalRange returns the normal band for a metric and whether one is defined.
func NormalRange(metric string) (Range, bool) {
	r, ok := NormalRanges[metric]
	return r, ok
}

// Level-risk curves (0-40). Piecewise-linear interpolation between clinical
// band edges keeps the score continuous and monotone, so a one-unit move near
// a boundary never jumps a full grade.
var (
	// Blood pressure: normal <120/80, elevated to 139/89, stage1 to 159/99,
	// stage2 to 179/109, stage3 beyond.
	SystolicRiskCurve = []CurvePoint{
		{90, 0}, {120, 8}, {140, 20}, {160, 32}, {180, 40},
	}
	DiastolicRiskCurve = []CurvePoint{
		{60, 0}, {80, 8}, {90, 20}, {100, 32}, {110, 40},
	}

	// Glucose (mmol/L): normal <6.1 fasting / <7.8 postprandial, impaired to
	// 7.0 / 11.1, diabetic beyond.
	FastingGlucoseRiskCurve = []CurvePoint{
		{4.4, 0}, {6.1, 10}, {7.0, 26}, {9.0, 38}, {11.1, 40},
	}
	PostprandialRiskCurve = []CurvePoint{
		{5.0, 0}, {7.8, 10}, {11.1, 26}, {13.9, 38}, {16.7, 40},
	}
)

// Level-control curves (0-30, monotone decreasing): smoothed distance from
// the ideal band, contributing to the control-quality score.
var (
	SystolicControlCurve = []CurvePoint{
		{90, 30}, {120, 28}, {140, 15}, {160, 5}, {180, 0},
	}
	DiastolicControlCurve = []CurvePoint{
		{60, 30}, {80, 28}, {90, 15}, {100, 5}, {110, 0},
	}
	FastingGlucoseControlCurve = []CurvePoint{
		{4.4, 30}, {6.1, 24}, {7.0, 12}, {9.0, 3}, {11.1, 0},
	}
	PostprandialControlCurve = []CurvePoint{
		{5.0, 30}, {7.8, 24}, {11.1, 12}, {13.9, 3}, {16.7, 0},
	}
)

// Lipid risk curves. The four lipid fractions are classified independently
// and summed into one dyslipidemia risk score; the curve maxima encode the
// per-fraction weight (TC 30, LDL 35, HDL 15, TG 20).
var (
	TCRiskCurve = []CurvePoint{
		{3.1, 0}, {5.2, 6}, {6.2, 20}, {7.8, 30},
	}
	LDLRiskCurve = []CurvePoint{
		{1.8, 0}, {3.4, 8}, {4.1, 22}, {5.7, 35},
	}
	// HDL is protective: risk decreases as HDL rises.
	HDLRiskCurve = []CurvePoint{
		{0.6, 15}, {1.0, 8}, {1.3, 2}, {1.6, 0},
	}
	TGRiskCurve = []CurvePoint{
		{0.8, 0}, {1.7, 4}, {2.3, 12}, {5.6, 20},
	}
)

// Volatility curves keyed on the coefficient of variation.
var (
	// StabilityCurve contributes to control quality (0-30, decreasing in cv).
	StabilityCurve = []CurvePoint{
		{0.00, 30}, {0.05, 28}, {0.10, 22}, {0.15, 12}, {0.25, 4}, {0.40, 0},
	}
	// VolatilityRiskCurve contributes to risk (0-20, increasing in cv).
	VolatilityRiskCurve = []CurvePoint{
		{0.05, 0}, {0.10, 5}, {0.15, 10}, {0.25, 16}, {0.40, 20},
	}
)

// DeviationRiskCurve maps |mean - baseline mean| in baseline standard
// deviations onto a 0-15 risk contribution. Applied only when a usable
// baseline is supplied.
var DeviationRiskCurve = []CurvePoint{
	{0.5, 0}, {1.0, 4}, {2.0, 10}, {3.0, 15},
}

// BaselineDeviationNoteThreshold is the deviation (in baseline standard
// deviations) beyond which a key finding is emitted.
const BaselineDeviationNoteThreshold = 1.5

// GradeBP returns the clinical grade label for a blood pressure reading pair.
func GradeBP(systolic, diastolic float64) string {
	grade := func(v float64, edges [3]float64) int {
		switch {
		case v >= edges[2]:
			return 3
		case v >= edges[1]:
			return 2
		case v >= edges[0]:
			return 1
		default:
			return 0
		}
	}
	g := grade(systolic, [3]float64{120, 140, 160})
	if dg := grade(diastolic, [3]float64{80, 90, 100}); dg > g {
		g = dg
	}
	switch g {
	case 3:
		return "stage 2-3 hypertension range"
	case 2:
		return "stage 1 hypertension range"
	case 1:
		return "elevated"
	default:
		return "normal"
	}
}

// GradeGlucose returns the clinical grade label for a fasting glucose mean.
func GradeGlucose(fasting float64) string {
	switch {
	case fasting >= 7.0:
		return "diabetic range"
	case fasting >= 6.1:
		return "impaired fasting glucose"
	default:
		return "normal"
	}
}

// GradeLipid returns the clinical grade label for a lipid fraction mean.
func GradeLipid(metric string, v float64) string {
	switch metric {
	case MetricTC:
		switch {
		case v >= 6.2:
			return "high"
		case v >= 5.2:
			return "borderline high"
		default:
			return "desirable"
		}
	case MetricLDL:
		switch {
		case v >= 4.1:
			return "high"
		case v >= 3.4:
			return "borderline high"
		default:
			return "desirable"
		}
	case MetricHDL:
		if v < 1.0 {
			return "low"
		}
		return "desirable"
	case MetricTG:
		switch {
		case v >= 2.3:
			return "high"
		case v >= 1.7:
			return "borderline high"
		default:
			return "desirable"
		}
	default:
		return "unknown"
	}
}
