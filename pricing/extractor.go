package pricing

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Canonical keys recovered by the pattern scan.
const (
	KeyCurrentValue    = "current_value"
	KeyOneMonth        = "1_months"
	KeyThreeMonths     = "3_months"
	KeySixMonths       = "6_months"
	KeyTwelveMonths    = "12_months"
	KeyConfidenceLevel = "confidence_level"
)

// PriceValues holds the numeric fields recovered from a pricing response,
// keyed by canonical name. json.Number keeps the lexical form, so whether a
// value was an integer or a float in the response is preserved. Keys the
// response never mentioned are absent; callers must treat absent horizons as
// unknown, not zero.
type PriceValues map[string]json.Number

// The scan does not require the response to be valid JSON: each key has an
// independent pattern, so numbers buried in prose are still recovered.
// Singular horizon spellings ("1_month") are folded into the plural key.
var priceKeyPatterns = []struct {
	key string
	re  *regexp.Regexp
}{
	{KeyCurrentValue, regexp.MustCompile(`"current_value"\s*:\s*([0-9]+(?:\.[0-9]+)?)`)},
	{KeyOneMonth, regexp.MustCompile(`"1_months?"\s*:\s*([0-9]+(?:\.[0-9]+)?)`)},
	{KeyThreeMonths, regexp.MustCompile(`"3_months?"\s*:\s*([0-9]+(?:\.[0-9]+)?)`)},
	{KeySixMonths, regexp.MustCompile(`"6_months?"\s*:\s*([0-9]+(?:\.[0-9]+)?)`)},
	{KeyTwelveMonths, regexp.MustCompile(`"12_months?"\s*:\s*([0-9]+(?:\.[0-9]+)?)`)},
	{KeyConfidenceLevel, regexp.MustCompile(`"confidence_level"\s*:\s*([0-9]+(?:\.[0-9]+)?)`)},
}

// ExtractPriceValues scans a raw model response for pricing fields. It never
// fails: an unusable response simply yields an empty map.
func ExtractPriceValues(report string) PriceValues {
	values := make(PriceValues)
	for _, p := range priceKeyPatterns {
		if m := p.re.FindStringSubmatch(report); m != nil {
			values[p.key] = json.Number(m[1])
		}
	}
	return values
}

// Float returns the value for key as a float64.
func (pv PriceValues) Float(key string) (float64, bool) {
	n, ok := pv[key]
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsInt reports whether the recovered token for key had no decimal point.
func (pv PriceValues) IsInt(key string) bool {
	n, ok := pv[key]
	return ok && !strings.Contains(n.String(), ".")
}

// ForecastPoint is one step of the display curve. Value is nil for horizons
// the response did not mention; forward-filling for charting is the
// presentation layer's call, not done here.
type ForecastPoint struct {
	Label string
	Value *float64
}

var forecastOrder = []struct {
	key   string
	label string
}{
	{KeyCurrentValue, "Current Value"},
	{KeyOneMonth, "1 Months"},
	{KeyThreeMonths, "3 Months"},
	{KeySixMonths, "6 Months"},
	{KeyTwelveMonths, "12 Months"},
}

// ForecastCurve orders the recovered values into the fixed display sequence.
func (pv PriceValues) ForecastCurve() []ForecastPoint {
	curve := make([]ForecastPoint, 0, len(forecastOrder))
	for _, step := range forecastOrder {
		point := ForecastPoint{Label: step.label}
		if v, ok := pv.Float(step.key); ok {
			point.Value = &v
		}
		curve = append(curve, point)
	}
	return curve
}

// ForwardFilled returns the curve values with gaps carried forward from the
// last known value, the shape chart collaborators plot. Leading gaps stay nil.
func ForwardFilled(curve []ForecastPoint) []*float64 {
	filled := make([]*float64, len(curve))
	var last *float64
	for i, point := range curve {
		if point.Value != nil {
			last = point.Value
		}
		filled[i] = last
	}
	return filled
}
