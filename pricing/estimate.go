package pricing

import (
	"encoding/json"
	"fmt"

	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/telemetry"
)

// VehiclePrice is one row of the fleet pricing table: the vehicle's usage
// summary plus whatever the extractor recovered. CurrentPrice is nil when
// the model call failed or the response held no usable current_value; the
// display layer renders that as "not available", never as zero.
type VehiclePrice struct {
	Summary      telemetry.UsageSummary
	CurrentPrice *float64
	Values       PriceValues
}

// VehicleForecast is one vehicle's projected value curve for the comparison
// chart.
type VehicleForecast struct {
	VehicleID  string
	Curve      []ForecastPoint
	Confidence *float64
}

// PricingBreakdown is the full nested schema the pricing prompt requests.
// It only decodes when the model honored the JSON-only instruction; the
// pattern scan stays authoritative for the headline numbers.
type PricingBreakdown struct {
	CurrentValue          float64 `json:"current_value"`
	TechnicalHealthImpact struct {
		SafetyRatingAdjustment float64 `json:"safety_rating_adjustment"`
		ThermalManagement      float64 `json:"thermal_management"`
		ProtectionSystems      float64 `json:"protection_systems"`
	} `json:"technical_health_impact"`
	UsageImpact struct {
		BatteryResidualValue float64 `json:"battery_residual_value"`
		TemperatureExposure  float64 `json:"temperature_exposure"`
		StateOfHealth        float64 `json:"state_of_health"`
		AgeOfBattery         float64 `json:"age_of_battery"`
		FinalCapacity        float64 `json:"final_capacity"`
		MaintenanceQuality   float64 `json:"maintenance_quality"`
	} `json:"usage_impact"`
	MarketFactors struct {
		InsuranceRisk         float64 `json:"insurance_risk"`
		RegionalClimate       float64 `json:"regional_climate"`
		SupportInfrastructure float64 `json:"support_infrastructure"`
	} `json:"market_factors"`
	OverallHealthScore float64 `json:"overall_health_score"`
	SafetyRiskScore    float64 `json:"safety_risk_score"`
	ValueForecast      struct {
		OneMonth        float64 `json:"1_months"`
		ThreeMonths     float64 `json:"3_months"`
		SixMonths       float64 `json:"6_months"`
		TwelveMonths    float64 `json:"12_months"`
		ConfidenceLevel float64 `json:"confidence_level"`
	} `json:"value_forecast"`
}

// ParsePricingBreakdown attempts a strict decode of the full pricing schema.
// Failure is expected and non-fatal; callers fall back to the pattern scan.
func ParsePricingBreakdown(report string) (*PricingBreakdown, error) {
	payload := stripJSONFence(report)

	var breakdown PricingBreakdown
	if err := json.Unmarshal([]byte(payload), &breakdown); err != nil {
		return nil, fmt.Errorf("pricing breakdown not valid JSON: %w", err)
	}
	return &breakdown, nil
}
