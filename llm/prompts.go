package llm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/telemetry"
)

// maxRepurposeProducts caps the option list requested from the model.
const maxRepurposeProducts = 5

// Prompt building is pure templating: the same spec and usage data always
// render byte-identical prompts. No network calls happen here.

// missingField is what a prompt shows for a summary field the upload did not
// contain. The model is told the reading is unavailable rather than being
// handed a fabricated zero.
const missingField = "not available"

func fmtOptFloat(v *float64) string {
	if v == nil {
		return missingField
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func fmtOptInt(v *int) string {
	if v == nil {
		return missingField
	}
	return strconv.Itoa(*v)
}

// BuildPricingPrompt renders the pricing-analysis prompt for one vehicle:
// the full static datasheet, the vehicle's usage history, market context and
// the exact nested JSON schema the response must follow. The closing format
// rules (JSON only, 1_month == 1_months, confidence in 0-100) are part of
// the extraction contract, not decoration.
func BuildPricingPrompt(spec StaticSpec, usage telemetry.UsageSummary) string {
	var sb strings.Builder
	sb.Grow(6144)

	sb.WriteString("Role: You are an expert Electric Vehicle battery pricing analyst specializing in Electra battery systems with deep knowledge of both Indian and global lithium-ion battery markets as of 2024-2025.\n\n")

	sb.WriteString("Technical Specifications:\n")
	sb.WriteString("1. Battery Pack Details:\n")
	sb.WriteString(fmt.Sprintf("    - Capacity: %g kWh\n", spec.Battery.CapacityKWh))
	sb.WriteString(fmt.Sprintf("    - Nominal Capacity: %d Ah\n", spec.Battery.NominalCapacityAh))
	sb.WriteString(fmt.Sprintf("    - Nominal Voltage: %g V\n", spec.Battery.NominalVoltage))
	sb.WriteString(fmt.Sprintf("    - Pack Configuration: %s\n", spec.Battery.PackConfig))
	sb.WriteString(fmt.Sprintf("    - IP Rating: %s\n", spec.Battery.IPRating))
	sb.WriteString(fmt.Sprintf("    - Depth of Discharge: %d%%\n", spec.Battery.DepthOfDischarge))
	sb.WriteString(fmt.Sprintf("    - Cooling System: %s\n\n", spec.Battery.CoolingType))

	sb.WriteString("2. Operating Parameters:\n")
	sb.WriteString(fmt.Sprintf("    - Charging Current (Continuous): %gC\n", spec.Operating.ChargeCurrentC))
	sb.WriteString(fmt.Sprintf("    - Discharge Current (Continuous): %gC\n", spec.Operating.DischargeCurrentC))
	sb.WriteString(fmt.Sprintf("    - Maximum Discharge Current: %gC (30 sec)\n", spec.Operating.MaxDischargeC))
	sb.WriteString(fmt.Sprintf("    - Voltage Range: %gV - %gV\n", spec.Operating.VoltageRange[0], spec.Operating.VoltageRange[1]))
	sb.WriteString("    - Temperature Ranges:\n")
	sb.WriteString(fmt.Sprintf("        * Charging: %d°C to %d°C\n", spec.Operating.TempRangeCharge[0], spec.Operating.TempRangeCharge[1]))
	sb.WriteString(fmt.Sprintf("        * Discharging: %d°C to %d°C\n", spec.Operating.TempRangeDischarge[0], spec.Operating.TempRangeDischarge[1]))
	sb.WriteString(fmt.Sprintf("        * Optimal: %d°C to %d°C\n\n", spec.Operating.OptimalTempRange[0], spec.Operating.OptimalTempRange[1]))

	sb.WriteString("3. Safety Status Assessment (Level 1-4, where 4 is critical):\n")
	sb.WriteString("    Thermal Stability:\n")
	sb.WriteString(fmt.Sprintf("    - Basic Stability: Level %d\n", spec.Safety.ThermalStability))
	sb.WriteString(fmt.Sprintf("    - Thermal Runway: Level %d\n\n", spec.Safety.ThermalRunway))
	sb.WriteString("    Mechanical Stability:\n")
	sb.WriteString(fmt.Sprintf("    - Nail Penetration: Level %d\n", spec.Safety.NailPenetration))
	sb.WriteString(fmt.Sprintf("    - Vibration Resistance: Level %d\n", spec.Safety.VibrationTest))
	sb.WriteString(fmt.Sprintf("    - Crush Resistance: Level %d\n\n", spec.Safety.CrushTest))
	sb.WriteString("    Protection Systems:\n")
	sb.WriteString(fmt.Sprintf("    - Overcharge Protection: Level %d\n", spec.Safety.Overcharge))
	sb.WriteString(fmt.Sprintf("    - Over-discharge Protection: Level %d\n", spec.Safety.OverDischarge))
	sb.WriteString(fmt.Sprintf("    - Short Circuit Protection: Level %d\n\n", spec.Safety.ShortCircuit))

	sb.WriteString("4. Usage History:\n")
	sb.WriteString(fmt.Sprintf("    - State of Health : %s\n", fmtOptFloat(usage.MeanSOH)))
	sb.WriteString(fmt.Sprintf("    - Temperature Excursions: %d\n", usage.TemperatureExcursions))
	sb.WriteString(fmt.Sprintf("    - Final Capacity (in Ah units): %s\n", fmtOptFloat(usage.FinalCapacity)))
	sb.WriteString(fmt.Sprintf("    - Age of battery operating (in kms): %s\n", fmtOptFloat(usage.AgeOfVehicle)))
	sb.WriteString(fmt.Sprintf("    - Cycle count : %s\n", fmtOptInt(usage.NumCycles)))
	sb.WriteString(fmt.Sprintf("    - Max Cell Voltage: %s\n", fmtOptFloat(usage.MaxVoltage)))
	sb.WriteString(fmt.Sprintf("    - Min Cell Voltage: %s\n\n", fmtOptFloat(usage.MinVoltage)))

	sb.WriteString("Premium features adding to the cost:\n")
	sb.WriteString(fmt.Sprintf("1. %s rating (+5-8%%)\n", spec.Battery.IPRating))
	sb.WriteString("2. Advanced protection systems:\n")
	sb.WriteString("    - Overcharge Protection\n")
	sb.WriteString("    - Short Circuit Protection\n")
	sb.WriteString(fmt.Sprintf("3. %s configuration with %d Ah nominal capacity\n", spec.Battery.PackConfig, spec.Battery.NominalCapacityAh))
	sb.WriteString(fmt.Sprintf("4. %d%% Depth of Discharge capability\n\n", spec.Battery.DepthOfDischarge))

	sb.WriteString("Market Context (2024-2025):\n")
	sb.WriteString("- Consider the cost of lithium-ion battery pack costs in India per kWh for automotive grade batteries\n")
	sb.WriteString("- Lithium carbonate prices are stabilizing globally, but local manufacturing costs in India may fluctuate due to currency volatility and geopolitical factors\n")
	sb.WriteString("- The growth of EV maintenance networks could help maintain residual value, mitigating sharper depreciation\n")
	sb.WriteString("- Rising electricity rates and grid stability issues could impact the long-term desirability of EV batteries, reducing demand and thus residual value\n")
	sb.WriteString("- Regional temperature patterns affecting battery life\n")
	sb.WriteString("- Regulatory compliance requirements\n")
	sb.WriteString("- Insurance risk assessments based on safety ratings\n\n")

	sb.WriteString("Task:\n")
	sb.WriteString("Generate a comprehensive price assessment in INR considering:\n")
	sb.WriteString("1. Technical health factors: safety test results, operating parameter deviations, thermal management effectiveness, protection system reliability.\n")
	sb.WriteString("2. Usage pattern impact: temperature exposure history, State of Health, age of battery, final capacity attained, maintenance record correlation, battery residual value.\n")
	sb.WriteString("3. Market adjustments: safety rating impact on insurance, regional climate, grid infrastructure quality, local maintenance capability.\n")
	sb.WriteString("4. Value Forecast over the next 12 months given 2025 market considerations:\n")
	sb.WriteString(fmt.Sprintf("    - Battery SOH is already at %s; a typical 1-2%% decline over six months can be expected, directly reducing resale value.\n", fmtOptFloat(usage.MeanSOH)))
	sb.WriteString(fmt.Sprintf("    - Given a %s cooling system and the temperature exposure history (%d excursions), heat-driven degradation is likely to persist.\n", strings.ToLower(spec.Battery.CoolingType), usage.TemperatureExcursions))
	sb.WriteString(fmt.Sprintf("    - Final capacity of %s Ah (against a nominal %d Ah) suggests further capacity degradation is imminent.\n\n", fmtOptFloat(usage.FinalCapacity), spec.Battery.NominalCapacityAh))

	sb.WriteString("Rules for the value_forecast field:\n")
	sb.WriteString("- Give the battery price INR value only in value_forecast, not the impact factor (+ or -).\n")
	sb.WriteString("- confidence_level must be a percentage between 0 and 100 only.\n")
	sb.WriteString("- Treat the keys 1_month and 1_months as the same key, 1_months (likewise for the other horizons).\n\n")

	sb.WriteString("Output Format (emit ONLY this JSON object, optionally fenced):\n")
	sb.WriteString(`{
    "current_value": <float>,
    "technical_health_impact": {
        "safety_rating_adjustment": <float>,
        "thermal_management": <float>,
        "protection_systems": <float>
    },
    "usage_impact": {
        "battery_residual_value": <float>,
        "temperature_exposure": <float>,
        "state_of_health": <float>,
        "age_of_battery": <float>,
        "final_capacity": <float>,
        "maintenance_quality": <float>
    },
    "market_factors": {
        "insurance_risk": <float>,
        "regional_climate": <float>,
        "support_infrastructure": <float>
    },
    "overall_health_score": <float>,
    "safety_risk_score": <float>,
    "value_forecast": {
        "1_months": <float>,
        "3_months": <float>,
        "6_months": <float>,
        "12_months": <float>,
        "confidence_level": <float>
    }
}`)

	return sb.String()
}

// BuildRepurposePrompt renders the repurposing-options prompt for one
// vehicle. It requests a flat JSON array of at most five product records so
// the strict parser can reject the whole payload on any malformation.
func BuildRepurposePrompt(usage telemetry.UsageSummary, currentPrice float64) string {
	var sb strings.Builder
	sb.Grow(2048)

	sb.WriteString("Create a comprehensive list of battery repurposing options based on the following EV battery assessment parameters:\n")
	sb.WriteString(fmt.Sprintf("- State of Health (SoH): %s %%\n", fmtOptFloat(usage.MeanSOH)))
	sb.WriteString(fmt.Sprintf("- Temperature Excursions: %d\n", usage.TemperatureExcursions))
	sb.WriteString(fmt.Sprintf("- Capacity: %s Ah\n", fmtOptFloat(usage.FinalCapacity)))
	sb.WriteString(fmt.Sprintf("- Vehicle Age: %s km\n", fmtOptFloat(usage.AgeOfVehicle)))
	sb.WriteString(fmt.Sprintf("- Cycle Count: %s\n", fmtOptInt(usage.NumCycles)))
	sb.WriteString(fmt.Sprintf("- Voltage Range: %s V to %s V\n", fmtOptFloat(usage.MinVoltage), fmtOptFloat(usage.MaxVoltage)))
	sb.WriteString(fmt.Sprintf("- Current Market Value: %.0f INR\n\n", currentPrice))

	sb.WriteString("For each repurposing option, provide:\n")
	sb.WriteString("1. Product Name: Repurposed product name\n")
	sb.WriteString("2. Description: Brief explanation of the use case in max 10 words\n")
	sb.WriteString("3. Capacity Specification: Expected capacity in the new application in kWh\n")
	sb.WriteString("4. Recovery Value: Estimated monetary value in INR\n")
	sb.WriteString("5. Recovery Percentage (%): Value compared to current battery price, multiplied by a factor of 100\n")
	sb.WriteString("6. Implementation Complexity: Easy/Medium/Complex rating\n")
	sb.WriteString("7. Market Demand: Assessment of current 2024-2025 Indian market interest\n")
	sb.WriteString("8. Technical Viability Score: 1-10 rating based on the battery parameters\n\n")

	sb.WriteString("Prioritize options that maximize value recovery while considering the battery's current condition.\n\n")

	sb.WriteString("Output Format:\n")
	sb.WriteString("- Respond with a structured JSON array only, fenced with ```json and ```.\n")
	sb.WriteString("- No text outside the fenced array; a single missing comma makes the whole response unusable.\n")
	sb.WriteString(fmt.Sprintf("- Limit the list to the top %d product use cases only.\n", maxRepurposeProducts))
	sb.WriteString("- Each array element must have exactly these fields:\n\n")
	sb.WriteString(`{
    "productName": <string>,
    "description": <string>,
    "capacitySpecification": <float>,
    "recoveryValue": <float>,
    "recoveryPercentage": <float>,
    "implementationComplexity": <string>,
    "marketDemand": <string>,
    "technicalViabilityScore": <float>
}`)

	return sb.String()
}

// MarketNewsPrompt asks for four price-focused fleet battery headlines.
// Purely informational output; nothing downstream parses it.
const MarketNewsPrompt = `### EV Fleet Battery Price Intelligence Prompt

OUTPUT FORMAT REQUIREMENTS:

* Generate 4 price-focused headlines started with * bullet mark specifically for EV fleet operations analysis.
* Show the bullet points only and nothing else. Do not display the cost component in the output.
* No detailed explanation of the headers, only the 4 bullet pointers.

Each headline must include:
* Specific ₹/kWh value
* Vehicle category impact
* Fleet size considerations
* Operational cost impact

Example headlines:
* "20kWh LFP Packs Hit ₹6,500/kWh for 1000+ Fleet Orders"
* "New BMS Cuts Light EV Battery Costs by ₹800/kWh"
* "5-Year Battery Warranty Now at ₹7,200/kWh All-Inclusive"
* "Fleet Battery Replacement Costs Drop to ₹5,900/kWh"

BATTERY COST METRICS (FLEET FOCUS)
Track & report:
* Cost per vehicle category:
  - Light Commercial EVs: ₹/kWh for 20-40kWh packs
  - Medium Commercial EVs: ₹/kWh for 40-80kWh packs
  - Heavy Commercial EVs: ₹/kWh for 80-150kWh packs
* Price alerts when crossing:
  - Base threshold: ₹8,000/kWh
  - Fleet bulk purchase: ₹7,000/kWh
  - Large fleet deal: ₹6,000/kWh

TOTAL COST INDICATORS
Monitor & report:
* Battery replacement costs
* Warranty terms changes
* Cycle life improvements
* Temperature degradation factors
* Charging cycle costs
* End-of-life value
* Recycling credit value

Keep headlines focused on:
* Price changes > 5%
* Warranty term changes
* Bulk purchase offers
* Total cost of ownership updates
* Regional price variations
* Chemistry-specific pricing
* Fleet-scale opportunities`

// BuildReportTablePrompt asks the model to re-render a full pricing report
// in tabular form for display.
func BuildReportTablePrompt(report string) string {
	return "Present this report in a better tabular form: " + report
}
