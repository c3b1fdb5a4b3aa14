package app

import (
	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/pricing"
	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/telemetry"
)

// SessionState is the mutable interaction state a display collaborator owns:
// which vehicle is selected and any simulator overrides the user dialed in.
// It is passed by reference into presentation code; the pricing core itself
// never holds it.
type SessionState struct {
	SelectedVehicle string
	// Overrides maps summary field names to user-adjusted values. An entry
	// replaces the derived value when building prompts.
	Overrides map[string]float64
}

// NewSessionState creates an empty session.
func NewSessionState() *SessionState {
	return &SessionState{Overrides: make(map[string]float64)}
}

// Reset drops the overrides but keeps the selection.
func (s *SessionState) Reset() {
	s.Overrides = make(map[string]float64)
}

// Clear empties the whole session.
func (s *SessionState) Clear() {
	s.SelectedVehicle = ""
	s.Overrides = make(map[string]float64)
}

// Apply returns a copy of the summary with the session's overrides applied.
// Unknown override keys are ignored; fields without an override keep their
// derived value, including nil for channels the upload never had.
func (s *SessionState) Apply(summary telemetry.UsageSummary) telemetry.UsageSummary {
	out := summary
	for key, value := range s.Overrides {
		v := value
		switch key {
		case "mean_soh":
			out.MeanSOH = &v
		case "temperature_excursions":
			out.TemperatureExcursions = int(value)
		case "final_capacity":
			out.FinalCapacity = &v
		case "age_of_vehicle":
			out.AgeOfVehicle = &v
		case "num_cycles":
			cycles := int(value)
			out.NumCycles = &cycles
		case "max_voltage":
			out.MaxVoltage = &v
		case "min_voltage":
			out.MinVoltage = &v
		}
	}
	return out
}

// BatteryStats is the selected vehicle's assessment snapshot for the metric
// cards: health, capacity, cycles, and current value. Nil fields render as
// "not available".
type BatteryStats struct {
	VehicleID     string
	StateOfHealth *float64
	Capacity      *float64
	CycleCount    *int
	CurrentValue  *float64
}

// StatsFor builds the display snapshot from one pricing row.
func StatsFor(price pricing.VehiclePrice) BatteryStats {
	return BatteryStats{
		VehicleID:     price.Summary.VehicleID,
		StateOfHealth: price.Summary.MeanSOH,
		Capacity:      price.Summary.FinalCapacity,
		CycleCount:    price.Summary.NumCycles,
		CurrentValue:  price.CurrentPrice,
	}
}
