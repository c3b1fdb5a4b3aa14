package app

import (
	"testing"

	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/pricing"
	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/telemetry"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestSessionApplyOverrides(t *testing.T) {
	s := NewSessionState()
	s.Overrides["mean_soh"] = 65.5
	s.Overrides["temperature_excursions"] = 7
	s.Overrides["num_cycles"] = 2000

	summary := telemetry.UsageSummary{
		VehicleID:             "EV-A",
		MeanSOH:               floatPtr(80),
		TemperatureExcursions: 2,
		FinalCapacity:         floatPtr(99.24),
	}
	out := s.Apply(summary)

	if out.MeanSOH == nil || *out.MeanSOH != 65.5 {
		t.Errorf("expected SOH override 65.5, got %v", out.MeanSOH)
	}
	if out.TemperatureExcursions != 7 {
		t.Errorf("expected excursion override 7, got %d", out.TemperatureExcursions)
	}
	if out.NumCycles == nil || *out.NumCycles != 2000 {
		t.Errorf("expected cycle override 2000, got %v", out.NumCycles)
	}
	if out.FinalCapacity == nil || *out.FinalCapacity != 99.24 {
		t.Errorf("non-overridden field must keep its derived value, got %v", out.FinalCapacity)
	}

	// The input summary is untouched.
	if *summary.MeanSOH != 80 || summary.TemperatureExcursions != 2 {
		t.Error("Apply must not mutate its input")
	}
}

func TestSessionApplyKeepsNil(t *testing.T) {
	s := NewSessionState()
	s.Overrides["mean_soh"] = 70
	s.Overrides["unknown_key"] = 1

	out := s.Apply(telemetry.UsageSummary{VehicleID: "EV-B"})
	if out.MeanSOH == nil || *out.MeanSOH != 70 {
		t.Errorf("expected SOH override, got %v", out.MeanSOH)
	}
	if out.FinalCapacity != nil || out.NumCycles != nil {
		t.Error("fields without overrides must stay nil, not become zero")
	}
}

func TestSessionClear(t *testing.T) {
	s := NewSessionState()
	s.SelectedVehicle = "EV-A"
	s.Overrides["mean_soh"] = 70

	s.Clear()
	if s.SelectedVehicle != "" || len(s.Overrides) != 0 {
		t.Errorf("Clear must drop selection and overrides, got %+v", s)
	}
}

func TestStatsFor(t *testing.T) {
	price := pricing.VehiclePrice{
		Summary: telemetry.UsageSummary{
			VehicleID:     "EV-A",
			MeanSOH:       floatPtr(72.71),
			FinalCapacity: floatPtr(99.24),
			NumCycles:     intPtr(1174),
		},
		CurrentPrice: floatPtr(145000),
	}

	stats := StatsFor(price)
	if stats.VehicleID != "EV-A" {
		t.Errorf("unexpected vehicle %s", stats.VehicleID)
	}
	if stats.StateOfHealth == nil || *stats.StateOfHealth != 72.71 {
		t.Errorf("unexpected health %v", stats.StateOfHealth)
	}
	if stats.CurrentValue == nil || *stats.CurrentValue != 145000 {
		t.Errorf("unexpected value %v", stats.CurrentValue)
	}

	// A failed pricing row degrades to nil value, never zero.
	failed := pricing.VehiclePrice{Summary: telemetry.UsageSummary{VehicleID: "EV-B"}}
	if got := StatsFor(failed); got.CurrentValue != nil {
		t.Errorf("expected nil current value, got %v", got.CurrentValue)
	}
}
