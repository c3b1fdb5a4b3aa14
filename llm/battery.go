package llm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BatterySpec is the fixed pack datasheet. It is configuration, not derived
// from telemetry, and is constant across all vehicles in a fleet.
type BatterySpec struct {
	CapacityKWh       float64 `yaml:"capacity_kwh"`
	NominalCapacityAh int     `yaml:"nominal_capacity_ah"`
	NominalVoltage    float64 `yaml:"nominal_voltage"`
	PackConfig        string  `yaml:"pack_config"`
	IPRating          string  `yaml:"ip_rating"`
	DepthOfDischarge  int     `yaml:"depth_of_discharge"`
	CoolingType       string  `yaml:"cooling_type"`
}

// OperatingParams are the rated operating limits of the pack.
type OperatingParams struct {
	ChargeCurrentC     float64    `yaml:"charge_current_c"`
	DischargeCurrentC  float64    `yaml:"discharge_current_c"`
	MaxDischargeC      float64    `yaml:"max_discharge_c"`
	VoltageRange       [2]float64 `yaml:"voltage_range"`
	TempRangeCharge    [2]int     `yaml:"temp_range_charge"`
	TempRangeDischarge [2]int     `yaml:"temp_range_discharge"`
	OptimalTempRange   [2]int     `yaml:"optimal_temp_range"`
}

// SafetyStatus holds the safety-test assessment levels (1-4, 4 critical).
type SafetyStatus struct {
	ThermalStability int `yaml:"thermal_stability"`
	ThermalRunway    int `yaml:"thermal_runway"`
	NailPenetration  int `yaml:"nail_penetration"`
	VibrationTest    int `yaml:"vibration_test"`
	CrushTest        int `yaml:"crush_test"`
	Overcharge       int `yaml:"overcharge"`
	OverDischarge    int `yaml:"over_discharge"`
	ShortCircuit     int `yaml:"short_circuit"`
}

// StaticSpec bundles everything about the battery that does not change with
// usage. Prompts embed every field of it by name.
type StaticSpec struct {
	Battery   BatterySpec     `yaml:"battery"`
	Operating OperatingParams `yaml:"operating"`
	Safety    SafetyStatus    `yaml:"safety"`
}

// DefaultStaticSpec returns the Electra 16.5 kWh pack datasheet used when no
// spec file is configured.
func DefaultStaticSpec() StaticSpec {
	return StaticSpec{
		Battery: BatterySpec{
			CapacityKWh:       16.5,
			NominalCapacityAh: 326,
			NominalVoltage:    51.2,
			PackConfig:        "2P 16S",
			IPRating:          "IP67",
			DepthOfDischarge:  90,
			CoolingType:       "Passive",
		},
		Operating: OperatingParams{
			ChargeCurrentC:     0.5,
			DischargeCurrentC:  0.3,
			MaxDischargeC:      1.5,
			VoltageRange:       [2]float64{46.4, 58.4},
			TempRangeCharge:    [2]int{0, 45},
			TempRangeDischarge: [2]int{0, 50},
			OptimalTempRange:   [2]int{25, 35},
		},
		Safety: SafetyStatus{
			ThermalStability: 2,
			ThermalRunway:    4,
			NailPenetration:  4,
			VibrationTest:    2,
			CrushTest:        2,
			Overcharge:       4,
			OverDischarge:    2,
			ShortCircuit:     2,
		},
	}
}

// LoadStaticSpec reads a battery spec YAML file, falling back to the default
// datasheet when path is empty or the file does not exist.
func LoadStaticSpec(path string) (StaticSpec, error) {
	spec := DefaultStaticSpec()
	if path == "" {
		return spec, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return spec, nil
		}
		return spec, fmt.Errorf("read battery spec: %w", err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("parse battery spec: %w", err)
	}
	return spec, nil
}
