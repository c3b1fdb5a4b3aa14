package telemetry

import (
	"strings"
	"testing"
)

func rec(vehicle string, channels map[string]float64) Record {
	return Record{VehicleID: vehicle, Channels: channels}
}

func TestSummarizeOneRowPerVehicle(t *testing.T) {
	records := []Record{
		rec("UP16AB1001", map[string]float64{"SOH": 80}),
		rec("UP16AB1003", map[string]float64{"SOH": 90}),
		rec("UP16AB1001", map[string]float64{"SOH": 82}),
		rec("UP16AB1002", map[string]float64{"SOH": 85}),
		rec("UP16AB1003", map[string]float64{"SOH": 91}),
	}

	summaries := Summarize(records)
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	// Sorted by vehicle id, no duplicates.
	want := []string{"UP16AB1001", "UP16AB1002", "UP16AB1003"}
	for i, id := range want {
		if summaries[i].VehicleID != id {
			t.Errorf("summary %d: expected vehicle %s, got %s", i, id, summaries[i].VehicleID)
		}
	}
}

func TestSummarizeFields(t *testing.T) {
	records := []Record{
		rec("V1", map[string]float64{
			"SOH": 72.5, "MAX_CELL_T": 38.0, "ADP_AMPHR": 99.0,
			"ODO": 77000, "CYCLE": 1170, "MAX_CELL_V": 3.30, "MIN_CELL_V": 3.21,
		}),
		rec("V1", map[string]float64{
			"SOH": 72.92, "MAX_CELL_T": 41.5, "ADP_AMPHR": 99.48,
			"ODO": 77987, "CYCLE": 1174, "MAX_CELL_V": 3.36, "MIN_CELL_V": 3.19,
		}),
	}

	s := Summarize(records)[0]
	if s.MeanSOH == nil || *s.MeanSOH != 72.71 {
		t.Errorf("expected mean_soh 72.71, got %v", s.MeanSOH)
	}
	if s.TemperatureExcursions != 1 {
		t.Errorf("expected 1 excursion, got %d", s.TemperatureExcursions)
	}
	if s.FinalCapacity == nil || *s.FinalCapacity != 99.24 {
		t.Errorf("expected final_capacity 99.24, got %v", s.FinalCapacity)
	}
	if s.AgeOfVehicle == nil || *s.AgeOfVehicle != 77987 {
		t.Errorf("expected age_of_vehicle 77987, got %v", s.AgeOfVehicle)
	}
	if s.NumCycles == nil || *s.NumCycles != 1174 {
		t.Errorf("expected num_cycles 1174, got %v", s.NumCycles)
	}
	if s.MaxVoltage == nil || *s.MaxVoltage != 3.36 {
		t.Errorf("expected max_voltage 3.36, got %v", s.MaxVoltage)
	}
	if s.MinVoltage == nil || *s.MinVoltage != 3.19 {
		t.Errorf("expected min_voltage 3.19, got %v", s.MinVoltage)
	}
}

func TestExcursionThresholdStrict(t *testing.T) {
	tests := []struct {
		name     string
		temps    []float64
		expected int
	}{
		{"all below", []float64{35, 39.9, 40.0}, 0},
		{"exactly at threshold", []float64{40.0, 40.0}, 0},
		{"just above", []float64{40.1}, 1},
		{"mixed", []float64{39.0, 40.0, 40.1, 45.2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []Record
			for _, temp := range tt.temps {
				records = append(records, rec("V1", map[string]float64{"MAX_CELL_T": temp}))
			}
			s := Summarize(records)[0]
			if s.TemperatureExcursions != tt.expected {
				t.Errorf("expected %d excursions, got %d", tt.expected, s.TemperatureExcursions)
			}
		})
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	forward := []Record{
		rec("V1", map[string]float64{"SOH": 70, "ADP_AMPHR": 100}),
		rec("V1", map[string]float64{"SOH": 75, "ADP_AMPHR": 98}),
		rec("V1", map[string]float64{"SOH": 81, "ADP_AMPHR": 96}),
	}
	reversed := []Record{forward[2], forward[0], forward[1]}

	a := Summarize(forward)[0]
	b := Summarize(reversed)[0]
	if *a.MeanSOH != *b.MeanSOH {
		t.Errorf("mean_soh depends on row order: %v vs %v", *a.MeanSOH, *b.MeanSOH)
	}
	if *a.FinalCapacity != *b.FinalCapacity {
		t.Errorf("final_capacity depends on row order: %v vs %v", *a.FinalCapacity, *b.FinalCapacity)
	}
}

func TestSummarizeMissingChannelDegrades(t *testing.T) {
	// No voltage or cycle channels at all; batch must still succeed and the
	// fields must be nil, not zero.
	records := []Record{
		rec("V1", map[string]float64{"SOH": 88.4}),
		rec("V2", map[string]float64{"SOH": 79.1}),
	}

	summaries := Summarize(records)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.MeanSOH == nil {
			t.Errorf("%s: mean_soh should be present", s.VehicleID)
		}
		if s.MaxVoltage != nil || s.MinVoltage != nil {
			t.Errorf("%s: voltages should be nil when channel absent", s.VehicleID)
		}
		if s.NumCycles != nil {
			t.Errorf("%s: num_cycles should be nil when channel absent", s.VehicleID)
		}
		if s.TemperatureExcursions != 0 {
			t.Errorf("%s: excursions should be 0 when channel absent", s.VehicleID)
		}
	}
}

func TestSummarizeAllSOHMissing(t *testing.T) {
	records := []Record{
		rec("V1", map[string]float64{"CYCLE": 100}),
	}
	s := Summarize(records)[0]
	if s.MeanSOH != nil {
		t.Errorf("expected nil mean_soh when no SOH readings, got %v", *s.MeanSOH)
	}
}

func TestLoadCSVVehicleColumn(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr bool
		rows    int
	}{
		{
			name: "Topic column",
			csv:  "Topic,createdAt,SOH\nV1,2024-05-01 10:00:00,80\nV2,2024-05-01 10:00:00,75\n",
			rows: 2,
		},
		{
			name: "vehicle_number column",
			csv:  "vehicle_number,createdAt,SOH\nV1,2024-05-01 10:00:00,80\n",
			rows: 1,
		},
		{
			name:    "no identifier column",
			csv:     "device,createdAt,SOH\nX,2024-05-01 10:00:00,80\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := LoadCSV(strings.NewReader(tt.csv))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for missing vehicle column")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(table.Records) != tt.rows {
				t.Errorf("expected %d records, got %d", tt.rows, len(table.Records))
			}
		})
	}
}

func TestLoadCSVUnparseableCellAbsent(t *testing.T) {
	csv := "Topic,createdAt,SOH,CYCLE\nV1,2024-05-01 10:00:00,,1170\n"
	table, err := LoadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := table.Records[0].Channels["SOH"]; ok {
		t.Error("empty cell should not produce a channel reading")
	}
	if v := table.Records[0].Channels["CYCLE"]; v != 1170 {
		t.Errorf("expected CYCLE 1170, got %v", v)
	}
}
