package telemetry

import (
	"math"
	"sort"
)

// Channel names consumed by the usage summary.
const (
	ChannelSOH      = "SOH"
	ChannelMaxCellT = "MAX_CELL_T"
	ChannelCapacity = "ADP_AMPHR"
	ChannelOdometer = "ODO"
	ChannelCycle    = "CYCLE"
	ChannelMaxCellV = "MAX_CELL_V"
	ChannelMinCellV = "MIN_CELL_V"
)

// TempExcursionThreshold is the cell temperature above which a reading
// counts as an excursion. Strictly greater-than; 40.0 exactly does not count.
const TempExcursionThreshold = 40.0

// UsageSummary is the lifetime statistical summary for one vehicle.
// Nil pointer fields mean the channel was absent from the upload; zero is a
// legitimate reading for some channels so absence is never coerced to it.
type UsageSummary struct {
	VehicleID             string
	MeanSOH               *float64
	TemperatureExcursions int
	FinalCapacity         *float64
	AgeOfVehicle          *float64
	NumCycles             *int
	MaxVoltage            *float64
	MinVoltage            *float64
}

// Summarize reduces telemetry rows to exactly one UsageSummary per distinct
// vehicle, sorted by vehicle identifier. Rows are assumed to carry a valid
// identifier (the loader rejects files without one); a missing channel
// degrades that field only, never the batch.
func Summarize(records []Record) []UsageSummary {
	byVehicle := make(map[string][]Record)
	for _, rec := range records {
		byVehicle[rec.VehicleID] = append(byVehicle[rec.VehicleID], rec)
	}

	vehicles := make([]string, 0, len(byVehicle))
	for id := range byVehicle {
		vehicles = append(vehicles, id)
	}
	sort.Strings(vehicles)

	summaries := make([]UsageSummary, 0, len(vehicles))
	for _, id := range vehicles {
		summaries = append(summaries, summarizeVehicle(id, byVehicle[id]))
	}
	return summaries
}

func summarizeVehicle(id string, records []Record) UsageSummary {
	s := UsageSummary{VehicleID: id}

	if mean, ok := channelMean(records, ChannelSOH); ok {
		s.MeanSOH = floatPtr(round2(mean))
	}
	for _, rec := range records {
		if t, ok := rec.Channels[ChannelMaxCellT]; ok && t > TempExcursionThreshold {
			s.TemperatureExcursions++
		}
	}
	if mean, ok := channelMean(records, ChannelCapacity); ok {
		s.FinalCapacity = floatPtr(round2(mean))
	}
	if max, ok := channelMax(records, ChannelOdometer); ok {
		s.AgeOfVehicle = floatPtr(max)
	}
	if max, ok := channelMax(records, ChannelCycle); ok {
		cycles := int(max)
		s.NumCycles = &cycles
	}
	if max, ok := channelMax(records, ChannelMaxCellV); ok {
		s.MaxVoltage = floatPtr(max)
	}
	if min, ok := channelMin(records, ChannelMinCellV); ok {
		s.MinVoltage = floatPtr(min)
	}
	return s
}

func channelMean(records []Record, channel string) (float64, bool) {
	var sum float64
	var n int
	for _, rec := range records {
		if v, ok := rec.Channels[channel]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func channelMax(records []Record, channel string) (float64, bool) {
	max := math.Inf(-1)
	found := false
	for _, rec := range records {
		if v, ok := rec.Channels[channel]; ok {
			found = true
			if v > max {
				max = v
			}
		}
	}
	return max, found
}

func channelMin(records []Record, channel string) (float64, bool) {
	min := math.Inf(1)
	found := false
	for _, rec := range records {
		if v, ok := rec.Channels[channel]; ok {
			found = true
			if v < min {
				min = v
			}
		}
	}
	return min, found
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func floatPtr(v float64) *float64 {
	return &v
}
