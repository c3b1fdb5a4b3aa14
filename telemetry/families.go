package telemetry

import (
	"sort"
	"strings"
)

// Parameter families group channel columns for bulk aggregation. Downstream
// consumers depend on the exact membership rules and output column names, so
// the matching here must stay in sync with the fleet export schema.
//
//	OCV:         column name ends in "OCV"
//	Voltage:     column name ends in "_V" or contains "DCV"
//	Temperature: column name contains "CELL_T"
//	Resistance:  column name ends in "RI"
//	Health:      fixed list below
var healthChannels = []string{
	"RSOC", "CYCLE", "SOH", "PDOD", "DCA", "DCV", "DCL", "CCL", "BAL_AL", "ODO", "ADP_AMPHR",
}

// voltageExcluded are pack-level duplicates of the per-cell extremes and are
// not aggregated in the voltage family.
var voltageExcluded = map[string]bool{
	"MAX_V_CELL": true,
	"MIN_V_CELL": true,
}

// droppedAggColumns are aggregate output columns that duplicate information
// already carried by another statistic (summing a max, averaging a min) and
// are removed from the final tables.
var droppedAggColumns = map[string]bool{
	"MIN_CELL_V_sum": true, "MIN_CELL_V_mean": true,
	"MAX_CELL_V_sum": true, "MAX_CELL_V_mean": true,
	"MAX_CELL_T_sum": true, "MIN_CELL_T_sum": true,
	"MAX_CELL_T_mean": true, "MIN_CELL_T_mean": true,
	"BAL_AL_mean": true, "BAL_AL_std": true, "BAL_AL_min": true, "BAL_AL_sum": true,
	"ADP_AMPHR_sum": true, "CCL_sum": true, "DCL_sum": true, "DCV_sum": true, "DCA_sum": true,
}

// Family is a named group of channel columns aggregated together.
type Family struct {
	Name     string
	Channels []string
}

// SplitFamilies assigns the given channel columns to the five parameter
// families. Pattern-matched families are sorted by name; the health family
// keeps its fixed order, filtered to the channels actually present.
func SplitFamilies(channels []string) []Family {
	var ocv, voltage, temperature, resistance []string
	present := make(map[string]bool, len(channels))

	for _, name := range channels {
		present[name] = true
		if strings.HasSuffix(name, "OCV") {
			ocv = append(ocv, name)
		}
		if (strings.HasSuffix(name, "_V") || strings.Contains(name, "DCV")) && !voltageExcluded[name] {
			voltage = append(voltage, name)
		}
		if strings.Contains(name, "CELL_T") {
			temperature = append(temperature, name)
		}
		if strings.HasSuffix(name, "RI") {
			resistance = append(resistance, name)
		}
	}
	sort.Strings(ocv)
	sort.Strings(voltage)
	sort.Strings(temperature)
	sort.Strings(resistance)

	var health []string
	for _, name := range healthChannels {
		if present[name] {
			health = append(health, name)
		}
	}

	return []Family{
		{Name: "ocv", Channels: ocv},
		{Name: "voltage", Channels: voltage},
		{Name: "resistance", Channels: resistance},
		{Name: "temperature", Channels: temperature},
		{Name: "health", Channels: health},
	}
}
