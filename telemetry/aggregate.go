package telemetry

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Granularity selects the grouping period for bulk aggregation.
type Granularity int

const (
	Daily Granularity = iota
	Hourly
)

var aggStats = []string{"sum", "mean", "std", "min", "max"}

// AggTable is a finished aggregate table ready for CSV output: a header and
// one row of formatted cells per (vehicle, period) group. Cells for which no
// readings exist are empty, never zero.
type AggTable struct {
	Header []string
	Rows   [][]string
}

type groupKey struct {
	vehicleID string
	day       string
	hour      int // -1 for daily grouping
}

// Aggregate computes sum/mean/std/min/max for every channel of every
// parameter family, grouped per vehicle per day (or per hour). Column order
// follows the family split; aggregate columns that duplicate other
// statistics are dropped.
func Aggregate(table *Table, granularity Granularity) *AggTable {
	families := SplitFamilies(table.Channels)

	header := []string{ColumnVehicleID, "trip_day"}
	if granularity == Hourly {
		header = append(header, "trip_hour")
	}
	var aggColumns []string
	seen := make(map[string]bool)
	for _, fam := range families {
		for _, channel := range fam.Channels {
			for _, stat := range aggStats {
				name := channel + "_" + stat
				if droppedAggColumns[name] || seen[name] {
					continue
				}
				seen[name] = true
				aggColumns = append(aggColumns, name)
			}
		}
	}
	header = append(header, aggColumns...)

	groups := make(map[groupKey][]Record)
	for _, rec := range table.Records {
		key := groupKey{vehicleID: rec.VehicleID, day: rec.Timestamp.Format("2006-01-02"), hour: -1}
		if granularity == Hourly {
			key.hour = rec.Timestamp.Hour()
		}
		groups[key] = append(groups[key], rec)
	}

	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].vehicleID != keys[j].vehicleID {
			return keys[i].vehicleID < keys[j].vehicleID
		}
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		return keys[i].hour < keys[j].hour
	})

	agg := &AggTable{Header: header}
	for _, key := range keys {
		row := []string{key.vehicleID, key.day}
		if granularity == Hourly {
			row = append(row, strconv.Itoa(key.hour))
		}
		for _, column := range aggColumns {
			idx := strings.LastIndex(column, "_")
			channel, stat := column[:idx], column[idx+1:]
			row = append(row, formatStat(groups[key], channel, stat))
		}
		agg.Rows = append(agg.Rows, row)
	}
	return agg
}

func formatStat(records []Record, channel, stat string) string {
	values := make([]float64, 0, len(records))
	for _, rec := range records {
		if v, ok := rec.Channels[channel]; ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return ""
	}

	var result float64
	switch stat {
	case "sum":
		result = sum(values)
	case "mean":
		result = sum(values) / float64(len(values))
	case "std":
		// Sample standard deviation; undefined for one reading.
		if len(values) < 2 {
			return ""
		}
		result = sampleStd(values)
	case "min":
		result = values[0]
		for _, v := range values[1:] {
			if v < result {
				result = v
			}
		}
	case "max":
		result = values[0]
		for _, v := range values[1:] {
			if v > result {
				result = v
			}
		}
	}
	return strconv.FormatFloat(result, 'f', -1, 64)
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func sampleStd(values []float64) float64 {
	mean := sum(values) / float64(len(values))
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

// WriteCSV writes the aggregate table to path.
func (a *AggTable) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create aggregate file: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	sb.WriteString(strings.Join(a.Header, ","))
	sb.WriteByte('\n')
	for _, row := range a.Rows {
		sb.WriteString(strings.Join(row, ","))
		sb.WriteByte('\n')
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("write aggregate file: %w", err)
	}
	return nil
}

// WriteAggregates produces the daily and hourly aggregate CSVs for a source
// file, named daily_aggr_<source> and hourly_aggr_<source> under outDir.
func WriteAggregates(table *Table, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	daily := Aggregate(table, Daily)
	if err := daily.WriteCSV(filepath.Join(outDir, "daily_aggr_"+table.SourceName)); err != nil {
		return err
	}
	hourly := Aggregate(table, Hourly)
	if err := hourly.WriteCSV(filepath.Join(outDir, "hourly_aggr_"+table.SourceName)); err != nil {
		return err
	}
	return nil
}
