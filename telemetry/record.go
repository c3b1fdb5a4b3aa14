package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Column names recognized as the vehicle identifier. Source exports use
// either spelling depending on the fleet collector version.
const (
	ColumnTopic     = "Topic"
	ColumnVehicleID = "vehicle_number"
	ColumnCreatedAt = "createdAt"
)

// timestampLayouts lists the formats seen in fleet CSV exports.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
}

// Record is a single telemetry row for one vehicle at one instant.
// Channels holds only the numeric readings that were actually present;
// an absent or unparseable cell simply has no map entry.
type Record struct {
	VehicleID string
	Timestamp time.Time
	Channels  map[string]float64
}

// Table is an uploaded telemetry file: its rows plus the numeric channel
// columns in file order (identifier and timestamp columns excluded).
type Table struct {
	SourceName string
	Records    []Record
	Channels   []string
}

// ErrNoVehicleColumn is returned when neither identifier column exists.
// This is fatal for the whole file: without a grouping key no per-vehicle
// aggregation is possible.
var ErrNoVehicleColumn = fmt.Errorf("telemetry: no %q or %q column in input", ColumnTopic, ColumnVehicleID)

// LoadCSVFile reads a telemetry CSV from disk.
func LoadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open telemetry file: %w", err)
	}
	defer f.Close()

	table, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	table.SourceName = baseName(path)
	return table, nil
}

// LoadCSV parses telemetry rows from r. The header must contain a vehicle
// identifier column (Topic or vehicle_number); a missing single channel is
// not an error, the corresponding readings are just absent.
func LoadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idIdx := -1
	tsIdx := -1
	for i, name := range header {
		switch name {
		case ColumnTopic, ColumnVehicleID:
			if idIdx < 0 {
				idIdx = i
			}
		case ColumnCreatedAt:
			tsIdx = i
		}
	}
	if idIdx < 0 {
		return nil, ErrNoVehicleColumn
	}

	table := &Table{}
	for i, name := range header {
		if i == idIdx || i == tsIdx {
			continue
		}
		table.Channels = append(table.Channels, name)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if idIdx >= len(row) || row[idIdx] == "" {
			continue
		}

		rec := Record{
			VehicleID: row[idIdx],
			Channels:  make(map[string]float64),
		}
		if tsIdx >= 0 && tsIdx < len(row) {
			rec.Timestamp = parseTimestamp(row[tsIdx])
		}
		for i, name := range header {
			if i == idIdx || i == tsIdx || i >= len(row) || row[i] == "" {
				continue
			}
			if v, err := strconv.ParseFloat(row[i], 64); err == nil {
				rec.Channels[name] = v
			}
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

func parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
