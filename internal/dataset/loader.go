package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/smartrail-planner/internal/common/logger"
	"github.com/smartrail-planner/pkg/railnet/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	routeColumns    = []string{"source", "destination", "distance"}
	scheduleColumns = []string{"train_name", "source", "destination", "train_type", "class_type", "avg_speed"}
)

// routeRow keeps distance as text so blank and non-numeric cells are
// reported instead of silently decoded as zero.
type routeRow struct {
	Source      string `csv:"source"`
	Destination string `csv:"destination"`
	Distance    string `csv:"distance"`
}

// trainRow keeps the type codes as text so unknown codes are reported as
// invalid data with the offending field.
type trainRow struct {
	Name        string  `csv:"train_name"`
	Source      string  `csv:"source"`
	Destination string  `csv:"destination"`
	TrainType   string  `csv:"train_type"`
	ClassType   string  `csv:"class_type"`
	AvgSpeed    float64 `csv:"avg_speed"`
}

type Loader struct {
	logger logger.Logger
}

func New(logger logger.Logger) *Loader {
	return &Loader{logger: logger}
}

// LoadRouteDistances reads and validates the station distance table at path.
func (l *Loader) LoadRouteDistances(path string) ([]models.RouteDistance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening routes file: %w", err)
	}
	defer f.Close()

	rows, err := ReadRouteDistances(f, path)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Route distances loaded", "path", path, "rows", len(rows))
	return rows, nil
}

// LoadTrains reads and validates the train schedule table at path.
func (l *Loader) LoadTrains(path string) ([]models.Train, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule file: %w", err)
	}
	defer f.Close()

	trains, err := ReadTrains(f, path)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Train schedule loaded", "path", path, "trains", len(trains))
	return trains, nil
}

// ReadRouteDistances decodes a source,destination,distance table. name is
// used in error messages only.
func ReadRouteDistances(r io.Reader, name string) ([]models.RouteDistance, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if err := checkHeader(data, name, routeColumns); err != nil {
		return nil, err
	}

	var raw []routeRow
	if err := gocsv.UnmarshalCSV(newCSVReader(data), &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	rows := make([]models.RouteDistance, 0, len(raw))
	for i, rr := range raw {
		line := i + 2
		distance := strings.TrimSpace(rr.Distance)
		if distance == "" {
			return nil, &InvalidDataError{File: name, Line: line, Field: "distance", Reason: "missing distance"}
		}
		value, err := strconv.ParseFloat(distance, 64)
		if err != nil {
			return nil, &InvalidDataError{File: name, Line: line, Field: "distance", Reason: fmt.Sprintf("not a number: %q", distance)}
		}

		row := models.RouteDistance{
			Source:      strings.TrimSpace(rr.Source),
			Destination: strings.TrimSpace(rr.Destination),
			Distance:    value,
		}
		if err := ValidateRouteDistance(row, name, line); err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// ReadTrains decodes the train schedule table.
func ReadTrains(r io.Reader, name string) ([]models.Train, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if err := checkHeader(data, name, scheduleColumns); err != nil {
		return nil, err
	}

	var raw []trainRow
	if err := gocsv.UnmarshalCSV(newCSVReader(data), &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	trains := make([]models.Train, 0, len(raw))
	for i, tr := range raw {
		line := i + 2

		trainType, err := models.ParseTrainType(tr.TrainType)
		if err != nil {
			return nil, &InvalidDataError{File: name, Line: line, Field: "train_type", Reason: err.Error()}
		}
		classType, err := models.ParseClassType(tr.ClassType)
		if err != nil {
			return nil, &InvalidDataError{File: name, Line: line, Field: "class_type", Reason: err.Error()}
		}

		t := models.Train{
			Name:        strings.TrimSpace(tr.Name),
			Source:      strings.TrimSpace(tr.Source),
			Destination: strings.TrimSpace(tr.Destination),
			TrainType:   trainType,
			ClassType:   classType,
			AvgSpeed:    tr.AvgSpeed,
		}
		if t.Name == "" {
			return nil, &InvalidDataError{File: name, Line: line, Field: "train_name", Reason: "missing train name"}
		}
		if !(t.AvgSpeed > 0) || math.IsInf(t.AvgSpeed, 0) {
			return nil, &InvalidDataError{File: name, Line: line, Field: "avg_speed", Reason: fmt.Sprintf("must be positive, got %v", t.AvgSpeed)}
		}

		trains = append(trains, t)
	}

	return trains, nil
}

func newCSVReader(data []byte) *csv.Reader {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.TrimLeadingSpace = true
	return reader
}

func checkHeader(data []byte, name string, required []string) error {
	header, err := newCSVReader(data).Read()
	if err == io.EOF {
		return &InvalidDataError{File: name, Line: 1, Reason: "empty file"}
	}
	if err != nil {
		return fmt.Errorf("reading header of %s: %w", name, err)
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	for _, col := range required {
		if !present[col] {
			return &InvalidDataError{File: name, Line: 1, Field: col, Reason: "missing column"}
		}
	}
	return nil
}
