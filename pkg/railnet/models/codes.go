package models

import (
	"fmt"
	"strconv"
	"strings"
)

// TrainType is the fare model's train type feature.
type TrainType int

const (
	Express   TrainType = 1
	Superfast TrainType = 2
	Rajdhani  TrainType = 3
)

// ClassType is the fare model's class type feature.
type ClassType int

const (
	Sleeper ClassType = 1
	AC      ClassType = 2
)

var trainTypeLabels = map[TrainType]string{
	Express:   "Express",
	Superfast: "Superfast",
	Rajdhani:  "Rajdhani",
}

var classTypeLabels = map[ClassType]string{
	Sleeper: "Sleeper",
	AC:      "AC",
}

// TrainTypes lists every known train type in code order.
func TrainTypes() []TrainType {
	return []TrainType{Express, Superfast, Rajdhani}
}

// ClassTypes lists every known class type in code order.
func ClassTypes() []ClassType {
	return []ClassType{Sleeper, AC}
}

func (t TrainType) Valid() bool {
	_, ok := trainTypeLabels[t]
	return ok
}

func (t TrainType) String() string {
	if label, ok := trainTypeLabels[t]; ok {
		return label
	}
	return fmt.Sprintf("TrainType(%d)", int(t))
}

// UnmarshalCSV lets gocsv decode either the numeric code or the label.
func (t *TrainType) UnmarshalCSV(value string) error {
	parsed, err := ParseTrainType(value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (c ClassType) Valid() bool {
	_, ok := classTypeLabels[c]
	return ok
}

func (c ClassType) String() string {
	if label, ok := classTypeLabels[c]; ok {
		return label
	}
	return fmt.Sprintf("ClassType(%d)", int(c))
}

func (c *ClassType) UnmarshalCSV(value string) error {
	parsed, err := ParseClassType(value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseTrainType accepts a code ("2") or a case-insensitive label ("superfast").
func ParseTrainType(value string) (TrainType, error) {
	value = strings.TrimSpace(value)
	if code, err := strconv.Atoi(value); err == nil {
		if t := TrainType(code); t.Valid() {
			return t, nil
		}
		return 0, fmt.Errorf("unknown train type code %d", code)
	}
	for t, label := range trainTypeLabels {
		if strings.EqualFold(label, value) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown train type %q", value)
}

// ParseClassType accepts a code ("1") or a case-insensitive label ("ac").
func ParseClassType(value string) (ClassType, error) {
	value = strings.TrimSpace(value)
	if code, err := strconv.Atoi(value); err == nil {
		if c := ClassType(code); c.Valid() {
			return c, nil
		}
		return 0, fmt.Errorf("unknown class type code %d", code)
	}
	for c, label := range classTypeLabels {
		if strings.EqualFold(label, value) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown class type %q", value)
}
