package dataset

import (
	"fmt"
	"math"

	"github.com/smartrail-planner/pkg/railnet/models"
)

// InvalidDataError reports a malformed input row. Line is 1-based and counts
// the header line.
type InvalidDataError struct {
	File   string
	Line   int
	Field  string
	Reason string
}

func (e *InvalidDataError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid data in %s line %d: %s", e.File, e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid data in %s line %d, field %s: %s", e.File, e.Line, e.Field, e.Reason)
}

// ValidateRouteDistance checks one distance row regardless of where it came from.
func ValidateRouteDistance(row models.RouteDistance, file string, line int) error {
	switch {
	case row.Source == "":
		return &InvalidDataError{File: file, Line: line, Field: "source", Reason: "missing station name"}
	case row.Destination == "":
		return &InvalidDataError{File: file, Line: line, Field: "destination", Reason: "missing station name"}
	case row.Source == row.Destination:
		return &InvalidDataError{File: file, Line: line, Field: "destination", Reason: fmt.Sprintf("station %q is paired with itself", row.Source)}
	case math.IsNaN(row.Distance) || math.IsInf(row.Distance, 0) || row.Distance < 0:
		return &InvalidDataError{File: file, Line: line, Field: "distance", Reason: fmt.Sprintf("must be a non-negative number, got %v", row.Distance)}
	}
	return nil
}
