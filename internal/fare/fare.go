// Package fare wraps a pre-built regression artifact that maps
// (distance, train type, class type) to a fare. It never trains or updates
// the model.
package fare

import (
	"errors"
	"fmt"
	"math"

	"github.com/smartrail-planner/internal/common/logger"
	"github.com/smartrail-planner/pkg/railnet/models"
)

// Feature columns, in the order every Model expects them.
const (
	FeatureDistance = iota
	FeatureTrainType
	FeatureClassType
	featureCount
)

var FeatureNames = []string{"distance", "train_type", "class_type"}

var (
	ErrInvalidDistance = errors.New("distance must be a finite non-negative number")
	ErrUnknownTrain    = errors.New("unknown train type")
	ErrUnknownClass    = errors.New("unknown class type")
)

// Model is the single capability the planner needs from a fare artifact.
// features is a 2-D array whose rows are [distance, train_type, class_type];
// the result holds one prediction per row.
type Model interface {
	Predict(features [][]float64) ([]float64, error)
}

// PredictFare runs one prediction and rounds it to two decimal places.
// Negative predictions are clamped to zero.
func PredictFare(m Model, distance float64, train models.TrainType, class models.ClassType) (float64, error) {
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDistance, distance)
	}
	if !train.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTrain, int(train))
	}
	if !class.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownClass, int(class))
	}

	out, err := m.Predict([][]float64{{distance, float64(train), float64(class)}})
	if err != nil {
		return 0, fmt.Errorf("predicting fare: %w", err)
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("predicting fare: model returned %d values for 1 row", len(out))
	}

	prediction := out[0]
	if math.IsNaN(prediction) || math.IsInf(prediction, 0) {
		return 0, fmt.Errorf("predicting fare: model returned %v", prediction)
	}
	if prediction < 0 {
		prediction = 0
	}

	return math.Round(prediction*100) / 100, nil
}

type Estimator struct {
	model  Model
	logger logger.Logger
}

func NewEstimator(model Model, logger logger.Logger) *Estimator {
	return &Estimator{model: model, logger: logger}
}

// Estimate returns the rounded fare for one journey.
func (e *Estimator) Estimate(distance float64, train models.TrainType, class models.ClassType) (float64, error) {
	fare, err := PredictFare(e.model, distance, train, class)
	if err != nil {
		e.logger.Warn("Fare prediction failed",
			"distance", distance,
			"train_type", int(train),
			"class_type", int(class),
			"error", err)
		return 0, err
	}

	e.logger.Debug("Fare predicted",
		"distance", distance,
		"train_type", train.String(),
		"class_type", class.String(),
		"fare", fare)
	return fare, nil
}

// Kind names the artifact behind the estimator, or "custom".
func (e *Estimator) Kind() string {
	if k, ok := e.model.(interface{ Kind() string }); ok {
		return k.Kind()
	}
	return "custom"
}

func checkRows(features [][]float64) error {
	for i, row := range features {
		if len(row) != featureCount {
			return fmt.Errorf("row %d has %d features, expected %d", i, len(row), featureCount)
		}
	}
	return nil
}
