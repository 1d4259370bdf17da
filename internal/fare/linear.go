package fare

import "fmt"

type linearModel struct {
	intercept    float64
	coefficients []float64
}

func newLinearModel(intercept float64, coefficients []float64) (*linearModel, error) {
	if len(coefficients) != featureCount {
		return nil, fmt.Errorf("expected %d coefficients, got %d", featureCount, len(coefficients))
	}
	c := make([]float64, featureCount)
	copy(c, coefficients)
	return &linearModel{intercept: intercept, coefficients: c}, nil
}

func (m *linearModel) Kind() string { return KindLinear }

func (m *linearModel) Predict(features [][]float64) ([]float64, error) {
	if err := checkRows(features); err != nil {
		return nil, err
	}
	out := make([]float64, len(features))
	for i, row := range features {
		y := m.intercept
		for j, x := range row {
			y += m.coefficients[j] * x
		}
		out[i] = y
	}
	return out, nil
}
