package fare

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type expressionEnv struct {
	Distance  float64 `expr:"distance"`
	TrainType float64 `expr:"train_type"`
	ClassType float64 `expr:"class_type"`
}

// expressionModel evaluates a fare formula such as
// "150 + distance * (class_type == 2 ? 2.1 : 0.9)".
type expressionModel struct {
	source  string
	program *vm.Program
}

func newExpressionModel(source string) (*expressionModel, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("missing expression")
	}
	program, err := expr.Compile(source, expr.Env(expressionEnv{}), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compiling expression: %w", err)
	}
	return &expressionModel{source: source, program: program}, nil
}

func (m *expressionModel) Kind() string { return KindExpression }

func (m *expressionModel) Predict(features [][]float64) ([]float64, error) {
	if err := checkRows(features); err != nil {
		return nil, err
	}
	out := make([]float64, len(features))
	for i, row := range features {
		result, err := expr.Run(m.program, expressionEnv{
			Distance:  row[FeatureDistance],
			TrainType: row[FeatureTrainType],
			ClassType: row[FeatureClassType],
		})
		if err != nil {
			return nil, fmt.Errorf("evaluating %q: %w", m.source, err)
		}
		value, ok := result.(float64)
		if !ok {
			return nil, fmt.Errorf("evaluating %q: got %T, expected a number", m.source, result)
		}
		out[i] = value
	}
	return out, nil
}
