package fare

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	KindLinear       = "linear"
	KindTreeEnsemble = "tree_ensemble"
	KindExpression   = "expression"
)

// Artifact is the on-disk form of a fare model.
type Artifact struct {
	Kind     string   `yaml:"kind"`
	Features []string `yaml:"features,omitempty"`

	// linear
	Intercept    float64   `yaml:"intercept,omitempty"`
	Coefficients []float64 `yaml:"coefficients,omitempty"`

	// tree_ensemble
	Aggregate    string   `yaml:"aggregate,omitempty"`
	BaseScore    float64  `yaml:"base_score,omitempty"`
	LearningRate *float64 `yaml:"learning_rate,omitempty"`
	Trees        []Tree   `yaml:"trees,omitempty"`

	// expression
	Expression string `yaml:"expression,omitempty"`
}

// ModelLoadError explains why an artifact could not be turned into a Model.
type ModelLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ModelLoadError) Error() string {
	msg := fmt.Sprintf("loading fare model %s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// LoadModel reads and compiles the artifact at path.
func LoadModel(path string) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		reason := "cannot open artifact"
		if errors.Is(err, os.ErrNotExist) {
			reason = "artifact not found; set FARE_MODEL_FILE to an exported model"
		}
		return nil, &ModelLoadError{Path: path, Reason: reason, Err: err}
	}
	defer f.Close()

	return DecodeModel(f, path)
}

// DecodeModel parses a YAML artifact from r. name is used in errors only.
func DecodeModel(r io.Reader, name string) (Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ModelLoadError{Path: name, Reason: "cannot read artifact", Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ModelLoadError{Path: name, Reason: "artifact is empty"}
	}

	var artifact Artifact
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&artifact); err != nil {
		return nil, &ModelLoadError{Path: name, Reason: "artifact is not a valid YAML model", Err: err}
	}

	model, err := artifact.Compile()
	if err != nil {
		return nil, &ModelLoadError{Path: name, Reason: fmt.Sprintf("invalid %q model", artifact.Kind), Err: err}
	}
	return model, nil
}

// Compile validates the artifact and builds the matching Model.
func (a *Artifact) Compile() (Model, error) {
	if len(a.Features) > 0 {
		if len(a.Features) != len(FeatureNames) {
			return nil, fmt.Errorf("expected features %v, got %v", FeatureNames, a.Features)
		}
		for i, name := range FeatureNames {
			if a.Features[i] != name {
				return nil, fmt.Errorf("expected features %v, got %v", FeatureNames, a.Features)
			}
		}
	}

	switch a.Kind {
	case KindLinear:
		return newLinearModel(a.Intercept, a.Coefficients)
	case KindTreeEnsemble:
		rate := 1.0
		if a.LearningRate != nil {
			rate = *a.LearningRate
		}
		return newTreeEnsemble(a.Trees, a.Aggregate, a.BaseScore, rate)
	case KindExpression:
		return newExpressionModel(a.Expression)
	case "":
		return nil, errors.New("missing kind")
	default:
		return nil, fmt.Errorf("unsupported kind %q (expected %s, %s or %s)", a.Kind, KindLinear, KindTreeEnsemble, KindExpression)
	}
}
