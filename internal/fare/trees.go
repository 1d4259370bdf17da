package fare

import (
	"errors"
	"fmt"
)

const (
	AggregateMean = "mean"
	AggregateSum  = "sum"
)

// TreeNode follows the flat layout of exported regression trees: a node is a
// leaf when both children are -1, otherwise rows with
// features[Feature] <= Threshold go left.
type TreeNode struct {
	Feature   int     `yaml:"feature"`
	Threshold float64 `yaml:"threshold"`
	Left      int     `yaml:"left"`
	Right     int     `yaml:"right"`
	Value     float64 `yaml:"value"`
}

type Tree struct {
	Nodes []TreeNode `yaml:"nodes"`
}

func (n TreeNode) leaf() bool {
	return n.Left == -1 && n.Right == -1
}

// validate requires children to sit after their parent, which rules out cycles.
func (t Tree) validate() error {
	if len(t.Nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.leaf() {
			continue
		}
		if n.Feature < 0 || n.Feature >= featureCount {
			return fmt.Errorf("node %d splits on unknown feature %d", i, n.Feature)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= i || child >= len(t.Nodes) {
				return fmt.Errorf("node %d has invalid child %d", i, child)
			}
		}
	}
	return nil
}

func (t Tree) predict(row []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.leaf() {
			return n.Value
		}
		if row[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// treeEnsemble covers averaged forests (mean) and boosted trees (sum).
type treeEnsemble struct {
	trees        []Tree
	aggregate    string
	baseScore    float64
	learningRate float64
}

func newTreeEnsemble(trees []Tree, aggregate string, baseScore, learningRate float64) (*treeEnsemble, error) {
	if len(trees) == 0 {
		return nil, errors.New("ensemble has no trees")
	}
	if aggregate == "" {
		aggregate = AggregateMean
	}
	if aggregate != AggregateMean && aggregate != AggregateSum {
		return nil, fmt.Errorf("unsupported aggregate %q", aggregate)
	}
	for i, t := range trees {
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &treeEnsemble{
		trees:        trees,
		aggregate:    aggregate,
		baseScore:    baseScore,
		learningRate: learningRate,
	}, nil
}

func (m *treeEnsemble) Kind() string { return KindTreeEnsemble }

func (m *treeEnsemble) Predict(features [][]float64) ([]float64, error) {
	if err := checkRows(features); err != nil {
		return nil, err
	}
	out := make([]float64, len(features))
	for i, row := range features {
		total := 0.0
		for _, t := range m.trees {
			total += t.predict(row)
		}
		switch m.aggregate {
		case AggregateSum:
			out[i] = m.baseScore + m.learningRate*total
		default:
			out[i] = m.baseScore + total/float64(len(m.trees))
		}
	}
	return out, nil
}
