package ml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DecisionTree is a fitted classification tree together with the encoder
// describing the columns it was fit on. It is read-only after Load.
type DecisionTree struct {
	encoder *Encoder
	nodes   []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

type treeArtifact struct {
	Features []FeatureSpec `json:"features"`
	Nodes    []TreeNode    `json:"nodes"`
}

func NewDecisionTree(features []FeatureSpec, nodes []TreeNode) (*DecisionTree, error) {
	encoder, err := NewEncoder(features)
	if err != nil {
		return nil, err
	}
	if err := validateNodes(nodes, len(features)); err != nil {
		return nil, err
	}
	return &DecisionTree{
		encoder: encoder,
		nodes:   append([]TreeNode(nil), nodes...),
	}, nil
}

func (dt *DecisionTree) Predict(ctx context.Context, frame *Frame) ([]int, error) {
	if len(dt.nodes) == 0 || dt.encoder == nil {
		return nil, errors.New("model not loaded")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vectors, err := dt.encoder.Encode(frame)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(vectors))
	for i, vector := range vectors {
		label, err := dt.classify(vector)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return labels, nil
}

func (dt *DecisionTree) FeatureNames() []string {
	if dt.encoder == nil {
		return nil
	}
	return dt.encoder.FeatureNames()
}

func (dt *DecisionTree) classify(features []float64) (int, error) {
	idx := 0
	for steps := 0; steps <= len(dt.nodes); steps++ {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
	return 0, errors.New("tree walk did not reach a leaf")
}

func (dt *DecisionTree) Save(path string) error {
	if len(dt.nodes) == 0 || dt.encoder == nil {
		return errors.New("model not loaded")
	}
	payload, err := json.MarshalIndent(treeArtifact{
		Features: dt.encoder.Features(),
		Nodes:    dt.nodes,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (dt *DecisionTree) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var artifact treeArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return fmt.Errorf("decode model %s: %w", path, err)
	}
	loaded, err := NewDecisionTree(artifact.Features, artifact.Nodes)
	if err != nil {
		return fmt.Errorf("model %s: %w", path, err)
	}
	*dt = *loaded
	return nil
}

func validateNodes(nodes []TreeNode, featureCount int) error {
	if len(nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= featureCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild <= i || node.LeftChild >= len(nodes) {
			return fmt.Errorf("node %d: invalid left child %d", i, node.LeftChild)
		}
		if node.RightChild <= i || node.RightChild >= len(nodes) {
			return fmt.Errorf("node %d: invalid right child %d", i, node.RightChild)
		}
	}
	return nil
}
