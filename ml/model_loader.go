package ml

import (
	"fmt"
)

const ModelTypeDecisionTree = "decision_tree"

func LoadModel(modelType, path string) (Model, error) {
	switch modelType {
	case ModelTypeDecisionTree:
		model := &DecisionTree{}
		if err := model.Load(path); err != nil {
			return nil, err
		}
		return model, nil
	default:
		return nil, fmt.Errorf("unsupported model type %q", modelType)
	}
}
