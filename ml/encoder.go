package ml

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type FeatureKind string

const (
	FeatureNumeric     FeatureKind = "numeric"
	FeatureCategorical FeatureKind = "categorical"
)

// FeatureSpec describes one input column the model was fit on.
type FeatureSpec struct {
	Name       string      `json:"name"`
	Kind       FeatureKind `json:"kind"`
	Categories []string    `json:"categories,omitempty"`
	Scale      bool        `json:"scale,omitempty"`
	Min        float64     `json:"min,omitempty"`
	Max        float64     `json:"max,omitempty"`
}

// Encoder turns frame rows into the float vectors a tree was fit on. Columns
// are matched by name, so frame column order does not matter, but the set of
// columns must match exactly.
type Encoder struct {
	features   []FeatureSpec
	categories []map[string]int
}

func NewEncoder(features []FeatureSpec) (*Encoder, error) {
	if len(features) == 0 {
		return nil, errors.New("encoder has no features")
	}
	seen := make(map[string]bool, len(features))
	categories := make([]map[string]int, len(features))
	for i, feature := range features {
		if feature.Name == "" {
			return nil, fmt.Errorf("feature %d has no name", i)
		}
		if seen[feature.Name] {
			return nil, fmt.Errorf("duplicate feature %q", feature.Name)
		}
		seen[feature.Name] = true

		switch feature.Kind {
		case FeatureNumeric:
		case FeatureCategorical:
			if len(feature.Categories) == 0 {
				return nil, fmt.Errorf("categorical feature %q has no categories", feature.Name)
			}
			lookup := make(map[string]int, len(feature.Categories))
			for code, category := range feature.Categories {
				lookup[category] = code
			}
			categories[i] = lookup
		default:
			return nil, fmt.Errorf("feature %q has unknown kind %q", feature.Name, feature.Kind)
		}
	}
	return &Encoder{
		features:   append([]FeatureSpec(nil), features...),
		categories: categories,
	}, nil
}

func (e *Encoder) FeatureNames() []string {
	names := make([]string, len(e.features))
	for i, feature := range e.features {
		names[i] = feature.Name
	}
	return names
}

func (e *Encoder) Features() []FeatureSpec {
	return append([]FeatureSpec(nil), e.features...)
}

// CheckColumns reports missing and unexpected frame columns.
func (e *Encoder) CheckColumns(frame *Frame) error {
	var missing, unexpected []string
	for _, feature := range e.features {
		if _, ok := frame.Index(feature.Name); !ok {
			missing = append(missing, feature.Name)
		}
	}
	known := make(map[string]bool, len(e.features))
	for _, feature := range e.features {
		known[feature.Name] = true
	}
	for _, column := range frame.Columns() {
		if !known[column] {
			unexpected = append(unexpected, column)
		}
	}

	var problems []string
	if len(missing) > 0 {
		sort.Strings(missing)
		problems = append(problems, "columns are missing: "+strings.Join(missing, ", "))
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		problems = append(problems, "columns were not seen at fit time: "+strings.Join(unexpected, ", "))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func (e *Encoder) Encode(frame *Frame) ([][]float64, error) {
	if frame == nil || frame.Len() == 0 {
		return nil, errors.New("frame is empty")
	}
	if err := e.CheckColumns(frame); err != nil {
		return nil, err
	}

	vectors := make([][]float64, frame.Len())
	for row := 0; row < frame.Len(); row++ {
		vector := make([]float64, len(e.features))
		for i, feature := range e.features {
			value, _ := frame.Value(row, feature.Name)
			encoded, err := e.encodeValue(i, value)
			if err != nil {
				return nil, err
			}
			vector[i] = encoded
		}
		vectors[row] = vector
	}
	return vectors, nil
}

func (e *Encoder) encodeValue(i int, value any) (float64, error) {
	feature := e.features[i]
	if feature.Kind == FeatureCategorical {
		category, ok := value.(string)
		if !ok {
			return 0, fmt.Errorf("column %q expects a string, got %T", feature.Name, value)
		}
		code, ok := e.categories[i][category]
		if !ok {
			return 0, fmt.Errorf("found unknown category %q in column %q", category, feature.Name)
		}
		return float64(code), nil
	}

	number, err := toFloat(value)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", feature.Name, err)
	}
	if feature.Scale {
		return NormalizeFeature(number, feature.Min, feature.Max), nil
	}
	return number, nil
}

func NormalizeFeature(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / (max - min)
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expects a number, got %T", value)
	}
}
