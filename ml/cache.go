package ml

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedModel memoizes predictions of a deterministic model by frame content.
type CachedModel struct {
	model Model
	cache *lru.Cache[string, []int]
}

func NewCachedModel(model Model, size int) (*CachedModel, error) {
	cache, err := lru.New[string, []int](size)
	if err != nil {
		return nil, err
	}
	return &CachedModel{model: model, cache: cache}, nil
}

func (c *CachedModel) Predict(ctx context.Context, frame *Frame) ([]int, error) {
	key := frameKey(frame)
	if labels, ok := c.cache.Get(key); ok {
		return append([]int(nil), labels...), nil
	}
	labels, err := c.model.Predict(ctx, frame)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, append([]int(nil), labels...))
	return labels, nil
}

func (c *CachedModel) Len() int {
	return c.cache.Len()
}

func frameKey(frame *Frame) string {
	if frame == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.Join(frame.Columns(), ","))
	for row := 0; row < frame.Len(); row++ {
		b.WriteByte('\n')
		for _, value := range frame.Row(row) {
			fmt.Fprintf(&b, "%T:%v\x1f", value, value)
		}
	}
	return b.String()
}
