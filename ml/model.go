package ml

import (
	"context"
	"fmt"
)

// Model is a pre-fit binary classifier. Implementations must be safe for
// concurrent Predict calls once loaded.
type Model interface {
	Predict(ctx context.Context, frame *Frame) ([]int, error)
}

// Frame is a small column-ordered table handed to a Model.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

func NewFrame(columns ...string) *Frame {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[name] = i
	}
	return &Frame{
		columns: append([]string(nil), columns...),
		index:   index,
	}
}

// Append adds one row. Values must be given in column order.
func (f *Frame) Append(values ...any) error {
	if len(values) != len(f.columns) {
		return fmt.Errorf("row has %d values, frame has %d columns", len(values), len(f.columns))
	}
	f.rows = append(f.rows, append([]any(nil), values...))
	return nil
}

func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

func (f *Frame) Len() int {
	return len(f.rows)
}

func (f *Frame) Index(name string) (int, bool) {
	i, ok := f.index[name]
	return i, ok
}

func (f *Frame) Value(row int, name string) (any, bool) {
	if row < 0 || row >= len(f.rows) {
		return nil, false
	}
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.rows[row][i], true
}

// Row returns a copy of the values of one row.
func (f *Frame) Row(row int) []any {
	if row < 0 || row >= len(f.rows) {
		return nil
	}
	return append([]any(nil), f.rows[row]...)
}
