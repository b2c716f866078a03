package ml

import (
	"context"
	"errors"
	"testing"
)

type countingModel struct {
	calls  int
	labels []int
	err    error
}

func (m *countingModel) Predict(ctx context.Context, frame *Frame) ([]int, error) {
	m.calls++
	return m.labels, m.err
}

func TestCachedModelMemoizesByRow(t *testing.T) {
	inner := &countingModel{labels: []int{1}}
	cached, err := NewCachedModel(inner, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frame := func(grade string) *Frame {
		f := NewFrame("loan_grade", "person_income")
		_ = f.Append(grade, 50000.0)
		return f
	}

	for i := 0; i < 3; i++ {
		labels, err := cached.Predict(context.Background(), frame("A"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if labels[0] != 1 {
			t.Fatalf("expected label 1, got %d", labels[0])
		}
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 call to the wrapped model, got %d", inner.calls)
	}

	if _, err := cached.Predict(context.Background(), frame("B")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 || cached.Len() != 2 {
		t.Fatalf("expected a cache miss for a new row, calls=%d len=%d", inner.calls, cached.Len())
	}
}

func TestCachedModelDoesNotCacheErrors(t *testing.T) {
	inner := &countingModel{err: errors.New("boom")}
	cached, err := NewCachedModel(inner, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frame := NewFrame("a")
	_ = frame.Append(1.0)

	for i := 0; i < 2; i++ {
		if _, err := cached.Predict(context.Background(), frame); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls != 2 || cached.Len() != 0 {
		t.Fatalf("errors must not be cached, calls=%d len=%d", inner.calls, cached.Len())
	}
}

func TestNewCachedModelRejectsBadSize(t *testing.T) {
	if _, err := NewCachedModel(&countingModel{}, 0); err == nil {
		t.Fatal("expected error for zero cache size")
	}
}
