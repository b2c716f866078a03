package loan

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"loanscreen/ml"
)

// Label is the applicant-facing outcome. The trailing space is part of the
// rendered result.
type Label string

const (
	Approved Label = "Approved "
	Rejected Label = "Rejected "
)

// LabelFor maps a raw classifier output to a Label. Anything other than 1,
// including values a binary classifier should never produce, is Rejected.
func LabelFor(prediction int) Label {
	if prediction == 1 {
		return Approved
	}
	return Rejected
}

type Decision struct {
	Label      Label
	Prediction int
}

// Service scores submitted applications against a loaded model.
type Service struct {
	model ml.Model
	log   *zap.Logger
}

func NewService(model ml.Model, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{model: model, log: log}
}

// Evaluate runs one submission end to end. Every failure comes back as an
// *Error; panics raised by the model are recovered and reported the same way.
func (s *Service) Evaluate(ctx context.Context, form Form) (Decision, error) {
	if form == nil || form.Len() == 0 {
		return Decision{}, &Error{Kind: KindEmptySubmission, Message: msgNoData}
	}

	app, err := Normalize(form)
	if err != nil {
		return Decision{}, err
	}

	frame, err := app.Frame()
	if err != nil {
		return Decision{}, unexpected(err)
	}

	prediction, err := s.predict(ctx, frame)
	if err != nil {
		return Decision{}, err
	}

	if prediction != 0 && prediction != 1 {
		s.log.Warn("model returned a non-binary prediction, treating as rejected",
			zap.Int("prediction", prediction))
	}
	return Decision{Label: LabelFor(prediction), Prediction: prediction}, nil
}

func (s *Service) predict(ctx context.Context, frame *ml.Frame) (prediction int, err error) {
	if s.model == nil {
		return 0, unexpected(errors.New("model not loaded"))
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("model panicked", zap.Any("panic", r))
			prediction = 0
			err = &Error{Kind: KindUnexpectedFailure, Message: fmt.Sprint(r)}
		}
	}()

	labels, err := s.model.Predict(ctx, frame)
	if err != nil {
		return 0, unexpected(err)
	}
	if len(labels) == 0 {
		return 0, unexpected(errors.New("model returned no predictions"))
	}
	return labels[0], nil
}
