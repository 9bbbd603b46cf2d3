package layer

import (
	"context"

	"github.com/iudanet/cartosync/internal/models"
)

//go:generate moq -out editor_mock.go . Editor

// Editor is the interactive collaborator that lets a user edit a layer.
// Edit blocks until the user saves, cancels or asks to remove the layer.
type Editor interface {
	Edit(ctx context.Context, layer models.Layer) (Result, error)
}

// Outcome описывает, чем закончилось редактирование
type Outcome int

const (
	// OutcomeCancelled редактирование отменено, слой не меняется
	OutcomeCancelled Outcome = iota
	// OutcomeSaved слой сохранен
	OutcomeSaved
	// OutcomeRemoved пользователь запросил удаление слоя
	OutcomeRemoved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeRemoved:
		return "removed"
	default:
		return "cancelled"
	}
}

// Result is the outcome of an edit. Layer is set only for OutcomeSaved.
type Result struct {
	Layer   models.Layer
	Outcome Outcome
}

// Saved returns a result carrying the edited layer.
func Saved(l models.Layer) Result {
	return Result{Layer: l, Outcome: OutcomeSaved}
}

// Cancelled returns a result that leaves the registry unchanged.
func Cancelled() Result {
	return Result{Outcome: OutcomeCancelled}
}

// Removed returns a result that deletes the edited layer.
func Removed() Result {
	return Result{Outcome: OutcomeRemoved}
}

// EditorFunc adapts a function to the Editor interface.
type EditorFunc func(ctx context.Context, layer models.Layer) (Result, error)

// Edit calls f.
func (f EditorFunc) Edit(ctx context.Context, layer models.Layer) (Result, error) {
	return f(ctx, layer)
}
