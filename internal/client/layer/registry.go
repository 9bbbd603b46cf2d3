// Package layer holds the layer list of a loaded project and routes add,
// edit and copy requests through an interactive Editor.
package layer

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/iudanet/cartosync/internal/models"
)

// CopySuffix добавляется к имени и id копии слоя
const CopySuffix = "_copy"

// Registry is the ordered layer list of a project. Layers are addressed by
// position: an edit replaces or removes whatever sits at the index captured
// when the edit was opened.
type Registry struct {
	editor    Editor
	logger    *slog.Logger
	listeners map[int]func()
	layers    []models.Layer
	nextID    int
	editing   int
	mu        sync.Mutex
}

// NewRegistry creates an empty registry.
func NewRegistry(editor Editor, logger *slog.Logger) *Registry {
	return &Registry{
		editor:    editor,
		logger:    logger,
		listeners: make(map[int]func()),
	}
}

// SetLayers replaces the whole list.
func (r *Registry) SetLayers(layers []models.Layer) {
	r.mu.Lock()
	r.layers = cloneLayers(layers)
	r.mu.Unlock()

	r.notify()
}

// Layers returns a copy of the list.
func (r *Registry) Layers() []models.Layer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneLayers(r.layers)
}

// Layer returns the layer at index.
func (r *Registry) Layer(index int) (models.Layer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.layers) {
		return models.Layer{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return r.layers[index].Clone(), nil
}

// Len returns the number of layers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.layers)
}

// Editing reports whether an edit flow is currently open.
func (r *Registry) Editing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.editing > 0
}

// IsDefaultLayer reports whether l is untouched default layer template.
func IsDefaultLayer(l models.Layer) bool {
	return reflect.DeepEqual(l, models.DefaultLayer())
}

// AddLayer opens the editor for l, or for the default layer when l is nil,
// and appends the result unless the edit was cancelled or asked for removal.
// It reports whether a layer was appended.
func (r *Registry) AddLayer(ctx context.Context, l *models.Layer) (bool, error) {
	candidate := models.DefaultLayer()
	if l != nil {
		candidate = l.Clone()
	}

	res, err := r.edit(ctx, candidate)
	if err != nil {
		return false, err
	}
	if res.Outcome != OutcomeSaved {
		r.logger.Debug("Layer not added", "outcome", res.Outcome.String())
		return false, nil
	}

	r.mu.Lock()
	r.layers = append(r.layers, res.Layer.Clone())
	r.mu.Unlock()

	r.logger.Debug("Layer added", "name", res.Layer.Name)
	r.notify()
	return true, nil
}

// EditLayer opens the editor pre-filled with the layer at index. A saved
// result replaces the layer at that index, a removal result deletes it.
func (r *Registry) EditLayer(ctx context.Context, index int) (Outcome, error) {
	current, err := r.Layer(index)
	if err != nil {
		return OutcomeCancelled, err
	}

	res, err := r.edit(ctx, current)
	if err != nil {
		return OutcomeCancelled, err
	}
	if res.Outcome == OutcomeCancelled {
		return OutcomeCancelled, nil
	}

	r.mu.Lock()
	// позиция могла исчезнуть, пока редактор был открыт
	if index >= len(r.layers) {
		r.mu.Unlock()
		return OutcomeCancelled, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if res.Outcome == OutcomeRemoved {
		r.layers = append(r.layers[:index], r.layers[index+1:]...)
	} else {
		r.layers[index] = res.Layer.Clone()
	}
	r.mu.Unlock()

	r.logger.Debug("Layer edited", "index", index, "outcome", res.Outcome.String())
	r.notify()
	return res.Outcome, nil
}

// CopyLayer clones the layer at index, suffixes its name and id and routes
// the clone through AddLayer.
func (r *Registry) CopyLayer(ctx context.Context, index int) (bool, error) {
	l, err := r.Layer(index)
	if err != nil {
		return false, err
	}
	l.Name += CopySuffix
	l.ID += CopySuffix
	return r.AddLayer(ctx, &l)
}

// ToggleLayer switches the layer at index between rendered and off.
func (r *Registry) ToggleLayer(index int) error {
	r.mu.Lock()
	if index < 0 || index >= len(r.layers) {
		r.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if r.layers[index].Active() {
		r.layers[index].Status = models.LayerStatusOff
	} else {
		r.layers[index].Status = ""
	}
	r.mu.Unlock()

	r.notify()
	return nil
}

// OnChange registers fn to be called after every mutation. The returned
// function removes the listener.
func (r *Registry) OnChange(fn func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// edit вызывает редактор без удержания блокировки
func (r *Registry) edit(ctx context.Context, l models.Layer) (Result, error) {
	r.mu.Lock()
	r.editing++
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.editing--
		r.mu.Unlock()
	}()

	res, err := r.editor.Edit(ctx, l)
	if err != nil {
		return Result{}, fmt.Errorf("failed to edit layer: %w", err)
	}
	return res, nil
}

func (r *Registry) notify() {
	r.mu.Lock()
	fns := make([]func(), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func cloneLayers(layers []models.Layer) []models.Layer {
	if layers == nil {
		return nil
	}
	out := make([]models.Layer, len(layers))
	for i, l := range layers {
		out[i] = l.Clone()
	}
	return out
}
