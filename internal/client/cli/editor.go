package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/cartosync/internal/client/iocli"
	"github.com/iudanet/cartosync/internal/client/layer"
	"github.com/iudanet/cartosync/internal/models"
)

// keepEditor сохраняет слой без изменений
var keepEditor = layer.EditorFunc(func(_ context.Context, l models.Layer) (layer.Result, error) {
	return layer.Saved(l), nil
})

// removeEditor запрашивает удаление слоя
var removeEditor = layer.EditorFunc(func(context.Context, models.Layer) (layer.Result, error) {
	return layer.Removed(), nil
})

// promptEditor edits the common layer fields and the datasource type line by
// line. An empty answer keeps the current value.
type promptEditor struct {
	io iocli.IO
}

func (e promptEditor) Edit(ctx context.Context, l models.Layer) (layer.Result, error) {
	if layer.IsDefaultLayer(l) {
		e.io.Println("New layer")
	} else {
		e.io.Printf("Editing layer %s\n", l.Name)
	}

	fields := []struct {
		label string
		value *string
	}{
		{"ID", &l.ID},
		{"Name", &l.Name},
		{"Class", &l.Class},
		{"SRS", &l.SRS},
	}
	for _, f := range fields {
		if err := ctx.Err(); err != nil {
			return layer.Cancelled(), err
		}
		answer, err := e.io.ReadInput(fmt.Sprintf("%s [%s]: ", f.label, *f.value))
		if err != nil {
			return layer.Cancelled(), fmt.Errorf("failed to read %s: %w", strings.ToLower(f.label), err)
		}
		if answer != "" {
			*f.value = answer
		}
	}

	if err := e.editDatasourceType(&l); err != nil {
		return layer.Cancelled(), err
	}

	answer, err := e.io.ReadInput("Save layer? [Y/n]: ")
	if err != nil {
		return layer.Cancelled(), fmt.Errorf("failed to read confirmation: %w", err)
	}
	switch strings.ToLower(answer) {
	case "", "y", "yes":
		return layer.Saved(l), nil
	default:
		return layer.Cancelled(), nil
	}
}

// editDatasourceType меняет тип источника; поля прежнего типа, которых нет у нового, отбрасываются
func (e promptEditor) editDatasourceType(l *models.Layer) error {
	current := ""
	if l.Datasource != nil {
		current = string(l.Datasource.Type())
	}
	for {
		answer, err := e.io.ReadInput(fmt.Sprintf("Datasource type [%s]: ", current))
		if err != nil {
			return fmt.Errorf("failed to read datasource type: %w", err)
		}
		if answer == "" || answer == current {
			return nil
		}
		ds, err := models.ConvertDatasource(l.Datasource, models.DatasourceType(strings.ToLower(answer)))
		if err != nil {
			e.io.Printf("%v\n", err)
			continue
		}
		l.Datasource = ds
		return nil
	}
}
