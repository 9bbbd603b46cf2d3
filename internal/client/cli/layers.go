package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/cartosync/internal/client/layer"
	"github.com/iudanet/cartosync/internal/client/project"
)

func (c *Cli) runLayerList(ctx context.Context, url string) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		c.printLayers(store.Layers())
		return nil
	})
}

func (c *Cli) runLayerToggle(ctx context.Context, url string, index int) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		if err := store.ToggleLayer(index); err != nil {
			return fmt.Errorf("failed to toggle layer: %w", err)
		}
		c.printLayers(store.Layers())
		return nil
	})
}

// runLayerAdd добавляет слой по шаблону слоя по умолчанию через интерактивный редактор
func (c *Cli) runLayerAdd(ctx context.Context, url string) error {
	return c.withProject(ctx, url, promptEditor{io: c.io}, func(store *project.Store) error {
		added, err := store.AddLayer(ctx, nil)
		if err != nil {
			return err
		}
		if !added {
			c.io.Println("Layer not added.")
			return nil
		}
		c.printLayers(store.Layers())
		return nil
	})
}

func (c *Cli) runLayerEdit(ctx context.Context, url string, index int) error {
	return c.withProject(ctx, url, promptEditor{io: c.io}, func(store *project.Store) error {
		outcome, err := store.EditLayer(ctx, index)
		if err != nil {
			return err
		}
		c.io.Printf("Layer %d %s.\n", index, outcome)
		return nil
	})
}

// runLayerCopy копирует слой без интерактивного редактирования
func (c *Cli) runLayerCopy(ctx context.Context, url string, index int) error {
	return c.withProject(ctx, url, keepEditor, func(store *project.Store) error {
		if _, err := store.CopyLayer(ctx, index); err != nil {
			return err
		}
		c.printLayers(store.Layers())
		return nil
	})
}

func (c *Cli) runLayerRemove(ctx context.Context, url string, index int) error {
	return c.withProject(ctx, url, removeEditor, func(store *project.Store) error {
		outcome, err := store.EditLayer(ctx, index)
		if err != nil {
			return err
		}
		if outcome != layer.OutcomeRemoved {
			return fmt.Errorf("layer %d was not removed", index)
		}
		c.printLayers(store.Layers())
		return nil
	})
}
