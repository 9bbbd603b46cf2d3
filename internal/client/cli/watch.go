package cli

import (
	"context"
	"strings"

	"github.com/iudanet/cartosync/internal/client/iocli"
	"github.com/iudanet/cartosync/internal/client/live"
	"github.com/iudanet/cartosync/internal/client/notify"
	"github.com/iudanet/cartosync/internal/client/project"
)

// printRenderer печатает запрос карты при каждой перерисовке
type printRenderer struct {
	io iocli.IO
}

func (r printRenderer) Redraw(params project.MapParams) {
	r.io.Printf("redraw %s\n", params.Query().Encode())
}

// runWatch держит проект загруженным и печатает уведомления сервера до отмены ctx
func (c *Cli) runWatch(ctx context.Context, url string) error {
	sink := notify.NewLogSink(c.logger)
	unsubscribe := sink.OnMessage(func(m notify.Message) {
		c.io.Printf("%s [%s] %s\n", m.Time.Local().Format(timeLayout), m.Level, strings.Join(m.Lines, "\n  "))
	})
	defer unsubscribe()

	store, err := c.openProject(ctx, url, c.binder, nil, project.Options{
		Sink:     sink,
		Renderer: printRenderer{io: c.io},
	})
	if err != nil {
		return err
	}
	defer store.UnloadProject()

	unwatch := store.OnChange(func(ch project.Change) {
		if ch == project.ChangeDocument {
			view := store.Styles()
			c.io.Printf("project document changed: %d style(s), %d layer(s)\n", len(view.Active), len(store.Layers()))
		}
	})
	defer unwatch()

	// wsid совпадает с записью в логе сервера
	unsubscribeChannel := store.OnChannelEvent(func(ev live.Event) {
		if ev.Kind == live.KindSuccess {
			c.logger.Debug("Server update", "wsid", store.WsID(), "updated_at", ev.UpdatedAt, "updated_mml", ev.UpdatedMML)
		}
	})
	defer unsubscribeChannel()

	p, _ := store.Project()
	c.io.Printf("Watching %s, press Ctrl+C to stop\n", p.URL())

	<-ctx.Done()
	return nil
}
