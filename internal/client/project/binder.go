package project

import (
	"context"
	"fmt"

	"github.com/iudanet/cartosync/internal/client/live"
	"github.com/iudanet/cartosync/pkg/api"
)

//go:generate moq -out binder_mock.go . Binder Channel Renderer

// Channel is a bound live update channel.
type Channel interface {
	State() live.State
	WsID() string
	Subscribe(fn func(live.Event)) func()
	Close()
}

// Binder opens the live update channel of a project. onEvent is called for
// every event from the first connection on.
type Binder interface {
	Bind(ctx context.Context, p api.Project, onEvent func(live.Event)) (Channel, error)
}

// Renderer is the collaborator that draws map previews. Redraw is called
// whenever the rendered artifact or the active style order changes.
type Renderer interface {
	Redraw(params MapParams)
}

// LiveBinder binds websocket channels against a server.
type LiveBinder struct {
	Options   live.Options
	ServerURL string
}

// Bind implements Binder.
func (b LiveBinder) Bind(ctx context.Context, p api.Project, onEvent func(live.Event)) (Channel, error) {
	url, err := live.ChangesURL(b.ServerURL, p)
	if err != nil {
		return nil, fmt.Errorf("failed to build changes url: %w", err)
	}
	opts := b.Options
	opts.OnEvent = onEvent
	return live.Dial(ctx, url, opts), nil
}
