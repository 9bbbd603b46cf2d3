package cli

import (
	"context"

	"github.com/iudanet/cartosync/internal/client/live"
	"github.com/iudanet/cartosync/internal/client/project"
	"github.com/iudanet/cartosync/pkg/api"
)

// detachedBinder не открывает live канал; используется разовыми командами
type detachedBinder struct{}

func (detachedBinder) Bind(context.Context, api.Project, func(live.Event)) (project.Channel, error) {
	return detachedChannel{}, nil
}

type detachedChannel struct{}

func (detachedChannel) State() live.State { return live.StateClosed }

func (detachedChannel) WsID() string { return "" }

func (detachedChannel) Subscribe(func(live.Event)) func() { return func() {} }

func (detachedChannel) Close() {}
