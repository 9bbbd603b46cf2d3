// Package live is the receive-only push channel that reports recompilations
// of a loaded project. It reconnects on any transport drop until closed.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/cartosync/pkg/api"
)

// DefaultReconnectInterval пауза между попытками переподключения
const DefaultReconnectInterval = 100 * time.Millisecond

// State of a channel.
type State int

const (
	StateClosed State = iota
	StateConnecting
	StateOpen
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "closed"
	}
}

// Options configure a channel.
type Options struct {
	Dialer *websocket.Dialer
	Header http.Header
	Logger *slog.Logger
	// OnEvent получает события с самого первого соединения
	OnEvent           func(Event)
	ReconnectInterval time.Duration
}

// Channel is a reconnecting websocket subscription.
type Channel struct {
	dialer    *websocket.Dialer
	header    http.Header
	logger    *slog.Logger
	conn      *websocket.Conn
	cancel    context.CancelFunc
	done      chan struct{}
	listeners map[int]func(Event)
	url       string
	wsID      string
	interval  time.Duration
	nextID    int
	state     State
	mu        sync.Mutex
}

// ChangesURL builds the websocket URL of the changes endpoint for p.
func ChangesURL(serverURL string, p api.Project) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/v1/changes"

	q := url.Values{}
	q.Set("mml", p.MML)
	q.Set("mss", strings.Join(p.AvailableMSS, ","))
	q.Set("base", p.Base)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Dial starts the channel and returns immediately. Connection attempts run
// in the background until Close is called; ctx bounds the whole lifetime.
func Dial(ctx context.Context, rawURL string, opts Options) *Channel {
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ReconnectInterval <= 0 {
		opts.ReconnectInterval = DefaultReconnectInterval
	}

	runCtx, cancel := context.WithCancel(ctx)
	c := &Channel{
		dialer:    opts.Dialer,
		header:    opts.Header,
		logger:    opts.Logger,
		cancel:    cancel,
		done:      make(chan struct{}),
		listeners: make(map[int]func(Event)),
		url:       rawURL,
		interval:  opts.ReconnectInterval,
		state:     StateConnecting,
	}
	if opts.OnEvent != nil {
		c.listeners[c.nextID] = opts.OnEvent
		c.nextID++
	}

	go c.run(runCtx)
	return c
}

// State returns the current state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// WsID returns the id the server assigned to the current connection.
func (c *Channel) WsID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wsID
}

// Subscribe registers fn for every event. Events are delivered from the
// reader goroutine in transport order. The returned function unsubscribes.
func (c *Channel) Subscribe(fn func(Event)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Close stops the channel for good and waits for the reader to exit.
// It is safe to call more than once.
func (c *Channel) Close() {
	c.cancel()

	c.mu.Lock()
	if c.conn != nil {
		// разблокирует ReadJSON в читающей горутине
		_ = c.conn.Close()
	}
	c.mu.Unlock()

	<-c.done
}

func (c *Channel) run(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		c.state = StateClosed
		c.conn = nil
		c.mu.Unlock()
		close(c.done)
	}()

	for {
		conn, _, err := c.dialer.DialContext(ctx, c.url, c.header)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Debug("Websocket connect failed", "url", c.url, "error", err)
		} else {
			if !c.attach(ctx, conn) {
				_ = conn.Close()
				return
			}
			c.logger.Info("Websocket connected", "url", c.url)
			c.emit(Event{Kind: KindConnected, Lines: []string{ConnectedText}})

			err = c.read(conn)
			_ = conn.Close()
			if ctx.Err() != nil {
				return
			}
			c.logger.Debug("Websocket connection lost", "error", err)
		}

		c.setState(StateReconnecting)
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.interval):
		}
	}
}

// attach публикует соединение; false если канал уже закрыт
func (c *Channel) attach(ctx context.Context, conn *websocket.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx.Err() != nil {
		return false
	}
	c.conn = conn
	c.wsID = ""
	c.state = StateOpen
	return true
}

func (c *Channel) read(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			c.conn = nil
			c.mu.Unlock()
			return err
		}

		var msg api.ChangeMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("Skipping malformed websocket message", "error", err)
			continue
		}

		if msg.WsID != "" {
			c.mu.Lock()
			c.wsID = msg.WsID
			c.mu.Unlock()
		}

		if ev, ok := Classify(msg); ok {
			c.emit(ev)
		}
	}
}

func (c *Channel) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

func (c *Channel) emit(ev Event) {
	c.mu.Lock()
	fns := make([]func(Event), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
