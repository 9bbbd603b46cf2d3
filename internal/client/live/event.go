package live

import (
	"strings"
	"time"

	"github.com/iudanet/cartosync/pkg/api"
)

// Kind is the class of a channel event.
type Kind int

const (
	// KindConnected соединение установлено (в том числе после переподключения)
	KindConnected Kind = iota
	// KindWarning компиляция прошла с предупреждениями
	KindWarning
	// KindError ошибка компиляции
	KindError
	// KindSuccess проект перекомпилирован
	KindSuccess
)

func (k Kind) String() string {
	switch k {
	case KindConnected:
		return "connected"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	case KindSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// ConnectedText is the line of a KindConnected event.
const ConnectedText = "Connected to the websocket server"

// Event is a classified channel message.
type Event struct {
	UpdatedAt  time.Time // только для KindSuccess
	Lines      []string
	Kind       Kind
	UpdatedMML bool
}

// Text joins the event lines.
func (e Event) Text() string {
	return strings.Join(e.Lines, "\n")
}

// Classify turns a server message into an event. The second result is false
// for messages that produce no event, such as the initial wsid frame.
func Classify(msg api.ChangeMessage) (Event, bool) {
	if msg.Error == nil {
		if msg.UpdatedAt == nil {
			return Event{}, false
		}
		return Event{
			Kind:       KindSuccess,
			Lines:      []string{"Updated"},
			UpdatedAt:  *msg.UpdatedAt,
			UpdatedMML: msg.UpdatedMML != nil && *msg.UpdatedMML,
		}, true
	}

	ev := Event{Kind: KindError}
	switch {
	case msg.Warnings != nil:
		if *msg.Error == "" {
			ev.Kind = KindWarning
		} else {
			ev.Lines = append(ev.Lines, "Error: "+*msg.Error)
		}
		for _, w := range msg.Warnings {
			if w != "" {
				ev.Lines = append(ev.Lines, w)
			}
		}
		if len(ev.Lines) == 0 {
			return Event{}, false
		}
	case msg.Filename != nil:
		ev.Lines = append(ev.Lines, "Error in "+*msg.Filename+":", *msg.Error)
	default:
		ev.Lines = append(ev.Lines, "Error: "+*msg.Error)
	}

	for _, f := range msg.Files {
		ev.Lines = append(ev.Lines, "• "+f)
	}
	return ev, true
}
