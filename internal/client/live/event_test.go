package live

import (
	"testing"
	"time"

	"github.com/iudanet/cartosync/pkg/api"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	updated := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		msg      api.ChangeMessage
		expected Event
		ok       bool
	}{
		{
			name: "warnings only",
			msg:  api.ChangeMessage{Error: api.StringPtr(""), Warnings: []string{"w1", "w2"}},
			expected: Event{
				Kind:  KindWarning,
				Lines: []string{"w1", "w2"},
			},
			ok: true,
		},
		{
			name: "error with warnings",
			msg:  api.ChangeMessage{Error: api.StringPtr("bad rule"), Warnings: []string{"w1"}},
			expected: Event{
				Kind:  KindError,
				Lines: []string{"Error: bad rule", "w1"},
			},
			ok: true,
		},
		{
			name: "error in file",
			msg:  api.ChangeMessage{Error: api.StringPtr("unexpected token"), Filename: api.StringPtr("roads.mss")},
			expected: Event{
				Kind:  KindError,
				Lines: []string{"Error in roads.mss:", "unexpected token"},
			},
			ok: true,
		},
		{
			name: "plain error",
			msg:  api.ChangeMessage{Error: api.StringPtr("boom")},
			expected: Event{
				Kind:  KindError,
				Lines: []string{"Error: boom"},
			},
			ok: true,
		},
		{
			name: "missing files",
			msg:  api.ChangeMessage{Error: api.StringPtr("missing files"), Files: []string{"a.mss", "b.mss"}},
			expected: Event{
				Kind:  KindError,
				Lines: []string{"Error: missing files", "• a.mss", "• b.mss"},
			},
			ok: true,
		},
		{
			name: "success",
			msg:  api.ChangeMessage{UpdatedAt: api.TimePtr(updated), UpdatedMML: api.BoolPtr(true)},
			expected: Event{
				Kind:       KindSuccess,
				Lines:      []string{"Updated"},
				UpdatedAt:  updated,
				UpdatedMML: true,
			},
			ok: true,
		},
		{
			name: "success without mml change",
			msg:  api.ChangeMessage{UpdatedAt: api.TimePtr(updated)},
			expected: Event{
				Kind:      KindSuccess,
				Lines:     []string{"Updated"},
				UpdatedAt: updated,
			},
			ok: true,
		},
		{
			name: "empty warnings are skipped",
			msg:  api.ChangeMessage{Error: api.StringPtr(""), Warnings: []string{"", "w2"}},
			expected: Event{
				Kind:  KindWarning,
				Lines: []string{"w2"},
			},
			ok: true,
		},
		{
			name: "only empty warnings",
			msg:  api.ChangeMessage{Error: api.StringPtr(""), Warnings: []string{""}},
			ok:   false,
		},
		{
			name: "wsid frame",
			msg:  api.ChangeMessage{WsID: "abc"},
			ok:   false,
		},
		{
			name: "empty message",
			msg:  api.ChangeMessage{},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := Classify(tt.msg)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, ev)
			}
		})
	}
}

func TestEvent_Text(t *testing.T) {
	ev, ok := Classify(api.ChangeMessage{Error: api.StringPtr(""), Warnings: []string{"w1", "w2"}})
	assert.True(t, ok)
	assert.Contains(t, ev.Text(), "w1")
	assert.Contains(t, ev.Text(), "w2")
	assert.Equal(t, "warning", ev.Kind.String())
}
