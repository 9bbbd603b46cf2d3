package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(pairs ...any) []Entry {
	out := make([]Entry, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Entry{Style: pairs[i].(string), Active: pairs[i+1].(bool)})
	}
	return out
}

func TestModel_SetProjectStylesIdempotent(t *testing.T) {
	lists := [][]string{
		{"base.mss", "roads.mss", "labels.mss"},
		{"labels.mss", "base.mss"},
		{},
	}

	for _, list := range lists {
		once := NewModel()
		once.SetProjectStyles([]string{"water.mss", "base.mss"})
		once.SetProjectStyles(list)

		twice := NewModel()
		twice.SetProjectStyles([]string{"water.mss", "base.mss"})
		twice.SetProjectStyles(list)
		twice.SetProjectStyles(list)

		assert.Equal(t, once.ActiveStyles(), twice.ActiveStyles())
		assert.Equal(t, once.KnownStyles(), twice.KnownStyles())
	}
}

func TestModel_DeactivationKeepsOrder(t *testing.T) {
	m := NewModel()
	m.SetProjectStyles([]string{"A", "B"})
	m.ToggleStyle("B")
	require.Equal(t, entries("A", true, "B", false), m.ActiveStyles())

	m.SetProjectStyles([]string{"B"})

	assert.Equal(t, entries("A", false, "B", true), m.ActiveStyles())
	assert.Equal(t, []string{"B"}, m.ProjectStyles())
	assert.True(t, m.InActiveStyles("A"))
}

func TestModel_NewNameInsertion(t *testing.T) {
	tests := []struct {
		name     string
		incoming []string
		expected []Entry
	}{
		{
			name:     "after predecessor",
			incoming: []string{"A", "C"},
			expected: entries("A", true, "C", true),
		},
		{
			name:     "first in incoming list goes to head",
			incoming: []string{"C", "A"},
			expected: entries("C", true, "A", true),
		},
		{
			name:     "chain of new names",
			incoming: []string{"A", "C", "D"},
			expected: entries("A", true, "C", true, "D", true),
		},
		{
			name:     "missing entries deactivated",
			incoming: []string{"C"},
			expected: entries("C", true, "A", false),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			m.SetProjectStyles([]string{"A"})

			m.SetProjectStyles(tt.incoming)
			assert.Equal(t, tt.expected, m.ActiveStyles())
		})
	}
}

func TestModel_NewNameBetweenExisting(t *testing.T) {
	m := NewModel()
	m.SetProjectStyles([]string{"A", "B"})

	m.SetProjectStyles([]string{"A", "X", "B"})
	assert.Equal(t, entries("A", true, "X", true, "B", true), m.ActiveStyles())
}

func TestModel_ToggleUnknownStyleAppends(t *testing.T) {
	m := NewModel()
	m.SetStyles([]string{"s1", "s2", "s3"})
	m.SetProjectStyles([]string{"s1", "s2"})

	require.False(t, m.InActiveStyles("s3"))
	m.ToggleStyle("s3")

	assert.True(t, m.InActiveStyles("s3"))
	assert.Equal(t, entries("s1", true, "s2", true, "s3", true), m.ActiveStyles())
	assert.Contains(t, m.ProjectStyles(), "s3")
	assert.Equal(t, []string{"s1", "s2", "s3"}, m.KnownStyles())
}

func TestModel_ToggleKnownStyle(t *testing.T) {
	m := NewModel()
	m.SetProjectStyles([]string{"s1", "s2"})

	m.ToggleStyle("s1")
	assert.Equal(t, []string{"s2"}, m.ProjectStyles())

	m.ToggleStyle("s1")
	assert.Equal(t, []string{"s1", "s2"}, m.ProjectStyles())
}

func TestModel_Unlisted(t *testing.T) {
	m := NewModel()
	m.SetStyles([]string{"s1", "s2", "s3"})
	m.SetProjectStyles([]string{"s2"})

	assert.Equal(t, []string{"s1", "s3"}, m.Unlisted())
	assert.Equal(t, []string{"s1", "s2", "s3"}, m.Styles())
}

func TestModel_Reset(t *testing.T) {
	m := NewModel()
	m.SetStyles([]string{"s1"})
	m.SetProjectStyles([]string{"s1"})

	m.Reset()

	assert.Empty(t, m.Styles())
	assert.Empty(t, m.ActiveStyles())
	assert.Empty(t, m.KnownStyles())
	assert.Empty(t, m.ProjectStyles())
	assert.False(t, m.InActiveStyles("s1"))
}

func TestModel_OnChange(t *testing.T) {
	m := NewModel()

	calls := 0
	remove := m.OnChange(func() {
		// Слушатель вызывается без блокировки и может читать модель
		_ = m.ProjectStyles()
		calls++
	})

	m.SetProjectStyles([]string{"s1"})
	m.ToggleStyle("s1")
	assert.Equal(t, 2, calls)

	remove()
	m.ToggleStyle("s1")
	assert.Equal(t, 2, calls)
}
