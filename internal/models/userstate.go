package models

import (
	"encoding/json"
	"slices"
)

// UnsetSize marks a sidebar width or logging pane height that was never set.
// It differs from an explicit 0, which the layout code treats as collapsed.
const UnsetSize = -1

const (
	// DefaultMapSizeX ширина новой карты на сетке дашборда
	DefaultMapSizeX = 4
	// DefaultMapSizeY высота новой карты на сетке дашборда
	DefaultMapSizeY = 3
)

// DashboardMap is a map widget placed on the dashboard grid.
type DashboardMap struct {
	Coords [2]float64 `json:"coords"`
	Zoom   float64    `json:"zoom"`
	Col    int        `json:"col"`
	Row    int        `json:"row"`
	SizeX  int        `json:"sizeX"`
	SizeY  int        `json:"sizeY"`
}

// Bookmark is a named saved viewport.
type Bookmark struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Coords [2]float64 `json:"coords"`
	Zoom   float64    `json:"zoom"`
}

// AppSettings holds free-form UI preferences.
type AppSettings struct {
	Extra            map[string]json.RawMessage
	SidebarWidth     int
	LoggingHeight    int
	SidebarCollapsed bool
}

// DefaultAppSettings returns settings of a project that never stored any.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		SidebarWidth:  UnsetSize,
		LoggingHeight: UnsetSize,
	}
}

// Equal reports whether both settings hold the same values.
func (s AppSettings) Equal(other AppSettings) bool {
	if s.SidebarWidth != other.SidebarWidth ||
		s.LoggingHeight != other.LoggingHeight ||
		s.SidebarCollapsed != other.SidebarCollapsed ||
		len(s.Extra) != len(other.Extra) {
		return false
	}
	for k, v := range s.Extra {
		ov, ok := other.Extra[k]
		if !ok || string(v) != string(ov) {
			return false
		}
	}
	return true
}

type appSettingsJSON struct {
	SidebarWidth     *int  `json:"sidebarWidth,omitempty"`
	LoggingHeight    *int  `json:"loggingHeight,omitempty"`
	SidebarCollapsed *bool `json:"sidebarCollapsed,omitempty"`
}

// MarshalJSON implements json.Marshaler. UnsetSize values are omitted.
func (s AppSettings) MarshalJSON() ([]byte, error) {
	aux := appSettingsJSON{SidebarCollapsed: &s.SidebarCollapsed}
	if s.SidebarWidth != UnsetSize {
		aux.SidebarWidth = &s.SidebarWidth
	}
	if s.LoggingHeight != UnsetSize {
		aux.LoggingHeight = &s.LoggingHeight
	}
	return mergeExtra(aux, s.Extra)
}

// UnmarshalJSON implements json.Unmarshaler. Absent sizes become UnsetSize.
func (s *AppSettings) UnmarshalJSON(data []byte) error {
	var aux appSettingsJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	extra, err := splitExtra(data, "sidebarWidth", "loggingHeight", "sidebarCollapsed")
	if err != nil {
		return err
	}

	out := DefaultAppSettings()
	out.Extra = extra
	if aux.SidebarWidth != nil {
		out.SidebarWidth = *aux.SidebarWidth
	}
	if aux.LoggingHeight != nil {
		out.LoggingHeight = *aux.LoggingHeight
	}
	if aux.SidebarCollapsed != nil {
		out.SidebarCollapsed = *aux.SidebarCollapsed
	}
	*s = out
	return nil
}

// UserStateDocument is the per-user, per-project state (the mcp document).
type UserStateDocument struct {
	Extra          map[string]json.RawMessage
	AppSettings    AppSettings
	DashboardMaps  []DashboardMap
	BookmarkedMaps []Bookmark
}

// NewUserStateDocument returns an empty document with all defaults applied.
func NewUserStateDocument() *UserStateDocument {
	return &UserStateDocument{
		AppSettings:    DefaultAppSettings(),
		DashboardMaps:  []DashboardMap{},
		BookmarkedMaps: []Bookmark{},
	}
}

// Clone returns a deep copy of the document.
func (d *UserStateDocument) Clone() *UserStateDocument {
	out := &UserStateDocument{
		Extra:          cloneRaw(d.Extra),
		AppSettings:    d.AppSettings,
		DashboardMaps:  slices.Clone(d.DashboardMaps),
		BookmarkedMaps: slices.Clone(d.BookmarkedMaps),
	}
	out.AppSettings.Extra = cloneRaw(d.AppSettings.Extra)
	return out
}

type userStateJSON struct {
	AppSettings    *AppSettings   `json:"appSettings,omitempty"`
	DashboardMaps  []DashboardMap `json:"dashboardMaps"`
	BookmarkedMaps []Bookmark     `json:"bookmarkedMaps"`
}

// MarshalJSON implements json.Marshaler.
func (d UserStateDocument) MarshalJSON() ([]byte, error) {
	aux := userStateJSON{
		AppSettings:    &d.AppSettings,
		DashboardMaps:  d.DashboardMaps,
		BookmarkedMaps: d.BookmarkedMaps,
	}
	if aux.DashboardMaps == nil {
		aux.DashboardMaps = []DashboardMap{}
	}
	if aux.BookmarkedMaps == nil {
		aux.BookmarkedMaps = []Bookmark{}
	}
	return mergeExtra(aux, d.Extra)
}

// UnmarshalJSON implements json.Unmarshaler. Missing lists and settings are
// replaced by their defaults.
func (d *UserStateDocument) UnmarshalJSON(data []byte) error {
	var aux userStateJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	extra, err := splitExtra(data, "appSettings", "dashboardMaps", "bookmarkedMaps")
	if err != nil {
		return err
	}

	out := NewUserStateDocument()
	out.Extra = extra
	if aux.AppSettings != nil {
		out.AppSettings = *aux.AppSettings
	}
	if aux.DashboardMaps != nil {
		out.DashboardMaps = aux.DashboardMaps
	}
	if aux.BookmarkedMaps != nil {
		out.BookmarkedMaps = aux.BookmarkedMaps
	}
	*d = *out
	return nil
}
