package models

import (
	"encoding/json"
	"fmt"
	"slices"
)

const (
	keyStylesheet = "Stylesheet"
	keyLayer      = "Layer"
	keyMap        = "Map"
)

// ProjectDocument is the shareable project definition (the mml document).
// Keys the engine does not model are kept in Extra and written back on save.
type ProjectDocument struct {
	Extra      map[string]json.RawMessage
	Map        json.RawMessage // опциональная секция Map, хранится как есть
	Stylesheet []string
	Layer      []Layer
}

// MapOptions decodes the Map section and applies defaults.
func (d *ProjectDocument) MapOptions() (MapOptions, error) {
	var opts MapOptions
	if len(d.Map) > 0 && string(d.Map) != "null" {
		if err := json.Unmarshal(d.Map, &opts); err != nil {
			return MapOptions{}, fmt.Errorf("failed to decode map options: %w", err)
		}
	}
	return opts.Normalize(), nil
}

// Clone returns a deep copy of the document.
func (d *ProjectDocument) Clone() *ProjectDocument {
	out := &ProjectDocument{
		Extra:      cloneRaw(d.Extra),
		Stylesheet: slices.Clone(d.Stylesheet),
	}
	if d.Map != nil {
		out.Map = append(json.RawMessage(nil), d.Map...)
	}
	if d.Layer != nil {
		out.Layer = make([]Layer, len(d.Layer))
		for i, l := range d.Layer {
			out.Layer[i] = l.Clone()
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler. Stylesheet and Layer are always
// present, as empty lists when unset.
func (d ProjectDocument) MarshalJSON() ([]byte, error) {
	aux := struct {
		Map        json.RawMessage `json:"Map,omitempty"`
		Stylesheet []string        `json:"Stylesheet"`
		Layer      []Layer         `json:"Layer"`
	}{
		Map:        d.Map,
		Stylesheet: d.Stylesheet,
		Layer:      d.Layer,
	}
	if aux.Stylesheet == nil {
		aux.Stylesheet = []string{}
	}
	if aux.Layer == nil {
		aux.Layer = []Layer{}
	}
	return mergeExtra(aux, d.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *ProjectDocument) UnmarshalJSON(data []byte) error {
	var aux struct {
		Map        json.RawMessage `json:"Map"`
		Stylesheet []string        `json:"Stylesheet"`
		Layer      []Layer         `json:"Layer"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	extra, err := splitExtra(data, keyStylesheet, keyLayer, keyMap)
	if err != nil {
		return err
	}
	*d = ProjectDocument{
		Extra:      extra,
		Map:        aux.Map,
		Stylesheet: aux.Stylesheet,
		Layer:      aux.Layer,
	}
	return nil
}
