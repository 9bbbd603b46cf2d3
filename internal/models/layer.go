package models

import (
	"encoding/json"
	"fmt"
	"maps"
)

// LayerStatusOff отключенный слой
const LayerStatusOff = "off"

// Layer is a single entry of the project document's Layer list.
type Layer struct {
	Properties map[string]any
	Datasource Datasource
	Extra      map[string]json.RawMessage // неизвестные ключи, сохраняются как есть
	ID         string
	Name       string
	Class      string
	Geometry   string
	SRS        string
	Status     string
	Extent     []float64
}

// DefaultLayer returns the template a newly added layer starts from.
func DefaultLayer() Layer {
	return Layer{
		Extent:     []float64{0, 0, 0, 0},
		Datasource: PostGIS{},
	}
}

// Active reports whether the layer is rendered.
func (l Layer) Active() bool {
	return l.Status != LayerStatusOff
}

// Clone returns a deep copy of the layer.
func (l Layer) Clone() Layer {
	out := l
	if l.Extent != nil {
		out.Extent = append([]float64(nil), l.Extent...)
	}
	if l.Properties != nil {
		out.Properties = maps.Clone(l.Properties)
	}
	out.Extra = cloneRaw(l.Extra)
	// варианты Datasource - значения, копируются присваиванием
	return out
}

type layerJSON struct {
	Properties map[string]any  `json:"properties,omitempty"`
	ID         string          `json:"id,omitempty"`
	Name       string          `json:"name,omitempty"`
	Class      string          `json:"class,omitempty"`
	Geometry   string          `json:"geometry,omitempty"`
	SRS        string          `json:"srs,omitempty"`
	Status     string          `json:"status,omitempty"`
	Datasource json.RawMessage `json:"Datasource,omitempty"`
	Extent     []float64       `json:"extent,omitempty"`
}

var layerKeys = []string{"properties", "id", "name", "class", "geometry", "srs", "status", "Datasource", "extent"}

// MarshalJSON implements json.Marshaler.
func (l Layer) MarshalJSON() ([]byte, error) {
	aux := layerJSON{
		Properties: l.Properties,
		ID:         l.ID,
		Name:       l.Name,
		Class:      l.Class,
		Geometry:   l.Geometry,
		SRS:        l.SRS,
		Status:     l.Status,
		Extent:     l.Extent,
	}
	if l.Datasource != nil {
		ds, err := MarshalDatasource(l.Datasource)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", l.Name, err)
		}
		aux.Datasource = ds
	}
	return mergeExtra(aux, l.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Layer) UnmarshalJSON(data []byte) error {
	var aux layerJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ds, err := DecodeDatasource(aux.Datasource)
	if err != nil {
		return fmt.Errorf("layer %q: %w", aux.Name, err)
	}
	extra, err := splitExtra(data, layerKeys...)
	if err != nil {
		return err
	}

	*l = Layer{
		Properties: aux.Properties,
		Datasource: ds,
		Extra:      extra,
		ID:         aux.ID,
		Name:       aux.Name,
		Class:      aux.Class,
		Geometry:   aux.Geometry,
		SRS:        aux.SRS,
		Status:     aux.Status,
		Extent:     aux.Extent,
	}
	return nil
}
