package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMML = `{
  "name": "osm-bright",
  "srs": "+proj=merc",
  "Stylesheet": ["base.mss", "roads.mss"],
  "Layer": [
    {
      "id": "roads",
      "name": "roads",
      "class": "line",
      "geometry": "linestring",
      "status": "off",
      "advanced": {},
      "Datasource": {"type": "postgis", "dbname": "osm", "table": "planet_osm_line"}
    },
    {
      "id": "coast",
      "name": "coast",
      "Datasource": {"file": "coast.shp"}
    }
  ]
}`

func TestProjectDocument_Unmarshal(t *testing.T) {
	var doc ProjectDocument
	require.NoError(t, json.Unmarshal([]byte(sampleMML), &doc))

	assert.Equal(t, []string{"base.mss", "roads.mss"}, doc.Stylesheet)
	require.Len(t, doc.Layer, 2)

	roads := doc.Layer[0]
	assert.Equal(t, "roads", roads.Name)
	assert.Equal(t, "line", roads.Class)
	assert.False(t, roads.Active())
	assert.Equal(t, PostGIS{Database: "osm", Table: "planet_osm_line"}, roads.Datasource)
	assert.Contains(t, roads.Extra, "advanced")

	coast := doc.Layer[1]
	assert.True(t, coast.Active())
	assert.Equal(t, Shape{File: "coast.shp"}, coast.Datasource)

	assert.Contains(t, doc.Extra, "name")
	assert.Contains(t, doc.Extra, "srs")
	assert.Nil(t, doc.Map)
}

func TestProjectDocument_MarshalKeepsUnknownKeys(t *testing.T) {
	var doc ProjectDocument
	require.NoError(t, json.Unmarshal([]byte(sampleMML), &doc))

	doc.Stylesheet = []string{"roads.mss"}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "osm-bright", out["name"])
	assert.Equal(t, "+proj=merc", out["srs"])
	assert.Equal(t, []any{"roads.mss"}, out["Stylesheet"])

	layers, ok := out["Layer"].([]any)
	require.True(t, ok)
	require.Len(t, layers, 2)
	roads := layers[0].(map[string]any)
	assert.Equal(t, map[string]any{}, roads["advanced"])
	assert.Equal(t, map[string]any{
		"type":   "postgis",
		"dbname": "osm",
		"table":  "planet_osm_line",
	}, roads["Datasource"])
}

func TestProjectDocument_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(ProjectDocument{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Stylesheet":[],"Layer":[]}`, string(data))
}

func TestProjectDocument_Clone(t *testing.T) {
	var doc ProjectDocument
	require.NoError(t, json.Unmarshal([]byte(sampleMML), &doc))

	clone := doc.Clone()
	clone.Stylesheet[0] = "changed.mss"
	clone.Layer[0].Name = "changed"

	assert.Equal(t, "base.mss", doc.Stylesheet[0])
	assert.Equal(t, "roads", doc.Layer[0].Name)
}

func TestProjectDocument_MapOptions(t *testing.T) {
	doc := ProjectDocument{Map: json.RawMessage(`{"SRS":"EPSG:25832","DefaultZoom":5}`)}

	opts, err := doc.MapOptions()
	require.NoError(t, err)
	assert.Equal(t, "EPSG:25832", opts.SRS)
	assert.Equal(t, float64(5), opts.Zoom())

	doc = ProjectDocument{Map: json.RawMessage(`"broken"`)}
	_, err = doc.MapOptions()
	assert.Error(t, err)
}
