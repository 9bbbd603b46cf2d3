package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DatasourceType тип источника данных слоя
type DatasourceType string

const (
	DatasourcePostGIS DatasourceType = "postgis"
	DatasourceSQLite  DatasourceType = "sqlite"
	DatasourceShape   DatasourceType = "shape"
	DatasourceGDAL    DatasourceType = "gdal"
	DatasourceOGR     DatasourceType = "ogr"
	DatasourceGeoJSON DatasourceType = "geojson"
)

// ErrUnknownDatasource is returned for a datasource with an unsupported type.
var ErrUnknownDatasource = errors.New("unsupported datasource type")

// Datasource is the tagged union of layer datasources. Every variant carries
// only the fields meaningful for its type, so serialization never leaks
// fields of a previously selected type.
type Datasource interface {
	Type() DatasourceType
	originals() string
}

// origin хранит нестроковые значения полей в том виде, в каком они пришли
// в документе (JSON объект), чтобы неизмененное поле записалось тем же типом
type origin struct {
	raw string
}

func (o origin) originals() string { return o.raw }

// PostGIS datasource
type PostGIS struct {
	origin
	Host          string `json:"host,omitempty"`
	Port          string `json:"port,omitempty"`
	Database      string `json:"dbname,omitempty"`
	User          string `json:"user,omitempty"`
	Password      string `json:"password,omitempty"`
	Table         string `json:"table,omitempty"`
	GeometryField string `json:"geometry_field,omitempty"`
	KeyField      string `json:"key_field,omitempty"`
	Extent        string `json:"extent,omitempty"`
	ExtentCache   string `json:"extent_cache,omitempty"`
	SRID          string `json:"srid,omitempty"`
}

// SQLite datasource
type SQLite struct {
	origin
	File          string `json:"file,omitempty"`
	AttachDB      string `json:"attachdb,omitempty"`
	Table         string `json:"table,omitempty"`
	GeometryField string `json:"geometry_field,omitempty"`
	KeyField      string `json:"key_field,omitempty"`
	Extent        string `json:"extent,omitempty"`
	SRID          string `json:"srid,omitempty"`
}

// Shape datasource (ESRI shapefile)
type Shape struct {
	origin
	File string `json:"file,omitempty"`
	SRID string `json:"srid,omitempty"`
}

// GDAL raster datasource
type GDAL struct {
	origin
	File   string `json:"file,omitempty"`
	Band   string `json:"band,omitempty"`
	SRID   string `json:"srid,omitempty"`
	Extent string `json:"extent,omitempty"`
}

// OGR vector datasource
type OGR struct {
	origin
	File   string `json:"file,omitempty"`
	Layer  string `json:"layer,omitempty"`
	SRID   string `json:"srid,omitempty"`
	Extent string `json:"extent,omitempty"`
}

// GeoJSON datasource
type GeoJSON struct {
	origin
	File string `json:"file,omitempty"`
	SRID string `json:"srid,omitempty"`
}

func (PostGIS) Type() DatasourceType { return DatasourcePostGIS }
func (SQLite) Type() DatasourceType  { return DatasourceSQLite }
func (Shape) Type() DatasourceType   { return DatasourceShape }
func (GDAL) Type() DatasourceType    { return DatasourceGDAL }
func (OGR) Type() DatasourceType     { return DatasourceOGR }
func (GeoJSON) Type() DatasourceType { return DatasourceGeoJSON }


// MarshalDatasource encodes ds as a JSON object with a "type" discriminator.
// A nil datasource encodes as null.
func MarshalDatasource(ds Datasource) ([]byte, error) {
	if ds == nil {
		return []byte("null"), nil
	}
	fields, err := json.Marshal(ds)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(fields, &out); err != nil {
		return nil, err
	}
	if raw := ds.originals(); raw != "" {
		var orig map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw), &orig); err != nil {
			return nil, err
		}
		for key, value := range out {
			prev, ok := orig[key]
			if !ok {
				continue
			}
			var decoded any
			if err := json.Unmarshal(prev, &decoded); err == nil && scalarString(decoded) == value {
				out[key] = prev
			}
		}
	}
	out["type"] = string(ds.Type())
	return json.Marshal(out)
}

// DecodeDatasource decodes a datasource object. Scalar values may be strings,
// numbers or arrays; non-string values are remembered and written back with
// their original JSON type as long as they are not edited. An object without
// type but with a file is a shapefile; an object with neither decodes to nil.
func DecodeDatasource(data []byte) (Datasource, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode datasource: %w", err)
	}
	get := func(key string) string {
		return scalarString(fields[key])
	}
	o, err := originOf(data, fields)
	if err != nil {
		return nil, err
	}

	switch typ := DatasourceType(get("type")); typ {
	case DatasourcePostGIS:
		return PostGIS{
			origin:        o,
			Host:          get("host"),
			Port:          get("port"),
			Database:      get("dbname"),
			User:          get("user"),
			Password:      get("password"),
			Table:         get("table"),
			GeometryField: get("geometry_field"),
			KeyField:      get("key_field"),
			Extent:        get("extent"),
			ExtentCache:   get("extent_cache"),
			SRID:          get("srid"),
		}, nil
	case DatasourceSQLite:
		return SQLite{
			origin:        o,
			File:          get("file"),
			AttachDB:      get("attachdb"),
			Table:         get("table"),
			GeometryField: get("geometry_field"),
			KeyField:      get("key_field"),
			Extent:        get("extent"),
			SRID:          get("srid"),
		}, nil
	case DatasourceShape, "":
		if typ == "" && get("file") == "" {
			return nil, nil
		}
		return Shape{origin: o, File: get("file"), SRID: get("srid")}, nil
	case DatasourceGDAL:
		return GDAL{origin: o, File: get("file"), Band: get("band"), SRID: get("srid"), Extent: get("extent")}, nil
	case DatasourceOGR:
		return OGR{origin: o, File: get("file"), Layer: get("layer"), SRID: get("srid"), Extent: get("extent")}, nil
	case DatasourceGeoJSON:
		return GeoJSON{origin: o, File: get("file"), SRID: get("srid")}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDatasource, typ)
	}
}

// sharedKeys поля, которые переносятся при смене типа источника
var sharedKeys = []string{"file", "srid", "extent", "table", "geometry_field", "key_field"}

// ConvertDatasource switches ds to another type, carrying over the fields
// both types share (file, srid, extent, table, geometry and key fields).
// Everything that does not exist in the target type is dropped.
func ConvertDatasource(ds Datasource, to DatasourceType) (Datasource, error) {
	fields := make(map[string]json.RawMessage)
	if ds != nil {
		data, err := MarshalDatasource(ds)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, err
		}
	}

	out := make(map[string]json.RawMessage, len(sharedKeys)+1)
	for _, key := range sharedKeys {
		if v, ok := fields[key]; ok {
			out[key] = v
		}
	}
	typ, err := json.Marshal(string(to))
	if err != nil {
		return nil, err
	}
	out["type"] = typ

	data, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return DecodeDatasource(data)
}

// originOf собирает нестроковые значения полей источника
func originOf(data []byte, fields map[string]any) (origin, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return origin{}, fmt.Errorf("failed to decode datasource: %w", err)
	}
	kept := make(map[string]json.RawMessage)
	for key, value := range fields {
		switch value.(type) {
		case nil, string:
			continue
		}
		if key != "type" {
			kept[key] = raw[key]
		}
	}
	if len(kept) == 0 {
		return origin{}, nil
	}
	buf, err := json.Marshal(kept)
	if err != nil {
		return origin{}, err
	}
	return origin{raw: string(buf)}, nil
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		// extent может быть задан массивом
		parts := make([]string, 0, len(val))
		for _, p := range val {
			parts = append(parts, scalarString(p))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}
