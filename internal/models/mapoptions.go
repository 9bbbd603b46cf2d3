package models

import "math"

const (
	// DefaultSRS проекция карты по умолчанию
	DefaultSRS = "EPSG:3857"
	// DefaultZoom уровень масштаба по умолчанию
	DefaultZoom = 2

	mapDPI         = 72
	inchesPerMeter = 100 / 2.54
)

// DefaultBBOX охват всего мира в EPSG:3857
var DefaultBBOX = [4]float64{-20026376.39, -20048966.10, 20026376.39, 20048966.10}

// MapOptions is the optional Map section of a project document.
type MapOptions struct {
	SRS           string      `json:"SRS,omitempty"`
	BBOX          *[4]float64 `json:"BBOX,omitempty"`
	DefaultCenter *[2]float64 `json:"DefaultCenter,omitempty"`
	DefaultZoom   *float64    `json:"DefaultZoom,omitempty"`
	ZoomScales    []float64   `json:"ZoomScales,omitempty"`
	Resolutions   []float64   `json:"Resolutions,omitempty"`
}

// Normalize returns a copy of the options with all defaults applied and
// resolutions derived from ZoomScales when those are set.
func (o MapOptions) Normalize() MapOptions {
	out := o
	if out.SRS == "" {
		out.SRS = DefaultSRS
	}
	if out.BBOX == nil {
		bbox := DefaultBBOX
		out.BBOX = &bbox
	}
	if len(out.ZoomScales) > 0 {
		out.Resolutions = resolutionsForScales(out.ZoomScales)
	}
	if out.DefaultCenter == nil {
		b := out.BBOX
		center := [2]float64{
			b[0] + (b[2]-b[0])/2,
			b[1] + (b[3]-b[1])/2,
		}
		out.DefaultCenter = &center
	}
	if out.DefaultZoom == nil {
		zoom := float64(DefaultZoom)
		out.DefaultZoom = &zoom
	}
	return out
}

// Center returns the default map center. Call on normalized options.
func (o MapOptions) Center() [2]float64 {
	if o.DefaultCenter == nil {
		return [2]float64{}
	}
	return *o.DefaultCenter
}

// Zoom returns the default zoom level. Call on normalized options.
func (o MapOptions) Zoom() float64 {
	if o.DefaultZoom == nil {
		return DefaultZoom
	}
	return *o.DefaultZoom
}

// resolutionsForScales переводит масштабы в разрешения (м/пиксель).
// Первый уровень расширяется на sqrt(2), остальные берут среднее с предыдущим масштабом,
// чтобы переключение уровня происходило посередине между масштабами.
func resolutionsForScales(scales []float64) []float64 {
	res := make([]float64, 0, len(scales))
	for i, scale := range scales {
		if i == 0 {
			res = append(res, resolutionForScale(scale)*math.Sqrt2)
			continue
		}
		res = append(res, resolutionForScale((scale+scales[i-1])/2))
	}
	return res
}

func resolutionForScale(scale float64) float64 {
	return scale / (inchesPerMeter * mapDPI)
}
