package geotrans

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Datum names a physical reference frame: an ellipsoid plus an anchoring to
// the earth's surface. MGRSGrid and UTMGrid are pseudo-datums that alias
// WGS84; they exist so the dispatcher can parameterize "which grid" and
// "which physical datum" with the same tagged value.
type Datum int

// Registered datums.
const (
	DatumWGS84 Datum = iota
	DatumNAD83
	DatumNAD27
	DatumED50
	DatumTokyo
	DatumOSGB36
	DatumMGRSGrid
	DatumUTMGrid

	// DatumMax counts the registered datums; keep it last so adding a
	// datum only requires one edit.
	DatumMax
)

func (d Datum) String() string {
	switch d {
	case DatumWGS84:
		return "WGS84"
	case DatumNAD83:
		return "NAD83"
	case DatumNAD27:
		return "NAD27"
	case DatumED50:
		return "ED50"
	case DatumTokyo:
		return "Tokyo"
	case DatumOSGB36:
		return "OSGB36"
	case DatumMGRSGrid:
		return "MGRS_Grid"
	case DatumUTMGrid:
		return "UTM_Grid"
	default:
		return fmt.Sprintf("Datum(%d)", int(d))
	}
}

// GeoCoord is a geographic point: latitude/longitude in degrees, altitude
// in meters, tagged with the datum it is expressed on. The underlying
// angle representation is golang/geo's s1.Angle/s2.LatLng.
type GeoCoord struct {
	LatLng   s2.LatLng
	Altitude float64
	Datum    Datum
}

// NewGeoCoord builds a GeoCoord from degrees, normalizing longitude by
// +/-360 wrapping and clamping latitude to [-90, 90].
func NewGeoCoord(latDeg, lonDeg, altitude float64, datum Datum) GeoCoord {
	lat := clampLatitude(latDeg)
	lon := wrapLongitude(lonDeg)
	return GeoCoord{
		LatLng:   s2.LatLngFromDegrees(lat, lon),
		Altitude: altitude,
		Datum:    datum,
	}
}

func (g GeoCoord) LatDegrees() float64 { return g.LatLng.Lat.Degrees() }
func (g GeoCoord) LonDegrees() float64 { return g.LatLng.Lng.Degrees() }
func (g GeoCoord) LatRadians() float64 { return float64(g.LatLng.Lat) }
func (g GeoCoord) LonRadians() float64 { return float64(g.LatLng.Lng) }

func clampLatitude(latDeg float64) float64 {
	if latDeg > 90 {
		return 90
	}
	if latDeg < -90 {
		return -90
	}
	return latDeg
}

func wrapLongitude(lonDeg float64) float64 {
	for lonDeg > 180 {
		lonDeg -= 360
	}
	for lonDeg <= -180 {
		lonDeg += 360
	}
	return lonDeg
}

// withLatLng returns a copy of g with the geodetic position replaced,
// preserving altitude, and the datum tag replaced -- used by shiftDatum's
// identity short-circuit.
func (g GeoCoord) withLatLng(ll s2.LatLng, datum Datum) GeoCoord {
	g.LatLng = ll
	g.Datum = datum
	return g
}

func angleFromRadians(r float64) s1.Angle { return s1.Angle(r) }

func degToRad(d float64) float64 { return d * math.Pi / 180.0 }
func radToDeg(r float64) float64 { return r * 180.0 / math.Pi }
