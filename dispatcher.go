package geotrans

import (
	"fmt"
	"math"
)

// Format names an output representation the dispatcher can route a point
// to.
type Format int

// Supported formats.
const (
	FormatDD Format = iota
	FormatDMM
	FormatDMS
	FormatUTM
	FormatMGRS
	FormatBritishGrid
	FormatJapanGrid
)

// ToUTM projects a geodetic point to UTM, shifting it to the UTM_Grid
// pseudo-datum first. zoneOverride of 0 means auto-select.
func (c *Context) ToUTM(g GeoCoord, zoneOverride int) (UTMCoord, error) {
	if err := c.checkActive(); err != nil {
		return UTMCoord{}, err
	}
	shifted, err := c.ShiftDatum(g, DatumUTMGrid)
	if err != nil {
		return UTMCoord{}, err
	}
	return c.utm.forward(shifted, zoneOverride)
}

// FromUTM converts a UTM coordinate back to geodetic on targetDatum.
func (c *Context) FromUTM(u UTMCoord, targetDatum Datum) (GeoCoord, error) {
	if err := c.checkActive(); err != nil {
		return GeoCoord{}, err
	}
	g, err := c.utm.inverse(u, DatumUTMGrid)
	if err != nil {
		return GeoCoord{}, err
	}
	return c.ShiftDatum(g, targetDatum)
}

// ToMGRS projects a geodetic point to MGRS, shifting it to the MGRS_Grid
// pseudo-datum first.
func (c *Context) ToMGRS(g GeoCoord, precision int) (MGRSCoord, error) {
	if err := c.checkActive(); err != nil {
		return MGRSCoord{}, err
	}
	shifted, err := c.ShiftDatum(g, DatumMGRSGrid)
	if err != nil {
		return MGRSCoord{}, err
	}
	return c.mgrs.forward(shifted, precision)
}

// FromMGRS converts an MGRS coordinate back to geodetic on targetDatum.
func (c *Context) FromMGRS(m MGRSCoord, targetDatum Datum) (GeoCoord, error) {
	if err := c.checkActive(); err != nil {
		return GeoCoord{}, err
	}
	g, err := c.mgrs.inverse(m, DatumMGRSGrid)
	if err != nil {
		return GeoCoord{}, err
	}
	return c.ShiftDatum(g, targetDatum)
}

// ToBritishGrid projects a geodetic point to the OSGB36 National Grid,
// shifting it to OSGB36 first through the context's transform table. A
// source datum with no registered pair to OSGB36 fails with
// KindDatumTransform.
func (c *Context) ToBritishGrid(g GeoCoord) (BritishGridCoord, error) {
	if err := c.checkActive(); err != nil {
		return BritishGridCoord{}, err
	}
	shifted, err := c.ShiftDatum(g, DatumOSGB36)
	if err != nil {
		return BritishGridCoord{}, err
	}
	return c.british.forward(shifted)
}

// FromBritishGrid converts a National Grid coordinate back to geodetic on
// targetDatum.
func (c *Context) FromBritishGrid(b BritishGridCoord, targetDatum Datum) (GeoCoord, error) {
	if err := c.checkActive(); err != nil {
		return GeoCoord{}, err
	}
	g, err := c.british.inverse(b)
	if err != nil {
		return GeoCoord{}, err
	}
	return c.ShiftDatum(g, targetDatum)
}

// ToJapanGrid projects a geodetic point to the Japan Plane Rectangular Grid,
// shifting it to Tokyo datum first through the context's transform table. A
// source datum with no registered pair to Tokyo fails with
// KindDatumTransform.
func (c *Context) ToJapanGrid(g GeoCoord) (JapanGridCoord, error) {
	if err := c.checkActive(); err != nil {
		return JapanGridCoord{}, err
	}
	shifted, err := c.ShiftDatum(g, DatumTokyo)
	if err != nil {
		return JapanGridCoord{}, err
	}
	return c.japan.forward(shifted)
}

// FromJapanGrid converts a Japan Grid coordinate back to geodetic on
// targetDatum.
func (c *Context) FromJapanGrid(j JapanGridCoord, targetDatum Datum) (GeoCoord, error) {
	if err := c.checkActive(); err != nil {
		return GeoCoord{}, err
	}
	g, err := c.japan.inverse(j)
	if err != nil {
		return GeoCoord{}, err
	}
	return c.ShiftDatum(g, targetDatum)
}

// Format renders g in the requested format, shifting datum first when
// required. DD/DMM/DMS shift to targetDatum and format the geographic
// position directly; the grid formats route through the corresponding
// projector, which picks its own working datum.
func (c *Context) Format(g GeoCoord, format Format, targetDatum Datum) (string, error) {
	if err := c.checkActive(); err != nil {
		return "", err
	}

	switch format {
	case FormatDD, FormatDMM, FormatDMS:
		shifted, err := c.ShiftDatum(g, targetDatum)
		if err != nil {
			return "", err
		}
		switch format {
		case FormatDD:
			return formatDD(shifted), nil
		case FormatDMM:
			return formatDMM(shifted), nil
		default:
			return formatDMS(shifted), nil
		}
	case FormatUTM:
		u, err := c.ToUTM(g, 0)
		if err != nil {
			return "", err
		}
		band, err := utmBandLetterOf(g.LatDegrees())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d%c %.0fE %.0fN", u.Zone, band, u.Easting, u.Northing), nil
	case FormatMGRS:
		m, err := c.ToMGRS(g, 5)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d%c %s %05.0f %05.0f", m.Zone, m.Band, string(m.Square[:]), float64(m.Easting), float64(m.Northing)), nil
	case FormatBritishGrid:
		b, err := c.ToBritishGrid(g)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %.0f %.0f", string(b.Letters[:]), b.Easting, b.Northing), nil
	case FormatJapanGrid:
		j, err := c.ToJapanGrid(g)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Zone %d: %.3f, %.3f", j.Zone, j.X, j.Y), nil
	default:
		return "", newErrorf(KindUnsupportedFormat, "unsupported format %d", format)
	}
}

func formatDD(g GeoCoord) string {
	latHemi := "N"
	lat := g.LatDegrees()
	if lat < 0 {
		latHemi = "S"
		lat = -lat
	}
	lonHemi := "E"
	lon := g.LonDegrees()
	if lon < 0 {
		lonHemi = "W"
		lon = -lon
	}
	return fmt.Sprintf("%.6f°%s, %.6f°%s", lat, latHemi, lon, lonHemi)
}

func formatDMM(g GeoCoord) string {
	latHemi, latDeg, latMin := degMinOf(g.LatDegrees())
	lonHemi, lonDeg, lonMin := degMinOf(g.LonDegrees())
	return fmt.Sprintf("%d°%.3f'%s, %d°%.3f'%s", latDeg, latMin, latNS(latHemi), lonDeg, lonMin, lonEW(lonHemi))
}

func formatDMS(g GeoCoord) string {
	latHemi, latDeg, latMinF := degMinOf(g.LatDegrees())
	latMin := int(latMinF)
	latSec := (latMinF - float64(latMin)) * 60
	lonHemi, lonDeg, lonMinF := degMinOf(g.LonDegrees())
	lonMin := int(lonMinF)
	lonSec := (lonMinF - float64(lonMin)) * 60
	return fmt.Sprintf(`%d°%d'%.2f"%s, %d°%d'%.2f"%s`, latDeg, latMin, latSec, latNS(latHemi), lonDeg, lonMin, lonSec, lonEW(lonHemi))
}

// degMinOf splits an absolute degree value into (negative-flag, whole
// degrees, fractional minutes).
func degMinOf(v float64) (negative bool, deg int, min float64) {
	negative = v < 0
	v = math.Abs(v)
	deg = int(v)
	min = (v - float64(deg)) * 60
	return negative, deg, min
}

func latNS(negative bool) string {
	if negative {
		return "S"
	}
	return "N"
}

func lonEW(negative bool) string {
	if negative {
		return "W"
	}
	return "E"
}
