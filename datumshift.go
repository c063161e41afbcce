package geotrans

import "math"

// HelmertParams is a seven-parameter Helmert transform: three translations
// in meters, three small-angle rotations in arc-seconds, and a scale factor
// in parts per million, applied in the position-vector convention.
type HelmertParams struct {
	DX, DY, DZ float64
	RX, RY, RZ float64 // arc-seconds
	ScalePPM   float64
}

// IsIdentity reports whether every parameter is zero, the convention this
// library uses to mean "no transform needed between these datums."
func (p HelmertParams) IsIdentity() bool {
	return p == HelmertParams{}
}

const arcSecToRad = math.Pi / (180.0 * 3600.0)

// defaultTransformTable seeds a fresh Context's per-pair parameter table
// with the published EPSG forward parameters; reverse entries are derived
// by deriveReverseParams at Context construction.
func defaultTransformTable() map[[2]Datum]HelmertParams {
	return map[[2]Datum]HelmertParams{
		{DatumWGS84, DatumNAD27}:  {DX: -8, DY: 160, DZ: 176, RX: -0.25, RY: 0.75, RZ: -0.06, ScalePPM: -0.34},
		{DatumWGS84, DatumED50}:   {DX: -87, DY: -98, DZ: -121, RX: -0.59, RY: -0.32, RZ: -1.12, ScalePPM: -3.72},
		{DatumWGS84, DatumTokyo}:  {DX: -148, DY: 507, DZ: 685, RX: 0, RY: 0, RZ: 0, ScalePPM: 0},
		{DatumWGS84, DatumOSGB36}: {DX: -446.448, DY: 125.157, DZ: -542.060, RX: -0.1502, RY: -0.2470, RZ: -0.8421, ScalePPM: 20.4894},
		// Identities: WGS84<->NAD83, WGS84<->MGRS_Grid, WGS84<->UTM_Grid.
		{DatumWGS84, DatumNAD83}:    {},
		{DatumWGS84, DatumMGRSGrid}: {},
		{DatumWGS84, DatumUTMGrid}:  {},
	}
}

// deriveReverseParams computes the reverse-direction parameters for a
// forward Helmert transform: rotations and scale are negated, translations
// are negated with a first-order rotation-coupling correction.
func deriveReverseParams(p HelmertParams) HelmertParams {
	if p.IsIdentity() {
		return HelmertParams{}
	}
	sigma := p.ScalePPM * 1e-6
	rx := p.RX * arcSecToRad
	ry := p.RY * arcSecToRad
	rz := p.RZ * arcSecToRad

	dx, dy, dz := p.DX, p.DY, p.DZ

	// r x dxyz (cross product), scaled into the same first-order correction
	// the forward transform applies to the rotated components.
	crossX := ry*dz - rz*dy
	crossY := rz*dx - rx*dz
	crossZ := rx*dy - ry*dx

	factor := 1.0 / (1 + sigma)
	rdx := -(dx)*factor - crossX*factor
	rdy := -(dy)*factor - crossY*factor
	rdz := -(dz)*factor - crossZ*factor

	return HelmertParams{
		DX: rdx, DY: rdy, DZ: rdz,
		RX: -p.RX, RY: -p.RY, RZ: -p.RZ,
		ScalePPM: -p.ScalePPM,
	}
}

// geodeticToGeocentric converts (lat, lon, alt) in radians/meters on
// ellipsoid e to geocentric Cartesian coordinates.
func geodeticToGeocentric(e Ellipsoid, lat, lon, alt float64) (x, y, z float64) {
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	sinLon, cosLon := math.Sin(lon), math.Cos(lon)
	n := e.A / math.Sqrt(1-e.ESq*sinLat*sinLat)

	x = (n + alt) * cosLat * cosLon
	y = (n + alt) * cosLat * sinLon
	z = (n*(1-e.ESq) + alt) * sinLat
	return x, y, z
}

// geocentricToGeodetic inverts geodeticToGeocentric using Bowring's (1985)
// closed-form.
func geocentricToGeodetic(e Ellipsoid, x, y, z float64) (lat, lon, alt float64) {
	p := math.Sqrt(x*x + y*y)
	theta := math.Atan2(z*e.A, p*e.B)
	sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)

	lat = math.Atan2(z+e.EpSq*e.B*sinTheta*sinTheta*sinTheta, p-e.ESq*e.A*cosTheta*cosTheta*cosTheta)
	lon = math.Atan2(y, x)

	sinLat := math.Sin(lat)
	n := e.A / math.Sqrt(1-e.ESq*sinLat*sinLat)
	if p > 1e-9 {
		alt = p/math.Cos(lat) - n
	} else {
		// Point on the polar axis: cos(lat) ~ 0, fall back to the z-only form.
		alt = math.Abs(z) - e.B
	}
	return lat, lon, alt
}

// applyHelmert applies the linearized position-vector Helmert transform
// to a geocentric point.
func applyHelmert(p HelmertParams, x, y, z float64) (xp, yp, zp float64) {
	sigma := p.ScalePPM * 1e-6
	rx := p.RX * arcSecToRad
	ry := p.RY * arcSecToRad
	rz := p.RZ * arcSecToRad

	xp = p.DX + (1+sigma)*x + rz*y - ry*z
	yp = p.DY - rz*x + (1+sigma)*y + rx*z
	zp = p.DZ + ry*x - rx*y + (1+sigma)*z
	return xp, yp, zp
}

// shiftDatum converts g to the target datum via geocentric Cartesian
// coordinates and a Helmert transform, short-circuiting to a datum-tag
// rewrite when the parameters are the identity.
func shiftDatum(g GeoCoord, target Datum, params HelmertParams) (GeoCoord, error) {
	if g.Datum == target {
		return g, nil
	}
	srcEllipsoid, err := ellipsoidOf(g.Datum)
	if err != nil {
		return GeoCoord{}, err
	}
	dstEllipsoid, err := ellipsoidOf(target)
	if err != nil {
		return GeoCoord{}, err
	}

	if params.IsIdentity() {
		return g.withLatLng(g.LatLng, target), nil
	}

	x, y, z := geodeticToGeocentric(srcEllipsoid, g.LatRadians(), g.LonRadians(), g.Altitude)
	xp, yp, zp := applyHelmert(params, x, y, z)
	lat, lon, alt := geocentricToGeodetic(dstEllipsoid, xp, yp, zp)

	out := NewGeoCoord(radToDeg(lat), radToDeg(lon), alt, target)
	return out, nil
}
