package geotrans

import "math"

// japanZoneOrigin is one of the nineteen Japan Plane Rectangular Coordinate
// System zone origins (Tokyo datum / Bessel 1841).
type japanZoneOrigin struct {
	Zone   int
	LatDeg float64
	LonDeg float64
}

// japanZones are the nineteen official zone origins.
var japanZones = [19]japanZoneOrigin{
	{1, 33.0, 129.5},
	{2, 33.0, 131.0},
	{3, 36.0, 132.166666667},
	{4, 33.0, 133.5},
	{5, 36.0, 134.333333333},
	{6, 36.0, 136.0},
	{7, 36.0, 137.166666667},
	{8, 36.0, 138.5},
	{9, 36.0, 139.833333333},
	{10, 40.0, 140.833333333},
	{11, 44.0, 140.25},
	{12, 44.0, 142.25},
	{13, 44.0, 144.25},
	{14, 26.0, 142.0},
	{15, 26.0, 127.5},
	{16, 26.0, 124.0},
	{17, 26.0, 131.0},
	{18, 20.0, 136.0},
	{19, 26.0, 154.0},
}

const japanScaleFactor = 0.9999

// JapanGridCoord is a Japan Plane Rectangular Coordinate System point.
// Following the surveying convention for this system, X holds northing and
// Y holds easting, the opposite of every other grid here. No false
// easting or northing is applied to either axis.
type JapanGridCoord struct {
	Zone int
	X    float64 // northing, meters
	Y    float64 // easting, meters
}

// japanGridConverter projects geodetic coordinates to and from the
// nineteen-zone Japan Plane Rectangular Coordinate System.
type japanGridConverter struct {
	ellipsoid Ellipsoid
	zones     [20]*transverseMercator // indexed by zone, 1-based
}

func newJapanGridConverter() (*japanGridConverter, error) {
	ellipsoid := mustEllipsoid(DatumTokyo)
	j := &japanGridConverter{ellipsoid: ellipsoid}
	for _, z := range japanZones {
		tm, err := newTransverseMercator(ellipsoid, degToRad(z.LonDeg), degToRad(z.LatDeg), 0, 0, japanScaleFactor)
		if err != nil {
			return nil, err
		}
		j.zones[z.Zone] = tm
	}
	return j, nil
}

// nearestZone picks the zone whose origin minimizes squared angular
// distance to the input point; there is no hard geographic boundary.
func nearestZone(latDeg, lonDeg float64) int {
	best := japanZones[0].Zone
	bestDist := math.Inf(1)
	for _, z := range japanZones {
		dLat := latDeg - z.LatDeg
		dLon := lonDeg - z.LonDeg
		d := dLat*dLat + dLon*dLon
		if d < bestDist {
			bestDist = d
			best = z.Zone
		}
	}
	return best
}

func (j *japanGridConverter) forward(g GeoCoord) (JapanGridCoord, error) {
	if g.Datum != DatumTokyo {
		return JapanGridCoord{}, newError(KindInvalidInput, "japan grid forward requires a point already shifted to Tokyo datum")
	}
	zone := nearestZone(g.LatDegrees(), g.LonDegrees())
	tm := j.zones[zone]
	projected, err := tm.convertFromGeodetic(g.LatLng)
	if err != nil {
		return JapanGridCoord{}, err
	}
	// transverseMercator's generic easting/northing become this grid's
	// y/x by the library's swapped convention.
	return JapanGridCoord{Zone: zone, X: projected.Northing, Y: projected.Easting}, nil
}

func (j *japanGridConverter) inverse(c JapanGridCoord) (GeoCoord, error) {
	if c.Zone < 1 || c.Zone > 19 {
		return GeoCoord{}, newErrorf(KindInvalidInput, "japan grid zone %d out of range", c.Zone)
	}
	tm := j.zones[c.Zone]
	ll, err := tm.convertToGeodetic(mapCoords{Easting: c.Y, Northing: c.X})
	if err != nil {
		return GeoCoord{}, err
	}
	return GeoCoord{LatLng: ll, Datum: DatumTokyo}, nil
}
