package geotrans

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// UTMCoord is a Universal Transverse Mercator coordinate: zone, latitude
// band letter, hemisphere, easting and northing in meters, plus the grid
// convergence (radians, positive east of the central meridian in the
// northern hemisphere) and point scale factor at the position. Forward
// populates every field; inverse only reads Zone, Easting, Northing and
// either Band or Hemisphere -- a nonzero Band takes precedence and
// determines the hemisphere.
type UTMCoord struct {
	Zone        int
	Band        byte
	Hemisphere  Hemisphere
	Easting     float64
	Northing    float64
	Convergence float64
	Scale       float64
}

// utmConverter projects geodetic coordinates to and from UTM for one fixed
// ellipsoid, lazily building one transverseMercator per zone on first use
// since most callers only ever touch a handful of zones.
type utmConverter struct {
	ellipsoid Ellipsoid
	zones     [61]*transverseMercator
}

func newUTMConverter(ellipsoid Ellipsoid) *utmConverter {
	return &utmConverter{ellipsoid: ellipsoid}
}

func (u *utmConverter) zoneProjector(zone int) (*transverseMercator, error) {
	if !validUTMZone(zone) {
		return nil, newErrorf(KindInvalidUTMZone, "utm zone %d out of range", zone)
	}
	if u.zones[zone] != nil {
		return u.zones[zone], nil
	}
	centralMeridian := degToRad(utmCentralMeridianDeg(zone))
	tm, err := newTransverseMercator(u.ellipsoid, centralMeridian, 0.0, utmFalseEasting, 0.0, utmScaleFactor)
	if err != nil {
		return nil, err
	}
	u.zones[zone] = tm
	return tm, nil
}

// forward converts a geodetic point to UTM, selecting the zone automatically
// unless zoneOverride is nonzero.
func (u *utmConverter) forward(g GeoCoord, zoneOverride int) (UTMCoord, error) {
	if err := validateGeoCoord(g); err != nil {
		return UTMCoord{}, err
	}

	latDeg := g.LatDegrees()
	lonDeg := g.LonDegrees()

	if !validUTMLatitude(latDeg) {
		return UTMCoord{}, newErrorf(KindOutOfRange, "latitude %f outside UTM range", latDeg)
	}

	zone := utmZoneOf(latDeg, lonDeg)
	if zoneOverride != 0 {
		if !validUTMZone(zoneOverride) {
			return UTMCoord{}, newErrorf(KindInvalidUTMZone, "zone override %d out of range", zoneOverride)
		}
		zone = zoneOverride
	}

	band, err := utmBandLetterOf(latDeg)
	if err != nil {
		return UTMCoord{}, err
	}

	tm, err := u.zoneProjector(zone)
	if err != nil {
		return UTMCoord{}, err
	}

	hemi := hemisphereOf(latDeg)
	falseNorthing := 0.0
	if hemi == HemisphereSouth {
		falseNorthing = 10000000.0
	}

	latRad := degToRad(latDeg)
	lonRad := degToRad(lonDeg)
	projected, err := tm.convertFromGeodetic(s2.LatLng{Lat: s1.Angle(latRad), Lng: s1.Angle(lonRad)})
	if err != nil {
		return UTMCoord{}, err
	}

	easting := projected.Easting
	northing := projected.Northing + falseNorthing

	if !validUTMEasting(easting) {
		return UTMCoord{}, newError(KindOutOfRange, "easting out of range")
	}
	if !validUTMNorthing(northing) {
		return UTMCoord{}, newError(KindOutOfRange, "northing out of range")
	}

	convergence, scale := u.convergenceAndScale(latRad, lonRad-degToRad(utmCentralMeridianDeg(zone)))

	return UTMCoord{
		Zone:        zone,
		Band:        band,
		Hemisphere:  hemi,
		Easting:     easting,
		Northing:    northing,
		Convergence: convergence,
		Scale:       scale,
	}, nil
}

// convergenceAndScale evaluates the grid convergence and point scale factor
// at latitude lat for a longitude difference dLon from the zone's central
// meridian, both in radians, using Snyder's series.
func (u *utmConverter) convergenceAndScale(lat, dLon float64) (convergence, scale float64) {
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	tanLat := sinLat / cosLat

	a := dLon * cosLat
	a2 := a * a
	c := u.ellipsoid.EpSq * cosLat * cosLat
	t := tanLat * tanLat

	convergence = dLon * sinLat * (1 + a2/3*(1+3*c+2*c*c))
	scale = utmScaleFactor * (1 + (1+c)*a2/2 +
		(5-4*t+42*c+13*c*c-28*u.ellipsoid.EpSq)*a2*a2/24)
	return convergence, scale
}

// inverse converts a UTM coordinate back to geodetic, tagging the result
// with the supplied datum. A nonzero Band must be a valid band letter and
// determines the hemisphere; otherwise the Hemisphere field does.
func (u *utmConverter) inverse(c UTMCoord, datum Datum) (GeoCoord, error) {
	if !validUTMZone(c.Zone) {
		return GeoCoord{}, newErrorf(KindInvalidUTMZone, "zone %d out of range", c.Zone)
	}
	if !validUTMEasting(c.Easting) {
		return GeoCoord{}, newError(KindOutOfRange, "easting out of range")
	}
	if !validUTMNorthing(c.Northing) {
		return GeoCoord{}, newError(KindOutOfRange, "northing out of range")
	}

	hemi := c.Hemisphere
	if c.Band != 0 {
		if _, _, err := bandLatRange(c.Band); err != nil {
			return GeoCoord{}, err
		}
		hemi = HemisphereNorth
		if c.Band < 'N' {
			hemi = HemisphereSouth
		}
	}

	tm, err := u.zoneProjector(c.Zone)
	if err != nil {
		return GeoCoord{}, err
	}

	falseNorthing := 0.0
	if hemi == HemisphereSouth {
		falseNorthing = 10000000.0
	}

	ll, err := tm.convertToGeodetic(mapCoords{Easting: c.Easting, Northing: c.Northing - falseNorthing})
	if err != nil {
		return GeoCoord{}, err
	}

	latDeg := ll.Lat.Degrees()
	if !validUTMLatitude(latDeg) {
		return GeoCoord{}, newError(KindOutOfRange, "latitude out of range")
	}

	return GeoCoord{LatLng: ll, Datum: datum}, nil
}
