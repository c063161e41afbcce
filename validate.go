package geotrans

// Shared range-check predicates used by the UTM and MGRS converters,
// pulled into one place instead of being copy-pasted per projector.

func validLatitude(latDeg float64) bool {
	return latDeg >= -90 && latDeg <= 90
}

func validLongitude(lonDeg float64) bool {
	return lonDeg >= -180 && lonDeg <= 180
}

// validUTMLatitude bounds latitude to the UTM/MGRS zone system; polar
// latitudes belong to UPS, which this package does not cover.
func validUTMLatitude(latDeg float64) bool {
	return latDeg >= utmMinLatDeg && latDeg < utmMaxLatDeg
}

func validUTMZone(zone int) bool {
	return zone >= 1 && zone <= 60
}

func validUTMEasting(easting float64) bool {
	return easting >= utmMinEasting && easting <= utmMaxEasting
}

func validUTMNorthing(northing float64) bool {
	return northing >= utmMinNorthing && northing <= utmMaxNorthing
}

func validMGRSLetter(b byte) bool {
	return b != 'I' && b != 'O' && b >= 'A' && b <= 'Z'
}

// validateGeoCoord rejects positions outside geographic range. NewGeoCoord
// normalizes its inputs, so this only fires on hand-built GeoCoord values.
func validateGeoCoord(g GeoCoord) error {
	if !validLatitude(g.LatDegrees()) {
		return newErrorf(KindInvalidCoord, "latitude %f out of range", g.LatDegrees())
	}
	if !validLongitude(g.LonDegrees()) {
		return newErrorf(KindInvalidCoord, "longitude %f out of range", g.LonDegrees())
	}
	return nil
}
