package geotrans

import (
	"math"
	"strings"

	"github.com/golang/geo/s2"
)

// British National Grid fixed projection constants (OSGB36 / Airy 1830).
const (
	bgOriginLatDeg  = 49.0
	bgOriginLonDeg  = -2.0
	bgFalseEasting  = 400000.0
	bgFalseNorthing = -100000.0
	bgScaleFactor   = 0.9996012717
)

// bgLetterAlphabet is the 25-letter alphabet (I skipped) used for both the
// 500km and 100km grid-square letters.
const bgLetterAlphabet = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// BritishGridCoord is an Ordnance Survey National Grid point.
type BritishGridCoord struct {
	Letters  [2]byte
	Easting  float64
	Northing float64
}

// britishGridConverter projects geodetic coordinates to and from the OSGB36
// National Grid, shifting the input/output datum as needed.
type britishGridConverter struct {
	tm        *transverseMercator
	ellipsoid Ellipsoid
}

func newBritishGridConverter() (*britishGridConverter, error) {
	ellipsoid := mustEllipsoid(DatumOSGB36)
	tm, err := newTransverseMercator(ellipsoid, degToRad(bgOriginLonDeg), degToRad(bgOriginLatDeg),
		bgFalseEasting, bgFalseNorthing, bgScaleFactor)
	if err != nil {
		return nil, err
	}
	return &britishGridConverter{tm: tm, ellipsoid: ellipsoid}, nil
}

func (b *britishGridConverter) forward(g GeoCoord) (BritishGridCoord, error) {
	if g.Datum != DatumOSGB36 {
		return BritishGridCoord{}, newError(KindInvalidInput, "british grid forward requires a point already shifted to OSGB36")
	}
	projected, err := b.tm.convertFromGeodetic(g.LatLng)
	if err != nil {
		return BritishGridCoord{}, err
	}
	letters := britishGridLetters(projected.Easting, projected.Northing)
	e, n := britishGridIntraSquare(projected.Easting, projected.Northing)
	return BritishGridCoord{Letters: letters, Easting: e, Northing: n}, nil
}

// britishGridLetters encodes the 500km/100km letter pair: both letters
// drawn from the 25-letter (I-skipped) alphabet, indexed row-major with
// five 100km squares per 500km square, rows counted upward from the south.
// Indices wrap mod 25, so points far outside Great Britain still encode.
// The resulting pairs are this package's own lettering and do not match the
// Ordnance Survey's published square letters (the SV false-origin square
// encodes as "HA", central London as "JF" rather than "TQ").
func britishGridLetters(easting, northing float64) [2]byte {
	// Squares are counted from a point 1000km west and 500km south of the
	// National Grid false origin -- offset before computing square indices.
	e := easting + 1000000.0
	n := northing + 500000.0

	e500 := int(math.Floor(e / 500000.0))
	n500 := int(math.Floor(n / 500000.0))
	e100 := int(math.Floor(e/100000.0)) % 5
	n100 := int(math.Floor(n/100000.0)) % 5
	if e100 < 0 {
		e100 += 5
	}
	if n100 < 0 {
		n100 += 5
	}

	idx500 := ((n500*5+e500)%25 + 25) % 25
	idx100 := (n100*5 + e100) % 25

	return [2]byte{bgLetterAlphabet[idx500], bgLetterAlphabet[idx100]}
}

func britishGridIntraSquare(easting, northing float64) (float64, float64) {
	e := easting + 1000000.0
	n := northing + 500000.0
	em := math.Mod(math.Mod(e, 100000.0)+100000.0, 100000.0)
	nm := math.Mod(math.Mod(n, 100000.0)+100000.0, 100000.0)
	return em, nm
}

func (b *britishGridConverter) inverse(c BritishGridCoord) (GeoCoord, error) {
	idx500 := strings.IndexByte(bgLetterAlphabet, c.Letters[0])
	idx100 := strings.IndexByte(bgLetterAlphabet, c.Letters[1])
	if idx500 < 0 || idx100 < 0 {
		return GeoCoord{}, newErrorf(KindParseFailed, "invalid british grid letters %q", string(c.Letters[:]))
	}
	e500 := idx500 % 5
	n500 := idx500 / 5
	e100 := idx100 % 5
	n100 := idx100 / 5

	e := float64(e500*500000+e100*100000) + c.Easting - 1000000.0
	n := float64(n500*500000+n100*100000) + c.Northing - 500000.0

	lat, lon := britishGridInverseFootpoint(b.ellipsoid, e, n)
	ll := s2.LatLng{Lat: angleFromRadians(lat), Lng: angleFromRadians(lon)}
	return GeoCoord{LatLng: ll, Datum: DatumOSGB36}, nil
}

// britishGridInverseFootpoint is the classic Ordnance Survey closed-form
// inverse: find the footpoint latitude by iterating on the meridional arc
// (at most ten iterations, exiting once |delta phi| < 1e-12; past the cap
// the last estimate is used rather than failing), then recover
// latitude/longitude from the standard National Grid inverse series. This
// is distinct from the isoperimetric-series inverse transversemercator.go
// uses for UTM and the Japan Grid.
func britishGridInverseFootpoint(e Ellipsoid, easting, northing float64) (lat, lon float64) {
	a := e.A
	e2 := e.ESq
	n0 := degToRad(bgOriginLatDeg)
	e0 := bgFalseEasting
	n0m := bgFalseNorthing
	f0 := bgScaleFactor

	phi := n0
	for i := 0; i < 10; i++ {
		m := meridionalArc(e, phi) - meridionalArc(e, n0)
		deltaPhi := (northing - n0m - f0*m) / (f0 * a)
		phi += deltaPhi
		if math.Abs(deltaPhi) < 1e-12 {
			break
		}
	}

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	tanPhi := math.Tan(phi)
	nu := a * f0 / math.Sqrt(1-e2*sinPhi*sinPhi)
	rho := a * f0 * (1 - e2) / math.Pow(1-e2*sinPhi*sinPhi, 1.5)
	eta2 := nu/rho - 1

	tanPhi2 := tanPhi * tanPhi
	tanPhi4 := tanPhi2 * tanPhi2
	secPhi := 1 / cosPhi

	viiD := tanPhi / (2 * rho * nu)
	viiiD := tanPhi / (24 * rho * math.Pow(nu, 3)) * (5 + 3*tanPhi2 + eta2 - 9*eta2*tanPhi2)
	ixD := tanPhi / (720 * rho * math.Pow(nu, 5)) * (61 + 90*tanPhi2 + 45*tanPhi4)

	xD := secPhi / nu
	xiD := secPhi / (6 * math.Pow(nu, 3)) * (nu/rho + 2*tanPhi2)
	xiiD := secPhi / (120 * math.Pow(nu, 5)) * (5 + 28*tanPhi2 + 24*tanPhi4)
	xiiaD := secPhi / (5040 * math.Pow(nu, 7)) * (61 + 662*tanPhi2 + 1320*tanPhi4 + 720*tanPhi4*tanPhi2)

	de := easting - e0
	de2 := de * de
	de3 := de2 * de
	de4 := de3 * de
	de5 := de4 * de
	de6 := de5 * de
	de7 := de6 * de

	latOut := phi - viiD*de2 + viiiD*de4 - ixD*de6
	lonOut := degToRad(bgOriginLonDeg) + xD*de - xiD*de3 + xiiD*de5 - xiiaD*de7

	return latOut, lonOut
}

// meridionalArc computes M(phi), the meridional arc length from the
// equator to latitude phi, via the standard four-term series.
func meridionalArc(e Ellipsoid, phi float64) float64 {
	e2 := e.ESq
	e4 := e2 * e2
	e6 := e4 * e2
	return e.A * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}
