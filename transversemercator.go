package geotrans

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const tmNTerms = 6

// mapCoords is a planar projection result: an easting/northing pair in
// meters, returned by transverseMercator; UTM, British Grid and Japan Grid
// build their own coordinate types from it.
type mapCoords struct {
	Easting  float64
	Northing float64
}

// transverseMercator converts between geodetic coordinates and Transverse
// Mercator projection coordinates for one fixed ellipsoid, central meridian,
// origin latitude, false easting/northing and scale factor. UTM, the
// British National Grid and the Japan Plane Rectangular Grid are all built
// by instantiating one of these per zone.
type transverseMercator struct {
	ellipsoid Ellipsoid

	eps float64 // eccentricity, sqrt(2f - f^2)

	k0R4    float64 // scaleFactor*R4
	k0R4inv float64

	aCoeff [8]float64
	bCoeff [8]float64

	originLat     float64 // radians
	originLong    float64 // radians
	falseNorthing float64
	falseEasting  float64
	scaleFactor   float64

	deltaEasting  float64
	deltaNorthing float64
}

// newTransverseMercator constructs a Transverse Mercator projector. Angles
// are in radians. Uses C. Rollins' 2006 isoperimetric-series algorithm for
// both directions.
func newTransverseMercator(ellipsoid Ellipsoid, centralMeridian, originLatitude,
	falseEasting, falseNorthing, scaleFactor float64) (*transverseMercator, error) {
	invFlattening := 1.0 / ellipsoid.F

	t := &transverseMercator{
		ellipsoid:     ellipsoid,
		originLong:    centralMeridian,
		originLat:     originLatitude,
		falseEasting:  falseEasting,
		falseNorthing: falseNorthing,
		scaleFactor:   scaleFactor,
		deltaEasting:  20000000.0,
		deltaNorthing: 10000000.0,
	}

	if ellipsoid.A <= 0.0 {
		return nil, newError(KindInvalidInput, "semi-major axis must be greater than zero")
	}
	if invFlattening < 150 {
		return nil, newError(KindInvalidInput, "inverse ellipsoid flattening out of range")
	}
	if originLatitude < -math.Pi/2 || originLatitude > math.Pi/2 {
		return nil, newError(KindOutOfRange, "latitude of origin out of range")
	}
	if centralMeridian < -math.Pi || centralMeridian > 2*math.Pi {
		return nil, newError(KindOutOfRange, "central meridian out of range")
	}
	const minScaleFactor = 0.1
	const maxScaleFactor = 10.0
	if scaleFactor < minScaleFactor || scaleFactor > maxScaleFactor {
		return nil, newError(KindInvalidInput, "scale factor out of range")
	}

	if t.originLong > math.Pi {
		t.originLong -= 2 * math.Pi
	}

	t.eps = math.Sqrt(2*ellipsoid.F - ellipsoid.F*ellipsoid.F)

	var n1, r4oa float64
	generateTMCoefficients(invFlattening, &n1, t.aCoeff[:], t.bCoeff[:], &r4oa, ellipsoid.Code)

	t.k0R4 = r4oa * t.scaleFactor * ellipsoid.A
	t.k0R4inv = 1.0 / t.k0R4
	return t, nil
}

// generateTMCoefficients computes Helmert's n, the series coefficients for
// omega-as-trig-series-in-chi and chi-as-trig-series-in-omega, and the
// isoperimetric radius ratio R4/a, after C. Rollins' 2006 algorithm. This
// calculation depends only on ellipsoid shape, not size, so known
// ellipsoids use precomputed constants; unknown (custom) ellipsoid codes
// fall back to computing the series from n directly.
func generateTMCoefficients(invfla float64, n1 *float64, aCoeff, bCoeff []float64, r4oa *float64, ellipsoidCode string) {
	*n1 = 1.0 / (2*invfla - 1.0)

	n2 := *n1 * *n1
	n3 := n2 * *n1
	n4 := n3 * *n1
	n5 := n4 * *n1
	n6 := n5 * *n1
	n7 := n6 * *n1
	n8 := n7 * *n1
	n9 := n8 * *n1
	n10 := n9 * *n1

	switch ellipsoidCode {
	case "AA", "AM":
		aCoeff[0] = 8.3474517669594013740e-04
		aCoeff[1] = 7.554352936725572895e-07
		aCoeff[2] = 1.18487391005135489e-09
		aCoeff[3] = 2.3946872955703565e-12
		aCoeff[4] = 5.610633978440270e-15
		aCoeff[5] = 1.44858956458553e-17

		bCoeff[0] = -8.3474551646761162264e-04
		bCoeff[1] = -5.863630361809676570e-08
		bCoeff[2] = -1.65562038746920803e-10
		bCoeff[3] = -2.1340335537652749e-13
		bCoeff[4] = -3.720760760132477e-16
		bCoeff[5] = -7.08304328877781e-19
	case "BN", "BR":
		aCoeff[0] = 8.3522527226849818552e-04
		aCoeff[1] = 7.563048340614894422e-07
		aCoeff[2] = 1.18692075307408346e-09
		aCoeff[3] = 2.4002054791393298e-12
		aCoeff[4] = 5.626801597980756e-15
		aCoeff[5] = 1.45360057224474e-17

		bCoeff[0] = -8.3522561262703079182e-04
		bCoeff[1] = -5.870409978661008580e-08
		bCoeff[2] = -1.65848307463131468e-10
		bCoeff[3] = -2.1389565927064571e-13
		bCoeff[4] = -3.731493368666479e-16
		bCoeff[5] = -7.10756898071999e-19
	case "CC":
		aCoeff[0] = 8.4703742793654652315e-04
		aCoeff[1] = 7.778564517658115212e-07
		aCoeff[2] = 1.23802665917879731e-09
		aCoeff[3] = 2.5390045684252928e-12
		aCoeff[4] = 6.036484469753319e-15
		aCoeff[5] = 1.58152259295850e-17

		bCoeff[0] = -8.4703778294785813001e-04
		bCoeff[1] = -6.038459874600183555e-08
		bCoeff[2] = -1.72996106059227725e-10
		bCoeff[3] = -2.2627911073545072e-13
		bCoeff[4] = -4.003466873888566e-16
		bCoeff[5] = -7.73369749524777e-19
	case "IN", "HO":
		aCoeff[0] = 8.4127599100356448089e-04
		aCoeff[1] = 7.673066923431950296e-07
		aCoeff[2] = 1.21291995794281190e-09
		aCoeff[3] = 2.4705731165688123e-12
		aCoeff[4] = 5.833780550286833e-15
		aCoeff[5] = 1.51800420867708e-17

		bCoeff[0] = -8.4127633881644851945e-04
		bCoeff[1] = -5.956193574768780571e-08
		bCoeff[2] = -1.69484573979154433e-10
		bCoeff[3] = -2.2017363465021880e-13
		bCoeff[4] = -3.868896221495780e-16
		bCoeff[5] = -7.42279219864412e-19
	case "RF":
		aCoeff[0] = 8.3773182472855134012e-04
		aCoeff[1] = 7.608527848149655006e-07
		aCoeff[2] = 1.19764552085530681e-09
		aCoeff[3] = 2.4291707280369697e-12
		aCoeff[4] = 5.711818509192422e-15
		aCoeff[5] = 1.47999807059922e-17

		bCoeff[0] = -8.3773216816203523672e-04
		bCoeff[1] = -5.905870210369121594e-08
		bCoeff[2] = -1.67348268997717031e-10
		bCoeff[3] = -2.1647981529928124e-13
		bCoeff[4] = -3.787931061803592e-16
		bCoeff[5] = -7.23676950110361e-19
	case "WE":
		aCoeff[0] = 8.3773182062446983032e-04
		aCoeff[1] = 7.608527773572489156e-07
		aCoeff[2] = 1.19764550324249210e-09
		aCoeff[3] = 2.4291706803973131e-12
		aCoeff[4] = 5.711818369154105e-15
		aCoeff[5] = 1.47999802705262e-17

		bCoeff[0] = -8.3773216405794867707e-04
		bCoeff[1] = -5.905870152220365181e-08
		bCoeff[2] = -1.67348266534382493e-10
		bCoeff[3] = -2.1647981104903862e-13
		bCoeff[4] = -3.787930968839601e-16
		bCoeff[5] = -7.23676928796690e-19
	default:
		// On-the-fly computation, used for custom ellipsoids (empty code).
		coeff := 0.0
		coeff += (-18975107.0) * n8 / 50803200.0
		coeff += (72161.0) * n7 / 387072.0
		coeff += (7891.0) * n6 / 37800.0
		coeff += (-127.0) * n5 / 288.0
		coeff += (41.0) * n4 / 180.0
		coeff += (5.0) * n3 / 16.0
		coeff += (-2.0) * n2 / 3.0
		coeff += (1.0) * *n1 / 2.0
		aCoeff[0] = coeff

		coeff = 0.0
		coeff += (148003883.0) * n8 / 174182400.0
		coeff += (13769.0) * n7 / 28800.0
		coeff += (-1983433.0) * n6 / 1935360.0
		coeff += (281.0) * n5 / 630.0
		coeff += (557.0) * n4 / 1440.0
		coeff += (-3.0) * n3 / 5.0
		coeff += (13.0) * n2 / 48.0
		aCoeff[1] = coeff

		coeff = 0.0
		coeff += (79682431.0) * n8 / 79833600.0
		coeff += (-67102379.0) * n7 / 29030400.0
		coeff += (167603.0) * n6 / 181440.0
		coeff += (15061.0) * n5 / 26880.0
		coeff += (-103.0) * n4 / 140.0
		coeff += (61.0) * n3 / 240.0
		aCoeff[2] = coeff

		coeff = 0.0
		coeff += (-40176129013.0) * n8 / 7664025600.0
		coeff += (97445.0) * n7 / 49896.0
		coeff += (6601661.0) * n6 / 7257600.0
		coeff += (-179.0) * n5 / 168.0
		coeff += (49561.0) * n4 / 161280.0
		aCoeff[3] = coeff

		coeff = 0.0
		coeff += (2605413599.0) * n8 / 622702080.0
		coeff += (14644087.0) * n7 / 9123840.0
		coeff += (-3418889.0) * n6 / 1995840.0
		coeff += (34729.0) * n5 / 80640.0
		aCoeff[4] = coeff

		coeff = 0.0
		coeff += (175214326799.0) * n8 / 58118860800.0
		coeff += (-30705481.0) * n7 / 10378368.0
		coeff += (212378941.0) * n6 / 319334400.0
		aCoeff[5] = coeff

		coeff = 0.0
		coeff += (-7944359.0) * n8 / 67737600.0
		coeff += (5406467.0) * n7 / 38707200.0
		coeff += (-96199.0) * n6 / 604800.0
		coeff += (81.0) * n5 / 512.0
		coeff += (1.0) * n4 / 360.0
		coeff += (-37.0) * n3 / 96.0
		coeff += (2.0) * n2 / 3.0
		coeff += (-1.0) * *n1 / 2.0
		bCoeff[0] = coeff

		coeff = 0.0
		coeff += (-24749483.0) * n8 / 348364800.0
		coeff += (-51841.0) * n7 / 1209600.0
		coeff += (1118711.0) * n6 / 3870720.0
		coeff += (-46.0) * n5 / 105.0
		coeff += (437.0) * n4 / 1440.0
		coeff += (-1.0) * n3 / 15.0
		coeff += (-1.0) * n2 / 48.0
		bCoeff[1] = coeff

		coeff = 0.0
		coeff += (6457463.0) * n8 / 17740800.0
		coeff += (-9261899.0) * n7 / 58060800.0
		coeff += (-5569.0) * n6 / 90720.0
		coeff += (209.0) * n5 / 4480.0
		coeff += (37.0) * n4 / 840.0
		coeff += (-17.0) * n3 / 480.0
		bCoeff[2] = coeff

		coeff = 0.0
		coeff += (-324154477.0) * n8 / 7664025600.0
		coeff += (-466511.0) * n7 / 2494800.0
		coeff += (830251.0) * n6 / 7257600.0
		coeff += (11.0) * n5 / 504.0
		coeff += (-4397.0) * n4 / 161280.0
		bCoeff[3] = coeff

		coeff = 0.0
		coeff += (-22894433.0) * n8 / 124540416.0
		coeff += (8005831.0) * n7 / 63866880.0
		coeff += (108847.0) * n6 / 3991680.0
		coeff += (-4583.0) * n5 / 161280.0
		bCoeff[4] = coeff

		coeff = 0.0
		coeff += (2204645983.0) * n8 / 12915302400.0
		coeff += (16363163.0) * n7 / 518918400.0
		coeff += (-20648693.0) * n6 / 638668800.0
		bCoeff[5] = coeff
	}

	coeff := 0.0
	coeff += 49 * n10 / 65536.0
	coeff += 25 * n8 / 16384.0
	coeff += n6 / 256.0
	coeff += n4 / 64.0
	coeff += n2 / 4
	coeff++
	*r4oa = coeff / (1 + *n1)
}

func (t *transverseMercator) checkLatLon(latitude, deltaLon float64) error {
	if deltaLon > math.Pi {
		deltaLon -= 2 * math.Pi
	}
	if deltaLon < -math.Pi {
		deltaLon += 2 * math.Pi
	}

	testAngle := math.Abs(deltaLon)

	delta := math.Abs(deltaLon - math.Pi)
	if delta < testAngle {
		testAngle = delta
	}
	delta = math.Abs(deltaLon + math.Pi)
	if delta < testAngle {
		testAngle = delta
	}
	delta = math.Pi/2 - latitude
	if delta < testAngle {
		testAngle = delta
	}
	delta = math.Pi/2 + latitude
	if delta < testAngle {
		testAngle = delta
	}
	const maxDeltaLong = (math.Pi * 70) / 180.0
	if testAngle > maxDeltaLong {
		return newError(KindOutOfRange, "longitude too far from central meridian")
	}
	return nil
}

func (t *transverseMercator) latLonToNorthingEasting(latitude, longitude float64, northing, easting *float64) error {
	lambda := longitude - t.originLong
	if lambda > math.Pi {
		lambda -= 2 * math.Pi
	}
	if lambda < -math.Pi {
		lambda += 2 * math.Pi
	}
	if err := t.checkLatLon(latitude, lambda); err != nil {
		return err
	}

	cosLam := math.Cos(lambda)
	sinLam := math.Sin(lambda)
	cosPhi := math.Cos(latitude)
	sinPhi := math.Sin(latitude)

	var c2ku, s2ku [8]float64
	var c2kv, s2kv [8]float64

	// Ellipsoid to sphere: geodetic latitude -> conformal latitude.
	p := math.Exp(t.eps * atanh(t.eps*sinPhi))
	part1 := (1 + sinPhi) / p
	part2 := (1 - sinPhi) * p
	denom := part1 + part2
	cosChi := 2 * cosPhi / denom
	sinChi := (part1 - part2) / denom

	// Sphere to first plane.
	u := atanh(cosChi * sinLam)
	v := math.Atan2(sinChi, cosChi*cosLam)

	computeHyperbolicSeries(2.0*u, c2ku[:], s2ku[:])
	computeTrigSeries(2.0*v, c2kv[:], s2kv[:])

	xStar := 0.0
	yStar := 0.0
	for k := tmNTerms - 1; k >= 0; k-- {
		xStar += t.aCoeff[k] * s2ku[k] * c2kv[k]
		yStar += t.aCoeff[k] * c2ku[k] * s2kv[k]
	}
	xStar += u
	yStar += v

	*easting = t.k0R4 * xStar
	*northing = t.k0R4 * yStar
	return nil
}

func (t *transverseMercator) convertFromGeodetic(geodetic s2.LatLng) (mapCoords, error) {
	longitude := geodetic.Lng.Radians()
	latitude := geodetic.Lat.Radians()

	if longitude > math.Pi {
		longitude -= 2 * math.Pi
	}
	if longitude < -math.Pi {
		longitude += 2 * math.Pi
	}

	lambda := longitude - t.originLong
	if lambda > math.Pi {
		lambda -= 2 * math.Pi
	}
	if lambda < -math.Pi {
		lambda += 2 * math.Pi
	}
	if err := t.checkLatLon(latitude, lambda); err != nil {
		return mapCoords{}, err
	}

	var easting, northing float64
	if err := t.latLonToNorthingEasting(latitude, longitude, &northing, &easting); err != nil {
		return mapCoords{}, err
	}

	// The grid origin may sit away from (0,0); recover the offset by
	// projecting the origin itself and folding it into false easting/northing.
	var falseEasting, falseNorthing float64
	if err := t.latLonToNorthingEasting(t.originLat, t.originLong, &falseNorthing, &falseEasting); err != nil {
		return mapCoords{}, err
	}

	easting += t.falseEasting - falseEasting
	northing += t.falseNorthing - falseNorthing

	return mapCoords{Easting: easting, Northing: northing}, nil
}

func (t *transverseMercator) convertToGeodetic(projected mapCoords) (s2.LatLng, error) {
	easting := projected.Easting
	northing := projected.Northing

	if easting < (t.falseEasting-t.deltaEasting) || easting > (t.falseEasting+t.deltaEasting) {
		return s2.LatLng{}, newError(KindOutOfRange, "easting out of range")
	}
	if northing < (t.falseNorthing-t.deltaNorthing) || northing > (t.falseNorthing+t.deltaNorthing) {
		return s2.LatLng{}, newError(KindOutOfRange, "northing out of range")
	}

	var falseEasting, falseNorthing float64
	if err := t.latLonToNorthingEasting(t.originLat, t.originLong, &falseNorthing, &falseEasting); err != nil {
		return s2.LatLng{}, err
	}

	easting -= t.falseEasting - falseEasting
	northing -= t.falseNorthing - falseNorthing

	var longitude, latitude float64
	t.northingEastingToLatLon(northing, easting, &latitude, &longitude)

	if longitude > math.Pi {
		longitude -= 2 * math.Pi
	}
	if longitude <= -math.Pi {
		longitude += 2 * math.Pi
	}

	if math.Abs(latitude) > math.Pi/2 {
		return s2.LatLng{}, newError(KindOutOfRange, "northing out of range")
	}
	if longitude > math.Pi || longitude < -math.Pi {
		return s2.LatLng{}, newError(KindOutOfRange, "easting out of range")
	}

	return s2.LatLng{Lat: s1.Angle(latitude), Lng: s1.Angle(longitude)}, nil
}

func (t *transverseMercator) northingEastingToLatLon(northing, easting float64, latitude, longitude *float64) {
	var c2kx, s2kx, c2ky, s2ky [8]float64

	xStar := t.k0R4inv * easting
	yStar := t.k0R4inv * northing

	computeHyperbolicSeries(2.0*xStar, c2kx[:], s2kx[:])
	computeTrigSeries(2.0*yStar, c2ky[:], s2ky[:])

	u := 0.0
	v := 0.0
	for k := tmNTerms - 1; k >= 0; k-- {
		u += t.bCoeff[k] * s2kx[k] * c2ky[k]
		v += t.bCoeff[k] * c2kx[k] * s2ky[k]
	}
	u += xStar
	v += yStar

	coshU := math.Cosh(u)
	sinhU := math.Sinh(u)
	cosV := math.Cos(v)
	sinV := math.Sin(v)

	var lambda float64
	if math.Abs(cosV) < 10e-12 && math.Abs(coshU) < 10e-12 {
		lambda = 0
	} else {
		lambda = math.Atan2(sinhU, cosV)
	}

	sinChi := sinV / coshU
	*latitude = geodeticLatFromConformal(sinChi, t.eps)
	*longitude = t.originLong + lambda
}

// geodeticLatFromConformal inverts the conformal-latitude series by fixed
// point iteration, converging in well under 30 steps for any real ellipsoid.
func geodeticLatFromConformal(sinChi, e float64) float64 {
	sOld := 1.0e99
	s := sinChi
	onePlusSinChi := 1.0 + sinChi
	oneMinusSinChi := 1.0 - sinChi

	for n := 0; n < 30; n++ {
		p := math.Exp(e * atanh(e*s))
		pSq := p * p
		s = (onePlusSinChi*pSq - oneMinusSinChi) / (onePlusSinChi*pSq + oneMinusSinChi)
		if math.Abs(s-sOld) < 1.0e-12 {
			break
		}
		sOld = s
	}
	return math.Asin(s)
}

func computeHyperbolicSeries(twoX float64, c2kx, s2kx []float64) {
	c2kx[0] = math.Cosh(twoX)
	s2kx[0] = math.Sinh(twoX)
	c2kx[1] = 2.0*c2kx[0]*c2kx[0] - 1.0
	s2kx[1] = 2.0 * c2kx[0] * s2kx[0]
	c2kx[2] = c2kx[0]*c2kx[1] + s2kx[0]*s2kx[1]
	s2kx[2] = c2kx[1]*s2kx[0] + c2kx[0]*s2kx[1]
	c2kx[3] = 2.0*c2kx[1]*c2kx[1] - 1.0
	s2kx[3] = 2.0 * c2kx[1] * s2kx[1]
	c2kx[4] = c2kx[0]*c2kx[3] + s2kx[0]*s2kx[3]
	s2kx[4] = c2kx[3]*s2kx[0] + c2kx[0]*s2kx[3]
	c2kx[5] = 2.0*c2kx[2]*c2kx[2] - 1.0
	s2kx[5] = 2.0 * c2kx[2] * s2kx[2]
	c2kx[6] = c2kx[0]*c2kx[5] + s2kx[0]*s2kx[5]
	s2kx[6] = c2kx[5]*s2kx[0] + c2kx[0]*s2kx[5]
	c2kx[7] = 2.0*c2kx[3]*c2kx[3] - 1.0
	s2kx[7] = 2.0 * c2kx[3] * s2kx[3]
}

func computeTrigSeries(twoY float64, c2ky, s2ky []float64) {
	c2ky[0] = math.Cos(twoY)
	s2ky[0] = math.Sin(twoY)
	c2ky[1] = 2.0*c2ky[0]*c2ky[0] - 1.0
	s2ky[1] = 2.0 * c2ky[0] * s2ky[0]
	c2ky[2] = c2ky[1]*c2ky[0] - s2ky[1]*s2ky[0]
	s2ky[2] = c2ky[1]*s2ky[0] + c2ky[0]*s2ky[1]
	c2ky[3] = 2.0*c2ky[1]*c2ky[1] - 1.0
	s2ky[3] = 2.0 * c2ky[1] * s2ky[1]
	c2ky[4] = c2ky[3]*c2ky[0] - s2ky[3]*s2ky[0]
	s2ky[4] = c2ky[3]*s2ky[0] + c2ky[0]*s2ky[3]
	c2ky[5] = 2.0*c2ky[2]*c2ky[2] - 1.0
	s2ky[5] = 2.0 * c2ky[2] * s2ky[2]
	c2ky[6] = c2ky[5]*c2ky[0] - s2ky[5]*s2ky[0]
	s2ky[6] = c2ky[5]*s2ky[0] + c2ky[0]*s2ky[5]
	c2ky[7] = 2.0*c2ky[3]*c2ky[3] - 1.0
	s2ky[7] = 2.0 * c2ky[3] * s2ky[3]
}

func atanh(x float64) float64 {
	return 0.5 * math.Log((1+x)/(1-x))
}
