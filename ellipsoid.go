package geotrans

import "math"

// Ellipsoid holds the defining and derived parameters of a reference
// ellipsoid: semi-major axis, flattening, semi-minor axis, first and second
// eccentricity squared. Code is the two-letter NGA ellipsoid code used to
// select precomputed Transverse Mercator series coefficients; ellipsoids
// without a known code (e.g. a caller-supplied custom ellipsoid) fall back
// to the generic on-the-fly coefficient computation.
type Ellipsoid struct {
	Name string
	Code string
	A    float64 // semi-major axis, meters
	F    float64 // flattening
	B    float64 // semi-minor axis, meters
	ESq  float64 // first eccentricity squared
	EpSq float64 // second eccentricity squared
}

func newEllipsoid(name, code string, a, f float64) Ellipsoid {
	b := a * (1 - f)
	eSq := 2*f - f*f
	epSq := eSq / (1 - eSq)
	return Ellipsoid{Name: name, Code: code, A: a, F: f, B: b, ESq: eSq, EpSq: epSq}
}

// Registered ellipsoids, keyed by Datum. Values are immutable; constructed
// once at package init from the defining constants of each ellipsoid.
var ellipsoidRegistry = map[Datum]Ellipsoid{
	DatumWGS84:    newEllipsoid("WGS84", "WE", 6378137.0, 1/298.257223563),
	DatumNAD83:    newEllipsoid("GRS80", "RF", 6378137.0, 1/298.257222101),
	DatumNAD27:    newEllipsoid("Clarke 1866", "CC", 6378206.4, 1/294.9786982),
	DatumED50:     newEllipsoid("International 1924", "IN", 6378388.0, 1/297.0),
	DatumTokyo:    newEllipsoid("Bessel 1841", "BR", 6377397.155, 1/299.1528128),
	DatumOSGB36:   newEllipsoid("Airy 1830", "AA", 6377563.396, 1/299.3249646),
	DatumMGRSGrid: newEllipsoid("WGS84", "WE", 6378137.0, 1/298.257223563),
	DatumUTMGrid:  newEllipsoid("WGS84", "WE", 6378137.0, 1/298.257223563),
}

// ellipsoidOf is a pure lookup of the registered ellipsoid for a datum.
func ellipsoidOf(d Datum) (Ellipsoid, error) {
	e, ok := ellipsoidRegistry[d]
	if !ok {
		return Ellipsoid{}, newErrorf(KindInvalidInput, "unknown datum %d", d)
	}
	return e, nil
}

// mustEllipsoid looks up a registered ellipsoid and panics if it is
// missing. Used only for the package's own built-in datum table, where a
// miss is a programming error in this package, never a caller mistake.
func mustEllipsoid(d Datum) Ellipsoid {
	e, err := ellipsoidOf(d)
	if err != nil {
		panic(err)
	}
	return e
}

// newCustomEllipsoid validates and constructs a caller-supplied ellipsoid.
func newCustomEllipsoid(a, f float64) (Ellipsoid, error) {
	if a <= 0 {
		return Ellipsoid{}, newError(KindInvalidInput, "semi-major axis must be greater than zero")
	}
	if f <= 0 || f >= 1 {
		return Ellipsoid{}, newError(KindInvalidInput, "flattening must be in (0, 1)")
	}
	if math.IsNaN(a) || math.IsNaN(f) || math.IsInf(a, 0) {
		return Ellipsoid{}, newError(KindInvalidInput, "ellipsoid parameters must be finite")
	}
	return newEllipsoid("Custom", "", a, f), nil
}
