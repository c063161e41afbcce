package geotrans

import (
	"math"
	"testing"
)

func TestGeocentricRoundTrip(t *testing.T) {
	e := mustEllipsoid(DatumWGS84)
	lat := degToRad(37.5)
	lon := degToRad(-122.3)
	alt := 125.0

	x, y, z := geodeticToGeocentric(e, lat, lon, alt)
	lat2, lon2, alt2 := geocentricToGeodetic(e, x, y, z)

	if math.Abs(radToDeg(lat2)-radToDeg(lat)) > 1e-8 {
		t.Errorf("lat round trip: got %v, want %v", radToDeg(lat2), radToDeg(lat))
	}
	if math.Abs(radToDeg(lon2)-radToDeg(lon)) > 1e-8 {
		t.Errorf("lon round trip: got %v, want %v", radToDeg(lon2), radToDeg(lon))
	}
	if math.Abs(alt2-alt) > 1e-3 {
		t.Errorf("alt round trip: got %v, want %v", alt2, alt)
	}
}

func TestGeocentricPolarPoint(t *testing.T) {
	e := mustEllipsoid(DatumWGS84)
	lat := degToRad(89.999999)
	lon := degToRad(10)

	x, y, z := geodeticToGeocentric(e, lat, lon, 0)
	lat2, _, _ := geocentricToGeodetic(e, x, y, z)
	if math.Abs(radToDeg(lat2)-89.999999) > 1e-4 {
		t.Errorf("near-polar lat round trip: got %v", radToDeg(lat2))
	}
}

func TestDeriveReverseParamsIdentity(t *testing.T) {
	rev := deriveReverseParams(HelmertParams{})
	if !rev.IsIdentity() {
		t.Errorf("reverse of identity should be identity, got %+v", rev)
	}
}

func TestDeriveReverseParamsApproximatelyUndoes(t *testing.T) {
	fwd := defaultTransformTable()[[2]Datum{DatumWGS84, DatumTokyo}]
	rev := deriveReverseParams(fwd)

	x, y, z := 100.0, 200.0, 300.0
	xp, yp, zp := applyHelmert(fwd, x, y, z)
	x2, y2, z2 := applyHelmert(rev, xp, yp, zp)

	if math.Abs(x2-x) > 1.0 || math.Abs(y2-y) > 1.0 || math.Abs(z2-z) > 1.0 {
		t.Errorf("forward+reverse did not approximately round trip: got (%v,%v,%v), want ~(%v,%v,%v)",
			x2, y2, z2, x, y, z)
	}
}

func TestShiftDatumIdentityIsTagRewrite(t *testing.T) {
	g := NewGeoCoord(10, 20, 0, DatumWGS84)
	out, err := shiftDatum(g, DatumNAD83, HelmertParams{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if out.Datum != DatumNAD83 {
		t.Errorf("datum = %v, want NAD83", out.Datum)
	}
	if math.Abs(out.LatDegrees()-g.LatDegrees()) > 1e-12 {
		t.Errorf("identity shift changed latitude: got %v, want %v", out.LatDegrees(), g.LatDegrees())
	}
}

func TestShiftDatumWGS84ToTokyoMovesPoint(t *testing.T) {
	g := NewGeoCoord(35.0, 135.0, 0, DatumWGS84)
	params := defaultTransformTable()[[2]Datum{DatumWGS84, DatumTokyo}]
	out, err := shiftDatum(g, DatumTokyo, params)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if out.Datum != DatumTokyo {
		t.Errorf("datum = %v, want Tokyo", out.Datum)
	}
	if math.Abs(out.LatDegrees()-g.LatDegrees()) < 1e-6 {
		t.Errorf("expected a non-trivial shift between WGS84 and Tokyo datum")
	}
}
