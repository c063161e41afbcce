package geotrans

import (
	"math"
	"testing"
)

func TestEllipsoidRegistry(t *testing.T) {
	cases := []struct {
		datum Datum
		a     float64
		invF  float64
	}{
		{DatumWGS84, 6378137.0, 298.257223563},
		{DatumNAD83, 6378137.0, 298.257222101},
		{DatumNAD27, 6378206.4, 294.9786982},
		{DatumED50, 6378388.0, 297.0},
		{DatumTokyo, 6377397.155, 299.1528128},
		{DatumOSGB36, 6377563.396, 299.3249646},
		{DatumMGRSGrid, 6378137.0, 298.257223563},
		{DatumUTMGrid, 6378137.0, 298.257223563},
	}
	for _, c := range cases {
		e, err := ellipsoidOf(c.datum)
		if err != nil {
			t.Fatalf("%v: unexpected error: %s", c.datum, err)
		}
		if e.A != c.a {
			t.Errorf("%v: a = %v, want %v", c.datum, e.A, c.a)
		}
		if math.Abs(1/e.F-c.invF) > 1e-9 {
			t.Errorf("%v: 1/f = %v, want %v", c.datum, 1/e.F, c.invF)
		}
		if e.B >= e.A {
			t.Errorf("%v: semi-minor axis %v not less than semi-major %v", c.datum, e.B, e.A)
		}
		wantESq := 2*e.F - e.F*e.F
		if math.Abs(e.ESq-wantESq) > 1e-15 {
			t.Errorf("%v: e^2 = %v, want %v", c.datum, e.ESq, wantESq)
		}
	}
}

func TestEllipsoidOfUnknownDatum(t *testing.T) {
	if _, err := ellipsoidOf(Datum(99)); err == nil {
		t.Fatal("expected error for unknown datum")
	}
}

func TestNewCustomEllipsoid(t *testing.T) {
	e, err := newCustomEllipsoid(6378137.0, 1/298.257223563)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if e.Code != "" {
		t.Errorf("custom ellipsoid should have no precomputed-coefficient code, got %q", e.Code)
	}
	if _, err := newCustomEllipsoid(0, 0.5); err == nil {
		t.Error("expected error for zero semi-major axis")
	}
	if _, err := newCustomEllipsoid(6378137.0, 0); err == nil {
		t.Error("expected error for zero flattening")
	}
	if _, err := newCustomEllipsoid(6378137.0, 1); err == nil {
		t.Error("expected error for flattening of one")
	}
}
