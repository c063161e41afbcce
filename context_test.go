package geotrans

import (
	"math"
	"strings"
	"testing"
)

func TestContextLifecycle(t *testing.T) {
	ctx, err := NewContext(DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	ctx.Destroy()
	if _, err := ctx.ToUTM(NewGeoCoord(0, 0, 0, DatumWGS84), 0); err == nil {
		t.Fatal("expected error using a destroyed context")
	}
	if err := ctx.SetDatum(DatumNAD27); err == nil {
		t.Fatal("expected error mutating a destroyed context")
	}
}

func TestNewContextUnknownDatum(t *testing.T) {
	fired := false
	SetDefaultErrorCallback(func(err error) { fired = true })
	defer SetDefaultErrorCallback(nil)

	_, err := NewContext(Datum(999))
	if err == nil {
		t.Fatal("expected error for unknown datum")
	}
	ge, ok := err.(*Error)
	if !ok {
		t.Fatalf("error is not an *Error: %T", err)
	}
	if ge.Kind != KindInvalidInput {
		t.Errorf("kind = %v, want KindInvalidInput", ge.Kind)
	}
	if fired {
		t.Error("error callback fired for a caller-input failure; it is reserved for allocation failures")
	}
}

func TestContextSetCustomEllipsoid(t *testing.T) {
	ctx, err := NewContext(DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := ctx.SetCustomEllipsoid(6378137.0, 1/298.257223563); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := ctx.SetCustomEllipsoid(-1, 0.5); err == nil {
		t.Fatal("expected error for non-positive semi-major axis")
	}
	if err := ctx.SetCustomEllipsoid(6378137.0, 1.5); err == nil {
		t.Fatal("expected error for flattening outside (0,1)")
	}
}

func TestContextDatumRoundTrip(t *testing.T) {
	ctx, err := NewContext(DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for _, d := range []Datum{DatumNAD27, DatumED50, DatumTokyo, DatumOSGB36} {
		g := NewGeoCoord(35.6, 139.7, 0, DatumWGS84)
		shifted, err := ctx.ShiftDatum(g, d)
		if err != nil {
			t.Fatalf("shift to %v: unexpected error: %s", d, err)
		}
		back, err := ctx.ShiftDatum(shifted, DatumWGS84)
		if err != nil {
			t.Fatalf("shift back from %v: unexpected error: %s", d, err)
		}
		if math.Abs(back.LatDegrees()-g.LatDegrees()) > 1e-6 ||
			math.Abs(back.LonDegrees()-g.LonDegrees()) > 1e-6 {
			t.Errorf("round trip via %v: got (%v,%v), want (%v,%v)",
				d, back.LatDegrees(), back.LonDegrees(), g.LatDegrees(), g.LonDegrees())
		}
	}
}

func TestContextShanghaiToUTMAndMGRS(t *testing.T) {
	ctx, err := NewContext(DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	shanghai := NewGeoCoord(31.230416, 121.473701, 0, DatumWGS84)

	u, err := ctx.ToUTM(shanghai, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if u.Zone != 51 {
		t.Errorf("utm zone = %d, want 51", u.Zone)
	}

	m, err := ctx.ToMGRS(shanghai, 5)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if m.Zone != 51 || m.Band != 'R' {
		t.Errorf("mgrs zone/band = %d%c, want 51R", m.Zone, m.Band)
	}
}

func TestContextParsedUTMInverseNearBeijing(t *testing.T) {
	ctx, err := NewContext(DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	u := UTMCoord{Zone: 50, Hemisphere: HemisphereNorth, Easting: 447600, Northing: 4419300}
	g, err := ctx.FromUTM(u, DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if math.Abs(g.LatDegrees()-39.90) > 0.05 || math.Abs(g.LonDegrees()-116.41) > 0.05 {
		t.Errorf("got (%v,%v), want near (39.90,116.41)", g.LatDegrees(), g.LonDegrees())
	}
}

func TestContextDistanceShanghaiBeijing(t *testing.T) {
	ctx, err := NewContext(DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	shanghai := NewGeoCoord(31.230416, 121.473701, 0, DatumWGS84)
	beijing := NewGeoCoord(39.904211, 116.407394, 0, DatumWGS84)

	res, err := ctx.Distance(shanghai, beijing)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if math.Abs(res.Distance-1067000.0) > 2000 {
		t.Errorf("distance = %v, want within 2km of 1067000", res.Distance)
	}
}

func TestContextWGS84ToNAD27ShanghaiOffset(t *testing.T) {
	ctx, err := NewContext(DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	shanghai := NewGeoCoord(31.230416, 121.473701, 0, DatumWGS84)
	shifted, err := ctx.ShiftDatum(shanghai, DatumNAD27)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	distRes, err := ctx.geodesic.inverse(shanghai.LatRadians(), shanghai.LonRadians(),
		shifted.LatRadians(), shifted.LonRadians())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if math.Abs(distRes.Distance-280) > 50 {
		t.Errorf("WGS84->NAD27 offset = %v m, want ~280m (+/-50m)", distRes.Distance)
	}
}

func TestFormatDispatch(t *testing.T) {
	ctx, err := NewContext(DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	g := NewGeoCoord(31.230416, 121.473701, 0, DatumWGS84)

	dd, err := ctx.Format(g, FormatDD, DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(dd, "N") || !strings.Contains(dd, "E") {
		t.Errorf("DD format %q missing hemisphere letters", dd)
	}

	dmm, err := ctx.Format(g, FormatDMM, DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(dmm, "'") {
		t.Errorf("DMM format %q missing minutes mark", dmm)
	}

	dms, err := ctx.Format(g, FormatDMS, DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(dms, `"`) {
		t.Errorf("DMS format %q missing seconds mark", dms)
	}

	utmStr, err := ctx.Format(g, FormatUTM, DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.HasPrefix(utmStr, "51R ") {
		t.Errorf("UTM format %q does not start with 51R", utmStr)
	}

	mgrsStr, err := ctx.Format(g, FormatMGRS, DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.HasPrefix(mgrsStr, "51R ") {
		t.Errorf("MGRS format %q does not start with 51R", mgrsStr)
	}

	jp := NewGeoCoord(35.68, 139.77, 0, DatumWGS84)
	jgStr, err := ctx.Format(jp, FormatJapanGrid, DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.HasPrefix(jgStr, "Zone ") {
		t.Errorf("Japan Grid format %q does not start with Zone", jgStr)
	}

	bg := NewGeoCoord(52.65, -1.72, 0, DatumWGS84)
	bgStr, err := ctx.Format(bg, FormatBritishGrid, DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(bgStr) == 0 {
		t.Error("british grid format returned empty string")
	}
}

func TestFormatUnsupported(t *testing.T) {
	ctx, err := NewContext(DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	g := NewGeoCoord(0, 0, 0, DatumWGS84)
	if _, err := ctx.Format(g, Format(999), DatumWGS84); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestSetTransformParamsDerivesReverse(t *testing.T) {
	ctx, err := NewContext(DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	p := HelmertParams{DX: 10, DY: 20, DZ: 30, RX: 0.1, RY: 0.2, RZ: 0.3, ScalePPM: 1.5}
	if err := ctx.SetTransformParams(DatumWGS84, DatumED50, p); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	rev, ok := ctx.TransformParams(DatumED50, DatumWGS84)
	if !ok {
		t.Fatal("expected the derived reverse pair to be registered")
	}
	if rev.IsIdentity() {
		t.Fatal("expected a derived reverse transform, got identity")
	}
}

func TestShiftDatumUnregisteredPairErrors(t *testing.T) {
	ctx, err := NewContext(DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	g := NewGeoCoord(35.0, 135.0, 0, DatumNAD27)
	if _, err := ctx.ShiftDatum(g, DatumOSGB36); err == nil {
		t.Fatal("expected an error shifting between an unregistered datum pair")
	}
}
