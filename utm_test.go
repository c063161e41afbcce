package geotrans

import (
	"math"
	"testing"
)

func TestUTMRoundTrip(t *testing.T) {
	u := newUTMConverter(mustEllipsoid(DatumWGS84))
	const latInc = 2.5
	const lngInc = 5.0
	for lng := -179.0; lng < 180; lng += lngInc {
		for lat := -79.0; lat < 84; lat += latInc {
			geo := NewGeoCoord(lat, lng, 0, DatumWGS84)
			uc, err := u.forward(geo, 0)
			if err != nil {
				continue
			}
			geo2, err := u.inverse(uc, DatumWGS84)
			if err != nil {
				t.Fatalf("expected no error in round trip at (%v,%v): %s", lat, lng, err)
			}
			if math.Abs(geo.LatDegrees()-geo2.LatDegrees()) > 1e-7 {
				t.Fatalf("lat mismatch at (%v,%v): got %v", lat, lng, geo2.LatDegrees())
			}
			if math.Abs(geo.LonDegrees()-geo2.LonDegrees()) > 1e-7 {
				t.Fatalf("lng mismatch at (%v,%v): got %v", lat, lng, geo2.LonDegrees())
			}
		}
	}
}

func TestUTMConvergenceAndScale(t *testing.T) {
	u := newUTMConverter(mustEllipsoid(DatumWGS84))

	// On the central meridian the grid is aligned with true north and the
	// scale is exactly k0.
	onCM := NewGeoCoord(45, 9, 0, DatumWGS84)
	uc, err := u.forward(onCM, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if math.Abs(uc.Convergence) > 1e-12 {
		t.Errorf("convergence on central meridian = %v, want 0", uc.Convergence)
	}
	if math.Abs(uc.Scale-0.9996) > 1e-12 {
		t.Errorf("scale on central meridian = %v, want 0.9996", uc.Scale)
	}

	// Away from it, convergence is positive to the east and scale exceeds k0.
	east := NewGeoCoord(45, 11, 0, DatumWGS84)
	uc, err = u.forward(east, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if uc.Convergence <= 0 {
		t.Errorf("convergence east of central meridian = %v, want > 0", uc.Convergence)
	}
	if uc.Scale <= 0.9996 {
		t.Errorf("scale away from central meridian = %v, want > 0.9996", uc.Scale)
	}
}

func TestUTMInverseBandDeterminesHemisphere(t *testing.T) {
	u := newUTMConverter(mustEllipsoid(DatumWGS84))
	sydney := NewGeoCoord(-33.87, 151.21, 0, DatumWGS84)
	uc, err := u.forward(sydney, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if uc.Band != 'H' || uc.Hemisphere != HemisphereSouth {
		t.Fatalf("forward gave band %c hemisphere %v, want H south", uc.Band, uc.Hemisphere)
	}

	// Hemisphere deliberately left at its zero value; the band alone must
	// place the point south of the equator.
	byBand := UTMCoord{Zone: uc.Zone, Band: uc.Band, Easting: uc.Easting, Northing: uc.Northing}
	geo, err := u.inverse(byBand, DatumWGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if math.Abs(geo.LatDegrees()-sydney.LatDegrees()) > 1e-5 {
		t.Fatalf("lat = %v, want %v", geo.LatDegrees(), sydney.LatDegrees())
	}

	if _, err := u.inverse(UTMCoord{Zone: uc.Zone, Band: 'I', Easting: uc.Easting, Northing: uc.Northing}, DatumWGS84); err == nil {
		t.Fatal("expected error for forbidden band letter I")
	}
}

func TestUTMZoneOverride(t *testing.T) {
	u := newUTMConverter(mustEllipsoid(DatumWGS84))
	geo := NewGeoCoord(10, 10, 0, DatumWGS84)
	uc, err := u.forward(geo, 32)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if uc.Zone != 32 {
		t.Fatalf("expected overridden zone 32, got %d", uc.Zone)
	}
}
