package geotrans

import (
	"math"
	"testing"
)

func TestGeodesicInverseShanghaiBeijing(t *testing.T) {
	g := newGeodesic(mustEllipsoid(DatumWGS84))
	shanghai := NewGeoCoord(31.230416, 121.473701, 0, DatumWGS84)
	beijing := NewGeoCoord(39.904211, 116.407394, 0, DatumWGS84)

	res, err := g.inverse(shanghai.LatRadians(), shanghai.LonRadians(), beijing.LatRadians(), beijing.LonRadians())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	const want = 1067000.0
	if math.Abs(res.Distance-want) > 2000 {
		t.Fatalf("distance = %v, want within 2km of %v", res.Distance, want)
	}
}

func TestGeodesicDirectFromShanghai(t *testing.T) {
	g := newGeodesic(mustEllipsoid(DatumWGS84))
	shanghai := NewGeoCoord(31.230416, 121.473701, 0, DatumWGS84)

	lat2, lon2, _ := g.direct(shanghai.LatRadians(), shanghai.LonRadians(), degToRad(45), 100000)
	gotLat := radToDeg(lat2)
	gotLon := radToDeg(lon2)

	if math.Abs(gotLat-31.86) > 0.05 {
		t.Errorf("lat2 = %v, want ~31.86", gotLat)
	}
	if math.Abs(gotLon-122.22) > 0.05 {
		t.Errorf("lon2 = %v, want ~122.22", gotLon)
	}
}

func TestGeodesicCoincidentPoints(t *testing.T) {
	g := newGeodesic(mustEllipsoid(DatumWGS84))
	res, err := g.inverse(degToRad(10), degToRad(20), degToRad(10), degToRad(20))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if res.Distance != 0 {
		t.Errorf("distance = %v, want 0", res.Distance)
	}
}

func TestGeodesicRoundTripDirectThenInverse(t *testing.T) {
	g := newGeodesic(mustEllipsoid(DatumWGS84))
	lat1, lon1 := degToRad(45), degToRad(-93)
	azimuth := degToRad(120)
	distance := 500000.0

	lat2, lon2, _ := g.direct(lat1, lon1, azimuth, distance)
	res, err := g.inverse(lat1, lon1, lat2, lon2)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if math.Abs(res.Distance-distance) > 1.0 {
		t.Fatalf("round trip distance = %v, want ~%v", res.Distance, distance)
	}
}
