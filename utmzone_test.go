package geotrans

import "testing"

func TestUTMZoneExceptions(t *testing.T) {
	cases := []struct {
		lon, lat float64
		want     int
	}{
		{7, 60, 32},
		{10, 75, 33},
		{5, 75, 31},
		{25, 75, 35},
		{40, 75, 37},
	}
	for _, c := range cases {
		got := utmZoneOf(c.lat, c.lon)
		if got != c.want {
			t.Errorf("utmZoneOf(lat=%v, lon=%v) = %d, want %d", c.lat, c.lon, got, c.want)
		}
	}
}

func TestUTMBandLetterMonotoneAndNoIO(t *testing.T) {
	prev := byte(0)
	for lat := -80.0; lat < 84; lat += 1.0 {
		b, err := utmBandLetterOf(lat)
		if err != nil {
			t.Fatalf("unexpected error at lat %v: %s", lat, err)
		}
		if b == 'I' || b == 'O' {
			t.Fatalf("band letter at lat %v is forbidden: %c", lat, b)
		}
		if prev != 0 && b < prev {
			t.Fatalf("band letter not monotone: prev=%c cur=%c at lat %v", prev, b, lat)
		}
		prev = b
	}
}

func TestUTMBandLetterScenarios(t *testing.T) {
	cases := []struct {
		lat  float64
		want byte
	}{
		{31.23, 'R'},
		{-33.87, 'H'},
		{51.51, 'U'},
	}
	for _, c := range cases {
		got, err := utmBandLetterOf(c.lat)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if got != c.want {
			t.Errorf("utmBandLetterOf(%v) = %c, want %c", c.lat, got, c.want)
		}
	}
}
