package geotrans

import (
	"math"
	"strings"
)

// mgrsColumnAlphabet and mgrsRowAlphabet are the 24- and 20-letter
// alphabets used by the MGRS 100 km grid lettering, both with I and O
// skipped.
const (
	mgrsColumnAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	mgrsRowAlphabet    = "ABCDEFGHJKLMNPQRSTUV"
)

// mgrsColumnSetOrigins are the six column-set origin letters, indexed by
// ((zone-1) mod 6).
var mgrsColumnSetOrigins = [6]byte{'A', 'J', 'S', 'A', 'J', 'S'}

// MGRSCoord is a Military Grid Reference System point: zone, band letter,
// a two-letter 100km grid square, and easting/northing within it.
type MGRSCoord struct {
	Zone     int
	Band     byte
	Square   [2]byte
	Easting  int // 0..99999
	Northing int // 0..99999
}

// mgrsConverter builds on a utmConverter to add the 100km letter grid.
type mgrsConverter struct {
	utm *utmConverter
}

func newMGRSConverter(ellipsoid Ellipsoid) *mgrsConverter {
	return &mgrsConverter{utm: newUTMConverter(ellipsoid)}
}

func columnSetOrigin(zone int) byte {
	idx := ((zone-1)%6 + 6) % 6
	return mgrsColumnSetOrigins[idx]
}

// letterAt steps n positions (n may be negative) through alphabet from
// startLetter, wrapping around its length.
func letterAt(alphabet string, startLetter byte, n int) byte {
	start := strings.IndexByte(alphabet, startLetter)
	l := len(alphabet)
	idx := ((start+n)%l + l) % l
	return alphabet[idx]
}

// letterOffset counts the forward distance from startLetter to target
// within alphabet, wrapping.
func letterOffset(alphabet string, startLetter, target byte) int {
	start := strings.IndexByte(alphabet, startLetter)
	end := strings.IndexByte(alphabet, target)
	l := len(alphabet)
	return ((end-start)%l + l) % l
}

// rowParityOffset returns the row-letter offset for a zone/hemisphere
// combination: north-hemisphere odd zones use 0, even zones use 5;
// south-hemisphere reverses the parity.
func rowParityOffset(zone int, hemi Hemisphere) int {
	odd := zone%2 == 1
	if hemi == HemisphereNorth {
		if odd {
			return 0
		}
		return 5
	}
	if odd {
		return 5
	}
	return 0
}

// bandLatRange returns the inclusive-exclusive [min,max) latitude range in
// degrees for an MGRS/UTM band letter.
func bandLatRange(band byte) (float64, float64, error) {
	idx := strings.IndexByte(mgrsBandLetters, band)
	if idx < 0 {
		return 0, 0, newErrorf(KindParseFailed, "invalid band letter %q", band)
	}
	minLat := -80.0 + 8.0*float64(idx)
	maxLat := minLat + 8.0
	if band == 'X' {
		maxLat = 84.0
	}
	return minLat, maxLat, nil
}

func (m *mgrsConverter) forward(g GeoCoord, precision int) (MGRSCoord, error) {
	if err := validateMGRSPrecision(precision); err != nil {
		return MGRSCoord{}, err
	}

	utmc, err := m.utm.forward(g, 0)
	if err != nil {
		return MGRSCoord{}, err
	}
	band, err := utmBandLetterOf(g.LatDegrees())
	if err != nil {
		return MGRSCoord{}, err
	}

	// Round to whole meters before splitting into square and intra-square
	// parts so the letter carry propagates; truncating instead would lose
	// up to 1.4 m diagonally on decode.
	easting := int(math.Round(utmc.Easting))
	col100k := easting / 100000
	if col100k < 1 || col100k > 8 {
		return MGRSCoord{}, newErrorf(KindCalculation, "100km column index %d out of expected range", col100k)
	}
	colLetter := letterAt(mgrsColumnAlphabet, columnSetOrigin(utmc.Zone), col100k-1)

	trueNorthing := int(math.Round(utmc.Northing))
	if utmc.Hemisphere == HemisphereSouth {
		trueNorthing -= 10000000
	}
	row100k := trueNorthing / 100000
	if trueNorthing < 0 && row100k*100000 != trueNorthing {
		row100k--
	}
	offset := rowParityOffset(utmc.Zone, utmc.Hemisphere)
	rowIdx := ((row100k+offset)%20 + 20) % 20
	rowLetter := mgrsRowAlphabet[rowIdx]

	intraEasting := easting % 100000
	intraNorthing := trueNorthing % 100000
	if intraNorthing < 0 {
		intraNorthing += 100000
	}

	return MGRSCoord{
		Zone:     utmc.Zone,
		Band:     band,
		Square:   [2]byte{colLetter, rowLetter},
		Easting:  intraEasting,
		Northing: intraNorthing,
	}, nil
}

func validateMGRSPrecision(precision int) error {
	if precision < 0 || precision > 5 {
		return newErrorf(KindInvalidInput, "mgrs precision %d out of range", precision)
	}
	return nil
}

// inverse reconstructs the UTM northing by searching the 2 000 km row
// cycles for the one whose resulting latitude falls inside the point's
// latitude band -- the encoded row letter alone is periodic every 20 rows
// (2 000 km) and does not by itself disambiguate which cycle produced it.
func (m *mgrsConverter) inverse(c MGRSCoord, datum Datum) (GeoCoord, error) {
	if !validUTMZone(c.Zone) {
		return GeoCoord{}, newErrorf(KindInvalidUTMZone, "zone %d out of range", c.Zone)
	}
	if !validMGRSLetter(c.Square[0]) || !validMGRSLetter(c.Square[1]) {
		return GeoCoord{}, newErrorf(KindParseFailed, "invalid mgrs square letters %q", string(c.Square[:]))
	}
	if c.Easting < 0 || c.Easting > 99999 || c.Northing < 0 || c.Northing > 99999 {
		return GeoCoord{}, newError(KindOutOfRange, "mgrs intra-square offsets must be within [0, 99999]")
	}

	col100k := letterOffset(mgrsColumnAlphabet, columnSetOrigin(c.Zone), c.Square[0]) + 1
	easting := float64(col100k*100000 + c.Easting)

	hemi := HemisphereNorth
	if c.Band < 'N' {
		hemi = HemisphereSouth
	}
	offset := rowParityOffset(c.Zone, hemi)
	rowIdx := strings.IndexByte(mgrsRowAlphabet, c.Square[1])
	if rowIdx < 0 {
		return GeoCoord{}, newErrorf(KindParseFailed, "invalid mgrs row letter %q", c.Square[1])
	}
	rowBase := ((rowIdx-offset)%20 + 20) % 20

	minLat, maxLat, err := bandLatRange(c.Band)
	if err != nil {
		return GeoCoord{}, err
	}

	// Southern true northings reach about -9 000 km (row100k near -90), so
	// the search starts five cycles below zero. If rounding leaves the decoded
	// point just outside its band, the candidate nearest the band is used.
	var best GeoCoord
	bestGap := math.Inf(1)
	for k := -5; k <= 100; k++ {
		row100k := rowBase + 20*k
		trueNorthing := float64(row100k*100000 + c.Northing)
		northing := trueNorthing
		if hemi == HemisphereSouth {
			northing += 10000000.0
		}
		if northing < utmMinNorthing || northing > utmMaxNorthing {
			continue
		}
		utmc := UTMCoord{Zone: c.Zone, Hemisphere: hemi, Easting: easting, Northing: northing}
		g, err := m.utm.inverse(utmc, datum)
		if err != nil {
			continue
		}
		lat := g.LatDegrees()
		if lat >= minLat && lat < maxLat {
			return g, nil
		}
		if gap := math.Max(minLat-lat, lat-maxLat); gap < bestGap {
			best, bestGap = g, gap
		}
	}
	if !math.IsInf(bestGap, 1) {
		return best, nil
	}
	return GeoCoord{}, newError(KindCalculation, "no valid mgrs row cycle found for band")
}
