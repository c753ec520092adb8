package telemetry

import "github.com/golang/geo/s2"

const earthRadiusMeters = 6371000.0

// Summary describes one flight for the placemark description and the CLI
// success line.
type Summary struct {
	Records   int
	Fixes     int
	NoFix     int
	MaxAltM   float64
	DistanceM float64
	Landing   Coordinate
}

// Summarize counts fixes and accumulates the ground-track distance between
// consecutive valid fixes. Carried-forward repeats contribute nothing, so the
// fold runs over the raw records rather than the filtered path.
func Summarize(recs []Record, trk Track) Summary {
	s := Summary{Records: len(recs), Landing: trk.Landing}
	var prev Coordinate
	havePrev := false
	for _, r := range recs {
		if r.NoFix() {
			s.NoFix++
			continue
		}
		s.Fixes++
		c := r.Coordinate()
		if c.Alt > s.MaxAltM {
			s.MaxAltM = c.Alt
		}
		if havePrev {
			s.DistanceM += groundDistanceM(prev, c)
		}
		prev = c
		havePrev = true
	}
	return s
}

// groundDistanceM is the great-circle distance in meters, ignoring altitude.
func groundDistanceM(a, b Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * earthRadiusMeters
}
