package telemetry

// Coordinate is one flight-path vertex: decimal degrees plus meters MSL.
type Coordinate struct {
	Lat float64
	Lon float64
	Alt float64
}

// NoFix reports whether the record carries the all-zero "no GPS lock"
// sentinel the modem emits while it has no satellite solution.
func (r Record) NoFix() bool {
	return r.Lat == 0 && r.Lon == 0 && r.Alt == 0
}

func (r Record) Coordinate() Coordinate {
	return Coordinate{Lat: r.Lat, Lon: r.Lon, Alt: r.Alt}
}

// Policy decides what happens to a no-fix record.
type Policy string

const (
	// CarryForward replaces a no-fix record with a repeat of the last valid
	// coordinate, keeping the path temporally dense across dropouts.
	CarryForward Policy = "carry-forward"
	// Drop omits no-fix records from the path entirely.
	Drop Policy = "drop"
)

// Track is the renderable result of one conversion: the ordered flight path
// and the landing site. Landing is the last valid fix in file order; it stays
// the zero Coordinate when the input never contains a valid fix.
type Track struct {
	Points  []Coordinate
	Landing Coordinate
}

// BuildTrack folds the parsed records into a Track. A no-fix record never
// updates the last-valid state under either policy; before the first valid
// fix there is nothing to carry forward, so leading no-fix records are
// dropped under both policies.
func BuildTrack(recs []Record, pol Policy) Track {
	trk := Track{Points: make([]Coordinate, 0, len(recs))}
	var last *Coordinate
	for _, r := range recs {
		if r.NoFix() {
			if pol == CarryForward && last != nil {
				trk.Points = append(trk.Points, *last)
			}
			continue
		}
		c := r.Coordinate()
		trk.Points = append(trk.Points, c)
		last = &c
	}
	if last != nil {
		trk.Landing = *last
	}
	return trk
}
