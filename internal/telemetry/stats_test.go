package telemetry

import "testing"

func TestSummarize_Counts(t *testing.T) {
	recs := []Record{
		rec(39.0, -76.0, 100.0),
		rec(0, 0, 0),
		rec(39.1, -76.1, 150.0),
	}
	trk := BuildTrack(recs, CarryForward)
	s := Summarize(recs, trk)
	if s.Records != 3 || s.Fixes != 2 || s.NoFix != 1 {
		t.Fatalf("records=%d fixes=%d nofix=%d", s.Records, s.Fixes, s.NoFix)
	}
	if s.MaxAltM != 150.0 {
		t.Fatalf("maxalt=%v", s.MaxAltM)
	}
	if s.Landing != trk.Landing {
		t.Fatalf("landing=%v want %v", s.Landing, trk.Landing)
	}
}

func TestSummarize_GroundDistance(t *testing.T) {
	recs := []Record{
		rec(39.0, -76.0, 100.0),
		rec(0, 0, 0), // dropout must not break the distance chain
		rec(39.1, -76.1, 150.0),
	}
	s := Summarize(recs, BuildTrack(recs, CarryForward))
	// 0.1 deg lat and 0.1 deg lon at 39N is roughly 14.1 km.
	if s.DistanceM < 13500 || s.DistanceM > 14700 {
		t.Fatalf("distance=%v m, expected ~14100", s.DistanceM)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, BuildTrack(nil, CarryForward))
	if s.Records != 0 || s.Fixes != 0 || s.DistanceM != 0 || s.MaxAltM != 0 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.Landing != (Coordinate{}) {
		t.Fatalf("landing=%v", s.Landing)
	}
}
