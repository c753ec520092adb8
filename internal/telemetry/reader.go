package telemetry

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Log format: line-oriented text, one record per line.
//
// - Blank lines ignored.
// - Fields are comma-separated:
//   <timestamp>,<lat>,<lon>,<alt>,<quality>[,...]
//   where lat/lon are decimal degrees and alt is meters.
// - The timestamp and anything past the quality field are carried opaquely;
//   the conversion only interprets fields 1-3.
//
// A line that does not fit this shape is file corruption, not noise: the
// reader fails the whole run instead of skipping it.

type Record struct {
	Timestamp string
	Lat       float64
	Lon       float64
	Alt       float64
	Quality   string
}

const (
	fieldLat     = 1
	fieldLon     = 2
	fieldAlt     = 3
	fieldQuality = 4
	minFields    = 4
)

// ParseError reports a structurally broken telemetry line. Line is 1-based
// and counts all input lines, including skipped header lines.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("telemetry line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type Reader struct {
	r    io.Reader
	skip int
}

// NewReader reads telemetry from r. skipHeader leading lines are discarded
// before record parsing begins (metadata preceding telemetry; normally 0).
func NewReader(r io.Reader, skipHeader int) *Reader {
	return &Reader{r: r, skip: skipHeader}
}

// Reset rewinds to the start of the underlying stream so ReadAll can run
// again. The source must be seekable.
func (rr *Reader) Reset() error {
	s, ok := rr.r.(io.Seeker)
	if !ok {
		return fmt.Errorf("telemetry source is not seekable")
	}
	_, err := s.Seek(0, io.SeekStart)
	return err
}

func (rr *Reader) ReadAll() ([]Record, error) {
	s := bufio.NewScanner(rr.r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	recs := make([]Record, 0, 256)
	lineNo := 0
	for s.Scan() {
		lineNo++
		if lineNo <= rr.skip {
			continue
		}
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		rec, err := parseRecord(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		recs = append(recs, rec)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return recs, nil
}

func parseRecord(line string) (Record, error) {
	f := strings.Split(line, ",")
	if len(f) < minFields {
		return Record{}, fmt.Errorf("want at least %d comma-separated fields, got %d", minFields, len(f))
	}

	lat, err := parseDegrees(f[fieldLat], "latitude")
	if err != nil {
		return Record{}, err
	}
	lon, err := parseDegrees(f[fieldLon], "longitude")
	if err != nil {
		return Record{}, err
	}
	alt, err := parseDegrees(f[fieldAlt], "altitude")
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Timestamp: strings.TrimSpace(f[0]),
		Lat:       lat,
		Lon:       lon,
		Alt:       alt,
	}
	if len(f) > fieldQuality {
		rec.Quality = strings.TrimSpace(f[fieldQuality])
	}
	return rec, nil
}

func parseDegrees(s, name string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}
