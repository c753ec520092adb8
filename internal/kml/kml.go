// Package kml renders one flight track as an OGC KML 2.2 document: a single
// Document with one shared Style and one Placemark whose MultiGeometry pairs
// the extruded flight path with the landing-site point.
package kml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"aprs2kml/internal/telemetry"
)

const (
	Namespace = "http://www.opengis.net/kml/2.2"

	// StyleID names the single shared style; the placemark references it
	// via styleUrl.
	StyleID = "aprsformat"

	altitudeModeAbsolute = "absolute"
)

// PathStyle holds the KML style constants (colors are aabbggrr hex as KML
// wants them).
type PathStyle struct {
	LineColor string
	LineWidth int
	PolyColor string
}

type kmlRoot struct {
	XMLName  xml.Name `xml:"kml"`
	Xmlns    string   `xml:"xmlns,attr"`
	Document document `xml:"Document"`
}

type document struct {
	Style     style     `xml:"Style"`
	Placemark placemark `xml:"Placemark"`
}

type style struct {
	ID        string    `xml:"id,attr"`
	LineStyle lineStyle `xml:"LineStyle"`
	PolyStyle polyStyle `xml:"PolyStyle"`
}

type lineStyle struct {
	Color string `xml:"color"`
	Width int    `xml:"width"`
}

type polyStyle struct {
	Color string `xml:"color"`
}

type placemark struct {
	Name        string        `xml:"name"`
	Description string        `xml:"description,omitempty"`
	StyleURL    string        `xml:"styleUrl"`
	Geometry    multiGeometry `xml:"MultiGeometry"`
}

type multiGeometry struct {
	Line  lineString `xml:"LineString"`
	Point point      `xml:"Point"`
}

type lineString struct {
	Extrude      int    `xml:"extrude"`
	AltitudeMode string `xml:"altitudeMode"`
	Coordinates  string `xml:"coordinates"`
}

type point struct {
	AltitudeMode string `xml:"altitudeMode"`
	Coordinates  string `xml:"coordinates"`
}

// FormatCoordinate renders one KML coordinate triple: longitude first, then
// latitude (both to 6 decimal places), then altitude zero-padded to 1 decimal
// place, matching the tracker's original output convention.
func FormatCoordinate(c telemetry.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f,%07.1f", c.Lon, c.Lat, c.Alt)
}

func coordinateList(pts []telemetry.Coordinate) string {
	triples := make([]string, len(pts))
	for i, p := range pts {
		triples[i] = FormatCoordinate(p)
	}
	return strings.Join(triples, "\n")
}

// Write emits the complete document to w in one pass: XML header, then the
// indented kml tree. The name and description are escaped by the encoder, so
// the flight name may contain markup-significant characters.
func Write(w io.Writer, name, description string, trk telemetry.Track, st PathStyle) error {
	doc := kmlRoot{
		Xmlns: Namespace,
		Document: document{
			Style: style{
				ID:        StyleID,
				LineStyle: lineStyle{Color: st.LineColor, Width: st.LineWidth},
				PolyStyle: polyStyle{Color: st.PolyColor},
			},
			Placemark: placemark{
				Name:        name,
				Description: description,
				StyleURL:    "#" + StyleID,
				Geometry: multiGeometry{
					Line: lineString{
						Extrude:      1,
						AltitudeMode: altitudeModeAbsolute,
						Coordinates:  coordinateList(trk.Points),
					},
					Point: point{
						AltitudeMode: altitudeModeAbsolute,
						Coordinates:  FormatCoordinate(trk.Landing),
					},
				},
			},
		},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
