package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"aprs2kml/internal/config"
	"aprs2kml/internal/kml"
	"aprs2kml/internal/telemetry"
)

// Exit codes, one per failure class, so the tool scripts cleanly.
const (
	exitOK                = 0
	exitUsage             = 1
	exitInputAccess       = 2
	exitOutputAccess      = 3
	exitOverwriteDeclined = 4
	exitMalformedRecord   = 5
)

const usageText = `usage: aprs2kml [-f] [-config file] <input-log> [flight-name] [output-file]

Converts a balloon-tracker telemetry log (timestamp,lat,lon,alt,quality per
line) into a KML flight path with the landing site marked.

  <input-log>    telemetry log to convert
  [flight-name]  placemark name (default: input filename without extension)
  [output-file]  output path; the extension is always forced to .kml
                 (default: input path with its extension replaced by .kml)

  -f             overwrite an existing output file without prompting
  -config file   YAML config (filter policy, style colors, header skip)
  -?, -h, -H, --help   show this help
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if wantsHelp(args) {
		fmt.Fprint(stdout, usageText)
		return exitOK
	}

	fs := flag.NewFlagSet("aprs2kml", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	force := fs.Bool("f", false, "overwrite without prompting")
	configPath := fs.String("config", "", "path to YAML config")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "aprs2kml: %v\n", err)
		fmt.Fprint(stderr, usageText)
		return exitUsage
	}

	pos := fs.Args()
	if len(pos) < 1 || len(pos) > 3 {
		fmt.Fprint(stderr, usageText)
		return exitUsage
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "aprs2kml: config: %v\n", err)
			return exitUsage
		}
	}

	inputPath := pos[0]
	flightName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if len(pos) >= 2 {
		flightName = pos[1]
	}
	outputPath := forceKMLExt(inputPath)
	if len(pos) == 3 {
		outputPath = forceKMLExt(pos[2])
	}

	in, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "aprs2kml: cannot open input: %v\n", err)
		fmt.Fprint(stderr, usageText)
		return exitInputAccess
	}
	defer in.Close()

	// Parse everything up front: a malformed log must never create or
	// truncate the output file.
	recs, err := telemetry.NewReader(in, cfg.SkipHeaderLines).ReadAll()
	if err != nil {
		var pe *telemetry.ParseError
		if errors.As(err, &pe) {
			fmt.Fprintf(stderr, "aprs2kml: %s: %v\n", inputPath, err)
			return exitMalformedRecord
		}
		fmt.Fprintf(stderr, "aprs2kml: reading %s: %v\n", inputPath, err)
		return exitInputAccess
	}

	if !*force {
		if _, err := os.Stat(outputPath); err == nil {
			if !confirmOverwrite(stdin, stdout, outputPath) {
				return exitOverwriteDeclined
			}
		}
	}

	trk := telemetry.BuildTrack(recs, telemetry.Policy(cfg.Filter.Policy))
	sum := telemetry.Summarize(recs, trk)

	out, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(stderr, "aprs2kml: cannot create %s: %v\n", outputPath, err)
		fmt.Fprint(stderr, usageText)
		return exitOutputAccess
	}

	st := kml.PathStyle{
		LineColor: cfg.Style.LineColor,
		LineWidth: cfg.Style.LineWidth,
		PolyColor: cfg.Style.PolyColor,
	}
	if err := kml.Write(out, flightName, describe(sum), trk, st); err != nil {
		out.Close()
		fmt.Fprintf(stderr, "aprs2kml: writing %s: %v\n", outputPath, err)
		return exitOutputAccess
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(stderr, "aprs2kml: closing %s: %v\n", outputPath, err)
		return exitOutputAccess
	}

	fmt.Fprintf(stdout, "%s: %d records, %d fixes, %d without lock; ground track %.1f km, max altitude %.0f m\nwrote %s\n",
		inputPath, sum.Records, sum.Fixes, sum.NoFix, sum.DistanceM/1000, sum.MaxAltM, outputPath)
	return exitOK
}

// wantsHelp reports whether any argument, in any position, asks for help.
func wantsHelp(args []string) bool {
	for _, a := range args {
		switch a {
		case "-?", "-h", "-H", "--help":
			return true
		}
	}
	return false
}

// forceKMLExt replaces whatever extension the path carries with .kml.
func forceKMLExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".kml"
}

// confirmOverwrite asks on stdout and reads one answer line; only y/yes
// (case-insensitive) confirms. EOF counts as a decline.
func confirmOverwrite(stdin io.Reader, stdout io.Writer, path string) bool {
	fmt.Fprintf(stdout, "%s exists. Overwrite? [y/N] ", path)
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func describe(s telemetry.Summary) string {
	return fmt.Sprintf("%d telemetry records (%d fixes, %d without GPS lock). Ground track %.1f km, max altitude %.0f m. Landing at %s.",
		s.Records, s.Fixes, s.NoFix, s.DistanceM/1000, s.MaxAltM, kml.FormatCoordinate(s.Landing))
}
