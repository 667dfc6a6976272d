package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"
)

type config struct {
	lo, hi, gamma     *float64
	ylabel, lineColor *string
	width, height     *int
	size              *string
	out               *string
	blackbody         *float64
	sun               *bool
	lat, lon          *float64
	timeStr           *string
	swatch            *bool
	rowFrom, rowTo    *int
	workers           *int
	verbose, showHelp *bool
}

func defineFlags() config {
	return config{
		lo:        flag.Float64("lo", 400, "Wavelength of the first sample when an input has no x column (nm)"),
		hi:        flag.Float64("hi", 700, "Wavelength of the last sample when an input has no x column (nm)"),
		gamma:     flag.Float64("gamma", 0.8, "Gamma applied to the background spectrum colors"),
		ylabel:    flag.String("ylabel", "", "Y axis label"),
		lineColor: flag.String("line-color", "darkred", "Curve color: SVG color name or #rrggbb"),

		width:  flag.Int("width", 640, "Output image width in pixels"),
		height: flag.Int("height", 480, "Output image height in pixels"),
		size:   flag.String("size", "", "Output size as WxH (e.g., 800x600); overrides -width and -height"),
		out:    flag.String("out", "spectrum.png", "Output PNG path (a directory when several inputs are given)"),

		blackbody: flag.Float64("blackbody", 0, "Plot a blackbody spectrum at this temperature (K)"),
		sun:       flag.Bool("sun", false, "Plot the sunlight spectrum at -lat/-lon/-time"),
		lat:       flag.Float64("lat", 47.5, "Observer latitude in degrees"),
		lon:       flag.Float64("lon", 19.0, "Observer longitude in degrees"),
		timeStr:   flag.String("time", "", "Time in RFC3339 format (e.g., 2025-08-02T15:04:05Z); defaults to now"),
		swatch:    flag.Bool("swatch", false, "Write the wavelength color bar instead of a plot"),

		rowFrom: flag.Int("rows-from", 0, "First image row averaged into the profile"),
		rowTo:   flag.Int("rows-to", -1, "End of the averaged row band (exclusive); -1 means the last row"),
		workers: flag.Int("workers", 4, "Inputs rendered concurrently"),

		verbose:  flag.Bool("v", false, "Verbose logging"),
		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Spectrum Plotter - Wavelength Colored Spectrum Plots

Usage:
  %[1]s [options] [input.csv|image ...]

Inputs are CSV tables (one intensity column, or wavelength and intensity)
or photographs of a spectrum, profiled column by column.

`, os.Args[0])

	printGroup("Spectrum Options", []string{"lo", "hi", "gamma", "ylabel", "line-color"})
	printGroup("Sources", []string{"blackbody", "sun", "lat", "lon", "time", "swatch"})
	printGroup("Image Inputs", []string{"rows-from", "rows-to"})
	printGroup("Output", []string{"width", "height", "size", "out", "workers"})
	printGroup("Misc", []string{"v", "h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-10s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {

	cfg := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *cfg.showHelp {
		printHelp()
		return
	}
	if *cfg.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	job := settings{
		lo:      *cfg.lo,
		hi:      *cfg.hi,
		gamma:   *cfg.gamma,
		ylabel:  *cfg.ylabel,
		width:   *cfg.width,
		height:  *cfg.height,
		rowFrom: *cfg.rowFrom,
		rowTo:   *cfg.rowTo,
	}
	if *cfg.size != "" {
		w, h, err := parseSize(*cfg.size)
		if err != nil {
			log.Fatal(err)
		}
		job.width, job.height = w, h
	}
	lineColor, err := parseLineColor(*cfg.lineColor)
	if err != nil {
		log.Fatal(err)
	}
	job.lineColor = lineColor

	switch {
	case *cfg.swatch:
		err = writeSwatch(*cfg.out, job)
	case *cfg.blackbody > 0:
		err = plotBlackbody(*cfg.out, *cfg.blackbody, job)
	case *cfg.sun:
		err = plotSunlight(*cfg.out, parseTimeOrExit(*cfg.timeStr), *cfg.lat, *cfg.lon, job)
	case flag.NArg() > 0:
		err = plotInputs(flag.Args(), *cfg.out, *cfg.workers, job)
	default:
		printHelp()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func parseTimeOrExit(timeStr string) time.Time {
	if timeStr == "" {
		return time.Now()
	}
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		log.Fatalf("Invalid time format: %v", err)
	}
	return t
}
