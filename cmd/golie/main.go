/*
 * main.go, part of golie.
 *
 * Copyright 2025 Raul Mera <rmeraa{at}academicos(dot)uta(dot)cl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// golie runs the LIE post-processing pipeline on a directory: it converts
// the cpptraj LIE files into tables with statistics headers, aggregates
// them into groups and draws the grouped bar chart.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	lie "github.com/rmera/golie"
	"github.com/rmera/golie/config"
	"github.com/rmera/golie/cpptraj"
	"github.com/rmera/golie/group"
	"github.com/rmera/golie/lieplot"
	"github.com/rmera/golie/pdbmap"
)

var verb int

// If level is larger or equal, prints the d arguments to stderr
// otherwise, does nothing.
func LogV(level int, d ...interface{}) {
	if level <= verb {
		fmt.Fprintln(os.Stderr, d...)
	}
}

// If level is larger or equal, prints the d arguments to stdout
// otherwise, does nothing.
func PrintV(level int, d ...interface{}) {
	if level <= verb {
		fmt.Println(d...)
	}
}

func main() {
	dir := flag.String("d", ".", "Directory with the LIE files (.dat, .dat.gz, .dat.zst) or converted tables")
	confname := flag.String("c", "", "YAML configuration file. The built-in Fe/Ga configuration is used if not given")
	outdir := flag.String("o", "", "Directory for the aggregated tables and the chart. Defaults to the -d directory")
	verbose := flag.Int("v", 1, "Level of verbosity: 0 errors only, 1 warnings, 2 progress")
	runCpptraj := flag.Bool("cpptraj", false, "Write the cpptraj input in the configuration and run cpptraj before the conversion")
	skipConvert := flag.Bool("skip-convert", false, "Don't convert LIE files, use the tables already in the directory")
	skipPlot := flag.Bool("skip-plot", false, "Don't draw the chart")
	summary := flag.String("summary", "", "Also write a per-residue summary of the converted tables to this file (input for pdbheat)")
	dump := flag.Bool("dump-config", false, "Print the configuration in YAML form and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n  %s: [flags]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	verb = *verbose

	P, err := config.Load(*confname)
	if err != nil {
		log.Fatal(err)
	}
	if *dump {
		if err := P.Write(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	var lg *log.Logger
	switch {
	case verb >= 2:
		lg = log.New(os.Stderr, "", 0)
	case verb == 1:
		lg = log.New(os.Stderr, "golie: ", 0)
	default:
		lg = log.New(io.Discard, "", 0)
	}
	out := *outdir
	if out == "" {
		out = *dir
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		log.Fatal(err)
	}

	if *runCpptraj {
		if P.Cpptraj == nil {
			log.Fatal("No cpptraj input in the configuration")
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		H := cpptraj.NewHandle()
		H.SetDir(*dir)
		if err := H.BuildInput(P.Cpptraj); err != nil {
			log.Fatal(err)
		}
		PrintV(1, "Running cpptraj with", H.InputName())
		err := H.Run(ctx)
		stop()
		if err != nil {
			log.Fatal(err)
		}
		PrintV(1, "LIE analysis completed")
	}

	if !*skipConvert {
		PrintV(1, "--- Converting LIE files and calculating [ETOTAL] ---")
		tables, err := lie.ConvertDir(*dir, &lie.ConvertOptions{Annotate: P.Annotator(), Logger: lg})
		if err != nil {
			LogV(0, "Conversion failed:", err)
		}
		PrintV(1, len(tables), "tables written")
	}

	PrintV(1, "--- Aggregating tables ---")
	files, err := group.Aggregate(*dir, P.Queries, &group.Options{OutDir: out, Logger: lg})
	if err != nil {
		LogV(0, "Aggregation failed:", err)
	}
	PrintV(1, len(files), "of", len(P.Queries), "groups written")

	if *summary != "" {
		n, err := pdbmap.Summarize(*dir, *summary, nil, lg)
		if err != nil {
			LogV(0, "Can't write the residue summary:", err)
		} else {
			PrintV(1, "Residue summary with", n, "pairs written to", *summary)
		}
	}

	if *skipPlot {
		return
	}
	if len(files) == 0 {
		LogV(0, "Cannot generate chart: no groups were aggregated")
		os.Exit(1)
	}
	o := P.PlotOptions()
	o.Logger = lg
	name, err := lieplot.Draw(P.PlotBins(), files, o, P.Style(), out)
	if err != nil {
		LogV(0, "Chart generation failed:", err)
		os.Exit(1)
	}
	PrintV(1, "Chart saved as", name)
}
