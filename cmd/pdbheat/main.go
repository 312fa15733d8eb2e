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

// pdbheat puts the per-residue LIE energies of a residue summary in the
// B-factor column of a PDB file, for a heat map in PyMOL.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

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

// parseInts reads a comma-separated list of residue numbers.
func parseInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	ret := make([]int, 0, len(fields))
	for _, v := range fields {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		ret = append(ret, i)
	}
	return ret, nil
}

func main() {
	verbose := flag.Int("v", 1, "Level of verbosity: 0 errors only, 1 results, 2 every residue without a value")
	pml := flag.String("pml", "", "Also write a PyMOL script showing the result to this file")
	spheres := flag.String("spheres", "", "Comma-separated residues to show as spheres in the PyMOL script")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n  %s: [flags] input.csv gap input.pdb output.pdb\n\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "gap is added to the residue numbers in input.csv, for structures whose numbering doesn't start with 1.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	verb = *verbose
	args := flag.Args()
	if len(args) != 4 {
		flag.Usage()
		os.Exit(1)
	}
	gap, err := strconv.Atoi(args[1])
	if err != nil {
		log.Fatal("The gap must be an integer: " + err.Error())
	}
	highlight, err := parseInts(*spheres)
	if err != nil {
		log.Fatal("Can't read the -spheres residues: " + err.Error())
	}
	var lg *log.Logger
	if verb >= 2 {
		lg = log.New(os.Stderr, "", 0)
	} else {
		lg = log.New(io.Discard, "", 0)
	}
	values, err := pdbmap.ReadInteractions(args[0])
	if err != nil {
		log.Fatal(err)
	}
	found, err := pdbmap.MapBFactorsFile(args[2], args[3], pdbmap.Shift(values, gap), lg)
	if err != nil {
		log.Fatal(err)
	}
	PrintV(1, "Found", found, "residues with interactions.")
	if *pml != "" {
		f, err := os.Create(*pml)
		if err != nil {
			log.Fatal(err)
		}
		err = pdbmap.WritePyMOLScript(f, args[3], &pdbmap.PyMOLOptions{Highlight: highlight})
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			LogV(0, "Can't write the PyMOL script:", err)
			os.Exit(1)
		}
	}
	PrintV(1, "Processed:", args[0], "->", args[3])
}
