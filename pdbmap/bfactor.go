/*
 * bfactor.go, part of golie.
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

package pdbmap

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	lie "github.com/rmera/golie"
)

// ReadInteractions reads the total energy of each protein residue (columns
// R2 and TOTAL_AV) from the residue summary name. If a residue appears more
// than once, the last value is kept. Rows that can't be read are skipped.
func ReadInteractions(name string) (map[int]float64, error) {
	T, err := lie.ReadTableFile(name)
	if err != nil {
		return nil, err
	}
	ri, ti := T.Index(ResidueCol), T.Index(TotalAvCol)
	if ri < 0 || ti < 0 {
		return nil, lie.NewError(lie.SchemaMismatch, name, fmt.Sprintf("columns %s and %s are needed", ResidueCol, TotalAvCol), true, "ReadInteractions")
	}
	ret := make(map[int]float64, T.Len())
	for _, r := range T.Records {
		if ri >= len(r) || ti >= len(r) {
			continue
		}
		res, err := strconv.Atoi(strings.TrimSpace(r[ri]))
		if err != nil {
			continue
		}
		v := lie.ParseCell(r[ti])
		if math.IsNaN(v) {
			continue
		}
		ret[res] = v
	}
	return ret, nil
}

// Shift returns a new map with gap added to every residue number in m,
// for structures whose numbering doesn't start where the topology's does.
func Shift(m map[int]float64, gap int) map[int]float64 {
	ret := make(map[int]float64, len(m))
	for k, v := range m {
		ret[k+gap] = v
	}
	return ret
}

// PDB columns, 0-based, end excluded.
const (
	residStart   = 22
	residEnd     = 26
	bfactorStart = 60
	bfactorEnd   = 66
)

// setBFactor returns the ATOM/HETATM line with its B-factor replaced by b.
// Short lines are padded with spaces.
func setBFactor(line string, b float64) string {
	if len(line) < bfactorEnd {
		line += strings.Repeat(" ", bfactorEnd-len(line))
	}
	return line[:bfactorStart] + fmt.Sprintf("%6.2f", b) + line[bfactorEnd:]
}

// MapBFactors copies the PDB structure read from r to w, setting the
// B-factor of every atom to minus the energy of its residue in values, so
// stronger interactions get higher B-factors. Atoms of residues without a
// value get 0.00. Only the residue number is considered, not the chain.
// It returns the number of residues with values.
func MapBFactors(w io.Writer, r io.Reader, values map[int]float64, l *log.Logger) (int, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	bw := bufio.NewWriter(w)
	found := make(map[int]bool)
	missing := make(map[int]bool)
	contlines := 0
	for s.Scan() {
		contlines++
		line := s.Text()
		if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
			if len(line) < residEnd {
				return 0, lie.NewError(lie.MalformedRecord, "", fmt.Sprintf("line %d too short", contlines), true, "MapBFactors")
			}
			res, err := strconv.Atoi(strings.TrimSpace(line[residStart:residEnd]))
			if err != nil {
				return 0, lie.NewError(lie.MalformedRecord, "", fmt.Sprintf("can't read residue number in line %d: %v", contlines, err), true, "MapBFactors")
			}
			b := 0.0
			if v, ok := values[res]; ok {
				b = -1 * v
				found[res] = true
			} else if !missing[res] {
				missing[res] = true
				lie.Logf(l, "Residue %d not found in interactions, setting B-factor to 0.0", res)
			}
			line = setBFactor(line, b)
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return 0, err
		}
	}
	if err := s.Err(); err != nil {
		return 0, lie.NewError(lie.MalformedRecord, "", err.Error(), true, "MapBFactors")
	}
	return len(found), bw.Flush()
}

// MapBFactorsFile applies MapBFactors to the PDB file in and writes the
// result to the file out, atomically. in and out can be the same file.
func MapBFactorsFile(in, out string, values map[int]float64, l *log.Logger) (int, error) {
	f, err := lie.Open(in)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	var found int
	err = lie.WriteAtomic(out, func(w io.Writer) error {
		var err error
		found, err = MapBFactors(w, f, values, l)
		return err
	})
	if err != nil {
		if e, ok := err.(*lie.Error); ok {
			e.Decorate("MapBFactorsFile")
		}
		return 0, err
	}
	return found, nil
}
