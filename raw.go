/*
 * raw.go, part of golie.
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

package lie

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
)

// Column names of a converted table, as cpptraj names the LIE terms.
const (
	FrameCol = "Frame"
	ElecCol  = "LIE_00001[EELEC]"
	VdWCol   = "LIE_00001[EVDW]"
	TotalCol = "[ETOTAL]"
)

// Record is one frame of a LIE energy file. Missing values are NaN.
type Record struct {
	Frame float64
	Elec  float64
	VdW   float64
}

// Total returns the sum of the electrostatic and van der Waals terms.
// It is NaN if either one is missing.
func (R Record) Total() float64 {
	return R.Elec + R.VdW
}

// ReadRaw reads a whitespace-separated LIE file, as written by cpptraj:
// one header line, which is ignored, followed by one line per frame with
// the frame number, the electrostatic and the van der Waals energies.
// Values that can't be parsed are kept as NaN, and so are the values
// missing in a short line. It returns the records and the number of
// lines with problems.
func ReadRaw(r io.Reader) ([]Record, int, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	recs := make([]Record, 0, 1000)
	bad := 0
	first := true
	for s.Scan() {
		if first {
			first = false
			continue
		}
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		var v [3]float64
		ok := len(fields) >= 3
		for i := range v {
			v[i] = math.NaN()
			if i < len(fields) {
				v[i] = ParseCell(fields[i])
			}
			if math.IsNaN(v[i]) {
				ok = false
			}
		}
		if !ok {
			bad++
		}
		recs = append(recs, Record{Frame: v[0], Elec: v[1], VdW: v[2]})
	}
	if err := s.Err(); err != nil {
		return recs, bad, NewError(MalformedRecord, "", err.Error(), true, "ReadRaw")
	}
	return recs, bad, nil
}

// ReadRawFile reads the LIE file name, which can be compressed.
func ReadRawFile(name string) ([]Record, int, error) {
	f, err := Open(name)
	if err != nil {
		return nil, 0, errDecorate(err, MissingInput, "ReadRawFile")
	}
	defer f.Close()
	recs, bad, err := ReadRaw(f)
	if err != nil {
		e := err.(*Error)
		e.filename = name
		return nil, bad, errDecorate(e, MalformedRecord, "ReadRawFile")
	}
	if len(recs) == 0 {
		return nil, 0, NewError(MissingInput, name, "no frames found", true, "ReadRawFile")
	}
	return recs, bad, nil
}

// RecordsTable builds a converted table, with the total energy column,
// from the records.
func RecordsTable(recs []Record) *Table {
	T := &Table{
		Header:  []string{FrameCol, ElecCol, VdWCol, TotalCol},
		Records: make([][]string, 0, len(recs)),
	}
	for _, r := range recs {
		T.Records = append(T.Records, []string{FormatCell(r.Frame), FormatCell(r.Elec), FormatCell(r.VdW), FormatCell(r.Total())})
	}
	return T
}

// Pair is a residue pair for which cpptraj computed LIE terms.
// Inner is the residue given first to the lie command, Outer the second one.
type Pair struct {
	Inner int
	Outer int
}

// Name returns the file name cpptraj is asked to write the LIE terms of the
// pair to, for instance _FE_lie_I_104_O_1481_BP_HW.dat.
func (P Pair) Name(prefix, suffix string) string {
	return fmt.Sprintf("%slie_I_%d_O_%d%s.dat", prefix, P.Inner, P.Outer, suffix)
}

// ParsePair recovers the residue pair from a file name built by Pair.Name
// (or from the converted table named after it).
func ParsePair(name string) (Pair, error) {
	var P Pair
	i := strings.Index(name, "lie_I_")
	if i < 0 {
		return P, NewError(SchemaMismatch, name, "no residue pair in file name", false, "ParsePair")
	}
	_, err := fmt.Sscanf(strings.ReplaceAll(name[i+len("lie_I_"):], "_", " "), "%d O %d", &P.Inner, &P.Outer)
	if err != nil {
		return P, NewError(SchemaMismatch, name, "can't read residue pair: "+err.Error(), false, "ParsePair")
	}
	return P, nil
}
