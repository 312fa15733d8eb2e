/*
 * summary.go, part of golie.
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

// Package pdbmap puts per-residue LIE energies on a PDB structure, as
// B-factors, so they can be shown as a heat map in PyMOL.
//
// The energies come from a residue summary, a table with one row per
// residue pair (see Summarize) with the columns
// FILE,R1,R2,EELEC_AV,EVDW_AV,TOTAL_AV. R2 is the residue given first to
// cpptraj, which is the protein residue, and R1 is its partner.
package pdbmap

import (
	"log"
	"path/filepath"
	"strconv"

	lie "github.com/rmera/golie"
	"github.com/rmera/golie/group"
)

// Columns of a residue summary.
const (
	FileCol    = "FILE"
	PartnerCol = "R1"
	ResidueCol = "R2"
	ElecAvCol  = "EELEC_AV"
	VdWAvCol   = "EVDW_AV"
	TotalAvCol = "TOTAL_AV"
)

var summaryLabels = []string{"[EELEC]", "[EVDW]", "[ETOTAL]"}

// pairStats returns the mean energies of the converted table name, from its
// statistics header if it has one, or computed from its rows otherwise.
func pairStats(name string, l *log.Logger) (map[string]lie.Stat, error) {
	st, err := lie.ReadStatsFile(name, summaryLabels, l)
	if err == nil && len(st) > 0 {
		return st, nil
	}
	T, err := lie.ReadTableFile(name)
	if err != nil {
		return nil, err
	}
	ret := make(map[string]lie.Stat)
	for _, v := range lie.TableStats(T, lie.EnergyColumns, filepath.Base(name), l) {
		ret[v.Label] = v.Stat
	}
	return ret, nil
}

// Summarize writes, to the file out, the residue summary of the converted
// tables in dir whose base name makes filter return true (all of them if
// filter is nil). Aggregated tables are never included, and neither are
// tables whose names don't contain a residue pair. It returns the number
// of rows written.
func Summarize(dir, out string, filter func(string) bool, l *log.Logger) (int, error) {
	files, err := group.Candidates(dir)
	if err != nil {
		return 0, err
	}
	T := &lie.Table{Header: []string{FileCol, PartnerCol, ResidueCol, ElecAvCol, VdWAvCol, TotalAvCol}}
	for _, f := range files {
		base := filepath.Base(f)
		if filter != nil && !filter(base) {
			continue
		}
		P, err := lie.ParsePair(base)
		if err != nil {
			lie.Logf(l, "Warning: %v. Skipping.", err)
			continue
		}
		st, err := pairStats(f, l)
		if err != nil {
			lie.Logf(l, "Error reading %s: %v", base, err)
			continue
		}
		row := []string{base, strconv.Itoa(P.Outer), strconv.Itoa(P.Inner)}
		for _, lab := range summaryLabels {
			s, ok := st[lab]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, lie.FormatStat(s.Mean))
		}
		T.Records = append(T.Records, row)
	}
	if T.Len() == 0 {
		return 0, lie.NewError(lie.MissingInput, dir, "no tables with residue pairs found", false, "Summarize")
	}
	if err := lie.WriteTableFile(out, T); err != nil {
		return 0, err
	}
	return T.Len(), nil
}
