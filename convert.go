/*
 * convert.go, part of golie.
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
	"log"
	"path/filepath"
	"strings"
)

// RawExt and TableExt are the extensions of LIE energy files and of
// converted tables.
const (
	RawExt   = ".dat"
	TableExt = ".csv"
)

// ConvertOptions controls the conversion of LIE files into tables.
type ConvertOptions struct {
	//Directory for the converted tables. If empty, each table is written
	//next to its LIE file.
	OutDir string
	//If not nil, only tables whose base name makes Annotate return true get
	//a statistics header.
	Annotate func(name string) bool
	Columns  []StatColumn //defaults to EnergyColumns
	Logger   *log.Logger
}

func (o *ConvertOptions) columns() []StatColumn {
	if o == nil || o.Columns == nil {
		return EnergyColumns
	}
	return o.Columns
}

func (o *ConvertOptions) logger() *log.Logger {
	if o == nil {
		return nil
	}
	return o.Logger
}

// TableName returns the name of the converted table for the LIE file name.
// outdir can be empty, in which case the table goes in the same directory
// as the LIE file.
func TableName(name, outdir string) string {
	base := TrimCompression(filepath.Base(name))
	base = strings.TrimSuffix(base, filepath.Ext(base)) + TableExt
	if outdir == "" {
		outdir = filepath.Dir(name)
	}
	return filepath.Join(outdir, base)
}

// ConvertFile reads the LIE file name, adds the total energy and writes the
// result as a table with the same base name. The table gets a statistics
// header unless o.Annotate rejects it. The LIE file is not modified. It
// returns the name of the table.
func ConvertFile(name string, o *ConvertOptions) (string, error) {
	l := o.logger()
	recs, bad, err := ReadRawFile(name)
	if err != nil {
		return "", errDecorate(err, MalformedRecord, "ConvertFile")
	}
	if bad > 0 {
		Logf(l, "Warning: %d lines in %s had missing or non-numeric values, kept as missing.", bad, filepath.Base(name))
	}
	outdir := ""
	if o != nil {
		outdir = o.OutDir
	}
	out := TableName(name, outdir)
	T := RecordsTable(recs)
	if err := WriteTableFile(out, T); err != nil {
		return "", errDecorate(err, Unknown, "ConvertFile")
	}
	if o != nil && o.Annotate != nil && !o.Annotate(filepath.Base(out)) {
		return out, nil
	}
	stats := TableStats(T, o.columns(), filepath.Base(out), l)
	if len(stats) == 0 {
		Logf(l, "Warning: no statistics could be computed for %s", filepath.Base(out))
		return out, nil
	}
	if err := FileHeader(out, stats).Attach(out); err != nil {
		return out, errDecorate(err, Unknown, "ConvertFile")
	}
	return out, nil
}

// ConvertDir converts every LIE file (.dat, possibly compressed) in dir, in
// name order. A file that can't be converted is logged and skipped. If there
// are no LIE files, that is logged and an empty list is returned. It returns
// the names of the tables written.
func ConvertDir(dir string, o *ConvertOptions) ([]string, error) {
	l := o.logger()
	files, err := ListFiles(dir, RawExt)
	if err != nil {
		return nil, errDecorate(err, MissingInput, "ConvertDir")
	}
	if len(files) == 0 {
		Logf(l, "No LIE files (%s) found in the folder: %s", RawExt, dir)
		return nil, nil
	}
	Logf(l, "Found %d LIE files to process.", len(files))
	ret := make([]string, 0, len(files))
	for _, f := range files {
		out, err := ConvertFile(f, o)
		if err != nil {
			Logf(l, "An error occurred while processing %s: %v", filepath.Base(f), err)
			continue
		}
		Logf(l, "File successfully saved as: %s", filepath.Base(out))
		ret = append(ret, out)
	}
	return ret, nil
}
