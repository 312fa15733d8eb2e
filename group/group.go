/*
 * group.go, part of golie.
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

// Package group puts converted LIE tables into groups with file-name
// queries, and writes one aggregated table, with the group statistics in
// its header, per group.
package group

import (
	"log"
	"path/filepath"
	"strings"

	lie "github.com/rmera/golie"
	"github.com/rmera/golie/query"
)

// Suffix is appended to the label of a query to name its aggregated table.
// Files with this suffix are never taken as input.
const Suffix = "_STATS.csv"

// Options for Aggregate.
type Options struct {
	OutDir  string           //where aggregated tables go. Defaults to the input directory.
	Columns []lie.StatColumn //defaults to lie.EnergyColumns
	Logger  *log.Logger
}

func (o *Options) columns() []lie.StatColumn {
	if o == nil || o.Columns == nil {
		return lie.EnergyColumns
	}
	return o.Columns
}

func (o *Options) logger() *log.Logger {
	if o == nil {
		return nil
	}
	return o.Logger
}

// Group is the result of applying a query to a set of tables.
type Group struct {
	Config query.Config
	Files  []string //tables actually concatenated, in order
	Table  *lie.Table
	Stats  []lie.LabeledStat
}

// Header returns the statistics header for the aggregated table of G.
func (G *Group) Header() lie.Header {
	return lie.GroupHeader(G.Config.Name, G.Config.Criteria(), G.Stats)
}

// FileName returns the name of the aggregated table of G in dir.
func (G *Group) FileName(dir string) string {
	return filepath.Join(dir, G.Config.Label()+Suffix)
}

// Write writes the aggregated table of G in dir, replacing any previous
// one, and returns its name.
func (G *Group) Write(dir string) (string, error) {
	name := G.FileName(dir)
	if err := lie.WriteWithHeader(name, G.Header(), G.Table); err != nil {
		return "", err
	}
	return name, nil
}

// Candidates returns the converted tables in dir that can be grouped,
// sorted by name. Aggregated tables from previous runs are left out.
func Candidates(dir string) ([]string, error) {
	files, err := lie.ListFiles(dir, lie.TableExt)
	if err != nil {
		return nil, err
	}
	ret := files[:0]
	for _, v := range files {
		if strings.HasSuffix(lie.TrimCompression(v), Suffix) {
			continue
		}
		ret = append(ret, v)
	}
	return ret, nil
}

// Build applies the query C to files (matching on their base names),
// loads the matching tables and concatenates them, in the order given.
// Tables that can't be read, are empty, or have none of the statistics
// columns are logged and skipped. The error is a ConfigurationMiss if no
// file matches, and a SchemaMismatch if none of the matching files could
// be used.
func Build(C query.Config, files []string, o *Options) (*Group, error) {
	l := o.logger()
	cols := o.columns()
	matched := make([]string, 0, len(files))
	for _, f := range files {
		if C.Matches(filepath.Base(f)) {
			matched = append(matched, f)
		}
	}
	lie.Logf(l, "Found %d files matching the condition.", len(matched))
	if len(matched) == 0 {
		return nil, lie.NewError(lie.ConfigurationMiss, "", "configuration "+C.Name+" found no files", false, "group.Build")
	}
	G := &Group{Config: C, Files: make([]string, 0, len(matched))}
	tables := make([]*lie.Table, 0, len(matched))
	for _, f := range matched {
		base := filepath.Base(f)
		T, err := lie.ReadTableFile(f)
		if err != nil {
			lie.Logf(l, "Error reading %s: %v", base, err)
			continue
		}
		if T.Len() == 0 {
			lie.Logf(l, "Info: Skipping empty file %s.", base)
			continue
		}
		if !lie.HasAny(T, cols) {
			lie.Logf(l, "Warning: File %s is missing required columns. Skipping.", base)
			continue
		}
		lie.Logf(l, "   - %s", base)
		tables = append(tables, T)
		G.Files = append(G.Files, f)
	}
	if len(tables) == 0 {
		return nil, lie.NewError(lie.SchemaMismatch, "", "no valid tables to combine for "+C.Name, false, "group.Build")
	}
	G.Table = lie.Concat(tables...)
	lie.Logf(l, "Tables from %d files combined. Total rows: %d.", len(tables), G.Table.Len())
	G.Stats = lie.TableStats(G.Table, cols, C.Name, l)
	return G, nil
}

// Aggregate processes the queries in configs, in order, over the converted
// tables in dir. For each query that matches at least one usable table, it
// writes an aggregated table and records its name. Queries with no usable
// tables are logged and skipped. It returns a map from query name to the
// aggregated table written for it.
func Aggregate(dir string, configs []query.Config, o *Options) (map[string]string, error) {
	l := o.logger()
	ret := make(map[string]string, len(configs))
	files, err := Candidates(dir)
	if err != nil {
		return ret, err
	}
	if len(files) == 0 {
		lie.Logf(l, "No CSV files found in the folder: %s", dir)
		return ret, nil
	}
	outdir := dir
	if o != nil && o.OutDir != "" {
		outdir = o.OutDir
	}
	lie.Logf(l, "Processing %d search configurations.", len(configs))
	for i, c := range configs {
		lie.Logf(l, "CONFIGURATION %d/%d: %s", i+1, len(configs), c.Name)
		G, err := Build(c, files, o)
		if err != nil {
			lie.Logf(l, "Skipping %s: %v", c.Name, err)
			continue
		}
		if len(G.Stats) == 0 {
			lie.Logf(l, "Could not calculate statistics for %s.", c.Name)
			continue
		}
		name, err := G.Write(outdir)
		if err != nil {
			lie.Logf(l, "Error writing the table for %s: %v", c.Name, err)
			continue
		}
		lie.Logf(l, "Final file generated: %s", filepath.Base(name))
		ret[c.Name] = name
	}
	return ret, nil
}
