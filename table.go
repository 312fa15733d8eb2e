/*
 * table.go, part of golie.
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
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// CommentPrefix starts every metadata line in a table file.
const CommentPrefix = "#"

// Table is a comma-separated table as stored on disk. Cells are kept as
// text, so concatenating tables never loses anything; numbers are parsed
// only when a column is requested with Floats.
type Table struct {
	Header  []string
	Records [][]string
}

// Len returns the number of data rows in the table.
func (T *Table) Len() int {
	if T == nil {
		return 0
	}
	return len(T.Records)
}

// Index returns the position of the column name in the table, or -1.
func (T *Table) Index(name string) int {
	for i, v := range T.Header {
		if v == name {
			return i
		}
	}
	return -1
}

// Floats returns the values of the column name. Empty or non-numeric cells
// become NaN. The second return value is false if the table has no such
// column.
func (T *Table) Floats(name string) ([]float64, bool) {
	idx := T.Index(name)
	if idx < 0 {
		return nil, false
	}
	ret := make([]float64, len(T.Records))
	for i, r := range T.Records {
		ret[i] = math.NaN()
		if idx >= len(r) {
			continue
		}
		ret[i] = ParseCell(r[idx])
	}
	return ret, true
}

// ParseCell parses a table cell, returning NaN for anything that is not
// a number.
func ParseCell(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// FormatCell writes v in its shortest form. NaN is written as an empty
// cell, which is how missing values are stored.
func FormatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ReadTable reads a table from r. Leading lines starting with '#' are
// metadata and are skipped, the first remaining line is the column header.
func ReadTable(r io.Reader) (*Table, error) {
	c := csv.NewReader(r)
	c.Comment = '#'
	c.FieldsPerRecord = -1
	c.TrimLeadingSpace = true
	records, err := c.ReadAll()
	if err != nil {
		return nil, NewError(MalformedRecord, "", err.Error(), true, "ReadTable")
	}
	T := new(Table)
	if len(records) == 0 {
		return T, nil
	}
	T.Header = records[0]
	for i, v := range T.Header {
		T.Header[i] = strings.TrimSpace(v)
	}
	T.Records = records[1:]
	return T, nil
}

// ReadTableFile reads the table in the file name, which can be compressed.
func ReadTableFile(name string) (*Table, error) {
	f, err := Open(name)
	if err != nil {
		return nil, errDecorate(err, MissingInput, "ReadTableFile")
	}
	defer f.Close()
	T, err := ReadTable(f)
	if err != nil {
		e := err.(*Error)
		e.filename = name
		return nil, errDecorate(e, MalformedRecord, "ReadTableFile")
	}
	return T, nil
}

// Write writes the column header and the rows of the table to w.
func (T *Table) Write(w io.Writer) error {
	c := csv.NewWriter(w)
	if err := c.Write(T.Header); err != nil {
		return err
	}
	if err := c.WriteAll(T.Records); err != nil {
		return err
	}
	return c.Error()
}

// WriteTableFile writes T to a new file name, replacing any previous one.
func WriteTableFile(name string, T *Table) error {
	return WriteAtomic(name, func(w io.Writer) error {
		return T.Write(w)
	})
}

// Concat returns a new table with the rows of all the given tables, in
// order, without removing duplicates. The columns of the result are the
// union of the columns of the tables, in order of first appearance. Cells
// for a column a table doesn't have are left empty.
func Concat(tables ...*Table) *Table {
	ret := new(Table)
	pos := make(map[string]int)
	total := 0
	for _, t := range tables {
		for _, h := range t.Header {
			if _, ok := pos[h]; !ok {
				pos[h] = len(ret.Header)
				ret.Header = append(ret.Header, h)
			}
		}
		total += t.Len()
	}
	ret.Records = make([][]string, 0, total)
	for _, t := range tables {
		for _, r := range t.Records {
			row := make([]string, len(ret.Header))
			for i, cell := range r {
				if i >= len(t.Header) {
					break
				}
				row[pos[t.Header[i]]] = cell
			}
			ret.Records = append(ret.Records, row)
		}
	}
	return ret
}

// fileMode returns the permissions of name, or def if it can't be read.
func fileMode(name string, def os.FileMode) os.FileMode {
	info, err := os.Stat(name)
	if err != nil {
		return def
	}
	return info.Mode().Perm()
}
