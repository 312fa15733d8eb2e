/*
 * header.go, part of golie.
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
	"log"
	"path/filepath"
	"strings"
)

// The statistics header of a table file is a block of lines starting
// with '#' placed before the column header:
//
//	# GROUP: Fe-FeGa_ARG_HEM
//	# Applied Criteria: AND: (HW) | OR GROUPS: (_FE_ OR _FEGA_) AND (104 OR 844) | NOT: ()
//	#--------------------------------------
//	# STATS: [EELEC] Mean = -11.0000 | [EELEC] Std = 1.0000 | ...
//	#--------------------------------------
//
// Per-file tables carry the same block with a "LIE STATISTICS" line as
// identifier and METADATA instead of STATS. All the statistics are in one
// line, as label = value pairs separated by StatSep. Commas can't be used
// there, as they separate the columns of the table.
const (
	Divider     = "#--------------------------------------"
	StatSep     = " | "
	GroupKey    = "STATS"
	MetadataKey = "METADATA"
)

// Header is the statistics block of a table file.
type Header struct {
	Lines []string //identification lines, without the leading "# "
	Key   string   //GroupKey or MetadataKey
	Stats []LabeledStat
}

// GroupHeader returns the header for the aggregated table of a group.
func GroupHeader(name, criteria string, stats []LabeledStat) Header {
	return Header{
		Lines: []string{"GROUP: " + name, "Applied Criteria: " + criteria},
		Key:   GroupKey,
		Stats: stats,
	}
}

// FileHeader returns the header for the converted table in the file name.
func FileHeader(name string, stats []LabeledStat) Header {
	return Header{
		Lines: []string{"LIE STATISTICS - " + filepath.Base(name)},
		Key:   MetadataKey,
		Stats: stats,
	}
}

// MeanLabel and StdLabel return the keys used for the statistics of the
// column with the given label.
func MeanLabel(label string) string { return label + " Mean" }
func StdLabel(label string) string  { return label + " Std" }

// StatsLine returns the metadata line for the statistics, including the
// leading "# KEY:".
func (H Header) StatsLine() string {
	parts := make([]string, 0, 2*len(H.Stats))
	for _, v := range H.Stats {
		parts = append(parts, fmt.Sprintf("%s = %s", MeanLabel(v.Label), FormatStat(v.Mean)))
		parts = append(parts, fmt.Sprintf("%s = %s", StdLabel(v.Label), FormatStat(v.Std)))
	}
	return fmt.Sprintf("%s %s: %s", CommentPrefix, H.Key, strings.Join(parts, StatSep))
}

// String returns the whole block, one line per element, each ending in a
// newline.
func (H Header) String() string {
	var b strings.Builder
	for _, v := range H.Lines {
		b.WriteString(CommentPrefix + " " + v + "\n")
	}
	b.WriteString(Divider + "\n")
	b.WriteString(H.StatsLine() + "\n")
	b.WriteString(Divider + "\n")
	return b.String()
}

// Attach puts the header at the top of the existing file name. The file is
// rewritten atomically, so an interruption leaves it as it was.
func (H Header) Attach(name string) error {
	if err := Prepend(name, H.String()); err != nil {
		return errDecorate(err, Unknown, "Attach")
	}
	return nil
}

// WriteWithHeader writes the header followed by the table to a new file
// name (replacing any previous one), atomically.
func WriteWithHeader(name string, H Header, T *Table) error {
	err := WriteAtomic(name, func(w io.Writer) error {
		if _, err := io.WriteString(w, H.String()); err != nil {
			return err
		}
		return T.Write(w)
	})
	if err != nil {
		return errDecorate(err, Unknown, "WriteWithHeader")
	}
	return nil
}

// parseStatsLine reads the label = value pairs of a metadata line, without
// its prefix. Pairs with values that can't be read are reported to l and
// ignored.
func parseStatsLine(s, name string, l *log.Logger) map[string]float64 {
	ret := make(map[string]float64)
	for _, part := range strings.Split(s, strings.TrimSpace(StatSep)) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		v, err := ParseStat(kv[1])
		if err != nil {
			Logf(l, "Error converting value to float for %s in %s: %s", key, name, strings.TrimSpace(kv[1]))
			continue
		}
		ret[key] = v
	}
	return ret
}

// ReadStats scans the comment lines at the top of r for a statistics line
// (either "# STATS:" or "# METADATA:") and returns the mean and standard
// deviation for each of the requested labels (for instance "[EELEC]").
// Scanning stops at the first line not starting with '#', so the table rows
// are never read. A label without both a mean and a std is left out of the
// map with a warning. If no statistics line is found, a SchemaMismatch
// error is returned. name is only used for messages.
func ReadStats(r io.Reader, labels []string, name string, l *log.Logger) (map[string]Stat, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(line, CommentPrefix) {
			break
		}
		body := strings.TrimSpace(strings.TrimPrefix(line, CommentPrefix))
		var values string
		found := false
		for _, key := range []string{GroupKey, MetadataKey} {
			if strings.HasPrefix(body, key+":") {
				values = strings.TrimPrefix(body, key+":")
				found = true
				break
			}
		}
		if !found {
			continue
		}
		m := parseStatsLine(values, name, l)
		ret := make(map[string]Stat, len(labels))
		for _, lab := range labels {
			mean, ok1 := m[MeanLabel(lab)]
			std, ok2 := m[StdLabel(lab)]
			if !ok1 || !ok2 {
				Logf(l, "Warning: Missing data for %s in %s", lab, filepath.Base(name))
				continue
			}
			ret[lab] = Stat{Mean: mean, Std: std, N: -1}
		}
		return ret, nil
	}
	if err := s.Err(); err != nil {
		return nil, NewError(MalformedRecord, name, err.Error(), false, "ReadStats")
	}
	return nil, NewError(SchemaMismatch, name, "no statistics line found", false, "ReadStats")
}

// ReadStatsFile is ReadStats on the file name.
func ReadStatsFile(name string, labels []string, l *log.Logger) (map[string]Stat, error) {
	f, err := Open(name)
	if err != nil {
		return nil, errDecorate(err, MissingInput, "ReadStatsFile")
	}
	defer f.Close()
	ret, err := ReadStats(f, labels, name, l)
	if err != nil {
		return ret, errDecorate(err, SchemaMismatch, "ReadStatsFile")
	}
	return ret, nil
}
