/*
 * stats.go, part of golie.
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
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// StatDigits is the number of decimals statistics are written with.
const StatDigits = 4

// StatColumn pairs a data column with the short label used for it in
// the statistics header.
type StatColumn struct {
	Data  string
	Label string
}

// EnergyColumns are the columns statistics are computed for.
var EnergyColumns = []StatColumn{
	{ElecCol, "[EELEC]"},
	{VdWCol, "[EVDW]"},
	{TotalCol, "[ETOTAL]"},
}

// Stat is the mean and sample standard deviation of a column.
type Stat struct {
	Mean float64
	Std  float64
	N    int //number of non-missing values used, -1 if unknown
}

// LabeledStat is a Stat with the label of its column.
type LabeledStat struct {
	Label string
	Stat
}

// Describe returns the mean and the sample standard deviation (n-1
// divisor) of data, ignoring NaNs. The mean is NaN if there are no values,
// and the standard deviation is NaN if there are less than 2.
func Describe(data []float64) Stat {
	clean := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	s := Stat{Mean: math.NaN(), Std: math.NaN(), N: len(clean)}
	switch {
	case len(clean) == 0:
	case len(clean) == 1:
		s.Mean = clean[0]
	default:
		s.Mean, s.Std = stat.MeanStdDev(clean, nil)
	}
	return s
}

// column returns the data for c in T, looking for the full column name
// first and for the short label if that fails.
func column(T *Table, c StatColumn) ([]float64, bool) {
	if d, ok := T.Floats(c.Data); ok {
		return d, true
	}
	return T.Floats(c.Label)
}

// HasAny returns true if T has at least one of the columns in cols.
func HasAny(T *Table, cols []StatColumn) bool {
	for _, c := range cols {
		if T.Index(c.Data) >= 0 || T.Index(c.Label) >= 0 {
			return true
		}
	}
	return false
}

// TableStats computes Describe for each column in cols present in T, in
// the order of cols. Absent columns are skipped with a warning to l (the
// standard logger if l is nil). name is only used in the warning.
func TableStats(T *Table, cols []StatColumn, name string, l *log.Logger) []LabeledStat {
	ret := make([]LabeledStat, 0, len(cols))
	for _, c := range cols {
		d, ok := column(T, c)
		if !ok {
			Logf(l, "Warning: column '%s' or '%s' not found in %s. Skipping its statistics.", c.Data, c.Label, name)
			continue
		}
		ret = append(ret, LabeledStat{Label: c.Label, Stat: Describe(d)})
	}
	return ret
}

// FormatStat writes v with StatDigits decimals, rounding the exact binary
// value (so 2.00005, stored as 2.0000499..., gives 2.0000). NaN is written
// as "nan" and infinities as "inf" and "-inf".
func FormatStat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', StatDigits, 64)
}

// ParseStat reads a value written by FormatStat.
func ParseStat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		switch strings.ToLower(s) {
		case "inf", "+inf":
			return math.Inf(1), nil
		case "-inf":
			return math.Inf(-1), nil
		}
		return math.NaN(), err
	}
	f, _ := d.Float64()
	return f, nil
}
