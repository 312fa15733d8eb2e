/*
 * chart.go, part of golie.
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

// Package lieplot draws grouped bar charts with the statistics of the
// aggregated LIE tables. Each X-axis bin compares two groups, one per
// ligand variant, and shows one bar (with its standard deviation as an
// error bar) per variant and metric.
package lieplot

import (
	"fmt"
	"log"
	"math"
	"strings"

	lie "github.com/rmera/golie"
)

// BinWidth is the fraction of the distance between bins covered by the
// bars of a bin.
const BinWidth = 0.8

// Variant is a ligand variant, such as "Fe" or "Ga".
type Variant string

// VariantSet is the ordered list of the variants compared in a chart.
type VariantSet []Variant

// Parse returns the variant of the group name, that is, the part of name
// before the first '-' compared case-insensitively with the variants in V.
// If there is no such variant, a ResolutionFailure error is returned.
func (V VariantSet) Parse(name string) (Variant, error) {
	prefix := strings.SplitN(name, "-", 2)[0]
	for _, v := range V {
		if strings.EqualFold(string(v), prefix) {
			return v, nil
		}
	}
	return "", lie.NewError(lie.ResolutionFailure, "", fmt.Sprintf("can't determine the variant of group '%s'", name), false, "VariantSet.Parse")
}

// BarKey identifies one kind of bar: a variant and a metric.
type BarKey struct {
	Variant Variant
	Metric  string
}

// String returns the key as variant and metric together, for instance
// Fe[EELEC]. This is the form used in the colour table.
func (K BarKey) String() string {
	return string(K.Variant) + K.Metric
}

// Label returns the legend label for the key, for instance "Fe [EELEC]".
func (K BarKey) Label() string {
	return string(K.Variant) + " " + K.Metric
}

// Bin is one X-axis category: two groups, one per variant, and the label
// shown under them.
type Bin struct {
	Label  string
	Groups [2]string
}

// Series holds the bars of one key, one per bin kept in the chart.
type Series struct {
	Key   BarKey
	X     []float64
	Means []float64
	Stds  []float64
}

// Chart is the data of a grouped bar chart, ready to be drawn.
type Chart struct {
	Labels []string //one per bin, bins are at X = 0, 1, 2...
	Series []Series //variant-major, metric-minor
	Width  float64  //of each bar, in X-axis units
}

// Options for Assemble.
type Options struct {
	Variants VariantSet
	Metrics  []string
	Logger   *log.Logger
}

// Keys returns all the bar keys, variant-major and metric-minor.
func (o *Options) Keys() []BarKey {
	ret := make([]BarKey, 0, len(o.Variants)*len(o.Metrics))
	for _, v := range o.Variants {
		for _, m := range o.Metrics {
			ret = append(ret, BarKey{v, m})
		}
	}
	return ret
}

// binStats collects the statistics for all the keys of bin b. It returns
// an error if a group can't be found, its variant can't be determined,
// or no statistics at all are found.
func binStats(b Bin, files map[string]string, o *Options) (map[BarKey]lie.Stat, error) {
	ret := make(map[BarKey]lie.Stat)
	for _, g := range b.Groups {
		path, ok := files[g]
		if !ok {
			return nil, lie.NewError(lie.ResolutionFailure, "", fmt.Sprintf("file for group '%s' not found", g), false, "binStats")
		}
		v, err := o.Variants.Parse(g)
		if err != nil {
			return nil, err
		}
		st, err := lie.ReadStatsFile(path, o.Metrics, o.Logger)
		if err != nil {
			lie.Logf(o.Logger, "Warning: can't read statistics for group '%s': %v", g, err)
			continue
		}
		for m, s := range st {
			ret[BarKey{v, m}] = s
		}
	}
	if len(ret) == 0 {
		return nil, lie.NewError(lie.ResolutionFailure, "", "no statistics found for the bin", false, "binStats")
	}
	return ret, nil
}

// finite returns v, or 0 if v is NaN or infinite.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Assemble collects, for each bin, the statistics of its two groups, whose
// aggregated tables are given in files (group name to path, as returned by
// group.Aggregate). A bin with a group missing from files, a group whose
// variant can't be determined, or no statistics at all is dropped, with a
// warning. If every bin is dropped, a ResolutionFailure error is returned.
// Missing or undefined means and standard deviations are taken as 0.
func Assemble(bins []Bin, files map[string]string, o *Options) (*Chart, error) {
	if len(o.Variants) == 0 || len(o.Metrics) == 0 {
		return nil, lie.NewError(lie.ResolutionFailure, "", "no variants or no metrics to plot", true, "Assemble")
	}
	keys := o.Keys()
	width := BinWidth / float64(len(keys))
	C := &Chart{Width: width, Series: make([]Series, len(keys))}
	for i, k := range keys {
		C.Series[i].Key = k
	}
	for _, b := range bins {
		st, err := binStats(b, files, o)
		if err != nil {
			lie.Logf(o.Logger, "Warning: %v. Skipping plot group: %s", err, b.Label)
			continue
		}
		p := float64(len(C.Labels))
		C.Labels = append(C.Labels, b.Label)
		for i, k := range keys {
			s, ok := st[k]
			if !ok {
				s = lie.Stat{}
			}
			S := &C.Series[i]
			S.X = append(S.X, p+float64(i)*width-float64(len(keys)-1)*width/2)
			S.Means = append(S.Means, finite(s.Mean))
			S.Stds = append(S.Stds, finite(s.Std))
		}
	}
	if len(C.Labels) == 0 {
		return nil, lie.NewError(lie.ResolutionFailure, "", "all plot groups were empty or had missing files", true, "Assemble")
	}
	return C, nil
}
