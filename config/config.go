/*
 * config.go, part of golie.
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

// Package config holds the settings of a golie run: the ligand variants
// and metrics, the queries that define the groups, the plot bins and the
// chart style. Default returns the settings for the Fe/Ga study; a YAML
// file can replace any of them.
package config

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	lie "github.com/rmera/golie"
	"github.com/rmera/golie/cpptraj"
	"github.com/rmera/golie/lieplot"
	"github.com/rmera/golie/query"
	"gopkg.in/yaml.v3"
)

// Bin is a plot bin as written in the configuration file.
type Bin struct {
	Label  string   `yaml:"label"`
	Groups []string `yaml:"groups"`
}

// Pipeline is the whole configuration of a run.
type Pipeline struct {
	Variants []string  `yaml:"variants"`
	Metrics  []string  `yaml:"metrics"`
	YLimits  []float64 `yaml:"y_limits,omitempty"` //empty for automatic
	Title    string    `yaml:"title"`
	YLabel   string    `yaml:"y_label"`
	//Colours by bar key (variant and metric, as in Fe[EELEC]), as #rrggbb.
	Colors   map[string]string `yaml:"colors"`
	Fallback string            `yaml:"fallback_color"`
	Queries  []query.Config    `yaml:"queries"`
	Bins     []Bin             `yaml:"bins"`
	//If set, only converted tables matching this query get a statistics
	//header.
	Annotate *query.Config  `yaml:"annotate,omitempty"`
	Cpptraj  *cpptraj.Input `yaml:"cpptraj,omitempty"`
}

var pockets = []struct {
	tag, label string
	terms      []string
}{
	{"ARG", "Arg(104)", []string{"104", "844"}},
	{"TRP", "Trp(107)", []string{"107", "847"}},
	{"HIS-A", "Hisα(108)", []string{"108", "848"}},
	{"HIS-B", "Hisβ(270)", []string{"270", "1010"}},
}

var partners = []struct {
	tag, label string
	terms      []string
}{
	{"HEM", "HEM", []string{"1481", "1483"}},
	{"MET", "Fe/Ga", []string{"1482", "1484"}},
}

// Default returns the configuration for the Fe/Ga study: each of four
// residues of the two binding pockets against the heme and against the
// metal, for both variants.
func Default() *Pipeline {
	P := &Pipeline{
		Variants: []string{"Fe", "Ga"},
		Metrics:  []string{"[EELEC]", "[EVDW]"},
		Title:    "Electrostatic (EELEC) & Van der Waals (EVDW) Energy Analysis",
		YLabel:   "Energy (kcal/mol)",
		Colors: map[string]string{
			"Fe[EELEC]":  "#ff7f0e",
			"Fe[EVDW]":   "#ffbb78",
			"Ga[EELEC]":  "#1f77b4",
			"Ga[EVDW]":   "#aec7e8",
			"Fe[ETOTAL]": "#98df8a",
			"Ga[ETOTAL]": "#2ca02c",
		},
		Fallback: "#808080",
		Cpptraj:  cpptraj.DefaultInput(),
	}
	variants := []struct {
		name, pair string
		terms      []string
	}{
		{"Fe", "FeGa", []string{"_FE_", "_FEGA_"}},
		{"Ga", "GaFe", []string{"_GA_", "_GAFE_"}},
	}
	for _, r := range pockets {
		for _, p := range partners {
			b := Bin{Label: r.label + " -> " + p.label}
			for _, v := range variants {
				name := fmt.Sprintf("%s-%s_%s_%s", v.name, v.pair, r.tag, p.tag)
				P.Queries = append(P.Queries, query.Config{
					Name:         name,
					Required:     []string{"HW"},
					Alternatives: [][]string{v.terms, r.terms, p.terms},
				})
				b.Groups = append(b.Groups, name)
			}
			P.Bins = append(P.Bins, b)
		}
	}
	return P
}

// Read overlays the YAML configuration in r on P. Keys absent from the
// document keep their values; lists given in the document replace the
// current ones entirely, while colours are added to the current table.
func (P *Pipeline) Read(r io.Reader) error {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(P); err != nil && err != io.EOF {
		return lie.NewError(lie.InvalidConfiguration, "", "can't parse configuration: "+err.Error(), true, "Pipeline.Read")
	}
	return nil
}

// Load returns the default configuration overlaid with the YAML file
// name, validated. If name is empty, the defaults are returned.
func Load(name string) (*Pipeline, error) {
	P := Default()
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, lie.NewError(lie.MissingInput, name, err.Error(), true, "Load")
		}
		defer f.Close()
		if err := P.Read(f); err != nil {
			e := err.(*lie.Error)
			e.Decorate("Load")
			return nil, e
		}
	}
	if err := P.Validate(); err != nil {
		return nil, err
	}
	return P, nil
}

// Write writes P as YAML to w.
func (P *Pipeline) Write(w io.Writer) error {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(P); err != nil {
		return err
	}
	return e.Close()
}

// knownMetric returns true if m is the label of one of the statistics
// columns.
func knownMetric(m string) bool {
	for _, c := range lie.EnergyColumns {
		if c.Label == m {
			return true
		}
	}
	return false
}

// Validate checks that the configuration can be used: variants and metrics
// are given and known, every query has a name, every plot bin names exactly
// two groups, colours can be parsed and Y limits are ordered.
func (P *Pipeline) Validate() error {
	errs := make([]string, 0)
	add := func(format string, v ...interface{}) { errs = append(errs, fmt.Sprintf(format, v...)) }
	if len(P.Variants) == 0 {
		add("no variants given")
	}
	for _, v := range P.Variants {
		if v == "" || strings.Contains(v, "-") {
			add("variant '%s' is empty or contains '-'", v)
		}
	}
	if len(P.Metrics) == 0 {
		add("no metrics given")
	}
	for _, m := range P.Metrics {
		if !knownMetric(m) {
			add("unknown metric '%s'", m)
		}
	}
	names := make(map[string]bool)
	for i, q := range P.Queries {
		if q.Name == "" {
			add("query %d has no name", i+1)
		}
		if names[q.Name] {
			add("query name '%s' repeated", q.Name)
		}
		names[q.Name] = true
	}
	for i, b := range P.Bins {
		if len(b.Groups) != 2 {
			add("plot bin %d (%s) must name exactly 2 groups, not %d", i+1, b.Label, len(b.Groups))
		}
	}
	if len(P.YLimits) != 0 && (len(P.YLimits) != 2 || P.YLimits[0] >= P.YLimits[1]) {
		add("y_limits must be empty or a minimum and a maximum, in order")
	}
	for k, v := range P.Colors {
		if _, err := ParseColor(v); err != nil {
			add("color for %s: %v", k, err)
		}
	}
	if P.Fallback != "" {
		if _, err := ParseColor(P.Fallback); err != nil {
			add("fallback color: %v", err)
		}
	}
	if len(errs) > 0 {
		return lie.NewError(lie.InvalidConfiguration, "", "invalid configuration: "+strings.Join(errs, "; "), true, "Validate")
	}
	return nil
}

// ParseColor reads a colour written as #rrggbb.
func ParseColor(s string) (color.Color, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return nil, fmt.Errorf("colour %q not in #rrggbb form", s)
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, fmt.Errorf("colour %q not in #rrggbb form: %v", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Style returns the chart style for P. Colours that can't be parsed are
// left out, so they get the fallback.
func (P *Pipeline) Style() *lieplot.Style {
	S := lieplot.DefaultStyle()
	S.Title = P.Title
	S.YLabel = P.YLabel
	if len(P.YLimits) == 2 {
		S.YLimits = []float64{P.YLimits[0], P.YLimits[1]}
	}
	for k, v := range P.Colors {
		if c, err := ParseColor(v); err == nil {
			S.Colors[k] = c
		}
	}
	if c, err := ParseColor(P.Fallback); err == nil {
		S.Fallback = c
	}
	return S
}

// PlotBins returns the plot bins of P. Bins that don't name exactly two
// groups are left out (Validate reports them).
func (P *Pipeline) PlotBins() []lieplot.Bin {
	ret := make([]lieplot.Bin, 0, len(P.Bins))
	for _, b := range P.Bins {
		if len(b.Groups) != 2 {
			continue
		}
		ret = append(ret, lieplot.Bin{Label: b.Label, Groups: [2]string{b.Groups[0], b.Groups[1]}})
	}
	return ret
}

// PlotOptions returns the options to assemble charts with the variants
// and metrics of P.
func (P *Pipeline) PlotOptions() *lieplot.Options {
	o := &lieplot.Options{Metrics: P.Metrics}
	for _, v := range P.Variants {
		o.Variants = append(o.Variants, lieplot.Variant(v))
	}
	return o
}

// Annotator returns the file name predicate for lie.ConvertOptions.Annotate,
// nil if every table is to be annotated.
func (P *Pipeline) Annotator() func(string) bool {
	if P.Annotate == nil {
		return nil
	}
	return P.Annotate.Matches
}
