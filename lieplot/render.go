/*
 * render.go, part of golie.
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

package lieplot

import (
	"image/color"
	"io"
	"math"
	"path/filepath"

	lie "github.com/rmera/golie"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PlotName is the name of the chart image.
const PlotName = "Combined_Energy_Analysis_Plot.png"

// Style holds the presentation settings of a chart.
type Style struct {
	Title   string
	YLabel  string
	YLimits []float64 //nil, or the minimum and maximum of the Y axis
	//Colours for each bar key, by BarKey.String(). Keys not in the
	//map get Fallback.
	Colors   map[string]color.Color
	Fallback color.Color
	Width    vg.Length
	Height   vg.Length
}

// DefaultStyle returns a style with the labels used for LIE energies.
func DefaultStyle() *Style {
	return &Style{
		Title:    "Electrostatic (EELEC) & Van der Waals (EVDW) Energy Analysis",
		YLabel:   "Energy (kcal/mol)",
		Colors:   map[string]color.Color{},
		Fallback: color.Gray{Y: 128},
		Width:    16 * vg.Inch,
		Height:   8 * vg.Inch,
	}
}

// Color returns the colour for the bars of key K.
func (S *Style) Color(K BarKey) color.Color {
	if c, ok := S.Colors[K.String()]; ok && c != nil {
		return c
	}
	if S.Fallback == nil {
		return color.Gray{Y: 128}
	}
	return S.Fallback
}

// bars draws rectangles from 0 to each Y value, centered at each X
// value. Unlike plotter.BarChart, the width is in data units, so
// several series can share one bin.
type bars struct {
	X, Y      []float64
	Width     float64
	Color     color.Color
	LineStyle draw.LineStyle
}

func rect(x0, x1, y0, y1 vg.Length) []vg.Point {
	return []vg.Point{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
}

// Plot implements the plot.Plotter interface.
func (b *bars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for i, x := range b.X {
		pts := rect(trX(x-b.Width/2), trX(x+b.Width/2), trY(0), trY(b.Y[i]))
		c.FillPolygon(b.Color, c.ClipPolygonXY(pts))
		outline := c.ClipLinesXY(append(pts, pts[0]))
		c.StrokeLines(b.LineStyle, outline...)
	}
}

// DataRange implements the plot.DataRanger interface. The Y range
// always includes 0, where bars start.
func (b *bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(b.X) == 0 {
		return
	}
	xmin = floats.Min(b.X) - b.Width/2
	xmax = floats.Max(b.X) + b.Width/2
	ymin = math.Min(0, floats.Min(b.Y))
	ymax = math.Max(0, floats.Max(b.Y))
	return
}

// Thumbnail implements the plot.Thumbnailer interface.
func (b *bars) Thumbnail(c *draw.Canvas) {
	pts := rect(c.Min.X, c.Max.X, c.Min.Y, c.Max.Y)
	c.FillPolygon(b.Color, c.ClipPolygonY(pts))
	c.StrokeLines(b.LineStyle, c.ClipLinesY(append(pts, pts[0]))...)
}

// errs gives the points and symmetric errors of a series to
// plotter.NewYErrorBars.
type errs struct {
	*Series
}

func (e errs) Len() int                        { return len(e.X) }
func (e errs) XY(i int) (float64, float64)     { return e.X[i], e.Means[i] }
func (e errs) YError(i int) (float64, float64) { return e.Stds[i], e.Stds[i] }

// Plot builds the gonum plot for chart C.
func (C *Chart) Plot(S *Style) (*plot.Plot, error) {
	if len(C.Labels) == 0 {
		return nil, lie.NewError(lie.ResolutionFailure, "", "nothing to plot", true, "Chart.Plot")
	}
	p := plot.New()
	p.Title.Text = S.Title
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = S.YLabel
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	grid.Horizontal.Color = color.Gray{Y: 160}
	p.Add(grid)
	legend := make(map[string]bool)
	for i := range C.Series {
		s := &C.Series[i]
		if len(s.X) == 0 {
			continue
		}
		b := &bars{X: s.X, Y: s.Means, Width: C.Width, Color: S.Color(s.Key), LineStyle: plotter.DefaultLineStyle}
		b.LineStyle.Width = vg.Points(0.5)
		eb, err := plotter.NewYErrorBars(errs{s})
		if err != nil {
			return nil, lie.NewError(lie.Unknown, "", "can't build error bars: "+err.Error(), true, "Chart.Plot")
		}
		eb.CapWidth = vg.Points(10)
		eb.LineStyle.Width = vg.Points(1.5)
		p.Add(b, eb)
		if !legend[s.Key.Label()] {
			p.Legend.Add(s.Key.Label(), b)
			legend[s.Key.Label()] = true
		}
	}
	p.Legend.Top = true
	p.NominalX(C.Labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Min = -0.5
	p.X.Max = float64(len(C.Labels)) - 0.5
	if len(S.YLimits) == 2 {
		p.Y.Min = S.YLimits[0]
		p.Y.Max = S.YLimits[1]
	}
	return p, nil
}

// Render draws chart C as a PNG image in the file name, replacing any
// previous one.
func Render(C *Chart, S *Style, name string) error {
	p, err := C.Plot(S)
	if err != nil {
		return err
	}
	w, h := S.Width, S.Height
	if w == 0 || h == 0 {
		w, h = 16*vg.Inch, 8*vg.Inch
	}
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return lie.NewError(lie.Unknown, name, err.Error(), true, "Render")
	}
	return lie.WriteAtomic(name, func(w io.Writer) error {
		_, err := wt.WriteTo(w)
		return err
	})
}

// Draw assembles the chart for bins and renders it into the file
// PlotName in dir. It returns the name of the image.
func Draw(bins []Bin, files map[string]string, o *Options, S *Style, dir string) (string, error) {
	C, err := Assemble(bins, files, o)
	if err != nil {
		return "", err
	}
	name := filepath.Join(dir, PlotName)
	if err := Render(C, S, name); err != nil {
		return "", err
	}
	lie.Logf(o.Logger, "Plotting successful. Image saved as: %s", name)
	return name, nil
}
