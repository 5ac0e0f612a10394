/*
 * composition.go, part of goStoich
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

// Package stoichplot draws goStoich results. For now, a bar chart of the
// percent composition of a compound.
package stoichplot

import (
	"errors"
	"fmt"
	"io"
	"strings"

	stoich "github.com/rmera/gostoich"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Default size of a chart.
const (
	DefaultWidth  = 12 * vg.Centimeter
	DefaultHeight = 9 * vg.Centimeter
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("stoichplot: no composition data to plot")

func basicCompositionPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.Y.Label.Text = "Mass %"
	p.Y.Min = 0
	p.Y.Max = 105 //leave room for the labels on a 100% bar
	p.Add(plotter.NewGrid())
	return p
}

// CompositionPlot returns a bar chart with the percentage of each element, in
// the order given, and the percentage written over each bar.
func CompositionPlot(title string, percents []stoich.Percent) (*plot.Plot, error) {
	if len(percents) == 0 {
		return nil, ErrNoData
	}
	p := basicCompositionPlot(title)
	names := make([]string, len(percents))
	labels := plotter.XYLabels{XYs: make(plotter.XYs, len(percents)), Labels: make([]string, len(percents))}
	for key, val := range percents {
		bar, err := plotter.NewBarChart(plotter.Values{val.Percent}, vg.Points(30))
		if err != nil {
			return nil, err
		}
		bar.XMin = float64(key)
		bar.Color = barColor(key, len(percents))
		bar.LineStyle.Width = vg.Length(0)
		p.Add(bar)
		names[key] = val.Symbol
		labels.XYs[key].X = float64(key)
		labels.XYs[key].Y = val.Percent + 1
		labels.Labels[key] = fmt.Sprintf("%.2f%%", val.Percent)
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = -0.5 //centered over the bar
	}
	p.Add(l)
	p.NominalX(names...)
	return p, nil
}

// WriteComposition renders the chart for percents in the given format ("png",
// "svg", "pdf", "eps", "jpg", "tiff") and writes it to w. Zero sizes mean the defaults.
func WriteComposition(w io.Writer, title string, percents []stoich.Percent, format string, width, height vg.Length) error {
	p, err := CompositionPlot(title, percents)
	if err != nil {
		return err
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	wt, err := p.WriterTo(width, height, strings.ToLower(format))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// FormulaChart computes the percent composition of formula and writes its chart to w.
func FormulaChart(w io.Writer, formula, format string, width, height vg.Length) error {
	percents, err := stoich.PercentComposition(formula)
	if err != nil {
		return err
	}
	return WriteComposition(w, "Percent composition of "+formula, percents, format, width, height)
}

// SaveComposition saves the chart for percents to filename. The format is taken
// from the extension.
func SaveComposition(filename, title string, percents []stoich.Percent) error {
	p, err := CompositionPlot(title, percents)
	if err != nil {
		return err
	}
	//here I intentionally shadow err.
	if err := p.Save(DefaultWidth, DefaultHeight, filename); err != nil {
		return err
	}
	return nil
}
