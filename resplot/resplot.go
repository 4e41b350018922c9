/*
 * resplot.go, part of frdvis.
 *
 * Copyright 2026 The frdvis developers
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

//Package resplot draws quick-look plots of result fields over the analysis
//steps, for the cases where firing up a full 3D viewer is overkill.
package resplot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gofea/frdvis"
)

//Error is the error type for plots. It fullfills frdvis.Error.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return "resplot: " + err.message }

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//TimeHistory plots the minimum, maximum and mean of one component of the named
//field against step time, over every step that carries the field, and saves
//the plot as a PNG file. comp is the 0-based component index (for an augmented
//tensor field, 6 is the von Mises slot).
func TimeHistory(m *frdvis.Model, field string, comp int, pngname string) error {
	var mins, maxs, means plotter.XYs
	for _, step := range m.Steps {
		f := step.Field(field)
		if f == nil || comp >= f.Arity() || len(f.Values) == 0 {
			continue
		}
		lo, hi, sum, n := math.Inf(1), math.Inf(-1), 0.0, 0
		for _, v := range f.Values {
			if comp >= len(v) {
				continue
			}
			x := v[comp]
			if x < lo {
				lo = x
			}
			if x > hi {
				hi = x
			}
			sum += x
			n++
		}
		if n == 0 {
			continue
		}
		mins = append(mins, plotter.XY{X: step.Time, Y: lo})
		maxs = append(maxs, plotter.XY{X: step.Time, Y: hi})
		means = append(means, plotter.XY{X: step.Time, Y: sum / float64(n)})
	}
	if len(mins) == 0 {
		return Error{message: fmt.Sprintf("no step carries field %s with component %d", field, comp)}
	}
	p := plot.New()
	p.Title.Text = field
	p.X.Label.Text = "time"
	p.Y.Label.Text = fmt.Sprintf("%s[%d]", field, comp)
	for _, set := range []struct {
		name string
		xys  plotter.XYs
	}{{"min", mins}, {"max", maxs}, {"mean", means}} {
		l, err := plotter.NewLine(set.xys)
		if err != nil {
			return Error{message: err.Error()}
		}
		p.Add(l)
		p.Legend.Add(set.name, l)
	}
	if err := p.Save(15*vg.Centimeter, 10*vg.Centimeter, pngname); err != nil {
		return Error{message: err.Error()}
	}
	return nil
}
