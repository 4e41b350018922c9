/*
 * tensor.go, part of frdvis.
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

//tensor.go has the invariants of symmetric second-order tensors needed to
//post-process stress and strain fields. Components follow the FRD convention:
//xx, yy, zz, xy, yz, zx.

package frdvis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

//VonMises returns the von Mises equivalent of the tensor given by its six
//independent components. It is defined for any finite input.
func VonMises(xx, yy, zz, xy, yz, zx float64) float64 {
	d1 := xx - yy
	d2 := yy - zz
	d3 := zz - xx
	return math.Sqrt((d1*d1 + d2*d2 + d3*d3 + 6*(xy*xy+yz*yz+zx*zx)) / 2.0)
}

//Principal returns the three eigenvalues of the tensor given by its six
//independent components, sorted ascending. The 3x3 matrix form is symmetric so
//the eigenvalues are real; they are obtained with Gonum's symmetric
//eigensolver, which is stable also for the repeated-eigenvalue cases
//(isotropic and uniaxial tensors).
func Principal(xx, yy, zz, xy, yz, zx float64) (min, mid, max float64) {
	t := mat.NewSymDense(3, []float64{
		xx, xy, zx,
		xy, yy, yz,
		zx, yz, zz,
	})
	var eig mat.EigenSym
	if ok := eig.Factorize(t, false); !ok {
		//Factorization of a finite symmetric matrix does not fail. Still,
		//we have to return something deterministic and finite.
		d := []float64{xx, yy, zz}
		sort.Float64s(d)
		return d[0], d[1], d[2]
	}
	v := eig.Values(nil)
	sort.Float64s(v) //Gonum already returns them ascending, but that is not worth relying on.
	return v[0], v[1], v[2]
}
