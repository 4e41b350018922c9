/*
 * tensor_test.go, part of frdvis.
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

package frdvis

import (
	"math"
	"testing"

	"github.com/skelterjohn/go.matrix"
)

const tol = 1e-9

func near(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= tol*math.Max(scale, 1)
}

//a small zoo of tensors: isotropic, uniaxial, shear-only, and a few
//full ones with no particular structure.
var tensors = [][6]float64{
	{5, 5, 5, 0, 0, 0},
	{10, 0, 0, 0, 0, 0},
	{0, 0, 0, 3, -4, 5},
	{1.47281e4, 1.39140e4, 2.80480e4, 5.35318e4, 6.36642e3, 1.82617e3},
	{-2, 7, 1, 0.5, -0.25, 3},
	{1e-8, -1e-8, 0, 1e-9, 0, 0},
}

func TestVonMisesScenarios(Te *testing.T) {
	if m := VonMises(5, 5, 5, 0, 0, 0); !near(m, 0) {
		Te.Errorf("isotropic tensor: Mises = %g, want 0", m)
	}
	if m := VonMises(10, 0, 0, 0, 0, 0); !near(m, 10) {
		Te.Errorf("uniaxial tensor: Mises = %g, want 10", m)
	}
}

func TestPrincipalScenarios(Te *testing.T) {
	p1, p2, p3 := Principal(5, 5, 5, 0, 0, 0)
	if !near(p1, 5) || !near(p2, 5) || !near(p3, 5) {
		Te.Errorf("isotropic tensor: principal = (%g, %g, %g), want (5, 5, 5)", p1, p2, p3)
	}
	p1, p2, p3 = Principal(10, 0, 0, 0, 0, 0)
	if !near(p1, 0) || !near(p2, 0) || !near(p3, 10) {
		Te.Errorf("uniaxial tensor: principal = (%g, %g, %g), want (0, 0, 10)", p1, p2, p3)
	}
}

func TestPrincipalOrderAndTrace(Te *testing.T) {
	for _, t := range tensors {
		p1, p2, p3 := Principal(t[0], t[1], t[2], t[3], t[4], t[5])
		if !(p1 <= p2 && p2 <= p3) {
			Te.Errorf("tensor %v: principal values not ascending: %g %g %g", t, p1, p2, p3)
		}
		trace := t[0] + t[1] + t[2]
		if !near(p1+p2+p3, trace) {
			Te.Errorf("tensor %v: eigenvalue sum %g differs from trace %g", t, p1+p2+p3, trace)
		}
	}
}

//Flipping the sign of all off-diagonal components is a reflection of the
//coordinate frame, so the invariants must not move.
func TestInvariantsUnderReflection(Te *testing.T) {
	for _, t := range tensors {
		m1 := VonMises(t[0], t[1], t[2], t[3], t[4], t[5])
		m2 := VonMises(t[0], t[1], t[2], -t[3], -t[4], -t[5])
		if !near(m1, m2) {
			Te.Errorf("tensor %v: Mises changed under reflection: %g vs %g", t, m1, m2)
		}
		a1, a2, a3 := Principal(t[0], t[1], t[2], t[3], t[4], t[5])
		b1, b2, b3 := Principal(t[0], t[1], t[2], -t[3], -t[4], -t[5])
		if !near(a1, b1) || !near(a2, b2) || !near(a3, b3) {
			Te.Errorf("tensor %v: principal set changed under reflection", t)
		}
	}
}

//Cross-check the Gonum eigensolver against the independent go.matrix one.
func TestPrincipalAgainstGomatrix(Te *testing.T) {
	for _, t := range tensors {
		p := [3]float64{}
		p[0], p[1], p[2] = Principal(t[0], t[1], t[2], t[3], t[4], t[5])
		m := matrix.MakeDenseMatrix([]float64{
			t[0], t[3], t[5],
			t[3], t[1], t[4],
			t[5], t[4], t[2],
		}, 3, 3)
		_, d, err := m.Eigen()
		if err != nil {
			Te.Fatalf("go.matrix Eigen failed for %v: %v", t, err)
		}
		ref := []float64{d.Get(0, 0), d.Get(1, 1), d.Get(2, 2)}
		//go.matrix does not sort; match every reference value to some principal value
		for _, r := range ref {
			found := false
			for _, v := range p {
				if math.Abs(r-v) <= 1e-6*math.Max(math.Abs(r), 1) {
					found = true
					break
				}
			}
			if !found {
				Te.Errorf("tensor %v: go.matrix eigenvalue %g not among principal %v", t, r, p)
			}
		}
	}
}
