/*
 * derived.go, part of frdvis.
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

//DerivedComponents are appended, in this order, to every symmetric tensor
//field, giving the fixed ten-slot layout xx, yy, zz, xy, yz, zx, Mises,
//MinPrincipal, MidPrincipal, MaxPrincipal that the legacy writer numbers 0-9.
var DerivedComponents = []string{"Mises", "MinPrincipal", "MidPrincipal", "MaxPrincipal"}

//isDerived reports whether the field already carries the derived components.
func isDerived(f *Field) bool {
	for _, c := range f.Components {
		if c == "Mises" {
			return true
		}
	}
	return false
}

//DeriveTensorFields augments, in place, every 6-component field of the step
//with the von Mises equivalent and the three ordered principal values. Nodes
//without a value in the source field get no derived value either. Fields of
//any other arity, and fields already augmented, are left untouched, so running
//the pass twice is a no-op. Returns the amount of fields augmented.
func DeriveTensorFields(step *Step) int {
	augmented := 0
	for _, f := range step.Fields {
		if f.Arity() != 6 || isDerived(f) {
			continue
		}
		for id, v := range f.Values {
			if len(v) != 6 {
				//partial component set for this node: nothing we can derive
				//from without making values up.
				continue
			}
			mises := VonMises(v[0], v[1], v[2], v[3], v[4], v[5])
			pmin, pmid, pmax := Principal(v[0], v[1], v[2], v[3], v[4], v[5])
			f.Values[id] = append(v, mises, pmin, pmid, pmax)
		}
		f.Components = append(f.Components, DerivedComponents...)
		augmented++
	}
	return augmented
}
