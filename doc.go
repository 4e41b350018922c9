/*
 * doc.go, part of frdvis.
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

/*Package frdvis reads CalculiX FRD result files and turns them into mesh+field
models ready to be serialized for 3D post-processing viewers.


	**frdvis capabilities**


    Reads the ASCII FRD format written by the CalculiX solver: nodal coordinate
	blocks, element definition blocks (with multi-line connectivity) and nodal
	result blocks for any number of analysis steps.

    Keeps the mesh and the per-step fields in an in-memory model that preserves
	the distinction between "value is zero" and "no value for this node".

    Computes the von Mises equivalent and the three ordered principal values for
	every symmetric tensor field (stress, strain), appending them as named
	components (uses Gonum for the eigen-decompositions).

    Writes one file per step in the legacy flat VTK format (subpackage vtk) or
	in the compressed XML VTU format (subpackage vtu), plus a PVD index document
	so a viewer can animate over the steps.

    Plots the time history of a field over the analysis steps (subpackage
	resplot, uses the Plotinum library).

The frdvis command (cmd/frdvis) drives the whole conversion from the shell.

Element type codes, component numbering and the connectivity reordering needed
by the VTK formats follow the CalculiX cgx manual, chapter 11.*/
package frdvis
