/*
 * vtk.go, part of frdvis.
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

//Package vtk writes one analysis step as a legacy, flat-ASCII VTK
//unstructured-grid file (format version 3.0). The format has no component
//names, so tensor components are identified only by their slot: 0 xx, 1 yy,
//2 zz, 3 xy, 4 yz, 5 zx, 6 Mises, 7 MinPrincipal, 8 MidPrincipal,
//9 MaxPrincipal. Viewers rely on that numbering; do not reorder it.
package vtk

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gofea/frdvis"
)

//Error is the error type for the vtk writer. It fullfills frdvis.Error and
//frdvis.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
}

func (err Error) Error() string {
	return fmt.Sprintf("vtk file %s: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file that could not be written
func (err Error) FileName() string { return err.filename }

//Critical returns true: a write error loses the step
func (err Error) Critical() bool { return true }

//StepFileName names the output file of the i-th of total steps so that the
//names sort in step order.
func StepFileName(base string, i, total int) string {
	return base + frdvis.StepSuffix(i, total) + ".vtk"
}

//WriteFile serializes the mesh and one step (which may be nil, for a mesh-only
//file) to the named file.
func WriteFile(name string, model *frdvis.Model, step *frdvis.Step) error {
	f, err := os.Create(name)
	if err != nil {
		return Error{message: err.Error(), filename: name}
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := Write(w, model, step); err != nil {
		return Error{message: err.Error(), filename: name}
	}
	if err := w.Flush(); err != nil {
		return Error{message: err.Error(), filename: name}
	}
	return nil
}

//Write serializes the mesh and one step to w.
func Write(w io.Writer, model *frdvis.Model, step *frdvis.Step) error {
	mesh := model.Mesh
	ids, index := mesh.Renumber()

	if _, err := fmt.Fprintf(w, "# vtk DataFile Version 3.0\n\nASCII\nDATASET UNSTRUCTURED_GRID\n\n"); err != nil {
		return err
	}

	//POINTS: coordinates of all nodes, renumbered from 0
	fmt.Fprintf(w, "POINTS %d double\n", len(ids))
	for _, id := range ids {
		c := mesh.Nodes[id].Coords
		fmt.Fprintf(w, "\t% .8E\t% .8E\t% .8E\n", c[0], c[1], c[2])
	}
	fmt.Fprintf(w, "\n")

	//CELLS: element connectivity, in VTK node order
	size := 0
	for _, e := range mesh.Elements {
		size += 1 + len(e.VisNodes())
	}
	fmt.Fprintf(w, "CELLS %d %d\n", len(mesh.Elements), size)
	for _, e := range mesh.Elements {
		nodes := e.VisNodes()
		fmt.Fprintf(w, "\t%d", len(nodes))
		for _, n := range nodes {
			fmt.Fprintf(w, " %d", index[n])
		}
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "CELL_TYPES %d\n", len(mesh.Elements))
	for _, e := range mesh.Elements {
		fmt.Fprintf(w, "\t%d\n", e.VTKType())
	}
	fmt.Fprintf(w, "\n")

	//POINT_DATA: one FIELD block per result field
	fmt.Fprintf(w, "POINT_DATA %d\n", len(ids))
	if step == nil {
		return nil
	}
	for _, f := range step.Fields {
		if f.Arity() == 0 || len(f.Values) == 0 {
			continue
		}
		if err := writeField(w, f, ids); err != nil {
			return err
		}
	}
	return nil
}

//writeField writes one FIELD block. The format needs a value for every point,
//so nodes the field has no value for are written as zeros; that is a
//presentation choice of this writer, the model keeps them absent.
func writeField(w io.Writer, f *frdvis.Field, ids []int) error {
	if _, err := fmt.Fprintf(w, "FIELD %s 1\n\t%s %d %d double\n", f.Name, f.Name, f.Arity(), len(ids)); err != nil {
		return err
	}
	for _, id := range ids {
		vals, ok := f.Value(id)
		fmt.Fprintf(w, "\t")
		for c := 0; c < f.Arity(); c++ {
			v := 0.0
			if ok && c < len(vals) {
				v = sanitize(vals[c])
			}
			fmt.Fprintf(w, "\t% .8E", v)
		}
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

//sanitize maps NaN and Inf to zero: the viewers choke on them.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
