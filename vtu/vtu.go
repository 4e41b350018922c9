/*
 * vtu.go, part of frdvis.
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

//Package vtu writes analysis steps as compressed XML VTK unstructured-grid
//(.vtu) files, one per step, plus the ParaView Data (.pvd) index document that
//lets a viewer open the whole series as one animated dataset. Unlike the
//legacy flat format, DataArrays here carry the field name and one name per
//component.
package vtu

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/gofea/frdvis"
)

//Error is the error type for the vtu writer. It fullfills frdvis.Error and
//frdvis.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
}

func (err Error) Error() string {
	return fmt.Sprintf("vtu file %s: %s", err.filename, err.message)
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
	return base + frdvis.StepSuffix(i, total) + ".vtu"
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

	if _, err := fmt.Fprintf(w, "<?xml version=\"1.0\"?>\n"+
		"<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\" compressor=\"vtkZLibDataCompressor\">\n"+
		"\t<UnstructuredGrid>\n"+
		"\t\t<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", len(ids), len(mesh.Elements)); err != nil {
		return err
	}

	//Points
	coords := make([]float64, 0, 3*len(ids))
	for _, id := range ids {
		c := mesh.Nodes[id].Coords
		coords = append(coords, c[0], c[1], c[2])
	}
	fmt.Fprintf(w, "\t\t\t<Points>\n")
	if err := writeFloatArray(w, "", coords, 3, nil); err != nil {
		return err
	}
	fmt.Fprintf(w, "\t\t\t</Points>\n")

	//Cells: connectivity, offsets into it, and cell types
	var conn, offsets []int64
	var types []uint8
	off := int64(0)
	for _, e := range mesh.Elements {
		nodes := e.VisNodes()
		for _, n := range nodes {
			conn = append(conn, int64(index[n]))
		}
		off += int64(len(nodes))
		offsets = append(offsets, off)
		types = append(types, uint8(e.VTKType()))
	}
	fmt.Fprintf(w, "\t\t\t<Cells>\n")
	if err := writeIntArray(w, "connectivity", conn); err != nil {
		return err
	}
	if err := writeIntArray(w, "offsets", offsets); err != nil {
		return err
	}
	enc, err := encodeUint8s(types)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\t\t\t\t<DataArray type=\"UInt8\" Name=\"types\" format=\"binary\">\n\t\t\t\t\t%s\n\t\t\t\t</DataArray>\n", enc)
	fmt.Fprintf(w, "\t\t\t</Cells>\n")

	//PointData: one named DataArray per field, components named too
	fmt.Fprintf(w, "\t\t\t<PointData>\n")
	if step != nil {
		for _, f := range step.Fields {
			if f.Arity() == 0 || len(f.Values) == 0 {
				continue
			}
			if err := writeField(w, f, ids); err != nil {
				return err
			}
		}
	}
	fmt.Fprintf(w, "\t\t\t</PointData>\n")

	_, err = fmt.Fprintf(w, "\t\t</Piece>\n\t</UnstructuredGrid>\n</VTKFile>\n")
	return err
}

//writeField flattens one field to a dense tuple array and writes it with its
//component names. Nodes the field has no value for are written as zeros; that
//is a presentation choice of this writer, the model keeps them absent.
func writeField(w io.Writer, f *frdvis.Field, ids []int) error {
	n := f.Arity()
	flat := make([]float64, 0, n*len(ids))
	for _, id := range ids {
		vals, ok := f.Value(id)
		for c := 0; c < n; c++ {
			v := 0.0
			if ok && c < len(vals) {
				v = sanitize(vals[c])
			}
			flat = append(flat, v)
		}
	}
	return writeFloatArray(w, f.Name, flat, n, f.Components)
}

func writeFloatArray(w io.Writer, name string, vals []float64, ncomps int, comps []string) error {
	enc, err := encodeFloat64s(vals)
	if err != nil {
		return err
	}
	attrs := ""
	if name != "" {
		attrs += fmt.Sprintf(" Name=\"%s\"", name)
	}
	attrs += fmt.Sprintf(" NumberOfComponents=\"%d\"", ncomps)
	for i, c := range comps {
		attrs += fmt.Sprintf(" ComponentName%d=\"%s\"", i, c)
	}
	_, err = fmt.Fprintf(w, "\t\t\t\t<DataArray type=\"Float64\"%s format=\"binary\">\n\t\t\t\t\t%s\n\t\t\t\t</DataArray>\n", attrs, enc)
	return err
}

func writeIntArray(w io.Writer, name string, vals []int64) error {
	enc, err := encodeInt64s(vals)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\t\t\t\t<DataArray type=\"Int64\" Name=\"%s\" format=\"binary\">\n\t\t\t\t\t%s\n\t\t\t\t</DataArray>\n", name, enc)
	return err
}

//sanitize maps NaN and Inf to zero: the viewers choke on them.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

//Collection accumulates the per-step files of one conversion and writes the
//PVD index document last, after every step file is safely on disk, so an
//aborted run can never leave an index that points to a missing or truncated
//step file. A single-step collection still produces a valid index; callers
//that do not want it can simply not call WriteIndex.
type Collection struct {
	files     []string
	times     []float64
	finalized bool
}

func NewCollection() *Collection {
	return &Collection{}
}

//Add records one written step file and its time value. Steps must be added in
//step order.
func (C *Collection) Add(file string, time float64) error {
	if C.finalized {
		return Error{message: "collection index already written", filename: file}
	}
	C.files = append(C.files, file)
	C.times = append(C.times, time)
	return nil
}

//Len returns the amount of steps recorded so far.
func (C *Collection) Len() int {
	return len(C.files)
}

//WriteIndex writes the PVD document listing every recorded step file, in step
//order, with paths relative to the index location. After this call the
//collection accepts no further steps.
func (C *Collection) WriteIndex(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return Error{message: err.Error(), filename: name}
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "<?xml version=\"1.0\"?>\n<VTKFile type=\"Collection\" version=\"0.1\" byte_order=\"LittleEndian\">\n\t<Collection>\n")
	for i, file := range C.files {
		fmt.Fprintf(w, "\t\t<DataSet timestep=\"%g\" file=\"%s\"/>\n", C.times[i], filepath.Base(file))
	}
	fmt.Fprintf(w, "\t</Collection>\n</VTKFile>\n")
	if err := w.Flush(); err != nil {
		return Error{message: err.Error(), filename: name}
	}
	C.finalized = true
	return nil
}
