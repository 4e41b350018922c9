/*
 * model.go, part of frdvis.
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
	"fmt"
	"sort"
)

//A map from the FRD element type code to the amount of nodes per element.
//cgx manual (cgx_2.20.pdf), chapter 11.4.
var elementNodes = map[int]int{
	1:  8,  //C3D8 brick
	2:  6,  //C3D6 wedge
	3:  4,  //C3D4 tet
	4:  20, //C3D20 brick
	5:  15, //C3D15 wedge
	6:  10, //C3D10 tet
	7:  3,  //S3 shell
	8:  6,  //S6 shell
	9:  4,  //S4 shell
	10: 8,  //S8 shell
	11: 2,  //B31 beam
	12: 3,  //B32 beam
}

//A map from the FRD element type code to the VTK cell type used to draw it.
//CalculiX type 5 (15-node wedge) has no VTK counterpart and is drawn as a
//linear wedge, dropping the extra nodes.
var elementVTK = map[int]int{
	1:  12, //VTK_HEXAHEDRON
	2:  13, //VTK_WEDGE
	3:  10, //VTK_TETRA
	4:  25, //VTK_QUADRATIC_HEXAHEDRON
	5:  13, //VTK_WEDGE
	6:  24, //VTK_QUADRATIC_TETRA
	7:  5,  //VTK_TRIANGLE
	8:  22, //VTK_QUADRATIC_TRIANGLE
	9:  9,  //VTK_QUAD
	10: 23, //VTK_QUADRATIC_QUAD
	11: 3,  //VTK_LINE
	12: 21, //VTK_QUADRATIC_EDGE
}

//ElementNodeCount returns the amount of nodes for a FRD element type code,
//and whether the code is a recognized one.
func ElementNodeCount(etype int) (int, bool) {
	n, ok := elementNodes[etype]
	return n, ok
}

//A single mesh node. IDs in a FRD file need not be contiguous.
type Node struct {
	ID     int
	Coords [3]float64
}

//A single finite element. Nodes contains node IDs, in the order given by the
//file, which is the CalculiX corner/edge ordering for the element type.
type Element struct {
	ID    int
	Type  int
	Nodes []int
}

//VTKType returns the VTK cell type for the element, or 0 if the element
//type has no mapping.
func (E *Element) VTKType() int {
	return elementVTK[E.Type]
}

//VisNodes returns the element's node IDs in the order, and amount, expected by
//the VTK cell the element maps to. 20-node bricks get their last eight nodes
//swapped; 15-node wedges are truncated to the 6 corner nodes.
func (E *Element) VisNodes() []int {
	switch E.Type {
	case 4:
		out := make([]int, 0, 20)
		out = append(out, E.Nodes[0:12]...)
		out = append(out, E.Nodes[16:20]...)
		out = append(out, E.Nodes[12:16]...)
		return out
	case 2, 5:
		out := make([]int, 0, 6)
		for _, i := range []int{0, 2, 1, 3, 5, 4} {
			out = append(out, E.Nodes[i])
		}
		return out
	default:
		out := make([]int, len(E.Nodes))
		copy(out, E.Nodes)
		return out
	}
}

//Mesh is the geometry shared by every step of a result file. It is built once
//by the parser and must not be modified afterwards.
type Mesh struct {
	Nodes    map[int]*Node
	Elements []*Element
}

func NewMesh() *Mesh {
	return &Mesh{Nodes: map[int]*Node{}}
}

//AddNode adds a node to the mesh. Duplicated IDs are an error.
func (M *Mesh) AddNode(n *Node) error {
	if _, ok := M.Nodes[n.ID]; ok {
		return CError{message: fmt.Sprintf("duplicated node id %d", n.ID), critical: true}
	}
	M.Nodes[n.ID] = n
	return nil
}

//AddElement adds an element to the mesh, rejecting unknown element type codes
//and references to nodes that are not in the mesh.
func (M *Mesh) AddElement(e *Element) error {
	want, ok := ElementNodeCount(e.Type)
	if !ok {
		return CError{message: fmt.Sprintf("element %d: unknown element type code %d", e.ID, e.Type), critical: true}
	}
	if len(e.Nodes) != want {
		return CError{message: fmt.Sprintf("element %d: type %d needs %d nodes, got %d", e.ID, e.Type, want, len(e.Nodes)), critical: true}
	}
	for _, n := range e.Nodes {
		if _, ok := M.Nodes[n]; !ok {
			return CError{message: fmt.Sprintf("element %d references node %d, which is not in the mesh", e.ID, n), critical: true}
		}
	}
	M.Elements = append(M.Elements, e)
	return nil
}

//Renumber returns the node IDs sorted ascending, and a map from node ID to the
//dense, 0-based index both writers use. The map is rebuilt on each call so the
//mesh itself stays read-only.
func (M *Mesh) Renumber() ([]int, map[int]int) {
	ids := make([]int, 0, len(M.Nodes))
	for id := range M.Nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	index := make(map[int]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return ids, index
}

//Domain tells to which entities the values of a field are attached.
type Domain int

const (
	Nodal        Domain = iota //values at mesh nodes
	ElementNodal               //element values extrapolated to the nodes
)

//Field is one named result array for one step. Values maps node ID to the
//component vector; a node absent from the map has no value, which is not the
//same as having a value of zero.
type Field struct {
	Name       string
	Domain     Domain
	Components []string
	Values     map[int][]float64
}

//Arity returns the amount of components per value.
func (F *Field) Arity() int {
	return len(F.Components)
}

//Value returns the component vector for a node, and whether the node has one.
func (F *Field) Value(id int) ([]float64, bool) {
	v, ok := F.Values[id]
	return v, ok
}

//Step is one analysis output increment. Fields keeps the file order.
type Step struct {
	Num    int     //step number as given in the file
	Time   float64 //time, frequency, or whatever scalar the analysis attaches to the step
	Fields []*Field
}

//Field returns the first field with the given name, or nil.
func (S *Step) Field(name string) *Field {
	for _, f := range S.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

//Model is the parsed content of one result file: a mesh plus the steps, in
//file order.
type Model struct {
	Mesh  *Mesh
	Steps []*Step
}

//StepSuffix returns the file-name infix for the i-th of total steps, so that
//output names sort in step order: ".01", ".02"... An empty string if there is
//at most one step.
func StepSuffix(i, total int) string {
	if total <= 1 {
		return ""
	}
	width := len(fmt.Sprintf("%d", total))
	return fmt.Sprintf(".%0*d", width, i+1)
}
