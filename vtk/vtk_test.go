/*
 * vtk_test.go, part of frdvis.
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

package vtk

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/gofea/frdvis"
)

//testModel builds one tetrahedron with sparse node numbering and an augmented
//stress field that skips node 30 and carries a NaN at node 40.
func testModel(Te *testing.T) (*frdvis.Model, *frdvis.Step) {
	mesh := frdvis.NewMesh()
	coords := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i, id := range []int{10, 20, 30, 40} {
		if err := mesh.AddNode(&frdvis.Node{ID: id, Coords: coords[i]}); err != nil {
			Te.Fatal(err)
		}
	}
	if err := mesh.AddElement(&frdvis.Element{ID: 1, Type: 3, Nodes: []int{10, 20, 30, 40}}); err != nil {
		Te.Fatal(err)
	}
	step := &frdvis.Step{
		Num:  1,
		Time: 1.0,
		Fields: []*frdvis.Field{{
			Name:       "S",
			Domain:     frdvis.Nodal,
			Components: []string{"XX", "YY", "ZZ", "XY", "YZ", "ZX", "Mises", "MinPrincipal", "MidPrincipal", "MaxPrincipal"},
			Values: map[int][]float64{
				10: {1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
				20: {10, 0, 0, 0, 0, 0, 10, 0, 0, 10},
				40: {math.NaN(), 0, 0, 0, 0, 0, 0, 0, 0, 0},
			},
		}},
	}
	return &frdvis.Model{Mesh: mesh, Steps: []*frdvis.Step{step}}, step
}

func TestWriteLayout(Te *testing.T) {
	model, step := testModel(Te)
	var buf bytes.Buffer
	if err := Write(&buf, model, step); err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	lines := strings.Split(out, "\n")

	if !strings.HasPrefix(out, "# vtk DataFile Version 3.0\n") {
		Te.Error("missing or wrong version line")
	}
	for _, want := range []string{"ASCII", "DATASET UNSTRUCTURED_GRID", "POINTS 4 double", "CELLS 1 5", "CELL_TYPES 1", "POINT_DATA 4", "FIELD S 1"} {
		if !contains(lines, want) {
			Te.Errorf("output lacks the %q line", want)
		}
	}
	//connectivity uses the dense zero-based numbering, not the file ids
	if !contains(lines, "\t4 0 1 2 3") {
		Te.Error("tetrahedron connectivity not renumbered to 0-3")
	}
	if !contains(lines, "\t10") {
		Te.Error("cell type 10 (tetrahedron) not written")
	}
	if !contains(lines, "\tS 10 4 double") {
		Te.Error("field header does not declare 10 components for 4 points")
	}
}

func TestWriteFieldRows(Te *testing.T) {
	model, step := testModel(Te)
	var buf bytes.Buffer
	if err := Write(&buf, model, step); err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	var rows [][]float64
	for i, l := range lines {
		if strings.HasPrefix(l, "\tS 10 4 double") {
			for _, dl := range lines[i+1 : i+5] {
				fs := strings.Fields(dl)
				row := make([]float64, 0, len(fs))
				for _, f := range fs {
					v, err := strconv.ParseFloat(f, 64)
					if err != nil {
						Te.Fatalf("bad number %q in data row %q", f, dl)
					}
					row = append(row, v)
				}
				rows = append(rows, row)
			}
			break
		}
	}
	if len(rows) != 4 {
		Te.Fatalf("found %d data rows, want 4", len(rows))
	}
	for i, r := range rows {
		if len(r) != 10 {
			Te.Fatalf("row %d has %d values, want 10", i, len(r))
		}
	}
	//rows follow ascending node id order: 10, 20, 30, 40
	if rows[0][0] != 1 || rows[0][9] != 10 {
		Te.Errorf("node 10 row = %v", rows[0])
	}
	if rows[1][0] != 10 || rows[1][6] != 10 {
		Te.Errorf("node 20 row = %v", rows[1])
	}
	//node 30 carries no value and is zero-filled
	for c, v := range rows[2] {
		if v != 0 {
			Te.Errorf("node 30 slot %d = %g, want 0", c, v)
		}
	}
	//the NaN at node 40 is written as zero
	if rows[3][0] != 0 {
		Te.Errorf("node 40 slot 0 = %g, want sanitized 0", rows[3][0])
	}
}

func TestWriteMeshOnly(Te *testing.T) {
	model, _ := testModel(Te)
	var buf bytes.Buffer
	if err := Write(&buf, model, nil); err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "POINT_DATA 4") {
		Te.Error("mesh-only file lacks the POINT_DATA line")
	}
	if strings.Contains(out, "FIELD") {
		Te.Error("mesh-only file carries a FIELD block")
	}
}

func TestStepFileName(Te *testing.T) {
	cases := []struct {
		i, total int
		want     string
	}{
		{0, 1, "job.vtk"},
		{0, 3, "job.1.vtk"},
		{2, 3, "job.3.vtk"},
		{9, 10, "job.10.vtk"},
	}
	for _, c := range cases {
		if got := StepFileName("job", c.i, c.total); got != c.want {
			Te.Errorf("StepFileName(job, %d, %d) = %q, want %q", c.i, c.total, got, c.want)
		}
	}
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
