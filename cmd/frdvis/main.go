/*
 * main.go, part of frdvis.
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

//The frdvis command converts a CalculiX FRD result file to files a 3D viewer
//understands: the legacy flat VTK format, the compressed XML VTU format, or
//both, one file per analysis step, plus a PVD index for the VTU series.
//
//	frdvis [-vtk] [-vtu] [-strict] results.frd
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gofea/frdvis"
	"github.com/gofea/frdvis/vtk"
	"github.com/gofea/frdvis/vtu"
)

func main() {
	wantVTK := flag.Bool("vtk", false, "write legacy flat ASCII .vtk files")
	wantVTU := flag.Bool("vtu", false, "write compressed XML .vtu files and a .pvd index")
	strict := flag.Bool("strict", false, "treat tolerated format defects as errors")
	flag.Parse()
	if flag.NArg() != 1 || (!*wantVTK && !*wantVTU) {
		fmt.Fprintf(os.Stderr, "usage: frdvis [-vtk] [-vtu] [-strict] file.frd\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	model, err := frdvis.ReadFile(input, frdvis.Options{Strict: *strict})
	if err != nil {
		log.Fatalf("frdvis: %v", err)
	}
	if len(model.Mesh.Nodes) == 0 {
		log.Fatalf("frdvis: %s has no mesh", input)
	}
	for _, step := range model.Steps {
		frdvis.DeriveTensorFields(step)
	}

	base := strings.TrimSuffix(input, ".frd")
	total := len(model.Steps)
	coll := vtu.NewCollection()

	write := func(i int, step *frdvis.Step) {
		if *wantVTK {
			name := vtk.StepFileName(base, i, total)
			if err := vtk.WriteFile(name, model, step); err != nil {
				log.Fatalf("frdvis: step %d: %v", i+1, err)
			}
			log.Printf("frdvis: wrote %s", name)
		}
		if *wantVTU {
			name := vtu.StepFileName(base, i, total)
			if err := vtu.WriteFile(name, model, step); err != nil {
				log.Fatalf("frdvis: step %d: %v", i+1, err)
			}
			log.Printf("frdvis: wrote %s", name)
			if step != nil {
				coll.Add(name, step.Time)
			}
		}
	}

	if total == 0 {
		//no result steps: still worth writing the mesh for inspection
		write(0, nil)
		return
	}
	for i, step := range model.Steps {
		write(i, step)
	}
	if *wantVTU && coll.Len() > 0 {
		name := base + ".pvd"
		if err := coll.WriteIndex(name); err != nil {
			log.Fatalf("frdvis: %v", err)
		}
		log.Printf("frdvis: wrote %s", name)
	}
}
