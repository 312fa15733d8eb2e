/*
 * pymol.go, part of golie.
 *
 * Copyright 2025 Raul Mera <rmeraa{at}academicos(dot)uta(dot)cl>
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

package pdbmap

import (
	"bufio"
	"fmt"
	"io"
)

// PyMOLOptions sets what the PyMOL script shows besides the heat map.
type PyMOLOptions struct {
	Highlight []int //residues shown as gray spheres, usually the ligands
	Size      int   //of the ray-traced image, in pixels. 1200 if 0.
}

// WritePyMOLScript writes to w a PyMOL script that loads the PDB file pdb,
// shows it as a cartoon colored by B-factor (blue, white, red) and
// ray-traces it.
func WritePyMOLScript(w io.Writer, pdb string, o *PyMOLOptions) error {
	if o == nil {
		o = new(PyMOLOptions)
	}
	size := o.Size
	if size <= 0 {
		size = 1200
	}
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "load %s\n", pdb)
	b.WriteString(`bg_color white
set orthoscopic, on
set antialias, 2

hide everything
show cartoon
set cartoon_ring_mode, 3
set cartoon_nucleic_acid_mode, 4
set cartoon_ladder_mode, 0
set cartoon_ring_transparency, 0.2

spectrum b, blue_white_red

`)
	for _, r := range o.Highlight {
		fmt.Fprintf(b, "show spheres, (resid %d)\ncolor gray40, (resid %d)\n", r, r)
	}
	if len(o.Highlight) > 0 {
		b.WriteString("set sphere_scale, 0.6\n\n")
	}
	b.WriteString(`set ray_trace_mode, 1
set ambient, 0.5
set reflect, 0.2
set shininess, 50
set spec_reflect, 0.1

orient
`)
	fmt.Fprintf(b, "ray %d, %d\n", size, size)
	return b.Flush()
}
