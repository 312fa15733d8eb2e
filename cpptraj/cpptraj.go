/*
 * cpptraj.go, part of golie.
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

// Package cpptraj writes and runs the cpptraj inputs that produce the LIE
// energy files read by golie, one file per residue pair.
package cpptraj

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	lie "github.com/rmera/golie"
)

// Block is a set of residue pairs sharing the prefix and suffix of their
// output file names. Every inner residue is paired with every outer one.
type Block struct {
	Name   string `yaml:"name"`
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
	Inner  []int  `yaml:"inner"`
	Outer  []int  `yaml:"outer"`
}

// Pairs returns the residue pairs of the block, inner-major.
func (B Block) Pairs() []lie.Pair {
	ret := make([]lie.Pair, 0, len(B.Inner)*len(B.Outer))
	for _, i := range B.Inner {
		for _, o := range B.Outer {
			ret = append(ret, lie.Pair{Inner: i, Outer: o})
		}
	}
	return ret
}

// Input is a cpptraj LIE calculation: a topology, one or more
// trajectories and the residue pairs.
type Input struct {
	Parm   string   `yaml:"parm"`
	Trajin []string `yaml:"trajin"`
	Blocks []Block  `yaml:"blocks"`
}

// DefaultInput returns the input for the two binding pockets of the
// Fe/Ga system: residues 104, 107, 108 and 270 against the heme and metal
// (1481 and 1482) in the first one, and 844, 847, 848 and 1010 against
// 1483 and 1484 in the second.
func DefaultInput() *Input {
	return &Input{
		Parm:   "system_hmass.prmtop",
		Trajin: []string{"unified_traj.dcd"},
		Blocks: []Block{
			{Name: "M1", Prefix: "_FE_", Suffix: "_BP_HW", Inner: []int{104, 107, 108, 270}, Outer: []int{1481, 1482}},
			{Name: "M2", Prefix: "_FE_", Suffix: "_BP_HH", Inner: []int{844, 847, 848, 1010}, Outer: []int{1483, 1484}},
		},
	}
}

// Outputs returns the names of the LIE files the input asks cpptraj to
// write.
func (I *Input) Outputs() []string {
	var ret []string
	for _, b := range I.Blocks {
		for _, p := range b.Pairs() {
			ret = append(ret, p.Name(b.Prefix, b.Suffix))
		}
	}
	return ret
}

// Write writes the cpptraj script for the input to w.
func (I *Input) Write(w io.Writer) error {
	if I.Parm == "" || len(I.Trajin) == 0 {
		return lie.NewError(lie.MissingInput, "", "a topology and at least one trajectory are needed", true, "Input.Write")
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "parm %s\n", I.Parm)
	for _, t := range I.Trajin {
		fmt.Fprintf(&b, "trajin %s\n", t)
	}
	for _, bl := range I.Blocks {
		b.WriteString("\n")
		if bl.Name != "" {
			fmt.Fprintf(&b, "#%s\n", bl.Name)
		}
		for _, p := range bl.Pairs() {
			fmt.Fprintf(&b, "lie :%d :%d out %s\n", p.Inner, p.Outer, p.Name(bl.Prefix, bl.Suffix))
		}
	}
	b.WriteString("\nrun\nquit\n")
	_, err := w.Write(b.Bytes())
	return err
}

// Handle runs cpptraj on an Input.
type Handle struct {
	command   string
	inputname string
	dir       string
}

// NewHandle returns a Handle with the default settings.
func NewHandle() *Handle {
	run := new(Handle)
	run.SetDefaults()
	return run
}

// SetDefaults sets the cpptraj command to $AMBERHOME/bin/cpptraj, or to
// cpptraj in the PATH if AMBERHOME is not defined, the working directory
// to the current one and the input name to "lie".
func (H *Handle) SetDefaults() {
	H.command = os.ExpandEnv("${AMBERHOME}/bin/cpptraj")
	if H.command == "/bin/cpptraj" { //AMBERHOME not defined
		H.command = "cpptraj"
	}
	H.inputname = "lie"
	H.dir = "."
}

// SetCommand sets the cpptraj executable.
func (H *Handle) SetCommand(name string) {
	H.command = name
}

// SetName sets the name of the input (without extension).
func (H *Handle) SetName(name string) {
	H.inputname = name
}

// SetDir sets the directory cpptraj runs in, where the input and the
// LIE files are written.
func (H *Handle) SetDir(dir string) {
	H.dir = dir
}

// InputName returns the full name of the cpptraj input file.
func (H *Handle) InputName() string {
	return filepath.Join(H.dir, H.inputname+".in")
}

// BuildInput writes the input file for I.
func (H *Handle) BuildInput(I *Input) error {
	return lie.WriteAtomic(H.InputName(), I.Write)
}

// Run runs cpptraj on the input written by BuildInput, waiting for it to
// finish or for ctx to be cancelled. The output of cpptraj goes to a file
// with the input name and the .out extension.
func (H *Handle) Run(ctx context.Context) error {
	out, err := os.Create(filepath.Join(H.dir, H.inputname+".out"))
	if err != nil {
		return lie.NewError(lie.Unknown, H.inputname+".out", err.Error(), true, "Handle.Run")
	}
	defer out.Close()
	var stderr bytes.Buffer
	command := exec.CommandContext(ctx, H.command, "-i", H.inputname+".in")
	command.Dir = H.dir
	command.Stdout = out
	command.Stderr = &stderr
	err = command.Run()
	if errors.Is(err, exec.ErrNotFound) {
		return lie.NewError(lie.MissingInput, "", fmt.Sprintf("cpptraj executable %s not found", H.command), true, "Handle.Run")
	}
	if err != nil {
		return lie.NewError(lie.Unknown, H.InputName(), fmt.Sprintf("cpptraj failed: %v %s", err, strings.TrimSpace(stderr.String())), true, "Handle.Run")
	}
	return nil
}
