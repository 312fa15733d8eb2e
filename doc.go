/*
 * doc.go, part of golie.
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

/*
Package lie is the main package of golie, a set of tools to post-process
Linear Interaction Energy (LIE) terms obtained with cpptraj from MD
trajectories.

	**golie Capabilities**

	Reads the per-residue-pair LIE files written by cpptraj (plain, gzip or
	zstd compressed) and converts them to comma-separated tables with the
	total interaction energy.

	Computes the mean and sample standard deviation of the energy columns
	and stores them in a comment header at the top of each table, so no
	side files are needed. The header is written atomically.

	Groups tables by a boolean query over their file names (package query),
	concatenates each group and writes one aggregated table per group, with
	the group statistics in its header (package group).

	Reads the group statistics back and draws a grouped bar chart with error
	bars (package lieplot), using gonum/plot.

	Maps per-residue interaction energies onto the B-factor column of a PDB
	file, for visualization with PyMOL (package pdbmap), and writes the
	cpptraj input needed to obtain the LIE terms (package cpptraj).

The pipeline is sequential. A problem with one file, group or plot bin is
logged and the file, group or bin is skipped; see the Kind type for the
failures considered.
*/
package lie
