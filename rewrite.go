/*
 * rewrite.go, part of golie.
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

package lie

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic creates or replaces the file name with whatever write
// produces. The content goes first to a temporary file in the same
// directory, which is renamed over name only if write succeeds, so name
// is never left half-written. The temporary file is removed on failure.
func WriteAtomic(name string, write func(w io.Writer) error) (err error) {
	mode := fileMode(name, 0644)
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return NewError(MissingInput, name, "can't create temporary file: "+err.Error(), true, "WriteAtomic")
	}
	tmpname := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpname)
		}
	}()
	b := bufio.NewWriter(tmp)
	if err = write(b); err != nil {
		return errDecorate(err, Unknown, "WriteAtomic")
	}
	if err = b.Flush(); err != nil {
		return NewError(Unknown, tmpname, err.Error(), true, "WriteAtomic")
	}
	if err = tmp.Sync(); err != nil {
		return NewError(Unknown, tmpname, err.Error(), true, "WriteAtomic")
	}
	if err = tmp.Close(); err != nil {
		return NewError(Unknown, tmpname, err.Error(), true, "WriteAtomic")
	}
	if err = os.Chmod(tmpname, mode); err != nil {
		return NewError(Unknown, tmpname, err.Error(), true, "WriteAtomic")
	}
	if err = os.Rename(tmpname, name); err != nil {
		return NewError(Unknown, name, "can't replace file: "+err.Error(), true, "WriteAtomic")
	}
	committed = true
	return nil
}

// Rewrite replaces the contents of the existing file name with the output
// of transform, which reads the old contents from src and writes the new
// ones to dst. The replacement is atomic, see WriteAtomic: if anything
// fails, the original file is left untouched.
func Rewrite(name string, transform func(dst io.Writer, src io.Reader) error) error {
	in, err := os.Open(name)
	if err != nil {
		return NewError(MissingInput, name, err.Error(), true, "Rewrite")
	}
	defer in.Close()
	err = WriteAtomic(name, func(w io.Writer) error {
		return transform(w, bufio.NewReader(in))
	})
	if err != nil {
		return errDecorate(err, Unknown, "Rewrite")
	}
	return nil
}

// Prepend inserts text at the beginning of the file name, atomically.
func Prepend(name, text string) error {
	err := Rewrite(name, func(dst io.Writer, src io.Reader) error {
		if _, err := io.WriteString(dst, text); err != nil {
			return err
		}
		_, err := io.Copy(dst, src)
		return err
	})
	if err != nil {
		return errDecorate(err, Unknown, "Prepend")
	}
	return nil
}
