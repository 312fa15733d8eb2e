/*
 * files.go, part of golie.
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
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Compression suffixes recognized by Open.
const (
	ZstdSuffix = ".zst"
	GzipSuffix = ".gz"
)

// zstd.Decoder has a Close method that returns nothing, so it
// doesn't implement io.ReadCloser by itself.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

// Closes all the layers, innermost first.
func (s *stackedCloser) Close() error {
	var err error
	for _, c := range s.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Open opens name for reading. Files ending in .zst or .gz are
// decompressed transparently, anything else is read as is.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, NewError(MissingInput, name, err.Error(), true, "Open")
	}
	var dec io.ReadCloser
	switch strings.ToLower(filepath.Ext(name)) {
	case ZstdSuffix:
		var z *zstd.Decoder
		z, err = zstd.NewReader(f)
		if err == nil {
			dec = zstdCloser{z}
		}
	case GzipSuffix:
		dec, err = gzip.NewReader(f)
	default:
		return f, nil
	}
	if err != nil {
		f.Close()
		return nil, NewError(MalformedRecord, name, "can't start decompression: "+err.Error(), true, "Open")
	}
	return &stackedCloser{Reader: dec, closers: []io.Closer{dec, f}}, nil
}

// TrimCompression returns name without a compression suffix, if it has one.
func TrimCompression(name string) string {
	for _, s := range []string{ZstdSuffix, GzipSuffix} {
		if strings.HasSuffix(strings.ToLower(name), s) {
			return name[:len(name)-len(s)]
		}
	}
	return name
}

// HasExt returns true if name, once any compression suffix is removed,
// ends with ext (case-insensitive).
func HasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(TrimCompression(name)), ext)
}

// ListFiles returns the regular files in dir whose extension, compression
// suffix aside, is ext. The list is sorted by name so every run sees the
// files in the same order.
func ListFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, NewError(MissingInput, dir, err.Error(), true, "ListFiles")
	}
	ret := make([]string, 0, len(entries))
	for _, v := range entries {
		if v.IsDir() || !HasExt(v.Name(), ext) {
			continue
		}
		ret = append(ret, filepath.Join(dir, v.Name()))
	}
	sort.Strings(ret)
	return ret, nil
}
