/*
 * stream.go, part of goStoich.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */

package stoichjson

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Supported formats for files of requests and answers, one JSON object per line.
const (
	FormatPlain = "jsonl"
	FormatZstd  = "zst"
	FormatGzip  = "gz"
	FormatFlate = "flate"
)

// FormatFromName deduces the stream format from a file extension. Unknown
// extensions (including none) are plain JSON lines.
func FormatFromName(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case FormatZstd, "zstd":
		return FormatZstd
	case FormatGzip:
		return FormatGzip
	case FormatFlate:
		return FormatFlate
	}
	return FormatPlain
}

//stackCloser closes the compression layer first, then the file below it.
type stackCloser struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func (s *stackCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewReader opens the file name for reading, decompressing if needed. format
// can be empty, in which case it is deduced from the extension.
func NewReader(name, format string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatFromName(name)
	}
	r, err := WrapReader(f, format)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &stackCloser{Reader: r, closers: []io.Closer{r, f}}, nil
}

// WrapReader returns a reader that decompresses a stream in the given format.
func WrapReader(a io.Reader, format string) (io.ReadCloser, error) {
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	zstdreader := func(a io.Reader) (io.ReadCloser, error) {
		r, err := zstd.NewReader(a)
		if err != nil {
			return nil, err
		}
		return r.IOReadCloser(), nil
	}
	gzipreader := func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	flatereader := func(a io.Reader) (io.ReadCloser, error) { return flate.NewReader(a), nil }
	switch format {
	case FormatZstd:
		AnyNewReader = zstdreader
	case FormatGzip:
		AnyNewReader = gzipreader
	case FormatFlate:
		AnyNewReader = flatereader
	case FormatPlain, "":
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return io.NopCloser(a), nil }
	default:
		log.Printf("Format %s not supported. Plain JSON lines will be assumed", format)
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return io.NopCloser(a), nil }
	}
	return AnyNewReader(a)
}

// NewWriter creates the file name for writing, compressing if needed. format
// can be empty, in which case it is deduced from the extension.
func NewWriter(name, format string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatFromName(name)
	}
	w, err := WrapWriter(f, format)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &stackCloser{Writer: w, closers: []io.Closer{w, f}}, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// WrapWriter returns a writer that compresses into a in the given format.
// The returned writer must be closed to flush it, which does not close a.
func WrapWriter(a io.Writer, format string) (io.WriteCloser, error) {
	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch format {
	case FormatZstd:
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		}
	case FormatGzip:
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, gzip.BestCompression) }
	case FormatFlate:
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, flate.BestCompression) }
	case FormatPlain, "":
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return nopWriteCloser{a}, nil }
	default:
		log.Printf("Format %s not supported. Plain JSON lines will be written", format)
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return nopWriteCloser{a}, nil }
	}
	return AnyNewWriter(a)
}

// ServeFiles answers every request in the file in and writes the answers to the
// file out. Formats are deduced from the extensions. It returns the number of
// requests answered.
func ServeFiles(in, out string) (int, error) {
	r, err := NewReader(in, "")
	if err != nil {
		return 0, err
	}
	defer r.Close()
	w, err := NewWriter(out, "")
	if err != nil {
		return 0, err
	}
	n, err := Serve(r, w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return n, err
}
