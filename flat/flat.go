// Package flat writes and reads the flat-file artifacts of a run:
// detection-log CSVs and trajectory JSON documents, gzip-compressed when
// the path carries a .gz suffix.
package flat

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultGZipCompressionLevel = gzip.BestCompression

	filePerm = 0660
	dirPerm  = 0770
)

// Writer is a file sink with optional transparent gzip.
type Writer struct {
	f      *os.File
	gzw    *gzip.Writer
	closed bool
}

// NewWriter creates (or truncates) path, ensuring its directory exists.
// A .gz suffix turns on compression.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return nil, err
	}
	w := &Writer{f: f}
	if strings.HasSuffix(path, ".gz") {
		gzw, err := gzip.NewWriterLevel(f, DefaultGZipCompressionLevel)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		w.gzw = gzw
	}
	return w, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.gzw != nil {
		return w.gzw.Write(p)
	}
	return w.f.Write(p)
}

func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.gzw != nil {
		if err := w.gzw.Close(); err != nil {
			_ = w.f.Close()
			return err
		}
	}
	return w.f.Close()
}

// openReader opens path, transparently ungzipping on a .gz suffix.
func openReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gzr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &gzReadCloser{gzr: gzr, f: f}, nil
}

type gzReadCloser struct {
	gzr *gzip.Reader
	f   *os.File
}

func (g *gzReadCloser) Read(p []byte) (int, error) { return g.gzr.Read(p) }

func (g *gzReadCloser) Close() error {
	if err := g.gzr.Close(); err != nil {
		_ = g.f.Close()
		return err
	}
	return g.f.Close()
}
