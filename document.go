package stitch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/alnah/go-stitch/internal/fileutil"
)

// newPDFConfig returns the pdfcpu configuration used for every read and merge.
// Relaxed validation accepts the slightly broken files common in the wild.
func newPDFConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// pageSource is one input of the output document: a file on disk or a
// PDF produced in memory.
type pageSource struct {
	path  string
	data  []byte
	pages int
}

// open returns a reader over the source. The closer is a no-op for
// in-memory sources.
func (s pageSource) open() (io.ReadSeeker, io.Closer, error) {
	if s.data != nil {
		return bytes.NewReader(s.data), io.NopCloser(nil), nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

// OutputDocument accumulates page sources in order and writes them as one PDF.
// Sources are only appended; the running page count never decreases.
type OutputDocument struct {
	sources []pageSource
	pages   int
}

// PageCount returns the number of pages appended so far.
func (d *OutputDocument) PageCount() int { return d.pages }

// Len returns the number of appended sources.
func (d *OutputDocument) Len() int { return len(d.sources) }

// AppendFile appends every page of the PDF at path.
// Returns the number of pages added; ErrReadSource if the file cannot be read.
func (d *OutputDocument) AppendFile(path string) (int, error) {
	n, err := pdfPageCountFile(path)
	if err != nil {
		return 0, err
	}
	d.sources = append(d.sources, pageSource{path: path, pages: n})
	d.pages += n
	return n, nil
}

// AppendBytes appends every page of an in-memory PDF. name identifies the
// source in error messages.
func (d *OutputDocument) AppendBytes(name string, data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), newPDFConfig())
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrReadSource, name, err)
	}
	d.sources = append(d.sources, pageSource{path: name, data: data, pages: n})
	d.pages += n
	return n, nil
}

// WriteTo merges all sources into w.
func (d *OutputDocument) WriteTo(w io.Writer) (int64, error) {
	if len(d.sources) == 0 {
		return 0, ErrNoPages
	}

	readers := make([]io.ReadSeeker, 0, len(d.sources))
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	for _, s := range d.sources {
		r, c, err := s.open()
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrReadSource, s.path, err)
		}
		readers = append(readers, r)
		closers = append(closers, c)
	}

	cw := &countingWriter{w: w}
	if err := api.MergeRaw(readers, cw, false, newPDFConfig()); err != nil {
		return cw.n, fmt.Errorf("merging pages: %w", err)
	}
	return cw.n, nil
}

// Save writes the document atomically to path. Either the complete file
// appears at path or path is left untouched.
func (d *OutputDocument) Save(path string) error {
	err := fileutil.WriteAtomic(path, func(w io.Writer) error {
		_, err := d.WriteTo(w)
		return err
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrReadSource) || errors.Is(err, ErrNoPages) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// pdfPageCountFile returns the page count of the PDF at path.
func pdfPageCountFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrReadSource, path, err)
	}
	defer f.Close()

	n, err := api.PageCount(f, newPDFConfig())
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrReadSource, path, err)
	}
	return n, nil
}

// firstPageSize returns the visible size of the first page of the PDF at
// path: its crop box (the media box when none is set), rotation applied.
func firstPageSize(path string) (Dimension, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dimension{}, fmt.Errorf("%w: %s: %v", ErrReadSource, path, err)
	}
	defer f.Close()

	boxes, err := api.Boxes(f, []string{"1"}, newPDFConfig())
	if err != nil {
		return Dimension{}, fmt.Errorf("%w: %s: %v", ErrReadSource, path, err)
	}
	if len(boxes) == 0 || boxes[0].CropBox() == nil {
		return Dimension{}, fmt.Errorf("%w: %s: document has no pages", ErrReadSource, path)
	}

	crop := boxes[0].CropBox()
	w, h := crop.Width(), crop.Height()
	if boxes[0].Rot%180 != 0 {
		w, h = h, w
	}
	return FromPoints(w, h), nil
}
