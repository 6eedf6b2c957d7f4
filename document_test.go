package stitch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ---------------------------------------------------------------------------
// TestOutputDocument - Append and save
// ---------------------------------------------------------------------------

func TestOutputDocument_Save(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 2, 595, 842)
	b := writePDF(t, dir, "b.pdf", 3, 612, 792)
	img, err := GofpdfRenderer{}.RenderPage(writePNG(t, dir, "c.png", 8, 8), FromPoints(595, 842).Rect(), Dimension{})
	if err != nil {
		t.Fatal(err)
	}

	var doc OutputDocument
	for _, p := range []string{a, b} {
		if _, err := doc.AppendFile(p); err != nil {
			t.Fatalf("AppendFile(%q) unexpected error: %v", p, err)
		}
	}
	if n, err := doc.AppendBytes("c.png", img); err != nil || n != 1 {
		t.Fatalf("AppendBytes() = %d, %v; want 1, nil", n, err)
	}
	if doc.PageCount() != 6 || doc.Len() != 3 {
		t.Errorf("PageCount() = %d, Len() = %d; want 6, 3", doc.PageCount(), doc.Len())
	}

	out := filepath.Join(dir, "nested", "out.pdf")
	if err := doc.Save(out); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if got := pageCount(t, out); got != 6 {
		t.Errorf("saved page count = %d, want 6", got)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, "nested", ".*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestOutputDocument_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	corrupt := writeFile(t, dir, "bad.pdf", []byte("%PDF-1.4 garbage"))

	var doc OutputDocument
	if _, err := doc.AppendFile(corrupt); !errors.Is(err, ErrReadSource) {
		t.Errorf("AppendFile(corrupt) error = %v, want ErrReadSource", err)
	}
	if _, err := doc.AppendFile(filepath.Join(dir, "missing.pdf")); !errors.Is(err, ErrReadSource) {
		t.Errorf("AppendFile(missing) error = %v, want ErrReadSource", err)
	}
	if _, err := doc.AppendBytes("mem", []byte("nope")); !errors.Is(err, ErrReadSource) {
		t.Errorf("AppendBytes(garbage) error = %v, want ErrReadSource", err)
	}
	if doc.PageCount() != 0 {
		t.Errorf("PageCount() = %d after failures, want 0", doc.PageCount())
	}

	out := filepath.Join(dir, "empty.pdf")
	if err := doc.Save(out); !errors.Is(err, ErrNoPages) {
		t.Errorf("Save() of empty document error = %v, want ErrNoPages", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Error("Save() of empty document created a file")
	}
}

func TestOutputDocument_SaveUnwritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var doc OutputDocument
	if _, err := doc.AppendFile(writePDF(t, dir, "a.pdf", 1, 100, 100)); err != nil {
		t.Fatal(err)
	}

	// A regular file where a parent directory is expected.
	blocker := writeFile(t, dir, "blocker", []byte("x"))
	err := doc.Save(filepath.Join(blocker, "out.pdf"))
	if !errors.Is(err, ErrWriteOutput) {
		t.Errorf("Save() error = %v, want ErrWriteOutput", err)
	}
}

// ---------------------------------------------------------------------------
// TestFirstPageSize - Visible page area
// ---------------------------------------------------------------------------

func TestFirstPageSize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := writePDF(t, dir, "plain.pdf", 2, 595, 842)

	cropped := filepath.Join(dir, "cropped.pdf")
	pb, err := api.PageBoundaries("crop:[0 0 300 200]", types.POINTS)
	if err != nil {
		t.Fatal(err)
	}
	if err := api.AddBoxesFile(plain, cropped, nil, pb, nil); err != nil {
		t.Fatalf("adding crop box: %v", err)
	}

	tests := []struct {
		name string
		path string
		want Dimension
	}{
		{name: "media box when no crop box", path: plain, want: FromPoints(595, 842)},
		{name: "crop box wins over media box", path: cropped, want: FromPoints(300, 200)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := firstPageSize(tt.path)
			if err != nil {
				t.Fatalf("firstPageSize() unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("firstPageSize() = %s, want %s", got.Format(UnitPoint), tt.want.Format(UnitPoint))
			}
		})
	}
}

func TestFirstPageSize_Unreadable(t *testing.T) {
	t.Parallel()

	bad := writeFile(t, t.TempDir(), "bad.pdf", []byte("not a pdf"))
	if _, err := firstPageSize(bad); !errors.Is(err, ErrReadSource) {
		t.Errorf("firstPageSize() error = %v, want ErrReadSource", err)
	}
}
