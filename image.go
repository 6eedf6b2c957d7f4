package stitch

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"os"

	"github.com/jung-kurt/gofpdf"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ImageRenderer lays out one raster image on a page of its own.
type ImageRenderer interface {
	// RenderPage returns a single-page PDF of size page.Size() with the image
	// at path fitted inside page inset by margin.
	RenderPage(path string, page Rect, margin Dimension) ([]byte, error)
}

// GofpdfRenderer renders image pages with gofpdf.
// The zero value is ready to use.
type GofpdfRenderer struct{}

// RenderPage implements ImageRenderer.
// Returns ErrInvalidMargin if the margin leaves no room for the image and
// ErrReadSource if the image cannot be read or decoded.
func (GofpdfRenderer) RenderPage(path string, page Rect, margin Dimension) ([]byte, error) {
	content := page.Inset(margin)
	if content.Empty() {
		return nil, fmt.Errorf("%w: %s leaves no room on a %s page",
			ErrInvalidMargin, margin.Format(UnitDefault), page.Size().Format(UnitPoint))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadSource, path, err)
	}

	img, err := loadImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadSource, path, err)
	}

	box := content.Fit(float64(img.width), float64(img.height))

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: page.Width(), Ht: page.Height()},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opt := gofpdf.ImageOptions{ImageType: img.kind}
	pdf.RegisterImageOptionsReader("img", opt, bytes.NewReader(img.data))
	pdf.ImageOptions("img", box.X0-page.X0, box.Y0-page.Y0, box.Width(), box.Height(), false, opt, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %s: rendering page: %v", ErrReadSource, path, err)
	}
	return buf.Bytes(), nil
}

// embeddable is image data in a form gofpdf can embed.
type embeddable struct {
	data          []byte
	kind          string // "JPG" or "PNG"
	width, height int
}

// loadImage prepares raw file bytes for embedding. Baseline JPEG data is
// passed through; everything else is decoded and re-encoded as an 8-bit
// PNG, which also covers 16-bit and interlaced PNGs gofpdf cannot parse.
func loadImage(data []byte) (embeddable, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return embeddable{}, fmt.Errorf("decoding image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return embeddable{}, fmt.Errorf("image has no pixels")
	}

	if format == "jpeg" {
		if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
			return embeddable{}, fmt.Errorf("decoding jpeg: %w", err)
		}
		return embeddable{data: data, kind: "JPG", width: cfg.Width, height: cfg.Height}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return embeddable{}, fmt.Errorf("decoding %s: %w", format, err)
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return embeddable{}, fmt.Errorf("encoding png: %w", err)
	}
	return embeddable{data: buf.Bytes(), kind: "PNG", width: b.Dx(), height: b.Dy()}, nil
}
