package stitch

// Notes:
// - ParseDimension: covers paper names, unit inference, comma decimals and
//   every rejection path; all errors must wrap ErrParse.
// - Rect: Inset and Fit are checked on exact values, Fit also for centering.

import (
	"errors"
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseDimension - Text to points
// ---------------------------------------------------------------------------

func TestParseDimension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		wantH float64
		wantV float64
	}{
		{name: "paper A4", input: "A4", wantH: 595, wantV: 842},
		{name: "paper letter lowercase", input: "letter", wantH: 612, wantV: 792},
		{name: "paper landscape suffix", input: "a4-L", wantH: 842, wantV: 595},
		{name: "paper with spaces", input: "  Letter ", wantH: 612, wantV: 792},
		{name: "single scalar points", input: "10", wantH: 10, wantV: 10},
		{name: "single scalar with unit", input: "1in", wantH: 72, wantV: 72},
		{name: "pair in points", input: "100 x 200", wantH: 100, wantV: 200},
		{name: "explicit pt", input: "100pt x 200pt", wantH: 100, wantV: 200},
		{name: "inches", input: "1inch x 2inch", wantH: 72, wantV: 144},
		{name: "inch quote", input: `1" x 2"`, wantH: 72, wantV: 144},
		{name: "centimeters", input: "2.54cm x 5.08cm", wantH: 72, wantV: 144},
		{name: "millimeters uppercase", input: "25.4MM X 50.8MM", wantH: 72, wantV: 144},
		{name: "unit only on right", input: "1 x 2in", wantH: 72, wantV: 144},
		{name: "unit only on left", input: "1in x 2", wantH: 72, wantV: 144},
		{name: "comma decimal", input: "2,54cm", wantH: 72, wantV: 72},
		{name: "leading dot", input: ".5in", wantH: 36, wantV: 36},
		{name: "zero", input: "0", wantH: 0, wantV: 0},
		{name: "space before unit", input: "2.54 cm x 5.08 cm", wantH: 72, wantV: 144},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := ParseDimension(tt.input)
			if err != nil {
				t.Fatalf("ParseDimension(%q) unexpected error: %v", tt.input, err)
			}
			h, v := d.Points()
			if !approx(h, tt.wantH) || !approx(v, tt.wantV) {
				t.Errorf("ParseDimension(%q) = %gx%g, want %gx%g", tt.input, h, v, tt.wantH, tt.wantV)
			}
		})
	}
}

func TestParseDimension_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "blank", input: "   "},
		{name: "three parts", input: "1x2x3"},
		{name: "mixed units", input: "1cm x 2in"},
		{name: "unknown unit", input: "3furlongs"},
		{name: "no numeric value", input: "cm"},
		{name: "negative value", input: "-5mm"},
		{name: "space inside number", input: "1 0"},
		{name: "space after decimal comma", input: "2, 5cm"},
		{name: "space before decimal dot", input: "1 .5in x 2in"},
		{name: "unknown paper", input: "a42"},
		{name: "empty side", input: "10x"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDimension(tt.input)
			if !errors.Is(err, ErrParse) {
				t.Errorf("ParseDimension(%q) error = %v, want ErrParse", tt.input, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDimension_Format - Round trip and unit conversion
// ---------------------------------------------------------------------------

func TestDimension_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dim  func() Dimension
		unit Unit
		want string
	}{
		{
			name: "default keeps parsed text",
			dim:  func() Dimension { return mustParse("21cm x 29.7cm") },
			unit: UnitDefault,
			want: "21cm x 29.7cm",
		},
		{
			name: "default keeps paper name",
			dim:  func() Dimension { return mustParse("A4") },
			unit: UnitDefault,
			want: "A4",
		},
		{
			name: "computed value falls back to its unit",
			dim:  func() Dimension { return FromPoints(10, 20) },
			unit: UnitDefault,
			want: "10pt x 20pt",
		},
		{
			name: "convert to inches",
			dim:  func() Dimension { return FromPoints(72, 144) },
			unit: UnitInch,
			want: "1inch x 2inch",
		},
		{
			name: "convert to millimeters",
			dim:  func() Dimension { return mustParse("1in") },
			unit: UnitMillimeter,
			want: "25.4mm x 25.4mm",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.dim().Format(tt.unit); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDimension_TextRoundTrip(t *testing.T) {
	t.Parallel()

	var d Dimension
	if err := d.UnmarshalText([]byte("1cm x 2cm")); err != nil {
		t.Fatalf("UnmarshalText() unexpected error: %v", err)
	}
	out, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() unexpected error: %v", err)
	}
	if string(out) != "1cm x 2cm" {
		t.Errorf("MarshalText() = %q, want %q", out, "1cm x 2cm")
	}
	if d.Unit() != UnitCentimeter {
		t.Errorf("Unit() = %v, want cm", d.Unit())
	}
}

// ---------------------------------------------------------------------------
// TestDimension_Arithmetic - Point arithmetic
// ---------------------------------------------------------------------------

func TestDimension_Arithmetic(t *testing.T) {
	t.Parallel()

	a := MustDimension(1, 2, UnitInch)
	b := FromPoints(10, 20)

	if got := a.Add(b); !got.Equal(FromPoints(82, 164)) {
		t.Errorf("Add() = %v, want 82x164", got.Format(UnitPoint))
	}
	if got := a.Sub(b); !got.Equal(FromPoints(62, 124)) {
		t.Errorf("Sub() = %v, want 62x124", got.Format(UnitPoint))
	}
	if got := b.Neg(); !got.Equal(FromPoints(-10, -20)) {
		t.Errorf("Neg() = %v, want -10x-20", got.Format(UnitPoint))
	}
	if h, v := a.In(UnitCentimeter); !approx(h, 2.54) || !approx(v, 5.08) {
		t.Errorf("In(cm) = %gx%g, want 2.54x5.08", h, v)
	}
}

func TestNewDimension_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		h, v float64
	}{
		{name: "negative horizontal", h: -1, v: 1},
		{name: "negative vertical", h: 1, v: -1},
		{name: "NaN", h: math.NaN(), v: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewDimension(tt.h, tt.v, UnitPoint); !errors.Is(err, ErrParse) {
				t.Errorf("NewDimension(%g, %g) error = %v, want ErrParse", tt.h, tt.v, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRect - Inset and Fit
// ---------------------------------------------------------------------------

func TestRect_Inset(t *testing.T) {
	t.Parallel()

	r := FromPoints(100, 200).Rect().Inset(FromPoints(10, 20))
	want := Rect{X0: 10, Y0: 20, X1: 90, Y1: 180}
	if r != want {
		t.Errorf("Inset() = %+v, want %+v", r, want)
	}
	if r.Empty() {
		t.Error("Inset() result should not be empty")
	}

	if !FromPoints(100, 100).Rect().Inset(FromPoints(50, 10)).Empty() {
		t.Error("Inset() consuming the full width should be empty")
	}
}

func TestRect_Fit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		box  Rect
		w, h float64
		want Rect
	}{
		{
			name: "wide image in square box",
			box:  Rect{X1: 100, Y1: 100},
			w:    200, h: 100,
			want: Rect{X0: 0, Y0: 25, X1: 100, Y1: 75},
		},
		{
			name: "tall image in square box",
			box:  Rect{X1: 100, Y1: 100},
			w:    50, h: 100,
			want: Rect{X0: 25, Y0: 0, X1: 75, Y1: 100},
		},
		{
			name: "small image is scaled up",
			box:  Rect{X0: 10, Y0: 10, X1: 110, Y1: 60},
			w:    2, h: 1,
			want: Rect{X0: 10, Y0: 10, X1: 110, Y1: 60},
		},
		{
			name: "degenerate image collapses to center",
			box:  Rect{X1: 100, Y1: 100},
			w:    0, h: 10,
			want: Rect{X0: 50, Y0: 50, X1: 50, Y1: 50},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.box.Fit(tt.w, tt.h)
			if !approx(got.X0, tt.want.X0) || !approx(got.Y0, tt.want.Y0) ||
				!approx(got.X1, tt.want.X1) || !approx(got.Y1, tt.want.Y1) {
				t.Errorf("Fit(%g, %g) = %+v, want %+v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestPaperSizes(t *testing.T) {
	t.Parallel()

	names := PaperSizes()
	if len(names) != len(paperSizes) {
		t.Fatalf("PaperSizes() returned %d names, want %d", len(names), len(paperSizes))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("PaperSizes() not sorted at %d: %q > %q", i, names[i-1], names[i])
		}
	}
}

func mustParse(s string) Dimension {
	d, err := ParseDimension(s)
	if err != nil {
		panic(err)
	}
	return d
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
