package stitch

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Conversion factors to points.
const (
	PointsPerInch       = 72.0
	PointsPerCentimeter = PointsPerInch / 2.54
	PointsPerMillimeter = PointsPerInch / 25.4
)

// Unit is a physical length unit.
type Unit int

// Supported units. UnitDefault is only meaningful for Dimension.Format,
// where it selects the unit the dimension was expressed in.
const (
	UnitDefault Unit = iota
	UnitPoint
	UnitMillimeter
	UnitCentimeter
	UnitInch
)

// ParseUnit resolves a unit token (case-insensitive). An empty token means points.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pt":
		return UnitPoint, nil
	case "mm":
		return UnitMillimeter, nil
	case "cm":
		return UnitCentimeter, nil
	case "inch", "in", `"`:
		return UnitInch, nil
	}
	return UnitDefault, fmt.Errorf("%w: unknown unit %q (use pt, mm, cm or inch)", ErrParse, s)
}

// String returns the canonical token for the unit.
func (u Unit) String() string {
	switch u {
	case UnitPoint:
		return "pt"
	case UnitMillimeter:
		return "mm"
	case UnitCentimeter:
		return "cm"
	case UnitInch:
		return "inch"
	}
	return ""
}

// points returns how many points one unit is worth.
func (u Unit) points() float64 {
	switch u {
	case UnitMillimeter:
		return PointsPerMillimeter
	case UnitCentimeter:
		return PointsPerCentimeter
	case UnitInch:
		return PointsPerInch
	}
	return 1
}

// Dimension is an immutable physical 2-D size, stored in points.
// The zero value is a 0x0 point dimension.
type Dimension struct {
	h, v float64
	unit Unit   // unit the value was expressed in
	text string // source text when parsed, empty when computed
}

// NewDimension creates a Dimension from values expressed in unit.
func NewDimension(horizontal, vertical float64, unit Unit) (Dimension, error) {
	if unit == UnitDefault {
		unit = UnitPoint
	}
	if unit.String() == "" {
		return Dimension{}, fmt.Errorf("%w: unknown unit %d", ErrParse, int(unit))
	}
	if horizontal < 0 || vertical < 0 || math.IsNaN(horizontal) || math.IsNaN(vertical) {
		return Dimension{}, fmt.Errorf("%w: negative or invalid value %gx%g", ErrParse, horizontal, vertical)
	}
	f := unit.points()
	return Dimension{h: horizontal * f, v: vertical * f, unit: unit}, nil
}

// MustDimension is like NewDimension but panics on error.
// Intended for constants and tests.
func MustDimension(horizontal, vertical float64, unit Unit) Dimension {
	d, err := NewDimension(horizontal, vertical, unit)
	if err != nil {
		panic("stitch: " + err.Error())
	}
	return d
}

// FromPoints converts a raw number pair, taken as points.
func FromPoints(horizontal, vertical float64) Dimension {
	return Dimension{h: horizontal, v: vertical, unit: UnitPoint}
}

// valuePattern matches the numeric part of one side. Comma is a decimal separator.
var valuePattern = regexp.MustCompile(`[0-9]+(?:[.,][0-9]*)?|[.,][0-9]+`)

// splitNumberPattern finds whitespace inside a number, as in "1 0".
var splitNumberPattern = regexp.MustCompile(`[0-9.,]\s+[0-9.,]`)

// ParseDimension parses a named paper size ("A4", "letter", "a4-l") or a
// "<value><unit> x <value><unit>" expression. Case is ignored, as is
// whitespace around "x" and between a value and its unit; a number may not
// contain whitespace.
// A single value applies to both axes. A side without unit takes the unit of
// the other side; both omitted means points.
func ParseDimension(text string) (Dimension, error) {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), ""))
	if normalized == "" {
		return Dimension{}, fmt.Errorf("%w: empty value", ErrParse)
	}

	if d, ok := lookupPaperSize(normalized); ok {
		d.text = strings.TrimSpace(text)
		return d, nil
	}
	if splitNumberPattern.MatchString(text) {
		return Dimension{}, fmt.Errorf("%w: %q has whitespace inside a number", ErrParse, text)
	}

	parts := strings.Split(normalized, "x")
	if len(parts) > 2 {
		return Dimension{}, fmt.Errorf("%w: %q has more than two parts", ErrParse, text)
	}

	sides := make([]side, len(parts))
	for i, p := range parts {
		s, err := parseSide(p)
		if err != nil {
			return Dimension{}, fmt.Errorf("%w (in %q)", err, text)
		}
		sides[i] = s
	}
	if len(sides) == 1 {
		sides = append(sides, sides[0])
	}

	unit, err := commonUnit(sides[0], sides[1])
	if err != nil {
		return Dimension{}, fmt.Errorf("%w (in %q)", err, text)
	}

	d, err := NewDimension(sides[0].value, sides[1].value, unit)
	if err != nil {
		return Dimension{}, err
	}
	d.text = strings.TrimSpace(text)
	return d, nil
}

// side is one parsed axis of a dimension expression.
type side struct {
	value    float64
	unit     Unit
	explicit bool
}

func parseSide(s string) (side, error) {
	loc := valuePattern.FindStringIndex(s)
	if loc == nil {
		return side{}, fmt.Errorf("%w: no numeric value in %q", ErrParse, s)
	}
	if prefix := s[:loc[0]]; prefix != "" {
		if strings.HasSuffix(prefix, "-") {
			return side{}, fmt.Errorf("%w: negative value %q", ErrParse, s)
		}
		return side{}, fmt.Errorf("%w: unexpected %q before value", ErrParse, prefix)
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(s[loc[0]:loc[1]], ",", "."), 64)
	if err != nil {
		return side{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	token := s[loc[1]:]
	unit, err := ParseUnit(token)
	if err != nil {
		return side{}, err
	}
	return side{value: value, unit: unit, explicit: token != ""}, nil
}

// commonUnit returns the shared unit of two sides. Units may only be
// omitted on one side, and explicit units must match.
func commonUnit(a, b side) (Unit, error) {
	switch {
	case a.explicit && b.explicit:
		if a.unit != b.unit {
			return UnitDefault, fmt.Errorf("%w: cannot mix units %s and %s", ErrParse, a.unit, b.unit)
		}
		return a.unit, nil
	case a.explicit:
		return a.unit, nil
	case b.explicit:
		return b.unit, nil
	}
	return UnitPoint, nil
}

// Points returns the horizontal and vertical components in points.
func (d Dimension) Points() (horizontal, vertical float64) {
	return d.h, d.v
}

// Width returns the horizontal component in points.
func (d Dimension) Width() float64 { return d.h }

// Height returns the vertical component in points.
func (d Dimension) Height() float64 { return d.v }

// Unit returns the unit the dimension was expressed in.
func (d Dimension) Unit() Unit {
	if d.unit == UnitDefault {
		return UnitPoint
	}
	return d.unit
}

// In returns both components converted to unit.
// UnitDefault converts to the unit the dimension was expressed in.
func (d Dimension) In(unit Unit) (horizontal, vertical float64) {
	if unit == UnitDefault {
		unit = d.Unit()
	}
	f := unit.points()
	return d.h / f, d.v / f
}

// Format renders the dimension in unit, e.g. "21cm x 29.7cm".
// With UnitDefault the parsed source text is returned unchanged, so that
// configuration values survive a load/save cycle.
func (d Dimension) Format(unit Unit) string {
	if unit == UnitDefault {
		if d.text != "" {
			return d.text
		}
		unit = d.Unit()
	}
	h, v := d.In(unit)
	u := unit.String()
	return formatValue(h) + u + " x " + formatValue(v) + u
}

// String implements fmt.Stringer.
func (d Dimension) String() string {
	return d.Format(UnitDefault)
}

// MarshalText implements encoding.TextMarshaler.
func (d Dimension) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dimension) UnmarshalText(text []byte) error {
	parsed, err := ParseDimension(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Add returns d + o in points.
func (d Dimension) Add(o Dimension) Dimension {
	return FromPoints(d.h+o.h, d.v+o.v)
}

// Sub returns d - o in points. The result may be negative.
func (d Dimension) Sub(o Dimension) Dimension {
	return FromPoints(d.h-o.h, d.v-o.v)
}

// Neg returns -d in points.
func (d Dimension) Neg() Dimension {
	return FromPoints(-d.h, -d.v)
}

// Equal reports whether both components match within a small tolerance.
func (d Dimension) Equal(o Dimension) bool {
	const epsilon = 1e-6
	return math.Abs(d.h-o.h) < epsilon && math.Abs(d.v-o.v) < epsilon
}

// Rect returns the rectangle with origin (0,0) and size d.
func (d Dimension) Rect() Rect {
	return Rect{X1: d.h, Y1: d.v}
}

// formatValue renders a number with at most four decimals and no trailing zeros.
func formatValue(f float64) string {
	return strconv.FormatFloat(math.Round(f*1e4)/1e4, 'f', -1, 64)
}

// Rect is an axis-aligned rectangle in points.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Size returns the rectangle extent as a Dimension.
func (r Rect) Size() Dimension { return FromPoints(r.Width(), r.Height()) }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Inset applies a symmetric margin: the origin moves by the margin and the
// far corner shrinks by the same amount.
func (r Rect) Inset(margin Dimension) Rect {
	mh, mv := margin.Points()
	return Rect{X0: r.X0 + mh, Y0: r.Y0 + mv, X1: r.X1 - mh, Y1: r.Y1 - mv}
}

// Fit returns the largest rectangle with the aspect ratio w:h that fits in r,
// centered in r. A degenerate source size yields an empty rectangle at the center.
func (r Rect) Fit(w, h float64) Rect {
	cx, cy := r.X0+r.Width()/2, r.Y0+r.Height()/2
	if w <= 0 || h <= 0 || r.Empty() {
		return Rect{X0: cx, Y0: cy, X1: cx, Y1: cy}
	}
	scale := math.Min(r.Width()/w, r.Height()/h)
	fw, fh := w*scale, h*scale
	return Rect{X0: cx - fw/2, Y0: cy - fh/2, X1: cx + fw/2, Y1: cy + fh/2}
}
