package stitch

import (
	"sort"
	"strings"
)

// paperSizes maps lowercase paper names to portrait sizes in points.
var paperSizes = map[string][2]float64{
	"a0": {2384, 3370}, "a1": {1684, 2384}, "a2": {1191, 1684}, "a3": {842, 1191},
	"a4": {595, 842}, "a5": {420, 595}, "a6": {298, 420}, "a7": {210, 298},
	"a8": {147, 210}, "a9": {105, 147}, "a10": {74, 105},

	"b0": {2835, 4008}, "b1": {2004, 2835}, "b2": {1417, 2004}, "b3": {1001, 1417},
	"b4": {709, 1001}, "b5": {499, 709}, "b6": {354, 499}, "b7": {249, 354},
	"b8": {176, 249}, "b9": {125, 176}, "b10": {88, 125},

	"c0": {2599, 3677}, "c1": {1837, 2599}, "c2": {1298, 1837}, "c3": {918, 1298},
	"c4": {649, 918}, "c5": {459, 649}, "c6": {323, 459}, "c7": {230, 323},
	"c8": {162, 230}, "c9": {113, 162}, "c10": {79, 113},

	"letter":      {612, 792},
	"legal":       {612, 1008},
	"ledger":      {1224, 792},
	"tabloid":     {792, 1224},
	"executive":   {522, 756},
	"half-letter": {396, 612},
}

// lookupPaperSize resolves a normalized (lowercase, no whitespace) paper
// name. A "-l" or "-landscape" suffix swaps the axes.
func lookupPaperSize(name string) (Dimension, bool) {
	landscape := false
	for _, suffix := range []string{"-landscape", "-l"} {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			name, landscape = base, true
			break
		}
	}

	size, ok := paperSizes[name]
	if !ok {
		return Dimension{}, false
	}
	if landscape {
		size[0], size[1] = size[1], size[0]
	}
	return FromPoints(size[0], size[1]), true
}

// PaperSizes returns the supported paper size names, sorted.
func PaperSizes() []string {
	names := make([]string, 0, len(paperSizes))
	for name := range paperSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
