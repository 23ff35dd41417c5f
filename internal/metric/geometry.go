package metric

import (
	"math"

	"github.com/kozaktomas/physiognomy/internal/landmark"
)

// Distance returns the Euclidean distance between two named points, or 0
// if either point is missing.
func Distance(set landmark.Set, a, b string) float64 {
	p1, ok1 := set.Lookup(a)
	p2, ok2 := set.Lookup(b)
	if !ok1 || !ok2 {
		return 0
	}
	return math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// AngleAtVertex returns the absolute angle in degrees at vertex b between
// the vectors b->a and b->c, computed as the difference of their atan2
// angles. The result is not folded into [0, 180].
// Returns fallback if any of the three points is missing.
func AngleAtVertex(set landmark.Set, a, b, c string, fallback float64) float64 {
	pa, okA := set.Lookup(a)
	pb, okB := set.Lookup(b)
	pc, okC := set.Lookup(c)
	if !okA || !okB || !okC {
		return fallback
	}

	v1x, v1y := pa.X-pb.X, pa.Y-pb.Y
	v2x, v2y := pc.X-pb.X, pc.Y-pb.Y
	rad := math.Atan2(v2y, v2x) - math.Atan2(v1y, v1x)
	return math.Abs(degrees(rad))
}

// yOr returns the y coordinate of a point, or def when it is missing.
func yOr(set landmark.Set, name string, def float64) float64 {
	if p, ok := set.Lookup(name); ok {
		return p.Y
	}
	return def
}

// ratio divides num by den, returning 0 when den is not positive.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
