package overlay

import "github.com/kozaktomas/physiognomy/internal/landmark"

// Dot radii in pixels.
const (
	RadiusThirds = 5
	RadiusBrow   = 4
	RadiusPoint  = 3
)

// Dot is one marker drawn on the overlay.
type Dot struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius"`
}

// Dots selects the representative points of the facial thirds and the five
// features. Contours and derived points are not drawn; a pair whose partner
// is missing contributes nothing.
func Dots(points []landmark.Landmark) []Dot {
	set := landmark.Build(points)
	var dots []Dot
	add := func(p landmark.Landmark, r int) {
		dots = append(dots, Dot{X: int(p.X), Y: int(p.Y), Radius: r})
	}

	for _, name := range []string{landmark.Hair, landmark.Glabella, landmark.NoseBase, landmark.Chin} {
		if p, ok := set.Lookup(name); ok {
			add(p, RadiusThirds)
		}
	}

	eyes := [][2]string{
		{landmark.EyeOutLeft, landmark.EyeInLeft},
		{landmark.EyeInRight, landmark.EyeOutRight},
	}
	for _, pair := range eyes {
		a, okA := set.Lookup(pair[0])
		b, okB := set.Lookup(pair[1])
		if !okA || !okB {
			continue
		}
		add(a, RadiusPoint)
		add(b, RadiusPoint)
		add(landmark.Midpoint("", a, b), RadiusPoint)
	}

	brows := [][2]string{
		{landmark.BrowStartLeft, landmark.BrowEndLeft},
		{landmark.BrowStartRight, landmark.BrowEndRight},
	}
	for _, pair := range brows {
		a, okA := set.Lookup(pair[0])
		b, okB := set.Lookup(pair[1])
		if okA && okB {
			add(landmark.Midpoint("", a, b), RadiusBrow)
		}
	}

	for _, name := range []string{landmark.NoseTop, landmark.NoseLeft, landmark.NoseRight, landmark.NoseBase, landmark.MouthLeft, landmark.MouthRight} {
		if p, ok := set.Lookup(name); ok {
			add(p, RadiusPoint)
		}
	}
	return dots
}
