package landmark

import (
	"errors"
	"fmt"
)

// ErrInvalidMesh is returned when a face mesh cannot be mapped to pixels.
var ErrInvalidMesh = errors.New("invalid face mesh")

// MeshPoint is one face-mesh vertex in relative (0-1) image coordinates.
type MeshPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// meshIndex binds a face-mesh vertex index to a landmark name.
type meshIndex struct {
	Index int
	Name  string
}

// meshNames lists the mesh vertices exported as named landmarks, in output order.
var meshNames = []meshIndex{
	{10, Hair},
	{70, BrowStartLeft},
	{300, BrowStartRight},
	{105, BrowEndLeft},
	{334, BrowEndRight},
	{133, EyeInLeft},
	{362, EyeInRight},
	{33, EyeOutLeft},
	{263, EyeOutRight},
	{2, NoseBase},
	{6, NoseTop},
	{61, MouthLeft},
	{291, MouthRight},
	{152, Chin},
	{234, EarLeft},
	{454, EarRight},
	{159, NoseLeft},
	{386, NoseRight},
	{168, GonionLeft},
	{197, GonionRight},
}

// Glabella is derived from these two vertices instead of being read directly.
const (
	meshBrowStartLeft  = 70
	meshBrowStartRight = 300
)

// ToPixel converts a relative coordinate to whole pixels, truncating toward zero.
func ToPixel(rel float64, size int) float64 {
	return float64(int(rel * float64(size)))
}

// FromMesh converts a face-mesh dump in relative coordinates into named pixel
// landmarks for an image of the given size.
//
// The glabella is the midpoint of the two brow-start vertices and comes first.
// Vertices missing from a short mesh are skipped. An empty mesh yields no
// landmarks and no error; the caller decides whether that means "no face".
func FromMesh(mesh []MeshPoint, width, height int) ([]Landmark, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrInvalidMesh, width, height)
	}
	if len(mesh) == 0 {
		return nil, nil
	}

	out := make([]Landmark, 0, len(meshNames)+1)

	if meshBrowStartLeft < len(mesh) && meshBrowStartRight < len(mesh) {
		l, r := mesh[meshBrowStartLeft], mesh[meshBrowStartRight]
		out = append(out, Landmark{
			Name: Glabella,
			X:    ToPixel((l.X+r.X)/2, width),
			Y:    ToPixel((l.Y+r.Y)/2, height),
		})
	}

	for _, m := range meshNames {
		if m.Index >= len(mesh) {
			continue
		}
		p := mesh[m.Index]
		out = append(out, Landmark{
			Name: m.Name,
			X:    ToPixel(p.X, width),
			Y:    ToPixel(p.Y, height),
		})
	}
	return out, nil
}

// Midpoint returns the point halfway between a and b under the given name.
func Midpoint(name string, a, b Landmark) Landmark {
	return Landmark{Name: name, X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Scale multiplies every coordinate by factor. Used when an image is resized
// after the landmarks were detected on the original.
func Scale(points []Landmark, factor float64) []Landmark {
	out := make([]Landmark, len(points))
	for i, p := range points {
		out[i] = Landmark{Name: p.Name, X: p.X * factor, Y: p.Y * factor}
	}
	return out
}
