package mapitem

import "fmt"

// Rect is a half-open rectangle [Begin, End) in world coordinates.
type Rect struct {
	BeginX, BeginZ int
	EndX, EndZ     int
}

func (r Rect) Empty() bool {
	return r.BeginX >= r.EndX || r.BeginZ >= r.EndZ
}

func (r Rect) Dx() int { return r.EndX - r.BeginX }
func (r Rect) Dz() int { return r.EndZ - r.BeginZ }

func (r Rect) Contains(x, z int) bool {
	return r.BeginX <= x && x < r.EndX && r.BeginZ <= z && z < r.EndZ
}

// Intersect returns the largest rectangle contained by both r and s. The
// result is empty when they do not overlap.
func (r Rect) Intersect(s Rect) Rect {
	result := Rect{
		BeginX: max(r.BeginX, s.BeginX),
		BeginZ: max(r.BeginZ, s.BeginZ),
		EndX:   min(r.EndX, s.EndX),
		EndZ:   min(r.EndZ, s.EndZ),
	}
	if result.Empty() {
		return Rect{}
	}
	return result
}

// Union returns the smallest rectangle containing both r and s. Empty
// rectangles are ignored.
func (r Rect) Union(s Rect) Rect {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	return Rect{
		BeginX: min(r.BeginX, s.BeginX),
		BeginZ: min(r.BeginZ, s.BeginZ),
		EndX:   max(r.EndX, s.EndX),
		EndZ:   max(r.EndZ, s.EndZ),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[(%d,%d)-(%d,%d)]", r.BeginX, r.BeginZ, r.EndX, r.EndZ)
}
