// Package physics provides field geometry and hit-test helpers.
package physics

import "math"

// Point is a position in field coordinates.
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
// The boundary counts as inside.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// Dist returns the distance from p to q.
func (p Point) Dist(q Point) float64 {
	return Distance(p.X, p.Y, q.X, q.Y)
}

// Lerp moves p toward q by factor alpha (0 keeps p, 1 lands on q).
func (p Point) Lerp(q Point, alpha float64) Point {
	return Point{
		X: p.X + alpha*(q.X-p.X),
		Y: p.Y + alpha*(q.Y-p.Y),
	}
}
