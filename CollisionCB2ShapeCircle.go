package cinderbox2d

import "math"

// A circle shape.
type CB2CircleShape struct {
	CB2Shape

	// Position relative to the body origin.
	P CB2Vec2
}

func MakeCB2CircleShape() CB2CircleShape {
	return CB2CircleShape{
		CB2Shape: CB2Shape{shapeType: CB2Shape_Circle, radius: 0.0},
	}
}

func NewCB2CircleShape() *CB2CircleShape {
	res := MakeCB2CircleShape()
	return &res
}

func (shape *CB2CircleShape) SetRadius(r float64) {
	shape.radius = r
}

func (shape *CB2CircleShape) Clone() CB2ShapeInterface {
	clone := NewCB2CircleShape()
	clone.radius = shape.radius
	clone.P = shape.P
	return clone
}

func (shape *CB2CircleShape) GetChildCount() int {
	return 1
}

func (shape *CB2CircleShape) TestPoint(xf CB2Transform, p CB2Vec2) bool {
	center := xf.P.Add(CB2MulRotVec2(xf.Q, shape.P))
	d := p.Sub(center)
	return d.Dot(d) <= shape.radius*shape.radius
}

// Collision Detection in Interactive 3D Environments by Gino van den Bergen,
// section 3.1.2:
//   x = s + a * r
//   norm(x) = radius
func (shape *CB2CircleShape) RayCast(output *CB2RayCastOutput, input CB2RayCastInput, xf CB2Transform, childIndex int) bool {
	position := xf.P.Add(CB2MulRotVec2(xf.Q, shape.P))
	s := input.P1.Sub(position)
	b := s.Dot(s) - shape.radius*shape.radius

	// Solve quadratic equation.
	r := input.P2.Sub(input.P1)
	c := s.Dot(r)
	rr := r.Dot(r)
	sigma := c*c - rr*b

	// Check for negative discriminant and short segment.
	if sigma < 0.0 || rr < CB2_epsilon {
		return false
	}

	// Find the point of intersection of the line with the circle.
	a := -(c + math.Sqrt(sigma))

	// Is the intersection point on the segment?
	if 0.0 <= a && a <= input.MaxFraction*rr {
		a /= rr
		output.Fraction = a
		output.Normal = s.Add(r.Scale(a))
		output.Normal.Normalize()
		return true
	}

	return false
}

func (shape *CB2CircleShape) ComputeAABB(aabb *CB2AABB, xf CB2Transform, childIndex int) {
	p := xf.P.Add(CB2MulRotVec2(xf.Q, shape.P))
	aabb.LowerBound.Set(p.X-shape.radius, p.Y-shape.radius)
	aabb.UpperBound.Set(p.X+shape.radius, p.Y+shape.radius)
}

func (shape *CB2CircleShape) ComputeMass(massData *CB2MassData, density float64) {
	massData.Mass = density * CB2_pi * shape.radius * shape.radius
	massData.Center = shape.P

	// Inertia about the local origin.
	massData.I = massData.Mass * (0.5*shape.radius*shape.radius + shape.P.Dot(shape.P))
}
