package cinderbox2d

// A line segment (edge) shape. These can be connected in chains or loops to
// other edge shapes. The optional adjacent vertices are used for smooth
// collision: the connectivity information constrains the contact normal.
type CB2EdgeShape struct {
	CB2Shape

	// The edge vertices.
	Vertex1, Vertex2 CB2Vec2

	// Optional adjacent vertices.
	Vertex0, Vertex3       CB2Vec2
	HasVertex0, HasVertex3 bool
}

func MakeCB2EdgeShape() CB2EdgeShape {
	return CB2EdgeShape{
		CB2Shape: CB2Shape{shapeType: CB2Shape_Edge, radius: CB2_polygonRadius},
	}
}

func NewCB2EdgeShape() *CB2EdgeShape {
	res := MakeCB2EdgeShape()
	return &res
}

// Set the edge as an isolated segment.
func (shape *CB2EdgeShape) Set(v1, v2 CB2Vec2) {
	shape.Vertex1 = v1
	shape.Vertex2 = v2
	shape.HasVertex0 = false
	shape.HasVertex3 = false
}

func (shape *CB2EdgeShape) Clone() CB2ShapeInterface {
	clone := NewCB2EdgeShape()
	clone.Vertex0 = shape.Vertex0
	clone.Vertex1 = shape.Vertex1
	clone.Vertex2 = shape.Vertex2
	clone.Vertex3 = shape.Vertex3
	clone.HasVertex0 = shape.HasVertex0
	clone.HasVertex3 = shape.HasVertex3
	return clone
}

func (shape *CB2EdgeShape) GetChildCount() int {
	return 1
}

func (shape *CB2EdgeShape) TestPoint(xf CB2Transform, p CB2Vec2) bool {
	return false
}

// p = p1 + t * d
// v = v1 + s * e
// p1 + t * d = v1 + s * e
// s * e - t * d = p1 - v1
func (shape *CB2EdgeShape) RayCast(output *CB2RayCastOutput, input CB2RayCastInput, xf CB2Transform, childIndex int) bool {
	// Put the ray into the edge's frame of reference.
	p1 := CB2MulTRotVec2(xf.Q, input.P1.Sub(xf.P))
	p2 := CB2MulTRotVec2(xf.Q, input.P2.Sub(xf.P))
	d := p2.Sub(p1)

	v1 := shape.Vertex1
	v2 := shape.Vertex2
	e := v2.Sub(v1)
	normal := MakeCB2Vec2(e.Y, -e.X)
	normal.Normalize()

	// q = p1 + t * d
	// dot(normal, q - v1) = 0
	// dot(normal, p1 - v1) + t * dot(normal, d) = 0
	numerator := normal.Dot(v1.Sub(p1))
	denominator := normal.Dot(d)

	if denominator == 0.0 {
		return false
	}

	t := numerator / denominator
	if t < 0.0 || input.MaxFraction < t {
		return false
	}

	q := p1.Add(d.Scale(t))

	// q = v1 + s * r
	// s = dot(q - v1, r) / dot(r, r)
	r := v2.Sub(v1)
	rr := r.Dot(r)
	if rr == 0.0 {
		return false
	}

	s := q.Sub(v1).Dot(r) / rr
	if s < 0.0 || 1.0 < s {
		return false
	}

	output.Fraction = t
	if numerator > 0.0 {
		output.Normal = CB2MulRotVec2(xf.Q, normal).Neg()
	} else {
		output.Normal = CB2MulRotVec2(xf.Q, normal)
	}
	return true
}

func (shape *CB2EdgeShape) ComputeAABB(aabb *CB2AABB, xf CB2Transform, childIndex int) {
	v1 := CB2MulTransformVec2(xf, shape.Vertex1)
	v2 := CB2MulTransformVec2(xf, shape.Vertex2)

	lower := CB2MinVec2(v1, v2)
	upper := CB2MaxVec2(v1, v2)

	r := MakeCB2Vec2(shape.radius, shape.radius)
	aabb.LowerBound = lower.Sub(r)
	aabb.UpperBound = upper.Add(r)
}

func (shape *CB2EdgeShape) ComputeMass(massData *CB2MassData, density float64) {
	massData.Mass = 0.0
	massData.Center = shape.Vertex1.Add(shape.Vertex2).Scale(0.5)
	massData.I = 0.0
}
