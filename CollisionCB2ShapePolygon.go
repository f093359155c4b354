package cinderbox2d

// A convex polygon. It is assumed that the interior of the polygon is to the
// left of each edge. Polygons have a maximum number of vertices equal to
// CB2_maxPolygonVertices. In most cases you should not need many vertices for
// a convex polygon.
type CB2PolygonShape struct {
	CB2Shape

	centroid CB2Vec2
	vertices [CB2_maxPolygonVertices]CB2Vec2
	normals  [CB2_maxPolygonVertices]CB2Vec2
	count    int
}

func MakeCB2PolygonShape() CB2PolygonShape {
	return CB2PolygonShape{
		CB2Shape: CB2Shape{shapeType: CB2Shape_Polygon, radius: CB2_polygonRadius},
	}
}

func NewCB2PolygonShape() *CB2PolygonShape {
	res := MakeCB2PolygonShape()
	return &res
}

func (shape *CB2PolygonShape) GetVertexCount() int {
	return shape.count
}

func (shape *CB2PolygonShape) GetVertex(index int) CB2Vec2 {
	CB2Assert(0 <= index && index < shape.count)
	return shape.vertices[index]
}

func (shape *CB2PolygonShape) GetNormal(index int) CB2Vec2 {
	CB2Assert(0 <= index && index < shape.count)
	return shape.normals[index]
}

func (shape *CB2PolygonShape) GetCentroid() CB2Vec2 {
	return shape.centroid
}

func (shape *CB2PolygonShape) Clone() CB2ShapeInterface {
	clone := NewCB2PolygonShape()
	clone.centroid = shape.centroid
	clone.vertices = shape.vertices
	clone.normals = shape.normals
	clone.count = shape.count
	return clone
}

func (shape *CB2PolygonShape) GetChildCount() int {
	return 1
}

// SetAsBox builds an axis-aligned box centered on the local origin.
func (shape *CB2PolygonShape) SetAsBox(hx, hy float64) {
	shape.count = 4
	shape.vertices[0].Set(-hx, -hy)
	shape.vertices[1].Set(hx, -hy)
	shape.vertices[2].Set(hx, hy)
	shape.vertices[3].Set(-hx, hy)
	shape.normals[0].Set(0.0, -1.0)
	shape.normals[1].Set(1.0, 0.0)
	shape.normals[2].Set(0.0, 1.0)
	shape.normals[3].Set(-1.0, 0.0)
	shape.centroid.SetZero()
}

// SetAsOrientedBox builds a box positioned and rotated in local coordinates.
func (shape *CB2PolygonShape) SetAsOrientedBox(hx, hy float64, center CB2Vec2, angle float64) {
	shape.SetAsBox(hx, hy)
	shape.centroid = center

	xf := MakeCB2TransformFromPositionAndAngle(center, angle)

	// Transform vertices and normals.
	for i := 0; i < shape.count; i++ {
		shape.vertices[i] = CB2MulTransformVec2(xf, shape.vertices[i])
		shape.normals[i] = CB2MulRotVec2(xf.Q, shape.normals[i])
	}
}

func cb2ComputeCentroid(vs []CB2Vec2, count int) CB2Vec2 {
	CB2Assert(count >= 3)

	var c CB2Vec2
	area := 0.0

	// pRef is the reference point for forming triangles. Its location does
	// not change the result, up to rounding error.
	var pRef CB2Vec2
	for i := 0; i < count; i++ {
		pRef = pRef.Add(vs[i])
	}
	pRef = pRef.Scale(1.0 / float64(count))

	const inv3 = 1.0 / 3.0

	for i := 0; i < count; i++ {
		// Triangle vertices.
		p1 := pRef
		p2 := vs[i]
		p3 := vs[0]
		if i+1 < count {
			p3 = vs[i+1]
		}

		e1 := p2.Sub(p1)
		e2 := p3.Sub(p1)

		triangleArea := 0.5 * e1.Cross(e2)
		area += triangleArea

		// Area weighted centroid.
		c = c.Add(p1.Add(p2).Add(p3).Scale(triangleArea * inv3))
	}

	CB2Assert(area > CB2_epsilon)
	return c.Scale(1.0 / area)
}

// Set builds a convex hull from the given points. The count must be in the
// range [3, CB2_maxPolygonVertices]. Points may be dropped if they are
// welded together or collinear, so the resulting polygon can have fewer
// vertices than supplied.
func (shape *CB2PolygonShape) Set(vertices []CB2Vec2) {
	count := len(vertices)
	CB2Assert(3 <= count && count <= CB2_maxPolygonVertices)

	n := CB2MinInt(count, CB2_maxPolygonVertices)

	// Perform welding and copy vertices into a local buffer.
	var ps [CB2_maxPolygonVertices]CB2Vec2
	tempCount := 0
	for i := 0; i < n; i++ {
		v := vertices[i]

		unique := true
		for j := 0; j < tempCount; j++ {
			if CB2DistanceSquared(v, ps[j]) < (0.5*CB2_linearSlop)*(0.5*CB2_linearSlop) {
				unique = false
				break
			}
		}

		if unique {
			ps[tempCount] = v
			tempCount++
		}
	}

	n = tempCount
	// Polygon is degenerate.
	CB2Assert(n >= 3)

	// Create the convex hull using the gift wrapping algorithm.

	// Find the right most point on the hull.
	i0 := 0
	x0 := ps[0].X
	for i := 1; i < n; i++ {
		x := ps[i].X
		if x > x0 || (x == x0 && ps[i].Y < ps[i0].Y) {
			i0 = i
			x0 = x
		}
	}

	var hull [CB2_maxPolygonVertices]int
	m := 0
	ih := i0

	for {
		CB2Assert(m < CB2_maxPolygonVertices)
		hull[m] = ih

		ie := 0
		for j := 1; j < n; j++ {
			if ie == ih {
				ie = j
				continue
			}

			r := ps[ie].Sub(ps[hull[m]])
			v := ps[j].Sub(ps[hull[m]])
			c := r.Cross(v)
			if c < 0.0 {
				ie = j
			}

			// Collinearity check.
			if c == 0.0 && v.LengthSquared() > r.LengthSquared() {
				ie = j
			}
		}

		m++
		ih = ie

		if ie == i0 {
			break
		}
	}

	CB2Assert(m >= 3)
	shape.count = m

	// Copy vertices.
	for i := 0; i < m; i++ {
		shape.vertices[i] = ps[hull[i]]
	}

	// Compute normals. Ensure the edges have non-zero length.
	for i := 0; i < m; i++ {
		i1 := i
		i2 := 0
		if i+1 < m {
			i2 = i + 1
		}
		edge := shape.vertices[i2].Sub(shape.vertices[i1])
		CB2Assert(edge.LengthSquared() > CB2_epsilon*CB2_epsilon)
		shape.normals[i] = CB2CrossVec2Scalar(edge, 1.0)
		shape.normals[i].Normalize()
	}

	// Compute the polygon centroid.
	shape.centroid = cb2ComputeCentroid(shape.vertices[:], m)
}

func (shape *CB2PolygonShape) TestPoint(xf CB2Transform, p CB2Vec2) bool {
	pLocal := CB2MulTRotVec2(xf.Q, p.Sub(xf.P))

	for i := 0; i < shape.count; i++ {
		dot := shape.normals[i].Dot(pLocal.Sub(shape.vertices[i]))
		if dot > 0.0 {
			return false
		}
	}

	return true
}

func (shape *CB2PolygonShape) RayCast(output *CB2RayCastOutput, input CB2RayCastInput, xf CB2Transform, childIndex int) bool {
	// Put the ray into the polygon's frame of reference.
	p1 := CB2MulTRotVec2(xf.Q, input.P1.Sub(xf.P))
	p2 := CB2MulTRotVec2(xf.Q, input.P2.Sub(xf.P))
	d := p2.Sub(p1)

	lower, upper := 0.0, input.MaxFraction

	index := -1

	for i := 0; i < shape.count; i++ {
		// p = p1 + a * d
		// dot(normal, p - v) = 0
		// dot(normal, p1 - v) + a * dot(normal, d) = 0
		numerator := shape.normals[i].Dot(shape.vertices[i].Sub(p1))
		denominator := shape.normals[i].Dot(d)

		if denominator == 0.0 {
			if numerator < 0.0 {
				return false
			}
		} else {
			// Note: we want this predicate without division:
			// lower < numerator / denominator, where denominator < 0
			// Since denominator < 0, we have to flip the inequality:
			// lower < numerator / denominator <==> denominator * lower > numerator.
			if denominator < 0.0 && numerator < lower*denominator {
				// Increase lower. The segment enters this half-space.
				lower = numerator / denominator
				index = i
			} else if denominator > 0.0 && numerator < upper*denominator {
				// Decrease upper. The segment exits this half-space.
				upper = numerator / denominator
			}
		}

		if upper < lower {
			return false
		}
	}

	CB2Assert(0.0 <= lower && lower <= input.MaxFraction)

	if index >= 0 {
		output.Fraction = lower
		output.Normal = CB2MulRotVec2(xf.Q, shape.normals[index])
		return true
	}

	return false
}

func (shape *CB2PolygonShape) ComputeAABB(aabb *CB2AABB, xf CB2Transform, childIndex int) {
	lower := CB2MulTransformVec2(xf, shape.vertices[0])
	upper := lower

	for i := 1; i < shape.count; i++ {
		v := CB2MulTransformVec2(xf, shape.vertices[i])
		lower = CB2MinVec2(lower, v)
		upper = CB2MaxVec2(upper, v)
	}

	r := MakeCB2Vec2(shape.radius, shape.radius)
	aabb.LowerBound = lower.Sub(r)
	aabb.UpperBound = upper.Add(r)
}

func (shape *CB2PolygonShape) ComputeMass(massData *CB2MassData, density float64) {
	// Polygon mass, centroid, and inertia.
	// Let rho be the polygon density in mass per unit area.
	// Then:
	//   mass = rho * int(dA)
	//   centroid.x = (1/mass) * rho * int(x * dA)
	//   centroid.y = (1/mass) * rho * int(y * dA)
	//   I = rho * int((x*x + y*y) * dA)
	// We can compute these integrals by summing all the integrals
	// for each triangle of the polygon.
	CB2Assert(shape.count >= 3)

	var center CB2Vec2
	area := 0.0
	I := 0.0

	// s is the reference point for forming triangles.
	// Its location does not change the result, up to rounding error.
	var s CB2Vec2
	for i := 0; i < shape.count; i++ {
		s = s.Add(shape.vertices[i])
	}
	s = s.Scale(1.0 / float64(shape.count))

	const inv3 = 1.0 / 3.0

	for i := 0; i < shape.count; i++ {
		// Triangle vertices.
		e1 := shape.vertices[i].Sub(s)
		var e2 CB2Vec2
		if i+1 < shape.count {
			e2 = shape.vertices[i+1].Sub(s)
		} else {
			e2 = shape.vertices[0].Sub(s)
		}

		D := e1.Cross(e2)

		triangleArea := 0.5 * D
		area += triangleArea

		// Area weighted centroid.
		center = center.Add(e1.Add(e2).Scale(triangleArea * inv3))

		ex1, ey1 := e1.X, e1.Y
		ex2, ey2 := e2.X, e2.Y

		intx2 := ex1*ex1 + ex2*ex1 + ex2*ex2
		inty2 := ey1*ey1 + ey2*ey1 + ey2*ey2

		I += (0.25 * inv3 * D) * (intx2 + inty2)
	}

	// Total mass.
	massData.Mass = density * area

	// Center of mass.
	CB2Assert(area > CB2_epsilon)
	center = center.Scale(1.0 / area)
	massData.Center = center.Add(s)

	// Inertia tensor relative to the local origin (point s).
	massData.I = density * I

	// Shift to center of mass then to original body origin.
	massData.I += massData.Mass * (massData.Center.Dot(massData.Center) - center.Dot(center))
}
