package cinderbox2d

// GJK distance between convex shapes, using Voronoi regions and barycentric
// coordinates. Used for the exact boolean overlap test that drives sensor
// contacts.

// A distance proxy encapsulates any shape for the GJK algorithm.
type CB2DistanceProxy struct {
	buffer   [2]CB2Vec2
	vertices []CB2Vec2
	count    int
	radius   float64
}

// Used to warm start CB2ShapeDistance. Set Count to zero on the first call.
type CB2SimplexCache struct {
	// Length or area of the last simplex.
	Metric float64
	Count  int
	// Vertex indices on each shape.
	IndexA [3]int
	IndexB [3]int
}

// Input for CB2ShapeDistance. The shape radii may optionally be included in
// the computation.
type CB2DistanceInput struct {
	ProxyA     CB2DistanceProxy
	ProxyB     CB2DistanceProxy
	TransformA CB2Transform
	TransformB CB2Transform
	UseRadii   bool
}

func MakeCB2DistanceInput() CB2DistanceInput {
	return CB2DistanceInput{}
}

// Output for CB2ShapeDistance.
type CB2DistanceOutput struct {
	// Closest point on shape A.
	PointA CB2Vec2
	// Closest point on shape B.
	PointB   CB2Vec2
	Distance float64
	// Number of GJK iterations used.
	Iterations int
}

// Set initializes the proxy using the given shape. The shape must remain in
// scope while the proxy is in use.
func (p *CB2DistanceProxy) Set(shape CB2ShapeInterface, index int) {
	switch shape.GetType() {
	case CB2Shape_Circle:
		circle := shape.(*CB2CircleShape)
		p.buffer[0] = circle.P
		p.vertices = p.buffer[:1]
		p.count = 1
		p.radius = circle.radius

	case CB2Shape_Polygon:
		polygon := shape.(*CB2PolygonShape)
		p.vertices = polygon.vertices[:]
		p.count = polygon.count
		p.radius = polygon.radius

	case CB2Shape_Chain:
		chain := shape.(*CB2ChainShape)
		CB2Assert(0 <= index && index < len(chain.Vertices))

		p.buffer[0] = chain.Vertices[index]
		if index+1 < len(chain.Vertices) {
			p.buffer[1] = chain.Vertices[index+1]
		} else {
			p.buffer[1] = chain.Vertices[0]
		}

		p.vertices = p.buffer[:]
		p.count = 2
		p.radius = chain.radius

	case CB2Shape_Edge:
		edge := shape.(*CB2EdgeShape)
		p.buffer[0] = edge.Vertex1
		p.buffer[1] = edge.Vertex2
		p.vertices = p.buffer[:]
		p.count = 2
		p.radius = edge.radius

	default:
		CB2Assert(false)
	}
}

func (p *CB2DistanceProxy) GetVertexCount() int {
	return p.count
}

func (p *CB2DistanceProxy) GetVertex(index int) CB2Vec2 {
	CB2Assert(0 <= index && index < p.count)
	return p.vertices[index]
}

// GetSupport returns the index of the vertex furthest along direction d.
func (p *CB2DistanceProxy) GetSupport(d CB2Vec2) int {
	bestIndex := 0
	bestValue := p.vertices[0].Dot(d)
	for i := 1; i < p.count; i++ {
		value := p.vertices[i].Dot(d)
		if value > bestValue {
			bestIndex = i
			bestValue = value
		}
	}
	return bestIndex
}

// GetSupportVertex returns the vertex furthest along direction d.
func (p *CB2DistanceProxy) GetSupportVertex(d CB2Vec2) CB2Vec2 {
	return p.vertices[p.GetSupport(d)]
}

// Profiling counters for the GJK solver.
var cb2_gjkCalls, cb2_gjkIters, cb2_gjkMaxIters int

type cb2SimplexVertex struct {
	wA     CB2Vec2 // support point in proxyA
	wB     CB2Vec2 // support point in proxyB
	w      CB2Vec2 // wB - wA
	a      float64 // barycentric coordinate for closest point
	indexA int
	indexB int
}

type cb2Simplex struct {
	vs    [3]cb2SimplexVertex
	count int
}

func (simplex *cb2Simplex) readCache(cache *CB2SimplexCache, proxyA *CB2DistanceProxy, transformA CB2Transform, proxyB *CB2DistanceProxy, transformB CB2Transform) {
	CB2Assert(cache.Count <= 3)

	// Copy data from cache.
	simplex.count = cache.Count
	for i := 0; i < simplex.count; i++ {
		v := &simplex.vs[i]
		v.indexA = cache.IndexA[i]
		v.indexB = cache.IndexB[i]
		wALocal := proxyA.GetVertex(v.indexA)
		wBLocal := proxyB.GetVertex(v.indexB)
		v.wA = CB2MulTransformVec2(transformA, wALocal)
		v.wB = CB2MulTransformVec2(transformB, wBLocal)
		v.w = v.wB.Sub(v.wA)
		v.a = 0.0
	}

	// If the new simplex metric is substantially different from the old one
	// then flush the simplex.
	if simplex.count > 1 {
		metric1 := cache.Metric
		metric2 := simplex.getMetric()
		if metric2 < 0.5*metric1 || 2.0*metric1 < metric2 || metric2 < CB2_epsilon {
			simplex.count = 0
		}
	}

	// If the cache is empty or invalid, start from the first vertices.
	if simplex.count == 0 {
		v := &simplex.vs[0]
		v.indexA = 0
		v.indexB = 0
		wALocal := proxyA.GetVertex(0)
		wBLocal := proxyB.GetVertex(0)
		v.wA = CB2MulTransformVec2(transformA, wALocal)
		v.wB = CB2MulTransformVec2(transformB, wBLocal)
		v.w = v.wB.Sub(v.wA)
		v.a = 1.0
		simplex.count = 1
	}
}

func (simplex *cb2Simplex) writeCache(cache *CB2SimplexCache) {
	cache.Metric = simplex.getMetric()
	cache.Count = simplex.count
	for i := 0; i < simplex.count; i++ {
		cache.IndexA[i] = simplex.vs[i].indexA
		cache.IndexB[i] = simplex.vs[i].indexB
	}
}

func (simplex *cb2Simplex) getSearchDirection() CB2Vec2 {
	switch simplex.count {
	case 1:
		return simplex.vs[0].w.Neg()

	case 2:
		e12 := simplex.vs[1].w.Sub(simplex.vs[0].w)
		sgn := e12.Cross(simplex.vs[0].w.Neg())
		if sgn > 0.0 {
			// Origin is left of e12.
			return CB2CrossScalarVec2(1.0, e12)
		}
		// Origin is right of e12.
		return CB2CrossVec2Scalar(e12, 1.0)

	default:
		CB2Assert(false)
		return CB2Vec2_zero
	}
}

func (simplex *cb2Simplex) getWitnessPoints(pA *CB2Vec2, pB *CB2Vec2) {
	switch simplex.count {
	case 1:
		*pA = simplex.vs[0].wA
		*pB = simplex.vs[0].wB

	case 2:
		*pA = simplex.vs[0].wA.Scale(simplex.vs[0].a).Add(simplex.vs[1].wA.Scale(simplex.vs[1].a))
		*pB = simplex.vs[0].wB.Scale(simplex.vs[0].a).Add(simplex.vs[1].wB.Scale(simplex.vs[1].a))

	case 3:
		*pA = simplex.vs[0].wA.Scale(simplex.vs[0].a).
			Add(simplex.vs[1].wA.Scale(simplex.vs[1].a)).
			Add(simplex.vs[2].wA.Scale(simplex.vs[2].a))
		*pB = *pA

	default:
		CB2Assert(false)
	}
}

func (simplex *cb2Simplex) getMetric() float64 {
	switch simplex.count {
	case 1:
		return 0.0

	case 2:
		return CB2Distance(simplex.vs[0].w, simplex.vs[1].w)

	case 3:
		return simplex.vs[1].w.Sub(simplex.vs[0].w).Cross(simplex.vs[2].w.Sub(simplex.vs[0].w))

	default:
		CB2Assert(false)
		return 0.0
	}
}

// Solve a line segment using barycentric coordinates.
func (simplex *cb2Simplex) solve2() {
	w1 := simplex.vs[0].w
	w2 := simplex.vs[1].w
	e12 := w2.Sub(w1)

	// w1 region
	d12_2 := -w1.Dot(e12)
	if d12_2 <= 0.0 {
		// a2 <= 0, so we clamp it to 0.
		simplex.vs[0].a = 1.0
		simplex.count = 1
		return
	}

	// w2 region
	d12_1 := w2.Dot(e12)
	if d12_1 <= 0.0 {
		// a1 <= 0, so we clamp it to 0.
		simplex.vs[1].a = 1.0
		simplex.count = 1
		simplex.vs[0] = simplex.vs[1]
		return
	}

	// Must be in e12 region.
	inv_d12 := 1.0 / (d12_1 + d12_2)
	simplex.vs[0].a = d12_1 * inv_d12
	simplex.vs[1].a = d12_2 * inv_d12
	simplex.count = 2
}

// Solve a triangle. Possible regions:
// - points[2]
// - edge points[0]-points[2]
// - edge points[1]-points[2]
// - inside the triangle
func (simplex *cb2Simplex) solve3() {
	w1 := simplex.vs[0].w
	w2 := simplex.vs[1].w
	w3 := simplex.vs[2].w

	// Edge12
	// [1      1     ][a1] = [1]
	// [w1.e12 w2.e12][a2] = [0]
	// a3 = 0
	e12 := w2.Sub(w1)
	w1e12 := w1.Dot(e12)
	w2e12 := w2.Dot(e12)
	d12_1 := w2e12
	d12_2 := -w1e12

	// Edge13
	// [1      1     ][a1] = [1]
	// [w1.e13 w3.e13][a3] = [0]
	// a2 = 0
	e13 := w3.Sub(w1)
	w1e13 := w1.Dot(e13)
	w3e13 := w3.Dot(e13)
	d13_1 := w3e13
	d13_2 := -w1e13

	// Edge23
	// [1      1     ][a2] = [1]
	// [w2.e23 w3.e23][a3] = [0]
	// a1 = 0
	e23 := w3.Sub(w2)
	w2e23 := w2.Dot(e23)
	w3e23 := w3.Dot(e23)
	d23_1 := w3e23
	d23_2 := -w2e23

	// Triangle123
	n123 := e12.Cross(e13)

	d123_1 := n123 * w2.Cross(w3)
	d123_2 := n123 * w3.Cross(w1)
	d123_3 := n123 * w1.Cross(w2)

	// w1 region
	if d12_2 <= 0.0 && d13_2 <= 0.0 {
		simplex.vs[0].a = 1.0
		simplex.count = 1
		return
	}

	// e12
	if d12_1 > 0.0 && d12_2 > 0.0 && d123_3 <= 0.0 {
		inv_d12 := 1.0 / (d12_1 + d12_2)
		simplex.vs[0].a = d12_1 * inv_d12
		simplex.vs[1].a = d12_2 * inv_d12
		simplex.count = 2
		return
	}

	// e13
	if d13_1 > 0.0 && d13_2 > 0.0 && d123_2 <= 0.0 {
		inv_d13 := 1.0 / (d13_1 + d13_2)
		simplex.vs[0].a = d13_1 * inv_d13
		simplex.vs[2].a = d13_2 * inv_d13
		simplex.count = 2
		simplex.vs[1] = simplex.vs[2]
		return
	}

	// w2 region
	if d12_1 <= 0.0 && d23_2 <= 0.0 {
		simplex.vs[1].a = 1.0
		simplex.count = 1
		simplex.vs[0] = simplex.vs[1]
		return
	}

	// w3 region
	if d13_1 <= 0.0 && d23_1 <= 0.0 {
		simplex.vs[2].a = 1.0
		simplex.count = 1
		simplex.vs[0] = simplex.vs[2]
		return
	}

	// e23
	if d23_1 > 0.0 && d23_2 > 0.0 && d123_1 <= 0.0 {
		inv_d23 := 1.0 / (d23_1 + d23_2)
		simplex.vs[1].a = d23_1 * inv_d23
		simplex.vs[2].a = d23_2 * inv_d23
		simplex.count = 2
		simplex.vs[0] = simplex.vs[2]
		return
	}

	// Must be in triangle123.
	inv_d123 := 1.0 / (d123_1 + d123_2 + d123_3)
	simplex.vs[0].a = d123_1 * inv_d123
	simplex.vs[1].a = d123_2 * inv_d123
	simplex.vs[2].a = d123_3 * inv_d123
	simplex.count = 3
}

// CB2ShapeDistance computes the closest points between two shapes. Supports
// any combination of convex proxies. On output, the cache holds the final
// simplex so subsequent calls for the same pair converge quickly.
func CB2ShapeDistance(output *CB2DistanceOutput, cache *CB2SimplexCache, input *CB2DistanceInput) {
	cb2_gjkCalls++

	proxyA := &input.ProxyA
	proxyB := &input.ProxyB

	transformA := input.TransformA
	transformB := input.TransformB

	// Initialize the simplex.
	var simplex cb2Simplex
	simplex.readCache(cache, proxyA, transformA, proxyB, transformB)

	const k_maxIters = 20

	// These store the vertices of the last simplex so that we can check for
	// duplicates and prevent cycling.
	var saveA, saveB [3]int
	saveCount := 0

	// Main iteration loop.
	iter := 0
	for iter < k_maxIters {
		// Copy simplex so we can identify duplicates.
		saveCount = simplex.count
		for i := 0; i < saveCount; i++ {
			saveA[i] = simplex.vs[i].indexA
			saveB[i] = simplex.vs[i].indexB
		}

		switch simplex.count {
		case 1:
		case 2:
			simplex.solve2()
		case 3:
			simplex.solve3()
		default:
			CB2Assert(false)
		}

		// If we have 3 points, then the origin is in the corresponding
		// triangle.
		if simplex.count == 3 {
			break
		}

		// Get search direction.
		d := simplex.getSearchDirection()

		// Ensure the search direction is numerically fit.
		if d.LengthSquared() < CB2_epsilon*CB2_epsilon {
			// The origin is probably contained by a line segment or triangle.
			// Thus the shapes are overlapped.

			// We can't return zero here even though there may be overlap.
			// In case the simplex is a point, segment, or triangle it is
			// difficult to determine if the origin is contained in the CSO or
			// very close to it.
			break
		}

		// Compute a tentative new simplex vertex using support points.
		vertex := &simplex.vs[simplex.count]
		vertex.indexA = proxyA.GetSupport(CB2MulTRotVec2(transformA.Q, d.Neg()))
		vertex.wA = CB2MulTransformVec2(transformA, proxyA.GetVertex(vertex.indexA))
		vertex.indexB = proxyB.GetSupport(CB2MulTRotVec2(transformB.Q, d))
		vertex.wB = CB2MulTransformVec2(transformB, proxyB.GetVertex(vertex.indexB))
		vertex.w = vertex.wB.Sub(vertex.wA)

		// Iteration count is equated to the number of support point calls.
		iter++
		cb2_gjkIters++

		// Check for duplicate support points. This is the main termination
		// criteria.
		duplicate := false
		for i := 0; i < saveCount; i++ {
			if vertex.indexA == saveA[i] && vertex.indexB == saveB[i] {
				duplicate = true
				break
			}
		}

		// If we found a duplicate support point we must exit to avoid
		// cycling.
		if duplicate {
			break
		}

		// New vertex is ok and needed.
		simplex.count++
	}

	if iter > cb2_gjkMaxIters {
		cb2_gjkMaxIters = iter
	}

	// Prepare output.
	simplex.getWitnessPoints(&output.PointA, &output.PointB)
	output.Distance = CB2Distance(output.PointA, output.PointB)
	output.Iterations = iter

	// Cache the simplex.
	simplex.writeCache(cache)

	// Apply radii if requested.
	if input.UseRadii {
		rA := proxyA.radius
		rB := proxyB.radius

		if output.Distance > rA+rB && output.Distance > CB2_epsilon {
			// Shapes are still not overlapped.
			// Move the witness points to the outer surface.
			output.Distance -= rA + rB
			normal := output.PointB.Sub(output.PointA)
			normal.Normalize()
			output.PointA = output.PointA.Add(normal.Scale(rA))
			output.PointB = output.PointB.Sub(normal.Scale(rB))
		} else {
			// Shapes are overlapped when radii are considered.
			// Move the witness points to the middle.
			p := output.PointA.Add(output.PointB).Scale(0.5)
			output.PointA = p
			output.PointB = p
			output.Distance = 0.0
		}
	}
}
