package cinderbox2d

import "math"

// Structures and functions used for computing contact points, distance
// queries, and TOI queries.

const CB2_nullFeature uint8 = math.MaxUint8

const (
	CB2ContactFeature_Vertex uint8 = 0
	CB2ContactFeature_Face   uint8 = 1
)

// The features that intersect to form the contact point.
// This must fit in 4 bytes: it is packed into a key for warm starting.
type CB2ContactFeature struct {
	IndexA uint8 // feature index on shapeA
	IndexB uint8 // feature index on shapeB
	TypeA  uint8 // the feature type on shapeA
	TypeB  uint8 // the feature type on shapeB
}

// Contact ids facilitate warm starting: a point whose id recurs between two
// frames is the same geometric feature pairing.
type CB2ContactID CB2ContactFeature

// Key packs the feature quadruple for fast exact comparison.
func (id CB2ContactID) Key() uint32 {
	return uint32(id.IndexA) |
		uint32(id.IndexB)<<8 |
		uint32(id.TypeA)<<16 |
		uint32(id.TypeB)<<24
}

func (id *CB2ContactID) SetKey(key uint32) {
	id.IndexA = uint8(key & 0xFF)
	id.IndexB = uint8(key >> 8 & 0xFF)
	id.TypeA = uint8(key >> 16 & 0xFF)
	id.TypeB = uint8(key >> 24 & 0xFF)
}

// A manifold point is a contact point belonging to a contact manifold. It
// holds details related to the geometry and dynamics of the contact points.
// The local point usage depends on the manifold type. This structure is
// stored across time steps, so it is kept small.
// Note: the impulses are used for internal caching and may not provide
// reliable contact forces, especially for high speed collisions.
type CB2ManifoldPoint struct {
	LocalPoint     CB2Vec2      // usage depends on manifold type
	NormalImpulse  float64      // the non-penetration impulse
	TangentImpulse float64      // the friction impulse
	Id             CB2ContactID // uniquely identifies a contact point between two shapes
}

const (
	CB2Manifold_Circles uint8 = 0
	CB2Manifold_FaceA   uint8 = 1
	CB2Manifold_FaceB   uint8 = 2
)

// A manifold for two touching convex shapes.
// Supported contact types:
// - clip point versus plane with radius
// - point versus point with radius (circles)
// The local point and normal usage depends on the manifold type. Contacts are
// stored this way so that position correction can account for movement, which
// is critical for continuous physics.
type CB2Manifold struct {
	Points      [CB2_maxManifoldPoints]CB2ManifoldPoint
	LocalNormal CB2Vec2 // not used for Circles
	LocalPoint  CB2Vec2 // usage depends on manifold type
	Type        uint8
	PointCount  int
}

// This is used to compute the current state of a contact manifold.
type CB2WorldManifold struct {
	Normal      CB2Vec2                         // world vector pointing from A to B
	Points      [CB2_maxManifoldPoints]CB2Vec2  // world contact points (points of intersection)
	Separations [CB2_maxManifoldPoints]float64  // a negative value indicates overlap, in meters
}

// Initialize evaluates the manifold in world coordinates using the current
// transforms and shape radii.
func (wm *CB2WorldManifold) Initialize(manifold *CB2Manifold, xfA CB2Transform, radiusA float64, xfB CB2Transform, radiusB float64) {
	if manifold.PointCount == 0 {
		return
	}

	switch manifold.Type {
	case CB2Manifold_Circles:
		wm.Normal.Set(1.0, 0.0)
		pointA := CB2MulTransformVec2(xfA, manifold.LocalPoint)
		pointB := CB2MulTransformVec2(xfB, manifold.Points[0].LocalPoint)
		if CB2DistanceSquared(pointA, pointB) > CB2_epsilon*CB2_epsilon {
			wm.Normal = pointB.Sub(pointA)
			wm.Normal.Normalize()
		}

		cA := pointA.Add(wm.Normal.Scale(radiusA))
		cB := pointB.Sub(wm.Normal.Scale(radiusB))
		wm.Points[0] = cA.Add(cB).Scale(0.5)
		wm.Separations[0] = cB.Sub(cA).Dot(wm.Normal)

	case CB2Manifold_FaceA:
		wm.Normal = CB2MulRotVec2(xfA.Q, manifold.LocalNormal)
		planePoint := CB2MulTransformVec2(xfA, manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := CB2MulTransformVec2(xfB, manifold.Points[i].LocalPoint)
			cA := clipPoint.Add(wm.Normal.Scale(radiusA - clipPoint.Sub(planePoint).Dot(wm.Normal)))
			cB := clipPoint.Sub(wm.Normal.Scale(radiusB))
			wm.Points[i] = cA.Add(cB).Scale(0.5)
			wm.Separations[i] = cB.Sub(cA).Dot(wm.Normal)
		}

	case CB2Manifold_FaceB:
		wm.Normal = CB2MulRotVec2(xfB.Q, manifold.LocalNormal)
		planePoint := CB2MulTransformVec2(xfB, manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := CB2MulTransformVec2(xfA, manifold.Points[i].LocalPoint)
			cB := clipPoint.Add(wm.Normal.Scale(radiusB - clipPoint.Sub(planePoint).Dot(wm.Normal)))
			cA := clipPoint.Sub(wm.Normal.Scale(radiusA))
			wm.Points[i] = cA.Add(cB).Scale(0.5)
			wm.Separations[i] = cA.Sub(cB).Dot(wm.Normal)
		}

		// Ensure normal points from A to B.
		wm.Normal = wm.Normal.Neg()
	}
}

// Point states relative to the update of a manifold.
const (
	CB2PointState_Null    uint8 = 0 // point does not exist
	CB2PointState_Add     uint8 = 1 // point was added in the update
	CB2PointState_Persist uint8 = 2 // point persisted across the update
	CB2PointState_Remove  uint8 = 3 // point was removed in the update
)

// CB2GetPointStates computes the point states given two manifolds. The states
// pertain to the transition from manifold1 to manifold2, so state1 is either
// persist or remove while state2 is either add or persist.
func CB2GetPointStates(state1, state2 *[CB2_maxManifoldPoints]uint8, manifold1, manifold2 *CB2Manifold) {
	for i := 0; i < CB2_maxManifoldPoints; i++ {
		state1[i] = CB2PointState_Null
		state2[i] = CB2PointState_Null
	}

	for i := 0; i < manifold1.PointCount; i++ {
		id := manifold1.Points[i].Id
		state1[i] = CB2PointState_Remove
		for j := 0; j < manifold2.PointCount; j++ {
			if manifold2.Points[j].Id.Key() == id.Key() {
				state1[i] = CB2PointState_Persist
				break
			}
		}
	}

	for i := 0; i < manifold2.PointCount; i++ {
		id := manifold2.Points[i].Id
		state2[i] = CB2PointState_Add
		for j := 0; j < manifold1.PointCount; j++ {
			if manifold1.Points[j].Id.Key() == id.Key() {
				state2[i] = CB2PointState_Persist
				break
			}
		}
	}
}

// Used for computing contact manifolds.
type CB2ClipVertex struct {
	V  CB2Vec2
	Id CB2ContactID
}

// Ray-cast input data. The ray extends from p1 to p1 + maxFraction * (p2 - p1).
type CB2RayCastInput struct {
	P1, P2      CB2Vec2
	MaxFraction float64
}

// Ray-cast output data. The ray hits at p1 + fraction * (p2 - p1), where p1
// and p2 come from CB2RayCastInput.
type CB2RayCastOutput struct {
	Normal   CB2Vec2
	Fraction float64
}

// An axis aligned bounding box.
type CB2AABB struct {
	LowerBound CB2Vec2
	UpperBound CB2Vec2
}

func MakeCB2AABB(lower, upper CB2Vec2) CB2AABB {
	return CB2AABB{LowerBound: lower, UpperBound: upper}
}

func (bb CB2AABB) GetCenter() CB2Vec2 {
	return bb.LowerBound.Add(bb.UpperBound).Scale(0.5)
}

// Half-widths.
func (bb CB2AABB) GetExtents() CB2Vec2 {
	return bb.UpperBound.Sub(bb.LowerBound).Scale(0.5)
}

func (bb CB2AABB) GetPerimeter() float64 {
	wx := bb.UpperBound.X - bb.LowerBound.X
	wy := bb.UpperBound.Y - bb.LowerBound.Y
	return 2.0 * (wx + wy)
}

// Combine an AABB into this one.
func (bb *CB2AABB) Combine(aabb CB2AABB) {
	bb.LowerBound = CB2MinVec2(bb.LowerBound, aabb.LowerBound)
	bb.UpperBound = CB2MaxVec2(bb.UpperBound, aabb.UpperBound)
}

// Combine two AABBs into this one.
func (bb *CB2AABB) CombineTwo(aabb1, aabb2 CB2AABB) {
	bb.LowerBound = CB2MinVec2(aabb1.LowerBound, aabb2.LowerBound)
	bb.UpperBound = CB2MaxVec2(aabb1.UpperBound, aabb2.UpperBound)
}

// Contains reports whether this AABB fully contains the provided AABB.
func (bb CB2AABB) Contains(aabb CB2AABB) bool {
	return bb.LowerBound.X <= aabb.LowerBound.X &&
		bb.LowerBound.Y <= aabb.LowerBound.Y &&
		aabb.UpperBound.X <= bb.UpperBound.X &&
		aabb.UpperBound.Y <= bb.UpperBound.Y
}

func (bb CB2AABB) IsValid() bool {
	d := bb.UpperBound.Sub(bb.LowerBound)
	return d.X >= 0.0 && d.Y >= 0.0 && bb.LowerBound.IsValid() && bb.UpperBound.IsValid()
}

// RayCast against the box faces. From Real-time Collision Detection, p179.
func (bb CB2AABB) RayCast(output *CB2RayCastOutput, input CB2RayCastInput) bool {
	tmin := -CB2_maxFloat
	tmax := CB2_maxFloat

	p := input.P1
	d := input.P2.Sub(input.P1)
	absD := CB2AbsVec2(d)

	var normal CB2Vec2

	for i := 0; i < 2; i++ {
		if absD.Component(i) < CB2_epsilon {
			// Parallel.
			if p.Component(i) < bb.LowerBound.Component(i) || bb.UpperBound.Component(i) < p.Component(i) {
				return false
			}
		} else {
			invD := 1.0 / d.Component(i)
			t1 := (bb.LowerBound.Component(i) - p.Component(i)) * invD
			t2 := (bb.UpperBound.Component(i) - p.Component(i)) * invD

			// Sign of the normal vector.
			s := -1.0
			if t1 > t2 {
				t1, t2 = t2, t1
				s = 1.0
			}

			// Push the min up.
			if t1 > tmin {
				normal.SetZero()
				normal.SetComponent(i, s)
				tmin = t1
			}

			// Pull the max down.
			tmax = math.Min(tmax, t2)

			if tmin > tmax {
				return false
			}
		}
	}

	// Does the ray start inside the box?
	// Does the ray intersect beyond the max fraction?
	if tmin < 0.0 || input.MaxFraction < tmin {
		return false
	}

	output.Fraction = tmin
	output.Normal = normal
	return true
}

// CB2TestOverlapAABBs reports whether two bounding boxes overlap.
func CB2TestOverlapAABBs(a, b CB2AABB) bool {
	d1 := b.LowerBound.Sub(a.UpperBound)
	d2 := a.LowerBound.Sub(b.UpperBound)

	if d1.X > 0.0 || d1.Y > 0.0 {
		return false
	}
	if d2.X > 0.0 || d2.Y > 0.0 {
		return false
	}
	return true
}

// CB2ClipSegmentToLine performs Sutherland-Hodgman clipping and returns the
// number of output points.
func CB2ClipSegmentToLine(vOut []CB2ClipVertex, vIn []CB2ClipVertex, normal CB2Vec2, offset float64, vertexIndexA int) int {
	numOut := 0

	// Calculate the distance of end points to the line.
	distance0 := normal.Dot(vIn[0].V) - offset
	distance1 := normal.Dot(vIn[1].V) - offset

	// If the points are behind the plane.
	if distance0 <= 0.0 {
		vOut[numOut] = vIn[0]
		numOut++
	}
	if distance1 <= 0.0 {
		vOut[numOut] = vIn[1]
		numOut++
	}

	// If the points are on different sides of the plane.
	if distance0*distance1 < 0.0 {
		// Find intersection point of edge and plane.
		interp := distance0 / (distance0 - distance1)
		vOut[numOut].V = vIn[0].V.Add(vIn[1].V.Sub(vIn[0].V).Scale(interp))

		// VertexA is hitting edgeB.
		vOut[numOut].Id.IndexA = uint8(vertexIndexA)
		vOut[numOut].Id.IndexB = vIn[0].Id.IndexB
		vOut[numOut].Id.TypeA = CB2ContactFeature_Vertex
		vOut[numOut].Id.TypeB = CB2ContactFeature_Face
		numOut++
	}

	return numOut
}

// CB2TestOverlapShapes performs the exact boolean overlap test used for
// sensor contacts, by running GJK with the shape radii applied.
func CB2TestOverlapShapes(shapeA CB2ShapeInterface, indexA int, shapeB CB2ShapeInterface, indexB int, xfA, xfB CB2Transform) bool {
	input := MakeCB2DistanceInput()
	input.ProxyA.Set(shapeA, indexA)
	input.ProxyB.Set(shapeB, indexB)
	input.TransformA = xfA
	input.TransformB = xfB
	input.UseRadii = true

	var cache CB2SimplexCache
	var output CB2DistanceOutput
	CB2ShapeDistance(&output, &cache, &input)

	return output.Distance < 10.0*CB2_epsilon
}
