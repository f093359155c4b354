package cinderbox2d

import "math"

// CB2CollideEdgeAndCircle computes contact points for an edge versus a
// circle. This accounts for edge connectivity.
func CB2CollideEdgeAndCircle(manifold *CB2Manifold, edgeA *CB2EdgeShape, xfA CB2Transform, circleB *CB2CircleShape, xfB CB2Transform) {
	manifold.PointCount = 0

	// Compute circle in frame of edge.
	Q := CB2MulTTransformVec2(xfA, CB2MulTransformVec2(xfB, circleB.P))

	A := edgeA.Vertex1
	B := edgeA.Vertex2
	e := B.Sub(A)

	// Barycentric coordinates.
	u := e.Dot(B.Sub(Q))
	v := e.Dot(Q.Sub(A))

	radius := edgeA.radius + circleB.radius

	var cf CB2ContactFeature
	cf.IndexB = 0
	cf.TypeB = CB2ContactFeature_Vertex

	// Region A
	if v <= 0.0 {
		P := A
		d := Q.Sub(P)
		dd := d.Dot(d)
		if dd > radius*radius {
			return
		}

		// Is there an edge connected to A?
		if edgeA.HasVertex0 {
			A1 := edgeA.Vertex0
			B1 := A
			e1 := B1.Sub(A1)
			u1 := e1.Dot(B1.Sub(Q))

			// Is the circle in Region AB of the previous edge?
			if u1 > 0.0 {
				return
			}
		}

		cf.IndexA = 0
		cf.TypeA = CB2ContactFeature_Vertex
		manifold.PointCount = 1
		manifold.Type = CB2Manifold_Circles
		manifold.LocalNormal.SetZero()
		manifold.LocalPoint = P
		manifold.Points[0].Id = CB2ContactID(cf)
		manifold.Points[0].LocalPoint = circleB.P
		return
	}

	// Region B
	if u <= 0.0 {
		P := B
		d := Q.Sub(P)
		dd := d.Dot(d)
		if dd > radius*radius {
			return
		}

		// Is there an edge connected to B?
		if edgeA.HasVertex3 {
			B2 := edgeA.Vertex3
			A2 := B
			e2 := B2.Sub(A2)
			v2 := e2.Dot(Q.Sub(A2))

			// Is the circle in Region AB of the next edge?
			if v2 > 0.0 {
				return
			}
		}

		cf.IndexA = 1
		cf.TypeA = CB2ContactFeature_Vertex
		manifold.PointCount = 1
		manifold.Type = CB2Manifold_Circles
		manifold.LocalNormal.SetZero()
		manifold.LocalPoint = P
		manifold.Points[0].Id = CB2ContactID(cf)
		manifold.Points[0].LocalPoint = circleB.P
		return
	}

	// Region AB
	den := e.Dot(e)
	CB2Assert(den > 0.0)
	P := A.Scale(u).Add(B.Scale(v)).Scale(1.0 / den)
	d := Q.Sub(P)
	dd := d.Dot(d)
	if dd > radius*radius {
		return
	}

	n := MakeCB2Vec2(-e.Y, e.X)
	if n.Dot(Q.Sub(A)) < 0.0 {
		n = n.Neg()
	}
	n.Normalize()

	cf.IndexA = 0
	cf.TypeA = CB2ContactFeature_Face
	manifold.PointCount = 1
	manifold.Type = CB2Manifold_FaceA
	manifold.LocalNormal = n
	manifold.LocalPoint = A
	manifold.Points[0].Id = CB2ContactID(cf)
	manifold.Points[0].LocalPoint = circleB.P
}

// Separating axis candidates for the edge versus polygon collider.
const (
	cb2EPAxis_Unknown uint8 = 0
	cb2EPAxis_EdgeA   uint8 = 1
	cb2EPAxis_EdgeB   uint8 = 2
)

type cb2EPAxis struct {
	axisType   uint8
	index      int
	separation float64
}

// Polygon B expressed in frame A.
type cb2TempPolygon struct {
	vertices [CB2_maxPolygonVertices]CB2Vec2
	normals  [CB2_maxPolygonVertices]CB2Vec2
	count    int
}

// Reference face used for clipping.
type cb2ReferenceFace struct {
	i1, i2 int
	v1, v2 CB2Vec2
	normal CB2Vec2

	sideNormal1 CB2Vec2
	sideOffset1 float64

	sideNormal2 CB2Vec2
	sideOffset2 float64
}

// Collides an edge and a polygon, taking into account edge adjacency.
type cb2EPCollider struct {
	polygonB cb2TempPolygon

	xf                        CB2Transform
	centroidB                 CB2Vec2
	v0, v1, v2, v3            CB2Vec2
	normal0, normal1, normal2 CB2Vec2
	normal                    CB2Vec2
	lowerLimit, upperLimit    CB2Vec2
	radius                    float64
	front                     bool
}

// Algorithm:
// 1. Classify v1 and v2
// 2. Classify polygon centroid as front or back
// 3. Flip normal if necessary
// 4. Initialize normal range to [-pi, pi] about face normal
// 5. Adjust normal range according to adjacent edges
// 6. Visit each separating axis, only accept axes within the range
// 7. Return if any axis indicates separation
// 8. Clip
func (collider *cb2EPCollider) collide(manifold *CB2Manifold, edgeA *CB2EdgeShape, xfA CB2Transform, polygonB *CB2PolygonShape, xfB CB2Transform) {
	collider.xf = CB2MulTTransform(xfA, xfB)

	collider.centroidB = CB2MulTransformVec2(collider.xf, polygonB.centroid)

	collider.v0 = edgeA.Vertex0
	collider.v1 = edgeA.Vertex1
	collider.v2 = edgeA.Vertex2
	collider.v3 = edgeA.Vertex3

	hasVertex0 := edgeA.HasVertex0
	hasVertex3 := edgeA.HasVertex3

	edge1 := collider.v2.Sub(collider.v1)
	edge1.Normalize()
	collider.normal1.Set(edge1.Y, -edge1.X)
	offset1 := collider.normal1.Dot(collider.centroidB.Sub(collider.v1))
	offset0 := 0.0
	offset2 := 0.0
	convex1 := false
	convex2 := false

	// Is there a preceding edge?
	if hasVertex0 {
		edge0 := collider.v1.Sub(collider.v0)
		edge0.Normalize()
		collider.normal0.Set(edge0.Y, -edge0.X)
		convex1 = edge0.Cross(edge1) >= 0.0
		offset0 = collider.normal0.Dot(collider.centroidB.Sub(collider.v0))
	}

	// Is there a following edge?
	if hasVertex3 {
		edge2 := collider.v3.Sub(collider.v2)
		edge2.Normalize()
		collider.normal2.Set(edge2.Y, -edge2.X)
		convex2 = edge1.Cross(edge2) > 0.0
		offset2 = collider.normal2.Dot(collider.centroidB.Sub(collider.v2))
	}

	// Determine front or back collision. Determine collision normal limits.
	if hasVertex0 && hasVertex3 {
		if convex1 && convex2 {
			collider.front = offset0 >= 0.0 || offset1 >= 0.0 || offset2 >= 0.0
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal0
				collider.upperLimit = collider.normal2
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal1.Neg()
				collider.upperLimit = collider.normal1.Neg()
			}
		} else if convex1 {
			collider.front = offset0 >= 0.0 || (offset1 >= 0.0 && offset2 >= 0.0)
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal0
				collider.upperLimit = collider.normal1
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal2.Neg()
				collider.upperLimit = collider.normal1.Neg()
			}
		} else if convex2 {
			collider.front = offset2 >= 0.0 || (offset0 >= 0.0 && offset1 >= 0.0)
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal1
				collider.upperLimit = collider.normal2
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal1.Neg()
				collider.upperLimit = collider.normal0.Neg()
			}
		} else {
			collider.front = offset0 >= 0.0 && offset1 >= 0.0 && offset2 >= 0.0
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal1
				collider.upperLimit = collider.normal1
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal2.Neg()
				collider.upperLimit = collider.normal0.Neg()
			}
		}
	} else if hasVertex0 {
		if convex1 {
			collider.front = offset0 >= 0.0 || offset1 >= 0.0
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal0
				collider.upperLimit = collider.normal1.Neg()
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal1
				collider.upperLimit = collider.normal1.Neg()
			}
		} else {
			collider.front = offset0 >= 0.0 && offset1 >= 0.0
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal1
				collider.upperLimit = collider.normal1.Neg()
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal1
				collider.upperLimit = collider.normal0.Neg()
			}
		}
	} else if hasVertex3 {
		if convex2 {
			collider.front = offset1 >= 0.0 || offset2 >= 0.0
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal1.Neg()
				collider.upperLimit = collider.normal2
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal1.Neg()
				collider.upperLimit = collider.normal1
			}
		} else {
			collider.front = offset1 >= 0.0 && offset2 >= 0.0
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal1.Neg()
				collider.upperLimit = collider.normal1
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal2.Neg()
				collider.upperLimit = collider.normal1
			}
		}
	} else {
		collider.front = offset1 >= 0.0
		if collider.front {
			collider.normal = collider.normal1
			collider.lowerLimit = collider.normal1.Neg()
			collider.upperLimit = collider.normal1.Neg()
		} else {
			collider.normal = collider.normal1.Neg()
			collider.lowerLimit = collider.normal1
			collider.upperLimit = collider.normal1
		}
	}

	// Get polygonB in frameA.
	collider.polygonB.count = polygonB.count
	for i := 0; i < polygonB.count; i++ {
		collider.polygonB.vertices[i] = CB2MulTransformVec2(collider.xf, polygonB.vertices[i])
		collider.polygonB.normals[i] = CB2MulRotVec2(collider.xf.Q, polygonB.normals[i])
	}

	collider.radius = polygonB.radius + edgeA.radius

	manifold.PointCount = 0

	edgeAxis := collider.computeEdgeSeparation()

	// If no valid normal can be found then this edge should not collide.
	if edgeAxis.axisType == cb2EPAxis_Unknown {
		return
	}

	if edgeAxis.separation > collider.radius {
		return
	}

	polygonAxis := collider.computePolygonSeparation()
	if polygonAxis.axisType != cb2EPAxis_Unknown && polygonAxis.separation > collider.radius {
		return
	}

	// Use hysteresis for jitter reduction.
	const k_relativeTol = 0.98
	const k_absoluteTol = 0.001

	var primaryAxis cb2EPAxis
	if polygonAxis.axisType == cb2EPAxis_Unknown {
		primaryAxis = edgeAxis
	} else if polygonAxis.separation > k_relativeTol*edgeAxis.separation+k_absoluteTol {
		primaryAxis = polygonAxis
	} else {
		primaryAxis = edgeAxis
	}

	var ie [2]CB2ClipVertex
	var rf cb2ReferenceFace
	if primaryAxis.axisType == cb2EPAxis_EdgeA {
		manifold.Type = CB2Manifold_FaceA

		// Search for the polygon normal that is most anti-parallel to the
		// edge normal.
		bestIndex := 0
		bestValue := collider.normal.Dot(collider.polygonB.normals[0])
		for i := 1; i < collider.polygonB.count; i++ {
			value := collider.normal.Dot(collider.polygonB.normals[i])
			if value < bestValue {
				bestValue = value
				bestIndex = i
			}
		}

		i1 := bestIndex
		i2 := 0
		if i1+1 < collider.polygonB.count {
			i2 = i1 + 1
		}

		ie[0].V = collider.polygonB.vertices[i1]
		ie[0].Id.IndexA = 0
		ie[0].Id.IndexB = uint8(i1)
		ie[0].Id.TypeA = CB2ContactFeature_Face
		ie[0].Id.TypeB = CB2ContactFeature_Vertex

		ie[1].V = collider.polygonB.vertices[i2]
		ie[1].Id.IndexA = 0
		ie[1].Id.IndexB = uint8(i2)
		ie[1].Id.TypeA = CB2ContactFeature_Face
		ie[1].Id.TypeB = CB2ContactFeature_Vertex

		if collider.front {
			rf.i1 = 0
			rf.i2 = 1
			rf.v1 = collider.v1
			rf.v2 = collider.v2
			rf.normal = collider.normal1
		} else {
			rf.i1 = 1
			rf.i2 = 0
			rf.v1 = collider.v2
			rf.v2 = collider.v1
			rf.normal = collider.normal1.Neg()
		}
	} else {
		manifold.Type = CB2Manifold_FaceB

		ie[0].V = collider.v1
		ie[0].Id.IndexA = 0
		ie[0].Id.IndexB = uint8(primaryAxis.index)
		ie[0].Id.TypeA = CB2ContactFeature_Vertex
		ie[0].Id.TypeB = CB2ContactFeature_Face

		ie[1].V = collider.v2
		ie[1].Id.IndexA = 0
		ie[1].Id.IndexB = uint8(primaryAxis.index)
		ie[1].Id.TypeA = CB2ContactFeature_Vertex
		ie[1].Id.TypeB = CB2ContactFeature_Face

		rf.i1 = primaryAxis.index
		if rf.i1+1 < collider.polygonB.count {
			rf.i2 = rf.i1 + 1
		} else {
			rf.i2 = 0
		}

		rf.v1 = collider.polygonB.vertices[rf.i1]
		rf.v2 = collider.polygonB.vertices[rf.i2]
		rf.normal = collider.polygonB.normals[rf.i1]
	}

	rf.sideNormal1.Set(rf.normal.Y, -rf.normal.X)
	rf.sideNormal2 = rf.sideNormal1.Neg()
	rf.sideOffset1 = rf.sideNormal1.Dot(rf.v1)
	rf.sideOffset2 = rf.sideNormal2.Dot(rf.v2)

	// Clip incident edge against extruded edge1 side edges.
	var clipPoints1, clipPoints2 [2]CB2ClipVertex

	// Clip to box side 1.
	np := CB2ClipSegmentToLine(clipPoints1[:], ie[:], rf.sideNormal1, rf.sideOffset1, rf.i1)
	if np < CB2_maxManifoldPoints {
		return
	}

	// Clip to negative box side 1.
	np = CB2ClipSegmentToLine(clipPoints2[:], clipPoints1[:], rf.sideNormal2, rf.sideOffset2, rf.i2)
	if np < CB2_maxManifoldPoints {
		return
	}

	// Now clipPoints2 contains the clipped points.
	if primaryAxis.axisType == cb2EPAxis_EdgeA {
		manifold.LocalNormal = rf.normal
		manifold.LocalPoint = rf.v1
	} else {
		manifold.LocalNormal = polygonB.normals[rf.i1]
		manifold.LocalPoint = polygonB.vertices[rf.i1]
	}

	pointCount := 0
	for i := 0; i < CB2_maxManifoldPoints; i++ {
		separation := rf.normal.Dot(clipPoints2[i].V.Sub(rf.v1))

		if separation <= collider.radius {
			cp := &manifold.Points[pointCount]

			if primaryAxis.axisType == cb2EPAxis_EdgeA {
				cp.LocalPoint = CB2MulTTransformVec2(collider.xf, clipPoints2[i].V)
				cp.Id = clipPoints2[i].Id
			} else {
				cp.LocalPoint = clipPoints2[i].V
				cp.Id.TypeA = clipPoints2[i].Id.TypeB
				cp.Id.TypeB = clipPoints2[i].Id.TypeA
				cp.Id.IndexA = clipPoints2[i].Id.IndexB
				cp.Id.IndexB = clipPoints2[i].Id.IndexA
			}

			pointCount++
		}
	}

	manifold.PointCount = pointCount
}

func (collider *cb2EPCollider) computeEdgeSeparation() cb2EPAxis {
	var axis cb2EPAxis
	axis.axisType = cb2EPAxis_EdgeA
	if collider.front {
		axis.index = 0
	} else {
		axis.index = 1
	}
	axis.separation = CB2_maxFloat

	for i := 0; i < collider.polygonB.count; i++ {
		s := collider.normal.Dot(collider.polygonB.vertices[i].Sub(collider.v1))
		if s < axis.separation {
			axis.separation = s
		}
	}

	return axis
}

func (collider *cb2EPCollider) computePolygonSeparation() cb2EPAxis {
	var axis cb2EPAxis
	axis.axisType = cb2EPAxis_Unknown
	axis.index = -1
	axis.separation = -CB2_maxFloat

	perp := MakeCB2Vec2(-collider.normal.Y, collider.normal.X)

	for i := 0; i < collider.polygonB.count; i++ {
		n := collider.polygonB.normals[i].Neg()

		s1 := n.Dot(collider.polygonB.vertices[i].Sub(collider.v1))
		s2 := n.Dot(collider.polygonB.vertices[i].Sub(collider.v2))
		s := math.Min(s1, s2)

		if s > collider.radius {
			// No collision.
			axis.axisType = cb2EPAxis_EdgeB
			axis.index = i
			axis.separation = s
			return axis
		}

		// Adjacency
		if n.Dot(perp) >= 0.0 {
			if n.Sub(collider.upperLimit).Dot(collider.normal) < -CB2_angularSlop {
				continue
			}
		} else {
			if n.Sub(collider.lowerLimit).Dot(collider.normal) < -CB2_angularSlop {
				continue
			}
		}

		if s > axis.separation {
			axis.axisType = cb2EPAxis_EdgeB
			axis.index = i
			axis.separation = s
		}
	}

	return axis
}

// CB2CollideEdgeAndPolygon computes the manifold for an edge and a polygon,
// accounting for edge adjacency.
func CB2CollideEdgeAndPolygon(manifold *CB2Manifold, edgeA *CB2EdgeShape, xfA CB2Transform, polygonB *CB2PolygonShape, xfB CB2Transform) {
	var collider cb2EPCollider
	collider.collide(manifold, edgeA, xfA, polygonB, xfB)
}
