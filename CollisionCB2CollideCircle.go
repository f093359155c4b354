package cinderbox2d

// CB2CollideCircles computes the manifold for two circles.
func CB2CollideCircles(manifold *CB2Manifold, circleA *CB2CircleShape, xfA CB2Transform, circleB *CB2CircleShape, xfB CB2Transform) {
	manifold.PointCount = 0

	pA := CB2MulTransformVec2(xfA, circleA.P)
	pB := CB2MulTransformVec2(xfB, circleB.P)

	d := pB.Sub(pA)
	distSqr := d.Dot(d)
	rA := circleA.radius
	rB := circleB.radius
	radius := rA + rB
	if distSqr > radius*radius {
		return
	}

	manifold.Type = CB2Manifold_Circles
	manifold.LocalPoint = circleA.P
	manifold.LocalNormal.SetZero()
	manifold.PointCount = 1

	manifold.Points[0].LocalPoint = circleB.P
	manifold.Points[0].Id.SetKey(0)
}

// CB2CollidePolygonAndCircle computes the manifold for a polygon and a circle.
func CB2CollidePolygonAndCircle(manifold *CB2Manifold, polygonA *CB2PolygonShape, xfA CB2Transform, circleB *CB2CircleShape, xfB CB2Transform) {
	manifold.PointCount = 0

	// Compute circle position in the frame of the polygon.
	c := CB2MulTransformVec2(xfB, circleB.P)
	cLocal := CB2MulTTransformVec2(xfA, c)

	// Find the min separating edge.
	normalIndex := 0
	separation := -CB2_maxFloat
	radius := polygonA.radius + circleB.radius
	vertexCount := polygonA.count
	vertices := polygonA.vertices
	normals := polygonA.normals

	for i := 0; i < vertexCount; i++ {
		s := normals[i].Dot(cLocal.Sub(vertices[i]))

		if s > radius {
			// Early out.
			return
		}

		if s > separation {
			separation = s
			normalIndex = i
		}
	}

	// Vertices that subtend the incident face.
	vertIndex1 := normalIndex
	vertIndex2 := 0
	if vertIndex1+1 < vertexCount {
		vertIndex2 = vertIndex1 + 1
	}

	v1 := vertices[vertIndex1]
	v2 := vertices[vertIndex2]

	// If the center is inside the polygon ...
	if separation < CB2_epsilon {
		manifold.PointCount = 1
		manifold.Type = CB2Manifold_FaceA
		manifold.LocalNormal = normals[normalIndex]
		manifold.LocalPoint = v1.Add(v2).Scale(0.5)
		manifold.Points[0].LocalPoint = circleB.P
		manifold.Points[0].Id.SetKey(0)
		return
	}

	// Compute barycentric coordinates.
	u1 := cLocal.Sub(v1).Dot(v2.Sub(v1))
	u2 := cLocal.Sub(v2).Dot(v1.Sub(v2))
	if u1 <= 0.0 {
		if CB2DistanceSquared(cLocal, v1) > radius*radius {
			return
		}

		manifold.PointCount = 1
		manifold.Type = CB2Manifold_FaceA
		manifold.LocalNormal = cLocal.Sub(v1)
		manifold.LocalNormal.Normalize()
		manifold.LocalPoint = v1
		manifold.Points[0].LocalPoint = circleB.P
		manifold.Points[0].Id.SetKey(0)
	} else if u2 <= 0.0 {
		if CB2DistanceSquared(cLocal, v2) > radius*radius {
			return
		}

		manifold.PointCount = 1
		manifold.Type = CB2Manifold_FaceA
		manifold.LocalNormal = cLocal.Sub(v2)
		manifold.LocalNormal.Normalize()
		manifold.LocalPoint = v2
		manifold.Points[0].LocalPoint = circleB.P
		manifold.Points[0].Id.SetKey(0)
	} else {
		faceCenter := v1.Add(v2).Scale(0.5)
		s := cLocal.Sub(faceCenter).Dot(normals[vertIndex1])
		if s > radius {
			return
		}

		manifold.PointCount = 1
		manifold.Type = CB2Manifold_FaceA
		manifold.LocalNormal = normals[vertIndex1]
		manifold.LocalPoint = faceCenter
		manifold.Points[0].LocalPoint = circleB.P
		manifold.Points[0].Id.SetKey(0)
	}
}
