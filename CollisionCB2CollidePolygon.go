package cinderbox2d

// CB2FindMaxSeparation finds the max separation between poly1 and poly2 using
// edge normals from poly1.
func CB2FindMaxSeparation(edgeIndex *int, poly1 *CB2PolygonShape, xf1 CB2Transform, poly2 *CB2PolygonShape, xf2 CB2Transform) float64 {
	count1 := poly1.count
	count2 := poly2.count
	n1s := poly1.normals
	v1s := poly1.vertices
	v2s := poly2.vertices

	xf := CB2MulTTransform(xf2, xf1)

	bestIndex := 0
	maxSeparation := -CB2_maxFloat
	for i := 0; i < count1; i++ {
		// Get poly1 normal in frame2.
		n := CB2MulRotVec2(xf.Q, n1s[i])
		v1 := CB2MulTransformVec2(xf, v1s[i])

		// Find deepest point for normal i.
		si := CB2_maxFloat
		for j := 0; j < count2; j++ {
			sij := n.Dot(v2s[j].Sub(v1))
			if sij < si {
				si = sij
			}
		}

		if si > maxSeparation {
			maxSeparation = si
			bestIndex = i
		}
	}

	*edgeIndex = bestIndex
	return maxSeparation
}

// CB2FindIncidentEdge builds the clip vertices of the edge on poly2 most
// anti-parallel to the reference edge on poly1.
func CB2FindIncidentEdge(c []CB2ClipVertex, poly1 *CB2PolygonShape, xf1 CB2Transform, edge1 int, poly2 *CB2PolygonShape, xf2 CB2Transform) {
	normals1 := poly1.normals

	count2 := poly2.count
	vertices2 := poly2.vertices
	normals2 := poly2.normals

	CB2Assert(0 <= edge1 && edge1 < poly1.count)

	// Get the normal of the reference edge in poly2's frame.
	normal1 := CB2MulTRotVec2(xf2.Q, CB2MulRotVec2(xf1.Q, normals1[edge1]))

	// Find the incident edge on poly2.
	index := 0
	minDot := CB2_maxFloat
	for i := 0; i < count2; i++ {
		dot := normal1.Dot(normals2[i])
		if dot < minDot {
			minDot = dot
			index = i
		}
	}

	// Build the clip vertices for the incident edge.
	i1 := index
	i2 := 0
	if i1+1 < count2 {
		i2 = i1 + 1
	}

	c[0].V = CB2MulTransformVec2(xf2, vertices2[i1])
	c[0].Id.IndexA = uint8(edge1)
	c[0].Id.IndexB = uint8(i1)
	c[0].Id.TypeA = CB2ContactFeature_Face
	c[0].Id.TypeB = CB2ContactFeature_Vertex

	c[1].V = CB2MulTransformVec2(xf2, vertices2[i2])
	c[1].Id.IndexA = uint8(edge1)
	c[1].Id.IndexB = uint8(i2)
	c[1].Id.TypeA = CB2ContactFeature_Face
	c[1].Id.TypeB = CB2ContactFeature_Vertex
}

// CB2CollidePolygons computes the manifold for two polygons using SAT:
// - Find edge normal of max separation on A; return if a separating axis is found.
// - Find edge normal of max separation on B; return if a separating axis is found.
// - Choose the reference edge as min(minA, minB).
// - Find the incident edge.
// - Clip.
// The normal points from 1 to 2.
func CB2CollidePolygons(manifold *CB2Manifold, polyA *CB2PolygonShape, xfA CB2Transform, polyB *CB2PolygonShape, xfB CB2Transform) {
	manifold.PointCount = 0
	totalRadius := polyA.radius + polyB.radius

	edgeA := 0
	separationA := CB2FindMaxSeparation(&edgeA, polyA, xfA, polyB, xfB)
	if separationA > totalRadius {
		return
	}

	edgeB := 0
	separationB := CB2FindMaxSeparation(&edgeB, polyB, xfB, polyA, xfA)
	if separationB > totalRadius {
		return
	}

	var poly1 *CB2PolygonShape // reference polygon
	var poly2 *CB2PolygonShape // incident polygon
	var xf1, xf2 CB2Transform
	edge1 := 0 // reference edge
	var flip uint8
	const k_tol = 0.1 * CB2_linearSlop

	if separationB > separationA+k_tol {
		poly1 = polyB
		poly2 = polyA
		xf1 = xfB
		xf2 = xfA
		edge1 = edgeB
		manifold.Type = CB2Manifold_FaceB
		flip = 1
	} else {
		poly1 = polyA
		poly2 = polyB
		xf1 = xfA
		xf2 = xfB
		edge1 = edgeA
		manifold.Type = CB2Manifold_FaceA
		flip = 0
	}

	var incidentEdge [2]CB2ClipVertex
	CB2FindIncidentEdge(incidentEdge[:], poly1, xf1, edge1, poly2, xf2)

	count1 := poly1.count
	vertices1 := poly1.vertices

	iv1 := edge1
	iv2 := 0
	if edge1+1 < count1 {
		iv2 = edge1 + 1
	}

	v11 := vertices1[iv1]
	v12 := vertices1[iv2]

	localTangent := v12.Sub(v11)
	localTangent.Normalize()

	localNormal := CB2CrossVec2Scalar(localTangent, 1.0)
	planePoint := v11.Add(v12).Scale(0.5)

	tangent := CB2MulRotVec2(xf1.Q, localTangent)
	normal := CB2CrossVec2Scalar(tangent, 1.0)

	v11 = CB2MulTransformVec2(xf1, v11)
	v12 = CB2MulTransformVec2(xf1, v12)

	// Face offset.
	frontOffset := normal.Dot(v11)

	// Side offsets, extended by polytope skin thickness.
	sideOffset1 := -tangent.Dot(v11) + totalRadius
	sideOffset2 := tangent.Dot(v12) + totalRadius

	// Clip incident edge against extruded edge1 side edges.
	var clipPoints1, clipPoints2 [2]CB2ClipVertex

	// Clip to box side 1.
	np := CB2ClipSegmentToLine(clipPoints1[:], incidentEdge[:], tangent.Neg(), sideOffset1, iv1)
	if np < 2 {
		return
	}

	// Clip to negative box side 1.
	np = CB2ClipSegmentToLine(clipPoints2[:], clipPoints1[:], tangent, sideOffset2, iv2)
	if np < 2 {
		return
	}

	// Now clipPoints2 contains the clipped points.
	manifold.LocalNormal = localNormal
	manifold.LocalPoint = planePoint

	pointCount := 0
	for i := 0; i < CB2_maxManifoldPoints; i++ {
		separation := normal.Dot(clipPoints2[i].V) - frontOffset

		if separation <= totalRadius {
			cp := &manifold.Points[pointCount]
			cp.LocalPoint = CB2MulTTransformVec2(xf2, clipPoints2[i].V)
			cp.Id = clipPoints2[i].Id
			if flip != 0 {
				// Swap features.
				cf := cp.Id
				cp.Id.IndexA = cf.IndexB
				cp.Id.IndexB = cf.IndexA
				cp.Id.TypeA = cf.TypeB
				cp.Id.TypeB = cf.TypeA
			}
			pointCount++
		}
	}

	manifold.PointCount = pointCount
}
