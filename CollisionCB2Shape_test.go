package cinderbox2d

import (
	"math"
	"testing"
)

func TestPolygonSetAsBox(t *testing.T) {
	polygon := MakeCB2PolygonShape()
	polygon.SetAsBox(2.0, 1.0)

	if polygon.GetVertexCount() != 4 {
		t.Fatalf("vertex count is %d, want 4", polygon.GetVertexCount())
	}

	centroid := polygon.GetCentroid()
	if math.Abs(centroid.X) > 1e-12 || math.Abs(centroid.Y) > 1e-12 {
		t.Fatalf("centroid is %v, want the origin", centroid)
	}

	var massData CB2MassData
	polygon.ComputeMass(&massData, 1.0)
	if math.Abs(massData.Mass-8.0) > 1e-12 {
		t.Fatalf("mass is %g, want 8 for a 4x2 box at unit density", massData.Mass)
	}
}

func TestPolygonSetConvexHull(t *testing.T) {
	polygon := MakeCB2PolygonShape()

	// The interior point must be discarded by the hull computation.
	polygon.Set([]CB2Vec2{
		MakeCB2Vec2(-1.0, -1.0),
		MakeCB2Vec2(1.0, -1.0),
		MakeCB2Vec2(0.0, 0.0),
		MakeCB2Vec2(1.0, 1.0),
		MakeCB2Vec2(-1.0, 1.0),
	})

	if polygon.GetVertexCount() != 4 {
		t.Fatalf("vertex count is %d, want 4 after hull reduction", polygon.GetVertexCount())
	}

	// All normals must be unit length and wind counter-clockwise.
	for i := 0; i < polygon.GetVertexCount(); i++ {
		n := polygon.GetNormal(i)
		if math.Abs(n.Length()-1.0) > 1e-12 {
			t.Fatalf("normal %d has length %g", i, n.Length())
		}
	}
}

func TestPolygonSetWeldsCloseVertices(t *testing.T) {
	polygon := MakeCB2PolygonShape()

	// The near-duplicate vertex is welded away.
	polygon.Set([]CB2Vec2{
		MakeCB2Vec2(-1.0, -1.0),
		MakeCB2Vec2(1.0, -1.0),
		MakeCB2Vec2(1.0+1e-5, -1.0),
		MakeCB2Vec2(1.0, 1.0),
		MakeCB2Vec2(-1.0, 1.0),
	})

	if polygon.GetVertexCount() != 4 {
		t.Fatalf("vertex count is %d, want 4 after welding", polygon.GetVertexCount())
	}
}

func TestPolygonTestPoint(t *testing.T) {
	polygon := MakeCB2PolygonShape()
	polygon.SetAsBox(1.0, 1.0)

	xf := MakeCB2TransformFromPositionAndAngle(MakeCB2Vec2(5.0, 0.0), 0.0)

	if !polygon.TestPoint(xf, MakeCB2Vec2(5.5, 0.5)) {
		t.Fatalf("interior point reported outside")
	}
	if polygon.TestPoint(xf, MakeCB2Vec2(7.0, 0.0)) {
		t.Fatalf("exterior point reported inside")
	}
}

func TestPolygonRayCast(t *testing.T) {
	polygon := MakeCB2PolygonShape()
	polygon.SetAsBox(1.0, 1.0)

	input := CB2RayCastInput{
		P1:          MakeCB2Vec2(-3.0, 0.0),
		P2:          MakeCB2Vec2(3.0, 0.0),
		MaxFraction: 1.0,
	}

	var output CB2RayCastOutput
	if !polygon.RayCast(&output, input, MakeCB2Transform(), 0) {
		t.Fatalf("ray through the box reported a miss")
	}

	// The ray enters the left face at x = -1, a third of the way along.
	if math.Abs(output.Fraction-1.0/3.0) > 1e-12 {
		t.Fatalf("fraction is %g, want 1/3", output.Fraction)
	}
	if math.Abs(output.Normal.X+1.0) > 1e-12 {
		t.Fatalf("normal is %v, want (-1, 0)", output.Normal)
	}
}

func TestCircleRayCast(t *testing.T) {
	circle := MakeCB2CircleShape()
	circle.SetRadius(1.0)

	input := CB2RayCastInput{
		P1:          MakeCB2Vec2(-3.0, 0.0),
		P2:          MakeCB2Vec2(3.0, 0.0),
		MaxFraction: 1.0,
	}

	var output CB2RayCastOutput
	if !circle.RayCast(&output, input, MakeCB2Transform(), 0) {
		t.Fatalf("ray through the circle reported a miss")
	}
	if math.Abs(output.Fraction-1.0/3.0) > 1e-9 {
		t.Fatalf("fraction is %g, want 1/3", output.Fraction)
	}

	// A ray pointing away misses.
	input.P2 = MakeCB2Vec2(-9.0, 0.0)
	if circle.RayCast(&output, input, MakeCB2Transform(), 0) {
		t.Fatalf("ray pointing away reported a hit")
	}
}

func TestEdgeComputeAABB(t *testing.T) {
	edge := MakeCB2EdgeShape()
	edge.Set(MakeCB2Vec2(-1.0, 0.0), MakeCB2Vec2(2.0, 3.0))

	var aabb CB2AABB
	edge.ComputeAABB(&aabb, MakeCB2Transform(), 0)

	r := edge.GetRadius()
	if math.Abs(aabb.LowerBound.X-(-1.0-r)) > 1e-12 || math.Abs(aabb.UpperBound.X-(2.0+r)) > 1e-12 {
		t.Fatalf("aabb x range [%g, %g], want [%g, %g]", aabb.LowerBound.X, aabb.UpperBound.X, -1.0-r, 2.0+r)
	}
	if math.Abs(aabb.LowerBound.Y-(0.0-r)) > 1e-12 || math.Abs(aabb.UpperBound.Y-(3.0+r)) > 1e-12 {
		t.Fatalf("aabb y range [%g, %g], want [%g, %g]", aabb.LowerBound.Y, aabb.UpperBound.Y, 0.0-r, 3.0+r)
	}
}

func TestChainLoopChildren(t *testing.T) {
	chain := MakeCB2ChainShape()
	chain.CreateLoop([]CB2Vec2{
		MakeCB2Vec2(0.0, 0.0),
		MakeCB2Vec2(4.0, 0.0),
		MakeCB2Vec2(4.0, 4.0),
		MakeCB2Vec2(0.0, 4.0),
	})

	if chain.GetChildCount() != 4 {
		t.Fatalf("child count is %d, want 4 for a loop of 4 vertices", chain.GetChildCount())
	}

	var edge CB2EdgeShape
	chain.GetChildEdge(&edge, 1)

	if edge.Vertex1 != MakeCB2Vec2(4.0, 0.0) || edge.Vertex2 != MakeCB2Vec2(4.0, 4.0) {
		t.Fatalf("child 1 spans %v to %v", edge.Vertex1, edge.Vertex2)
	}
	if !edge.HasVertex0 || !edge.HasVertex3 {
		t.Fatalf("loop children must carry both adjacent vertices")
	}
	if edge.Vertex0 != MakeCB2Vec2(0.0, 0.0) {
		t.Fatalf("adjacent vertex 0 is %v, want (0, 0)", edge.Vertex0)
	}
}

func TestChainOpenEnds(t *testing.T) {
	chain := MakeCB2ChainShape()
	chain.CreateChain([]CB2Vec2{
		MakeCB2Vec2(0.0, 0.0),
		MakeCB2Vec2(1.0, 0.0),
		MakeCB2Vec2(2.0, 1.0),
	})

	if chain.GetChildCount() != 2 {
		t.Fatalf("child count is %d, want 2 for an open chain of 3 vertices", chain.GetChildCount())
	}

	var first CB2EdgeShape
	chain.GetChildEdge(&first, 0)
	if first.HasVertex0 {
		t.Fatalf("first child of an open chain has no previous vertex")
	}
	if !first.HasVertex3 {
		t.Fatalf("first child should carry the next vertex")
	}

	var last CB2EdgeShape
	chain.GetChildEdge(&last, 1)
	if last.HasVertex3 {
		t.Fatalf("last child of an open chain has no next vertex")
	}
}
