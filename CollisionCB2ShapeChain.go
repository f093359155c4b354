package cinderbox2d

// A chain shape is a free form sequence of line segments. The chain has
// two-sided collision, so avoid self-intersection, as that gives undefined
// behavior. Connectivity information is used to create smooth collisions.
// Chains do not store adjacency for the interior vertices; each child edge is
// reconstructed on demand by GetChildEdge.
type CB2ChainShape struct {
	CB2Shape

	// The vertices. Owned by this shape.
	Vertices []CB2Vec2

	// Optional adjacent vertices outside the chain endpoints.
	PrevVertex, NextVertex       CB2Vec2
	HasPrevVertex, HasNextVertex bool
}

func MakeCB2ChainShape() CB2ChainShape {
	return CB2ChainShape{
		CB2Shape: CB2Shape{shapeType: CB2Shape_Chain, radius: CB2_polygonRadius},
	}
}

func NewCB2ChainShape() *CB2ChainShape {
	res := MakeCB2ChainShape()
	return &res
}

// Clear releases the vertices.
func (shape *CB2ChainShape) Clear() {
	shape.Vertices = nil
}

// CreateLoop builds a loop. This automatically adjusts connectivity.
// All vertices must be unique within CB2_linearSlop, and at least three
// are required.
func (shape *CB2ChainShape) CreateLoop(vertices []CB2Vec2) {
	CB2Assert(shape.Vertices == nil)
	count := len(vertices)
	CB2Assert(count >= 3)

	for i := 1; i < count; i++ {
		// If the code crashes here it means the vertices are too close.
		CB2Assert(CB2DistanceSquared(vertices[i-1], vertices[i]) > CB2_linearSlop*CB2_linearSlop)
	}

	shape.Vertices = make([]CB2Vec2, count+1)
	copy(shape.Vertices, vertices)
	shape.Vertices[count] = shape.Vertices[0]
	shape.PrevVertex = shape.Vertices[count-1]
	shape.NextVertex = shape.Vertices[1]
	shape.HasPrevVertex = true
	shape.HasNextVertex = true
}

// CreateChain builds an open chain with isolated end vertices. At least
// two vertices are required.
func (shape *CB2ChainShape) CreateChain(vertices []CB2Vec2) {
	CB2Assert(shape.Vertices == nil)
	count := len(vertices)
	CB2Assert(count >= 2)

	for i := 1; i < count; i++ {
		// If the code crashes here it means the vertices are too close.
		CB2Assert(CB2DistanceSquared(vertices[i-1], vertices[i]) > CB2_linearSlop*CB2_linearSlop)
	}

	shape.Vertices = make([]CB2Vec2, count)
	copy(shape.Vertices, vertices)

	shape.HasPrevVertex = false
	shape.HasNextVertex = false

	shape.PrevVertex.SetZero()
	shape.NextVertex.SetZero()
}

// SetPrevVertex establishes connectivity to a vertex that precedes the first
// vertex. May be used to connect an endpoint to another chain.
func (shape *CB2ChainShape) SetPrevVertex(prevVertex CB2Vec2) {
	shape.PrevVertex = prevVertex
	shape.HasPrevVertex = true
}

// SetNextVertex establishes connectivity to a vertex that follows the last
// vertex. May be used to connect an endpoint to another chain.
func (shape *CB2ChainShape) SetNextVertex(nextVertex CB2Vec2) {
	shape.NextVertex = nextVertex
	shape.HasNextVertex = true
}

func (shape *CB2ChainShape) Clone() CB2ShapeInterface {
	clone := NewCB2ChainShape()
	clone.Vertices = make([]CB2Vec2, len(shape.Vertices))
	copy(clone.Vertices, shape.Vertices)
	clone.PrevVertex = shape.PrevVertex
	clone.NextVertex = shape.NextVertex
	clone.HasPrevVertex = shape.HasPrevVertex
	clone.HasNextVertex = shape.HasNextVertex
	return clone
}

// GetChildCount returns the number of edges.
func (shape *CB2ChainShape) GetChildCount() int {
	return len(shape.Vertices) - 1
}

// GetChildEdge writes the child edge, including the adjacency information
// implied by the neighbouring chain vertices.
func (shape *CB2ChainShape) GetChildEdge(edge *CB2EdgeShape, index int) {
	CB2Assert(0 <= index && index < len(shape.Vertices)-1)
	edge.shapeType = CB2Shape_Edge
	edge.radius = shape.radius

	edge.Vertex1 = shape.Vertices[index]
	edge.Vertex2 = shape.Vertices[index+1]

	if index > 0 {
		edge.Vertex0 = shape.Vertices[index-1]
		edge.HasVertex0 = true
	} else {
		edge.Vertex0 = shape.PrevVertex
		edge.HasVertex0 = shape.HasPrevVertex
	}

	if index < len(shape.Vertices)-2 {
		edge.Vertex3 = shape.Vertices[index+2]
		edge.HasVertex3 = true
	} else {
		edge.Vertex3 = shape.NextVertex
		edge.HasVertex3 = shape.HasNextVertex
	}
}

func (shape *CB2ChainShape) TestPoint(xf CB2Transform, p CB2Vec2) bool {
	return false
}

func (shape *CB2ChainShape) RayCast(output *CB2RayCastOutput, input CB2RayCastInput, xf CB2Transform, childIndex int) bool {
	CB2Assert(childIndex < len(shape.Vertices)-1)

	edgeShape := MakeCB2EdgeShape()

	i1 := childIndex
	i2 := childIndex + 1
	if i2 == len(shape.Vertices) {
		i2 = 0
	}

	edgeShape.Vertex1 = shape.Vertices[i1]
	edgeShape.Vertex2 = shape.Vertices[i2]

	return edgeShape.RayCast(output, input, xf, 0)
}

func (shape *CB2ChainShape) ComputeAABB(aabb *CB2AABB, xf CB2Transform, childIndex int) {
	CB2Assert(childIndex < len(shape.Vertices)-1)

	i1 := childIndex
	i2 := childIndex + 1
	if i2 == len(shape.Vertices) {
		i2 = 0
	}

	v1 := CB2MulTransformVec2(xf, shape.Vertices[i1])
	v2 := CB2MulTransformVec2(xf, shape.Vertices[i2])

	aabb.LowerBound = CB2MinVec2(v1, v2)
	aabb.UpperBound = CB2MaxVec2(v1, v2)
}

// Chains have zero mass.
func (shape *CB2ChainShape) ComputeMass(massData *CB2MassData, density float64) {
	massData.Mass = 0.0
	massData.Center.SetZero()
	massData.I = 0.0
}
