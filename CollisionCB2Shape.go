package cinderbox2d

// This holds the mass data computed for a shape.
type CB2MassData struct {
	// The mass of the shape, usually in kilograms.
	Mass float64

	// The position of the shape's centroid relative to the shape's origin.
	Center CB2Vec2

	// The rotational inertia of the shape about the local origin.
	I float64
}

// Shape type tags, used to index the contact type registry.
const (
	CB2Shape_Circle    uint8 = 0
	CB2Shape_Edge      uint8 = 1
	CB2Shape_Polygon   uint8 = 2
	CB2Shape_Chain     uint8 = 3
	CB2Shape_TypeCount uint8 = 4
)

// A shape is used for collision detection. Shapes used for simulation are
// cloned when a fixture is created, so definitions can be reused. A shape may
// encapsulate one or more child primitives.
type CB2ShapeInterface interface {
	// Clone the concrete shape.
	Clone() CB2ShapeInterface

	// Get the type of this shape. You can use this to down cast to the
	// concrete shape.
	GetType() uint8

	// Get the shape radius (skin thickness for polygonal shapes).
	GetRadius() float64

	// Get the number of child primitives.
	GetChildCount() int

	// Test a point for containment in this shape. This only works for convex
	// shapes, with p in world coordinates.
	TestPoint(xf CB2Transform, p CB2Vec2) bool

	// Cast a ray against a child shape.
	RayCast(output *CB2RayCastOutput, input CB2RayCastInput, xf CB2Transform, childIndex int) bool

	// Compute the axis aligned bounding box for a child shape under the
	// given world transform.
	ComputeAABB(aabb *CB2AABB, xf CB2Transform, childIndex int)

	// Compute the mass properties of this shape using its dimensions and
	// density. The inertia tensor is computed about the local origin.
	ComputeMass(massData *CB2MassData, density float64)
}

type CB2Shape struct {
	shapeType uint8

	// Radius of a shape. For polygonal shapes this must be
	// CB2_polygonRadius; there is no support for rounded polygons.
	radius float64
}

func (shape *CB2Shape) GetType() uint8 {
	return shape.shapeType
}

func (shape *CB2Shape) GetRadius() float64 {
	return shape.radius
}
