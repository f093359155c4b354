package cinderbox2d

// This holds contact filtering data.
type CB2Filter struct {
	// The collision category bits. Normally you would just set one bit.
	CategoryBits uint16

	// The collision mask bits. This states the categories that this shape
	// would accept for collision.
	MaskBits uint16

	// Collision groups allow a certain group of objects to never collide
	// (negative) or always collide (positive). Zero means no collision group.
	// Non-zero group filtering always wins against the mask bits.
	GroupIndex int16
}

func MakeCB2Filter() CB2Filter {
	return CB2Filter{
		CategoryBits: 0x0001,
		MaskBits:     0xFFFF,
		GroupIndex:   0,
	}
}

// A fixture definition is used to create a fixture. Definitions can be reused
// safely; the shape is cloned on creation.
type CB2FixtureDef struct {
	// The shape. This must be set.
	Shape CB2ShapeInterface

	// Use this to store application specific fixture data.
	UserData interface{}

	// The friction coefficient, usually in the range [0,1].
	Friction float64

	// The restitution (elasticity) usually in the range [0,1].
	Restitution float64

	// The density, usually in kg/m^2.
	Density float64

	// A sensor shape collects contact information but never generates a
	// collision response.
	IsSensor bool

	// Contact filtering data.
	Filter CB2Filter
}

func MakeCB2FixtureDef() CB2FixtureDef {
	return CB2FixtureDef{
		Friction: 0.2,
		Filter:   MakeCB2Filter(),
	}
}

// CB2FixtureProxy connects one child shape of a fixture to the broad-phase.
type CB2FixtureProxy struct {
	Aabb       CB2AABB
	Fixture    *CB2Fixture
	ChildIndex int
	ProxyId    int
}

// A fixture attaches a shape to a body for collision detection. A fixture
// inherits its transform from its parent and holds the non-geometric data
// such as friction, the sensor flag, and collision filters. Fixtures are
// created via CB2Body.CreateFixture and cannot be reused.
type CB2Fixture struct {
	density float64

	next *CB2Fixture
	body *CB2Body

	shape CB2ShapeInterface

	friction    float64
	restitution float64

	proxies    []CB2FixtureProxy
	proxyCount int

	filter CB2Filter

	isSensor bool

	userData interface{}
}

// GetType returns the shape type tag, used to select the contact collider.
func (fix *CB2Fixture) GetType() uint8 {
	return fix.shape.GetType()
}

func (fix *CB2Fixture) GetShape() CB2ShapeInterface {
	return fix.shape
}

func (fix *CB2Fixture) IsSensor() bool {
	return fix.isSensor
}

func (fix *CB2Fixture) GetFilterData() CB2Filter {
	return fix.filter
}

func (fix *CB2Fixture) GetUserData() interface{} {
	return fix.userData
}

func (fix *CB2Fixture) SetUserData(data interface{}) {
	fix.userData = data
}

func (fix *CB2Fixture) GetBody() *CB2Body {
	return fix.body
}

func (fix *CB2Fixture) GetNext() *CB2Fixture {
	return fix.next
}

func (fix *CB2Fixture) SetDensity(density float64) {
	CB2Assert(density >= 0.0)
	fix.density = density
}

func (fix *CB2Fixture) GetDensity() float64 {
	return fix.density
}

func (fix *CB2Fixture) GetFriction() float64 {
	return fix.friction
}

// SetFriction does not change the friction of existing contacts; use
// CB2ContactInterface.ResetFriction for that.
func (fix *CB2Fixture) SetFriction(friction float64) {
	fix.friction = friction
}

func (fix *CB2Fixture) GetRestitution() float64 {
	return fix.restitution
}

func (fix *CB2Fixture) SetRestitution(restitution float64) {
	fix.restitution = restitution
}

func (fix *CB2Fixture) TestPoint(p CB2Vec2) bool {
	return fix.shape.TestPoint(fix.body.GetTransform(), p)
}

func (fix *CB2Fixture) RayCast(output *CB2RayCastOutput, input CB2RayCastInput, childIndex int) bool {
	return fix.shape.RayCast(output, input, fix.body.GetTransform(), childIndex)
}

func (fix *CB2Fixture) GetMassData(massData *CB2MassData) {
	fix.shape.ComputeMass(massData, fix.density)
}

// GetAABB returns the fixture's AABB in the broad-phase. This is the fattened
// AABB of a child shape, so it may be larger than the shape itself.
func (fix *CB2Fixture) GetAABB(childIndex int) CB2AABB {
	CB2Assert(0 <= childIndex && childIndex < fix.proxyCount)
	return fix.proxies[childIndex].Aabb
}

func (fix *CB2Fixture) create(body *CB2Body, def *CB2FixtureDef) {
	fix.userData = def.UserData
	fix.friction = def.Friction
	fix.restitution = def.Restitution

	fix.body = body
	fix.next = nil

	fix.filter = def.Filter
	fix.isSensor = def.IsSensor

	fix.shape = def.Shape.Clone()

	// Reserve proxy space.
	childCount := fix.shape.GetChildCount()
	fix.proxies = make([]CB2FixtureProxy, childCount)
	for i := 0; i < childCount; i++ {
		fix.proxies[i].ProxyId = CB2_nullProxy
	}
	fix.proxyCount = 0

	fix.density = def.Density
}

func (fix *CB2Fixture) destroy() {
	// The proxies must be destroyed before calling this.
	CB2Assert(fix.proxyCount == 0)

	fix.proxies = nil
	fix.shape = nil
}

func (fix *CB2Fixture) createProxies(broadPhase *CB2BroadPhase, xf CB2Transform) {
	CB2Assert(fix.proxyCount == 0)

	// Create proxies in the broad-phase.
	fix.proxyCount = fix.shape.GetChildCount()

	for i := 0; i < fix.proxyCount; i++ {
		proxy := &fix.proxies[i]
		fix.shape.ComputeAABB(&proxy.Aabb, xf, i)
		proxy.ProxyId = broadPhase.CreateProxy(proxy.Aabb, proxy)
		proxy.Fixture = fix
		proxy.ChildIndex = i
	}
}

func (fix *CB2Fixture) destroyProxies(broadPhase *CB2BroadPhase) {
	for i := 0; i < fix.proxyCount; i++ {
		proxy := &fix.proxies[i]
		broadPhase.DestroyProxy(proxy.ProxyId)
		proxy.ProxyId = CB2_nullProxy
	}

	fix.proxyCount = 0
}

func (fix *CB2Fixture) synchronize(broadPhase *CB2BroadPhase, transform1 CB2Transform, transform2 CB2Transform) {
	if fix.proxyCount == 0 {
		return
	}

	for i := 0; i < fix.proxyCount; i++ {
		proxy := &fix.proxies[i]

		// Compute an AABB that covers the swept shape (may miss some rotation
		// effect).
		var aabb1, aabb2 CB2AABB
		fix.shape.ComputeAABB(&aabb1, transform1, proxy.ChildIndex)
		fix.shape.ComputeAABB(&aabb2, transform2, proxy.ChildIndex)

		proxy.Aabb.CombineTwo(aabb1, aabb2)

		displacement := transform2.P.Sub(transform1.P)

		broadPhase.MoveProxy(proxy.ProxyId, proxy.Aabb, displacement)
	}
}

// SetFilterData sets the contact filtering data. This will not update contacts
// until the next collision pass, and may not take effect at all if the
// fixtures are no longer candidates in the broad-phase.
func (fix *CB2Fixture) SetFilterData(filter CB2Filter) {
	fix.filter = filter
	fix.Refilter()
}

// Refilter flags associated contacts for re-filtering and touches the
// broad-phase proxies so new pairs may be created.
func (fix *CB2Fixture) Refilter() {
	if fix.body == nil {
		return
	}

	// Flag associated contacts for filtering.
	edge := fix.body.GetContactList()
	for edge != nil {
		contact := edge.Contact
		fixtureA := contact.GetFixtureA()
		fixtureB := contact.GetFixtureB()
		if fixtureA == fix || fixtureB == fix {
			contact.FlagForFiltering()
		}

		edge = edge.Next
	}

	manager := fix.body.manager
	if manager == nil {
		return
	}

	// Touch each proxy so that new pairs may be created.
	broadPhase := &manager.broadPhase
	for i := 0; i < fix.proxyCount; i++ {
		broadPhase.TouchProxy(fix.proxies[i].ProxyId)
	}
}

// SetSensor sets whether this fixture is a sensor. A sensor reports overlap
// through Begin and End events but never produces a manifold.
func (fix *CB2Fixture) SetSensor(sensor bool) {
	if sensor != fix.isSensor {
		fix.body.SetAwake(true)
		fix.isSensor = sensor
	}
}
