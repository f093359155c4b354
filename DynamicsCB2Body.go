package cinderbox2d

// Body type tags.
// A static body has zero velocity and never collides with other static or
// kinematic bodies. A kinematic body moves under external control. A dynamic
// body is fully simulated.
const (
	CB2BodyType_Static    uint8 = 0
	CB2BodyType_Kinematic uint8 = 1
	CB2BodyType_Dynamic   uint8 = 2
)

// A body definition holds all the data needed to construct a body.
// Definitions can be reused safely.
type CB2BodyDef struct {
	// The body type: static, kinematic, or dynamic.
	Type uint8

	// The world position of the body origin.
	Position CB2Vec2

	// The world angle of the body in radians.
	Angle float64

	// Is this body initially awake?
	Awake bool

	// Use this to store application specific body data.
	UserData interface{}
}

func MakeCB2BodyDef() CB2BodyDef {
	return CB2BodyDef{
		Type:  CB2BodyType_Static,
		Awake: true,
	}
}

// A body carries a transform and a list of fixtures. Fixture proxies live in
// the broad-phase of the contact manager the body is registered with; moving
// the body keeps them synchronized.
type CB2Body struct {
	bodyType uint8

	xf CB2Transform

	awake bool

	manager *CB2ContactManager

	fixtureList  *CB2Fixture
	fixtureCount int

	contactList *CB2ContactEdge

	prev *CB2Body
	next *CB2Body

	userData interface{}
}

func newCB2Body(def *CB2BodyDef, manager *CB2ContactManager) *CB2Body {
	CB2Assert(def.Position.IsValid())

	body := &CB2Body{}
	body.bodyType = def.Type
	body.xf = MakeCB2TransformFromPositionAndAngle(def.Position, def.Angle)
	body.awake = def.Awake
	body.manager = manager
	body.userData = def.UserData

	return body
}

func (body *CB2Body) GetType() uint8 {
	return body.bodyType
}

// SetType changes the body type. Attached contacts are destroyed and the
// proxies are touched so that appropriate pairs are recreated on the next
// collision pass.
func (body *CB2Body) SetType(bodyType uint8) {
	if body.bodyType == bodyType {
		return
	}

	body.bodyType = bodyType

	body.SetAwake(true)

	// Delete the attached contacts.
	ce := body.contactList
	for ce != nil {
		ce0 := ce
		ce = ce.Next
		body.manager.Destroy(ce0.Contact)
	}
	body.contactList = nil

	// Touch the proxies so that new contacts will be created (when
	// appropriate).
	broadPhase := &body.manager.broadPhase
	for f := body.fixtureList; f != nil; f = f.next {
		for i := 0; i < f.proxyCount; i++ {
			broadPhase.TouchProxy(f.proxies[i].ProxyId)
		}
	}
}

func (body *CB2Body) GetTransform() CB2Transform {
	return body.xf
}

func (body *CB2Body) GetPosition() CB2Vec2 {
	return body.xf.P
}

func (body *CB2Body) GetAngle() float64 {
	return body.xf.Q.GetAngle()
}

// SetTransform moves the body origin to the given position and angle and
// synchronizes the fixture proxies in the broad-phase. New contacts are not
// created until the next call to CB2ContactManager.FindNewContacts.
func (body *CB2Body) SetTransform(position CB2Vec2, angle float64) {
	xf1 := body.xf

	body.xf.Q.Set(angle)
	body.xf.P = position

	broadPhase := &body.manager.broadPhase
	for f := body.fixtureList; f != nil; f = f.next {
		f.synchronize(broadPhase, xf1, body.xf)
	}
}

// SetAwake sets the sleep state of the body. Contacts on a sleeping body are
// not updated.
func (body *CB2Body) SetAwake(flag bool) {
	body.awake = flag
}

func (body *CB2Body) IsAwake() bool {
	return body.awake
}

func (body *CB2Body) GetFixtureList() *CB2Fixture {
	return body.fixtureList
}

func (body *CB2Body) GetContactList() *CB2ContactEdge {
	return body.contactList
}

func (body *CB2Body) GetNext() *CB2Body {
	return body.next
}

func (body *CB2Body) SetUserData(data interface{}) {
	body.userData = data
}

func (body *CB2Body) GetUserData() interface{} {
	return body.userData
}

// ShouldCollide reports whether this body can collide with other. At least
// one body must be dynamic.
func (body *CB2Body) ShouldCollide(other *CB2Body) bool {
	if body.bodyType != CB2BodyType_Dynamic && other.bodyType != CB2BodyType_Dynamic {
		return false
	}

	return true
}

// CreateFixtureFromDef creates a fixture and attaches it to this body. This
// also creates the broad-phase proxies for each child shape.
func (body *CB2Body) CreateFixtureFromDef(def *CB2FixtureDef) *CB2Fixture {
	fixture := &CB2Fixture{}
	fixture.create(body, def)

	broadPhase := &body.manager.broadPhase
	fixture.createProxies(broadPhase, body.xf)

	fixture.next = body.fixtureList
	body.fixtureList = fixture
	body.fixtureCount++

	fixture.body = body

	return fixture
}

// CreateFixture creates a fixture from a shape and density, using default
// values for the remaining definition fields.
func (body *CB2Body) CreateFixture(shape CB2ShapeInterface, density float64) *CB2Fixture {
	def := MakeCB2FixtureDef()
	def.Shape = shape
	def.Density = density

	return body.CreateFixtureFromDef(&def)
}

// DestroyFixture removes a fixture from this body, destroys all contacts
// associated with it, and destroys its broad-phase proxies.
func (body *CB2Body) DestroyFixture(fixture *CB2Fixture) {
	if fixture == nil {
		return
	}

	CB2Assert(fixture.body == body)

	// Remove the fixture from this body's singly linked list.
	CB2Assert(body.fixtureCount > 0)
	node := &body.fixtureList
	found := false
	for *node != nil {
		if *node == fixture {
			*node = fixture.next
			found = true
			break
		}

		node = &(*node).next
	}

	// You tried to remove a shape that is not attached to this body.
	CB2Assert(found)

	// Destroy any contacts associated with the fixture.
	edge := body.contactList
	for edge != nil {
		c := edge.Contact
		edge = edge.Next

		fixtureA := c.GetFixtureA()
		fixtureB := c.GetFixtureB()

		if fixture == fixtureA || fixture == fixtureB {
			// This destroys the contact and removes it from this body's
			// contact list.
			body.manager.Destroy(c)
		}
	}

	broadPhase := &body.manager.broadPhase
	fixture.destroyProxies(broadPhase)

	fixture.body = nil
	fixture.next = nil
	fixture.destroy()

	body.fixtureCount--
}
