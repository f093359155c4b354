package cinderbox2d

import "math"

// CB2MixFriction is the friction mixing law. The idea is to allow either
// fixture to drive the friction to zero. For example, anything slides on ice.
func CB2MixFriction(friction1, friction2 float64) float64 {
	return math.Sqrt(friction1 * friction2)
}

// CB2MixRestitution is the restitution mixing law. The idea is to allow
// anything to bounce off an inelastic surface. For example, a superball
// bounces on anything.
func CB2MixRestitution(restitution1, restitution2 float64) float64 {
	if restitution1 > restitution2 {
		return restitution1
	}
	return restitution2
}

// Factory functions stored in the contact type registry. Created contacts
// are backed by pointers.
type CB2ContactCreateFcn func(fixtureA *CB2Fixture, indexA int, fixtureB *CB2Fixture, indexB int) CB2ContactInterface
type CB2ContactDestroyFcn func(contact CB2ContactInterface)

// A registry slot for one ordered shape type pair. Primary marks the
// orientation the collider expects; the mirrored slot dispatches with the
// fixtures swapped.
type CB2ContactRegister struct {
	CreateFcn  CB2ContactCreateFcn
	DestroyFcn CB2ContactDestroyFcn
	Primary    bool
}

// A contact edge connects bodies and contacts together in a contact graph
// where each body is a node and each contact is an edge. A contact edge
// belongs to a doubly linked list maintained in each attached body. Each
// contact has two contact nodes, one for each attached body.
type CB2ContactEdge struct {
	// Provides quick access to the other body attached.
	Other   *CB2Body
	Contact CB2ContactInterface
	Prev    *CB2ContactEdge
	Next    *CB2ContactEdge
}

const (
	// Set when the shapes are touching.
	cb2Contact_touchingFlag uint32 = 0x0002

	// This contact can be disabled (by user).
	cb2Contact_enabledFlag uint32 = 0x0004

	// This contact needs filtering because a fixture filter was changed.
	cb2Contact_filterFlag uint32 = 0x0008
)

// The contact type registry, indexed by the shape type tags of both fixtures.
var cb2Registers [CB2Shape_TypeCount][CB2Shape_TypeCount]CB2ContactRegister
var cb2RegistersInitialized = false

// CB2ContactInterface manages contact between two shapes. A contact exists
// for each overlapping AABB pair in the broad-phase (except if filtered), so
// a contact object may exist that has no contact points.
type CB2ContactInterface interface {
	GetFlags() uint32
	SetFlags(flags uint32)

	GetPrev() CB2ContactInterface
	SetPrev(prev CB2ContactInterface)

	GetNext() CB2ContactInterface
	SetNext(next CB2ContactInterface)

	GetNodeA() *CB2ContactEdge
	GetNodeB() *CB2ContactEdge

	GetFixtureA() *CB2Fixture
	GetFixtureB() *CB2Fixture

	GetChildIndexA() int
	GetChildIndexB() int

	GetManifold() *CB2Manifold
	GetWorldManifold(worldManifold *CB2WorldManifold)

	GetFriction() float64
	SetFriction(friction float64)
	ResetFriction()

	GetRestitution() float64
	SetRestitution(restitution float64)
	ResetRestitution()

	GetTangentSpeed() float64
	SetTangentSpeed(tangentSpeed float64)

	IsTouching() bool
	IsEnabled() bool
	SetEnabled(flag bool)

	// Evaluate computes the manifold for the concrete shape pairing.
	Evaluate(manifold *CB2Manifold, xfA CB2Transform, xfB CB2Transform)

	FlagForFiltering()
}

type CB2Contact struct {
	flags uint32

	// Manager list pointers.
	prev CB2ContactInterface
	next CB2ContactInterface

	// Nodes for connecting bodies.
	nodeA *CB2ContactEdge
	nodeB *CB2ContactEdge

	fixtureA *CB2Fixture
	fixtureB *CB2Fixture

	indexA int
	indexB int

	manifold *CB2Manifold

	friction     float64
	restitution  float64
	tangentSpeed float64
}

func (contact *CB2Contact) GetFlags() uint32 {
	return contact.flags
}

func (contact *CB2Contact) SetFlags(flags uint32) {
	contact.flags = flags
}

func (contact *CB2Contact) GetPrev() CB2ContactInterface {
	return contact.prev
}

func (contact *CB2Contact) SetPrev(prev CB2ContactInterface) {
	contact.prev = prev
}

func (contact *CB2Contact) GetNext() CB2ContactInterface {
	return contact.next
}

func (contact *CB2Contact) SetNext(next CB2ContactInterface) {
	contact.next = next
}

func (contact *CB2Contact) GetNodeA() *CB2ContactEdge {
	return contact.nodeA
}

func (contact *CB2Contact) GetNodeB() *CB2ContactEdge {
	return contact.nodeB
}

func (contact *CB2Contact) GetFixtureA() *CB2Fixture {
	return contact.fixtureA
}

func (contact *CB2Contact) GetFixtureB() *CB2Fixture {
	return contact.fixtureB
}

func (contact *CB2Contact) GetChildIndexA() int {
	return contact.indexA
}

func (contact *CB2Contact) GetChildIndexB() int {
	return contact.indexB
}

func (contact *CB2Contact) GetManifold() *CB2Manifold {
	return contact.manifold
}

// GetWorldManifold evaluates the manifold in world coordinates using the
// current body transforms.
func (contact *CB2Contact) GetWorldManifold(worldManifold *CB2WorldManifold) {
	bodyA := contact.fixtureA.GetBody()
	bodyB := contact.fixtureB.GetBody()
	shapeA := contact.fixtureA.GetShape()
	shapeB := contact.fixtureB.GetShape()

	worldManifold.Initialize(contact.manifold, bodyA.GetTransform(), shapeA.GetRadius(), bodyB.GetTransform(), shapeB.GetRadius())
}

func (contact *CB2Contact) GetFriction() float64 {
	return contact.friction
}

// SetFriction overrides the mixed friction. The value persists until set or
// reset.
func (contact *CB2Contact) SetFriction(friction float64) {
	contact.friction = friction
}

func (contact *CB2Contact) ResetFriction() {
	contact.friction = CB2MixFriction(contact.fixtureA.friction, contact.fixtureB.friction)
}

func (contact *CB2Contact) GetRestitution() float64 {
	return contact.restitution
}

func (contact *CB2Contact) SetRestitution(restitution float64) {
	contact.restitution = restitution
}

func (contact *CB2Contact) ResetRestitution() {
	contact.restitution = CB2MixRestitution(contact.fixtureA.restitution, contact.fixtureB.restitution)
}

func (contact *CB2Contact) GetTangentSpeed() float64 {
	return contact.tangentSpeed
}

// SetTangentSpeed sets the desired tangent speed, for conveyor belts, in
// meters per second.
func (contact *CB2Contact) SetTangentSpeed(speed float64) {
	contact.tangentSpeed = speed
}

// SetEnabled enables or disables this contact for the current update only.
// The contact is re-enabled automatically on the next update.
func (contact *CB2Contact) SetEnabled(flag bool) {
	if flag {
		contact.flags |= cb2Contact_enabledFlag
	} else {
		contact.flags &= ^cb2Contact_enabledFlag
	}
}

func (contact *CB2Contact) IsEnabled() bool {
	return (contact.flags & cb2Contact_enabledFlag) != 0
}

// IsTouching reports whether the shapes touched on the last update.
func (contact *CB2Contact) IsTouching() bool {
	return (contact.flags & cb2Contact_touchingFlag) != 0
}

// FlagForFiltering marks the contact for filter re-evaluation on the next
// collision pass.
func (contact *CB2Contact) FlagForFiltering() {
	contact.flags |= cb2Contact_filterFlag
}

func cb2ContactInitializeRegisters() {
	cb2AddType(CB2CircleContact_Create, CB2CircleContact_Destroy, CB2Shape_Circle, CB2Shape_Circle)
	cb2AddType(CB2PolygonAndCircleContact_Create, CB2PolygonAndCircleContact_Destroy, CB2Shape_Polygon, CB2Shape_Circle)
	cb2AddType(CB2PolygonContact_Create, CB2PolygonContact_Destroy, CB2Shape_Polygon, CB2Shape_Polygon)
	cb2AddType(CB2EdgeAndCircleContact_Create, CB2EdgeAndCircleContact_Destroy, CB2Shape_Edge, CB2Shape_Circle)
	cb2AddType(CB2EdgeAndPolygonContact_Create, CB2EdgeAndPolygonContact_Destroy, CB2Shape_Edge, CB2Shape_Polygon)
	cb2AddType(CB2ChainAndCircleContact_Create, CB2ChainAndCircleContact_Destroy, CB2Shape_Chain, CB2Shape_Circle)
	cb2AddType(CB2ChainAndPolygonContact_Create, CB2ChainAndPolygonContact_Destroy, CB2Shape_Chain, CB2Shape_Polygon)
}

func cb2AddType(createFcn CB2ContactCreateFcn, destroyFcn CB2ContactDestroyFcn, type1 uint8, type2 uint8) {
	CB2Assert(type1 < CB2Shape_TypeCount)
	CB2Assert(type2 < CB2Shape_TypeCount)

	cb2Registers[type1][type2].CreateFcn = createFcn
	cb2Registers[type1][type2].DestroyFcn = destroyFcn
	cb2Registers[type1][type2].Primary = true

	if type1 != type2 {
		cb2Registers[type2][type1].CreateFcn = createFcn
		cb2Registers[type2][type1].DestroyFcn = destroyFcn
		cb2Registers[type2][type1].Primary = false
	}
}

// CB2ContactFactory creates a contact for the shape pairing of the two
// fixtures. For a non-primary registry slot the fixtures are swapped so that
// the collider always sees its expected orientation. Returns nil when no
// collider is registered for the pairing.
func CB2ContactFactory(fixtureA *CB2Fixture, indexA int, fixtureB *CB2Fixture, indexB int) CB2ContactInterface {
	if !cb2RegistersInitialized {
		cb2ContactInitializeRegisters()
		cb2RegistersInitialized = true
	}

	type1 := fixtureA.GetType()
	type2 := fixtureB.GetType()

	CB2Assert(type1 < CB2Shape_TypeCount)
	CB2Assert(type2 < CB2Shape_TypeCount)

	createFcn := cb2Registers[type1][type2].CreateFcn
	if createFcn != nil {
		if cb2Registers[type1][type2].Primary {
			return createFcn(fixtureA, indexA, fixtureB, indexB)
		}
		return createFcn(fixtureB, indexB, fixtureA, indexA)
	}

	return nil
}

// CB2ContactDestroy returns a contact to its registry slot. Both bodies are
// woken when a touching non-sensor contact is destroyed so they can react to
// the lost constraint.
func CB2ContactDestroy(contact CB2ContactInterface) {
	CB2Assert(cb2RegistersInitialized)

	fixtureA := contact.GetFixtureA()
	fixtureB := contact.GetFixtureB()

	if contact.GetManifold().PointCount > 0 && !fixtureA.IsSensor() && !fixtureB.IsSensor() {
		fixtureA.GetBody().SetAwake(true)
		fixtureB.GetBody().SetAwake(true)
	}

	typeA := fixtureA.GetType()
	typeB := fixtureB.GetType()

	CB2Assert(typeA < CB2Shape_TypeCount && typeB < CB2Shape_TypeCount)

	destroyFcn := cb2Registers[typeA][typeB].DestroyFcn
	destroyFcn(contact)
}

func MakeCB2Contact(fA *CB2Fixture, indexA int, fB *CB2Fixture, indexB int) CB2Contact {
	contact := CB2Contact{}
	contact.flags = cb2Contact_enabledFlag

	contact.fixtureA = fA
	contact.fixtureB = fB

	contact.indexA = indexA
	contact.indexB = indexB

	contact.manifold = &CB2Manifold{}

	contact.nodeA = &CB2ContactEdge{}
	contact.nodeB = &CB2ContactEdge{}

	contact.friction = CB2MixFriction(fA.friction, fB.friction)
	contact.restitution = CB2MixRestitution(fA.restitution, fB.restitution)

	return contact
}

// CB2ContactUpdate recomputes the contact manifold and touching status, warm
// starts persisting points, and fires the listener events implied by the
// touching transition.
// Note: the fixture AABBs are not assumed to overlap or be valid.
func CB2ContactUpdate(contact CB2ContactInterface, listener CB2ContactListenerInterface) {
	oldManifold := *contact.GetManifold()

	// Re-enable this contact.
	contact.SetFlags(contact.GetFlags() | cb2Contact_enabledFlag)

	touching := false
	wasTouching := (contact.GetFlags() & cb2Contact_touchingFlag) != 0

	sensorA := contact.GetFixtureA().IsSensor()
	sensorB := contact.GetFixtureB().IsSensor()
	sensor := sensorA || sensorB

	bodyA := contact.GetFixtureA().GetBody()
	bodyB := contact.GetFixtureB().GetBody()
	xfA := bodyA.GetTransform()
	xfB := bodyB.GetTransform()

	if sensor {
		// Sensors use the exact overlap test and never generate manifolds.
		shapeA := contact.GetFixtureA().GetShape()
		shapeB := contact.GetFixtureB().GetShape()
		touching = CB2TestOverlapShapes(shapeA, contact.GetChildIndexA(), shapeB, contact.GetChildIndexB(), xfA, xfB)

		contact.GetManifold().PointCount = 0
	} else {
		contact.Evaluate(contact.GetManifold(), xfA, xfB)
		touching = contact.GetManifold().PointCount > 0

		// Match old contact ids to new contact ids and copy the stored
		// impulses to warm start the solver.
		for i := 0; i < contact.GetManifold().PointCount; i++ {
			mp2 := &contact.GetManifold().Points[i]
			mp2.NormalImpulse = 0.0
			mp2.TangentImpulse = 0.0
			id2 := mp2.Id

			for j := 0; j < oldManifold.PointCount; j++ {
				mp1 := &oldManifold.Points[j]

				if mp1.Id.Key() == id2.Key() {
					mp2.NormalImpulse = mp1.NormalImpulse
					mp2.TangentImpulse = mp1.TangentImpulse
					break
				}
			}
		}

		if touching != wasTouching {
			bodyA.SetAwake(true)
			bodyB.SetAwake(true)
		}
	}

	if touching {
		contact.SetFlags(contact.GetFlags() | cb2Contact_touchingFlag)
	} else {
		contact.SetFlags(contact.GetFlags() & ^cb2Contact_touchingFlag)
	}

	if !wasTouching && touching && listener != nil {
		listener.BeginContact(contact)
	}

	if wasTouching && !touching && listener != nil {
		listener.EndContact(contact)
	}

	if !sensor && touching && listener != nil {
		listener.PreSolve(contact, oldManifold)
	}
}
