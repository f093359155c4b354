package cinderbox2d

// CB2ContactManager owns the broad-phase, the body list, and the contact
// list. It delegates pair management to the broad-phase and narrow-phase
// manifold evaluation to the contact type registry. A typical collision pass
// is FindNewContacts followed by Collide.
type CB2ContactManager struct {
	broadPhase CB2BroadPhase

	contactList  CB2ContactInterface
	contactCount int

	bodyList  *CB2Body
	bodyCount int

	contactFilter   CB2ContactFilterInterface
	contactListener CB2ContactListenerInterface
}

func MakeCB2ContactManager() CB2ContactManager {
	return CB2ContactManager{
		broadPhase:    MakeCB2BroadPhase(),
		contactFilter: &CB2ContactFilter{},
	}
}

func NewCB2ContactManager() *CB2ContactManager {
	res := MakeCB2ContactManager()
	return &res
}

// GetBroadPhase exposes the broad-phase for queries and ray casts.
func (mgr *CB2ContactManager) GetBroadPhase() *CB2BroadPhase {
	return &mgr.broadPhase
}

// SetContactFilter registers a custom pair filter. A nil filter accepts all
// pairs.
func (mgr *CB2ContactManager) SetContactFilter(filter CB2ContactFilterInterface) {
	mgr.contactFilter = filter
}

// SetContactListener registers the listener that receives BeginContact,
// EndContact, and PreSolve events.
func (mgr *CB2ContactManager) SetContactListener(listener CB2ContactListenerInterface) {
	mgr.contactListener = listener
}

func (mgr *CB2ContactManager) GetContactList() CB2ContactInterface {
	return mgr.contactList
}

func (mgr *CB2ContactManager) GetContactCount() int {
	return mgr.contactCount
}

func (mgr *CB2ContactManager) GetBodyList() *CB2Body {
	return mgr.bodyList
}

func (mgr *CB2ContactManager) GetBodyCount() int {
	return mgr.bodyCount
}

// CreateBody creates a body from a definition and registers it with this
// manager.
func (mgr *CB2ContactManager) CreateBody(def *CB2BodyDef) *CB2Body {
	body := newCB2Body(def, mgr)

	// Add to doubly linked list.
	body.prev = nil
	body.next = mgr.bodyList
	if mgr.bodyList != nil {
		mgr.bodyList.prev = body
	}
	mgr.bodyList = body
	mgr.bodyCount++

	return body
}

// DestroyBody destroys a body, its contacts, and its fixtures.
func (mgr *CB2ContactManager) DestroyBody(body *CB2Body) {
	CB2Assert(mgr.bodyCount > 0)

	// Delete the attached contacts.
	ce := body.contactList
	for ce != nil {
		ce0 := ce
		ce = ce.Next
		mgr.Destroy(ce0.Contact)
	}
	body.contactList = nil

	// Delete the attached fixtures and their broad-phase proxies.
	f := body.fixtureList
	for f != nil {
		f0 := f
		f = f.next

		f0.destroyProxies(&mgr.broadPhase)
		f0.destroy()
	}
	body.fixtureList = nil
	body.fixtureCount = 0

	// Remove from the body list.
	if body.prev != nil {
		body.prev.next = body.next
	}
	if body.next != nil {
		body.next.prev = body.prev
	}
	if body == mgr.bodyList {
		mgr.bodyList = body.next
	}

	mgr.bodyCount--
}

// Destroy removes a contact from the manager and both bodies, firing
// EndContact if the contact was touching.
func (mgr *CB2ContactManager) Destroy(c CB2ContactInterface) {
	fixtureA := c.GetFixtureA()
	fixtureB := c.GetFixtureB()
	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	if mgr.contactListener != nil && c.IsTouching() {
		mgr.contactListener.EndContact(c)
	}

	// Remove from the manager list.
	if c.GetPrev() != nil {
		c.GetPrev().SetNext(c.GetNext())
	}

	if c.GetNext() != nil {
		c.GetNext().SetPrev(c.GetPrev())
	}

	if c == mgr.contactList {
		mgr.contactList = c.GetNext()
	}

	// Remove from body A.
	if c.GetNodeA().Prev != nil {
		c.GetNodeA().Prev.Next = c.GetNodeA().Next
	}

	if c.GetNodeA().Next != nil {
		c.GetNodeA().Next.Prev = c.GetNodeA().Prev
	}

	if c.GetNodeA() == bodyA.contactList {
		bodyA.contactList = c.GetNodeA().Next
	}

	// Remove from body B.
	if c.GetNodeB().Prev != nil {
		c.GetNodeB().Prev.Next = c.GetNodeB().Next
	}

	if c.GetNodeB().Next != nil {
		c.GetNodeB().Next.Prev = c.GetNodeB().Prev
	}

	if c.GetNodeB() == bodyB.contactList {
		bodyB.contactList = c.GetNodeB().Next
	}

	// Call the factory.
	CB2ContactDestroy(c)
	mgr.contactCount--
}

// Collide is the top level narrow-phase call for a collision pass. Each
// contact in the list is re-filtered if flagged, destroyed if its proxies no
// longer overlap, or updated otherwise.
func (mgr *CB2ContactManager) Collide() {
	c := mgr.contactList

	for c != nil {
		fixtureA := c.GetFixtureA()
		fixtureB := c.GetFixtureB()
		indexA := c.GetChildIndexA()
		indexB := c.GetChildIndexB()
		bodyA := fixtureA.GetBody()
		bodyB := fixtureB.GetBody()

		// Is this contact flagged for filtering?
		if (c.GetFlags() & cb2Contact_filterFlag) != 0 {
			// Should these bodies collide?
			if !bodyB.ShouldCollide(bodyA) {
				cNuke := c
				c = cNuke.GetNext()
				mgr.Destroy(cNuke)
				continue
			}

			// Check user filtering.
			if mgr.contactFilter != nil && !mgr.contactFilter.ShouldCollide(fixtureA, fixtureB) {
				cNuke := c
				c = cNuke.GetNext()
				mgr.Destroy(cNuke)
				continue
			}

			// Clear the filtering flag.
			c.SetFlags(c.GetFlags() & ^cb2Contact_filterFlag)
		}

		activeA := bodyA.IsAwake() && bodyA.bodyType != CB2BodyType_Static
		activeB := bodyB.IsAwake() && bodyB.bodyType != CB2BodyType_Static

		// At least one body must be awake and it must be dynamic or
		// kinematic.
		if !activeA && !activeB {
			c = c.GetNext()
			continue
		}

		proxyIdA := fixtureA.proxies[indexA].ProxyId
		proxyIdB := fixtureB.proxies[indexB].ProxyId
		overlap := mgr.broadPhase.TestOverlap(proxyIdA, proxyIdB)

		// Here we destroy contacts that cease to overlap in the broad-phase.
		if !overlap {
			cNuke := c
			c = cNuke.GetNext()
			mgr.Destroy(cNuke)
			continue
		}

		// The contact persists.
		CB2ContactUpdate(c, mgr.contactListener)
		c = c.GetNext()
	}
}

// FindNewContacts queries the broad-phase for moved proxies and creates a
// contact for each new candidate pair.
func (mgr *CB2ContactManager) FindNewContacts() {
	mgr.broadPhase.UpdatePairs(mgr.AddPair)
}

// AddPair is the broad-phase pair callback. It rejects same-body pairs,
// duplicates, and filtered pairs, then creates the contact and links it into
// the manager and both bodies.
func (mgr *CB2ContactManager) AddPair(proxyUserDataA interface{}, proxyUserDataB interface{}) {
	proxyA := proxyUserDataA.(*CB2FixtureProxy)
	proxyB := proxyUserDataB.(*CB2FixtureProxy)

	fixtureA := proxyA.Fixture
	fixtureB := proxyB.Fixture

	indexA := proxyA.ChildIndex
	indexB := proxyB.ChildIndex

	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	// Are the fixtures on the same body?
	if bodyA == bodyB {
		return
	}

	// Does a contact already exist?
	edge := bodyB.GetContactList()
	for edge != nil {
		if edge.Other == bodyA {
			fA := edge.Contact.GetFixtureA()
			fB := edge.Contact.GetFixtureB()
			iA := edge.Contact.GetChildIndexA()
			iB := edge.Contact.GetChildIndexB()

			if fA == fixtureA && fB == fixtureB && iA == indexA && iB == indexB {
				// A contact already exists.
				return
			}

			if fA == fixtureB && fB == fixtureA && iA == indexB && iB == indexA {
				// A contact already exists.
				return
			}
		}

		edge = edge.Next
	}

	// Is at least one body dynamic?
	if !bodyB.ShouldCollide(bodyA) {
		return
	}

	// Check user filtering.
	if mgr.contactFilter != nil && !mgr.contactFilter.ShouldCollide(fixtureA, fixtureB) {
		return
	}

	// Call the factory.
	c := CB2ContactFactory(fixtureA, indexA, fixtureB, indexB)
	if c == nil {
		return
	}

	// Contact creation may swap fixtures.
	fixtureA = c.GetFixtureA()
	fixtureB = c.GetFixtureB()
	bodyA = fixtureA.GetBody()
	bodyB = fixtureB.GetBody()

	// Insert into the manager list.
	c.SetPrev(nil)
	c.SetNext(mgr.contactList)
	if mgr.contactList != nil {
		mgr.contactList.SetPrev(c)
	}
	mgr.contactList = c

	// Connect to body A.
	c.GetNodeA().Contact = c
	c.GetNodeA().Other = bodyB

	c.GetNodeA().Prev = nil
	c.GetNodeA().Next = bodyA.contactList
	if bodyA.contactList != nil {
		bodyA.contactList.Prev = c.GetNodeA()
	}
	bodyA.contactList = c.GetNodeA()

	// Connect to body B.
	c.GetNodeB().Contact = c
	c.GetNodeB().Other = bodyA

	c.GetNodeB().Prev = nil
	c.GetNodeB().Next = bodyB.contactList
	if bodyB.contactList != nil {
		bodyB.contactList.Prev = c.GetNodeB()
	}
	bodyB.contactList = c.GetNodeB()

	// Wake up the bodies.
	if !fixtureA.IsSensor() && !fixtureB.IsSensor() {
		bodyA.SetAwake(true)
		bodyB.SetAwake(true)
	}

	mgr.contactCount++
}

// Query visits each fixture whose broad-phase proxy overlaps the supplied
// box.
func (mgr *CB2ContactManager) Query(callback CB2FixtureQueryCallback, aabb CB2AABB) {
	mgr.broadPhase.Query(func(proxyId int) bool {
		proxy := mgr.broadPhase.GetUserData(proxyId).(*CB2FixtureProxy)
		return callback(proxy.Fixture)
	}, aabb)
}

// RayCast casts a ray against all fixtures in the broad-phase. The callback
// controls the ray continuation, see CB2FixtureRaycastCallback.
func (mgr *CB2ContactManager) RayCast(callback CB2FixtureRaycastCallback, point1 CB2Vec2, point2 CB2Vec2) {
	input := CB2RayCastInput{
		P1:          point1,
		P2:          point2,
		MaxFraction: 1.0,
	}

	mgr.broadPhase.RayCast(func(subInput CB2RayCastInput, proxyId int) float64 {
		proxy := mgr.broadPhase.GetUserData(proxyId).(*CB2FixtureProxy)
		fixture := proxy.Fixture
		index := proxy.ChildIndex

		var output CB2RayCastOutput
		hit := fixture.RayCast(&output, subInput, index)
		if hit {
			fraction := output.Fraction
			point := subInput.P1.Scale(1.0 - fraction).Add(subInput.P2.Scale(fraction))
			return callback(fixture, point, output.Normal, fraction)
		}

		return subInput.MaxFraction
	}, input)
}
