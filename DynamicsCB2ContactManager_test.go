package cinderbox2d

import (
	"testing"
)

type recordingListener struct {
	begins    int
	ends      int
	preSolves int

	disableNext bool
}

func (l *recordingListener) BeginContact(contact CB2ContactInterface) {
	l.begins++
}

func (l *recordingListener) EndContact(contact CB2ContactInterface) {
	l.ends++
}

func (l *recordingListener) PreSolve(contact CB2ContactInterface, oldManifold CB2Manifold) {
	l.preSolves++
	if l.disableNext {
		contact.SetEnabled(false)
		l.disableNext = false
	}
}

func makeCircleBody(mgr *CB2ContactManager, bodyType uint8, x, y, radius float64) *CB2Body {
	def := MakeCB2BodyDef()
	def.Type = bodyType
	def.Position = MakeCB2Vec2(x, y)
	body := mgr.CreateBody(&def)

	circle := NewCB2CircleShape()
	circle.SetRadius(radius)
	body.CreateFixture(circle, 1.0)

	return body
}

func step(mgr *CB2ContactManager) {
	mgr.FindNewContacts()
	mgr.Collide()
}

func TestContactBeginAndEndFireOncePerTransition(t *testing.T) {
	mgr := NewCB2ContactManager()
	listener := &recordingListener{}
	mgr.SetContactListener(listener)

	makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	mover := makeCircleBody(mgr, CB2BodyType_Dynamic, 1.5, 0.0, 1.0)

	step(mgr)

	if mgr.GetContactCount() != 1 {
		t.Fatalf("contact count is %d, want 1", mgr.GetContactCount())
	}
	if listener.begins != 1 {
		t.Fatalf("begin fired %d times, want 1", listener.begins)
	}

	// Touching again in the same configuration must not refire begin.
	step(mgr)
	if listener.begins != 1 {
		t.Fatalf("begin refired without a transition: %d", listener.begins)
	}

	// Separate the shapes but keep the fat AABBs overlapping.
	mover.SetTransform(MakeCB2Vec2(2.05, 0.0), 0.0)
	step(mgr)

	if listener.ends != 1 {
		t.Fatalf("end fired %d times, want 1", listener.ends)
	}

	c := mgr.GetContactList()
	if c == nil || c.IsTouching() {
		t.Fatalf("contact should persist untouching after separation")
	}

	// Approach again, begin fires a second time.
	mover.SetTransform(MakeCB2Vec2(1.5, 0.0), 0.0)
	step(mgr)
	if listener.begins != 2 {
		t.Fatalf("begin fired %d times after re-approach, want 2", listener.begins)
	}
}

func TestContactDestroyedWhenProxiesSeparate(t *testing.T) {
	mgr := NewCB2ContactManager()
	listener := &recordingListener{}
	mgr.SetContactListener(listener)

	makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	mover := makeCircleBody(mgr, CB2BodyType_Dynamic, 1.5, 0.0, 1.0)

	step(mgr)
	if mgr.GetContactCount() != 1 {
		t.Fatalf("contact count is %d, want 1", mgr.GetContactCount())
	}

	// Move far away in two steps. The first swept AABB still covers the old
	// position, the second leaves the overlap region, so the contact is
	// destroyed and end fires for the touching contact.
	mover.SetTransform(MakeCB2Vec2(50.0, 0.0), 0.0)
	mover.SetTransform(MakeCB2Vec2(200.0, 0.0), 0.0)
	step(mgr)

	if mgr.GetContactCount() != 0 {
		t.Fatalf("contact count is %d after separation, want 0", mgr.GetContactCount())
	}
	if listener.ends != 1 {
		t.Fatalf("end fired %d times, want 1", listener.ends)
	}
}

func TestContactWarmStartImpulseCarryOver(t *testing.T) {
	mgr := NewCB2ContactManager()

	makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	mover := makeCircleBody(mgr, CB2BodyType_Dynamic, 1.5, 0.0, 1.0)

	step(mgr)

	c := mgr.GetContactList()
	if c == nil || !c.IsTouching() {
		t.Fatalf("expected a touching contact")
	}

	manifold := c.GetManifold()
	if manifold.PointCount != 1 {
		t.Fatalf("point count is %d, want 1", manifold.PointCount)
	}
	manifold.Points[0].NormalImpulse = 1.5
	manifold.Points[0].TangentImpulse = 0.25

	// A small move keeps the same contact id, so the impulses carry over.
	mover.SetTransform(MakeCB2Vec2(1.4, 0.0), 0.0)
	step(mgr)

	manifold = c.GetManifold()
	if manifold.Points[0].NormalImpulse != 1.5 {
		t.Fatalf("normal impulse is %g after the update, want 1.5", manifold.Points[0].NormalImpulse)
	}
	if manifold.Points[0].TangentImpulse != 0.25 {
		t.Fatalf("tangent impulse is %g after the update, want 0.25", manifold.Points[0].TangentImpulse)
	}
}

func TestContactWarmStartUnmatchedPointStartsAtZero(t *testing.T) {
	mgr := NewCB2ContactManager()

	makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	makeCircleBody(mgr, CB2BodyType_Dynamic, 1.5, 0.0, 1.0)

	step(mgr)

	c := mgr.GetContactList()
	if c == nil || !c.IsTouching() {
		t.Fatalf("expected a touching contact")
	}

	// Give the stored point an id from a different feature pairing. The next
	// update produces a point whose id has no match in the old manifold, so
	// its impulses must start at zero rather than inherit the stale ones.
	manifold := c.GetManifold()
	manifold.Points[0].NormalImpulse = 2.0
	manifold.Points[0].TangentImpulse = 1.0
	manifold.Points[0].Id.SetKey(0xABCD)

	mgr.Collide()

	manifold = c.GetManifold()
	if manifold.PointCount != 1 {
		t.Fatalf("point count is %d, want 1", manifold.PointCount)
	}
	if manifold.Points[0].NormalImpulse != 0.0 {
		t.Fatalf("unmatched point kept normal impulse %g, want 0", manifold.Points[0].NormalImpulse)
	}
	if manifold.Points[0].TangentImpulse != 0.0 {
		t.Fatalf("unmatched point kept tangent impulse %g, want 0", manifold.Points[0].TangentImpulse)
	}
}

func TestContactDestroyWakesTouchingBodies(t *testing.T) {
	mgr := NewCB2ContactManager()

	anchor := makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	mover := makeCircleBody(mgr, CB2BodyType_Dynamic, 1.5, 0.0, 1.0)

	step(mgr)

	c := mgr.GetContactList()
	if c == nil || !c.IsTouching() {
		t.Fatalf("expected a touching contact")
	}

	anchor.SetAwake(false)
	mover.SetAwake(false)

	// Destroying a touching non-sensor contact wakes both bodies so they can
	// react to the lost constraint.
	mover.DestroyFixture(mover.GetFixtureList())

	if !anchor.IsAwake() {
		t.Fatalf("body A still asleep after a touching contact was destroyed")
	}
	if !mover.IsAwake() {
		t.Fatalf("body B still asleep after a touching contact was destroyed")
	}
}

func TestContactDestroySkipsWakeWithoutPoints(t *testing.T) {
	// An untouching contact has no manifold points, so destroying it leaves
	// sleeping bodies asleep.
	mgr := NewCB2ContactManager()

	anchor := makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	mover := makeCircleBody(mgr, CB2BodyType_Dynamic, 2.1, 0.0, 1.0)

	step(mgr)

	c := mgr.GetContactList()
	if c == nil {
		t.Fatalf("expected a contact from the overlapping fat AABBs")
	}
	if c.IsTouching() {
		t.Fatalf("shapes at distance 2.1 should not touch")
	}

	anchor.SetAwake(false)
	mover.SetAwake(false)

	mgr.Destroy(c)

	if anchor.IsAwake() || mover.IsAwake() {
		t.Fatalf("destroying an untouching contact woke a sleeping body")
	}

	// A sensor contact reports touching but never has manifold points, so it
	// does not wake on destruction either.
	mgr = NewCB2ContactManager()

	anchor = makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)

	def := MakeCB2BodyDef()
	def.Type = CB2BodyType_Dynamic
	def.Position = MakeCB2Vec2(1.5, 0.0)
	sensorBody := mgr.CreateBody(&def)

	circle := NewCB2CircleShape()
	circle.SetRadius(1.0)
	fd := MakeCB2FixtureDef()
	fd.Shape = circle
	fd.IsSensor = true
	sensorBody.CreateFixtureFromDef(&fd)

	step(mgr)

	c = mgr.GetContactList()
	if c == nil || !c.IsTouching() {
		t.Fatalf("sensor overlap not detected")
	}

	anchor.SetAwake(false)
	sensorBody.SetAwake(false)

	mgr.Destroy(c)

	if anchor.IsAwake() || sensorBody.IsAwake() {
		t.Fatalf("destroying a sensor contact woke a sleeping body")
	}
}

func TestSensorContactHasNoManifold(t *testing.T) {
	mgr := NewCB2ContactManager()
	listener := &recordingListener{}
	mgr.SetContactListener(listener)

	makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)

	def := MakeCB2BodyDef()
	def.Type = CB2BodyType_Dynamic
	def.Position = MakeCB2Vec2(1.5, 0.0)
	body := mgr.CreateBody(&def)

	circle := NewCB2CircleShape()
	circle.SetRadius(1.0)
	fd := MakeCB2FixtureDef()
	fd.Shape = circle
	fd.IsSensor = true
	body.CreateFixtureFromDef(&fd)

	step(mgr)

	c := mgr.GetContactList()
	if c == nil || !c.IsTouching() {
		t.Fatalf("sensor overlap not detected")
	}
	if c.GetManifold().PointCount != 0 {
		t.Fatalf("sensor manifold has %d points, want 0", c.GetManifold().PointCount)
	}
	if listener.begins != 1 {
		t.Fatalf("begin fired %d times for the sensor, want 1", listener.begins)
	}
	if listener.preSolves != 0 {
		t.Fatalf("pre-solve fired %d times for a sensor, want 0", listener.preSolves)
	}
}

func TestContactRegistryOrientsFixtures(t *testing.T) {
	// The polygon collider expects the polygon as fixture A. Adding the
	// fixtures in either order must produce the same orientation.
	for _, circleFirst := range []bool{true, false} {
		mgr := NewCB2ContactManager()

		addCircle := func(x float64) {
			makeCircleBody(mgr, CB2BodyType_Dynamic, x, 0.0, 1.0)
		}
		addBox := func(x float64) {
			def := MakeCB2BodyDef()
			def.Type = CB2BodyType_Dynamic
			def.Position = MakeCB2Vec2(x, 0.0)
			body := mgr.CreateBody(&def)

			box := NewCB2PolygonShape()
			box.SetAsBox(1.0, 1.0)
			body.CreateFixture(box, 1.0)
		}

		if circleFirst {
			addCircle(0.0)
			addBox(1.5)
		} else {
			addBox(1.5)
			addCircle(0.0)
		}

		step(mgr)

		c := mgr.GetContactList()
		if c == nil {
			t.Fatalf("no contact created (circleFirst=%v)", circleFirst)
		}
		if c.GetFixtureA().GetType() != CB2Shape_Polygon {
			t.Fatalf("fixture A has type %d, want polygon (circleFirst=%v)", c.GetFixtureA().GetType(), circleFirst)
		}
		if c.GetFixtureB().GetType() != CB2Shape_Circle {
			t.Fatalf("fixture B has type %d, want circle (circleFirst=%v)", c.GetFixtureB().GetType(), circleFirst)
		}
	}
}

func TestRefilterDestroysFilteredContact(t *testing.T) {
	mgr := NewCB2ContactManager()
	listener := &recordingListener{}
	mgr.SetContactListener(listener)

	bodyA := makeCircleBody(mgr, CB2BodyType_Dynamic, 0.0, 0.0, 1.0)
	bodyB := makeCircleBody(mgr, CB2BodyType_Dynamic, 1.5, 0.0, 1.0)

	step(mgr)
	if mgr.GetContactCount() != 1 {
		t.Fatalf("contact count is %d, want 1", mgr.GetContactCount())
	}

	// A shared negative group never collides.
	filter := MakeCB2Filter()
	filter.GroupIndex = -1
	bodyA.GetFixtureList().SetFilterData(filter)
	bodyB.GetFixtureList().SetFilterData(filter)

	mgr.Collide()

	if mgr.GetContactCount() != 0 {
		t.Fatalf("contact count is %d after refilter, want 0", mgr.GetContactCount())
	}
	if listener.ends != 1 {
		t.Fatalf("end fired %d times on filtered destruction, want 1", listener.ends)
	}

	// The touched proxies must not recreate the pair while filtered.
	step(mgr)
	if mgr.GetContactCount() != 0 {
		t.Fatalf("filtered pair was recreated")
	}
}

func TestStaticPairsNeverCollide(t *testing.T) {
	mgr := NewCB2ContactManager()

	makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	makeCircleBody(mgr, CB2BodyType_Static, 1.5, 0.0, 1.0)

	step(mgr)

	if mgr.GetContactCount() != 0 {
		t.Fatalf("contact count is %d for two static bodies, want 0", mgr.GetContactCount())
	}
}

func TestSleepingContactsAreNotUpdated(t *testing.T) {
	mgr := NewCB2ContactManager()

	makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	mover := makeCircleBody(mgr, CB2BodyType_Dynamic, 1.5, 0.0, 1.0)

	step(mgr)

	c := mgr.GetContactList()
	if c == nil || !c.IsTouching() {
		t.Fatalf("expected a touching contact")
	}

	// With the only dynamic body asleep, the pass skips the contact even
	// though the proxies no longer overlap. Two moves so the swept fat AABB
	// clears the other proxy.
	mover.SetTransform(MakeCB2Vec2(50.0, 0.0), 0.0)
	mover.SetTransform(MakeCB2Vec2(200.0, 0.0), 0.0)
	mover.SetAwake(false)

	mgr.Collide()
	if mgr.GetContactCount() != 1 {
		t.Fatalf("contact of a sleeping body was processed")
	}

	mover.SetAwake(true)
	mgr.Collide()
	if mgr.GetContactCount() != 0 {
		t.Fatalf("contact count is %d after waking, want 0", mgr.GetContactCount())
	}
}

func TestPreSolveDisableLastsOneUpdate(t *testing.T) {
	mgr := NewCB2ContactManager()
	listener := &recordingListener{}
	mgr.SetContactListener(listener)

	makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	makeCircleBody(mgr, CB2BodyType_Dynamic, 1.5, 0.0, 1.0)

	listener.disableNext = true
	step(mgr)

	c := mgr.GetContactList()
	if c == nil {
		t.Fatalf("no contact created")
	}
	if c.IsEnabled() {
		t.Fatalf("contact still enabled after pre-solve disabled it")
	}

	// The next update re-enables the contact.
	mgr.Collide()
	if !c.IsEnabled() {
		t.Fatalf("contact was not re-enabled on the next update")
	}
}

func TestDestroyFixtureRemovesContacts(t *testing.T) {
	mgr := NewCB2ContactManager()
	listener := &recordingListener{}
	mgr.SetContactListener(listener)

	makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	mover := makeCircleBody(mgr, CB2BodyType_Dynamic, 1.5, 0.0, 1.0)

	step(mgr)
	if mgr.GetContactCount() != 1 {
		t.Fatalf("contact count is %d, want 1", mgr.GetContactCount())
	}

	mover.DestroyFixture(mover.GetFixtureList())

	if mgr.GetContactCount() != 0 {
		t.Fatalf("contact count is %d after destroying the fixture, want 0", mgr.GetContactCount())
	}
	if listener.ends != 1 {
		t.Fatalf("end fired %d times, want 1", listener.ends)
	}
	if mover.GetFixtureList() != nil {
		t.Fatalf("fixture list not empty after destruction")
	}
}

func TestDestroyBodyRemovesContactsAndFixtures(t *testing.T) {
	mgr := NewCB2ContactManager()

	makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	mover := makeCircleBody(mgr, CB2BodyType_Dynamic, 1.5, 0.0, 1.0)

	step(mgr)

	mgr.DestroyBody(mover)

	if mgr.GetContactCount() != 0 {
		t.Fatalf("contact count is %d after destroying the body, want 0", mgr.GetContactCount())
	}
	if mgr.GetBodyCount() != 1 {
		t.Fatalf("body count is %d, want 1", mgr.GetBodyCount())
	}
	if mgr.GetBroadPhase().GetProxyCount() != 1 {
		t.Fatalf("proxy count is %d, want 1", mgr.GetBroadPhase().GetProxyCount())
	}
}

func TestSetTypeRecreatesContacts(t *testing.T) {
	mgr := NewCB2ContactManager()

	makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	mover := makeCircleBody(mgr, CB2BodyType_Dynamic, 1.5, 0.0, 1.0)

	step(mgr)
	if mgr.GetContactCount() != 1 {
		t.Fatalf("contact count is %d, want 1", mgr.GetContactCount())
	}

	// Becoming static against a static body removes the pairing.
	mover.SetType(CB2BodyType_Static)
	if mgr.GetContactCount() != 0 {
		t.Fatalf("contacts survived the type change")
	}

	step(mgr)
	if mgr.GetContactCount() != 0 {
		t.Fatalf("static pair was recreated")
	}

	// Back to dynamic, the touched proxies recreate the contact.
	mover.SetType(CB2BodyType_Dynamic)
	step(mgr)
	if mgr.GetContactCount() != 1 {
		t.Fatalf("contact count is %d after restoring dynamic, want 1", mgr.GetContactCount())
	}
}

func TestManagerQueryAndRayCast(t *testing.T) {
	mgr := NewCB2ContactManager()

	makeCircleBody(mgr, CB2BodyType_Static, 0.0, 0.0, 1.0)
	makeCircleBody(mgr, CB2BodyType_Static, 10.0, 0.0, 1.0)

	found := 0
	mgr.Query(func(fixture *CB2Fixture) bool {
		found++
		return true
	}, MakeCB2AABB(MakeCB2Vec2(-2.0, -2.0), MakeCB2Vec2(2.0, 2.0)))

	if found != 1 {
		t.Fatalf("query found %d fixtures, want 1", found)
	}

	hits := 0
	mgr.RayCast(func(fixture *CB2Fixture, point CB2Vec2, normal CB2Vec2, fraction float64) float64 {
		hits++
		return 1.0
	}, MakeCB2Vec2(-5.0, 0.0), MakeCB2Vec2(5.0, 0.0))

	if hits != 1 {
		t.Fatalf("ray cast hit %d fixtures, want 1", hits)
	}
}
