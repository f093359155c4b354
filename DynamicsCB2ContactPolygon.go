package cinderbox2d

type CB2PolygonContact struct {
	CB2Contact
}

func CB2PolygonContact_Create(fixtureA *CB2Fixture, indexA int, fixtureB *CB2Fixture, indexB int) CB2ContactInterface {
	CB2Assert(fixtureA.GetType() == CB2Shape_Polygon)
	CB2Assert(fixtureB.GetType() == CB2Shape_Polygon)
	return &CB2PolygonContact{
		CB2Contact: MakeCB2Contact(fixtureA, 0, fixtureB, 0),
	}
}

func CB2PolygonContact_Destroy(contact CB2ContactInterface) {
}

func (contact *CB2PolygonContact) Evaluate(manifold *CB2Manifold, xfA CB2Transform, xfB CB2Transform) {
	CB2CollidePolygons(
		manifold,
		contact.GetFixtureA().GetShape().(*CB2PolygonShape), xfA,
		contact.GetFixtureB().GetShape().(*CB2PolygonShape), xfB,
	)
}
