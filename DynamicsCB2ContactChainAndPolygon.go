package cinderbox2d

type CB2ChainAndPolygonContact struct {
	CB2Contact
}

func CB2ChainAndPolygonContact_Create(fixtureA *CB2Fixture, indexA int, fixtureB *CB2Fixture, indexB int) CB2ContactInterface {
	CB2Assert(fixtureA.GetType() == CB2Shape_Chain)
	CB2Assert(fixtureB.GetType() == CB2Shape_Polygon)
	return &CB2ChainAndPolygonContact{
		CB2Contact: MakeCB2Contact(fixtureA, indexA, fixtureB, indexB),
	}
}

func CB2ChainAndPolygonContact_Destroy(contact CB2ContactInterface) {
}

func (contact *CB2ChainAndPolygonContact) Evaluate(manifold *CB2Manifold, xfA CB2Transform, xfB CB2Transform) {
	chain := contact.GetFixtureA().GetShape().(*CB2ChainShape)
	edge := MakeCB2EdgeShape()
	chain.GetChildEdge(&edge, contact.indexA)
	CB2CollideEdgeAndPolygon(
		manifold,
		&edge, xfA,
		contact.GetFixtureB().GetShape().(*CB2PolygonShape), xfB,
	)
}
