package cinderbox2d

type CB2ChainAndCircleContact struct {
	CB2Contact
}

func CB2ChainAndCircleContact_Create(fixtureA *CB2Fixture, indexA int, fixtureB *CB2Fixture, indexB int) CB2ContactInterface {
	CB2Assert(fixtureA.GetType() == CB2Shape_Chain)
	CB2Assert(fixtureB.GetType() == CB2Shape_Circle)
	return &CB2ChainAndCircleContact{
		CB2Contact: MakeCB2Contact(fixtureA, indexA, fixtureB, indexB),
	}
}

func CB2ChainAndCircleContact_Destroy(contact CB2ContactInterface) {
}

func (contact *CB2ChainAndCircleContact) Evaluate(manifold *CB2Manifold, xfA CB2Transform, xfB CB2Transform) {
	chain := contact.GetFixtureA().GetShape().(*CB2ChainShape)
	edge := MakeCB2EdgeShape()
	chain.GetChildEdge(&edge, contact.indexA)
	CB2CollideEdgeAndCircle(
		manifold,
		&edge, xfA,
		contact.GetFixtureB().GetShape().(*CB2CircleShape), xfB,
	)
}
