package cinderbox2d

type CB2EdgeAndCircleContact struct {
	CB2Contact
}

func CB2EdgeAndCircleContact_Create(fixtureA *CB2Fixture, indexA int, fixtureB *CB2Fixture, indexB int) CB2ContactInterface {
	CB2Assert(fixtureA.GetType() == CB2Shape_Edge)
	CB2Assert(fixtureB.GetType() == CB2Shape_Circle)
	return &CB2EdgeAndCircleContact{
		CB2Contact: MakeCB2Contact(fixtureA, 0, fixtureB, 0),
	}
}

func CB2EdgeAndCircleContact_Destroy(contact CB2ContactInterface) {
}

func (contact *CB2EdgeAndCircleContact) Evaluate(manifold *CB2Manifold, xfA CB2Transform, xfB CB2Transform) {
	CB2CollideEdgeAndCircle(
		manifold,
		contact.GetFixtureA().GetShape().(*CB2EdgeShape), xfA,
		contact.GetFixtureB().GetShape().(*CB2CircleShape), xfB,
	)
}
