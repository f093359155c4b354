package cinderbox2d

type CB2CircleContact struct {
	CB2Contact
}

func CB2CircleContact_Create(fixtureA *CB2Fixture, indexA int, fixtureB *CB2Fixture, indexB int) CB2ContactInterface {
	CB2Assert(fixtureA.GetType() == CB2Shape_Circle)
	CB2Assert(fixtureB.GetType() == CB2Shape_Circle)
	return &CB2CircleContact{
		CB2Contact: MakeCB2Contact(fixtureA, 0, fixtureB, 0),
	}
}

func CB2CircleContact_Destroy(contact CB2ContactInterface) {
}

func (contact *CB2CircleContact) Evaluate(manifold *CB2Manifold, xfA CB2Transform, xfB CB2Transform) {
	CB2CollideCircles(
		manifold,
		contact.GetFixtureA().GetShape().(*CB2CircleShape), xfA,
		contact.GetFixtureB().GetShape().(*CB2CircleShape), xfB,
	)
}
