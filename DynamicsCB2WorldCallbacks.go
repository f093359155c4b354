package cinderbox2d

// CB2ContactFilterInterface lets an application reject collision between
// specific fixture pairs before a contact is created.
type CB2ContactFilterInterface interface {
	ShouldCollide(fixtureA *CB2Fixture, fixtureB *CB2Fixture) bool
}

type CB2ContactListenerInterface interface {
	// Called when two fixtures begin to touch.
	BeginContact(contact CB2ContactInterface)

	// Called when two fixtures cease to touch.
	EndContact(contact CB2ContactInterface)

	// Called after a contact manifold is updated, before it would be handed
	// to a solver. A copy of the old manifold is provided so changes can be
	// detected. The contact may be disabled from here for the current update.
	// Note: this is only called for touching non-sensor contacts.
	PreSolve(contact CB2ContactInterface, oldManifold CB2Manifold)
}

// The default contact filter, using the category, mask, and group of
// CB2Filter.
type CB2ContactFilter struct {
}

// ShouldCollide returns true if contact calculations should be performed
// between these two fixtures. A custom filter may want to build from this
// implementation.
func (cf *CB2ContactFilter) ShouldCollide(fixtureA *CB2Fixture, fixtureB *CB2Fixture) bool {
	filterA := fixtureA.GetFilterData()
	filterB := fixtureB.GetFilterData()

	if filterA.GroupIndex == filterB.GroupIndex && filterA.GroupIndex != 0 {
		return filterA.GroupIndex > 0
	}

	return (filterA.MaskBits&filterB.CategoryBits) != 0 && (filterA.CategoryBits&filterB.MaskBits) != 0
}

// CB2FixtureQueryCallback is called for each fixture whose proxy overlaps an
// AABB query. Return false to terminate the query.
type CB2FixtureQueryCallback func(fixture *CB2Fixture) bool

// CB2FixtureRaycastCallback is called for each fixture hit by a ray cast.
// The return value controls how the ray cast proceeds:
// return -1: ignore this fixture and continue
// return 0: terminate the ray cast
// return fraction: clip the ray to this point
// return 1: don't clip the ray and continue
type CB2FixtureRaycastCallback func(fixture *CB2Fixture, point CB2Vec2, normal CB2Vec2, fraction float64) float64
