package cinderbox2d

import "sort"

const CB2_nullProxy = -1

// CB2BroadPhaseAddPairCallback receives the user data of both proxies of a
// candidate pair.
type CB2BroadPhaseAddPairCallback func(userDataA interface{}, userDataB interface{})

// A candidate overlapping proxy pair, ordered so ProxyIdA < ProxyIdB.
type CB2Pair struct {
	ProxyIdA int
	ProxyIdB int
}

func cb2PairLess(a, b CB2Pair) bool {
	if a.ProxyIdA < b.ProxyIdA {
		return true
	}
	if a.ProxyIdA == b.ProxyIdA {
		return a.ProxyIdB < b.ProxyIdB
	}
	return false
}

// The broad-phase is used for computing pairs and performing volume queries
// and ray casts. It maintains a buffer of proxies that moved since the last
// pair computation; only those are queried against the tree, so pair
// management cost tracks motion rather than world size. Clients consume the
// new pairs through UpdatePairs.
type CB2BroadPhase struct {
	tree CB2DynamicTree

	proxyCount int

	moveBuffer []int

	pairBuffer []CB2Pair

	queryProxyId int
}

func MakeCB2BroadPhase() CB2BroadPhase {
	return CB2BroadPhase{
		tree:       MakeCB2DynamicTree(),
		proxyCount: 0,
		moveBuffer: make([]int, 0, 16),
		pairBuffer: make([]CB2Pair, 0, 16),
	}
}

// CreateProxy creates a proxy with an initial AABB. Pairs are not reported
// until UpdatePairs is called.
func (bp *CB2BroadPhase) CreateProxy(aabb CB2AABB, userData interface{}) int {
	proxyId := bp.tree.CreateProxy(aabb, userData)
	bp.proxyCount++
	bp.bufferMove(proxyId)
	return proxyId
}

// DestroyProxy destroys a proxy. The client must remove any pairs itself.
func (bp *CB2BroadPhase) DestroyProxy(proxyId int) {
	bp.unBufferMove(proxyId)
	bp.proxyCount--
	bp.tree.DestroyProxy(proxyId)
}

// MoveProxy must be called when a proxy's shape moved. If the proxy left its
// fattened AABB it is buffered for pair re-evaluation.
func (bp *CB2BroadPhase) MoveProxy(proxyId int, aabb CB2AABB, displacement CB2Vec2) {
	if bp.tree.MoveProxy(proxyId, aabb, displacement) {
		bp.bufferMove(proxyId)
	}
}

// TouchProxy triggers a pair re-evaluation for a proxy that did not move,
// such as after a filter change.
func (bp *CB2BroadPhase) TouchProxy(proxyId int) {
	bp.bufferMove(proxyId)
}

func (bp *CB2BroadPhase) bufferMove(proxyId int) {
	bp.moveBuffer = append(bp.moveBuffer, proxyId)
}

func (bp *CB2BroadPhase) unBufferMove(proxyId int) {
	for i := range bp.moveBuffer {
		if bp.moveBuffer[i] == proxyId {
			bp.moveBuffer[i] = CB2_nullProxy
		}
	}
}

// GetFatAABB returns the fattened AABB for a proxy.
func (bp *CB2BroadPhase) GetFatAABB(proxyId int) CB2AABB {
	return bp.tree.GetFatAABB(proxyId)
}

// GetUserData returns the user data for a proxy.
func (bp *CB2BroadPhase) GetUserData(proxyId int) interface{} {
	return bp.tree.GetUserData(proxyId)
}

// TestOverlap reports whether the fat AABBs of two proxies overlap.
func (bp *CB2BroadPhase) TestOverlap(proxyIdA, proxyIdB int) bool {
	return CB2TestOverlapAABBs(bp.tree.GetFatAABB(proxyIdA), bp.tree.GetFatAABB(proxyIdB))
}

func (bp *CB2BroadPhase) GetProxyCount() int {
	return bp.proxyCount
}

func (bp *CB2BroadPhase) GetTreeHeight() int {
	return bp.tree.GetHeight()
}

func (bp *CB2BroadPhase) GetTreeBalance() int {
	return bp.tree.GetMaxBalance()
}

func (bp *CB2BroadPhase) GetTreeQuality() float64 {
	return bp.tree.GetAreaRatio()
}

// UpdatePairs computes the candidate pairs for all proxies that moved since
// the last call and reports each unique pair once through the callback.
func (bp *CB2BroadPhase) UpdatePairs(addPairCallback CB2BroadPhaseAddPairCallback) {
	// Reset pair buffer.
	bp.pairBuffer = bp.pairBuffer[:0]

	// Perform tree queries for all moving proxies.
	for _, proxyId := range bp.moveBuffer {
		if proxyId == CB2_nullProxy {
			continue
		}
		bp.queryProxyId = proxyId

		// We have to query the tree with the fat AABB so that
		// we don't fail to create a pair that may touch later.
		fatAABB := bp.tree.GetFatAABB(proxyId)
		bp.tree.Query(bp.queryCallback, fatAABB)
	}

	// Reset move buffer.
	bp.moveBuffer = bp.moveBuffer[:0]

	// Sort the pair buffer to expose duplicates.
	sort.Slice(bp.pairBuffer, func(i, j int) bool {
		return cb2PairLess(bp.pairBuffer[i], bp.pairBuffer[j])
	})

	// Send the pairs back to the client, skipping duplicates.
	i := 0
	for i < len(bp.pairBuffer) {
		primaryPair := bp.pairBuffer[i]
		userDataA := bp.tree.GetUserData(primaryPair.ProxyIdA)
		userDataB := bp.tree.GetUserData(primaryPair.ProxyIdB)

		addPairCallback(userDataA, userDataB)
		i++

		for i < len(bp.pairBuffer) {
			pair := bp.pairBuffer[i]
			if pair.ProxyIdA != primaryPair.ProxyIdA || pair.ProxyIdB != primaryPair.ProxyIdB {
				break
			}
			i++
		}
	}
}

// Called from CB2DynamicTree.Query when gathering pairs.
func (bp *CB2BroadPhase) queryCallback(proxyId int) bool {
	// A proxy cannot form a pair with itself.
	if proxyId == bp.queryProxyId {
		return true
	}

	bp.pairBuffer = append(bp.pairBuffer, CB2Pair{
		ProxyIdA: CB2MinInt(proxyId, bp.queryProxyId),
		ProxyIdB: CB2MaxInt(proxyId, bp.queryProxyId),
	})

	return true
}

// Query visits each proxy whose fat AABB overlaps the supplied box.
func (bp *CB2BroadPhase) Query(callback CB2TreeQueryCallback, aabb CB2AABB) {
	bp.tree.Query(callback, aabb)
}

// RayCast casts a ray against the proxies in the tree.
func (bp *CB2BroadPhase) RayCast(callback CB2TreeRayCastCallback, input CB2RayCastInput) {
	bp.tree.RayCast(callback, input)
}

// ShiftOrigin shifts the world origin, useful for large worlds.
func (bp *CB2BroadPhase) ShiftOrigin(newOrigin CB2Vec2) {
	bp.tree.ShiftOrigin(newOrigin)
}
