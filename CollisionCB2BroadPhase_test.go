package cinderbox2d

import (
	"sort"
	"testing"
)

func collectPairs(bp *CB2BroadPhase) []CB2Pair {
	pairs := make([]CB2Pair, 0)
	bp.UpdatePairs(func(userDataA interface{}, userDataB interface{}) {
		a := userDataA.(int)
		b := userDataB.(int)
		if b < a {
			a, b = b, a
		}
		pairs = append(pairs, CB2Pair{ProxyIdA: a, ProxyIdB: b})
	})
	sort.Slice(pairs, func(i, j int) bool {
		return cb2PairLess(pairs[i], pairs[j])
	})
	return pairs
}

func TestBroadPhasePairsReportedOnce(t *testing.T) {
	bp := MakeCB2BroadPhase()

	// Three mutually overlapping boxes. Both endpoints of every pair are in
	// the move buffer, so each pair is found twice and must be deduplicated.
	bp.CreateProxy(MakeCB2AABB(MakeCB2Vec2(0.0, 0.0), MakeCB2Vec2(2.0, 2.0)), 0)
	bp.CreateProxy(MakeCB2AABB(MakeCB2Vec2(1.0, 1.0), MakeCB2Vec2(3.0, 3.0)), 1)
	bp.CreateProxy(MakeCB2AABB(MakeCB2Vec2(1.5, 1.5), MakeCB2Vec2(2.5, 2.5)), 2)

	pairs := collectPairs(&bp)

	want := []CB2Pair{{0, 1}, {0, 2}, {1, 2}}
	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs %v, want %d", len(pairs), pairs, len(want))
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Fatalf("pair %d is %v, want %v", i, pairs[i], want[i])
		}
	}
}

func TestBroadPhaseNoPairsWithoutMotion(t *testing.T) {
	bp := MakeCB2BroadPhase()

	bp.CreateProxy(MakeCB2AABB(MakeCB2Vec2(0.0, 0.0), MakeCB2Vec2(2.0, 2.0)), 0)
	bp.CreateProxy(MakeCB2AABB(MakeCB2Vec2(1.0, 1.0), MakeCB2Vec2(3.0, 3.0)), 1)

	first := collectPairs(&bp)
	if len(first) != 1 {
		t.Fatalf("got %d pairs on the first update, want 1", len(first))
	}

	// The move buffer is drained, so a second update reports nothing.
	second := collectPairs(&bp)
	if len(second) != 0 {
		t.Fatalf("got %d pairs without motion, want 0", len(second))
	}
}

func TestBroadPhaseMoveProxyRebuffersPair(t *testing.T) {
	bp := MakeCB2BroadPhase()

	idA := bp.CreateProxy(MakeCB2AABB(MakeCB2Vec2(0.0, 0.0), MakeCB2Vec2(1.0, 1.0)), 0)
	bp.CreateProxy(MakeCB2AABB(MakeCB2Vec2(10.0, 0.0), MakeCB2Vec2(11.0, 1.0)), 1)

	if pairs := collectPairs(&bp); len(pairs) != 0 {
		t.Fatalf("got %d pairs while separated, want 0", len(pairs))
	}

	// Move proxy A next to proxy B.
	bp.MoveProxy(idA, MakeCB2AABB(MakeCB2Vec2(9.5, 0.0), MakeCB2Vec2(10.5, 1.0)), MakeCB2Vec2(9.5, 0.0))

	pairs := collectPairs(&bp)
	if len(pairs) != 1 || pairs[0] != (CB2Pair{0, 1}) {
		t.Fatalf("got pairs %v after the move, want [{0 1}]", pairs)
	}
}

func TestBroadPhaseTouchProxyRebuffersPair(t *testing.T) {
	bp := MakeCB2BroadPhase()

	idA := bp.CreateProxy(MakeCB2AABB(MakeCB2Vec2(0.0, 0.0), MakeCB2Vec2(2.0, 2.0)), 0)
	bp.CreateProxy(MakeCB2AABB(MakeCB2Vec2(1.0, 1.0), MakeCB2Vec2(3.0, 3.0)), 1)

	collectPairs(&bp)

	// No motion, but a touch re-buffers the proxy for pair evaluation.
	bp.TouchProxy(idA)

	pairs := collectPairs(&bp)
	if len(pairs) != 1 || pairs[0] != (CB2Pair{0, 1}) {
		t.Fatalf("got pairs %v after a touch, want [{0 1}]", pairs)
	}
}

func TestBroadPhaseDestroyedProxyUnbuffered(t *testing.T) {
	bp := MakeCB2BroadPhase()

	idA := bp.CreateProxy(MakeCB2AABB(MakeCB2Vec2(0.0, 0.0), MakeCB2Vec2(2.0, 2.0)), 0)
	bp.CreateProxy(MakeCB2AABB(MakeCB2Vec2(1.0, 1.0), MakeCB2Vec2(3.0, 3.0)), 1)

	// Destroying a buffered proxy before the pair update must not report it.
	bp.DestroyProxy(idA)

	if pairs := collectPairs(&bp); len(pairs) != 0 {
		t.Fatalf("got pairs %v involving a destroyed proxy, want none", pairs)
	}

	if bp.GetProxyCount() != 1 {
		t.Fatalf("proxy count is %d, want 1", bp.GetProxyCount())
	}
}
