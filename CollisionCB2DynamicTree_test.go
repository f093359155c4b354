package cinderbox2d

import (
	"math/rand"
	"sort"
	"testing"
)

func randomAABB(rnd *rand.Rand, worldExtent float64) CB2AABB {
	cx := (2.0*rnd.Float64() - 1.0) * worldExtent
	cy := (2.0*rnd.Float64() - 1.0) * worldExtent
	hx := 0.1 + rnd.Float64()
	hy := 0.1 + rnd.Float64()
	return MakeCB2AABB(MakeCB2Vec2(cx-hx, cy-hy), MakeCB2Vec2(cx+hx, cy+hy))
}

func queryIds(tree *CB2DynamicTree, aabb CB2AABB) []int {
	ids := make([]int, 0)
	tree.Query(func(proxyId int) bool {
		ids = append(ids, proxyId)
		return true
	}, aabb)
	sort.Ints(ids)
	return ids
}

func TestDynamicTreeQueryMatchesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	tree := MakeCB2DynamicTree()

	proxies := make([]int, 0)
	for i := 0; i < 128; i++ {
		proxies = append(proxies, tree.CreateProxy(randomAABB(rnd, 20.0), i))
	}

	for iter := 0; iter < 200; iter++ {
		queryAABB := randomAABB(rnd, 20.0)

		got := queryIds(&tree, queryAABB)

		want := make([]int, 0)
		for _, id := range proxies {
			if CB2TestOverlapAABBs(tree.GetFatAABB(id), queryAABB) {
				want = append(want, id)
			}
		}
		sort.Ints(want)

		if len(got) != len(want) {
			t.Fatalf("query %d: got %d proxies, want %d", iter, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("query %d: result %d is proxy %d, want %d", iter, i, got[i], want[i])
			}
		}
	}
}

func TestDynamicTreeQueryEnlargedAABBContainsTight(t *testing.T) {
	tree := MakeCB2DynamicTree()

	aabb := MakeCB2AABB(MakeCB2Vec2(0.0, 0.0), MakeCB2Vec2(1.0, 1.0))
	id := tree.CreateProxy(aabb, "payload")

	fat := tree.GetFatAABB(id)
	if !fat.Contains(aabb) {
		t.Fatalf("fat AABB %+v does not contain tight AABB %+v", fat, aabb)
	}

	if tree.GetUserData(id) != "payload" {
		t.Fatalf("user data lost for proxy %d", id)
	}
}

func TestDynamicTreeMoveWithinFatAABBIsStable(t *testing.T) {
	tree := MakeCB2DynamicTree()

	aabb := MakeCB2AABB(MakeCB2Vec2(0.0, 0.0), MakeCB2Vec2(1.0, 1.0))
	id := tree.CreateProxy(aabb, nil)
	fatBefore := tree.GetFatAABB(id)

	// A small jiggle stays inside the enlarged AABB and must not reinsert.
	small := MakeCB2AABB(MakeCB2Vec2(0.05, 0.05), MakeCB2Vec2(1.05, 1.05))
	if tree.MoveProxy(id, small, MakeCB2Vec2(0.05, 0.05)) {
		t.Fatalf("move within the fat AABB reported a reinsertion")
	}

	fatAfter := tree.GetFatAABB(id)
	if fatAfter != fatBefore {
		t.Fatalf("fat AABB changed on a buffered move: %+v != %+v", fatAfter, fatBefore)
	}

	// A large move leaves the enlarged AABB and must reinsert.
	big := MakeCB2AABB(MakeCB2Vec2(5.0, 5.0), MakeCB2Vec2(6.0, 6.0))
	if !tree.MoveProxy(id, big, MakeCB2Vec2(5.0, 5.0)) {
		t.Fatalf("move outside the fat AABB was not reinserted")
	}

	if !tree.GetFatAABB(id).Contains(big) {
		t.Fatalf("fat AABB does not contain the moved AABB")
	}
}

func TestDynamicTreeInvariantsUnderChurn(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	tree := MakeCB2DynamicTree()

	live := make([]int, 0)

	for iter := 0; iter < 1000; iter++ {
		switch {
		case len(live) < 16 || rnd.Float64() < 0.5:
			id := tree.CreateProxy(randomAABB(rnd, 10.0), iter)
			live = append(live, id)

		case rnd.Float64() < 0.5 && len(live) > 0:
			i := rnd.Intn(len(live))
			tree.DestroyProxy(live[i])
			live = append(live[:i], live[i+1:]...)

		default:
			i := rnd.Intn(len(live))
			aabb := randomAABB(rnd, 10.0)
			tree.MoveProxy(live[i], aabb, MakeCB2Vec2(rnd.Float64(), rnd.Float64()))
		}

		if iter%100 == 0 {
			tree.Validate()
		}
	}

	tree.Validate()

	if tree.GetMaxBalance() > 1 {
		t.Fatalf("tree max balance %d exceeds the AVL bound", tree.GetMaxBalance())
	}
}

func TestDynamicTreeRayCast(t *testing.T) {
	tree := MakeCB2DynamicTree()

	idHit := tree.CreateProxy(MakeCB2AABB(MakeCB2Vec2(4.0, -1.0), MakeCB2Vec2(6.0, 1.0)), "hit")
	tree.CreateProxy(MakeCB2AABB(MakeCB2Vec2(4.0, 5.0), MakeCB2Vec2(6.0, 7.0)), "miss")

	input := CB2RayCastInput{
		P1:          MakeCB2Vec2(0.0, 0.0),
		P2:          MakeCB2Vec2(10.0, 0.0),
		MaxFraction: 1.0,
	}

	visited := make([]int, 0)
	tree.RayCast(func(subInput CB2RayCastInput, proxyId int) float64 {
		visited = append(visited, proxyId)
		return subInput.MaxFraction
	}, input)

	if len(visited) != 1 || visited[0] != idHit {
		t.Fatalf("ray visited %v, want only proxy %d", visited, idHit)
	}
}

func TestDynamicTreeRayCastTermination(t *testing.T) {
	tree := MakeCB2DynamicTree()

	for i := 0; i < 8; i++ {
		lower := MakeCB2Vec2(float64(2*i), -0.5)
		upper := MakeCB2Vec2(float64(2*i)+1.0, 0.5)
		tree.CreateProxy(MakeCB2AABB(lower, upper), i)
	}

	input := CB2RayCastInput{
		P1:          MakeCB2Vec2(-1.0, 0.0),
		P2:          MakeCB2Vec2(100.0, 0.0),
		MaxFraction: 1.0,
	}

	count := 0
	tree.RayCast(func(subInput CB2RayCastInput, proxyId int) float64 {
		count++
		// Terminate on the first reported proxy.
		return 0.0
	}, input)

	if count != 1 {
		t.Fatalf("ray cast visited %d proxies after termination, want 1", count)
	}
}

func TestDynamicTreeNodePoolReuse(t *testing.T) {
	tree := MakeCB2DynamicTree()

	ids := make([]int, 0)
	for i := 0; i < 64; i++ {
		ids = append(ids, tree.CreateProxy(MakeCB2AABB(MakeCB2Vec2(float64(i), 0.0), MakeCB2Vec2(float64(i)+1.0, 1.0)), i))
	}

	for _, id := range ids {
		tree.DestroyProxy(id)
	}

	tree.Validate()

	// Freed nodes must be recycled: recreating the same number of proxies
	// should reuse indices from the pool.
	seen := make(map[int]bool)
	for _, id := range ids {
		seen[id] = true
	}

	reused := 0
	for i := 0; i < 64; i++ {
		id := tree.CreateProxy(MakeCB2AABB(MakeCB2Vec2(float64(i), 0.0), MakeCB2Vec2(float64(i)+1.0, 1.0)), i)
		if seen[id] {
			reused++
		}
	}

	if reused == 0 {
		t.Fatalf("no proxy ids were recycled from the free list")
	}

	tree.Validate()
}

func TestDynamicTreeRebuildBottomUp(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))

	tree := MakeCB2DynamicTree()
	for i := 0; i < 100; i++ {
		tree.CreateProxy(randomAABB(rnd, 50.0), i)
	}

	before := queryIds(&tree, MakeCB2AABB(MakeCB2Vec2(-50.0, -50.0), MakeCB2Vec2(50.0, 50.0)))

	tree.RebuildBottomUp()
	tree.Validate()

	after := queryIds(&tree, MakeCB2AABB(MakeCB2Vec2(-50.0, -50.0), MakeCB2Vec2(50.0, 50.0)))

	if len(before) != len(after) {
		t.Fatalf("rebuild lost proxies: %d before, %d after", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("rebuild changed proxy %d: %d != %d", i, before[i], after[i])
		}
	}
}
