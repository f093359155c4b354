package cinderbox2d

import "math"

const CB2_nullNode = -1

// CB2TreeQueryCallback is invoked for each leaf overlapping a query box.
// Returning false terminates the traversal.
type CB2TreeQueryCallback func(proxyId int) bool

// CB2TreeRayCastCallback is invoked for each leaf hit by a ray. The return
// value controls the traversal: 0 terminates the ray cast, a negative value
// skips the leaf without clipping, and any other fraction clips the ray.
type CB2TreeRayCastCallback func(input CB2RayCastInput, proxyId int) float64

// A node in the dynamic tree. The client does not interact with this
// directly. The parent and next fields share one storage slot: an allocated
// node records its parent, a node on the free list records the next free
// slot. The height tag keeps the two states apart (free nodes carry -1).
type cb2TreeNode struct {
	// Enlarged AABB.
	aabb CB2AABB

	userData interface{}

	parentOrNext int

	child1 int
	child2 int

	// leaf = 0, free node = -1
	height int
}

func (node *cb2TreeNode) IsLeaf() bool {
	return node.child1 == CB2_nullNode
}

// A dynamic AABB tree broad-phase, inspired by Nathanael Presson's btDbvt.
// A dynamic tree arranges data in a binary tree to accelerate queries such as
// volume queries and ray casts. Leaves are proxies with an AABB, expanded by
// CB2_aabbExtension so that a proxy can move by small amounts without
// triggering a tree update.
//
// Nodes are pooled and relocatable, so node indices are used rather than
// pointers.
type CB2DynamicTree struct {
	root int

	nodes        []cb2TreeNode
	nodeCount    int
	nodeCapacity int

	freeList int

	insertionCount int
}

func MakeCB2DynamicTree() CB2DynamicTree {
	tree := CB2DynamicTree{
		root:         CB2_nullNode,
		nodeCapacity: 16,
		nodeCount:    0,
		freeList:     0,
	}
	tree.nodes = make([]cb2TreeNode, tree.nodeCapacity)

	// Thread the free list through the fresh pool.
	for i := 0; i < tree.nodeCapacity-1; i++ {
		tree.nodes[i].parentOrNext = i + 1
		tree.nodes[i].height = -1
	}
	tree.nodes[tree.nodeCapacity-1].parentOrNext = CB2_nullNode
	tree.nodes[tree.nodeCapacity-1].height = -1

	return tree
}

// Allocate a node from the pool. Grows the pool if necessary; the backing
// array is extended in place so outstanding indices stay valid.
func (tree *CB2DynamicTree) allocateNode() int {
	if tree.freeList == CB2_nullNode {
		CB2Assert(tree.nodeCount == tree.nodeCapacity)

		// The free list is empty. Rebuild a bigger pool.
		tree.nodes = append(tree.nodes, make([]cb2TreeNode, tree.nodeCapacity)...)
		tree.nodeCapacity *= 2

		for i := tree.nodeCount; i < tree.nodeCapacity-1; i++ {
			tree.nodes[i].parentOrNext = i + 1
			tree.nodes[i].height = -1
		}
		tree.nodes[tree.nodeCapacity-1].parentOrNext = CB2_nullNode
		tree.nodes[tree.nodeCapacity-1].height = -1
		tree.freeList = tree.nodeCount
	}

	// Peel a node off the free list.
	nodeId := tree.freeList
	tree.freeList = tree.nodes[nodeId].parentOrNext
	tree.nodes[nodeId].parentOrNext = CB2_nullNode
	tree.nodes[nodeId].child1 = CB2_nullNode
	tree.nodes[nodeId].child2 = CB2_nullNode
	tree.nodes[nodeId].height = 0
	tree.nodes[nodeId].userData = nil
	tree.nodeCount++
	return nodeId
}

// Return a node to the pool.
func (tree *CB2DynamicTree) freeNode(nodeId int) {
	CB2Assert(0 <= nodeId && nodeId < tree.nodeCapacity)
	CB2Assert(0 < tree.nodeCount)
	tree.nodes[nodeId].parentOrNext = tree.freeList
	tree.nodes[nodeId].height = -1
	tree.nodes[nodeId].userData = nil
	tree.freeList = nodeId
	tree.nodeCount--
}

// CreateProxy creates a leaf proxy. The supplied AABB is the tight shape
// bound; the stored box is fattened by CB2_aabbExtension. Returns the proxy
// id, which stays valid until DestroyProxy.
func (tree *CB2DynamicTree) CreateProxy(aabb CB2AABB, userData interface{}) int {
	proxyId := tree.allocateNode()

	// Fatten the aabb.
	r := MakeCB2Vec2(CB2_aabbExtension, CB2_aabbExtension)
	tree.nodes[proxyId].aabb.LowerBound = aabb.LowerBound.Sub(r)
	tree.nodes[proxyId].aabb.UpperBound = aabb.UpperBound.Add(r)
	tree.nodes[proxyId].userData = userData
	tree.nodes[proxyId].height = 0

	tree.insertLeaf(proxyId)

	return proxyId
}

// DestroyProxy removes a leaf proxy. Asserts if the id does not reference an
// allocated leaf.
func (tree *CB2DynamicTree) DestroyProxy(proxyId int) {
	CB2Assert(0 <= proxyId && proxyId < tree.nodeCapacity)
	CB2Assert(tree.nodes[proxyId].IsLeaf())

	tree.removeLeaf(proxyId)
	tree.freeNode(proxyId)
}

// MoveProxy updates a proxy with a new tight AABB. If the new box is still
// inside the stored fat box nothing happens and false is returned. Otherwise
// the leaf is re-inserted with a fat box extended along the displacement to
// predict movement, and true is returned.
func (tree *CB2DynamicTree) MoveProxy(proxyId int, aabb CB2AABB, displacement CB2Vec2) bool {
	CB2Assert(0 <= proxyId && proxyId < tree.nodeCapacity)
	CB2Assert(tree.nodes[proxyId].IsLeaf())

	if tree.nodes[proxyId].aabb.Contains(aabb) {
		return false
	}

	tree.removeLeaf(proxyId)

	// Extend AABB.
	b := aabb
	r := MakeCB2Vec2(CB2_aabbExtension, CB2_aabbExtension)
	b.LowerBound = b.LowerBound.Sub(r)
	b.UpperBound = b.UpperBound.Add(r)

	// Predict AABB displacement.
	d := displacement.Scale(CB2_aabbMultiplier)

	if d.X < 0.0 {
		b.LowerBound.X += d.X
	} else {
		b.UpperBound.X += d.X
	}

	if d.Y < 0.0 {
		b.LowerBound.Y += d.Y
	} else {
		b.UpperBound.Y += d.Y
	}

	tree.nodes[proxyId].aabb = b

	tree.insertLeaf(proxyId)
	return true
}

// GetUserData returns the data associated with a proxy.
func (tree *CB2DynamicTree) GetUserData(proxyId int) interface{} {
	CB2Assert(0 <= proxyId && proxyId < tree.nodeCapacity)
	return tree.nodes[proxyId].userData
}

// GetFatAABB returns the fattened AABB stored for a proxy.
func (tree *CB2DynamicTree) GetFatAABB(proxyId int) CB2AABB {
	CB2Assert(0 <= proxyId && proxyId < tree.nodeCapacity)
	return tree.nodes[proxyId].aabb
}

// Query visits every leaf proxy whose fat AABB overlaps the supplied box.
// The traversal is depth first with an explicit stack.
func (tree *CB2DynamicTree) Query(callback CB2TreeQueryCallback, aabb CB2AABB) {
	stack := MakeCB2GrowableStack()
	stack.Push(tree.root)

	for stack.GetCount() > 0 {
		nodeId := stack.Pop()
		if nodeId == CB2_nullNode {
			continue
		}

		node := &tree.nodes[nodeId]

		if CB2TestOverlapAABBs(node.aabb, aabb) {
			if node.IsLeaf() {
				if !callback(nodeId) {
					return
				}
			} else {
				stack.Push(node.child1)
				stack.Push(node.child2)
			}
		}
	}
}

// RayCast walks the tree along a ray. Subtrees are pruned with a separating
// axis test against the ray's perpendicular; as the callback reports hits the
// bounding segment shrinks, so later subtrees can be skipped entirely.
func (tree *CB2DynamicTree) RayCast(callback CB2TreeRayCastCallback, input CB2RayCastInput) {
	p1 := input.P1
	p2 := input.P2
	r := p2.Sub(p1)
	CB2Assert(r.LengthSquared() > 0.0)
	r.Normalize()

	// v is perpendicular to the segment.
	v := CB2CrossScalarVec2(1.0, r)
	absV := CB2AbsVec2(v)

	// Separating axis for segment (Gino, p80).
	// |dot(v, p1 - c)| > dot(|v|, h)

	maxFraction := input.MaxFraction

	// Build a bounding box for the segment.
	var segmentAABB CB2AABB
	{
		t := p1.Add(p2.Sub(p1).Scale(maxFraction))
		segmentAABB.LowerBound = CB2MinVec2(p1, t)
		segmentAABB.UpperBound = CB2MaxVec2(p1, t)
	}

	stack := MakeCB2GrowableStack()
	stack.Push(tree.root)

	for stack.GetCount() > 0 {
		nodeId := stack.Pop()
		if nodeId == CB2_nullNode {
			continue
		}

		node := &tree.nodes[nodeId]

		if !CB2TestOverlapAABBs(node.aabb, segmentAABB) {
			continue
		}

		// |dot(v, p1 - c)| > dot(|v|, h)
		c := node.aabb.GetCenter()
		h := node.aabb.GetExtents()
		separation := math.Abs(v.Dot(p1.Sub(c))) - absV.Dot(h)
		if separation > 0.0 {
			continue
		}

		if node.IsLeaf() {
			subInput := CB2RayCastInput{
				P1:          input.P1,
				P2:          input.P2,
				MaxFraction: maxFraction,
			}

			value := callback(subInput, nodeId)

			if value == 0.0 {
				// The client has terminated the ray cast.
				return
			}

			if value > 0.0 {
				// Update segment bounding box.
				maxFraction = value
				t := p1.Add(p2.Sub(p1).Scale(maxFraction))
				segmentAABB.LowerBound = CB2MinVec2(p1, t)
				segmentAABB.UpperBound = CB2MaxVec2(p1, t)
			}
		} else {
			stack.Push(node.child1)
			stack.Push(node.child2)
		}
	}
}

func (tree *CB2DynamicTree) insertLeaf(leaf int) {
	tree.insertionCount++

	if tree.root == CB2_nullNode {
		tree.root = leaf
		tree.nodes[leaf].parentOrNext = CB2_nullNode
		return
	}

	// Find the best sibling for this leaf using the surface area heuristic:
	// descend into the child whose enlargement is cheapest.
	leafAABB := tree.nodes[leaf].aabb
	index := tree.root
	for !tree.nodes[index].IsLeaf() {
		child1 := tree.nodes[index].child1
		child2 := tree.nodes[index].child2

		area := tree.nodes[index].aabb.GetPerimeter()

		var combinedAABB CB2AABB
		combinedAABB.CombineTwo(tree.nodes[index].aabb, leafAABB)
		combinedArea := combinedAABB.GetPerimeter()

		// Cost of creating a new parent for this node and the new leaf.
		cost := 2.0 * combinedArea

		// Minimum cost of pushing the leaf further down the tree.
		inheritanceCost := 2.0 * (combinedArea - area)

		cost1 := tree.descendCost(leafAABB, child1, inheritanceCost)
		cost2 := tree.descendCost(leafAABB, child2, inheritanceCost)

		// Descend according to the minimum cost.
		if cost < cost1 && cost < cost2 {
			break
		}

		if cost1 < cost2 {
			index = child1
		} else {
			index = child2
		}
	}

	sibling := index

	// Create a new parent.
	oldParent := tree.nodes[sibling].parentOrNext
	newParent := tree.allocateNode()
	tree.nodes[newParent].parentOrNext = oldParent
	tree.nodes[newParent].userData = nil
	tree.nodes[newParent].aabb.CombineTwo(leafAABB, tree.nodes[sibling].aabb)
	tree.nodes[newParent].height = tree.nodes[sibling].height + 1

	if oldParent != CB2_nullNode {
		// The sibling was not the root.
		if tree.nodes[oldParent].child1 == sibling {
			tree.nodes[oldParent].child1 = newParent
		} else {
			tree.nodes[oldParent].child2 = newParent
		}
	} else {
		// The sibling was the root.
		tree.root = newParent
	}
	tree.nodes[newParent].child1 = sibling
	tree.nodes[newParent].child2 = leaf
	tree.nodes[sibling].parentOrNext = newParent
	tree.nodes[leaf].parentOrNext = newParent

	// Walk back up the tree fixing heights and AABBs.
	index = tree.nodes[leaf].parentOrNext
	for index != CB2_nullNode {
		index = tree.balance(index)

		child1 := tree.nodes[index].child1
		child2 := tree.nodes[index].child2

		CB2Assert(child1 != CB2_nullNode)
		CB2Assert(child2 != CB2_nullNode)

		tree.nodes[index].height = 1 + CB2MaxInt(tree.nodes[child1].height, tree.nodes[child2].height)
		tree.nodes[index].aabb.CombineTwo(tree.nodes[child1].aabb, tree.nodes[child2].aabb)

		index = tree.nodes[index].parentOrNext
	}
}

// Cost of descending the inserted leaf into the given child.
func (tree *CB2DynamicTree) descendCost(leafAABB CB2AABB, child int, inheritanceCost float64) float64 {
	var aabb CB2AABB
	aabb.CombineTwo(leafAABB, tree.nodes[child].aabb)
	if tree.nodes[child].IsLeaf() {
		return aabb.GetPerimeter() + inheritanceCost
	}
	oldArea := tree.nodes[child].aabb.GetPerimeter()
	newArea := aabb.GetPerimeter()
	return (newArea - oldArea) + inheritanceCost
}

func (tree *CB2DynamicTree) removeLeaf(leaf int) {
	if leaf == tree.root {
		tree.root = CB2_nullNode
		return
	}

	// The leaf's direct parent is always freed: the sibling is spliced up to
	// take its place.
	parent := tree.nodes[leaf].parentOrNext
	grandParent := tree.nodes[parent].parentOrNext
	var sibling int
	if tree.nodes[parent].child1 == leaf {
		sibling = tree.nodes[parent].child2
	} else {
		sibling = tree.nodes[parent].child1
	}

	if grandParent != CB2_nullNode {
		// Destroy parent and connect sibling to grandParent.
		if tree.nodes[grandParent].child1 == parent {
			tree.nodes[grandParent].child1 = sibling
		} else {
			tree.nodes[grandParent].child2 = sibling
		}
		tree.nodes[sibling].parentOrNext = grandParent
		tree.freeNode(parent)

		// Adjust ancestor bounds.
		index := grandParent
		for index != CB2_nullNode {
			index = tree.balance(index)

			child1 := tree.nodes[index].child1
			child2 := tree.nodes[index].child2

			tree.nodes[index].aabb.CombineTwo(tree.nodes[child1].aabb, tree.nodes[child2].aabb)
			tree.nodes[index].height = 1 + CB2MaxInt(tree.nodes[child1].height, tree.nodes[child2].height)

			index = tree.nodes[index].parentOrNext
		}
	} else {
		tree.root = sibling
		tree.nodes[sibling].parentOrNext = CB2_nullNode
		tree.freeNode(parent)
	}
}

// Perform a left or right rotation if node A is imbalanced.
// Returns the new root index of the subtree.
func (tree *CB2DynamicTree) balance(iA int) int {
	CB2Assert(iA != CB2_nullNode)

	A := &tree.nodes[iA]
	if A.IsLeaf() || A.height < 2 {
		return iA
	}

	iB := A.child1
	iC := A.child2
	CB2Assert(0 <= iB && iB < tree.nodeCapacity)
	CB2Assert(0 <= iC && iC < tree.nodeCapacity)

	B := &tree.nodes[iB]
	C := &tree.nodes[iC]

	balance := C.height - B.height

	// Rotate C up.
	if balance > 1 {
		iF := C.child1
		iG := C.child2
		CB2Assert(0 <= iF && iF < tree.nodeCapacity)
		CB2Assert(0 <= iG && iG < tree.nodeCapacity)
		F := &tree.nodes[iF]
		G := &tree.nodes[iG]

		// Swap A and C.
		C.child1 = iA
		C.parentOrNext = A.parentOrNext
		A.parentOrNext = iC

		// A's old parent should point to C.
		if C.parentOrNext != CB2_nullNode {
			if tree.nodes[C.parentOrNext].child1 == iA {
				tree.nodes[C.parentOrNext].child1 = iC
			} else {
				CB2Assert(tree.nodes[C.parentOrNext].child2 == iA)
				tree.nodes[C.parentOrNext].child2 = iC
			}
		} else {
			tree.root = iC
		}

		// Rotate.
		if F.height > G.height {
			C.child2 = iF
			A.child2 = iG
			G.parentOrNext = iA
			A.aabb.CombineTwo(B.aabb, G.aabb)
			C.aabb.CombineTwo(A.aabb, F.aabb)

			A.height = 1 + CB2MaxInt(B.height, G.height)
			C.height = 1 + CB2MaxInt(A.height, F.height)
		} else {
			C.child2 = iG
			A.child2 = iF
			F.parentOrNext = iA
			A.aabb.CombineTwo(B.aabb, F.aabb)
			C.aabb.CombineTwo(A.aabb, G.aabb)

			A.height = 1 + CB2MaxInt(B.height, F.height)
			C.height = 1 + CB2MaxInt(A.height, G.height)
		}

		return iC
	}

	// Rotate B up.
	if balance < -1 {
		iD := B.child1
		iE := B.child2
		CB2Assert(0 <= iD && iD < tree.nodeCapacity)
		CB2Assert(0 <= iE && iE < tree.nodeCapacity)
		D := &tree.nodes[iD]
		E := &tree.nodes[iE]

		// Swap A and B.
		B.child1 = iA
		B.parentOrNext = A.parentOrNext
		A.parentOrNext = iB

		// A's old parent should point to B.
		if B.parentOrNext != CB2_nullNode {
			if tree.nodes[B.parentOrNext].child1 == iA {
				tree.nodes[B.parentOrNext].child1 = iB
			} else {
				CB2Assert(tree.nodes[B.parentOrNext].child2 == iA)
				tree.nodes[B.parentOrNext].child2 = iB
			}
		} else {
			tree.root = iB
		}

		// Rotate.
		if D.height > E.height {
			B.child2 = iD
			A.child1 = iE
			E.parentOrNext = iA
			A.aabb.CombineTwo(C.aabb, E.aabb)
			B.aabb.CombineTwo(A.aabb, D.aabb)

			A.height = 1 + CB2MaxInt(C.height, E.height)
			B.height = 1 + CB2MaxInt(A.height, D.height)
		} else {
			B.child2 = iE
			A.child1 = iD
			D.parentOrNext = iA
			A.aabb.CombineTwo(C.aabb, D.aabb)
			B.aabb.CombineTwo(A.aabb, E.aabb)

			A.height = 1 + CB2MaxInt(C.height, D.height)
			B.height = 1 + CB2MaxInt(A.height, E.height)
		}

		return iB
	}

	return iA
}

// GetHeight returns the height of the tree.
func (tree *CB2DynamicTree) GetHeight() int {
	if tree.root == CB2_nullNode {
		return 0
	}
	return tree.nodes[tree.root].height
}

// GetMaxBalance returns the maximum height difference between the two
// children of any node in the tree.
func (tree *CB2DynamicTree) GetMaxBalance() int {
	maxBalance := 0
	for i := 0; i < tree.nodeCapacity; i++ {
		node := &tree.nodes[i]
		if node.height <= 1 {
			continue
		}

		CB2Assert(!node.IsLeaf())

		balance := CB2AbsInt(tree.nodes[node.child2].height - tree.nodes[node.child1].height)
		maxBalance = CB2MaxInt(maxBalance, balance)
	}
	return maxBalance
}

// GetAreaRatio returns the ratio of the sum of the node perimeters to the
// root perimeter, a quality metric for the tree.
func (tree *CB2DynamicTree) GetAreaRatio() float64 {
	if tree.root == CB2_nullNode {
		return 0.0
	}

	rootArea := tree.nodes[tree.root].aabb.GetPerimeter()

	totalArea := 0.0
	for i := 0; i < tree.nodeCapacity; i++ {
		node := &tree.nodes[i]
		if node.height < 0 {
			// Free node in pool.
			continue
		}
		totalArea += node.aabb.GetPerimeter()
	}

	return totalArea / rootArea
}

// Compute the height of a sub-tree in O(N) time. For validation only.
func (tree *CB2DynamicTree) computeHeight(nodeId int) int {
	CB2Assert(0 <= nodeId && nodeId < tree.nodeCapacity)
	node := &tree.nodes[nodeId]

	if node.IsLeaf() {
		return 0
	}

	height1 := tree.computeHeight(node.child1)
	height2 := tree.computeHeight(node.child2)
	return 1 + CB2MaxInt(height1, height2)
}

func (tree *CB2DynamicTree) validateStructure(index int) {
	if index == CB2_nullNode {
		return
	}

	if index == tree.root {
		CB2Assert(tree.nodes[index].parentOrNext == CB2_nullNode)
	}

	node := &tree.nodes[index]
	child1 := node.child1
	child2 := node.child2

	if node.IsLeaf() {
		CB2Assert(child1 == CB2_nullNode)
		CB2Assert(child2 == CB2_nullNode)
		CB2Assert(node.height == 0)
		return
	}

	CB2Assert(0 <= child1 && child1 < tree.nodeCapacity)
	CB2Assert(0 <= child2 && child2 < tree.nodeCapacity)

	CB2Assert(tree.nodes[child1].parentOrNext == index)
	CB2Assert(tree.nodes[child2].parentOrNext == index)

	tree.validateStructure(child1)
	tree.validateStructure(child2)
}

func (tree *CB2DynamicTree) validateMetrics(index int) {
	if index == CB2_nullNode {
		return
	}

	node := &tree.nodes[index]
	child1 := node.child1
	child2 := node.child2

	if node.IsLeaf() {
		CB2Assert(child1 == CB2_nullNode)
		CB2Assert(child2 == CB2_nullNode)
		CB2Assert(node.height == 0)
		return
	}

	CB2Assert(0 <= child1 && child1 < tree.nodeCapacity)
	CB2Assert(0 <= child2 && child2 < tree.nodeCapacity)

	height1 := tree.nodes[child1].height
	height2 := tree.nodes[child2].height
	CB2Assert(node.height == 1+CB2MaxInt(height1, height2))

	var aabb CB2AABB
	aabb.CombineTwo(tree.nodes[child1].aabb, tree.nodes[child2].aabb)

	CB2Assert(aabb.LowerBound == node.aabb.LowerBound)
	CB2Assert(aabb.UpperBound == node.aabb.UpperBound)

	tree.validateMetrics(child1)
	tree.validateMetrics(child2)
}

// Validate asserts the structural, balance and free-list invariants of the
// tree. For testing.
func (tree *CB2DynamicTree) Validate() {
	tree.validateStructure(tree.root)
	tree.validateMetrics(tree.root)

	freeCount := 0
	freeIndex := tree.freeList
	for freeIndex != CB2_nullNode {
		CB2Assert(0 <= freeIndex && freeIndex < tree.nodeCapacity)
		freeIndex = tree.nodes[freeIndex].parentOrNext
		freeCount++
	}

	CB2Assert(tree.GetHeight() == tree.computeHeightFromRoot())
	CB2Assert(tree.nodeCount+freeCount == tree.nodeCapacity)
}

func (tree *CB2DynamicTree) computeHeightFromRoot() int {
	if tree.root == CB2_nullNode {
		return 0
	}
	return tree.computeHeight(tree.root)
}

// RebuildBottomUp builds an optimal tree. Very expensive. For testing.
func (tree *CB2DynamicTree) RebuildBottomUp() {
	nodes := make([]int, tree.nodeCount)
	count := 0

	// Build array of leaves. Free the rest.
	for i := 0; i < tree.nodeCapacity; i++ {
		if tree.nodes[i].height < 0 {
			// Free node in pool.
			continue
		}

		if tree.nodes[i].IsLeaf() {
			tree.nodes[i].parentOrNext = CB2_nullNode
			nodes[count] = i
			count++
		} else {
			tree.freeNode(i)
		}
	}

	for count > 1 {
		minCost := CB2_maxFloat
		iMin, jMin := -1, -1

		for i := 0; i < count; i++ {
			aabbi := tree.nodes[nodes[i]].aabb

			for j := i + 1; j < count; j++ {
				aabbj := tree.nodes[nodes[j]].aabb
				var b CB2AABB
				b.CombineTwo(aabbi, aabbj)
				cost := b.GetPerimeter()
				if cost < minCost {
					iMin = i
					jMin = j
					minCost = cost
				}
			}
		}

		index1 := nodes[iMin]
		index2 := nodes[jMin]

		parentIndex := tree.allocateNode()
		child1 := &tree.nodes[index1]
		child2 := &tree.nodes[index2]
		parent := &tree.nodes[parentIndex]
		parent.child1 = index1
		parent.child2 = index2
		parent.height = 1 + CB2MaxInt(child1.height, child2.height)
		parent.aabb.CombineTwo(child1.aabb, child2.aabb)
		parent.parentOrNext = CB2_nullNode

		child1.parentOrNext = parentIndex
		child2.parentOrNext = parentIndex

		nodes[jMin] = nodes[count-1]
		nodes[iMin] = parentIndex
		count--
	}

	tree.root = nodes[0]

	tree.Validate()
}

// ShiftOrigin shifts the world origin, useful for large worlds.
func (tree *CB2DynamicTree) ShiftOrigin(newOrigin CB2Vec2) {
	for i := 0; i < tree.nodeCapacity; i++ {
		tree.nodes[i].aabb.LowerBound = tree.nodes[i].aabb.LowerBound.Sub(newOrigin)
		tree.nodes[i].aabb.UpperBound = tree.nodes[i].aabb.UpperBound.Sub(newOrigin)
	}
}
