package cinderbox2d

import "math"

// CB2Assert guards programmer-contract violations (invalid proxy ids,
// out-of-range type tags, operations on destroyed objects). These are caller
// bugs, not runtime conditions, so there is no recovery path.
func CB2Assert(condition bool) {
	if !condition {
		panic("cb2 assertion failed")
	}
}

const CB2_maxFloat = math.MaxFloat64
const CB2_epsilon = 1.1920928955078125e-7 // FLT_EPSILON, matching the original tolerances
const CB2_pi = math.Pi

// Global tuning constants based on meters-kilograms-seconds (MKS) units.

// The maximum number of contact points between two convex shapes.
const CB2_maxManifoldPoints = 2

// The maximum number of vertices on a convex polygon.
const CB2_maxPolygonVertices = 8

// This is used to fatten AABBs in the dynamic tree. This allows proxies
// to move by a small amount without triggering a tree adjustment.
// This is in meters.
const CB2_aabbExtension = 0.1

// This is used to fatten AABBs in the dynamic tree. This is used to predict
// the future position based on the current displacement.
// This is a dimensionless multiplier.
const CB2_aabbMultiplier = 2.0

// A small length used as a collision and constraint tolerance. Usually it is
// chosen to be numerically significant, but visually insignificant.
const CB2_linearSlop = 0.005

// A small angle used as a collision and constraint tolerance.
const CB2_angularSlop = 2.0 / 180.0 * CB2_pi

// The radius of the polygon/edge shape skin. This should not be modified.
const CB2_polygonRadius = 2.0 * CB2_linearSlop

func CB2MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func CB2MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func CB2AbsInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
