package cinderbox2d

import "math"

// CB2IsValid reports whether x is a finite number.
func CB2IsValid(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// A 2D column vector.
type CB2Vec2 struct {
	X, Y float64
}

func MakeCB2Vec2(x, y float64) CB2Vec2 {
	return CB2Vec2{X: x, Y: y}
}

var CB2Vec2_zero = CB2Vec2{}

func (v *CB2Vec2) SetZero() {
	v.X = 0.0
	v.Y = 0.0
}

func (v *CB2Vec2) Set(x, y float64) {
	v.X = x
	v.Y = y
}

func (v CB2Vec2) Add(w CB2Vec2) CB2Vec2 {
	return CB2Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

func (v CB2Vec2) Sub(w CB2Vec2) CB2Vec2 {
	return CB2Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

func (v CB2Vec2) Scale(s float64) CB2Vec2 {
	return CB2Vec2{X: s * v.X, Y: s * v.Y}
}

func (v CB2Vec2) Neg() CB2Vec2 {
	return CB2Vec2{X: -v.X, Y: -v.Y}
}

func (v CB2Vec2) Dot(w CB2Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross is the 2D cross product, a scalar.
func (v CB2Vec2) Cross(w CB2Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

func (v CB2Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v CB2Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize scales the vector to unit length and returns the old length.
// A vector shorter than the epsilon tolerance is left untouched.
func (v *CB2Vec2) Normalize() float64 {
	length := v.Length()
	if length < CB2_epsilon {
		return 0.0
	}
	invLength := 1.0 / length
	v.X *= invLength
	v.Y *= invLength
	return length
}

func (v CB2Vec2) IsValid() bool {
	return CB2IsValid(v.X) && CB2IsValid(v.Y)
}

// Skew returns the counter-clockwise perpendicular, such that v.Skew().Dot(w) == v.Cross(w).
func (v CB2Vec2) Skew() CB2Vec2 {
	return CB2Vec2{X: -v.Y, Y: v.X}
}

// Component accessor by axis index, used where x/y handling is symmetric.
func (v CB2Vec2) Component(i int) float64 {
	if i == 0 {
		return v.X
	}
	return v.Y
}

func (v *CB2Vec2) SetComponent(i int, value float64) {
	if i == 0 {
		v.X = value
	} else {
		v.Y = value
	}
}

// Cross a scalar and a vector.
func CB2CrossScalarVec2(s float64, v CB2Vec2) CB2Vec2 {
	return CB2Vec2{X: -s * v.Y, Y: s * v.X}
}

// Cross a vector and a scalar.
func CB2CrossVec2Scalar(v CB2Vec2, s float64) CB2Vec2 {
	return CB2Vec2{X: s * v.Y, Y: -s * v.X}
}

func CB2MinVec2(a, b CB2Vec2) CB2Vec2 {
	return CB2Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

func CB2MaxVec2(a, b CB2Vec2) CB2Vec2 {
	return CB2Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

func CB2AbsVec2(v CB2Vec2) CB2Vec2 {
	return CB2Vec2{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

func CB2Distance(a, b CB2Vec2) float64 {
	return a.Sub(b).Length()
}

func CB2DistanceSquared(a, b CB2Vec2) float64 {
	c := a.Sub(b)
	return c.Dot(c)
}

// Rotation, stored as sine and cosine so that transforms compose without
// trigonometric calls.
type CB2Rot struct {
	S, C float64
}

func MakeCB2Rot() CB2Rot {
	return CB2Rot{S: 0.0, C: 1.0}
}

func MakeCB2RotFromAngle(angle float64) CB2Rot {
	return CB2Rot{S: math.Sin(angle), C: math.Cos(angle)}
}

func (q *CB2Rot) Set(angle float64) {
	q.S = math.Sin(angle)
	q.C = math.Cos(angle)
}

func (q *CB2Rot) SetIdentity() {
	q.S = 0.0
	q.C = 1.0
}

func (q CB2Rot) GetAngle() float64 {
	return math.Atan2(q.S, q.C)
}

func (q CB2Rot) GetXAxis() CB2Vec2 {
	return CB2Vec2{X: q.C, Y: q.S}
}

func (q CB2Rot) GetYAxis() CB2Vec2 {
	return CB2Vec2{X: -q.S, Y: q.C}
}

// A transform contains translation and rotation. It is used to represent
// the position and orientation of rigid frames.
type CB2Transform struct {
	P CB2Vec2
	Q CB2Rot
}

func MakeCB2Transform() CB2Transform {
	return CB2Transform{P: CB2Vec2{}, Q: MakeCB2Rot()}
}

func MakeCB2TransformFromPositionAndAngle(position CB2Vec2, angle float64) CB2Transform {
	return CB2Transform{P: position, Q: MakeCB2RotFromAngle(angle)}
}

func (t *CB2Transform) SetIdentity() {
	t.P.SetZero()
	t.Q.SetIdentity()
}

func (t *CB2Transform) Set(position CB2Vec2, angle float64) {
	t.P = position
	t.Q.Set(angle)
}

// Rotate a vector.
func CB2MulRotVec2(q CB2Rot, v CB2Vec2) CB2Vec2 {
	return CB2Vec2{
		X: q.C*v.X - q.S*v.Y,
		Y: q.S*v.X + q.C*v.Y,
	}
}

// Inverse rotate a vector.
func CB2MulTRotVec2(q CB2Rot, v CB2Vec2) CB2Vec2 {
	return CB2Vec2{
		X: q.C*v.X + q.S*v.Y,
		Y: -q.S*v.X + q.C*v.Y,
	}
}

// Transform a point from local frame to world frame.
func CB2MulTransformVec2(t CB2Transform, v CB2Vec2) CB2Vec2 {
	return CB2Vec2{
		X: t.Q.C*v.X - t.Q.S*v.Y + t.P.X,
		Y: t.Q.S*v.X + t.Q.C*v.Y + t.P.Y,
	}
}

// Transform a point from world frame to local frame.
func CB2MulTTransformVec2(t CB2Transform, v CB2Vec2) CB2Vec2 {
	px := v.X - t.P.X
	py := v.Y - t.P.Y
	return CB2Vec2{
		X: t.Q.C*px + t.Q.S*py,
		Y: -t.Q.S*px + t.Q.C*py,
	}
}

// v2 = A.q' * (B.q * v1 + B.p - A.p) = A.q' * B.q * v1 + A.q' * (B.p - A.p)
func CB2MulTTransform(a, b CB2Transform) CB2Transform {
	var c CB2Transform
	c.Q = CB2Rot{
		S: a.Q.C*b.Q.S - a.Q.S*b.Q.C,
		C: a.Q.C*b.Q.C + a.Q.S*b.Q.S,
	}
	c.P = CB2MulTRotVec2(a.Q, b.P.Sub(a.P))
	return c
}
