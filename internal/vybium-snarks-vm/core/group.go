package core

import (
	"fmt"
	"math/big"
)

// The embedded curve is a twisted Edwards curve a*x^2 + y^2 = 1 + d*x^2*y^2
// over BaseField, with a = -1, d = 3021 and cofactor 4. Its prime-order
// subgroup has order ScalarField.Modulus().
var (
	edwardsA = BaseField.NewElementFromInt64(-1)
	edwardsD = BaseField.NewElementFromInt64(3021)
)

// Cofactor of the embedded Edwards curve.
const Cofactor = 4

// Point is an affine point on the embedded twisted Edwards curve.
type Point struct {
	X *FieldElement
	Y *FieldElement
}

// Identity returns the neutral element (0, 1) of the Edwards group.
func Identity() *Point {
	return &Point{X: BaseField.Zero(), Y: BaseField.One()}
}

// NewPoint constructs a point and checks the curve equation.
func NewPoint(x, y *FieldElement) (*Point, error) {
	p := &Point{X: x, Y: y}
	if !p.OnCurve() {
		return nil, fmt.Errorf("point (%s, %s) is not on the curve", x, y)
	}
	return p, nil
}

// IsIdentity reports whether the point is the neutral element.
func (p *Point) IsIdentity() bool {
	return p.X.IsZero() && p.Y.IsOne()
}

// OnCurve reports whether the point satisfies the Edwards curve equation.
func (p *Point) OnCurve() bool {
	x2 := p.X.Square()
	y2 := p.Y.Square()
	lhs := edwardsA.Mul(x2).Add(y2)
	rhs := BaseField.One().Add(edwardsD.Mul(x2).Mul(y2))
	return lhs.Equal(rhs)
}

// Add returns the Edwards sum of two points.
func (p *Point) Add(q *Point) *Point {
	// x3 = (x1*y2 + y1*x2) / (1 + d*x1*x2*y1*y2)
	// y3 = (y1*y2 - a*x1*x2) / (1 - d*x1*x2*y1*y2)
	x1x2 := p.X.Mul(q.X)
	y1y2 := p.Y.Mul(q.Y)
	cross := edwardsD.Mul(x1x2).Mul(y1y2)

	xNum := p.X.Mul(q.Y).Add(p.Y.Mul(q.X))
	yNum := y1y2.Sub(edwardsA.Mul(x1x2))

	x3, err := xNum.Div(BaseField.One().Add(cross))
	if err != nil {
		panic("core: exceptional point addition")
	}
	y3, err := yNum.Div(BaseField.One().Sub(cross))
	if err != nil {
		panic("core: exceptional point addition")
	}
	return &Point{X: x3, Y: y3}
}

// Double returns the point added to itself.
func (p *Point) Double() *Point {
	return p.Add(p)
}

// Neg returns the additive inverse of the point.
func (p *Point) Neg() *Point {
	return &Point{X: p.X.Neg(), Y: p.Y}
}

// ScalarMul returns k*P via double-and-add.
func (p *Point) ScalarMul(k *big.Int) *Point {
	result := Identity()
	base := p
	scalar := new(big.Int).Abs(k)
	for i := 0; i < scalar.BitLen(); i++ {
		if scalar.Bit(i) == 1 {
			result = result.Add(base)
		}
		base = base.Double()
	}
	if k.Sign() < 0 {
		result = result.Neg()
	}
	return result
}

// MulByCofactor clears the cofactor, mapping the point into the prime-order
// subgroup.
func (p *Point) MulByCofactor() *Point {
	return p.Double().Double()
}

// Equal reports whether two points have identical coordinates.
func (p *Point) Equal(q *Point) bool {
	return p.X.Equal(q.X) && p.Y.Equal(q.Y)
}

// RecoverY solves the curve equation for y given x, choosing the root with
// even canonical value so recovery is deterministic. Returns an error when
// no point with the given x-coordinate exists.
func RecoverY(x *FieldElement) (*Point, error) {
	// y^2 = (1 - a*x^2) / (1 - d*x^2)
	x2 := x.Square()
	num := BaseField.One().Sub(edwardsA.Mul(x2))
	den := BaseField.One().Sub(edwardsD.Mul(x2))
	y2, err := num.Div(den)
	if err != nil {
		return nil, fmt.Errorf("no curve point with x-coordinate %s: %w", x, err)
	}
	y, err := y2.Sqrt()
	if err != nil {
		return nil, fmt.Errorf("no curve point with x-coordinate %s: %w", x, err)
	}
	if y.Big().Bit(0) == 1 {
		y = y.Neg()
	}
	return &Point{X: x, Y: y}, nil
}
