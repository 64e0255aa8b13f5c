package math

import (
	"testing"

	"github.com/consensys/go-absint/pkg/util/assert"
)

func Test_Interval_01(t *testing.T) {
	// Non-empty intervals keep their bounds ordered.
	iv := NewInterval64(1, 5)
	lo, hi := iv.Lo(), iv.Hi()
	//
	assert.Equal(t, "1", lo.String())
	assert.Equal(t, "5", hi.String())
	assert.False(t, iv.IsEmpty())
	assert.Panics(t, func() { NewInterval64(5, 1) })
}

func Test_Interval_02(t *testing.T) {
	assert.True(t, TOP.IsTop())
	assert.False(t, TOP.IsEmpty())
	assert.True(t, BOTTOM.IsEmpty())
	assert.False(t, BOTTOM.IsTop())
	assert.True(t, NewInterval64(3, 3).IsPoint())
	assert.False(t, NewInterval64(3, 4).IsPoint())
}

func Test_Interval_Join_01(t *testing.T) {
	x := NewInterval64(1, 3)
	y := NewInterval64(7, 9)
	//
	checkInterval(t, x.Join(y), "[1, 9]")
	checkInterval(t, y.Join(x), "[1, 9]")
	// Empty is neutral for join
	checkInterval(t, x.Join(BOTTOM), "[1, 3]")
	checkInterval(t, BOTTOM.Join(x), "[1, 3]")
}

func Test_Interval_Join_02(t *testing.T) {
	x := NewInterval64(1, 3)
	// Join is idempotent
	checkInterval(t, x.Join(x), "[1, 3]")
	// Top is absorbing
	assert.True(t, x.Join(TOP).IsTop())
}

func Test_Interval_Meet_01(t *testing.T) {
	x := NewInterval64(1, 5)
	y := NewInterval64(3, 9)
	//
	checkInterval(t, x.Meet(y), "[3, 5]")
	checkInterval(t, y.Meet(x), "[3, 5]")
	// Top is neutral for meet
	checkInterval(t, x.Meet(TOP), "[1, 5]")
	// Empty is absorbing
	assert.True(t, x.Meet(BOTTOM).IsEmpty())
}

func Test_Interval_Meet_02(t *testing.T) {
	x := NewInterval64(1, 2)
	y := NewInterval64(4, 9)
	// Non-crossing intervals meet to empty
	assert.True(t, x.Meet(y).IsEmpty())
	assert.True(t, y.Meet(x).IsEmpty())
}

func Test_Interval_Add_01(t *testing.T) {
	x := NewInterval64(1, 3)
	y := NewInterval64(-2, 5)
	//
	checkInterval(t, x.Add(y), "[-1, 8]")
	checkInterval(t, y.Add(x), "[-1, 8]")
	assert.True(t, x.Add(BOTTOM).IsEmpty())
}

func Test_Interval_Add_02(t *testing.T) {
	x := NewInterval64(1, 3)
	y := NewInterval(NewInfInt64(0), PosInfinity)
	//
	checkInterval(t, x.Add(y), "[1, +∞]")
}

func Test_Interval_Sub_01(t *testing.T) {
	x := NewInterval64(1, 3)
	y := NewInterval64(-2, 5)
	//
	checkInterval(t, x.Sub(y), "[-4, 5]")
	checkInterval(t, y.Sub(x), "[-5, 4]")
	assert.True(t, BOTTOM.Sub(x).IsEmpty())
}

func Test_Interval_Mul_01(t *testing.T) {
	x := NewInterval64(2, 3)
	y := NewInterval64(-4, 5)
	//
	checkInterval(t, x.Mul(y), "[-12, 15]")
	checkInterval(t, y.Mul(x), "[-12, 15]")
}

func Test_Interval_Mul_02(t *testing.T) {
	x := NewInterval64(-3, -2)
	y := NewInterval(NewInfInt64(0), PosInfinity)
	// Sign-exact corners: a negative range over (0 .. +∞) stays negative.
	checkInterval(t, x.Mul(y), "[-∞, 0]")
}

func Test_Interval_Div_01(t *testing.T) {
	x := NewInterval64(10, 10)
	y := NewInterval64(5, 5)
	//
	checkInterval(t, x.Div(y), "[2, 2]")
}

func Test_Interval_Div_02(t *testing.T) {
	// Division by exactly zero is empty.
	x := NewInterval64(10, 10)
	zero := NewInterval64(0, 0)
	//
	assert.True(t, x.Div(zero).IsEmpty())
}

func Test_Interval_Div_03(t *testing.T) {
	// A zero bound is clamped inwards.
	x := NewInterval64(10, 10)
	//
	checkInterval(t, x.Div(NewInterval64(0, 2)), "[5, 10]")
	checkInterval(t, x.Div(NewInterval64(-2, 0)), "[-10, -5]")
}

func Test_Interval_Div_04(t *testing.T) {
	// An interior zero is kept, hence quotients come from the extremes.
	x := NewInterval64(10, 10)
	//
	checkInterval(t, x.Div(NewInterval64(-5, 5)), "[-2, 2]")
}

func Test_Interval_Div_05(t *testing.T) {
	// Truncation towards zero.
	x := NewInterval64(-7, 7)
	//
	checkInterval(t, x.Div(NewInterval64(2, 2)), "[-3, 3]")
}

func Test_Interval_Cmp_01(t *testing.T) {
	x := NewInterval64(1, 3)
	y := NewInterval64(3, 5)
	z := NewInterval64(4, 5)
	//
	assert.True(t, x.LtEq(y))
	assert.False(t, x.Lt(y))
	assert.True(t, x.Lt(z))
	assert.True(t, y.GtEq(x))
	assert.False(t, y.Gt(x))
	assert.True(t, z.Gt(x))
}

func Test_Interval_Cmp_02(t *testing.T) {
	x := NewInterval64(1, 3)
	// Empty comparison conventions
	assert.True(t, BOTTOM.LtEq(x))
	assert.True(t, BOTTOM.Lt(x))
	assert.False(t, x.LtEq(BOTTOM))
	assert.False(t, BOTTOM.GtEq(x))
	assert.True(t, x.Gt(BOTTOM))
}

func Test_Interval_Contains_01(t *testing.T) {
	x := NewInterval64(-2, 5)
	//
	assert.True(t, x.Contains(NewInfInt64(0)))
	assert.True(t, x.Contains(NewInfInt64(-2)))
	assert.False(t, x.Contains(NewInfInt64(6)))
	assert.False(t, BOTTOM.Contains(NewInfInt64(0)))
	assert.True(t, TOP.Contains(NewInfInt64(123456)))
}

func Test_Interval_Within_01(t *testing.T) {
	x := NewInterval64(1, 3)
	y := NewInterval64(0, 5)
	//
	assert.True(t, x.Within(y))
	assert.False(t, y.Within(x))
	assert.True(t, BOTTOM.Within(x))
	assert.True(t, x.Within(TOP))
}

func Test_Interval_String_01(t *testing.T) {
	assert.Equal(t, "⊤", TOP.String())
	assert.Equal(t, "⊥", BOTTOM.String())
	assert.Equal(t, "[1, 2]", NewInterval64(1, 2).String())
	assert.Equal(t, "[0, +∞]", NewInterval(NewInfInt64(0), PosInfinity).String())
}

// ==================================================================
// Framework
// ==================================================================

func checkInterval(t *testing.T, actual Interval, expected string) {
	t.Helper()
	//
	if actual.String() != expected {
		t.Errorf("got %s, expected %s", actual.String(), expected)
	}
}
