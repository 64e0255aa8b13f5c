package abstract

import (
	"testing"

	"github.com/consensys/go-absint/pkg/util/assert"
	"github.com/consensys/go-absint/pkg/util/math"
)

func Test_IntervalSet_01(t *testing.T) {
	assert.True(t, Empty().IsEmpty())
	assert.True(t, Top().IsTop())
	assert.False(t, Top().IsEmpty())
	assert.True(t, NewIntervalSet64(3, 3).IsPoint())
	assert.False(t, NewIntervalSet64(3, 4).IsPoint())
	assert.False(t, Empty().IsPoint())
}

func Test_IntervalSet_Insert_01(t *testing.T) {
	// Disjoint, non-adjacent members stay separate.
	s := NewIntervalSet64(1, 3)
	s = s.Insert(math.NewInterval64(7, 9))
	//
	checkSet(t, s, "[1, 3] U [7, 9]")
	checkCanonical(t, s)
}

func Test_IntervalSet_Insert_02(t *testing.T) {
	// Overlapping members are merged.
	s := NewIntervalSet64(1, 5)
	s = s.Insert(math.NewInterval64(3, 9))
	//
	checkSet(t, s, "[1, 9]")
	checkCanonical(t, s)
}

func Test_IntervalSet_Insert_03(t *testing.T) {
	// Adjacent members are coalesced.
	s := NewIntervalSet64(1, 3)
	s = s.Insert(math.NewInterval64(4, 6))
	//
	checkSet(t, s, "[1, 6]")
	checkCanonical(t, s)
}

func Test_IntervalSet_Insert_04(t *testing.T) {
	// An insertion can swallow several members at once.
	s := NewIntervalSet(
		math.NewInterval64(1, 2),
		math.NewInterval64(5, 6),
		math.NewInterval64(9, 10),
	)
	s = s.Insert(math.NewInterval64(2, 9))
	//
	checkSet(t, s, "[1, 10]")
	checkCanonical(t, s)
}

func Test_IntervalSet_Insert_05(t *testing.T) {
	// Inserting between members keeps the order.
	s := NewIntervalSet(
		math.NewInterval64(1, 2),
		math.NewInterval64(9, 10),
	)
	s = s.Insert(math.NewInterval64(5, 6))
	//
	checkSet(t, s, "[1, 2] U [5, 6] U [9, 10]")
	checkCanonical(t, s)
}

func Test_IntervalSet_Remove_01(t *testing.T) {
	// Removing the middle of a member splits it.
	s := NewIntervalSet64(1, 10)
	s = s.Remove(math.NewInterval64(4, 6))
	//
	checkSet(t, s, "[1, 3] U [7, 10]")
	checkCanonical(t, s)
}

func Test_IntervalSet_Remove_02(t *testing.T) {
	// Removing across members trims both.
	s := NewIntervalSet(
		math.NewInterval64(1, 5),
		math.NewInterval64(8, 12),
	)
	s = s.Remove(math.NewInterval64(4, 9))
	//
	checkSet(t, s, "[1, 3] U [10, 12]")
	checkCanonical(t, s)
}

func Test_IntervalSet_Remove_03(t *testing.T) {
	// Insert followed by remove of the same interval restores the original.
	s := NewIntervalSet(
		math.NewInterval64(1, 3),
		math.NewInterval64(10, 12),
	)
	iv := math.NewInterval64(5, 8)
	//
	r := s.Insert(iv)
	r = r.Remove(iv)
	//
	assert.True(t, r.Equals(s), "got %s, expected %s", r.String(), s.String())
}

func Test_IntervalSet_Remove_04(t *testing.T) {
	// Removing everything yields bottom.
	s := NewIntervalSet64(1, 10)
	s = s.Remove(math.NewInterval64(0, 20))
	//
	assert.True(t, s.IsEmpty())
}

func Test_IntervalSet_Join_01(t *testing.T) {
	// Join collapses to the single-interval hull.
	x := NewIntervalSet64(1, 3)
	y := NewIntervalSet64(7, 9)
	//
	checkSet(t, x.Join(y), "[1, 9]")
	checkSet(t, y.Join(x), "[1, 9]")
}

func Test_IntervalSet_Join_02(t *testing.T) {
	// Bottom is neutral for join (and preserves holes).
	x := NewIntervalSet(
		math.NewInterval64(1, 2),
		math.NewInterval64(5, 6),
	)
	//
	checkSet(t, x.Join(Empty()), "[1, 2] U [5, 6]")
	checkSet(t, Empty().Join(x), "[1, 2] U [5, 6]")
}

func Test_IntervalSet_Join_03(t *testing.T) {
	x := NewIntervalSet64(1, 3)
	// Idempotent, and top absorbing.
	checkSet(t, x.Join(x), "[1, 3]")
	assert.True(t, x.Join(Top()).IsTop())
}

func Test_IntervalSet_Meet_01(t *testing.T) {
	x := NewIntervalSet(
		math.NewInterval64(1, 4),
		math.NewInterval64(8, 12),
	)
	y := NewIntervalSet64(3, 9)
	//
	checkSet(t, x.Meet(y), "[3, 4] U [8, 9]")
	checkSet(t, y.Meet(x), "[3, 4] U [8, 9]")
	// Top neutral, bottom absorbing
	checkSet(t, x.Meet(Top()), "[1, 4] U [8, 12]")
	assert.True(t, x.Meet(Empty()).IsEmpty())
}

func Test_IntervalSet_Add_01(t *testing.T) {
	x := NewIntervalSet64(1, 3)
	y := NewIntervalSet64(10, 20)
	//
	checkSet(t, x.Add(y), "[11, 23]")
	assert.True(t, x.Add(Empty()).IsEmpty())
	assert.True(t, Empty().Add(x).IsEmpty())
}

func Test_IntervalSet_Add_02(t *testing.T) {
	// Shifting by an unbounded operand saturates the relevant side.
	x := NewIntervalSet64(1, 3)
	y := NewIntervalSet(math.NewInterval(math.NewInfInt64(0), math.PosInfinity))
	//
	checkSet(t, x.Add(y), "[1, +∞]")
}

func Test_IntervalSet_Sub_01(t *testing.T) {
	x := NewIntervalSet64(1, 3)
	y := NewIntervalSet64(10, 20)
	//
	checkSet(t, x.Sub(y), "[-19, -7]")
	assert.True(t, x.Sub(Empty()).IsEmpty())
}

func Test_IntervalSet_Mul_01(t *testing.T) {
	x := NewIntervalSet64(2, 3)
	y := NewIntervalSet64(-4, 5)
	//
	checkSet(t, x.Mul(y), "[-12, 15]")
	assert.True(t, x.Mul(Empty()).IsEmpty())
}

func Test_IntervalSet_Div_01(t *testing.T) {
	x := NewIntervalSet64(10, 10)
	//
	checkSet(t, x.Div(NewIntervalSet64(5, 5)), "[2, 2]")
	// Division by exactly zero gives bottom.
	assert.True(t, x.Div(NewIntervalSet64(0, 0)).IsEmpty())
	// An interior zero approximates by the divisor's extremes.
	checkSet(t, x.Div(NewIntervalSet64(-5, 5)), "[-2, 2]")
}

func Test_IntervalSet_Filter_01(t *testing.T) {
	x := NewIntervalSet64(0, 10)
	c := NewIntervalSet64(5, 5)
	//
	checkSet(t, x.FilterLt(c), "[0, 4]")
	checkSet(t, x.FilterLtEq(c), "[0, 5]")
	checkSet(t, x.FilterGt(c), "[6, 10]")
	checkSet(t, x.FilterGtEq(c), "[5, 10]")
	checkSet(t, x.FilterEq(c), "[5, 5]")
	checkSet(t, x.FilterNeq(c), "[0, 4] U [6, 10]")
}

func Test_IntervalSet_Filter_02(t *testing.T) {
	// A filter which excludes everything marks the branch unreachable.
	x := NewIntervalSet64(0, 10)
	c := NewIntervalSet64(20, 20)
	//
	assert.True(t, x.FilterGt(c).IsEmpty())
	assert.True(t, x.FilterGtEq(c).IsEmpty())
	assert.True(t, x.FilterEq(c).IsEmpty())
}

func Test_IntervalSet_Cmp_01(t *testing.T) {
	x := NewIntervalSet64(1, 3)
	y := NewIntervalSet64(3, 5)
	z := NewIntervalSet64(4, 5)
	//
	assert.True(t, x.LtEq(y))
	assert.False(t, x.Lt(y))
	assert.True(t, x.Lt(z))
	assert.True(t, y.GtEq(x))
	assert.False(t, y.Gt(x))
	assert.True(t, z.Gt(x))
	assert.True(t, x.Equals(NewIntervalSet64(1, 3)))
	assert.False(t, x.Equals(y))
}

func Test_IntervalSet_Contains_01(t *testing.T) {
	x := NewIntervalSet(
		math.NewInterval64(-2, 2),
		math.NewInterval64(5, 8),
	)
	//
	assert.True(t, x.Contains(math.NewInfInt64(0)))
	assert.True(t, x.ContainsZero())
	assert.False(t, x.Contains(math.NewInfInt64(3)))
	assert.True(t, x.Contains(math.NewInfInt64(7)))
	assert.False(t, Empty().ContainsZero())
}

func Test_IntervalSet_Widen_01(t *testing.T) {
	prev := NewIntervalSet64(0, 5)
	// Upper bound grew, so it is pushed to +∞.
	next := NewIntervalSet64(0, 6)
	checkSet(t, next.Widen(prev), "[0, +∞]")
	// Lower bound grew, so it is pushed to -∞.
	next = NewIntervalSet64(-1, 5)
	checkSet(t, next.Widen(prev), "[-∞, 5]")
	// Stable bounds are untouched.
	next = NewIntervalSet64(1, 4)
	checkSet(t, next.Widen(prev), "[1, 4]")
}

func Test_IntervalSet_String_01(t *testing.T) {
	assert.Equal(t, "⊥*", Empty().String())
	assert.Equal(t, "⊤*", Top().String())
	assert.Equal(t, "[1, 2]", NewIntervalSet64(1, 2).String())
}

// ==================================================================
// Framework
// ==================================================================

func checkSet(t *testing.T, actual IntervalSet, expected string) {
	t.Helper()
	//
	if actual.String() != expected {
		t.Errorf("got %s, expected %s", actual.String(), expected)
	}
}

// checkCanonical verifies the canonical form invariant: no empty members,
// strictly increasing, pairwise non-adjacent.
func checkCanonical(t *testing.T, s IntervalSet) {
	t.Helper()
	//
	items := s.Members()
	//
	for i, iv := range items {
		if iv.IsEmpty() {
			t.Errorf("canonical form violated: empty member in %s", s.String())
		}
		//
		if i > 0 {
			hi := items[i-1].Hi()
			hi = hi.Inc()
			lo := iv.Lo()
			//
			if hi.Cmp(lo) >= 0 {
				t.Errorf("canonical form violated: %s", s.String())
			}
		}
	}
}
