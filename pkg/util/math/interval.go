// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package math

import "fmt"

// TOP represents the interval which encloses all other intervals.
var TOP Interval = Interval{NegInfinity, PosInfinity, false}

// BOTTOM represents the empty interval, which is enclosed by all other
// intervals.  It is absorbing for meet and arithmetic, and neutral for join.
var BOTTOM Interval = Interval{NegInfinity, PosInfinity, true}

// Interval provides a discrete range of integers, such as 0..1, 1..18, etc,
// approximating the possible values a given expression could evaluate to.  An
// interval is either a closed range lo..hi (with lo <= hi, where either end
// can be an infinity) or the distinguished empty interval.  For more
// information on this kind of domain, see the following paper:
//
// Integer Range Analysis for Whiley on Embedded Systems, David J. Pearce.  In
// Proceedings of the IEEE/IFIP Workshop on Software Technologies for Future
// Embedded and Ubiquitous Systems (SEUS), pages 26--33, 2015.
type Interval struct {
	lo InfInt
	hi InfInt
	// empty indicates the distinguished empty interval, in which case the
	// bounds above are meaningless.
	empty bool
}

// NewInterval creates an interval representing a given range.
func NewInterval(lo InfInt, hi InfInt) Interval {
	// sanity check
	if lo.Cmp(hi) > 0 {
		panic(fmt.Sprintf("invalid interval (%s .. %s)", lo.String(), hi.String()))
	}
	//
	return Interval{lo, hi, false}
}

// NewInterval64 creates an interval representing a given range of machine
// integers.
func NewInterval64(lo int64, hi int64) Interval {
	return NewInterval(NewInfInt64(lo), NewInfInt64(hi))
}

// PointInterval creates an interval holding exactly one value.
func PointInterval(val InfInt) Interval {
	return Interval{val, val, false}
}

// IsEmpty determines whether or not this is the empty interval.
func (p Interval) IsEmpty() bool {
	return p.empty
}

// IsTop determines whether or not this interval covers every integer.
func (p Interval) IsTop() bool {
	return !p.empty && p.lo.IsNegInfinity() && p.hi.IsPosInfinity()
}

// IsPoint determines whether or not this interval holds exactly one (finite)
// value.
func (p Interval) IsPoint() bool {
	return !p.empty && p.lo.IsFinite() && p.lo.Cmp(p.hi) == 0
}

// Lo returns the lower bound of this interval, which will panic on the empty
// interval.
func (p Interval) Lo() InfInt {
	if p.empty {
		panic("empty interval has no lower bound")
	}
	//
	return p.lo
}

// Hi returns the upper bound of this interval, which will panic on the empty
// interval.
func (p Interval) Hi() InfInt {
	if p.empty {
		panic("empty interval has no upper bound")
	}
	//
	return p.hi
}

// Join returns the least interval enclosing both operands.  The empty
// interval is neutral.
func (p Interval) Join(q Interval) Interval {
	switch {
	case p.empty:
		return q
	case q.empty:
		return p
	default:
		return Interval{p.lo.Min(q.lo), p.hi.Max(q.hi), false}
	}
}

// Meet returns the intersection of both operands, which is empty whenever
// they do not cross.  The empty interval is absorbing.
func (p Interval) Meet(q Interval) Interval {
	if p.empty || q.empty {
		return BOTTOM
	}
	//
	lo := p.lo.Max(q.lo)
	hi := p.hi.Min(q.hi)
	//
	if lo.Cmp(hi) > 0 {
		return BOTTOM
	}
	//
	return Interval{lo, hi, false}
}

// Add computes the sum of two intervals, namely (lo1+lo2 .. hi1+hi2).  The
// empty interval is absorbing.
func (p Interval) Add(q Interval) Interval {
	if p.empty || q.empty {
		return BOTTOM
	}
	//
	return Interval{p.lo.Add(q.lo), p.hi.Add(q.hi), false}
}

// Sub computes the difference of two intervals, namely (lo1-hi2 .. hi1-lo2).
// The empty interval is absorbing.
func (p Interval) Sub(q Interval) Interval {
	if p.empty || q.empty {
		return BOTTOM
	}
	//
	return Interval{p.lo.Sub(q.hi), p.hi.Sub(q.lo), false}
}

// Mul computes the product of two intervals as the envelope of the four
// corner products.  The empty interval is absorbing.
func (p Interval) Mul(q Interval) Interval {
	if p.empty || q.empty {
		return BOTTOM
	}
	//
	a := p.lo.Mul(q.lo)
	b := p.lo.Mul(q.hi)
	c := p.hi.Mul(q.lo)
	d := p.hi.Mul(q.hi)
	//
	return cornerEnvelope(a, b, c, d)
}

// Div computes the quotient of two intervals.  A divisor which is exactly
// zero yields the empty interval.  Otherwise, zero is excluded from the
// divisor by clamping any zero bound inwards, after which the envelope of the
// four corner quotients is taken.  Observe that an interior zero in the
// divisor is not excluded, hence the result is an approximation of the
// quotients by the divisor's non-zero extremes.
func (p Interval) Div(q Interval) Interval {
	if p.empty || q.empty {
		return BOTTOM
	}
	// Division by exactly zero
	if q.lo.IsZero() && q.hi.IsZero() {
		return BOTTOM
	}
	// Clamp any zero bound inwards, excluding zero.
	qlo, qhi := q.lo, q.hi
	//
	if qhi.IsZero() {
		qhi = NewInfInt64(-1)
	}
	//
	if qlo.IsZero() {
		qlo = NewInfInt64(1)
	}
	//
	a := p.lo.Div(qlo)
	b := p.lo.Div(qhi)
	c := p.hi.Div(qlo)
	d := p.hi.Div(qhi)
	//
	return cornerEnvelope(a, b, c, d)
}

// Contains checks whether a given value is contained within this interval.
func (p Interval) Contains(val InfInt) bool {
	return !p.empty && p.lo.Cmp(val) <= 0 && p.hi.Cmp(val) >= 0
}

// Within checks whether this interval is contained within another.  The
// empty interval is within everything.
func (p Interval) Within(q Interval) bool {
	if p.empty {
		return true
	} else if q.empty {
		return false
	}
	//
	return p.lo.Cmp(q.lo) >= 0 && p.hi.Cmp(q.hi) <= 0
}

// LtEq determines whether every value of this interval lies at or below every
// value of the other, that is whether hi1 <= lo2.  The empty interval
// trivially satisfies this.
func (p Interval) LtEq(q Interval) bool {
	if p.empty {
		return true
	} else if q.empty {
		return false
	}
	//
	return p.hi.Cmp(q.lo) <= 0
}

// Lt determines whether every value of this interval lies strictly below
// every value of the other, that is whether hi1 < lo2.
func (p Interval) Lt(q Interval) bool {
	if p.empty {
		return true
	} else if q.empty {
		return false
	}
	//
	return p.hi.Cmp(q.lo) < 0
}

// GtEq determines whether every value of this interval lies at or above every
// value of the other, that is whether lo1 >= hi2.
func (p Interval) GtEq(q Interval) bool {
	if p.empty {
		return false
	} else if q.empty {
		return true
	}
	//
	return p.lo.Cmp(q.hi) >= 0
}

// Gt determines whether every value of this interval lies strictly above
// every value of the other, that is whether lo1 > hi2.
func (p Interval) Gt(q Interval) bool {
	if p.empty {
		return false
	} else if q.empty {
		return true
	}
	//
	return p.lo.Cmp(q.hi) > 0
}

// Equals determines whether two intervals are structurally equal.
func (p Interval) Equals(q Interval) bool {
	if p.empty || q.empty {
		return p.empty == q.empty
	}
	//
	return p.lo.Cmp(q.lo) == 0 && p.hi.Cmp(q.hi) == 0
}

func (p Interval) String() string {
	switch {
	case p.empty:
		return "⊥"
	case p.IsTop():
		return "⊤"
	default:
		return fmt.Sprintf("[%s, %s]", p.lo.String(), p.hi.String())
	}
}

// cornerEnvelope returns the interval spanned by four corner values.
func cornerEnvelope(a InfInt, b InfInt, c InfInt, d InfInt) Interval {
	lo := a.Min(b)
	lo = lo.Min(c)
	lo = lo.Min(d)
	//
	hi := a.Max(b)
	hi = hi.Max(c)
	hi = hi.Max(d)
	//
	return Interval{lo, hi, false}
}
