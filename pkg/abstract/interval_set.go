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
package abstract

import (
	"slices"
	"sort"
	"strings"

	"github.com/consensys/go-absint/pkg/util/math"
)

// IntervalSet is the abstract value domain: an ordered union of pairwise
// disjoint, non-adjacent, non-empty intervals.  The canonical form invariant
// is that members are stored in strictly increasing order, and for any two
// neighbours I and J it holds that I.hi + 1 < J.lo (adjacent members are
// coalesced on every mutation).  The empty union denotes the unreachable
// value (bottom), whilst a single (-∞ .. +∞) member denotes the unconstrained
// value (top).
//
// Operations are functional: no method mutates its receiver.
type IntervalSet struct {
	items []math.Interval
}

// Empty returns the bottom value.
func Empty() IntervalSet {
	return IntervalSet{nil}
}

// Top returns the unconstrained value.
func Top() IntervalSet {
	return IntervalSet{[]math.Interval{math.TOP}}
}

// NewIntervalSet constructs a set from zero or more intervals, restoring
// canonical form along the way.
func NewIntervalSet(intervals ...math.Interval) IntervalSet {
	var p IntervalSet
	//
	for _, iv := range intervals {
		p.insert(iv)
	}
	//
	return p
}

// NewIntervalSet64 constructs a set holding a single range of machine
// integers.
func NewIntervalSet64(lo int64, hi int64) IntervalSet {
	return NewIntervalSet(math.NewInterval64(lo, hi))
}

// Point constructs a set holding exactly one value.
func Point(val math.InfInt) IntervalSet {
	return NewIntervalSet(math.PointInterval(val))
}

// IsEmpty determines whether this set is the bottom value.
func (p IntervalSet) IsEmpty() bool {
	return len(p.items) == 0
}

// IsTop determines whether this set is the unconstrained value.
func (p IntervalSet) IsTop() bool {
	return len(p.items) == 1 && p.items[0].IsTop()
}

// IsPoint determines whether this set holds exactly one (finite) value.
func (p IntervalSet) IsPoint() bool {
	return len(p.items) == 1 && p.items[0].IsPoint()
}

// Members returns the member intervals, in increasing order.
func (p IntervalSet) Members() []math.Interval {
	return p.items
}

// LowerBound returns the least value of this set, which will panic on the
// empty set.
func (p IntervalSet) LowerBound() math.InfInt {
	if p.IsEmpty() {
		panic("empty interval set has no lower bound")
	}
	//
	return p.items[0].Lo()
}

// UpperBound returns the greatest value of this set, which will panic on the
// empty set.
func (p IntervalSet) UpperBound() math.InfInt {
	if p.IsEmpty() {
		panic("empty interval set has no upper bound")
	}
	//
	return p.items[len(p.items)-1].Hi()
}

// Contains checks whether a given value lies within one of the members.
func (p IntervalSet) Contains(val math.InfInt) bool {
	for _, iv := range p.items {
		if iv.Contains(val) {
			return true
		}
	}
	//
	return false
}

// ContainsZero checks whether zero lies within one of the members.
func (p IntervalSet) ContainsZero() bool {
	return p.Contains(math.NewInfInt64(0))
}

// Insert returns this set extended with a given interval.
func (p IntervalSet) Insert(iv math.Interval) IntervalSet {
	q := p.clone()
	q.insert(iv)
	//
	return q
}

// Remove returns this set with a given range carved out, splitting any
// member which overlaps the range partially.
func (p IntervalSet) Remove(iv math.Interval) IntervalSet {
	if iv.IsEmpty() || p.IsEmpty() {
		return p
	}
	//
	var (
		res IntervalSet
		s   = iv.Lo()
		e   = iv.Hi()
	)
	//
	for _, item := range p.items {
		if item.Meet(iv).IsEmpty() {
			// no overlap, keep as is
			res.items = append(res.items, item)
			continue
		}
		// keep whatever pokes out on either side
		lo, hi := item.Lo(), item.Hi()
		//
		if lo.Cmp(s) < 0 {
			res.items = append(res.items, math.NewInterval(lo, s.Dec()))
		}
		//
		if hi.Cmp(e) > 0 {
			res.items = append(res.items, math.NewInterval(e.Inc(), hi))
		}
	}
	//
	return res
}

// Join returns the least upper bound of both operands, coarsened to a single
// enclosing interval.  Collapsing to the hull is the widening which keeps
// loop iteration convergent; the empty set is neutral.
func (p IntervalSet) Join(q IntervalSet) IntervalSet {
	switch {
	case p.IsEmpty():
		return q
	case q.IsEmpty():
		return p
	default:
		return IntervalSet{[]math.Interval{p.hull().Join(q.hull())}}
	}
}

// Meet returns the intersection of both operands, as the pairwise meet of
// their members.
func (p IntervalSet) Meet(q IntervalSet) IntervalSet {
	var res IntervalSet
	//
	for _, a := range p.items {
		for _, b := range q.items {
			res.insert(a.Meet(b))
		}
	}
	//
	return res
}

// Add returns the sum of both operands, obtained by shifting this set by the
// other's extreme bounds and joining the two shifts.  The empty set is
// absorbing.
func (p IntervalSet) Add(q IntervalSet) IntervalSet {
	if p.IsEmpty() || q.IsEmpty() {
		return Empty()
	}
	//
	a := p.shift(q.UpperBound())
	b := p.shift(q.LowerBound())
	//
	return a.Join(b)
}

// Sub returns the difference of both operands, obtained by shifting this set
// by the other's negated bounds and joining the two shifts.  The empty set is
// absorbing.
func (p IntervalSet) Sub(q IntervalSet) IntervalSet {
	if p.IsEmpty() || q.IsEmpty() {
		return Empty()
	}
	//
	lo := q.LowerBound()
	hi := q.UpperBound()
	//
	a := p.shift(lo.Negate())
	b := p.shift(hi.Negate())
	//
	return a.Join(b)
}

// Mul returns the product of both operands, as the cartesian product of
// their members.
func (p IntervalSet) Mul(q IntervalSet) IntervalSet {
	var res IntervalSet
	//
	for _, a := range p.items {
		for _, b := range q.items {
			res.insert(a.Mul(b))
		}
	}
	//
	return res
}

// Div returns the quotient of both operands, as the cartesian product of
// their members.  Any member pair whose quotient is empty (i.e. division by
// exactly zero) contributes nothing.
func (p IntervalSet) Div(q IntervalSet) IntervalSet {
	var res IntervalSet
	//
	for _, a := range p.items {
		for _, b := range q.items {
			res.insert(a.Div(b))
		}
	}
	//
	return res
}

// FilterLt returns the subset of this set which can be strictly less than
// the other, namely the meet with (-∞ .. c-1) for c the other's upper bound.
func (p IntervalSet) FilterLt(q IntervalSet) IntervalSet {
	if p.IsEmpty() || q.IsEmpty() {
		return p
	}
	//
	c := q.UpperBound()
	//
	return p.Meet(NewIntervalSet(math.NewInterval(math.NegInfinity, c.Dec())))
}

// FilterLtEq returns the subset of this set which can be less than or equal
// to the other, namely the meet with (-∞ .. c) for c the other's upper bound.
func (p IntervalSet) FilterLtEq(q IntervalSet) IntervalSet {
	if p.IsEmpty() || q.IsEmpty() {
		return p
	}
	//
	return p.Meet(NewIntervalSet(math.NewInterval(math.NegInfinity, q.UpperBound())))
}

// FilterGt returns the subset of this set which can be strictly greater than
// the other, namely the meet with (c+1 .. +∞) for c the other's lower bound.
func (p IntervalSet) FilterGt(q IntervalSet) IntervalSet {
	if p.IsEmpty() || q.IsEmpty() {
		return p
	}
	//
	c := q.LowerBound()
	//
	return p.Meet(NewIntervalSet(math.NewInterval(c.Inc(), math.PosInfinity)))
}

// FilterGtEq returns the subset of this set which can be greater than or
// equal to the other, namely the meet with (c .. +∞) for c the other's lower
// bound.
func (p IntervalSet) FilterGtEq(q IntervalSet) IntervalSet {
	if p.IsEmpty() || q.IsEmpty() {
		return p
	}
	//
	return p.Meet(NewIntervalSet(math.NewInterval(q.LowerBound(), math.PosInfinity)))
}

// FilterEq returns the subset of this set which can equal the other, namely
// their meet.
func (p IntervalSet) FilterEq(q IntervalSet) IntervalSet {
	if p.IsEmpty() || q.IsEmpty() {
		return p
	}
	//
	return p.Meet(q)
}

// FilterNeq returns the subset of this set which can differ from the other,
// namely this set with the other's members removed.
func (p IntervalSet) FilterNeq(q IntervalSet) IntervalSet {
	res := p
	//
	for _, iv := range q.items {
		res = res.Remove(iv)
	}
	//
	return res
}

// LtEq determines whether every value of this set lies at or below every
// value of the other.
func (p IntervalSet) LtEq(q IntervalSet) bool {
	if p.IsEmpty() {
		return true
	} else if q.IsEmpty() {
		return false
	}
	//
	ub := p.UpperBound()
	//
	return ub.Cmp(q.LowerBound()) <= 0
}

// Lt determines whether every value of this set lies strictly below every
// value of the other.
func (p IntervalSet) Lt(q IntervalSet) bool {
	if p.IsEmpty() {
		return true
	} else if q.IsEmpty() {
		return false
	}
	//
	ub := p.UpperBound()
	//
	return ub.Cmp(q.LowerBound()) < 0
}

// GtEq determines whether every value of this set lies at or above every
// value of the other.
func (p IntervalSet) GtEq(q IntervalSet) bool {
	if p.IsEmpty() {
		return false
	} else if q.IsEmpty() {
		return true
	}
	//
	lb := p.LowerBound()
	//
	return lb.Cmp(q.UpperBound()) >= 0
}

// Gt determines whether every value of this set lies strictly above every
// value of the other.
func (p IntervalSet) Gt(q IntervalSet) bool {
	if p.IsEmpty() {
		return false
	} else if q.IsEmpty() {
		return true
	}
	//
	lb := p.LowerBound()
	//
	return lb.Cmp(q.UpperBound()) > 0
}

// Equals determines whether two sets are structurally equal.
func (p IntervalSet) Equals(q IntervalSet) bool {
	if len(p.items) != len(q.items) {
		return false
	}
	//
	for i, iv := range p.items {
		if !iv.Equals(q.items[i]) {
			return false
		}
	}
	//
	return true
}

// Widen returns this set with any bound which has grown beyond the previous
// value pushed out to the corresponding infinity.  Bounds which did not grow
// are kept as they are in this set, even where they shrank.  The solver
// applies it to the join of the previous and the new value, which gives the
// classical widening on loops whose bounds would otherwise grow forever.
func (p IntervalSet) Widen(prev IntervalSet) IntervalSet {
	if p.IsEmpty() || prev.IsEmpty() {
		return p
	}
	//
	var (
		lo  = p.LowerBound()
		hi  = p.UpperBound()
		plo = prev.LowerBound()
		phi = prev.UpperBound()
	)
	//
	grownLo := lo.Cmp(plo) < 0
	grownHi := hi.Cmp(phi) > 0
	//
	if !grownLo && !grownHi {
		return p
	}
	//
	items := slices.Clone(p.items)
	//
	if grownLo {
		first := items[0]
		items[0] = math.NewInterval(math.NegInfinity, first.Hi())
	}
	//
	if grownHi {
		last := items[len(items)-1]
		items[len(items)-1] = math.NewInterval(last.Lo(), math.PosInfinity)
	}
	//
	return IntervalSet{items}
}

func (p IntervalSet) String() string {
	switch {
	case p.IsEmpty():
		return "⊥*"
	case p.IsTop():
		return "⊤*"
	default:
		var builder strings.Builder
		//
		for i, iv := range p.items {
			if i != 0 {
				builder.WriteString(" U ")
			}
			//
			builder.WriteString(iv.String())
		}
		//
		return builder.String()
	}
}

// hull returns the single interval enclosing every member of this (non-empty)
// set.
func (p IntervalSet) hull() math.Interval {
	return math.NewInterval(p.LowerBound(), p.UpperBound())
}

// clone returns a copy of this set whose member array is not shared.
func (p IntervalSet) clone() IntervalSet {
	return IntervalSet{slices.Clone(p.items)}
}

// insert merges a given interval into this set, in place, restoring the
// canonical form.  It first locates the run of members overlapping the new
// interval, replaces that run by the merged interval, and finally coalesces
// any adjacent neighbours.
func (p *IntervalSet) insert(iv math.Interval) {
	if iv.IsEmpty() {
		return
	}
	// locate first member whose upper bound reaches the new lower bound
	i := sort.Search(len(p.items), func(j int) bool {
		hi := p.items[j].Hi()
		lo := iv.Lo()
		//
		return hi.Cmp(lo) >= 0
	})
	// merge every member overlapping the new interval
	j := i
	//
	for j < len(p.items) {
		lo := p.items[j].Lo()
		hi := iv.Hi()
		//
		if lo.Cmp(hi) > 0 {
			break
		}
		//
		iv = iv.Join(p.items[j])
		j++
	}
	//
	p.items = slices.Replace(p.items, i, j, iv)
	// coalesce adjacent neighbours
	for k := 0; k+1 < len(p.items); {
		hi := p.items[k].Hi()
		next := p.items[k+1].Lo()
		hi = hi.Inc()
		//
		if hi.Cmp(next) == 0 {
			merged := p.items[k].Join(p.items[k+1])
			p.items = slices.Replace(p.items, k, k+2, merged)
		} else {
			k++
		}
	}
}

// shift returns this set translated by a given amount.  Shifting by an
// infinity collapses the whole set onto that infinity.
func (p IntervalSet) shift(amount math.InfInt) IntervalSet {
	if !amount.IsFinite() {
		return IntervalSet{[]math.Interval{math.PointInterval(amount)}}
	}
	//
	var res IntervalSet
	//
	for _, iv := range p.items {
		res.insert(iv.Add(math.PointInterval(amount)))
	}
	//
	return res
}
