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

import (
	"fmt"
	"math/big"
)

const notAnInfinity = 0
const negativeInfinity = 1
const positiveInfinity = 2

// PosInfinity represents positive infinity
var PosInfinity = InfInt{big.Int{}, positiveInfinity}

// NegInfinity represents negative infinity
var NegInfinity = InfInt{big.Int{}, negativeInfinity}

// InfInt represents an unbound (i.e. big) integer value which can,
// additionally, be either negative infinity or positive infinity.  These are
// the bounds out of which intervals are built: a bound is either an exact
// mathematical integer, or one of the two infinities closing off the lattice.
type InfInt struct {
	// value of this integer, which is ignored when this is an infinity.
	val big.Int
	// sign indicates whether we are not an infinity, or are negative infinity
	// or positive infinity.
	sign uint8
}

// NewInfInt constructs a finite value from a big integer.  The underlying big
// integer is cloned.
func NewInfInt(val big.Int) InfInt {
	var p InfInt
	//
	p.SetInt(val)
	//
	return p
}

// NewInfInt64 constructs a finite value from a machine integer.
func NewInfInt64(val int64) InfInt {
	return NewInfInt(*big.NewInt(val))
}

// Add two (potentially infinite) integers together.  Adding two opposing
// infinities has no meaningful answer and will panic.
func (p *InfInt) Add(other InfInt) InfInt {
	var val big.Int
	//
	switch {
	case p.sign == notAnInfinity && other.sign == notAnInfinity:
		val.Add(&p.val, &other.val)
		//
		return InfInt{val, notAnInfinity}
	case p.sign == notAnInfinity:
		return other
	case other.sign == notAnInfinity || p.sign == other.sign:
		return *p
	default:
		panic("cannot add opposing infinities")
	}
}

// Sub subtracts a (potentially infinite) value from this (potentially
// infinite) value.
func (p *InfInt) Sub(other InfInt) InfInt {
	neg := other.Negate()
	return p.Add(neg)
}

// Mul multiplies a (potentially infinite) value against this (potentially
// infinite) value.  Multiplication is sign exact, with zero annihilating
// either infinity (the convention required for interval corner products).
func (p *InfInt) Mul(other InfInt) InfInt {
	var val big.Int
	// Finite case first
	if p.sign == notAnInfinity && other.sign == notAnInfinity {
		val.Mul(&p.val, &other.val)
		//
		return InfInt{val, notAnInfinity}
	}
	// At least one infinity involved
	switch p.Signum() * other.Signum() {
	case 0:
		return NewInfInt64(0)
	case 1:
		return PosInfinity
	default:
		return NegInfinity
	}
}

// Div divides this (potentially infinite) value by another, truncating towards
// zero (as big.Int.Quo does).  A finite value divided by an infinity is zero,
// whilst an infinity divided by anything retains an infinite magnitude.  This
// will panic on division by (finite) zero.
func (p *InfInt) Div(other InfInt) InfInt {
	var val big.Int
	//
	switch {
	case p.sign == notAnInfinity && other.sign == notAnInfinity:
		val.Quo(&p.val, &other.val)
		//
		return InfInt{val, notAnInfinity}
	case p.sign == notAnInfinity:
		// finite / infinity
		return NewInfInt64(0)
	default:
		if p.Signum()*other.Signum() >= 0 {
			return PosInfinity
		}
		//
		return NegInfinity
	}
}

// Cmp performs a comparison of two (potentially infinite) integer values.
func (p *InfInt) Cmp(o InfInt) int {
	switch {
	case p.sign == notAnInfinity && o.sign == notAnInfinity:
		return p.val.Cmp(&o.val)
	case p.sign == o.sign:
		return 0
	case p.sign == negativeInfinity || o.sign == positiveInfinity:
		return -1
	case p.sign == positiveInfinity || o.sign == negativeInfinity:
		return 1
	default:
		panic(fmt.Sprintf("unreachable (%s ~ %s)", p.String(), o.String()))
	}
}

// IntVal converts a potentially infinite integer into a finite value.  This
// will panic if this value is an infinity.
func (p *InfInt) IntVal() big.Int {
	if p.sign != notAnInfinity {
		panic("cannot cast infinity into a big integer")
	}
	//
	return p.val
}

// IsFinite returns true if this represents a finite integer value.
func (p *InfInt) IsFinite() bool {
	return p.sign == notAnInfinity
}

// IsNegInfinity returns true if this value is negative infinity.
func (p *InfInt) IsNegInfinity() bool {
	return p.sign == negativeInfinity
}

// IsPosInfinity returns true if this value is positive infinity.
func (p *InfInt) IsPosInfinity() bool {
	return p.sign == positiveInfinity
}

// IsZero returns true if this value is finite zero.
func (p *InfInt) IsZero() bool {
	return p.sign == notAnInfinity && p.val.Sign() == 0
}

// Signum returns the sign of this value: -1 for anything negative (including
// negative infinity), 0 for zero and 1 for anything positive.
func (p *InfInt) Signum() int {
	switch p.sign {
	case negativeInfinity:
		return -1
	case positiveInfinity:
		return 1
	default:
		return p.val.Sign()
	}
}

// Min determines the least of two values.
func (p *InfInt) Min(o InfInt) InfInt {
	if p.Cmp(o) <= 0 {
		return *p
	}
	//
	return o
}

// Max determines the greatest of two values.
func (p *InfInt) Max(o InfInt) InfInt {
	if p.Cmp(o) >= 0 {
		return *p
	}
	//
	return o
}

// Negate this (potentially infinite) integer.
func (p *InfInt) Negate() InfInt {
	switch p.sign {
	case positiveInfinity:
		return NegInfinity
	case negativeInfinity:
		return PosInfinity
	default:
		var val big.Int
		//
		val.Neg(&p.val)
		//
		return InfInt{val, notAnInfinity}
	}
}

// Inc returns this value plus one.  Infinities are unaffected.
func (p *InfInt) Inc() InfInt {
	one := NewInfInt64(1)
	return p.Add(one)
}

// Dec returns this value minus one.  Infinities are unaffected.
func (p *InfInt) Dec() InfInt {
	one := NewInfInt64(-1)
	return p.Add(one)
}

// Set this to match some (potentially infinite) integer.  Observe this will
// clone the underlying big integer if the value is finite.
func (p *InfInt) Set(other InfInt) {
	var val big.Int
	// Clone big int
	val.Set(&other.val)
	//
	p.val = val
	p.sign = other.sign
}

// SetInt sets this to match a big integer.  Observe this will clone the
// underlying big integer.
func (p *InfInt) SetInt(other big.Int) {
	var val big.Int
	// Clone big int
	val.Set(&other)
	//
	p.val = val
	p.sign = notAnInfinity
}

func (p InfInt) String() string {
	switch p.sign {
	case negativeInfinity:
		return "-∞"
	case positiveInfinity:
		return "+∞"
	default:
		return p.val.String()
	}
}
