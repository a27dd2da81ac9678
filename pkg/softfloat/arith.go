package softfloat

import "math"

// toExactFloat64 reconstructs the value of f as a float64. Every finite
// float32 has at most 24 significant bits, so the conversion is always
// exact — float64's 53-bit mantissa has ample headroom. This is the basis
// for the rest of this file: arithmetic is performed in float64 (exact for
// mul; correctly-rounded-in-double, a superset of float32 precision, for
// div/sqrt; rounded to odd for add/sub/fma, so no sticky bit is lost) and
// the result is rounded back down to float32 by hand, under the
// caller-specified rounding mode.
func (f Float32) toExactFloat64() float64 {
	if f.IsNaN() {
		return math.NaN()
	}
	d := f.decode()
	if d.sig == 0 {
		if d.sign {
			return math.Copysign(0, -1)
		}
		return 0
	}
	v := math.Ldexp(float64(d.sig), int(d.exp)-52)
	if d.sign {
		return -v
	}
	return v
}

// propagateNaN returns the canonical quiet NaN if either operand is NaN,
// along with whether the Invalid flag should be set (true whenever either
// operand was a signaling NaN).
func propagateNaN(a, b Float32) (Float32, Exceptions, bool) {
	if a.IsNaN() || b.IsNaN() {
		var flags Exceptions
		if a.IsSignalingNaN() || b.IsSignalingNaN() {
			flags = FlagInvalid
		}
		return FromBits(QuietNaN), flags, true
	}
	return Float32{}, 0, false
}

// Add computes a + b with the given rounding mode.
func Add(a, b Float32, mode RoundingMode) (Float32, Exceptions) {
	if r, flags, isNaN := propagateNaN(a, b); isNaN {
		return r, flags
	}
	if a.IsInf() && b.IsInf() && a.sign() != b.sign() {
		return FromBits(QuietNaN), FlagInvalid
	}
	if a.IsInf() {
		return a, 0
	}
	if b.IsInf() {
		return b, 0
	}
	x, y := a.toExactFloat64(), b.toExactFloat64()
	sum := x + y
	// The float64 sum can itself round when the exponents are far apart.
	// Recover its exact error (TwoSum) and round to odd, so the final
	// rounding to float32 still sees that the result is inexact.
	bb := sum - x
	if e := (x - (sum - bb)) + (y - bb); e != 0 && math.Float64bits(sum)&1 == 0 {
		sum = math.Nextafter(sum, math.Copysign(math.Inf(1), e))
	}
	return roundFloat64ToFloat32(sum, mode)
}

// Sub computes a - b with the given rounding mode.
func Sub(a, b Float32, mode RoundingMode) (Float32, Exceptions) {
	return Add(a, b.Neg(), mode)
}

// Mul computes a * b with the given rounding mode.
func Mul(a, b Float32, mode RoundingMode) (Float32, Exceptions) {
	if r, flags, isNaN := propagateNaN(a, b); isNaN {
		return r, flags
	}
	if (a.IsInf() && b.IsZero()) || (a.IsZero() && b.IsInf()) {
		return FromBits(QuietNaN), FlagInvalid
	}
	if a.IsInf() || b.IsInf() {
		sign := a.sign() != b.sign()
		return FromBits(infBits(sign)), 0
	}
	return roundFloat64ToFloat32(a.toExactFloat64()*b.toExactFloat64(), mode)
}

// Div computes a / b with the given rounding mode.
func Div(a, b Float32, mode RoundingMode) (Float32, Exceptions) {
	if r, flags, isNaN := propagateNaN(a, b); isNaN {
		return r, flags
	}
	if a.IsInf() && b.IsInf() {
		return FromBits(QuietNaN), FlagInvalid
	}
	if a.IsZero() && b.IsZero() {
		return FromBits(QuietNaN), FlagInvalid
	}
	if b.IsZero() && !a.IsZero() {
		sign := a.sign() != b.sign()
		return FromBits(infBits(sign)), FlagDivByZero
	}
	if a.IsInf() {
		sign := a.sign() != b.sign()
		return FromBits(infBits(sign)), 0
	}
	if b.IsInf() {
		return zeroFloat32(a.sign() != b.sign()), 0
	}
	return roundFloat64ToFloat32(a.toExactFloat64()/b.toExactFloat64(), mode)
}

// Sqrt computes the square root of a with the given rounding mode.
func Sqrt(a Float32, mode RoundingMode) (Float32, Exceptions) {
	if a.IsNaN() {
		var flags Exceptions
		if a.IsSignalingNaN() {
			flags = FlagInvalid
		}
		return FromBits(QuietNaN), flags
	}
	if a.IsZero() {
		return a, 0
	}
	if a.sign() {
		return FromBits(QuietNaN), FlagInvalid
	}
	if a.IsInf() {
		return a, 0
	}
	return roundFloat64ToFloat32(math.Sqrt(a.toExactFloat64()), mode)
}

// FusedMulAdd computes (a * b) + c with a single rounding step. The
// product a*b is always exact in float64 (at most 48 significant bits);
// the subsequent float64 addition is rounded to odd (its exact error is
// recovered with TwoSum), so rounding that sum to float32 gives the same
// result as rounding the exact a*b+c once.
func FusedMulAdd(a, b, c Float32, mode RoundingMode) (Float32, Exceptions) {
	if a.IsNaN() || b.IsNaN() || c.IsNaN() {
		var flags Exceptions
		if a.IsSignalingNaN() || b.IsSignalingNaN() || c.IsSignalingNaN() {
			flags = FlagInvalid
		}
		return FromBits(QuietNaN), flags
	}
	if (a.IsInf() && b.IsZero()) || (a.IsZero() && b.IsInf()) {
		return FromBits(QuietNaN), FlagInvalid
	}
	product := a.toExactFloat64() * b.toExactFloat64()
	if math.IsInf(product, 0) && c.IsInf() && math.Signbit(product) != c.sign() {
		return FromBits(QuietNaN), FlagInvalid
	}
	z := c.toExactFloat64()
	sum := product + z
	if !math.IsInf(sum, 0) {
		bb := sum - product
		if e := (product - (sum - bb)) + (z - bb); e != 0 && math.Float64bits(sum)&1 == 0 {
			sum = math.Nextafter(sum, math.Copysign(math.Inf(1), e))
		}
	}
	return roundFloat64ToFloat32(sum, mode)
}
