package softfloat

import "math"

// FromInt32 converts a signed 32-bit integer to float32 under the given
// rounding mode. The conversion is exact whenever v fits in 24 significant
// bits; otherwise it rounds.
func FromInt32(v int32, mode RoundingMode) Float32 {
	f, _ := roundFloat64ToFloat32(float64(v), mode)
	return f
}

// FromUint32 converts an unsigned 32-bit integer to float32 under the
// given rounding mode.
func FromUint32(v uint32, mode RoundingMode) Float32 {
	f, _ := roundFloat64ToFloat32(float64(v), mode)
	return f
}

// ToInt32 converts f to a signed 32-bit integer under the given rounding
// mode, saturating on overflow: +Inf and too-large values saturate to
// INT32_MAX, -Inf and too-negative values saturate to INT32_MIN, and NaN
// maps to INT32_MAX.
func (f Float32) ToInt32(mode RoundingMode) (int32, Exceptions) {
	if f.IsNaN() {
		return math.MaxInt32, FlagInvalid
	}
	if f.IsInf() {
		if f.sign() {
			return math.MinInt32, FlagInvalid
		}
		return math.MaxInt32, FlagInvalid
	}
	d := f.decode()
	if d.sig == 0 {
		return 0, 0
	}
	mag, inexact, overflow := roundToIntegerMagnitude(d, mode)
	if d.sign {
		if overflow || mag > uint64(math.MaxInt32)+1 {
			return math.MinInt32, FlagInvalid
		}
		v := -int64(mag)
		if inexact {
			return int32(v), FlagInexact
		}
		return int32(v), 0
	}
	if overflow || mag > uint64(math.MaxInt32) {
		return math.MaxInt32, FlagInvalid
	}
	if inexact {
		return int32(mag), FlagInexact
	}
	return int32(mag), 0
}

// ToUint32 converts f to an unsigned 32-bit integer under the given
// rounding mode. Negative values saturate to zero; NaN and values beyond
// range saturate to UINT32_MAX.
func (f Float32) ToUint32(mode RoundingMode) (uint32, Exceptions) {
	if f.IsNaN() {
		return math.MaxUint32, FlagInvalid
	}
	if f.IsInf() {
		if f.sign() {
			return 0, FlagInvalid
		}
		return math.MaxUint32, FlagInvalid
	}
	d := f.decode()
	if d.sig == 0 {
		return 0, 0
	}
	if d.sign {
		return 0, FlagInvalid
	}
	mag, inexact, overflow := roundToIntegerMagnitude(d, mode)
	if overflow || mag > math.MaxUint32 {
		return math.MaxUint32, FlagInvalid
	}
	if inexact {
		return uint32(mag), FlagInexact
	}
	return uint32(mag), 0
}

// roundToIntegerMagnitude rounds |value| to the nearest integer under
// mode, returning the magnitude, whether the result was inexact, and
// whether the magnitude overflowed the 64 bits used to hold it (which
// only happens for exponents far beyond anything a 32-bit integer target
// could use, so callers always saturate in that case).
func roundToIntegerMagnitude(d decoded, mode RoundingMode) (mag uint64, inexact bool, overflow bool) {
	shift := 52 - d.exp
	if shift <= 0 {
		if -shift >= 12 { // sig has at most 53 bits; this always overflows a 32-bit target
			return 0, false, true
		}
		return d.sig << uint(-shift), false, false
	}
	if shift >= 64 {
		roundUp := roundUpMagnitude(mode, d.sign, false, true, false)
		if roundUp {
			return 1, true, false
		}
		return 0, true, false
	}
	intPart := d.sig >> uint(shift)
	var roundBit, sticky bool
	roundBit = (d.sig>>(uint(shift)-1))&1 != 0
	if shift > 1 {
		stickyMask := (uint64(1) << (uint(shift) - 1)) - 1
		sticky = d.sig&stickyMask != 0
	}
	inexact = roundBit || sticky
	if roundUpMagnitude(mode, d.sign, roundBit, sticky, intPart&1 != 0) {
		intPart++
	}
	return intPart, inexact, false
}
