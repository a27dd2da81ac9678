package softfloat

// Eq, Lt, Le implement the quiet, ordered comparisons FEQ.S/FLT.S/FLE.S:
// any NaN operand makes the comparison false. -0 and +0 compare equal.
func Eq(a, b Float32) bool {
	if a.IsNaN() || b.IsNaN() {
		return false
	}
	if a.IsZero() && b.IsZero() {
		return true
	}
	return a.toExactFloat64() == b.toExactFloat64()
}

func Lt(a, b Float32) bool {
	if a.IsNaN() || b.IsNaN() {
		return false
	}
	if a.IsZero() && b.IsZero() {
		return false
	}
	return a.toExactFloat64() < b.toExactFloat64()
}

func Le(a, b Float32) bool {
	return Lt(a, b) || Eq(a, b)
}

// Min and Max implement FMIN.S/FMAX.S's quiet-NaN propagation rules: if
// exactly one operand is NaN, the result is the other operand; if both
// are NaN, the result is the canonical quiet NaN. A signaling NaN operand
// always sets Invalid.
func Min(a, b Float32) (Float32, Exceptions) {
	return minMax(a, b, true)
}

func Max(a, b Float32) (Float32, Exceptions) {
	return minMax(a, b, false)
}

func minMax(a, b Float32, wantMin bool) (Float32, Exceptions) {
	var flags Exceptions
	if a.IsSignalingNaN() || b.IsSignalingNaN() {
		flags = FlagInvalid
	}
	switch {
	case a.IsNaN() && b.IsNaN():
		return FromBits(QuietNaN), flags
	case a.IsNaN():
		return b, flags
	case b.IsNaN():
		return a, flags
	}
	// -0 vs +0: min is -0 if either operand is -0, max is +0 unless both are -0.
	if a.IsZero() && b.IsZero() {
		if wantMin {
			return zeroFloat32(a.sign() || b.sign()), flags
		}
		return zeroFloat32(a.sign() && b.sign()), flags
	}
	less := a.toExactFloat64() < b.toExactFloat64()
	if less == wantMin {
		return a, flags
	}
	return b, flags
}
