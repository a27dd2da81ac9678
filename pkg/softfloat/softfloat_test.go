package softfloat

import "testing"

func TestClassifyIsOneHot(t *testing.T) {
	values := []uint32{
		PositiveZero, NegativeZero, PositiveInfinity, NegativeInfinity,
		QuietNaN, 0x7F800001, // signaling NaN
		0x3F800000, // 1.0, normal
		0x00000001, // smallest subnormal
	}
	for _, v := range values {
		f := FromBits(v)
		cls := f.Classify()
		if cls == 0 || cls&(cls-1) != 0 {
			t.Errorf("Classify(0x%X) = 0x%X, want exactly one bit set", v, cls)
		}
	}
}

func TestAddRoundsToNearestEven(t *testing.T) {
	one := FromBits(0x3F800000)
	result, _ := Add(one, one, RoundNearestEven)
	if got := result.ToBits(); got != 0x40000000 {
		t.Errorf("1.0+1.0 = 0x%X, want 0x40000000", got)
	}
}

func TestAddInfPlusNegInfIsInvalidNaN(t *testing.T) {
	pos := FromBits(PositiveInfinity)
	neg := FromBits(NegativeInfinity)
	result, flags := Add(pos, neg, RoundNearestEven)
	if !result.IsNaN() {
		t.Fatalf("inf + -inf should be NaN, got 0x%X", result.ToBits())
	}
	if flags&FlagInvalid == 0 {
		t.Error("inf + -inf should set Invalid")
	}
}

func TestDivByZeroIsInfWithFlag(t *testing.T) {
	one := FromBits(0x3F800000)
	zero := FromBits(PositiveZero)
	result, flags := Div(one, zero, RoundNearestEven)
	if !result.IsInf() {
		t.Fatalf("1.0/0.0 should be infinite, got 0x%X", result.ToBits())
	}
	if flags&FlagDivByZero == 0 {
		t.Error("1.0/0.0 should set DivByZero")
	}
}

func TestMinMaxPropagateNaN(t *testing.T) {
	nan := FromBits(QuietNaN)
	one := FromBits(0x3F800000)
	if got, _ := Min(nan, one); got.ToBits() != one.ToBits() {
		t.Errorf("Min(NaN, 1.0) = 0x%X, want 1.0", got.ToBits())
	}
	if got, _ := Max(one, nan); got.ToBits() != one.ToBits() {
		t.Errorf("Max(1.0, NaN) = 0x%X, want 1.0", got.ToBits())
	}
	bothNaN, _ := Min(nan, nan)
	if !bothNaN.IsNaN() {
		t.Errorf("Min(NaN, NaN) should be NaN, got 0x%X", bothNaN.ToBits())
	}
}

func TestMinMaxZeroSignedness(t *testing.T) {
	pos := FromBits(PositiveZero)
	neg := FromBits(NegativeZero)
	if got, _ := Min(pos, neg); got.ToBits() != NegativeZero {
		t.Errorf("Min(+0, -0) = 0x%X, want -0", got.ToBits())
	}
	if got, _ := Max(pos, neg); got.ToBits() != PositiveZero {
		t.Errorf("Max(+0, -0) = 0x%X, want +0", got.ToBits())
	}
}

func TestToUint32OfNaNSaturatesHigh(t *testing.T) {
	nan := FromBits(QuietNaN)
	got, flags := nan.ToUint32(RoundNearestEven)
	if got != 0xFFFFFFFF {
		t.Errorf("ToUint32(NaN) = 0x%X, want 0xFFFFFFFF", got)
	}
	if flags&FlagInvalid == 0 {
		t.Error("ToUint32(NaN) should set Invalid")
	}
}

func TestToInt32OfNaNSaturatesHigh(t *testing.T) {
	nan := FromBits(QuietNaN)
	got, flags := nan.ToInt32(RoundNearestEven)
	if got != 2147483647 {
		t.Errorf("ToInt32(NaN) = %d, want INT32_MAX", got)
	}
	if flags&FlagInvalid == 0 {
		t.Error("ToInt32(NaN) should set Invalid")
	}
}

func TestFromInt32RoundTrip(t *testing.T) {
	f := FromInt32(-100, RoundNearestEven)
	got, _ := f.ToInt32(RoundNearestEven)
	if got != -100 {
		t.Errorf("round trip of -100 = %d", got)
	}
}

func TestSubnormalDecodeRoundTrip(t *testing.T) {
	// Smallest positive subnormal, 2^-149.
	f := FromBits(0x00000001)
	if !f.IsSubnormal() {
		t.Fatal("0x1 should classify as subnormal")
	}
	doubled, _ := Add(f, f, RoundNearestEven)
	if got := doubled.ToBits(); got != 0x00000002 {
		t.Errorf("smallest subnormal doubled = 0x%X, want 0x2", got)
	}
}

func TestSqrtOfNegativeIsInvalidNaN(t *testing.T) {
	negOne := FromBits(0xBF800000)
	result, flags := Sqrt(negOne, RoundNearestEven)
	if !result.IsNaN() {
		t.Fatalf("sqrt(-1) should be NaN, got 0x%X", result.ToBits())
	}
	if flags&FlagInvalid == 0 {
		t.Error("sqrt(-1) should set Invalid")
	}
}

func TestFusedMulAddSingleRounding(t *testing.T) {
	one := FromBits(0x3F800000)
	two := FromBits(0x40000000)
	result, _ := FusedMulAdd(two, two, one, RoundNearestEven) // 2*2+1 = 5
	want := FromInt32(5, RoundNearestEven)
	if result.ToBits() != want.ToBits() {
		t.Errorf("FMA(2,2,1) = 0x%X, want 0x%X (5.0)", result.ToBits(), want.ToBits())
	}
}
