package bigint

import (
	"math/big"
	"strings"
	"testing"
)

// ref converts v to a math/big integer through its decimal form, giving
// an independent reference value for cross-checking.
func ref(t *testing.T, v Int) *big.Int {
	t.Helper()
	b, ok := new(big.Int).SetString(v.String(), 10)
	if !ok {
		t.Fatalf("reference conversion failed for %q", v.String())
	}
	return b
}

func TestParseAndString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"zero", "0", "0"},
		{"negative zero collapses", "-0", "0"},
		{"positive sign dropped", "+42", "42"},
		{"small negative", "-7", "-7"},
		{"word boundary", "18446744073709551615", "18446744073709551615"},
		{"word boundary plus one", "18446744073709551616", "18446744073709551616"},
		{"thirty digits", "123456789012345678901234567890", "123456789012345678901234567890"},
		{"thirty digits negative", "-123456789012345678901234567890", "-123456789012345678901234567890"},
		{"leading zeros", "000123", "123"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.in, err)
			}
			if got := v.String(); got != tc.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "+", "-", "12a3", " 12", "12 ", "0x10", "1.5", "--1"} {
		t.Run("input "+in, func(t *testing.T) {
			if _, err := Parse(in); err == nil {
				t.Errorf("Parse(%q) succeeded, want syntax error", in)
			}
		})
	}
}

func TestAddSub(t *testing.T) {
	tests := []struct {
		a, b, sum string
	}{
		{"0", "0", "0"},
		{"1", "-1", "0"},
		{"9223372036854775807", "1", "9223372036854775808"},
		{"-9223372036854775808", "-1", "-9223372036854775809"},
		{"18446744073709551615", "18446744073709551615", "36893488147419103230"},
		{"123456789012345678901234567890", "-123456789012345678901234567890", "0"},
		{"99999999999999999999", "1", "100000000000000000000"},
	}
	for _, tc := range tests {
		a, b := MustParse(tc.a), MustParse(tc.b)
		if got := a.Add(b).String(); got != tc.sum {
			t.Errorf("%s + %s = %s, want %s", tc.a, tc.b, got, tc.sum)
		}
		// Subtracting back must recover the first operand.
		if got := MustParse(tc.sum).Sub(b).String(); got != a.String() {
			t.Errorf("%s - %s = %s, want %s", tc.sum, tc.b, got, tc.a)
		}
	}
}

func TestMulConcreteScenario(t *testing.T) {
	a := MustParse("123456789012345678901234567890")
	got := a.Mul(FromInt64(-2))
	want := "-246913578024691357802469135780"
	if got.String() != want {
		t.Errorf("product = %s, want %s", got, want)
	}
}

func TestMulSigns(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"0", "123456789012345678901234567890", "0"},
		{"-3", "-5", "15"},
		{"-3", "5", "-15"},
		{"4294967296", "4294967296", "18446744073709551616"},
		{"18446744073709551615", "18446744073709551615", "340282366920938463426481119284349108225"},
	}
	for _, tc := range tests {
		a, b := MustParse(tc.a), MustParse(tc.b)
		if got := a.Mul(b).String(); got != tc.want {
			t.Errorf("%s * %s = %s, want %s", tc.a, tc.b, got, tc.want)
		}
		if got := b.Mul(a).String(); got != tc.want {
			t.Errorf("%s * %s = %s, want %s (commuted)", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestDivMod(t *testing.T) {
	tests := []struct {
		a, b, q, r string
	}{
		{"7", "2", "3", "1"},
		{"-7", "2", "-3", "-1"},
		{"7", "-2", "-3", "1"},
		{"-7", "-2", "3", "-1"},
		{"0", "5", "0", "0"},
		{"5", "123456789012345678901234567890", "0", "5"},
		{"123456789012345678901234567890", "987654321", "124999998873437499901", "574845669"},
		{"340282366920938463463374607431768211456", "18446744073709551616", "18446744073709551616", "0"},
		{"-9223372036854775808", "-1", "9223372036854775808", "0"},
	}
	for _, tc := range tests {
		a, b := MustParse(tc.a), MustParse(tc.b)
		q, r := a.DivMod(b)
		if q.String() != tc.q || r.String() != tc.r {
			t.Errorf("%s divmod %s = (%s, %s), want (%s, %s)", tc.a, tc.b, q, r, tc.q, tc.r)
		}
		// q*b + r must reconstruct a exactly.
		if got := q.Mul(b).Add(r); !got.Equal(a) {
			t.Errorf("q*b+r = %s, want %s", got, a)
		}
	}
}

func TestDivModAgainstReference(t *testing.T) {
	// Operand shapes chosen to hit the Algorithm D corner cases: the
	// add-back correction, qhat clamping, and full-word divisor digits.
	operands := []string{
		"1",
		"18446744073709551615",
		"18446744073709551616",
		"340282366920938463463374607431768211455",
		"340282366920938463463374607431768211457",
		"6277101735386680763835789423207666416102355444464034512895",
		"99999999999999999999999999999999999999999999",
		"123456789012345678901234567890123456789012345678901234567890",
	}
	for _, as := range operands {
		for _, bs := range operands {
			a, b := MustParse(as), MustParse(bs)
			for _, signs := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
				x, y := a, b
				if signs[0] {
					x = x.Neg()
				}
				if signs[1] {
					y = y.Neg()
				}
				q, r := x.DivMod(y)

				xb, yb := ref(t, x), ref(t, y)
				qb, rb := new(big.Int).QuoRem(xb, yb, new(big.Int))
				if q.String() != qb.String() || r.String() != rb.String() {
					t.Errorf("%s divmod %s = (%s, %s), want (%s, %s)", x, y, q, r, qb, rb)
				}
			}
		}
	}
}

func TestDivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("division by zero did not panic")
		}
	}()
	FromInt64(1).Div(FromInt64(0))
}

func TestShifts(t *testing.T) {
	tests := []struct {
		in    string
		k     uint
		left  string
		right string
	}{
		{"1", 1, "2", "0"},
		{"1", 64, "18446744073709551616", "0"},
		{"-1", 5, "-32", "-1"},
		{"-9223372036854775808", 1, "-18446744073709551616", "-4611686018427387904"},
		{"123456789012345678901234567890", 77, "18656262480467543164914817745080825512029480634286080", "816968"},
	}
	for _, tc := range tests {
		v := MustParse(tc.in)
		if got := v.Lsh(tc.k).String(); got != tc.left {
			t.Errorf("%s << %d = %s, want %s", tc.in, tc.k, got, tc.left)
		}
		if got := v.Rsh(tc.k).String(); got != tc.right {
			t.Errorf("%s >> %d = %s, want %s", tc.in, tc.k, got, tc.right)
		}
	}
}

func TestRightShiftIsArithmetic(t *testing.T) {
	// Shifting a negative value far enough must saturate at -1, not 0.
	v := MustParse("-123456789012345678901234567890")
	if got := v.Rsh(500).String(); got != "-1" {
		t.Errorf("-big >> 500 = %s, want -1", got)
	}
	if got := MustParse("123456789012345678901234567890").Rsh(500).String(); got != "0" {
		t.Errorf("+big >> 500 = %s, want 0", got)
	}
}

func TestBitwiseAgainstReference(t *testing.T) {
	values := []string{
		"0", "1", "-1", "255", "-256",
		"18446744073709551615", "-18446744073709551616",
		"123456789012345678901234567890", "-987654321098765432109876543210",
	}
	for _, as := range values {
		for _, bs := range values {
			a, b := MustParse(as), MustParse(bs)
			ab, bb := ref(t, a), ref(t, b)

			if got, want := a.And(b).String(), new(big.Int).And(ab, bb).String(); got != want {
				t.Errorf("%s & %s = %s, want %s", as, bs, got, want)
			}
			if got, want := a.Or(b).String(), new(big.Int).Or(ab, bb).String(); got != want {
				t.Errorf("%s | %s = %s, want %s", as, bs, got, want)
			}
			if got, want := a.Xor(b).String(), new(big.Int).Xor(ab, bb).String(); got != want {
				t.Errorf("%s ^ %s = %s, want %s", as, bs, got, want)
			}
		}
		a := MustParse(as)
		if got, want := a.Not().String(), new(big.Int).Not(ref(t, a)).String(); got != want {
			t.Errorf("^%s = %s, want %s", as, got, want)
		}
	}
}

func TestXorIsNotAnd(t *testing.T) {
	// x ^ x must be zero for any x; the AND body would return x.
	for _, s := range []string{"5", "-5", "123456789012345678901234567890"} {
		v := MustParse(s)
		if got := v.Xor(v); !got.IsZero() {
			t.Errorf("%s ^ %s = %s, want 0", s, s, got)
		}
	}
}

func TestCmp(t *testing.T) {
	ordered := []string{
		"-123456789012345678901234567890",
		"-18446744073709551616",
		"-2",
		"-1",
		"0",
		"1",
		"18446744073709551615",
		"18446744073709551616",
		"123456789012345678901234567890",
	}
	for i, as := range ordered {
		for j, bs := range ordered {
			a, b := MustParse(as), MustParse(bs)
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got := a.Cmp(b); got != want {
				t.Errorf("Cmp(%s, %s) = %d, want %d", as, bs, got, want)
			}
		}
	}
}

func TestCanonicalForm(t *testing.T) {
	// Re-normalizing any operation result must be a no-op.
	check := func(name string, v Int) {
		t.Helper()
		if got := norm(append([]uint64(nil), v.words...)); len(got) != len(v.words) {
			t.Errorf("%s: result carries %d words, canonical form has %d", name, len(v.words), len(got))
		}
	}
	a := MustParse("123456789012345678901234567890")
	b := MustParse("-987654321")
	check("add", a.Add(b))
	check("sub", a.Sub(a))
	check("mul", a.Mul(b))
	q, r := a.DivMod(b)
	check("quo", q)
	check("rem", r)
	check("lsh", a.Lsh(3))
	check("rsh", a.Rsh(200))
	check("neg", b.Neg())
	check("xor", a.Xor(b))
}

func TestSmallLiteralCacheSharing(t *testing.T) {
	for i := int64(0); i <= 10; i++ {
		a, b := FromInt64(i), FromInt64(i)
		if &a.words[0] != &b.words[0] {
			t.Errorf("literal %d not served from cache", i)
		}
	}
	if FromInt64(11).words[0] != 11 {
		t.Error("values beyond the cache must still construct correctly")
	}
}

func TestStringRoundTripLong(t *testing.T) {
	// A few hundred digits exercise the repeated divide-by-ten path.
	digits := strings.Repeat("9876543210", 30)
	v := MustParse(digits)
	want := strings.TrimLeft(digits, "0")
	if got := v.String(); got != want {
		t.Errorf("round trip mismatch: got %d chars, want %d", len(got), len(want))
	}
}
