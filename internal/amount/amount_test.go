package amount

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tokenomics/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{name: "zero", input: "0", expected: "0"},
		{name: "large", input: "1000000000000000000000000000", expected: "1000000000000000000000000000"},
		{name: "whitespace", input: " 42 ", expected: "42"},
		{name: "empty", input: "", expectErr: true},
		{name: "negative", input: "-1", expectErr: true},
		{name: "fraction", input: "1.5", expectErr: true},
		{name: "garbage", input: "abc", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.input)
			if tt.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a.String())
		})
	}
}

func TestAddSub(t *testing.T) {
	a := FromUint64(100)
	b := FromUint64(30)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "130", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "70", diff.String())

	_, err = b.Sub(a)
	assert.ErrorIs(t, err, domain.ErrArithmetic)

	assert.True(t, b.SaturatingSub(a).IsZero())
}

func TestAdd_Overflow(t *testing.T) {
	max := MustParse("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	_, err := max.Add(FromUint64(1))
	assert.ErrorIs(t, err, domain.ErrArithmetic)
}

func TestMulPercent(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		bps      uint64
		expected string
	}{
		{name: "twenty percent", amount: "100000", bps: 2000, expected: "20000"},
		{name: "full", amount: "100000", bps: 10000, expected: "100000"},
		{name: "zero", amount: "100000", bps: 0, expected: "0"},
		{name: "floors", amount: "999", bps: 3333, expected: "332"},
		{name: "wide intermediate", amount: "115792089237316195423570985008687907853269984665640564039457584007913129639935", bps: 5000, expected: "57896044618658097711785492504343953926634992332820282019728792003956564819967"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := MustParse(tt.amount).MulPercent(tt.bps)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r.String())
		})
	}
}

func TestDivFloor(t *testing.T) {
	r, err := FromUint64(80000).DivFloor(10)
	require.NoError(t, err)
	assert.Equal(t, "8000", r.String())

	r, err = FromUint64(10).DivFloor(3)
	require.NoError(t, err)
	assert.Equal(t, "3", r.String())

	_, err = FromUint64(10).DivFloor(0)
	assert.ErrorIs(t, err, domain.ErrArithmetic)
}

func TestSqrt(t *testing.T) {
	assert.Equal(t, "0", Zero().Sqrt().String())
	assert.Equal(t, "3", FromUint64(15).Sqrt().String())
	assert.Equal(t, "4", FromUint64(16).Sqrt().String())
	assert.Equal(t, "1000000000", MustParse("1000000000000000000").Sqrt().String())
}

func TestScaleAndWholeUnits(t *testing.T) {
	a, err := FromWhole(1_000_000, 18)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000000", a.String())
	assert.Equal(t, "1000000", a.WholeUnits(18).String())

	_, err = FromWhole(1, MaxDecimals+1)
	assert.ErrorIs(t, err, domain.ErrValidation)

	w, err := ParseWhole("250", 6)
	require.NoError(t, err)
	assert.Equal(t, "250000000", w.String())
}

func TestBpsOf(t *testing.T) {
	bps, err := FromUint64(360_000).BpsOf(FromUint64(10_000_000))
	require.NoError(t, err)
	assert.Equal(t, uint64(360), bps)

	pct, err := FromUint64(360_000).PercentOf(FromUint64(10_000_000))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), pct)

	_, err = FromUint64(1).BpsOf(Zero())
	assert.ErrorIs(t, err, domain.ErrArithmetic)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount   string
		decimals uint8
		expected string
	}{
		{amount: "1500000000000000000", decimals: 18, expected: "1.5"},
		{amount: "1000000000000000000", decimals: 18, expected: "1"},
		{amount: "5", decimals: 3, expected: "0.005"},
		{amount: "0", decimals: 18, expected: "0"},
		{amount: "1234", decimals: 0, expected: "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, MustParse(tt.amount).Format(tt.decimals))
		})
	}
}

func TestJSON(t *testing.T) {
	type payload struct {
		Amount TokenAmount `json:"amount"`
	}

	data, err := json.Marshal(payload{Amount: MustParse("123456789012345678901234567890")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"123456789012345678901234567890"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount":42}`), &p))
	assert.Equal(t, "42", p.Amount.String())

	err = json.Unmarshal([]byte(`{"amount":"-5"}`), &p)
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	var a TokenAmount

	require.NoError(t, a.Scan("1000"))
	assert.Equal(t, "1000", a.String())

	require.NoError(t, a.Scan([]byte("77.000")))
	assert.Equal(t, "77", a.String())

	require.NoError(t, a.Scan(int64(9)))
	assert.Equal(t, "9", a.String())

	assert.Error(t, a.Scan("1.5"))
	assert.Error(t, a.Scan(int64(-1)))
	assert.Error(t, a.Scan(3.14))

	v, err := FromUint64(55).Value()
	require.NoError(t, err)
	assert.Equal(t, "55", v)
}

func TestSumAndMin(t *testing.T) {
	s, err := Sum(FromUint64(1), FromUint64(2), FromUint64(3))
	require.NoError(t, err)
	assert.Equal(t, "6", s.String())

	assert.Equal(t, "2", Min(FromUint64(5), FromUint64(2)).String())
	assert.True(t, FromUint64(2).LessThan(FromUint64(3)))
	assert.True(t, FromUint64(3).GreaterThan(FromUint64(2)))
	assert.Equal(t, 0, FromUint64(3).Cmp(FromUint64(3)))
}

func TestFromBytes(t *testing.T) {
	word := make([]byte, 32)
	word[30] = 0x01
	word[31] = 0x00

	a, err := FromBytes(word)
	require.NoError(t, err)
	assert.Equal(t, "256", a.String())

	a, err = FromBytes(nil)
	require.NoError(t, err)
	assert.True(t, a.IsZero())

	_, err = FromBytes(make([]byte, 33))
	assert.ErrorIs(t, err, domain.ErrArithmetic)
}
