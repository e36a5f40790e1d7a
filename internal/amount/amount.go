package amount

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/feral-file/ff-tokenomics/internal/domain"
)

// MaxDecimals is the largest scale whose factor still fits in 256 bits
const MaxDecimals = 77

// TokenAmount is a non-negative quantity of base units.
// The zero value is a valid amount of 0. Values are immutable; every
// operation returns a new TokenAmount.
type TokenAmount struct {
	v uint256.Int
}

// Zero returns the zero amount
func Zero() TokenAmount {
	return TokenAmount{}
}

// FromUint64 returns an amount of n base units
func FromUint64(n uint64) TokenAmount {
	var a TokenAmount
	a.v.SetUint64(n)
	return a
}

// FromWhole returns n whole tokens scaled by 10^decimals
func FromWhole(n uint64, decimals uint8) (TokenAmount, error) {
	return FromUint64(n).Scale(decimals)
}

// FromBytes interprets b as a big-endian unsigned integer, as returned by an ABI uint256 word
func FromBytes(b []byte) (TokenAmount, error) {
	if len(b) > 32 {
		return TokenAmount{}, fmt.Errorf("%w: %d bytes exceed 256 bits", domain.ErrArithmetic, len(b))
	}

	var a TokenAmount
	a.v.SetBytes(b)
	return a, nil
}

// Parse parses a base-10 string of base units
func Parse(s string) (TokenAmount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TokenAmount{}, fmt.Errorf("%w: empty amount", domain.ErrValidation)
	}

	var a TokenAmount
	if err := a.v.SetFromDecimal(s); err != nil {
		return TokenAmount{}, fmt.Errorf("%w: invalid amount %q: %v", domain.ErrValidation, s, err)
	}
	return a, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) TokenAmount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseWhole parses a base-10 string of whole tokens and scales it by 10^decimals
func ParseWhole(s string, decimals uint8) (TokenAmount, error) {
	a, err := Parse(s)
	if err != nil {
		return TokenAmount{}, err
	}
	return a.Scale(decimals)
}

// Scale multiplies the amount by 10^decimals
func (a TokenAmount) Scale(decimals uint8) (TokenAmount, error) {
	f, err := factor(decimals)
	if err != nil {
		return TokenAmount{}, err
	}

	var r TokenAmount
	if _, overflow := r.v.MulOverflow(&a.v, f); overflow {
		return TokenAmount{}, fmt.Errorf("%w: %s scaled by 10^%d overflows", domain.ErrArithmetic, a, decimals)
	}
	return r, nil
}

// WholeUnits returns the amount divided by 10^decimals, rounded down
func (a TokenAmount) WholeUnits(decimals uint8) TokenAmount {
	f, err := factor(decimals)
	if err != nil {
		return TokenAmount{}
	}

	var r TokenAmount
	r.v.Div(&a.v, f)
	return r
}

// Add returns a+b
func (a TokenAmount) Add(b TokenAmount) (TokenAmount, error) {
	var r TokenAmount
	if _, overflow := r.v.AddOverflow(&a.v, &b.v); overflow {
		return TokenAmount{}, fmt.Errorf("%w: %s + %s overflows", domain.ErrArithmetic, a, b)
	}
	return r, nil
}

// Sub returns a-b. It fails when the result would be negative.
func (a TokenAmount) Sub(b TokenAmount) (TokenAmount, error) {
	var r TokenAmount
	if _, underflow := r.v.SubOverflow(&a.v, &b.v); underflow {
		return TokenAmount{}, fmt.Errorf("%w: %s - %s is negative", domain.ErrArithmetic, a, b)
	}
	return r, nil
}

// SaturatingSub returns a-b, or zero when b > a
func (a TokenAmount) SaturatingSub(b TokenAmount) TokenAmount {
	if a.v.Lt(&b.v) {
		return TokenAmount{}
	}
	var r TokenAmount
	r.v.Sub(&a.v, &b.v)
	return r
}

// Mul returns a*n
func (a TokenAmount) Mul(n uint64) (TokenAmount, error) {
	var r TokenAmount
	if _, overflow := r.v.MulOverflow(&a.v, uint256.NewInt(n)); overflow {
		return TokenAmount{}, fmt.Errorf("%w: %s * %d overflows", domain.ErrArithmetic, a, n)
	}
	return r, nil
}

// MulDiv returns floor(a*num/den) with a 512-bit intermediate product
func (a TokenAmount) MulDiv(num, den uint64) (TokenAmount, error) {
	if den == 0 {
		return TokenAmount{}, fmt.Errorf("%w: division by zero", domain.ErrArithmetic)
	}

	var r TokenAmount
	if _, overflow := r.v.MulDivOverflow(&a.v, uint256.NewInt(num), uint256.NewInt(den)); overflow {
		return TokenAmount{}, fmt.Errorf("%w: %s * %d / %d overflows", domain.ErrArithmetic, a, num, den)
	}
	return r, nil
}

// MulPercent returns floor(a*bps/10000)
func (a TokenAmount) MulPercent(bps uint64) (TokenAmount, error) {
	return a.MulDiv(bps, domain.BasisPoints)
}

// DivFloor returns floor(a/n). It fails when n is zero.
func (a TokenAmount) DivFloor(n uint64) (TokenAmount, error) {
	if n == 0 {
		return TokenAmount{}, fmt.Errorf("%w: division of %s by zero", domain.ErrArithmetic, a)
	}

	var r TokenAmount
	r.v.Div(&a.v, uint256.NewInt(n))
	return r, nil
}

// Mod returns a mod n. It fails when n is zero.
func (a TokenAmount) Mod(n uint64) (TokenAmount, error) {
	if n == 0 {
		return TokenAmount{}, fmt.Errorf("%w: modulo of %s by zero", domain.ErrArithmetic, a)
	}

	var r TokenAmount
	r.v.Mod(&a.v, uint256.NewInt(n))
	return r, nil
}

// Sqrt returns the integer square root of a, rounded down
func (a TokenAmount) Sqrt() TokenAmount {
	var r TokenAmount
	r.v.Sqrt(&a.v)
	return r
}

// BpsOf returns floor(a*10000/total), the share of total held by a in basis points
func (a TokenAmount) BpsOf(total TokenAmount) (uint64, error) {
	if total.IsZero() {
		return 0, fmt.Errorf("%w: percentage of zero total", domain.ErrArithmetic)
	}

	var r uint256.Int
	if _, overflow := r.MulDivOverflow(&a.v, uint256.NewInt(domain.BasisPoints), &total.v); overflow || !r.IsUint64() {
		return 0, fmt.Errorf("%w: %s is too large relative to %s", domain.ErrArithmetic, a, total)
	}
	return r.Uint64(), nil
}

// PercentOf returns floor(a*100/total) in whole percent
func (a TokenAmount) PercentOf(total TokenAmount) (uint64, error) {
	bps, err := a.BpsOf(total)
	if err != nil {
		return 0, err
	}
	return bps / 100, nil
}

// Cmp compares a and b and returns -1, 0 or +1
func (a TokenAmount) Cmp(b TokenAmount) int {
	return a.v.Cmp(&b.v)
}

// Equal reports whether a == b
func (a TokenAmount) Equal(b TokenAmount) bool {
	return a.v.Eq(&b.v)
}

// LessThan reports whether a < b
func (a TokenAmount) LessThan(b TokenAmount) bool {
	return a.v.Lt(&b.v)
}

// GreaterThan reports whether a > b
func (a TokenAmount) GreaterThan(b TokenAmount) bool {
	return a.v.Gt(&b.v)
}

// IsZero reports whether a == 0
func (a TokenAmount) IsZero() bool {
	return a.v.IsZero()
}

// Min returns the smaller of a and b
func Min(a, b TokenAmount) TokenAmount {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Sum adds all amounts
func Sum(amounts ...TokenAmount) (TokenAmount, error) {
	var total TokenAmount
	for _, a := range amounts {
		var err error
		total, err = total.Add(a)
		if err != nil {
			return TokenAmount{}, err
		}
	}
	return total, nil
}

// String returns the amount in base units as a base-10 string
func (a TokenAmount) String() string {
	return a.v.Dec()
}

// Format renders the amount in whole tokens with up to decimals fractional digits,
// trimming trailing zeros (e.g. "1250.5")
func (a TokenAmount) Format(decimals uint8) string {
	s := a.v.Dec()
	if decimals == 0 {
		return s
	}

	d := int(decimals)
	if len(s) <= d {
		s = strings.Repeat("0", d-len(s)+1) + s
	}

	whole, frac := s[:len(s)-d], strings.TrimRight(s[len(s)-d:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// MarshalJSON encodes the amount as a quoted base-10 string
func (a TokenAmount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.v.Dec() + `"`), nil
}

// UnmarshalJSON accepts a quoted or bare base-10 integer
func (a *TokenAmount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		*a = TokenAmount{}
		return nil
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements driver.Valuer for numeric(78,0) columns
func (a TokenAmount) Value() (driver.Value, error) {
	return a.v.Dec(), nil
}

// Scan implements sql.Scanner for numeric(78,0) columns
func (a *TokenAmount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = TokenAmount{}
		return nil
	case string:
		return a.scanString(v)
	case []byte:
		return a.scanString(string(v))
	case int64:
		if v < 0 {
			return fmt.Errorf("%w: negative amount %d", domain.ErrArithmetic, v)
		}
		*a = FromUint64(uint64(v))
		return nil
	default:
		return fmt.Errorf("unsupported amount type %T", src)
	}
}

func (a *TokenAmount) scanString(s string) error {
	// numeric columns may come back with a fractional part of zeros
	if i := strings.IndexByte(s, '.'); i >= 0 {
		if strings.Trim(s[i+1:], "0") != "" {
			return fmt.Errorf("%w: fractional amount %q", domain.ErrValidation, s)
		}
		s = s[:i]
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func factor(decimals uint8) (*uint256.Int, error) {
	if decimals > MaxDecimals {
		return nil, fmt.Errorf("%w: decimals %d exceeds %d", domain.ErrValidation, decimals, MaxDecimals)
	}
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals))), nil
}
