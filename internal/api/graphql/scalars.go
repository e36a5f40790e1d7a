package graphql

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/feral-file/ff-tokenomics/internal/amount"
)

// TokenAmount is a base-unit token amount, serialized as a decimal string
type TokenAmount amount.TokenAmount

// MarshalGQL implements graphql.Marshaler for TokenAmount
func (a TokenAmount) MarshalGQL(w io.Writer) {
	_, _ = io.WriteString(w, strconv.Quote(amount.TokenAmount(a).String()))
}

// UnmarshalGQL implements graphql.Unmarshaler for TokenAmount
func (a *TokenAmount) UnmarshalGQL(v interface{}) error {
	var s string
	switch v := v.(type) {
	case string:
		s = v
	case json.Number:
		s = v.String()
	case int64:
		if v < 0 {
			return fmt.Errorf("token amount cannot be negative: %d", v)
		}
		s = strconv.FormatInt(v, 10)
	default:
		return fmt.Errorf("cannot unmarshal %T to TokenAmount", v)
	}

	parsed, err := amount.Parse(s)
	if err != nil {
		return fmt.Errorf("cannot parse %q as token amount: %w", s, err)
	}
	*a = TokenAmount(parsed)
	return nil
}

// Uint64 scalar type for unsigned 64-bit integers
type Uint64 uint64

// ToNativeUint64 converts a Uint64 to a uint64, returning nil if the Uint64 is nil
func ToNativeUint64(u *Uint64) *uint64 {
	if u == nil {
		return nil
	}

	nu := uint64(*u)
	return &nu
}

// MarshalGQL implements graphql.Marshaler for Uint64
func (u Uint64) MarshalGQL(w io.Writer) {
	// Write as string to avoid JavaScript number precision issues
	_, _ = io.WriteString(w, strconv.Quote(strconv.FormatUint(uint64(u), 10)))
}

// UnmarshalGQL implements graphql.Unmarshaler for Uint64
func (u *Uint64) UnmarshalGQL(v interface{}) error {
	switch v := v.(type) {
	case string:
		val, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as uint64: %w", v, err)
		}
		*u = Uint64(val)
		return nil
	case json.Number:
		val, err := strconv.ParseUint(v.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as uint64: %w", v, err)
		}
		*u = Uint64(val)
		return nil
	case int:
		if v < 0 {
			return fmt.Errorf("uint64 cannot be negative: %d", v)
		}
		*u = Uint64(v)
		return nil
	case int64:
		if v < 0 {
			return fmt.Errorf("uint64 cannot be negative: %d", v)
		}
		*u = Uint64(v)
		return nil
	case uint64:
		*u = Uint64(v)
		return nil
	default:
		return fmt.Errorf("cannot unmarshal %T to Uint64", v)
	}
}

// Time is an RFC 3339 timestamp
type Time time.Time

// MarshalGQL implements graphql.Marshaler for Time
func (t Time) MarshalGQL(w io.Writer) {
	_, _ = io.WriteString(w, strconv.Quote(time.Time(t).UTC().Format(time.RFC3339Nano)))
}

// UnmarshalGQL implements graphql.Unmarshaler for Time
func (t *Time) UnmarshalGQL(v interface{}) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("cannot unmarshal %T to Time", v)
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("cannot parse %q as RFC 3339 time: %w", s, err)
	}
	*t = Time(parsed)
	return nil
}

// marshalScalar writes a leaf value of the named scalar type. Values arrive as decoded JSON.
func marshalScalar(w io.Writer, name string, v interface{}) error {
	switch name {
	case "TokenAmount":
		var a TokenAmount
		if err := a.UnmarshalGQL(v); err != nil {
			return err
		}
		a.MarshalGQL(w)
	case "Uint64":
		var u Uint64
		if err := u.UnmarshalGQL(v); err != nil {
			return err
		}
		u.MarshalGQL(w)
	case "Time":
		var t Time
		if err := t.UnmarshalGQL(v); err != nil {
			return err
		}
		t.MarshalGQL(w)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", name, err)
		}
		_, _ = w.Write(b)
	}
	return nil
}
