// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixbv

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/avdva/hdlnum"
	mu "github.com/avdva/hdlnum/internal/mathutil"
	su "github.com/avdva/hdlnum/internal/strutil"
)

var (
	// JSONMode defines the way all values are marshaled into json, see JSONMode* constants.
	// This variable is not thread-safe, so this should be changed on program start.
	JSONMode = JSONModeScaled
)

const (
	// JSONModeScaled marshals values as objects, like `{"si":6,"shift":-3,"min":-64,"max":64}`.
	JSONModeScaled = iota
	// JSONModeString marshals values as strings produced by String, like `"6 * 2**-3"`.
	JSONModeString
	// JSONModeFloat marshals values as exact decimal numbers, like `0.75`.
	JSONModeFloat
)

type jsonFixBV struct {
	SI    *big.Int `json:"si"`
	Shift int      `json:"shift"`
	Min   *big.Int `json:"min,omitempty"`
	Max   *big.Int `json:"max,omitempty"`
	Lossy bool     `json:"lossy,omitempty"`
	Real  bool     `json:"real,omitempty"`
}

// MarshalJSON marshals value according to current JSONMode.
// See JSONMode and JSONMode* constants.
func (x *FixBV) MarshalJSON() ([]byte, error) {
	return x.toJSON(JSONMode)
}

func (x *FixBV) toJSON(mode int) ([]byte, error) {
	switch mode {
	case JSONModeString:
		return []byte(strconv.Quote(x.String())), nil
	case JSONModeFloat:
		return []byte(x.Decimal().String()), nil
	default:
		si := x.stored()
		return json.Marshal(jsonFixBV{
			SI:    si.Int(),
			Shift: x.shift,
			Min:   si.Min(),
			Max:   si.Max(),
			Lossy: x.lossy,
			Real:  x.real,
		})
	}
}

// UnmarshalJSON unmarshals an object, a string, or a number into a value.
// Strings may be in the scaled form, like "6 * 2**-3", or decimal.
// Decimal strings and numbers must be exact binary fractions, their shift is
// minus the number of fractional bits.
func (x *FixBV) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty json")
	}
	if string(data) == "null" {
		return nil
	}
	var (
		parsed *FixBV
		err    error
	)
	switch data[0] {
	case '{':
		parsed, err = fromJSONObject(data)
	case '"':
		var s string
		if err = json.Unmarshal(data, &s); err != nil {
			return err
		}
		if si, shift, perr := su.ParseScaled(s); perr == nil {
			parsed, err = New(si, shift)
		} else {
			parsed, err = fromDecimalString(s)
		}
	default:
		parsed, err = fromDecimalString(string(data))
	}
	if err != nil {
		return err
	}
	*x = *parsed
	return nil
}

func fromJSONObject(data []byte) (*FixBV, error) {
	var obj jsonFixBV
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj.SI == nil {
		obj.SI = new(big.Int)
	}
	var opts []Option
	if obj.Min != nil || obj.Max != nil {
		opts = append(opts, WithBounds(obj.Min, obj.Max))
	}
	if obj.Lossy {
		opts = append(opts, WithLossy())
	}
	if obj.Real {
		opts = append(opts, WithRealFormat())
	}
	return New(obj.SI, obj.Shift, opts...)
}

func fromDecimalString(s string) (*FixBV, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	r := d.Rat()
	k, ok := mu.Log2Exact(r.Denom())
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a binary fraction", hdlnum.ErrPrecision, s)
	}
	return New(r.Num(), -k)
}
