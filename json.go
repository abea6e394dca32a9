// Copyright 2020 Aleksandr Demakin. All rights reserved.

package hdlnum

import (
	"encoding/json"
	"fmt"
	"math/big"
)

type jsonIntBV struct {
	V    *big.Int `json:"v"`
	Min  *big.Int `json:"min,omitempty"`
	Max  *big.Int `json:"max,omitempty"`
	Wrap bool     `json:"wrap,omitempty"`
}

// MarshalJSON marshals the value and its bounds, like `{"v":6,"min":-13,"max":7}`.
// It has a value receiver, so values held by value, including ModBV, are marshaled too.
func (x IntBV) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonIntBV{V: x.value(), Min: x.min, Max: x.max, Wrap: x.wrap})
}

// UnmarshalJSON unmarshals a value, checking it against the bounds.
// A plain json number is accepted as an unbounded value.
func (x *IntBV) UnmarshalJSON(data []byte) error {
	d, err := decodeJSON(data)
	if err != nil {
		return err
	}
	var parsed *IntBV
	switch {
	case d.Min == nil && d.Max == nil:
		if d.Wrap {
			return fmt.Errorf("%w: wraparound requires both bounds", ErrDomain)
		}
		parsed = New(d.V)
	default:
		if parsed, err = newBounded(d.V, d.Min, d.Max, d.Wrap); err != nil {
			return err
		}
	}
	*x = *parsed
	return nil
}

// UnmarshalJSON unmarshals a wrapping value. Both bounds are required.
func (x *ModBV) UnmarshalJSON(data []byte) error {
	d, err := decodeJSON(data)
	if err != nil {
		return err
	}
	parsed, err := NewModBV(d.V, d.Min, d.Max)
	if err != nil {
		return err
	}
	*x = *parsed
	return nil
}

func decodeJSON(data []byte) (d jsonIntBV, err error) {
	if len(data) == 0 {
		return d, fmt.Errorf("empty json")
	}
	if data[0] == '{' {
		if err := json.Unmarshal(data, &d); err != nil {
			return d, err
		}
	} else {
		d.V = new(big.Int)
		if err := d.V.UnmarshalJSON(data); err != nil {
			return d, err
		}
	}
	if d.V == nil {
		d.V = new(big.Int)
	}
	if (d.Min == nil) != (d.Max == nil) {
		return d, fmt.Errorf("%w: either both bounds or none must be set", ErrDomain)
	}
	return d, nil
}
