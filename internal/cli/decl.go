package cli

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/avdva/hdlnum"
	"github.com/avdva/hdlnum/fixbv"
	su "github.com/avdva/hdlnum/internal/strutil"
)

// Declaration kinds.
const (
	KindInt = "int"
	KindMod = "mod"
	KindFix = "fix"
)

// Decl declares a value: its kind, literal, and bounds.
// Integer literals may be decimal, 0b, 0o or 0x. Fixed-point literals are decimal numbers,
// or scaled integers like "6 * 2**-3", in which case Shift is ignored.
// Fixed-point bounds are logical values.
type Decl struct {
	Name  string `yaml:"name" json:"name"`
	Kind  string `yaml:"kind" json:"kind"`
	Value string `yaml:"value" json:"value"`
	Min   string `yaml:"min,omitempty" json:"min,omitempty"`
	Max   string `yaml:"max,omitempty" json:"max,omitempty"`
	Shift int    `yaml:"shift,omitempty" json:"shift,omitempty"`
	Lossy bool   `yaml:"lossy,omitempty" json:"lossy,omitempty"`
	Real  bool   `yaml:"real,omitempty" json:"real,omitempty"`
}

// DeclFile is the root of a declarations file.
type DeclFile struct {
	Values []Decl `yaml:"values"`
}

// ParseError is returned for malformed literals and declaration files.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad input %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadDecls reads a declarations file.
// Unknown fields are rejected.
func LoadDecls(path string) (*DeclFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declarations: %w", err)
	}

	var file DeclFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, &ParseError{Input: path, Err: err}
	}

	for i, d := range file.Values {
		if d.Name == "" {
			return nil, &ParseError{Input: path, Err: fmt.Errorf("declaration #%d has no name", i+1)}
		}
		switch d.Kind {
		case KindInt, KindMod, KindFix:
		default:
			return nil, &ParseError{Input: path, Err: fmt.Errorf("declaration %q has unknown kind %q", d.Name, d.Kind)}
		}
	}
	return &file, nil
}

func parseInt(s string) (*big.Int, error) {
	lit, err := su.ParseInt(s)
	if err != nil {
		return nil, &ParseError{Input: s, Err: err}
	}
	return lit.Value, nil
}

func parseRat(s string) (*big.Rat, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, &ParseError{Input: s, Err: err}
	}
	return d.Rat(), nil
}

func (d Decl) bounded() (bool, error) {
	if (d.Min == "") != (d.Max == "") {
		return false, fmt.Errorf("%w: either both bounds or none must be set", hdlnum.ErrDomain)
	}
	return d.Min != "", nil
}

// BuildInt constructs an int or mod declaration.
func (d Decl) BuildInt() (*hdlnum.IntBV, error) {
	bounded, err := d.bounded()
	if err != nil {
		return nil, err
	}
	if !bounded {
		if d.Kind == KindMod {
			return nil, fmt.Errorf("%w: wraparound requires both bounds", hdlnum.ErrDomain)
		}
		x, err := hdlnum.ParseIntBV(d.Value)
		if err != nil {
			return nil, &ParseError{Input: d.Value, Err: err}
		}
		return x, nil
	}
	var vals [3]*big.Int
	for i, s := range []string{d.Value, d.Min, d.Max} {
		if vals[i], err = parseInt(s); err != nil {
			return nil, err
		}
	}
	if d.Kind == KindMod {
		m, err := hdlnum.NewModBV(vals[0], vals[1], vals[2])
		if err != nil {
			return nil, err
		}
		return &m.IntBV, nil
	}
	return hdlnum.NewBounded(vals[0], vals[1], vals[2])
}

// BuildFix constructs a fix declaration.
func (d Decl) BuildFix() (*fixbv.FixBV, error) {
	var opts []fixbv.Option
	if d.Lossy {
		opts = append(opts, fixbv.WithLossy())
	}
	if d.Real {
		opts = append(opts, fixbv.WithRealFormat())
	}
	bounded, err := d.bounded()
	if err != nil {
		return nil, err
	}
	if bounded {
		min, err := parseRat(d.Min)
		if err != nil {
			return nil, err
		}
		max, err := parseRat(d.Max)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fixbv.WithRatRange(min, max))
	}
	if si, shift, err := su.ParseScaled(d.Value); err == nil {
		return fixbv.New(si, shift, opts...)
	}
	r, err := parseRat(d.Value)
	if err != nil {
		return nil, err
	}
	return fixbv.FromRat(r, d.Shift, opts...)
}

// Describe constructs the declared value and returns its debug representation.
func (d Decl) Describe() (string, error) {
	switch d.Kind {
	case KindInt, KindMod:
		x, err := d.BuildInt()
		if err != nil {
			return "", err
		}
		return x.GoString(), nil
	case KindFix:
		x, err := d.BuildFix()
		if err != nil {
			return "", err
		}
		return x.GoString(), nil
	default:
		return "", errors.New("unknown kind " + d.Kind)
	}
}
