// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixbv

import (
	"fmt"
	"math"
	"math/big"

	"github.com/avdva/hdlnum"
)

// Option configures FixBV construction.
type Option func(*config) error

type config struct {
	min, max         *big.Int // stored domain.
	minReal, maxReal *big.Rat // logical domain.
	lossy            bool
	real             bool
}

func makeConfig(opts []Option) (config, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	if cfg.real && !cfg.lossy {
		return config{}, fmt.Errorf("%w: real format requires lossy conversion", hdlnum.ErrDomain)
	}
	return cfg, nil
}

// WithBounds sets the range [min, max) of the stored integer.
func WithBounds(min, max *big.Int) Option {
	return func(cfg *config) error {
		if min == nil || max == nil {
			return fmt.Errorf("%w: both bounds must be set", hdlnum.ErrDomain)
		}
		cfg.min, cfg.max = new(big.Int).Set(min), new(big.Int).Set(max)
		cfg.minReal, cfg.maxReal = nil, nil
		return nil
	}
}

// WithRange sets the logical range [min, max).
// The bounds are snapped to the grid by the same rules as the value.
func WithRange(min, max float64) Option {
	return func(cfg *config) error {
		for _, f := range []float64{min, max} {
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return fmt.Errorf("%w: bad bound %v", hdlnum.ErrDomain, f)
			}
		}
		return WithRatRange(new(big.Rat).SetFloat64(min), new(big.Rat).SetFloat64(max))(cfg)
	}
}

// WithRatRange is like WithRange, but for exact rational bounds.
func WithRatRange(min, max *big.Rat) Option {
	return func(cfg *config) error {
		if min == nil || max == nil {
			return fmt.Errorf("%w: both bounds must be set", hdlnum.ErrDomain)
		}
		cfg.minReal, cfg.maxReal = new(big.Rat).Set(min), new(big.Rat).Set(max)
		cfg.min, cfg.max = nil, nil
		return nil
	}
}

// WithLossy allows rounding of off-grid values and bounds.
func WithLossy() Option {
	return func(cfg *config) error {
		cfg.lossy = true
		return nil
	}
}

// WithRealFormat makes String return the decimal value instead of the scaled form.
// It requires WithLossy, because the decimal form does not carry the shift.
func WithRealFormat() Option {
	return func(cfg *config) error {
		cfg.real = true
		return nil
	}
}
